package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/variantlab/genechat/core"
)

// Key prefixes for different data types
const (
	sessionPrefix     = "sess"
	sessionCreatedKey = "sessd"
	sessionIDSeq      = "sessseq"
	messagePrefix     = "msg"
	messageIDSeq      = "msgseq"
)

// makeSessionKey generates a key for a session by ID.
func makeSessionKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", sessionPrefix, id))
}

// makeSessionCreatedKey generates a composite key for the creation index.
// Format: prefix:timestamp:id
func makeSessionCreatedKey(createdAt time.Time, id core.ID) []byte {
	prefix := sessionCreatedKey + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for timestamp + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(createdAt.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeMessageKey generates a composite key for a message within a session's
// log. Format: prefix:sessionID:timestamp:messageID. BigEndian ordering
// makes a prefix scan return the log in creation order, with the message
// ID breaking timestamp ties.
func makeMessageKey(sessionID core.ID, createdAt time.Time, messageID core.ID) []byte {
	prefix := messagePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 24 // sessionID + timestamp + messageID, 8 bytes each
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(sessionID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(createdAt.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(messageID))
	return buf
}

// makeMessagePrefix generates the scan prefix for one session's log.
func makeMessagePrefix(sessionID core.ID) []byte {
	prefix := messagePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(sessionID))
	return buf
}
