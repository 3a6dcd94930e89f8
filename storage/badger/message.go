package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/variantlab/genechat/core"
	"github.com/variantlab/genechat/storage"
)

// MessageRepository implements storage.MessageLog for BadgerDB.
type MessageRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.MessageLog = (*MessageRepository)(nil)

// NewMessageRepository creates a new MessageRepository.
func NewMessageRepository(backend *Backend) (*MessageRepository, error) {
	idSeq, err := backend.GetSequence(messageIDSeq)
	if err != nil {
		return nil, err
	}

	return &MessageRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *MessageRepository) Close() error {
	return r.idSeq.Release()
}

// AppendMessages appends one or more messages to a session's log in a single
// transaction. Either every message is stored or none is.
func (r *MessageRepository) AppendMessages(ctx context.Context, sessionID core.ID, messages ...*core.Message) ([]*core.Message, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// The session must exist before its log can grow.
		session, err := readSession(tx, makeSessionKey(sessionID))
		if err != nil {
			return err
		}
		if session == nil {
			return storage.ErrNotFound
		}

		now := time.Now().UTC()
		for i, message := range messages {
			nextID, err := r.idSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextID == 0 {
				nextID, err = r.idSeq.Next()
				if err != nil {
					return err
				}
			}
			message.Id = core.ID(nextID)
			message.SessionId = sessionID
			// Spread timestamps within the batch so the key ordering
			// matches the argument ordering.
			message.CreatedAt = now.Add(time.Duration(i) * time.Microsecond)

			key := makeMessageKey(sessionID, message.CreatedAt, message.Id)
			if err := tx.Set(key, storage.MarshalMessage(message)); err != nil {
				return err
			}
		}

		// Touch the session so ordering by activity stays honest.
		session.UpdatedAt = now
		if err := tx.Set(makeSessionKey(sessionID), storage.MarshalSession(session)); err != nil {
			return err
		}

		return tx.Commit()
	}, true)

	if err != nil {
		return nil, err
	}
	return messages, nil
}

// ListMessages retrieves a session's full log in creation order.
func (r *MessageRepository) ListMessages(ctx context.Context, sessionID core.ID) ([]*core.Message, error) {
	var results []*core.Message
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		session, err := readSession(tx, makeSessionKey(sessionID))
		if err != nil {
			return err
		}
		if session == nil {
			return storage.ErrNotFound
		}

		prefix := makeMessagePrefix(sessionID)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(prefix); iter.ValidForPrefix(prefix); iter.Next() {
			var message *core.Message
			if err := iter.Item().Value(func(val []byte) error {
				var unmarshalErr error
				message, unmarshalErr = storage.UnmarshalMessage(val)
				return unmarshalErr
			}); err != nil {
				return err
			}
			results = append(results, message)
		}
		return nil
	}, false)

	return results, err
}
