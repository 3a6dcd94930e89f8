package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/variantlab/genechat/core"
	"github.com/variantlab/genechat/storage"
)

// SessionRepository implements storage.SessionStore for BadgerDB.
type SessionRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.SessionStore = (*SessionRepository)(nil)

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(backend *Backend) (*SessionRepository, error) {
	idSeq, err := backend.GetSequence(sessionIDSeq)
	if err != nil {
		return nil, err
	}

	return &SessionRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *SessionRepository) Close() error {
	return r.idSeq.Release()
}

// AddSession persists a new session. The ID is always assigned from the
// store's sequence; an empty title falls back to core.DefaultTitle.
func (r *SessionRepository) AddSession(ctx context.Context, session *core.Session) (*core.Session, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
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
		session.Id = core.ID(nextID)

		if session.Title == "" {
			session.Title = core.DefaultTitle
		}
		session.CreatedAt = time.Now().UTC()
		session.UpdatedAt = session.CreatedAt

		key := makeSessionKey(session.Id)
		value := storage.MarshalSession(session)
		if err := tx.Set(key, value); err != nil {
			return err
		}

		// Creation-order index
		createdKey := makeSessionCreatedKey(session.CreatedAt, session.Id)
		if err := tx.Set(createdKey, storage.MarshalID(session.Id)); err != nil {
			return err
		}

		return tx.Commit()
	}, true)

	return session, err
}

// GetSession retrieves a session by ID.
func (r *SessionRepository) GetSession(ctx context.Context, id core.ID) (*core.Session, error) {
	var result *core.Session
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeSessionKey(id)
		var err error
		result, err = readSession(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// ListSessions retrieves all sessions ordered by creation time, newest first.
func (r *SessionRepository) ListSessions(ctx context.Context) ([]*core.Session, error) {
	var results []*core.Session
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Seek past the last possible index key so the reverse iterator
		// lands on the newest session.
		startKey := makeSessionCreatedKey(time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC), core.ID(^uint64(0)))
		prefix := []byte(sessionCreatedKey + ":")

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if len(key) < len(prefix) || slices.Compare(key[:len(prefix)], prefix) != 0 {
				break
			}

			var sessionID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				sessionID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			session, err := readSession(tx, makeSessionKey(sessionID))
			if err != nil {
				return err
			}
			if session != nil {
				results = append(results, session)
			}
		}
		return nil
	}, false)

	return results, err
}

// SetSessionTitle updates a session's title.
func (r *SessionRepository) SetSessionTitle(ctx context.Context, id core.ID, title string) (*core.Session, error) {
	if title == "" {
		return nil, core.ErrEmptyTitle
	}

	var result *core.Session
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeSessionKey(id)
		session, err := readSession(tx, key)
		if err != nil {
			return err
		}
		if session == nil {
			return storage.ErrNotFound
		}

		session.Title = title
		session.UpdatedAt = time.Now().UTC()

		if err := tx.Set(key, storage.MarshalSession(session)); err != nil {
			return err
		}
		result = session
		return tx.Commit()
	}, true)

	return result, err
}

// DeleteSession removes a session and its entire message log.
func (r *SessionRepository) DeleteSession(ctx context.Context, id core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeSessionKey(id)
		session, err := readSession(tx, key)
		if err != nil {
			return err
		}
		if session == nil {
			return storage.ErrNotFound
		}

		// Drop the session's message log
		prefix := makeMessagePrefix(id)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		var messageKeys [][]byte
		for iter.Seek(prefix); iter.ValidForPrefix(prefix); iter.Next() {
			messageKeys = append(messageKeys, iter.Item().KeyCopy(nil))
		}
		iter.Close()
		for _, mk := range messageKeys {
			if err := tx.Delete(mk); err != nil {
				return err
			}
		}

		createdKey := makeSessionCreatedKey(session.CreatedAt, session.Id)
		if err := tx.Delete(createdKey); err != nil {
			return err
		}

		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// readSession reads a session from the transaction. Missing keys return nil
// without error.
func readSession(tx *badger.Txn, key []byte) (*core.Session, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var session *core.Session
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		session, unmarshalErr = storage.UnmarshalSession(val)
		return unmarshalErr
	})
	return session, err
}
