package memory

import (
	"context"
	"time"

	"community/internal/apperr"

	"github.com/google/uuid"
)

type SessionMemoryStorage struct {
	store *Store
}

func NewSessionMemoryStorage(store *Store) *SessionMemoryStorage {
	return &SessionMemoryStorage{store: store}
}

func (s *SessionMemoryStorage) Create(ctx context.Context, userID uint, ttl time.Duration) (string, error) {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	token := uuid.New().String()
	st.sessions[token] = &sessionRec{
		userID:    userID,
		expiresAt: time.Now().Add(ttl),
	}
	return token, nil
}

func (s *SessionMemoryStorage) Resolve(ctx context.Context, token string) (uint, error) {
	if token == "" {
		return 0, apperr.ErrUnauthenticated
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	sess, ok := st.sessions[token]
	if !ok {
		return 0, apperr.ErrUnauthenticated
	}
	if time.Now().After(sess.expiresAt) {
		delete(st.sessions, token)
		return 0, apperr.ErrUnauthenticated
	}
	if _, ok := st.liveUser(sess.userID); !ok {
		return 0, apperr.ErrUnauthenticated
	}
	return sess.userID, nil
}

func (s *SessionMemoryStorage) Delete(ctx context.Context, token string) error {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	delete(st.sessions, token)
	return nil
}

func (s *SessionMemoryStorage) DeleteByUser(ctx context.Context, userID uint) error {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	for token, sess := range st.sessions {
		if sess.userID == userID {
			delete(st.sessions, token)
		}
	}
	return nil
}
