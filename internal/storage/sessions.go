// Package storage holds in-memory per-user quiz session state.
package storage

import (
	"sync"

	"github.com/doniyorbek/sher-quiz-bot/internal/domain/entities"
)

// SessionStore keeps quiz sessions keyed by user id and serializes event
// handling per user: callers must hold the user's lock while reading or
// mutating that user's session.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*entities.QuizSession
	locks    map[int64]*sync.Mutex
}

// NewSessionStore creates an empty SessionStore.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[int64]*entities.QuizSession),
		locks:    make(map[int64]*sync.Mutex),
	}
}

// Lock acquires the per-user lock. Events for the same user are handled one
// at a time even if the transport delivers them concurrently.
func (s *SessionStore) Lock(userID int64) {
	s.userLock(userID).Lock()
}

// Unlock releases the per-user lock.
func (s *SessionStore) Unlock(userID int64) {
	s.userLock(userID).Unlock()
}

func (s *SessionStore) userLock(userID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	return lock
}

// Get returns the user's session, if any.
func (s *SessionStore) Get(userID int64) (*entities.QuizSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	return sess, ok
}

// Put stores the user's session, replacing any previous one.
func (s *SessionStore) Put(sess *entities.QuizSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.UserID] = sess
}

// Delete removes the user's session. Deleting a missing session is a no-op.
func (s *SessionStore) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}
