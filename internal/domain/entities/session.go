package entities

import "time"

// SessionState is the explicit state of a quiz session. The "no session"
// state is represented by the absence of a session in the store.
type SessionState string

const (
	StateSelectingSubject SessionState = "selecting_subject"
	StateInBatch          SessionState = "in_batch"
	StateAwaitingNext     SessionState = "awaiting_next_batch"
	StateCompleted        SessionState = "completed"
)

// QuizSession is the per-user quiz state. A session is owned exclusively by
// one user's conversation; handlers serialize access per user, so the
// session itself carries no locking.
type QuizSession struct {
	UserID  int64
	ChatID  int64
	Subject string       // subject label, possibly the random-mix label
	State   SessionState

	Questions []Question // shuffled snapshot, never aliases the bank
	Cursor    int        // index of the first not-yet-sent question

	Score    int
	Credited map[int]struct{} // question indices already counted into Score

	CurrentBatch    []int            // global indices of the in-flight batch
	AnsweredInBatch map[int]struct{} // subset of CurrentBatch with an answer

	StartedAt time.Time
}

// NewQuizSession creates a session in the subject-selection state.
func NewQuizSession(userID, chatID int64) *QuizSession {
	return &QuizSession{
		UserID:    userID,
		ChatID:    chatID,
		State:     StateSelectingSubject,
		Credited:  make(map[int]struct{}),
		StartedAt: time.Now(),
	}
}

// Total returns the number of questions in the session.
func (s *QuizSession) Total() int {
	return len(s.Questions)
}

// InCurrentBatch reports whether the global question index belongs to the
// in-flight batch.
func (s *QuizSession) InCurrentBatch(qid int) bool {
	for _, idx := range s.CurrentBatch {
		if idx == qid {
			return true
		}
	}
	return false
}

// RemainingInBatch returns how many batch questions have no answer yet.
func (s *QuizSession) RemainingInBatch() int {
	return len(s.CurrentBatch) - len(s.AnsweredInBatch)
}

// BatchAnswered reports whether every question of the in-flight batch has
// received at least one answer.
func (s *QuizSession) BatchAnswered() bool {
	return len(s.CurrentBatch) > 0 && s.RemainingInBatch() == 0
}

// InFinalBatch reports whether the in-flight batch contains the last
// question of the session.
func (s *QuizSession) InFinalBatch() bool {
	return s.InCurrentBatch(len(s.Questions) - 1)
}

// HasMore reports whether questions remain beyond the in-flight batch.
func (s *QuizSession) HasMore() bool {
	return s.Cursor < len(s.Questions)
}
