package telegram

import (
	"context"

	"github.com/doniyorbek/sher-quiz-bot/internal/domain/entities"
	"github.com/doniyorbek/sher-quiz-bot/internal/service"
)

type AccessService interface {
	IsEntitled(ctx context.Context, userID int64) bool
}

type QuizService interface {
	Subjects() []string
	HasQuestions() bool
	BeginSubject(sess *entities.QuizSession, subject string) error
	BeginRandomMix(sess *entities.QuizSession) error
	CurrentBatch(sess *entities.QuizSession) []service.BatchQuestion
	Answer(sess *entities.QuizSession, qid int, letter string) (service.AnswerResult, error)
	NextBatch(sess *entities.QuizSession) (service.BatchAdvance, error)
}

type SubscriptionService interface {
	Grant(ctx context.Context, callerChatID, userID int64, username string, expiryDays *int) (*entities.Subscriber, error)
}

type SessionStore interface {
	Lock(userID int64)
	Unlock(userID int64)
	Get(userID int64) (*entities.QuizSession, bool)
	Put(sess *entities.QuizSession)
	Delete(userID int64)
}
