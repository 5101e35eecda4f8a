package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/doniyorbek/sher-quiz-bot/internal/domain/entities"
	"github.com/doniyorbek/sher-quiz-bot/internal/repository"
)

// SubscriberGetter is the read side of the subscription store used by the
// access gate.
type SubscriberGetter interface {
	GetByUserID(ctx context.Context, userID int64) (*entities.Subscriber, error)
}

// AccessService decides whether a user is entitled to gated quiz features.
type AccessService struct {
	repo   SubscriberGetter
	logger *zap.Logger
}

func NewAccessService(repo SubscriberGetter, logger *zap.Logger) *AccessService {
	return &AccessService{repo: repo, logger: logger}
}

// IsEntitled reports whether the user holds an active subscription. Missing
// records and expired subscriptions deny access; a storage fault fails
// closed (denies access) and is logged, never propagated.
func (s *AccessService) IsEntitled(ctx context.Context, userID int64) bool {
	sub, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrSubscriberNotFound) {
			s.logger.Error("subscription lookup failed, denying access",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
		}
		return false
	}

	if !sub.Active(time.Now()) {
		s.logger.Info("subscription expired",
			zap.Int64("user_id", userID),
			zap.Timep("expires_at", sub.ExpiresAt),
		)
		return false
	}

	return true
}
