package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/doniyorbek/sher-quiz-bot/internal/domain/entities"
)

var (
	ErrNotAdmin          = errors.New("caller is not the configured admin")
	ErrInvalidExpiryDays = errors.New("expiry days must be a positive number")
)

// SubscriberUpserter is the write side of the subscription store.
type SubscriberUpserter interface {
	Upsert(ctx context.Context, sub *entities.Subscriber) error
}

// SubscriptionService grants and renews subscriptions. All writes are
// restricted to a single configured admin identity.
type SubscriptionService struct {
	repo        SubscriberUpserter
	adminChatID int64
	logger      *zap.Logger
}

func NewSubscriptionService(repo SubscriberUpserter, adminChatID int64, logger *zap.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo:        repo,
		adminChatID: adminChatID,
		logger:      logger,
	}
}

// Grant upserts a subscription for userID. A nil expiryDays makes the grant
// permanent, clearing any previous expiry; otherwise the subscription
// expires expiryDays from now. Non-positive expiryDays and non-admin
// callers are rejected before any storage access.
func (s *SubscriptionService) Grant(
	ctx context.Context,
	callerChatID int64,
	userID int64,
	username string,
	expiryDays *int,
) (*entities.Subscriber, error) {
	if s.adminChatID == 0 || callerChatID != s.adminChatID {
		s.logger.Warn("grant attempt by non-admin",
			zap.Int64("caller_chat_id", callerChatID),
			zap.Int64("target_user_id", userID),
		)
		return nil, ErrNotAdmin
	}

	var expiresAt *time.Time
	if expiryDays != nil {
		if *expiryDays <= 0 {
			return nil, ErrInvalidExpiryDays
		}
		t := time.Now().AddDate(0, 0, *expiryDays)
		expiresAt = &t
	}

	sub := entities.NewSubscriber(userID, username, expiresAt)
	if err := s.repo.Upsert(ctx, sub); err != nil {
		return nil, fmt.Errorf("upsert subscriber: %w", err)
	}

	s.logger.Info("subscription granted",
		zap.Int64("user_id", userID),
		zap.Timep("expires_at", expiresAt),
	)

	return sub, nil
}
