package service

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/doniyorbek/sher-quiz-bot/internal/domain/entities"
)

// expiryNoticeWindow is how far ahead the sweep looks for expiring
// subscriptions.
const expiryNoticeWindow = 24 * time.Hour

// SubscriberExpiryLister lists subscriptions expiring inside a time window.
type SubscriberExpiryLister interface {
	GetExpiringBetween(ctx context.Context, from, to time.Time) ([]*entities.Subscriber, error)
}

// ExpiryNotifier delivers a renewal reminder to a user.
type ExpiryNotifier interface {
	NotifyExpiring(userID int64, expiresAt time.Time) error
}

// ExpiryService periodically reminds users whose subscription is about to
// expire. Each expiry timestamp is announced to a user at most once.
type ExpiryService struct {
	repo     SubscriberExpiryLister
	notifier ExpiryNotifier
	logger   *zap.Logger

	mu       sync.Mutex
	notified map[int64]time.Time // user -> expiry already announced
}

func NewExpiryService(repo SubscriberExpiryLister, logger *zap.Logger) *ExpiryService {
	return &ExpiryService{
		repo:     repo,
		logger:   logger,
		notified: make(map[int64]time.Time),
	}
}

// SetNotifier sets the notifier (called after the handler is created).
func (s *ExpiryService) SetNotifier(notifier ExpiryNotifier) {
	s.notifier = notifier
}

// Start runs the hourly expiry sweep until the context is cancelled.
func (s *ExpiryService) Start(ctx context.Context) {
	s.logger.Info("expiry service started")

	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc("0 * * * *", func() {
		if err := s.sweep(ctx); err != nil {
			s.logger.Error("expiry sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		s.logger.Error("failed to add cron job", zap.Error(err))
		return
	}

	c.Start()

	<-ctx.Done()

	c.Stop()
	s.logger.Info("expiry service stopped")
}

func (s *ExpiryService) sweep(ctx context.Context) error {
	if s.notifier == nil {
		return nil
	}

	now := time.Now().UTC()
	expiring, err := s.repo.GetExpiringBetween(ctx, now, now.Add(expiryNoticeWindow))
	if err != nil {
		return err
	}

	sent := 0
	for _, sub := range expiring {
		if sub.ExpiresAt == nil {
			continue
		}
		if s.alreadyNotified(sub.UserID, *sub.ExpiresAt) {
			continue
		}

		if err := s.notifier.NotifyExpiring(sub.UserID, *sub.ExpiresAt); err != nil {
			s.logger.Warn("failed to notify expiring subscriber",
				zap.Int64("user_id", sub.UserID),
				zap.Error(err),
			)
			continue
		}

		s.markNotified(sub.UserID, *sub.ExpiresAt)
		sent++
	}

	s.logger.Info("expiry sweep finished",
		zap.Int("expiring", len(expiring)),
		zap.Int("notified", sent),
	)

	return nil
}

func (s *ExpiryService) alreadyNotified(userID int64, expiresAt time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	last, ok := s.notified[userID]
	return ok && last.Equal(expiresAt)
}

func (s *ExpiryService) markNotified(userID int64, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notified[userID] = expiresAt
}
