package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/doniyorbek/sher-quiz-bot/internal/domain/entities"
)

type fakeSubscriberUpserter struct {
	upserted *entities.Subscriber
	calls    int
	err      error
}

func (f *fakeSubscriberUpserter) Upsert(_ context.Context, sub *entities.Subscriber) error {
	f.calls++
	f.upserted = sub
	sub.SubscribedAt = time.Now()
	return f.err
}

const adminChatID = int64(42)

func intPtr(n int) *int { return &n }

func TestGrantRejectsNonAdmin(t *testing.T) {
	repo := &fakeSubscriberUpserter{}
	svc := NewSubscriptionService(repo, adminChatID, zap.NewNop())

	_, err := svc.Grant(context.Background(), 7, 100, "", nil)
	if !errors.Is(err, ErrNotAdmin) {
		t.Fatalf("expected ErrNotAdmin, got %v", err)
	}
	if repo.calls != 0 {
		t.Fatal("storage must not be touched for non-admin callers")
	}
}

func TestGrantRejectsWhenAdminUnconfigured(t *testing.T) {
	repo := &fakeSubscriberUpserter{}
	svc := NewSubscriptionService(repo, 0, zap.NewNop())

	// With no configured admin even a caller with chat id 0 is rejected.
	if _, err := svc.Grant(context.Background(), 0, 100, "", nil); !errors.Is(err, ErrNotAdmin) {
		t.Fatalf("expected ErrNotAdmin, got %v", err)
	}
	if repo.calls != 0 {
		t.Fatal("storage must not be touched")
	}
}

func TestGrantRejectsNonPositiveExpiryDays(t *testing.T) {
	for _, days := range []int{0, -3} {
		repo := &fakeSubscriberUpserter{}
		svc := NewSubscriptionService(repo, adminChatID, zap.NewNop())

		_, err := svc.Grant(context.Background(), adminChatID, 100, "", intPtr(days))
		if !errors.Is(err, ErrInvalidExpiryDays) {
			t.Fatalf("days=%d: expected ErrInvalidExpiryDays, got %v", days, err)
		}
		if repo.calls != 0 {
			t.Fatalf("days=%d: storage must not be touched before validation", days)
		}
	}
}

func TestGrantPermanent(t *testing.T) {
	repo := &fakeSubscriberUpserter{}
	svc := NewSubscriptionService(repo, adminChatID, zap.NewNop())

	sub, err := svc.Grant(context.Background(), adminChatID, 100, "doni", nil)
	if err != nil {
		t.Fatalf("Grant: %v", err)
	}
	if sub.ExpiresAt != nil {
		t.Fatalf("permanent grant must clear expiry, got %v", sub.ExpiresAt)
	}
	if repo.upserted == nil || repo.upserted.UserID != 100 {
		t.Fatalf("unexpected upsert: %+v", repo.upserted)
	}
}

func TestGrantWithExpiryDays(t *testing.T) {
	repo := &fakeSubscriberUpserter{}
	svc := NewSubscriptionService(repo, adminChatID, zap.NewNop())

	sub, err := svc.Grant(context.Background(), adminChatID, 100, "", intPtr(30))
	if err != nil {
		t.Fatalf("Grant: %v", err)
	}
	if sub.ExpiresAt == nil {
		t.Fatal("expected expiry to be set")
	}

	want := time.Now().AddDate(0, 0, 30)
	if diff := sub.ExpiresAt.Sub(want); diff < -time.Minute || diff > time.Minute {
		t.Fatalf("expiry %v too far from %v", sub.ExpiresAt, want)
	}
}

func TestGrantSurfacesStorageError(t *testing.T) {
	repo := &fakeSubscriberUpserter{err: errors.New("connection refused")}
	svc := NewSubscriptionService(repo, adminChatID, zap.NewNop())

	if _, err := svc.Grant(context.Background(), adminChatID, 100, "", nil); err == nil {
		t.Fatal("expected storage error to surface")
	}
}
