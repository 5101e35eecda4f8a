package entities

import "time"

// Subscriber is a paid-access record. A nil ExpiresAt means the subscription
// never expires. Expired records are kept; expiry is evaluated at read time.
type Subscriber struct {
	UserID       int64
	Username     string
	SubscribedAt time.Time
	ExpiresAt    *time.Time
}

// NewSubscriber creates a subscriber record with an optional expiry.
func NewSubscriber(userID int64, username string, expiresAt *time.Time) *Subscriber {
	return &Subscriber{
		UserID:    userID,
		Username:  username,
		ExpiresAt: expiresAt,
	}
}

// Active reports whether the subscription is valid at the given moment.
// A record expires only when ExpiresAt is strictly before now.
func (s *Subscriber) Active(now time.Time) bool {
	if s.ExpiresAt == nil {
		return true
	}
	return !s.ExpiresAt.Before(now)
}
