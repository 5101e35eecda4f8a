package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/doniyorbek/sher-quiz-bot/internal/domain/entities"
)

var ErrSubscriberNotFound = errors.New("subscriber not found")

// SubscriberRepository provides access to subscription records in the
// database. Records are keyed by Telegram user id.
type SubscriberRepository struct {
	db *pgxpool.Pool
}

// NewSubscriberRepository creates a new SubscriberRepository with the
// provided database pool.
func NewSubscriberRepository(db *pgxpool.Pool) *SubscriberRepository {
	return &SubscriberRepository{db: db}
}

// GetByUserID returns the subscription record for a user, or
// ErrSubscriberNotFound when no record exists.
func (r *SubscriberRepository) GetByUserID(ctx context.Context, userID int64) (*entities.Subscriber, error) {
	query := `
    SELECT user_id, COALESCE(username, ''), subscribed_at, expires_at
    FROM subscribers
    WHERE user_id = $1
    `

	var sub entities.Subscriber
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&sub.UserID,
		&sub.Username,
		&sub.SubscribedAt,
		&sub.ExpiresAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSubscriberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get subscriber %d: %w", userID, err)
	}

	return &sub, nil
}

// Upsert creates the subscription record or updates its expiry. The
// original subscribed_at is preserved on update; a nil ExpiresAt clears any
// previous expiry. The record's SubscribedAt is filled from the database.
func (r *SubscriberRepository) Upsert(ctx context.Context, sub *entities.Subscriber) error {
	query := `
    INSERT INTO subscribers (user_id, username, expires_at)
    VALUES ($1, NULLIF($2, ''), $3)
    ON CONFLICT (user_id) DO UPDATE SET
        expires_at = EXCLUDED.expires_at,
        username = COALESCE(EXCLUDED.username, subscribers.username)
    RETURNING subscribed_at
    `

	err := r.db.QueryRow(ctx, query, sub.UserID, sub.Username, sub.ExpiresAt).Scan(&sub.SubscribedAt)
	if err != nil {
		return fmt.Errorf("upsert subscriber %d: %w", sub.UserID, err)
	}

	return nil
}

// GetExpiringBetween returns subscribers whose expiry falls inside
// [from, to), ordered by expiry time.
func (r *SubscriberRepository) GetExpiringBetween(ctx context.Context, from, to time.Time) ([]*entities.Subscriber, error) {
	query := `
    SELECT user_id, COALESCE(username, ''), subscribed_at, expires_at
    FROM subscribers
    WHERE expires_at >= $1 AND expires_at < $2
    ORDER BY expires_at
    `

	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list expiring subscribers: %w", err)
	}
	defer rows.Close()

	var subs []*entities.Subscriber
	for rows.Next() {
		var sub entities.Subscriber
		if err := rows.Scan(&sub.UserID, &sub.Username, &sub.SubscribedAt, &sub.ExpiresAt); err != nil {
			return nil, fmt.Errorf("scan subscriber: %w", err)
		}
		subs = append(subs, &sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subscribers: %w", err)
	}

	return subs, nil
}
