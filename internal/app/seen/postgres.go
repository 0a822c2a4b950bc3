package seen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"linewatch/internal/app/db"
)

// PostgresStore is the relational Store and PaymentLedger implementation.
type PostgresStore struct {
	pool    *pgxpool.Pool
	fetcher ProfileFetcher
}

// NewPostgresStore wraps an initialized connection pool.
func NewPostgresStore(pool *pgxpool.Pool, fetcher ProfileFetcher) *PostgresStore {
	return &PostgresStore{pool: pool, fetcher: fetcher}
}

const upsertSeenUserSQL = `
INSERT INTO seen_users (user_id, user_name, picture_url, status_message, last_event, last_seen_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (user_id) DO UPDATE SET
    last_event   = EXCLUDED.last_event,
    last_seen_at = EXCLUDED.last_seen_at
`

// Upsert records a sighting. The conflict clause touches only last_event and
// last_seen_at, so profile columns keep whatever the first insert wrote.
func (s *PostgresStore) Upsert(ctx context.Context, userID, eventType string) error {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM seen_users WHERE user_id = $1)`, userID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("seen: existence check for %q: %w", userID, err)
	}

	var profile Profile
	if !exists {
		profile = s.fetcher.Profile(ctx, userID)
	}

	now := time.Now().UTC()

	_, err = s.pool.Exec(ctx, upsertSeenUserSQL,
		userID,
		textOrNil(profile.DisplayName),
		textOrNil(profile.PictureURL),
		textOrNil(profile.StatusMessage),
		eventType,
		now,
	)
	if err != nil {
		if db.IsUniqueViolation(err) {
			// Lost a first-sight race; the winner's row already exists.
			return nil
		}
		return fmt.Errorf("seen: upsert %q: %w", userID, err)
	}

	return nil
}

// List returns users ordered by last_seen_at descending.
func (s *PostgresStore) List(ctx context.Context, limit int) ([]SeenUser, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := s.pool.Query(ctx, `
		SELECT user_id, user_name, picture_url, status_message, last_event, last_seen_at
		FROM seen_users
		ORDER BY last_seen_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("seen: list: %w", err)
	}
	defer rows.Close()

	var users []SeenUser
	for rows.Next() {
		var (
			user                                     SeenUser
			userName, pictureURL, statusMsg, lastEvt *string
		)
		if err := rows.Scan(&user.UserID, &userName, &pictureURL, &statusMsg, &lastEvt, &user.LastSeenAt); err != nil {
			return nil, fmt.Errorf("seen: scan row: %w", err)
		}
		user.UserName = deref(userName)
		user.PictureURL = deref(pictureURL)
		user.StatusMessage = deref(statusMsg)
		user.LastEvent = deref(lastEvt)
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("seen: list rows: %w", err)
	}

	return users, nil
}

// RecordPaymentEvent inserts the event id once; duplicates report inserted=false.
func (s *PostgresStore) RecordPaymentEvent(ctx context.Context, eventID string, payload []byte) (bool, error) {
	var inserted string
	err := s.pool.QueryRow(ctx, `
		INSERT INTO stripe_events (event_id, payload)
		VALUES ($1, $2::jsonb)
		ON CONFLICT (event_id) DO NOTHING
		RETURNING event_id`, eventID, payload,
	).Scan(&inserted)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("seen: record payment event %q: %w", eventID, err)
	}

	return true, nil
}

func textOrNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
