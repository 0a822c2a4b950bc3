/*
Package seen records the set of users observed in inbound webhook events.

Each distinct user id maps to exactly one SeenUser record. Profile fields are
write-once: they are filled from the profile fetcher when a user is first sighted
and never overwritten, even if the upstream profile changes later. Every sighting
updates only the last event type and the last-seen timestamp.

Two Store implementations exist behind one contract: a PostgreSQL variant and an
in-process variant used when no database is configured or reachable at startup.
*/
package seen

import (
	"context"
	"time"
)

// DefaultListLimit caps List results when the caller passes limit <= 0.
const DefaultListLimit = 300

// UnknownUserName is the display name stored when profile enrichment produced nothing.
const UnknownUserName = "unknown"

// SeenUser is a single recorded user.
type SeenUser struct {
	UserID        string
	UserName      string
	PictureURL    string
	StatusMessage string
	LastEvent     string
	LastSeenAt    time.Time
}

// Profile is the display profile captured at first sight.
// The zero value means "no profile data".
type Profile struct {
	DisplayName   string
	PictureURL    string
	StatusMessage string
}

// IsZero reports whether the profile carries no data at all.
func (p Profile) IsZero() bool {
	return p == Profile{}
}

// ProfileFetcher resolves a user id into a display profile on first sight.
// Implementations must degrade to the zero Profile on any failure; a fetcher error
// must never block or fail an upsert.
type ProfileFetcher interface {
	Profile(ctx context.Context, userID string) Profile
}

// Store persists the deduplicated seen-users set.
type Store interface {
	// Upsert records a sighting of userID with the given event type. On first
	// sight the profile fetcher is consulted and its result stored; on later
	// sightings only LastEvent and LastSeenAt change.
	Upsert(ctx context.Context, userID, eventType string) error

	// List returns recorded users ordered most-recent-first.
	// A limit <= 0 applies DefaultListLimit.
	List(ctx context.Context, limit int) ([]SeenUser, error)
}

// PaymentLedger records payment webhook events idempotently.
type PaymentLedger interface {
	// RecordPaymentEvent stores the event payload under eventID.
	// It returns false with a nil error when the event was already recorded.
	RecordPaymentEvent(ctx context.Context, eventID string, payload []byte) (bool, error)
}
