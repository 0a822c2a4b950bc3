package seen

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is the in-process Store and PaymentLedger implementation used when no
// database is configured. Records live for the process lifetime and are lost on
// restart. All access is mutex-guarded; requests may be dispatched in parallel.
type MemoryStore struct {
	mu      sync.Mutex
	fetcher ProfileFetcher
	index   map[string]*SeenUser
	users   []*SeenUser
	events  map[string][]byte

	// now is swapped out by tests that need a fixed clock.
	now func() time.Time
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore(fetcher ProfileFetcher) *MemoryStore {
	return &MemoryStore{
		fetcher: fetcher,
		index:   make(map[string]*SeenUser),
		events:  make(map[string][]byte),
		now:     time.Now,
	}
}

// Upsert records a sighting. The profile fetch on first sight happens outside the
// lock (it can take up to the fetch timeout); the insert re-checks the index so a
// concurrent first sighting keeps the first writer's profile.
func (m *MemoryStore) Upsert(ctx context.Context, userID, eventType string) error {
	now := m.now().UTC()

	m.mu.Lock()
	if user, ok := m.index[userID]; ok {
		user.LastEvent = eventType
		user.LastSeenAt = now
		m.mu.Unlock()
		return nil
	}
	m.mu.Unlock()

	profile := m.fetcher.Profile(ctx, userID)

	userName := profile.DisplayName
	if userName == "" {
		userName = UnknownUserName
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if user, ok := m.index[userID]; ok {
		user.LastEvent = eventType
		user.LastSeenAt = now
		return nil
	}

	user := &SeenUser{
		UserID:        userID,
		UserName:      userName,
		PictureURL:    profile.PictureURL,
		StatusMessage: profile.StatusMessage,
		LastEvent:     eventType,
		LastSeenAt:    now,
	}
	m.index[userID] = user
	m.users = append(m.users, user)

	return nil
}

// List returns a copy of the records sorted by LastSeenAt descending.
func (m *MemoryStore) List(ctx context.Context, limit int) ([]SeenUser, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	m.mu.Lock()
	users := make([]SeenUser, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, *user)
	}
	m.mu.Unlock()

	sort.SliceStable(users, func(i, j int) bool {
		return users[i].LastSeenAt.After(users[j].LastSeenAt)
	})

	if len(users) > limit {
		users = users[:limit]
	}

	return users, nil
}

// RecordPaymentEvent stores the payload once per event id.
func (m *MemoryStore) RecordPaymentEvent(ctx context.Context, eventID string, payload []byte) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.events[eventID]; ok {
		return false, nil
	}

	stored := make([]byte, len(payload))
	copy(stored, payload)
	m.events[eventID] = stored

	return true, nil
}
