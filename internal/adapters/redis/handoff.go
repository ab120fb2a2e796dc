package redisad

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"asili_experiences/internal/adapters/observability"
	"asili_experiences/internal/booking"
)

// SelectionStore keeps one booking selection per browsing session while the
// traveler moves from the listing page to checkout. Keys expire after ttl
// (the tab-session analog); a new Save overwrites whatever was there.
type SelectionStore struct {
	c   *redis.Client
	ttl time.Duration
}

func NewSelectionStore(c *redis.Client, ttl time.Duration) *SelectionStore {
	return &SelectionStore{c: c, ttl: ttl}
}

func key(sessionID string) string { return "handoff:" + sessionID }

func (s *SelectionStore) Save(ctx context.Context, sessionID string, sel booking.Selection) error {
	b, err := json.Marshal(sel)
	if err != nil {
		return err
	}
	observability.ObserveCache("handoff", "set")
	return s.c.Set(ctx, key(sessionID), b, s.ttl).Err()
}

func (s *SelectionStore) Load(ctx context.Context, sessionID string) (booking.Selection, bool, error) {
	v, err := s.c.Get(ctx, key(sessionID)).Bytes()
	if err == redis.Nil {
		observability.ObserveCache("handoff", "miss")
		return booking.Selection{}, false, nil
	}
	if err != nil {
		return booking.Selection{}, false, err
	}
	var sel booking.Selection
	if err := json.Unmarshal(v, &sel); err != nil {
		return booking.Selection{}, false, err
	}
	observability.ObserveCache("handoff", "hit")
	return sel, true, nil
}

func (s *SelectionStore) Clear(ctx context.Context, sessionID string) error {
	observability.ObserveCache("handoff", "del")
	return s.c.Del(ctx, key(sessionID)).Err()
}
