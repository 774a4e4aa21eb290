// Package session keeps per-actor panel state in Redis, currently just
// the selected active business. Keys expire so stale selections don't
// outlive a working session.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTTL = 24 * time.Hour

// Store is a Redis-backed active-business selection store.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a session store. A zero ttl uses the 24h default.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Store{client: client, ttl: ttl}
}

func activeBusinessKey(userID string) string {
	return fmt.Sprintf("session:active_business:%s", userID)
}

// SetActiveBusiness records the actor's selected business.
func (s *Store) SetActiveBusiness(ctx context.Context, userID, businessID string) error {
	if err := s.client.Set(ctx, activeBusinessKey(userID), businessID, s.ttl).Err(); err != nil {
		return fmt.Errorf("set active business: %w", err)
	}
	return nil
}

// ActiveBusiness returns the actor's selected business id, or "" when no
// selection exists. A missing key is not an error; the guard redirects to
// the selection page in that case.
func (s *Store) ActiveBusiness(ctx context.Context, userID string) (string, error) {
	id, err := s.client.Get(ctx, activeBusinessKey(userID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get active business: %w", err)
	}
	return id, nil
}

// ClearActiveBusiness drops the actor's selection.
func (s *Store) ClearActiveBusiness(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, activeBusinessKey(userID)).Err(); err != nil {
		return fmt.Errorf("clear active business: %w", err)
	}
	return nil
}
