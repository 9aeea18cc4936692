// Package statestore keeps the short-lived OAuth state values issued by
// /api/auth until the matching /api/callback consumes them. Backed by redis
// when one is configured; falls back to an in-process map otherwise, which
// is fine for a single instance.
package statestore

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const stateTTL = 10 * time.Minute

const keyPrefix = "oauth:state:"

// Store issues and redeems single-use OAuth state values.
type Store struct {
	redis *redis.Client // nil when redis is unavailable

	mu     sync.Mutex
	states map[string]time.Time // fallback, state -> expiry
}

// New connects to redis at addr ("" disables redis) and returns a Store.
// A failed connection is not fatal; the store degrades to in-process.
func New(addr, username, password string) *Store {
	s := &Store{states: make(map[string]time.Time)}

	if addr == "" {
		slog.Info("state store: redis not configured, using in-process store")
		return s
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		slog.Warn("state store: redis connection failed, using in-process store", "error", err)
		return s
	}

	slog.Info("state store: redis connected", "addr", addr)
	s.redis = client
	return s
}

// Issue creates a new state value valid for ten minutes.
func (s *Store) Issue(ctx context.Context) (string, error) {
	state := uuid.NewString()

	if s.redis != nil {
		if err := s.redis.Set(ctx, keyPrefix+state, "1", stateTTL).Err(); err != nil {
			return "", err
		}
		return state, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	s.states[state] = time.Now().Add(stateTTL)
	return state, nil
}

// Redeem consumes a state value, reporting whether it was valid. A state
// can only be redeemed once.
func (s *Store) Redeem(ctx context.Context, state string) (bool, error) {
	if state == "" {
		return false, nil
	}

	if s.redis != nil {
		n, err := s.redis.Del(ctx, keyPrefix+state).Result()
		if err != nil {
			return false, err
		}
		return n > 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	expiry, ok := s.states[state]
	if !ok {
		return false, nil
	}
	delete(s.states, state)
	return time.Now().Before(expiry), nil
}

// sweepLocked drops expired entries so the fallback map cannot grow
// unbounded. Caller holds s.mu.
func (s *Store) sweepLocked() {
	now := time.Now()
	for state, expiry := range s.states {
		if now.After(expiry) {
			delete(s.states, state)
		}
	}
}
