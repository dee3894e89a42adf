// Package ratelimit provides time-windowed request counting keyed by
// client address. The counter store is an injected collaborator so the
// in-memory implementation can be swapped for Redis without touching
// call sites.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Store counts hits for a key within a rolling window.
type Store interface {
	// Incr records a hit for key and returns the number of hits seen
	// within the current window, including this one.
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// Limit pairs a request budget with its window.
type Limit struct {
	Requests int64
	Window   time.Duration
}

// Per-scope budgets.
var defaultLimits = map[string]Limit{
	"default": {Requests: 100, Window: time.Hour},
	"auth":    {Requests: 10, Window: 5 * time.Minute},
	"chat":    {Requests: 50, Window: time.Hour},
	"user":    {Requests: 200, Window: time.Hour},
}

// Limiter applies per-scope limits using a Store.
type Limiter struct {
	store  Store
	limits map[string]Limit
	log    zerolog.Logger
}

// NewLimiter builds a Limiter with the default per-scope budgets.
func NewLimiter(store Store, log zerolog.Logger) *Limiter {
	return &Limiter{store: store, limits: defaultLimits, log: log}
}

// Allow records a hit for the client under the given scope and reports
// whether it is within budget, along with the remaining budget. Store
// failures fail open: availability is preferred over strictness here.
func (l *Limiter) Allow(ctx context.Context, scope, client string) (bool, int64) {
	limit, ok := l.limits[scope]
	if !ok {
		limit = l.limits["default"]
	}

	count, err := l.store.Incr(ctx, scope+":"+client, limit.Window)
	if err != nil {
		l.log.Warn().Err(err).Str("scope", scope).Msg("Rate limit store unavailable, allowing request")
		return true, limit.Requests
	}

	remaining := limit.Requests - count
	if remaining < 0 {
		remaining = 0
	}
	return count <= limit.Requests, remaining
}

// MemoryStore is the in-process Store: per-key hit timestamps pruned on
// each increment.
type MemoryStore struct {
	mu   sync.Mutex
	hits map[string][]time.Time
}

// NewMemoryStore builds an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{hits: make(map[string][]time.Time)}
}

// Incr implements Store.
func (s *MemoryStore) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	now := time.Now()
	cutoff := now.Add(-window)

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.hits[key][:0]
	for _, hit := range s.hits[key] {
		if hit.After(cutoff) {
			kept = append(kept, hit)
		}
	}
	kept = append(kept, now)
	s.hits[key] = kept

	return int64(len(kept)), nil
}
