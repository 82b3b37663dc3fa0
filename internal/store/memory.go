// internal/store/memory.go
//
// In-memory round history for the current process.
// Used by the host to show the player's best solve time and recent rounds.
//
// Characteristics:
//   - Stores Round records keyed by challenge ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process exits; nothing is written to disk.
//   - Errors are returned for missing round IDs on Get().

package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/quantumbox/internal/game"
)

// ErrNotFound is returned by Get for unknown round IDs.
var ErrNotFound = errors.New("not found")

// Round is one finished challenge as the host saw it.
type Round struct {
	ID       uuid.UUID
	Number   int          // host round counter
	Outcome  game.Outcome // solved or expired
	Elapsed  time.Duration
	Deadline time.Duration
	Retries  int
	Length   int
	EndedAt  time.Time
}

// Store defines the interface for round history.
type Store interface {
	// Save records or replaces a round.
	Save(ctx context.Context, r Round) error

	// Get retrieves a round by challenge ID.
	Get(ctx context.Context, id uuid.UUID) (Round, error)

	// Best returns the fastest solved round. ok is false when nothing was solved.
	Best(ctx context.Context) (r Round, ok bool, err error)

	// Recent returns up to limit rounds, newest first.
	Recent(ctx context.Context, limit int) ([]Round, error)
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu     sync.RWMutex         // guards rounds
	rounds map[uuid.UUID]Round // keyed by Round.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{rounds: make(map[uuid.UUID]Round)}
}

// Save adds or updates the round in the map.
func (m *memory) Save(ctx context.Context, r Round) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rounds[r.ID] = r
	return nil
}

// Get looks up a round by ID.
func (m *memory) Get(ctx context.Context, id uuid.UUID) (Round, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.rounds[id]; ok {
		return r, nil
	}
	return Round{}, ErrNotFound
}

// Best orders solved rounds by elapsed time ASC, then retries ASC, then end
// time ASC, and returns the first.
func (m *memory) Best(ctx context.Context) (Round, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var best Round
	found := false
	for _, r := range m.rounds {
		if r.Outcome != game.OutcomeSolved {
			continue
		}
		if !found || faster(r, best) {
			best, found = r, true
		}
	}
	return best, found, nil
}

// Recent returns the newest rounds first. limit <= 0 defaults to 10.
func (m *memory) Recent(ctx context.Context, limit int) ([]Round, error) {
	if limit <= 0 {
		limit = 10
	}
	m.mu.RLock()
	out := make([]Round, 0, len(m.rounds))
	for _, r := range m.rounds {
		out = append(out, r)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].EndedAt.Equal(out[j].EndedAt) {
			return out[i].Number > out[j].Number
		}
		return out[i].EndedAt.After(out[j].EndedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func faster(a, b Round) bool {
	if a.Elapsed != b.Elapsed {
		return a.Elapsed < b.Elapsed
	}
	if a.Retries != b.Retries {
		return a.Retries < b.Retries
	}
	return a.EndedAt.Before(b.EndedAt)
}
