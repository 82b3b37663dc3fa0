package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/quantumbox/internal/game"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func round(n int, outcome game.Outcome, elapsed time.Duration, retries int) Round {
	return Round{
		ID:      uuid.New(),
		Number:  n,
		Outcome: outcome,
		Elapsed: elapsed,
		Retries: retries,
		EndedAt: t0.Add(time.Duration(n) * time.Minute),
	}
}

func TestMemory_SaveGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	r := round(1, game.OutcomeSolved, 3*time.Second, 0)
	require.NoError(t, s.Save(ctx, r))

	got, err := s.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, r, got)

	_, err = s.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_BestIgnoresExpired(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, ok, err := s.Best(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Save(ctx, round(1, game.OutcomeExpired, time.Second, 0)))
	_, ok, _ = s.Best(ctx)
	assert.False(t, ok)

	slow := round(2, game.OutcomeSolved, 5*time.Second, 0)
	fast := round(3, game.OutcomeSolved, 4*time.Second, 2)
	tie := round(4, game.OutcomeSolved, 4*time.Second, 1)
	for _, r := range []Round{slow, fast, tie} {
		require.NoError(t, s.Save(ctx, r))
	}
	best, ok, err := s.Best(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, tie.ID, best.ID, "equal time breaks ties on retries")
}

func TestMemory_RecentNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	for n := 1; n <= 12; n++ {
		require.NoError(t, s.Save(ctx, round(n, game.OutcomeSolved, time.Second, 0)))
	}

	got, err := s.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []int{12, 11, 10}, []int{got[0].Number, got[1].Number, got[2].Number})

	got, err = s.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, got, 10)
}
