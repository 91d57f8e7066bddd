package repository

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/davral/siteworks/internal/model"
	"github.com/davral/siteworks/internal/store"
)

func TestSubmissionRepositorySingleFlight(t *testing.T) {
	ctx := context.Background()

	newSubmission := func(leaderID string, status model.SubmissionStatus) model.FinalSubmission {
		return model.FinalSubmission{
			ProjectID:      "p1",
			LeaderID:       leaderID,
			Status:         status,
			TimerStartedAt: time.Now().UTC(),
			TimerDuration:  600,
		}
	}

	t.Run("second active submission for the same leader is rejected", func(t *testing.T) {
		r := NewSubmissionRepository(store.NewMemoryStore(), zerolog.Nop())
		_, err := r.Create(ctx, newSubmission("l1", model.SubmissionInProgress))
		require.NoError(t, err)
		_, err = r.Create(ctx, newSubmission("l1", model.SubmissionInProgress))
		require.ErrorIs(t, err, ErrSubmissionActive)
	})

	t.Run("another leader may start concurrently", func(t *testing.T) {
		r := NewSubmissionRepository(store.NewMemoryStore(), zerolog.Nop())
		_, err := r.Create(ctx, newSubmission("l1", model.SubmissionInProgress))
		require.NoError(t, err)
		_, err = r.Create(ctx, newSubmission("l2", model.SubmissionInProgress))
		require.NoError(t, err)
	})

	t.Run("a closed submission does not block a new start", func(t *testing.T) {
		r := NewSubmissionRepository(store.NewMemoryStore(), zerolog.Nop())
		first, err := r.Create(ctx, newSubmission("l1", model.SubmissionInProgress))
		require.NoError(t, err)

		first.Status = model.SubmissionCompleted
		require.NoError(t, r.Update(ctx, *first))

		_, err = r.Create(ctx, newSubmission("l1", model.SubmissionInProgress))
		require.NoError(t, err)
	})

	t.Run("get active by leader skips closed submissions", func(t *testing.T) {
		r := NewSubmissionRepository(store.NewMemoryStore(), zerolog.Nop())
		first, err := r.Create(ctx, newSubmission("l1", model.SubmissionInProgress))
		require.NoError(t, err)

		active, err := r.GetActiveByLeader(ctx, "l1")
		require.NoError(t, err)
		require.Equal(t, first.ID, active.ID)

		first.Status = model.SubmissionExpired
		require.NoError(t, r.Update(ctx, *first))

		_, err = r.GetActiveByLeader(ctx, "l1")
		require.ErrorIs(t, err, ErrNotFound)
	})
}
