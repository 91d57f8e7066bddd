package repository

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/davral/siteworks/internal/model"
	"github.com/davral/siteworks/internal/store"
)

func TestProjectRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("get all preserves insertion order", func(t *testing.T) {
		r := NewProjectRepository(store.NewMemoryStore(), zerolog.Nop())
		for _, name := range []string{"NH-44 section 3", "Ring road", "Bypass"} {
			_, err := r.Create(ctx, model.Project{Name: name, LeaderID: "l1"})
			require.NoError(t, err)
		}
		projects, err := r.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, projects, 3)
		require.Equal(t, "NH-44 section 3", projects[0].Name)
		require.Equal(t, "Ring road", projects[1].Name)
		require.Equal(t, "Bypass", projects[2].Name)
	})

	t.Run("repeated reads are idempotent", func(t *testing.T) {
		r := NewProjectRepository(store.NewMemoryStore(), zerolog.Nop())
		_, err := r.Create(ctx, model.Project{Name: "Ring road", LeaderID: "l1"})
		require.NoError(t, err)
		first, err := r.GetAll(ctx)
		require.NoError(t, err)
		second, err := r.GetAll(ctx)
		require.NoError(t, err)
		require.Equal(t, first, second)
	})

	t.Run("get by leader filters", func(t *testing.T) {
		r := NewProjectRepository(store.NewMemoryStore(), zerolog.Nop())
		_, err := r.Create(ctx, model.Project{Name: "Mine", LeaderID: "l1"})
		require.NoError(t, err)
		_, err = r.Create(ctx, model.Project{Name: "Theirs", LeaderID: "l2"})
		require.NoError(t, err)

		mine, err := r.GetByLeader(ctx, "l1")
		require.NoError(t, err)
		require.Len(t, mine, 1)
		require.Equal(t, "Mine", mine[0].Name)
	})

	t.Run("update replaces by id", func(t *testing.T) {
		r := NewProjectRepository(store.NewMemoryStore(), zerolog.Nop())
		created, err := r.Create(ctx, model.Project{Name: "Ring road", LeaderID: "l1", TotalWork: 1000})
		require.NoError(t, err)

		created.CompletedWork = 250
		require.NoError(t, r.Update(ctx, *created))

		got, err := r.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, 250.0, got.CompletedWork)
	})

	t.Run("update of a missing id fails", func(t *testing.T) {
		r := NewProjectRepository(store.NewMemoryStore(), zerolog.Nop())
		require.ErrorIs(t, r.Update(ctx, model.Project{ID: "missing"}), ErrNotFound)
	})

	t.Run("get by missing id fails", func(t *testing.T) {
		r := NewProjectRepository(store.NewMemoryStore(), zerolog.Nop())
		_, err := r.GetByID(ctx, "missing")
		require.ErrorIs(t, err, ErrNotFound)
	})
}
