package repository

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/davral/siteworks/internal/store"
)

type record struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func testCollection(t *testing.T) (*collection[record], *store.MemoryStore) {
	t.Helper()
	s := store.NewMemoryStore()
	return newCollection[record](s, "records", zerolog.Nop()), s
}

func TestCollectionEnvelope(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store loads as empty collection", func(t *testing.T) {
		c, _ := testCollection(t)
		records, err := c.load(ctx)
		require.NoError(t, err)
		require.Empty(t, records)
	})

	t.Run("save writes the version envelope", func(t *testing.T) {
		c, s := testCollection(t)
		require.NoError(t, c.save(ctx, []record{{ID: "1", Name: "a"}}))
		data, err := s.Get(ctx, "records")
		require.NoError(t, err)
		require.JSONEq(t, `{"version":1,"records":[{"id":"1","name":"a"}]}`, string(data))
	})

	t.Run("bare array from a pre-envelope writer still loads", func(t *testing.T) {
		c, s := testCollection(t)
		require.NoError(t, s.Set(ctx, "records", []byte(`[{"id":"1","name":"a"}]`)))
		records, err := c.load(ctx)
		require.NoError(t, err)
		require.Equal(t, []record{{ID: "1", Name: "a"}}, records)
	})

	t.Run("mutate rewrites a bare array in the envelope", func(t *testing.T) {
		c, s := testCollection(t)
		require.NoError(t, s.Set(ctx, "records", []byte(`[{"id":"1","name":"a"}]`)))
		require.NoError(t, c.mutate(ctx, func(records []record) ([]record, error) {
			return records, nil
		}))
		data, err := s.Get(ctx, "records")
		require.NoError(t, err)
		require.JSONEq(t, `{"version":1,"records":[{"id":"1","name":"a"}]}`, string(data))
	})

	t.Run("corrupt payload degrades to empty", func(t *testing.T) {
		c, s := testCollection(t)
		require.NoError(t, s.Set(ctx, "records", []byte(`{"version":1,"records":[{`)))
		records, err := c.load(ctx)
		require.NoError(t, err)
		require.Empty(t, records)
	})

	t.Run("newer schema version degrades to empty", func(t *testing.T) {
		c, s := testCollection(t)
		require.NoError(t, s.Set(ctx, "records", []byte(`{"version":99,"records":[{"id":"1"}]}`)))
		records, err := c.load(ctx)
		require.NoError(t, err)
		require.Empty(t, records)
	})

	t.Run("mutate error leaves the collection untouched", func(t *testing.T) {
		c, _ := testCollection(t)
		require.NoError(t, c.save(ctx, []record{{ID: "1"}}))
		require.ErrorIs(t, c.mutate(ctx, func(records []record) ([]record, error) {
			return nil, ErrNotFound
		}), ErrNotFound)
		records, err := c.load(ctx)
		require.NoError(t, err)
		require.Equal(t, []record{{ID: "1"}}, records)
	})
}
