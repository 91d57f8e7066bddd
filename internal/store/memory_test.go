package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("missing key reads as nil", func(t *testing.T) {
		s := NewMemoryStore()
		data, err := s.Get(ctx, KeyProjects)
		require.NoError(t, err)
		require.Nil(t, data)
	})

	t.Run("set then get round-trips", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, s.Set(ctx, KeyUsers, []byte(`[{"id":"u1"}]`)))
		data, err := s.Get(ctx, KeyUsers)
		require.NoError(t, err)
		require.JSONEq(t, `[{"id":"u1"}]`, string(data))
	})

	t.Run("set overwrites the whole payload", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, s.Set(ctx, KeyVehicles, []byte(`["a"]`)))
		require.NoError(t, s.Set(ctx, KeyVehicles, []byte(`["b"]`)))
		data, err := s.Get(ctx, KeyVehicles)
		require.NoError(t, err)
		require.JSONEq(t, `["b"]`, string(data))
	})

	t.Run("mutating a returned slice does not leak into the store", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, s.Set(ctx, KeyDrivers, []byte(`abc`)))
		first, err := s.Get(ctx, KeyDrivers)
		require.NoError(t, err)
		first[0] = 'x'
		second, err := s.Get(ctx, KeyDrivers)
		require.NoError(t, err)
		require.Equal(t, []byte(`abc`), second)
	})

	t.Run("keys are independent", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, s.Set(ctx, KeyTenders, []byte(`[1]`)))
		data, err := s.Get(ctx, KeyTenderBills)
		require.NoError(t, err)
		require.Nil(t, data)
	})
}
