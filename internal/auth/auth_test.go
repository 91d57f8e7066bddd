package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/davral/siteworks/internal/model"
)

func TestIssueAndParse(t *testing.T) {
	user := model.User{ID: "u1", Name: "Asel", Role: model.RoleLeader}

	t.Run("round-trips the principal", func(t *testing.T) {
		issuer := NewIssuer("secret", time.Hour)
		token, err := issuer.Issue(user)
		require.NoError(t, err)

		principal, err := NewParser("secret").Parse(token)
		require.NoError(t, err)
		require.Equal(t, "u1", principal.UserID)
		require.Equal(t, "Asel", principal.Name)
		require.Equal(t, model.RoleLeader, principal.Role)
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		token, err := NewIssuer("secret", time.Hour).Issue(user)
		require.NoError(t, err)
		_, err = NewParser("other").Parse(token)
		require.Error(t, err)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		token, err := NewIssuer("secret", -time.Minute).Issue(user)
		require.NoError(t, err)
		_, err = NewParser("secret").Parse(token)
		require.Error(t, err)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := NewParser("secret").Parse("not.a.token")
		require.Error(t, err)
	})
}
