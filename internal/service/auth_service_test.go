package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/davral/siteworks/internal/model"
	"github.com/davral/siteworks/internal/repository"
	"github.com/davral/siteworks/internal/store"
)

type staticIssuer struct{}

func (staticIssuer) Issue(user model.User) (string, error) { return "token-" + user.ID, nil }

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	users := repository.NewUserRepository(store.NewMemoryStore(), zerolog.Nop())
	return NewAuthService(users, staticIssuer{}, zerolog.Nop())
}

func register(t *testing.T, s *AuthService, email, password string, role model.Role) *model.User {
	t.Helper()
	created, err := s.Register(context.Background(), admin, RegisterInput{
		Name: "Asel", Email: email, Password: password, Role: role,
	})
	require.NoError(t, err)
	return created
}

func TestAuthServiceRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("only admins register accounts", func(t *testing.T) {
		s := newAuthService(t)
		_, err := s.Register(ctx, leader, RegisterInput{Name: "x", Email: "x@example.com", Password: "longenough", Role: model.RoleLeader})
		require.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("password hash never leaves the service", func(t *testing.T) {
		s := newAuthService(t)
		created := register(t, s, "asel@example.com", "longenough", model.RoleLeader)
		require.Empty(t, created.PasswordHash)

		users, err := s.ListUsers(ctx, admin)
		require.NoError(t, err)
		require.Len(t, users, 1)
		require.Empty(t, users[0].PasswordHash)
	})

	t.Run("short passwords and bad emails are rejected", func(t *testing.T) {
		s := newAuthService(t)
		_, err := s.Register(ctx, admin, RegisterInput{Name: "x", Email: "x@example.com", Password: "short", Role: model.RoleLeader})
		require.ErrorIs(t, err, ErrInvalidInput)
		_, err = s.Register(ctx, admin, RegisterInput{Name: "x", Email: "not-an-email", Password: "longenough", Role: model.RoleLeader})
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		s := newAuthService(t)
		register(t, s, "asel@example.com", "longenough", model.RoleLeader)
		_, err := s.Register(ctx, admin, RegisterInput{Name: "y", Email: "Asel@Example.com", Password: "longenough", Role: model.RoleChecker})
		require.ErrorIs(t, err, ErrConflict)
	})
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials yield a token", func(t *testing.T) {
		s := newAuthService(t)
		created := register(t, s, "asel@example.com", "longenough", model.RoleLeader)

		token, user, err := s.Login(ctx, "Asel@Example.com", "longenough")
		require.NoError(t, err)
		require.Equal(t, "token-"+created.ID, token)
		require.Empty(t, user.PasswordHash)
	})

	t.Run("wrong password and unknown email fail identically", func(t *testing.T) {
		s := newAuthService(t)
		register(t, s, "asel@example.com", "longenough", model.RoleLeader)

		_, _, errWrong := s.Login(ctx, "asel@example.com", "wrongpass")
		_, _, errUnknown := s.Login(ctx, "nobody@example.com", "longenough")
		require.ErrorIs(t, errWrong, ErrInvalidCredentials)
		require.ErrorIs(t, errUnknown, ErrInvalidCredentials)
		require.Equal(t, errWrong.Error(), errUnknown.Error())
	})
}

func TestAuthServiceDeleteUser(t *testing.T) {
	ctx := context.Background()
	s := newAuthService(t)
	created := register(t, s, "asel@example.com", "longenough", model.RoleLeader)

	t.Run("admins may not delete themselves", func(t *testing.T) {
		require.ErrorIs(t, s.DeleteUser(ctx, admin, admin.UserID), ErrInvalidInput)
	})

	t.Run("delete removes the account", func(t *testing.T) {
		require.NoError(t, s.DeleteUser(ctx, admin, created.ID))
		require.ErrorIs(t, s.DeleteUser(ctx, admin, created.ID), ErrNotFound)
	})
}
