package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/davral/siteworks/internal/model"
	"github.com/davral/siteworks/internal/repository"
)

// TokenIssuer signs an access token for a user.
type TokenIssuer interface {
	Issue(user model.User) (string, error)
}

// AuthService manages user accounts and login. Credentials are bcrypt
// hashed; the plaintext never touches the store.
type AuthService struct {
	users  *repository.UserRepository
	issuer TokenIssuer
	log    zerolog.Logger
}

func NewAuthService(users *repository.UserRepository, issuer TokenIssuer, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, issuer: issuer, log: log}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     model.Role
}

// Register creates a user account. Admin action.
func (s *AuthService) Register(ctx context.Context, principal model.Principal, input RegisterInput) (*model.User, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
	}
	if len(input.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
	}
	if _, ok := model.ParseRole(string(input.Role)); !ok {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, input.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	created, err := s.users.Create(ctx, model.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         input.Role,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return nil, err
	}
	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")
	created.PasswordHash = ""
	return created, nil
}

// Login verifies the credentials and returns a signed access token. The
// failure is deliberately the same for an unknown email and a wrong
// password.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.issuer.Issue(*user)
	if err != nil {
		return "", nil, err
	}
	user.PasswordHash = ""
	return token, user, nil
}

func (s *AuthService) ListUsers(ctx context.Context, principal model.Principal) ([]model.User, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

func (s *AuthService) DeleteUser(ctx context.Context, principal model.Principal, id string) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}
	if principal.UserID == id {
		return fmt.Errorf("%w: cannot delete own account", ErrInvalidInput)
	}
	removed, err := s.users.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotFound
	}
	return nil
}
