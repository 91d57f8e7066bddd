package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/davral/siteworks/internal/model"
	"github.com/davral/siteworks/internal/store"
)

type UserRepository struct {
	c *collection[model.User]
}

func NewUserRepository(s store.CollectionStore, log zerolog.Logger) *UserRepository {
	return &UserRepository{c: newCollection[model.User](s, store.KeyUsers, log)}
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (*model.User, error) {
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()
	err := r.c.mutate(ctx, func(users []model.User) ([]model.User, error) {
		for _, existing := range users {
			if strings.EqualFold(existing.Email, user.Email) {
				return nil, ErrDuplicateEmail
			}
		}
		return append(users, user), nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetAll(ctx context.Context) ([]model.User, error) {
	return r.c.load(ctx)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	users, err := r.c.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		if user.ID == id {
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	users, err := r.c.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		if strings.EqualFold(user.Email, email) {
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (r *UserRepository) Update(ctx context.Context, user model.User) error {
	return r.c.mutate(ctx, func(users []model.User) ([]model.User, error) {
		for i := range users {
			if users[i].ID == user.ID {
				users[i] = user
				return users, nil
			}
		}
		return nil, ErrNotFound
	})
}

func (r *UserRepository) Delete(ctx context.Context, id string) (bool, error) {
	removed := false
	err := r.c.mutate(ctx, func(users []model.User) ([]model.User, error) {
		kept := users[:0]
		for _, user := range users {
			if user.ID == id {
				removed = true
				continue
			}
			kept = append(kept, user)
		}
		return kept, nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}
