package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/davral/siteworks/internal/model"
	"github.com/davral/siteworks/internal/store"
)

// ProgressRepository holds the append-only progress log. There is no update
// or delete: a recorded update is part of history.
type ProgressRepository struct {
	c *collection[model.ProgressUpdate]
}

func NewProgressRepository(s store.CollectionStore, log zerolog.Logger) *ProgressRepository {
	return &ProgressRepository{c: newCollection[model.ProgressUpdate](s, store.KeyProgressUpdates, log)}
}

func (r *ProgressRepository) Create(ctx context.Context, update model.ProgressUpdate) (*model.ProgressUpdate, error) {
	update.ID = uuid.NewString()
	update.CreatedAt = time.Now().UTC()
	err := r.c.mutate(ctx, func(updates []model.ProgressUpdate) ([]model.ProgressUpdate, error) {
		return append(updates, update), nil
	})
	if err != nil {
		return nil, err
	}
	return &update, nil
}

func (r *ProgressRepository) GetAll(ctx context.Context) ([]model.ProgressUpdate, error) {
	return r.c.load(ctx)
}

func (r *ProgressRepository) GetByID(ctx context.Context, id string) (*model.ProgressUpdate, error) {
	updates, err := r.c.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, update := range updates {
		if update.ID == id {
			return &update, nil
		}
	}
	return nil, ErrNotFound
}

func (r *ProgressRepository) GetByProject(ctx context.Context, projectID string) ([]model.ProgressUpdate, error) {
	updates, err := r.c.load(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]model.ProgressUpdate, 0, len(updates))
	for _, update := range updates {
		if update.ProjectID == projectID {
			matched = append(matched, update)
		}
	}
	return matched, nil
}
