package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/davral/siteworks/internal/model"
	"github.com/davral/siteworks/internal/store"
)

type BackupLinkRepository struct {
	c *collection[model.BackupLink]
}

func NewBackupLinkRepository(s store.CollectionStore, log zerolog.Logger) *BackupLinkRepository {
	return &BackupLinkRepository{c: newCollection[model.BackupLink](s, store.KeyBackupLinks, log)}
}

func (r *BackupLinkRepository) Create(ctx context.Context, link model.BackupLink) (*model.BackupLink, error) {
	link.ID = uuid.NewString()
	link.CreatedAt = time.Now().UTC()
	err := r.c.mutate(ctx, func(links []model.BackupLink) ([]model.BackupLink, error) {
		return append(links, link), nil
	})
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *BackupLinkRepository) GetAll(ctx context.Context) ([]model.BackupLink, error) {
	return r.c.load(ctx)
}

func (r *BackupLinkRepository) Delete(ctx context.Context, id string) (bool, error) {
	removed := false
	err := r.c.mutate(ctx, func(links []model.BackupLink) ([]model.BackupLink, error) {
		kept := links[:0]
		for _, link := range links {
			if link.ID == id {
				removed = true
				continue
			}
			kept = append(kept, link)
		}
		return kept, nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}
