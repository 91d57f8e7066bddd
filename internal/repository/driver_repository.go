package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/davral/siteworks/internal/model"
	"github.com/davral/siteworks/internal/store"
)

type DriverRepository struct {
	c *collection[model.Driver]
}

func NewDriverRepository(s store.CollectionStore, log zerolog.Logger) *DriverRepository {
	return &DriverRepository{c: newCollection[model.Driver](s, store.KeyDrivers, log)}
}

func (r *DriverRepository) Create(ctx context.Context, driver model.Driver) (*model.Driver, error) {
	driver.ID = uuid.NewString()
	driver.CreatedAt = time.Now().UTC()
	err := r.c.mutate(ctx, func(drivers []model.Driver) ([]model.Driver, error) {
		return append(drivers, driver), nil
	})
	if err != nil {
		return nil, err
	}
	return &driver, nil
}

func (r *DriverRepository) GetAll(ctx context.Context) ([]model.Driver, error) {
	return r.c.load(ctx)
}

func (r *DriverRepository) GetByID(ctx context.Context, id string) (*model.Driver, error) {
	drivers, err := r.c.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, driver := range drivers {
		if driver.ID == id {
			return &driver, nil
		}
	}
	return nil, ErrNotFound
}

func (r *DriverRepository) Update(ctx context.Context, driver model.Driver) error {
	return r.c.mutate(ctx, func(drivers []model.Driver) ([]model.Driver, error) {
		for i := range drivers {
			if drivers[i].ID == driver.ID {
				drivers[i] = driver
				return drivers, nil
			}
		}
		return nil, ErrNotFound
	})
}

func (r *DriverRepository) Delete(ctx context.Context, id string) (bool, error) {
	removed := false
	err := r.c.mutate(ctx, func(drivers []model.Driver) ([]model.Driver, error) {
		kept := drivers[:0]
		for _, driver := range drivers {
			if driver.ID == id {
				removed = true
				continue
			}
			kept = append(kept, driver)
		}
		return kept, nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}
