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

type VehicleRepository struct {
	c *collection[model.Vehicle]
}

func NewVehicleRepository(s store.CollectionStore, log zerolog.Logger) *VehicleRepository {
	return &VehicleRepository{c: newCollection[model.Vehicle](s, store.KeyVehicles, log)}
}

// Create rejects a registration number already present in the fleet before
// anything is persisted.
func (r *VehicleRepository) Create(ctx context.Context, vehicle model.Vehicle) (*model.Vehicle, error) {
	vehicle.ID = uuid.NewString()
	vehicle.CreatedAt = time.Now().UTC()
	err := r.c.mutate(ctx, func(vehicles []model.Vehicle) ([]model.Vehicle, error) {
		if registrationTaken(vehicles, vehicle.RegistrationNumber, "") {
			return nil, ErrDuplicateRegistration
		}
		return append(vehicles, vehicle), nil
	})
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *VehicleRepository) GetAll(ctx context.Context) ([]model.Vehicle, error) {
	return r.c.load(ctx)
}

func (r *VehicleRepository) GetByID(ctx context.Context, id string) (*model.Vehicle, error) {
	vehicles, err := r.c.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, vehicle := range vehicles {
		if vehicle.ID == id {
			return &vehicle, nil
		}
	}
	return nil, ErrNotFound
}

// Update replaces the vehicle matching by id. Changing the registration
// number to one held by a different vehicle is rejected; keeping the
// vehicle's own number is fine.
func (r *VehicleRepository) Update(ctx context.Context, vehicle model.Vehicle) error {
	return r.c.mutate(ctx, func(vehicles []model.Vehicle) ([]model.Vehicle, error) {
		if registrationTaken(vehicles, vehicle.RegistrationNumber, vehicle.ID) {
			return nil, ErrDuplicateRegistration
		}
		for i := range vehicles {
			if vehicles[i].ID == vehicle.ID {
				vehicles[i] = vehicle
				return vehicles, nil
			}
		}
		return nil, ErrNotFound
	})
}

func (r *VehicleRepository) Delete(ctx context.Context, id string) (bool, error) {
	removed := false
	err := r.c.mutate(ctx, func(vehicles []model.Vehicle) ([]model.Vehicle, error) {
		kept := vehicles[:0]
		for _, vehicle := range vehicles {
			if vehicle.ID == id {
				removed = true
				continue
			}
			kept = append(kept, vehicle)
		}
		return kept, nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

func registrationTaken(vehicles []model.Vehicle, registration, excludeID string) bool {
	for _, vehicle := range vehicles {
		if vehicle.ID == excludeID {
			continue
		}
		if strings.EqualFold(vehicle.RegistrationNumber, registration) {
			return true
		}
	}
	return false
}
