package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/davral/siteworks/internal/model"
	"github.com/davral/siteworks/internal/repository"
)

// FleetService manages vehicles and drivers. Writes are admin actions;
// reads are open to every authenticated role so leaders can pick a vehicle
// when recording progress.
type FleetService struct {
	vehicles *repository.VehicleRepository
	drivers  *repository.DriverRepository
	log      zerolog.Logger
}

func NewFleetService(vehicles *repository.VehicleRepository, drivers *repository.DriverRepository, log zerolog.Logger) *FleetService {
	return &FleetService{vehicles: vehicles, drivers: drivers, log: log}
}

type VehicleInput struct {
	Model               string
	RegistrationNumber  string
	PollutionCertExpiry *time.Time
	FitnessCertExpiry   *time.Time
	AdditionalDetails   string
}

func (s *FleetService) CreateVehicle(ctx context.Context, principal model.Principal, input VehicleInput) (*model.Vehicle, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	if err := validateVehicle(input); err != nil {
		return nil, err
	}
	created, err := s.vehicles.Create(ctx, model.Vehicle{
		Model:               strings.TrimSpace(input.Model),
		RegistrationNumber:  strings.ToUpper(strings.TrimSpace(input.RegistrationNumber)),
		PollutionCertExpiry: input.PollutionCertExpiry,
		FitnessCertExpiry:   input.FitnessCertExpiry,
		AdditionalDetails:   input.AdditionalDetails,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateRegistration) {
			return nil, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return nil, err
	}
	s.log.Info().Str("vehicle_id", created.ID).Str("registration", created.RegistrationNumber).Msg("vehicle created")
	return created, nil
}

func (s *FleetService) ListVehicles(ctx context.Context) ([]model.Vehicle, error) {
	return s.vehicles.GetAll(ctx)
}

func (s *FleetService) GetVehicle(ctx context.Context, id string) (*model.Vehicle, error) {
	vehicle, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return vehicle, nil
}

func (s *FleetService) UpdateVehicle(ctx context.Context, principal model.Principal, id string, input VehicleInput) (*model.Vehicle, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	if err := validateVehicle(input); err != nil {
		return nil, err
	}
	vehicle, err := s.GetVehicle(ctx, id)
	if err != nil {
		return nil, err
	}
	vehicle.Model = strings.TrimSpace(input.Model)
	vehicle.RegistrationNumber = strings.ToUpper(strings.TrimSpace(input.RegistrationNumber))
	vehicle.PollutionCertExpiry = input.PollutionCertExpiry
	vehicle.FitnessCertExpiry = input.FitnessCertExpiry
	vehicle.AdditionalDetails = input.AdditionalDetails
	if err := s.vehicles.Update(ctx, *vehicle); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRegistration):
			return nil, fmt.Errorf("%w: %v", ErrConflict, err)
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrNotFound
		}
		return nil, err
	}
	return vehicle, nil
}

func (s *FleetService) DeleteVehicle(ctx context.Context, principal model.Principal, id string) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}
	removed, err := s.vehicles.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotFound
	}
	return nil
}

type DriverInput struct {
	Name          string
	LicenseNumber string
	LicenseType   string
	Experience    int
	IsExternal    bool
	ContactNumber string
	Address       string
}

func (s *FleetService) CreateDriver(ctx context.Context, principal model.Principal, input DriverInput) (*model.Driver, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	if err := validateDriver(input); err != nil {
		return nil, err
	}
	created, err := s.drivers.Create(ctx, model.Driver{
		Name:          strings.TrimSpace(input.Name),
		LicenseNumber: strings.TrimSpace(input.LicenseNumber),
		LicenseType:   input.LicenseType,
		Experience:    input.Experience,
		IsExternal:    input.IsExternal,
		ContactNumber: input.ContactNumber,
		Address:       input.Address,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("driver_id", created.ID).Msg("driver created")
	return created, nil
}

func (s *FleetService) ListDrivers(ctx context.Context) ([]model.Driver, error) {
	return s.drivers.GetAll(ctx)
}

func (s *FleetService) GetDriver(ctx context.Context, id string) (*model.Driver, error) {
	driver, err := s.drivers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return driver, nil
}

func (s *FleetService) UpdateDriver(ctx context.Context, principal model.Principal, id string, input DriverInput) (*model.Driver, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	if err := validateDriver(input); err != nil {
		return nil, err
	}
	driver, err := s.GetDriver(ctx, id)
	if err != nil {
		return nil, err
	}
	driver.Name = strings.TrimSpace(input.Name)
	driver.LicenseNumber = strings.TrimSpace(input.LicenseNumber)
	driver.LicenseType = input.LicenseType
	driver.Experience = input.Experience
	driver.IsExternal = input.IsExternal
	driver.ContactNumber = input.ContactNumber
	driver.Address = input.Address
	if err := s.drivers.Update(ctx, *driver); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return driver, nil
}

func (s *FleetService) DeleteDriver(ctx context.Context, principal model.Principal, id string) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}
	removed, err := s.drivers.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotFound
	}
	return nil
}

func validateVehicle(input VehicleInput) error {
	if strings.TrimSpace(input.Model) == "" {
		return fmt.Errorf("%w: model is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.RegistrationNumber) == "" {
		return fmt.Errorf("%w: registration_number is required", ErrInvalidInput)
	}
	return nil
}

func validateDriver(input DriverInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.LicenseNumber) == "" {
		return fmt.Errorf("%w: license_number is required", ErrInvalidInput)
	}
	if input.Experience < 0 {
		return fmt.Errorf("%w: experience must not be negative", ErrInvalidInput)
	}
	return nil
}
