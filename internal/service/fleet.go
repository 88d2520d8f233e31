package service

import (
	"context"
	"fmt"
	"time"

	"carrental-backoffice/internal/domain"
	"carrental-backoffice/internal/repository"
)

// seededStatuses is the built-in catalog. Deployments may add rows; these
// four are required by the rental workflow.
var seededStatuses = []domain.CarStatus{
	{Code: domain.CarStatusAvailable, Label: "Available", Description: "Ready to be rented", IsActive: true},
	{Code: domain.CarStatusRented, Label: "Rented", Description: "Currently out with a customer", IsActive: true},
	{Code: domain.CarStatusMaintenance, Label: "Maintenance", Description: "Temporarily out of service", IsActive: true},
	{Code: domain.CarStatusDisabled, Label: "Disabled", Description: "Hidden from the rentable fleet", IsActive: true},
}

type fleetService struct {
	store    repository.Store
	activity ActivityService
	now      Clock
}

func NewFleetService(store repository.Store, activity ActivityService, now Clock) FleetService {
	if now == nil {
		now = time.Now
	}
	return &fleetService{store: store, activity: activity, now: now}
}

func (s *fleetService) CreateCar(ctx context.Context, actor domain.Actor, in CarInput) (*domain.Car, error) {
	if err := validateCarInput(in); err != nil {
		return nil, err
	}

	var car *domain.Car
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		available, err := tx.CarStatuses().GetByCode(ctx, domain.CarStatusAvailable)
		if err != nil {
			return err
		}
		car = &domain.Car{
			Make:        in.Make,
			Model:       in.Model,
			Description: in.Description,
			Year:        in.Year,
			PriceCents:  in.PriceCents,
			StatusID:    available.ID,
			StatusCode:  available.Code,
			Image:       in.Image,
		}
		return tx.Cars().Create(ctx, car)
	})
	if err != nil {
		return nil, err
	}

	s.activity.Log(ctx, actor, domain.ActionCreateCar,
		"Added car to fleet: "+car.DisplayName(),
		map[string]any{"car_id": car.ID, "make": car.Make, "model": car.Model, "year": car.Year})
	return car, nil
}

func (s *fleetService) UpdateCar(ctx context.Context, actor domain.Actor, carID int32, in CarInput) (*domain.Car, error) {
	if err := validateCarInput(in); err != nil {
		return nil, err
	}

	car, err := s.store.Cars().GetByID(ctx, carID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	car.Make = in.Make
	car.Model = in.Model
	car.Description = in.Description
	car.Year = in.Year
	car.PriceCents = in.PriceCents
	car.Image = in.Image
	car.UpdatedOn = &now
	if err := s.store.Cars().Update(ctx, car); err != nil {
		return nil, err
	}

	s.activity.Log(ctx, actor, domain.ActionUpdateCar,
		"Updated car: "+car.DisplayName(),
		map[string]any{"car_id": car.ID, "make": car.Make, "model": car.Model, "year": car.Year})
	return car, nil
}

func (s *fleetService) SetStatus(ctx context.Context, actor domain.Actor, carID int32, code domain.CarStatusCode) (*domain.Car, error) {
	var car *domain.Car
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		status, err := tx.CarStatuses().GetByCode(ctx, code)
		if err != nil {
			if _, ok := err.(*domain.ConfigurationError); ok {
				return &domain.InvalidStatusError{Code: code}
			}
			return err
		}
		if !status.IsActive {
			return &domain.InvalidStatusError{Code: code}
		}

		if car, err = tx.Cars().GetByID(ctx, carID); err != nil {
			return err
		}
		if err := tx.Cars().UpdateStatus(ctx, carID, status.ID); err != nil {
			return err
		}
		car.StatusID = status.ID
		car.StatusCode = status.Code
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.activity.Log(ctx, actor, domain.ActionSetCarStatus,
		fmt.Sprintf("Set car %s status to %s", car.DisplayName(), code),
		map[string]any{"car_id": car.ID, "status": string(code)})
	return car, nil
}

func (s *fleetService) DisableCar(ctx context.Context, actor domain.Actor, carID int32) (*domain.Car, error) {
	var car *domain.Car
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		var err error
		if car, err = tx.Cars().GetByID(ctx, carID); err != nil {
			return err
		}
		if car.IsCurrentlyRented() {
			return &domain.ValidationError{Field: "status", Reason: "a rented car cannot be disabled"}
		}
		disabled, err := tx.CarStatuses().GetByCode(ctx, domain.CarStatusDisabled)
		if err != nil {
			return err
		}
		if err := tx.Cars().UpdateStatus(ctx, carID, disabled.ID); err != nil {
			return err
		}
		car.StatusID = disabled.ID
		car.StatusCode = disabled.Code
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.activity.Log(ctx, actor, domain.ActionDisableCar,
		"Disabled car: "+car.DisplayName(),
		map[string]any{"car_id": car.ID})
	return car, nil
}

func (s *fleetService) EnableCar(ctx context.Context, actor domain.Actor, carID int32) (*domain.Car, error) {
	var car *domain.Car
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		var err error
		if car, err = tx.Cars().GetByID(ctx, carID); err != nil {
			return err
		}
		if !car.IsDisabled() {
			return &domain.ValidationError{Field: "status", Reason: "only a disabled car can be enabled"}
		}
		available, err := tx.CarStatuses().GetByCode(ctx, domain.CarStatusAvailable)
		if err != nil {
			return err
		}
		if err := tx.Cars().UpdateStatus(ctx, carID, available.ID); err != nil {
			return err
		}
		car.StatusID = available.ID
		car.StatusCode = available.Code
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.activity.Log(ctx, actor, domain.ActionEnableCar,
		"Enabled car: "+car.DisplayName(),
		map[string]any{"car_id": car.ID})
	return car, nil
}

func (s *fleetService) DeleteCar(ctx context.Context, actor domain.Actor, carID int32) error {
	var car *domain.Car
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		var err error
		if car, err = tx.Cars().GetByID(ctx, carID); err != nil {
			return err
		}
		if car.IsCurrentlyRented() {
			return &domain.ValidationError{Field: "car", Reason: "a rented car cannot be deleted"}
		}
		if car.IsDisabled() {
			return &domain.ValidationError{Field: "car", Reason: "a disabled car cannot be deleted"}
		}
		hasHistory, err := tx.Cars().HasApprovedRequests(ctx, carID)
		if err != nil {
			return err
		}
		if hasHistory {
			return &domain.ValidationError{Field: "car", Reason: "cars with rental history cannot be deleted, disable instead"}
		}
		return tx.Cars().Delete(ctx, carID)
	})
	if err != nil {
		return err
	}

	s.activity.Log(ctx, actor, domain.ActionDeleteCar,
		"Deleted car: "+car.DisplayName(),
		map[string]any{"car_id": carID, "make": car.Make, "model": car.Model})
	return nil
}

func (s *fleetService) CanBeDisabled(ctx context.Context, carID int32) (bool, error) {
	car, err := s.store.Cars().GetByID(ctx, carID)
	if err != nil {
		return false, err
	}
	return !car.IsCurrentlyRented() && !car.IsDisabled(), nil
}

func (s *fleetService) CanBeDeleted(ctx context.Context, carID int32) (bool, error) {
	car, err := s.store.Cars().GetByID(ctx, carID)
	if err != nil {
		return false, err
	}
	if car.IsCurrentlyRented() || car.IsDisabled() {
		return false, nil
	}
	hasHistory, err := s.store.Cars().HasApprovedRequests(ctx, carID)
	if err != nil {
		return false, err
	}
	return !hasHistory, nil
}

func (s *fleetService) CanBeEnabled(ctx context.Context, carID int32) (bool, error) {
	car, err := s.store.Cars().GetByID(ctx, carID)
	if err != nil {
		return false, err
	}
	return car.IsDisabled(), nil
}

func (s *fleetService) GetCar(ctx context.Context, carID int32) (*domain.Car, error) {
	return s.store.Cars().GetByID(ctx, carID)
}

func (s *fleetService) ListCars(ctx context.Context) ([]domain.Car, error) {
	return s.store.Cars().List(ctx)
}

func (s *fleetService) ListStatuses(ctx context.Context) ([]domain.CarStatus, error) {
	return s.store.CarStatuses().List(ctx)
}

func (s *fleetService) SeedStatuses(ctx context.Context) error {
	for i := range seededStatuses {
		status := seededStatuses[i]
		if err := s.store.CarStatuses().Create(ctx, &status); err != nil {
			return err
		}
	}
	return nil
}

func validateCarInput(in CarInput) error {
	if in.Make == "" {
		return &domain.ValidationError{Field: "make", Reason: "make is required"}
	}
	if in.Model == "" {
		return &domain.ValidationError{Field: "model", Reason: "model is required"}
	}
	if in.PriceCents <= 0 {
		return &domain.ValidationError{Field: "price_cents", Reason: "daily rate must be positive"}
	}
	return nil
}
