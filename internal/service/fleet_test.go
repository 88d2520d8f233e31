package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"carrental-backoffice/internal/domain"
)

type fleetFixture struct {
	store    *mockStore
	activity *recordingActivity
	svc      FleetService
}

func newFleetFixture() *fleetFixture {
	f := &fleetFixture{
		store:    newMockStore(),
		activity: &recordingActivity{},
	}
	f.svc = NewFleetService(f.store, f.activity, fixedClock)
	return f
}

func TestFleetService_CreateCar(t *testing.T) {
	ctx := context.Background()

	t.Run("NewCarStartsAvailable", func(t *testing.T) {
		f := newFleetFixture()
		f.store.carStatuses.On("GetByCode", ctx, domain.CarStatusAvailable).Return(availableStatus(), nil)
		f.store.cars.On("Create", ctx, mock.AnythingOfType("*domain.Car")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*domain.Car).ID = 3
			}).Return(nil)

		car, err := f.svc.CreateCar(ctx, staffActor, CarInput{Make: "Toyota", Model: "Corolla", Year: 2024, PriceCents: 5000})
		assert.NoError(t, err)
		assert.Equal(t, int32(3), car.ID)
		assert.Equal(t, domain.CarStatusAvailable, car.StatusCode)
		assert.Len(t, f.activity.entries, 1)
		assert.Equal(t, domain.ActionCreateCar, f.activity.entries[0].Action)
	})

	t.Run("MissingMake", func(t *testing.T) {
		f := newFleetFixture()
		_, err := f.svc.CreateCar(ctx, staffActor, CarInput{Model: "Corolla", PriceCents: 5000})
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("NonPositiveRate", func(t *testing.T) {
		f := newFleetFixture()
		_, err := f.svc.CreateCar(ctx, staffActor, CarInput{Make: "Toyota", Model: "Corolla"})
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestFleetService_SetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newFleetFixture()
		maintenance := &domain.CarStatus{ID: 4, Code: domain.CarStatusMaintenance, IsActive: true}
		f.store.carStatuses.On("GetByCode", ctx, domain.CarStatusMaintenance).Return(maintenance, nil)
		f.store.cars.On("GetByID", ctx, int32(3)).Return(testCar(), nil)
		f.store.cars.On("UpdateStatus", ctx, int32(3), int32(4)).Return(nil)

		car, err := f.svc.SetStatus(ctx, staffActor, 3, domain.CarStatusMaintenance)
		assert.NoError(t, err)
		assert.Equal(t, domain.CarStatusMaintenance, car.StatusCode)
		assert.Len(t, f.activity.entries, 1)
		assert.Equal(t, domain.ActionSetCarStatus, f.activity.entries[0].Action)
	})

	t.Run("UnknownCode", func(t *testing.T) {
		f := newFleetFixture()
		f.store.carStatuses.On("GetByCode", ctx, domain.CarStatusCode("scrapped")).
			Return(nil, &domain.ConfigurationError{Missing: "car status scrapped"})

		_, err := f.svc.SetStatus(ctx, staffActor, 3, domain.CarStatusCode("scrapped"))
		var serr *domain.InvalidStatusError
		assert.ErrorAs(t, err, &serr)
		f.store.cars.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("InactiveCode", func(t *testing.T) {
		f := newFleetFixture()
		retired := &domain.CarStatus{ID: 9, Code: domain.CarStatusMaintenance, IsActive: false}
		f.store.carStatuses.On("GetByCode", ctx, domain.CarStatusMaintenance).Return(retired, nil)

		_, err := f.svc.SetStatus(ctx, staffActor, 3, domain.CarStatusMaintenance)
		var serr *domain.InvalidStatusError
		assert.ErrorAs(t, err, &serr)
	})
}

func TestFleetService_DisableCar(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newFleetFixture()
		disabled := &domain.CarStatus{ID: 5, Code: domain.CarStatusDisabled, IsActive: true}
		f.store.cars.On("GetByID", ctx, int32(3)).Return(testCar(), nil)
		f.store.carStatuses.On("GetByCode", ctx, domain.CarStatusDisabled).Return(disabled, nil)
		f.store.cars.On("UpdateStatus", ctx, int32(3), int32(5)).Return(nil)

		car, err := f.svc.DisableCar(ctx, staffActor, 3)
		assert.NoError(t, err)
		assert.Equal(t, domain.CarStatusDisabled, car.StatusCode)
	})

	t.Run("RentedCarCannotBeDisabled", func(t *testing.T) {
		f := newFleetFixture()
		rentedCar := testCar()
		rentedCar.StatusCode = domain.CarStatusRented
		f.store.cars.On("GetByID", ctx, int32(3)).Return(rentedCar, nil)

		_, err := f.svc.DisableCar(ctx, staffActor, 3)
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
		f.store.cars.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
		assert.Empty(t, f.activity.entries)
	})
}

func TestFleetService_EnableCar(t *testing.T) {
	ctx := context.Background()

	t.Run("OnlyDisabledCarsEnable", func(t *testing.T) {
		f := newFleetFixture()
		f.store.cars.On("GetByID", ctx, int32(3)).Return(testCar(), nil)

		_, err := f.svc.EnableCar(ctx, staffActor, 3)
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("Success", func(t *testing.T) {
		f := newFleetFixture()
		disabledCar := testCar()
		disabledCar.StatusCode = domain.CarStatusDisabled
		f.store.cars.On("GetByID", ctx, int32(3)).Return(disabledCar, nil)
		f.store.carStatuses.On("GetByCode", ctx, domain.CarStatusAvailable).Return(availableStatus(), nil)
		f.store.cars.On("UpdateStatus", ctx, int32(3), int32(1)).Return(nil)

		car, err := f.svc.EnableCar(ctx, staffActor, 3)
		assert.NoError(t, err)
		assert.Equal(t, domain.CarStatusAvailable, car.StatusCode)
	})
}

func TestFleetService_DeleteCar(t *testing.T) {
	ctx := context.Background()

	t.Run("RentalHistoryBlocksDeletion", func(t *testing.T) {
		f := newFleetFixture()
		f.store.cars.On("GetByID", ctx, int32(3)).Return(testCar(), nil)
		f.store.cars.On("HasApprovedRequests", ctx, int32(3)).Return(true, nil)

		err := f.svc.DeleteCar(ctx, staffActor, 3)
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
		f.store.cars.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("RentedCarBlocksDeletion", func(t *testing.T) {
		f := newFleetFixture()
		rentedCar := testCar()
		rentedCar.StatusCode = domain.CarStatusRented
		f.store.cars.On("GetByID", ctx, int32(3)).Return(rentedCar, nil)

		err := f.svc.DeleteCar(ctx, staffActor, 3)
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
		f.store.cars.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("DisabledCarBlocksDeletion", func(t *testing.T) {
		f := newFleetFixture()
		disabledCar := testCar()
		disabledCar.StatusCode = domain.CarStatusDisabled
		f.store.cars.On("GetByID", ctx, int32(3)).Return(disabledCar, nil)

		err := f.svc.DeleteCar(ctx, staffActor, 3)
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
		f.store.cars.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		assert.Empty(t, f.activity.entries)
	})

	t.Run("Success", func(t *testing.T) {
		f := newFleetFixture()
		f.store.cars.On("GetByID", ctx, int32(3)).Return(testCar(), nil)
		f.store.cars.On("HasApprovedRequests", ctx, int32(3)).Return(false, nil)
		f.store.cars.On("Delete", ctx, int32(3)).Return(nil)

		err := f.svc.DeleteCar(ctx, staffActor, 3)
		assert.NoError(t, err)
		assert.Len(t, f.activity.entries, 1)
		assert.Equal(t, domain.ActionDeleteCar, f.activity.entries[0].Action)
	})
}

func TestFleetService_CanBeDeleted(t *testing.T) {
	ctx := context.Background()

	t.Run("AvailableWithoutHistory", func(t *testing.T) {
		f := newFleetFixture()
		f.store.cars.On("GetByID", ctx, int32(3)).Return(testCar(), nil)
		f.store.cars.On("HasApprovedRequests", ctx, int32(3)).Return(false, nil)

		ok, err := f.svc.CanBeDeleted(ctx, 3)
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("RentedCar", func(t *testing.T) {
		f := newFleetFixture()
		rentedCar := testCar()
		rentedCar.StatusCode = domain.CarStatusRented
		f.store.cars.On("GetByID", ctx, int32(3)).Return(rentedCar, nil)

		ok, err := f.svc.CanBeDeleted(ctx, 3)
		assert.NoError(t, err)
		assert.False(t, ok)
		f.store.cars.AssertNotCalled(t, "HasApprovedRequests", mock.Anything, mock.Anything)
	})

	t.Run("DisabledCar", func(t *testing.T) {
		f := newFleetFixture()
		disabledCar := testCar()
		disabledCar.StatusCode = domain.CarStatusDisabled
		f.store.cars.On("GetByID", ctx, int32(3)).Return(disabledCar, nil)

		ok, err := f.svc.CanBeDeleted(ctx, 3)
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("HistoryBlocks", func(t *testing.T) {
		f := newFleetFixture()
		f.store.cars.On("GetByID", ctx, int32(3)).Return(testCar(), nil)
		f.store.cars.On("HasApprovedRequests", ctx, int32(3)).Return(true, nil)

		ok, err := f.svc.CanBeDeleted(ctx, 3)
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestFleetService_SeedStatuses(t *testing.T) {
	ctx := context.Background()

	f := newFleetFixture()
	f.store.carStatuses.On("Create", ctx, mock.AnythingOfType("*domain.CarStatus")).Return(nil)

	err := f.svc.SeedStatuses(ctx)
	assert.NoError(t, err)
	f.store.carStatuses.AssertNumberOfCalls(t, "Create", 4)
}
