package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"carrental-backoffice/internal/domain"
)

var carRows = []string{"id", "make", "model", "description", "year", "price_cents", "status_id", "code", "image", "updated_on"}

func TestCarRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	store := NewStore(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(carRows).
			AddRow(3, "Toyota", "Corolla", "", 2024, 5000, 1, "available", "", time.Now())

		mock.ExpectQuery(`SELECT (.+) FROM cars c JOIN car_statuses cs`).
			WithArgs(int32(3)).
			WillReturnRows(rows)

		car, err := store.Cars().GetByID(ctx, 3)
		assert.NoError(t, err)
		assert.Equal(t, "Toyota", car.Make)
		assert.Equal(t, domain.CarStatusAvailable, car.StatusCode)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM cars c JOIN car_statuses cs`).
			WithArgs(int32(99)).
			WillReturnRows(sqlmock.NewRows(carRows))

		_, err := store.Cars().GetByID(ctx, 99)
		var nfe *domain.NotFoundError
		assert.ErrorAs(t, err, &nfe)
	})
}

func TestCarRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	store := NewStore(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE cars SET status_id").
			WithArgs(int32(2), int32(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := store.Cars().UpdateStatus(ctx, 3, 2)
		assert.NoError(t, err)
	})

	t.Run("UnknownCar", func(t *testing.T) {
		mock.ExpectExec("UPDATE cars SET status_id").
			WithArgs(int32(2), int32(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := store.Cars().UpdateStatus(ctx, 99, 2)
		var nfe *domain.NotFoundError
		assert.ErrorAs(t, err, &nfe)
	})
}

func TestCarRepository_HasApprovedRequests(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	store := NewStore(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int32(3)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	has, err := store.Cars().HasApprovedRequests(ctx, 3)
	assert.NoError(t, err)
	assert.True(t, has)
}

func TestCarStatusRepository_GetByCode(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	store := NewStore(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "code", "label", "description", "is_active"}).
			AddRow(2, "rented", "Rented", "", true)

		mock.ExpectQuery(`SELECT (.+) FROM car_statuses WHERE code = \$1`).
			WithArgs(domain.CarStatusRented).
			WillReturnRows(rows)

		status, err := store.CarStatuses().GetByCode(ctx, domain.CarStatusRented)
		assert.NoError(t, err)
		assert.Equal(t, int32(2), status.ID)
	})

	t.Run("MissingRowIsConfigurationError", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM car_statuses WHERE code = \$1`).
			WithArgs(domain.CarStatusRented).
			WillReturnRows(sqlmock.NewRows([]string{"id", "code", "label", "description", "is_active"}))

		_, err := store.CarStatuses().GetByCode(ctx, domain.CarStatusRented)
		var cerr *domain.ConfigurationError
		assert.ErrorAs(t, err, &cerr)
	})
}
