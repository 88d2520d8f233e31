package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"carrental-backoffice/internal/domain"
	"carrental-backoffice/internal/repository"
)

var rentalRows = []string{
	"id", "customer_id", "car_id", "start_date", "end_date", "status",
	"approved_at", "approved_by", "rejected_at", "rejected_by", "returned_at",
	"total_price_cents", "notes", "created_on", "updated_on",
}

func TestRentalRequestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	store := NewStore(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		req := &domain.RentalRequest{
			CustomerID: 5,
			CarID:      3,
			StartDate:  time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
			Status:     domain.RentalStatusPending,
			CreatedOn:  time.Now(),
		}

		mock.ExpectQuery("INSERT INTO rental_requests").
			WithArgs(req.CustomerID, req.CarID, req.StartDate, req.EndDate, req.Status,
				nil, nil, nil, req.Notes, req.CreatedOn).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

		err := store.RentalRequests().Create(ctx, req)
		assert.NoError(t, err)
		assert.Equal(t, int32(42), req.ID)
	})
}

func TestRentalRequestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	store := NewStore(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(rentalRows).
			AddRow(42, 5, 3, time.Now(), time.Now(), "pending", nil, nil, nil, nil, nil, nil, "", time.Now(), nil)

		mock.ExpectQuery(`SELECT (.+) FROM rental_requests WHERE id = \$1`).
			WithArgs(int32(42)).
			WillReturnRows(rows)

		req, err := store.RentalRequests().GetByID(ctx, 42)
		assert.NoError(t, err)
		assert.Equal(t, int32(42), req.ID)
		assert.Equal(t, domain.RentalStatusPending, req.Status)
		assert.Nil(t, req.ApprovedAt)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM rental_requests WHERE id = \$1`).
			WithArgs(int32(99)).
			WillReturnRows(sqlmock.NewRows(rentalRows))

		_, err := store.RentalRequests().GetByID(ctx, 99)
		var nfe *domain.NotFoundError
		assert.ErrorAs(t, err, &nfe)
		assert.Equal(t, "rental request", nfe.Entity)
	})
}

func TestRentalRequestRepository_ListApprovedOverlapping(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	store := NewStore(db)
	ctx := context.Background()
	start := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(rentalRows).
			AddRow(1, 5, 3, start, end, "approved", time.Now(), 9, nil, nil, nil, 15000, "", time.Now(), nil)

		mock.ExpectQuery(`SELECT (.+) FROM rental_requests`).
			WithArgs(domain.RentalStatusApproved, end, start).
			WillReturnRows(rows)

		reqs, err := store.RentalRequests().ListApprovedOverlapping(ctx, start, end)
		assert.NoError(t, err)
		assert.Len(t, reqs, 1)
		assert.Equal(t, int32(3), reqs[0].CarID)
	})
}

func TestRentalRequestRepository_ListCompletedBetween(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	store := NewStore(db)
	ctx := context.Background()

	t.Run("NoBounds", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM rental_requests`).
			WithArgs(domain.RentalStatusCompleted).
			WillReturnRows(sqlmock.NewRows(rentalRows))

		reqs, err := store.RentalRequests().ListCompletedBetween(ctx, nil, nil)
		assert.NoError(t, err)
		assert.Empty(t, reqs)
	})

	t.Run("BothBounds", func(t *testing.T) {
		from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)

		mock.ExpectQuery(`SELECT (.+) FROM rental_requests`).
			WithArgs(domain.RentalStatusCompleted, from, to).
			WillReturnRows(sqlmock.NewRows(rentalRows))

		_, err := store.RentalRequests().ListCompletedBetween(ctx, &from, &to)
		assert.NoError(t, err)
	})
}

func TestStore_WithinTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	store := NewStore(db)
	ctx := context.Background()

	t.Run("CommitOnSuccess", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM rental_requests").
			WithArgs(int32(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := store.WithinTx(ctx, func(tx repository.Store) error {
			return tx.RentalRequests().Delete(ctx, 42)
		})
		assert.NoError(t, err)
	})

	t.Run("RollbackOnError", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectRollback()

		err := store.WithinTx(ctx, func(tx repository.Store) error {
			return errors.New("boom")
		})
		assert.EqualError(t, err, "boom")
	})

	t.Run("NestedCallJoinsOpenTransaction", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM rental_requests").
			WithArgs(int32(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := store.WithinTx(ctx, func(tx repository.Store) error {
			// No second BEGIN expected.
			return tx.WithinTx(ctx, func(inner repository.Store) error {
				return inner.RentalRequests().Delete(ctx, 42)
			})
		})
		assert.NoError(t, err)
	})
}
