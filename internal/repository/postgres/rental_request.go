package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"carrental-backoffice/internal/domain"
)

type rentalRequestRepository struct {
	q dbtx
}

const rentalColumns = `id, customer_id, car_id, start_date, end_date, status, approved_at, approved_by,
	rejected_at, rejected_by, returned_at, total_price_cents, notes, created_on, updated_on`

func (r *rentalRequestRepository) Create(ctx context.Context, req *domain.RentalRequest) error {
	query := `INSERT INTO rental_requests (customer_id, car_id, start_date, end_date, status, approved_at, approved_by, total_price_cents, notes, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	return r.q.QueryRowContext(ctx, query,
		req.CustomerID, req.CarID, req.StartDate, req.EndDate, req.Status,
		req.ApprovedAt, req.ApprovedBy, req.TotalPriceCents, req.Notes, req.CreatedOn,
	).Scan(&req.ID)
}

func (r *rentalRequestRepository) GetByID(ctx context.Context, id int32) (*domain.RentalRequest, error) {
	req := &domain.RentalRequest{}
	query := `SELECT ` + rentalColumns + ` FROM rental_requests WHERE id = $1`
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&req.ID, &req.CustomerID, &req.CarID, &req.StartDate, &req.EndDate, &req.Status,
		&req.ApprovedAt, &req.ApprovedBy, &req.RejectedAt, &req.RejectedBy, &req.ReturnedAt,
		&req.TotalPriceCents, &req.Notes, &req.CreatedOn, &req.UpdatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "rental request", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *rentalRequestRepository) Update(ctx context.Context, req *domain.RentalRequest) error {
	query := `UPDATE rental_requests SET customer_id=$1, car_id=$2, start_date=$3, end_date=$4, status=$5,
	          approved_at=$6, approved_by=$7, rejected_at=$8, rejected_by=$9, returned_at=$10,
	          total_price_cents=$11, notes=$12, updated_on=$13 WHERE id=$14`
	_, err := r.q.ExecContext(ctx, query,
		req.CustomerID, req.CarID, req.StartDate, req.EndDate, req.Status,
		req.ApprovedAt, req.ApprovedBy, req.RejectedAt, req.RejectedBy, req.ReturnedAt,
		req.TotalPriceCents, req.Notes, req.UpdatedOn, req.ID,
	)
	return err
}

func (r *rentalRequestRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM rental_requests WHERE id=$1`, id)
	return err
}

func (r *rentalRequestRepository) ListByStatus(ctx context.Context, status domain.RentalStatus) ([]domain.RentalRequest, error) {
	query := `SELECT ` + rentalColumns + ` FROM rental_requests WHERE status = $1 ORDER BY created_on DESC`
	return r.list(ctx, query, status)
}

func (r *rentalRequestRepository) ListByCustomer(ctx context.Context, customerID int32) ([]domain.RentalRequest, error) {
	query := `SELECT ` + rentalColumns + ` FROM rental_requests WHERE customer_id = $1 ORDER BY created_on DESC`
	return r.list(ctx, query, customerID)
}

func (r *rentalRequestRepository) ListApprovedOverlapping(ctx context.Context, start, end time.Time) ([]domain.RentalRequest, error) {
	query := `SELECT ` + rentalColumns + ` FROM rental_requests
	          WHERE status = $1 AND returned_at IS NULL AND start_date <= $2 AND end_date >= $3
	          ORDER BY start_date`
	return r.list(ctx, query, domain.RentalStatusApproved, end, start)
}

func (r *rentalRequestRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.RentalRequest, error) {
	query := `SELECT ` + rentalColumns + ` FROM rental_requests
	          WHERE status = $1 AND returned_at IS NULL AND end_date < $2
	          ORDER BY end_date`
	return r.list(ctx, query, domain.RentalStatusApproved, asOf)
}

func (r *rentalRequestRepository) ListCompletedBetween(ctx context.Context, from, to *time.Time) ([]domain.RentalRequest, error) {
	query := `SELECT ` + rentalColumns + ` FROM rental_requests
	          WHERE status = $1 AND returned_at IS NOT NULL`
	args := []any{domain.RentalStatusCompleted}
	if from != nil {
		args = append(args, *from)
		query += ` AND returned_at >= $2`
	}
	if to != nil {
		args = append(args, *to)
		if from != nil {
			query += ` AND returned_at <= $3`
		} else {
			query += ` AND returned_at <= $2`
		}
	}
	query += ` ORDER BY returned_at DESC`
	return r.list(ctx, query, args...)
}

func (r *rentalRequestRepository) ListActiveCreatedBetween(ctx context.Context, from, to time.Time) ([]domain.RentalRequest, error) {
	query := `SELECT ` + rentalColumns + ` FROM rental_requests
	          WHERE status = $1 AND returned_at IS NULL AND created_on >= $2 AND created_on < $3
	          ORDER BY created_on DESC`
	return r.list(ctx, query, domain.RentalStatusApproved, from, to)
}

func (r *rentalRequestRepository) list(ctx context.Context, query string, args ...any) ([]domain.RentalRequest, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.RentalRequest
	for rows.Next() {
		var req domain.RentalRequest
		if err := rows.Scan(
			&req.ID, &req.CustomerID, &req.CarID, &req.StartDate, &req.EndDate, &req.Status,
			&req.ApprovedAt, &req.ApprovedBy, &req.RejectedAt, &req.RejectedBy, &req.ReturnedAt,
			&req.TotalPriceCents, &req.Notes, &req.CreatedOn, &req.UpdatedOn,
		); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}
