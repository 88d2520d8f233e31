package postgres

import (
	"context"
	"database/sql"
	"errors"

	"carrental-backoffice/internal/domain"
)

type carRepository struct {
	q dbtx
}

const carColumns = `c.id, c.make, c.model, c.description, c.year, c.price_cents, c.status_id, cs.code, c.image, c.updated_on`

func (r *carRepository) Create(ctx context.Context, car *domain.Car) error {
	query := `INSERT INTO cars (make, model, description, year, price_cents, status_id, image)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	return r.q.QueryRowContext(ctx, query,
		car.Make, car.Model, car.Description, car.Year, car.PriceCents, car.StatusID, car.Image,
	).Scan(&car.ID)
}

func (r *carRepository) GetByID(ctx context.Context, id int32) (*domain.Car, error) {
	car := &domain.Car{}
	query := `SELECT ` + carColumns + ` FROM cars c JOIN car_statuses cs ON cs.id = c.status_id WHERE c.id = $1`
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&car.ID, &car.Make, &car.Model, &car.Description, &car.Year,
		&car.PriceCents, &car.StatusID, &car.StatusCode, &car.Image, &car.UpdatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "car", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return car, nil
}

func (r *carRepository) Update(ctx context.Context, car *domain.Car) error {
	query := `UPDATE cars SET make=$1, model=$2, description=$3, year=$4, price_cents=$5, image=$6, updated_on=$7 WHERE id=$8`
	_, err := r.q.ExecContext(ctx, query,
		car.Make, car.Model, car.Description, car.Year, car.PriceCents, car.Image, car.UpdatedOn, car.ID,
	)
	return err
}

func (r *carRepository) UpdateStatus(ctx context.Context, carID, statusID int32) error {
	query := `UPDATE cars SET status_id=$1, updated_on=NOW() WHERE id=$2`
	res, err := r.q.ExecContext(ctx, query, statusID, carID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &domain.NotFoundError{Entity: "car", ID: carID}
	}
	return nil
}

func (r *carRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM cars WHERE id=$1`, id)
	return err
}

func (r *carRepository) List(ctx context.Context) ([]domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars c JOIN car_statuses cs ON cs.id = c.status_id ORDER BY c.make, c.model`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCars(rows)
}

func (r *carRepository) ListByStatusCode(ctx context.Context, code domain.CarStatusCode) ([]domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars c JOIN car_statuses cs ON cs.id = c.status_id
	          WHERE cs.code = $1 ORDER BY c.make, c.model`
	rows, err := r.q.QueryContext(ctx, query, code)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCars(rows)
}

func (r *carRepository) HasApprovedRequests(ctx context.Context, carID int32) (bool, error) {
	query := `SELECT EXISTS (
	            SELECT 1 FROM rental_requests WHERE car_id = $1 AND approved_at IS NOT NULL
	          )`
	var exists bool
	if err := r.q.QueryRowContext(ctx, query, carID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func scanCars(rows *sql.Rows) ([]domain.Car, error) {
	var cars []domain.Car
	for rows.Next() {
		var car domain.Car
		if err := rows.Scan(
			&car.ID, &car.Make, &car.Model, &car.Description, &car.Year,
			&car.PriceCents, &car.StatusID, &car.StatusCode, &car.Image, &car.UpdatedOn,
		); err != nil {
			return nil, err
		}
		cars = append(cars, car)
	}
	return cars, rows.Err()
}
