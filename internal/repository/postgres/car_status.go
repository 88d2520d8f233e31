package postgres

import (
	"context"
	"database/sql"
	"errors"

	"carrental-backoffice/internal/domain"
)

type carStatusRepository struct {
	q dbtx
}

func (r *carStatusRepository) Create(ctx context.Context, status *domain.CarStatus) error {
	query := `INSERT INTO car_statuses (code, label, description, is_active)
	          VALUES ($1, $2, $3, $4)
	          ON CONFLICT (code) DO UPDATE SET label = EXCLUDED.label, description = EXCLUDED.description, is_active = EXCLUDED.is_active
	          RETURNING id`
	return r.q.QueryRowContext(ctx, query,
		status.Code, status.Label, status.Description, status.IsActive,
	).Scan(&status.ID)
}

func (r *carStatusRepository) GetByCode(ctx context.Context, code domain.CarStatusCode) (*domain.CarStatus, error) {
	status := &domain.CarStatus{}
	query := `SELECT id, code, label, description, is_active FROM car_statuses WHERE code = $1`
	err := r.q.QueryRowContext(ctx, query, code).Scan(
		&status.ID, &status.Code, &status.Label, &status.Description, &status.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.ConfigurationError{Missing: "car status " + string(code)}
	}
	if err != nil {
		return nil, err
	}
	return status, nil
}

func (r *carStatusRepository) List(ctx context.Context) ([]domain.CarStatus, error) {
	query := `SELECT id, code, label, description, is_active FROM car_statuses ORDER BY id`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statuses []domain.CarStatus
	for rows.Next() {
		var status domain.CarStatus
		if err := rows.Scan(&status.ID, &status.Code, &status.Label, &status.Description, &status.IsActive); err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, rows.Err()
}
