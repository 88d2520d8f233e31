package postgres

import (
	"context"
	"database/sql"
	"errors"

	"carrental-backoffice/internal/domain"
)

type customerRepository struct {
	q dbtx
}

const customerColumns = `id, first_name, last_name, email, phone, license_number, notes, user_id, created_on, updated_on`

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	query := `INSERT INTO customers (first_name, last_name, email, phone, license_number, notes, user_id, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	return r.q.QueryRowContext(ctx, query,
		customer.FirstName, customer.LastName, customer.Email, customer.Phone,
		customer.LicenseNumber, customer.Notes, customer.UserID, customer.CreatedOn,
	).Scan(&customer.ID)
}

func (r *customerRepository) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	customer, err := r.scanOne(r.q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "customer", ID: id}
	}
	return customer, err
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE email = $1`
	customer, err := r.scanOne(r.q.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return customer, err
}

func (r *customerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	query := `UPDATE customers SET first_name=$1, last_name=$2, email=$3, phone=$4, license_number=$5, notes=$6, updated_on=$7 WHERE id=$8`
	_, err := r.q.ExecContext(ctx, query,
		customer.FirstName, customer.LastName, customer.Email, customer.Phone,
		customer.LicenseNumber, customer.Notes, customer.UpdatedOn, customer.ID,
	)
	return err
}

func (r *customerRepository) LinkUser(ctx context.Context, customerID, userID int32) error {
	_, err := r.q.ExecContext(ctx, `UPDATE customers SET user_id=$1, updated_on=NOW() WHERE id=$2`, userID, customerID)
	return err
}

func (r *customerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY last_name, first_name`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		var customer domain.Customer
		if err := rows.Scan(
			&customer.ID, &customer.FirstName, &customer.LastName, &customer.Email,
			&customer.Phone, &customer.LicenseNumber, &customer.Notes, &customer.UserID,
			&customer.CreatedOn, &customer.UpdatedOn,
		); err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}
	return customers, rows.Err()
}

func (r *customerRepository) scanOne(row *sql.Row) (*domain.Customer, error) {
	customer := &domain.Customer{}
	err := row.Scan(
		&customer.ID, &customer.FirstName, &customer.LastName, &customer.Email,
		&customer.Phone, &customer.LicenseNumber, &customer.Notes, &customer.UserID,
		&customer.CreatedOn, &customer.UpdatedOn,
	)
	if err != nil {
		return nil, err
	}
	return customer, nil
}
