package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"carrental-backoffice/internal/repository"

	_ "github.com/lib/pq"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx so every repository can run
// inside or outside a transaction unchanged.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB // nil when the store is bound to a transaction

	users          repository.UserRepository
	customers      repository.CustomerRepository
	carStatuses    repository.CarStatusRepository
	cars           repository.CarRepository
	rentalRequests repository.RentalRequestRepository
	activityLogs   repository.ActivityLogRepository
	settings       repository.SettingRepository
}

func NewStore(db *sql.DB) *Store {
	s := newStoreWith(db)
	s.db = db
	return s
}

func newStoreWith(q dbtx) *Store {
	return &Store{
		users:          &userRepository{q: q},
		customers:      &customerRepository{q: q},
		carStatuses:    &carStatusRepository{q: q},
		cars:           &carRepository{q: q},
		rentalRequests: &rentalRequestRepository{q: q},
		activityLogs:   &activityLogRepository{q: q},
		settings:       &settingRepository{q: q},
	}
}

func (s *Store) Users() repository.UserRepository                   { return s.users }
func (s *Store) Customers() repository.CustomerRepository           { return s.customers }
func (s *Store) CarStatuses() repository.CarStatusRepository        { return s.carStatuses }
func (s *Store) Cars() repository.CarRepository                     { return s.cars }
func (s *Store) RentalRequests() repository.RentalRequestRepository { return s.rentalRequests }
func (s *Store) ActivityLogs() repository.ActivityLogRepository     { return s.activityLogs }
func (s *Store) Settings() repository.SettingRepository             { return s.settings }

// WithinTx runs fn against a transaction-bound store. Calls on an already
// transaction-bound store join the open transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(repository.Store) error) error {
	if s.db == nil {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	txStore := newStoreWith(tx)
	if err := fn(txStore); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback after %w: %v", err, rbErr)
		}
		return err
	}
	return tx.Commit()
}

// Open connects to PostgreSQL and verifies the connection.
func Open(connString string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}
