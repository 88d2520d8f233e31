package repository

import (
	"context"
	"time"

	"carrental-backoffice/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id int32) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) error
	LinkUser(ctx context.Context, customerID, userID int32) error
	List(ctx context.Context) ([]domain.Customer, error)
}

type CarStatusRepository interface {
	Create(ctx context.Context, status *domain.CarStatus) error
	GetByCode(ctx context.Context, code domain.CarStatusCode) (*domain.CarStatus, error)
	List(ctx context.Context) ([]domain.CarStatus, error)
}

type CarRepository interface {
	Create(ctx context.Context, car *domain.Car) error
	GetByID(ctx context.Context, id int32) (*domain.Car, error)
	Update(ctx context.Context, car *domain.Car) error
	UpdateStatus(ctx context.Context, carID, statusID int32) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context) ([]domain.Car, error)
	ListByStatusCode(ctx context.Context, code domain.CarStatusCode) ([]domain.Car, error)
	// HasApprovedRequests reports whether any rental request for the car has
	// ever reached the approved state.
	HasApprovedRequests(ctx context.Context, carID int32) (bool, error)
}

type RentalRequestRepository interface {
	Create(ctx context.Context, req *domain.RentalRequest) error
	GetByID(ctx context.Context, id int32) (*domain.RentalRequest, error)
	Update(ctx context.Context, req *domain.RentalRequest) error
	Delete(ctx context.Context, id int32) error
	ListByStatus(ctx context.Context, status domain.RentalStatus) ([]domain.RentalRequest, error)
	ListByCustomer(ctx context.Context, customerID int32) ([]domain.RentalRequest, error)
	// ListApprovedOverlapping returns active approved requests whose date
	// range intersects [start, end].
	ListApprovedOverlapping(ctx context.Context, start, end time.Time) ([]domain.RentalRequest, error)
	// ListOverdue returns active approved requests whose end date is before
	// asOf.
	ListOverdue(ctx context.Context, asOf time.Time) ([]domain.RentalRequest, error)
	ListCompletedBetween(ctx context.Context, from, to *time.Time) ([]domain.RentalRequest, error)
	ListActiveCreatedBetween(ctx context.Context, from, to time.Time) ([]domain.RentalRequest, error)
}

type ActivityLogRepository interface {
	Create(ctx context.Context, entry *domain.ActivityLog) error
	List(ctx context.Context, filter domain.ActivityLogFilter) ([]domain.ActivityLog, int32, error)
}

type SettingRepository interface {
	GetByKey(ctx context.Context, key string) (*domain.Setting, error)
	Upsert(ctx context.Context, setting *domain.Setting) error
	List(ctx context.Context) ([]domain.Setting, error)
}

// Store bundles the repositories with a transactional unit of work. WithinTx
// runs fn against a store bound to a single database transaction; the
// transaction commits iff fn returns nil.
type Store interface {
	Users() UserRepository
	Customers() CustomerRepository
	CarStatuses() CarStatusRepository
	Cars() CarRepository
	RentalRequests() RentalRequestRepository
	ActivityLogs() ActivityLogRepository
	Settings() SettingRepository
	WithinTx(ctx context.Context, fn func(Store) error) error
}
