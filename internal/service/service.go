package service

import (
	"context"
	"time"

	"carrental-backoffice/internal/domain"
)

// Clock supplies "now" so lifecycle timestamps are deterministic in tests.
type Clock func() time.Time

type CreateRentalInput struct {
	CustomerID int32
	CarID      int32
	StartDate  time.Time
	EndDate    time.Time
	Notes      string
}

// RentalEdit carries the staff-editable fields; nil means "leave unchanged".
// Car-status side effects are derived from the resulting diff, never passed
// in directly.
type RentalEdit struct {
	CustomerID *int32
	CarID      *int32
	Status     *domain.RentalStatus
	StartDate  *time.Time
	EndDate    *time.Time
	Notes      *string
}

// WalkInStats summarizes completed walk-in history for the staff dashboard.
type WalkInStats struct {
	Rentals           []domain.RentalRequest
	TotalRevenueCents int64
	AverageDays       float64
}

type RentalService interface {
	Create(ctx context.Context, actor domain.Actor, in CreateRentalInput) (*domain.RentalRequest, error)
	// CreateWalkIn creates an immediately approved request, prices it from the
	// car's daily rate over the inclusive day count, and marks the car rented.
	CreateWalkIn(ctx context.Context, actor domain.Actor, in CreateRentalInput) (*domain.RentalRequest, error)
	Approve(ctx context.Context, actor domain.Actor, requestID int32) (*domain.RentalRequest, error)
	Reject(ctx context.Context, actor domain.Actor, requestID int32) (*domain.RentalRequest, error)
	Edit(ctx context.Context, actor domain.Actor, requestID int32, edit RentalEdit) (*domain.RentalRequest, error)
	Complete(ctx context.Context, actor domain.Actor, requestID int32, returnNotes string) (*domain.RentalRequest, error)
	Delete(ctx context.Context, actor domain.Actor, requestID int32) error

	Get(ctx context.Context, requestID int32) (*domain.RentalRequest, error)
	ListByStatus(ctx context.Context, status domain.RentalStatus) ([]domain.RentalRequest, error)
	// AvailableCars returns cars with status "available" that no active
	// approved request occupies during [start, end].
	AvailableCars(ctx context.Context, start, end time.Time) ([]domain.Car, error)
	TodayActiveWalkIns(ctx context.Context) ([]domain.RentalRequest, error)
	CompletedHistory(ctx context.Context, from, to *time.Time) (*WalkInStats, error)
}

type CarInput struct {
	Make        string
	Model       string
	Description string
	Year        int32
	PriceCents  int32
	Image       string
}

type FleetService interface {
	CreateCar(ctx context.Context, actor domain.Actor, in CarInput) (*domain.Car, error)
	UpdateCar(ctx context.Context, actor domain.Actor, carID int32, in CarInput) (*domain.Car, error)
	// SetStatus assigns a status code; unknown or inactive codes fail with
	// InvalidStatusError.
	SetStatus(ctx context.Context, actor domain.Actor, carID int32, code domain.CarStatusCode) (*domain.Car, error)
	DisableCar(ctx context.Context, actor domain.Actor, carID int32) (*domain.Car, error)
	EnableCar(ctx context.Context, actor domain.Actor, carID int32) (*domain.Car, error)
	DeleteCar(ctx context.Context, actor domain.Actor, carID int32) error

	CanBeDisabled(ctx context.Context, carID int32) (bool, error)
	CanBeDeleted(ctx context.Context, carID int32) (bool, error)
	CanBeEnabled(ctx context.Context, carID int32) (bool, error)

	GetCar(ctx context.Context, carID int32) (*domain.Car, error)
	ListCars(ctx context.Context) ([]domain.Car, error)
	ListStatuses(ctx context.Context) ([]domain.CarStatus, error)
	// SeedStatuses ensures the built-in status catalog rows exist.
	SeedStatuses(ctx context.Context) error
}

// ActivityService records the audit trail. Log never returns an error:
// audit persistence is best-effort after the primary mutation has committed,
// and failures are reported to operators instead of the caller.
type ActivityService interface {
	Log(ctx context.Context, actor domain.Actor, action, description string, target map[string]any)
	List(ctx context.Context, filter domain.ActivityLogFilter) ([]domain.ActivityLog, int32, error)
}

type SettingsService interface {
	Get(ctx context.Context, key string, def any) any
	GetString(ctx context.Context, key, def string) string
	GetBool(ctx context.Context, key string, def bool) bool
	GetInt(ctx context.Context, key string, def int) int
	GetFloat(ctx context.Context, key string, def float64) float64
	Set(ctx context.Context, actor domain.Actor, key, value string, typ domain.SettingType) error
	All(ctx context.Context) map[string]any
	ClearCache()
	InitializeDefaults(ctx context.Context) error

	MaintenanceMode(ctx context.Context) bool
	CurrencySymbol(ctx context.Context) string
	TaxRatePercent(ctx context.Context) float64
	RentalBufferHours(ctx context.Context) int
	AdvanceNoticeHours(ctx context.Context) int
	AdminAlertAddress(ctx context.Context) string
}

type CustomerInput struct {
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	LicenseNumber string
	Notes         string
}

type CustomerService interface {
	// ResolveForUser finds the customer tied to the user, falling back to an
	// email match (linking it when unlinked) and creating a bare record when
	// none exists.
	ResolveForUser(ctx context.Context, user *domain.User) (*domain.Customer, error)
	// FindOrCreate returns the customer with the given email or creates one.
	FindOrCreate(ctx context.Context, actor domain.Actor, in CustomerInput) (*domain.Customer, error)
	Get(ctx context.Context, id int32) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	Update(ctx context.Context, actor domain.Actor, id int32, in CustomerInput) (*domain.Customer, error)
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login returns an access token on success.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

type EmailService interface {
	// SendOpsAlert notifies the operational channel (admin alert address).
	SendOpsAlert(ctx context.Context, subject, body string) error
	SendRentalStatusEmail(ctx context.Context, toEmail, toName string, req *domain.RentalRequest, car *domain.Car) error
}
