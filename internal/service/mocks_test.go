package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"carrental-backoffice/internal/domain"
	"carrental-backoffice/internal/repository"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockCustomerRepo
type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) Create(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}
func (m *MockCustomerRepo) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) Update(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}
func (m *MockCustomerRepo) LinkUser(ctx context.Context, customerID, userID int32) error {
	args := m.Called(ctx, customerID, userID)
	return args.Error(0)
}
func (m *MockCustomerRepo) List(ctx context.Context) ([]domain.Customer, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Customer), args.Error(1)
}

// MockCarStatusRepo
type MockCarStatusRepo struct {
	mock.Mock
}

func (m *MockCarStatusRepo) Create(ctx context.Context, status *domain.CarStatus) error {
	args := m.Called(ctx, status)
	return args.Error(0)
}
func (m *MockCarStatusRepo) GetByCode(ctx context.Context, code domain.CarStatusCode) (*domain.CarStatus, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CarStatus), args.Error(1)
}
func (m *MockCarStatusRepo) List(ctx context.Context) ([]domain.CarStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.CarStatus), args.Error(1)
}

// MockCarRepo
type MockCarRepo struct {
	mock.Mock
}

func (m *MockCarRepo) Create(ctx context.Context, car *domain.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}
func (m *MockCarRepo) GetByID(ctx context.Context, id int32) (*domain.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}
func (m *MockCarRepo) Update(ctx context.Context, car *domain.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}
func (m *MockCarRepo) UpdateStatus(ctx context.Context, carID, statusID int32) error {
	args := m.Called(ctx, carID, statusID)
	return args.Error(0)
}
func (m *MockCarRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockCarRepo) List(ctx context.Context) ([]domain.Car, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Car), args.Error(1)
}
func (m *MockCarRepo) ListByStatusCode(ctx context.Context, code domain.CarStatusCode) ([]domain.Car, error) {
	args := m.Called(ctx, code)
	return args.Get(0).([]domain.Car), args.Error(1)
}
func (m *MockCarRepo) HasApprovedRequests(ctx context.Context, carID int32) (bool, error) {
	args := m.Called(ctx, carID)
	return args.Bool(0), args.Error(1)
}

// MockRentalRequestRepo
type MockRentalRequestRepo struct {
	mock.Mock
}

func (m *MockRentalRequestRepo) Create(ctx context.Context, req *domain.RentalRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockRentalRequestRepo) GetByID(ctx context.Context, id int32) (*domain.RentalRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalRequest), args.Error(1)
}
func (m *MockRentalRequestRepo) Update(ctx context.Context, req *domain.RentalRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockRentalRequestRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockRentalRequestRepo) ListByStatus(ctx context.Context, status domain.RentalStatus) ([]domain.RentalRequest, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.RentalRequest), args.Error(1)
}
func (m *MockRentalRequestRepo) ListByCustomer(ctx context.Context, customerID int32) ([]domain.RentalRequest, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]domain.RentalRequest), args.Error(1)
}
func (m *MockRentalRequestRepo) ListApprovedOverlapping(ctx context.Context, start, end time.Time) ([]domain.RentalRequest, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).([]domain.RentalRequest), args.Error(1)
}
func (m *MockRentalRequestRepo) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.RentalRequest, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]domain.RentalRequest), args.Error(1)
}
func (m *MockRentalRequestRepo) ListCompletedBetween(ctx context.Context, from, to *time.Time) ([]domain.RentalRequest, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]domain.RentalRequest), args.Error(1)
}
func (m *MockRentalRequestRepo) ListActiveCreatedBetween(ctx context.Context, from, to time.Time) ([]domain.RentalRequest, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]domain.RentalRequest), args.Error(1)
}

// MockActivityLogRepo
type MockActivityLogRepo struct {
	mock.Mock
}

func (m *MockActivityLogRepo) Create(ctx context.Context, entry *domain.ActivityLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockActivityLogRepo) List(ctx context.Context, filter domain.ActivityLogFilter) ([]domain.ActivityLog, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.ActivityLog), args.Get(1).(int32), args.Error(2)
}

// MockSettingRepo
type MockSettingRepo struct {
	mock.Mock
}

func (m *MockSettingRepo) GetByKey(ctx context.Context, key string) (*domain.Setting, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Setting), args.Error(1)
}
func (m *MockSettingRepo) Upsert(ctx context.Context, setting *domain.Setting) error {
	args := m.Called(ctx, setting)
	return args.Error(0)
}
func (m *MockSettingRepo) List(ctx context.Context) ([]domain.Setting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Setting), args.Error(1)
}

// mockStore hands out the repos above and runs WithinTx callbacks against
// itself, matching the join-open-transaction behavior of the real store.
type mockStore struct {
	users          *MockUserRepo
	customers      *MockCustomerRepo
	carStatuses    *MockCarStatusRepo
	cars           *MockCarRepo
	rentalRequests *MockRentalRequestRepo
	activityLogs   *MockActivityLogRepo
	settings       *MockSettingRepo
}

func newMockStore() *mockStore {
	return &mockStore{
		users:          &MockUserRepo{},
		customers:      &MockCustomerRepo{},
		carStatuses:    &MockCarStatusRepo{},
		cars:           &MockCarRepo{},
		rentalRequests: &MockRentalRequestRepo{},
		activityLogs:   &MockActivityLogRepo{},
		settings:       &MockSettingRepo{},
	}
}

func (s *mockStore) Users() repository.UserRepository                   { return s.users }
func (s *mockStore) Customers() repository.CustomerRepository           { return s.customers }
func (s *mockStore) CarStatuses() repository.CarStatusRepository        { return s.carStatuses }
func (s *mockStore) Cars() repository.CarRepository                     { return s.cars }
func (s *mockStore) RentalRequests() repository.RentalRequestRepository { return s.rentalRequests }
func (s *mockStore) ActivityLogs() repository.ActivityLogRepository     { return s.activityLogs }
func (s *mockStore) Settings() repository.SettingRepository             { return s.settings }
func (s *mockStore) WithinTx(ctx context.Context, fn func(repository.Store) error) error {
	return fn(s)
}

// recordedEntry captures one audit call for assertions.
type recordedEntry struct {
	Actor       domain.Actor
	Action      string
	Description string
	Target      map[string]any
}

// recordingActivity is an in-memory ActivityService.
type recordingActivity struct {
	entries []recordedEntry
}

func (a *recordingActivity) Log(ctx context.Context, actor domain.Actor, action, description string, target map[string]any) {
	a.entries = append(a.entries, recordedEntry{Actor: actor, Action: action, Description: description, Target: target})
}

func (a *recordingActivity) List(ctx context.Context, filter domain.ActivityLogFilter) ([]domain.ActivityLog, int32, error) {
	return nil, 0, nil
}

// stubSettings returns fixed values without touching storage.
type stubSettings struct {
	maintenanceMode    bool
	advanceNoticeHours int
}

func (s *stubSettings) Get(ctx context.Context, key string, def any) any { return def }
func (s *stubSettings) GetString(ctx context.Context, key, def string) string {
	return def
}
func (s *stubSettings) GetBool(ctx context.Context, key string, def bool) bool { return def }
func (s *stubSettings) GetInt(ctx context.Context, key string, def int) int    { return def }
func (s *stubSettings) GetFloat(ctx context.Context, key string, def float64) float64 {
	return def
}
func (s *stubSettings) Set(ctx context.Context, actor domain.Actor, key, value string, typ domain.SettingType) error {
	return nil
}
func (s *stubSettings) All(ctx context.Context) map[string]any          { return nil }
func (s *stubSettings) ClearCache()                                     {}
func (s *stubSettings) InitializeDefaults(ctx context.Context) error    { return nil }
func (s *stubSettings) MaintenanceMode(ctx context.Context) bool        { return s.maintenanceMode }
func (s *stubSettings) CurrencySymbol(ctx context.Context) string       { return "$" }
func (s *stubSettings) TaxRatePercent(ctx context.Context) float64      { return 10.0 }
func (s *stubSettings) RentalBufferHours(ctx context.Context) int       { return 2 }
func (s *stubSettings) AdvanceNoticeHours(ctx context.Context) int      { return s.advanceNoticeHours }
func (s *stubSettings) AdminAlertAddress(ctx context.Context) string    { return "admin@example.com" }

// MockEmail
type MockEmail struct {
	mock.Mock
}

func (m *MockEmail) SendOpsAlert(ctx context.Context, subject, body string) error {
	args := m.Called(ctx, subject, body)
	return args.Error(0)
}
func (m *MockEmail) SendRentalStatusEmail(ctx context.Context, toEmail, toName string, req *domain.RentalRequest, car *domain.Car) error {
	args := m.Called(ctx, toEmail, toName, req, car)
	return args.Error(0)
}
