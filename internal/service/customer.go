package service

import (
	"context"
	"strings"
	"time"

	"carrental-backoffice/internal/domain"
	"carrental-backoffice/internal/logger"
	"carrental-backoffice/internal/repository"
)

type customerService struct {
	store    repository.Store
	activity ActivityService
	now      Clock
}

func NewCustomerService(store repository.Store, activity ActivityService, now Clock) CustomerService {
	if now == nil {
		now = time.Now
	}
	return &customerService{store: store, activity: activity, now: now}
}

// ResolveForUser finds the customer record for an authenticated user. Lookup
// order: linked record, then email match (linking it), then a bare record
// created from the account email.
func (s *customerService) ResolveForUser(ctx context.Context, user *domain.User) (*domain.Customer, error) {
	var customer *domain.Customer
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		existing, err := tx.Customers().GetByEmail(ctx, user.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			if existing.UserID == nil {
				if err := tx.Customers().LinkUser(ctx, existing.ID, user.ID); err != nil {
					return err
				}
				existing.UserID = &user.ID
				logger.Info("linked existing customer to user account",
					"customer_id", existing.ID, "user_id", user.ID)
			}
			customer = existing
			return nil
		}

		customer = &domain.Customer{
			Email:     user.Email,
			UserID:    &user.ID,
			CreatedOn: s.now(),
		}
		return tx.Customers().Create(ctx, customer)
	})
	if err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) FindOrCreate(ctx context.Context, actor domain.Actor, in CustomerInput) (*domain.Customer, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" {
		return nil, &domain.ValidationError{Field: "email", Reason: "email is required"}
	}

	existing, err := s.store.Customers().GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	customer := &domain.Customer{
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Email:         email,
		Phone:         in.Phone,
		LicenseNumber: in.LicenseNumber,
		Notes:         in.Notes,
		CreatedOn:     s.now(),
	}
	if err := s.store.Customers().Create(ctx, customer); err != nil {
		return nil, err
	}

	s.activity.Log(ctx, actor, domain.ActionCreateCustomer,
		"Created customer: "+customer.DisplayName(),
		map[string]any{"customer_id": customer.ID, "email": customer.Email})
	return customer, nil
}

func (s *customerService) Get(ctx context.Context, id int32) (*domain.Customer, error) {
	return s.store.Customers().GetByID(ctx, id)
}

func (s *customerService) List(ctx context.Context) ([]domain.Customer, error) {
	return s.store.Customers().List(ctx)
}

func (s *customerService) Update(ctx context.Context, actor domain.Actor, id int32, in CustomerInput) (*domain.Customer, error) {
	customer, err := s.store.Customers().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	customer.FirstName = in.FirstName
	customer.LastName = in.LastName
	if in.Email != "" {
		customer.Email = strings.TrimSpace(strings.ToLower(in.Email))
	}
	customer.Phone = in.Phone
	customer.LicenseNumber = in.LicenseNumber
	customer.Notes = in.Notes
	customer.UpdatedOn = &now
	if err := s.store.Customers().Update(ctx, customer); err != nil {
		return nil, err
	}

	s.activity.Log(ctx, actor, domain.ActionUpdateCustomer,
		"Updated customer: "+customer.DisplayName(),
		map[string]any{"customer_id": customer.ID, "email": customer.Email})
	return customer, nil
}
