package service

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"carrental-backoffice/internal/domain"
	"carrental-backoffice/internal/repository"
	"carrental-backoffice/internal/security"
)

type authService struct {
	store     repository.Store
	tokens    security.TokenManager
	customers CustomerService
	activity  ActivityService
}

func NewAuthService(store repository.Store, tokens security.TokenManager, customers CustomerService, activity ActivityService) AuthService {
	return &authService{store: store, tokens: tokens, customers: customers, activity: activity}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" {
		return nil, &domain.ValidationError{Field: "email", Reason: "email is required"}
	}
	if len(in.Password) < 8 {
		return nil, &domain.ValidationError{Field: "password", Reason: "password must be at least 8 characters"}
	}

	existing, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &domain.ValidationError{Field: "email", Reason: "an account with this email already exists"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Roles:        []domain.Role{domain.RoleUser},
	}
	if err := s.store.Users().Create(ctx, user); err != nil {
		return nil, err
	}

	// Registration adopts any pre-existing walk-in customer record with the
	// same email.
	if _, err := s.customers.ResolveForUser(ctx, user); err != nil {
		return nil, err
	}

	actor := domain.AuthenticatedActor(user.ID, user.Email, user.Roles)
	s.activity.Log(ctx, actor, domain.ActionUserRegister,
		"New account registered: "+user.Email,
		map[string]any{"user_id": user.ID, "email": user.Email})
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	user, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, &domain.ValidationError{Field: "credentials", Reason: "invalid email or password"}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, &domain.ValidationError{Field: "credentials", Reason: "invalid email or password"}
	}

	roles := make([]string, len(user.Roles))
	for i, r := range user.Roles {
		roles[i] = string(r)
	}
	token, err := s.tokens.GenerateAccessToken(user.ID, user.Email, roles)
	if err != nil {
		return "", nil, err
	}

	actor := domain.AuthenticatedActor(user.ID, user.Email, user.Roles)
	s.activity.Log(ctx, actor, domain.ActionUserLogin,
		"User logged in: "+user.Email,
		map[string]any{"user_id": user.ID})
	return token, user, nil
}
