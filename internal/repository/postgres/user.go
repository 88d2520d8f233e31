package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"carrental-backoffice/internal/domain"
)

type userRepository struct {
	q dbtx
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (email, password_hash, roles, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	now := time.Now()
	return r.q.QueryRowContext(ctx, query,
		user.Email, user.PasswordHash, joinRoles(user.Roles), now, now,
	).Scan(&user.ID)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	query := `SELECT id, email, password_hash, roles, created_on, updated_on FROM users WHERE id = $1`
	user, err := r.scanOne(r.q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "user", ID: id}
	}
	return user, err
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, email, password_hash, roles, created_on, updated_on FROM users WHERE email = $1`
	user, err := r.scanOne(r.q.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return user, err
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `UPDATE users SET email=$1, password_hash=$2, roles=$3, updated_on=$4 WHERE id=$5`
	_, err := r.q.ExecContext(ctx, query,
		user.Email, user.PasswordHash, joinRoles(user.Roles), time.Now(), user.ID,
	)
	return err
}

func (r *userRepository) scanOne(row *sql.Row) (*domain.User, error) {
	user := &domain.User{}
	var roles string
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &roles, &user.CreatedOn, &user.UpdatedOn)
	if err != nil {
		return nil, err
	}
	user.Roles = splitRoles(roles)
	return user, nil
}

func joinRoles(roles []domain.Role) string {
	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = string(r)
	}
	return strings.Join(parts, ",")
}

func splitRoles(raw string) []domain.Role {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	roles := make([]domain.Role, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			roles = append(roles, domain.Role(p))
		}
	}
	return roles
}
