package postgres

import (
	"context"
	"fmt"

	"carrental-backoffice/internal/domain"
)

type activityLogRepository struct {
	q dbtx
}

// Create appends one immutable row. There is deliberately no update or
// delete path for activity logs.
func (r *activityLogRepository) Create(ctx context.Context, entry *domain.ActivityLog) error {
	query := `INSERT INTO activity_logs (event_id, user_id, username, user_roles, user_type, action, description, target_data, ip_address, user_agent, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	return r.q.QueryRowContext(ctx, query,
		entry.EventID, entry.UserID, entry.Username, entry.UserRoles, entry.UserType,
		entry.Action, entry.Description, entry.TargetData, entry.IPAddress, entry.UserAgent,
		entry.CreatedOn,
	).Scan(&entry.ID)
}

func (r *activityLogRepository) List(ctx context.Context, filter domain.ActivityLogFilter) ([]domain.ActivityLog, int32, error) {
	base := `FROM activity_logs WHERE 1=1`
	args := []any{}
	argIdx := 1

	if filter.Action != "" {
		base += fmt.Sprintf(" AND action = $%d", argIdx)
		args = append(args, filter.Action)
		argIdx++
	}
	if filter.UserType != "" {
		base += fmt.Sprintf(" AND user_type = $%d", argIdx)
		args = append(args, filter.UserType)
		argIdx++
	}
	if filter.From != nil {
		base += fmt.Sprintf(" AND created_on >= $%d", argIdx)
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		base += fmt.Sprintf(" AND created_on <= $%d", argIdx)
		args = append(args, *filter.To)
		argIdx++
	}

	var count int32
	if err := r.q.QueryRowContext(ctx, "SELECT count(*) "+base, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 50
	}

	query := `SELECT id, event_id, user_id, username, user_roles, user_type, action, description, target_data, ip_address, user_agent, created_on ` +
		base + fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []domain.ActivityLog
	for rows.Next() {
		var entry domain.ActivityLog
		if err := rows.Scan(
			&entry.ID, &entry.EventID, &entry.UserID, &entry.Username, &entry.UserRoles,
			&entry.UserType, &entry.Action, &entry.Description, &entry.TargetData,
			&entry.IPAddress, &entry.UserAgent, &entry.CreatedOn,
		); err != nil {
			return nil, 0, err
		}
		entries = append(entries, entry)
	}
	return entries, count, rows.Err()
}
