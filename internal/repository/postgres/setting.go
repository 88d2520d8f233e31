package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"carrental-backoffice/internal/domain"
)

type settingRepository struct {
	q dbtx
}

func (r *settingRepository) GetByKey(ctx context.Context, key string) (*domain.Setting, error) {
	setting := &domain.Setting{}
	query := `SELECT id, setting_key, setting_value, setting_type, created_on, updated_on FROM settings WHERE setting_key = $1`
	err := r.q.QueryRowContext(ctx, query, key).Scan(
		&setting.ID, &setting.Key, &setting.Value, &setting.Type, &setting.CreatedOn, &setting.UpdatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return setting, nil
}

func (r *settingRepository) Upsert(ctx context.Context, setting *domain.Setting) error {
	query := `INSERT INTO settings (setting_key, setting_value, setting_type, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $4)
	          ON CONFLICT (setting_key) DO UPDATE SET setting_value = EXCLUDED.setting_value, setting_type = EXCLUDED.setting_type, updated_on = EXCLUDED.updated_on
	          RETURNING id`
	return r.q.QueryRowContext(ctx, query,
		setting.Key, setting.Value, setting.Type, time.Now(),
	).Scan(&setting.ID)
}

func (r *settingRepository) List(ctx context.Context) ([]domain.Setting, error) {
	query := `SELECT id, setting_key, setting_value, setting_type, created_on, updated_on FROM settings ORDER BY setting_key`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settings []domain.Setting
	for rows.Next() {
		var setting domain.Setting
		if err := rows.Scan(&setting.ID, &setting.Key, &setting.Value, &setting.Type, &setting.CreatedOn, &setting.UpdatedOn); err != nil {
			return nil, err
		}
		settings = append(settings, setting)
	}
	return settings, rows.Err()
}
