package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventology/recruiting-service/internal/domain"
)

// SettingsRepository stores the singleton system settings record.
type SettingsRepository interface {
	Get(ctx context.Context) (domain.SystemSettings, error)
	Save(ctx context.Context, settings domain.SystemSettings) error
}

type settingsRepository struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository instantiates repository.
func NewSettingsRepository(pool *pgxpool.Pool) SettingsRepository {
	return &settingsRepository{pool: pool}
}

func (r *settingsRepository) Get(ctx context.Context) (domain.SystemSettings, error) {
	const query = `SELECT forms_enabled FROM system_settings WHERE id=1`

	var settings domain.SystemSettings
	if err := r.pool.QueryRow(ctx, query).Scan(&settings.FormsEnabled); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DefaultSettings(), nil
		}
		return domain.SystemSettings{}, err
	}
	return settings, nil
}

func (r *settingsRepository) Save(ctx context.Context, settings domain.SystemSettings) error {
	const query = `
        INSERT INTO system_settings (id, forms_enabled, updated_at)
        VALUES (1, $1, NOW())
        ON CONFLICT (id) DO UPDATE SET forms_enabled=EXCLUDED.forms_enabled, updated_at=NOW()`

	_, err := r.pool.Exec(ctx, query, settings.FormsEnabled)
	return err
}
