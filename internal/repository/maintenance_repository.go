package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventology/recruiting-service/internal/domain"
)

// MaintenanceRepository supports destructive store-wide operations.
type MaintenanceRepository interface {
	// Wipe empties every collection and resets settings to the seed state.
	Wipe(ctx context.Context) error
}

type maintenanceRepository struct {
	pool     *pgxpool.Pool
	settings SettingsRepository
}

// NewMaintenanceRepository instantiates repository.
func NewMaintenanceRepository(pool *pgxpool.Pool, settings SettingsRepository) MaintenanceRepository {
	return &maintenanceRepository{pool: pool, settings: settings}
}

func (r *maintenanceRepository) Wipe(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `TRUNCATE users, applications, inquiries`); err != nil {
		return err
	}
	return r.settings.Save(ctx, domain.DefaultSettings())
}
