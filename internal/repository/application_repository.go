package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventology/recruiting-service/internal/domain"
)

// ApplicationRepository encapsulates application persistence.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) (*domain.Application, error)
	GetByID(ctx context.Context, id string) (*domain.Application, error)
	List(ctx context.Context) ([]domain.Application, error)
}

type applicationRepository struct {
	pool *pgxpool.Pool
}

// NewApplicationRepository instantiates repository.
func NewApplicationRepository(pool *pgxpool.Pool) ApplicationRepository {
	return &applicationRepository{pool: pool}
}

func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) error {
	const query = `
        INSERT INTO applications (name, email, phone, type, university, age, motivation, specialty, portfolio, experience, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		app.Name,
		app.Email,
		app.Phone,
		app.Type,
		app.University,
		app.Age,
		app.Motivation,
		app.Specialty,
		app.Portfolio,
		app.Experience,
		app.Status,
	).Scan(&app.ID, &app.CreatedAt)
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) (*domain.Application, error) {
	const query = `UPDATE applications SET status=$1 WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	const query = `
        SELECT id, name, email, phone, type, university, age, motivation, specialty, portfolio, experience, status, created_at
        FROM applications WHERE id=$1`

	var app domain.Application
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&app.ID,
		&app.Name,
		&app.Email,
		&app.Phone,
		&app.Type,
		&app.University,
		&app.Age,
		&app.Motivation,
		&app.Specialty,
		&app.Portfolio,
		&app.Experience,
		&app.Status,
		&app.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) List(ctx context.Context) ([]domain.Application, error) {
	const query = `
        SELECT id, name, email, phone, type, university, age, motivation, specialty, portfolio, experience, status, created_at
        FROM applications ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Application
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(
			&app.ID,
			&app.Name,
			&app.Email,
			&app.Phone,
			&app.Type,
			&app.University,
			&app.Age,
			&app.Motivation,
			&app.Specialty,
			&app.Portfolio,
			&app.Experience,
			&app.Status,
			&app.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, app)
	}
	return result, rows.Err()
}
