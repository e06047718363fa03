package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventology/recruiting-service/internal/domain"
)

// InquiryRepository encapsulates inquiry persistence.
type InquiryRepository interface {
	Create(ctx context.Context, inquiry *domain.Inquiry) error
	UpdateStatus(ctx context.Context, id string, status domain.InquiryStatus) (*domain.Inquiry, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Inquiry, error)
}

type inquiryRepository struct {
	pool *pgxpool.Pool
}

// NewInquiryRepository instantiates repository.
func NewInquiryRepository(pool *pgxpool.Pool) InquiryRepository {
	return &inquiryRepository{pool: pool}
}

func (r *inquiryRepository) Create(ctx context.Context, inquiry *domain.Inquiry) error {
	const query = `
        INSERT INTO inquiries (name, company, email, message, status)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		inquiry.Name,
		inquiry.Company,
		inquiry.Email,
		inquiry.Message,
		inquiry.Status,
	).Scan(&inquiry.ID, &inquiry.CreatedAt)
}

func (r *inquiryRepository) UpdateStatus(ctx context.Context, id string, status domain.InquiryStatus) (*domain.Inquiry, error) {
	const query = `UPDATE inquiries SET status=$1 WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, ErrNotFound
	}

	const fetch = `
        SELECT id, name, company, email, message, status, created_at
        FROM inquiries WHERE id=$1`
	var inquiry domain.Inquiry
	if err := r.pool.QueryRow(ctx, fetch, id).Scan(
		&inquiry.ID,
		&inquiry.Name,
		&inquiry.Company,
		&inquiry.Email,
		&inquiry.Message,
		&inquiry.Status,
		&inquiry.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &inquiry, nil
}

func (r *inquiryRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM inquiries WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *inquiryRepository) List(ctx context.Context) ([]domain.Inquiry, error) {
	const query = `
        SELECT id, name, company, email, message, status, created_at
        FROM inquiries ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Inquiry
	for rows.Next() {
		var inquiry domain.Inquiry
		if err := rows.Scan(
			&inquiry.ID,
			&inquiry.Name,
			&inquiry.Company,
			&inquiry.Email,
			&inquiry.Message,
			&inquiry.Status,
			&inquiry.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, inquiry)
	}
	return result, rows.Err()
}
