package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"finhealth/pkg/models"
)

// CompanyRepo provides storage for company records
type CompanyRepo struct {
	pool *pgxpool.Pool
}

// NewCompanyRepo creates a new company repository
func NewCompanyRepo(pool *pgxpool.Pool) *CompanyRepo {
	return &CompanyRepo{pool: pool}
}

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = fmt.Errorf("not found")

func (r *CompanyRepo) Create(ctx context.Context, c *models.Company) error {
	if r.pool == nil {
		return fmt.Errorf("database pool not configured")
	}

	query := `
		INSERT INTO companies (name, registration_number, industry, email, phone, address)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		c.Name, c.RegistrationNumber, string(c.Industry), c.Email, c.Phone, c.Address,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}
	return nil
}

func (r *CompanyRepo) GetByID(ctx context.Context, id int) (*models.Company, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("database pool not configured")
	}

	query := `
		SELECT id, name, registration_number, industry, email, phone, address, created_at, updated_at
		FROM companies
		WHERE id = $1
	`
	var c models.Company
	var industry string
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.RegistrationNumber, &industry,
		&c.Email, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	c.Industry = models.IndustryType(industry)
	return &c, nil
}

func (r *CompanyRepo) List(ctx context.Context) ([]*models.Company, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("database pool not configured")
	}

	query := `
		SELECT id, name, registration_number, industry, email, phone, address, created_at, updated_at
		FROM companies
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var companies []*models.Company
	for rows.Next() {
		var c models.Company
		var industry string
		if err := rows.Scan(
			&c.ID, &c.Name, &c.RegistrationNumber, &industry,
			&c.Email, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan company row: %w", err)
		}
		c.Industry = models.IndustryType(industry)
		companies = append(companies, &c)
	}
	return companies, rows.Err()
}

func (r *CompanyRepo) Update(ctx context.Context, c *models.Company) error {
	if r.pool == nil {
		return fmt.Errorf("database pool not configured")
	}

	query := `
		UPDATE companies
		SET name = $2, registration_number = $3, industry = $4,
			email = $5, phone = $6, address = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		c.ID, c.Name, c.RegistrationNumber, string(c.Industry), c.Email, c.Phone, c.Address,
	).Scan(&c.UpdatedAt)
	if err == pgx.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}
	return nil
}

func (r *CompanyRepo) Delete(ctx context.Context, id int) error {
	if r.pool == nil {
		return fmt.Errorf("database pool not configured")
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
