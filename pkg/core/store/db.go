package store

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	pool *pgxpool.Pool
	once sync.Once
)

// InitDB initializes the database connection pool using the DATABASE_URL
// environment variable and ensures the schema exists.
func InitDB(ctx context.Context) error {
	var err error
	once.Do(func() {
		dbURL := os.Getenv("DATABASE_URL")
		if dbURL == "" {
			err = fmt.Errorf("DATABASE_URL environment variable not set")
			return
		}

		config, parseErr := pgxpool.ParseConfig(dbURL)
		if parseErr != nil {
			err = fmt.Errorf("failed to parse database config: %w", parseErr)
			return
		}

		pool, err = pgxpool.NewWithConfig(ctx, config)
		if err != nil {
			return
		}

		err = initSchema(ctx, pool)
	})
	return err
}

// GetPool returns the database connection pool
func GetPool() *pgxpool.Pool {
	return pool
}

// Close closes the database connection pool
func Close() {
	if pool != nil {
		pool.Close()
	}
}

func initSchema(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS companies (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			registration_number TEXT NOT NULL DEFAULT '',
			industry TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS documents (
			id SERIAL PRIMARY KEY,
			company_id INTEGER NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
			document_type TEXT NOT NULL,
			file_name TEXT NOT NULL,
			file_path TEXT NOT NULL,
			file_type TEXT NOT NULL,
			uploaded_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			processed BOOLEAN NOT NULL DEFAULT FALSE,
			processed_at TIMESTAMPTZ,
			data JSONB
		)`,
		`CREATE TABLE IF NOT EXISTS financial_metrics (
			id SERIAL PRIMARY KEY,
			company_id INTEGER NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			metrics JSONB NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS assessments (
			id UUID PRIMARY KEY,
			company_id INTEGER NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			health_score DOUBLE PRECISION NOT NULL,
			risk_level TEXT NOT NULL,
			swot JSONB NOT NULL,
			recommendations JSONB NOT NULL,
			revenue_forecast JSONB,
			executive_summary TEXT NOT NULL DEFAULT '',
			language TEXT NOT NULL DEFAULT 'en'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_company ON documents(company_id, uploaded_at)`,
		`CREATE INDEX IF NOT EXISTS idx_metrics_company ON financial_metrics(company_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_assessments_company ON assessments(company_id, created_at)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}
