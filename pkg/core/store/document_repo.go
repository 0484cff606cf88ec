package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"finhealth/pkg/models"
)

// DocumentRepo provides storage for uploaded statement files and their
// extraction payloads. The normalized statement is serialized to JSONB.
type DocumentRepo struct {
	pool *pgxpool.Pool
}

// NewDocumentRepo creates a new document repository
func NewDocumentRepo(pool *pgxpool.Pool) *DocumentRepo {
	return &DocumentRepo{pool: pool}
}

func (r *DocumentRepo) Create(ctx context.Context, d *models.Document) error {
	if r.pool == nil {
		return fmt.Errorf("database pool not configured")
	}

	query := `
		INSERT INTO documents (company_id, document_type, file_name, file_path, file_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, uploaded_at
	`
	err := r.pool.QueryRow(ctx, query,
		d.CompanyID, string(d.DocumentType), d.FileName, d.FilePath, d.FileType,
	).Scan(&d.ID, &d.UploadedAt)
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}
	return nil
}

func (r *DocumentRepo) GetByID(ctx context.Context, id int) (*models.Document, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("database pool not configured")
	}

	query := `
		SELECT id, company_id, document_type, file_name, file_path, file_type,
			uploaded_at, processed, processed_at, data
		FROM documents
		WHERE id = $1
	`
	d, err := scanDocument(r.pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return d, nil
}

// ListByCompany returns the company's documents oldest upload first. Fold
// order over these rows decides which statement wins on overlapping fields,
// so the sort is part of the aggregation contract.
func (r *DocumentRepo) ListByCompany(ctx context.Context, companyID int) ([]*models.Document, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("database pool not configured")
	}

	query := `
		SELECT id, company_id, document_type, file_name, file_path, file_type,
			uploaded_at, processed, processed_at, data
		FROM documents
		WHERE company_id = $1
		ORDER BY uploaded_at ASC, id ASC
	`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []*models.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// MarkProcessed stores the extraction result and flips the processed flag.
func (r *DocumentRepo) MarkProcessed(ctx context.Context, id int, data *models.NormalizedStatement) error {
	if r.pool == nil {
		return fmt.Errorf("database pool not configured")
	}

	dataJSON, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal statement data: %w", err)
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE documents
		SET processed = TRUE, processed_at = NOW(), data = $2
		WHERE id = $1
	`, id, dataJSON)
	if err != nil {
		return fmt.Errorf("failed to mark document processed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *DocumentRepo) Delete(ctx context.Context, id int) error {
	if r.pool == nil {
		return fmt.Errorf("database pool not configured")
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*models.Document, error) {
	var d models.Document
	var docType string
	var processedAt *time.Time
	var dataJSON []byte

	err := row.Scan(
		&d.ID, &d.CompanyID, &docType, &d.FileName, &d.FilePath, &d.FileType,
		&d.UploadedAt, &d.Processed, &processedAt, &dataJSON,
	)
	if err != nil {
		return nil, err
	}

	d.DocumentType = models.StatementType(docType)
	d.ProcessedAt = processedAt
	if len(dataJSON) > 0 {
		var stmt models.NormalizedStatement
		if err := json.Unmarshal(dataJSON, &stmt); err == nil {
			d.Data = &stmt
		}
	}
	return &d, nil
}
