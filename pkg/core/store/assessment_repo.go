package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"finhealth/pkg/models"
)

// MetricsRepo stores ratio computation runs. The full metric row is kept as
// one JSONB payload so new ratios never need a migration.
type MetricsRepo struct {
	pool *pgxpool.Pool
}

func NewMetricsRepo(pool *pgxpool.Pool) *MetricsRepo {
	return &MetricsRepo{pool: pool}
}

func (r *MetricsRepo) Save(ctx context.Context, m *models.Metrics) error {
	if r.pool == nil {
		return fmt.Errorf("database pool not configured")
	}

	metricsJSON, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal metrics: %w", err)
	}

	query := `
		INSERT INTO financial_metrics (company_id, metrics)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	err = r.pool.QueryRow(ctx, query, m.CompanyID, metricsJSON).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save metrics: %w", err)
	}
	return nil
}

// LatestByCompany returns the most recent metrics row, or ErrNotFound when
// the company has never been recalculated.
func (r *MetricsRepo) LatestByCompany(ctx context.Context, companyID int) (*models.Metrics, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("database pool not configured")
	}

	query := `
		SELECT id, company_id, created_at, metrics
		FROM financial_metrics
		WHERE company_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`
	var (
		id          int
		cid         int
		metricsJSON []byte
	)
	var m models.Metrics
	err := r.pool.QueryRow(ctx, query, companyID).Scan(&id, &cid, &m.CreatedAt, &metricsJSON)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest metrics: %w", err)
	}

	if err := json.Unmarshal(metricsJSON, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal metrics: %w", err)
	}
	m.ID = id
	m.CompanyID = cid
	return &m, nil
}

// AssessmentRepo stores full assessment runs keyed by UUID.
type AssessmentRepo struct {
	pool *pgxpool.Pool
}

func NewAssessmentRepo(pool *pgxpool.Pool) *AssessmentRepo {
	return &AssessmentRepo{pool: pool}
}

// swotPayload and recsPayload group list fields for JSONB storage.
type swotPayload struct {
	Strengths     []models.InsightPoint `json:"strengths"`
	Weaknesses    []models.InsightPoint `json:"weaknesses"`
	Opportunities []models.InsightPoint `json:"opportunities"`
	Threats       []models.InsightPoint `json:"threats"`
}

type recsPayload struct {
	CostOptimization   []models.Recommendation `json:"cost_optimization"`
	RevenueEnhancement []models.Recommendation `json:"revenue_enhancement"`
	WorkingCapitalTips []models.Recommendation `json:"working_capital_tips"`
	TaxOptimization    []models.Recommendation `json:"tax_optimization"`
}

// Save persists the assessment, assigning a UUID when the caller left ID empty.
func (r *AssessmentRepo) Save(ctx context.Context, a *models.Assessment) error {
	if r.pool == nil {
		return fmt.Errorf("database pool not configured")
	}

	if a.ID == "" {
		a.ID = uuid.New().String()
	}

	swotJSON, err := json.Marshal(swotPayload{
		Strengths:     a.Strengths,
		Weaknesses:    a.Weaknesses,
		Opportunities: a.Opportunities,
		Threats:       a.Threats,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal swot: %w", err)
	}

	recsJSON, err := json.Marshal(recsPayload{
		CostOptimization:   a.CostOptimization,
		RevenueEnhancement: a.RevenueEnhancement,
		WorkingCapitalTips: a.WorkingCapitalTips,
		TaxOptimization:    a.TaxOptimization,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	forecastJSON, err := json.Marshal(a.RevenueForecast)
	if err != nil {
		return fmt.Errorf("failed to marshal forecast: %w", err)
	}

	query := `
		INSERT INTO assessments (
			id, company_id, health_score, risk_level,
			swot, recommendations, revenue_forecast, executive_summary, language
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`
	err = r.pool.QueryRow(ctx, query,
		a.ID, a.CompanyID, a.HealthScore, string(a.RiskLevel),
		swotJSON, recsJSON, forecastJSON, a.ExecutiveSummary, a.Language,
	).Scan(&a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save assessment: %w", err)
	}
	return nil
}

func (r *AssessmentRepo) GetByID(ctx context.Context, id string) (*models.Assessment, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("database pool not configured")
	}

	query := `
		SELECT id, company_id, created_at, health_score, risk_level,
			swot, recommendations, revenue_forecast, executive_summary, language
		FROM assessments
		WHERE id = $1
	`
	a, err := scanAssessment(r.pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}
	return a, nil
}

func (r *AssessmentRepo) ListByCompany(ctx context.Context, companyID int) ([]*models.Assessment, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("database pool not configured")
	}

	query := `
		SELECT id, company_id, created_at, health_score, risk_level,
			swot, recommendations, revenue_forecast, executive_summary, language
		FROM assessments
		WHERE company_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	defer rows.Close()

	var assessments []*models.Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assessment row: %w", err)
		}
		assessments = append(assessments, a)
	}
	return assessments, rows.Err()
}

func scanAssessment(row rowScanner) (*models.Assessment, error) {
	var a models.Assessment
	var riskLevel string
	var swotJSON, recsJSON, forecastJSON []byte

	err := row.Scan(
		&a.ID, &a.CompanyID, &a.CreatedAt, &a.HealthScore, &riskLevel,
		&swotJSON, &recsJSON, &forecastJSON, &a.ExecutiveSummary, &a.Language,
	)
	if err != nil {
		return nil, err
	}
	a.RiskLevel = models.RiskLevel(riskLevel)

	var swot swotPayload
	if err := json.Unmarshal(swotJSON, &swot); err == nil {
		a.Strengths = swot.Strengths
		a.Weaknesses = swot.Weaknesses
		a.Opportunities = swot.Opportunities
		a.Threats = swot.Threats
	}

	var recs recsPayload
	if err := json.Unmarshal(recsJSON, &recs); err == nil {
		a.CostOptimization = recs.CostOptimization
		a.RevenueEnhancement = recs.RevenueEnhancement
		a.WorkingCapitalTips = recs.WorkingCapitalTips
		a.TaxOptimization = recs.TaxOptimization
	}

	if len(forecastJSON) > 0 {
		json.Unmarshal(forecastJSON, &a.RevenueForecast)
	}
	return &a, nil
}
