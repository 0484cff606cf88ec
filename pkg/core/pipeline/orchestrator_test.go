package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"finhealth/pkg/core/insight"
	"finhealth/pkg/models"
)

type fakeCompanies struct {
	companies map[int]*models.Company
}

func (f *fakeCompanies) GetByID(ctx context.Context, id int) (*models.Company, error) {
	c, ok := f.companies[id]
	if !ok {
		return nil, fmt.Errorf("company %d not found", id)
	}
	return c, nil
}

type fakeDocuments struct {
	docs map[int]*models.Document
}

func (f *fakeDocuments) GetByID(ctx context.Context, id int) (*models.Document, error) {
	d, ok := f.docs[id]
	if !ok {
		return nil, fmt.Errorf("document %d not found", id)
	}
	return d, nil
}

func (f *fakeDocuments) ListByCompany(ctx context.Context, companyID int) ([]*models.Document, error) {
	var out []*models.Document
	for id := 1; id <= len(f.docs)+100; id++ {
		if d, ok := f.docs[id]; ok && d.CompanyID == companyID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDocuments) MarkProcessed(ctx context.Context, id int, data *models.NormalizedStatement) error {
	d, ok := f.docs[id]
	if !ok {
		return fmt.Errorf("document %d not found", id)
	}
	d.Processed = true
	d.Data = data
	return nil
}

type fakeMetrics struct {
	saved  []*models.Metrics
	latest *models.Metrics
}

func (f *fakeMetrics) Save(ctx context.Context, m *models.Metrics) error {
	f.saved = append(f.saved, m)
	f.latest = m
	return nil
}

func (f *fakeMetrics) LatestByCompany(ctx context.Context, companyID int) (*models.Metrics, error) {
	if f.latest == nil {
		return nil, fmt.Errorf("no rows")
	}
	return f.latest, nil
}

type fakeAssessments struct {
	saved []*models.Assessment
}

func (f *fakeAssessments) Save(ctx context.Context, a *models.Assessment) error {
	a.ID = "test-assessment"
	f.saved = append(f.saved, a)
	return nil
}

type fakeInsights struct{}

func (fakeInsights) GenerateInsights(ctx context.Context, financialData map[string]interface{}, company insight.CompanyInfo) *insight.Insights {
	return &insight.Insights{Strengths: []models.InsightPoint{{Point: "test strength"}}}
}

func (fakeInsights) GenerateRecommendations(ctx context.Context, financialData map[string]interface{}, industry string) *insight.Recommendations {
	return &insight.Recommendations{CostOptimization: []models.Recommendation{{Title: "test rec"}}}
}

func (fakeInsights) GenerateExecutiveSummary(ctx context.Context, assessmentData map[string]interface{}, language string) string {
	return "summary in " + language
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "statement.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestOrchestrator(docs *fakeDocuments, metrics *fakeMetrics) (*Orchestrator, *fakeAssessments) {
	companies := &fakeCompanies{companies: map[int]*models.Company{
		1: {ID: 1, Name: "Acme Traders", Industry: models.IndustryRetail},
	}}
	assessments := &fakeAssessments{}
	return NewOrchestrator(companies, docs, metrics, assessments, fakeInsights{}), assessments
}

func TestProcessDocumentCSV(t *testing.T) {
	path := writeCSV(t, "Account,Amount\nRevenue,1000\nNet Profit,100\nTotal Assets,2000\n")
	docs := &fakeDocuments{docs: map[int]*models.Document{
		1: {ID: 1, CompanyID: 1, DocumentType: models.StatementIncome, FileName: "statement.csv", FilePath: path, FileType: "csv"},
	}}
	metrics := &fakeMetrics{}
	o, _ := newTestOrchestrator(docs, metrics)

	normalized, err := o.ProcessDocument(context.Background(), 1)
	if err != nil {
		t.Fatalf("ProcessDocument: %v", err)
	}
	if normalized.ExtractedMetrics["revenue"] != 1000 {
		t.Errorf("revenue = %v, want 1000", normalized.ExtractedMetrics["revenue"])
	}
	if !docs.docs[1].Processed {
		t.Error("document not marked processed")
	}

	// Revenue is present, so the auto recalculation must have produced a row.
	if len(metrics.saved) != 1 {
		t.Fatalf("expected 1 metrics row, got %d", len(metrics.saved))
	}
	if metrics.saved[0].TotalRevenue != 1000 {
		t.Errorf("metrics revenue = %v, want 1000", metrics.saved[0].TotalRevenue)
	}
	// net_profit_margin = 100/1000*100 = 10
	if metrics.saved[0].NetProfitMargin != 10 {
		t.Errorf("net profit margin = %v, want 10", metrics.saved[0].NetProfitMargin)
	}
}

func TestProcessDocumentAlreadyProcessed(t *testing.T) {
	stored := &models.NormalizedStatement{StatementType: models.StatementIncome}
	docs := &fakeDocuments{docs: map[int]*models.Document{
		1: {ID: 1, CompanyID: 1, Processed: true, Data: stored},
	}}
	o, _ := newTestOrchestrator(docs, &fakeMetrics{})

	got, err := o.ProcessDocument(context.Background(), 1)
	if err != ErrAlreadyProcessed {
		t.Fatalf("expected ErrAlreadyProcessed, got %v", err)
	}
	if got != stored {
		t.Error("expected stored data back")
	}
}

func TestRecalculateMetricsInsufficientData(t *testing.T) {
	// One processed cash-flow statement: no revenue, no assets.
	docs := &fakeDocuments{docs: map[int]*models.Document{
		1: {ID: 1, CompanyID: 1, Processed: true, Data: &models.NormalizedStatement{
			StatementType:    models.StatementCashFlow,
			ExtractedMetrics: map[string]float64{"operating_cash_flow": 50},
		}},
	}}
	metrics := &fakeMetrics{}
	o, _ := newTestOrchestrator(docs, metrics)

	m, err := o.RecalculateMetrics(context.Background(), 1)
	if err != nil {
		t.Fatalf("RecalculateMetrics: %v", err)
	}
	if m != nil {
		t.Error("expected nil metrics when revenue and assets are both zero")
	}
	if len(metrics.saved) != 0 {
		t.Error("no metrics row should be saved below the sufficiency gate")
	}
}

func TestRunAssessment(t *testing.T) {
	docs := &fakeDocuments{docs: map[int]*models.Document{
		1: {ID: 1, CompanyID: 1, Processed: true, Data: &models.NormalizedStatement{
			StatementType:    models.StatementIncome,
			ExtractedMetrics: map[string]float64{"revenue": 100},
		}},
		2: {ID: 2, CompanyID: 1, Processed: true, Data: &models.NormalizedStatement{
			StatementType:    models.StatementIncome,
			ExtractedMetrics: map[string]float64{"revenue": 200},
		}},
	}}
	metrics := &fakeMetrics{latest: &models.Metrics{
		CompanyID:       1,
		TotalRevenue:    200,
		CurrentRatio:    2.0,
		NetProfitMargin: 15,
		DebtToEquity:    0.3,
		AssetTurnover:   2.0,
	}}
	o, assessments := newTestOrchestrator(docs, metrics)

	a, err := o.RunAssessment(context.Background(), 1, "")
	if err != nil {
		t.Fatalf("RunAssessment: %v", err)
	}

	// 2.0 > 1.5, 15 > 10, 0.3 < 0.5, 2.0 > 1.5: no deductions, all strengths.
	if a.HealthScore != 100 {
		t.Errorf("health score = %v, want 100", a.HealthScore)
	}
	if a.RiskLevel != models.RiskLow {
		t.Errorf("risk level = %v, want Low", a.RiskLevel)
	}
	if a.Language != "en" {
		t.Errorf("language defaulted to %q, want en", a.Language)
	}

	// History [100, 200] fits slope 100, intercept 100: next point is 300.
	if len(a.RevenueForecast) != 12 {
		t.Fatalf("forecast length = %d, want 12", len(a.RevenueForecast))
	}
	if a.RevenueForecast[0] != 300 {
		t.Errorf("first forecast point = %v, want 300", a.RevenueForecast[0])
	}

	if a.ExecutiveSummary != "summary in en" {
		t.Errorf("unexpected summary: %q", a.ExecutiveSummary)
	}
	if len(assessments.saved) != 1 {
		t.Errorf("expected assessment persisted, got %d", len(assessments.saved))
	}
}

func TestRunAssessmentNoMetrics(t *testing.T) {
	o, _ := newTestOrchestrator(&fakeDocuments{docs: map[int]*models.Document{}}, &fakeMetrics{})

	if _, err := o.RunAssessment(context.Background(), 1, "en"); err != ErrNoMetrics {
		t.Fatalf("expected ErrNoMetrics, got %v", err)
	}
}

func TestProcessDocumentsBatch(t *testing.T) {
	income := writeCSV(t, "Account,Amount\nRevenue,500\n")
	balance := writeCSV(t, "Account,Amount\nTotal Assets,1000\nEquity,400\n")
	docs := &fakeDocuments{docs: map[int]*models.Document{
		1: {ID: 1, CompanyID: 1, DocumentType: models.StatementIncome, FilePath: income, FileType: "csv"},
		2: {ID: 2, CompanyID: 1, DocumentType: models.StatementBalanceSheet, FilePath: balance, FileType: "csv"},
		3: {ID: 3, CompanyID: 1, DocumentType: models.StatementIncome, FilePath: filepath.Join(t.TempDir(), "missing.csv"), FileType: "csv"},
	}}
	metrics := &fakeMetrics{}
	o, _ := newTestOrchestrator(docs, metrics)

	failures := o.ProcessDocuments(context.Background(), 1, []int{1, 2, 3})
	if len(failures) != 1 {
		t.Fatalf("expected 1 failure, got %d: %v", len(failures), failures)
	}
	if _, ok := failures[3]; !ok {
		t.Error("expected document 3 to fail on missing file")
	}

	// One recalculation after the batch, covering both processed docs.
	if len(metrics.saved) != 1 {
		t.Fatalf("expected 1 metrics row after batch, got %d", len(metrics.saved))
	}
	if metrics.saved[0].TotalRevenue != 500 {
		t.Errorf("batch revenue = %v, want 500", metrics.saved[0].TotalRevenue)
	}
}
