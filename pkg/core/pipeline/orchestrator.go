// Package pipeline chains the processing stages: read an uploaded file,
// extract and normalize its metrics, aggregate the company's documents,
// derive ratios, and assemble assessments. Stores and the insight provider
// are injected as interfaces so stages stay testable without a database.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"sync"

	"finhealth/pkg/core/aggregate"
	"finhealth/pkg/core/calc"
	"finhealth/pkg/core/extract"
	"finhealth/pkg/core/ingest"
	"finhealth/pkg/core/insight"
	"finhealth/pkg/models"
)

var (
	ErrNoMetrics        = fmt.Errorf("no financial metrics found, upload and process financial documents first")
	ErrAlreadyProcessed = fmt.Errorf("document already processed")
)

type CompanyStore interface {
	GetByID(ctx context.Context, id int) (*models.Company, error)
}

type DocumentStore interface {
	GetByID(ctx context.Context, id int) (*models.Document, error)
	ListByCompany(ctx context.Context, companyID int) ([]*models.Document, error)
	MarkProcessed(ctx context.Context, id int, data *models.NormalizedStatement) error
}

type MetricsStore interface {
	Save(ctx context.Context, m *models.Metrics) error
	LatestByCompany(ctx context.Context, companyID int) (*models.Metrics, error)
}

type AssessmentStore interface {
	Save(ctx context.Context, a *models.Assessment) error
}

// InsightProvider is the qualitative-analysis surface. Implementations never
// return errors; they degrade to deterministic fallbacks internally.
type InsightProvider interface {
	GenerateInsights(ctx context.Context, financialData map[string]interface{}, company insight.CompanyInfo) *insight.Insights
	GenerateRecommendations(ctx context.Context, financialData map[string]interface{}, industry string) *insight.Recommendations
	GenerateExecutiveSummary(ctx context.Context, assessmentData map[string]interface{}, language string) string
}

type Orchestrator struct {
	companies   CompanyStore
	documents   DocumentStore
	metrics     MetricsStore
	assessments AssessmentStore
	insights    InsightProvider
}

func NewOrchestrator(companies CompanyStore, documents DocumentStore, metrics MetricsStore, assessments AssessmentStore, insights InsightProvider) *Orchestrator {
	return &Orchestrator{
		companies:   companies,
		documents:   documents,
		metrics:     metrics,
		assessments: assessments,
		insights:    insights,
	}
}

// ProcessDocument runs the read → extract → normalize chain for one uploaded
// file and stores the result on the document row. Processing an already
// processed document returns its stored data with ErrAlreadyProcessed.
// Afterwards the company's metrics are recalculated; a recalculation failure
// does not fail the processing itself.
func (o *Orchestrator) ProcessDocument(ctx context.Context, documentID int) (*models.NormalizedStatement, error) {
	doc, err := o.documents.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.Processed {
		return doc.Data, ErrAlreadyProcessed
	}

	reader, err := ingest.ReaderFor(doc.FileType)
	if err != nil {
		return nil, err
	}

	source, err := reader.Read(doc.FilePath)
	if err != nil {
		return nil, err
	}

	ext := extract.Extraction{}
	for _, t := range source.Tables {
		ext = ext.Merge(extract.FromTable(t))
	}

	normalized := extract.Normalize(ext, doc.DocumentType)

	if err := o.documents.MarkProcessed(ctx, doc.ID, normalized); err != nil {
		return nil, err
	}
	log.Printf("[PIPELINE] processed document %d (%s, %s): %d metrics",
		doc.ID, doc.FileName, doc.DocumentType, len(normalized.ExtractedMetrics))

	if _, err := o.RecalculateMetrics(ctx, doc.CompanyID); err != nil {
		log.Printf("[PIPELINE] metrics recalculation failed for company %d: %v", doc.CompanyID, err)
	}

	return normalized, nil
}

// ProcessDocuments processes a batch concurrently, then recalculates the
// company's metrics once after all documents settle. Per-document failures
// are collected, not fatal to the batch.
func (o *Orchestrator) ProcessDocuments(ctx context.Context, companyID int, documentIDs []int) map[int]error {
	var wg sync.WaitGroup
	var mu sync.Mutex
	failures := make(map[int]error)

	for _, id := range documentIDs {
		wg.Add(1)
		go func(docID int) {
			defer wg.Done()
			if err := o.processWithoutRecalc(ctx, docID); err != nil && err != ErrAlreadyProcessed {
				mu.Lock()
				failures[docID] = err
				mu.Unlock()
			}
		}(id)
	}
	wg.Wait()

	if _, err := o.RecalculateMetrics(ctx, companyID); err != nil {
		log.Printf("[PIPELINE] metrics recalculation failed for company %d: %v", companyID, err)
	}
	return failures
}

func (o *Orchestrator) processWithoutRecalc(ctx context.Context, documentID int) error {
	doc, err := o.documents.GetByID(ctx, documentID)
	if err != nil {
		return err
	}
	if doc.Processed {
		return ErrAlreadyProcessed
	}

	reader, err := ingest.ReaderFor(doc.FileType)
	if err != nil {
		return err
	}
	source, err := reader.Read(doc.FilePath)
	if err != nil {
		return err
	}

	ext := extract.Extraction{}
	for _, t := range source.Tables {
		ext = ext.Merge(extract.FromTable(t))
	}
	return o.documents.MarkProcessed(ctx, doc.ID, extract.Normalize(ext, doc.DocumentType))
}

// RecalculateMetrics folds every processed document of the company into a
// snapshot and persists a fresh metrics row. When the snapshot has neither
// revenue nor assets the recalculation is skipped and (nil, nil) is returned.
func (o *Orchestrator) RecalculateMetrics(ctx context.Context, companyID int) (*models.Metrics, error) {
	docs, err := o.documents.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	snapshot := aggregate.FoldDocuments(docs)
	if !snapshot.Sufficient() {
		log.Printf("[PIPELINE] skipping metrics for company %d: no revenue or assets yet", companyID)
		return nil, nil
	}

	ratios := calc.ComputeRatios(snapshot)
	m := metricsFromSnapshot(companyID, snapshot, ratios)
	if err := o.metrics.Save(ctx, m); err != nil {
		return nil, err
	}
	log.Printf("[PIPELINE] recalculated metrics for company %d", companyID)
	return m, nil
}

func metricsFromSnapshot(companyID int, s aggregate.Snapshot, r calc.RatioSet) *models.Metrics {
	return &models.Metrics{
		CompanyID: companyID,

		TotalRevenue:    s["revenue"],
		GrossProfit:     s["gross_profit"],
		NetProfit:       s["net_profit"],
		OperatingProfit: s["operating_profit"],
		EBITDA:          s["ebitda"],

		CurrentRatio: r.Liquidity.CurrentRatio,
		QuickRatio:   r.Liquidity.QuickRatio,
		CashRatio:    r.Liquidity.CashRatio,

		GrossProfitMargin: r.Profitability.GrossProfitMargin,
		NetProfitMargin:   r.Profitability.NetProfitMargin,
		ReturnOnAssets:    r.Profitability.ReturnOnAssets,
		ReturnOnEquity:    r.Profitability.ReturnOnEquity,

		DebtToEquity:     r.Leverage.DebtToEquity,
		DebtToAssets:     r.Leverage.DebtToAssets,
		InterestCoverage: r.Leverage.InterestCoverage,

		AssetTurnover:       r.Efficiency.AssetTurnover,
		InventoryTurnover:   r.Efficiency.InventoryTurnover,
		DaysInventory:       r.Efficiency.DaysInventory,
		ReceivablesTurnover: r.Efficiency.ReceivablesTurnover,
		DaysReceivable:      r.Efficiency.DaysReceivable,

		OperatingCashFlow: s["operating_cash_flow"],
		InvestingCashFlow: s["investing_cash_flow"],
		FinancingCashFlow: s["financing_cash_flow"],

		WorkingCapital:     r.WorkingCapital,
		AccountsReceivable: s["accounts_receivable"],
		AccountsPayable:    s["accounts_payable"],
		Inventory:          s["inventory"],
	}
}

// RunAssessment builds and persists a full assessment for the company: the
// rule-engine health score, a revenue forecast from the income-statement
// history, the cash-flow trend, and the AI-generated qualitative sections.
func (o *Orchestrator) RunAssessment(ctx context.Context, companyID int, language string) (*models.Assessment, error) {
	company, err := o.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	metrics, err := o.metrics.LatestByCompany(ctx, companyID)
	if err != nil {
		return nil, ErrNoMetrics
	}

	if language == "" {
		language = "en"
	}

	financialData := map[string]interface{}{
		"revenue":           metrics.TotalRevenue,
		"gross_profit":      metrics.GrossProfit,
		"net_profit":        metrics.NetProfit,
		"current_ratio":     metrics.CurrentRatio,
		"quick_ratio":       metrics.QuickRatio,
		"debt_to_equity":    metrics.DebtToEquity,
		"net_profit_margin": metrics.NetProfitMargin,
		"return_on_assets":  metrics.ReturnOnAssets,
		"return_on_equity":  metrics.ReturnOnEquity,
		"working_capital":   metrics.WorkingCapital,
	}

	health := calc.AssessHealth(calc.HealthInputs{
		CurrentRatio:    metrics.CurrentRatio,
		NetProfitMargin: metrics.NetProfitMargin,
		DebtToEquity:    metrics.DebtToEquity,
		AssetTurnover:   metrics.AssetTurnover,
	})

	docs, err := o.documents.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	revenueHistory, cashFlowPeriods := documentSeries(docs)

	forecast := []float64{}
	if len(revenueHistory) >= 2 {
		forecast = calc.ForecastRevenue(revenueHistory, 12)
	}
	trend := calc.AnalyzeCashFlowTrend(cashFlowPeriods)

	companyInfo := insight.CompanyInfo{
		Name:     company.Name,
		Industry: string(company.Industry),
	}
	insights := o.insights.GenerateInsights(ctx, financialData, companyInfo)
	recommendations := o.insights.GenerateRecommendations(ctx, financialData, string(company.Industry))

	assessmentData := map[string]interface{}{
		"financial_health_score": health.HealthScore,
		"risk_level":             string(health.RiskLevel),
		"strengths":              insights.Strengths,
		"weaknesses":             insights.Weaknesses,
		"cash_flow_trend":        trend.Trend,
		"key_metrics":            financialData,
	}
	summary := o.insights.GenerateExecutiveSummary(ctx, assessmentData, language)

	assessment := &models.Assessment{
		CompanyID:   companyID,
		HealthScore: float64(health.HealthScore),
		RiskLevel:   health.RiskLevel,

		Strengths:     insights.Strengths,
		Weaknesses:    insights.Weaknesses,
		Opportunities: insights.Opportunities,
		Threats:       insights.Threats,

		CostOptimization:   recommendations.CostOptimization,
		RevenueEnhancement: recommendations.RevenueEnhancement,
		WorkingCapitalTips: recommendations.WorkingCapitalTips,
		TaxOptimization:    recommendations.TaxOptimization,

		RevenueForecast:  forecast,
		ExecutiveSummary: summary,
		Language:         language,
	}

	if err := o.assessments.Save(ctx, assessment); err != nil {
		return nil, err
	}
	log.Printf("[PIPELINE] assessment %s for company %d: score=%d risk=%s",
		assessment.ID, companyID, health.HealthScore, health.RiskLevel)
	return assessment, nil
}

// documentSeries walks processed documents in upload order and pulls the
// per-statement series used for trend and forecast: one revenue point per
// income statement, one cash-flow period per cash-flow statement.
func documentSeries(docs []*models.Document) ([]float64, []calc.CashFlowPeriod) {
	var revenue []float64
	var periods []calc.CashFlowPeriod

	for _, doc := range docs {
		if !doc.Processed || doc.Data == nil {
			continue
		}
		metrics := doc.Data.ExtractedMetrics
		switch doc.Data.StatementType {
		case models.StatementIncome:
			if v, ok := metrics["revenue"]; ok {
				revenue = append(revenue, v)
			}
		case models.StatementCashFlow:
			period := calc.CashFlowPeriod{}
			if v, ok := metrics["operating_cash_flow"]; ok {
				val := v
				period.Operating = &val
			}
			if v, ok := metrics["investing_cash_flow"]; ok {
				val := v
				period.Investing = &val
			}
			if v, ok := metrics["financing_cash_flow"]; ok {
				val := v
				period.Financing = &val
			}
			periods = append(periods, period)
		}
	}
	return revenue, periods
}
