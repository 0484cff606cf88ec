package models

import (
	"time"
)

// IndustryType classifies the company for benchmarking and insight prompts.
type IndustryType string

const (
	IndustryManufacturing IndustryType = "Manufacturing"
	IndustryRetail        IndustryType = "Retail"
	IndustryAgriculture   IndustryType = "Agriculture"
	IndustryServices      IndustryType = "Services"
	IndustryLogistics     IndustryType = "Logistics"
	IndustryEcommerce     IndustryType = "E-commerce"
	IndustryHealthcare    IndustryType = "Healthcare"
	IndustryTechnology    IndustryType = "Technology"
)

// RiskLevel is a step function of the health score (see calc.RiskTier).
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskMedium   RiskLevel = "Medium"
	RiskHigh     RiskLevel = "High"
	RiskCritical RiskLevel = "Critical"
)

// StatementType selects the canonical metric shape during normalization.
type StatementType string

const (
	StatementIncome       StatementType = "income_statement"
	StatementBalanceSheet StatementType = "balance_sheet"
	StatementCashFlow     StatementType = "cash_flow"
)

// Company is the business entity documents and assessments attach to.
type Company struct {
	ID                 int          `json:"id"`
	Name               string       `json:"name"`
	RegistrationNumber string       `json:"registration_number"`
	Industry           IndustryType `json:"industry"`
	Email              string       `json:"email"`
	Phone              string       `json:"phone"`
	Address            string       `json:"address"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// Document is one uploaded financial statement file.
// Data holds the NormalizedStatement payload once the file is processed.
type Document struct {
	ID           int                  `json:"id"`
	CompanyID    int                  `json:"company_id"`
	DocumentType StatementType        `json:"document_type"`
	FileName     string               `json:"file_name"`
	FilePath     string               `json:"file_path"`
	FileType     string               `json:"file_type"` // csv, pdf, html
	UploadedAt   time.Time            `json:"uploaded_at"`
	Processed    bool                 `json:"processed"`
	ProcessedAt  *time.Time           `json:"processed_at,omitempty"`
	Data         *NormalizedStatement `json:"data,omitempty"`
}

// NormalizedStatement is the canonical per-document extraction result.
// Data carries the full extraction map plus the verbatim source rows for audit;
// ExtractedMetrics is the fixed per-statement-type shape with zero defaults.
type NormalizedStatement struct {
	StatementType    StatementType          `json:"statement_type"`
	Data             map[string]interface{} `json:"data"`
	ExtractedMetrics map[string]float64     `json:"extracted_metrics"`
}

// Metrics is one persisted ratio computation run for a company.
type Metrics struct {
	ID        int       `json:"id"`
	CompanyID int       `json:"company_id"`
	CreatedAt time.Time `json:"created_at"`

	// Revenue & profitability levels
	TotalRevenue    float64 `json:"total_revenue"`
	GrossProfit     float64 `json:"gross_profit"`
	NetProfit       float64 `json:"net_profit"`
	OperatingProfit float64 `json:"operating_profit"`
	EBITDA          float64 `json:"ebitda"`

	// Liquidity
	CurrentRatio float64 `json:"current_ratio"`
	QuickRatio   float64 `json:"quick_ratio"`
	CashRatio    float64 `json:"cash_ratio"`

	// Profitability
	GrossProfitMargin float64 `json:"gross_profit_margin"`
	NetProfitMargin   float64 `json:"net_profit_margin"`
	ReturnOnAssets    float64 `json:"return_on_assets"`
	ReturnOnEquity    float64 `json:"return_on_equity"`

	// Leverage
	DebtToEquity     float64 `json:"debt_to_equity"`
	DebtToAssets     float64 `json:"debt_to_assets"`
	InterestCoverage float64 `json:"interest_coverage"`

	// Efficiency
	AssetTurnover       float64 `json:"asset_turnover"`
	InventoryTurnover   float64 `json:"inventory_turnover"`
	DaysInventory       float64 `json:"days_inventory"`
	ReceivablesTurnover float64 `json:"receivables_turnover"`
	DaysReceivable      float64 `json:"days_receivable"`

	// Cash flow
	OperatingCashFlow float64 `json:"operating_cash_flow"`
	InvestingCashFlow float64 `json:"investing_cash_flow"`
	FinancingCashFlow float64 `json:"financing_cash_flow"`

	// Working capital
	WorkingCapital     float64 `json:"working_capital"`
	AccountsReceivable float64 `json:"accounts_receivable"`
	AccountsPayable    float64 `json:"accounts_payable"`
	Inventory          float64 `json:"inventory"`
}

// InsightPoint is one qualitative observation returned by the insight provider.
type InsightPoint struct {
	Point string `json:"point"`
}

// Recommendation is one actionable suggestion with a short rationale.
type Recommendation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Assessment is the full stored output of one assessment run.
type Assessment struct {
	ID        string    `json:"id"`
	CompanyID int       `json:"company_id"`
	CreatedAt time.Time `json:"created_at"`

	HealthScore float64   `json:"financial_health_score"`
	RiskLevel   RiskLevel `json:"risk_level"`

	Strengths     []InsightPoint `json:"strengths"`
	Weaknesses    []InsightPoint `json:"weaknesses"`
	Opportunities []InsightPoint `json:"opportunities"`
	Threats       []InsightPoint `json:"threats"`

	CostOptimization   []Recommendation `json:"cost_optimization"`
	RevenueEnhancement []Recommendation `json:"revenue_enhancement"`
	WorkingCapitalTips []Recommendation `json:"working_capital_tips"`
	TaxOptimization    []Recommendation `json:"tax_optimization"`

	RevenueForecast []float64 `json:"revenue_forecast"`

	ExecutiveSummary string `json:"executive_summary"`
	Language         string `json:"language"`
}
