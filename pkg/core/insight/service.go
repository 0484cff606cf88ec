// Package insight turns computed financial data into qualitative analysis
// through an LLM provider: SWOT insights, actionable recommendations, and an
// executive summary. Every call degrades to a deterministic fallback when the
// provider errors or returns unparseable output, so assessment generation
// never fails on the AI path.
package insight

import (
	"context"
	"log"

	"finhealth/pkg/models"
)

// Prompter is the slice of the agent manager this service needs.
type Prompter interface {
	ExecutePrompt(ctx context.Context, agentType string, rawPrompt string, rawSystemPrompt string, options map[string]interface{}) (string, error)
}

const systemPrompt = "You are an expert financial analyst with deep knowledge of business finance, accounting, and financial planning."

// CompanyInfo carries the context the prompts embed about the business.
type CompanyInfo struct {
	Name     string
	Industry string
}

// Insights is the SWOT breakdown returned by GenerateInsights.
type Insights struct {
	Strengths     []models.InsightPoint `json:"strengths"`
	Weaknesses    []models.InsightPoint `json:"weaknesses"`
	Opportunities []models.InsightPoint `json:"opportunities"`
	Threats       []models.InsightPoint `json:"threats"`
}

// Recommendations groups actionable advice by category.
type Recommendations struct {
	CostOptimization   []models.Recommendation `json:"cost_optimization"`
	RevenueEnhancement []models.Recommendation `json:"revenue_enhancement"`
	WorkingCapitalTips []models.Recommendation `json:"working_capital_tips"`
	TaxOptimization    []models.Recommendation `json:"tax_optimization"`
}

type Service struct {
	prompter  Prompter
	agentType string
}

func NewService(p Prompter) *Service {
	return &Service{prompter: p, agentType: "insight"}
}

// GenerateInsights asks the model for a SWOT analysis of the financial data.
// On any provider or parse failure it returns the fallback set.
func (s *Service) GenerateInsights(ctx context.Context, financialData map[string]interface{}, company CompanyInfo) *Insights {
	prompt := insightsPrompt(financialData, company)

	resp, err := s.prompter.ExecutePrompt(ctx, s.agentType, prompt, systemPrompt, nil)
	if err != nil {
		log.Printf("[INSIGHT] insights generation failed: %v", err)
		return fallbackInsights()
	}

	insights, err := parseInsights(resp)
	if err != nil {
		log.Printf("[INSIGHT] insights parse failed: %v", err)
		return fallbackInsights()
	}
	return insights
}

// GenerateRecommendations asks the model for category-grouped advice tailored
// to the industry.
func (s *Service) GenerateRecommendations(ctx context.Context, financialData map[string]interface{}, industry string) *Recommendations {
	prompt := recommendationsPrompt(financialData, industry)

	resp, err := s.prompter.ExecutePrompt(ctx, s.agentType, prompt, systemPrompt, nil)
	if err != nil {
		log.Printf("[INSIGHT] recommendations generation failed: %v", err)
		return fallbackRecommendations()
	}

	recs, err := parseRecommendations(resp)
	if err != nil {
		log.Printf("[INSIGHT] recommendations parse failed: %v", err)
		return fallbackRecommendations()
	}
	return recs
}

// GenerateExecutiveSummary produces a 3-4 paragraph narrative of the
// assessment in the requested language ("en" default, "hi" for Hindi).
func (s *Service) GenerateExecutiveSummary(ctx context.Context, assessmentData map[string]interface{}, language string) string {
	prompt := summaryPrompt(assessmentData, language)

	resp, err := s.prompter.ExecutePrompt(ctx, s.agentType, prompt, systemPrompt, nil)
	if err != nil {
		log.Printf("[INSIGHT] summary generation failed: %v", err)
		return "Unable to generate executive summary at this time."
	}
	return cleanSummary(resp)
}
