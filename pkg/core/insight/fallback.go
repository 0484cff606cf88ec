package insight

import "finhealth/pkg/models"

// Deterministic stand-ins used whenever the provider is unreachable or its
// output cannot be parsed. Assessments built on these are still valid rows;
// the numeric scoring never depends on the AI path.

func fallbackInsights() *Insights {
	return &Insights{
		Strengths:     []models.InsightPoint{{Point: "Business operations are ongoing"}},
		Weaknesses:    []models.InsightPoint{{Point: "Unable to generate detailed insights"}},
		Opportunities: []models.InsightPoint{{Point: "Further analysis recommended"}},
		Threats:       []models.InsightPoint{{Point: "Market conditions should be monitored"}},
	}
}

func fallbackRecommendations() *Recommendations {
	return &Recommendations{
		CostOptimization: []models.Recommendation{
			{Title: "Review operational expenses", Description: "Conduct regular expense audits"},
		},
		RevenueEnhancement: []models.Recommendation{
			{Title: "Diversify revenue streams", Description: "Explore new market opportunities"},
		},
		WorkingCapitalTips: []models.Recommendation{
			{Title: "Improve cash collection", Description: "Reduce receivables days"},
		},
		TaxOptimization: []models.Recommendation{
			{Title: "Maximize deductions", Description: "Consult with tax advisor"},
		},
	}
}
