package calc

import (
	"finhealth/pkg/models"
)

// =============================================================================
// HEALTH SCORER
// =============================================================================

// HealthAssessment is the deterministic rule-engine output: a 0-100 score, a
// risk tier, and the qualitative tags that drove the score.
type HealthAssessment struct {
	HealthScore int              `json:"health_score"`
	RiskLevel   models.RiskLevel `json:"risk_level"`
	Issues      []string         `json:"issues"`
	Strengths   []string         `json:"strengths"`
}

// HealthInputs is the ratio subset the scorer looks at. A zero value means
// "unknown/neutral", matching the ratio engine's degenerate-denominator guard.
type HealthInputs struct {
	CurrentRatio    float64
	NetProfitMargin float64
	DebtToEquity    float64
	AssetTurnover   float64
}

// AssessHealth applies the scoring rules to a baseline of 100. Each rule is
// evaluated once, independently; deductions are additive and the final score
// is clamped at 0. Running it twice over the same inputs yields the same
// result.
func AssessHealth(in HealthInputs) HealthAssessment {
	score := 100
	var issues, strengths []string

	// Liquidity
	if in.CurrentRatio < 1.0 {
		score -= 15
		issues = append(issues, "Low liquidity - current ratio below 1.0")
	} else if in.CurrentRatio > 1.5 {
		strengths = append(strengths, "Strong liquidity position")
	}

	// Profitability
	if in.NetProfitMargin < 0 {
		score -= 20
		issues = append(issues, "Negative profit margin")
	} else if in.NetProfitMargin > 10 {
		strengths = append(strengths, "Healthy profit margins")
	}

	// Leverage
	if in.DebtToEquity > 2.0 {
		score -= 15
		issues = append(issues, "High debt-to-equity ratio")
	} else if in.DebtToEquity < 0.5 {
		strengths = append(strengths, "Low debt burden")
	}

	// Efficiency
	if in.AssetTurnover < 0.5 {
		score -= 10
		issues = append(issues, "Low asset utilization")
	} else if in.AssetTurnover > 1.5 {
		strengths = append(strengths, "Efficient asset utilization")
	}

	if score < 0 {
		score = 0
	}

	return HealthAssessment{
		HealthScore: score,
		RiskLevel:   RiskTier(score),
		Issues:      issues,
		Strengths:   strengths,
	}
}

// AssessRatioSet scores a full RatioSet.
func AssessRatioSet(r RatioSet) HealthAssessment {
	return AssessHealth(HealthInputs{
		CurrentRatio:    r.Liquidity.CurrentRatio,
		NetProfitMargin: r.Profitability.NetProfitMargin,
		DebtToEquity:    r.Leverage.DebtToEquity,
		AssetTurnover:   r.Efficiency.AssetTurnover,
	})
}

// RiskTier maps a health score to its risk level. Thresholds are inclusive
// lower bounds evaluated top-down; first match wins.
func RiskTier(score int) models.RiskLevel {
	switch {
	case score >= 80:
		return models.RiskLow
	case score >= 60:
		return models.RiskMedium
	case score >= 40:
		return models.RiskHigh
	default:
		return models.RiskCritical
	}
}
