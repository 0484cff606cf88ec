package calc

import (
	"math"
)

// =============================================================================
// TREND / FORECAST ENGINE
// =============================================================================

// CashFlowPeriod is the per-period input to trend analysis. A nil pointer
// means the series did not report that flow for the period.
type CashFlowPeriod struct {
	Operating *float64 `json:"operating_cash_flow,omitempty"`
	Investing *float64 `json:"investing_cash_flow,omitempty"`
	Financing *float64 `json:"financing_cash_flow,omitempty"`
}

// CashFlowTrendResult classifies the operating cash-flow direction and
// reports plain arithmetic means per flow.
type CashFlowTrendResult struct {
	Trend              string  `json:"trend"` // improving | declining | stable | insufficient_data
	AverageOperatingCF float64 `json:"average_operating_cf"`
	AverageInvestingCF float64 `json:"average_investing_cf"`
	AverageFinancingCF float64 `json:"average_financing_cf"`
}

// AnalyzeCashFlowTrend compares the mean of the last three periods against
// the mean of the first three: above 110% of the earlier mean is improving,
// below 90% is declining, anything else (or fewer than three periods) is
// stable. An empty series is insufficient data.
func AnalyzeCashFlowTrend(periods []CashFlowPeriod) CashFlowTrendResult {
	if len(periods) == 0 {
		return CashFlowTrendResult{Trend: "insufficient_data"}
	}

	result := CashFlowTrendResult{Trend: "stable"}

	var operating, investing, financing []float64
	for _, p := range periods {
		if p.Operating != nil {
			operating = append(operating, *p.Operating)
		}
		if p.Investing != nil {
			investing = append(investing, *p.Investing)
		}
		if p.Financing != nil {
			financing = append(financing, *p.Financing)
		}
	}

	result.AverageOperatingCF = mean(operating)
	result.AverageInvestingCF = mean(investing)
	result.AverageFinancingCF = mean(financing)

	if len(operating) >= 3 {
		recent := mean(operating[len(operating)-3:])
		older := mean(operating[:3])
		switch {
		case recent > older*1.1:
			result.Trend = "improving"
		case recent < older*0.9:
			result.Trend = "declining"
		}
	}

	return result
}

// ForecastRevenue fits a first-degree polynomial (ordinary least squares over
// period indices 0..n-1) to the history and evaluates it at the next
// `periods` indices. Projections are clamped at zero. A history shorter than
// two points is returned unchanged — there is no slope to extrapolate.
func ForecastRevenue(history []float64, periods int) []float64 {
	if len(history) < 2 {
		return history
	}

	slope, intercept := linearFit(history)

	forecast := make([]float64, 0, periods)
	for i := 0; i < periods; i++ {
		x := float64(len(history) + i)
		y := slope*x + intercept
		forecast = append(forecast, math.Max(y, 0))
	}
	return forecast
}

// linearFit returns the least-squares line y = slope*x + intercept with
// x = 0..n-1. Closed form: slope = (n*Σxy − Σx*Σy) / (n*Σx² − (Σx)²).
func linearFit(y []float64) (slope, intercept float64) {
	n := float64(len(y))
	var sumX, sumY, sumXY, sumXX float64
	for i, v := range y {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, mean(y)
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

// BurnRate is monthly cash consumption. periodMonths is declared by the
// caller, never inferred from data; zero months means an undefined (0) rate.
func BurnRate(expenses float64, periodMonths int) float64 {
	if periodMonths == 0 {
		return 0
	}
	return expenses / float64(periodMonths)
}

// Runway is the months of cash left at the given burn rate. A non-positive
// burn rate means the company is not consuming cash: infinite runway.
func Runway(cashBalance, burnRate float64) float64 {
	if burnRate <= 0 {
		return math.Inf(1)
	}
	return cashBalance / burnRate
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
