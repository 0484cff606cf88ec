package calc

import (
	"math"
	"testing"
)

func fp(v float64) *float64 { return &v }

func TestLinearForecast(t *testing.T) {
	// Perfectly linear history 10,20,30,40 -> slope 10, intercept 10.
	// Next two periods (x=4,5): 50, 60.
	forecast := ForecastRevenue([]float64{10, 20, 30, 40}, 2)

	if len(forecast) != 2 {
		t.Fatalf("forecast length = %d, want 2", len(forecast))
	}
	if math.Abs(forecast[0]-50) > 1e-9 || math.Abs(forecast[1]-60) > 1e-9 {
		t.Errorf("forecast = %v, want [50 60]", forecast)
	}
}

func TestForecastClampsNegatives(t *testing.T) {
	// Steeply declining history extrapolates below zero; projections clamp.
	forecast := ForecastRevenue([]float64{100, 50, 0}, 3)
	for i, v := range forecast {
		if v < 0 {
			t.Errorf("forecast[%d] = %f, must be clamped at 0", i, v)
		}
	}
	if forecast[0] != 0 {
		t.Errorf("forecast[0] = %f, want 0 (trend continues at -50/period)", forecast[0])
	}
}

func TestForecastShortHistoryReturnedUnchanged(t *testing.T) {
	history := []float64{42}
	forecast := ForecastRevenue(history, 12)
	if len(forecast) != 1 || forecast[0] != 42 {
		t.Errorf("short history must be returned unchanged, got %v", forecast)
	}
}

func TestCashFlowTrendImproving(t *testing.T) {
	// first 3 mean = (10+10+10)/3 = 10, last 3 mean = (20+20+20)/3 = 20
	// 20 > 10*1.1 -> improving
	periods := []CashFlowPeriod{
		{Operating: fp(10)}, {Operating: fp(10)}, {Operating: fp(10)},
		{Operating: fp(20)}, {Operating: fp(20)}, {Operating: fp(20)},
	}
	r := AnalyzeCashFlowTrend(periods)
	if r.Trend != "improving" {
		t.Errorf("trend = %s, want improving", r.Trend)
	}
	if r.AverageOperatingCF != 15 {
		t.Errorf("average = %f, want 15", r.AverageOperatingCF)
	}
}

func TestCashFlowTrendDeclining(t *testing.T) {
	// first 3 mean = 100, last 3 mean = 80; 80 < 100*0.9 -> declining
	periods := []CashFlowPeriod{
		{Operating: fp(100)}, {Operating: fp(100)}, {Operating: fp(100)},
		{Operating: fp(80)}, {Operating: fp(80)}, {Operating: fp(80)},
	}
	if r := AnalyzeCashFlowTrend(periods); r.Trend != "declining" {
		t.Errorf("trend = %s, want declining", r.Trend)
	}
}

func TestCashFlowTrendStableInsideBand(t *testing.T) {
	// last mean 105 vs first mean 100: inside (90%, 110%] band -> stable
	periods := []CashFlowPeriod{
		{Operating: fp(100)}, {Operating: fp(100)}, {Operating: fp(100)},
		{Operating: fp(105)}, {Operating: fp(105)}, {Operating: fp(105)},
	}
	if r := AnalyzeCashFlowTrend(periods); r.Trend != "stable" {
		t.Errorf("trend = %s, want stable", r.Trend)
	}
}

func TestCashFlowTrendShortSeries(t *testing.T) {
	// Fewer than 3 operating points: trend stays the "stable" default.
	periods := []CashFlowPeriod{
		{Operating: fp(10), Investing: fp(-5), Financing: fp(2)},
		{Operating: fp(30)},
	}
	r := AnalyzeCashFlowTrend(periods)
	if r.Trend != "stable" {
		t.Errorf("trend = %s, want stable", r.Trend)
	}
	if r.AverageOperatingCF != 20 || r.AverageInvestingCF != -5 || r.AverageFinancingCF != 2 {
		t.Errorf("averages wrong: %+v", r)
	}
}

func TestCashFlowTrendEmptySeries(t *testing.T) {
	if r := AnalyzeCashFlowTrend(nil); r.Trend != "insufficient_data" {
		t.Errorf("trend = %s, want insufficient_data", r.Trend)
	}
}

func TestBurnRateAndRunway(t *testing.T) {
	// 12000 expenses over 6 months -> 2000/month; 10000 cash -> 5 months
	burn := BurnRate(12000, 6)
	if burn != 2000 {
		t.Errorf("burn = %f, want 2000", burn)
	}
	if r := Runway(10000, burn); r != 5 {
		t.Errorf("runway = %f, want 5", r)
	}

	if BurnRate(12000, 0) != 0 {
		t.Error("zero period months means burn rate 0 by definition")
	}
	if !math.IsInf(Runway(10000, 0), 1) {
		t.Error("runway at non-positive burn must be +Inf")
	}
}
