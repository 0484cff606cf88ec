package calc

import (
	"reflect"
	"testing"

	"finhealth/pkg/models"
)

func TestHealthyCompanyKeepsFullScore(t *testing.T) {
	// current 2.0 (>1.5 strength), margin 15 (>10 strength),
	// D/E 0.3 (<0.5 strength), turnover 1.8 (>1.5 strength)
	a := AssessHealth(HealthInputs{
		CurrentRatio:    2.0,
		NetProfitMargin: 15,
		DebtToEquity:    0.3,
		AssetTurnover:   1.8,
	})

	if a.HealthScore != 100 {
		t.Errorf("score = %d, want 100", a.HealthScore)
	}
	if a.RiskLevel != models.RiskLow {
		t.Errorf("risk = %s, want Low", a.RiskLevel)
	}
	if len(a.Issues) != 0 {
		t.Errorf("unexpected issues: %v", a.Issues)
	}
	if len(a.Strengths) != 4 {
		t.Errorf("strengths = %v, want all four", a.Strengths)
	}
}

func TestScoringScenario(t *testing.T) {
	// margin -5 (-20), D/E 2.5 (-15), turnover 0.3 (-10), current 1.2 (no rule)
	// score = 100 - 20 - 15 - 10 = 55 -> High (55 in [40,60))
	a := AssessHealth(HealthInputs{
		CurrentRatio:    1.2,
		NetProfitMargin: -5,
		DebtToEquity:    2.5,
		AssetTurnover:   0.3,
	})

	if a.HealthScore != 55 {
		t.Errorf("score = %d, want 55", a.HealthScore)
	}
	if a.RiskLevel != models.RiskHigh {
		t.Errorf("risk = %s, want High", a.RiskLevel)
	}
	wantIssues := []string{
		"Negative profit margin",
		"High debt-to-equity ratio",
		"Low asset utilization",
	}
	if !reflect.DeepEqual(a.Issues, wantIssues) {
		t.Errorf("issues = %v, want %v", a.Issues, wantIssues)
	}
}

func TestWorstCaseClampsAtZero(t *testing.T) {
	// All deductions: 100 - 15 - 20 - 15 - 10 = 40, still >= 0, so check the
	// clamp contract directly too.
	a := AssessHealth(HealthInputs{
		CurrentRatio:    0.5,
		NetProfitMargin: -20,
		DebtToEquity:    5,
		AssetTurnover:   0.1,
	})
	if a.HealthScore != 40 {
		t.Errorf("score = %d, want 40 (all four deductions)", a.HealthScore)
	}
	if a.RiskLevel != models.RiskHigh {
		t.Errorf("risk = %s, want High (40 is inclusive lower bound)", a.RiskLevel)
	}
	if a.HealthScore < 0 || a.HealthScore > 100 {
		t.Errorf("score out of [0,100]: %d", a.HealthScore)
	}
}

func TestScoringIsDeterministic(t *testing.T) {
	in := HealthInputs{CurrentRatio: 0.8, NetProfitMargin: 4, DebtToEquity: 1.2, AssetTurnover: 0.9}
	first := AssessHealth(in)
	second := AssessHealth(in)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("assessment not deterministic: %+v vs %+v", first, second)
	}
}

func TestRiskTierThresholds(t *testing.T) {
	cases := []struct {
		score int
		want  models.RiskLevel
	}{
		{100, models.RiskLow},
		{80, models.RiskLow},
		{79, models.RiskMedium},
		{60, models.RiskMedium},
		{59, models.RiskHigh},
		{40, models.RiskHigh},
		{39, models.RiskCritical},
		{0, models.RiskCritical},
	}
	for _, c := range cases {
		if got := RiskTier(c.score); got != c.want {
			t.Errorf("RiskTier(%d) = %s, want %s", c.score, got, c.want)
		}
	}
}
