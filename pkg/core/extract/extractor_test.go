package extract

import (
	"math"
	"testing"

	"finhealth/pkg/core/table"
	"finhealth/pkg/models"
)

func TestRightmostNumericColumnWins(t *testing.T) {
	// Two year columns: 2024 is rightmost, so it is the current period.
	tbl := table.New(
		[]string{"Account", "2023", "2024"},
		[][]table.Cell{
			{"Total Revenue", 100.0, 150.0},
			{"Cost of Goods Sold", 60.0, 80.0},
		},
	)

	ext := FromTable(tbl)
	if got := ext.Metrics["revenue"]; got != 150 {
		t.Errorf("revenue = %f, want 150 (rightmost column)", got)
	}
	if got := ext.Metrics["cogs"]; got != 80 {
		t.Errorf("cogs = %f, want 80", got)
	}
	if len(ext.RawData) != 2 {
		t.Errorf("raw data rows = %d, want 2", len(ext.RawData))
	}
}

func TestSynonymPriorityOrder(t *testing.T) {
	// Both "revenue" and "net sales" map to the revenue key; "revenue" has
	// higher priority so its value must win regardless of row order.
	tbl := table.New(
		[]string{"Description", "Amount"},
		[][]table.Cell{
			{"Net Sales", 999.0},
			{"Revenue", 500.0},
		},
	)

	ext := FromTable(tbl)
	if got := ext.Metrics["revenue"]; got != 500 {
		t.Errorf("revenue = %f, want 500 (priority synonym)", got)
	}
}

func TestAbsoluteMagnitude(t *testing.T) {
	tbl := table.New(
		[]string{"Item", "Value"},
		[][]table.Cell{
			{"Net Profit", "(50)"}, // accounting-style negative
		},
	)

	ext := FromTable(tbl)
	if got := ext.Metrics["net_profit"]; got != 50 {
		t.Errorf("net_profit = %f, want 50 (absolute value)", got)
	}
}

func TestLabelColumnFallback(t *testing.T) {
	// No label-token column name: first column is used.
	tbl := table.New(
		[]string{"X", "Y"},
		[][]table.Cell{
			{"Cash", 20.0},
		},
	)

	ext := FromTable(tbl)
	if got := ext.Metrics["cash"]; got != 20 {
		t.Errorf("cash = %f, want 20", got)
	}
}

func TestNoNumericColumn(t *testing.T) {
	tbl := table.New(
		[]string{"Account", "Comment"},
		[][]table.Cell{
			{"Revenue", "pending audit"},
		},
	)

	ext := FromTable(tbl)
	if len(ext.Metrics) != 0 {
		t.Errorf("expected empty extraction, got %v", ext.Metrics)
	}
	if len(ext.RawData) != 1 {
		t.Error("raw data must still be preserved")
	}
}

func TestFormattedAmounts(t *testing.T) {
	tbl := table.New(
		[]string{"Line Item", "FY2024"},
		[][]table.Cell{
			{"Total Assets", "1,250,000"},
			{"Cash and Cash Equivalents", "$75,500.25"},
		},
	)

	ext := FromTable(tbl)
	if got := ext.Metrics["total_assets"]; got != 1250000 {
		t.Errorf("total_assets = %f", got)
	}
	if got := ext.Metrics["cash"]; math.Abs(got-75500.25) > 1e-9 {
		t.Errorf("cash = %f", got)
	}
}

func TestNormalizeShapes(t *testing.T) {
	ext := Extraction{Metrics: map[string]float64{
		"revenue":      1000,
		"net_profit":   120,
		"total_assets": 5000, // not part of the income statement shape
	}}

	stmt := Normalize(ext, models.StatementIncome)
	metrics := stmt.ExtractedMetrics

	if len(metrics) != 5 {
		t.Fatalf("income statement shape has %d keys, want 5", len(metrics))
	}
	if metrics["revenue"] != 1000 || metrics["net_profit"] != 120 {
		t.Errorf("metrics not carried over: %v", metrics)
	}
	// Missing keys default to zero rather than being absent.
	if v, ok := metrics["expenses"]; !ok || v != 0 {
		t.Errorf("expenses should default to 0, got %v (present=%v)", v, ok)
	}
	if _, ok := metrics["total_assets"]; ok {
		t.Error("total_assets does not belong on an income statement")
	}
}

func TestNormalizeUnknownType(t *testing.T) {
	stmt := Normalize(Extraction{Metrics: map[string]float64{"revenue": 10}}, "tax_return")
	if len(stmt.ExtractedMetrics) != 0 {
		t.Errorf("unknown statement type must yield empty metrics, got %v", stmt.ExtractedMetrics)
	}
}

func TestNormalizeKeepsFullDataPayload(t *testing.T) {
	ext := Extraction{
		Metrics: map[string]float64{"operating_cash_flow": 30},
		RawData: []map[string]table.Cell{{"Account": "Operating Cash Flow"}},
	}

	stmt := Normalize(ext, models.StatementCashFlow)
	if stmt.Data["operating_cash_flow"] != 30.0 {
		t.Error("data payload must include the extraction map")
	}
	if stmt.Data["raw_data"] == nil {
		t.Error("data payload must include raw_data for audit")
	}
}
