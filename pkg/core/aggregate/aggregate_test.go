package aggregate

import (
	"reflect"
	"testing"

	"finhealth/pkg/models"
)

func stmt(metrics map[string]float64) *models.NormalizedStatement {
	return &models.NormalizedStatement{ExtractedMetrics: metrics}
}

func TestLastWriterWinsPerField(t *testing.T) {
	docs := []*models.NormalizedStatement{
		stmt(map[string]float64{"revenue": 100, "cash": 10}),
		stmt(map[string]float64{"revenue": 250}), // newer revenue, no cash
	}

	s := Fold(docs)
	if s["revenue"] != 250 {
		t.Errorf("revenue = %f, want 250 (last writer)", s["revenue"])
	}
	if s["cash"] != 10 {
		t.Errorf("cash = %f, want 10 (older doc still counts)", s["cash"])
	}
	if s["equity"] != 0 {
		t.Errorf("unmentioned field should stay 0, got %f", s["equity"])
	}
}

func TestMalformedDocumentSkipped(t *testing.T) {
	docs := []*models.NormalizedStatement{
		stmt(map[string]float64{"total_assets": 500}),
		nil,
		{ExtractedMetrics: nil}, // malformed payload
	}

	s := Fold(docs)
	if s["total_assets"] != 500 {
		t.Errorf("total_assets = %f, want 500", s["total_assets"])
	}
}

func TestFoldIsIdempotent(t *testing.T) {
	docs := []*models.NormalizedStatement{
		stmt(map[string]float64{"revenue": 100, "equity": 40}),
		stmt(map[string]float64{"current_assets": 150, "current_liabilities": 90}),
	}

	first := Fold(docs)
	second := Fold(docs)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("fold not idempotent: %v vs %v", first, second)
	}
}

func TestSufficiencyGate(t *testing.T) {
	if New().Sufficient() {
		t.Error("empty snapshot must be insufficient")
	}

	s := New()
	s["revenue"] = 1
	if !s.Sufficient() {
		t.Error("non-zero revenue is sufficient")
	}

	s = New()
	s["total_assets"] = 1
	if !s.Sufficient() {
		t.Error("non-zero total assets is sufficient")
	}
}

func TestFoldDocumentsSkipsUnprocessed(t *testing.T) {
	docs := []*models.Document{
		{Processed: true, Data: stmt(map[string]float64{"revenue": 100})},
		{Processed: false, Data: stmt(map[string]float64{"revenue": 999})},
		nil,
	}

	s := FoldDocuments(docs)
	if s["revenue"] != 100 {
		t.Errorf("revenue = %f, want 100 (unprocessed doc ignored)", s["revenue"])
	}
}
