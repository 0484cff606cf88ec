package table

import (
	"math"
	"testing"
)

func TestNumericValue(t *testing.T) {
	cases := []struct {
		in   Cell
		want float64
		ok   bool
	}{
		{float64(12.5), 12.5, true},
		{int(40), 40, true},
		{"1,234.56", 1234.56, true},
		{"$500", 500, true},
		{"(250)", -250, true},
		{"₹ 1,000", 1000, true},
		{"-42", -42, true},
		{"", 0, false},
		{"n/a", 0, false},
		{nil, 0, false},
	}

	for _, c := range cases {
		got, ok := NumericValue(c.in)
		if ok != c.ok {
			t.Errorf("NumericValue(%v): ok=%v want %v", c.in, ok, c.ok)
			continue
		}
		if ok && math.Abs(got-c.want) > 1e-9 {
			t.Errorf("NumericValue(%v) = %f want %f", c.in, got, c.want)
		}
	}
}

func TestIsNumericColumn(t *testing.T) {
	tbl := New(
		[]string{"Account", "2023", "2024", "Notes"},
		[][]Cell{
			{"Total Revenue", "100", 150.0, "see p.4"},
			{"Cash", "20", "25", ""},
			{"Inventory", "", "50", nil},
		},
	)

	if tbl.IsNumericColumn(0) {
		t.Error("label column should not be numeric")
	}
	if !tbl.IsNumericColumn(1) || !tbl.IsNumericColumn(2) {
		t.Error("year columns should be numeric")
	}
	// Notes column has one textual populated cell
	if tbl.IsNumericColumn(3) {
		t.Error("notes column should not be numeric")
	}
}

func TestRowPaddingAndRecords(t *testing.T) {
	tbl := New(
		[]string{"a", "b"},
		[][]Cell{
			{"x"},             // short row, padded
			{"y", 1.0, "zzz"}, // long row, truncated
		},
	)

	if tbl.NumRows() != 2 || tbl.NumColumns() != 2 {
		t.Fatalf("unexpected shape %dx%d", tbl.NumRows(), tbl.NumColumns())
	}
	if tbl.Cell(0, "b") != nil {
		t.Error("padded cell should be nil")
	}
	if tbl.Cell(1, "b") != 1.0 {
		t.Errorf("Cell(1,b) = %v", tbl.Cell(1, "b"))
	}

	records := tbl.Records()
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[1]["a"] != "y" {
		t.Errorf("record mismatch: %v", records[1])
	}
}
