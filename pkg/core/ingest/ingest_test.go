package ingest

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"finhealth/pkg/core/extract"
)

func TestCSVReaderParsesHeaderAndRows(t *testing.T) {
	csvData := "Account,2023,2024\nTotal Revenue,100,150\nCash,15,20\n"

	r := &CSVReader{}
	src, err := r.readFrom("mem.csv", strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("readFrom: %v", err)
	}
	if len(src.Tables) != 1 {
		t.Fatalf("tables = %d, want 1", len(src.Tables))
	}

	ext := extract.FromTable(src.Tables[0])
	if ext.Metrics["revenue"] != 150 {
		t.Errorf("revenue = %f, want 150", ext.Metrics["revenue"])
	}
	if ext.Metrics["cash"] != 20 {
		t.Errorf("cash = %f, want 20", ext.Metrics["cash"])
	}
}

func TestCSVReaderRaggedRows(t *testing.T) {
	csvData := "Item,Amount\nRevenue,500\nSubtotal\n"

	r := &CSVReader{}
	src, err := r.readFrom("mem.csv", strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ragged rows must not be a structural failure: %v", err)
	}
	if src.Tables[0].NumRows() != 2 {
		t.Errorf("rows = %d, want 2", src.Tables[0].NumRows())
	}
}

func TestCSVReaderMissingFile(t *testing.T) {
	r := &CSVReader{}
	_, err := r.Read(filepath.Join(t.TempDir(), "nope.csv"))

	var readErr *ReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("expected *ReadError, got %T: %v", err, err)
	}
}

func TestHTMLReaderExtractsTables(t *testing.T) {
	html := `
	<html><body>
	<p>Consolidated Balance Sheet</p>
	<table>
	  <tr><td>Balance Sheet</td></tr>
	  <tr><th>Account</th><th>2024</th></tr>
	  <tr><td>Total Assets</td><td>2,000</td></tr>
	  <tr><td>Total Liabilities</td><td>1,200</td></tr>
	</table>
	</body></html>`

	r := &HTMLReader{}
	src, err := r.ReadString("mem.html", html)
	if err != nil {
		t.Fatalf("ReadString: %v", err)
	}
	if len(src.Tables) != 1 {
		t.Fatalf("tables = %d, want 1", len(src.Tables))
	}

	ext := extract.FromTable(src.Tables[0])
	if ext.Metrics["total_assets"] != 2000 {
		t.Errorf("total_assets = %f, want 2000", ext.Metrics["total_assets"])
	}
	if ext.Metrics["total_liabilities"] != 1200 {
		t.Errorf("total_liabilities = %f, want 1200", ext.Metrics["total_liabilities"])
	}
}

func TestHTMLReaderNoTables(t *testing.T) {
	r := &HTMLReader{}
	_, err := r.ReadString("mem.html", "<html><body><p>hello</p></body></html>")

	var readErr *ReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("expected *ReadError for table-free document, got %v", err)
	}
}

func TestSegmentStatementLines(t *testing.T) {
	lines := []string{
		"ACME LTD ANNUAL REPORT",
		"Revenue 1,200 1,500",
		"Cost of goods sold (800) (900)",
		"Net profit 150 210",
		"Notes to the accounts",
	}

	tables := segmentTables(lines)
	if len(tables) != 1 {
		t.Fatalf("tables = %d, want 1", len(tables))
	}

	ext := extract.FromTable(tables[0])
	// last numeric token per row is the current period
	if ext.Metrics["revenue"] != 1500 {
		t.Errorf("revenue = %f, want 1500", ext.Metrics["revenue"])
	}
	if ext.Metrics["cogs"] != 900 { // absolute magnitude of (900)
		t.Errorf("cogs = %f, want 900", ext.Metrics["cogs"])
	}
	if ext.Metrics["net_profit"] != 210 {
		t.Errorf("net_profit = %f, want 210", ext.Metrics["net_profit"])
	}
}

func TestSegmentRequiresRuns(t *testing.T) {
	// A lone amount-bearing line between prose is page furniture, not a table.
	lines := []string{
		"Overview of the year",
		"Page 3",
		"Our results improved",
	}
	if tables := segmentTables(lines); len(tables) != 0 {
		t.Errorf("tables = %d, want 0", len(tables))
	}
}

func TestSplitStatementLine(t *testing.T) {
	cases := []struct {
		line   string
		label  string
		amount string
		ok     bool
	}{
		{"Total Revenue 1,200 1,500", "Total Revenue", "1,500", true},
		{"Cash 20", "Cash", "20", true},
		{"1,500", "", "", false},       // no label
		{"Director's report", "", "", false}, // no numeric tail
	}
	for _, c := range cases {
		label, amount, ok := splitStatementLine(c.line)
		if ok != c.ok || label != c.label || amount != c.amount {
			t.Errorf("splitStatementLine(%q) = (%q, %q, %v), want (%q, %q, %v)",
				c.line, label, amount, ok, c.label, c.amount, c.ok)
		}
	}
}

func TestReaderFor(t *testing.T) {
	for _, ft := range []string{"csv", "pdf", "html", "htm"} {
		if _, err := ReaderFor(ft); err != nil {
			t.Errorf("ReaderFor(%q): %v", ft, err)
		}
	}
	if _, err := ReaderFor("xlsx"); err == nil {
		t.Error("xlsx has no in-process reader and must be rejected")
	}
}
