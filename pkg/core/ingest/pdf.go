package ingest

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"finhealth/pkg/core/table"
)

// PDFReader extracts page text with ledongthuc/pdf and segments statement
// rows out of it. PDF layout is lossy, so segmentation is deliberately
// simple: a line whose tail parses as a number is a candidate statement row
// (label = the non-numeric prefix, value = the LAST numeric token, matching
// the rightmost-period convention); contiguous runs of at least two such
// rows become a synthetic two-column RawTable. Everything read is also kept
// as free text.
type PDFReader struct{}

func (r *PDFReader) Read(path string) (*Source, error) {
	lines, err := extractPDFLines(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}

	src := &Source{Text: strings.Join(lines, "\n")}
	src.Tables = segmentTables(lines)
	return src, nil
}

// extractPDFLines pulls text rows from every page. The pdf library panics on
// some malformed files, so the whole read is wrapped in a recover.
func extractPDFLines(path string) (lines []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parser crashed: %v", r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	numPages := reader.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("pdf has no pages")
	}

	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			line := strings.TrimSpace(strings.Join(parts, " "))
			if line != "" {
				lines = append(lines, line)
			}
		}
	}

	if len(lines) == 0 {
		return nil, fmt.Errorf("no text could be extracted")
	}
	return lines, nil
}

// segmentTables groups consecutive statement-like lines into RawTables.
func segmentTables(lines []string) []table.RawTable {
	columns := []string{"line item", "amount"}
	var tables []table.RawTable
	var run [][]table.Cell

	flush := func() {
		if len(run) >= 2 {
			tables = append(tables, table.New(columns, run))
		}
		run = nil
	}

	for _, line := range lines {
		label, amount, ok := splitStatementLine(line)
		if !ok {
			flush()
			continue
		}
		run = append(run, []table.Cell{label, amount})
	}
	flush()

	return tables
}

// splitStatementLine splits "Total Revenue 1,200 1,500" into
// ("Total Revenue", "1,500"). Lines without a textual label or without a
// trailing numeric token are not statement rows.
func splitStatementLine(line string) (label, amount string, ok bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", "", false
	}

	// Walk back over trailing numeric tokens; the last one is the value.
	end := len(fields)
	for end > 0 {
		if _, numeric := table.NumericValue(fields[end-1]); !numeric {
			break
		}
		end--
	}
	if end == len(fields) || end == 0 {
		return "", "", false // no numeric tail, or no label at all
	}

	label = strings.Join(fields[:end], " ")
	amount = fields[len(fields)-1]
	return label, amount, true
}
