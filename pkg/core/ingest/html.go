package ingest

import (
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"finhealth/pkg/core/table"
)

// HTMLReader extracts every <table> from an HTML statement export. The first
// row with more than one cell becomes the column header; each later row a
// data row. Rows are kept as strings, like the CSV path.
type HTMLReader struct{}

func (r *HTMLReader) Read(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	return r.ReadString(path, string(data))
}

// ReadString parses HTML already held in memory.
func (r *HTMLReader) ReadString(path, html string) (*Source, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}

	var tables []table.RawTable
	doc.Find("table").Each(func(_ int, sel *goquery.Selection) {
		if t, ok := parseHTMLTable(sel); ok {
			tables = append(tables, t)
		}
	})

	if len(tables) == 0 {
		return nil, &ReadError{Path: path, Err: fmt.Errorf("no tables found in document")}
	}
	return &Source{Tables: tables}, nil
}

func parseHTMLTable(sel *goquery.Selection) (table.RawTable, bool) {
	trs := sel.Find("tr")
	if trs.Length() < 2 {
		return table.RawTable{}, false // need header + at least one data row
	}

	var header []string
	var rows [][]table.Cell
	headerIndex := -1

	// Header: the first row with more than one cell. Single-cell leading rows
	// are usually titles ("Consolidated Balance Sheet") and are skipped.
	trs.EachWithBreak(func(i int, tr *goquery.Selection) bool {
		cells := rowCells(tr)
		if len(cells) > 1 {
			header = cells
			headerIndex = i
			return false
		}
		return true
	})
	if headerIndex < 0 {
		return table.RawTable{}, false
	}

	trs.Slice(headerIndex+1, trs.Length()).Each(func(_ int, tr *goquery.Selection) {
		cells := rowCells(tr)
		if len(cells) == 0 {
			return
		}
		row := make([]table.Cell, len(cells))
		for i, c := range cells {
			row[i] = c
		}
		rows = append(rows, row)
	})

	if len(rows) == 0 {
		return table.RawTable{}, false
	}
	return table.New(header, rows), true
}

func rowCells(tr *goquery.Selection) []string {
	var cells []string
	tr.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
		cells = append(cells, strings.TrimSpace(cell.Text()))
	})
	return cells
}
