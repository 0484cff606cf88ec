// Package table provides the generic tabular value type the extraction
// pipeline operates on: ordered rows of named scalar cells, independent of
// the file format they were read from.
package table

import (
	"strconv"
	"strings"
)

// Cell is one scalar table value: string, float64, int, or nil (absent).
type Cell interface{}

// RawTable is an immutable rectangular table with named columns.
// Rows preserve insertion order; columns preserve source order.
type RawTable struct {
	columns []string
	rows    [][]Cell
}

// New builds a RawTable from a column header and row data.
// Rows shorter than the header are padded with nil cells; longer rows are
// truncated to the header width.
func New(columns []string, rows [][]Cell) RawTable {
	cols := make([]string, len(columns))
	copy(cols, columns)

	copied := make([][]Cell, 0, len(rows))
	for _, row := range rows {
		r := make([]Cell, len(cols))
		for i := range r {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		copied = append(copied, r)
	}
	return RawTable{columns: cols, rows: copied}
}

// Columns returns a copy of the column names in source order.
func (t RawTable) Columns() []string {
	cols := make([]string, len(t.columns))
	copy(cols, t.columns)
	return cols
}

// NumRows returns the row count.
func (t RawTable) NumRows() int {
	return len(t.rows)
}

// NumColumns returns the column count.
func (t RawTable) NumColumns() int {
	return len(t.columns)
}

// Cell returns the value at (row, column name), or nil if out of range or the
// column does not exist.
func (t RawTable) Cell(row int, column string) Cell {
	if row < 0 || row >= len(t.rows) {
		return nil
	}
	for i, c := range t.columns {
		if c == column {
			return t.rows[row][i]
		}
	}
	return nil
}

// CellAt returns the value at (row, column index), or nil if out of range.
func (t RawTable) CellAt(row, col int) Cell {
	if row < 0 || row >= len(t.rows) || col < 0 || col >= len(t.columns) {
		return nil
	}
	return t.rows[row][col]
}

// Records returns the rows as ordered column-name -> value maps. Used to
// preserve the source verbatim for audit alongside extracted metrics.
func (t RawTable) Records() []map[string]Cell {
	records := make([]map[string]Cell, 0, len(t.rows))
	for _, row := range t.rows {
		rec := make(map[string]Cell, len(t.columns))
		for i, col := range t.columns {
			rec[col] = row[i]
		}
		records = append(records, rec)
	}
	return records
}

// IsNumericColumn reports whether every populated cell in the column parses
// as a number, and at least one cell is populated. Blank cells are ignored so
// a sparse amount column still counts as numeric.
func (t RawTable) IsNumericColumn(col int) bool {
	if col < 0 || col >= len(t.columns) {
		return false
	}
	populated := 0
	for _, row := range t.rows {
		cell := row[col]
		if cell == nil {
			continue
		}
		if s, ok := cell.(string); ok && strings.TrimSpace(s) == "" {
			continue
		}
		if _, ok := NumericValue(cell); !ok {
			return false
		}
		populated++
	}
	return populated > 0
}

// NumericValue coerces a cell to a float64. String cells tolerate the usual
// financial formatting: thousands separators, currency symbols, and
// parenthesized negatives.
func NumericValue(cell Cell) (float64, bool) {
	switch v := cell.(type) {
	case nil:
		return 0, false
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		return parseNumericString(v)
	}
	return 0, false
}

// parseNumericString converts strings like "1,234.56", "$500", or "(250)"
// to a float64. Parentheses mean a negative amount, accounting style.
func parseNumericString(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	for _, sym := range []string{"$", "£", "€", "₹", ",", " ", " "} {
		s = strings.ReplaceAll(s, sym, "")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if negative {
		f = -f
	}
	return f, true
}
