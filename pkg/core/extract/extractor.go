// Package extract turns loosely structured statement tables into canonical
// financial line items and normalizes them into fixed per-statement shapes.
package extract

import (
	"log"
	"math"
	"strings"

	"finhealth/pkg/core/table"
)

// Extraction is the result of scanning one RawTable: canonical line-item key
// -> absolute value, plus the source rows preserved verbatim.
type Extraction struct {
	Metrics map[string]float64      `json:"metrics"`
	RawData []map[string]table.Cell `json:"raw_data"`
}

// FromTable extracts canonical financial line items from a RawTable.
//
// Heuristics, preserved for compatibility with historical extractions:
// the label column is the first whose name contains a label token (falling
// back to the first column), and the value column is the RIGHTMOST column
// whose populated cells are all numeric — statement exports conventionally
// put the most recent period last. Missing items are simply absent from
// Metrics; extraction itself never fails.
func FromTable(t table.RawTable) Extraction {
	ext := Extraction{
		Metrics: make(map[string]float64),
		RawData: t.Records(),
	}

	if t.NumRows() == 0 || t.NumColumns() == 0 {
		return ext
	}

	labelCol := findLabelColumn(t)
	valueCol := findValueColumn(t)
	if valueCol < 0 {
		// No numeric column at all: nothing to extract, raw data still kept.
		return ext
	}

	// label -> value map, lowercased and trimmed. Later duplicate labels
	// overwrite earlier ones, matching row iteration order.
	labels := make(map[string]float64, t.NumRows())
	for row := 0; row < t.NumRows(); row++ {
		name := cellLabel(t.CellAt(row, labelCol))
		if name == "" {
			continue
		}
		value, ok := table.NumericValue(t.CellAt(row, valueCol))
		if !ok {
			value = 0
		}
		labels[name] = value
	}

	for _, entry := range synonymTable {
		for _, label := range entry.Labels {
			if v, ok := labels[label]; ok {
				ext.Metrics[entry.Key] = math.Abs(v)
				break
			}
		}
	}

	return ext
}

// Merge folds another extraction into this one. Keys present in other win;
// raw rows are appended. Used when a source yields several tables (PDFs).
func (e Extraction) Merge(other Extraction) Extraction {
	if e.Metrics == nil {
		e.Metrics = make(map[string]float64, len(other.Metrics))
	}
	for k, v := range other.Metrics {
		e.Metrics[k] = v
	}
	e.RawData = append(e.RawData, other.RawData...)
	return e
}

// findLabelColumn returns the index of the first column whose normalized name
// contains a label token, or 0 when none matches. More than one candidate is
// legal but ambiguous, so it is logged rather than resolved further.
func findLabelColumn(t table.RawTable) int {
	first := -1
	matches := 0
	for i, col := range t.Columns() {
		name := strings.ToLower(strings.TrimSpace(col))
		for _, token := range labelColumnTokens {
			if strings.Contains(name, token) {
				matches++
				if first < 0 {
					first = i
				}
				break
			}
		}
	}
	if matches > 1 {
		log.Printf("[EXTRACT] %d label-column candidates, using first", matches)
	}
	if first < 0 {
		return 0
	}
	return first
}

// findValueColumn returns the index of the rightmost all-numeric column, or
// -1 when the table has no numeric column.
func findValueColumn(t table.RawTable) int {
	last := -1
	count := 0
	for i := 0; i < t.NumColumns(); i++ {
		if t.IsNumericColumn(i) {
			last = i
			count++
		}
	}
	if count > 1 {
		log.Printf("[EXTRACT] %d numeric columns, using rightmost as current period", count)
	}
	return last
}

func cellLabel(c table.Cell) string {
	s, ok := c.(string)
	if !ok {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(s))
}
