// Package aggregate folds every processed statement of a company into one
// flat financial-position snapshot.
package aggregate

import (
	"log"

	"finhealth/pkg/models"
)

// snapshotKeys is the full field set of a Snapshot. Fields never mentioned by
// any document stay at zero.
var snapshotKeys = []string{
	"revenue", "gross_profit", "net_profit", "operating_profit", "ebitda",
	"current_assets", "current_liabilities", "total_assets", "total_liabilities",
	"equity", "inventory", "cash", "accounts_receivable", "accounts_payable",
	"cogs", "operating_cash_flow", "investing_cash_flow", "financing_cash_flow",
}

// Snapshot is a company's aggregated financial position. It is derived state:
// re-folding the same documents in the same order always reproduces it.
type Snapshot map[string]float64

// New returns a Snapshot with every field zeroed.
func New() Snapshot {
	s := make(Snapshot, len(snapshotKeys))
	for _, k := range snapshotKeys {
		s[k] = 0
	}
	return s
}

// Keys returns the snapshot field names in canonical order.
func Keys() []string {
	keys := make([]string, len(snapshotKeys))
	copy(keys, snapshotKeys)
	return keys
}

// Fold merges normalized statements, oldest first. For each snapshot field,
// the last document that mentions the field wins; documents with a missing or
// malformed payload are skipped, never fatal. The caller supplies a stable
// order (upload time ascending) so results are reproducible.
func Fold(statements []*models.NormalizedStatement) Snapshot {
	s := New()
	for i, stmt := range statements {
		if stmt == nil || stmt.ExtractedMetrics == nil {
			log.Printf("[AGGREGATE] skipping document %d: no usable metrics payload", i)
			continue
		}
		for _, key := range snapshotKeys {
			if v, ok := stmt.ExtractedMetrics[key]; ok {
				s[key] = v
			}
		}
	}
	return s
}

// FoldDocuments is Fold over stored documents, ignoring unprocessed ones.
func FoldDocuments(docs []*models.Document) Snapshot {
	statements := make([]*models.NormalizedStatement, 0, len(docs))
	for _, doc := range docs {
		if doc == nil || !doc.Processed {
			continue
		}
		statements = append(statements, doc.Data)
	}
	return Fold(statements)
}

// Sufficient reports whether the snapshot carries enough signal for ratio and
// health computation: non-zero revenue or non-zero total assets. Anything
// less is "insufficient data", a business outcome rather than an error.
func (s Snapshot) Sufficient() bool {
	return s["revenue"] > 0 || s["total_assets"] > 0
}
