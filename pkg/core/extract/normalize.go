package extract

import (
	"finhealth/pkg/models"
)

// statementShapes fixes which canonical keys each statement type carries.
// Every key is always present in the normalized output; absence from the
// extraction means 0, by policy — zero is a valid financial default and
// normalization never fails on missing fields.
var statementShapes = map[models.StatementType][]string{
	models.StatementIncome: {
		"revenue", "expenses", "gross_profit", "net_profit", "operating_profit",
	},
	models.StatementBalanceSheet: {
		"total_assets", "current_assets", "total_liabilities", "current_liabilities", "equity",
	},
	models.StatementCashFlow: {
		"operating_cash_flow", "investing_cash_flow", "financing_cash_flow",
	},
}

// Normalize maps an extraction into the canonical shape for statementType.
// An unrecognized statement type yields empty metrics, not an error.
func Normalize(ext Extraction, statementType models.StatementType) *models.NormalizedStatement {
	data := make(map[string]interface{}, len(ext.Metrics)+1)
	for k, v := range ext.Metrics {
		data[k] = v
	}
	data["raw_data"] = ext.RawData

	metrics := make(map[string]float64)
	for _, key := range statementShapes[statementType] {
		metrics[key] = ext.Metrics[key] // missing -> 0
	}

	return &models.NormalizedStatement{
		StatementType:    statementType,
		Data:             data,
		ExtractedMetrics: metrics,
	}
}
