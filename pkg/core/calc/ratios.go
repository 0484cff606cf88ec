// Package calc holds the pure financial math: ratio computation, health
// scoring, and trend/forecast signals. Every function is stateless and
// deterministic over its inputs.
package calc

import (
	"finhealth/pkg/core/aggregate"
)

// =============================================================================
// RATIO ENGINE
// =============================================================================

// LiquidityRatios measure short-term obligations coverage.
type LiquidityRatios struct {
	CurrentRatio float64 `json:"current_ratio"`
	QuickRatio   float64 `json:"quick_ratio"`
	CashRatio    float64 `json:"cash_ratio"`
}

// ProfitabilityRatios are margin and return percentages (x100).
type ProfitabilityRatios struct {
	GrossProfitMargin float64 `json:"gross_profit_margin"`
	NetProfitMargin   float64 `json:"net_profit_margin"`
	ReturnOnAssets    float64 `json:"return_on_assets"`
	ReturnOnEquity    float64 `json:"return_on_equity"`
}

// LeverageRatios measure debt burden and debt service capacity.
type LeverageRatios struct {
	DebtToEquity     float64 `json:"debt_to_equity"`
	DebtToAssets     float64 `json:"debt_to_assets"`
	InterestCoverage float64 `json:"interest_coverage"`
}

// EfficiencyRatios measure asset and working-capital utilization.
type EfficiencyRatios struct {
	AssetTurnover       float64 `json:"asset_turnover"`
	InventoryTurnover   float64 `json:"inventory_turnover"`
	DaysInventory       float64 `json:"days_inventory"`
	ReceivablesTurnover float64 `json:"receivables_turnover"`
	DaysReceivable      float64 `json:"days_receivable"`
}

// RatioSet is the full derived ratio output for one snapshot.
type RatioSet struct {
	Liquidity      LiquidityRatios     `json:"liquidity"`
	Profitability  ProfitabilityRatios `json:"profitability"`
	Leverage       LeverageRatios      `json:"leverage"`
	Efficiency     EfficiencyRatios    `json:"efficiency"`
	WorkingCapital float64             `json:"working_capital"`
}

// Liquidity computes current, quick, and cash ratios. All three are 0 when
// current liabilities are not positive: 0 means "unknown/neutral" downstream,
// never a measured zero, so no division path may panic or produce Inf/NaN.
func Liquidity(currentAssets, currentLiabilities, inventory, cash float64) LiquidityRatios {
	if currentLiabilities <= 0 {
		return LiquidityRatios{}
	}
	return LiquidityRatios{
		CurrentRatio: currentAssets / currentLiabilities,
		QuickRatio:   (currentAssets - inventory) / currentLiabilities,
		CashRatio:    cash / currentLiabilities,
	}
}

// Profitability computes margin and return percentages.
func Profitability(revenue, grossProfit, netProfit, totalAssets, equity float64) ProfitabilityRatios {
	var r ProfitabilityRatios
	if revenue > 0 {
		r.GrossProfitMargin = grossProfit / revenue * 100
		r.NetProfitMargin = netProfit / revenue * 100
	}
	if totalAssets > 0 {
		r.ReturnOnAssets = netProfit / totalAssets * 100
	}
	if equity > 0 {
		r.ReturnOnEquity = netProfit / equity * 100
	}
	return r
}

// Leverage computes debt ratios. ebit should be EBITDA when available,
// operating profit otherwise.
func Leverage(totalDebt, totalAssets, equity, ebit, interestExpense float64) LeverageRatios {
	var r LeverageRatios
	if equity > 0 {
		r.DebtToEquity = totalDebt / equity
	}
	if totalAssets > 0 {
		r.DebtToAssets = totalDebt / totalAssets
	}
	if interestExpense > 0 {
		r.InterestCoverage = ebit / interestExpense
	}
	return r
}

// Efficiency computes turnover ratios and their day equivalents. Turnover and
// days pairs require both operands positive; otherwise both stay 0.
func Efficiency(revenue, totalAssets, inventory, cogs, accountsReceivable float64) EfficiencyRatios {
	var r EfficiencyRatios
	if totalAssets > 0 {
		r.AssetTurnover = revenue / totalAssets
	}
	if inventory > 0 && cogs > 0 {
		r.InventoryTurnover = cogs / inventory
		r.DaysInventory = 365 / r.InventoryTurnover
	}
	if accountsReceivable > 0 && revenue > 0 {
		r.ReceivablesTurnover = revenue / accountsReceivable
		r.DaysReceivable = 365 / r.ReceivablesTurnover
	}
	return r
}

// WorkingCapital may legitimately be negative; it is not guarded.
func WorkingCapital(currentAssets, currentLiabilities float64) float64 {
	return currentAssets - currentLiabilities
}

// FreeCashFlow is operating cash flow less capital expenditure.
func FreeCashFlow(operatingCashFlow, capitalExpenditure float64) float64 {
	return operatingCashFlow - capitalExpenditure
}

// ComputeRatios derives the full RatioSet from an aggregated snapshot.
// Total debt is total liabilities; ebit prefers EBITDA over operating profit.
func ComputeRatios(s aggregate.Snapshot) RatioSet {
	ebit := s["ebitda"]
	if ebit == 0 {
		ebit = s["operating_profit"]
	}

	return RatioSet{
		Liquidity: Liquidity(
			s["current_assets"], s["current_liabilities"], s["inventory"], s["cash"]),
		Profitability: Profitability(
			s["revenue"], s["gross_profit"], s["net_profit"], s["total_assets"], s["equity"]),
		Leverage: Leverage(
			s["total_liabilities"], s["total_assets"], s["equity"], ebit, 0),
		Efficiency: Efficiency(
			s["revenue"], s["total_assets"], s["inventory"], s["cogs"], s["accounts_receivable"]),
		WorkingCapital: WorkingCapital(s["current_assets"], s["current_liabilities"]),
	}
}
