package core

import "github.com/shopspring/decimal"

// FinancialSummary is the engine's output: every metric the rendered brief
// needs, computed once per request and never mutated afterwards.
type FinancialSummary struct {
	Income      decimal.Decimal
	Expenses    decimal.Decimal
	NetResult   decimal.Decimal
	Assets      decimal.Decimal
	Liabilities decimal.Decimal

	// LiquidityRatio is only meaningful when LiquidityKnown is true; with no
	// recorded liabilities the ratio is not applicable rather than zero.
	LiquidityRatio  float64
	LiquidityKnown  bool
	ProfitMarginPct float64

	VATGenerated  decimal.Decimal
	VATDeductible decimal.Decimal
	VATNetPayable decimal.Decimal
	Withholding   decimal.Decimal

	// TopAccounts holds up to ten formatted lines for the accounts with the
	// largest absolute balance.
	TopAccounts []string

	// Error carries the captured fault text when the summary was produced
	// from partial data. Empty on a clean run.
	Error string
}

// PartyBreakdown partitions third parties by role. Counts cover every match;
// the name lists are truncated for display.
type PartyBreakdown struct {
	ClientCount   int
	ProviderCount int
	EmployeeCount int
	Clients       []string
	Providers     []string
	Employees     []string
}
