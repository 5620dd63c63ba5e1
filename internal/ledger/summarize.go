package ledger

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"digicfo/internal/core"
)

const topAccountLimit = 10

// Name markers for the tax positions. Classification by account-name
// substring is fragile to naming drift, but the chart has no dedicated tax
// type field; this mirrors how the books label the accounts.
const (
	markerVAT           = "iva"
	markerVATGenerated  = "generado"
	markerVATPayable    = "por pagar"
	markerVATDeductible = "descontable"
	markerWithholding   = "reten"
)

// Summarize derives the top-level financial metrics from aggregated account
// totals. It is a pure computation: division guards produce sentinel values
// and no input combination makes it fail.
func Summarize(totals map[string]*core.AccountTotal) core.FinancialSummary {
	var s core.FinancialSummary
	ordered := sortedTotals(totals)

	for _, t := range ordered {
		switch t.Type {
		case core.TypeIncome:
			s.Income = s.Income.Add(t.Balance)
		case core.TypeExpense:
			s.Expenses = s.Expenses.Add(t.Balance)
		case core.TypeAsset:
			s.Assets = s.Assets.Add(t.Balance)
		case core.TypeLiability:
			s.Liabilities = s.Liabilities.Add(t.Balance)
		}

		name := t.NormalizedName()
		if strings.Contains(name, markerVAT) {
			switch {
			case strings.Contains(name, markerVATGenerated), strings.Contains(name, markerVATPayable):
				s.VATGenerated = s.VATGenerated.Add(t.Balance)
			case strings.Contains(name, markerVATDeductible):
				s.VATDeductible = s.VATDeductible.Add(t.Balance)
			}
		}
		if strings.Contains(name, markerWithholding) {
			s.Withholding = s.Withholding.Add(t.Balance)
		}
	}

	s.NetResult = s.Income.Sub(s.Expenses)
	s.VATNetPayable = s.VATGenerated.Sub(s.VATDeductible)

	if s.Liabilities.IsPositive() {
		s.LiquidityRatio = s.Assets.Div(s.Liabilities).InexactFloat64()
		s.LiquidityKnown = true
	}
	if s.Income.IsPositive() {
		s.ProfitMarginPct = s.NetResult.Div(s.Income).Mul(decimal.NewFromInt(100)).InexactFloat64()
	}

	s.TopAccounts = topAccounts(ordered)
	return s
}

// topAccounts ranks accounts by absolute balance, descending, keeping the
// ten largest. Zero balances are excluded and ties keep code order.
func topAccounts(ordered []*core.AccountTotal) []string {
	moving := make([]*core.AccountTotal, 0, len(ordered))
	for _, t := range ordered {
		if !t.Balance.IsZero() {
			moving = append(moving, t)
		}
	}
	sort.SliceStable(moving, func(i, j int) bool {
		return moving[i].Balance.Abs().GreaterThan(moving[j].Balance.Abs())
	})
	if len(moving) > topAccountLimit {
		moving = moving[:topAccountLimit]
	}

	lines := make([]string, 0, len(moving))
	for _, t := range moving {
		label := t.Name
		if label == "" {
			label = "(unnamed account)"
		}
		lines = append(lines, fmt.Sprintf("%s %s: %s", t.Code, label, core.FormatCOP(t.Balance)))
	}
	return lines
}
