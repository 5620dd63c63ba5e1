package ledger

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"digicfo/internal/core"
)

func totalsFrom(lines ...core.JournalLine) map[string]*core.AccountTotal {
	return Aggregate(lines)
}

func TestSummarizeIncomeStatement(t *testing.T) {
	lines := []core.JournalLine{
		line("4105", 0, 1000000, core.Account{Name: "Comercio", Type: core.TypeIncome, Nature: core.NatureCredit}),
		line("5105", 300000, 0, core.Account{Name: "Gastos de personal", Type: core.TypeExpense, Nature: core.NatureDebit}),
	}

	s := Summarize(totalsFrom(lines...))

	if !s.Income.Equal(decimal.NewFromInt(1000000)) {
		t.Fatalf("income = %s, expected 1000000", s.Income)
	}
	if !s.Expenses.Equal(decimal.NewFromInt(300000)) {
		t.Fatalf("expenses = %s, expected 300000", s.Expenses)
	}
	if !s.NetResult.Equal(decimal.NewFromInt(700000)) {
		t.Fatalf("net result = %s, expected 700000", s.NetResult)
	}
	if s.ProfitMarginPct != 70.0 {
		t.Fatalf("margin = %v, expected 70.0", s.ProfitMarginPct)
	}
}

func TestSummarizeLiquiditySentinel(t *testing.T) {
	t.Run("no liabilities", func(t *testing.T) {
		s := Summarize(totalsFrom(
			line("1105", 500000, 0, core.Account{Name: "Caja", Type: core.TypeAsset, Nature: core.NatureDebit}),
		))
		if s.LiquidityKnown {
			t.Fatalf("liquidity must be not-applicable with zero liabilities, got %v", s.LiquidityRatio)
		}
	})

	t.Run("with liabilities", func(t *testing.T) {
		s := Summarize(totalsFrom(
			line("1105", 500000, 0, core.Account{Name: "Caja", Type: core.TypeAsset, Nature: core.NatureDebit}),
			line("2105", 0, 250000, core.Account{Name: "Bancos nacionales", Type: core.TypeLiability, Nature: core.NatureCredit}),
		))
		if !s.LiquidityKnown {
			t.Fatal("liquidity should be known with positive liabilities")
		}
		if s.LiquidityRatio != 2.0 {
			t.Fatalf("liquidity ratio = %v, expected 2.0", s.LiquidityRatio)
		}
	})
}

func TestSummarizeMarginZeroWithoutIncome(t *testing.T) {
	s := Summarize(totalsFrom(
		line("5105", 900000, 0, core.Account{Name: "Gastos", Type: core.TypeExpense, Nature: core.NatureDebit}),
	))
	if s.ProfitMarginPct != 0 {
		t.Fatalf("margin = %v, expected 0 when income is zero", s.ProfitMarginPct)
	}
}

func TestSummarizeTaxPositions(t *testing.T) {
	s := Summarize(totalsFrom(
		line("2408", 0, 190000, core.Account{Name: "IVA generado", Type: core.TypeLiability, Nature: core.NatureCredit}),
		line("2409", 0, 120000, core.Account{Name: "IVA por pagar", Type: core.TypeLiability, Nature: core.NatureCredit}),
		line("1355", 40000, 0, core.Account{Name: "IVA descontable", Type: core.TypeAsset, Nature: core.NatureDebit}),
		line("2365", 0, 25000, core.Account{Name: "Retención en la fuente", Type: core.TypeLiability, Nature: core.NatureCredit}),
	))

	if !s.VATGenerated.Equal(decimal.NewFromInt(310000)) {
		t.Fatalf("VAT generated = %s, expected 310000", s.VATGenerated)
	}
	if !s.VATDeductible.Equal(decimal.NewFromInt(40000)) {
		t.Fatalf("VAT deductible = %s, expected 40000", s.VATDeductible)
	}
	if !s.VATNetPayable.Equal(decimal.NewFromInt(270000)) {
		t.Fatalf("VAT net payable = %s, expected 270000", s.VATNetPayable)
	}
	if !s.Withholding.Equal(decimal.NewFromInt(25000)) {
		t.Fatalf("withholding = %s, expected 25000", s.Withholding)
	}
}

func TestSummarizeTopAccounts(t *testing.T) {
	var lines []core.JournalLine
	// Twelve moving accounts plus one with a zero balance.
	amounts := []int64{100, 1200, 300, 5000, 50, 900, 2500, 75, 4100, 600, 80, 10000}
	for i, amount := range amounts {
		code := string(rune('A' + i))
		lines = append(lines, line(code, amount, 0, core.Account{Name: "Cuenta " + code, Nature: core.NatureDebit}))
	}
	lines = append(lines, line("Z", 500, 500, core.Account{Name: "Cuenta Z", Nature: core.NatureDebit}))

	s := Summarize(totalsFrom(lines...))

	if len(s.TopAccounts) != 10 {
		t.Fatalf("top accounts length = %d, expected 10", len(s.TopAccounts))
	}
	if !strings.HasPrefix(s.TopAccounts[0], "L ") || !strings.Contains(s.TopAccounts[0], "$10.000") {
		t.Fatalf("top entry should be the 10000 account, got %q", s.TopAccounts[0])
	}
	for _, entry := range s.TopAccounts {
		if strings.Contains(entry, "Cuenta Z") {
			t.Fatal("zero-balance account must not appear in top accounts")
		}
	}
	// The two smallest movers (50 and 75) fall outside the top ten.
	joined := strings.Join(s.TopAccounts, "\n")
	if strings.Contains(joined, ": $50") || strings.Contains(joined, ": $75") {
		t.Fatalf("smallest movers should be cut: %s", joined)
	}
}

func TestSummarizeTopAccountsStableTies(t *testing.T) {
	s := Summarize(totalsFrom(
		line("20", 100, 0, core.Account{Name: "Segunda", Nature: core.NatureDebit}),
		line("10", 100, 0, core.Account{Name: "Primera", Nature: core.NatureDebit}),
	))
	if len(s.TopAccounts) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(s.TopAccounts))
	}
	// Equal absolute balances keep code order.
	if !strings.HasPrefix(s.TopAccounts[0], "10 ") || !strings.HasPrefix(s.TopAccounts[1], "20 ") {
		t.Fatalf("tie order wrong: %v", s.TopAccounts)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(map[string]*core.AccountTotal{})
	if !s.Income.IsZero() || !s.NetResult.IsZero() || s.LiquidityKnown || s.ProfitMarginPct != 0 {
		t.Fatalf("empty summary not zeroed: %+v", s)
	}
	if len(s.TopAccounts) != 0 {
		t.Fatalf("expected no top accounts, got %v", s.TopAccounts)
	}
}
