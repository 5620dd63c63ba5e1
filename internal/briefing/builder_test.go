package briefing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"digicfo/internal/core"
)

type fakeStore struct {
	lines    []core.JournalLine
	parties  []core.ThirdParty
	entries  []core.JournalEntry
	linesErr error
}

func (f *fakeStore) JournalLines(ctx context.Context) ([]core.JournalLine, error) {
	return f.lines, f.linesErr
}

func (f *fakeStore) ThirdParties(ctx context.Context) ([]core.ThirdParty, error) {
	return f.parties, nil
}

func (f *fakeStore) RecentEntries(ctx context.Context, limit int) ([]core.JournalEntry, error) {
	if len(f.entries) > limit {
		return f.entries[:limit], nil
	}
	return f.entries, nil
}

func TestBuildEndToEnd(t *testing.T) {
	store := &fakeStore{
		lines: []core.JournalLine{
			{
				AccountCode: "4105",
				Credit:      decimal.NewFromInt(1000000),
				Account:     core.Account{Name: "Comercio", Type: core.TypeIncome, Nature: core.NatureCredit},
			},
			{
				AccountCode: "5105",
				Debit:       decimal.NewFromInt(300000),
				Account:     core.Account{Name: "Gastos de personal", Type: core.TypeExpense, Nature: core.NatureDebit},
			},
		},
		parties: []core.ThirdParty{
			{FullName: "Acme SAS", IsClient: true},
			{FullName: "Proveedora Ltda", IsProvider: true},
			{FullName: "Ana Gómez", IsEmployee: true, IsClient: true},
		},
		entries: []core.JournalEntry{
			{Date: "2026-08-20T10:30:00Z", Description: "Venta de mercancía", State: "APROBADO"},
		},
	}

	res := NewBuilder(store, store, store, "Spanish").Build(context.Background())

	if res.Degraded {
		t.Fatalf("clean build reported degraded: %s", res.Reason)
	}
	for _, want := range []string{
		"Income: $1.000.000",
		"Expenses: $300.000",
		"Net result: $700.000",
		"Profit margin: 70.0%",
		"Clients (2): Acme SAS, Ana Gómez",
		"Providers (1): Proveedora Ltda",
		"Employees (1): Ana Gómez",
		"- 2026-08-20: Venta de mercancía",
	} {
		if !strings.Contains(res.Document, want) {
			t.Fatalf("document missing %q:\n%s", want, res.Document)
		}
	}
}

func TestBuildDegradesOnFetchFault(t *testing.T) {
	store := &fakeStore{
		linesErr: errors.New("database is locked"),
		parties:  []core.ThirdParty{{FullName: "Acme SAS", IsClient: true}},
	}

	res := NewBuilder(store, store, store, "Spanish").Build(context.Background())

	if !res.Degraded {
		t.Fatal("fetch fault must mark the result degraded")
	}
	if !strings.Contains(res.Reason, "database is locked") {
		t.Fatalf("reason should carry the fault, got %q", res.Reason)
	}
	if !strings.Contains(res.Document, "DATA WARNING") {
		t.Fatalf("degraded document must carry the warning:\n%s", res.Document)
	}
	// Best effort: the document still renders in full.
	if !strings.Contains(res.Document, "=== INSTRUCTIONS ===") {
		t.Fatalf("degraded document incomplete:\n%s", res.Document)
	}
}

func TestBuildPartyTruncation(t *testing.T) {
	store := &fakeStore{}
	for i := 1; i <= 8; i++ {
		store.parties = append(store.parties, core.ThirdParty{
			FullName: fmt.Sprintf("Cliente %d", i),
			IsClient: true,
		})
	}

	res := NewBuilder(store, store, store, "Spanish").Build(context.Background())

	if !strings.Contains(res.Document, "Clients (8): Cliente 1, Cliente 2, Cliente 3, Cliente 4, Cliente 5\n") {
		t.Fatalf("client list should count all and show the first five:\n%s", res.Document)
	}
}

func TestBuildRecentActivityTruncation(t *testing.T) {
	store := &fakeStore{}
	for i := 9; i >= 1; i-- {
		store.entries = append(store.entries, core.JournalEntry{
			Date:        fmt.Sprintf("2026-08-0%d", i),
			Description: fmt.Sprintf("asiento %d", i),
		})
	}

	res := NewBuilder(store, store, store, "Spanish").Build(context.Background())

	if !strings.Contains(res.Document, "- 2026-08-09: asiento 9") {
		t.Fatalf("newest entry missing:\n%s", res.Document)
	}
	if strings.Contains(res.Document, "asiento 4") {
		t.Fatalf("only the newest five entries should render:\n%s", res.Document)
	}
}
