package ledger

import (
	"sort"

	"digicfo/internal/core"
)

// Aggregate folds an unordered set of journal lines into per-account
// totals keyed by account code. Accumulation is a plain sum, so the result
// does not depend on input order. Lines without an account code group
// under the empty-string key instead of being rejected.
//
// The balance sign is applied once per account after the fold: debit-normal
// accounts carry debit-credit, everything else (including accounts with a
// missing or unknown nature) carries credit-debit.
func Aggregate(lines []core.JournalLine) map[string]*core.AccountTotal {
	totals := make(map[string]*core.AccountTotal)

	for _, line := range lines {
		t, ok := totals[line.AccountCode]
		if !ok {
			t = &core.AccountTotal{
				Code:   line.AccountCode,
				Name:   line.Account.Name,
				Type:   line.Account.Type,
				Nature: line.Account.Nature,
			}
			totals[line.AccountCode] = t
		}
		t.Debit = t.Debit.Add(line.Debit)
		t.Credit = t.Credit.Add(line.Credit)
	}

	for _, t := range totals {
		if t.Nature.DebitNormal() {
			t.Balance = t.Debit.Sub(t.Credit)
		} else {
			t.Balance = t.Credit.Sub(t.Debit)
		}
	}

	return totals
}

// sortedTotals returns the totals ordered by account code. Downstream
// ranking needs a deterministic base order and code order is how the
// ledger's reports list accounts.
func sortedTotals(totals map[string]*core.AccountTotal) []*core.AccountTotal {
	out := make([]*core.AccountTotal, 0, len(totals))
	for _, t := range totals {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
