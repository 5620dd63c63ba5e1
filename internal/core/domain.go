package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Account types and natures follow the Colombian PUC chart of accounts.
// Values are stored verbatim in the ledger, so the Spanish enumeration is
// part of the data contract, not a display concern.
const (
	TypeAsset     AccountType = "ACTIVO"
	TypeLiability AccountType = "PASIVO"
	TypeIncome    AccountType = "INGRESO"
	TypeExpense   AccountType = "GASTO"

	NatureDebit  AccountNature = "DEBITO"
	NatureCredit AccountNature = "CREDITO"
)

type (
	AccountType   string
	AccountNature string

	// Account is one chart-of-accounts entry joined onto journal lines.
	Account struct {
		Code   string
		Name   string
		Type   AccountType
		Nature AccountNature
	}

	// JournalLine is a single posting. Lines are read-only snapshots owned
	// by the store; a line whose account join is missing carries the zero
	// Account rather than failing.
	JournalLine struct {
		AccountCode string
		Debit       decimal.Decimal
		Credit      decimal.Decimal
		Account     Account
	}

	// AccountTotal is the per-account fold of all journal lines sharing a
	// code. It lives only for the duration of one aggregation run.
	AccountTotal struct {
		Code    string
		Name    string
		Type    AccountType
		Nature  AccountNature
		Debit   decimal.Decimal
		Credit  decimal.Decimal
		Balance decimal.Decimal
	}

	// ThirdParty is a counterpart record. Role flags are not exclusive; a
	// party may be client, provider and employee at once.
	ThirdParty struct {
		FullName   string
		IsClient   bool
		IsProvider bool
		IsEmployee bool
	}

	// JournalEntry is an entry header, used only for the recent-activity
	// feed. Date keeps the store's textual form (ISO, possibly with a time
	// component) and is truncated to its date part for display.
	JournalEntry struct {
		Date        string
		Description string
		State       string
	}
)

// NormalizedName returns the lower-cased account name used for the
// marker-based VAT and withholding classification.
func (t AccountTotal) NormalizedName() string {
	return strings.ToLower(t.Name)
}

// DebitNormal reports whether the account balance grows on the debit side.
// Any missing or unrecognized nature falls back to the credit-normal rule,
// matching how the ledger's reports treat unjoined accounts.
func (n AccountNature) DebitNormal() bool {
	return n == NatureDebit
}
