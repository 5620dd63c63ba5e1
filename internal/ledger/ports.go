// Package ledger implements the aggregation engine: folding raw journal
// lines into per-account totals and deriving the financial summary from
// them. It performs no I/O of its own; the reader ports below are satisfied
// by the storage layer.
package ledger

import (
	"context"

	"digicfo/internal/core"
)

// LineReader returns every posted journal line with its account metadata
// joined. Lines whose account is missing from the chart carry empty
// metadata.
type LineReader interface {
	JournalLines(ctx context.Context) ([]core.JournalLine, error)
}

// PartyReader returns all third-party records.
type PartyReader interface {
	ThirdParties(ctx context.Context) ([]core.ThirdParty, error)
}

// ActivityReader returns the most recent journal entry headers, newest
// first.
type ActivityReader interface {
	RecentEntries(ctx context.Context, limit int) ([]core.JournalEntry, error)
}
