// Package briefing builds the financial brief handed to the reasoning
// service: it fetches ledger data through the ledger ports, runs the
// aggregation engine and renders the result into the fixed-section system
// document.
package briefing

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"digicfo/internal/core"
	"digicfo/internal/ledger"
)

const (
	recentFetchLimit   = 10
	recentDisplayLimit = 5
	partyDisplayLimit  = 5
)

// Builder assembles the per-request financial context. All derived state is
// request-scoped; a Builder is safe for concurrent use.
type Builder struct {
	lines    ledger.LineReader
	parties  ledger.PartyReader
	activity ledger.ActivityReader
	language string
}

// Result is the outcome of one context build. Degraded means a fetch failed
// and the document was rendered from partial data; callers decide whether a
// degraded brief is still worth sending.
type Result struct {
	Document string
	Degraded bool
	Reason   string
}

func NewBuilder(lines ledger.LineReader, parties ledger.PartyReader, activity ledger.ActivityReader, language string) *Builder {
	return &Builder{
		lines:    lines,
		parties:  parties,
		activity: activity,
		language: language,
	}
}

// Build runs the full pipeline: the three fetches are issued concurrently,
// aggregation and summarization wait on the ledger lines, and party and
// activity data only feed their own sections. A fetch fault is caught here,
// at the boundary of the whole step, and degrades the brief instead of
// failing the request.
func (b *Builder) Build(ctx context.Context) Result {
	var (
		lines   []core.JournalLine
		parties []core.ThirdParty
		entries []core.JournalEntry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		lines, err = b.lines.JournalLines(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		parties, err = b.parties.ThirdParties(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		entries, err = b.activity.RecentEntries(gctx, recentFetchLimit)
		return err
	})
	fetchErr := g.Wait()

	summary := ledger.Summarize(ledger.Aggregate(lines))
	if fetchErr != nil {
		summary.Error = fetchErr.Error()
		slog.WarnContext(ctx, "Building degraded financial context", "error", fetchErr)
	}

	doc := Render(Context{
		Summary:        summary,
		Parties:        partitionParties(parties),
		RecentActivity: formatActivity(entries),
		Language:       b.language,
	})

	res := Result{Document: doc}
	if fetchErr != nil {
		res.Degraded = true
		res.Reason = fetchErr.Error()
	}
	return res
}

// partitionParties splits third parties into role lists. Roles are not
// exclusive, so one party may appear in several lists. Counts cover every
// match while the display lists keep only the first few in fetch order.
func partitionParties(parties []core.ThirdParty) core.PartyBreakdown {
	var pb core.PartyBreakdown
	for _, p := range parties {
		if p.IsClient {
			pb.ClientCount++
			if len(pb.Clients) < partyDisplayLimit {
				pb.Clients = append(pb.Clients, p.FullName)
			}
		}
		if p.IsProvider {
			pb.ProviderCount++
			if len(pb.Providers) < partyDisplayLimit {
				pb.Providers = append(pb.Providers, p.FullName)
			}
		}
		if p.IsEmployee {
			pb.EmployeeCount++
			if len(pb.Employees) < partyDisplayLimit {
				pb.Employees = append(pb.Employees, p.FullName)
			}
		}
	}
	return pb
}

// formatActivity keeps the newest entries and renders each as
// "<date>: <description>", truncating the date to its ISO day part.
func formatActivity(entries []core.JournalEntry) []string {
	if len(entries) > recentDisplayLimit {
		entries = entries[:recentDisplayLimit]
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		date := e.Date
		if len(date) > 10 {
			date = date[:10]
		}
		out = append(out, date+": "+e.Description)
	}
	return out
}
