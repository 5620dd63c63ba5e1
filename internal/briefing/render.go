package briefing

import (
	"fmt"
	"strings"

	"digicfo/internal/core"
)

const noData = "(no data)"

// Context is everything the renderer folds into the brief handed to the
// reasoning service.
type Context struct {
	Summary        core.FinancialSummary
	Parties        core.PartyBreakdown
	RecentActivity []string
	Language       string
}

// Render produces the fixed-structure system document. Section order and
// labels are part of the contract with the reasoning service: it is
// prompted with exactly this layout, so changes here change observable
// answers.
func Render(c Context) string {
	s := c.Summary
	var b strings.Builder

	b.WriteString("You are DigiCFO, an expert financial and accounting advisor for a company. ")
	b.WriteString("The figures below come from the company's real books.\n")
	if s.Error != "" {
		fmt.Fprintf(&b, "\nDATA WARNING: the financial data could not be fully loaded (%s). Figures below may be incomplete.\n", s.Error)
	}

	b.WriteString("\n=== FINANCIAL SUMMARY ===\n")
	fmt.Fprintf(&b, "Income: %s\n", core.FormatCOP(s.Income))
	fmt.Fprintf(&b, "Expenses: %s\n", core.FormatCOP(s.Expenses))
	fmt.Fprintf(&b, "Net result: %s\n", core.FormatCOP(s.NetResult))
	fmt.Fprintf(&b, "Profit margin: %.1f%%\n", s.ProfitMarginPct)

	b.WriteString("\n=== BALANCE ===\n")
	fmt.Fprintf(&b, "Assets: %s\n", core.FormatCOP(s.Assets))
	fmt.Fprintf(&b, "Liabilities: %s\n", core.FormatCOP(s.Liabilities))
	if s.LiquidityKnown {
		fmt.Fprintf(&b, "Liquidity ratio: %.2f\n", s.LiquidityRatio)
	} else {
		b.WriteString("Liquidity ratio: not applicable (no recorded liabilities)\n")
	}

	b.WriteString("\n=== TAXES ===\n")
	fmt.Fprintf(&b, "VAT generated: %s\n", core.FormatCOP(s.VATGenerated))
	fmt.Fprintf(&b, "VAT deductible: %s\n", core.FormatCOP(s.VATDeductible))
	fmt.Fprintf(&b, "VAT net payable: %s\n", core.FormatCOP(s.VATNetPayable))
	fmt.Fprintf(&b, "Withholding balance: %s\n", core.FormatCOP(s.Withholding))

	b.WriteString("\n=== COUNTERPARTIES ===\n")
	writeParties(&b, "Clients", c.Parties.ClientCount, c.Parties.Clients)
	writeParties(&b, "Providers", c.Parties.ProviderCount, c.Parties.Providers)
	writeParties(&b, "Employees", c.Parties.EmployeeCount, c.Parties.Employees)

	b.WriteString("\n=== TOP ACCOUNTS BY MOVEMENT ===\n")
	writeList(&b, s.TopAccounts)

	b.WriteString("\n=== RECENT ACTIVITY ===\n")
	writeList(&b, c.RecentActivity)

	b.WriteString("\n=== INSTRUCTIONS ===\n")
	lang := c.Language
	if lang == "" {
		lang = "Spanish"
	}
	fmt.Fprintf(&b, "Always answer in %s.\n", lang)
	b.WriteString("Cite the real figures above when they are relevant to the question.\n")
	b.WriteString("Proactively flag anomalies or risks you notice in the data.\n")
	b.WriteString("Recommend consulting a certified accountant for high-stakes decisions.\n")

	return b.String()
}

func writeParties(b *strings.Builder, label string, count int, names []string) {
	if count == 0 {
		fmt.Fprintf(b, "%s: %s\n", label, noData)
		return
	}
	fmt.Fprintf(b, "%s (%d): %s\n", label, count, strings.Join(names, ", "))
}

func writeList(b *strings.Builder, items []string) {
	if len(items) == 0 {
		b.WriteString(noData + "\n")
		return
	}
	for _, item := range items {
		b.WriteString("- " + item + "\n")
	}
}
