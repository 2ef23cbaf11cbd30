package present

import (
	"fmt"
	"strings"
)

const noDataMarkdown = "_No dated rows in the sheet yet._\n"

// SummaryMarkdown renders the headline figures and goal progress
func SummaryMarkdown(v *View) string {
	var b strings.Builder

	b.WriteString("# Portfolio snapshot\n\n")
	if !v.HasData {
		b.WriteString(noDataMarkdown)
	} else {
		fmt.Fprintf(&b, "As of **%s**\n\n", v.Date)
	}

	b.WriteString("| | |\n|---|---:|\n")
	fmt.Fprintf(&b, "| Total assets | %s |\n", v.Total.Display)
	fmt.Fprintf(&b, "| Target | %s |\n", v.Goal.Target.Display)
	fmt.Fprintf(&b, "| Remaining | %s |\n", v.Goal.Remaining.Display)
	fmt.Fprintf(&b, "| Progress | %s |\n", v.Goal.Percent)

	if len(v.Accounts) > 0 {
		b.WriteString("\n## Accounts\n\n| Account | Amount |\n|---|---:|\n")
		for _, a := range v.Accounts {
			fmt.Fprintf(&b, "| %s | %s |\n", escape(a.Account), a.Amount.Display)
		}
	}

	return b.String()
}

// HoldingsMarkdown renders the per-holding return table
func HoldingsMarkdown(v *View) string {
	var b strings.Builder

	b.WriteString("# Holdings\n\n")
	if len(v.Holdings) == 0 {
		b.WriteString("_No holdings._\n")
		return b.String()
	}

	b.WriteString("| Holding | Principal | Valuation | Return |\n|---|---:|---:|---:|\n")
	for _, h := range v.Holdings {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", escape(h.Name), h.Principal.Display, h.Valuation.Display, h.Return)
	}
	return b.String()
}

// HistoryMarkdown renders the return history, one section per holding
func HistoryMarkdown(v *View) string {
	var b strings.Builder

	b.WriteString("# Return history\n\n")
	if len(v.History) == 0 {
		b.WriteString("_No history._\n")
		return b.String()
	}

	for i, p := range v.History {
		if i == 0 || p.Holding != v.History[i-1].Holding {
			if i > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "## %s\n\n| Date | Return |\n|---|---:|\n", escape(p.Holding))
		}
		fmt.Fprintf(&b, "| %s | %s%% |\n", p.Date, p.ReturnPct)
	}
	return b.String()
}

// BucketsMarkdown renders the asset-type breakdown
func BucketsMarkdown(v *View) string {
	var b strings.Builder

	b.WriteString("# Asset types\n\n")
	if !v.HasData {
		b.WriteString(noDataMarkdown)
		return b.String()
	}

	b.WriteString("| Type | Total |\n|---|---:|\n")
	for _, bucket := range v.Buckets {
		fmt.Fprintf(&b, "| %s | %s |\n", escape(bucket.Label), bucket.Total.Display)
	}
	return b.String()
}

// GrowthMarkdown renders the total-assets series in table order
func GrowthMarkdown(v *View) string {
	var b strings.Builder

	b.WriteString("# Asset growth\n\n")
	if len(v.Growth) == 0 {
		b.WriteString("_No growth series._\n")
		return b.String()
	}

	b.WriteString("| Date | Total |\n|---|---:|\n")
	for _, g := range v.Growth {
		fmt.Fprintf(&b, "| %s | %s |\n", g.Date, g.Total.Display)
	}
	return b.String()
}

// escape keeps user-provided names from breaking table cells
func escape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
