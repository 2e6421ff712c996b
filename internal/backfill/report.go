package backfill

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	reportTitleStyle = lipgloss.NewStyle().Bold(true)
	updatedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	skippedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	failedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	reasonStyle      = lipgloss.NewStyle().Faint(true)
)

// Render formats the run summary as a human-readable block: totals first,
// then one line per failed item so the user knows which rows still need
// attention. This output is advisory; the Summary itself is the data
// contract.
func (s *Summary) Render() string {
	var b strings.Builder

	b.WriteString(reportTitleStyle.Render("Backfill complete"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  Processed: %d\n", s.Total)
	fmt.Fprintf(&b, "  %s %d\n", updatedStyle.Render("Updated:"), s.Updated)
	fmt.Fprintf(&b, "  %s %d\n", skippedStyle.Render("Skipped:"), s.Skipped)
	fmt.Fprintf(&b, "  %s  %d\n", failedStyle.Render("Failed:"), s.Failed)

	if s.Failed > 0 {
		b.WriteString("\n")
		b.WriteString(failedStyle.Render("Failed records:"))
		b.WriteString("\n")
		for _, o := range s.Outcomes {
			if o.Success {
				continue
			}
			fmt.Fprintf(&b, "  - %s: %s\n", o.Title, reasonStyle.Render(o.Reason))
		}
	}

	return b.String()
}
