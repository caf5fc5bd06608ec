package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"biasreport/pkg/stats"
)

var (
	headStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#006666"))
	cellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#004c4c"))
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#66b2b2")).
			Padding(0, 1)
)

// PassRateTable renders the per-group pass rates as a boxed table.
func PassRateTable(groups []stats.GroupSummary) string {
	head := headStyle.Render(fmt.Sprintf("%-12s %8s %8s %10s %12s", "race", "students", "passed", "pass_bar", "pass_rate_%"))
	lines := make([]string, 0, len(groups))
	for _, g := range groups {
		lines = append(lines, fmt.Sprintf("%-12s %8d %8d %10.6f %12.2f", g.Label, g.Count, g.Passed, g.Rate, g.Percent()))
	}
	body := cellStyle.Render(strings.Join(lines, "\n"))
	title := headStyle.Render("Bar Exam Pass Rates by Race")
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", head, body))
}

// PrintPassRates writes PassRateTable to w.
func PrintPassRates(w io.Writer, groups []stats.GroupSummary) error {
	_, err := fmt.Fprintln(w, PassRateTable(groups))
	return err
}
