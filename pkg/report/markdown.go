package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"biasreport/pkg/model"
	"biasreport/pkg/stats"
)

// Summary is everything the Markdown report describes.
type Summary struct {
	Source    string
	Rows      int
	Mapped    bool
	Groups    []stats.GroupSummary
	Metrics   model.FairnessMetrics
	HasMetric bool
	Figure    string
}

// WriteMarkdown renders s as Markdown to w.
func WriteMarkdown(w io.Writer, s Summary) error {
	md := markdown.NewMarkdown(w)

	md.H1("Law School Bar Passage Bias Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Dataset", "`" + s.Source + "`"},
			{"Records", strconv.Itoa(s.Rows)},
			{"Race encoding", encodingText(s.Mapped)},
			{"Figure", "`" + s.Figure + "`"},
		},
	})
	md.PlainText("")

	writeGroups(md, s.Groups)
	writeComposition(md, s.Groups)
	writeMetrics(md, s)

	return md.Build()
}

// SaveMarkdown writes the report to path, creating the parent directory if needed.
func SaveMarkdown(path string, s Summary) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return WriteMarkdown(f, s)
}

func encodingText(mapped bool) string {
	if mapped {
		return "numeric, decoded as 1 = White, 0 = Non-White"
	}
	return "string labels"
}

func writeGroups(md *markdown.Markdown, groups []stats.GroupSummary) {
	md.H2("Pass Rates")
	md.PlainText("")

	rows := make([][]string, len(groups))
	for i, g := range groups {
		rows[i] = []string{
			g.Label,
			strconv.Itoa(g.Count),
			strconv.Itoa(g.Passed),
			strconv.Itoa(g.Failed()),
			fmt.Sprintf("%.1f%%", g.Percent()),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Race", "Students", "Passed", "Failed", "Pass Rate"},
		Rows:   rows,
	})
	md.PlainText("")
}

func writeComposition(md *markdown.Markdown, groups []stats.GroupSummary) {
	shares := stats.PassingComposition(groups)
	if len(shares) == 0 {
		return
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Racial Composition of Students Who Passed"),
		piechart.WithShowData(true),
	)
	for _, s := range shares {
		chart.LabelAndIntValue(s.Label, uint64(s.Count))
	}

	md.H2("Passing Composition")
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func writeMetrics(md *markdown.Markdown, s Summary) {
	md.H2("Fairness Metrics")
	md.PlainText("")

	if !s.HasMetric {
		md.Note("Cannot calculate disparity metrics with available data: both White and Non-White groups are required.")
		md.PlainText("")
		return
	}

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Actual", "Fair Value"},
		Rows: [][]string{
			{"Statistical Parity Difference", formatMetric(s.Metrics.SPD), "0.000"},
			{"Disparate Impact", formatMetric(s.Metrics.DI), "1.000"},
		},
	})
	md.PlainText("")

	switch {
	case math.IsNaN(s.Metrics.DI):
		md.Warningf("Disparate impact is undefined because no %s student passed.", model.PrivilegedGroup)
	case !s.Metrics.PassesFourFifths():
		md.Warningf("Disparate impact %.3f is below the four-fifths threshold of %.1f.", s.Metrics.DI, model.FourFifths)
	default:
		md.Tip(fmt.Sprintf("Disparate impact %.3f meets the four-fifths threshold of %.1f.", s.Metrics.DI, model.FourFifths))
	}
	md.PlainText("")

	md.BulletList(
		"Statistical Parity Difference: difference in probability of positive outcome between groups (0 = fair)",
		"Disparate Impact: ratio of favorable outcomes between unprivileged and privileged groups (1.0 = fair)",
	)
}

func formatMetric(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.3f", v)
}
