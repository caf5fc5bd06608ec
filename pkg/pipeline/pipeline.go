// Package pipeline runs the bias report end to end: load, validate,
// normalize, aggregate, measure, render and save.
package pipeline

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"biasreport/pkg/data"
	"biasreport/pkg/dataprep"
	"biasreport/pkg/model"
	"biasreport/pkg/report"
	"biasreport/pkg/stats"
	"biasreport/pkg/viz"
)

// Column names read from the dataset.
const (
	RaceColumn    = "race"
	OutcomeColumn = "pass_bar"
)

// Options configures a Generator.
type Options struct {
	InputPath  string
	OutputPath string
	// ReportPath is the Markdown summary destination. Empty skips it.
	ReportPath string
	DPI        int
	// Stdout receives the pass rate table. Defaults to os.Stdout.
	Stdout io.Writer
}

// Result is what a successful run computed and wrote.
type Result struct {
	Rows       int
	Mapped     bool
	Groups     []stats.GroupSummary
	Metrics    model.FairnessMetrics
	HasMetrics bool
	FigurePath string
	ReportPath string
}

// Generator produces the bias report. It holds no state between runs.
type Generator struct {
	opts Options
	log  zerolog.Logger
}

// NewGenerator returns a Generator writing diagnostics to log.
func NewGenerator(opts Options, log zerolog.Logger) *Generator {
	if opts.DPI <= 0 {
		opts.DPI = viz.DefaultDPI
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	return &Generator{opts: opts, log: log}
}

// Run executes every step in order. Load and schema failures wrap
// data.ErrLoad and data.ErrSchema; nothing is written when any step fails.
// Errors are returned, not logged, so the caller reports each one once.
func (g *Generator) Run() (*Result, error) {
	g.log.Info().Str("path", g.opts.InputPath).Msg("Loading Law School dataset")
	ds, err := data.LoadCSV(g.opts.InputPath)
	if err != nil {
		return nil, err
	}
	g.log.Info().
		Int("rows", ds.NumRows()).
		Int("columns", ds.NumCols()).
		Msg("Dataset loaded successfully")
	g.log.Debug().Strs("columns", ds.Headers).Msg("Columns in the dataset")

	if err := LawSchool.Check(ds); err != nil {
		return nil, err
	}

	res, err := g.Analyze(ds)
	if err != nil {
		return nil, err
	}
	if err := report.PrintPassRates(g.opts.Stdout, res.Groups); err != nil {
		return nil, fmt.Errorf("print pass rates: %w", err)
	}

	fig, err := viz.NewFigure(res.Groups, res.Metrics, res.HasMetrics)
	if err != nil {
		return nil, fmt.Errorf("render figure: %w", err)
	}
	if err := viz.SavePNG(fig, g.opts.OutputPath, g.opts.DPI); err != nil {
		return nil, err
	}
	res.FigurePath = g.opts.OutputPath
	g.log.Info().Str("path", res.FigurePath).Int("dpi", g.opts.DPI).Msg("Visualization complete")

	if g.opts.ReportPath != "" {
		err := report.SaveMarkdown(g.opts.ReportPath, report.Summary{
			Source:    g.opts.InputPath,
			Rows:      res.Rows,
			Mapped:    res.Mapped,
			Groups:    res.Groups,
			Metrics:   res.Metrics,
			HasMetric: res.HasMetrics,
			Figure:    res.FigurePath,
		})
		if err != nil {
			return nil, fmt.Errorf("write summary: %w", err)
		}
		res.ReportPath = g.opts.ReportPath
		g.log.Info().Str("path", res.ReportPath).Msg("Summary written")
	}

	return res, nil
}

// Analyze derives group summaries and fairness metrics from a dataset that
// already passed the schema check.
func (g *Generator) Analyze(ds *data.Dataset) (*Result, error) {
	race, err := ds.Column(RaceColumn)
	if err != nil {
		return nil, err
	}
	outcome, err := ds.Column(OutcomeColumn)
	if err != nil {
		return nil, err
	}

	labels, mapped := dataprep.NormalizeLabels(race)
	if mapped {
		g.log.Info().Msg("Race is numerically encoded, mapping 1 to White and 0 to Non-White")
	} else {
		g.log.Info().Msg("Race is already a string category")
	}

	outcomes, err := stats.ParseOutcomes(outcome)
	if err != nil {
		return nil, fmt.Errorf("column %s: %w", OutcomeColumn, err)
	}
	if n := dataprep.CountMissing(outcome); n > 0 {
		g.log.Warn().Int("rows", n).Msg("Skipping rows without a bar exam result")
	}

	groups := stats.PassRates(labels, outcomes)
	for _, grp := range groups {
		g.log.Info().
			Str("race", grp.Label).
			Int("students", grp.Count).
			Int("passed", grp.Passed).
			Float64("pass_rate", grp.Rate).
			Msg("Pass rate")
	}

	m, ok := model.Fairness(groups)
	if ok {
		g.log.Info().
			Float64("statistical_parity_difference", m.SPD).
			Float64("disparate_impact", m.DI).
			Msg("Fairness metrics")
	} else {
		g.log.Warn().Msg(viz.NoMetricsMessage)
	}

	return &Result{
		Rows:       ds.NumRows(),
		Mapped:     mapped,
		Groups:     groups,
		Metrics:    m,
		HasMetrics: ok,
	}, nil
}
