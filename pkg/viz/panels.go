package viz

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"biasreport/pkg/model"
	"biasreport/pkg/stats"
)

// Placeholder texts for panels that have nothing to draw.
const (
	NoMetricsMessage = "Cannot calculate disparity metrics with available data"
	NoGroupsMessage  = "No labelled records to aggregate"
	NoPassesMessage  = "No students passed"
)

func labelsOf(groups []stats.GroupSummary) []string {
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Label
	}
	return names
}

// PassRatePanel draws one bar per group with its pass rate percentage on top.
func PassRatePanel(groups []stats.GroupSummary) (*plot.Plot, error) {
	p := newPanel("Bar Exam Pass Rate by Race", "Race", "Pass Rate (%)")
	if len(groups) == 0 {
		p.HideAxes()
		p.Add(newMessage(NoGroupsMessage))
		return p, nil
	}

	w := barWidth(len(groups))
	top := 0.0
	xys := make(plotter.XYs, len(groups))
	labels := make([]string, len(groups))
	for i, g := range groups {
		bar, err := plotter.NewBarChart(plotter.Values{g.Percent()}, w)
		if err != nil {
			return nil, fmt.Errorf("pass rate bar %q: %w", g.Label, err)
		}
		bar.XMin = float64(i)
		bar.Color = []color.Color{Palette[1], Palette[3]}[i%2]
		bar.LineStyle.Width = 0
		p.Add(bar)

		xys[i] = plotter.XY{X: float64(i), Y: g.Percent() + 1}
		labels[i] = fmt.Sprintf("%.1f%%", g.Percent())
		top = math.Max(top, g.Percent())
	}

	annot, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return nil, fmt.Errorf("pass rate labels: %w", err)
	}
	for i := range annot.TextStyle {
		annot.TextStyle[i] = textStyle(Palette[4], baseFontSize, text.XCenter, text.YBottom)
	}
	p.Add(annot)

	p.NominalX(labelsOf(groups)...)
	p.Y.Min = 0
	p.Y.Max = math.Max(top*1.15+5, 10)
	return p, nil
}

// PassFailPanel stacks pass counts on fail counts for every group.
func PassFailPanel(groups []stats.GroupSummary) (*plot.Plot, error) {
	p := newPanel("Pass/Fail Distribution by Race", "Race", "Number of Students")
	if len(groups) == 0 {
		p.HideAxes()
		p.Add(newMessage(NoGroupsMessage))
		return p, nil
	}

	fails := make(plotter.Values, len(groups))
	passes := make(plotter.Values, len(groups))
	top := 0
	for i, g := range groups {
		fails[i] = float64(g.Failed())
		passes[i] = float64(g.Passed)
		if g.Count > top {
			top = g.Count
		}
	}

	w := barWidth(len(groups))
	fail, err := plotter.NewBarChart(fails, w)
	if err != nil {
		return nil, fmt.Errorf("fail bars: %w", err)
	}
	fail.Color = Palette[0]
	fail.LineStyle.Width = 0

	pass, err := plotter.NewBarChart(passes, w)
	if err != nil {
		return nil, fmt.Errorf("pass bars: %w", err)
	}
	pass.Color = Palette[3]
	pass.LineStyle.Width = 0
	pass.StackOn(fail)

	p.Add(fail, pass)
	p.Legend.Add("Bar Exam Result")
	p.Legend.Add("Fail", fail)
	p.Legend.Add("Pass", pass)
	p.Legend.Top = true

	p.NominalX(labelsOf(groups)...)
	p.Y.Min = 0
	p.Y.Max = float64(top) * 1.2
	return p, nil
}

// CompositionPanel draws the racial make-up of the students who passed.
func CompositionPanel(groups []stats.GroupSummary) *plot.Plot {
	p := newPanel("Racial Composition of Students Who Passed", "", "")
	p.HideAxes()

	shares := stats.PassingComposition(groups)
	if len(shares) == 0 {
		p.Add(newMessage(NoPassesMessage))
		return p
	}
	p.Add(newPieChart(shares))
	return p
}

// FairnessPanel contrasts the actual metrics with their parity values.
// When ok is false it shows NoMetricsMessage instead.
func FairnessPanel(m model.FairnessMetrics, ok bool) (*plot.Plot, error) {
	p := newPanel("Fairness Metrics: Actual vs. Fair Values", "", "")
	if !ok {
		p.HideAxes()
		p.Add(newMessage(NoMetricsMessage))
		return p, nil
	}

	di := m.DI
	diText := fmt.Sprintf("%.3f", di)
	if math.IsNaN(di) {
		di = 0
		diText = "n/a"
	}
	actual := plotter.Values{m.SPD, di}
	fair := plotter.Values{0, 1}

	w := barWidth(4)
	actualBars, err := plotter.NewBarChart(actual, w)
	if err != nil {
		return nil, fmt.Errorf("actual metric bars: %w", err)
	}
	actualBars.Color = Palette[2]
	actualBars.LineStyle.Width = 0
	actualBars.Offset = -w / 2

	fairBars, err := plotter.NewBarChart(fair, w)
	if err != nil {
		return nil, fmt.Errorf("fair metric bars: %w", err)
	}
	fairBars.Color = Palette[0]
	fairBars.LineStyle.Width = 0
	fairBars.Offset = w / 2

	baseline, err := plotter.NewLine(plotter.XYs{{X: -0.5, Y: 0}, {X: 1.5, Y: 0}})
	if err != nil {
		return nil, fmt.Errorf("baseline: %w", err)
	}
	baseline.LineStyle.Color = Palette[0]
	baseline.LineStyle.Width = vg.Points(1)

	actualText, err := metricLabels(actual, []string{fmt.Sprintf("%.3f", m.SPD), diText}, -w/2)
	if err != nil {
		return nil, err
	}
	fairText, err := metricLabels(fair, []string{"Fair: 0.0", "Fair: 1.0"}, w/2)
	if err != nil {
		return nil, err
	}

	p.Add(actualBars, fairBars, baseline, actualText, fairText)
	p.Legend.Add("Actual", actualBars)
	p.Legend.Add("Fair Value", fairBars)
	p.Legend.Top = true

	p.NominalX("Statistical Parity\nDifference", "Disparate\nImpact")
	p.X.Tick.Label.Color = Palette[4]
	lo := math.Min(0, math.Min(m.SPD, di))
	hi := math.Max(1, math.Max(m.SPD, di))
	p.Y.Min = lo - 0.15*(hi-lo)
	p.Y.Max = hi + 0.25*(hi-lo)
	return p, nil
}

// metricLabels annotates the end of each bar, just above positive bars and
// just below negative ones.
func metricLabels(vals plotter.Values, texts []string, xOffset vg.Length) (*plotter.Labels, error) {
	xys := make(plotter.XYs, len(vals))
	for i, v := range vals {
		xys[i] = plotter.XY{X: float64(i), Y: v}
	}
	l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return nil, fmt.Errorf("metric labels: %w", err)
	}
	for i, v := range vals {
		ya := text.YBottom
		if v < 0 {
			ya = text.YTop
		}
		l.TextStyle[i] = textStyle(Palette[4], tickFontSize, text.XCenter, ya)
	}
	l.Offset = vg.Point{X: xOffset}
	return l, nil
}
