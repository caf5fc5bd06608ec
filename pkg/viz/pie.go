package viz

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"biasreport/pkg/stats"
)

// pieChart draws shares as wedges, starting at twelve o'clock and running
// counter-clockwise. It ignores the plot's data coordinates and fills the
// largest circle that fits the canvas.
type pieChart struct {
	Shares []stats.Share
	Colors []color.Color

	LabelStyle   text.Style
	PercentStyle text.Style
}

func newPieChart(shares []stats.Share) *pieChart {
	return &pieChart{
		Shares:       shares,
		Colors:       []color.Color{Palette[3], Palette[1]},
		LabelStyle:   textStyle(Palette[4], baseFontSize, text.XLeft, text.YCenter),
		PercentStyle: textStyle(white, baseFontSize, text.XCenter, text.YCenter),
	}
}

type wedge struct {
	start, sweep float64
}

// mid returns the angle through the middle of the wedge.
func (w wedge) mid() float64 { return w.start + w.sweep/2 }

// wedges converts fractions into angles in radians.
func wedges(shares []stats.Share) []wedge {
	out := make([]wedge, len(shares))
	start := math.Pi / 2
	for i, s := range shares {
		sweep := 2 * math.Pi * s.Fraction
		out[i] = wedge{start: start, sweep: sweep}
		start += sweep
	}
	return out
}

// Plot implements plot.Plotter.
func (pc *pieChart) Plot(c draw.Canvas, _ *plot.Plot) {
	center := c.Center()
	r := vg.Length(math.Min(float64(c.Max.X-c.Min.X), float64(c.Max.Y-c.Min.Y))) * 0.38

	for i, w := range wedges(pc.Shares) {
		var path vg.Path
		path.Move(center)
		path.Line(polar(center, r, w.start))
		path.Arc(center, r, w.start, w.sweep)
		path.Close()
		c.SetColor(pc.Colors[i%len(pc.Colors)])
		c.Fill(path)

		c.FillText(pc.PercentStyle, polar(center, r*0.6, w.mid()), fmt.Sprintf("%.1f%%", pc.Shares[i].Fraction*100))

		lbl := pc.LabelStyle
		if math.Cos(w.mid()) < 0 {
			lbl.XAlign = text.XRight
		}
		c.FillText(lbl, polar(center, r*1.1, w.mid()), pc.Shares[i].Label)
	}
}

func polar(center vg.Point, r vg.Length, theta float64) vg.Point {
	return vg.Point{
		X: center.X + r*vg.Length(math.Cos(theta)),
		Y: center.Y + r*vg.Length(math.Sin(theta)),
	}
}

// message fills a panel with a single line of centred text.
type message struct {
	Text  string
	Style text.Style
}

func newMessage(msg string) *message {
	return &message{
		Text:  msg,
		Style: textStyle(Palette[4], baseFontSize, text.XCenter, text.YCenter),
	}
}

// Plot implements plot.Plotter.
func (m *message) Plot(c draw.Canvas, _ *plot.Plot) {
	c.FillText(m.Style, c.Center(), m.Text)
}
