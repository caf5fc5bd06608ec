package viz

import (
	"image/color"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

// Palette is the teal scale every panel draws from, lightest first.
var Palette = [5]color.RGBA{
	{R: 0xb2, G: 0xd8, B: 0xd8, A: 0xff},
	{R: 0x66, G: 0xb2, B: 0xb2, A: 0xff},
	{R: 0x00, G: 0x80, B: 0x80, A: 0xff},
	{R: 0x00, G: 0x66, B: 0x66, A: 0xff},
	{R: 0x00, G: 0x4c, B: 0x4c, A: 0xff},
}

var white = color.White

// Font sizes in points.
const (
	baseFontSize   = 12
	titleFontSize  = 14
	tickFontSize   = 10
	legendFontSize = 10
	suptitleSize   = 20
	footerFontSize = 11
)

// newPanel returns a plot styled like the rest of the figure.
func newPanel(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Color = Palette[4]
	p.Title.TextStyle.Font.Size = vg.Points(titleFontSize)
	p.Title.Padding = vg.Points(8)

	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	for _, ax := range []*plot.Axis{&p.X, &p.Y} {
		ax.Label.TextStyle.Color = Palette[3]
		ax.Label.TextStyle.Font.Size = vg.Points(baseFontSize)
		ax.LineStyle.Color = Palette[0]
		ax.Tick.LineStyle.Color = Palette[3]
		ax.Tick.Label.Color = Palette[3]
		ax.Tick.Label.Font.Size = vg.Points(tickFontSize)
	}
	p.Y.Tick.Marker = plainTicks{}

	p.Legend.TextStyle.Color = Palette[4]
	p.Legend.TextStyle.Font.Size = vg.Points(legendFontSize)
	return p
}

// plainTicks places ticks like plot.DefaultTicks but labels them without
// padding zeros, so counts read 50 rather than 50.00.
type plainTicks struct{}

// Ticks implements plot.Ticker.
func (plainTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i, t := range ticks {
		if t.Label == "" {
			continue
		}
		v := math.Round(t.Value*1e9) / 1e9
		ticks[i].Label = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ticks
}

// textStyle builds a style on the default font.
func textStyle(c color.Color, size float64, xa text.XAlignment, ya text.YAlignment) text.Style {
	sty := text.Style{
		Color:   c,
		Font:    plot.DefaultFont,
		XAlign:  xa,
		YAlign:  ya,
		Handler: plot.DefaultTextHandler,
	}
	sty.Font.Size = vg.Points(size)
	return sty
}

// barWidth spreads n bars over a panel with room between them.
func barWidth(n int) vg.Length {
	if n < 2 {
		n = 2
	}
	return 3.6 * vg.Inch / vg.Length(n)
}
