package viz

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"biasreport/pkg/model"
	"biasreport/pkg/stats"
)

// DefaultDPI is the resolution of the saved figure.
const DefaultDPI = 300

const (
	// Title of the whole figure.
	Title = "Bias Analysis in Law School Bar Exam Passage Rates"
	// Footer explains how to read the fairness panel.
	Footer = "Statistical Parity Difference: Difference in probability of positive outcome between groups (0 = fair)\n" +
		"Disparate Impact: Ratio of favorable outcomes between unprivileged and privileged groups (1.0 = fair)"
)

// Figure is a 2x2 grid of panels with a title above and an explanation below.
type Figure struct {
	Title  string
	Footer string
	// Panels is indexed [row][col].
	Panels [][]*plot.Plot

	Width, Height vg.Length
}

// NewFigure renders the four report panels for the given group summaries.
// m is only drawn when ok is true.
func NewFigure(groups []stats.GroupSummary, m model.FairnessMetrics, ok bool) (*Figure, error) {
	rates, err := PassRatePanel(groups)
	if err != nil {
		return nil, err
	}
	counts, err := PassFailPanel(groups)
	if err != nil {
		return nil, err
	}
	fairness, err := FairnessPanel(m, ok)
	if err != nil {
		return nil, err
	}
	return &Figure{
		Title:  Title,
		Footer: Footer,
		Panels: [][]*plot.Plot{
			{rates, counts},
			{CompositionPanel(groups), fairness},
		},
		Width:  15 * vg.Inch,
		Height: 12 * vg.Inch,
	}, nil
}

// Draw lays the figure out on dc.
func (f *Figure) Draw(dc draw.Canvas) {
	titleStyle := textStyle(Palette[3], suptitleSize, text.XCenter, text.YTop)
	footerStyle := textStyle(Palette[4], footerFontSize, text.XCenter, text.YBottom)

	pad := vg.Points(12)
	titleH := titleStyle.Height(f.Title) + 2*pad
	footerH := footerStyle.Height(f.Footer) + 3*pad

	mid := (dc.Min.X + dc.Max.X) / 2
	dc.FillText(titleStyle, vg.Point{X: mid, Y: dc.Max.Y - pad}, f.Title)
	f.drawFooter(dc, footerStyle, pad)

	body := draw.Crop(dc, 0, 0, footerH, -titleH)
	tiles := draw.Tiles{
		Rows:      len(f.Panels),
		Cols:      len(f.Panels[0]),
		PadX:      vg.Points(36),
		PadY:      vg.Points(36),
		PadLeft:   vg.Points(18),
		PadRight:  vg.Points(18),
		PadTop:    vg.Points(6),
		PadBottom: vg.Points(6),
	}
	canvases := plot.Align(f.Panels, tiles, body)
	for j := range f.Panels {
		for i, p := range f.Panels[j] {
			if p != nil {
				p.Draw(canvases[j][i])
			}
		}
	}
}

// drawFooter writes the footer text inside a lightly filled box.
func (f *Figure) drawFooter(dc draw.Canvas, sty text.Style, pad vg.Length) {
	mid := (dc.Min.X + dc.Max.X) / 2
	w := sty.Width(f.Footer)
	h := sty.Height(f.Footer)
	base := dc.Min.Y + pad

	box := vg.Rectangle{
		Min: vg.Point{X: mid - w/2 - pad/2, Y: base - pad/2},
		Max: vg.Point{X: mid + w/2 + pad/2, Y: base + h + pad/2},
	}
	var path vg.Path
	path.Move(box.Min)
	path.Line(vg.Point{X: box.Max.X, Y: box.Min.Y})
	path.Line(box.Max)
	path.Line(vg.Point{X: box.Min.X, Y: box.Max.Y})
	path.Close()

	fill := Palette[0]
	dc.SetColor(color.NRGBA{R: fill.R, G: fill.G, B: fill.B, A: 0x33})
	dc.Fill(path)
	dc.SetLineStyle(draw.LineStyle{Color: Palette[2], Width: vg.Points(1)})
	dc.Stroke(path)

	dc.FillText(sty, vg.Point{X: mid, Y: base}, f.Footer)
}

// WritePNG renders the figure at dpi and writes it to w.
func (f *Figure) WritePNG(w io.Writer, dpi int) error {
	img := vgimg.NewWith(vgimg.UseWH(f.Width, f.Height), vgimg.UseDPI(dpi))
	f.Draw(draw.New(img))
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG writes the figure to path, creating the parent directory if needed.
// The image is fully encoded before the file is created.
func SavePNG(f *Figure, path string, dpi int) error {
	var buf bytes.Buffer
	if err := f.WritePNG(&buf, dpi); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
