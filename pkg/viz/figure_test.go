package viz

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"gonum.org/v1/plot"

	"biasreport/pkg/model"
	"biasreport/pkg/stats"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

func sampleGroups() []stats.GroupSummary {
	return []stats.GroupSummary{
		{Label: "Non-White", Count: 10, Passed: 6, Rate: 0.6},
		{Label: "White", Count: 10, Passed: 8, Rate: 0.8},
	}
}

func TestNewFigure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		groups []stats.GroupSummary
	}{
		{name: "both groups", groups: sampleGroups()},
		{name: "single group", groups: sampleGroups()[1:]},
		{name: "nobody passed", groups: []stats.GroupSummary{
			{Label: "Non-White", Count: 3}, {Label: "White", Count: 2},
		}},
		{name: "no groups", groups: nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m, ok := model.Fairness(tt.groups)
			fig, err := NewFigure(tt.groups, m, ok)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(fig.Panels) != 2 || len(fig.Panels[0]) != 2 || len(fig.Panels[1]) != 2 {
				t.Fatalf("expected 2x2 panels")
			}

			var buf bytes.Buffer
			if err := fig.WritePNG(&buf, 20); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !bytes.HasPrefix(buf.Bytes(), pngSignature) {
				t.Error("expected PNG output")
			}
		})
	}
}

func TestFairnessPanelNaN(t *testing.T) {
	t.Parallel()

	m := model.FairnessMetrics{PrivilegedRate: 0, UnprivilegedRate: 0.5, SPD: -0.5, DI: math.NaN()}
	if _, err := FairnessPanel(m, true); err != nil {
		t.Fatalf("NaN disparate impact should still plot: %v", err)
	}
}

func TestFairnessPanelPlaceholder(t *testing.T) {
	t.Parallel()

	p, err := FairnessPanel(model.FairnessMetrics{}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Title.Text == "" {
		t.Error("expected the placeholder panel to keep its title")
	}
}

func TestPlainTicks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		min, max float64
	}{
		{name: "counts", min: 0, max: 120},
		{name: "percent", min: 0, max: 97},
		{name: "fractions", min: -0.3, max: 1.25},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			labelled := 0
			for _, tick := range (plainTicks{}).Ticks(tt.min, tt.max) {
				if tick.Label == "" {
					continue
				}
				labelled++
				if strings.Contains(tick.Label, ".") && strings.HasSuffix(tick.Label, "0") {
					t.Errorf("label %q has padding zeros", tick.Label)
				}
				v, err := strconv.ParseFloat(tick.Label, 64)
				if err != nil || math.Abs(v-tick.Value) > 1e-9 {
					t.Errorf("label %q does not match value %v", tick.Label, tick.Value)
				}
			}
			if labelled == 0 {
				t.Errorf("expected labelled ticks between %v and %v", tt.min, tt.max)
			}
		})
	}
}

func TestPanelsShareTicker(t *testing.T) {
	t.Parallel()

	groups := sampleGroups()
	rates, err := PassRatePanel(groups)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	counts, err := PassFailPanel(groups)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for name, p := range map[string]*plot.Plot{"rates": rates, "counts": counts} {
		if _, ok := p.Y.Tick.Marker.(plainTicks); !ok {
			t.Errorf("%s: expected plainTicks marker, got %T", name, p.Y.Tick.Marker)
		}
	}
}

func TestWedges(t *testing.T) {
	t.Parallel()

	ws := wedges([]stats.Share{{Fraction: 0.75}, {Fraction: 0.25}})
	if ws[0].start != math.Pi/2 {
		t.Errorf("expected first wedge to start at 12 o'clock, got %v", ws[0].start)
	}
	if math.Abs(ws[0].sweep-1.5*math.Pi) > 1e-12 {
		t.Errorf("expected sweep 1.5pi, got %v", ws[0].sweep)
	}
	end := ws[1].start + ws[1].sweep
	if math.Abs(end-(math.Pi/2+2*math.Pi)) > 1e-12 {
		t.Errorf("expected wedges to close the circle, ended at %v", end)
	}
}

func TestSavePNG(t *testing.T) {
	t.Parallel()

	groups := sampleGroups()
	m, ok := model.Fairness(groups)
	fig, err := NewFigure(groups, m, ok)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "visualizations", "bias_visualization.png")
	if err := SavePNG(fig, path, 20); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected file at %s: %v", path, err)
	}
	if !bytes.HasPrefix(b, pngSignature) {
		t.Error("expected PNG signature")
	}
}
