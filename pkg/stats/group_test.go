package stats

import (
	"errors"
	"math"
	"testing"
)

func TestParseOutcomes(t *testing.T) {
	t.Parallel()

	got, err := ParseOutcomes([]string{"1", "0", "", "1.0", "NA", "N/A", "null", "#N/A", "None", "<NA>"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{1, 0, math.NaN(), 1, math.NaN(), math.NaN(), math.NaN(), math.NaN(), math.NaN(), math.NaN()}
	for i := range want {
		if math.IsNaN(want[i]) {
			if !math.IsNaN(got[i]) {
				t.Errorf("row %d: expected NaN, got %v", i, got[i])
			}
			continue
		}
		if got[i] != want[i] {
			t.Errorf("row %d: expected %v, got %v", i, want[i], got[i])
		}
	}

	for _, bad := range []string{"yes", "2", "-1"} {
		if _, err := ParseOutcomes([]string{"1", bad}); !errors.Is(err, ErrMalformed) {
			t.Errorf("ParseOutcomes(%q): expected ErrMalformed, got %v", bad, err)
		}
	}
}

func TestPassRates(t *testing.T) {
	t.Parallel()

	labels := []string{"White", "White", "White", "White", "White", "Non-White", "Non-White", "Non-White", "", "White"}
	outcomes := []float64{1, 1, 1, 1, 0, 1, 0, 0, 1, math.NaN()}

	groups := PassRates(labels, outcomes)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Label != "Non-White" || groups[1].Label != "White" {
		t.Errorf("expected groups sorted by label, got %q, %q", groups[0].Label, groups[1].Label)
	}

	tests := []struct {
		label  string
		count  int
		passed int
	}{
		{label: "White", count: 5, passed: 4},
		{label: "Non-White", count: 3, passed: 1},
	}
	for _, tt := range tests {
		g, ok := Lookup(groups, tt.label)
		if !ok {
			t.Fatalf("group %q missing", tt.label)
		}
		if g.Count != tt.count || g.Passed != tt.passed {
			t.Errorf("%s: expected %d/%d, got %d/%d", tt.label, tt.passed, tt.count, g.Passed, g.Count)
		}
		if want := float64(tt.passed) / float64(tt.count); g.Rate != want {
			t.Errorf("%s: expected rate %v, got %v", tt.label, want, g.Rate)
		}
		if g.Failed() != tt.count-tt.passed {
			t.Errorf("%s: expected %d failed, got %d", tt.label, tt.count-tt.passed, g.Failed())
		}
	}

	if _, ok := Lookup(groups, "Asian"); ok {
		t.Error("expected no Asian group")
	}
}

func TestPassingComposition(t *testing.T) {
	t.Parallel()

	groups := []GroupSummary{
		{Label: "Asian", Count: 2, Passed: 0},
		{Label: "Non-White", Count: 10, Passed: 2},
		{Label: "White", Count: 10, Passed: 6},
	}

	shares := PassingComposition(groups)
	if len(shares) != 2 {
		t.Fatalf("expected 2 shares, got %d", len(shares))
	}
	if shares[0].Label != "White" || shares[0].Count != 6 {
		t.Errorf("expected White first with 6, got %+v", shares[0])
	}
	if shares[1].Fraction != 0.25 {
		t.Errorf("expected Non-White fraction 0.25, got %v", shares[1].Fraction)
	}
}
