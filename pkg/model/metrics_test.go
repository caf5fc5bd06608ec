package model

import (
	"math"
	"testing"

	"biasreport/pkg/stats"
)

const eps = 1e-12

func TestStatisticalParityDifference(t *testing.T) {
	t.Parallel()

	if got := StatisticalParityDifference(0.8, 0.6); math.Abs(got-0.2) > eps {
		t.Errorf("expected 0.2, got %v", got)
	}
	if got := StatisticalParityDifference(0.5, 0.5); got != 0 {
		t.Errorf("expected parity 0, got %v", got)
	}
}

func TestDisparateImpact(t *testing.T) {
	t.Parallel()

	if got := DisparateImpact(0.8, 0.6); math.Abs(got-0.75) > eps {
		t.Errorf("expected 0.75, got %v", got)
	}
	if got := DisparateImpact(0, 0.6); !math.IsNaN(got) {
		t.Errorf("expected NaN for zero privileged rate, got %v", got)
	}
}

func TestFairness(t *testing.T) {
	t.Parallel()

	t.Run("both groups present", func(t *testing.T) {
		t.Parallel()
		groups := []stats.GroupSummary{
			{Label: "Non-White", Count: 5, Passed: 3, Rate: 0.6},
			{Label: "White", Count: 5, Passed: 4, Rate: 0.8},
		}
		m, ok := Fairness(groups)
		if !ok {
			t.Fatal("expected metrics")
		}
		if math.Abs(m.SPD-0.2) > eps || math.Abs(m.DI-0.75) > eps {
			t.Errorf("expected spd 0.2 di 0.75, got %+v", m)
		}
		if m.PassesFourFifths() {
			t.Error("0.75 should fall below the four-fifths threshold")
		}
	})

	t.Run("zero privileged rate", func(t *testing.T) {
		t.Parallel()
		groups := []stats.GroupSummary{
			{Label: "Non-White", Count: 5, Passed: 3, Rate: 0.6},
			{Label: "White", Count: 5, Passed: 0, Rate: 0},
		}
		m, ok := Fairness(groups)
		if !ok {
			t.Fatal("expected metrics")
		}
		if !math.IsNaN(m.DI) {
			t.Errorf("expected NaN DI, got %v", m.DI)
		}
		if m.PassesFourFifths() {
			t.Error("NaN DI should not pass")
		}
	})

	t.Run("missing group", func(t *testing.T) {
		t.Parallel()
		groups := []stats.GroupSummary{{Label: "White", Count: 5, Passed: 4, Rate: 0.8}}
		if _, ok := Fairness(groups); ok {
			t.Error("expected no metrics without Non-White group")
		}
	})
}
