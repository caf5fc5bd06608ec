package stats

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"

	"biasreport/pkg/dataprep"
)

// ErrMalformed is returned when an outcome value is neither 0, 1 nor missing.
var ErrMalformed = errors.New("malformed outcome value")

// GroupSummary holds the bar passage counts of one group.
type GroupSummary struct {
	Label  string
	Count  int
	Passed int
	Rate   float64
}

// Failed returns the number of students in the group who did not pass.
func (g GroupSummary) Failed() int { return g.Count - g.Passed }

// Percent returns the pass rate scaled to 0-100.
func (g GroupSummary) Percent() float64 { return g.Rate * 100 }

// Share is one slice of a composition: a label, its count and fraction of the total.
type Share struct {
	Label    string
	Count    int
	Fraction float64
}

// ParseOutcomes converts a binary outcome column to 0/1. Missing values become NaN.
func ParseOutcomes(col []string) ([]float64, error) {
	out := make([]float64, len(col))
	for i, v := range col {
		if dataprep.IsMissing(v) {
			out[i] = math.NaN()
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %q", ErrMalformed, i+1, v)
		}
		switch {
		case math.IsNaN(f):
			out[i] = f
		case f == 0 || f == 1:
			out[i] = f
		default:
			return nil, fmt.Errorf("%w: row %d: %v is not 0 or 1", ErrMalformed, i+1, f)
		}
	}
	return out, nil
}

// PassRates groups outcomes by label and returns one summary per label,
// sorted by label. Rows with an empty label or a NaN outcome are skipped.
func PassRates(labels []string, outcomes []float64) []GroupSummary {
	byLabel := make(map[string][]float64)
	for i, label := range labels {
		if label == "" || i >= len(outcomes) || math.IsNaN(outcomes[i]) {
			continue
		}
		byLabel[label] = append(byLabel[label], outcomes[i])
	}

	out := make([]GroupSummary, 0, len(byLabel))
	for label, ys := range byLabel {
		out = append(out, GroupSummary{
			Label:  label,
			Count:  len(ys),
			Passed: int(Sum(ys)),
			Rate:   Mean(ys),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// Lookup returns the summary with the given label.
func Lookup(groups []GroupSummary, label string) (GroupSummary, bool) {
	for _, g := range groups {
		if g.Label == label {
			return g, true
		}
	}
	return GroupSummary{}, false
}

// PassingComposition breaks the passing students down by group, largest first.
// Groups with no passing students are left out.
func PassingComposition(groups []GroupSummary) []Share {
	total := 0
	for _, g := range groups {
		total += g.Passed
	}
	out := make([]Share, 0, len(groups))
	for _, g := range groups {
		if g.Passed == 0 {
			continue
		}
		out = append(out, Share{
			Label:    g.Label,
			Count:    g.Passed,
			Fraction: float64(g.Passed) / float64(total),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}
