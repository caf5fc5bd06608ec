package model

import (
	"math"

	"biasreport/pkg/dataprep"
	"biasreport/pkg/stats"
)

// Privileged and unprivileged groups compared by the fairness metrics.
const (
	PrivilegedGroup   = dataprep.LabelWhite
	UnprivilegedGroup = dataprep.LabelNonWhite
)

// FourFifths is the disparate impact threshold below which adverse impact is conventionally flagged.
const FourFifths = 0.8

// FairnessMetrics compares the favourable outcome rates of two groups.
type FairnessMetrics struct {
	PrivilegedRate   float64
	UnprivilegedRate float64
	// SPD is 0 at parity.
	SPD float64
	// DI is 1 at parity and NaN when the privileged rate is zero.
	DI float64
}

// StatisticalParityDifference returns priv - unpriv.
func StatisticalParityDifference(priv, unpriv float64) float64 {
	return priv - unpriv
}

// DisparateImpact returns unpriv / priv, or NaN when priv is not positive.
func DisparateImpact(priv, unpriv float64) float64 {
	if priv > 0 {
		return unpriv / priv
	}
	return math.NaN()
}

// Fairness computes the metrics for the White and Non-White groups.
// ok is false when either group is absent from groups.
func Fairness(groups []stats.GroupSummary) (m FairnessMetrics, ok bool) {
	priv, ok := stats.Lookup(groups, PrivilegedGroup)
	if !ok {
		return FairnessMetrics{}, false
	}
	unpriv, ok := stats.Lookup(groups, UnprivilegedGroup)
	if !ok {
		return FairnessMetrics{}, false
	}
	return FairnessMetrics{
		PrivilegedRate:   priv.Rate,
		UnprivilegedRate: unpriv.Rate,
		SPD:              StatisticalParityDifference(priv.Rate, unpriv.Rate),
		DI:               DisparateImpact(priv.Rate, unpriv.Rate),
	}, true
}

// PassesFourFifths reports whether DI is at least 0.8. A NaN DI never passes.
func (m FairnessMetrics) PassesFourFifths() bool {
	return m.DI >= FourFifths
}
