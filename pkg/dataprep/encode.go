package dataprep

import "strconv"

// Group labels used throughout the report.
const (
	LabelWhite    = "White"
	LabelNonWhite = "Non-White"
)

// raceLabels is the fixed decoding policy for a numerically encoded race column.
var raceLabels = map[float64]string{
	1: LabelWhite,
	0: LabelNonWhite,
}

// IsNumericColumn reports whether every non-missing value parses as a number.
// A column with no values at all is not numeric.
func IsNumericColumn(col []string) bool {
	seen := false
	for _, v := range col {
		if IsMissing(v) {
			continue
		}
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return false
		}
		seen = true
	}
	return seen
}

// NormalizeLabels returns the group label for every row of a race column.
// String columns pass through unchanged. Numeric columns are decoded with
// {1: White, 0: Non-White}; the second result reports that decoding happened.
// Missing values and codes outside the mapping become "" so grouping skips them.
func NormalizeLabels(col []string) ([]string, bool) {
	out := make([]string, len(col))
	if !IsNumericColumn(col) {
		for i, v := range col {
			if !IsMissing(v) {
				out[i] = v
			}
		}
		return out, false
	}

	for i, v := range col {
		if IsMissing(v) {
			continue
		}
		f, _ := strconv.ParseFloat(v, 64)
		out[i] = raceLabels[f]
	}
	return out, true
}
