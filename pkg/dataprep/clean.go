package dataprep

// missingTokens are the cell values read as absent, the same set pandas'
// read_csv treats as NA by default.
var missingTokens = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// IsMissing reports whether v is one of the tokens a CSV export uses for an
// absent value.
func IsMissing(v string) bool {
	_, ok := missingTokens[v]
	return ok
}

// CountMissing returns how many values in col are missing.
func CountMissing(col []string) int {
	n := 0
	for _, v := range col {
		if IsMissing(v) {
			n++
		}
	}
	return n
}
