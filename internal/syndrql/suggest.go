package syndrql

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// maxSuggestDistance bounds how far a misspelling may sit from a
// reserved word before a suggestion is withheld.
const maxSuggestDistance = 2

// SuggestKeyword returns the reserved word closest to value by edit
// distance. The second return is false when nothing is close enough to
// be worth suggesting. Ties resolve alphabetically so suggestions are
// stable between runs.
func SuggestKeyword(value string) (string, bool) {
	upper := strings.ToUpper(value)
	if _, ok := keywords[upper]; ok {
		return upper, true
	}

	limit := maxSuggestDistance
	if n := len(upper) - 1; n < limit {
		limit = n
	}
	if limit <= 0 {
		return "", false
	}

	dmp := diffmatchpatch.New()
	best := ""
	bestDist := limit + 1
	for name := range keywords {
		diffs := dmp.DiffMain(upper, name, false)
		d := dmp.DiffLevenshtein(diffs)
		if d < bestDist || (d == bestDist && best != "" && name < best) {
			best = name
			bestDist = d
		}
	}
	if bestDist > limit {
		return "", false
	}
	return best, true
}
