package syndrql

import "fmt"

// IncompleteKind classifies why a statement's pattern did not complete.
type IncompleteKind int

const (
	// KindIncomplete means the tokens ran out before a user-supplied
	// value such as a bundle name or a condition.
	KindIncomplete IncompleteKind = iota
	// KindMissingCritical means a required clause keyword never appeared.
	KindMissingCritical
	// KindInvalidSequence means a token appeared where the pattern
	// required something else.
	KindInvalidSequence
)

// String returns the stable wire name for the kind.
func (k IncompleteKind) String() string {
	switch k {
	case KindMissingCritical:
		return "missing_critical"
	case KindInvalidSequence:
		return "invalid_sequence"
	default:
		return "incomplete"
	}
}

// IncompleteStatement records one way a statement fell short of its
// pattern: which line, which elements were missing or violated, and how.
type IncompleteStatement struct {
	Line    int
	Missing []string
	Kind    IncompleteKind
}

// ValidationResult is the full outcome of validating one statement's
// tokens against the grammar. Index sets refer to positions in the token
// slice passed to Validate, and lines are the zero-based token lines.
type ValidationResult struct {
	Valid          bool
	InvalidTokens  map[int]bool
	InvalidLines   map[int]bool
	ExpectedTokens []string
	ErrorMessage   string
	MatchedRule    *GrammarRule
	Suggestions    []string // completion candidates for the failure point
	Incomplete     []IncompleteStatement

	expectedAt map[int]string // invalid token index -> expected element
}

// ExpectedAt returns what the grammar expected in place of the invalid
// token at the given index, if anything was recorded for it.
func (r ValidationResult) ExpectedAt(index int) (string, bool) {
	exp, ok := r.expectedAt[index]
	return exp, ok
}

// Validate checks one statement's tokens against the grammar table.
// Rules sharing the statement's leading keyword are tried in table
// order; the first rule that validates cleanly wins. When none does,
// the first candidate's result is returned so diagnostics describe a
// single attempted statement type. A token slice with no significant
// tokens is valid by definition.
func Validate(tokens []Token) ValidationResult {
	sig := make([]int, 0, len(tokens))
	for i, t := range tokens {
		if t.IsSignificant() {
			sig = append(sig, i)
		}
	}
	if len(sig) == 0 {
		return ValidationResult{
			Valid:         true,
			InvalidTokens: map[int]bool{},
			InvalidLines:  map[int]bool{},
		}
	}

	first := tokens[sig[0]]
	candidates := candidatesFor(first)
	if len(candidates) == 0 {
		res := ValidationResult{
			InvalidTokens: map[int]bool{},
			InvalidLines:  map[int]bool{},
			ErrorMessage:  fmt.Sprintf("no grammar rule matches %q", first.Value),
			Suggestions:   StarterKeywords(),
		}
		for _, i := range sig {
			res.InvalidTokens[i] = true
			res.InvalidLines[tokens[i].Line] = true
		}
		return res
	}

	var fallback *ValidationResult
	for i := range candidates {
		res := align(candidates[i], tokens, sig)
		if res.Valid {
			rule := candidates[i]
			res.MatchedRule = &rule
			return flagUnterminated(res, tokens)
		}
		if fallback == nil {
			fallback = &res
		}
	}
	return flagUnterminated(*fallback, tokens)
}

// flagUnterminated downgrades a result when any string token never
// closed. The lexer degrades an open quote to a STRING token that the
// grammar happily accepts, so without this check a statement like
// SELECT DOCUMENTS FROM users WHERE name == "Bob would read as valid.
func flagUnterminated(res ValidationResult, tokens []Token) ValidationResult {
	for i, t := range tokens {
		if t.Type != TokenString || terminatedString(t.Value) {
			continue
		}
		res.Valid = false
		res.MatchedRule = nil
		res.InvalidTokens[i] = true
		res.InvalidLines[t.Line] = true
		if res.ErrorMessage == "" {
			res.ErrorMessage = "unterminated string literal"
		}
	}
	return res
}

// align walks the pattern and the significant tokens in lockstep with no
// backtracking. A mismatch against a required element flags the token
// and moves both cursors forward, so one bad token does not cascade into
// flagging the rest of the statement.
func align(rule GrammarRule, tokens []Token, sig []int) ValidationResult {
	res := ValidationResult{
		InvalidTokens: map[int]bool{},
		InvalidLines:  map[int]bool{},
		expectedAt:    map[int]string{},
	}

	ti, pi := 0, 0
	for ti < len(sig) && pi < len(rule.Pattern) {
		el := rule.Pattern[pi]
		tok := tokens[sig[ti]]
		switch {
		case el.Matches(tok):
			ti++
			if el.Repeatable {
				for ti < len(sig) && el.Matches(tokens[sig[ti]]) {
					ti++
				}
			}
			pi++
		case el.Optional:
			pi++
		default:
			idx := sig[ti]
			exp := el.Describe()
			res.InvalidTokens[idx] = true
			res.InvalidLines[tokens[idx].Line] = true
			res.ExpectedTokens = append(res.ExpectedTokens, exp)
			res.expectedAt[idx] = exp
			res.Incomplete = append(res.Incomplete, IncompleteStatement{
				Line:    tokens[idx].Line,
				Missing: []string{exp},
				Kind:    KindInvalidSequence,
			})
			ti++
			pi++
		}
	}

	// Tokens beyond the end of the pattern are trailing garbage.
	for ; ti < len(sig); ti++ {
		idx := sig[ti]
		res.InvalidTokens[idx] = true
		res.InvalidLines[tokens[idx].Line] = true
	}

	// Required elements beyond the last token mean typing stopped early.
	// Missing clause keywords and missing user values are reported as
	// separate records so the editor can rank them differently.
	var missingKeywords, missingValues []string
	for ; pi < len(rule.Pattern); pi++ {
		el := rule.Pattern[pi]
		if el.Optional {
			continue
		}
		d := el.Describe()
		res.ExpectedTokens = append(res.ExpectedTokens, d)
		if el.Class == ClassKeyword {
			missingKeywords = append(missingKeywords, d)
		} else {
			missingValues = append(missingValues, d)
		}
	}
	lastLine := tokens[sig[len(sig)-1]].Line
	if len(missingKeywords) > 0 {
		res.Incomplete = append(res.Incomplete, IncompleteStatement{
			Line:    lastLine,
			Missing: missingKeywords,
			Kind:    KindMissingCritical,
		})
	}
	if len(missingValues) > 0 {
		res.Incomplete = append(res.Incomplete, IncompleteStatement{
			Line:    lastLine,
			Missing: missingValues,
			Kind:    KindIncomplete,
		})
	}

	res.Valid = len(res.InvalidTokens) == 0 && len(missingKeywords) == 0 && len(missingValues) == 0
	if !res.Valid {
		res.ErrorMessage = fmt.Sprintf("invalid %s statement", rule.Type)
		res.Suggestions = dedupe(res.ExpectedTokens)
	}
	return res
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
