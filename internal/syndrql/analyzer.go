package syndrql

import (
	"fmt"
	"sort"
	"strings"
)

// Diagnostic codes attached to ErrorDetail records. Codes are stable so
// that callers can key behavior off them without parsing messages.
const (
	CodeEmptyStatement     = "empty-statement"
	CodeUnknownCommand     = "unknown-command"
	CodeMissingClause      = "missing-clause"
	CodeIncomplete         = "incomplete-statement"
	CodeUnexpectedToken    = "unexpected-token"
	CodeUnterminatedString = "unterminated-string"
	CodeSyntaxError        = "syntax-error"
)

// ErrorDetail is one renderable diagnostic: a stable code, a message,
// the document position it anchors to, and an optional fix suggestion.
type ErrorDetail struct {
	Code       string
	Message    string
	Line       int // zero-based document line
	Column     int // zero-based byte column
	Length     int // length of the offending text in bytes
	Source     string
	Suggestion string
}

// AnalyzeErrors turns a failed validation into positioned diagnostics.
// Tokens and result must come from the same statement; lineOffset is the
// statement's first document line, added to every token line so details
// land in document coordinates. The returned slice is nil when the
// result is valid and never empty when it is not.
func AnalyzeErrors(tokens []Token, res ValidationResult, lineOffset int) []ErrorDetail {
	if res.Valid {
		return nil
	}

	sig := make([]int, 0, len(tokens))
	for i, t := range tokens {
		if t.IsSignificant() {
			sig = append(sig, i)
		}
	}
	if len(sig) == 0 || onlyTerminators(tokens, sig) {
		anchor := Token{Line: 0, Column: 0}
		if len(sig) > 0 {
			anchor = tokens[sig[0]]
		}
		return []ErrorDetail{{
			Code:    CodeEmptyStatement,
			Message: "empty statement",
			Line:    anchor.Line + lineOffset,
			Column:  anchor.Column,
			Length:  len(anchor.Value),
			Source:  anchor.Value,
		}}
	}

	var details []ErrorDetail
	first := tokens[sig[0]]
	last := tokens[sig[len(sig)-1]]
	unknownCommand := false

	// Structural checks keyed on the statement head. These fire before
	// token-level errors so the most actionable problem reads first.
	switch {
	case first.Keyword == KwSelect:
		if len(sig) == 1 {
			details = append(details, detailAt(first, lineOffset, CodeIncomplete,
				"SELECT requires DOCUMENTS or a field list before FROM", "DOCUMENTS"))
		} else if !hasKeyword(tokens, KwFrom) {
			details = append(details, detailAt(last, lineOffset, CodeMissingClause,
				"SELECT statement is missing its FROM clause", "FROM"))
		}
	case first.Keyword == KwInsert:
		if !hasKeyword(tokens, KwInto) {
			details = append(details, detailAt(first, lineOffset, CodeMissingClause,
				"INSERT statement is missing INTO", "INTO"))
		}
	case first.Keyword == KwUpdate:
		if !hasKeyword(tokens, KwSet) {
			details = append(details, detailAt(last, lineOffset, CodeMissingClause,
				"UPDATE statement is missing its SET clause", "SET"))
		}
	case first.Keyword == KwDelete:
		if !hasKeyword(tokens, KwFrom) {
			details = append(details, detailAt(last, lineOffset, CodeMissingClause,
				"DELETE statement is missing its FROM clause", "FROM"))
		}
	case first.Keyword == KwCreate || first.Keyword == KwDrop || first.Keyword == KwAlter:
		if !hasKeyword(tokens, KwDatabase) && !hasKeyword(tokens, KwBundle) {
			details = append(details, detailAt(first, lineOffset, CodeMissingClause,
				fmt.Sprintf("%s needs DATABASE or BUNDLE", strings.ToUpper(first.Value)), ""))
		}
	case first.Keyword == KwNone || !IsStarter(first.Keyword):
		unknownCommand = true
		msg := fmt.Sprintf("unrecognized command %q", first.Value)
		if first.Type == TokenKeyword {
			msg = fmt.Sprintf("%s cannot start a statement", first.Keyword)
		}
		sugg := ""
		if s, ok := SuggestKeyword(first.Value); ok && !strings.EqualFold(s, first.Value) {
			sugg = fmt.Sprintf("did you mean %s?", s)
		}
		details = append(details, detailAt(first, lineOffset, CodeUnknownCommand, msg, sugg))
	}

	// Incomplete records are the backstop when no structural check
	// applies, e.g. a DROP BUNDLE missing its bundle name.
	if len(details) == 0 {
		for _, inc := range res.Incomplete {
			if inc.Kind == KindInvalidSequence {
				continue
			}
			details = append(details, ErrorDetail{
				Code:    CodeIncomplete,
				Message: fmt.Sprintf("statement is missing %s", strings.Join(inc.Missing, ", ")),
				Line:    inc.Line + lineOffset,
				Column:  last.Column,
				Length:  len(last.Value),
				Source:  last.Value,
			})
		}
	}

	// Unterminated strings are reported wherever they appear. The lexer
	// degrades them to a STRING token, so this is the only place the
	// user learns the quote never closed.
	for _, t := range tokens {
		if t.Type == TokenString && !terminatedString(t.Value) {
			details = append(details, detailAt(t, lineOffset, CodeUnterminatedString,
				"unterminated string", fmt.Sprintf("add a closing %c", t.Value[0])))
		}
	}

	// One error per invalid token, in source order. Skipped when the
	// whole statement was unrecognized; every token is flagged in that
	// case and repeating the head error per token helps nobody.
	if !unknownCommand {
		idxs := make([]int, 0, len(res.InvalidTokens))
		for i := range res.InvalidTokens {
			idxs = append(idxs, i)
		}
		sort.Ints(idxs)
		for _, i := range idxs {
			if i < 0 || i >= len(tokens) {
				continue
			}
			tok := tokens[i]
			// Unterminated strings already got their own diagnostic.
			if tok.Type == TokenString && !terminatedString(tok.Value) {
				continue
			}
			msg := fmt.Sprintf("unexpected %s %q", strings.ToLower(tok.Type.String()), tok.Value)
			if exp, ok := res.ExpectedAt(i); ok {
				msg = fmt.Sprintf("%s, expected %s", msg, exp)
			}
			sugg := ""
			switch tok.Type {
			case TokenIdentifier, TokenKeyword, TokenUnknown:
				if s, ok := SuggestKeyword(tok.Value); ok && !strings.EqualFold(s, tok.Value) {
					sugg = fmt.Sprintf("did you mean %s?", s)
				}
			}
			details = append(details, detailAt(tok, lineOffset, CodeUnexpectedToken, msg, sugg))
		}
	}

	// A failed validation must always surface at least one diagnostic.
	if len(details) == 0 {
		msg := res.ErrorMessage
		if msg == "" {
			msg = "statement does not match any supported syntax"
		}
		details = append(details, detailAt(first, lineOffset, CodeSyntaxError, msg, ""))
	}
	return details
}

func detailAt(tok Token, lineOffset int, code, message, suggestion string) ErrorDetail {
	return ErrorDetail{
		Code:       code,
		Message:    message,
		Line:       tok.Line + lineOffset,
		Column:     tok.Column,
		Length:     len(tok.Value),
		Source:     tok.Value,
		Suggestion: suggestion,
	}
}

func hasKeyword(tokens []Token, kw Keyword) bool {
	for _, t := range tokens {
		if t.Keyword == kw {
			return true
		}
	}
	return false
}

// onlyTerminators reports whether every significant token is a bare
// semicolon, which segmentation produces for inputs like ";;".
func onlyTerminators(tokens []Token, sig []int) bool {
	for _, i := range sig {
		t := tokens[i]
		if t.Type != TokenPunctuation || t.Value != ";" {
			return false
		}
	}
	return true
}

// terminatedString reports whether a STRING token's text closes with an
// unescaped matching quote.
func terminatedString(v string) bool {
	if len(v) < 2 || v[len(v)-1] != v[0] {
		return false
	}
	backslashes := 0
	for i := len(v) - 2; i >= 0 && v[i] == '\\'; i-- {
		backslashes++
	}
	return backslashes%2 == 0
}
