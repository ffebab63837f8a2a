package syndrql

import "strings"

// Highlight applies ANSI syntax styling to a SyndrQL source string.
// Whitespace and newlines pass through unstyled so alignment survives,
// which also means the unstyled width of the result equals the input.
// Partial or invalid statements are highlighted for whatever the lexer
// could classify.
func Highlight(src string) string {
	if src == "" {
		return ""
	}

	var b strings.Builder
	for _, tok := range Tokenize(src) {
		switch tok.Type {
		case TokenWhitespace, TokenNewline:
			b.WriteString(tok.Value)
		default:
			b.WriteString(StyleFor(tok.Type).Render(tok.Value))
		}
	}
	return b.String()
}

// HighlightStatement styles a statement and underlines the tokens its
// validation flagged. Used by the diagnostics pane and the check
// command to echo offending source.
func HighlightStatement(stmt *Statement, res ValidationResult) string {
	if stmt == nil || stmt.Text == "" {
		return ""
	}

	var b strings.Builder
	for i, tok := range stmt.Tokens {
		switch {
		case tok.Type == TokenWhitespace || tok.Type == TokenNewline:
			b.WriteString(tok.Value)
		case res.InvalidTokens[i]:
			b.WriteString(InvalidStyle.Render(tok.Value))
		default:
			b.WriteString(StyleFor(tok.Type).Render(tok.Value))
		}
	}
	return b.String()
}
