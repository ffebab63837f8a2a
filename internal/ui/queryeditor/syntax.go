package queryeditor

import (
	"context"

	"github.com/charmbracelet/lipgloss"

	"github.com/syndrdb/quill/internal/syndrql"
)

// SyntaxToken represents a styled region within a line of text.
type SyntaxToken struct {
	// Start is the starting byte offset within the line (0-indexed).
	Start int

	// End is the ending byte offset within the line (exclusive, like Go slices).
	End int

	// Style is the lipgloss style to apply to this token's text.
	Style lipgloss.Style
}

// SyntaxLexer produces styled regions for a whole document, keyed by
// zero-based line. The editor renders through this seam and never
// touches grammar logic itself. Tokens per line must be non-overlapping
// and sorted by Start; gaps render as plain text.
type SyntaxLexer interface {
	TokenizeDocument(text string) map[int][]SyntaxToken
}

// syndrqlLexer adapts the SyndrQL tokenizer to the SyntaxLexer seam,
// serving repeated documents from the highlighter's token cache.
type syndrqlLexer struct {
	highlighter *syndrql.Highlighter
}

// NewSyndrQLLexer returns a SyntaxLexer backed by the given highlighter.
// A nil highlighter tokenizes directly without caching.
func NewSyndrQLLexer(h *syndrql.Highlighter) SyntaxLexer {
	return syndrqlLexer{highlighter: h}
}

func (l syndrqlLexer) tokenize(text string) []syndrql.Token {
	if l.highlighter != nil {
		return l.highlighter.TokenizeCached(context.Background(), text)
	}
	return syndrql.Tokenize(text)
}

// TokenizeDocument splits the document's token run into per-line styled
// regions. Multi-line tokens (block comments) contribute a region to
// every line they cross; whitespace and newlines stay unstyled.
func (l syndrqlLexer) TokenizeDocument(text string) map[int][]SyntaxToken {
	out := make(map[int][]SyntaxToken)
	line, col := 0, 0

	for _, tok := range l.tokenize(text) {
		style := syndrql.StyleFor(tok.Type)
		styled := tok.Type != syndrql.TokenWhitespace && tok.Type != syndrql.TokenNewline

		segStart := col
		for i := 0; i < len(tok.Value); i++ {
			if tok.Value[i] == '\n' {
				if styled && col > segStart {
					out[line] = append(out[line], SyntaxToken{Start: segStart, End: col, Style: style})
				}
				line++
				col = 0
				segStart = 0
				continue
			}
			col++
		}
		if styled && col > segStart {
			out[line] = append(out[line], SyntaxToken{Start: segStart, End: col, Style: style})
		}
	}
	return out
}
