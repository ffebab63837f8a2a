package syndrql

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/syndrdb/quill/internal/ui/styles"
)

// Token highlight styles for SyndrQL rendering.
// Uses centralized color constants from the styles package.
var (
	// KeywordStyle for reserved words: SELECT, FROM, WHERE, BUNDLE
	KeywordStyle lipgloss.Style

	// IdentifierStyle for bundle, field, and database names
	IdentifierStyle lipgloss.Style

	// StringStyle for quoted string values
	StringStyle lipgloss.Style

	// NumberStyle for numeric values
	NumberStyle lipgloss.Style

	// LiteralStyle for TRUE, FALSE, and NULL
	LiteralStyle lipgloss.Style

	// OperatorStyle for comparison and arithmetic operators
	OperatorStyle lipgloss.Style

	// PunctuationStyle for braces, parens, commas, and semicolons
	PunctuationStyle lipgloss.Style

	// CommentStyle for line and block comments
	CommentStyle lipgloss.Style

	// PlaceholderStyle for bind parameters: @name, $1
	PlaceholderStyle lipgloss.Style

	// UnknownStyle for characters the lexer could not classify
	UnknownStyle lipgloss.Style

	// InvalidStyle overlays tokens the validator rejected
	InvalidStyle lipgloss.Style
)

func init() {
	RebuildStyles()
	styles.RegisterStyleRebuilder(RebuildStyles)
}

// RebuildStyles recreates the token styles from the current theme colors.
// Called automatically after ApplyTheme via the registered rebuilder.
func RebuildStyles() {
	KeywordStyle = lipgloss.NewStyle().
		Foreground(styles.QueryKeywordColor).
		Bold(true)

	IdentifierStyle = lipgloss.NewStyle().
		Foreground(styles.QueryFieldColor)

	StringStyle = lipgloss.NewStyle().
		Foreground(styles.QueryStringColor)

	NumberStyle = lipgloss.NewStyle().
		Foreground(styles.QueryNumberColor)

	LiteralStyle = lipgloss.NewStyle().
		Foreground(styles.QueryNumberColor)

	OperatorStyle = lipgloss.NewStyle().
		Foreground(styles.QueryOperatorColor)

	PunctuationStyle = lipgloss.NewStyle().
		Foreground(styles.QueryPunctColor)

	CommentStyle = lipgloss.NewStyle().
		Foreground(styles.QueryCommentColor).
		Italic(true)

	PlaceholderStyle = lipgloss.NewStyle().
		Foreground(styles.QueryPlaceholderColor).
		Bold(true)

	UnknownStyle = lipgloss.NewStyle().
		Foreground(styles.QueryErrorColor)

	InvalidStyle = lipgloss.NewStyle().
		Foreground(styles.QueryErrorColor).
		Underline(true)
}

// StyleFor returns the render style for a token type. Layout types get
// an empty style; callers usually pass their values through untouched.
func StyleFor(t TokenType) lipgloss.Style {
	switch t {
	case TokenKeyword:
		return KeywordStyle
	case TokenIdentifier:
		return IdentifierStyle
	case TokenString:
		return StringStyle
	case TokenNumber:
		return NumberStyle
	case TokenLiteral:
		return LiteralStyle
	case TokenOperator:
		return OperatorStyle
	case TokenPunctuation:
		return PunctuationStyle
	case TokenComment:
		return CommentStyle
	case TokenPlaceholder:
		return PlaceholderStyle
	case TokenUnknown:
		return UnknownStyle
	default:
		return lipgloss.NewStyle()
	}
}
