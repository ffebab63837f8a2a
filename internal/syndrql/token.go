// Package syndrql implements the SyndrQL language service used by the
// workbench editor and the check command: a lossless tokenizer, a
// table-driven grammar validator, an error analyzer that turns validation
// results into editor diagnostics, and statement segmentation with dirty
// tracking. Tokenization preserves every input character so that styled
// rendering can reconstruct the exact source text.
package syndrql

// TokenType identifies the lexical class of a token.
type TokenType int

const (
	// TokenUnknown is any character sequence no other rule claims.
	TokenUnknown TokenType = iota
	// TokenKeyword is a reserved SyndrQL word such as SELECT or BUNDLE.
	TokenKeyword
	// TokenIdentifier is an unquoted name: bundles, fields, databases.
	TokenIdentifier
	// TokenLiteral is a bare value keyword: TRUE, FALSE, NULL.
	TokenLiteral
	// TokenOperator is a comparison or arithmetic operator.
	TokenOperator
	// TokenPunctuation is structural punctuation: ( ) { } [ ] , ; : .
	TokenPunctuation
	// TokenWhitespace is a run of spaces, tabs, or carriage returns.
	TokenWhitespace
	// TokenNewline is a single line feed.
	TokenNewline
	// TokenComment is a line or block comment, delimiters included.
	TokenComment
	// TokenString is a quoted string, quotes included. An unterminated
	// string keeps this type; the analyzer reports it separately.
	TokenString
	// TokenNumber is an integer or decimal, optionally with an exponent.
	TokenNumber
	// TokenPlaceholder is a bind parameter such as @name or $1.
	TokenPlaceholder
)

// String returns a human-readable name for the token type.
func (t TokenType) String() string {
	switch t {
	case TokenKeyword:
		return "KEYWORD"
	case TokenIdentifier:
		return "IDENTIFIER"
	case TokenLiteral:
		return "LITERAL"
	case TokenOperator:
		return "OPERATOR"
	case TokenPunctuation:
		return "PUNCTUATION"
	case TokenWhitespace:
		return "WHITESPACE"
	case TokenNewline:
		return "NEWLINE"
	case TokenComment:
		return "COMMENT"
	case TokenString:
		return "STRING"
	case TokenNumber:
		return "NUMBER"
	case TokenPlaceholder:
		return "PLACEHOLDER"
	default:
		return "UNKNOWN"
	}
}

// Token is a single lexical unit. Value holds the exact source text, so
// concatenating the values of a token slice reproduces the input.
type Token struct {
	Type    TokenType
	Value   string
	Keyword Keyword // canonical keyword, KwNone unless Type is TokenKeyword or TokenLiteral
	Start   int     // byte offset of the first character
	End     int     // byte offset one past the last character
	Line    int     // zero-based line of the first character
	Column  int     // zero-based byte column within that line
}

// IsSignificant reports whether the token participates in grammar
// matching. Whitespace, newlines, and comments are layout only.
func (t Token) IsSignificant() bool {
	switch t.Type {
	case TokenWhitespace, TokenNewline, TokenComment:
		return false
	}
	return true
}

// IsKeyword reports whether the token is the given canonical keyword.
func (t Token) IsKeyword(kw Keyword) bool {
	return t.Keyword == kw
}
