package syndrql

import (
	"strings"
	"unicode/utf8"
)

// Lexer scans SyndrQL source text into tokens. Scanning never fails:
// characters that match no rule become single TokenUnknown tokens, so
// the editor can highlight whatever the user has typed so far.
type Lexer struct {
	src  string
	pos  int // byte offset of the next unread character
	line int // zero-based line of pos
	col  int // zero-based byte column of pos
}

// NewLexer creates a lexer positioned at the start of src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src}
}

// Tokenize scans src and returns every token, layout included.
// Concatenating the token values reproduces src exactly.
func Tokenize(src string) []Token {
	lx := NewLexer(src)
	var tokens []Token
	for {
		tok, ok := lx.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// Next returns the next token. The second return is false once the
// input is exhausted.
func (l *Lexer) Next() (Token, bool) {
	if l.pos >= len(l.src) {
		return Token{}, false
	}

	start, line, col := l.pos, l.line, l.col
	ch := l.src[l.pos]

	var typ TokenType
	var kw Keyword

	switch {
	case ch == '\n':
		l.advance()
		typ = TokenNewline
	case ch == ' ' || ch == '\t' || ch == '\r':
		for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
			l.advance()
		}
		typ = TokenWhitespace
	case l.hasPrefix("--") || l.hasPrefix("//"):
		l.readLineComment()
		typ = TokenComment
	case l.hasPrefix("/*"):
		l.readBlockComment()
		typ = TokenComment
	case ch == '"' || ch == '\'':
		l.readString(ch)
		typ = TokenString
	case isDigit(ch):
		l.readNumber()
		typ = TokenNumber
	case isIdentStart(ch):
		l.readIdentifier()
		word := l.src[start:l.pos]
		if k, ok := LookupKeyword(word); ok {
			kw = k
			if literalKeywords[k] {
				typ = TokenLiteral
			} else {
				typ = TokenKeyword
			}
		} else {
			typ = TokenIdentifier
		}
	case ch == '@' && l.peekIs(1, isIdentStart):
		l.advance()
		l.readIdentifier()
		typ = TokenPlaceholder
	case ch == '$' && (l.peekIs(1, isDigit) || l.peekIs(1, isIdentStart)):
		l.advance()
		for l.pos < len(l.src) && isIdentChar(l.src[l.pos]) {
			l.advance()
		}
		typ = TokenPlaceholder
	case l.hasPrefix("==") || l.hasPrefix("!=") || l.hasPrefix("<=") || l.hasPrefix(">="):
		l.advance()
		l.advance()
		typ = TokenOperator
	case isOperator(ch):
		l.advance()
		typ = TokenOperator
	case isPunctuation(ch):
		l.advance()
		typ = TokenPunctuation
	default:
		l.advanceRune()
		typ = TokenUnknown
	}

	return Token{
		Type:    typ,
		Value:   l.src[start:l.pos],
		Keyword: kw,
		Start:   start,
		End:     l.pos,
		Line:    line,
		Column:  col,
	}, true
}

// advance consumes one byte, tracking line and column.
func (l *Lexer) advance() {
	if l.src[l.pos] == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	l.pos++
}

// advanceRune consumes one full rune so multi-byte characters stay
// intact inside a single unknown token.
func (l *Lexer) advanceRune() {
	_, width := utf8.DecodeRuneInString(l.src[l.pos:])
	if width == 0 {
		width = 1
	}
	for i := 0; i < width; i++ {
		l.advance()
	}
}

func (l *Lexer) hasPrefix(s string) bool {
	return strings.HasPrefix(l.src[l.pos:], s)
}

func (l *Lexer) peekIs(offset int, pred func(byte) bool) bool {
	return l.pos+offset < len(l.src) && pred(l.src[l.pos+offset])
}

// readString consumes a quoted string including both quotes. Backslash
// escapes the following character. A newline or EOF before the closing
// quote ends the token; the newline itself is not consumed, so an
// unterminated string never swallows the rest of the document.
func (l *Lexer) readString(quote byte) {
	l.advance() // opening quote
	for l.pos < len(l.src) {
		ch := l.src[l.pos]
		if ch == '\n' {
			return
		}
		if ch == '\\' && l.pos+1 < len(l.src) && l.src[l.pos+1] != '\n' {
			l.advance()
			l.advance()
			continue
		}
		l.advance()
		if ch == quote {
			return
		}
	}
}

// readNumber consumes digits, an optional fraction, and an optional
// exponent. A trailing dot without digits stays punctuation, and a bare
// "e" after the digits is left for the identifier rule.
func (l *Lexer) readNumber() {
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.advance()
	}
	if l.pos+1 < len(l.src) && l.src[l.pos] == '.' && isDigit(l.src[l.pos+1]) {
		l.advance()
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.advance()
		}
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		j := l.pos + 1
		if j < len(l.src) && (l.src[j] == '+' || l.src[j] == '-') {
			j++
		}
		if j < len(l.src) && isDigit(l.src[j]) {
			for l.pos < j {
				l.advance()
			}
			for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
				l.advance()
			}
		}
	}
}

func (l *Lexer) readIdentifier() {
	for l.pos < len(l.src) && isIdentChar(l.src[l.pos]) {
		l.advance()
	}
}

// readLineComment consumes to the end of the line. The newline stays
// outside the comment so line tokens remain intact.
func (l *Lexer) readLineComment() {
	for l.pos < len(l.src) && l.src[l.pos] != '\n' {
		l.advance()
	}
}

// readBlockComment consumes through the closing */ or to EOF.
func (l *Lexer) readBlockComment() {
	l.advance() // '/'
	l.advance() // '*'
	for l.pos < len(l.src) {
		if l.hasPrefix("*/") {
			l.advance()
			l.advance()
			return
		}
		l.advance()
	}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentChar(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isOperator(ch byte) bool {
	switch ch {
	case '=', '*', '<', '>', '+', '-', '/':
		return true
	}
	return false
}

func isPunctuation(ch byte) bool {
	switch ch {
	case '(', ')', '{', '}', '[', ']', ',', ';', ':', '.':
		return true
	}
	return false
}
