package syndrql

import "strings"

// Statement is one segmented statement of a document. Text is the raw
// segment including layout and the terminating semicolon, so joining
// every statement's Text reproduces the document exactly.
type Statement struct {
	Text      string
	LineStart int // zero-based document line of the segment's first byte
	ColStart  int // zero-based rune column of the segment's first byte
	LineEnd   int // zero-based document line the segment extends through
	Tokens    []Token
	Dirty     bool
	Valid     bool
}

func newStatement(text string, lineStart, colStart int) *Statement {
	return &Statement{
		Text:      text,
		LineStart: lineStart,
		ColStart:  colStart,
		LineEnd:   lineStart + strings.Count(text, "\n"),
		Tokens:    Tokenize(text),
		Dirty:     true,
	}
}

// ParseStatements splits a document into statements on semicolons that
// sit outside string literals. The semicolon stays with the statement it
// terminates. A trailing segment with no terminator is still a
// statement, which keeps a statement the user is mid-way through typing
// in the list. Statement lines are document-relative; token positions
// inside each statement are statement-relative.
func ParseStatements(text string) []*Statement {
	var stmts []*Statement
	start := 0
	startLine, startCol := 0, 0
	line, col := 0, 0
	var quote byte
	escaped := false

	for i := 0; i < len(text); i++ {
		ch := text[i]
		// A newline ends any open string, matching the tokenizer's
		// treatment of unterminated strings.
		if ch == '\n' {
			quote = 0
			escaped = false
			line++
			col = 0
			continue
		}
		// Columns count runes to match the editor's cursor, so UTF-8
		// continuation bytes do not advance the column.
		if ch&0xc0 != 0x80 {
			col++
		}
		switch {
		case escaped:
			escaped = false
		case quote != 0:
			if ch == '\\' {
				escaped = true
			} else if ch == quote {
				quote = 0
			}
		case ch == '"' || ch == '\'':
			quote = ch
		case ch == ';':
			stmts = append(stmts, newStatement(text[start:i+1], startLine, startCol))
			start = i + 1
			startLine, startCol = line, col
		}
	}
	if start < len(text) {
		stmts = append(stmts, newStatement(text[start:], startLine, startCol))
	}
	return stmts
}

// StatementAt returns the statement containing the given document
// position, or nil when the position falls beyond every statement.
// Segments partition the document, so each statement owns the span from
// its start up to the next statement's start; the last statement also
// owns the end-of-document cursor position on its final line.
func StatementAt(stmts []*Statement, line, col int) *Statement {
	var found *Statement
	for _, s := range stmts {
		if line > s.LineStart || (line == s.LineStart && col >= s.ColStart) {
			found = s
			continue
		}
		break
	}
	if found == nil || line > found.LineEnd {
		return nil
	}
	return found
}

// MarkDirty returns a new statement list in which target is flagged
// dirty. The target entry is replaced with a fresh copy; every other
// entry is shared with the input list, so callers can compare pointers
// to see what changed.
func MarkDirty(stmts []*Statement, target *Statement) []*Statement {
	out := make([]*Statement, len(stmts))
	for i, s := range stmts {
		if s == target {
			c := *s
			c.Dirty = true
			out[i] = &c
		} else {
			out[i] = s
		}
	}
	return out
}

// MarkClean returns a new statement list in which target is no longer
// dirty and carries the given validity. Sharing works as in MarkDirty.
func MarkClean(stmts []*Statement, target *Statement, valid bool) []*Statement {
	out := make([]*Statement, len(stmts))
	for i, s := range stmts {
		if s == target {
			c := *s
			c.Dirty = false
			c.Valid = valid
			out[i] = &c
		} else {
			out[i] = s
		}
	}
	return out
}
