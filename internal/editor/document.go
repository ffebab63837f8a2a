// Package editor implements the document model behind the query editor:
// a line-array text buffer with a cursor, selections, and position-based
// edits. The model knows nothing about SyndrQL; the language service
// reads snapshots of its text and never mutates it.
package editor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPositionOutOfRange is returned by read and delete operations given
// a position outside the document. Inserts never return it; they extend
// the document instead, because an insert beyond the end is how pasting
// into fresh space works. A bad read, by contrast, is a caller bug.
var ErrPositionOutOfRange = errors.New("editor: position out of range")

// Position is a zero-based line/column location. Column counts runes,
// not bytes, so multi-byte characters occupy one column.
type Position struct {
	Line   int
	Column int
}

// Before reports whether p sorts strictly before other.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}

// Selection is a half-open span between two positions. Start and End
// may arrive in either order; Normalize puts Start first.
type Selection struct {
	Start Position
	End   Position
}

// Normalize returns the selection with Start ordered before End.
func (s Selection) Normalize() Selection {
	if s.End.Before(s.Start) {
		s.Start, s.End = s.End, s.Start
	}
	return s
}

// Empty reports whether the selection spans no text.
func (s Selection) Empty() bool {
	return s.Start == s.End
}

// Document is a mutable text buffer. Lines never contain newlines; the
// document always has at least one (possibly empty) line.
type Document struct {
	lines      []string
	cursor     Position
	selections []Selection
}

// NewDocument creates a document holding text. An empty string yields a
// single empty line.
func NewDocument(text string) *Document {
	d := &Document{}
	d.SetText(text)
	return d
}

// SetText replaces the entire document, resetting the cursor to the
// origin and dropping selections.
func (d *Document) SetText(text string) {
	d.lines = strings.Split(text, "\n")
	d.cursor = Position{}
	d.selections = nil
}

// Text returns the full document joined with newlines.
func (d *Document) Text() string {
	return strings.Join(d.lines, "\n")
}

// Lines returns a copy of the line array.
func (d *Document) Lines() []string {
	return append([]string(nil), d.lines...)
}

// Line returns the text of one line.
func (d *Document) Line(i int) (string, error) {
	if i < 0 || i >= len(d.lines) {
		return "", fmt.Errorf("%w: line %d of %d", ErrPositionOutOfRange, i, len(d.lines))
	}
	return d.lines[i], nil
}

// LineCount returns the number of lines. Never zero.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Cursor returns the current cursor position.
func (d *Document) Cursor() Position {
	return d.cursor
}

// SetCursor moves the cursor, clamping it into the document so arrow
// keys at the edges stay quiet rather than erroring.
func (d *Document) SetCursor(pos Position) {
	if pos.Line < 0 {
		pos.Line = 0
	}
	if pos.Line >= len(d.lines) {
		pos.Line = len(d.lines) - 1
	}
	if pos.Column < 0 {
		pos.Column = 0
	}
	if n := lineLen(d.lines[pos.Line]); pos.Column > n {
		pos.Column = n
	}
	d.cursor = pos
}

// Selections returns a copy of the active selections.
func (d *Document) Selections() []Selection {
	return append([]Selection(nil), d.selections...)
}

// SetSelections replaces the active selections, normalizing each.
func (d *Document) SetSelections(sels []Selection) {
	d.selections = make([]Selection, len(sels))
	for i, s := range sels {
		d.selections[i] = s.Normalize()
	}
}

// ClearSelections drops all selections.
func (d *Document) ClearSelections() {
	d.selections = nil
}

// InsertAt inserts text at pos and returns the position just past the
// inserted text. A position past the end of the document auto-extends:
// missing lines are added and a short line is padded with spaces up to
// the column, so pasting into untouched space behaves like it does in
// editors with virtual space rather than failing.
func (d *Document) InsertAt(pos Position, text string) Position {
	if pos.Line < 0 {
		pos.Line = 0
	}
	if pos.Column < 0 {
		pos.Column = 0
	}
	for pos.Line >= len(d.lines) {
		d.lines = append(d.lines, "")
	}
	line := d.lines[pos.Line]
	if n := lineLen(line); pos.Column > n {
		line += strings.Repeat(" ", pos.Column-n)
	}

	runes := []rune(line)
	head := string(runes[:pos.Column])
	tail := string(runes[pos.Column:])

	parts := strings.Split(text, "\n")
	if len(parts) == 1 {
		d.lines[pos.Line] = head + parts[0] + tail
		return Position{Line: pos.Line, Column: pos.Column + lineLen(parts[0])}
	}

	inserted := make([]string, len(parts))
	inserted[0] = head + parts[0]
	copy(inserted[1:], parts[1:])
	last := len(inserted) - 1
	endCol := lineLen(inserted[last])
	inserted[last] += tail

	d.lines = append(d.lines[:pos.Line], append(inserted, d.lines[pos.Line+1:]...)...)
	return Position{Line: pos.Line + last, Column: endCol}
}

// DeleteRange removes the text between the selection's positions. Both
// ends must lie inside the document; a range error here means the
// caller's position math is broken, and silently clamping would hide it.
func (d *Document) DeleteRange(sel Selection) error {
	sel = sel.Normalize()
	if err := d.checkPosition(sel.Start); err != nil {
		return err
	}
	if err := d.checkPosition(sel.End); err != nil {
		return err
	}
	if sel.Empty() {
		return nil
	}

	startRunes := []rune(d.lines[sel.Start.Line])
	endRunes := []rune(d.lines[sel.End.Line])
	joined := string(startRunes[:sel.Start.Column]) + string(endRunes[sel.End.Column:])

	d.lines = append(d.lines[:sel.Start.Line], append([]string{joined}, d.lines[sel.End.Line+1:]...)...)
	d.SetCursor(sel.Start)
	return nil
}

// TextRange returns the text between the selection's positions.
func (d *Document) TextRange(sel Selection) (string, error) {
	sel = sel.Normalize()
	if err := d.checkPosition(sel.Start); err != nil {
		return "", err
	}
	if err := d.checkPosition(sel.End); err != nil {
		return "", err
	}
	if sel.Start.Line == sel.End.Line {
		runes := []rune(d.lines[sel.Start.Line])
		return string(runes[sel.Start.Column:sel.End.Column]), nil
	}

	var b strings.Builder
	first := []rune(d.lines[sel.Start.Line])
	b.WriteString(string(first[sel.Start.Column:]))
	for i := sel.Start.Line + 1; i < sel.End.Line; i++ {
		b.WriteByte('\n')
		b.WriteString(d.lines[i])
	}
	b.WriteByte('\n')
	last := []rune(d.lines[sel.End.Line])
	b.WriteString(string(last[:sel.End.Column]))
	return b.String(), nil
}

func (d *Document) checkPosition(pos Position) error {
	if pos.Line < 0 || pos.Line >= len(d.lines) {
		return fmt.Errorf("%w: line %d of %d", ErrPositionOutOfRange, pos.Line, len(d.lines))
	}
	if pos.Column < 0 || pos.Column > lineLen(d.lines[pos.Line]) {
		return fmt.Errorf("%w: column %d on line %d", ErrPositionOutOfRange, pos.Column, pos.Line)
	}
	return nil
}

func lineLen(s string) int {
	return len([]rune(s))
}
