// Package queryeditor provides a multi-line SyndrQL editor widget with
// syntax highlighting and inline validation feedback.
package queryeditor

import (
	"context"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/syndrdb/quill/internal/editor"
	"github.com/syndrdb/quill/internal/syndrql"
	"github.com/syndrdb/quill/internal/ui/styles"
)

// ANSI codes for cursor - only toggle reverse, don't reset other styles
const (
	cursorOn  = "\x1b[7m"  // reverse video on
	cursorOff = "\x1b[27m" // reverse video off (not full reset)
)

// Model is a multi-line SyndrQL editor. Edits flow into the document
// model and are pushed to the highlighter, which revalidates the edited
// statement after a typing pause and publishes the result; the host
// routes completed updates back in through ApplyUpdate.
type Model struct {
	doc         *editor.Document
	highlighter *syndrql.Highlighter
	lexer       SyntaxLexer

	focused     bool
	width       int
	height      int
	topLine     int // first visible document line
	tabWidth    int
	placeholder string

	// invalidLines flags document lines the validator rejected.
	invalidLines map[int]bool
	// details holds current diagnostics per statement segment.
	details map[stmtKey][]syndrql.ErrorDetail

	placeholderStyle lipgloss.Style
}

// New creates an editor bound to the given highlighter.
func New(h *syndrql.Highlighter) Model {
	return Model{
		doc:              editor.NewDocument(""),
		highlighter:      h,
		lexer:            NewSyndrQLLexer(h),
		width:            80,
		height:           10,
		tabWidth:         2,
		invalidLines:     make(map[int]bool),
		details:          make(map[stmtKey][]syndrql.ErrorDetail),
		placeholderStyle: lipgloss.NewStyle().Foreground(styles.TextPlaceholderColor),
	}
}

// Value returns the current document text.
func (m Model) Value() string {
	return m.doc.Text()
}

// SetValue replaces the document text, resets validation state, and
// pushes the new document to the highlighter.
func (m *Model) SetValue(text string) {
	m.doc.SetText(text)
	m.invalidLines = make(map[int]bool)
	m.details = make(map[stmtKey][]syndrql.ErrorDetail)
	m.sync()
	m.scrollToCursor()
}

// CursorPosition returns the document cursor.
func (m Model) CursorPosition() editor.Position {
	return m.doc.Cursor()
}

// SetCursorPosition moves the cursor (clamped) and scrolls it into view.
func (m *Model) SetCursorPosition(pos editor.Position) {
	m.doc.SetCursor(pos)
	m.scrollToCursor()
}

// Focused returns whether the editor is receiving keys.
func (m Model) Focused() bool { return m.focused }

// Focus enables key handling.
func (m *Model) Focus() { m.focused = true }

// Blur disables key handling.
func (m *Model) Blur() { m.focused = false }

// SetSize sets the visible area in cells.
func (m *Model) SetSize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	m.width = width
	m.height = height
	m.scrollToCursor()
}

// SetTabWidth sets how many spaces the tab key inserts.
func (m *Model) SetTabWidth(w int) {
	if w > 0 {
		m.tabWidth = w
	}
}

// SetPlaceholder sets the text shown while the document is empty.
func (m *Model) SetPlaceholder(p string) {
	m.placeholder = p
}

// Statements returns the highlighter's current statement list.
func (m Model) Statements() []*syndrql.Statement {
	return m.highlighter.Statements()
}

// Diagnostics returns all current diagnostics ordered by position.
func (m Model) Diagnostics() []syndrql.ErrorDetail {
	var all []syndrql.ErrorDetail
	for _, details := range m.details {
		all = append(all, details...)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Line != all[j].Line {
			return all[i].Line < all[j].Line
		}
		return all[i].Column < all[j].Column
	})
	return all
}

// DiagnosticsAtCursor returns the diagnostics for the statement
// containing the cursor.
func (m Model) DiagnosticsAtCursor() []syndrql.ErrorDetail {
	cur := m.doc.Cursor()
	stmt := syndrql.StatementAt(m.highlighter.Statements(), cur.Line, cur.Column)
	if stmt == nil {
		return nil
	}
	return m.details[keyFor(stmt)]
}

// stmtKey identifies a statement segment across the copy-on-write
// replacement the highlighter does, where pointer identity won't hold.
type stmtKey struct {
	lineStart int
	text      string
}

func keyFor(stmt *syndrql.Statement) stmtKey {
	return stmtKey{lineStart: stmt.LineStart, text: stmt.Text}
}

// ApplyUpdate folds a completed validation into the editor's error
// state. Stale flags for the statement's line range are cleared first
// so fixed lines stop rendering as errors.
func (m *Model) ApplyUpdate(u syndrql.ValidationUpdate) {
	if u.Statement == nil {
		return
	}

	for line := u.Statement.LineStart; line <= u.Statement.LineEnd; line++ {
		delete(m.invalidLines, line)
	}
	delete(m.details, keyFor(u.Statement))

	if u.Result.Valid {
		return
	}
	for line := range u.Result.InvalidLines {
		m.invalidLines[u.Statement.LineStart+line] = true
	}
	if len(u.Details) > 0 {
		m.details[keyFor(u.Statement)] = u.Details
	}
}

// Update handles key messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.Type {
	case tea.KeyLeft:
		m.moveLeft()
	case tea.KeyRight:
		m.moveRight()
	case tea.KeyUp:
		m.moveVertical(-1)
	case tea.KeyDown:
		m.moveVertical(1)
	case tea.KeyHome, tea.KeyCtrlA:
		cur := m.doc.Cursor()
		m.doc.SetCursor(editor.Position{Line: cur.Line})
	case tea.KeyEnd, tea.KeyCtrlE:
		cur := m.doc.Cursor()
		m.doc.SetCursor(editor.Position{Line: cur.Line, Column: m.lineRuneLen(cur.Line)})
	case tea.KeyPgUp:
		m.moveVertical(-m.height)
	case tea.KeyPgDown:
		m.moveVertical(m.height)
	case tea.KeyEnter:
		m.insert("\n")
	case tea.KeyTab:
		m.insert(strings.Repeat(" ", m.tabWidth))
	case tea.KeySpace:
		m.insert(" ")
	case tea.KeyRunes:
		m.insert(string(keyMsg.Runes))
	case tea.KeyBackspace:
		m.deleteBackward()
	case tea.KeyDelete:
		m.deleteForward()
	case tea.KeyCtrlK:
		m.killToLineEnd()
	case tea.KeyCtrlU:
		m.killToLineStart()
	}

	m.scrollToCursor()
	return m, nil
}

// Flush forces any pending revalidation to run now.
func (m *Model) Flush(ctx context.Context) {
	m.highlighter.Flush(ctx)
}

// View renders the visible window of the document.
func (m Model) View() string {
	if m.doc.Text() == "" {
		first := ""
		if m.focused {
			first = cursorOn + " " + cursorOff
		} else if m.placeholder != "" {
			first = m.placeholderStyle.Render(ansi.Truncate(m.placeholder, m.width, "…"))
		}
		rows := []string{first}
		for i := 1; i < m.height; i++ {
			rows = append(rows, "")
		}
		return strings.Join(rows, "\n")
	}

	lineTokens := m.lexer.TokenizeDocument(m.doc.Text())
	cursor := m.doc.Cursor()

	var rows []string
	for i := m.topLine; i < m.topLine+m.height; i++ {
		if i >= m.doc.LineCount() {
			rows = append(rows, "")
			continue
		}
		line, _ := m.doc.Line(i)
		rendered := renderLine(line, lineTokens[i], m.invalidLines[i])
		if m.focused && i == cursor.Line {
			rendered = insertCursor(rendered, line, byteOffset(line, cursor.Column))
		}
		rows = append(rows, ansi.Truncate(rendered, m.width, "…"))
	}
	return strings.Join(rows, "\n")
}

// sync pushes the current document into the highlighter, scheduling a
// debounced revalidation of the statement under the cursor. Diagnostics
// whose statement segment no longer exists are dropped here.
func (m *Model) sync() {
	cur := m.doc.Cursor()
	stmts := m.highlighter.UpdateDocument(context.Background(), m.doc.Text(), cur.Line, cur.Column)

	live := make(map[stmtKey]bool, len(stmts))
	for _, s := range stmts {
		live[keyFor(s)] = true
	}
	for k := range m.details {
		if !live[k] {
			delete(m.details, k)
		}
	}
	for line := range m.invalidLines {
		if line >= m.doc.LineCount() {
			delete(m.invalidLines, line)
		}
	}
}

func (m *Model) insert(text string) {
	end := m.doc.InsertAt(m.doc.Cursor(), text)
	m.doc.SetCursor(end)
	m.sync()
}

func (m *Model) deleteBackward() {
	cur := m.doc.Cursor()
	if cur.Column > 0 {
		sel := editor.Selection{
			Start: editor.Position{Line: cur.Line, Column: cur.Column - 1},
			End:   cur,
		}
		if m.doc.DeleteRange(sel) == nil {
			m.doc.SetCursor(sel.Start)
		}
	} else if cur.Line > 0 {
		// Join with the previous line
		prevLen := m.lineRuneLen(cur.Line - 1)
		sel := editor.Selection{
			Start: editor.Position{Line: cur.Line - 1, Column: prevLen},
			End:   cur,
		}
		if m.doc.DeleteRange(sel) == nil {
			m.doc.SetCursor(sel.Start)
		}
	} else {
		return
	}
	m.sync()
}

func (m *Model) deleteForward() {
	cur := m.doc.Cursor()
	if cur.Column < m.lineRuneLen(cur.Line) {
		sel := editor.Selection{
			Start: cur,
			End:   editor.Position{Line: cur.Line, Column: cur.Column + 1},
		}
		if m.doc.DeleteRange(sel) != nil {
			return
		}
	} else if cur.Line < m.doc.LineCount()-1 {
		sel := editor.Selection{
			Start: cur,
			End:   editor.Position{Line: cur.Line + 1},
		}
		if m.doc.DeleteRange(sel) != nil {
			return
		}
	} else {
		return
	}
	m.sync()
}

func (m *Model) killToLineEnd() {
	cur := m.doc.Cursor()
	end := m.lineRuneLen(cur.Line)
	if cur.Column >= end {
		return
	}
	sel := editor.Selection{Start: cur, End: editor.Position{Line: cur.Line, Column: end}}
	if m.doc.DeleteRange(sel) == nil {
		m.sync()
	}
}

func (m *Model) killToLineStart() {
	cur := m.doc.Cursor()
	if cur.Column == 0 {
		return
	}
	sel := editor.Selection{Start: editor.Position{Line: cur.Line}, End: cur}
	if m.doc.DeleteRange(sel) == nil {
		m.doc.SetCursor(sel.Start)
		m.sync()
	}
}

func (m *Model) moveLeft() {
	cur := m.doc.Cursor()
	if cur.Column > 0 {
		m.doc.SetCursor(editor.Position{Line: cur.Line, Column: cur.Column - 1})
	} else if cur.Line > 0 {
		m.doc.SetCursor(editor.Position{Line: cur.Line - 1, Column: m.lineRuneLen(cur.Line - 1)})
	}
}

func (m *Model) moveRight() {
	cur := m.doc.Cursor()
	if cur.Column < m.lineRuneLen(cur.Line) {
		m.doc.SetCursor(editor.Position{Line: cur.Line, Column: cur.Column + 1})
	} else if cur.Line < m.doc.LineCount()-1 {
		m.doc.SetCursor(editor.Position{Line: cur.Line + 1})
	}
}

func (m *Model) moveVertical(delta int) {
	cur := m.doc.Cursor()
	m.doc.SetCursor(editor.Position{Line: cur.Line + delta, Column: cur.Column})
}

func (m *Model) scrollToCursor() {
	line := m.doc.Cursor().Line
	if line < m.topLine {
		m.topLine = line
	}
	if line >= m.topLine+m.height {
		m.topLine = line - m.height + 1
	}
	if m.topLine < 0 {
		m.topLine = 0
	}
}

func (m Model) lineRuneLen(line int) int {
	text, err := m.doc.Line(line)
	if err != nil {
		return 0
	}
	return len([]rune(text))
}

// renderLine applies syntax tokens to one line; gaps render plain.
// Invalid lines get an underline overlaid on every region.
func renderLine(line string, toks []SyntaxToken, invalid bool) string {
	if len(toks) == 0 {
		if invalid {
			return syndrql.InvalidStyle.Render(line)
		}
		return line
	}

	var b strings.Builder
	pos := 0
	for _, tok := range toks {
		if tok.Start > pos {
			gap := line[pos:tok.Start]
			if invalid {
				gap = syndrql.InvalidStyle.Render(gap)
			}
			b.WriteString(gap)
		}
		style := tok.Style
		if invalid {
			style = style.Underline(true)
		}
		b.WriteString(style.Render(line[tok.Start:tok.End]))
		pos = tok.End
	}
	if pos < len(line) {
		tail := line[pos:]
		if invalid {
			tail = syndrql.InvalidStyle.Render(tail)
		}
		b.WriteString(tail)
	}
	return b.String()
}

// byteOffset converts a rune column to a byte offset within the line.
func byteOffset(line string, runeCol int) int {
	count := 0
	for i := range line {
		if count == runeCol {
			return i
		}
		count++
	}
	return len(line)
}

// insertCursor inserts a reverse-video cursor at the given byte position
// in highlighted text, walking past ANSI sequences so styling survives.
func insertCursor(highlighted, original string, cursor int) string {
	// Cursor at end - append cursor block
	if cursor >= len(original) {
		return highlighted + cursorOn + " " + cursorOff
	}

	// Map cursor position from original text to highlighted text
	// by walking through both, skipping ANSI codes in highlighted
	origIdx := 0
	highIdx := 0

	for origIdx < cursor && highIdx < len(highlighted) {
		if highlighted[highIdx] == '\x1b' {
			for highIdx < len(highlighted) && highlighted[highIdx] != 'm' {
				highIdx++
			}
			if highIdx < len(highlighted) {
				highIdx++ // skip 'm'
			}
			continue
		}
		origIdx++
		highIdx++
	}

	// Skip any ANSI codes at cursor position
	for highIdx < len(highlighted) && highlighted[highIdx] == '\x1b' {
		for highIdx < len(highlighted) && highlighted[highIdx] != 'm' {
			highIdx++
		}
		if highIdx < len(highlighted) {
			highIdx++
		}
	}

	if highIdx >= len(highlighted) {
		return highlighted + cursorOn + " " + cursorOff
	}

	charUnderCursor := string(highlighted[highIdx])
	return highlighted[:highIdx] + cursorOn + charUnderCursor + cursorOff + highlighted[highIdx+1:]
}
