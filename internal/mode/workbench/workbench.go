// Package workbench implements the main quill screen: a SyndrQL editor
// pane over a diagnostics pane, with a status bar summarizing the
// document. Validation results stream in from the language service
// through pubsub and land in the editor as they complete.
package workbench

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/wordwrap"

	"github.com/syndrdb/quill/internal/editor"
	"github.com/syndrdb/quill/internal/history"
	"github.com/syndrdb/quill/internal/keys"
	"github.com/syndrdb/quill/internal/log"
	"github.com/syndrdb/quill/internal/mode"
	"github.com/syndrdb/quill/internal/pubsub"
	"github.com/syndrdb/quill/internal/syndrql"
	"github.com/syndrdb/quill/internal/ui/queryeditor"
	"github.com/syndrdb/quill/internal/ui/shared/panes"
	"github.com/syndrdb/quill/internal/ui/styles"
	"github.com/syndrdb/quill/internal/ui/toaster"
)

// focusArea identifies which pane receives key events.
type focusArea int

const (
	focusEditor focusArea = iota
	focusDiagnostics
)

const statusBarHeight = 1

// StatementRecordedMsg reports the outcome of persisting a statement to
// the history store.
type StatementRecordedMsg struct {
	Entry history.Entry
	Err   error
}

var (
	diagCodeStyle     = lipgloss.NewStyle().Foreground(styles.StatusErrorColor).Bold(true)
	diagPositionStyle = lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	diagSuggestStyle  = lipgloss.NewStyle().Foreground(styles.StatusSuccessColor)
	statusBarStyle    = lipgloss.NewStyle().Foreground(styles.TextSecondaryColor)
	statusDirtyStyle  = lipgloss.NewStyle().Foreground(styles.StatusWarningColor)
	statusErrStyle    = lipgloss.NewStyle().Foreground(styles.StatusErrorColor)
	statusOKStyle     = lipgloss.NewStyle().Foreground(styles.StatusSuccessColor)
	statusHintStyle   = lipgloss.NewStyle().Foreground(styles.TextMutedColor)
)

// Model is the workbench mode controller.
type Model struct {
	services mode.Services

	editor   queryeditor.Model
	diagVP   viewport.Model
	focus    focusArea
	selected int // highlighted diagnostic row while the pane has focus

	width  int
	height int

	validating bool

	listenCtx    context.Context
	listenCancel context.CancelFunc
	listener     *pubsub.ContinuousListener[syndrql.ValidationUpdate]
}

// New creates the workbench wired to the shared language service.
func New(services mode.Services) Model {
	ed := queryeditor.New(services.Highlighter)
	ed.SetPlaceholder("Type a SyndrQL statement, e.g. SHOW DATABASES;")
	if services.Config != nil && services.Config.Editor.TabWidth > 0 {
		ed.SetTabWidth(services.Config.Editor.TabWidth)
	}
	ed.Focus()

	ctx, cancel := context.WithCancel(context.Background())
	var listener *pubsub.ContinuousListener[syndrql.ValidationUpdate]
	if services.Highlighter != nil {
		listener = pubsub.NewContinuousListener(ctx, services.Highlighter.Events())
	}

	return Model{
		services:     services,
		editor:       ed,
		diagVP:       viewport.New(0, 0),
		listenCtx:    ctx,
		listenCancel: cancel,
		listener:     listener,
	}
}

// Init implements mode.Controller.
func (m Model) Init() tea.Cmd {
	if m.listener == nil {
		return nil
	}
	return m.listener.Listen()
}

// Close cancels the validation event subscription.
func (m Model) Close() {
	if m.listenCancel != nil {
		m.listenCancel()
	}
}

// Editor exposes the editor widget for the root model's tests.
func (m Model) Editor() *queryeditor.Model {
	return &m.editor
}

// Update implements mode.Controller.
func (m Model) Update(msg tea.Msg) (mode.Controller, tea.Cmd) {
	switch msg := msg.(type) {
	case pubsub.Event[syndrql.ValidationUpdate]:
		return m.handleValidationEvent(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case StatementRecordedMsg:
		return m.handleRecorded(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleValidationEvent(msg pubsub.Event[syndrql.ValidationUpdate]) (mode.Controller, tea.Cmd) {
	switch msg.Type {
	case pubsub.QueuedEvent:
		m.validating = true
	case pubsub.CompletedEvent:
		m.validating = false
		m.editor.ApplyUpdate(msg.Payload)
		m.clampSelection()
	}
	return m, m.listener.Listen()
}

func (m Model) handleMouse(msg tea.MouseMsg) (mode.Controller, tea.Cmd) {
	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
		return m, nil
	}
	diags := m.editor.Diagnostics()
	for i := range diags {
		if z := zone.Get(diagZoneID(i)); z != nil && z.InBounds(msg) {
			return m.jumpTo(diags[i]), nil
		}
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (mode.Controller, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Workbench.RecordStatement):
		return m, m.recordCurrent()

	case key.Matches(msg, keys.Workbench.FocusNext):
		if m.focus == focusEditor {
			m.focus = focusDiagnostics
			m.editor.Blur()
			m.clampSelection()
		} else {
			m.focus = focusEditor
			m.editor.Focus()
		}
		return m, nil
	}

	if m.focus == focusDiagnostics {
		return m.handleDiagnosticsKey(msg)
	}

	if key.Matches(msg, keys.Workbench.ClearEditor) {
		m.editor.SetValue("")
		m.selected = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m Model) handleDiagnosticsKey(msg tea.KeyMsg) (mode.Controller, tea.Cmd) {
	diags := m.editor.Diagnostics()

	switch {
	case msg.Type == tea.KeyEsc:
		m.focus = focusEditor
		m.editor.Focus()

	case key.Matches(msg, keys.Workbench.ScrollUp):
		if m.selected > 0 {
			m.selected--
		}
		m.diagVP.ScrollUp(1)

	case key.Matches(msg, keys.Workbench.ScrollDown):
		if m.selected < len(diags)-1 {
			m.selected++
		}
		m.diagVP.ScrollDown(1)

	case key.Matches(msg, keys.Workbench.JumpToError):
		if m.selected < len(diags) {
			return m.jumpTo(diags[m.selected]), nil
		}
	}

	return m, nil
}

// jumpTo moves the editor cursor to a diagnostic's anchor and returns
// focus to the editor.
func (m Model) jumpTo(d syndrql.ErrorDetail) Model {
	m.editor.SetCursorPosition(editor.Position{Line: d.Line, Column: d.Column})
	m.focus = focusEditor
	m.editor.Focus()
	log.Debug(log.CatMode, "Jumped to diagnostic", "code", d.Code, "line", d.Line, "column", d.Column)
	return m
}

func (m *Model) clampSelection() {
	if n := len(m.editor.Diagnostics()); m.selected >= n {
		m.selected = max(n-1, 0)
	}
}

// recordCurrent persists the statement under the cursor to history.
func (m Model) recordCurrent() tea.Cmd {
	cur := m.editor.CursorPosition()
	stmt := syndrql.StatementAt(m.editor.Statements(), cur.Line, cur.Column)
	if stmt == nil || strings.TrimSpace(stmt.Text) == "" {
		return func() tea.Msg {
			return mode.ShowToastMsg{Message: "No statement under cursor", Style: toaster.StyleWarn}
		}
	}
	if m.services.History == nil {
		return func() tea.Msg {
			return mode.ShowToastMsg{Message: "History store unavailable", Style: toaster.StyleError}
		}
	}

	res := syndrql.Validate(stmt.Tokens)
	rule := ""
	if res.MatchedRule != nil {
		rule = res.MatchedRule.Type
	}
	entry := history.Entry{
		Text:       strings.TrimSpace(stmt.Text),
		Rule:       rule,
		Valid:      res.Valid,
		ErrorCount: len(syndrql.AnalyzeErrors(stmt.Tokens, res, stmt.LineStart)),
	}

	store := m.services.History
	return func() tea.Msg {
		recorded, err := store.Record(context.Background(), entry)
		return StatementRecordedMsg{Entry: recorded, Err: err}
	}
}

func (m Model) handleRecorded(msg StatementRecordedMsg) (mode.Controller, tea.Cmd) {
	if msg.Err != nil {
		log.Warn(log.CatHistory, "Failed to record statement", "error", msg.Err)
		return m, func() tea.Msg {
			return mode.ShowToastMsg{Message: "Failed to record statement", Style: toaster.StyleError}
		}
	}

	message := "Recorded to history"
	style := toaster.StyleSuccess
	if !msg.Entry.Valid {
		message = "Recorded with errors"
		style = toaster.StyleWarn
	}
	return m, func() tea.Msg {
		return mode.ShowToastMsg{Message: message, Style: style}
	}
}

// SetSize implements mode.Controller.
func (m Model) SetSize(width, height int) mode.Controller {
	m.width = width
	m.height = height

	editorH, _ := m.paneHeights()
	m.editor.SetSize(max(width-2, 1), max(editorH-2, 1))
	return m
}

// paneHeights splits the vertical space between the editor pane and
// the diagnostics pane, leaving one row for the status bar.
func (m Model) paneHeights() (editorH, diagH int) {
	usable := m.height - statusBarHeight
	diagH = usable / 3
	if diagH < 5 {
		diagH = 5
	}
	if diagH > 10 {
		diagH = 10
	}
	editorH = usable - diagH
	if editorH < 3 {
		editorH = 3
	}
	return editorH, diagH
}

// View implements mode.Controller.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	editorH, diagH := m.paneHeights()

	editorPane := panes.BorderedPane(panes.BorderConfig{
		Content:            m.editor.View(),
		Width:              m.width,
		Height:             editorH,
		TopLeft:            "SyndrQL",
		Focused:            m.focus == focusEditor,
		TitleColor:         styles.OverlayTitleColor,
		FocusedBorderColor: styles.BorderFocusColor,
	})

	diags := m.editor.Diagnostics()
	diagPane := panes.ScrollablePane(m.width, diagH, panes.ScrollableConfig{
		Viewport:            &m.diagVP,
		TopAligned:          true,
		LeftTitle:           "Diagnostics",
		RightTitle:          fmt.Sprintf("%d", len(diags)),
		ShowScrollIndicator: true,
		Focused:             m.focus == focusDiagnostics,
		TitleColor:          styles.OverlayTitleColor,
		BorderColor:         styles.BorderDefaultColor,
		FocusedBorderColor:  styles.BorderFocusColor,
	}, func(wrapWidth int) string {
		return m.renderDiagnostics(diags, wrapWidth)
	})

	return lipgloss.JoinVertical(lipgloss.Left, editorPane, diagPane, m.statusBar())
}

// renderDiagnostics builds the diagnostics pane content, one zone-marked
// block per diagnostic so clicks can be resolved back to a row.
func (m Model) renderDiagnostics(diags []syndrql.ErrorDetail, wrapWidth int) string {
	if len(diags) == 0 {
		return statusOKStyle.Render("✓ All statements valid")
	}

	blocks := make([]string, 0, len(diags))
	for i, d := range diags {
		marker := "  "
		if m.focus == focusDiagnostics && i == m.selected {
			marker = styles.SelectionIndicatorStyle.Render("▸ ")
		}

		header := fmt.Sprintf("%s%s %s %s",
			marker,
			diagPositionStyle.Render(fmt.Sprintf("%d:%d", d.Line+1, d.Column+1)),
			diagCodeStyle.Render(d.Code),
			d.Message,
		)
		block := wordwrap.String(header, wrapWidth)

		if d.Suggestion != "" {
			suggestion := wordwrap.String("    ↳ "+d.Suggestion, wrapWidth)
			block += "\n" + diagSuggestStyle.Render(suggestion)
		}

		blocks = append(blocks, zone.Mark(diagZoneID(i), block))
	}
	return strings.Join(blocks, "\n")
}

// statusBar renders the single-row document summary under the panes.
func (m Model) statusBar() string {
	stmts := m.editor.Statements()
	invalid := 0
	dirty := false
	for _, s := range stmts {
		if s.Dirty {
			dirty = true
		} else if !s.Valid {
			invalid++
		}
	}

	segments := []string{
		fmt.Sprintf("%d statements", len(stmts)),
	}
	if invalid > 0 {
		segments = append(segments, statusErrStyle.Render(fmt.Sprintf("%d invalid", invalid)))
	} else if !dirty && len(stmts) > 0 {
		segments = append(segments, statusOKStyle.Render("valid"))
	}
	if dirty || m.validating {
		segments = append(segments, statusDirtyStyle.Render("● validating"))
	}

	pos := m.editor.CursorPosition()
	segments = append(segments, fmt.Sprintf("Ln %d, Col %d", pos.Line+1, pos.Column+1))

	left := statusBarStyle.Render(" " + strings.Join(segments, " │ "))
	hint := statusHintStyle.Render("ctrl+enter record · tab panes ")

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(hint)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + hint
}

func diagZoneID(i int) string {
	return fmt.Sprintf("workbench-diag-%d", i)
}
