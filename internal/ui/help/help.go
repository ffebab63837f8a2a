// Package help contains the help overlay component.
package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/syndrdb/quill/internal/keys"
	"github.com/syndrdb/quill/internal/ui/overlay"
	"github.com/syndrdb/quill/internal/ui/styles"
)

// StatementExamples returns sample statements for the quick reference.
func StatementExamples() []string {
	return []string{
		"SHOW DATABASES;",
		`USE DATABASE "inventory";`,
		`CREATE BUNDLE "users" WITH FIELDS ("name" STRING, "age" INT);`,
		`SELECT DOCUMENTS FROM BUNDLE "users" WHERE age > 30;`,
		`INSERT INTO BUNDLE "users" DOCUMENT {"name": "Ada"};`,
		`DELETE DOCUMENTS FROM BUNDLE "users" WHERE age < 18;`,
	}
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.OverlayTitleColor).
			PaddingLeft(2)

	dividerStyle = lipgloss.NewStyle().
			Foreground(styles.OverlayBorderColor)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.OverlayTitleColor).
			MarginTop(1)

	keyStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondaryColor).
			Width(13)

	descStyle = lipgloss.NewStyle().
			Foreground(styles.TextDescriptionColor)

	exampleStyle = lipgloss.NewStyle().
			Foreground(styles.TextMutedColor)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.OverlayBorderColor)

	contentStyle = lipgloss.NewStyle().
			Padding(0, 2)

	footerStyle = lipgloss.NewStyle().
			Foreground(styles.TextMutedColor).
			MarginTop(1)
)

// Model holds the help view state.
type Model struct {
	global    keys.GlobalKeyMap
	workbench keys.WorkbenchKeyMap
	width     int
	height    int
}

// New creates a new help view.
func New() Model {
	return Model{
		global:    keys.DefaultGlobalKeyMap(),
		workbench: keys.DefaultWorkbenchKeyMap(),
	}
}

// SetSize updates dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// View renders the help overlay (standalone, no background).
func (m Model) View() string {
	return m.Overlay("")
}

// Overlay renders the help box on top of a background view.
func (m Model) Overlay(background string) string {
	helpBox := m.renderContent()

	if background == "" {
		return lipgloss.Place(
			m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			helpBox,
		)
	}

	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, helpBox, background)
}

// renderContent builds the help box content.
func (m Model) renderContent() string {
	columnStyle := lipgloss.NewStyle().MarginRight(4)

	var editorCol strings.Builder
	editorCol.WriteString(sectionStyle.Render("Editor"))
	editorCol.WriteString("\n")
	editorCol.WriteString(m.renderBinding(m.workbench.RecordStatement))
	editorCol.WriteString(m.renderBinding(m.workbench.ClearEditor))
	editorCol.WriteString(m.renderBinding(m.workbench.FocusNext))

	var diagCol strings.Builder
	diagCol.WriteString(sectionStyle.Render("Diagnostics"))
	diagCol.WriteString("\n")
	diagCol.WriteString(m.renderBinding(m.workbench.ScrollUp))
	diagCol.WriteString(m.renderBinding(m.workbench.ScrollDown))
	diagCol.WriteString(m.renderBinding(m.workbench.JumpToError))
	diagCol.WriteString(renderKeyDesc("esc", "back to editor"))

	var generalCol strings.Builder
	generalCol.WriteString(sectionStyle.Render("General"))
	generalCol.WriteString("\n")
	generalCol.WriteString(m.renderBinding(m.global.Help))
	generalCol.WriteString(m.renderBinding(m.global.ToggleLogs))
	generalCol.WriteString(m.renderBinding(m.global.Quit))

	columns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		columnStyle.Render(editorCol.String()),
		columnStyle.Render(diagCol.String()),
		generalCol.String(),
	)

	var examplesCol strings.Builder
	examplesCol.WriteString(sectionStyle.Render("SyndrQL"))
	examplesCol.WriteString("\n")
	for _, ex := range StatementExamples() {
		examplesCol.WriteString(exampleStyle.Render(ex) + "\n")
	}
	examplesCol.WriteString(exampleStyle.Render("Run `quill docs` for the full reference.") + "\n")

	columnsWidth := lipgloss.Width(columns)
	if w := lipgloss.Width(examplesCol.String()); w > columnsWidth {
		columnsWidth = w
	}
	boxWidth := columnsWidth + 4

	allContent := columns + "\n" + examplesCol.String() +
		footerStyle.Render("Press ctrl+g or esc to close")
	body := contentStyle.Render(allContent)

	divider := dividerStyle.Render(strings.Repeat("─", boxWidth))

	var content strings.Builder
	content.WriteString(titleStyle.Render("Keybindings"))
	content.WriteString("\n")
	content.WriteString(divider)
	content.WriteString("\n")
	content.WriteString(body)

	return boxStyle.Width(boxWidth).Render(content.String())
}

func (m Model) renderBinding(b key.Binding) string {
	help := b.Help()
	return renderKeyDesc(help.Key, help.Desc)
}

func renderKeyDesc(key, desc string) string {
	return keyStyle.Render(key) + descStyle.Render(desc) + "\n"
}
