// Package app contains the root application model.
package app

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/syndrdb/quill/internal/config"
	"github.com/syndrdb/quill/internal/history"
	"github.com/syndrdb/quill/internal/keys"
	"github.com/syndrdb/quill/internal/log"
	"github.com/syndrdb/quill/internal/mode"
	"github.com/syndrdb/quill/internal/mode/workbench"
	"github.com/syndrdb/quill/internal/syndrql"
	"github.com/syndrdb/quill/internal/ui/help"
	"github.com/syndrdb/quill/internal/ui/shared/logoverlay"
	"github.com/syndrdb/quill/internal/ui/toaster"
)

// Model is the root application state. It owns the active mode
// controller, the toast overlay, and the debug log overlay; everything
// domain-shaped lives in the modes.
type Model struct {
	currentMode mode.AppMode
	workbench   mode.Controller

	services mode.Services

	width  int
	height int

	// Centralized toaster - owned by app, not individual modes
	toaster toaster.Model

	help        help.Model
	helpVisible bool

	debugMode    bool
	logOverlay   logoverlay.Model
	logListenCmd tea.Cmd
}

// NewWithConfig creates the application model around a shared language
// service and history store. configPath is where theme and editor
// changes are persisted. debugMode enables the log overlay (Ctrl+X).
func NewWithConfig(
	highlighter *syndrql.Highlighter,
	store *history.Store,
	cfg config.Config,
	configPath string,
	debugMode bool,
) Model {
	services := mode.Services{
		Highlighter: highlighter,
		History:     store,
		Config:      &cfg,
		ConfigPath:  configPath,
	}

	// Create log overlay and start listening if debug mode is enabled
	overlay := logoverlay.New()
	var logListenCmd tea.Cmd
	if debugMode {
		logListenCmd = overlay.StartListening()
	}

	return Model{
		currentMode:  mode.ModeWorkbench,
		workbench:    workbench.New(services),
		services:     services,
		help:         help.New(),
		logOverlay:   overlay,
		debugMode:    debugMode,
		logListenCmd: logListenCmd,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.workbench.Init(),
	}
	if m.logListenCmd != nil {
		cmds = append(cmds, m.logListenCmd)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		m.workbench = m.workbench.SetSize(msg.Width, msg.Height)
		m.toaster = m.toaster.SetSize(msg.Width, msg.Height)
		m.help = m.help.SetSize(msg.Width, msg.Height)
		m.logOverlay.SetSize(msg.Width, msg.Height)

		return m, nil

	case tea.MouseMsg:
		// Route mouse events to log overlay when visible
		if m.logOverlay.Visible() {
			var cmd tea.Cmd
			m.logOverlay, cmd = m.logOverlay.Update(msg)
			return m, cmd
		}

	case log.LogEvent:
		// Route to log overlay (handles accumulation and listening)
		var cmd tea.Cmd
		m.logOverlay, cmd = m.logOverlay.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, keys.Global.Quit) {
			return m, tea.Quit
		}

		if key.Matches(msg, keys.Global.Help) {
			m.helpVisible = !m.helpVisible
			return m, nil
		}

		// Help overlay swallows keys until dismissed
		if m.helpVisible {
			if msg.String() == "esc" {
				m.helpVisible = false
			}
			return m, nil
		}

		if m.debugMode && key.Matches(msg, keys.Global.ToggleLogs) {
			m.logOverlay.Toggle()
			return m, nil
		}

		// If the debug log overlay is visible it takes precedence for updates
		if m.logOverlay.Visible() {
			var cmd tea.Cmd
			m.logOverlay, cmd = m.logOverlay.Update(msg)

			return m, cmd
		}

	case mode.ShowToastMsg:
		m.toaster = m.toaster.Show(msg.Message, msg.Style)

		return m, toaster.ScheduleDismiss(3 * time.Second)

	case toaster.DismissMsg:
		m.toaster = m.toaster.Hide()

		return m, nil

	case logoverlay.CloseMsg:
		m.logOverlay.Hide()

		return m, nil
	}

	// Delegate all other messages to the active mode controller
	var cmd tea.Cmd
	m.workbench, cmd = m.workbench.Update(msg)
	return m, cmd
}

// View implements tea.Model. The final frame is scanned by bubblezone
// so marked regions resolve mouse clicks.
func (m Model) View() string {
	view := m.workbench.View()

	if m.helpVisible {
		view = m.help.Overlay(view)
	}

	// Overlay toaster on top of active mode's view
	if m.toaster.Visible() {
		view = m.toaster.Overlay(view, m.width, m.height)
	}

	// Overlay log viewer on top (only in debug mode when visible)
	if m.debugMode && m.logOverlay.Visible() {
		view = m.logOverlay.Overlay(view)
	}

	return zone.Scan(view)
}

// Close releases resources held by the application.
func (m *Model) Close() error {
	m.logOverlay.StopListening()

	if wb, ok := m.workbench.(workbench.Model); ok {
		wb.Close()
	}
	return nil
}
