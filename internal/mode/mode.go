// Package mode defines the mode controller interface and shared services.
package mode

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/syndrdb/quill/internal/config"
	"github.com/syndrdb/quill/internal/history"
	"github.com/syndrdb/quill/internal/syndrql"
	"github.com/syndrdb/quill/internal/ui/toaster"
)

// AppMode identifies the current application mode.
type AppMode int

const (
	ModeWorkbench AppMode = iota
)

// Controller defines the interface all modes must implement.
type Controller interface {
	// Init returns initial commands for the mode.
	Init() tea.Cmd

	// Update handles messages and returns updated model and commands.
	Update(msg tea.Msg) (Controller, tea.Cmd)

	// View renders the mode's UI.
	View() string

	// SetSize handles terminal resize events.
	SetSize(width, height int) Controller
}

// Services contains shared dependencies injected into mode controllers.
type Services struct {
	Highlighter *syndrql.Highlighter
	History     *history.Store
	Config      *config.Config
	ConfigPath  string
}

// ShowToastMsg asks the root model to show a toast notification.
// Modes emit it instead of owning toaster state themselves.
type ShowToastMsg struct {
	Message string
	Style   toaster.Style
}
