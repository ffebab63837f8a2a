// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// GlobalKeyMap holds bindings that apply regardless of focus.
type GlobalKeyMap struct {
	Quit       key.Binding
	Help       key.Binding
	ToggleLogs key.Binding
}

// WorkbenchKeyMap holds bindings for the query workbench screen.
type WorkbenchKeyMap struct {
	RecordStatement key.Binding
	FocusNext       key.Binding
	ScrollUp        key.Binding
	ScrollDown      key.Binding
	JumpToError     key.Binding
	ClearEditor     key.Binding
}

// DefaultGlobalKeyMap returns the default global bindings.
func DefaultGlobalKeyMap() GlobalKeyMap {
	return GlobalKeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "help"),
		),
		ToggleLogs: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "toggle debug logs"),
		),
	}
}

// DefaultWorkbenchKeyMap returns the default workbench bindings.
// RecordStatement carries alt+enter as a fallback for terminals that
// cannot report ctrl+enter.
func DefaultWorkbenchKeyMap() WorkbenchKeyMap {
	return WorkbenchKeyMap{
		RecordStatement: key.NewBinding(
			key.WithKeys("ctrl+enter", "alt+enter"),
			key.WithHelp("ctrl+enter", "record statement"),
		),
		FocusNext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		JumpToError: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "jump to error"),
		),
		ClearEditor: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear editor"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k WorkbenchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.RecordStatement, k.FocusNext, k.ClearEditor}
}

// FullHelp returns keybindings for the full help view.
func (k WorkbenchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.RecordStatement, k.ClearEditor},
		{k.FocusNext, k.ScrollUp, k.ScrollDown, k.JumpToError},
	}
}

// Global holds the active global bindings.
var Global = DefaultGlobalKeyMap()

// Workbench holds the active workbench bindings.
var Workbench = DefaultWorkbenchKeyMap()
