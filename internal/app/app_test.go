package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syndrdb/quill/internal/config"
	"github.com/syndrdb/quill/internal/history"
	"github.com/syndrdb/quill/internal/mode"
	"github.com/syndrdb/quill/internal/syndrql"
	"github.com/syndrdb/quill/internal/ui/toaster"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

func newTestApp(t *testing.T, debugMode bool) Model {
	t.Helper()

	h := syndrql.NewHighlighter(syndrql.HighlighterConfig{SkipCache: true})
	t.Cleanup(h.Close)

	store, err := history.NewStore(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	m := NewWithConfig(h, store, config.Defaults(), "", debugMode)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func sized(t *testing.T, m Model) Model {
	t.Helper()

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(Model)
}

func TestNewWithConfig_StartsInWorkbench(t *testing.T) {
	m := newTestApp(t, false)

	assert.Equal(t, mode.ModeWorkbench, m.currentMode)
	assert.NotNil(t, m.workbench)
}

func TestInit_ReturnsCommands(t *testing.T) {
	m := newTestApp(t, false)

	assert.NotNil(t, m.Init())
}

func TestUpdate_WindowSizePropagates(t *testing.T) {
	m := sized(t, newTestApp(t, false))

	view := m.View()
	assert.Contains(t, view, "SyndrQL")
	assert.Contains(t, view, "Diagnostics")
}

func TestUpdate_CtrlCQuits(t *testing.T) {
	m := newTestApp(t, false)

	_, cmd := m.Update(tea.KeyMsg(tea.Key{Type: tea.KeyCtrlC}))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestUpdate_KeysReachWorkbench(t *testing.T) {
	m := sized(t, newTestApp(t, false))

	updated, _ := m.Update(tea.KeyMsg(tea.Key{Type: tea.KeyRunes, Runes: []rune("S")}))
	m = updated.(Model)

	assert.Contains(t, m.View(), "S")
}

func TestUpdate_ToastShowAndDismiss(t *testing.T) {
	m := sized(t, newTestApp(t, false))

	updated, cmd := m.Update(mode.ShowToastMsg{Message: "Recorded to history", Style: toaster.StyleSuccess})
	m = updated.(Model)
	require.NotNil(t, cmd, "toast should schedule its own dismissal")
	assert.Contains(t, m.View(), "Recorded to history")

	updated, _ = m.Update(toaster.DismissMsg{})
	m = updated.(Model)
	assert.NotContains(t, m.View(), "Recorded to history")
}

func TestUpdate_LogOverlayToggleRequiresDebugMode(t *testing.T) {
	m := sized(t, newTestApp(t, false))

	updated, _ := m.Update(tea.KeyMsg(tea.Key{Type: tea.KeyCtrlX}))
	m = updated.(Model)

	assert.False(t, m.logOverlay.Visible())
}

func TestUpdate_LogOverlayToggleInDebugMode(t *testing.T) {
	m := sized(t, newTestApp(t, true))

	updated, _ := m.Update(tea.KeyMsg(tea.Key{Type: tea.KeyCtrlX}))
	m = updated.(Model)

	assert.True(t, m.logOverlay.Visible())

	updated, _ = m.Update(tea.KeyMsg(tea.Key{Type: tea.KeyCtrlX}))
	m = updated.(Model)
	assert.False(t, m.logOverlay.Visible())
}

func TestUpdate_HelpOverlayToggle(t *testing.T) {
	m := sized(t, newTestApp(t, false))

	updated, _ := m.Update(tea.KeyMsg(tea.Key{Type: tea.KeyCtrlG}))
	m = updated.(Model)

	assert.True(t, m.helpVisible)
	assert.Contains(t, m.View(), "Keybindings")

	updated, _ = m.Update(tea.KeyMsg(tea.Key{Type: tea.KeyCtrlG}))
	m = updated.(Model)
	assert.False(t, m.helpVisible)
}

func TestUpdate_HelpOverlayClosesOnEsc(t *testing.T) {
	m := sized(t, newTestApp(t, false))

	updated, _ := m.Update(tea.KeyMsg(tea.Key{Type: tea.KeyCtrlG}))
	m = updated.(Model)
	require.True(t, m.helpVisible)

	updated, _ = m.Update(tea.KeyMsg(tea.Key{Type: tea.KeyEsc}))
	m = updated.(Model)
	assert.False(t, m.helpVisible)
}

func TestUpdate_HelpOverlaySwallowsKeys(t *testing.T) {
	m := sized(t, newTestApp(t, false))

	updated, _ := m.Update(tea.KeyMsg(tea.Key{Type: tea.KeyCtrlG}))
	m = updated.(Model)

	// Typed runes must not reach the editor while help is open
	updated, _ = m.Update(tea.KeyMsg(tea.Key{Type: tea.KeyRunes, Runes: []rune("Z")}))
	m = updated.(Model)

	updated, _ = m.Update(tea.KeyMsg(tea.Key{Type: tea.KeyEsc}))
	m = updated.(Model)
	assert.NotContains(t, m.View(), "Z")
}

func TestClose_Idempotent(t *testing.T) {
	m := newTestApp(t, false)

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
}

func TestProgram_RendersAndQuits(t *testing.T) {
	m := newTestApp(t, false)

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("SyndrQL"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg(tea.Key{Type: tea.KeyCtrlC}))
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))
}
