package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/syndrdb/quill/internal/app"
	"github.com/syndrdb/quill/internal/config"
	"github.com/syndrdb/quill/internal/history"
	"github.com/syndrdb/quill/internal/log"
	"github.com/syndrdb/quill/internal/syndrql"
	"github.com/syndrdb/quill/internal/ui/styles"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version   = "dev"
	cfgFile   string
	debugMode bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:     "quill",
	Short:   "A terminal workbench for SyndrDB",
	Long:    `A terminal workbench for writing SyndrQL: a multi-line query editor with live syntax highlighting, grammar validation, positioned diagnostics, and statement history.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/quill/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false,
		"enable debug logging and the in-app log overlay (ctrl+x)")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("ui.markdown_style", defaults.UI.MarkdownStyle)
	viper.SetDefault("ui.mouse_enabled", defaults.UI.MouseEnabled)
	viper.SetDefault("theme.preset", defaults.Theme.Preset)
	viper.SetDefault("theme.mode", defaults.Theme.Mode)
	viper.SetDefault("editor.debounce_ms", defaults.Editor.DebounceMS)
	viper.SetDefault("editor.tab_width", defaults.Editor.TabWidth)
	viper.SetDefault("cache.ttl_seconds", defaults.Cache.TTLSeconds)
	viper.SetDefault("cache.cleanup_interval_seconds", defaults.Cache.CleanupIntervalSeconds)
	viper.SetDefault("history.path", defaults.History.Path)
	viper.SetDefault("history.max_entries", defaults.History.MaxEntries)
	viper.SetDefault("check.watch_debounce_ms", defaults.Check.WatchDebounceMS)
	viper.SetDefault("check.max_suggestions", defaults.Check.MaxSuggestions)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .quill/config.yaml (current directory)
		// 2. ~/.config/quill/config.yaml (user config)
		if _, err := os.Stat(".quill/config.yaml"); err == nil {
			viper.SetConfigFile(".quill/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "quill"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at ~/.config/quill/config.yaml
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			home, homeErr := os.UserHomeDir()
			if homeErr == nil {
				defaultPath := filepath.Join(home, ".config", "quill", "config.yaml")
				if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
					viper.SetConfigFile(defaultPath)
					_ = viper.ReadInConfig()
				}
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)

	if debugMode {
		log.SetEnabled(true)
	}
}

// applyTheme folds the configured preset and per-token overrides into
// the global style variables before any rendering happens.
func applyTheme() error {
	return styles.ApplyTheme(styles.ThemeConfig{
		Preset: cfg.Theme.Preset,
		Mode:   cfg.Theme.Mode,
		Colors: cfg.Theme.FlattenedColors(),
	})
}

func runApp(cmd *cobra.Command, args []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := applyTheme(); err != nil {
		return fmt.Errorf("applying theme: %w", err)
	}

	highlighter := syndrql.NewHighlighter(syndrql.HighlighterConfig{
		Debounce: time.Duration(cfg.Editor.DebounceMS) * time.Millisecond,
		CacheTTL: time.Duration(cfg.Cache.TTLSeconds) * time.Second,
	})
	defer highlighter.Close()

	store, err := history.NewStore(cfg.History.Path)
	if err != nil {
		return fmt.Errorf("opening history store: %w", err)
	}
	defer func() { _ = store.Close() }()

	// Store the config file path so theme and editor changes can be
	// written back to the right file.
	configFilePath := viper.ConfigFileUsed()

	zone.NewGlobal()
	defer zone.Close()

	model := app.NewWithConfig(highlighter, store, cfg, configFilePath, debugMode)

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.MouseEnabled {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(&model, opts...)

	_, err = p.Run()

	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
