// Package config provides configuration types and defaults for quill.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/syndrdb/quill/internal/log"
)

// Config holds all configuration options for quill.
type Config struct {
	UI      UIConfig        `mapstructure:"ui"`
	Theme   ThemeConfig     `mapstructure:"theme"`
	Editor  EditorConfig    `mapstructure:"editor"`
	Cache   CacheConfig     `mapstructure:"cache"`
	History HistoryConfig   `mapstructure:"history"`
	Check   CheckConfig     `mapstructure:"check"`
	Tracing TracingConfig   `mapstructure:"tracing"`
	Flags   map[string]bool `mapstructure:"flags"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowStatusBar bool   `mapstructure:"show_status_bar"`
	MarkdownStyle string `mapstructure:"markdown_style"` // "dark" (default) or "light"
	MouseEnabled  bool   `mapstructure:"mouse_enabled"`  // Enable click-to-jump on diagnostics
}

// ThemeConfig holds all theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme as the base (optional).
	// Valid values: "default", "catppuccin-mocha", "catppuccin-latte",
	// "nord", "high-contrast"
	Preset string `mapstructure:"preset"`

	// Mode forces light or dark mode. If empty, uses terminal detection.
	// Valid values: "light", "dark", ""
	Mode string `mapstructure:"mode"`

	// Colors allows overriding individual color tokens.
	// Supports both nested YAML structure and dot notation.
	// Example YAML:
	//   colors:
	//     syntax:
	//       keyword: "#FF0000"
	// Or quoted dot notation:
	//   colors:
	//     "syntax.keyword": "#FF0000"
	Colors map[string]any `mapstructure:"colors"`
}

// FlattenedColors returns the Colors map flattened to dot-notation keys.
// This handles both nested YAML structures and already-flat keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

// flattenColors recursively flattens a nested map into dot-notation keys.
func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			// YAML sometimes produces map[any]any instead of map[string]any
			converted := make(map[string]any)
			for mk, mv := range val {
				if strKey, ok := mk.(string); ok {
					converted[strKey] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// EditorConfig holds query editor behavior settings.
type EditorConfig struct {
	// DebounceMS is the trailing-edge delay before a changed document is
	// revalidated, in milliseconds. Default: 200
	DebounceMS int `mapstructure:"debounce_ms"`

	// TabWidth is the number of spaces a tab key inserts. Default: 2
	TabWidth int `mapstructure:"tab_width"`
}

// CacheConfig holds language-service cache settings.
type CacheConfig struct {
	// TTLSeconds is how long cached token lists and validation results
	// live before eviction. Default: 300 (5 minutes)
	TTLSeconds int `mapstructure:"ttl_seconds"`

	// CleanupIntervalSeconds is how often expired entries are swept.
	// Default: 600 (10 minutes)
	CleanupIntervalSeconds int `mapstructure:"cleanup_interval_seconds"`
}

// HistoryConfig holds query-history storage settings.
type HistoryConfig struct {
	// Path is the sqlite database file for statement history.
	// Default: ~/.config/quill/history.db
	Path string `mapstructure:"path"`

	// MaxEntries caps how many history rows `quill history` lists.
	// Default: 50
	MaxEntries int `mapstructure:"max_entries"`
}

// CheckConfig holds defaults for the `quill check` command.
type CheckConfig struct {
	// WatchDebounceMS is the quiet period after a file change before
	// re-checking, in milliseconds. Default: 250
	WatchDebounceMS int `mapstructure:"watch_debounce_ms"`

	// MaxSuggestions caps keyword suggestions per diagnostic. Default: 1
	MaxSuggestions int `mapstructure:"max_suggestions"`
}

// TracingConfig holds trace export configuration for `quill check --trace`.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/quill/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// 1.0 = all traces, 0.1 = 10% of traces
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/quill/traces/traces.jsonl or empty string if home dir unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "quill", "traces", "traces.jsonl")
}

// DefaultHistoryPath returns the default sqlite file for statement history.
// Returns ~/.config/quill/history.db or empty string if home dir unavailable.
func DefaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "quill", "history.db")
}

// ValidateEditor checks editor configuration for errors.
// Returns nil if the configuration is valid (zero values use defaults).
func ValidateEditor(editor EditorConfig) error {
	if editor.DebounceMS < 0 {
		return fmt.Errorf("editor.debounce_ms must be >= 0, got %d", editor.DebounceMS)
	}
	if editor.TabWidth < 0 {
		return fmt.Errorf("editor.tab_width must be >= 0, got %d", editor.TabWidth)
	}
	return nil
}

// ValidateCache checks cache configuration for errors.
// Returns nil if the configuration is valid (zero values use defaults).
func ValidateCache(cache CacheConfig) error {
	if cache.TTLSeconds < 0 {
		return fmt.Errorf("cache.ttl_seconds must be >= 0, got %d", cache.TTLSeconds)
	}
	if cache.CleanupIntervalSeconds < 0 {
		return fmt.Errorf("cache.cleanup_interval_seconds must be >= 0, got %d", cache.CleanupIntervalSeconds)
	}
	return nil
}

// ValidateHistory checks history configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateHistory(history HistoryConfig) error {
	if history.Path != "" && !filepath.IsAbs(history.Path) {
		return fmt.Errorf("history.path must be an absolute path, got %q", history.Path)
	}
	if history.MaxEntries < 0 {
		return fmt.Errorf("history.max_entries must be >= 0, got %d", history.MaxEntries)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	// Validate SampleRate is in range [0.0, 1.0]
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	// Validate Exporter is a valid option
	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
			// Valid
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if tracing.Enabled {
		// FilePath is required when Exporter is "file"
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}

		// OTLPEndpoint is required when Exporter is "otlp"
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// Validate checks the full configuration for errors.
func Validate(cfg Config) error {
	if err := ValidateEditor(cfg.Editor); err != nil {
		return err
	}
	if err := ValidateCache(cfg.Cache); err != nil {
		return err
	}
	if err := ValidateHistory(cfg.History); err != nil {
		return err
	}
	if err := ValidateTracing(cfg.Tracing); err != nil {
		return err
	}
	return nil
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		UI: UIConfig{
			ShowStatusBar: true,
			MarkdownStyle: "dark",
			MouseEnabled:  true,
		},
		Theme: ThemeConfig{
			// Default theme uses the "default" preset
			Preset: "",
		},
		Editor: EditorConfig{
			DebounceMS: 200,
			TabWidth:   2,
		},
		Cache: CacheConfig{
			TTLSeconds:             300,
			CleanupIntervalSeconds: 600,
		},
		History: HistoryConfig{
			Path:       DefaultHistoryPath(),
			MaxEntries: 50,
		},
		Check: CheckConfig{
			WatchDebounceMS: 250,
			MaxSuggestions:  1,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from config dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Quill Configuration

# UI settings
ui:
  show_status_bar: true   # Show status bar at bottom of the workbench
  # markdown_style: dark  # Markdown rendering style: "dark" (default) or "light"
  mouse_enabled: true     # Click a diagnostic to jump the cursor to it

# Theme configuration
# Use a preset theme or customize individual colors
theme:
  # Use a preset:
  # preset: catppuccin-mocha
  #
  # Available presets:
  #   default           - Default quill theme
  #   catppuccin-mocha  - Warm, cozy dark theme
  #   catppuccin-latte  - Warm, cozy light theme
  #   nord              - Arctic, north-bluish palette
  #   high-contrast     - High contrast for accessibility
  #
  # Override specific colors (works with or without preset):
  # colors:
  #   syntax.keyword: "#CBA6F7"
  #   syntax.string: "#A6E3A1"
  #   status.error: "#FF0000"

# Query editor behavior
editor:
  debounce_ms: 200  # Quiet period before a changed document revalidates
  tab_width: 2      # Spaces inserted per tab

# Language-service caches (token lists and validation results)
cache:
  ttl_seconds: 300              # Entry lifetime before eviction
  cleanup_interval_seconds: 600 # Sweep cadence for expired entries

# Statement history (Ctrl+Enter in the workbench records a statement)
history:
  # path: ~/.config/quill/history.db  # Absolute path to the sqlite file
  max_entries: 50                     # Rows shown by 'quill history'

# Defaults for 'quill check'
check:
  watch_debounce_ms: 250  # Quiet period after a file change before re-checking
  max_suggestions: 1      # Keyword suggestions per diagnostic

# Trace export for 'quill check --trace'
# Spans cover the tokenize, validate, and analyze phases per statement.
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/quill/traces/traces.jsonl  # Output file for file exporter
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
#
# Example: Send traces to Jaeger via OTLP
# tracing:
#   enabled: true
#   exporter: otlp
#   otlp_endpoint: jaeger.internal:4317
#   sample_rate: 0.1  # Sample 10% of traces
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	// Create parent directory if needed
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	// Write the template
	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
