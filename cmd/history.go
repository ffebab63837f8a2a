package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/syndrdb/quill/internal/history"
	"github.com/syndrdb/quill/internal/ui/styles"
)

var (
	historyLimit int
	historyClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently recorded statements",
	Long: `List statements recorded from the workbench, newest first. Each entry
shows when it ran, the statement type, and whether it validated cleanly.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0,
		"maximum entries to show (default: history.max_entries from config)")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false,
		"delete all recorded statements")
	rootCmd.AddCommand(historyCmd)
}

var (
	historyTimeStyle  = lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	historyRuleStyle  = lipgloss.NewStyle().Foreground(styles.QueryKeywordColor).Bold(true)
	historyValidStyle = lipgloss.NewStyle().Foreground(styles.StatusSuccessColor)
	historyErrStyle   = lipgloss.NewStyle().Foreground(styles.StatusErrorColor)
)

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := history.NewStore(cfg.History.Path)
	if err != nil {
		return fmt.Errorf("opening history store: %w", err)
	}
	defer func() { _ = store.Close() }()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if historyClear {
		if err := store.Clear(ctx); err != nil {
			return fmt.Errorf("clearing history: %w", err)
		}
		fmt.Fprintln(out, "history cleared")
		return nil
	}

	limit := historyLimit
	if limit <= 0 {
		limit = cfg.History.MaxEntries
	}

	entries, err := store.List(ctx, limit)
	if err != nil {
		return fmt.Errorf("listing history: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "no statements recorded yet")
		return nil
	}

	for _, e := range entries {
		fmt.Fprintln(out, formatHistoryEntry(e))
	}
	return nil
}

func formatHistoryEntry(e history.Entry) string {
	status := historyValidStyle.Render("✓")
	if !e.Valid {
		status = historyErrStyle.Render(fmt.Sprintf("✗ %d error(s)", e.ErrorCount))
	}

	rule := e.Rule
	if rule == "" {
		rule = "UNKNOWN"
	}

	// Statements render on one line; embedded layout collapses.
	text := strings.Join(strings.Fields(e.Text), " ")

	return fmt.Sprintf("%s  %s  %s  %s",
		historyTimeStyle.Render(e.ExecutedAt.Local().Format("2006-01-02 15:04")),
		historyRuleStyle.Render(fmt.Sprintf("%-18s", rule)),
		status,
		text,
	)
}
