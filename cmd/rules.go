package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/syndrdb/quill/internal/syndrql"
	"github.com/syndrdb/quill/internal/ui/styles"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the statement shapes the grammar accepts",
	Long: `Print a usage synopsis for every SyndrQL statement the validator
recognizes. Optional elements are bracketed; repeatable elements carry
an ellipsis.`,
	RunE: runRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}

var (
	ruleTypeStyle     = lipgloss.NewStyle().Foreground(styles.QueryKeywordColor).Bold(true)
	ruleSynopsisStyle = lipgloss.NewStyle().Foreground(styles.TextSecondaryColor)
)

func runRules(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	width := 0
	rules := syndrql.Rules()
	for _, r := range rules {
		if len(r.Type) > width {
			width = len(r.Type)
		}
	}

	for _, r := range rules {
		fmt.Fprintf(out, "%s  %s\n",
			ruleTypeStyle.Render(fmt.Sprintf("%-*s", width, r.Type)),
			ruleSynopsisStyle.Render(r.Synopsis()))
	}
	return nil
}
