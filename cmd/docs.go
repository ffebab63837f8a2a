package cmd

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/syndrdb/quill/internal/ui/shared/markdown"
)

//go:embed docs/syndrql.md
var syndrqlReference string

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Show the SyndrQL language reference",
	RunE:  runDocs,
}

func init() {
	rootCmd.AddCommand(docsCmd)
}

func runDocs(cmd *cobra.Command, args []string) error {
	width := 80
	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			width = min(w, 100)
		}
	}

	r, err := markdown.New(width, cfg.UI.MarkdownStyle)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}

	rendered, err := r.Render(syndrqlReference)
	if err != nil {
		return fmt.Errorf("rendering reference: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), rendered)
	return nil
}
