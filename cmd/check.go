package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/syndrdb/quill/internal/syndrql"
	"github.com/syndrdb/quill/internal/tracing"
	"github.com/syndrdb/quill/internal/ui/styles"
	"github.com/syndrdb/quill/internal/watcher"
)

var (
	checkWatch bool
	checkTrace bool
)

var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Validate SyndrQL query files",
	Long: `Validate one or more .syq files against the SyndrQL grammar and print
positioned diagnostics. Exits non-zero when any file has errors.`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runCheck,
}

func init() {
	checkCmd.Flags().BoolVarP(&checkWatch, "watch", "w", false,
		"re-check files whenever they change")
	checkCmd.Flags().BoolVarP(&checkTrace, "trace", "t", false,
		"emit OpenTelemetry spans around tokenize/validate/analyze")
	rootCmd.AddCommand(checkCmd)
}

var (
	checkErrorStyle   = lipgloss.NewStyle().Foreground(styles.StatusErrorColor).Bold(true)
	checkCodeStyle    = lipgloss.NewStyle().Foreground(styles.StatusWarningColor).Bold(true)
	checkFileStyle    = lipgloss.NewStyle().Foreground(styles.QueryPunctColor).Bold(true)
	checkGutterStyle  = lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	checkSuggestStyle = lipgloss.NewStyle().Foreground(styles.StatusSuccessColor)
	checkOKStyle      = lipgloss.NewStyle().Foreground(styles.StatusSuccessColor)
)

// fileReport is the outcome of checking one query file.
type fileReport struct {
	Path       string
	Lines      []string
	Statements int
	Details    []syndrql.ErrorDetail
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	tracer, shutdown, err := checkTracer()
	if err != nil {
		return err
	}
	defer shutdown()

	out := cmd.OutOrStdout()

	errorCount, err := checkFiles(ctx, tracer, out, args)
	if err != nil {
		return err
	}

	if !checkWatch {
		if errorCount > 0 {
			return fmt.Errorf("found %d problem(s)", errorCount)
		}
		return nil
	}

	w, err := watcher.New(watcher.Config{
		Paths:       args,
		DebounceDur: time.Duration(cfg.Check.WatchDebounceMS) * time.Millisecond,
	})
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer func() { _ = w.Stop() }()

	onChange, err := w.Start()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}

	fmt.Fprintln(out, checkGutterStyle.Render("watching for changes, ctrl+c to stop"))
	for {
		select {
		case <-onChange:
			fmt.Fprintln(out)
			if _, err := checkFiles(ctx, tracer, out, args); err != nil {
				return err
			}
		case <-ctx.Done():
			return nil
		}
	}
}

// checkTracer builds the tracer for --trace runs. Without the flag the
// provider hands back a no-op tracer.
func checkTracer() (trace.Tracer, func(), error) {
	tcfg := tracing.Config{
		Enabled:      checkTrace,
		Exporter:     cfg.Tracing.Exporter,
		FilePath:     cfg.Tracing.FilePath,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRate:   cfg.Tracing.SampleRate,
	}
	if checkTrace && (tcfg.Exporter == "" || tcfg.Exporter == "none") {
		tcfg.Exporter = "stdout"
	}
	if tcfg.SampleRate == 0 {
		tcfg.SampleRate = 1.0
	}

	provider, err := tracing.NewProvider(tcfg)
	if err != nil {
		return nil, nil, fmt.Errorf("configuring tracing: %w", err)
	}

	shutdown := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = provider.Shutdown(ctx)
	}
	return provider.Tracer(), shutdown, nil
}

func checkFiles(ctx context.Context, tracer trace.Tracer, out io.Writer, paths []string) (int, error) {
	errorCount := 0
	for _, path := range paths {
		report, err := checkFile(ctx, tracer, path)
		if err != nil {
			return errorCount, err
		}

		fmt.Fprint(out, formatReport(report))
		errorCount += len(report.Details)
	}
	return errorCount, nil
}

// checkFile validates one query file, tracing each service phase.
func checkFile(ctx context.Context, tracer trace.Tracer, path string) (fileReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileReport{}, fmt.Errorf("reading %s: %w", path, err)
	}
	text := string(data)

	ctx, fileSpan := tracer.Start(ctx, tracing.SpanCheckFile, trace.WithAttributes(
		attribute.String(tracing.AttrFilePath, path),
		attribute.Int(tracing.AttrFileBytes, len(data)),
	))
	defer fileSpan.End()

	_, segSpan := tracer.Start(ctx, tracing.SpanSegment)
	stmts := syndrql.ParseStatements(text)
	segSpan.SetAttributes(attribute.Int(tracing.AttrStatementCount, len(stmts)))
	segSpan.End()

	report := fileReport{
		Path:       path,
		Lines:      strings.Split(text, "\n"),
		Statements: len(stmts),
	}

	for i, stmt := range stmts {
		if strings.TrimSpace(stmt.Text) == "" {
			continue
		}

		stmtCtx, tokSpan := tracer.Start(ctx, tracing.SpanTokenize, trace.WithAttributes(
			attribute.Int(tracing.AttrStatementIndex, i),
		))
		tokens := syndrql.Tokenize(stmt.Text)
		tokSpan.SetAttributes(attribute.Int(tracing.AttrTokenCount, len(tokens)))
		tokSpan.End()

		valCtx, valSpan := tracer.Start(stmtCtx, tracing.SpanValidate)
		res := syndrql.Validate(tokens)
		valSpan.SetAttributes(attribute.Bool(tracing.AttrStatementValid, res.Valid))
		if res.MatchedRule != nil {
			valSpan.AddEvent(tracing.EventRuleMatched)
			valSpan.SetAttributes(attribute.String(tracing.AttrStatementRule, res.MatchedRule.Type))
		}
		valSpan.End()

		if res.Valid {
			continue
		}

		_, anaSpan := tracer.Start(valCtx, tracing.SpanAnalyze)
		details := syndrql.AnalyzeErrors(tokens, res, stmt.LineStart)
		anaSpan.SetAttributes(attribute.Int(tracing.AttrErrorCount, len(details)))
		anaSpan.End()

		report.Details = append(report.Details, details...)
	}

	fileSpan.SetAttributes(attribute.Int(tracing.AttrErrorCount, len(report.Details)))
	return report, nil
}

// formatReport renders a file's diagnostics in compiler style: a header
// naming the code, the offending source line, and a caret underline.
func formatReport(r fileReport) string {
	var b strings.Builder

	if len(r.Details) == 0 {
		plural := "s"
		if r.Statements == 1 {
			plural = ""
		}
		fmt.Fprintf(&b, "%s %s (%d statement%s)\n",
			checkOKStyle.Render("✓"), r.Path, r.Statements, plural)
		return b.String()
	}

	for _, d := range r.Details {
		b.WriteString(formatDiagnostic(r.Path, r.Lines, d))
	}
	fmt.Fprintf(&b, "%s: %s\n", r.Path,
		checkErrorStyle.Render(fmt.Sprintf("%d problem(s)", len(r.Details))))
	return b.String()
}

func formatDiagnostic(path string, lines []string, d syndrql.ErrorDetail) string {
	var b strings.Builder

	lineNum := d.Line + 1
	gutterWidth := len(strconv.Itoa(lineNum))
	pad := strings.Repeat(" ", gutterWidth)

	fmt.Fprintf(&b, "%s: %s\n",
		checkErrorStyle.Render("error"), checkCodeStyle.Render(d.Code))
	fmt.Fprintf(&b, "%s%s %s\n",
		pad, checkGutterStyle.Render("-->"),
		checkFileStyle.Render(fmt.Sprintf("%s:%d:%d", path, lineNum, d.Column+1)))

	if d.Line >= 0 && d.Line < len(lines) {
		line := lines[d.Line]
		fmt.Fprintf(&b, "%s %s\n", pad, checkGutterStyle.Render("|"))
		fmt.Fprintf(&b, "%s %s %s\n",
			checkGutterStyle.Render(strconv.Itoa(lineNum)), checkGutterStyle.Render("|"), line)
		fmt.Fprintf(&b, "%s %s %s %s\n",
			pad, checkGutterStyle.Render("|"), underline(line, d.Column, d.Length), d.Message)
	} else {
		fmt.Fprintf(&b, "%s %s %s\n", pad, checkGutterStyle.Render("|"), d.Message)
	}

	if d.Suggestion != "" {
		fmt.Fprintf(&b, "%s %s\n", pad,
			checkSuggestStyle.Render("= suggestion: "+d.Suggestion))
	}
	b.WriteString("\n")
	return b.String()
}

// underline builds the caret marker for a byte span of a source line,
// accounting for wide runes before and inside the span.
func underline(line string, col, length int) string {
	if col > len(line) {
		col = len(line)
	}
	lead := runewidth.StringWidth(line[:col])

	end := col + length
	if end > len(line) {
		end = len(line)
	}
	width := runewidth.StringWidth(line[col:end])
	if width < 1 {
		width = 1
	}

	marker := "^" + strings.Repeat("~", width-1)
	return strings.Repeat(" ", lead) + checkErrorStyle.Render(marker)
}
