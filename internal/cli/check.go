package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/testable-docs/internal/audit"
)

// ErrIncompleteDocs is returned by check when at least one check failed.
var ErrIncompleteDocs = errors.New("documentation incomplete")

var (
	checkFormat      string
	checkSkipPrivate bool
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Fail when classes, methods or parameters are undocumented",
	Long: `Check extracts the documentation below dir and runs one check per class
and one per method. A class needs a comment with a description; a method
needs a comment with a description and a described @param tag for each of
its parameters. The command exits non-zero when any check fails.

Examples:
  # Check the current project
  testable-docs check

  # Only public API, as JSON
  testable-docs check --skip-private --format json
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVarP(&checkFormat, "format", "f", "text", "Report format: text, json or yaml")
	checkCmd.Flags().BoolVar(&checkSkipPrivate, "skip-private", false, "Ignore private classes and methods")
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootDir, err := resolveRoot(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(rootDir)
	if err != nil {
		return err
	}

	a, result, err := analyze(ctx, rootDir, cfg, quietFlag)
	if err != nil {
		return err
	}
	defer a.Close()

	report := audit.Audit(result.Set.Classes(), audit.Options{SkipPrivate: checkSkipPrivate})

	if checkFormat == "text" {
		printReport(cmd.OutOrStdout(), report)
	} else if err := encode(cmd.OutOrStdout(), checkFormat, report); err != nil {
		return err
	}

	if !report.Passed() {
		return fmt.Errorf("%w: %d of %d checks failed", ErrIncompleteDocs, report.FailedChecks(), report.Checks)
	}
	return nil
}

// printReport writes findings grouped by section and check.
func printReport(w io.Writer, report *audit.Report) {
	var section, check string
	for _, f := range report.Findings {
		if f.Section != section {
			section, check = f.Section, ""
			fmt.Fprintln(w, section)
		}
		if f.Check != check {
			check = f.Check
			fmt.Fprintf(w, "  ✗ %s\n", check)
		}
		fmt.Fprintf(w, "      %s\n", f.Message)
	}

	if report.Passed() {
		fmt.Fprintf(w, "✓ %d checks passed (%d classes, %d methods, %d parameters)\n",
			report.Checks, report.Classes, report.Methods, report.Parameters)
		return
	}
	fmt.Fprintf(w, "\n%d of %d checks failed\n", report.FailedChecks(), report.Checks)
}
