package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/testable-docs/internal/analyzer"
	"github.com/mvp-joe/testable-docs/internal/audit"
)

var (
	watchDebounce time.Duration
	watchOutput   string
	watchDatabase string
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Re-extract documentation whenever source files change",
	Long: `Watch analyzes dir once, then keeps watching it. Every batch of changed
source files is re-extracted, the output file is rewritten, the index rows of
the affected files are replaced and a one-line check summary is printed.
Unchanged files are served from cache.

Examples:
  # Keep docs.json up to date
  testable-docs watch --output docs.json
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", analyzer.DefaultDebounce, "Quiet period before re-analysis")
	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "", "Output file rewritten after every change")
	watchCmd.Flags().StringVar(&watchDatabase, "db", "", "SQLite documentation index to keep up to date (default from config)")
}

func runWatch(cmd *cobra.Command, args []string) error {
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

	database := cfg.Output.Database
	if watchDatabase != "" {
		database = watchDatabase
	}

	a, result, err := analyze(ctx, rootDir, cfg, quietFlag)
	if err != nil {
		return err
	}
	defer a.Close()

	var index *docIndex
	if database != "" {
		index = newDocIndex(rootDir, database)
	}

	publish := func(files []string, result *analyzer.Result) {
		if watchOutput != "" {
			if err := writeOutput(cmd.OutOrStdout(), watchOutput, cfg.Output.Format, result.Set.Classes()); err != nil {
				log.Printf("Warning: %v", err)
			}
		}
		if index != nil {
			if err := index.write(result.Set, files); err != nil {
				log.Printf("Warning: %v", err)
			}
		}
		report := audit.Audit(result.Set.Classes(), audit.Options{})
		fmt.Fprintf(cmd.OutOrStdout(), "%s %d classes, %d of %d checks failed\n",
			time.Now().Format(time.TimeOnly), report.Classes, report.FailedChecks(), report.Checks)
	}
	publish(nil, result)

	// Progress bars would interleave with the summaries
	a.SetProgressReporter(nil)

	w, err := analyzer.NewWatcher(a, watchDebounce)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer w.Stop()

	w.Start(ctx, func(files []string, result *analyzer.Result, err error) {
		if err != nil {
			// Keep the last good result
			log.Printf("Re-analysis of %d files failed: %v", len(files), err)
			return
		}
		if verbose {
			log.Printf("Re-analyzed %d files", len(files))
		}
		publish(files, result)
	})

	if !quietFlag {
		log.Printf("Watching %s for changes (Ctrl+C to stop)", rootDir)
	}
	<-ctx.Done()

	if !quietFlag {
		log.Println("Watch mode stopped")
	}
	return nil
}
