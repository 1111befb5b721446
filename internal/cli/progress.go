package cli

import (
	"log"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/mvp-joe/testable-docs/internal/analyzer"
)

// CLIProgressReporter draws the extraction progress bar on stderr and logs
// the discovery and summary lines. Stdout stays free for the extracted docs.
type CLIProgressReporter struct {
	quiet bool
	bar   *progressbar.ProgressBar
}

// NewCLIProgressReporter creates a reporter; quiet suppresses all output.
func NewCLIProgressReporter(quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{quiet: quiet}
}

func (r *CLIProgressReporter) OnDiscoveryStart() {
	r.logf("Discovering source files...")
}

func (r *CLIProgressReporter) OnDiscoveryComplete(sourceFiles int) {
	r.logf("Found %d source files", sourceFiles)
}

func (r *CLIProgressReporter) OnFileProcessingStart(totalFiles int) {
	if r.quiet || totalFiles == 0 {
		return
	}
	r.bar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Extracting docs"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *CLIProgressReporter) OnFileProcessed(string) {
	if r.bar != nil {
		_ = r.bar.Add(1)
	}
}

func (r *CLIProgressReporter) OnComplete(stats *analyzer.Stats) {
	if r.bar != nil {
		_ = r.bar.Finish()
		r.bar = nil
	}
	r.logf("✓ Extracted %d classes and %d methods from %d files in %.1fs (%d cached)",
		stats.Classes, stats.Methods, stats.Files, stats.ProcessingTime.Seconds(), stats.CachedFiles)
}

func (r *CLIProgressReporter) logf(format string, args ...any) {
	if !r.quiet {
		log.Printf(format, args...)
	}
}
