package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/testable-docs/internal/config"
)

var (
	cfgFile   string
	verbose   bool
	quietFlag bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "testable-docs",
	Short: "Extract and check JSDoc documentation of JavaScript classes",
	Long: `testable-docs parses JavaScript and TypeScript sources, finds every class
and method, binds the doc comments written above them and reports the
structured result. The check command fails when a class, method or
parameter is left undocumented.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Diagnostics go through the log package; keep them out of quiet runs
		if quietFlag && !verbose {
			log.SetOutput(io.Discard)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is <dir>/.testable-docs/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
}

// resolveRoot returns the absolute directory to analyze: the first argument
// or the working directory.
func resolveRoot(args []string) (string, error) {
	if len(args) > 0 {
		return filepath.Abs(args[0])
	}
	rootDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return rootDir, nil
}

// loadConfig loads the configuration for rootDir, honoring --config.
func loadConfig(rootDir string) (*config.Config, error) {
	loader := config.NewLoader(rootDir)
	if cfgFile != "" {
		loader = config.NewFileLoader(rootDir, cfgFile)
	}

	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if verbose {
		log.Printf("Binding strategy: %s (class distance %d, method distance %d)",
			cfg.Binding.Strategy, cfg.Binding.ClassDistance, cfg.Binding.MethodDistance)
	}
	return cfg, nil
}
