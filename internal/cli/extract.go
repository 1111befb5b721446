package cli

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	extractFormat   string
	extractOutput   string
	extractDatabase string
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract [dir]",
	Short: "Extract class documentation as JSON or YAML",
	Long: `Extract parses every source file below dir (default: the working directory)
and prints one record per class with its methods, parameters, types and
descriptions.

Examples:
  # Print the documentation of the current project as JSON
  testable-docs extract

  # Write YAML to a file
  testable-docs extract ./src --format yaml --output docs.yml

  # Also store the result in a SQLite index
  testable-docs extract --db .testable-docs/docs.db
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringVarP(&extractFormat, "format", "f", "", "Output format: json or yaml (default from config)")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "Output file (default stdout)")
	extractCmd.Flags().StringVar(&extractDatabase, "db", "", "SQLite documentation index to write (default from config)")
}

func runExtract(cmd *cobra.Command, args []string) error {
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

	format := cfg.Output.Format
	if extractFormat != "" {
		format = extractFormat
	}
	database := cfg.Output.Database
	if extractDatabase != "" {
		database = extractDatabase
	}

	a, result, err := analyze(ctx, rootDir, cfg, quietFlag)
	if err != nil {
		return err
	}
	defer a.Close()

	if database != "" {
		if err := writeIndex(rootDir, database, result.Set); err != nil {
			return err
		}
		if !quietFlag {
			log.Printf("Wrote documentation index %s", database)
		}
	}

	return writeOutput(cmd.OutOrStdout(), extractOutput, format, result.Set.Classes())
}
