package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/testable-docs/internal/docs"
	"github.com/mvp-joe/testable-docs/internal/storage"
)

var (
	queryDatabase     string
	queryClass        string
	queryFile         string
	queryUndocumented bool
	queryFormat       string
)

// queryCmd represents the query command
var queryCmd = &cobra.Command{
	Use:   "query [dir]",
	Short: "Look up documentation in the SQLite index",
	Long: `Query reads the index written by extract or watch instead of parsing the
sources again. Look up classes by name or by file, or list the methods that
have no doc comment.

Examples:
  # Every class named Model
  testable-docs query --db docs.db --class Model

  # Classes of one file, as YAML
  testable-docs query --db docs.db --file src/models/model.js --format yaml

  # Undocumented methods
  testable-docs query --db docs.db --undocumented
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringVar(&queryDatabase, "db", "", "SQLite documentation index (default from config)")
	queryCmd.Flags().StringVar(&queryClass, "class", "", "Show the classes with this name")
	queryCmd.Flags().StringVar(&queryFile, "file", "", "Show the classes of this file, relative to dir")
	queryCmd.Flags().BoolVar(&queryUndocumented, "undocumented", false, "List methods without a doc comment")
	queryCmd.Flags().StringVarP(&queryFormat, "format", "f", "json", "Class output format: json or yaml")
	queryCmd.MarkFlagsMutuallyExclusive("class", "file", "undocumented")
	queryCmd.MarkFlagsOneRequired("class", "file", "undocumented")
}

func runQuery(cmd *cobra.Command, args []string) error {
	rootDir, err := resolveRoot(args)
	if err != nil {
		return err
	}

	database := queryDatabase
	if database == "" {
		cfg, err := loadConfig(rootDir)
		if err != nil {
			return err
		}
		database = cfg.Output.Database
	}
	if database == "" {
		return errors.New("no index configured: pass --db or set output.database")
	}

	db, err := storage.Open(indexPath(rootDir, database))
	if err != nil {
		return err
	}
	defer db.Close()

	reader := storage.NewDocReader(db)
	out := cmd.OutOrStdout()

	var classes []*docs.ClassDefinition
	switch {
	case queryUndocumented:
		methods, err := reader.UndocumentedMethods()
		if err != nil {
			return err
		}
		printUndocumented(out, methods)
		return nil
	case queryClass != "":
		classes, err = reader.ClassesByName(queryClass)
	default:
		file := queryFile
		if !filepath.IsAbs(file) {
			file = filepath.Join(rootDir, file)
		}
		classes, err = reader.ClassesByFile(filepath.Clean(file))
	}
	if err != nil {
		return err
	}
	if classes == nil {
		classes = []*docs.ClassDefinition{}
	}
	return encode(out, queryFormat, classes)
}

func printUndocumented(w io.Writer, methods []storage.UndocumentedMethod) {
	for _, m := range methods {
		visibility := ""
		if m.Private {
			visibility = " (private)"
		}
		fmt.Fprintf(w, "%s:%d %s.%s%s\n", m.RelativePath, m.Line, m.ClassName, m.MethodName, visibility)
	}
	fmt.Fprintf(w, "%d undocumented methods\n", len(methods))
}
