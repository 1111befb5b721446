package cli

import (
	"context"
	"fmt"
	"maps"
	"path/filepath"
	"slices"

	"github.com/mvp-joe/testable-docs/internal/analyzer"
	"github.com/mvp-joe/testable-docs/internal/config"
	"github.com/mvp-joe/testable-docs/internal/docs"
	"github.com/mvp-joe/testable-docs/internal/storage"
)

// newAnalyzer builds an analyzer for rootDir from cfg.
func newAnalyzer(rootDir string, cfg *config.Config, quiet bool) (*analyzer.Analyzer, error) {
	a, err := analyzer.New(analyzer.Config{
		RootDir:   rootDir,
		Include:   cfg.Paths.Include,
		Ignore:    cfg.Paths.Ignore,
		Binding:   cfg.BindingOptions(),
		Workers:   cfg.Analyzer.Workers,
		CacheSize: cfg.Analyzer.CacheSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create analyzer: %w", err)
	}
	a.SetProgressReporter(NewCLIProgressReporter(quiet))
	return a, nil
}

// analyze runs a full directory analysis.
func analyze(ctx context.Context, rootDir string, cfg *config.Config, quiet bool) (*analyzer.Analyzer, *analyzer.Result, error) {
	a, err := newAnalyzer(rootDir, cfg, quiet)
	if err != nil {
		return nil, nil, err
	}

	result, err := a.AnalyzeDirectory(ctx)
	if err != nil {
		a.Close()
		if ctx.Err() != nil {
			return nil, nil, fmt.Errorf("analysis cancelled")
		}
		return nil, nil, fmt.Errorf("analysis failed: %w", err)
	}
	return a, result, nil
}

// writeIndex stores the classes of set in the SQLite index at path. A
// relative path is resolved against rootDir.
func writeIndex(rootDir, path string, set *docs.ClassSet) error {
	return newDocIndex(rootDir, path).write(set, nil)
}

// indexPath resolves a relative index path against rootDir.
func indexPath(rootDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(rootDir, path)
}

// docIndex keeps the SQLite index in step with a ClassSet across watch
// updates. The first write stores the whole set; later writes rewrite only
// the changed files and the files whose superclass links moved.
type docIndex struct {
	path  string
	links map[string]string // file path -> superclass files of its classes
}

func newDocIndex(rootDir, path string) *docIndex {
	return &docIndex{path: indexPath(rootDir, path)}
}

func (x *docIndex) write(set *docs.ClassSet, changed []string) error {
	db, err := storage.Open(x.path)
	if err != nil {
		return err
	}
	defer db.Close()

	w := storage.NewDocWriter(db)
	current := superClassLinks(set)

	if x.links == nil {
		if err := w.WriteClassSet(set); err != nil {
			return fmt.Errorf("failed to write documentation index: %w", err)
		}
		x.links = current
		return nil
	}

	files := make(map[string]bool, len(changed))
	for _, f := range changed {
		if abs, err := filepath.Abs(f); err == nil {
			files[abs] = true
		}
	}
	for f, links := range current {
		if x.links[f] != links {
			files[f] = true
		}
	}

	for _, f := range slices.Sorted(maps.Keys(files)) {
		if err := w.WriteClasses(f, set.InFile(f)); err != nil {
			return fmt.Errorf("failed to update documentation index: %w", err)
		}
	}
	x.links = current
	return nil
}

// superClassLinks records, per file, where its classes' superclasses live.
func superClassLinks(set *docs.ClassSet) map[string]string {
	links := make(map[string]string)
	for _, c := range set.Classes() {
		links[c.FilePath] += c.Name + "=" + c.SuperClassFile + ";"
	}
	return links
}
