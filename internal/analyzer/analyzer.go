// Package analyzer extracts class documentation from every source file of a
// directory tree and links classes across files.
package analyzer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/maypok86/otter"
	"golang.org/x/sync/errgroup"

	"github.com/mvp-joe/testable-docs/internal/binding"
	"github.com/mvp-joe/testable-docs/internal/docs"
	"github.com/mvp-joe/testable-docs/internal/extractor"
	"github.com/mvp-joe/testable-docs/internal/inherit"
)

// Config holds the settings of an Analyzer.
type Config struct {
	RootDir   string
	Include   []string
	Ignore    []string
	Binding   binding.Options
	Workers   int
	CacheSize int // zero disables the extraction cache
}

// Stats summarizes one analysis run.
type Stats struct {
	Files          int
	CachedFiles    int
	Classes        int
	Methods        int
	ProcessingTime time.Duration
}

// Result is the outcome of an analysis run. Set is shared between runs of the
// same Analyzer and keeps accumulating files.
type Result struct {
	Set       *docs.ClassSet
	Hierarchy *inherit.Hierarchy
	Stats     Stats
}

// Analyzer discovers source files, extracts their classes in parallel and
// merges the results into one ClassSet.
type Analyzer struct {
	config    Config
	discovery *FileDiscovery
	extractor *extractor.Extractor
	set       *docs.ClassSet
	cache     otter.Cache[string, []*docs.ClassDefinition]
	useCache  bool

	progressMu sync.Mutex
	progress   ProgressReporter
}

// New creates an analyzer for config.RootDir.
func New(config Config) (*Analyzer, error) {
	rootDir, err := filepath.Abs(config.RootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root directory: %w", err)
	}
	config.RootDir = rootDir

	if config.Workers <= 0 {
		config.Workers = 1
	}

	discovery, err := NewFileDiscovery(rootDir, config.Include, config.Ignore)
	if err != nil {
		return nil, err
	}

	ext, err := extractor.New(config.Binding)
	if err != nil {
		return nil, err
	}

	a := &Analyzer{
		config:    config,
		discovery: discovery,
		extractor: ext,
		set:       docs.NewClassSet(rootDir),
		progress:  &NoOpProgressReporter{},
	}

	if config.CacheSize > 0 {
		cache, err := otter.MustBuilder[string, []*docs.ClassDefinition](config.CacheSize).Build()
		if err != nil {
			return nil, fmt.Errorf("failed to create extraction cache: %w", err)
		}
		a.cache = cache
		a.useCache = true
	}

	return a, nil
}

// SetProgressReporter replaces the progress reporter. nil restores the no-op reporter.
func (a *Analyzer) SetProgressReporter(progress ProgressReporter) {
	if progress == nil {
		progress = &NoOpProgressReporter{}
	}
	a.progressMu.Lock()
	a.progress = progress
	a.progressMu.Unlock()
}

// Discovery returns the file matcher used by the analyzer.
func (a *Analyzer) Discovery() *FileDiscovery {
	return a.discovery
}

// Set returns the accumulated classes.
func (a *Analyzer) Set() *docs.ClassSet {
	return a.set
}

// Close releases the extraction cache.
func (a *Analyzer) Close() {
	if a.useCache {
		a.cache.Close()
	}
}

// AnalyzeDirectory extracts every discovered source file below the root.
// Files that disappeared since the previous run are dropped from the set.
func (a *Analyzer) AnalyzeDirectory(ctx context.Context) (*Result, error) {
	a.report(func(p ProgressReporter) { p.OnDiscoveryStart() })

	files, err := a.discovery.DiscoverFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to discover files: %w", err)
	}

	a.report(func(p ProgressReporter) { p.OnDiscoveryComplete(len(files)) })

	present := make(map[string]bool, len(files))
	for _, f := range files {
		present[f] = true
	}
	var removed []string
	for _, f := range a.set.Files() {
		if !present[f] {
			removed = append(removed, f)
		}
	}

	return a.addFiles(ctx, files, removed)
}

// AddFiles extracts the given files and merges them into the set, replacing
// earlier results for the same files. Missing files are removed from the set.
// A parse failure in any file aborts the run with that file's error and
// leaves the set as it was.
func (a *Analyzer) AddFiles(ctx context.Context, paths []string) (*Result, error) {
	return a.addFiles(ctx, paths, nil)
}

// addFiles extracts paths and drops removed, committing both to the set only
// once every file has been extracted.
func (a *Analyzer) addFiles(ctx context.Context, paths, removed []string) (*Result, error) {
	start := time.Now()

	a.report(func(p ProgressReporter) { p.OnFileProcessingStart(len(paths)) })

	var (
		mu     sync.Mutex
		stats  Stats
		staged = make(map[string][]*docs.ClassDefinition, len(paths)+len(removed))
	)
	for _, f := range removed {
		staged[f] = nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.config.Workers)

	for _, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("failed to resolve %s: %w", path, err)
			}

			classes, cached, err := a.extractFile(gctx, absPath)
			if err != nil {
				return err
			}

			mu.Lock()
			staged[absPath] = classes
			stats.Files++
			if cached {
				stats.CachedFiles++
			}
			mu.Unlock()

			a.report(func(p ProgressReporter) { p.OnFileProcessed(absPath) })
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	previous := a.commit(staged)

	hierarchy, err := inherit.Build(a.set)
	if err != nil {
		a.commit(previous)
		return nil, fmt.Errorf("failed to build inheritance graph: %w", err)
	}

	for _, c := range a.set.Classes() {
		stats.Classes++
		stats.Methods += len(c.Methods)
	}
	stats.ProcessingTime = time.Since(start)

	a.report(func(p ProgressReporter) { p.OnComplete(&stats) })

	return &Result{Set: a.set, Hierarchy: hierarchy, Stats: stats}, nil
}

// commit replaces the classes of every staged file in path order and returns
// what the set held for those files before.
func (a *Analyzer) commit(staged map[string][]*docs.ClassDefinition) map[string][]*docs.ClassDefinition {
	previous := make(map[string][]*docs.ClassDefinition, len(staged))
	for _, path := range slices.Sorted(maps.Keys(staged)) {
		previous[path] = a.set.InFile(path)
		a.set.ReplaceFile(path, staged[path])
	}
	return previous
}

// extractFile returns the classes of one file, reusing cached results for
// unchanged content. A file that no longer exists yields no classes.
func (a *Analyzer) extractFile(ctx context.Context, path string) ([]*docs.ClassDefinition, bool, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("File removed: %s", path)
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	key := cacheKey(path, source)
	if a.useCache {
		if classes, ok := a.cache.Get(key); ok {
			return classes, true, nil
		}
	}

	classes, err := a.extractor.ExtractSource(ctx, path, source)
	if err != nil {
		return nil, false, err
	}

	if a.useCache {
		a.cache.Set(key, classes)
	}

	return classes, false, nil
}

// report invokes fn with the current reporter while holding the progress lock.
func (a *Analyzer) report(fn func(ProgressReporter)) {
	a.progressMu.Lock()
	defer a.progressMu.Unlock()
	fn(a.progress)
}

func cacheKey(path string, source []byte) string {
	sum := sha256.Sum256(source)
	return path + "@" + hex.EncodeToString(sum[:])
}
