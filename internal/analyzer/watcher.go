package analyzer

import (
	"context"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period before changed files are re-analyzed.
const DefaultDebounce = 500 * time.Millisecond

// Watcher re-analyzes source files when they change on disk. Changes are
// accumulated and delivered in one batch after a quiet period.
type Watcher struct {
	analyzer      *Analyzer
	watcher       *fsnotify.Watcher
	debounceTime  time.Duration
	accumulated   map[string]bool // Accumulated file changes
	accumulatedMu sync.Mutex      // Protects accumulated map
	debounceTimer *time.Timer     // Current debounce timer
	timerMu       sync.Mutex      // Protects debounce timer
	stopOnce      sync.Once       // Ensures Stop() is idempotent
	cancel        context.CancelFunc
	doneCh        chan struct{} // Signals watch goroutine has finished
}

// NewWatcher watches every non-ignored directory below the analyzer root.
func NewWatcher(a *Analyzer, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		analyzer:     a,
		watcher:      fsw,
		debounceTime: debounce,
		accumulated:  make(map[string]bool),
		doneCh:       make(chan struct{}),
	}

	if err := w.addDirectoriesRecursively(a.config.RootDir); err != nil {
		fsw.Close()
		return nil, err
	}

	return w, nil
}

// Start begins watching. onUpdate receives the result of every re-analysis,
// or the error that aborted it; a failed run does not stop the watcher.
func (w *Watcher) Start(ctx context.Context, onUpdate func(files []string, result *Result, err error)) {
	ctx, w.cancel = context.WithCancel(ctx)
	go w.watch(ctx, onUpdate)
}

// Stop stops the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		if w.cancel != nil {
			w.cancel()
			<-w.doneCh
		} else {
			// Never started
			close(w.doneCh)
		}
		err = w.watcher.Close()
	})
	return err
}

// watch is the main event loop.
func (w *Watcher) watch(ctx context.Context, onUpdate func([]string, *Result, error)) {
	defer close(w.doneCh)

	analyzeCh := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			w.stopDebounceTimer()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// Handle new directories - add them to watcher
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addDirectoriesRecursively(event.Name); err != nil {
						log.Printf("Warning: failed to watch new directory %s: %v", event.Name, err)
					}
				}
			}

			if !w.shouldProcessEvent(event) {
				continue
			}

			w.accumulatedMu.Lock()
			w.accumulated[event.Name] = true
			w.accumulatedMu.Unlock()

			w.resetDebounceTimer(analyzeCh)

		case <-analyzeCh:
			files := w.drain()
			if len(files) == 0 {
				continue
			}
			result, err := w.analyzer.AddFiles(ctx, files)
			if onUpdate != nil {
				onUpdate(files, result, err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)
		}
	}
}

// drain returns and clears the accumulated files in lexical order.
func (w *Watcher) drain() []string {
	w.accumulatedMu.Lock()
	defer w.accumulatedMu.Unlock()

	files := make([]string, 0, len(w.accumulated))
	for file := range w.accumulated {
		files = append(files, file)
	}
	w.accumulated = make(map[string]bool)
	slices.Sort(files)
	return files
}

// resetDebounceTimer resets the debounce timer, properly stopping the old one.
func (w *Watcher) resetDebounceTimer(analyzeCh chan struct{}) {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}

	w.debounceTimer = time.AfterFunc(w.debounceTime, func() {
		// Non-blocking: one pending signal is enough
		select {
		case analyzeCh <- struct{}{}:
		default:
		}
	})
}

// stopDebounceTimer stops the debounce timer if it exists.
func (w *Watcher) stopDebounceTimer() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
		w.debounceTimer = nil
	}
}

// shouldProcessEvent keeps writes, creates, removes and renames of files the
// analyzer would discover.
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return w.analyzer.discovery.Matches(event.Name)
}

// addDirectoriesRecursively adds all non-ignored directories in the tree to the watcher.
func (w *Watcher) addDirectoriesRecursively(rootPath string) error {
	return filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// If it's the root path, fail immediately
			if path == rootPath {
				return err
			}
			log.Printf("Warning: error accessing %s: %v", path, err)
			return nil
		}

		if !d.IsDir() {
			return nil
		}

		if relPath, err := w.analyzer.discovery.relative(path); err == nil && relPath != "." && w.analyzer.discovery.shouldIgnore(relPath) {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			log.Printf("Warning: failed to watch directory %s: %v", path, err)
		}
		return nil
	})
}
