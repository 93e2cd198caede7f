package builder

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/rf24docs/internal/foundation/errors"
	"git.home.luguber.info/inful/rf24docs/internal/logfields"
)

// DefaultDebounce is the quiet period after the last change before a rebuild.
const DefaultDebounce = 300 * time.Millisecond

// Watcher reruns a build when the source tree changes.
type Watcher struct {
	Debounce time.Duration
	Ignore   []string // directories whose events never trigger a rebuild
	Logger   *slog.Logger
}

// Run watches srcDir recursively and calls rebuild after each burst of
// changes. Rebuilds never overlap; changes arriving during a rebuild queue
// exactly one more. Run returns when ctx is cancelled.
func (w Watcher) Run(ctx context.Context, srcDir string, rebuild func(context.Context) error) error {
	logger := w.Logger
	if logger == nil {
		logger = slog.Default()
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	absSrc, err := filepath.Abs(srcDir)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "resolve source directory").Build()
	}
	ignore := make([]string, 0, len(w.Ignore))
	for _, dir := range w.Ignore {
		if abs, absErr := filepath.Abs(dir); absErr == nil {
			ignore = append(ignore, abs)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "create file watcher").Build()
	}
	defer func() { _ = watcher.Close() }()
	addDirsRecursive(watcher, absSrc, ignore, logger)

	rebuildReq, trigger, stop := newDebouncer(debounce)
	defer stop()
	done := startRebuildWorker(ctx, rebuildReq, rebuild, logger)

	for {
		select {
		case <-ctx.Done():
			<-done
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if shouldIgnoreEvent(ev.Name) || underAny(ev.Name, ignore) {
				continue
			}
			if ev.Op&fsnotify.Create == fsnotify.Create {
				if fi, statErr := os.Stat(ev.Name); statErr == nil && fi.IsDir() {
					addDirsRecursive(watcher, ev.Name, ignore, logger)
				}
			}
			logger.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
			trigger()
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error", logfields.Error(werr))
		}
	}
}

// newDebouncer returns a request channel and a trigger that sends on it once
// no trigger happened for d.
func newDebouncer(d time.Duration) (<-chan struct{}, func(), func()) {
	var mu sync.Mutex
	var timer *time.Timer
	req := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, func() {
			select {
			case req <- struct{}{}:
			default:
			}
		})
	}
	stop := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}
	return req, trigger, stop
}

func startRebuildWorker(ctx context.Context, req <-chan struct{}, rebuild func(context.Context) error, logger *slog.Logger) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case <-req:
				logger.Info("Change detected; rebuilding")
				if err := rebuild(ctx); err != nil && ctx.Err() == nil {
					logger.Warn("Rebuild failed", logfields.Error(err))
				}
			}
		}
	}()
	return done
}

func addDirsRecursive(w *fsnotify.Watcher, root string, ignore []string, logger *slog.Logger) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && (strings.HasPrefix(d.Name(), ".") || underAny(path, ignore)) {
			return filepath.SkipDir
		}
		if addErr := w.Add(path); addErr != nil {
			logger.Warn("Watch add failed", logfields.Path(path), logfields.Error(addErr))
		}
		return nil
	})
}

func underAny(path string, dirs []string) bool {
	for _, dir := range dirs {
		if path == dir || strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// shouldIgnoreEvent reports editor and OS artefacts that must not trigger rebuilds.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	return base == "Thumbs.db"
}
