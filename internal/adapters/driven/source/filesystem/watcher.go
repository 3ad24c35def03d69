package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/novella-cli/internal/logger"
)

const (
	// defaultDebounce is how long a file must stay quiet before it is
	// considered fully written. Copies into the watch folder produce a
	// burst of write events; only the last one matters.
	defaultDebounce = 400 * time.Millisecond

	// importRate throttles how fast queued imports fire, so dropping a
	// hundred files into the folder does not hammer the library store.
	importRate  = 4
	importBurst = 2
)

// novelExtensions lists the file extensions treated as novels.
var novelExtensions = []string{".txt", ".text"}

// ImportWatcher watches a folder and reports settled novel files.
// The callback receives the absolute path of each new or rewritten
// file; turning that into a library entry is the caller's business.
type ImportWatcher struct {
	dir      string
	onNovel  func(path string)
	debounce time.Duration
	limiter  *rate.Limiter

	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	pending  map[string]*time.Timer
	started  bool
	done     chan struct{}
	stopOnce sync.Once
}

// NewImportWatcher creates a watcher for dir. onNovel is called once
// per settled novel file.
func NewImportWatcher(dir string, onNovel func(path string)) *ImportWatcher {
	return &ImportWatcher{
		dir:      dir,
		onNovel:  onNovel,
		debounce: defaultDebounce,
		limiter:  rate.NewLimiter(rate.Limit(importRate), importBurst),
		pending:  make(map[string]*time.Timer),
		done:     make(chan struct{}),
	}
}

// Start begins watching. It runs until ctx is cancelled or Stop is
// called. The watch directory is created when missing.
func (w *ImportWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return nil
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		w.mu.Unlock()
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return err
	}
	if err := watcher.Add(w.dir); err != nil {
		_ = watcher.Close()
		w.mu.Unlock()
		return err
	}

	w.watcher = watcher
	w.started = true
	w.mu.Unlock()

	logger.Debug("watching %s for novel files", w.dir)
	go w.run(ctx)
	return nil
}

func (w *ImportWatcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(ctx, ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if err != nil {
				logger.Warn("watch error: %v", err)
			}
		}
	}
}

func (w *ImportWatcher) handleEvent(ctx context.Context, ev fsnotify.Event) {
	if !isNovelFile(ev.Name) {
		return
	}

	switch {
	case ev.Op.Has(fsnotify.Create), ev.Op.Has(fsnotify.Write):
		logger.Debug("watch event %s on %s", ev.Op, ev.Name)
		w.scheduleImport(ctx, ev.Name)
	case ev.Op.Has(fsnotify.Remove), ev.Op.Has(fsnotify.Rename):
		w.cancelImport(ev.Name)
	}
}

// scheduleImport (re)arms the debounce timer for path.
func (w *ImportWatcher) scheduleImport(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		if err := w.limiter.Wait(ctx); err != nil {
			return
		}
		if w.onNovel != nil {
			w.onNovel(path)
		}
	})
}

func (w *ImportWatcher) cancelImport(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.pending[path]; ok {
		t.Stop()
		delete(w.pending, path)
	}
}

// SyncExisting reports every novel file already present in the watch
// directory. Call after Start to pick up files that arrived while the
// watcher was down.
func (w *ImportWatcher) SyncExisting() error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(w.dir, entry.Name())
		if isNovelFile(path) && w.onNovel != nil {
			w.onNovel(path)
		}
	}
	return nil
}

// Stop stops the watcher and releases resources. Idempotent.
func (w *ImportWatcher) Stop() {
	w.mu.Lock()
	if !w.started || w.watcher == nil {
		w.mu.Unlock()
		return
	}
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
	_ = w.watcher.Close()
	w.watcher = nil
	w.started = false
	w.mu.Unlock()
	w.stopOnce.Do(func() { close(w.done) })
}

// isNovelFile reports whether path looks like a plain-text novel.
func isNovelFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range novelExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
