package schedule

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DraftsWatcher watches the output tree for new draft files and fires a
// callback after the tree has been quiet for the debounce interval. Only
// Markdown files under a drafts directory count; metadata JSON and final
// chapters are ignored.
type DraftsWatcher struct {
	watcher  *fsnotify.Watcher
	root     string
	debounce *Debouncer
	logger   *slog.Logger
}

// NewDraftsWatcher creates a watcher rooted at the output directory. The
// directory is created if missing so the daemon can start before the first
// drafting run.
func NewDraftsWatcher(root string, debounceInterval time.Duration) (*DraftsWatcher, error) {
	if debounceInterval <= 0 {
		debounceInterval = 30 * time.Second
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &DraftsWatcher{
		watcher:  watcher,
		root:     root,
		debounce: NewDebouncer(debounceInterval),
		logger:   slog.Default().With("component", "schedule.watcher"),
	}, nil
}

// Watch blocks processing filesystem events until the context is cancelled.
// onQuiet runs after draft writes stop for the debounce interval.
func (w *DraftsWatcher) Watch(ctx context.Context, onQuiet func()) {
	if err := w.addTree(w.root); err != nil {
		w.logger.Error("failed to watch output tree", "error", err)
		return
	}

	w.logger.Info("drafts watcher started", "root", w.root)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("drafts watcher stopped")
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// New language directories appear as the pipeline runs; watch
			// them so their drafts are seen too.
			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						w.logger.Error("failed to watch new directory",
							"path", event.Name, "error", err)
					}
					continue
				}
			}

			if !isDraftEvent(event) {
				continue
			}
			w.logger.Debug("draft change detected", "path", event.Name, "op", event.Op.String())
			w.debounce.Trigger(onQuiet)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("drafts watcher error", "error", err)
		}
	}
}

// Close releases the watcher and cancels any pending debounced callback.
func (w *DraftsWatcher) Close() error {
	w.debounce.Stop()
	return w.watcher.Close()
}

// addTree registers dir and every subdirectory with the watcher.
func (w *DraftsWatcher) addTree(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		return w.watcher.Add(path)
	})
}

// isDraftEvent reports whether an event is a write or create of a draft
// Markdown file.
func isDraftEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return false
	}
	if !strings.EqualFold(filepath.Ext(event.Name), ".md") {
		return false
	}
	return filepath.Base(filepath.Dir(event.Name)) == "drafts"
}

// Debouncer collapses bursts of triggers into one callback after a quiet
// period.
type Debouncer struct {
	interval time.Duration

	mu       sync.Mutex
	timer    *time.Timer
	callback func()
	stopped  bool
}

// NewDebouncer creates a debouncer with the given quiet interval.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{interval: interval}
}

// Trigger arms (or re-arms) the debounce timer with the callback. The
// callback runs once the interval elapses with no further triggers.
func (d *Debouncer) Trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.callback = callback

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	cb := d.callback
	stopped := d.stopped
	d.callback = nil
	d.mu.Unlock()

	if cb != nil && !stopped {
		cb()
	}
}

// Stop cancels any pending callback. Further triggers are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.callback = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
