package git

import (
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// HookWatcher records which files are rewritten while a commit runs, so
// that changes made by pre-commit hooks (formatters, lint fixers) can be
// reported before the commit is retried.
type HookWatcher struct {
	root    string
	logf    LogFn
	watcher *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup

	mu      sync.Mutex
	touched map[string]struct{}
}

// NewHookWatcher creates a watcher for files under root.
func NewHookWatcher(root string, logf LogFn) *HookWatcher {
	return &HookWatcher{root: root, logf: logf}
}

func (w *HookWatcher) debugf(format string, args ...any) {
	if w.logf == nil {
		return
	}
	w.logf(format, args...)
}

// Start watches the directories containing paths (relative to root).
func (w *HookWatcher) Start(paths []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.watcher = watcher
	w.done = make(chan struct{})
	w.touched = make(map[string]struct{})

	dirs := map[string]struct{}{}
	for _, p := range paths {
		dir := filepath.Dir(filepath.Join(w.root, p))
		if _, ok := dirs[dir]; ok {
			continue
		}
		dirs[dir] = struct{}{}
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			w.debugf("hook watcher add failed for %s: %v", dir, err)
		}
	}

	w.wg.Add(1)
	go w.run()
	return nil
}

func (w *HookWatcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.record(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.debugf("hook watcher error: %v", err)
		}
	}
}

func (w *HookWatcher) record(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}
	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil {
		rel = event.Name
	}
	w.mu.Lock()
	w.touched[filepath.ToSlash(rel)] = struct{}{}
	w.mu.Unlock()
}

// Stop ends the watch and returns the touched paths relative to root, sorted.
func (w *HookWatcher) Stop() []string {
	if w.watcher == nil {
		return nil
	}
	close(w.done)
	w.wg.Wait()

	// collect events queued after the loop stopped
	for pending := true; pending; {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				pending = false
				continue
			}
			w.record(event)
		default:
			pending = false
		}
	}
	_ = w.watcher.Close()
	w.watcher = nil

	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.touched))
	for p := range w.touched {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}
