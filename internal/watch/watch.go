// Package watch reports changes to changelog files using fsnotify. Parent
// directories are watched rather than the files themselves, so editors that
// save by renaming a temporary file are still seen.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce groups the burst of events a single save produces.
const DefaultDebounce = 150 * time.Millisecond

// ErrClosed is returned by Run after Close.
var ErrClosed = errors.New("watcher closed")

// debugLogger is a no-op until SetDebugLogger installs one.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for watch operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Watcher delivers debounced change notifications for a fixed set of files.
type Watcher struct {
	files    map[string]string // absolute path -> path as given
	watcher  *fsnotify.Watcher
	debounce time.Duration

	mu     sync.Mutex
	closed bool
}

// New starts watching paths. Each file's directory must exist; the files
// themselves may be created later.
func New(paths []string, debounce time.Duration) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, errors.New("watch: no paths given")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	w := &Watcher{files: make(map[string]string), watcher: fw, debounce: debounce}
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}
		w.files[abs] = p

		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
		dirs[dir] = true
		logDebug("[watch] watching directory %s", dir)
	}

	return w, nil
}

// Run calls onChange with the path (as given to New) of every file that
// changed, once per burst of events. Calls are sequential. Run returns
// nil when ctx is cancelled, or ErrClosed after Close.
func (w *Watcher) Run(ctx context.Context, onChange func(path string)) error {
	d := newDebouncer(w.debounce)
	defer d.stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return ErrClosed
			}
			if path, relevant := w.match(event); relevant {
				logDebug("[watch] %s: %s", event.Op, event.Name)
				d.trigger(path)
			}
		case path := <-d.fired:
			onChange(path)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return ErrClosed
			}
			logDebug("[watch] watcher error: %v", err)
		}
	}
}

func (w *Watcher) match(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return "", false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return "", false
	}
	path, ok := w.files[abs]
	return path, ok
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	return w.watcher.Close()
}

// debouncer delays each key until no trigger for it arrived for delay.
type debouncer struct {
	delay  time.Duration
	fired  chan string
	mu     sync.Mutex
	timers map[string]*time.Timer
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:  delay,
		fired:  make(chan string, 16),
		timers: make(map[string]*time.Timer),
	}
}

func (d *debouncer) trigger(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.timers[key]; ok {
		t.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(d.delay, func() { d.fire(key, t) })
	d.timers[key] = t
}

// fire delivers key unless t was superseded by a later trigger.
func (d *debouncer) fire(key string, t *time.Timer) {
	d.mu.Lock()
	if d.timers[key] != t {
		d.mu.Unlock()
		return
	}
	delete(d.timers, key)
	d.mu.Unlock()

	select {
	case d.fired <- key:
	default:
		logDebug("[watch] dropping change for %s: queue full", key)
	}
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for key, t := range d.timers {
		t.Stop()
		delete(d.timers, key)
	}
}
