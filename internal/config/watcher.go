package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces the bursts of write events editors produce when
// saving a file.
const debounceDelay = 100 * time.Millisecond

// Watcher reloads a configuration file when it changes on disk.
type Watcher struct {
	path     string
	onChange func(Config)

	fw *fsnotify.Watcher
	wg sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewWatcher watches path and calls onChange with the re-loaded
// configuration after each change. The containing directory is watched
// rather than the file itself, so editors that replace the file on save
// (write to temp, rename over) are handled.
func NewWatcher(path string, onChange func(Config)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fw.Add(filepath.Dir(path)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		path:     path,
		onChange: onChange,
		fw:       fw,
	}
	w.wg.Add(1)
	go w.watch()
	return w, nil
}

// Close stops the watcher. Safe to call multiple times.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	err := w.fw.Close()
	w.wg.Wait()
	return err
}

// watch consumes fsnotify events until the watcher closes.
func (w *Watcher) watch() {
	defer w.wg.Done()

	var timer *time.Timer
	stopTimer := func() {
		if timer != nil {
			timer.Stop()
		}
	}

	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				stopTimer()
				return
			}
			if !w.relevant(ev) {
				continue
			}
			if timer == nil {
				timer = time.AfterFunc(debounceDelay, w.reload)
			} else {
				timer.Reset(debounceDelay)
			}
		case _, ok := <-w.fw.Errors:
			if !ok {
				stopTimer()
				return
			}
			// Watch errors are not actionable here; the next successful
			// event still triggers a reload.
		}
	}
}

// relevant reports whether the event concerns the watched file.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
		return false
	}
	return ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Rename)
}

// reload loads the file and hands the result to the callback. Parse
// errors keep the previous configuration by simply not calling back.
func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		return
	}
	w.onChange(cfg)
}
