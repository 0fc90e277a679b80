// Package watcher polls the system clipboard and fires a callback when
// new non-blank text appears. Polling is deliberate: change notification
// is not portable across the platforms the clipboard backend supports.
package watcher

import (
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/smr10110/ai-subtitle-contextualizer/clipboard"
	"github.com/smr10110/ai-subtitle-contextualizer/logutil"
)

// ReadFunc returns the current clipboard text. Injectable for tests.
type ReadFunc func() string

// Options tune the polling loop. Zero values fall back to defaults.
type Options struct {
	PollInterval time.Duration // default 500ms
	ErrorBackoff time.Duration // default 1s, used after a failed iteration
	StopTimeout  time.Duration // default 2s, bound on Stop()'s wait
	Read         ReadFunc      // default clipboard.ReadText
}

// Watcher owns the polling goroutine and the last-seen snapshot. Only
// the running flag is touched from outside the loop.
type Watcher struct {
	callback func(string)
	opts     Options

	running  atomic.Bool
	lastSeen string
	done     chan struct{}
}

// New creates a stopped watcher. callback is invoked synchronously from
// the polling goroutine for each detected change.
func New(opts Options, callback func(string)) *Watcher {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 500 * time.Millisecond
	}
	if opts.ErrorBackoff <= 0 {
		opts.ErrorBackoff = time.Second
	}
	if opts.StopTimeout <= 0 {
		opts.StopTimeout = 2 * time.Second
	}
	if opts.Read == nil {
		opts.Read = clipboard.ReadText
	}
	return &Watcher{callback: callback, opts: opts}
}

// Running reports whether the polling loop is active.
func (w *Watcher) Running() bool {
	return w.running.Load()
}

// Start spawns the polling loop. Calling Start on a running watcher is a
// logged no-op.
func (w *Watcher) Start() {
	if !w.running.CompareAndSwap(false, true) {
		log.Printf("Clipboard watcher already running")
		return
	}
	log.Printf("Starting clipboard watcher (interval %v)", w.opts.PollInterval)
	w.done = make(chan struct{})
	go w.loop()
}

// Stop signals the loop to exit and waits up to StopTimeout for it to
// finish. If the loop is mid-sleep it may outlive Stop; the watcher
// accepts that race rather than blocking shutdown indefinitely.
func (w *Watcher) Stop() {
	if !w.running.CompareAndSwap(true, false) {
		return
	}
	log.Printf("Stopping clipboard watcher...")
	select {
	case <-w.done:
		log.Printf("Clipboard watcher stopped")
	case <-time.After(w.opts.StopTimeout):
		log.Printf("Clipboard watcher did not stop within %v, continuing shutdown", w.opts.StopTimeout)
	}
}

func (w *Watcher) loop() {
	defer close(w.done)

	// Seed with the current clipboard so pre-existing content does not
	// fire a spurious change on startup.
	if text, err := w.safeRead(); err == nil {
		w.lastSeen = text
	}

	for w.running.Load() {
		interval := w.opts.PollInterval
		if err := w.iterate(); err != nil {
			log.Printf("Clipboard poll error: %v", err)
			interval = w.opts.ErrorBackoff
		}
		time.Sleep(interval)
	}
	log.Printf("Clipboard watcher loop ended")
}

func (w *Watcher) iterate() error {
	current, err := w.safeRead()
	if err != nil {
		// Read failures are transient: treat as no change.
		return err
	}
	if current == w.lastSeen || strings.TrimSpace(current) == "" {
		return nil
	}
	log.Printf("New clipboard content detected (%d chars): %q", len(current), logutil.Sanitize(current))
	w.lastSeen = current
	w.invoke(current)
	return nil
}

// invoke shields the loop from a panicking callback.
func (w *Watcher) invoke(text string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("PANIC in clipboard callback: %v", r)
		}
	}()
	w.callback(text)
}

// safeRead converts a panic from the clipboard backend (e.g. no display
// server) into an error.
func (w *Watcher) safeRead() (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("clipboard read failed: %v", r)
		}
	}()
	return w.opts.Read(), nil
}
