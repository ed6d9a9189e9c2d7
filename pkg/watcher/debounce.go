package watcher

import (
	"sync"
	"time"
)

// DefaultDebounceDuration coalesces the burst of events an atomic
// write produces (create, write, rename) into one notification.
const DefaultDebounceDuration = 100 * time.Millisecond

// Debouncer delays a callback until triggers stop arriving for the
// configured duration. Only the most recent callback runs.
type Debouncer struct {
	mu    sync.Mutex
	d     time.Duration
	timer *time.Timer
}

// NewDebouncer creates a debouncer; a non-positive duration falls back
// to DefaultDebounceDuration.
func NewDebouncer(d time.Duration) *Debouncer {
	if d <= 0 {
		d = DefaultDebounceDuration
	}
	return &Debouncer{d: d}
}

// Trigger schedules fn after the debounce window, resetting the window
// if one is already pending.
func (b *Debouncer) Trigger(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.d, fn)
}

// Cancel drops any pending callback.
func (b *Debouncer) Cancel() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

// Duration returns the debounce window.
func (b *Debouncer) Duration() time.Duration {
	return b.d
}
