package preview

import (
	"sync"
	"time"
)

// DefaultQuietWindow is how long the content must stay unchanged before a
// rebuild starts.
const DefaultQuietWindow = 300 * time.Millisecond

// debouncer coalesces bursts of triggers into a single call of fire once
// no trigger arrived for the quiet window.
type debouncer struct {
	quiet time.Duration
	fire  func()

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
}

func newDebouncer(quiet time.Duration, fire func()) *debouncer {
	if quiet <= 0 {
		quiet = DefaultQuietWindow
	}
	return &debouncer{quiet: quiet, fire: fire}
}

func (d *debouncer) trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, d.fire)
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	if d.timer != nil {
		d.timer.Stop()
	}
}
