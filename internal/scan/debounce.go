// Package scan holds the input-settling helpers used at the billing
// counter: a generic debouncer, a keystroke reader for barcode scanners,
// and a phone-number watcher that triggers customer lookups.
package scan

import (
	"sync"
	"time"
)

// Debouncer collapses a burst of values into a single callback for the last
// value once input has been quiet for the configured window. A superseded
// value is never delivered; its timer is cancelled by the next Trigger.
type Debouncer struct {
	window time.Duration
	fn     func(value string)

	mu    sync.Mutex
	timer *time.Timer
}

func NewDebouncer(window time.Duration, fn func(value string)) *Debouncer {
	return &Debouncer{window: window, fn: fn}
}

// Trigger schedules fn(value) after the quiet window, cancelling any
// previously scheduled delivery.
func (d *Debouncer) Trigger(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, func() {
		d.fn(value)
	})
}

// Stop cancels any pending delivery.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
