package scan

import "time"

// Customer phone numbers are 10 digits; the lookup fires only once the
// operator stops typing and the number is complete.
const (
	PhoneLength        = 10
	DefaultPhoneWindow = 400 * time.Millisecond
)

// PhoneWatcher debounces phone-digit edits into a single customer lookup.
// Intermediate values never reach the lookup because each edit resets the
// quiet window, and incomplete numbers are dropped at fire time.
type PhoneWatcher struct {
	deb *Debouncer
}

func NewPhoneWatcher(window time.Duration, lookup func(phone string)) *PhoneWatcher {
	if window <= 0 {
		window = DefaultPhoneWindow
	}
	return &PhoneWatcher{
		deb: NewDebouncer(window, func(phone string) {
			if len(phone) == PhoneLength {
				lookup(phone)
			}
		}),
	}
}

// Input records the current phone field value.
func (w *PhoneWatcher) Input(phone string) {
	w.deb.Trigger(phone)
}

func (w *PhoneWatcher) Stop() {
	w.deb.Stop()
}
