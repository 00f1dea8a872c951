package scan

import (
	"regexp"
	"strings"
	"sync"
	"time"
)

// Barcode scanners type the whole code within tens of milliseconds. A scan
// is accepted once input pauses and the buffer looks like a real barcode.
const (
	DefaultScanWindow = 200 * time.Millisecond
	MinBarcodeLength  = 6
)

var barcodePattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// BarcodeReader accumulates raw scanner keystrokes and emits one complete
// barcode per burst instead of one event per character.
type BarcodeReader struct {
	window time.Duration
	onScan func(code string)

	mu    sync.Mutex
	buf   strings.Builder
	timer *time.Timer
}

func NewBarcodeReader(window time.Duration, onScan func(code string)) *BarcodeReader {
	if window <= 0 {
		window = DefaultScanWindow
	}
	return &BarcodeReader{window: window, onScan: onScan}
}

// Input appends scanner characters and restarts the settle timer. Once the
// burst stops, the buffered code is validated and emitted.
func (r *BarcodeReader) Input(chars string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buf.WriteString(chars)
	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.window, r.flush)
}

func (r *BarcodeReader) flush() {
	r.mu.Lock()
	code := strings.TrimSpace(r.buf.String())
	r.buf.Reset()
	r.mu.Unlock()

	if ValidBarcode(code) {
		r.onScan(code)
	}
}

// Stop discards any buffered characters without emitting a scan.
func (r *BarcodeReader) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.buf.Reset()
}

// ValidBarcode reports whether code satisfies the minimum-length
// alphanumeric pattern scanners produce.
func ValidBarcode(code string) bool {
	return len(code) >= MinBarcodeLength && barcodePattern.MatchString(code)
}
