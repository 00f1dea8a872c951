// Package label renders printable barcode labels for products.
package label

import (
	"bytes"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
)

// PNG encodes text as a CODE-128 barcode and returns it as a PNG image of
// the requested size. Label printers at the counter expect roughly 300x80.
func PNG(text string, width, height int) ([]byte, error) {
	bc, err := code128.Encode(text)
	if err != nil {
		return nil, err
	}

	scaled, err := barcode.Scale(bc, width, height)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
