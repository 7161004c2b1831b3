package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"time"
)

// ExportFilename returns the suggested download name for an exported design,
// e.g. "keychain-20250131-143210.png".
func ExportFilename(t time.Time) string {
	return fmt.Sprintf("keychain-%s.png", t.Format("20060102-150405"))
}

// EncodePNG writes the flattened image as a PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}
