package chart

import (
	"bytes"

	"github.com/fogleman/gg"

	"github.com/couchcryptid/storm-report-service/internal/style"
)

// placeholderPNG draws a fixed-size image containing only a centered
// message. It is the terminal fallback of the degrade contract, so it uses
// nothing that can fail: a plain canvas, the embedded font, an in-memory
// encode.
func (r *Renderer) placeholderPNG(size style.Size, message string) []byte {
	dc := gg.NewContext(size.Width, size.Height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	dc.SetFontFace(r.face(36))
	dc.SetColor(r.hex(r.style.Palette.Dark))
	dc.DrawStringAnchored(message, float64(size.Width)/2, float64(size.Height)/2, 0.5, 0.5)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		// Encoding a valid in-memory RGBA cannot fail; keep the contract anyway.
		return nil
	}
	return buf.Bytes()
}
