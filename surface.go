package ssd1351

import (
	"encoding/binary"
	"image"
	"image/color"
	"image/draw"

	"github.com/richardPFisk/ssd1351/pixel"
)

// Pixel is a single colored pixel at a logical coordinate, the element
// type for pixel-iterator input from external graphics code.
type Pixel struct {
	X, Y  int
	Color pixel.CRGB16
}

// Surface is the pixel-level drawing API shared by the streamed and
// buffered policies.
type Surface interface {
	// SetPixel sets the pixel color at (x, y).
	SetPixel(x, y int, c pixel.CRGB16) error

	// DrawPixels writes a batch of pixels.
	DrawPixels(pixels ...Pixel) error

	// Dimensions is the logical display size.
	Dimensions() (w, h int)
}

// Streamed writes every pixel to the display immediately. Each SetPixel
// issues a 1x1 draw-window followed by a 2-byte color write; correct but
// bus-chatty, so prefer Buffered for full-screen updates.
type Streamed struct {
	d *Display
}

// Display returns the underlying display.
func (s *Streamed) Display() *Display {
	return s.d
}

// SetPixel writes a single pixel to the panel. Coordinates outside the
// logical display bounds return ErrBounds.
func (s *Streamed) SetPixel(x, y int, c pixel.CRGB16) error {
	w, h := s.d.Dimensions()
	if x < 0 || y < 0 || x >= w || y >= h {
		return ErrBounds
	}
	if r := s.d.Rotation(); r == Rotate90 || r == Rotate270 {
		x, y = y, x
	}
	pw, ph := s.d.Size().Dimensions()
	if err := s.d.SetDrawArea(image.Rect(x, y, pw, ph)); err != nil {
		return err
	}
	hi, lo := c.Bytes()
	return s.d.Draw([]byte{hi, lo})
}

// DrawPixels writes the pixels in order, aborting on the first error.
func (s *Streamed) DrawPixels(pixels ...Pixel) error {
	for _, p := range pixels {
		if err := s.SetPixel(p.X, p.Y, p.Color); err != nil {
			return err
		}
	}
	return nil
}

// Dimensions is the logical display size.
func (s *Streamed) Dimensions() (w, h int) {
	return s.d.Dimensions()
}

// Buffered mirrors the panel content in a caller-supplied framebuffer.
// Pixel writes mutate memory only; Flush pushes the whole mirror in a
// single draw, amortizing the per-pixel command overhead to one window
// set per frame.
//
// The mirror always uses physical (unrotated) indexing: rotation is
// realized purely through the chip's remap register, so remapping in
// software here would apply the rotation twice.
type Buffered struct {
	d   *Display
	buf []byte
}

// Display returns the underlying display.
func (s *Buffered) Display() *Display {
	return s.d
}

// Framebuffer exposes the owned mirror.
func (s *Buffered) Framebuffer() []byte {
	return s.buf
}

// SetPixel sets the mirror pixel at (x, y). Coordinates outside the
// panel are ignored. No bus activity happens until Flush.
func (s *Buffered) SetPixel(x, y int, c pixel.CRGB16) error {
	w, h := s.d.Size().Dimensions()
	if x < 0 || y < 0 || x >= w || y >= h {
		return nil
	}
	binary.BigEndian.PutUint16(s.buf[(y*w+x)*2:], c.V)
	return nil
}

// DrawPixels writes the pixels into the mirror.
func (s *Buffered) DrawPixels(pixels ...Pixel) error {
	for _, p := range pixels {
		if err := s.SetPixel(p.X, p.Y, p.Color); err != nil {
			return err
		}
	}
	return nil
}

// Flush addresses the full panel and streams the entire mirror.
func (s *Buffered) Flush() error {
	w, h := s.d.Size().Dimensions()
	if err := s.d.SetDrawArea(image.Rect(0, 0, w, h)); err != nil {
		return err
	}
	return s.d.Draw(s.buf)
}

// Clear zeroes the mirror and optionally flushes it to the panel.
func (s *Buffered) Clear(flush bool) error {
	for i := range s.buf {
		s.buf[i] = 0
	}
	if flush {
		return s.Flush()
	}
	return nil
}

// Dimensions is the logical display size.
func (s *Buffered) Dimensions() (w, h int) {
	return s.d.Dimensions()
}

// ColorModel implements image.Image.
func (s *Buffered) ColorModel() color.Model {
	return pixel.CRGB16Model
}

// Bounds implements image.Image using the physical panel size, matching
// the mirror layout.
func (s *Buffered) Bounds() image.Rectangle {
	w, h := s.d.Size().Dimensions()
	return image.Rect(0, 0, w, h)
}

// At implements image.Image.
func (s *Buffered) At(x, y int) color.Color {
	w, h := s.d.Size().Dimensions()
	if x < 0 || y < 0 || x >= w || y >= h {
		return color.Transparent
	}
	return pixel.CRGB16{V: binary.BigEndian.Uint16(s.buf[(y*w+x)*2:])}
}

// Set implements draw.Image, so standard graphics code can target the
// mirror directly.
func (s *Buffered) Set(x, y int, c color.Color) {
	_ = s.SetPixel(x, y, pixel.CRGB16Model.Convert(c).(pixel.CRGB16))
}

// Interface checks
var (
	_ Surface     = (*Streamed)(nil)
	_ Surface     = (*Buffered)(nil)
	_ image.Image = (*Buffered)(nil)
	_ draw.Image  = (*Buffered)(nil)
)
