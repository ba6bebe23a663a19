package ssd1351

import (
	"context"
	"encoding/binary"
	"image"

	"github.com/richardPFisk/ssd1351/pixel"
)

// AsyncStreamed is the suspending counterpart of Streamed. The pixel
// addressing math is identical; every bus call is a suspension point.
type AsyncStreamed struct {
	d *AsyncDisplay
}

// Display returns the underlying display.
func (s *AsyncStreamed) Display() *AsyncDisplay {
	return s.d
}

// SetPixel writes a single pixel to the panel. Coordinates outside the
// logical display bounds return ErrBounds.
func (s *AsyncStreamed) SetPixel(ctx context.Context, x, y int, c pixel.CRGB16) error {
	w, h := s.d.Dimensions()
	if x < 0 || y < 0 || x >= w || y >= h {
		return ErrBounds
	}
	if r := s.d.Rotation(); r == Rotate90 || r == Rotate270 {
		x, y = y, x
	}
	pw, ph := s.d.Size().Dimensions()
	if err := s.d.SetDrawArea(ctx, image.Rect(x, y, pw, ph)); err != nil {
		return err
	}
	hi, lo := c.Bytes()
	return s.d.Draw(ctx, []byte{hi, lo})
}

// DrawPixels writes the pixels in order, aborting on the first error.
func (s *AsyncStreamed) DrawPixels(ctx context.Context, pixels ...Pixel) error {
	for _, p := range pixels {
		if err := s.SetPixel(ctx, p.X, p.Y, p.Color); err != nil {
			return err
		}
	}
	return nil
}

// Dimensions is the logical display size.
func (s *AsyncStreamed) Dimensions() (w, h int) {
	return s.d.Dimensions()
}

// AsyncBuffered is the suspending counterpart of Buffered. Pixel writes
// are pure memory mutations and take no context; only Flush and a
// flushing Clear touch the bus.
type AsyncBuffered struct {
	d   *AsyncDisplay
	buf []byte
}

// Display returns the underlying display.
func (s *AsyncBuffered) Display() *AsyncDisplay {
	return s.d
}

// Framebuffer exposes the owned mirror.
func (s *AsyncBuffered) Framebuffer() []byte {
	return s.buf
}

// SetPixel sets the mirror pixel at (x, y) using physical indexing, as
// in Buffered. Coordinates outside the panel are ignored.
func (s *AsyncBuffered) SetPixel(x, y int, c pixel.CRGB16) {
	w, h := s.d.Size().Dimensions()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	binary.BigEndian.PutUint16(s.buf[(y*w+x)*2:], c.V)
}

// DrawPixels writes the pixels into the mirror.
func (s *AsyncBuffered) DrawPixels(pixels ...Pixel) {
	for _, p := range pixels {
		s.SetPixel(p.X, p.Y, p.Color)
	}
}

// Flush addresses the full panel and streams the entire mirror.
func (s *AsyncBuffered) Flush(ctx context.Context) error {
	w, h := s.d.Size().Dimensions()
	if err := s.d.SetDrawArea(ctx, image.Rect(0, 0, w, h)); err != nil {
		return err
	}
	return s.d.Draw(ctx, s.buf)
}

// Clear zeroes the mirror and optionally flushes it to the panel.
func (s *AsyncBuffered) Clear(ctx context.Context, flush bool) error {
	for i := range s.buf {
		s.buf[i] = 0
	}
	if flush {
		return s.Flush(ctx)
	}
	return nil
}

// Dimensions is the logical display size.
func (s *AsyncBuffered) Dimensions() (w, h int) {
	return s.d.Dimensions()
}
