package ssd1351

import (
	"context"
	"fmt"
	"image"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// AsyncDisplay drives an SSD1351 panel over a suspending connection. It
// shares the command encoding and addressing math with Display; only the
// transport's execution discipline differs.
type AsyncDisplay struct {
	panel
	c AsyncConn
}

// Close closes the underlying connection.
func (d *AsyncDisplay) Close() error {
	return d.c.Close()
}

func (d *AsyncDisplay) String() string {
	return fmt.Sprintf("SSD1351 %s", d.size)
}

// Reset performs the hardware reset sequence, suspending during the
// minimum hold times instead of blocking the caller.
func (d *AsyncDisplay) Reset(ctx context.Context) error {
	if err := d.c.Reset(ctx, gpio.High); err != nil {
		return err
	}
	if err := sleep(ctx, 1*time.Millisecond); err != nil {
		return err
	}
	if err := d.c.Reset(ctx, gpio.Low); err != nil {
		return err
	}
	if err := sleep(ctx, 10*time.Millisecond); err != nil {
		return err
	}
	return d.c.Reset(ctx, gpio.High)
}

// Init issues the bring-up sequence, applies the configured rotation,
// clears the panel and turns the display on. A failed step aborts the
// remainder and surfaces the transport error.
func (d *AsyncDisplay) Init(ctx context.Context) error {
	for _, cmd := range d.bringUp() {
		if err := cmd.SendContext(ctx, d.c); err != nil {
			return err
		}
	}
	if err := d.SetRotation(ctx, d.rotation); err != nil {
		return err
	}
	if err := d.Clear(ctx); err != nil {
		return err
	}
	return DisplayOn(true).SendContext(ctx, d.c)
}

// SetDrawArea sets the rectangular window that subsequent Draw calls
// stream pixel data into.
func (d *AsyncDisplay) SetDrawArea(ctx context.Context, r image.Rectangle) error {
	for _, cmd := range d.drawArea(r) {
		if err := cmd.SendContext(ctx, d.c); err != nil {
			return err
		}
	}
	return nil
}

// Draw streams buf as a single data-phase transaction at the current
// draw-window cursor.
func (d *AsyncDisplay) Draw(ctx context.Context, buf []byte) error {
	return d.c.Data(ctx, buf...)
}

// Clear sets the draw area to the full panel and streams black pixels.
func (d *AsyncDisplay) Clear(ctx context.Context) error {
	w, h := d.size.Dimensions()
	if err := d.SetDrawArea(ctx, image.Rect(0, 0, w, h)); err != nil {
		return err
	}
	return d.Draw(ctx, make([]byte, w*h*2))
}

// SetRotation updates the stored rotation and issues the matching remap
// command before returning.
func (d *AsyncDisplay) SetRotation(ctx context.Context, rotation Rotation) error {
	d.rotation = rotation % 4
	return d.remap().SendContext(ctx, d.c)
}

// Rotation returns the current rotation.
func (d *AsyncDisplay) Rotation() Rotation {
	return d.rotation
}

// Size returns the configured physical panel size.
func (d *AsyncDisplay) Size() Size {
	return d.size
}

// Dimensions returns the logical display dimensions, taking the current
// rotation into account.
func (d *AsyncDisplay) Dimensions() (w, h int) {
	return d.dimensions()
}

// sleep waits for the duration or until the context is canceled.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
