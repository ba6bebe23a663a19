// Package ssd1351 controls a Solomon Systech SSD1351 color OLED display
// over a 4-wire serial bus with data/command selector and reset lines.
package ssd1351

import (
	"errors"
	"fmt"
	"image"
	"os"
	"time"

	"periph.io/x/conn/v3/gpio"
)

var debug bool

func init() {
	debug = os.Getenv("SSD1351_DEBUG") != ""
}

// Errors
var (
	ErrBounds     = errors.New("ssd1351: out of display bounds")
	ErrBufferSize = errors.New("ssd1351: framebuffer length must be width*height*2")
)

// Rotation defines pixel rotation.
type Rotation uint8

// Supported rotations.
const (
	NoRotation Rotation = iota
	Rotate90            // Rotate 90° clock wise
	Rotate180           // Rotate 180°
	Rotate270           // Rotate 270° clock wise
)

func (r Rotation) String() string {
	switch r % 4 {
	case Rotate90:
		return "90°"
	case Rotate180:
		return "180°"
	case Rotate270:
		return "270°"
	default:
		return "0°"
	}
}

// Size enumerates the supported physical panel dimensions.
type Size uint8

// Supported sizes.
const (
	Size128x128 Size = iota
	Size128x96
)

// Dimensions returns the physical width and height in pixels.
func (s Size) Dimensions() (w, h int) {
	switch s {
	case Size128x96:
		return 128, 96
	default:
		return 128, 128
	}
}

// NumPixels returns the panel pixel count.
func (s Size) NumPixels() int {
	w, h := s.Dimensions()
	return w * h
}

func (s Size) String() string {
	w, h := s.Dimensions()
	return fmt.Sprintf("%dx%d", w, h)
}

// panel holds the geometry and rotation state shared by the blocking and
// suspending controllers, together with the pure addressing math.
type panel struct {
	size     Size
	rotation Rotation
}

// dimensions returns the logical width and height, swapped for 90°/270°
// so they follow the visual orientation.
func (p *panel) dimensions() (w, h int) {
	w, h = p.size.Dimensions()
	if p.rotation == Rotate90 || p.rotation == Rotate270 {
		return h, w
	}
	return w, h
}

// remap returns the remap command realizing the current rotation. The
// four flag combinations are fixed by the remap register semantics.
func (p *panel) remap() Command {
	switch p.rotation {
	case Rotate90:
		return SetRemap(true, true, true)
	case Rotate180:
		return SetRemap(false, true, false)
	case Rotate270:
		return SetRemap(true, false, false)
	default:
		return SetRemap(false, false, true)
	}
}

// drawArea translates an exclusive-end rectangle into the inclusive
// column range, row range and RAM write commands, in transmission order.
func (p *panel) drawArea(r image.Rectangle) [3]Command {
	return [3]Command{
		Column(byte(r.Min.X), byte(r.Max.X-1)),
		Row(byte(r.Min.Y), byte(r.Max.Y-1)),
		WriteRAM(),
	}
}

// bringUp is the fixed bring-up sequence from the datasheet. The command
// order and register values are the chip's documented contract.
func (p *panel) bringUp() []Command {
	_, h := p.size.Dimensions()
	return []Command{
		Lock(0x12),
		Lock(0xB1),
		DisplayOn(false),
		ClockDiv(0xF1),
		MuxRatio(byte(h - 1)),
		DisplayOffset(0),
		StartLine(0),
		SetGPIO(0x00),
		FunctionSelect(0x01),
		SetVSL(),
		Contrast(0x8F),
		ContrastCurrent(0x0F),
		PreCharge(0x32),
		PreCharge2(0x01),
		Vcomh(0x05),
		Invert(false),
	}
}

// Display drives an SSD1351 panel over a blocking connection. It owns
// the connection exclusively; no other component may issue transactions
// while the Display is in use.
type Display struct {
	panel
	c Conn
}

// New returns a display for the given connection and configuration. No
// bus traffic happens until Reset or Init is called.
func New(c Conn, config *Config) *Display {
	if config == nil {
		config = new(Config)
		*config = DefaultConfig
	}
	return &Display{
		panel: panel{size: config.Size, rotation: config.Rotation % 4},
		c:     c,
	}
}

// Close closes the underlying connection.
func (d *Display) Close() error {
	return d.c.Close()
}

func (d *Display) String() string {
	return fmt.Sprintf("SSD1351 %s", d.size)
}

// Reset performs the hardware reset sequence. The hold times are the
// chip's minimum timing contract.
func (d *Display) Reset() error {
	if err := d.c.Reset(gpio.High); err != nil {
		return err
	}
	time.Sleep(1 * time.Millisecond)
	if err := d.c.Reset(gpio.Low); err != nil {
		return err
	}
	time.Sleep(10 * time.Millisecond)
	return d.c.Reset(gpio.High)
}

// Init issues the bring-up sequence, applies the configured rotation,
// clears the panel and turns the display on. A failed step aborts the
// remainder and surfaces the transport error.
func (d *Display) Init() error {
	for _, cmd := range d.bringUp() {
		if err := cmd.Send(d.c); err != nil {
			return err
		}
	}
	if err := d.SetRotation(d.rotation); err != nil {
		return err
	}
	if err := d.Clear(); err != nil {
		return err
	}
	return DisplayOn(true).Send(d.c)
}

// SetDrawArea sets the rectangular window that subsequent Draw calls
// stream pixel data into. The rectangle uses exclusive end bounds; the
// caller must ensure it is non-empty and within the panel.
func (d *Display) SetDrawArea(r image.Rectangle) error {
	for _, cmd := range d.drawArea(r) {
		if err := cmd.Send(d.c); err != nil {
			return err
		}
	}
	return nil
}

// Draw streams buf as a single data-phase transaction at the current
// draw-window cursor. The chip advances the cursor internally.
func (d *Display) Draw(buf []byte) error {
	return d.c.Data(buf...)
}

// Clear sets the draw area to the full panel and streams black pixels.
func (d *Display) Clear() error {
	w, h := d.size.Dimensions()
	if err := d.SetDrawArea(image.Rect(0, 0, w, h)); err != nil {
		return err
	}
	return d.Draw(make([]byte, w*h*2))
}

// SetRotation updates the stored rotation and issues the matching remap
// command before returning.
func (d *Display) SetRotation(rotation Rotation) error {
	d.rotation = rotation % 4
	return d.remap().Send(d.c)
}

// Rotation returns the current rotation.
func (d *Display) Rotation() Rotation {
	return d.rotation
}

// Size returns the configured physical panel size.
func (d *Display) Size() Size {
	return d.size
}

// Dimensions returns the logical display dimensions, taking the current
// rotation into account.
func (d *Display) Dimensions() (w, h int) {
	return d.dimensions()
}
