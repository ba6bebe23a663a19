package ssd1351

import (
	"bytes"
	"errors"
	"image"
	"reflect"
	"testing"

	"periph.io/x/conn/v3/gpio"
)

// busOp is a single recorded transport call, either a command-phase or a
// data-phase write.
type busOp struct {
	command bool
	bytes   []byte
}

func cmd(b byte) busOp    { return busOp{command: true, bytes: []byte{b}} }
func dat(b ...byte) busOp { return busOp{bytes: b} }
func blob(n int) busOp    { return busOp{bytes: make([]byte, n)} }

// testConn records all transport calls, optionally failing from the
// failAt-th call onward.
type testConn struct {
	ops    []busOp
	reset  []gpio.Level
	calls  int
	failAt int
	err    error
}

func (c *testConn) failing() error {
	c.calls++
	if c.failAt > 0 && c.calls >= c.failAt {
		return c.err
	}
	return nil
}

func (c *testConn) String() string { return "test" }

func (c *testConn) Close() error { return nil }

func (c *testConn) Reset(level gpio.Level) error {
	if err := c.failing(); err != nil {
		return err
	}
	c.reset = append(c.reset, level)
	return nil
}

func (c *testConn) Command(cmd byte, data ...byte) error {
	if err := c.failing(); err != nil {
		return err
	}
	c.ops = append(c.ops, busOp{command: true, bytes: []byte{cmd}})
	if len(data) > 0 {
		c.ops = append(c.ops, busOp{bytes: append([]byte(nil), data...)})
	}
	return nil
}

func (c *testConn) Data(data ...byte) error {
	if err := c.failing(); err != nil {
		return err
	}
	c.ops = append(c.ops, busOp{bytes: append([]byte(nil), data...)})
	return nil
}

// bringUpOps is the documented bring-up traffic for a 128x128 panel with
// no rotation, from the first lock command up to display-on.
func bringUpOps() []busOp {
	ops := []busOp{
		cmd(0xFD), dat(0x12),
		cmd(0xFD), dat(0xB1),
		cmd(0xAE),
		cmd(0xB3), dat(0xF1),
		cmd(0xCA), dat(127),
		cmd(0xA2), dat(0),
		cmd(0xA1), dat(0),
		cmd(0xB5), dat(0),
		cmd(0xAB), dat(1),
		cmd(0xB4), dat(0xA0, 0xB5, 0x55),
		cmd(0xC1), dat(0xC8, 0x8F, 0xC8),
		cmd(0xC7), dat(0x0F),
		cmd(0xB1), dat(0x32),
		cmd(0xB6), dat(0x01),
		cmd(0xBE), dat(0x05),
		cmd(0xA6),
		cmd(0xA0), dat(0x34),
		cmd(0x15), dat(0, 127),
		cmd(0x75), dat(0, 127),
		cmd(0x5C),
		blob(128 * 128 * 2),
		cmd(0xAF),
	}
	return ops
}

func TestDisplayInit(t *testing.T) {
	c := &testConn{}
	d := New(c, nil)

	if err := d.Init(); err != nil {
		t.Fatal(err)
	}
	if want := bringUpOps(); !reflect.DeepEqual(c.ops, want) {
		t.Errorf("bring-up traffic mismatch:\ngot  %v\nwant %v", c.ops, want)
	}
}

func TestDisplayInitCommandCount(t *testing.T) {
	c := &testConn{}
	d := New(c, nil)

	if err := d.Init(); err != nil {
		t.Fatal(err)
	}

	// Exactly 16 commands before the first pixel data write.
	var commands int
	for _, op := range c.ops {
		if len(op.bytes) > 6 {
			break
		}
		if op.command && op.bytes[0] != 0xA0 && op.bytes[0] != 0x15 && op.bytes[0] != 0x75 && op.bytes[0] != 0x5C {
			commands++
		}
	}
	if commands != 16 {
		t.Errorf("expected 16 bring-up commands before pixel data, got %d", commands)
	}
}

func TestDisplayInitAborts(t *testing.T) {
	errBus := errors.New("bus gone")
	c := &testConn{failAt: 5, err: errBus}
	d := New(c, nil)

	if err := d.Init(); !errors.Is(err, errBus) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if len(c.ops) != 4 { // both lock commands and their payloads
		t.Errorf("expected no traffic after the failed step, got %d ops", len(c.ops))
	}
}

func TestDisplaySetDrawArea(t *testing.T) {
	tests := []struct {
		name string
		r    image.Rectangle
		want []busOp
	}{
		{
			"full panel",
			image.Rect(0, 0, 128, 128),
			[]busOp{cmd(0x15), dat(0, 127), cmd(0x75), dat(0, 127), cmd(0x5C)},
		},
		{
			"single pixel",
			image.Rect(12, 34, 13, 35),
			[]busOp{cmd(0x15), dat(12, 12), cmd(0x75), dat(34, 34), cmd(0x5C)},
		},
		{
			"region",
			image.Rect(10, 20, 30, 40),
			[]busOp{cmd(0x15), dat(10, 29), cmd(0x75), dat(20, 39), cmd(0x5C)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &testConn{}
			d := New(c, nil)
			if err := d.SetDrawArea(tt.r); err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(c.ops, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, c.ops)
			}
		})
	}
}

func TestDisplayClear(t *testing.T) {
	c := &testConn{}
	d := New(c, &Config{Size: Size128x96})

	if err := d.Clear(); err != nil {
		t.Fatal(err)
	}

	last := c.ops[len(c.ops)-1]
	if last.command {
		t.Fatal("expected clear to end with a pixel data write")
	}
	if len(last.bytes) != 128*96*2 {
		t.Errorf("expected %d zero bytes, got %d", 128*96*2, len(last.bytes))
	}
	if !bytes.Equal(last.bytes, make([]byte, 128*96*2)) {
		t.Error("expected all pixel bytes to be zero")
	}
}

func TestDisplayRotation(t *testing.T) {
	tests := []struct {
		rotation Rotation
		remap    byte
		swapped  bool
	}{
		{NoRotation, 0x34, false},
		{Rotate90, 0x37, true},
		{Rotate180, 0x26, false},
		{Rotate270, 0x25, true},
	}

	for _, tt := range tests {
		t.Run(tt.rotation.String(), func(t *testing.T) {
			c := &testConn{}
			d := New(c, &Config{Size: Size128x96})

			if err := d.SetRotation(tt.rotation); err != nil {
				t.Fatal(err)
			}
			if got := d.Rotation(); got != tt.rotation {
				t.Errorf("expected rotation %s, got %s", tt.rotation, got)
			}

			want := []busOp{cmd(0xA0), dat(tt.remap)}
			if !reflect.DeepEqual(c.ops, want) {
				t.Errorf("expected %v, got %v", want, c.ops)
			}

			w, h := d.Dimensions()
			if tt.swapped {
				if w != 96 || h != 128 {
					t.Errorf("expected swapped dimensions 96x128, got %dx%d", w, h)
				}
			} else if w != 128 || h != 96 {
				t.Errorf("expected dimensions 128x96, got %dx%d", w, h)
			}
		})
	}
}

func TestDisplayReset(t *testing.T) {
	c := &testConn{}
	d := New(c, nil)

	if err := d.Reset(); err != nil {
		t.Fatal(err)
	}
	want := []gpio.Level{gpio.High, gpio.Low, gpio.High}
	if !reflect.DeepEqual(c.reset, want) {
		t.Errorf("expected reset levels %v, got %v", want, c.reset)
	}
}

func TestSizeDimensions(t *testing.T) {
	if n := Size128x128.NumPixels(); n != 16384 {
		t.Errorf("expected 16384 pixels, got %d", n)
	}
	if n := Size128x96.NumPixels(); n != 12288 {
		t.Errorf("expected 12288 pixels, got %d", n)
	}
	if s := Size128x96.String(); s != "128x96" {
		t.Errorf("expected size string 128x96, got %q", s)
	}
}
