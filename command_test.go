package ssd1351

import (
	"bytes"
	"testing"
)

func TestCommandEncode(t *testing.T) {
	tests := []struct {
		name    string
		cmd     Command
		opcode  byte
		payload []byte
	}{
		{"Lock", Lock(0x12), 0xFD, []byte{0x12}},
		{"DisplayOn", DisplayOn(true), 0xAF, nil},
		{"DisplayOff", DisplayOn(false), 0xAE, nil},
		{"ClockDiv", ClockDiv(0xF1), 0xB3, []byte{0xF1}},
		{"MuxRatio", MuxRatio(0x7F), 0xCA, []byte{0x7F}},
		{"SetRemap", SetRemap(false, false, true), 0xA0, []byte{0x34}},
		{"SetRemapIncr", SetRemap(true, false, false), 0xA0, []byte{0x25}},
		{"SetRemapRemap", SetRemap(false, true, false), 0xA0, []byte{0x26}},
		{"SetRemapAll", SetRemap(true, true, true), 0xA0, []byte{0x37}},
		{"Column", Column(3, 120), 0x15, []byte{3, 120}},
		{"Row", Row(0, 127), 0x75, []byte{0, 127}},
		{"StartLine", StartLine(0), 0xA1, []byte{0}},
		{"DisplayOffset", DisplayOffset(0), 0xA2, []byte{0}},
		{"SetGPIO", SetGPIO(0x00), 0xB5, []byte{0x00}},
		{"FunctionSelect", FunctionSelect(0x01), 0xAB, []byte{0x01}},
		{"PreCharge", PreCharge(0x32), 0xB1, []byte{0x32}},
		{"Vcomh", Vcomh(0x05), 0xBE, []byte{0x05}},
		{"Invert", Invert(true), 0xA7, nil},
		{"InvertOff", Invert(false), 0xA6, nil},
		{"Contrast", Contrast(0x8F), 0xC1, []byte{0xC8, 0x8F, 0xC8}},
		{"ContrastCurrent", ContrastCurrent(0x0F), 0xC7, []byte{0x0F}},
		{"SetVSL", SetVSL(), 0xB4, []byte{0xA0, 0xB5, 0x55}},
		{"PreCharge2", PreCharge2(0x01), 0xB6, []byte{0x01}},
		{"WriteRAM", WriteRAM(), 0x5C, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opcode, payload, n := tt.cmd.Encode()
			if opcode != tt.opcode {
				t.Errorf("expected opcode %#02x, got %#02x", tt.opcode, opcode)
			}
			if n != len(tt.payload) {
				t.Errorf("expected payload length %d, got %d", len(tt.payload), n)
			}
			if n < 0 || n > 6 {
				t.Errorf("payload length %d out of range", n)
			}
			if !bytes.Equal(payload[:n], tt.payload) {
				t.Errorf("expected payload %#v, got %#v", tt.payload, payload[:n])
			}
		})
	}
}

func TestCommandEncodeDeterministic(t *testing.T) {
	cmd := Contrast(0x8F)
	opcode, payload, n := cmd.Encode()
	for i := 0; i < 16; i++ {
		o, p, l := cmd.Encode()
		if o != opcode || l != n || p != payload {
			t.Fatalf("re-encoding diverged on iteration %d", i)
		}
	}
}

func TestCommandSendPhases(t *testing.T) {
	c := &testConn{}
	if err := Contrast(0x8F).Send(c); err != nil {
		t.Fatal(err)
	}
	if len(c.ops) != 2 {
		t.Fatalf("expected 2 transport calls, got %d", len(c.ops))
	}
	if !c.ops[0].command || !bytes.Equal(c.ops[0].bytes, []byte{0xC1}) {
		t.Errorf("expected command-phase opcode 0xC1, got %+v", c.ops[0])
	}
	if c.ops[1].command || !bytes.Equal(c.ops[1].bytes, []byte{0xC8, 0x8F, 0xC8}) {
		t.Errorf("expected data-phase payload, got %+v", c.ops[1])
	}
}

func TestCommandSendNoPayload(t *testing.T) {
	c := &testConn{}
	if err := WriteRAM().Send(c); err != nil {
		t.Fatal(err)
	}
	if len(c.ops) != 1 {
		t.Fatalf("expected a single command-phase call, got %d", len(c.ops))
	}
}
