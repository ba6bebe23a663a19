package ssd1351

import "context"

// Registers (from the SSD1351 datasheet).
const (
	setColumnAddress     = 0x15
	writeRAM             = 0x5C
	setRowAddress        = 0x75
	setRemapColorDepth   = 0xA0
	setDisplayStartLine  = 0xA1
	setDisplayOffset     = 0xA2
	setDisplayNormal     = 0xA6
	setDisplayInverse    = 0xA7
	setFunctionSelect    = 0xAB
	setDisplayOff        = 0xAE
	setDisplayOn         = 0xAF
	setPhaseLength       = 0xB1
	setFrontClockDiv     = 0xB3
	setSegmentLowVoltage = 0xB4
	setGPIOPins          = 0xB5
	setSecondPrecharge   = 0xB6
	setVCOMHVoltage      = 0xBE
	setContrastColor     = 0xC1
	setContrastMaster    = 0xC7
	setMultiplexRatio    = 0xCA
	setCommandLock       = 0xFD
)

// Command is a single SSD1351 protocol operation with its parameters.
// It is a pure value; Encode maps it to the on-wire representation.
type Command struct {
	kind commandKind
	args [3]byte
}

type commandKind uint8

const (
	cmdLock commandKind = iota
	cmdDisplayOn
	cmdClockDiv
	cmdMuxRatio
	cmdSetRemap
	cmdColumn
	cmdRow
	cmdStartLine
	cmdDisplayOffset
	cmdSetGPIO
	cmdFunctionSelect
	cmdPreCharge
	cmdVcomh
	cmdInvert
	cmdContrast
	cmdContrastCurrent
	cmdSetVSL
	cmdPreCharge2
	cmdWriteRAM
)

func flag(on bool) byte {
	if on {
		return 1
	}
	return 0
}

// Lock sets the command lock state.
func Lock(v byte) Command { return Command{kind: cmdLock, args: [3]byte{v}} }

// DisplayOn turns the display on or off.
func DisplayOn(on bool) Command { return Command{kind: cmdDisplayOn, args: [3]byte{flag(on)}} }

// ClockDiv sets the front clock divider and oscillator frequency.
func ClockDiv(v byte) Command { return Command{kind: cmdClockDiv, args: [3]byte{v}} }

// MuxRatio sets the multiplex ratio.
func MuxRatio(v byte) Command { return Command{kind: cmdMuxRatio, args: [3]byte{v}} }

// SetRemap configures address increment direction, column remap and COM
// scan direction. The three flags map onto the remap register bits the
// hardware uses to realize rotation.
func SetRemap(incr, remap, scan bool) Command {
	return Command{kind: cmdSetRemap, args: [3]byte{flag(incr), flag(remap), flag(scan)}}
}

// Column sets the column address range. Start and end are inclusive.
func Column(start, end byte) Command { return Command{kind: cmdColumn, args: [3]byte{start, end}} }

// Row sets the row address range. Start and end are inclusive.
func Row(start, end byte) Command { return Command{kind: cmdRow, args: [3]byte{start, end}} }

// StartLine sets the display start line.
func StartLine(v byte) Command { return Command{kind: cmdStartLine, args: [3]byte{v}} }

// DisplayOffset sets the display offset.
func DisplayOffset(v byte) Command { return Command{kind: cmdDisplayOffset, args: [3]byte{v}} }

// SetGPIO configures the chip GPIO pins.
func SetGPIO(v byte) Command { return Command{kind: cmdSetGPIO, args: [3]byte{v}} }

// FunctionSelect selects internal or external VDD.
func FunctionSelect(v byte) Command { return Command{kind: cmdFunctionSelect, args: [3]byte{v}} }

// PreCharge sets the phase 1 and 2 precharge periods.
func PreCharge(v byte) Command { return Command{kind: cmdPreCharge, args: [3]byte{v}} }

// Vcomh sets the COM deselect voltage level.
func Vcomh(v byte) Command { return Command{kind: cmdVcomh, args: [3]byte{v}} }

// Invert enables or disables inverse display mode.
func Invert(on bool) Command { return Command{kind: cmdInvert, args: [3]byte{flag(on)}} }

// Contrast sets the green channel contrast; red and blue keep their
// reset value of 0xC8.
func Contrast(v byte) Command { return Command{kind: cmdContrast, args: [3]byte{v}} }

// ContrastCurrent sets the master contrast current.
func ContrastCurrent(v byte) Command { return Command{kind: cmdContrastCurrent, args: [3]byte{v}} }

// SetVSL selects the external segment low voltage.
func SetVSL() Command { return Command{kind: cmdSetVSL} }

// PreCharge2 sets the second precharge period.
func PreCharge2(v byte) Command { return Command{kind: cmdPreCharge2, args: [3]byte{v}} }

// WriteRAM enables writing the pixel data that follows into display RAM.
func WriteRAM() Command { return Command{kind: cmdWriteRAM} }

// Encode maps the command to its opcode and payload. The payload length
// n is in 0..=6; payload bytes beyond n are unspecified.
func (c Command) Encode() (opcode byte, payload [6]byte, n int) {
	switch c.kind {
	case cmdLock:
		return setCommandLock, [6]byte{c.args[0]}, 1
	case cmdDisplayOn:
		if c.args[0] != 0 {
			return setDisplayOn, payload, 0
		}
		return setDisplayOff, payload, 0
	case cmdClockDiv:
		return setFrontClockDiv, [6]byte{c.args[0]}, 1
	case cmdMuxRatio:
		return setMultiplexRatio, [6]byte{c.args[0]}, 1
	case cmdSetRemap:
		return setRemapColorDepth, [6]byte{0b0010_0100 | c.args[0] | c.args[1]<<1 | c.args[2]<<4}, 1
	case cmdColumn:
		return setColumnAddress, [6]byte{c.args[0], c.args[1]}, 2
	case cmdRow:
		return setRowAddress, [6]byte{c.args[0], c.args[1]}, 2
	case cmdStartLine:
		return setDisplayStartLine, [6]byte{c.args[0]}, 1
	case cmdDisplayOffset:
		return setDisplayOffset, [6]byte{c.args[0]}, 1
	case cmdSetGPIO:
		return setGPIOPins, [6]byte{c.args[0]}, 1
	case cmdFunctionSelect:
		return setFunctionSelect, [6]byte{c.args[0]}, 1
	case cmdPreCharge:
		return setPhaseLength, [6]byte{c.args[0]}, 1
	case cmdVcomh:
		return setVCOMHVoltage, [6]byte{c.args[0]}, 1
	case cmdInvert:
		if c.args[0] != 0 {
			return setDisplayInverse, payload, 0
		}
		return setDisplayNormal, payload, 0
	case cmdContrast:
		return setContrastColor, [6]byte{0xC8, c.args[0], 0xC8}, 3
	case cmdContrastCurrent:
		return setContrastMaster, [6]byte{c.args[0]}, 1
	case cmdSetVSL:
		return setSegmentLowVoltage, [6]byte{0xA0, 0xB5, 0x55}, 3
	case cmdPreCharge2:
		return setSecondPrecharge, [6]byte{c.args[0]}, 1
	case cmdWriteRAM:
		return writeRAM, payload, 0
	}
	return
}

// Send transmits the command over the connection: the opcode as a single
// command-phase byte, then the payload (if any) as one data-phase write.
func (c Command) Send(conn Conn) error {
	opcode, payload, n := c.Encode()
	if err := conn.Command(opcode); err != nil {
		return err
	}
	if n > 0 {
		return conn.Data(payload[:n]...)
	}
	return nil
}

// SendContext transmits the command like Send, suspending on each
// transport call until it completes.
func (c Command) SendContext(ctx context.Context, conn AsyncConn) error {
	opcode, payload, n := c.Encode()
	if err := conn.Command(ctx, opcode); err != nil {
		return err
	}
	if n > 0 {
		return conn.Data(ctx, payload[:n]...)
	}
	return nil
}
