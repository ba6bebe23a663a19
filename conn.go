package ssd1351

import (
	"context"
	"errors"

	"periph.io/x/conn/v3/gpio"
)

// Conn errors.
var (
	ErrResetPin = errors.New("ssd1351: reset GPIO pin is invalid")
	ErrDCPin    = errors.New("ssd1351: data/command (DC) GPIO pin is invalid")
)

// Failure reasons reported by transport implementations.
var (
	ErrBusWrite    = errors.New("ssd1351: bus write failed")
	ErrDataCommand = errors.New("ssd1351: data/command select failed")
	ErrPin         = errors.New("ssd1351: GPIO pin operation failed")
)

// Conn is the blocking connection for communicating with the display.
// The display is write-only; every transaction is either a command-phase
// or a data-phase write, distinguished by the DC selector pin.
type Conn interface {
	String() string

	// Close the connection.
	Close() error

	// Reset sets the reset pin to the provided level.
	Reset(gpio.Level) error

	// Command sends a command byte with optional data-phase arguments.
	Command(cmd byte, data ...byte) error

	// Data sends data bytes.
	Data(data ...byte) error
}

// AsyncConn is the suspending counterpart of Conn. Every call is a
// suspension point: it yields to the scheduler until the underlying
// transaction completes, then resumes with its result.
type AsyncConn interface {
	String() string

	// Close the connection.
	Close() error

	// Reset sets the reset pin to the provided level.
	Reset(ctx context.Context, level gpio.Level) error

	// Command sends a command byte with optional data-phase arguments.
	Command(ctx context.Context, cmd byte, data ...byte) error

	// Data sends data bytes.
	Data(ctx context.Context, data ...byte) error
}

// Adapt lets a blocking Conn satisfy the AsyncConn contract. Calls
// complete synchronously without yielding; a context that is already
// canceled fails the call before any bus activity.
func Adapt(c Conn) AsyncConn {
	return &syncConn{c: c}
}

type syncConn struct {
	c Conn
}

func (a *syncConn) String() string { return a.c.String() }

func (a *syncConn) Close() error { return a.c.Close() }

func (a *syncConn) Reset(ctx context.Context, level gpio.Level) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return a.c.Reset(level)
}

func (a *syncConn) Command(ctx context.Context, cmd byte, data ...byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return a.c.Command(cmd, data...)
}

func (a *syncConn) Data(ctx context.Context, data ...byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return a.c.Data(data...)
}
