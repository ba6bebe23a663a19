package ssd1351

// Config is the display configuration.
type Config struct {
	// Size of the physical panel.
	Size Size

	// Rotation of the display.
	Rotation Rotation
}

// DefaultConfig are the default configuration values.
var DefaultConfig = Config{
	Size:     Size128x128,
	Rotation: NoRotation,
}

// NewStreamed returns a streamed surface over a new display. Every pixel
// write is an immediate bus transaction.
func NewStreamed(c Conn, config *Config) *Streamed {
	return &Streamed{d: New(c, config)}
}

// NewBuffered returns a buffered surface over a new display. Ownership
// of buf transfers to the surface; its length must be exactly
// width*height*2 bytes (RGB565, big-endian).
func NewBuffered(c Conn, config *Config, buf []byte) (*Buffered, error) {
	d := New(c, config)
	if len(buf) != d.size.NumPixels()*2 {
		return nil, ErrBufferSize
	}
	return &Buffered{d: d, buf: buf}, nil
}

// NewAsync returns a suspending display for the given connection.
func NewAsync(c AsyncConn, config *Config) *AsyncDisplay {
	if config == nil {
		config = new(Config)
		*config = DefaultConfig
	}
	return &AsyncDisplay{
		panel: panel{size: config.Size, rotation: config.Rotation % 4},
		c:     c,
	}
}

// NewAsyncStreamed returns a streamed surface over a suspending display.
func NewAsyncStreamed(c AsyncConn, config *Config) *AsyncStreamed {
	return &AsyncStreamed{d: NewAsync(c, config)}
}

// NewAsyncBuffered returns a buffered surface over a suspending display,
// with the same framebuffer ownership and length contract as NewBuffered.
func NewAsyncBuffered(c AsyncConn, config *Config, buf []byte) (*AsyncBuffered, error) {
	d := NewAsync(c, config)
	if len(buf) != d.size.NumPixels()*2 {
		return nil, ErrBufferSize
	}
	return &AsyncBuffered{d: d, buf: buf}, nil
}
