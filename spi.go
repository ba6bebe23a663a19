package ssd1351

import (
	"fmt"
	"log"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
)

// SPIConfig describes the SPI bus configuration.
type SPIConfig struct {
	// Port is the SPI port name understood by spireg.Open, for example
	// "SPI0.0" or "/dev/spidev0.0". Empty selects the first available port.
	Port string

	// Speed is the maximum bus speed.
	Speed physic.Frequency

	// BatchSize is the maximum size of a single data-phase bus write.
	BatchSize int

	// Reset pin.
	Reset gpio.PinOut

	// DC is the data/command selector pin.
	DC gpio.PinOut
}

// DefaultSPIConfig are the default configuration values.
var DefaultSPIConfig = SPIConfig{
	Speed:     8 * physic.MegaHertz,
	BatchSize: 4096,
}

type spiConn struct {
	port      spi.PortCloser
	bus       spi.Conn
	reset     gpio.PinOut
	dc        gpio.PinOut
	dcLevel   gpio.Level
	batchSize int
}

// OpenSPI opens a connection to the display over SPI. The SSD1351
// expects mode 0: clock idle low, data captured on the first clock edge.
func OpenSPI(config *SPIConfig) (Conn, error) {
	if config == nil {
		config = new(SPIConfig)
		*config = DefaultSPIConfig
	}

	if config.Reset == nil || config.Reset == gpio.INVALID {
		return nil, ErrResetPin
	}
	if config.DC == nil || config.DC == gpio.INVALID {
		return nil, ErrDCPin
	}
	if config.Speed == 0 {
		config.Speed = DefaultSPIConfig.Speed
	}
	if config.BatchSize == 0 {
		config.BatchSize = DefaultSPIConfig.BatchSize
	}

	port, err := spireg.Open(config.Port)
	if err != nil {
		return nil, err
	}
	return connect(port, config)
}

// connect wires a validated configuration to an open SPI port.
func connect(port spi.PortCloser, config *SPIConfig) (Conn, error) {
	bus, err := port.Connect(config.Speed, spi.Mode0, 8)
	if err != nil {
		_ = port.Close()
		return nil, err
	}

	// Drive DC to a known level so the cached state matches the pin.
	if err = config.DC.Out(gpio.Low); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("%w: %v", ErrDataCommand, err)
	}

	return &spiConn{
		port:      port,
		bus:       bus,
		reset:     config.Reset,
		dc:        config.DC,
		dcLevel:   gpio.Low,
		batchSize: config.BatchSize,
	}, nil
}

func (c *spiConn) String() string {
	return fmt.Sprintf("SPI bus %s", c.bus)
}

func (c *spiConn) Close() error {
	return c.port.Close()
}

func (c *spiConn) Reset(level gpio.Level) error {
	if err := c.reset.Out(level); err != nil {
		return fmt.Errorf("%w: %v", ErrPin, err)
	}
	return nil
}

func (c *spiConn) updateDC(level gpio.Level) error {
	if c.dcLevel == level {
		return nil
	}
	if err := c.dc.Out(level); err != nil {
		return fmt.Errorf("%w: %v", ErrDataCommand, err)
	}
	c.dcLevel = level
	return nil
}

func (c *spiConn) Command(cmd byte, data ...byte) (err error) {
	if err = c.updateDC(gpio.Low); err != nil {
		return
	}
	if err = c.write([]byte{cmd}); err != nil {
		return
	}
	if len(data) > 0 {
		if err = c.updateDC(gpio.High); err != nil {
			return
		}
		if err = c.writeChunked(data); err != nil {
			return
		}
	}
	return
}

func (c *spiConn) Data(data ...byte) (err error) {
	if len(data) == 0 {
		return
	}
	if err = c.updateDC(gpio.High); err != nil {
		return
	}
	return c.writeChunked(data)
}

func (c *spiConn) write(data []byte) error {
	if err := c.bus.Tx(data, nil); err != nil {
		return fmt.Errorf("%w: %v", ErrBusWrite, err)
	}
	return nil
}

func (c *spiConn) writeChunked(data []byte) (err error) {
	if len(data) <= c.batchSize {
		return c.write(data)
	}

	if debug {
		log.Printf("ssd1351: write %d bytes of data in %d chunks", len(data), (len(data)+c.batchSize-1)/c.batchSize)
	}
	buffer := data
	for len(buffer) > 0 {
		if len(buffer) > c.batchSize {
			if err = c.write(buffer[:c.batchSize]); err != nil {
				return
			}
			buffer = buffer[c.batchSize:]
		} else {
			if err = c.write(buffer); err != nil {
				return
			}
			buffer = nil
		}
	}
	return
}
