// Command ssd1351-demo drives an SSD1351 OLED over SPI, drawing a color
// gradient and a line of text.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"os"
	"time"

	"github.com/golang/freetype"
	"golang.org/x/image/font/gofont/goregular"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/richardPFisk/ssd1351"
	"github.com/richardPFisk/ssd1351/pixel"
)

func main() {
	spiPortFlag := flag.String("spi", "", "SPI port (default: use first available)")
	resetPinFlag := flag.String("reset", "GPIO25", "Reset GPIO pin")
	dcPinFlag := flag.String("dc", "GPIO24", "Data/Command GPIO pin (DC)")
	sizeFlag := flag.String("size", "128x128", "Panel size (128x128 or 128x96)")
	rotateFlag := flag.String("rotate", "", "Display rotation")
	textFlag := flag.String("text", "hello, oled", "Text to draw")
	streamedFlag := flag.Bool("streamed", false, "Write pixels directly instead of using a framebuffer")
	asyncFlag := flag.Bool("async", false, "Drive the panel through the suspending API")
	flag.Parse()

	var rotation ssd1351.Rotation
	switch *rotateFlag {
	case "", "no", "0":
		rotation = ssd1351.NoRotation
	case "90", "right", "cw":
		rotation = ssd1351.Rotate90
	case "180", "flip":
		rotation = ssd1351.Rotate180
	case "270", "left", "ccw":
		rotation = ssd1351.Rotate270
	default:
		fatal(fmt.Errorf("invalid rotation %q specified", *rotateFlag))
	}

	var size ssd1351.Size
	switch *sizeFlag {
	case "128x128":
		size = ssd1351.Size128x128
	case "128x96":
		size = ssd1351.Size128x96
	default:
		fatal(fmt.Errorf("invalid size %q specified", *sizeFlag))
	}

	if _, err := host.Init(); err != nil {
		fatal(err)
	}

	conn, err := ssd1351.OpenSPI(&ssd1351.SPIConfig{
		Port:  *spiPortFlag,
		Reset: gpioreg.ByName(*resetPinFlag),
		DC:    gpioreg.ByName(*dcPinFlag),
	})
	if err != nil {
		fatal(err)
	}
	defer conn.Close()
	fmt.Printf("using connection: %s\n", conn)

	config := &ssd1351.Config{Size: size, Rotation: rotation}

	switch {
	case *asyncFlag:
		runAsync(conn, config)
	case *streamedFlag:
		runStreamed(conn, config)
	default:
		runBuffered(conn, config, *textFlag)
	}
}

func runBuffered(conn ssd1351.Conn, config *ssd1351.Config, text string) {
	output, err := ssd1351.NewBuffered(conn, config, make([]byte, config.Size.NumPixels()*2))
	if err != nil {
		fatal(err)
	}

	d := output.Display()
	if err := d.Reset(); err != nil {
		fatal(err)
	}
	if err := d.Init(); err != nil {
		fatal(err)
	}
	fmt.Printf("using driver: %s\n", d)

	font, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		fatal(err)
	}
	ft := freetype.NewContext()
	ft.SetDPI(72)
	ft.SetFont(font)
	ft.SetFontSize(14)
	ft.SetClip(output.Bounds())
	ft.SetDst(output)
	ft.SetSrc(image.NewUniform(color.White))

	var (
		offset int
		size   = output.Bounds().Size()
		ticker = time.NewTicker(50 * time.Millisecond)
	)
	defer ticker.Stop()

	fmt.Println("hit control-c to stop...")
	for {
		for y := 0; y < size.Y; y++ {
			for x := 0; x < size.X; x++ {
				output.Set(x, y, color.RGBA{
					R: uint8(x + y + offset),
					G: uint8(x - y + offset),
					B: uint8(x + y - offset),
					A: 0xff,
				})
			}
		}
		if _, err := ft.DrawString(text, freetype.Pt(4, size.Y/2)); err != nil {
			fatal(err)
		}
		if err := output.Flush(); err != nil {
			fatal(err)
		}

		offset++
		<-ticker.C
	}
}

func runStreamed(conn ssd1351.Conn, config *ssd1351.Config) {
	output := ssd1351.NewStreamed(conn, config)

	d := output.Display()
	if err := d.Reset(); err != nil {
		fatal(err)
	}
	if err := d.Init(); err != nil {
		fatal(err)
	}
	fmt.Printf("using driver: %s\n", d)

	// Draw box around edge
	w, h := output.Dimensions()
	for x := 0; x < w; x++ {
		plot(output, x, 0)
		plot(output, x, h-1)
	}
	for y := 0; y < h; y++ {
		plot(output, 0, y)
		plot(output, w-1, y)
	}
}

func runAsync(conn ssd1351.Conn, config *ssd1351.Config) {
	ctx := context.Background()

	output, err := ssd1351.NewAsyncBuffered(ssd1351.Adapt(conn), config, make([]byte, config.Size.NumPixels()*2))
	if err != nil {
		fatal(err)
	}

	d := output.Display()
	if err := d.Reset(ctx); err != nil {
		fatal(err)
	}
	if err := d.Init(ctx); err != nil {
		fatal(err)
	}
	fmt.Printf("using driver: %s\n", d)

	w, h := config.Size.Dimensions()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			output.SetPixel(x, y, pixel.CRGB16{V: uint16(x<<8 | y)})
		}
	}
	if err := output.Flush(ctx); err != nil {
		fatal(err)
	}
}

func plot(s ssd1351.Surface, x, y int) {
	if err := s.SetPixel(x, y, pixel.CRGB16{V: 0xffff}); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
