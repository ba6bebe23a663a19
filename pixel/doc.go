// Package pixel implements the RGB565 color model used by SSD1351 class
// color OLED panels, compatible with Go's native [color.Color] interface.
package pixel
