// Package ssd1680 contains a driver for e-paper panels using the Solomon Systech SSD1680
// controller, in monochrome and black/white/chromatic variants.
package ssd1680

import (
	"errors"
	"image"
	"image/color"
	"os"
	"time"

	"github.com/BeatGlow/ssd1680/conn"
	"github.com/BeatGlow/ssd1680/pixel"
)

var debug bool

func init() {
	debug = os.Getenv("EPD_DEBUG") != ""
}

// Errors
var (
	ErrBounds   = errors.New("ssd1680: out of display bounds")
	ErrGeometry = errors.New("ssd1680: unsupported panel geometry")

	// ErrBusyTimeout is returned when the controller stays busy longer than Config.BusyTimeout.
	ErrBusyTimeout = conn.ErrBusyTimeout

	// ErrNoReset is returned by transports without a reset line.
	ErrNoReset = conn.ErrNoReset
)

// PinError reports a failed GPIO level change.
type PinError = conn.PinError

// Rotation defines pixel rotation.
type Rotation = pixel.Rotation

// Supported rotations.
const (
	NoRotation = pixel.NoRotation
	Rotate90   = pixel.Rotate90  // Rotate 90° clock wise
	Rotate180  = pixel.Rotate180 // Rotate 180°
	Rotate270  = pixel.Rotate270 // Rotate 270° clock wise
)

// Panel defaults, a 2.13" 250x122 panel.
const (
	DefaultWidth  = 250
	DefaultHeight = 122
)

// DefaultBusyTimeout bounds every busy wait. A full refresh takes a few seconds.
const DefaultBusyTimeout = 10 * time.Second

// Display is an e-paper display.
type Display interface {
	// Close powers the panel down and closes the connection.
	Close() error

	// Clear the display buffer.
	Clear()

	// At returns the color of the pixel at (x, y).
	At(x, y int) color.Color

	// Set the pixel color at (x, y).
	Set(x, y int, c color.Color)

	// Bounds is the display bounding box (dimensions).
	Bounds() image.Rectangle

	// ColorModel used by the display.
	ColorModel() color.Model

	// SetRotation adjusts the pixel rotation.
	SetRotation(Rotation) error

	// Refresh redraws the display.
	Refresh() error
}

// Config is the display configuration.
type Config struct {
	// Width of the display in pixels (source lines).
	Width int

	// Height of the display in pixels (gate lines).
	Height int

	// Rotation of the display.
	Rotation Rotation

	// BusyTimeout bounds each wait for the busy line, use a negative value to wait forever.
	BusyTimeout time.Duration

	// SleepDelay is an optional settle delay after entering deep sleep.
	SleepDelay time.Duration

	// Observer is called after every controller phase.
	Observer Observer
}

func (config *Config) withDefaults() (Config, error) {
	var c Config
	if config != nil {
		c = *config
	}
	if c.Width == 0 {
		c.Width = DefaultWidth
	}
	if c.Height == 0 {
		c.Height = DefaultHeight
	}
	if c.BusyTimeout == 0 {
		c.BusyTimeout = DefaultBusyTimeout
	}
	if !c.geometry().Valid() {
		return c, ErrGeometry
	}
	c.Rotation %= 4
	return c, nil
}

func (config Config) geometry() pixel.Geometry {
	return pixel.Geometry{Width: config.Width, Height: config.Height}
}
