package ssd1680

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"

	"github.com/BeatGlow/ssd1680/conn"
)

// Conn errors.
var (
	ErrResetPin = errors.New("ssd1680: reset GPIO pin is invalid")
	ErrDCPin    = errors.New("ssd1680: data/command (DC) GPIO pin is invalid")
	ErrBusyPin  = errors.New("ssd1680: busy GPIO pin is invalid")
	ErrCSPin    = errors.New("ssd1680: chip select GPIO pin is invalid")
)

// Conn is the connection interface for communicating with the controller.
type Conn interface {
	String() string

	// Close the connection.
	Close() error

	// Command sends a command byte with optional arguments.
	Command(byte, ...byte) error

	// Data sends data bytes.
	Data(...byte) error

	// WaitUntilReady blocks until the controller releases the busy line, or returns
	// ErrBusyTimeout once timeout has passed. A timeout of zero or less waits forever.
	WaitUntilReady(timeout time.Duration) error

	// Delay pauses for the duration.
	Delay(time.Duration)
}

// Resetter is implemented by connections that may have a hardware reset line.
type Resetter interface {
	// HasReset reports whether a reset pin is wired.
	HasReset() bool

	// Reset sets the reset pin to the provided level.
	Reset(gpio.Level) error
}

// Interface checks.
var (
	_ Conn     = (*conn.Periph)(nil)
	_ Resetter = (*conn.Periph)(nil)
	_ Conn     = (*conn.RPIO)(nil)
	_ Resetter = (*conn.RPIO)(nil)
	_ Conn     = (*conn.TinyGo)(nil)
	_ Resetter = (*conn.TinyGo)(nil)
)

// SPIConfig describes the SPI port and the GPIO pins, by name, wired to the controller.
type SPIConfig struct {
	// Port is the SPI port name, leave empty to use the first available port.
	Port string

	// Speed of the SPI clock.
	Speed physic.Frequency

	// BatchSize limits the size of a single SPI transaction.
	BatchSize int

	// Reset pin name, leave empty when RST is not wired.
	Reset string

	// DC is the data/command pin name.
	DC string

	// Busy is the BUSY pin name.
	Busy string

	// CS is a software chip select pin name, leave empty to use the port's chip select.
	CS string
}

// DefaultSPIConfig matches the Waveshare e-Paper HAT pinout.
var DefaultSPIConfig = SPIConfig{
	Speed:     conn.DefaultSpeed,
	BatchSize: conn.DefaultBatchSize,
	Reset:     "GPIO17",
	DC:        "GPIO25",
	Busy:      "GPIO24",
}

// OpenSPI opens the SPI port and looks up the pins. The host drivers need to be
// initialized first, see periph.io/x/host/v3.
func OpenSPI(config *SPIConfig) (*conn.Periph, error) {
	if config == nil {
		config = new(SPIConfig)
		*config = DefaultSPIConfig
	}

	dc := gpioreg.ByName(config.DC)
	if dc == nil {
		return nil, ErrDCPin
	}
	busy := gpioreg.ByName(config.Busy)
	if busy == nil {
		return nil, ErrBusyPin
	}

	var reset, cs gpio.PinOut
	if config.Reset != "" {
		pin := gpioreg.ByName(config.Reset)
		if pin == nil {
			return nil, ErrResetPin
		}
		reset = pin
	}
	if config.CS != "" {
		pin := gpioreg.ByName(config.CS)
		if pin == nil {
			return nil, ErrCSPin
		}
		cs = pin
	}

	port, err := spireg.Open(config.Port)
	if err != nil {
		return nil, fmt.Errorf("ssd1680: open SPI port %q: %w", config.Port, err)
	}

	c, err := conn.NewPeriph(port, &conn.PeriphConfig{
		Speed:     config.Speed,
		BatchSize: config.BatchSize,
		DC:        dc,
		Busy:      busy,
		Reset:     reset,
		CS:        cs,
	})
	if err != nil {
		_ = port.Close()
		return nil, err
	}
	return c, nil
}
