package conn

import (
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// DefaultSpeed is the SPI clock used when none is configured.
const DefaultSpeed = 4 * physic.MegaHertz

// PeriphConfig describes the pins wired to the controller.
type PeriphConfig struct {
	// Speed of the SPI clock.
	Speed physic.Frequency

	// BatchSize limits the size of a single SPI transaction.
	BatchSize int

	// DC is the data/command select pin, required.
	DC gpio.PinOut

	// Busy is the BUSY status pin, required.
	Busy gpio.PinIn

	// Reset is the RST pin, optional.
	Reset gpio.PinOut

	// CS is a software driven chip select pin, optional.
	CS gpio.PinOut
}

// Periph is a transport over a periph.io SPI port and GPIO pins.
type Periph struct {
	port      spi.Port
	bus       spi.Conn
	dc        gpio.PinOut
	dcLevel   gpio.Level
	dcValid   bool
	busy      gpio.PinIn
	edges     bool
	reset     gpio.PinOut
	cs        gpio.PinOut
	batchSize int
}

// NewPeriph connects to the SPI port in mode 0 with 8 bit words.
func NewPeriph(port spi.Port, config *PeriphConfig) (*Periph, error) {
	if config == nil || config.DC == nil || config.DC == gpio.INVALID {
		return nil, errors.New("conn: data/command (DC) pin is required")
	}
	if config.Busy == nil || config.Busy == gpio.INVALID {
		return nil, errors.New("conn: busy pin is required")
	}

	speed := config.Speed
	if speed == 0 {
		speed = DefaultSpeed
	}
	batchSize := config.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	bus, err := port.Connect(speed, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("conn: SPI connect: %w", err)
	}

	c := &Periph{
		port:      port,
		bus:       bus,
		dc:        config.DC,
		busy:      config.Busy,
		reset:     config.Reset,
		cs:        config.CS,
		batchSize: batchSize,
	}
	if c.reset == gpio.INVALID {
		c.reset = nil
	}
	if c.cs == gpio.INVALID {
		c.cs = nil
	}

	// Not every GPIO driver supports edge detection, fall back to polling.
	if err = c.busy.In(gpio.PullNoChange, gpio.BothEdges); err == nil {
		c.edges = true
	} else if err = c.busy.In(gpio.PullNoChange, gpio.NoEdge); err != nil {
		return nil, &PinError{Pin: "BUSY", Err: err}
	}

	if c.cs != nil {
		if err = c.cs.Out(gpio.High); err != nil {
			return nil, &PinError{Pin: "CS", Err: err}
		}
	}
	return c, nil
}

func (c *Periph) String() string {
	return fmt.Sprintf("SPI %s", c.bus)
}

// Close releases the SPI port when it can be closed.
func (c *Periph) Close() error {
	if closer, ok := c.port.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// HasReset reports whether the RST pin is wired.
func (c *Periph) HasReset() bool {
	return c.reset != nil
}

// Reset drives the RST pin, it returns ErrNoReset when no pin is wired.
func (c *Periph) Reset(level gpio.Level) error {
	if c.reset == nil {
		return ErrNoReset
	}
	if err := c.reset.Out(level); err != nil {
		return &PinError{Pin: "RST", Err: err}
	}
	return nil
}

func (c *Periph) updateDC(level gpio.Level) error {
	if !c.dcValid || c.dcLevel != level {
		if err := c.dc.Out(level); err != nil {
			return &PinError{Pin: "DC", Err: err}
		}
		c.dcLevel, c.dcValid = level, true
	}
	return nil
}

func (c *Periph) updateCS(level gpio.Level) error {
	if c.cs == nil {
		return nil
	}
	if err := c.cs.Out(level); err != nil {
		return &PinError{Pin: "CS", Err: err}
	}
	return nil
}

func (c *Periph) tx(data []byte) error {
	return c.bus.Tx(data, nil)
}

// Command sends a command byte followed by its optional arguments.
func (c *Periph) Command(cmnd byte, data ...byte) (err error) {
	if err = c.updateDC(gpio.Low); err != nil {
		return
	}
	if err = c.updateCS(gpio.Low); err != nil {
		return
	}
	if err = c.tx([]byte{cmnd}); err != nil {
		return
	}
	if err = c.updateCS(gpio.High); err != nil {
		return
	}
	return c.Data(data...)
}

// Data sends data bytes.
func (c *Periph) Data(data ...byte) (err error) {
	if len(data) == 0 {
		return
	}
	if err = c.updateDC(gpio.High); err != nil {
		return
	}
	if err = c.updateCS(gpio.Low); err != nil {
		return
	}
	if err = writeChunked(c.tx, data, c.batchSize); err != nil {
		return
	}
	return c.updateCS(gpio.High)
}

// WaitUntilReady blocks until BUSY is low. A timeout of zero or less waits forever.
func (c *Periph) WaitUntilReady(timeout time.Duration) error {
	if !c.edges {
		return pollBusy(func() bool { return c.busy.Read() == gpio.High }, timeout)
	}

	start := time.Now()
	for c.busy.Read() == gpio.High {
		wait := time.Second
		if timeout > 0 {
			left := timeout - time.Since(start)
			if left <= 0 {
				return ErrBusyTimeout
			}
			wait = min(wait, left)
		}
		c.busy.WaitForEdge(wait)
	}
	if debug {
		log.Printf("conn: busy for %s", time.Since(start).Truncate(time.Millisecond))
	}
	return nil
}

// Delay sleeps for d.
func (c *Periph) Delay(d time.Duration) {
	time.Sleep(d)
}
