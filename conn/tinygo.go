package conn

import (
	"errors"
	"time"

	"periph.io/x/conn/v3/gpio"
	"tinygo.org/x/drivers"
)

// OutputPin is a digital output, such as a TinyGo machine.Pin configured as output.
type OutputPin interface {
	High()
	Low()
}

// InputPin is a digital input, such as a TinyGo machine.Pin configured as input.
type InputPin interface {
	Get() bool
}

// TinyGoConfig are the pins used by a TinyGo transport.
type TinyGoConfig struct {
	// DC is the data/command select pin, required.
	DC OutputPin

	// Busy is the BUSY status pin, required.
	Busy InputPin

	// Reset is the RST pin, optional.
	Reset OutputPin

	// CS is the chip select pin, optional if the bus selects the chip.
	CS OutputPin

	// BatchSize limits the size of a single SPI transaction.
	BatchSize int
}

// TinyGo is a transport over a TinyGo SPI bus.
type TinyGo struct {
	bus       drivers.SPI
	dc        OutputPin
	busy      InputPin
	reset     OutputPin
	cs        OutputPin
	batchSize int
}

// NewTinyGo returns a transport for a configured SPI bus.
func NewTinyGo(bus drivers.SPI, config TinyGoConfig) (*TinyGo, error) {
	if config.DC == nil {
		return nil, errors.New("conn: data/command (DC) pin is required")
	}
	if config.Busy == nil {
		return nil, errors.New("conn: busy pin is required")
	}
	c := &TinyGo{
		bus:       bus,
		dc:        config.DC,
		busy:      config.Busy,
		reset:     config.Reset,
		cs:        config.CS,
		batchSize: config.BatchSize,
	}
	if c.cs != nil {
		c.cs.High()
	}
	return c, nil
}

func (c *TinyGo) String() string {
	return "TinyGo SPI"
}

// Close is a no-op, the bus is owned by the caller.
func (c *TinyGo) Close() error {
	return nil
}

// HasReset reports whether the RST pin is wired.
func (c *TinyGo) HasReset() bool {
	return c.reset != nil
}

// Reset drives the RST pin, it returns ErrNoReset when no pin is wired.
func (c *TinyGo) Reset(level gpio.Level) error {
	if c.reset == nil {
		return ErrNoReset
	}
	if level == gpio.High {
		c.reset.High()
	} else {
		c.reset.Low()
	}
	return nil
}

func (c *TinyGo) selectChip(selected bool) {
	if c.cs == nil {
		return
	}
	if selected {
		c.cs.Low()
	} else {
		c.cs.High()
	}
}

// Command sends a command byte followed by its optional arguments.
func (c *TinyGo) Command(cmnd byte, data ...byte) error {
	c.dc.Low()
	c.selectChip(true)
	err := c.bus.Tx([]byte{cmnd}, nil)
	c.selectChip(false)
	if err != nil {
		return err
	}
	return c.Data(data...)
}

// Data sends data bytes.
func (c *TinyGo) Data(data ...byte) error {
	if len(data) == 0 {
		return nil
	}
	c.dc.High()
	c.selectChip(true)
	defer c.selectChip(false)
	return writeChunked(func(b []byte) error {
		return c.bus.Tx(b, nil)
	}, data, c.batchSize)
}

// WaitUntilReady polls BUSY until it is low. A timeout of zero or less waits forever.
func (c *TinyGo) WaitUntilReady(timeout time.Duration) error {
	return pollBusy(c.busy.Get, timeout)
}

// Delay sleeps for d.
func (c *TinyGo) Delay(d time.Duration) {
	time.Sleep(d)
}
