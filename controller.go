package ssd1680

import (
	"fmt"
	"log"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/BeatGlow/ssd1680/pixel"
)

// resetHold is how long RST is held low during a hardware reset.
const resetHold = 10 * time.Millisecond

// State is the phase of the refresh sequence the controller was last driven through.
type State uint8

// Controller states.
const (
	StateIdle State = iota
	StateHardwareReset
	StateSoftwareReset
	StateConfiguring
	StateAddressWindowSet
	StateWritingFrame
	StateActivating
	StateSleeping
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateHardwareReset:
		return "hardware reset"
	case StateSoftwareReset:
		return "software reset"
	case StateConfiguring:
		return "configure"
	case StateAddressWindowSet:
		return "address window"
	case StateWritingFrame:
		return "write frame"
	case StateActivating:
		return "activate"
	case StateSleeping:
		return "sleep"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Observer receives the duration and outcome of every controller phase.
type Observer func(phase State, took time.Duration, err error)

// CommError is a failure communicating with the controller. The phase sequence is
// aborted at the failing phase.
type CommError struct {
	Phase State
	Err   error
}

func (err *CommError) Error() string {
	return fmt.Sprintf("ssd1680: %s: %v", err.Phase, err.Err)
}

func (err *CommError) Unwrap() error {
	return err.Err
}

// Controller sequences the controller opcodes. It does not own a frame buffer.
//
// A Controller is not safe for concurrent use.
type Controller struct {
	c        Conn
	geometry pixel.Geometry
	timeout  time.Duration
	settle   time.Duration
	observer Observer
	state    State
}

// NewController returns a controller for the panel described by config. A nil config
// uses the defaults.
func NewController(c Conn, config *Config) (*Controller, error) {
	cfg, err := config.withDefaults()
	if err != nil {
		return nil, err
	}
	return &Controller{
		c:        c,
		geometry: cfg.geometry(),
		timeout:  cfg.BusyTimeout,
		settle:   cfg.SleepDelay,
		observer: cfg.Observer,
	}, nil
}

// State returns the phase last entered. It is StateIdle before the first phase and again
// after a completed PowerDown.
func (p *Controller) State() State {
	return p.state
}

// Geometry returns the physical panel size.
func (p *Controller) Geometry() pixel.Geometry {
	return p.geometry
}

func (p *Controller) phase(state State, f func() error) error {
	p.state = state

	start := time.Now()
	err := f()
	took := time.Since(start)

	if debug {
		log.Printf("ssd1680: %s took %s (err=%v)", state, took.Truncate(time.Millisecond), err)
	}
	if p.observer != nil {
		p.observer(state, took, err)
	}
	if err != nil {
		return &CommError{Phase: state, Err: err}
	}
	return nil
}

func (p *Controller) command(cmd Command, data ...byte) error {
	if err := p.c.Command(byte(cmd), data...); err != nil {
		return fmt.Errorf("%s: %w", cmd, err)
	}
	return nil
}

// WaitUntilReady waits for the controller to release the busy line.
func (p *Controller) WaitUntilReady() error {
	return p.c.WaitUntilReady(p.timeout)
}

// HardwareReset pulses the RST line. It is a no-op when the connection has no reset line.
func (p *Controller) HardwareReset() error {
	r, ok := p.c.(Resetter)
	if !ok || !r.HasReset() {
		return nil
	}
	return p.phase(StateHardwareReset, func() error {
		if err := r.Reset(gpio.Low); err != nil {
			return err
		}
		p.c.Delay(resetHold)
		return r.Reset(gpio.High)
	})
}

// SoftwareReset resets the controller registers and waits for it to become ready.
func (p *Controller) SoftwareReset() error {
	return p.phase(StateSoftwareReset, func() error {
		if err := p.command(Reset); err != nil {
			return err
		}
		return p.WaitUntilReady()
	})
}

// Configure loads the panel settings and RAM window registers.
func (p *Controller) Configure() error {
	var (
		w      = p.geometry.Width
		stride = byte(p.geometry.Stride())
		last   = byte(w - 1)
		ybytes = byte((w + 7) / 8)
	)
	return p.phase(StateConfiguring, func() (err error) {
		if err = p.command(DataMode, dataModeIncrement); err != nil {
			return
		}
		if err = p.command(Border, borderWaveform); err != nil {
			return
		}
		if err = p.command(Vcom, vcomValue); err != nil {
			return
		}
		if err = p.command(GateVoltage, gateVoltageValue); err != nil {
			return
		}
		if err = p.command(SourceVoltage, sourceVoltageValues...); err != nil {
			return
		}
		if err = p.setAddressWindow(1, 0); err != nil {
			return
		}
		if err = p.command(RamXPos, 0x01, stride); err != nil {
			return
		}
		if err = p.command(RamYPos, 0x00, 0x00, last, ybytes); err != nil {
			return
		}
		return p.command(Control, last, ybytes, 0x00)
	})
}

// PowerUp wakes the controller from deep sleep: hardware reset, software reset and configure.
func (p *Controller) PowerUp() error {
	if err := p.HardwareReset(); err != nil {
		return err
	}
	if err := p.SoftwareReset(); err != nil {
		return err
	}
	return p.Configure()
}

// SetAddressWindow moves the RAM address counters. X counts bytes within a column and
// Y counts columns.
func (p *Controller) SetAddressWindow(x, y int) error {
	if x < 0 || x > p.geometry.Stride() || y < 0 || y >= p.geometry.Width {
		return fmt.Errorf("%w: RAM address (%d,%d)", ErrBounds, x, y)
	}
	return p.phase(StateAddressWindowSet, func() error {
		return p.setAddressWindow(x, y)
	})
}

func (p *Controller) setAddressWindow(x, y int) error {
	if err := p.command(RamXCount, byte(x)); err != nil {
		return err
	}
	return p.command(RamYCount, byte(y), byte((y+7)/8))
}

// WriteFrame writes the black/white plane to RAM, and the chromatic plane if present.
// The address window must be set before. It is reset between the planes.
func (p *Controller) WriteFrame(planes ...[]byte) error {
	if len(planes) == 0 || len(planes) > 2 {
		return fmt.Errorf("ssd1680: expected one or two planes, got %d", len(planes))
	}
	for i, plane := range planes {
		if len(plane) != p.geometry.BufferLen() {
			return fmt.Errorf("ssd1680: plane %d is %d bytes, expected %d", i, len(plane), p.geometry.BufferLen())
		}
	}
	return p.phase(StateWritingFrame, func() error {
		for i, plane := range planes {
			cmd := WriteRAM1
			if i > 0 {
				cmd = WriteRAM2
				if err := p.setAddressWindow(1, 0); err != nil {
					return err
				}
			}
			if err := p.command(cmd); err != nil {
				return err
			}
			if err := p.c.Data(plane...); err != nil {
				return fmt.Errorf("%s data: %w", cmd, err)
			}
			if err := p.WaitUntilReady(); err != nil {
				return err
			}
		}
		return nil
	})
}

// Activate runs the display update sequence and waits for the refresh to complete.
func (p *Controller) Activate() error {
	return p.phase(StateActivating, func() error {
		if err := p.command(DispCtrl2, displayUpdateFull); err != nil {
			return err
		}
		if err := p.command(MasterActivate); err != nil {
			return err
		}
		return p.WaitUntilReady()
	})
}

// PowerDown enters deep sleep and returns the controller to StateIdle. The controller
// needs a reset to wake up again.
func (p *Controller) PowerDown() error {
	err := p.phase(StateSleeping, func() error {
		if err := p.command(Sleep, sleepMode1); err != nil {
			return err
		}
		if p.settle > 0 {
			p.c.Delay(p.settle)
		}
		return nil
	})
	if err == nil {
		p.state = StateIdle
	}
	return err
}
