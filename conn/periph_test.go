package conn

import (
	"errors"
	"testing"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

type testPeriphPort struct {
	events *testEvents
	fail   error
	speed  physic.Frequency
	mode   spi.Mode
	bits   int
	closed bool
}

func (p *testPeriphPort) String() string { return "test" }

func (p *testPeriphPort) Connect(f physic.Frequency, mode spi.Mode, bits int) (spi.Conn, error) {
	p.speed, p.mode, p.bits = f, mode, bits
	return &testPeriphConn{p}, nil
}

func (p *testPeriphPort) LimitSpeed(f physic.Frequency) error { return nil }

func (p *testPeriphPort) Close() error {
	p.closed = true
	return nil
}

type testPeriphConn struct {
	*testPeriphPort
}

func (c *testPeriphConn) Tx(w, r []byte) error {
	if c.fail != nil {
		return c.fail
	}
	c.events.add("tx %x", w)
	return nil
}

func (c *testPeriphConn) TxPackets(p []spi.Packet) error {
	for _, packet := range p {
		if err := c.Tx(packet.W, packet.R); err != nil {
			return err
		}
	}
	return nil
}

func (c *testPeriphConn) Duplex() conn.Duplex { return conn.Half }

func (c *testPeriphConn) Halt() error { return nil }

// testPeriphPin records level changes.
type testPeriphPin struct {
	*gpiotest.Pin
	events *testEvents
	fail   error
}

func (p *testPeriphPin) Out(l gpio.Level) error {
	if p.fail != nil {
		return p.fail
	}
	if l {
		p.events.add("%s=1", p.N)
	} else {
		p.events.add("%s=0", p.N)
	}
	return p.Pin.Out(l)
}

func newTestPeriph(t *testing.T, busy gpio.Level) (*Periph, *testEvents, *testPeriphPort, *gpiotest.Pin) {
	t.Helper()
	var (
		events  = new(testEvents)
		port    = &testPeriphPort{events: events}
		busyPin = &gpiotest.Pin{N: "busy", L: busy}
	)
	c, err := NewPeriph(port, &PeriphConfig{
		DC:        &testPeriphPin{Pin: &gpiotest.Pin{N: "dc"}, events: events},
		Reset:     &testPeriphPin{Pin: &gpiotest.Pin{N: "rst"}, events: events},
		Busy:      busyPin,
		BatchSize: 2,
	})
	if err != nil {
		t.Fatal(err)
	}
	return c, events, port, busyPin
}

func TestNewPeriph(t *testing.T) {
	_, _, port, _ := newTestPeriph(t, gpio.Low)
	if port.speed != DefaultSpeed {
		t.Errorf("expected speed %s, got %s", DefaultSpeed, port.speed)
	}
	if port.mode != spi.Mode0 {
		t.Errorf("expected mode 0, got %v", port.mode)
	}
	if port.bits != 8 {
		t.Errorf("expected 8 bits per word, got %d", port.bits)
	}
}

func TestNewPeriphRequiresPins(t *testing.T) {
	port := &testPeriphPort{events: new(testEvents)}
	if _, err := NewPeriph(port, &PeriphConfig{Busy: &gpiotest.Pin{N: "busy"}}); err == nil {
		t.Error("expected an error without a DC pin")
	}
	if _, err := NewPeriph(port, &PeriphConfig{DC: &gpiotest.Pin{N: "dc"}}); err == nil {
		t.Error("expected an error without a busy pin")
	}
	if _, err := NewPeriph(port, nil); err == nil {
		t.Error("expected an error without a configuration")
	}
}

func TestPeriphCommand(t *testing.T) {
	c, events, _, _ := newTestPeriph(t, gpio.Low)
	if err := c.Command(0x4f, 0x00, 0x00, 0x01); err != nil {
		t.Fatal(err)
	}
	if err := c.Command(0x20); err != nil {
		t.Fatal(err)
	}
	// The DC level is only changed when it differs from the last level driven.
	want := []string{
		"dc=0", "tx 4f",
		"dc=1", "tx 0000", "tx 01",
		"dc=0", "tx 20",
	}
	testCompareEvents(t, want, *events)
}

func TestPeriphPinError(t *testing.T) {
	c, _, _, _ := newTestPeriph(t, gpio.Low)
	cause := errors.New("gpio gone")
	c.dc.(*testPeriphPin).fail = cause

	err := c.Command(0x12)
	var pinErr *PinError
	if !errors.As(err, &pinErr) {
		t.Fatalf("expected a PinError, got %v", err)
	}
	if pinErr.Pin != "DC" || !errors.Is(err, cause) {
		t.Errorf("unexpected pin error %v", pinErr)
	}
}

func TestPeriphBusError(t *testing.T) {
	c, _, port, _ := newTestPeriph(t, gpio.Low)
	port.fail = errors.New("spi gone")
	if err := c.Data(0x01, 0x02, 0x03); !errors.Is(err, port.fail) {
		t.Fatalf("expected %v, got %v", port.fail, err)
	}
}

func TestPeriphReset(t *testing.T) {
	c, events, _, _ := newTestPeriph(t, gpio.Low)
	if err := c.Reset(gpio.Low); err != nil {
		t.Fatal(err)
	}
	if err := c.Reset(gpio.High); err != nil {
		t.Fatal(err)
	}
	testCompareEvents(t, []string{"rst=0", "rst=1"}, *events)
	if !c.HasReset() {
		t.Error("expected a reset line")
	}

	c.reset = nil
	if c.HasReset() {
		t.Error("expected no reset line")
	}
	if err := c.Reset(gpio.Low); !errors.Is(err, ErrNoReset) {
		t.Errorf("expected %v, got %v", ErrNoReset, err)
	}
}

func TestPeriphWaitUntilReady(t *testing.T) {
	t.Run("idle", func(it *testing.T) {
		c, _, _, _ := newTestPeriph(it, gpio.Low)
		if err := c.WaitUntilReady(time.Second); err != nil {
			it.Fatal(err)
		}
	})

	t.Run("released", func(it *testing.T) {
		c, _, _, busy := newTestPeriph(it, gpio.High)
		go func() {
			time.Sleep(10 * time.Millisecond)
			_ = busy.Out(gpio.Low)
		}()
		if err := c.WaitUntilReady(5 * time.Second); err != nil {
			it.Fatal(err)
		}
	})

	t.Run("timeout", func(it *testing.T) {
		c, _, _, _ := newTestPeriph(it, gpio.High)
		if err := c.WaitUntilReady(20 * time.Millisecond); !errors.Is(err, ErrBusyTimeout) {
			it.Fatalf("expected %v, got %v", ErrBusyTimeout, err)
		}
	})
}

func TestPeriphClose(t *testing.T) {
	c, _, port, _ := newTestPeriph(t, gpio.Low)
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	if !port.closed {
		t.Error("expected the port to be closed")
	}
}
