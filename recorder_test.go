package ssd1680

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// testOp is a single operation seen by a testConn.
type testOp struct {
	Kind  string // command, data, wait, delay or reset
	Cmd   Command
	Data  []byte
	Level gpio.Level
	Delay time.Duration
}

func (op testOp) String() string {
	switch op.Kind {
	case "command":
		return fmt.Sprintf("%s %x", op.Cmd, op.Data)
	case "data":
		return fmt.Sprintf("data[%d]", len(op.Data))
	case "delay":
		return fmt.Sprintf("delay %s", op.Delay)
	case "reset":
		return fmt.Sprintf("reset %s", op.Level)
	default:
		return op.Kind
	}
}

func cmdOp(cmd Command, data ...byte) testOp {
	return testOp{Kind: "command", Cmd: cmd, Data: data}
}

func dataOp(data []byte) testOp {
	return testOp{Kind: "data", Data: data}
}

var waitOp = testOp{Kind: "wait"}

// testConn is a recording Conn.
type testConn struct {
	ops []testOp

	// failAt fails the n-th bus write (1-based), zero never fails.
	failAt  int
	writes  int
	waitErr error
	closed  int
}

var errTestBus = errors.New("test bus failure")

func (c *testConn) String() string { return "test" }

func (c *testConn) Close() error {
	c.closed++
	return nil
}

func (c *testConn) write() error {
	c.writes++
	if c.failAt > 0 && c.writes >= c.failAt {
		return errTestBus
	}
	return nil
}

func (c *testConn) Command(cmd byte, data ...byte) error {
	if err := c.write(); err != nil {
		return err
	}
	var args []byte
	if len(data) > 0 {
		args = bytes.Clone(data)
	}
	c.ops = append(c.ops, cmdOp(Command(cmd), args...))
	return nil
}

func (c *testConn) Data(data ...byte) error {
	if err := c.write(); err != nil {
		return err
	}
	c.ops = append(c.ops, dataOp(bytes.Clone(data)))
	return nil
}

func (c *testConn) WaitUntilReady(timeout time.Duration) error {
	c.ops = append(c.ops, waitOp)
	return c.waitErr
}

func (c *testConn) Delay(d time.Duration) {
	c.ops = append(c.ops, testOp{Kind: "delay", Delay: d})
}

// testResetConn is a recording Conn with a reset line, unless noReset is set.
type testResetConn struct {
	testConn
	noReset  bool
	resetErr error
}

func (c *testResetConn) HasReset() bool {
	return !c.noReset
}

func (c *testResetConn) Reset(level gpio.Level) error {
	if c.resetErr != nil {
		return c.resetErr
	}
	c.ops = append(c.ops, testOp{Kind: "reset", Level: level})
	return nil
}

// testPowerUpOps are the operations of a power up of a 250x122 panel without a reset line.
func testPowerUpOps() []testOp {
	return []testOp{
		cmdOp(Reset),
		waitOp,
		cmdOp(DataMode, 0x03),
		cmdOp(Border, 0x05),
		cmdOp(Vcom, 0x36),
		cmdOp(GateVoltage, 0x17),
		cmdOp(SourceVoltage, 0x41, 0x00, 0x32),
		cmdOp(RamXCount, 0x01),
		cmdOp(RamYCount, 0x00, 0x00),
		cmdOp(RamXPos, 0x01, 16),
		cmdOp(RamYPos, 0x00, 0x00, 249, 32),
		cmdOp(Control, 249, 32, 0x00),
	}
}

func testCompareOps(t *testing.T, want, got []testOp) {
	t.Helper()
	for i := 0; i < len(want) || i < len(got); i++ {
		switch {
		case i >= len(got):
			t.Fatalf("op %d: expected %s, got nothing", i, want[i])
		case i >= len(want):
			t.Fatalf("op %d: unexpected %s", i, got[i])
		}
		w, g := want[i], got[i]
		if w.Kind != g.Kind || w.Cmd != g.Cmd || !bytes.Equal(w.Data, g.Data) || w.Level != g.Level || w.Delay != g.Delay {
			t.Fatalf("op %d: expected %s, got %s", i, w, g)
		}
	}
}
