package ssd1680

import "fmt"

// Command is a controller opcode.
type Command byte

// Controller opcodes.
const (
	Control        Command = 0x01 // Driver output control
	GateVoltage    Command = 0x03
	SourceVoltage  Command = 0x04
	Sleep          Command = 0x10 // Deep sleep mode
	DataMode       Command = 0x11 // Data entry mode
	Reset          Command = 0x12 // Software reset
	MasterActivate Command = 0x20
	DispCtrl1      Command = 0x21 // Display update control 1
	DispCtrl2      Command = 0x22 // Display update control 2
	WriteRAM1      Command = 0x24 // Write black/white RAM
	WriteRAM2      Command = 0x26 // Write chromatic RAM
	Vcom           Command = 0x2C
	Border         Command = 0x3C // Border waveform
	RamXPos        Command = 0x44 // RAM X start/end position
	RamYPos        Command = 0x45 // RAM Y start/end position
	RamXCount      Command = 0x4E // RAM X address counter
	RamYCount      Command = 0x4F // RAM Y address counter
)

// Fixed command arguments.
const (
	dataModeIncrement = 0x03 // X and Y increment, X first
	borderWaveform    = 0x05
	vcomValue         = 0x36
	gateVoltageValue  = 0x17
	displayUpdateFull = 0xF4
	sleepMode1        = 0x01
)

var sourceVoltageValues = []byte{0x41, 0x00, 0x32}

var commandNames = map[Command]string{
	Control:        "Control",
	GateVoltage:    "GateVoltage",
	SourceVoltage:  "SourceVoltage",
	Sleep:          "Sleep",
	DataMode:       "DataMode",
	Reset:          "Reset",
	MasterActivate: "MasterActivate",
	DispCtrl1:      "DispCtrl1",
	DispCtrl2:      "DispCtrl2",
	WriteRAM1:      "WriteRAM1",
	WriteRAM2:      "WriteRAM2",
	Vcom:           "Vcom",
	Border:         "Border",
	RamXPos:        "RamXPos",
	RamYPos:        "RamYPos",
	RamXCount:      "RamXCount",
	RamYCount:      "RamYCount",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Command(%#02x)", byte(c))
}
