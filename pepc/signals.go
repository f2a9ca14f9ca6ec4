package pepc

import (
	"fmt"
	"math/bits"
)

// RequestVector holds the eight request lines. Bit i is the request of
// channel i+1.
type RequestVector uint8

// Count returns the number of active request lines.
func (r RequestVector) Count() int {
	return bits.OnesCount8(uint8(r))
}

func (r RequestVector) String() string {
	return fmt.Sprintf("%08b", uint8(r))
}

// Direction selects which end of the request vector wins arbitration.
type Direction uint8

// Priority directions.
const (
	// DirectionMSB lets the highest-index active request win.
	DirectionMSB Direction = iota
	// DirectionLSB lets the lowest-index active request win.
	DirectionLSB
)

func (d Direction) String() string {
	switch d {
	case DirectionMSB:
		return "msb"
	case DirectionLSB:
		return "lsb"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}

// ParityMode selects the parity class the check bit reports on.
type ParityMode uint8

// Parity modes.
const (
	ParityEven ParityMode = iota
	ParityOdd
)

func (p ParityMode) String() string {
	switch p {
	case ParityEven:
		return "even"
	case ParityOdd:
		return "odd"
	default:
		return fmt.Sprintf("ParityMode(%d)", uint8(p))
	}
}

// ControlWord is the 3-bit configuration sampled with the request vector.
//
//	bit 0: reserved
//	bit 1: direction
//	bit 2: parity mode
type ControlWord uint8

const (
	controlMask         = 0b111
	controlReservedBit  = 0
	controlDirectionBit = 1
	controlParityBit    = 2
)

// MakeControlWord builds a control word from its fields. The reserved bit is
// left cleared.
func MakeControlWord(dir Direction, parity ParityMode) ControlWord {
	return ControlWord((dir&1)<<controlDirectionBit) |
		ControlWord((parity&1)<<controlParityBit)
}

// Direction returns the priority direction field.
func (c ControlWord) Direction() Direction {
	return Direction(c>>controlDirectionBit) & 1
}

// ParityMode returns the parity mode field.
func (c ControlWord) ParityMode() ParityMode {
	return ParityMode(c>>controlParityBit) & 1
}

// Reserved returns the reserved bit. It has no effect on the outputs.
func (c ControlWord) Reserved() bool {
	return c&(1<<controlReservedBit) != 0
}

func (c ControlWord) String() string {
	return fmt.Sprintf("%03b", uint8(c&controlMask))
}

// WinningChannel is the 1-indexed channel that won arbitration. The zero value
// means that no request was active.
type WinningChannel uint8

// NoChannel is the result of arbitrating an empty request vector.
const NoChannel WinningChannel = 0

// Valid tells if a channel won.
func (w WinningChannel) Valid() bool {
	return w != NoChannel
}

// Index returns the 0-indexed request line of the channel, or -1 for
// NoChannel.
func (w WinningChannel) Index() int {
	return int(w) - 1
}

func (w WinningChannel) String() string {
	if !w.Valid() {
		return "none"
	}

	return fmt.Sprintf("%d", uint8(w))
}

// StatusWord reports the arbitration result.
//
//	bits [6:4]: channel
//	bit 3:      valid
//	bits 7 and [2:0] are always 0
type StatusWord uint8

const (
	statusValidBit     = 3
	statusChannelShift = 4
	statusChannelMask  = 0b111
)

// Valid returns the valid flag.
func (s StatusWord) Valid() bool {
	return s&(1<<statusValidBit) != 0
}

// Channel returns the 3-bit channel field.
func (s StatusWord) Channel() uint8 {
	return uint8(s>>statusChannelShift) & statusChannelMask
}

func (s StatusWord) String() string {
	return fmt.Sprintf("%08b", uint8(s))
}

// DataWord is the encoded output. Bit 7 is the check bit and bits [6:0] hold
// the value field.
type DataWord uint8

const (
	dataCheckBit  = 7
	dataValueMask = 0x7f
)

// CheckBit returns bit 7.
func (d DataWord) CheckBit() bool {
	return d&(1<<dataCheckBit) != 0
}

// Value returns the 7-bit value field.
func (d DataWord) Value() uint8 {
	return uint8(d) & dataValueMask
}

func (d DataWord) String() string {
	return fmt.Sprintf("%08b", uint8(d))
}
