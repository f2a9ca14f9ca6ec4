package pepc

import "fmt"

// PinRole is the direction of one bit of the shared bidirectional bus. Roles
// are fixed when the core is built and never change during simulation.
type PinRole uint8

// Pin roles.
const (
	PinRoleInput PinRole = iota
	PinRoleOutput
)

func (r PinRole) String() string {
	switch r {
	case PinRoleInput:
		return "in"
	case PinRoleOutput:
		return "out"
	default:
		return fmt.Sprintf("PinRole(%d)", uint8(r))
	}
}

// BusWidth is the number of bits of the shared bus.
const BusWidth = 8

// BusLayout assigns a role to each of the eight bus bits.
type BusLayout []PinRole

// DefaultBusLayout reads the control word on bits [2:0] and drives the status
// word on bits [7:3].
func DefaultBusLayout() BusLayout {
	return BusLayout{
		PinRoleInput, PinRoleInput, PinRoleInput,
		PinRoleOutput, PinRoleOutput, PinRoleOutput, PinRoleOutput,
		PinRoleOutput,
	}
}

// Validate checks that the control bits are inputs and that the status bits
// carrying the valid flag and the channel are outputs.
func (l BusLayout) Validate() error {
	if len(l) != BusWidth {
		return fmt.Errorf("bus layout has %d bits, want %d", len(l), BusWidth)
	}

	for bit, role := range l {
		switch {
		case role != PinRoleInput && role != PinRoleOutput:
			return fmt.Errorf("bus bit %d has unknown role %s", bit, role)
		case bit <= controlParityBit && role != PinRoleInput:
			return fmt.Errorf(
				"bus bit %d carries the control word and must be an input", bit)
		case bit >= statusValidBit &&
			bit < statusChannelShift+3 &&
			role != PinRoleOutput:
			return fmt.Errorf(
				"bus bit %d carries the status word and must be an output", bit)
		}
	}

	return nil
}

// OutputEnable returns the output-enable mask, one bit per output pin.
func (l BusLayout) OutputEnable() uint8 {
	var oe uint8

	for bit, role := range l {
		if role == PinRoleOutput {
			oe |= 1 << bit
		}
	}

	return oe
}

// Sample extracts the control word from the bus, ignoring output pins.
func (l BusLayout) Sample(bus uint8) ControlWord {
	return ControlWord(bus&^l.OutputEnable()) & controlMask
}

// Drive returns the bus value driven by the core for a status word. Input pins
// read as 0.
func (l BusLayout) Drive(status StatusWord) uint8 {
	return uint8(status) & l.OutputEnable()
}
