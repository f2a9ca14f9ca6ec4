package pepc

import "fmt"

// State is the reset state of the core.
type State int

// Core states.
const (
	StateReset State = iota
	StateActive
)

func (s State) String() string {
	switch s {
	case StateReset:
		return "reset"
	case StateActive:
		return "active"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Inputs are the pin levels seen at an active edge.
type Inputs struct {
	Request RequestVector
	Control ControlWord

	// ResetN is the active-low reset. False holds the core in reset.
	ResetN bool
}

// Registers is the complete register set of the core. The zero value is the
// power-on state: in reset, everything cleared.
type Registers struct {
	State State

	SampledRequest RequestVector
	SampledControl ControlWord

	Status StatusWord
	Data   DataWord
}

// Edge commits one active clock edge and reports whether any register
// changed.
//
// The sampler captures the pins while the output register latches what the
// logic computed from the previous sample, so an input change is visible two
// edges later. The output register stays idle on the edge that leaves reset
// because the sampler holds no real sample yet.
func (r *Registers) Edge(in Inputs, logic Logic) bool {
	var next Registers

	if in.ResetN {
		next.State = StateActive
		next.SampledRequest = in.Request
		next.SampledControl = in.Control & controlMask

		if r.State == StateActive {
			out := logic.Evaluate(r.SampledRequest, r.SampledControl)
			next.Status = out.Status
			next.Data = out.Data
		}
	}

	changed := next != *r
	*r = next

	return changed
}
