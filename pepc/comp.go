package pepc

import (
	"github.com/sarchlab/pepc/sim"
)

// HookPosEdge is triggered after every active edge. The hook item is an
// EdgeRecord.
var HookPosEdge = &sim.HookPos{Name: "PEPC.Edge"}

// EdgeRecord describes one committed edge.
type EdgeRecord struct {
	Cycle  uint64
	Time   sim.VTimeInSec
	Inputs Inputs
	Regs   Registers
}

// Comp is a priority encoder with parity checker. It is clocked by the engine
// at its frequency while its registers are settling, and sleeps once they
// reach a fixed point. Any pin change wakes it for the next edge.
type Comp struct {
	*sim.TickingComponent

	logic Logic
	bus   BusLayout

	pins Inputs
	regs Registers
}

// Tick commits one active edge.
func (c *Comp) Tick() bool {
	c.Lock()
	in := c.pins
	changed := c.regs.Edge(in, c.logic)
	regs := c.regs
	c.Unlock()

	if c.NumHooks() > 0 {
		now := c.CurrentTime()
		c.InvokeHook(sim.HookCtx{
			Domain: c,
			Pos:    HookPosEdge,
			Item: EdgeRecord{
				Cycle:  c.Freq.Cycle(now),
				Time:   now,
				Inputs: in,
				Regs:   regs,
			},
		})
	}

	return changed
}

// SetRequest drives the request lines.
func (c *Comp) SetRequest(req RequestVector) {
	c.updatePins(func(p *Inputs) { p.Request = req })
}

// SetControl drives the control word directly, bypassing the bus layout.
func (c *Comp) SetControl(ctrl ControlWord) {
	c.updatePins(func(p *Inputs) { p.Control = ctrl & controlMask })
}

// SetBus drives the shared bus. Only the input pins of the bus layout reach
// the core.
func (c *Comp) SetBus(bus uint8) {
	ctrl := c.bus.Sample(bus)
	c.updatePins(func(p *Inputs) { p.Control = ctrl })
}

// SetResetN drives the active-low reset.
func (c *Comp) SetResetN(resetN bool) {
	c.updatePins(func(p *Inputs) { p.ResetN = resetN })
}

func (c *Comp) updatePins(update func(p *Inputs)) {
	c.Lock()
	old := c.pins
	update(&c.pins)
	changed := old != c.pins
	c.Unlock()

	if changed {
		c.TickLater()
	}
}

// Pins returns the current pin levels.
func (c *Comp) Pins() Inputs {
	c.Lock()
	defer c.Unlock()

	return c.pins
}

// Registers returns a copy of the register set.
func (c *Comp) Registers() Registers {
	c.Lock()
	defer c.Unlock()

	return c.regs
}

// State returns whether the core is in reset.
func (c *Comp) State() State {
	return c.Registers().State
}

// Status returns the latched status word.
func (c *Comp) Status() StatusWord {
	return c.Registers().Status
}

// Data returns the latched data word.
func (c *Comp) Data() DataWord {
	return c.Registers().Data
}

// BusOut returns the value the core drives on the shared bus.
func (c *Comp) BusOut() uint8 {
	return c.bus.Drive(c.Status())
}

// BusOE returns the output-enable mask of the shared bus.
func (c *Comp) BusOE() uint8 {
	return c.bus.OutputEnable()
}

// Snapshot is a serializable view of the pins and registers.
type Snapshot struct {
	Name     string `json:"name"`
	State    string `json:"state"`
	ResetN   bool   `json:"reset_n"`
	Request  uint8  `json:"request"`
	Control  uint8  `json:"control"`
	Sampled  uint8  `json:"sampled_request"`
	Status   uint8  `json:"status"`
	Data     uint8  `json:"data"`
	BusOut   uint8  `json:"bus_out"`
	BusOE    uint8  `json:"bus_oe"`
	Channel  uint8  `json:"channel"`
	Valid    bool   `json:"valid"`
	CheckBit bool   `json:"check_bit"`
}

// Snapshot captures the pins and registers at the current time.
func (c *Comp) Snapshot() Snapshot {
	c.Lock()
	pins := c.pins
	regs := c.regs
	c.Unlock()

	return Snapshot{
		Name:     c.Name(),
		State:    regs.State.String(),
		ResetN:   pins.ResetN,
		Request:  uint8(pins.Request),
		Control:  uint8(pins.Control),
		Sampled:  uint8(regs.SampledRequest),
		Status:   uint8(regs.Status),
		Data:     uint8(regs.Data),
		BusOut:   c.bus.Drive(regs.Status),
		BusOE:    c.bus.OutputEnable(),
		Channel:  regs.Status.Channel(),
		Valid:    regs.Status.Valid(),
		CheckBit: regs.Data.CheckBit(),
	}
}
