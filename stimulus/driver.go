package stimulus

import (
	"fmt"
	"log"

	"github.com/sarchlab/pepc/pepc"
	"github.com/sarchlab/pepc/sim"
)

// HookPosStepDone is triggered when a step completes. The hook item is a
// StepRecord.
var HookPosStepDone = &sim.HookPos{Name: "Stimulus.StepDone"}

// Target is the device whose pins are driven.
type Target interface {
	sim.Named

	SetRequest(req pepc.RequestVector)
	SetControl(ctrl pepc.ControlWord)
	SetBus(bus uint8)
	SetResetN(resetN bool)

	Status() pepc.StatusWord
	Data() pepc.DataWord
}

// StepRecord describes a completed step.
type StepRecord struct {
	Index  int
	Step   Step
	Cycle  uint64
	Time   sim.VTimeInSec
	Passed bool
	Status pepc.StatusWord
	Data   pepc.DataWord
}

// Mismatch is a failed expectation.
type Mismatch struct {
	Step  int
	Cycle uint64
	Field string
	Want  uint8
	Got   uint8
}

func (m Mismatch) Error() string {
	return fmt.Sprintf("step %d, cycle %d: %s is %08b, want %08b",
		m.Step, m.Cycle, m.Field, m.Got, m.Want)
}

// Driver plays a script against a target. It ticks after the target's edges
// of the same cycle, so pins are driven after an edge and outputs are read
// once the edge has been committed.
type Driver struct {
	*sim.TickingComponent

	target Target
	script *Script
	logger *log.Logger

	pc         int
	cyclesLeft int
	mismatches []Mismatch
}

// Start schedules the first tick at the current time.
func (d *Driver) Start() {
	d.TickNow()
}

// Done tells if every step has been executed.
func (d *Driver) Done() bool {
	return d.pc >= len(d.script.Steps)
}

// Mismatches returns the failed expectations so far.
func (d *Driver) Mismatches() []Mismatch {
	return d.mismatches
}

// Passed tells if the script completed without failed expectations.
func (d *Driver) Passed() bool {
	return d.Done() && len(d.mismatches) == 0
}

// Script returns the script being played.
func (d *Driver) Script() *Script {
	return d.script
}

// Tick executes steps until the script ends or a wait starts.
func (d *Driver) Tick() bool {
	if d.cyclesLeft > 0 {
		d.cyclesLeft--
		if d.cyclesLeft > 0 {
			return true
		}

		d.completeStep(true)
	}

	for !d.Done() {
		step := d.script.Steps[d.pc]

		if step.Wait > 0 {
			d.cyclesLeft = step.Wait
			return true
		}

		passed := d.execute(step)
		d.completeStep(passed)
	}

	return false
}

func (d *Driver) execute(step Step) bool {
	switch {
	case step.Set != nil:
		d.applySet(step.Set)
	case step.Expect != nil:
		return d.check(step.Expect)
	case step.Log != "":
		d.logf("%s", step.Log)
	default:
		panic(fmt.Sprintf("step %d has no action", d.pc))
	}

	return true
}

func (d *Driver) applySet(s *Set) {
	if s.Request != nil {
		d.target.SetRequest(pepc.RequestVector(*s.Request))
	}

	if s.Control != nil {
		d.target.SetControl(pepc.ControlWord(*s.Control))
	}

	if s.Bus != nil {
		d.target.SetBus(*s.Bus)
	}

	if s.ResetN != nil {
		d.target.SetResetN(*s.ResetN)
	}
}

func (d *Driver) check(e *Expect) bool {
	passed := true
	cycle := d.Freq.Cycle(d.CurrentTime())

	if e.Status != nil {
		got := uint8(d.target.Status())
		if got != *e.Status {
			d.mismatch(Mismatch{d.pc, cycle, "status", *e.Status, got})
			passed = false
		}
	}

	if e.Data != nil {
		got := uint8(d.target.Data())
		if got != *e.Data {
			d.mismatch(Mismatch{d.pc, cycle, "data", *e.Data, got})
			passed = false
		}
	}

	return passed
}

func (d *Driver) mismatch(m Mismatch) {
	d.mismatches = append(d.mismatches, m)
	d.logf("%s: %v", d.target.Name(), m)
}

func (d *Driver) logf(format string, args ...any) {
	if d.logger == nil {
		return
	}

	d.logger.Printf("%s: "+format, append([]any{d.Name()}, args...)...)
}

func (d *Driver) completeStep(passed bool) {
	if d.NumHooks() > 0 {
		now := d.CurrentTime()
		d.InvokeHook(sim.HookCtx{
			Domain: d,
			Pos:    HookPosStepDone,
			Item: StepRecord{
				Index:  d.pc,
				Step:   d.script.Steps[d.pc],
				Cycle:  d.Freq.Cycle(now),
				Time:   now,
				Passed: passed,
				Status: d.target.Status(),
				Data:   d.target.Data(),
			},
		})
	}

	d.pc++
}
