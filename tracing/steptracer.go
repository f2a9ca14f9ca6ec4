package tracing

import (
	"github.com/sarchlab/pepc/datarecording"
	"github.com/sarchlab/pepc/sim"
	"github.com/sarchlab/pepc/stimulus"
)

// StepTableName is the table that StepTracers write into.
const StepTableName = "stimulus_step"

type stepEntry struct {
	Driver string
	Step   int
	Kind   string
	Cycle  uint64
	Time   float64
	Passed bool
	Status uint8
	Data   uint8
}

// StepTracer records the outcome of every step a stimulus driver completes.
type StepTracer struct {
	recorder datarecording.DataRecorder
}

// NewStepTracer creates the step table in the recorder and returns a tracer
// writing into it.
func NewStepTracer(recorder datarecording.DataRecorder) *StepTracer {
	recorder.CreateTable(StepTableName, stepEntry{})

	return &StepTracer{recorder: recorder}
}

// Func records the step.
func (t *StepTracer) Func(ctx sim.HookCtx) {
	if ctx.Pos != stimulus.HookPosStepDone {
		return
	}

	rec := ctx.Item.(stimulus.StepRecord)
	t.recorder.InsertData(StepTableName, stepEntry{
		Driver: domainName(ctx),
		Step:   rec.Index,
		Kind:   rec.Step.Kind(),
		Cycle:  rec.Cycle,
		Time:   float64(rec.Time),
		Passed: rec.Passed,
		Status: uint8(rec.Status),
		Data:   uint8(rec.Data),
	})
}
