package tracing

import (
	"github.com/sarchlab/pepc/datarecording"
	"github.com/sarchlab/pepc/pepc"
	"github.com/sarchlab/pepc/sim"
)

// EdgeTableName is the table that EdgeTracers write into.
const EdgeTableName = "pepc_edge"

type edgeEntry struct {
	Component string
	Cycle     uint64
	Time      float64
	State     string
	Request   uint8
	Control   uint8
	ResetN    bool
	Status    uint8
	Data      uint8
	Valid     bool
	Channel   uint8
}

// EdgeTracer records every committed edge of the PEPC cores it is attached to.
type EdgeTracer struct {
	recorder datarecording.DataRecorder
	count    int
}

// NewEdgeTracer creates the edge table in the recorder and returns a tracer
// writing into it.
func NewEdgeTracer(recorder datarecording.DataRecorder) *EdgeTracer {
	recorder.CreateTable(EdgeTableName, edgeEntry{})

	return &EdgeTracer{recorder: recorder}
}

// Count returns the number of edges recorded.
func (t *EdgeTracer) Count() int {
	return t.count
}

// Func records the edge.
func (t *EdgeTracer) Func(ctx sim.HookCtx) {
	if ctx.Pos != pepc.HookPosEdge {
		return
	}

	rec := ctx.Item.(pepc.EdgeRecord)
	t.recorder.InsertData(EdgeTableName, edgeEntry{
		Component: domainName(ctx),
		Cycle:     rec.Cycle,
		Time:      float64(rec.Time),
		State:     rec.Regs.State.String(),
		Request:   uint8(rec.Inputs.Request),
		Control:   uint8(rec.Inputs.Control),
		ResetN:    rec.Inputs.ResetN,
		Status:    uint8(rec.Regs.Status),
		Data:      uint8(rec.Regs.Data),
		Valid:     rec.Regs.Status.Valid(),
		Channel:   rec.Regs.Status.Channel(),
	})
	t.count++
}
