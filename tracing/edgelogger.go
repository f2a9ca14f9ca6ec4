package tracing

import (
	"log"

	"github.com/sarchlab/pepc/pepc"
	"github.com/sarchlab/pepc/sim"
)

// EdgeLogger is a hook that prints the committed edges of PEPC cores.
type EdgeLogger struct {
	*log.Logger

	// ChangesOnly suppresses edges that leave the outputs unchanged.
	ChangesOnly bool

	last map[string]pepc.Registers
}

// NewEdgeLogger returns a new EdgeLogger writing into the logger.
func NewEdgeLogger(logger *log.Logger) *EdgeLogger {
	return &EdgeLogger{
		Logger: logger,
		last:   make(map[string]pepc.Registers),
	}
}

// Func writes the edge into the logger.
func (h *EdgeLogger) Func(ctx sim.HookCtx) {
	if ctx.Pos != pepc.HookPosEdge {
		return
	}

	rec := ctx.Item.(pepc.EdgeRecord)
	name := domainName(ctx)

	if h.ChangesOnly {
		last, seen := h.last[name]
		h.last[name] = rec.Regs

		if seen && last.Status == rec.Regs.Status &&
			last.Data == rec.Regs.Data && last.State == rec.Regs.State {
			return
		}
	}

	h.Printf("%.10f, %s, cycle %d, %s, req %s, ctrl %s -> status %s, data %s",
		rec.Time, name, rec.Cycle, rec.Regs.State,
		rec.Inputs.Request, rec.Inputs.Control,
		rec.Regs.Status, rec.Regs.Data)
}
