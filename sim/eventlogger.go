package sim

import (
	"fmt"
	"log"
	"reflect"
	"strings"
)

// EventLogger is a hook that logs each event before it is handled.
//
// A line reads "<time> [cycle N] <event type> -> <handler> [secondary]".
// The cycle is printed only when Freq is set and the handler is printed only
// when it has a name.
type EventLogger struct {
	*log.Logger

	// Freq converts event times to cycle numbers when non-zero.
	Freq Freq
}

// NewEventLogger returns a new EventLogger which will write in to the logger
func NewEventLogger(logger *log.Logger) *EventLogger {
	return &EventLogger{Logger: logger}
}

// WithFreq makes the logger print the cycle number of each event.
func (h *EventLogger) WithFreq(f Freq) *EventLogger {
	h.Freq = f
	return h
}

// Func writes the event information into the logger
func (h *EventLogger) Func(ctx HookCtx) {
	if ctx.Pos != HookPosBeforeEvent {
		return
	}

	evt, ok := ctx.Item.(Event)
	if !ok {
		return
	}

	h.Print(h.describe(evt))
}

func (h *EventLogger) describe(evt Event) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%.10f", evt.Time())

	if h.Freq > 0 {
		fmt.Fprintf(&sb, " cycle %d", h.Freq.Cycle(evt.Time()))
	}

	fmt.Fprintf(&sb, " %s", reflect.TypeOf(evt))

	if comp, ok := evt.Handler().(Named); ok {
		sb.WriteString(" -> ")
		sb.WriteString(comp.Name())
	}

	if evt.IsSecondary() {
		sb.WriteString(" secondary")
	}

	return sb.String()
}
