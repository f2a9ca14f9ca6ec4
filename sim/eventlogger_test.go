package sim

import (
	"bytes"
	"log"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("EventLogger", func() {
	var (
		buf    *bytes.Buffer
		engine *SerialEngine
		calls  []string
		comp   *namedHandler
	)

	BeforeEach(func() {
		buf = new(bytes.Buffer)
		engine = NewSerialEngine()
		calls = nil
		comp = &namedHandler{
			ComponentBase:    NewComponentBase("Comp"),
			recordingHandler: recordingHandler{name: "Comp", log: &calls},
		}
	})

	logLines := func() []string {
		return strings.Split(strings.TrimSpace(buf.String()), "\n")
	}

	It("should log events before they are handled", func() {
		engine.AcceptHook(NewEventLogger(log.New(buf, "", 0)))

		engine.Schedule(newTestEvent(1e-9, comp, false))
		engine.Schedule(newTestEvent(2e-9, &recordingHandler{log: &calls}, true))

		Expect(engine.Run()).To(Succeed())

		Expect(logLines()).To(Equal([]string{
			"0.0000000010 sim.testEvent -> Comp",
			"0.0000000020 sim.testEvent secondary",
		}))
	})

	It("should print cycle numbers when a frequency is set", func() {
		engine.AcceptHook(NewEventLogger(log.New(buf, "", 0)).WithFreq(1 * GHz))

		engine.Schedule(newTestEvent(3e-9, comp, false))

		Expect(engine.Run()).To(Succeed())

		Expect(logLines()).To(Equal([]string{
			"0.0000000030 cycle 3 sim.testEvent -> Comp",
		}))
	})
})

type namedHandler struct {
	*ComponentBase
	recordingHandler
}
