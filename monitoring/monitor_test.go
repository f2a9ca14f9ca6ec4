package monitoring_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pepc/monitoring"
	"github.com/sarchlab/pepc/pepc"
	"github.com/sarchlab/pepc/sim"
	"github.com/sarchlab/pepc/stimulus"
)

var _ = Describe("Monitor", func() {
	var (
		engine  *sim.SerialEngine
		core    *pepc.Comp
		driver  *stimulus.Driver
		m       *monitoring.Monitor
		handler http.Handler
	)

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		return rec
	}

	BeforeEach(func() {
		engine = sim.NewSerialEngine()
		core = pepc.MakeBuilder().WithEngine(engine).Build("PEPC")
		driver = stimulus.MakeBuilder().
			WithEngine(engine).
			Build("Driver", core, stimulus.ReferenceScript())

		simulation := sim.NewSimulation(engine)
		simulation.RegisterComponent(core)
		simulation.RegisterComponent(driver)

		m = monitoring.NewMonitor(simulation)
		handler = m.Handler()
	})

	It("should list components", func() {
		rec := get("/api/list_components")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(MatchJSON(`["Driver","PEPC"]`))
	})

	It("should report the current time", func() {
		driver.Start()
		Expect(engine.Run()).To(Succeed())

		rec := get("/api/now")

		var rsp struct {
			Now    float64
			Events uint64
		}
		Expect(json.Unmarshal(rec.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp.Now).To(BeNumerically("~", 46e-9, 1e-12))
		Expect(rsp.Events).To(Equal(engine.EventCount()))
		Expect(rsp.Events).NotTo(BeZero())
	})

	It("should report the pins of a core", func() {
		driver.Start()
		Expect(engine.Run()).To(Succeed())

		rec := get("/api/pins/PEPC")

		Expect(rec.Code).To(Equal(http.StatusOK))
		var snapshot pepc.Snapshot
		Expect(json.Unmarshal(rec.Body.Bytes(), &snapshot)).To(Succeed())
		Expect(snapshot).To(Equal(core.Snapshot()))
		Expect(snapshot.Status).To(Equal(uint8(0x18)))
		Expect(snapshot.Data).To(Equal(uint8(0x86)))
	})

	It("should refuse pins of components without pins", func() {
		rec := get("/api/pins/Driver")

		Expect(rec.Code).To(Equal(http.StatusMethodNotAllowed))
	})

	It("should return 404 for unknown components", func() {
		Expect(get("/api/pins/Nope").Code).To(Equal(http.StatusNotFound))
		Expect(get("/api/component/Nope").Code).
			To(Equal(http.StatusNotFound))
		Expect(get("/api/tick/Nope").Code).To(Equal(http.StatusNotFound))
	})

	DescribeTable("dumping component state",
		func(path string) {
			rec := get(path)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.Len()).To(BeNumerically(">", 0))
		},
		Entry("core", "/api/component/PEPC"),
		Entry("driver", "/api/component/Driver"),
		Entry("bus layout", "/api/field/PEPC/bus"),
		Entry("glyph table", "/api/field/PEPC/logic.Glyphs"),
		Entry("registers", "/api/field/PEPC/regs"),
	)

	It("should dump component state over a live server", func() {
		srv := httptest.NewServer(handler)
		defer srv.Close()

		for _, path := range []string{
			"/api/component/PEPC",
			"/api/field/PEPC/bus",
		} {
			rsp, err := http.Get(srv.URL + path)
			Expect(err).NotTo(HaveOccurred())
			Expect(rsp.StatusCode).To(Equal(http.StatusOK))
			Expect(rsp.Body.Close()).To(Succeed())
		}
	})

	It("should tick a component", func() {
		rec := get("/api/tick/PEPC")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(engine.Run()).To(Succeed())
		Expect(engine.CurrentTime()).To(BeNumerically("~", 1e-9, 1e-12))
	})

	It("should run the engine in the background", func() {
		driver.Start()

		rec := get("/api/run")
		Expect(rec.Code).To(Equal(http.StatusAccepted))

		Eventually(func() bool {
			running, _ := m.RunStatus()
			return running
		}, time.Second).Should(BeFalse())
		Expect(driver.Passed()).To(BeTrue())
	})

	It("should pause and continue the engine", func() {
		Expect(get("/api/pause").Code).To(Equal(http.StatusOK))
		Expect(get("/api/continue").Code).To(Equal(http.StatusOK))
	})

	It("should list progress bars", func() {
		bar := m.CreateProgressBar("reference", 46)
		bar.IncrementFinished(10)
		other := m.CreateProgressBar("other", 1)
		m.CompleteProgressBar(other)

		rec := get("/api/progress")

		var bars []struct {
			Name     string `json:"name"`
			Total    uint64 `json:"total"`
			Finished uint64 `json:"finished"`
		}
		Expect(json.Unmarshal(rec.Body.Bytes(), &bars)).To(Succeed())
		Expect(bars).To(HaveLen(1))
		Expect(bars[0].Name).To(Equal("reference"))
		Expect(bars[0].Total).To(Equal(uint64(46)))
		Expect(bars[0].Finished).To(Equal(uint64(10)))
		Expect(bar.Done()).To(BeFalse())

		var raw []map[string]any
		Expect(json.Unmarshal(rec.Body.Bytes(), &raw)).To(Succeed())
		Expect(raw[0]).To(HaveLen(5))
		Expect(raw[0]).To(HaveKey("start_time"))
		Expect(raw[0]).NotTo(HaveKey("in_progress"))
	})

	It("should report resources", func() {
		rec := get("/api/resource")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring("memory_size"))
	})

	It("should reject a bad profile duration", func() {
		rec := get("/api/profile?seconds=abc")

		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("should serve the web page", func() {
		rec := get("/")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring("PEPC Monitor"))
	})
})
