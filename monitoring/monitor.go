// Package monitoring turns a simulation into a web server so that it can be
// observed and controlled while it runs.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/pepc/monitoring/web"
	"github.com/sarchlab/pepc/pepc"
	"github.com/sarchlab/pepc/sim"
)

// Monitor serves the state of a simulation over HTTP.
type Monitor struct {
	simulation *sim.Simulation
	portNumber int

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar

	runLock sync.Mutex
	running bool
	runErr  error
}

// NewMonitor creates a monitor for the simulation.
func NewMonitor(simulation *sim.Simulation) *Monitor {
	return &Monitor{simulation: simulation}
}

// WithPortNumber sets the port number of the monitor. Zero and privileged
// ports select a random port.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber != 0 && portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is not allowed for the monitoring server, "+
				"using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := &ProgressBar{
		ID:        sim.GetIDGenerator().Generate(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar from the list of shown bars.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	bars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			bars = append(bars, b)
		}
	}

	m.progressBars = bars
}

// Handler returns the router that serves the API and the web page.
func (m *Monitor) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/pause", m.pauseEngine)
	r.HandleFunc("/api/continue", m.continueEngine)
	r.HandleFunc("/api/now", m.now)
	r.HandleFunc("/api/run", m.run)
	r.HandleFunc("/api/tick/{name}", m.tick)
	r.HandleFunc("/api/list_components", m.listComponents)
	r.HandleFunc("/api/component/{name}", m.componentDetails)
	r.HandleFunc("/api/field/{name}/{field}", m.fieldValue)
	r.HandleFunc("/api/pins/{name}", m.pins)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	r.PathPrefix("/").Handler(http.FileServer(web.GetAssets()))

	return r
}

// StartServer starts serving in the background and returns the URL of the
// web page.
func (m *Monitor) StartServer() (string, error) {
	listener, err := net.Listen("tcp", ":"+strconv.Itoa(m.portNumber))
	if err != nil {
		return "", fmt.Errorf("starting monitor: %w", err)
	}

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring simulation with %s\n", url)

	srv := &http.Server{
		Handler:           m.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		err := srv.Serve(listener)
		if err != nil && err != http.ErrServerClosed {
			log.Panic(err)
		}
	}()

	return url, nil
}

// OpenInBrowser opens the web page in the default browser.
func OpenInBrowser(url string) error {
	return browser.OpenURL(url)
}

// RunStatus tells if a run started from the web page is in progress and
// returns the error of the last finished run.
func (m *Monitor) RunStatus() (running bool, err error) {
	m.runLock.Lock()
	defer m.runLock.Unlock()

	return m.running, m.runErr
}

func (m *Monitor) engine() sim.Engine {
	return m.simulation.GetEngine()
}

func (m *Monitor) pauseEngine(w http.ResponseWriter, _ *http.Request) {
	m.engine().Pause()
	w.WriteHeader(http.StatusOK)
}

func (m *Monitor) continueEngine(w http.ResponseWriter, _ *http.Request) {
	m.engine().Continue()
	w.WriteHeader(http.StatusOK)
}

type nowRsp struct {
	Now    float64 `json:"now"`
	Events uint64  `json:"events,omitempty"`
}

type eventCounter interface {
	EventCount() uint64
}

func (m *Monitor) now(w http.ResponseWriter, _ *http.Request) {
	rsp := nowRsp{Now: float64(m.engine().CurrentTime())}

	if counter, ok := m.engine().(eventCounter); ok {
		rsp.Events = counter.EventCount()
	}

	writeJSON(w, rsp)
}

func (m *Monitor) run(w http.ResponseWriter, _ *http.Request) {
	m.runLock.Lock()
	defer m.runLock.Unlock()

	if m.running {
		http.Error(w, "simulation is already running", http.StatusConflict)
		return
	}

	m.running = true

	go func() {
		err := m.engine().Run()

		m.runLock.Lock()
		m.running = false
		m.runErr = err
		m.runLock.Unlock()
	}()

	w.WriteHeader(http.StatusAccepted)
}

func (m *Monitor) listComponents(w http.ResponseWriter, _ *http.Request) {
	comps := m.simulation.Components()

	names := make([]string, 0, len(comps))
	for _, c := range comps {
		names = append(names, c.Name())
	}

	writeJSON(w, names)
}

type tickingComponent interface {
	TickLater()
}

func (m *Monitor) tick(w http.ResponseWriter, r *http.Request) {
	comp := m.findComponentOr404(w, mux.Vars(r)["name"])
	if comp == nil {
		return
	}

	ticking, ok := comp.(tickingComponent)
	if !ok {
		http.Error(w, "component does not tick", http.StatusMethodNotAllowed)
		return
	}

	ticking.TickLater()
	w.WriteHeader(http.StatusOK)
}

func (m *Monitor) componentDetails(w http.ResponseWriter, r *http.Request) {
	comp := m.findComponentOr404(w, mux.Vars(r)["name"])
	if comp == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(comp)
	serializer.SetMaxDepth(1)

	buf := new(bytes.Buffer)
	if err := serializer.Serialize(buf); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, err := w.Write(buf.Bytes())
	dieOnErr(err)
}

func (m *Monitor) fieldValue(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	comp := m.findComponentOr404(w, vars["name"])
	if comp == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(comp)
	serializer.SetMaxDepth(1)

	err := serializer.SetEntryPoint(strings.Split(vars["field"], "."))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	buf := new(bytes.Buffer)
	if err := serializer.Serialize(buf); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(buf.Bytes())
	dieOnErr(err)
}

type pinReporter interface {
	Snapshot() pepc.Snapshot
}

func (m *Monitor) pins(w http.ResponseWriter, r *http.Request) {
	comp := m.findComponentOr404(w, mux.Vars(r)["name"])
	if comp == nil {
		return
	}

	reporter, ok := comp.(pinReporter)
	if !ok {
		http.Error(w, "component has no pins", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, reporter.Snapshot())
}

func (m *Monitor) findComponentOr404(
	w http.ResponseWriter,
	name string,
) sim.Component {
	comp := m.simulation.GetComponentByName(name)
	if comp == nil {
		http.Error(w, "component not found", http.StatusNotFound)
	}

	return comp
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	bars := make([]*ProgressBar, len(m.progressBars))
	copy(bars, m.progressBars)
	m.progressBarsLock.Unlock()

	for _, b := range bars {
		b.Lock()
	}

	data, err := json.Marshal(bars)

	for _, b := range bars {
		b.Unlock()
	}

	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(data)
	dieOnErr(err)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	cpuPercent, err := proc.CPUPercent()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	mem, err := proc.MemoryInfo()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: mem.RSS,
	})
}

// collectProfile samples the CPU for the number of seconds given by the
// "seconds" query parameter, one second by default.
func (m *Monitor) collectProfile(w http.ResponseWriter, r *http.Request) {
	duration := time.Second

	if s := r.URL.Query().Get("seconds"); s != "" {
		seconds, err := strconv.ParseFloat(s, 64)
		if err != nil || seconds < 0 {
			http.Error(w, "invalid seconds: "+s, http.StatusBadRequest)
			return
		}

		duration = time.Duration(seconds * float64(time.Second))
	}

	buf := new(bytes.Buffer)
	if err := pprof.StartCPUProfile(buf); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	time.Sleep(duration)
	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(data)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
