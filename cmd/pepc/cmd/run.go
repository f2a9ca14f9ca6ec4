package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sarchlab/pepc/datarecording"
	"github.com/sarchlab/pepc/monitoring"
	"github.com/sarchlab/pepc/pepc"
	"github.com/sarchlab/pepc/sim"
	"github.com/sarchlab/pepc/stimulus"
	"github.com/sarchlab/pepc/tracing"
)

var errMismatch = errors.New("outputs do not match the expectations")

func newRunCmd() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run [script.yaml]",
		Short: "Run a stimulus script against the core.",
		Long: `run plays a YAML stimulus script against a simulated core and ` +
			`checks every expectation. Without a script, the reference ` +
			`script runs. The command fails if any expectation fails.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runScript,
	}

	flags := runCmd.Flags()
	flags.Float64("freq", defaultFreq,
		"clock frequency in Hz [$"+envFreq+"]")
	flags.String("record", "",
		"record edges and steps into this SQLite file, without the "+
			".sqlite3 suffix [$"+envRecord+"]")
	flags.Bool("monitor", false, "serve the monitoring web page")
	flags.Int("port", 0, "port of the monitoring server [$"+envMonitorPort+"]")
	flags.Bool("open-browser", false, "open the monitoring page in a browser")
	flags.Bool("log-edges", false, "log every committed edge to stderr")
	flags.Bool("log-events", false, "log every engine event to stderr")
	flags.Bool("parallel-ids", false, "use globally unique event IDs")

	return runCmd
}

type bench struct {
	engine     *sim.SerialEngine
	simulation *sim.Simulation
	core       *pepc.Comp
	driver     *stimulus.Driver
	recorder   datarecording.DataRecorder
}

func loadScript(args []string) (*stimulus.Script, error) {
	if len(args) == 0 {
		return stimulus.ReferenceScript(), nil
	}

	return stimulus.LoadScript(args[0])
}

func runScript(cmd *cobra.Command, args []string) error {
	config, err := readCoreConfig(cmd)
	if err != nil {
		return err
	}

	script, err := loadScript(args)
	if err != nil {
		return err
	}

	if parallel, _ := cmd.Flags().GetBool("parallel-ids"); parallel {
		sim.UseParallelIDGenerator()
	}

	b := buildBench(cmd, config, script)

	if err := attachTracers(cmd, b); err != nil {
		return err
	}

	if b.recorder != nil {
		defer b.recorder.Close()
	}

	monitor, err := startMonitor(cmd, b)
	if err != nil {
		return err
	}

	b.driver.Start()
	if err := b.engine.Run(); err != nil {
		return fmt.Errorf("running %s: %w", script.Name, err)
	}
	b.engine.Finished()

	passed := report(cmd, b)

	if monitor != nil {
		fmt.Fprintln(os.Stderr, "Simulation finished, press Ctrl+C to exit.")
		waitForInterrupt()
	}

	if !passed {
		return errMismatch
	}

	return nil
}

func buildBench(
	cmd *cobra.Command,
	config coreConfig,
	script *stimulus.Script,
) *bench {
	b := &bench{engine: sim.NewSerialEngine()}
	b.simulation = sim.NewSimulation(b.engine)

	b.core = pepc.MakeBuilder().
		WithEngine(b.engine).
		WithFreq(config.freq).
		WithOverflowPolicy(config.overflow).
		Build("PEPC")
	b.driver = stimulus.MakeBuilder().
		WithEngine(b.engine).
		WithFreq(config.freq).
		WithLogger(log.New(cmd.OutOrStdout(), "", 0)).
		Build("Driver", b.core, script)

	b.simulation.RegisterComponent(b.core)
	b.simulation.RegisterComponent(b.driver)

	return b
}

func attachTracers(cmd *cobra.Command, b *bench) error {
	errLogger := log.New(cmd.ErrOrStderr(), "", 0)

	if logEdges, _ := cmd.Flags().GetBool("log-edges"); logEdges {
		tracing.CollectTrace(b.core, tracing.NewEdgeLogger(errLogger))
	}

	if logEvents, _ := cmd.Flags().GetBool("log-events"); logEvents {
		b.engine.AcceptHook(
			sim.NewEventLogger(errLogger).WithFreq(b.core.Freq))
	}

	if path := setting(cmd, "record", envRecord); path != "" {
		if _, err := os.Stat(path + ".sqlite3"); err == nil {
			return fmt.Errorf("file %s.sqlite3 already exists", path)
		}

		b.recorder = datarecording.New(path)
		tracing.CollectTrace(b.core, tracing.NewEdgeTracer(b.recorder))
		tracing.CollectTrace(b.driver, tracing.NewStepTracer(b.recorder))
	}

	return nil
}

func startMonitor(cmd *cobra.Command, b *bench) (*monitoring.Monitor, error) {
	if enabled, _ := cmd.Flags().GetBool("monitor"); !enabled {
		return nil, nil
	}

	portStr := setting(cmd, "port", envMonitorPort)
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid monitor port %q", portStr)
	}

	m := monitoring.NewMonitor(b.simulation).WithPortNumber(port)

	script := b.driver.Script()
	bar := m.CreateProgressBar(script.Name, uint64(script.TotalCycles()))
	b.driver.AcceptHook(sim.HookFunc(func(ctx sim.HookCtx) {
		if ctx.Pos != stimulus.HookPosStepDone {
			return
		}

		rec := ctx.Item.(stimulus.StepRecord)
		bar.IncrementFinished(uint64(rec.Step.Wait))
	}))

	url, err := m.StartServer()
	if err != nil {
		return nil, err
	}

	if open, _ := cmd.Flags().GetBool("open-browser"); open {
		if err := monitoring.OpenInBrowser(url); err != nil {
			fmt.Fprintf(os.Stderr, "Cannot open browser: %v\n", err)
		}
	}

	return m, nil
}

func report(cmd *cobra.Command, b *bench) bool {
	w := cmd.OutOrStdout()
	script := b.driver.Script()
	cycles := b.core.Freq.Cycle(b.engine.CurrentTime())

	for _, m := range b.driver.Mismatches() {
		fmt.Fprintf(w, "MISMATCH %v\n", m)
	}

	if b.driver.Passed() {
		fmt.Fprintf(w, "PASS %s: %d steps, %d cycles, %d events\n",
			script.Name, len(script.Steps), cycles, b.engine.EventCount())
		return true
	}

	fmt.Fprintf(w, "FAIL %s: %d of %d steps checked wrong values\n",
		script.Name, countFailedSteps(b.driver.Mismatches()), len(script.Steps))

	return false
}

func countFailedSteps(mismatches []stimulus.Mismatch) int {
	steps := make(map[int]bool)
	for _, m := range mismatches {
		steps[m.Step] = true
	}

	return len(steps)
}

func waitForInterrupt() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c
}
