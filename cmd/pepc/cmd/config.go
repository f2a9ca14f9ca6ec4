package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sarchlab/pepc/pepc"
	"github.com/sarchlab/pepc/sim"
)

// Environment variables that provide defaults for flags.
const (
	envFreq        = "PEPC_FREQ_HZ"
	envOverflow    = "PEPC_OVERFLOW"
	envRecord      = "PEPC_RECORD"
	envMonitorPort = "PEPC_MONITOR_PORT"
)

const (
	defaultFreq     = 1e9
	defaultOverflow = "wrap"
)

// loadDotEnv loads a .env file if it exists. Variables already set in the
// environment win.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}

	return nil
}

// setting returns the flag value if it was given on the command line, then
// the environment variable, then the flag default.
func setting(cmd *cobra.Command, flag, env string) string {
	f := cmd.Flags().Lookup(flag)
	if f == nil {
		panic("unknown flag " + flag)
	}

	if f.Changed {
		return f.Value.String()
	}

	if v, ok := os.LookupEnv(env); ok {
		return v
	}

	return f.DefValue
}

type coreConfig struct {
	freq     sim.Freq
	overflow pepc.ChannelOverflowPolicy
}

// readCoreConfig reads the settings of a simulated core. Only run has a
// clock, so only run calls it.
func readCoreConfig(cmd *cobra.Command) (coreConfig, error) {
	var c coreConfig

	freqStr := setting(cmd, "freq", envFreq)
	freq, err := strconv.ParseFloat(freqStr, 64)
	if err != nil || freq <= 0 {
		return c, fmt.Errorf("invalid frequency %q", freqStr)
	}
	c.freq = sim.Freq(freq)

	c.overflow, err = readOverflow(cmd)
	if err != nil {
		return c, err
	}

	return c, nil
}

func readOverflow(cmd *cobra.Command) (pepc.ChannelOverflowPolicy, error) {
	return pepc.ParseOverflowPolicy(setting(cmd, "overflow", envOverflow))
}

func parseByte(name, s string, limit uint64) (uint8, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil || v > limit {
		return 0, fmt.Errorf("invalid %s %q", name, s)
	}

	return uint8(v), nil
}
