package stimulus

import (
	"log"

	"github.com/sarchlab/pepc/sim"
)

// Builder can build drivers.
type Builder struct {
	engine sim.Engine
	freq   sim.Freq
	logger *log.Logger
}

// MakeBuilder returns a Builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		freq: 1 * sim.GHz,
	}
}

// WithEngine sets the engine.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency. It should match the frequency of the target so
// that a wait of n steps spans n target edges.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithLogger sets the logger that receives log steps and mismatches.
func (b Builder) WithLogger(logger *log.Logger) Builder {
	b.logger = logger
	return b
}

// Build creates a driver that plays the script against the target.
func (b Builder) Build(name string, target Target, script *Script) *Driver {
	if b.engine == nil {
		panic("engine is not set")
	}

	if err := script.Validate(); err != nil {
		panic(err)
	}

	d := &Driver{
		target: target,
		script: script,
		logger: b.logger,
	}
	d.TickingComponent = sim.NewSecondaryTickingComponent(
		name, b.engine, b.freq, d)

	return d
}
