package pepc

import (
	"github.com/sarchlab/pepc/sim"
)

// Builder can build PEPC cores.
type Builder struct {
	engine   sim.Engine
	freq     sim.Freq
	bus      BusLayout
	overflow ChannelOverflowPolicy
	glyphs   GlyphTable
}

// MakeBuilder returns a Builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		freq:     1 * sim.GHz,
		bus:      DefaultBusLayout(),
		overflow: OverflowWrap,
		glyphs:   SevenSegmentGlyphs(),
	}
}

// WithEngine sets the engine that drives the clock.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the clock frequency.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithBusLayout sets the pin roles of the shared bus.
func (b Builder) WithBusLayout(layout BusLayout) Builder {
	b.bus = layout
	return b
}

// WithOverflowPolicy sets how channel 8 is reported in the status word.
func (b Builder) WithOverflowPolicy(policy ChannelOverflowPolicy) Builder {
	b.overflow = policy
	return b
}

// WithGlyphs sets the value-field encoding of the data word.
func (b Builder) WithGlyphs(glyphs GlyphTable) Builder {
	b.glyphs = glyphs
	return b
}

// Build creates a core in reset with all pins low.
func (b Builder) Build(name string) *Comp {
	b.mustBeValid()

	c := &Comp{
		logic: Logic{
			Overflow: b.overflow,
			Glyphs:   append(GlyphTable(nil), b.glyphs...),
		},
		bus: append(BusLayout(nil), b.bus...),
	}
	c.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, c)

	return c
}

func (b Builder) mustBeValid() {
	if b.engine == nil {
		panic("engine is not set")
	}

	if b.freq <= 0 {
		panic("frequency must be positive")
	}

	if err := b.bus.Validate(); err != nil {
		panic(err)
	}

	if err := b.glyphs.Validate(); err != nil {
		panic(err)
	}

	if b.overflow != OverflowWrap && b.overflow != OverflowSaturate {
		panic("unknown channel overflow policy")
	}
}
