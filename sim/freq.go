package sim

import (
	"log"
	"math"
)

// Freq is a clock frequency in Hz.
type Freq float64

// Frequency units.
const (
	Hz  Freq = 1
	KHz Freq = 1e3
	MHz Freq = 1e6
	GHz Freq = 1e9
)

// tickTolerance is the fraction of a period within which a time counts as
// being on a tick. It absorbs the rounding error of float times.
const tickTolerance = 1e-3

func (f Freq) mustBePositive() {
	if f <= 0 || math.IsNaN(float64(f)) {
		log.Panicf("invalid frequency %f", float64(f))
	}
}

// Period returns the time between two consecutive ticks.
func (f Freq) Period() VTimeInSec {
	f.mustBePositive()

	return VTimeInSec(1.0 / f)
}

// cycles returns the fractional number of periods elapsed at time t.
func (f Freq) cycles(t VTimeInSec) float64 {
	f.mustBePositive()

	if math.IsNaN(float64(t)) {
		log.Panic("invalid time")
	}

	return float64(t) * float64(f)
}

// Cycle returns the index of the tick nearest to t. Tick 0 is at time 0.
func (f Freq) Cycle(t VTimeInSec) uint64 {
	return uint64(math.Round(f.cycles(t)))
}

// CycleTime returns the time of tick n.
func (f Freq) CycleTime(n uint64) VTimeInSec {
	f.mustBePositive()

	return VTimeInSec(float64(n) / float64(f))
}

// ThisTick returns t if t is on a tick, otherwise the first tick after t.
func (f Freq) ThisTick(t VTimeInSec) VTimeInSec {
	return f.CycleTime(uint64(math.Ceil(f.cycles(t) - tickTolerance)))
}

// NextTick returns the first tick strictly after t.
func (f Freq) NextTick(t VTimeInSec) VTimeInSec {
	return f.CycleTime(uint64(math.Floor(f.cycles(t)+tickTolerance)) + 1)
}
