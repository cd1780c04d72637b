package harness

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/ezrec/ledseq/emulator"
)

// Builder can create new clocks.
type Builder struct {
	engine sim.Engine
	freq   sim.Freq
	ticks  int
	emu    *emulator.Emulator
	probes []emulator.Probe
}

// NewBuilder returns a Builder with a 12 MHz clock.
func NewBuilder() Builder {
	return Builder{
		freq: 12 * sim.MHz,
	}
}

// WithEngine sets the engine.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the clock.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithTicks sets the number of ticks to run.
func (b Builder) WithTicks(ticks int) Builder {
	b.ticks = ticks
	return b
}

// WithEmulator sets the emulator to drive.
func (b Builder) WithEmulator(emu *emulator.Emulator) Builder {
	b.emu = emu
	return b
}

// WithProbe adds a probe to the emulator.
func (b Builder) WithProbe(probe emulator.Probe) Builder {
	b.probes = append(append([]emulator.Probe(nil), b.probes...), probe)
	return b
}

// Build creates a clock.
func (b Builder) Build(name string) *Clock {
	if b.emu == nil {
		panic("harness: no emulator")
	}

	engine := b.engine
	if engine == nil {
		engine = sim.NewSerialEngine()
	}

	c := &Clock{
		engine: engine,
		emu:    b.emu,
		budget: b.ticks,
	}

	for _, probe := range b.probes {
		c.emu.AddProbe(probe)
	}

	c.TickingComponent = sim.NewTickingComponent(name, engine, b.freq, c)

	return c
}
