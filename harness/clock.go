// Package harness drives an emulator from an akita simulation engine.
package harness

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/ezrec/ledseq/emulator"
)

// Clock is a ticking component that advances an emulator by one tick per
// clock cycle until its tick budget is spent.
type Clock struct {
	*sim.TickingComponent

	engine sim.Engine
	emu    *emulator.Emulator
	budget int
	ticks  int
	err    error
}

// Tick runs the emulator for one cycle.
func (c *Clock) Tick() (madeProgress bool) {
	if c.err != nil || c.ticks >= c.budget {
		return false
	}

	c.err = c.emu.Tick()
	if c.err != nil {
		Trace("Error",
			"Time", float64(c.engine.CurrentTime()*1e9),
			"Tick", c.ticks,
			"Err", c.err,
		)
		return false
	}

	c.ticks++

	snap := c.emu.Snapshot()
	Trace("Tick",
		"Time", float64(c.engine.CurrentTime()*1e9),
		"Tick", snap.Tick,
		"Phase", snap.State.Phase.String(),
		"Pc", snap.State.Pc,
		"Leds", c.emu.Leds.String(),
	)

	return true
}

// Run drives the engine until the budget is spent or the emulator fails.
func (c *Clock) Run() (err error) {
	c.TickNow()

	err = c.engine.Run()
	if err != nil {
		return
	}

	err = c.err
	return
}

// Ticks returns the number of ticks run.
func (c *Clock) Ticks() int {
	return c.ticks
}

// Emulator returns the driven emulator.
func (c *Clock) Emulator() *emulator.Emulator {
	return c.emu
}
