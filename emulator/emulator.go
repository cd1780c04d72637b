// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"iter"
	"maps"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ezrec/ledseq/bus"
	"github.com/ezrec/ledseq/cpu"
	"github.com/ezrec/ledseq/internal"
	"github.com/ezrec/ledseq/io"
)

const (
	ROM_SIZE = 1024 // Default store capacity, in words.
)

var _emulator_defines = map[string]string{
	"LED_COUNT": fmt.Sprintf("%v", io.LED_COUNT),
}

// Snapshot is the observable state of the system after a tick.
type Snapshot struct {
	Tick  int                // Ticks since reset.
	State cpu.State          // Control unit registers.
	Bus   bus.Signals        // Bus lines.
	Leds  [io.LED_COUNT]bool // Output channels, indexed by io.Led.
}

// Probe observes the system once per tick.
type Probe interface {
	Sample(snap Snapshot) error
}

// Emulator state. Store + Bus + CPU + output channels.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.

	Store io.Store // Program store.
	Bus   *bus.Bus // Bus between the CPU and the store.
	Leds  io.Leds  // Output channels.

	probes []Probe
}

// NewEmulator creates a new emulator running from store.
func NewEmulator(store io.Store) (emu *Emulator) {
	emu = &Emulator{
		Store:   store,
		Bus:     bus.NewBus(store),
		Program: &cpu.Program{},
	}

	emu.Leds.Reset()
	emu.Cpu = cpu.NewCpu(emu.Bus, &emu.Leds, store.Stride())

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
		emu.Store.Defines(),
	)
}

// AddProbe attaches a probe, sampled after every tick.
func (emu *Emulator) AddProbe(probe Probe) {
	emu.probes = append(emu.probes, probe)
}

// Reset the emulator to its power-on state.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Bus.Reset()
	emu.Leds.Reset()
	emu.Cpu.Reset()
	emu.Cpu.Settle()
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Pc returns the current program counter.
func (emu *Emulator) Pc() uint32 {
	return emu.Cpu.State().Pc
}

// LineNo returns the source line of the word at the program counter.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(int(emu.Pc() / emu.Cpu.Stride))
	if dbg.Opcode == nil {
		return 0
	}
	return dbg.LineNo
}

// Snapshot returns the current observable state.
func (emu *Emulator) Snapshot() Snapshot {
	return Snapshot{
		Tick:  emu.Cpu.Ticks,
		State: emu.Cpu.State(),
		Bus:   emu.Bus.Signals(),
		Leds:  emu.Leds.Snapshot(),
	}
}

// Tick performs a single clock tick and samples every probe.
func (emu *Emulator) Tick() (err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	// Combinational settle, then every register computes its next value
	// from the same snapshot.
	emu.Cpu.Settle()
	emu.Cpu.Eval()
	emu.Bus.Respond()

	emu.Bus.Clock()
	emu.Leds.Clock()
	emu.Cpu.Clock()
	emu.Cpu.Settle()

	if len(emu.probes) == 0 {
		return
	}

	snap := emu.Snapshot()
	for _, probe := range emu.probes {
		err = probe.Sample(snap)
		if err != nil {
			err = &ErrRuntime{Tick: snap.Tick, LineNo: emu.LineNo(), Err: err}
			return
		}
	}

	return
}

// Run performs ticks clock ticks, stopping at the first error.
func (emu *Emulator) Run(ticks int) (err error) {
	for range ticks {
		err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}

// Table renders the current state as a table.
func (emu *Emulator) Table() string {
	snap := emu.Snapshot()
	insn := cpu.Decode(snap.Bus.DatR)

	tw := table.NewWriter()
	tw.SetTitle(fmt.Sprintf("State@%d", snap.Tick))
	tw.AppendHeader(table.Row{"Signal", "Value"})
	tw.AppendRow(table.Row{"phase", snap.State.Phase})
	tw.AppendRow(table.Row{"pc", fmt.Sprintf("%08x", snap.State.Pc)})
	tw.AppendRow(table.Row{"dc", fmt.Sprintf("%07x", snap.State.Dc)})
	tw.AppendRow(table.Row{"stb", snap.Bus.Stb})
	tw.AppendRow(table.Row{"cyc", snap.Bus.Cyc})
	tw.AppendRow(table.Row{"ack", snap.Bus.Ack})
	tw.AppendRow(table.Row{"dat_r", fmt.Sprintf("%08x (%v)", snap.Bus.DatR, insn)})
	for n, on := range snap.Leds {
		tw.AppendRow(table.Row{io.Led(n), on})
	}
	tw.AppendSeparator()
	tw.AppendRow(table.Row{"instructions", emu.Cpu.Instructions})
	tw.AppendRow(table.Row{"transactions", emu.Bus.Transactions()})

	return tw.Render()
}

// String returns the CPU state and the bus lines.
func (emu *Emulator) String() string {
	return emu.Cpu.String() + fmt.Sprintf("% 5s: %v\n", "bus", emu.Bus.Signals())
}
