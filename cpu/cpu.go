package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/ledseq/bus"
	"github.com/ezrec/ledseq/internal"
	"github.com/ezrec/ledseq/io"
)

// Phase is the control unit state.
type Phase int

//go:generate go tool stringer -linecomment -type=Phase
const (
	PHASE_FETCH   = Phase(0) // fetch
	PHASE_PROCESS = Phase(1) // process
)

var _cpu_defines = map[string]string{
	"DELAY_MAX":  fmt.Sprintf("%#x", DELAY_MAX),
	"DELAY_BITS": fmt.Sprintf("%v", DELAY_BITS),
}

// State is the latched register state of the control unit.
type State struct {
	Phase Phase
	Pc    uint32 // Program counter.
	Dc    uint32 // Delay counter, DELAY_BITS wide.
}

// Inputs are the bus lines sampled by the control unit during a tick.
type Inputs struct {
	Ack  bool   // Bus acknowledge.
	Data uint32 // Bus read data at Pc.
}

// Effect is what the control unit drives for the next tick, other than its
// own registers.
type Effect struct {
	Request bool // Drive stb and cyc.

	Write bool   // Write Value to Led.
	Led   io.Led // Output channel to write.
	Value bool   // Output value to write.
}

// Transition computes the next state and the effect of one tick. stride is
// the number of addresses per program word.
func Transition(state State, in Inputs, stride uint32) (next State, effect Effect) {
	next = state

	switch state.Phase {
	case PHASE_FETCH:
		if !in.Ack {
			effect.Request = true
			return
		}
		next.Dc = 0
		next.Phase = PHASE_PROCESS
	case PHASE_PROCESS:
		next.Pc = state.Pc + stride
		next.Phase = PHASE_FETCH

		insn := Decode(in.Data)
		switch insn.Kind {
		case KIND_SENTINEL:
			next.Pc = 0
		case KIND_DELAY:
			if state.Dc != insn.Target {
				next.Pc = state.Pc
				next.Dc = (state.Dc + 1) & DELAY_MASK
				next.Phase = PHASE_PROCESS
			}
		case KIND_SET:
			effect.Write = true
			effect.Led = insn.Channel
			effect.Value = insn.Value
		case KIND_NOP:
			// advance only
		}
	}

	return
}

// Cpu is the fetch/execute control unit.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Bus    *bus.Bus // Bus to the program store.
	Leds   *io.Leds // Output channels.
	Stride uint32   // Addresses per program word.

	Ticks        int // Ticks since reset.
	Instructions int // Instructions completed since reset.

	phase internal.Register[Phase]
	pc    internal.Register[uint32]
	dc    internal.Register[uint32]
}

// NewCpu creates a control unit fetching from bus and driving leds.
func NewCpu(bus *bus.Bus, leds *io.Leds, stride uint32) (cpu *Cpu) {
	if stride == 0 {
		stride = 1
	}

	cpu = &Cpu{
		Bus:    bus,
		Leds:   leds,
		Stride: stride,
	}

	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset the CPU state to FETCH at address zero.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.phase.Reset(PHASE_FETCH)
	cpu.pc.Reset(0)
	cpu.dc.Reset(0)
	cpu.Ticks = 0
	cpu.Instructions = 0
}

// State returns the latched register state.
func (cpu *Cpu) State() State {
	return State{
		Phase: cpu.phase.Get(),
		Pc:    cpu.pc.Get(),
		Dc:    cpu.dc.Get(),
	}
}

// Settle drives the combinational outputs: the bus address follows Pc.
func (cpu *Cpu) Settle() {
	cpu.Bus.SetAddress(cpu.pc.Get())
}

// Eval stages the next register values from the current bus lines.
func (cpu *Cpu) Eval() {
	state := cpu.State()
	in := Inputs{
		Ack:  cpu.Bus.Ack(),
		Data: cpu.Bus.Data(),
	}

	next, effect := Transition(state, in, cpu.Stride)

	if cpu.Verbose && state.Phase == PHASE_PROCESS && state.Dc == 0 {
		log.Printf("%08x: %08x %v", state.Pc, in.Data, Decode(in.Data))
	}

	if state.Phase == PHASE_PROCESS && next.Phase == PHASE_FETCH {
		cpu.Instructions++
	}

	cpu.phase.Set(next.Phase)
	cpu.pc.Set(next.Pc)
	cpu.dc.Set(next.Dc)

	cpu.Bus.Request(effect.Request, effect.Request)
	if effect.Write {
		cpu.Leds.Set(effect.Led, effect.Value)
	}
}

// Clock latches the staged register values.
func (cpu *Cpu) Clock() {
	cpu.phase.Clock()
	cpu.pc.Clock()
	cpu.dc.Clock()
	cpu.Ticks++
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	state := cpu.State()
	regs := []string{"phase", "pc", "dc", "leds"}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "phase":
			strval = state.Phase.String()
		case "pc":
			strval = fmt.Sprintf("%04X_%04X", state.Pc>>16, state.Pc&0xffff)
		case "dc":
			strval = fmt.Sprintf("%03X_%04X", state.Dc>>16, state.Dc&0xffff)
		case "leds":
			strval = cpu.Leds.String()
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}
