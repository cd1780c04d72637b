package emulator

import (
	"errors"
	"maps"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ledseq/cpu"
	"github.com/ezrec/ledseq/io"
)

// Ticks taken by one instruction with no delay.
const insnTicks = 4

type sampler struct {
	snaps []Snapshot
	err   error
}

func (s *sampler) Sample(snap Snapshot) error {
	s.snaps = append(s.snaps, snap)
	return s.err
}

func newEmulator(t *testing.T, words ...uint32) *Emulator {
	rom, err := io.NewRom(words, 16)
	if err != nil {
		t.Fatal(err)
	}
	emu := NewEmulator(rom)
	emu.Reset()
	return emu
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := newEmulator(t, cpu.BLU_ON)

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.Equal(uint32(1), emu.Cpu.Stride)
	assert.Equal(0, emu.Ticks())
	assert.Equal(cpu.State{Phase: cpu.PHASE_FETCH}, emu.Snapshot().State)
}

func TestEmulator_Defines(t *testing.T) {
	assert := assert.New(t)

	emu := newEmulator(t, cpu.BLU_ON)
	defines := maps.Collect(emu.Defines())

	assert.Equal("3", defines["LED_COUNT"])
	assert.Equal("16", defines["ROM_SIZE"])
	assert.Equal("0xfffffff", defines["DELAY_MAX"])
}

func TestEmulator_Blink(t *testing.T) {
	assert := assert.New(t)

	emu := newEmulator(t, cpu.BLU_ON, cpu.MakeDelay(4), cpu.BLU_OFF, cpu.RETURN)
	probe := &sampler{}
	emu.AddProbe(probe)

	err := emu.Run(100)
	assert.NoError(err)
	assert.Len(probe.snaps, 100)

	// Rising and falling edges of the blue channel.
	var rise, fall []int
	prev := false
	for _, snap := range probe.snaps {
		on := snap.Leds[io.LED_BLUE]
		if on && !prev {
			rise = append(rise, snap.Tick)
		}
		if !on && prev {
			fall = append(fall, snap.Tick)
		}
		prev = on
		assert.False(snap.Leds[io.LED_RED])
		assert.False(snap.Leds[io.LED_GREEN])
	}

	assert.Equal([]int{4, 24, 44, 64, 84}, rise)
	assert.Equal([]int{16, 36, 56, 76, 96}, fall)
}

func TestEmulator_Erased(t *testing.T) {
	assert := assert.New(t)

	emu := newEmulator(t, cpu.ERASED)
	probe := &sampler{}
	emu.AddProbe(probe)

	err := emu.Run(1000)
	assert.NoError(err)

	for _, snap := range probe.snaps {
		assert.Equal(uint32(0), snap.State.Pc)
		assert.Equal([io.LED_COUNT]bool{}, snap.Leds)
	}
	assert.Equal(1000/insnTicks, emu.Cpu.Instructions)
}

func TestEmulator_ProbeError(t *testing.T) {
	assert := assert.New(t)

	emu := newEmulator(t, cpu.NOP)
	emu.Program = cpu.Disassemble([]uint32{cpu.NOP})

	broken := errors.New("broken")
	probe := &sampler{err: broken}
	emu.AddProbe(probe)

	err := emu.Run(10)
	assert.ErrorIs(err, broken)

	var re *ErrRuntime
	assert.True(errors.As(err, &re))
	assert.Equal(1, re.Tick)
	assert.Len(probe.snaps, 1)
}

func TestEmulator_LineNo(t *testing.T) {
	assert := assert.New(t)

	asm := &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader("red on\n\nred off\nreturn\n"))
	assert.NoError(err)

	rom, err := io.NewRom(prog.Binary(), 0)
	assert.NoError(err)

	emu := NewEmulator(rom)
	emu.Program = prog
	emu.Reset()

	assert.Equal(1, emu.LineNo())
	assert.NoError(emu.Run(insnTicks))
	assert.Equal(3, emu.LineNo())
	assert.NoError(emu.Run(insnTicks))
	assert.Equal(4, emu.LineNo())
	assert.NoError(emu.Run(insnTicks))
	assert.Equal(1, emu.LineNo())
}

func TestEmulator_Reset(t *testing.T) {
	assert := assert.New(t)

	emu := newEmulator(t, cpu.GRN_ON, cpu.NOP)
	assert.NoError(emu.Run(2 * insnTicks))
	assert.True(emu.Leds.Get(io.LED_GREEN))
	assert.NotZero(emu.Bus.Transactions())

	emu.Reset()
	assert.False(emu.Leds.Get(io.LED_GREEN))
	assert.Equal(0, emu.Ticks())
	assert.Zero(emu.Bus.Transactions())
	assert.Equal(uint32(0), emu.Pc())
}

func TestEmulator_Table(t *testing.T) {
	assert := assert.New(t)

	emu := newEmulator(t, cpu.BLU_ON, cpu.NOP)
	assert.NoError(emu.Run(insnTicks))

	text := emu.Table()
	assert.Contains(text, "State@4")
	assert.Contains(text, "00000001")
	assert.Contains(text, "00000008 (nop)")
	assert.Contains(text, "blue")
	assert.Contains(text, "instructions")
}

func TestEmulator_String(t *testing.T) {
	assert := assert.New(t)

	emu := newEmulator(t, cpu.BLU_ON)

	text := emu.String()
	assert.Contains(text, "phase: fetch")
	assert.Contains(text, "  bus: adr=00000000 --- dat=0000000b")
}
