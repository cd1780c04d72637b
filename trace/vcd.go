// Package trace records the outputs of a running emulator.
//
// Vcd writes a value change dump that waveform viewers can load. Recorder
// keeps the output channel edges in memory and reports their periods.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"

	"github.com/ezrec/ledseq/cpu"
	"github.com/ezrec/ledseq/emulator"
	ledio "github.com/ezrec/ledseq/io"
)

// vcdVar is one traced signal.
type vcdVar struct {
	name  string
	width int
	value func(snap *emulator.Snapshot) uint64
}

func bit(on bool) uint64 {
	if on {
		return 1
	}
	return 0
}

var vcdVars = []vcdVar{
	{"led_r", 1, func(snap *emulator.Snapshot) uint64 { return bit(snap.Leds[ledio.LED_RED]) }},
	{"led_g", 1, func(snap *emulator.Snapshot) uint64 { return bit(snap.Leds[ledio.LED_GREEN]) }},
	{"led_b", 1, func(snap *emulator.Snapshot) uint64 { return bit(snap.Leds[ledio.LED_BLUE]) }},
	{"stb", 1, func(snap *emulator.Snapshot) uint64 { return bit(snap.Bus.Stb) }},
	{"cyc", 1, func(snap *emulator.Snapshot) uint64 { return bit(snap.Bus.Cyc) }},
	{"ack", 1, func(snap *emulator.Snapshot) uint64 { return bit(snap.Bus.Ack) }},
	{"state", 1, func(snap *emulator.Snapshot) uint64 { return bit(snap.State.Phase == cpu.PHASE_PROCESS) }},
	{"pc", 32, func(snap *emulator.Snapshot) uint64 { return uint64(snap.State.Pc) }},
	{"dc", cpu.DELAY_BITS, func(snap *emulator.Snapshot) uint64 { return uint64(snap.State.Dc) }},
	{"dat_r", 32, func(snap *emulator.Snapshot) uint64 { return uint64(snap.Bus.DatR) }},
}

// vcdId returns the short identifier of the n'th variable.
func vcdId(n int) string {
	return string(rune('!' + n))
}

// Vcd is a Probe writing a value change dump. Only changed values are
// written after the first sample.
type Vcd struct {
	Timescale string // Time unit, for example "1 ns".
	Period    uint64 // Time units per tick.

	w       *bufio.Writer
	started bool
	values  []uint64
}

var _ emulator.Probe = (*Vcd)(nil)

// NewVcd creates a Vcd writing to w.
func NewVcd(w io.Writer, timescale string, period uint64) (vcd *Vcd) {
	if period == 0 {
		period = 1
	}

	vcd = &Vcd{
		Timescale: timescale,
		Period:    period,
		w:         bufio.NewWriter(w),
		values:    make([]uint64, len(vcdVars)),
	}

	return
}

// header writes the declarations.
func (vcd *Vcd) header() (err error) {
	_, err = fmt.Fprintf(vcd.w, "$version ledseq $end\n$timescale %v $end\n$scope module top $end\n", vcd.Timescale)
	if err != nil {
		return
	}
	for n, v := range vcdVars {
		_, err = fmt.Fprintf(vcd.w, "$var wire %v %v %v $end\n", v.width, vcdId(n), v.name)
		if err != nil {
			return
		}
	}
	_, err = fmt.Fprintf(vcd.w, "$upscope $end\n$enddefinitions $end\n")
	return
}

// change writes a single value change.
func (vcd *Vcd) change(n int, value uint64) (err error) {
	if vcdVars[n].width == 1 {
		_, err = fmt.Fprintf(vcd.w, "%v%v\n", value, vcdId(n))
	} else {
		_, err = fmt.Fprintf(vcd.w, "b%v %v\n", strconv.FormatUint(value, 2), vcdId(n))
	}
	return
}

// dump writes the declarations and every value at the time of snap.
func (vcd *Vcd) dump(snap *emulator.Snapshot) (err error) {
	err = vcd.header()
	if err != nil {
		return
	}
	_, err = fmt.Fprintf(vcd.w, "#%v\n$dumpvars\n", uint64(snap.Tick)*vcd.Period)
	if err != nil {
		return
	}
	for n, v := range vcdVars {
		vcd.values[n] = v.value(snap)
		err = vcd.change(n, vcd.values[n])
		if err != nil {
			return
		}
	}
	_, err = fmt.Fprintf(vcd.w, "$end\n")
	vcd.started = true
	return
}

// Start dumps the state before the first tick, usually the reset state at
// time zero. It does nothing once a sample has been written.
func (vcd *Vcd) Start(snap emulator.Snapshot) (err error) {
	if vcd.started {
		return
	}
	return vcd.dump(&snap)
}

// Sample implements emulator.Probe. Without a Start, the first sample holds
// the initial dump.
func (vcd *Vcd) Sample(snap emulator.Snapshot) (err error) {
	if !vcd.started {
		return vcd.dump(&snap)
	}

	stamped := false
	for n, v := range vcdVars {
		value := v.value(&snap)
		if value == vcd.values[n] {
			continue
		}
		if !stamped {
			_, err = fmt.Fprintf(vcd.w, "#%v\n", uint64(snap.Tick)*vcd.Period)
			if err != nil {
				return
			}
			stamped = true
		}
		vcd.values[n] = value
		err = vcd.change(n, value)
		if err != nil {
			return
		}
	}

	return
}

// Flush writes any buffered output.
func (vcd *Vcd) Flush() error {
	return vcd.w.Flush()
}

var timescaleRe = regexp.MustCompile(`^(1|10|100) ?(s|ms|us|ns|ps|fs)$`)

var unitSeconds = map[string]float64{
	"s":  1,
	"ms": 1e-3,
	"us": 1e-6,
	"ns": 1e-9,
	"ps": 1e-12,
	"fs": 1e-15,
}

// PeriodOf returns the number of timescale units in one tick of a clock
// running at freqMHz, never less than one. A period too long to count in
// the timescale is an error.
func PeriodOf(freqMHz float64, timescale string) (period uint64, err error) {
	match := timescaleRe.FindStringSubmatch(timescale)
	if match == nil || freqMHz <= 0 {
		err = ErrTimescale(timescale)
		return
	}

	scale, _ := strconv.ParseFloat(match[1], 64)
	unit := scale * unitSeconds[match[2]]

	units := math.Round(1 / (freqMHz * 1e6) / unit)
	if math.IsNaN(units) || units >= math.Exp2(64) {
		err = ErrTimescale(timescale)
		return
	}

	period = uint64(units)
	if period == 0 {
		period = 1
	}

	return
}
