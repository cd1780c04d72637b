package trace

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ezrec/ledseq/emulator"
	ledio "github.com/ezrec/ledseq/io"
)

// Edge is a change of an output channel.
type Edge struct {
	Tick  int  // Tick at which the new value was first seen.
	Value bool // New value.
}

// Recorder is a Probe keeping every output channel edge.
type Recorder struct {
	Edges [ledio.LED_COUNT][]Edge

	started bool
	last    [ledio.LED_COUNT]bool
	ticks   int
}

var _ emulator.Probe = (*Recorder)(nil)

// Sample implements emulator.Probe.
func (rec *Recorder) Sample(snap emulator.Snapshot) error {
	for n, on := range snap.Leds {
		if !rec.started || on != rec.last[n] {
			if rec.started || on {
				rec.Edges[n] = append(rec.Edges[n], Edge{Tick: snap.Tick, Value: on})
			}
		}
		rec.last[n] = on
	}
	rec.started = true
	rec.ticks = snap.Tick

	return nil
}

// rises returns the ticks of the rising edges of led.
func (rec *Recorder) rises(led ledio.Led) (ticks []int) {
	for _, edge := range rec.Edges[led] {
		if edge.Value {
			ticks = append(ticks, edge.Tick)
		}
	}
	return
}

// Period returns the ticks between the last two rising edges of led.
func (rec *Recorder) Period(led ledio.Led) (period int, ok bool) {
	rises := rec.rises(led)
	if len(rises) < 2 {
		return
	}

	period = rises[len(rises)-1] - rises[len(rises)-2]
	ok = true
	return
}

// High returns how long led stayed on after its second to last rising edge.
func (rec *Recorder) High(led ledio.Led) (high int, ok bool) {
	edges := rec.Edges[led]
	seen := false
	for n := len(edges) - 1; n >= 0; n-- {
		if !edges[n].Value {
			continue
		}
		if !seen {
			seen = true
			continue
		}
		if n+1 < len(edges) {
			high = edges[n+1].Tick - edges[n].Tick
			ok = true
		}
		return
	}
	return
}

// Summary renders the edge statistics of every channel as a table.
func (rec *Recorder) Summary() string {
	tw := table.NewWriter()
	tw.SetTitle(fmt.Sprintf("Outputs@%d", rec.ticks))
	tw.AppendHeader(table.Row{"Channel", "Edges", "Period", "High", "Value"})
	for n := range ledio.LED_COUNT {
		led := ledio.Led(n)
		row := table.Row{led, len(rec.Edges[n]), "-", "-", rec.last[n]}
		if period, ok := rec.Period(led); ok {
			row[2] = period
		}
		if high, ok := rec.High(led); ok {
			row[3] = high
		}
		tw.AppendRow(row)
	}

	return tw.Render()
}
