package io

import (
	"github.com/ezrec/ledseq/internal"
)

// Led names one of the output latches.
type Led int

//go:generate go tool stringer -linecomment -type=Led
const (
	LED_RED   = Led(0) // red
	LED_GREEN = Led(1) // green
	LED_BLUE  = Led(2) // blue
)

// LED_COUNT is the number of output latches.
const LED_COUNT = 3

// Valid reports whether led names an output latch.
func (led Led) Valid() bool {
	return led >= 0 && led < LED_COUNT
}

// Leds are the three output latches. Writes take effect on the next clock.
type Leds struct {
	latch [LED_COUNT]internal.Register[bool]
}

// Reset turns every latch off.
func (leds *Leds) Reset() {
	for n := range leds.latch {
		leds.latch[n].Reset(false)
	}
}

// Set stages value for led. Writes to an invalid led are ignored.
func (leds *Leds) Set(led Led, value bool) {
	if !led.Valid() {
		return
	}
	leds.latch[led].Set(value)
}

// Get returns the current value of led, or false for an invalid led.
func (leds *Leds) Get(led Led) bool {
	if !led.Valid() {
		return false
	}
	return leds.latch[led].Get()
}

// Clock latches staged values.
func (leds *Leds) Clock() {
	for n := range leds.latch {
		leds.latch[n].Clock()
	}
}

// Snapshot returns every latch, indexed by Led.
func (leds *Leds) Snapshot() (state [LED_COUNT]bool) {
	for n := range leds.latch {
		state[n] = leds.latch[n].Get()
	}
	return
}

// String renders the latches as "rgb", upper case when lit.
func (leds *Leds) String() string {
	text := []byte("rgb")
	for n, on := range leds.Snapshot() {
		if on {
			text[n] -= 'a' - 'A'
		}
	}
	return string(text)
}
