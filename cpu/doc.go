// Package cpu implements the control unit and assembler for the LED
// sequencer.
//
// The control unit is a two state machine. In FETCH it holds a bus request
// until the store acknowledges; in PROCESS it decodes the word on the bus and
// either writes an output channel, waits out a delay, restarts at address
// zero, or does nothing, then advances the program counter.
//
// Every 32-bit word decodes to some instruction:
//
//	0x00000000, 0xFFFFFFFF  return to address zero
//	xxxxxxx4                delay for word>>4 ticks
//	v011 (low nibble)       blue output = v
//	v010                    green output = v
//	v001                    red output = v
//	anything else           no operation
//
// The assembler provides a small assembly language for these words,
// supporting macros, equates, and compile-time expression evaluation.
package cpu
