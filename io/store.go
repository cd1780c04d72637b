// Package io provides the devices around the control unit: the read-only
// program stores (Rom, Flash), the output latches (Leds), and the program
// image reader and writer.
package io

import (
	"iter"
)

// WORD_BYTES is the size of one instruction word in an image.
const WORD_BYTES = 4

// Store is a read-only, fixed-size program store.
type Store interface {
	// Read returns the word at adr. It is combinational; unprogrammed
	// and out of range locations read as 0xffffffff.
	Read(adr uint32) uint32
	// Stride is the address increment between consecutive words.
	Stride() uint32
	// Capacity is the number of words the store can hold.
	Capacity() int
	// Defines returns the assembler equates describing the store.
	Defines() iter.Seq2[string, string]
}

// ERASED is the value read from unprogrammed store locations.
const ERASED = ^uint32(0)
