package io

import (
	"fmt"
	"iter"
	"maps"
	"math/bits"
	"slices"
)

// Rom is a word-addressed read-only memory.
type Rom struct {
	Data []uint32 // Program image.
	Size int      // Capacity in words; zero means len(Data).
}

var _ Store = (*Rom)(nil)

// NewRom creates a Rom holding a copy of data, with room for capacity
// words. A zero capacity sizes the Rom to the data.
func NewRom(data []uint32, capacity int) (rom *Rom, err error) {
	if capacity < 0 {
		err = ErrStoreRange
		return
	}
	if capacity != 0 && len(data) > capacity {
		err = ErrStoreOverflow
		return
	}

	rom = &Rom{
		Data: slices.Clone(data),
		Size: capacity,
	}

	return
}

// Capacity returns the number of addressable words.
func (rom *Rom) Capacity() int {
	if rom.Size == 0 {
		return len(rom.Data)
	}
	return rom.Size
}

// AddrWidth returns the number of address bits needed to reach every word
// and one past the end.
func (rom *Rom) AddrWidth() int {
	return bits.Len(uint(rom.Capacity()))
}

// Stride is one: the Rom is addressed by word.
func (rom *Rom) Stride() uint32 {
	return 1
}

// Read returns the word at adr.
func (rom *Rom) Read(adr uint32) uint32 {
	if uint64(adr) >= uint64(len(rom.Data)) {
		return ERASED
	}
	return rom.Data[adr]
}

// Defines returns the assembler equates for the Rom.
func (rom *Rom) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"ROM_SIZE":       fmt.Sprintf("%v", rom.Capacity()),
		"ROM_STRIDE":     fmt.Sprintf("%v", rom.Stride()),
		"ROM_ADDR_WIDTH": fmt.Sprintf("%v", rom.AddrWidth()),
	})
}
