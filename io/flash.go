package io

import (
	"encoding/binary"
	"fmt"
	"iter"
	"maps"
)

// FLASH_DEFAULT_OFFSET is where program images are placed in a serial flash
// shared with the FPGA bitstream.
const FLASH_DEFAULT_OFFSET = 2 * 1024 * 1024

// Flash is a byte-addressed read-only store backed by a window of a serial
// flash part. Addresses are relative to Offset; erased bytes read as 0xff.
type Flash struct {
	Offset uint32 // Start of the window in the flash part.
	End    uint32 // End of the window (exclusive).
	Data   []byte // Programmed bytes, starting at Offset.
}

var _ Store = (*Flash)(nil)

// NewFlash creates a Flash window [offset, end) programmed with words,
// little-endian.
func NewFlash(offset uint32, end uint32, words []uint32) (flash *Flash, err error) {
	if end <= offset {
		err = ErrStoreRange
		return
	}
	if uint64(len(words))*WORD_BYTES > uint64(end-offset) {
		err = ErrStoreOverflow
		return
	}

	data := make([]byte, 0, len(words)*WORD_BYTES)
	for _, word := range words {
		data = binary.LittleEndian.AppendUint32(data, word)
	}

	flash = &Flash{
		Offset: offset,
		End:    end,
		Data:   data,
	}

	return
}

// Capacity returns the number of whole words in the window.
func (flash *Flash) Capacity() int {
	return int((flash.End - flash.Offset) / WORD_BYTES)
}

// Stride is the size of a word: the Flash is addressed by byte.
func (flash *Flash) Stride() uint32 {
	return WORD_BYTES
}

// readByte returns one byte of the window, 0xff when erased or outside.
func (flash *Flash) readByte(adr uint64) byte {
	if adr >= uint64(flash.End-flash.Offset) || adr >= uint64(len(flash.Data)) {
		return 0xff
	}
	return flash.Data[adr]
}

// Read returns the little-endian word starting at byte address adr.
func (flash *Flash) Read(adr uint32) (value uint32) {
	for n := range WORD_BYTES {
		value |= uint32(flash.readByte(uint64(adr)+uint64(n))) << (8 * n)
	}
	return
}

// Defines returns the assembler equates for the Flash.
func (flash *Flash) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"ROM_SIZE":     fmt.Sprintf("%v", flash.Capacity()),
		"ROM_STRIDE":   fmt.Sprintf("%v", flash.Stride()),
		"FLASH_OFFSET": fmt.Sprintf("%#x", flash.Offset),
	})
}
