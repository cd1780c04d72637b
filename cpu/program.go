package cpu

import (
	"fmt"
	"io"
	"iter"
	"strings"
)

// Opcode represents a line of assembled code with its source location and
// generated words.
type Opcode struct {
	LineNo int      // Source line, zero for disassembled words.
	Ip     int      // Word index of the first code.
	Words  []string // Source words.
	Codes  []uint32 // Generated program words.
}

type Program struct {
	Opcodes []Opcode
}

type Debug struct {
	*Opcode
	Index int
}

// Disassemble builds a Program from a raw image, one opcode per word.
func Disassemble(words []uint32) (prog *Program) {
	prog = &Program{
		Opcodes: make([]Opcode, 0, len(words)),
	}

	for ip, word := range words {
		prog.Opcodes = append(prog.Opcodes, Opcode{
			Ip:    ip,
			Words: strings.Fields(Decode(word).String()),
			Codes: []uint32{word},
		})
	}

	return
}

// Debug finds the opcode that generated the word at index ip.
func (prog *Program) Debug(ip int) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if ip >= op.Ip && ip < op.Ip+len(op.Codes) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  ip - op.Ip,
			}
			break
		}
	}

	return
}

// Binary returns the program image.
func (prog *Program) Binary() (bins []uint32) {
	for _, code := range prog.Words() {
		bins = append(bins, code)
	}

	return
}

// Words iterates over the program words by index.
func (prog *Program) Words() iter.Seq2[int, uint32] {
	return func(yield func(ip int, code uint32) bool) {
		for _, op := range prog.Opcodes {
			for n, code := range op.Codes {
				if !yield(op.Ip+n, code) {
					return
				}
			}
		}
	}
}

// Listing writes a disassembly of the program. Addresses are scaled by
// stride.
func (prog *Program) Listing(w io.Writer, stride uint32) (err error) {
	if stride == 0 {
		stride = 1
	}

	for ip, code := range prog.Words() {
		dbg := prog.Debug(ip)
		source := ""
		if dbg.Opcode != nil && dbg.LineNo != 0 && dbg.Index == 0 {
			source = fmt.Sprintf("; %v: %v", dbg.LineNo, strings.Join(dbg.Words, " "))
		}
		line := fmt.Sprintf("%08x: %08x  %-16v%v", uint32(ip)*stride, code, Decode(code), source)
		_, err = fmt.Fprintln(w, strings.TrimRight(line, " "))
		if err != nil {
			return
		}
	}

	return
}
