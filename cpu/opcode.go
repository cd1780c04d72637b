package cpu

import (
	"fmt"

	"github.com/ezrec/ledseq/io"
)

// Kind is the class of a decoded instruction word.
type Kind int

//go:generate go tool stringer -linecomment -type=Kind
const (
	KIND_SENTINEL = Kind(0) // return
	KIND_DELAY    = Kind(1) // delay
	KIND_SET      = Kind(2) // set
	KIND_NOP      = Kind(3) // nop
)

// Instruction word encodings.
const (
	RED_ON  = uint32(0x9) // red on
	RED_OFF = uint32(0x1) // red off
	GRN_ON  = uint32(0xA) // green on
	GRN_OFF = uint32(0x2) // green off
	BLU_ON  = uint32(0xB) // blue on
	BLU_OFF = uint32(0x3) // blue off
	RETURN  = uint32(0x0) // return
	NOP     = uint32(0x8) // nop

	// ERASED also restarts the program.
	ERASED = io.ERASED

	DELAY_OPCODE = uint32(0x4)
	DELAY_SHIFT  = 4
	DELAY_BITS   = 32 - DELAY_SHIFT
	DELAY_MASK   = uint32(1)<<DELAY_BITS - 1
	DELAY_MAX    = DELAY_MASK

	setValueBit = uint32(0x8)
	setLedMask  = uint32(0x7)
)

// Instruction is the decoded form of a 32-bit program word.
type Instruction struct {
	Kind    Kind
	Target  uint32 // Delay length in ticks, for KIND_DELAY.
	Channel io.Led // Output channel, for KIND_SET.
	Value   bool   // Output value, for KIND_SET.
}

// ledCode maps the low three bits of a set word to its channel.
var ledCode = map[uint32]io.Led{
	0x1: io.LED_RED,
	0x2: io.LED_GREEN,
	0x3: io.LED_BLUE,
}

// Decode decodes a program word. Every word decodes to some instruction.
func Decode(word uint32) (insn Instruction) {
	switch {
	case word == RETURN || word == ERASED:
		insn.Kind = KIND_SENTINEL
	case word&0xF == DELAY_OPCODE:
		insn.Kind = KIND_DELAY
		insn.Target = word >> DELAY_SHIFT
	default:
		led, ok := ledCode[word&setLedMask]
		if !ok {
			insn.Kind = KIND_NOP
			break
		}
		insn.Kind = KIND_SET
		insn.Channel = led
		insn.Value = (word & setValueBit) != 0
	}

	return
}

// MakeDelay encodes a delay of cycles ticks. Only the low 28 bits of cycles
// are kept.
func MakeDelay(cycles uint32) uint32 {
	return DELAY_OPCODE | (cycles << DELAY_SHIFT)
}

// MakeSet encodes an output channel write. An invalid led encodes as NOP.
func MakeSet(led io.Led, value bool) (word uint32) {
	if !led.Valid() {
		return NOP
	}

	word = uint32(led) + 1
	if value {
		word |= setValueBit
	}
	return
}

// Word re-encodes the instruction. Decode(insn.Word()) == insn.
func (insn Instruction) Word() uint32 {
	switch insn.Kind {
	case KIND_DELAY:
		return MakeDelay(insn.Target)
	case KIND_SET:
		return MakeSet(insn.Channel, insn.Value)
	case KIND_NOP:
		return NOP
	default:
		return RETURN
	}
}

// String returns the assembly language form of the instruction.
func (insn Instruction) String() string {
	switch insn.Kind {
	case KIND_DELAY:
		return fmt.Sprintf("delay %v", insn.Target)
	case KIND_SET:
		state := "off"
		if insn.Value {
			state = "on"
		}
		return fmt.Sprintf("%v %v", insn.Channel, state)
	default:
		return insn.Kind.String()
	}
}
