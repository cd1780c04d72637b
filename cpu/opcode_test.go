package cpu

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ledseq/io"
)

func TestDecode(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		word uint32
		insn Instruction
	}){
		{0x00000000, Instruction{Kind: KIND_SENTINEL}},
		{0xFFFFFFFF, Instruction{Kind: KIND_SENTINEL}},
		{0x00000004, Instruction{Kind: KIND_DELAY, Target: 0}},
		{0x00000054, Instruction{Kind: KIND_DELAY, Target: 5}},
		{0xFFFFFFF4, Instruction{Kind: KIND_DELAY, Target: DELAY_MAX}},
		{0x0000000B, Instruction{Kind: KIND_SET, Channel: io.LED_BLUE, Value: true}},
		{0x00000003, Instruction{Kind: KIND_SET, Channel: io.LED_BLUE, Value: false}},
		{0x0000000A, Instruction{Kind: KIND_SET, Channel: io.LED_GREEN, Value: true}},
		{0x00000002, Instruction{Kind: KIND_SET, Channel: io.LED_GREEN, Value: false}},
		{0x00000009, Instruction{Kind: KIND_SET, Channel: io.LED_RED, Value: true}},
		{0x00000001, Instruction{Kind: KIND_SET, Channel: io.LED_RED, Value: false}},
		{0x00000008, Instruction{Kind: KIND_NOP}},
		{0x00000005, Instruction{Kind: KIND_NOP}},
		{0x00000007, Instruction{Kind: KIND_NOP}},
		{0x00000006, Instruction{Kind: KIND_NOP}},
		// Upper bits are ignored for set and no-op words.
		{0x1230000B, Instruction{Kind: KIND_SET, Channel: io.LED_BLUE, Value: true}},
		{0x12300010, Instruction{Kind: KIND_NOP}},
		// Bit 3 set with a delay opcode in the low nibble is not a delay.
		{0x0000000C, Instruction{Kind: KIND_NOP}},
	}

	for _, entry := range table {
		assert.Equal(entry.insn, Decode(entry.word), "%08x", entry.word)
	}
}

func TestEncodings(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(RED_ON, MakeSet(io.LED_RED, true))
	assert.Equal(RED_OFF, MakeSet(io.LED_RED, false))
	assert.Equal(GRN_ON, MakeSet(io.LED_GREEN, true))
	assert.Equal(GRN_OFF, MakeSet(io.LED_GREEN, false))
	assert.Equal(BLU_ON, MakeSet(io.LED_BLUE, true))
	assert.Equal(BLU_OFF, MakeSet(io.LED_BLUE, false))

	// Channels past blue would alias delay and nop encodings.
	for _, led := range []io.Led{io.Led(-1), io.Led(3), io.Led(4), io.Led(7)} {
		for _, value := range []bool{false, true} {
			word := MakeSet(led, value)
			assert.Equal(NOP, word, "%v %v", led, value)
			assert.Equal(KIND_NOP, Decode(word).Kind, "%v %v", led, value)
		}
	}

	assert.Equal(uint32(0x54), MakeDelay(5))
	assert.Equal(uint32(0xA4), MakeDelay(10))
	assert.Equal(uint32(0xFFFFFFF4), MakeDelay(DELAY_MAX))
	// Bits past the delay field are dropped.
	assert.Equal(uint32(0x14), MakeDelay(0x10000001))
}

func TestDelayRoundTrip(t *testing.T) {
	assert := assert.New(t)

	rand := rand.New(rand.NewSource(1))

	values := []uint32{0, 1, 2, 0xFFFF, 0x7FFFFFF, DELAY_MAX - 1, DELAY_MAX}
	for range 10000 {
		values = append(values, rand.Uint32()&DELAY_MASK)
	}

	for _, n := range values {
		insn := Decode(MakeDelay(n))
		assert.Equal(KIND_DELAY, insn.Kind, "%v", n)
		assert.Equal(n, insn.Target, "%v", n)
	}
}

func TestInstruction_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("return", Decode(RETURN).String())
	assert.Equal("return", Decode(ERASED).String())
	assert.Equal("nop", Decode(NOP).String())
	assert.Equal("delay 10", Decode(MakeDelay(10)).String())
	assert.Equal("blue on", Decode(BLU_ON).String())
	assert.Equal("green off", Decode(GRN_OFF).String())
	assert.Equal("red on", Decode(RED_ON).String())
	assert.Equal("Kind(9)", Kind(9).String())
	assert.Equal("fetch", PHASE_FETCH.String())
	assert.Equal("process", PHASE_PROCESS.String())
	assert.Equal("Phase(2)", Phase(2).String())
}

func TestInstruction_Word(t *testing.T) {
	assert := assert.New(t)

	for _, word := range []uint32{RED_ON, RED_OFF, GRN_ON, GRN_OFF, BLU_ON, BLU_OFF, RETURN, NOP, MakeDelay(1234)} {
		assert.Equal(word, Decode(word).Word(), "%08x", word)
	}
}
