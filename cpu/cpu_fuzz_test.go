package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func FuzzDecode(f *testing.F) {
	for _, word := range []uint32{RETURN, ERASED, NOP, RED_ON, RED_OFF, GRN_ON, GRN_OFF, BLU_ON, BLU_OFF, MakeDelay(5), 0xC, 0x12345678} {
		f.Add(word)
	}

	f.Fuzz(func(t *testing.T, word uint32) {
		assert := assert.New(t)

		insn := Decode(word)
		assert.Equal(insn, Decode(word))

		switch insn.Kind {
		case KIND_SENTINEL:
			assert.True(word == 0 || word == 0xFFFFFFFF)
		case KIND_DELAY:
			assert.Equal(uint32(4), word&0xF)
			assert.Equal(word>>4, insn.Target)
			assert.Equal(word, insn.Word())
		case KIND_SET:
			assert.NotEqual(uint32(4), word&0xF)
			assert.Equal(uint32(insn.Channel)+1, word&7)
			assert.Equal(word&8 != 0, insn.Value)
		case KIND_NOP:
			assert.NotEqual(uint32(4), word&0xF)
			assert.Contains([]uint32{0, 4, 5, 6, 7}, word&7)
		default:
			t.Fatalf("word %08x decoded to %v", word, insn.Kind)
		}

		// The re-encoded word decodes to the same instruction.
		assert.Equal(insn, Decode(insn.Word()))

		// A process step never errors and always lands in a valid state.
		next, _ := Transition(State{Phase: PHASE_PROCESS, Pc: 5, Dc: 0}, Inputs{Data: word}, 1)
		assert.Contains([]Phase{PHASE_FETCH, PHASE_PROCESS}, next.Phase)
		assert.LessOrEqual(next.Dc, DELAY_MASK)
	})
}

func FuzzDelayRoundTrip(f *testing.F) {
	f.Add(uint32(0))
	f.Add(DELAY_MAX)

	f.Fuzz(func(t *testing.T, n uint32) {
		n &= DELAY_MASK
		insn := Decode(MakeDelay(n))
		assert.Equal(t, KIND_DELAY, insn.Kind)
		assert.Equal(t, n, insn.Target)
	})
}
