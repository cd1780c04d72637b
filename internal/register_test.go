package internal

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegister(t *testing.T) {
	assert := assert.New(t)

	var reg Register[uint32]

	assert.Equal(uint32(0), reg.Get())

	reg.Set(5)
	assert.Equal(uint32(0), reg.Get(), "write is not visible before the edge")
	assert.Equal(uint32(5), reg.Next())

	reg.Clock()
	assert.Equal(uint32(5), reg.Get())

	// No write: hold.
	reg.Clock()
	assert.Equal(uint32(5), reg.Get())

	reg.Set(7)
	reg.Set(9)
	reg.Clock()
	assert.Equal(uint32(9), reg.Get(), "last write in a tick wins")

	reg.Set(3)
	reg.Reset(1)
	assert.Equal(uint32(1), reg.Get())
	reg.Clock()
	assert.Equal(uint32(1), reg.Get(), "reset drops the staged value")
}

func TestRegister_Swap(t *testing.T) {
	assert := assert.New(t)

	var a, b Register[int]
	a.Reset(1)
	b.Reset(2)

	// Classic synchronous swap: both read before either commits.
	a.Set(b.Get())
	b.Set(a.Get())
	a.Clock()
	b.Clock()

	assert.Equal(2, a.Get())
	assert.Equal(1, b.Get())
}

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	one := map[string]int{"a": 1}
	two := map[string]int{"b": 2, "c": 3}

	got := maps.Collect(IterSeq2Concat(maps.All(one), nil, maps.All(two)))
	assert.Equal(map[string]int{"a": 1, "b": 2, "c": 3}, got)

	var keys []string
	for k := range IterSeq2Concat(maps.All(one), maps.All(two)) {
		keys = append(keys, k)
		break
	}
	assert.Equal([]string{"a"}, keys, "early stop")
}
