// Package bus models a synchronous request/acknowledge bus shared by a
// single initiator and a single responder.
//
// The initiator drives the address combinationally and the strobe (stb) and
// cycle (cyc) lines as registers. The responder owns the acknowledge (ack)
// register: while cyc is asserted, ack on the next tick follows the current
// stb; otherwise ack is forced low. Read data is valid whenever the address
// is, independent of ack.
package bus

import (
	"fmt"

	"github.com/ezrec/ledseq/internal"
)

// Responder is the read port of the device answering bus requests.
type Responder interface {
	// Read returns the word at adr. It is combinational and must not
	// change any state.
	Read(adr uint32) uint32
}

// ResponderFunc adapts a plain function to a Responder.
type ResponderFunc func(adr uint32) uint32

// Read calls fn(adr).
func (fn ResponderFunc) Read(adr uint32) uint32 {
	return fn(adr)
}

// Signals is a snapshot of the bus lines during one tick.
type Signals struct {
	Adr  uint32 // Address, driven by the initiator.
	Stb  bool   // Strobe.
	Cyc  bool   // Cycle in progress.
	Ack  bool   // Acknowledge, driven by the responder.
	DatR uint32 // Read data at Adr.
}

// String renders the bus lines, upper case when asserted.
func (sig Signals) String() string {
	line := func(name string, on bool) string {
		if on {
			return name
		}
		return "-"
	}
	return fmt.Sprintf("adr=%08x %s%s%s dat=%08x",
		sig.Adr, line("S", sig.Stb), line("C", sig.Cyc), line("A", sig.Ack), sig.DatR)
}

// Bus is the transactor between the control unit and the store.
type Bus struct {
	responder Responder

	adr uint32
	stb internal.Register[bool]
	cyc internal.Register[bool]
	ack internal.Register[bool]

	transactions uint64
}

// NewBus creates a bus in front of responder.
func NewBus(responder Responder) (bus *Bus) {
	bus = &Bus{responder: responder}
	bus.Reset()
	return
}

// Reset drops every line low and clears the statistics.
func (bus *Bus) Reset() {
	bus.adr = 0
	bus.stb.Reset(false)
	bus.cyc.Reset(false)
	bus.ack.Reset(false)
	bus.transactions = 0
}

// SetAddress drives the address lines. The address is combinational and is
// visible immediately.
func (bus *Bus) SetAddress(adr uint32) {
	bus.adr = adr
}

// Request stages the initiator's strobe and cycle lines for the next tick.
func (bus *Bus) Request(stb bool, cyc bool) {
	bus.stb.Set(stb)
	bus.cyc.Set(cyc)
}

// Respond stages the responder's acknowledge for the next tick.
func (bus *Bus) Respond() {
	if bus.cyc.Get() {
		bus.ack.Set(bus.stb.Get())
	} else {
		bus.ack.Set(false)
	}
}

// Clock latches every staged line.
func (bus *Bus) Clock() {
	if bus.ack.Next() && !bus.ack.Get() {
		bus.transactions++
	}

	bus.stb.Clock()
	bus.cyc.Clock()
	bus.ack.Clock()
}

// Ack reports the current acknowledge line.
func (bus *Bus) Ack() bool {
	return bus.ack.Get()
}

// Data returns the responder's word at the current address.
func (bus *Bus) Data() uint32 {
	return bus.responder.Read(bus.adr)
}

// Transactions returns the number of acknowledged transactions since reset.
func (bus *Bus) Transactions() uint64 {
	return bus.transactions
}

// Signals returns the current bus snapshot.
func (bus *Bus) Signals() Signals {
	return Signals{
		Adr:  bus.adr,
		Stb:  bus.stb.Get(),
		Cyc:  bus.cyc.Get(),
		Ack:  bus.ack.Get(),
		DatR: bus.Data(),
	}
}
