// Package internal holds helpers shared by the simulation packages.
package internal

// Register is a clocked storage element.
//
// Reads always see the value latched at the last clock edge. Writes only
// stage the value for the next edge, so every register in a tick is computed
// from the same snapshot. A register that is not written holds its value.
type Register[T any] struct {
	cur  T
	next T
}

// Get returns the value latched at the last clock edge.
func (r *Register[T]) Get() T {
	return r.cur
}

// Set stages value for the next clock edge.
func (r *Register[T]) Set(value T) {
	r.next = value
}

// Next returns the value that will be latched at the next clock edge.
func (r *Register[T]) Next() T {
	return r.next
}

// Clock latches the staged value.
func (r *Register[T]) Clock() {
	r.cur = r.next
}

// Reset forces both the latched and the staged value.
func (r *Register[T]) Reset(value T) {
	r.cur = value
	r.next = value
}
