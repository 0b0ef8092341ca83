package qsim

import (
	"fmt"
)

/*
IndexMapper translates between global register indices and the local index
space of a gate addressing an ordered list of qubits.

A global index g splits into a local index, made of the bits of g at the
listed positions, and a remainder, which is g with those positions cleared.
The first listed qubit is the most significant local bit. The list may be in
any order and need not be contiguous.
*/
type IndexMapper struct {
	qubits []int
	n      int
	mask   int
	shifts []int // shifts[j] is the local bit position of qubits[j]
	offset []int // offset[l] is local index l scattered to the listed positions
}

func NewIndexMapper(qubits []int, n int) (*IndexMapper, error) {
	if n < 1 || n > MaxQubits {
		return nil, fmt.Errorf("%w: %d qubits", ErrInvalidDimension, n)
	}

	if len(qubits) == 0 {
		return nil, ErrEmptyQubitList
	}

	if len(qubits) > n {
		return nil, fmt.Errorf("%w: %d qubits in a %d-qubit register", ErrArityMismatch, len(qubits), n)
	}

	k := len(qubits)
	mapper := &IndexMapper{
		qubits: append([]int(nil), qubits...),
		n:      n,
		shifts: make([]int, k),
		offset: make([]int, 1<<k),
	}

	for j, q := range qubits {
		if q < 0 || q >= n {
			return nil, gateError("map", q, ErrQubitOutOfRange)
		}

		bit := 1 << q
		if mapper.mask&bit != 0 {
			return nil, gateError("map", q, ErrRepeatedQubit)
		}

		mapper.mask |= bit
		mapper.shifts[j] = k - 1 - j
	}

	for local := range mapper.offset {
		mapper.offset[local] = mapper.scatter(local)
	}

	return mapper, nil
}

// Qubits returns a copy of the ordered qubit list.
func (m *IndexMapper) Qubits() []int {
	return append([]int(nil), m.qubits...)
}

// NumQubits is the register size n.
func (m *IndexMapper) NumQubits() int {
	return m.n
}

// Arity is the number of listed qubits.
func (m *IndexMapper) Arity() int {
	return len(m.qubits)
}

// Dim is the local dimension 2^Arity.
func (m *IndexMapper) Dim() int {
	return len(m.offset)
}

// Mask has exactly the listed qubit positions set.
func (m *IndexMapper) Mask() int {
	return m.mask
}

// Local gathers the listed bits of global into a local index.
func (m *IndexMapper) Local(global int) int {
	local := 0

	for j, q := range m.qubits {
		local |= (global >> q & 1) << m.shifts[j]
	}

	return local
}

// Remainder clears the listed bits of global.
func (m *IndexMapper) Remainder(global int) int {
	return global &^ m.mask
}

// Split returns Local(global) and Remainder(global).
func (m *IndexMapper) Split(global int) (local, remainder int) {
	return m.Local(global), m.Remainder(global)
}

// Global is the inverse of Split. Bits of remainder inside the mask are ignored.
func (m *IndexMapper) Global(local, remainder int) int {
	return remainder&^m.mask | m.offset[local]
}

func (m *IndexMapper) scatter(local int) int {
	global := 0

	for j, q := range m.qubits {
		global |= (local >> m.shifts[j] & 1) << q
	}

	return global
}
