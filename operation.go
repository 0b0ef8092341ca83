package qsim

import (
	"fmt"
	"math/cmplx"
)

/*
Operation binds a descriptor to the qubits it acts on inside an n-qubit
register. Building one performs every dimensional and structural check, so
strategies can run their inner loops unchecked.
*/
type Operation struct {
	Descriptor *Descriptor
	Mapper     *IndexMapper
}

func NewOperation(desc *Descriptor, qubits []int, n int) (*Operation, error) {
	if desc == nil {
		return nil, ErrNilDescriptor
	}

	if len(qubits) != desc.Arity() {
		return nil, fmt.Errorf(
			"%w: %s addresses %d qubits, got %d",
			ErrArityMismatch, desc, desc.Arity(), len(qubits),
		)
	}

	mapper, err := NewIndexMapper(qubits, n)
	if err != nil {
		return nil, err
	}

	return &Operation{Descriptor: desc, Mapper: mapper}, nil
}

// Dim is the global dimension 2^n.
func (op *Operation) Dim() int {
	return 1 << op.Mapper.NumQubits()
}

/*
amplitude computes output index i of the operation applied to in by visiting
only the Dim() columns that share i's remainder.
*/
func (op *Operation) amplitude(in []complex128, i int) complex128 {
	local, remainder := op.Mapper.Split(i)

	var sum complex128

	for col := 0; col < op.Mapper.Dim(); col++ {
		if e := op.Descriptor.Element(local, col); e != 0 {
			sum += e * in[op.Mapper.Global(col, remainder)]
		}
	}

	return sum
}

/*
adjointAmplitude is the conjugate rule: it computes entry i of v·U† for a row
vector v, i.e. Σ_j v[j]·conj(U[i][j]).
*/
func (op *Operation) adjointAmplitude(in []complex128, i int) complex128 {
	local, remainder := op.Mapper.Split(i)

	var sum complex128

	for col := 0; col < op.Mapper.Dim(); col++ {
		if e := op.Descriptor.Element(local, col); e != 0 {
			sum += in[op.Mapper.Global(col, remainder)] * cmplx.Conj(e)
		}
	}

	return sum
}
