package qsim

import (
	"fmt"
)

/*
ExpandedMatrix is a virtual view of the 2^n×2^n matrix a gate represents on
the whole register. Nothing is stored beyond the descriptor and the index
mapper; entries are computed on request, and callers choose whether they
need one element, one row, or the whole matrix.
*/
type ExpandedMatrix struct {
	op       *Operation
	governor *ResourceGovernor
	metrics  *Metrics
}

/*
NewExpandedMatrix builds a view whose FullMatrix is admitted against the
default memory budget. Engine.Expand uses the engine's configured budget.
*/
func NewExpandedMatrix(desc *Descriptor, qubits []int, n int) (*ExpandedMatrix, error) {
	op, err := NewOperation(desc, qubits, n)
	if err != nil {
		return nil, err
	}

	return newExpandedMatrix(op, nil, nil), nil
}

func newExpandedMatrix(op *Operation, governor *ResourceGovernor, metrics *Metrics) *ExpandedMatrix {
	if governor == nil {
		governor = NewResourceGovernor(defaultMaxMatrixBytes)
	}

	if metrics == nil {
		metrics = NewMetrics()
	}

	return &ExpandedMatrix{op: op, governor: governor, metrics: metrics}
}

// Dim is the side length 2^n.
func (e *ExpandedMatrix) Dim() int {
	return e.op.Dim()
}

// Element returns the entry at (row, col).
func (e *ExpandedMatrix) Element(row, col int) (complex128, error) {
	dim := e.Dim()

	if row < 0 || row >= dim || col < 0 || col >= dim {
		return 0, fmt.Errorf("%w: (%d, %d) in %dx%d", ErrIndexOutOfBounds, row, col, dim, dim)
	}

	return e.element(row, col), nil
}

func (e *ExpandedMatrix) element(row, col int) complex128 {
	mapper := e.op.Mapper

	if mapper.Remainder(row) != mapper.Remainder(col) {
		return 0
	}

	return e.op.Descriptor.Element(mapper.Local(row), mapper.Local(col))
}

// Row materializes row i, computing columns across up to maxConcurrency workers.
func (e *ExpandedMatrix) Row(i, maxConcurrency int) ([]complex128, error) {
	pool, err := NewPool(maxConcurrency, e.metrics)
	if err != nil {
		return nil, err
	}

	dim := e.Dim()
	if i < 0 || i >= dim {
		return nil, fmt.Errorf("%w: row %d of %d", ErrIndexOutOfBounds, i, dim)
	}

	row := make([]complex128, dim)

	err = pool.Run(dim, func(lo, hi int) error {
		e.fillRow(row, i, lo, hi)
		return nil
	})

	return row, err
}

func (e *ExpandedMatrix) fillRow(row []complex128, i, lo, hi int) {
	for col := lo; col < hi; col++ {
		row[col] = e.element(i, col)
	}
}

/*
FullMatrix materializes all rows, splitting the rows across up to
maxConcurrency workers. It fails with ErrMatrixTooLarge instead of allocating
past the view's memory budget.
*/
func (e *ExpandedMatrix) FullMatrix(maxConcurrency int) (Matrix, error) {
	pool, err := NewPool(maxConcurrency, e.metrics)
	if err != nil {
		return nil, err
	}

	dim := e.Dim()

	if err := e.governor.Admit(dim); err != nil {
		return nil, err
	}

	full := NewMatrix(dim)

	err = pool.Run(dim, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			e.fillRow(full[i], i, 0, dim)
		}

		return nil
	})

	return full, err
}
