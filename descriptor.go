package qsim

import (
	"fmt"
)

// DescriptorKind tags the variant held by a Descriptor.
type DescriptorKind int

const (
	SingleQubit DescriptorKind = iota
	FullyControlled
	GeneralMultiQubit
	Oracle
)

func (k DescriptorKind) String() string {
	switch k {
	case SingleQubit:
		return "single-qubit"
	case FullyControlled:
		return "fully-controlled"
	case GeneralMultiQubit:
		return "general-multi-qubit"
	case Oracle:
		return "oracle"
	default:
		return fmt.Sprintf("DescriptorKind(%d)", int(k))
	}
}

/*
Descriptor is the compact local form of a gate: a base matrix plus, for the
controlled variants, the number of control qubits that gate it. The local
index space has Arity() bits; the control bits are the most significant ones
and the base matrix acts on the remaining low bits.

Descriptors are immutable once built. Use the New* constructors, which
validate the base matrix against the caller's tolerance.
*/
type Descriptor struct {
	kind       DescriptorKind
	base       Matrix
	targets    int
	controls   int
	truthTable *TruthTable
}

// NewSingleQubit wraps a 2×2 unitary.
func NewSingleQubit(m Matrix, tol float64) (*Descriptor, error) {
	targets, err := validateBase(m, tol)
	if err != nil {
		return nil, err
	}

	if targets != 1 {
		return nil, fmt.Errorf("%w: single-qubit base must be 2x2, got %dx%d", ErrArityMismatch, len(m), len(m))
	}

	return &Descriptor{kind: SingleQubit, base: m.Clone(), targets: 1}, nil
}

// NewFullyControlled wraps a 2×2 unitary that acts only when all controls are 1.
func NewFullyControlled(m Matrix, controls int, tol float64) (*Descriptor, error) {
	if controls < 1 {
		return nil, ErrEmptyControlList
	}

	targets, err := validateBase(m, tol)
	if err != nil {
		return nil, err
	}

	if targets != 1 {
		return nil, fmt.Errorf("%w: controlled base must be 2x2, got %dx%d", ErrArityMismatch, len(m), len(m))
	}

	if controls+1 > MaxQubits {
		return nil, fmt.Errorf("%w: %d", ErrTooManyControls, controls)
	}

	return &Descriptor{kind: FullyControlled, base: m.Clone(), targets: 1, controls: controls}, nil
}

// NewGeneralMultiQubit wraps an m×m unitary, m a power of two.
func NewGeneralMultiQubit(m Matrix, tol float64) (*Descriptor, error) {
	targets, err := validateBase(m, tol)
	if err != nil {
		return nil, err
	}

	return &Descriptor{kind: GeneralMultiQubit, base: m.Clone(), targets: targets}, nil
}

// NewOracle wraps an m×m unitary gated by a truth table over its controls.
func NewOracle(m Matrix, table *TruthTable, tol float64) (*Descriptor, error) {
	if table == nil {
		return nil, ErrEmptyControlList
	}

	targets, err := validateBase(m, tol)
	if err != nil {
		return nil, err
	}

	if table.Width()+targets > MaxQubits {
		return nil, fmt.Errorf("%w: %d", ErrTooManyControls, table.Width())
	}

	return &Descriptor{
		kind:       Oracle,
		base:       m.Clone(),
		targets:    targets,
		controls:   table.Width(),
		truthTable: table,
	}, nil
}

func (d *Descriptor) Kind() DescriptorKind {
	return d.kind
}

// Base returns a copy of the base matrix.
func (d *Descriptor) Base() Matrix {
	return d.base.Clone()
}

func (d *Descriptor) Controls() int {
	return d.controls
}

func (d *Descriptor) Targets() int {
	return d.targets
}

// Arity is the number of qubits the descriptor addresses.
func (d *Descriptor) Arity() int {
	return d.controls + d.targets
}

// Dim is the side length of the local matrix, 2^Arity.
func (d *Descriptor) Dim() int {
	return 1 << d.Arity()
}

// TruthTable is nil for every kind but Oracle.
func (d *Descriptor) TruthTable() *TruthTable {
	return d.truthTable
}

// Active reports whether the control bits of a local index enable the base matrix.
func (d *Descriptor) Active(local int) bool {
	pattern := local >> d.targets

	switch d.kind {
	case FullyControlled:
		return pattern == 1<<d.controls-1
	case Oracle:
		return d.truthTable.Contains(pattern)
	default:
		return true
	}
}

/*
Element is the local matrix entry at (row, col). Entries whose control
patterns differ are zero; an inactive control pattern gives identity.
*/
func (d *Descriptor) Element(row, col int) complex128 {
	if d.controls == 0 {
		return d.base[row][col]
	}

	if row>>d.targets != col>>d.targets {
		return 0
	}

	if !d.Active(row) {
		if row == col {
			return 1
		}

		return 0
	}

	mask := 1<<d.targets - 1

	return d.base[row&mask][col&mask]
}

// Local materializes the full 2^Arity local matrix.
func (d *Descriptor) Local() Matrix {
	dim := d.Dim()
	out := NewMatrix(dim)

	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			out[i][j] = d.Element(i, j)
		}
	}

	return out
}

func (d *Descriptor) String() string {
	return fmt.Sprintf("%s(arity=%d, controls=%d)", d.kind, d.Arity(), d.controls)
}
