package qsim

import (
	"errors"
	"fmt"
)

/*
extraction accumulates the wrappers seen on the way down to the leaf.
Unconditional controls and oracle controls are kept apart because the
qubit list places all of the former before all of the latter, whatever
the nesting order.
*/
type extraction struct {
	n              int
	controls       []int
	oracleControls []int
	table          *TruthTable
}

/*
Extract flattens a gate tree into a descriptor and its ordered qubit list
(unconditional controls, then oracle controls, then targets) for an n-qubit
register. Every qubit, wrapper and the leaf matrix are validated; tol is the
unitarity tolerance for the leaf matrix.
*/
func Extract(gate Gate, n int, tol float64) (*Descriptor, []int, error) {
	if n < 1 || n > MaxQubits {
		return nil, nil, fmt.Errorf("%w: %d qubits", ErrInvalidDimension, n)
	}

	x := &extraction{n: n}

	leaf, err := x.fold(gate, 0)
	if err != nil {
		return nil, nil, err
	}

	qubits := make([]int, 0, len(x.controls)+len(x.oracleControls)+len(leaf.Targets))
	qubits = append(qubits, x.controls...)
	qubits = append(qubits, x.oracleControls...)
	qubits = append(qubits, leaf.Targets...)

	if err := validateQubits(qubits, n); err != nil {
		return nil, nil, err
	}

	desc, err := x.descriptor(leaf, tol)
	if err != nil {
		return nil, nil, err
	}

	return desc, qubits, nil
}

func (x *extraction) fold(gate Gate, depth int) (*TargetGate, error) {
	if depth > x.n {
		return nil, gateError("extract", -1, fmt.Errorf("%w: nesting deeper than register", ErrTooManyControls))
	}

	switch g := gate.(type) {
	case *TargetGate:
		if g == nil {
			return nil, gateError("extract", -1, ErrNilGate)
		}

		if len(g.Targets) == 0 {
			return nil, gateError(g.Name, -1, ErrEmptyQubitList)
		}

		return g, nil
	case *ControlledGate:
		if g == nil {
			return nil, gateError("controlled", -1, ErrNilGate)
		}

		if len(g.Controls) == 0 {
			return nil, gateError("controlled", -1, ErrEmptyControlList)
		}

		x.controls = append(x.controls, g.Controls...)

		return x.fold(g.Gate, depth+1)
	case *OracleGate:
		if g == nil {
			return nil, gateError("oracle", -1, ErrNilGate)
		}

		if len(g.Controls) == 0 {
			return nil, gateError("oracle", -1, ErrEmptyControlList)
		}

		table, err := NewTruthTable(len(g.Controls), g.TruthTable)
		if err != nil {
			return nil, gateError("oracle", -1, err)
		}

		if x.table != nil {
			if table, err = x.table.Concat(table); err != nil {
				return nil, gateError("oracle", -1, err)
			}
		}

		x.table = table
		x.oracleControls = append(x.oracleControls, g.Controls...)

		return x.fold(g.Gate, depth+1)
	default:
		return nil, gateError("extract", -1, ErrNilGate)
	}
}

func (x *extraction) descriptor(leaf *TargetGate, tol float64) (*Descriptor, error) {
	targets, err := validateBase(leaf.Matrix, tol)
	if err != nil {
		return nil, gateError(leaf.Name, -1, err)
	}

	if targets != len(leaf.Targets) {
		return nil, gateError(leaf.Name, -1, fmt.Errorf(
			"%w: %dx%d matrix on %d targets",
			ErrArityMismatch, len(leaf.Matrix), len(leaf.Matrix), len(leaf.Targets),
		))
	}

	var desc *Descriptor

	switch {
	case x.table == nil && len(x.controls) == 0 && targets == 1:
		desc, err = NewSingleQubit(leaf.Matrix, tol)
	case x.table == nil && len(x.controls) == 0:
		desc, err = NewGeneralMultiQubit(leaf.Matrix, tol)
	case x.table == nil && targets == 1:
		desc, err = NewFullyControlled(leaf.Matrix, len(x.controls), tol)
	default:
		desc, err = x.oracle(leaf.Matrix, tol)
	}

	if err != nil {
		return nil, gateError(leaf.Name, -1, err)
	}

	return desc, nil
}

/*
oracle folds the unconditional controls into the accumulated truth table as
leading ones. A multi-target leaf under plain controls has no table yet and
becomes an oracle whose only entry is all ones.
*/
func (x *extraction) oracle(m Matrix, tol float64) (*Descriptor, error) {
	k := len(x.controls)

	if x.table == nil {
		table, err := AllOnes(k)
		if err != nil {
			return nil, err
		}

		return NewOracle(m, table, tol)
	}

	table := x.table

	if k > 0 {
		if k+table.Width() > maxOracleControls {
			return nil, fmt.Errorf("%w: %d", ErrTooManyControls, k+table.Width())
		}

		var err error
		if table, err = table.Prefix(uint32(1)<<k-1, k); err != nil {
			return nil, err
		}
	}

	return NewOracle(m, table, tol)
}

// validateQubits reports the first out-of-range or repeated qubit.
func validateQubits(qubits []int, n int) error {
	seen := make(map[int]struct{}, len(qubits))

	for _, q := range qubits {
		if q < 0 || q >= n {
			return gateError("extract", q, ErrQubitOutOfRange)
		}

		if _, ok := seen[q]; ok {
			return gateError("extract", q, ErrRepeatedQubit)
		}

		seen[q] = struct{}{}
	}

	return nil
}

// IsStructural reports whether err is one of the gate-structure failures.
func IsStructural(err error) bool {
	var gateErr *GateError
	return errors.As(err, &gateErr)
}
