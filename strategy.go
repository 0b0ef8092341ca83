package qsim

import (
	"fmt"
	"strings"
)

/*
StrategyKind is the caller's policy for how a statevector transform is
computed. Every strategy produces the same result within numerical
tolerance; they differ in memory and compute profile.
*/
type StrategyKind int

const (
	// Auto picks Direct when the descriptor allows it, else ElementByElement.
	Auto StrategyKind = iota
	// Direct applies a 2×2 base matrix to amplitude pairs without any view.
	Direct
	// FullMatrix materializes the N×N matrix once. O(N²) time and memory.
	FullMatrix
	// RowByRow materializes one row per output amplitude. O(N²) time, O(N) memory.
	RowByRow
	// ElementByElement visits only the nonzero columns of each row. O(N·m) time.
	ElementByElement
)

var strategyNames = map[StrategyKind]string{
	Auto:             "auto",
	Direct:           "direct",
	FullMatrix:       "full-matrix",
	RowByRow:         "row-by-row",
	ElementByElement: "element-by-element",
}

func (k StrategyKind) String() string {
	if name, ok := strategyNames[k]; ok {
		return name
	}

	return fmt.Sprintf("StrategyKind(%d)", int(k))
}

// ParseStrategy accepts the names produced by StrategyKind.String.
func ParseStrategy(name string) (StrategyKind, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	for kind, candidate := range strategyNames {
		if candidate == name {
			return kind, nil
		}
	}

	return Auto, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

/*
Strategy computes the statevector that results from applying op to in. The
input is never modified. pool bounds how many workers compute disjoint
ranges of the output.
*/
type Strategy interface {
	Apply(op *Operation, in Statevector, pool *Pool) (Statevector, error)
}

// StrategyFor returns the implementation selected by kind.
func StrategyFor(kind StrategyKind) (Strategy, error) {
	switch kind {
	case Auto:
		return autoStrategy{}, nil
	case Direct:
		return directStrategy{}, nil
	case FullMatrix:
		return fullMatrixStrategy{}, nil
	case RowByRow:
		return rowByRowStrategy{}, nil
	case ElementByElement:
		return elementStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(kind))
	}
}

// Resolve maps Auto onto the fastest strategy that supports desc.
func Resolve(kind StrategyKind, desc *Descriptor) StrategyKind {
	if kind != Auto {
		return kind
	}

	if supportsDirect(desc) {
		return Direct
	}

	return ElementByElement
}

func supportsDirect(desc *Descriptor) bool {
	return desc.Kind() == SingleQubit || desc.Kind() == FullyControlled
}

type autoStrategy struct{}

func (autoStrategy) Apply(op *Operation, in Statevector, pool *Pool) (Statevector, error) {
	strategy, err := StrategyFor(Resolve(Auto, op.Descriptor))
	if err != nil {
		return nil, err
	}

	return strategy.Apply(op, in, pool)
}

func checkInput(op *Operation, in Statevector) error {
	if len(in) != op.Dim() {
		return fmt.Errorf(
			"%w: statevector has %d amplitudes, register needs %d",
			ErrInvalidDimension, len(in), op.Dim(),
		)
	}

	return nil
}
