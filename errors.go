package qsim

import (
	"errors"
	"fmt"
)

/*
Sentinel errors returned by the engine. Every failure is detected before any
numeric work begins and is matched by callers with errors.Is; structural gate
errors additionally arrive wrapped in a *GateError that names the offending
operation and qubit.
*/
var (
	// Configuration errors.
	ErrInvalidConcurrency  = errors.New("qsim: max concurrency must be positive")
	ErrUnknownStrategy     = errors.New("qsim: unknown transformation strategy")
	ErrStrategyUnsupported = errors.New("qsim: strategy does not support descriptor")
	ErrInvalidTolerance    = errors.New("qsim: tolerance must be positive")

	// Dimensional errors.
	ErrInvalidDimension = errors.New("qsim: dimension is not a power of two or does not match register")
	ErrArityMismatch    = errors.New("qsim: qubit list length does not match descriptor arity")
	ErrNonSquareMatrix  = errors.New("qsim: matrix is not square")
	ErrIndexOutOfBounds = errors.New("qsim: index out of bounds")
	ErrMatrixTooLarge   = errors.New("qsim: dense matrix exceeds memory budget")
	ErrEmptyQubitList   = errors.New("qsim: qubit list is empty")
	ErrNilDescriptor    = errors.New("qsim: nil descriptor")

	// Structural gate errors.
	ErrRepeatedQubit          = errors.New("qsim: qubit appears more than once")
	ErrQubitOutOfRange        = errors.New("qsim: qubit index out of range")
	ErrNonUnitaryBaseMatrix   = errors.New("qsim: base matrix is not unitary")
	ErrEmptyControlList       = errors.New("qsim: control list is empty")
	ErrInvalidTruthTableEntry = errors.New("qsim: truth table entry is empty or not a bit string")
	ErrTruthTableTooWide      = errors.New("qsim: truth table entry wider than control count")
	ErrTooManyControls        = errors.New("qsim: too many oracle controls")
	ErrNilGate                = errors.New("qsim: nil gate")
)

/*
GateError carries the context of a structural failure found while validating
or extracting a gate.
*/
type GateError struct {
	Op    string
	Qubit int
	Err   error
}

func (e *GateError) Error() string {
	if e.Qubit >= 0 {
		return fmt.Sprintf("%s: qubit %d: %v", e.Op, e.Qubit, e.Err)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *GateError) Unwrap() error {
	return e.Err
}

func gateError(op string, qubit int, err error) error {
	return &GateError{Op: op, Qubit: qubit, Err: err}
}
