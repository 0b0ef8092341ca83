package qsim

import (
	"fmt"
	"math"
	"math/cmplx"
)

// MaxQubits bounds the register size of a dense state.
const MaxQubits = 30

/*
Statevector holds the 2^n complex amplitudes of a pure register state. Bit q
of an index is the value of qubit q. The engine never mutates a Statevector
it is handed; transforms always return a new one.
*/
type Statevector []complex128

// NewStatevector returns the n-qubit basis state |index⟩.
func NewStatevector(n, index int) (Statevector, error) {
	if n < 1 || n > MaxQubits {
		return nil, fmt.Errorf("%w: %d qubits", ErrInvalidDimension, n)
	}

	if index < 0 || index >= 1<<n {
		return nil, fmt.Errorf("%w: basis index %d", ErrIndexOutOfBounds, index)
	}

	sv := make(Statevector, 1<<n)
	sv[index] = 1

	return sv, nil
}

// NumQubits derives n from the amplitude count.
func (s Statevector) NumQubits() (int, error) {
	return qubitsForDim(len(s))
}

func (s Statevector) Clone() Statevector {
	out := make(Statevector, len(s))
	copy(out, s)

	return out
}

// Norm returns the sum of squared magnitudes.
func (s Statevector) Norm() float64 {
	var total float64

	for _, amplitude := range s {
		prob := cmplx.Abs(amplitude)
		total += prob * prob
	}

	return total
}

// IsNormalized reports whether the squared norm is 1 within tol.
func (s Statevector) IsNormalized(tol float64) bool {
	return math.Abs(s.Norm()-1) <= tol
}

// ApproxEqual compares amplitudes element-wise within tol.
func (s Statevector) ApproxEqual(other Statevector, tol float64) bool {
	if len(s) != len(other) {
		return false
	}

	for i := range s {
		if cmplx.Abs(s[i]-other[i]) > tol {
			return false
		}
	}

	return true
}

/*
DensityMatrix is the N×N representation of a possibly mixed register state.
The same index convention as Statevector applies to rows and columns.
*/
type DensityMatrix Matrix

// PureDensity returns |ψ⟩⟨ψ|.
func PureDensity(sv Statevector) DensityMatrix {
	rho := NewMatrix(len(sv))

	for i, a := range sv {
		for j, b := range sv {
			rho[i][j] = a * cmplx.Conj(b)
		}
	}

	return DensityMatrix(rho)
}

// NumQubits derives n from the side length, which must be square.
func (d DensityMatrix) NumQubits() (int, error) {
	if !Matrix(d).IsSquare() {
		return 0, ErrNonSquareMatrix
	}

	return qubitsForDim(len(d))
}

func (d DensityMatrix) Clone() DensityMatrix {
	return DensityMatrix(Matrix(d).Clone())
}

func (d DensityMatrix) Trace() complex128 {
	var trace complex128

	for i := range d {
		trace += d[i][i]
	}

	return trace
}

// IsHermitian reports whether d equals its conjugate transpose within tol.
func (d DensityMatrix) IsHermitian(tol float64) bool {
	for i := range d {
		for j := i; j < len(d); j++ {
			if cmplx.Abs(d[i][j]-cmplx.Conj(d[j][i])) > tol {
				return false
			}
		}
	}

	return true
}

func (d DensityMatrix) ApproxEqual(other DensityMatrix, tol float64) bool {
	return Matrix(d).ApproxEqual(Matrix(other), tol)
}

func qubitsForDim(dim int) (int, error) {
	if !isPowerOfTwo(dim) || dim < 2 {
		return 0, fmt.Errorf("%w: size %d", ErrInvalidDimension, dim)
	}

	n := log2(dim)
	if n > MaxQubits {
		return 0, fmt.Errorf("%w: %d qubits", ErrInvalidDimension, n)
	}

	return n, nil
}
