package qsim

import (
	"fmt"
	"math/bits"
	"math/cmplx"
)

// Matrix is a dense, row-major complex matrix.
type Matrix [][]complex128

// NewMatrix allocates a zeroed dim×dim matrix backed by one contiguous slice.
func NewMatrix(dim int) Matrix {
	backing := make([]complex128, dim*dim)
	m := make(Matrix, dim)

	for i := range m {
		m[i] = backing[i*dim : (i+1)*dim : (i+1)*dim]
	}

	return m
}

// Identity returns the dim×dim identity matrix.
func Identity(dim int) Matrix {
	m := NewMatrix(dim)

	for i := range m {
		m[i][i] = 1
	}

	return m
}

// Dim returns the side length of a square matrix.
func (m Matrix) Dim() int {
	return len(m)
}

// IsSquare reports whether every row has as many columns as there are rows.
func (m Matrix) IsSquare() bool {
	for _, row := range m {
		if len(row) != len(m) {
			return false
		}
	}

	return true
}

// Clone returns a deep copy.
func (m Matrix) Clone() Matrix {
	if m == nil {
		return nil
	}

	out := NewMatrix(len(m))

	for i, row := range m {
		copy(out[i], row)
	}

	return out
}

// Dagger returns the conjugate transpose.
func (m Matrix) Dagger() Matrix {
	out := NewMatrix(len(m))

	for i, row := range m {
		for j, v := range row {
			out[j][i] = cmplx.Conj(v)
		}
	}

	return out
}

// Mul returns m·other. Both must be square and of equal size.
func (m Matrix) Mul(other Matrix) Matrix {
	dim := len(m)
	out := NewMatrix(dim)

	for i := 0; i < dim; i++ {
		for k := 0; k < dim; k++ {
			a := m[i][k]
			if a == 0 {
				continue
			}

			for j := 0; j < dim; j++ {
				out[i][j] += a * other[k][j]
			}
		}
	}

	return out
}

// MulVec returns m·v.
func (m Matrix) MulVec(v []complex128) []complex128 {
	out := make([]complex128, len(m))

	for i, row := range m {
		out[i] = dot(row, v)
	}

	return out
}

// ApproxEqual compares element-wise within tol.
func (m Matrix) ApproxEqual(other Matrix, tol float64) bool {
	if len(m) != len(other) {
		return false
	}

	for i := range m {
		if len(m[i]) != len(other[i]) {
			return false
		}

		for j := range m[i] {
			if cmplx.Abs(m[i][j]-other[i][j]) > tol {
				return false
			}
		}
	}

	return true
}

/*
IsUnitary reports whether m·m† equals the identity within tol. The check is
done without allocating the product.
*/
func (m Matrix) IsUnitary(tol float64) bool {
	if len(m) == 0 || !m.IsSquare() {
		return false
	}

	for i := range m {
		for j := range m {
			var sum complex128

			for k := range m {
				sum += m[i][k] * cmplx.Conj(m[j][k])
			}

			if i == j {
				sum -= 1
			}

			if cmplx.Abs(sum) > tol {
				return false
			}
		}
	}

	return true
}

/*
validateBase checks that m can serve as the base matrix of a descriptor:
square, side a power of two, and unitary within tol. It returns log2 of the
side length.
*/
func validateBase(m Matrix, tol float64) (int, error) {
	if len(m) == 0 || !m.IsSquare() {
		return 0, ErrNonSquareMatrix
	}

	if !isPowerOfTwo(len(m)) {
		return 0, fmt.Errorf("%w: side %d", ErrInvalidDimension, len(m))
	}

	if tol <= 0 {
		return 0, fmt.Errorf("%w: got %g", ErrInvalidTolerance, tol)
	}

	if !m.IsUnitary(tol) {
		return 0, ErrNonUnitaryBaseMatrix
	}

	return log2(len(m)), nil
}

func dot(a, b []complex128) complex128 {
	var sum complex128

	for i, v := range a {
		if v != 0 {
			sum += v * b[i]
		}
	}

	return sum
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func log2(n int) int {
	return bits.TrailingZeros(uint(n))
}
