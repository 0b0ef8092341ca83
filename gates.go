package qsim

import (
	"math"
	"math/cmplx"
)

/*
Standard single-qubit base matrices. Each call returns a fresh Matrix so
callers may modify the result.
*/

// Hadamard is 1/√2 [[1, 1], [1, -1]].
func Hadamard() Matrix {
	h := complex(1/math.Sqrt2, 0)
	return Matrix{{h, h}, {h, -h}}
}

func PauliX() Matrix {
	return Matrix{{0, 1}, {1, 0}}
}

func PauliY() Matrix {
	return Matrix{{0, -1i}, {1i, 0}}
}

func PauliZ() Matrix {
	return Matrix{{1, 0}, {0, -1}}
}

func SGate() Matrix {
	return Phase(math.Pi / 2)
}

func TGate() Matrix {
	return Phase(math.Pi / 4)
}

// Phase is diag(1, e^{iθ}).
func Phase(theta float64) Matrix {
	return Matrix{{1, 0}, {0, cmplx.Exp(complex(0, theta))}}
}

func RX(theta float64) Matrix {
	c := complex(math.Cos(theta/2), 0)
	s := complex(0, -math.Sin(theta/2))

	return Matrix{{c, s}, {s, c}}
}

func RY(theta float64) Matrix {
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)

	return Matrix{{c, -s}, {s, c}}
}

func RZ(theta float64) Matrix {
	phase := cmplx.Exp(complex(0, theta/2))
	return Matrix{{cmplx.Conj(phase), 0}, {0, phase}}
}

// Swap is the two-qubit exchange gate.
func Swap() Matrix {
	return Matrix{
		{1, 0, 0, 0},
		{0, 0, 1, 0},
		{0, 1, 0, 0},
		{0, 0, 0, 1},
	}
}
