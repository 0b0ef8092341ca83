package qsim

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand/v2"

	"github.com/davecgh/go-spew/spew"
)

const testTolerance = 1e-9

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func randomComplex(rng *rand.Rand) complex128 {
	return complex(rng.NormFloat64(), rng.NormFloat64())
}

// randomUnitary orthonormalizes the rows of a random complex matrix.
func randomUnitary(rng *rand.Rand, dim int) Matrix {
	m := NewMatrix(dim)

	for i := range m {
		for j := range m[i] {
			m[i][j] = randomComplex(rng)
		}

		for k := 0; k < i; k++ {
			var proj complex128
			for j := range m[i] {
				proj += cmplx.Conj(m[k][j]) * m[i][j]
			}

			for j := range m[i] {
				m[i][j] -= proj * m[k][j]
			}
		}

		var norm float64
		for _, v := range m[i] {
			norm += real(v)*real(v) + imag(v)*imag(v)
		}

		scale := complex(1/math.Sqrt(norm), 0)
		for j := range m[i] {
			m[i][j] *= scale
		}
	}

	return m
}

func randomStatevector(rng *rand.Rand, n int) Statevector {
	sv := make(Statevector, 1<<n)

	var norm float64
	for i := range sv {
		sv[i] = randomComplex(rng)
		norm += real(sv[i])*real(sv[i]) + imag(sv[i])*imag(sv[i])
	}

	scale := complex(1/math.Sqrt(norm), 0)
	for i := range sv {
		sv[i] *= scale
	}

	return sv
}

// randomDensity mixes a few random pure states with random weights.
func randomDensity(rng *rand.Rand, n int) DensityMatrix {
	dim := 1 << n
	rho := NewMatrix(dim)
	weights := []float64{rng.Float64(), rng.Float64(), rng.Float64()}
	total := weights[0] + weights[1] + weights[2]

	for _, w := range weights {
		pure := PureDensity(randomStatevector(rng, n))

		for i := range rho {
			for j := range rho[i] {
				rho[i][j] += complex(w/total, 0) * pure[i][j]
			}
		}
	}

	return DensityMatrix(rho)
}

// randomQubits picks k distinct qubits of an n-qubit register in random order.
func randomQubits(rng *rand.Rand, n, k int) []int {
	return rng.Perm(n)[:k]
}

// kron returns a ⊗ b.
func kron(a, b Matrix) Matrix {
	out := NewMatrix(len(a) * len(b))

	for i := range a {
		for j := range a {
			for k := range b {
				for l := range b {
					out[i*len(b)+k][j*len(b)+l] = a[i][j] * b[k][l]
				}
			}
		}
	}

	return out
}

/*
ShouldApproxEqualState is a convey assertion comparing two statevectors
within testTolerance. Failures dump both vectors.
*/
func ShouldApproxEqualState(actual interface{}, expected ...interface{}) string {
	got, ok := actual.(Statevector)
	if !ok {
		return fmt.Sprintf("expected a Statevector, got %T", actual)
	}

	want, ok := expected[0].(Statevector)
	if !ok {
		return fmt.Sprintf("expected a Statevector to compare with, got %T", expected[0])
	}

	if got.ApproxEqual(want, testTolerance) {
		return ""
	}

	return "statevectors differ:\ngot:  " + spew.Sdump(got) + "want: " + spew.Sdump(want)
}

// ShouldApproxEqualMatrix compares matrices within testTolerance.
func ShouldApproxEqualMatrix(actual interface{}, expected ...interface{}) string {
	toMatrix := func(v interface{}) (Matrix, bool) {
		switch m := v.(type) {
		case Matrix:
			return m, true
		case DensityMatrix:
			return Matrix(m), true
		default:
			return nil, false
		}
	}

	got, ok := toMatrix(actual)
	if !ok {
		return fmt.Sprintf("expected a Matrix, got %T", actual)
	}

	want, ok := toMatrix(expected[0])
	if !ok {
		return fmt.Sprintf("expected a Matrix to compare with, got %T", expected[0])
	}

	if got.ApproxEqual(want, testTolerance) {
		return ""
	}

	return "matrices differ:\ngot:  " + spew.Sdump(got) + "want: " + spew.Sdump(want)
}
