package qsim

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestExpandedMatrix(t *testing.T) {
	Convey("Given a CNOT with control qubit 0 and target qubit 1", t, func() {
		desc, err := NewFullyControlled(PauliX(), 1, testTolerance)
		So(err, ShouldBeNil)

		view, err := NewExpandedMatrix(desc, []int{0, 1}, 2)
		So(err, ShouldBeNil)

		expected := Matrix{
			{1, 0, 0, 0},
			{0, 0, 0, 1},
			{0, 0, 1, 0},
			{0, 1, 0, 0},
		}

		Convey("The full matrix swaps indices 1 and 3", func() {
			full, err := view.FullMatrix(3)
			So(err, ShouldBeNil)
			So(full, ShouldApproxEqualMatrix, expected)
		})

		Convey("Rows agree with the full matrix", func() {
			for i := range expected {
				row, err := view.Row(i, 2)
				So(err, ShouldBeNil)
				So(Matrix{row}, ShouldApproxEqualMatrix, Matrix{expected[i]})
			}
		})

		Convey("Elements agree with the full matrix", func() {
			for i := range expected {
				for j := range expected[i] {
					e, err := view.Element(i, j)
					So(err, ShouldBeNil)
					So(e, ShouldEqual, expected[i][j])
				}
			}
		})

		Convey("Out-of-range requests fail", func() {
			_, err := view.Element(4, 0)
			So(errors.Is(err, ErrIndexOutOfBounds), ShouldBeTrue)

			_, err = view.Element(0, -1)
			So(errors.Is(err, ErrIndexOutOfBounds), ShouldBeTrue)

			_, err = view.Row(4, 1)
			So(errors.Is(err, ErrIndexOutOfBounds), ShouldBeTrue)
		})

		Convey("Non-positive concurrency fails before any work", func() {
			_, err := view.Row(0, 0)
			So(errors.Is(err, ErrInvalidConcurrency), ShouldBeTrue)

			_, err = view.FullMatrix(-1)
			So(errors.Is(err, ErrInvalidConcurrency), ShouldBeTrue)
		})
	})

	Convey("Given a random unitary on scattered qubits", t, func() {
		rng := newRand(31)
		n := 5

		desc, err := NewGeneralMultiQubit(randomUnitary(rng, 4), testTolerance)
		So(err, ShouldBeNil)

		view, err := NewExpandedMatrix(desc, []int{4, 1}, n)
		So(err, ShouldBeNil)

		full, err := view.FullMatrix(4)
		So(err, ShouldBeNil)

		Convey("The expansion is unitary", func() {
			So(full.IsUnitary(testTolerance), ShouldBeTrue)
		})

		Convey("Each row has at most m nonzero entries", func() {
			for _, row := range full {
				nonzero := 0
				for _, v := range row {
					if v != 0 {
						nonzero++
					}
				}

				So(nonzero, ShouldBeLessThanOrEqualTo, 4)
			}
		})

		Convey("It is the local matrix on matching remainders and zero elsewhere", func() {
			mapper, _ := NewIndexMapper([]int{4, 1}, n)

			for i := range full {
				for j := range full[i] {
					if mapper.Remainder(i) != mapper.Remainder(j) {
						So(full[i][j], ShouldEqual, complex(0, 0))
						continue
					}

					So(full[i][j], ShouldEqual, desc.Element(mapper.Local(i), mapper.Local(j)))
				}
			}
		})
	})

	Convey("Given an engine with a small memory budget", t, func() {
		config := NewConfig()
		config.MaxMatrixBytes = DenseBytes(8)
		engine, err := NewEngine(config)
		So(err, ShouldBeNil)

		desc, _ := NewSingleQubit(Hadamard(), testTolerance)

		Convey("A matrix within budget expands", func() {
			view, err := engine.Expand(desc, []int{0}, 3)
			So(err, ShouldBeNil)

			_, err = view.FullMatrix(1)
			So(err, ShouldBeNil)
		})

		Convey("A matrix over budget is refused", func() {
			view, err := engine.Expand(desc, []int{0}, 4)
			So(err, ShouldBeNil)

			_, err = view.FullMatrix(1)
			So(errors.Is(err, ErrMatrixTooLarge), ShouldBeTrue)

			Convey("And so is the full-matrix strategy, while others still run", func() {
				in, _ := NewStatevector(4, 0)

				_, err := engine.Transform(desc, []int{0}, in, FullMatrix, 2)
				So(errors.Is(err, ErrMatrixTooLarge), ShouldBeTrue)

				_, err = engine.Transform(desc, []int{0}, in, RowByRow, 2)
				So(err, ShouldBeNil)
			})
		})
	})

	Convey("Given registers too large to expand densely", t, func() {
		desc, err := NewSingleQubit(PauliX(), testTolerance)
		So(err, ShouldBeNil)

		Convey("A view built without an engine still refuses to allocate", func() {
			for _, n := range []int{16, 26, MaxQubits} {
				view, err := NewExpandedMatrix(desc, []int{0}, n)
				So(err, ShouldBeNil)

				_, err = view.FullMatrix(1)
				So(errors.Is(err, ErrMatrixTooLarge), ShouldBeTrue)
			}
		})

		Convey("An engine view at the largest register is refused", func() {
			engine, err := NewEngine(nil)
			So(err, ShouldBeNil)

			view, err := engine.Expand(desc, []int{0}, MaxQubits)
			So(err, ShouldBeNil)

			_, err = view.FullMatrix(1)
			So(errors.Is(err, ErrMatrixTooLarge), ShouldBeTrue)

			_, rejected := engine.Governor().GetUsage()
			So(rejected, ShouldEqual, int64(1))
		})

		Convey("Single elements stay available", func() {
			view, err := NewExpandedMatrix(desc, []int{0}, MaxQubits)
			So(err, ShouldBeNil)

			e, err := view.Element(1<<MaxQubits-1, 1<<MaxQubits-2)
			So(err, ShouldBeNil)
			So(e, ShouldEqual, complex(1, 0))
		})
	})
}
