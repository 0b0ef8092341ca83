package qsim

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDescriptor(t *testing.T) {
	Convey("Given a fully controlled NOT with one control", t, func() {
		desc, err := NewFullyControlled(PauliX(), 1, testTolerance)
		So(err, ShouldBeNil)

		Convey("Its local matrix is the textbook CNOT", func() {
			cnot := Matrix{
				{1, 0, 0, 0},
				{0, 1, 0, 0},
				{0, 0, 0, 1},
				{0, 0, 1, 0},
			}

			So(desc.Local(), ShouldApproxEqualMatrix, cnot)
			So(desc.Arity(), ShouldEqual, 2)
			So(desc.Dim(), ShouldEqual, 4)
			So(desc.Kind(), ShouldEqual, FullyControlled)
		})

		Convey("It is active only when the control bit is set", func() {
			So(desc.Active(0b00), ShouldBeFalse)
			So(desc.Active(0b01), ShouldBeFalse)
			So(desc.Active(0b10), ShouldBeTrue)
			So(desc.Active(0b11), ShouldBeTrue)
		})
	})

	Convey("Given a Toffoli as a fully controlled NOT with two controls", t, func() {
		desc, err := NewFullyControlled(PauliX(), 2, testTolerance)
		So(err, ShouldBeNil)

		local := desc.Local()
		expected := Identity(8)
		expected[6][6], expected[6][7] = 0, 1
		expected[7][6], expected[7][7] = 1, 0

		So(local, ShouldApproxEqualMatrix, expected)
		So(local.IsUnitary(testTolerance), ShouldBeTrue)
	})

	Convey("Given an oracle over two controls with table {01, 11}", t, func() {
		table, err := NewTruthTable(2, []string{"01", "11"})
		So(err, ShouldBeNil)

		desc, err := NewOracle(PauliX(), table, testTolerance)
		So(err, ShouldBeNil)

		Convey("Only matching control patterns enable the base matrix", func() {
			So(desc.Active(0b010), ShouldBeTrue)
			So(desc.Active(0b110), ShouldBeTrue)
			So(desc.Active(0b000), ShouldBeFalse)
			So(desc.Active(0b100), ShouldBeFalse)
		})

		Convey("Its local matrix is block diagonal and unitary", func() {
			local := desc.Local()
			So(local.IsUnitary(testTolerance), ShouldBeTrue)
			So(local[0][0], ShouldEqual, complex(1, 0))
			So(local[2][3], ShouldEqual, complex(1, 0))
			So(local[2][2], ShouldEqual, complex(0, 0))
			So(local[0][2], ShouldEqual, complex(0, 0))
		})
	})

	Convey("Given a general two-qubit matrix", t, func() {
		desc, err := NewGeneralMultiQubit(Swap(), testTolerance)
		So(err, ShouldBeNil)

		So(desc.Arity(), ShouldEqual, 2)
		So(desc.Controls(), ShouldEqual, 0)
		So(desc.Local(), ShouldApproxEqualMatrix, Swap())

		Convey("Base returns a copy", func() {
			base := desc.Base()
			base[0][0] = 42
			So(desc.Element(0, 0), ShouldEqual, complex(1, 0))
		})
	})

	Convey("Given invalid base matrices", t, func() {
		Convey("A non-unitary matrix is rejected", func() {
			_, err := NewSingleQubit(Matrix{{1, 1}, {0, 1}}, testTolerance)
			So(errors.Is(err, ErrNonUnitaryBaseMatrix), ShouldBeTrue)
		})

		Convey("A non-square matrix is rejected", func() {
			_, err := NewGeneralMultiQubit(Matrix{{1, 0}}, testTolerance)
			So(errors.Is(err, ErrNonSquareMatrix), ShouldBeTrue)
		})

		Convey("A side length that is not a power of two is rejected", func() {
			_, err := NewGeneralMultiQubit(Identity(3), testTolerance)
			So(errors.Is(err, ErrInvalidDimension), ShouldBeTrue)
		})

		Convey("A 4x4 matrix cannot be a single-qubit descriptor", func() {
			_, err := NewSingleQubit(Swap(), testTolerance)
			So(errors.Is(err, ErrArityMismatch), ShouldBeTrue)
		})

		Convey("A controlled descriptor needs at least one control", func() {
			_, err := NewFullyControlled(PauliX(), 0, testTolerance)
			So(errors.Is(err, ErrEmptyControlList), ShouldBeTrue)
		})

		Convey("A non-positive tolerance is rejected", func() {
			_, err := NewSingleQubit(PauliX(), 0)
			So(errors.Is(err, ErrInvalidTolerance), ShouldBeTrue)
		})
	})

	Convey("Given a 4x4 descriptor and a one-qubit list", t, func() {
		desc, err := NewGeneralMultiQubit(Swap(), testTolerance)
		So(err, ShouldBeNil)

		_, err = NewOperation(desc, []int{0}, 2)
		So(errors.Is(err, ErrArityMismatch), ShouldBeTrue)
	})
}

func TestTruthTable(t *testing.T) {
	Convey("Given entries over three controls", t, func() {
		table, err := NewTruthTable(3, []string{"101", "11", "0"})
		So(err, ShouldBeNil)

		Convey("Short entries are left-padded with zeros", func() {
			So(table.Entries(), ShouldResemble, []string{"000", "011", "101"})
			So(table.Contains(0b011), ShouldBeTrue)
			So(table.Contains(0b110), ShouldBeFalse)
			So(table.Len(), ShouldEqual, 3)
		})

		Convey("Prefix prepends fixed control bits", func() {
			prefixed, err := table.Prefix(0b1, 1)
			So(err, ShouldBeNil)
			So(prefixed.Width(), ShouldEqual, 4)
			So(prefixed.Entries(), ShouldResemble, []string{"1000", "1011", "1101"})
		})

		Convey("Concat requires both halves to match", func() {
			other, err := NewTruthTable(1, []string{"1"})
			So(err, ShouldBeNil)

			joined, err := table.Concat(other)
			So(err, ShouldBeNil)
			So(joined.Entries(), ShouldResemble, []string{"0001", "0111", "1011"})
		})

		Convey("Patterns outside the width never match", func() {
			So(table.Contains(-1), ShouldBeFalse)
			So(table.Contains(8), ShouldBeFalse)
		})
	})

	Convey("Given malformed entries", t, func() {
		_, err := NewTruthTable(2, []string{"012"})
		So(errors.Is(err, ErrTruthTableTooWide), ShouldBeTrue)

		_, err = NewTruthTable(2, []string{"0x"})
		So(errors.Is(err, ErrInvalidTruthTableEntry), ShouldBeTrue)

		_, err = NewTruthTable(2, []string{""})
		So(errors.Is(err, ErrInvalidTruthTableEntry), ShouldBeTrue)

		_, err = NewTruthTable(0, []string{"1"})
		So(errors.Is(err, ErrEmptyControlList), ShouldBeTrue)

		_, err = NewTruthTable(33, nil)
		So(errors.Is(err, ErrTooManyControls), ShouldBeTrue)
	})
}
