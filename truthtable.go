package qsim

import (
	"fmt"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
)

// maxOracleControls is the widest control pattern a TruthTable can index.
const maxOracleControls = 32

/*
TruthTable is the set of control patterns that activate an oracle. Patterns
are read as binary numbers whose first character is the most significant bit,
which lines up with the first control in the qubit list.
*/
type TruthTable struct {
	width    int
	patterns *roaring.Bitmap
}

/*
NewTruthTable parses entries of at most width bits. Shorter entries are
left-padded with zeros.
*/
func NewTruthTable(width int, entries []string) (*TruthTable, error) {
	if width < 1 {
		return nil, ErrEmptyControlList
	}

	if width > maxOracleControls {
		return nil, fmt.Errorf("%w: %d", ErrTooManyControls, width)
	}

	table := &TruthTable{width: width, patterns: roaring.New()}

	for _, entry := range entries {
		pattern, err := parsePattern(entry, width)
		if err != nil {
			return nil, err
		}

		table.patterns.Add(pattern)
	}

	return table, nil
}

// AllOnes is the table of a plain controlled gate: only 1…1 activates it.
func AllOnes(width int) (*TruthTable, error) {
	return NewTruthTable(width, []string{strings.Repeat("1", width)})
}

func (t *TruthTable) Width() int {
	return t.width
}

func (t *TruthTable) Len() int {
	return int(t.patterns.GetCardinality())
}

// Contains reports whether the control pattern activates the oracle.
func (t *TruthTable) Contains(pattern int) bool {
	if pattern < 0 || pattern >= 1<<t.width {
		return false
	}

	return t.patterns.Contains(uint32(pattern))
}

// Entries renders the activating patterns as width-bit strings in ascending order.
func (t *TruthTable) Entries() []string {
	out := make([]string, 0, t.Len())
	it := t.patterns.Iterator()

	for it.HasNext() {
		out = append(out, fmt.Sprintf("%0*b", t.width, it.Next()))
	}

	return out
}

/*
Prefix returns a new table over prefixWidth+width controls where every
pattern is prepended with the prefix bits. Extraction uses it to fold
unconditional controls into an oracle as leading ones.
*/
func (t *TruthTable) Prefix(prefix uint32, prefixWidth int) (*TruthTable, error) {
	width := t.width + prefixWidth
	if width > maxOracleControls {
		return nil, fmt.Errorf("%w: %d", ErrTooManyControls, width)
	}

	out := &TruthTable{width: width, patterns: roaring.New()}
	it := t.patterns.Iterator()

	for it.HasNext() {
		out.patterns.Add(prefix<<t.width | it.Next())
	}

	return out, nil
}

/*
Concat combines two tables over disjoint control lists, t's controls first.
A combined pattern activates only when both halves do.
*/
func (t *TruthTable) Concat(other *TruthTable) (*TruthTable, error) {
	width := t.width + other.width
	if width > maxOracleControls {
		return nil, fmt.Errorf("%w: %d", ErrTooManyControls, width)
	}

	out := &TruthTable{width: width, patterns: roaring.New()}
	outer := t.patterns.Iterator()

	for outer.HasNext() {
		high := outer.Next() << other.width
		inner := other.patterns.Iterator()

		for inner.HasNext() {
			out.patterns.Add(high | inner.Next())
		}
	}

	return out, nil
}

func parsePattern(entry string, width int) (uint32, error) {
	if entry == "" {
		return 0, fmt.Errorf("%w: empty entry", ErrInvalidTruthTableEntry)
	}

	if len(entry) > width {
		return 0, fmt.Errorf("%w: %q has %d bits, %d controls", ErrTruthTableTooWide, entry, len(entry), width)
	}

	var pattern uint32

	for _, r := range entry {
		switch r {
		case '0':
			pattern <<= 1
		case '1':
			pattern = pattern<<1 | 1
		default:
			return 0, fmt.Errorf("%w: %q", ErrInvalidTruthTableEntry, entry)
		}
	}

	return pattern, nil
}
