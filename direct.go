package qsim

import "fmt"

/*
directStrategy is the fast path for SingleQubit and FullyControlled
descriptors. Every output amplitude i pairs with i XOR target-bit; when the
control bits of i are all set, the 2×2 base matrix mixes the pair, otherwise
the amplitude is copied through.
*/
type directStrategy struct{}

func (directStrategy) Apply(op *Operation, in Statevector, pool *Pool) (Statevector, error) {
	desc := op.Descriptor

	if !supportsDirect(desc) {
		return nil, fmt.Errorf("%w: direct cannot apply %s", ErrStrategyUnsupported, desc)
	}

	if err := checkInput(op, in); err != nil {
		return nil, err
	}

	qubits := op.Mapper.Qubits()
	targetBit := 1 << qubits[len(qubits)-1]
	controlMask := 0

	for _, q := range qubits[:len(qubits)-1] {
		controlMask |= 1 << q
	}

	m := desc.base
	out := make(Statevector, len(in))

	err := pool.Run(len(in), func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			if i&controlMask != controlMask {
				out[i] = in[i]
				continue
			}

			zero, one := i&^targetBit, i|targetBit
			row := m[0]

			if i&targetBit != 0 {
				row = m[1]
			}

			out[i] = row[0]*in[zero] + row[1]*in[one]
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}
