package qsim

/*
elementStrategy computes each output amplitude from the m input amplitudes
that share its remainder. No row or matrix is ever materialized.
*/
type elementStrategy struct{}

func (elementStrategy) Apply(op *Operation, in Statevector, pool *Pool) (Statevector, error) {
	if err := checkInput(op, in); err != nil {
		return nil, err
	}

	out := make(Statevector, len(in))

	err := pool.Run(len(in), func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			out[i] = op.amplitude(in, i)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}
