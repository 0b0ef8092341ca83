package qsim

/*
fullMatrixStrategy expands the gate to a dense N×N matrix and multiplies.
The expansion is admitted against the pool's resource governor, if any.
*/
type fullMatrixStrategy struct{}

func (fullMatrixStrategy) Apply(op *Operation, in Statevector, pool *Pool) (Statevector, error) {
	if err := checkInput(op, in); err != nil {
		return nil, err
	}

	full, err := newExpandedMatrix(op, pool.governor, pool.Metrics()).FullMatrix(pool.MaxConcurrency())
	if err != nil {
		return nil, err
	}

	out := make(Statevector, len(in))

	err = pool.Run(len(in), func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			out[i] = dot(full[i], in)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}
