package qsim

/*
rowByRowStrategy materializes one row of the expanded matrix per output
amplitude, takes its dot product with the input and drops it. Each worker
reuses a single row buffer.
*/
type rowByRowStrategy struct{}

func (rowByRowStrategy) Apply(op *Operation, in Statevector, pool *Pool) (Statevector, error) {
	if err := checkInput(op, in); err != nil {
		return nil, err
	}

	view := newExpandedMatrix(op, nil, pool.Metrics())
	out := make(Statevector, len(in))

	err := pool.Run(len(in), func(lo, hi int) error {
		row := make([]complex128, len(in))

		for i := lo; i < hi; i++ {
			view.fillRow(row, i, 0, len(row))
			out[i] = dot(row, in)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}
