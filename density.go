package qsim

import "fmt"

/*
TransformDensity returns UρU† for the gate described by op without forming U
at register size. The left product runs the element rule over ρ's rows; the
right product runs its conjugate over the rows of the intermediate result.
Both passes split rows across the pool, so every worker writes only its own
rows.
*/
func TransformDensity(op *Operation, rho DensityMatrix, pool *Pool) (DensityMatrix, error) {
	dim := op.Dim()

	if len(rho) != dim || !Matrix(rho).IsSquare() {
		return nil, fmt.Errorf(
			"%w: density matrix is %dx?, register needs %dx%d",
			ErrInvalidDimension, len(rho), dim, dim,
		)
	}

	left := NewMatrix(dim)

	err := pool.Run(dim, func(lo, hi int) error {
		for r := lo; r < hi; r++ {
			local, remainder := op.Mapper.Split(r)
			row := left[r]

			for col := 0; col < op.Mapper.Dim(); col++ {
				e := op.Descriptor.Element(local, col)
				if e == 0 {
					continue
				}

				src := rho[op.Mapper.Global(col, remainder)]
				for c, v := range src {
					row[c] += e * v
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	out := NewMatrix(dim)

	err = pool.Run(dim, func(lo, hi int) error {
		for r := lo; r < hi; r++ {
			for c := 0; c < dim; c++ {
				out[r][c] = op.adjointAmplitude(left[r], c)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return DensityMatrix(out), nil
}
