package kern

import (
	"fmt"
	"gonum.org/v1/gonum/mat"
)

// Gram returns the covariance matrix between the rows of x.
func Gram(k CovarianceFunction, x mat.Matrix) (*mat.SymDense, error) {
	n, _ := x.Dims()
	if n == 0 {
		return nil, ErrNoPoints
	}
	rows := matRows(x)
	out := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			val, err := k.Evaluate(rows[i], rows[j])
			if err != nil {
				return nil, fmt.Errorf("rows %d, %d: %w", i, j, err)
			}
			out.SetSym(i, j, val)
		}
	}
	return out, nil
}

// Cross returns the covariance matrix between the rows of x and the rows
// of y.
func Cross(k CovarianceFunction, x, y mat.Matrix) (*mat.Dense, error) {
	n, _ := x.Dims()
	m, _ := y.Dims()
	if n == 0 || m == 0 {
		return nil, ErrNoPoints
	}
	xs, ys := matRows(x), matRows(y)
	out := mat.NewDense(n, m, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			val, err := k.Evaluate(xs[i], ys[j])
			if err != nil {
				return nil, fmt.Errorf("rows %d, %d: %w", i, j, err)
			}
			out.Set(i, j, val)
		}
	}
	return out, nil
}

func matRows(a mat.Matrix) [][]float64 {
	n, _ := a.Dims()
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = mat.Row(nil, i, a)
	}
	return rows
}
