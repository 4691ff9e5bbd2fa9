package kohonen

// dataframe.go implements a small NaN-aware, growable, column-named matrix
// used for raw data, normalized data, SOM weights, and the grid-distance
// table. The backing store is a flat, row-major []float64 slice; Matrix
// exposes a zero-copy *mat.Dense view of it for gonum-based computations.

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// DataFrame is a row-major matrix with named columns. Missing values are
// represented as NaN.
type DataFrame struct {
	names []string
	data  []float64
	nrows int
}

// NewDataFrame creates an empty DataFrame with the given column names.
// Rows are added with PushRow.
func NewDataFrame(names []string) *DataFrame {
	return &DataFrame{names: append([]string{}, names...)}
}

// NewFilledDataFrame creates a DataFrame with nrows rows, every cell set
// to fill.
func NewFilledDataFrame(names []string, nrows int, fill float64) *DataFrame {
	df := &DataFrame{names: append([]string{}, names...), nrows: nrows}
	df.data = make([]float64, nrows*len(names))
	if fill != 0 {
		for i := range df.data {
			df.data[i] = fill
		}
	}

	return df
}

// NCols returns the number of columns.
func (df *DataFrame) NCols() int {
	return len(df.names)
}

// NRows returns the number of rows currently held.
func (df *DataFrame) NRows() int {
	return df.nrows
}

// Names returns the column names.
func (df *DataFrame) Names() []string {
	return df.names
}

// Data returns the raw row-major backing slice. Callers must not change
// its length, only its contents.
func (df *DataFrame) Data() []float64 {
	return df.data
}

// At returns the value at (row, col).
func (df *DataFrame) At(row, col int) float64 {
	return df.data[row*df.NCols()+col]
}

// Set sets the value at (row, col).
func (df *DataFrame) Set(row, col int, v float64) {
	df.data[row*df.NCols()+col] = v
}

// Row returns a mutable slice view of row r.
func (df *DataFrame) Row(r int) []float64 {
	c := df.NCols()
	return df.data[r*c : (r+1)*c]
}

// PushRow appends a copy of row to the DataFrame. row must have NCols()
// entries.
func (df *DataFrame) PushRow(row []float64) error {
	if len(row) != df.NCols() {
		return Wrapper(&ConfigError{Msg: fmt.Sprintf("PushRow: got %d values, want %d", len(row), df.NCols())}, "(*DataFrame).PushRow")
	}

	df.data = append(df.data, row...)
	df.nrows++

	return nil
}

// Column returns a copy of column c.
func (df *DataFrame) Column(c int) []float64 {
	out := make([]float64, df.nrows)
	ncols := df.NCols()
	for r := 0; r < df.nrows; r++ {
		out[r] = df.data[r*ncols+c]
	}

	return out
}

// Matrix returns a zero-copy *mat.Dense view of the current contents. The
// view is invalidated by any subsequent PushRow call, since that may
// reallocate the backing slice.
func (df *DataFrame) Matrix() *mat.Dense {
	if df.nrows == 0 {
		return mat.NewDense(0, df.NCols(), nil)
	}

	return mat.NewDense(df.nrows, df.NCols(), df.data)
}

// Ranges returns the (min, max) of each column, skipping NaN. A column
// with no non-NaN values returns (NaN, NaN).
func (df *DataFrame) Ranges() [][2]float64 {
	ncols := df.NCols()
	out := make([][2]float64, ncols)
	for c := 0; c < ncols; c++ {
		present := df.presentValues(c)
		if len(present) == 0 {
			out[c] = [2]float64{math.NaN(), math.NaN()}
			continue
		}
		out[c] = [2]float64{floats.Min(present), floats.Max(present)}
	}

	return out
}

// Means returns the NaN-skipping mean of each column. A column with no
// non-NaN values returns NaN.
func (df *DataFrame) Means() []float64 {
	ncols := df.NCols()
	out := make([]float64, ncols)
	for c := 0; c < ncols; c++ {
		present := df.presentValues(c)
		if len(present) == 0 {
			out[c] = math.NaN()
			continue
		}
		out[c] = stat.Mean(present, nil)
	}

	return out
}

// presentValues returns the non-NaN values of column c.
func (df *DataFrame) presentValues(c int) []float64 {
	out := make([]float64, 0, df.nrows)
	for r := 0; r < df.nrows; r++ {
		v := df.At(r, c)
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}

	return out
}
