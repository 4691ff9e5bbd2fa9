package kohonen

// som.go implements the trained object itself: weight grid, the
// precomputed planar grid-distance table used to bound the neighborhood
// search, the epoch-at-a-time training loop, and JSON persistence.

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"
)

// Som is a trained (or training) Self-Organizing Map grid of NRows x
// NCols units, each holding a Dims-length prototype vector. Weights is
// flattened row-major over (unit index, dimension). GridDistance[i][j] is
// the planar Euclidean distance between unit i and unit j on the grid.
type Som struct {
	NRows, NCols, Dims int
	Weights            *DataFrame
	GridDistance       *DataFrame
	Params             SomParams
	Epoch              int

	rng *rand.Rand
}

// SomOption configures a Som at construction time.
type SomOption func(*Som)

// WithRNG injects a deterministic random source, used to seed initial
// weights and the per-epoch sample order. Without it, NewSom seeds from
// the current time.
func WithRNG(r *rand.Rand) SomOption {
	return func(s *Som) { s.rng = r }
}

// NewSom allocates a Som with the given prototype dimensionality and grid
// shape, initializes its weights uniformly in [0, 1), and precomputes its
// grid-distance table.
func NewSom(dims, nrows, ncols int, params SomParams, opts ...SomOption) (*Som, error) {
	if dims <= 0 || nrows <= 0 || ncols <= 0 {
		return nil, Wrapper(&ConfigError{Msg: "dims, nrows and ncols must all be positive"}, "NewSom")
	}
	if params.Layers != nil && params.Dims() != dims {
		return nil, Wrapper(&ConfigError{Msg: fmt.Sprintf("layer widths sum to %d, want dims %d", params.Dims(), dims)}, "NewSom")
	}

	names := make([]string, dims)
	for i := range names {
		names[i] = fmt.Sprintf("w%d", i)
	}

	s := &Som{
		NRows:   nrows,
		NCols:   ncols,
		Dims:    dims,
		Weights: NewFilledDataFrame(names, nrows*ncols, 0),
		Params:  params,
	}

	for _, o := range opts {
		o(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s.initWeights()
	s.GridDistance = s.buildGridDistance()

	return s, nil
}

func (s *Som) initWeights() {
	for r := 0; r < s.Weights.NRows(); r++ {
		row := s.Weights.Row(r)
		for c := range row {
			row[c] = s.rng.Float64()
		}
	}
}

func (s *Som) buildGridDistance() *DataFrame {
	n := s.NRows * s.NCols
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("u%d", i)
	}

	df := NewFilledDataFrame(names, n, 0)
	for i := 0; i < n; i++ {
		r1, c1 := s.ToRowCol(i)
		for j := 0; j < n; j++ {
			r2, c2 := s.ToRowCol(j)
			dr := float64(r1 - r2)
			dc := float64(c1 - c2)
			df.Set(i, j, math.Sqrt(dr*dr+dc*dc))
		}
	}

	return df
}

// ToRowCol converts a flat unit index to its (row, col) grid position.
func (s *Som) ToRowCol(index int) (int, int) {
	return index / s.NCols, index % s.NCols
}

// ToIndex converts a (row, col) grid position to its flat unit index.
func (s *Som) ToIndex(row, col int) int {
	return row*s.NCols + col
}

// FindBMU returns the best matching unit for sample and its distance,
// dispatching on the number of declared layers: none -> flat squared
// Euclidean, one -> single-metric, more -> weighted XYF sum.
func (s *Som) FindBMU(sample []float64) (int, float64, error) {
	if len(sample) != s.Dims {
		return 0, 0, Wrapper(&DataTypeError{Msg: fmt.Sprintf("sample has %d values, want %d", len(sample), s.Dims)}, "(*Som).FindBMU")
	}

	switch len(s.Params.Layers) {
	case 0:
		idx, d := BMU(sample, s.Weights)
		return idx, d, nil
	case 1:
		idx, d := BMUSingleLayer(sample, s.Weights, s.Params.Layers[0].Categorical)
		return idx, d, nil
	default:
		idx, d := BMUXYF(sample, s.Weights, s.Params.Layers, s.Params.StartColumns)
		return idx, d, nil
	}
}

// TrainEpoch runs one epoch of training against samples, using count
// samples (a random permutation of the rows, truncated to count) if
// count is non-nil, or every row otherwise. It then applies the global
// weight decay and advances the epoch counter. If the Som has already
// completed Params.Epochs epochs, it does nothing and returns false.
func (s *Som) TrainEpoch(samples *DataFrame, count *int) (bool, error) {
	if s.Epoch >= s.Params.Epochs {
		return false, nil
	}
	if samples.NCols() != s.Dims {
		return false, Wrapper(&DataTypeError{Msg: fmt.Sprintf("samples have %d columns, want %d", samples.NCols(), s.Dims)}, "(*Som).TrainEpoch")
	}

	n := samples.NRows()
	cnt := n
	if count != nil {
		cnt = *count
		if cnt > n {
			cnt = n
		}
		if cnt < 0 {
			cnt = 0
		}
	}

	perm := s.rng.Perm(n)
	for i := 0; i < cnt; i++ {
		if err := s.train(samples.Row(perm[i])); err != nil {
			return false, err
		}
	}

	s.decayWeights()
	s.Epoch++

	return true, nil
}

func (s *Som) train(sample []float64) error {
	bmu, _, err := s.FindBMU(sample)
	if err != nil {
		return err
	}
	row, col := s.ToRowCol(bmu)

	alpha := s.Params.Alpha.Value(s.Epoch, s.Params.Epochs)
	sigma := s.Params.Radius.Value(s.Epoch, s.Params.Epochs)
	kernel := s.Params.KernelFn

	if sigma <= 0 {
		s.updateUnit(bmu, sample, 1.0, alpha)
		return nil
	}

	searchRadius := sigma * kernel.Radius()
	searchRadiusInt := int(math.Floor(searchRadius))

	rMin, rMax := boundRange(row, searchRadiusInt, s.NRows)
	cMin, cMax := boundRange(col, searchRadiusInt, s.NCols)

	for r := rMin; r <= rMax; r++ {
		for c := cMin; c <= cMax; c++ {
			unit := s.ToIndex(r, c)
			d := s.GridDistance.At(bmu, unit)
			if d > searchRadius {
				continue
			}
			w := kernel.Weight(d / sigma)
			s.updateUnit(unit, sample, w, alpha)
		}
	}

	return nil
}

func (s *Som) updateUnit(unit int, sample []float64, weight, alpha float64) {
	proto := s.Weights.Row(unit)
	for k := range proto {
		sv := sample[k]
		if math.IsNaN(sv) {
			continue
		}
		proto[k] += weight * alpha * (sv - proto[k])
	}
}

// decayWeights pulls every prototype toward the grid's current column
// means by the fraction given by Params.Decay at the current (not yet
// incremented) epoch.
func (s *Som) decayWeights() {
	d := s.Params.Decay.Value(s.Epoch, s.Params.Epochs)
	if d == 0 {
		return
	}

	means := s.Weights.Means()
	for r := 0; r < s.Weights.NRows(); r++ {
		row := s.Weights.Row(r)
		for c, m := range means {
			row[c] -= d * (row[c] - m)
		}
	}
}

func boundRange(center, radius, limit int) (int, int) {
	lo := center - radius
	if lo < 0 {
		lo = 0
	}
	hi := center + radius
	if hi > limit-1 {
		hi = limit - 1
	}

	return lo, hi
}

// somJSON and somParamsJSON are json-friendly shadow structs used by
// MarshalSOM/LoadSOM, mirroring the fType/Save/LoadFTypes pattern.
type somJSON struct {
	NRows   int
	NCols   int
	Dims    int
	Names   []string
	Weights []float64
	Epoch   int
	Params  somParamsJSON
}

type somParamsJSON struct {
	Epochs int
	Kernel Kernel
	Alpha  DecaySchedule
	Radius DecaySchedule
	Decay  DecaySchedule
	Layers []LayerSpec
}

// MarshalSOM writes the Som to fileName as indented JSON.
func (s *Som) MarshalSOM(fileName string) error {
	f, err := os.Create(fileName)
	if err != nil {
		return Wrapper(&IoError{Err: err}, "(*Som).MarshalSOM")
	}
	defer func() { _ = f.Close() }()

	out := somJSON{
		NRows:   s.NRows,
		NCols:   s.NCols,
		Dims:    s.Dims,
		Names:   s.Weights.Names(),
		Weights: s.Weights.Data(),
		Epoch:   s.Epoch,
		Params: somParamsJSON{
			Epochs: s.Params.Epochs,
			Kernel: s.Params.KernelFn,
			Alpha:  s.Params.Alpha,
			Radius: s.Params.Radius,
			Decay:  s.Params.Decay,
			Layers: s.Params.Layers,
		},
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")

	if err := enc.Encode(out); err != nil {
		return Wrapper(&IoError{Err: err}, "(*Som).MarshalSOM")
	}

	return nil
}

// LoadSOM restores a Som previously written by MarshalSOM.
func LoadSOM(fileName string) (*Som, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, Wrapper(&IoError{Err: err}, "LoadSOM")
	}
	defer func() { _ = f.Close() }()

	var in somJSON
	if err := json.NewDecoder(f).Decode(&in); err != nil {
		return nil, Wrapper(&IoError{Err: err}, "LoadSOM")
	}

	params, err := NewSomParams(in.Params.Epochs, in.Params.Kernel, in.Params.Alpha, in.Params.Radius, in.Params.Decay, in.Params.Layers)
	if err != nil {
		return nil, Wrapper(err, "LoadSOM")
	}

	df := NewDataFrame(in.Names)
	ncols := len(in.Names)
	for r := 0; r < in.NRows*in.NCols; r++ {
		if err := df.PushRow(in.Weights[r*ncols : (r+1)*ncols]); err != nil {
			return nil, Wrapper(err, "LoadSOM")
		}
	}

	s := &Som{
		NRows:   in.NRows,
		NCols:   in.NCols,
		Dims:    in.Dims,
		Weights: df,
		Params:  params,
		Epoch:   in.Epoch,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	s.GridDistance = s.buildGridDistance()

	return s, nil
}
