package kohonen

// normalizer.go implements the column-wise normalizers applied to a
// DataFrame after the processor's two-pass build: Unit (min/max scaling),
// Gauss (mean/stddev scaling), and None (identity, with an overall
// scale). Each column's normalization is represented by a forward
// LinearTransform (input -> normalized) and its inverse (normalized ->
// original units, used to report unit prototypes and data values back in
// their original scale).

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// NormKind selects how a column is scaled before training.
type NormKind int

const (
	// NormUnit maps [min, max] to [0, scale].
	NormUnit NormKind = iota
	// NormGauss maps mean to scale/2 and mean +/- 1 stddev to +/- scale/2
	// around that center.
	NormGauss
	// NormNone applies no shape change, only the scale factor.
	NormNone
)

// NormColumn records the normalization applied to one column: its kind,
// the forward transform used to build the normalized DataFrame, and its
// inverse, used to denormalize trained weights and data back to the
// column's original units.
type NormColumn struct {
	Kind    NormKind
	Forward LinearTransform
	Inverse LinearTransform
}

// Normalize applies kinds[c]/scales[c] to each column c of df and returns
// the resulting DataFrame along with the per-column NormColumn used.
func Normalize(df *DataFrame, kinds []NormKind, scales []float64) (*DataFrame, []NormColumn, error) {
	ncols := df.NCols()
	if len(kinds) != ncols || len(scales) != ncols {
		return nil, nil, Wrapper(&ConfigError{Msg: "normalize: kinds/scales length must match column count"}, "Normalize")
	}

	cols := make([]NormColumn, ncols)
	ranges := df.Ranges()

	for c := 0; c < ncols; c++ {
		switch kinds[c] {
		case NormUnit:
			cols[c] = unitNormColumn(ranges[c], scales[c])
		case NormGauss:
			cols[c] = gaussNormColumn(df.Column(c), scales[c])
		default:
			fwd := LinearTransform{Scale: scales[c], Offset: 0}
			cols[c] = NormColumn{Kind: NormNone, Forward: fwd, Inverse: fwd.Invert()}
		}
	}

	out := NewDataFrame(df.Names())
	row := make([]float64, ncols)
	for r := 0; r < df.NRows(); r++ {
		for c := 0; c < ncols; c++ {
			row[c] = cols[c].Forward.Apply(df.At(r, c))
		}
		if err := out.PushRow(row); err != nil {
			return nil, nil, err
		}
	}

	return out, cols, nil
}

func unitNormColumn(rng [2]float64, scale float64) NormColumn {
	mn, mx := rng[0], rng[1]

	var fwd LinearTransform
	if math.IsNaN(mn) || mx-mn == 0 {
		fwd = LinearTransform{Scale: 1, Offset: 0}
	} else {
		fwd = LinearTransform{Scale: scale / (mx - mn), Offset: -mn * scale / (mx - mn)}
	}

	return NormColumn{Kind: NormUnit, Forward: fwd, Inverse: fwd.Invert()}
}

func gaussNormColumn(values []float64, scale float64) NormColumn {
	present := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			present = append(present, v)
		}
	}

	var fwd LinearTransform
	if len(present) < 2 {
		fwd = LinearTransform{Scale: 1, Offset: 0}
	} else {
		mean, sd := stat.MeanStdDev(present, nil)
		if sd == 0 {
			fwd = LinearTransform{Scale: 1, Offset: 0}
		} else {
			sc := scale / (2 * sd)
			fwd = LinearTransform{Scale: sc, Offset: -(mean - sd) * sc}
		}
	}

	return NormColumn{Kind: NormGauss, Forward: fwd, Inverse: fwd.Invert()}
}
