package kohonen

// transform.go implements the linear scale/offset transform used by
// Normalizer to map raw values to normalized space, and back.

import "math"

// LinearTransform represents y = Scale*x + Offset. NaN maps to NaN.
type LinearTransform struct {
	Scale  float64
	Offset float64
}

// Apply evaluates the transform at x. NaN passes through unchanged.
func (t LinearTransform) Apply(x float64) float64 {
	if math.IsNaN(x) {
		return x
	}

	return t.Scale*x + t.Offset
}

// Invert returns the transform that undoes t, i.e. Invert().Apply(t.Apply(x)) == x.
func (t LinearTransform) Invert() LinearTransform {
	return LinearTransform{Scale: 1 / t.Scale, Offset: -t.Offset / t.Scale}
}
