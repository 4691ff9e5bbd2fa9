package kohonen

// nn.go implements nearest-neighbor search against a Som's weight grid:
// the flat single-metric case, the single-layer case (Euclidean or
// Tanimoto depending on whether the layer is categorical), and the
// multi-layer (Super-SOM / XYF) weighted-sum case. Ties are broken by
// keeping the first (lowest-index) unit found.

import "math"

// BMU finds the best matching unit in weights using squared Euclidean
// distance, for a flat, single-metric Som with no declared layers. It
// returns the unit's index and the (non-squared) Euclidean distance.
func BMU(sample []float64, weights *DataFrame) (int, float64) {
	best := math.Inf(1)
	bestIdx := 0
	for r := 0; r < weights.NRows(); r++ {
		d := MetricSquaredEuclidean.Distance(sample, weights.Row(r))
		if d < best {
			best = d
			bestIdx = r
		}
	}

	return bestIdx, math.Sqrt(best)
}

// BMUSingleLayer finds the best matching unit using Euclidean distance
// for continuous data, or Tanimoto distance for one-hot categorical data.
func BMUSingleLayer(sample []float64, weights *DataFrame, categorical bool) (int, float64) {
	m := MetricEuclidean
	if categorical {
		m = MetricTanimoto
	}

	best := math.Inf(1)
	bestIdx := 0
	for r := 0; r < weights.NRows(); r++ {
		d := m.Distance(sample, weights.Row(r))
		if d < best {
			best = d
			bestIdx = r
		}
	}

	return bestIdx, best
}

// BMUXYF finds the best matching unit for a multi-layer Super-SOM,
// computing each layer's metric over its column block and summing the
// results weighted by LayerSpec.Weight. A layer whose block is all-NaN
// for this sample contributes 0 to the sum, so the remaining layers still
// determine the winner.
func BMUXYF(sample []float64, weights *DataFrame, layers []LayerSpec, startColumns []int) (int, float64) {
	best := math.Inf(1)
	bestIdx := 0
	for r := 0; r < weights.NRows(); r++ {
		row := weights.Row(r)
		var dist float64
		for i, layer := range layers {
			start := startColumns[i]
			end := start + layer.NCols
			d := layer.Metric.Distance(sample[start:end], row[start:end])
			if !math.IsNaN(d) {
				dist += d * layer.Weight
			}
		}
		if dist < best {
			best = dist
			bestIdx = r
		}
	}

	return bestIdx, best
}

// BatchNearestNeighbor finds, for every row of from, its nearest row in
// to using flat squared-Euclidean distance. It's used to map arbitrary
// points (e.g. held-out data) onto an existing grid of reference points.
func BatchNearestNeighbor(from, to *DataFrame) ([]int, []float64) {
	idxs := make([]int, from.NRows())
	dists := make([]float64, from.NRows())
	for i := 0; i < from.NRows(); i++ {
		idx, d := BMU(from.Row(i), to)
		idxs[i] = idx
		dists[i] = d
	}

	return idxs, dists
}
