package kohonen

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetric_SquaredEuclidean(t *testing.T) {
	a := []float64{0, 0}
	b := []float64{3, 4}
	assert.Equal(t, 25.0, MetricSquaredEuclidean.Distance(a, b))
}

func TestMetric_Euclidean(t *testing.T) {
	a := []float64{0, 0}
	b := []float64{3, 4}
	assert.Equal(t, 5.0, MetricEuclidean.Distance(a, b))
}

func TestMetric_EuclideanSkipsNaN(t *testing.T) {
	a := []float64{0, math.NaN(), 0}
	b := []float64{3, 10, 4}
	assert.Equal(t, 5.0, MetricEuclidean.Distance(a, b))
}

func TestMetric_Tanimoto(t *testing.T) {
	a := []float64{1, 0, 1, 0}
	b := []float64{1, 1, 0, 0}
	assert.Equal(t, 0.5, MetricTanimoto.Distance(a, b))
}

func TestMetric_TanimotoAllNaN(t *testing.T) {
	a := []float64{math.NaN()}
	b := []float64{math.NaN()}
	assert.True(t, math.IsNaN(MetricTanimoto.Distance(a, b)))
}
