package main

import (
	"testing"

	"github.com/mlange-42/kohonen-go"
	"github.com/stretchr/testify/assert"
)

func baseArgs() *cliArgs {
	_, a := newFlagSet()
	a.file = "data.csv"
	a.size = "4 4"
	a.epochs = 10
	a.neigh = "gauss"
	a.noData = "NA"
	a.labelLength = 32
	a.delimiter = ","
	a.layers.values = []string{"x y"}
	return a
}

func TestResolveArgs_RequiresFile(t *testing.T) {
	a := baseArgs()
	a.file = ""
	_, err := resolveArgs(a)
	assert.NotNil(t, err)
}

func TestResolveArgs_RequiresPositiveSize(t *testing.T) {
	a := baseArgs()
	a.size = "0 4"
	_, err := resolveArgs(a)
	assert.NotNil(t, err)
}

func TestResolveArgs_RequiresSizeToken(t *testing.T) {
	a := baseArgs()
	a.size = ""
	_, err := resolveArgs(a)
	assert.NotNil(t, err)
}

func TestParseSize_WrongTokenCount(t *testing.T) {
	_, _, err := parseSize("4")
	assert.NotNil(t, err)
}

func TestParseSize_Valid(t *testing.T) {
	w, h, err := parseSize("5 7")
	assert.Nil(t, err)
	assert.Equal(t, 5, w)
	assert.Equal(t, 7, h)
}

func TestResolveArgs_RequiresLayers(t *testing.T) {
	a := baseArgs()
	a.layers.values = nil
	_, err := resolveArgs(a)
	assert.NotNil(t, err)
}

func TestResolveArgs_DefaultsContinuousLayer(t *testing.T) {
	a := baseArgs()
	cfg, err := resolveArgs(a)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(cfg.layers))
	assert.False(t, cfg.layers[0].Categorical)
	assert.Equal(t, []string{"x", "y"}, cfg.layers[0].Names)
}

func TestResolveArgs_CategoricalLayerMustBeSingleColumn(t *testing.T) {
	a := baseArgs()
	a.layers.values = []string{"x y"}
	a.categ.values = []string{"true"}
	_, err := resolveArgs(a)
	assert.NotNil(t, err)
}

func TestResolveArgs_WeightsCountMismatch(t *testing.T) {
	a := baseArgs()
	a.weights.values = []float64{1, 2}
	_, err := resolveArgs(a)
	assert.NotNil(t, err)
}

func TestExpandMetrics_DefaultsByCategorical(t *testing.T) {
	metrics, err := expandMetrics(nil, []bool{false, true})
	assert.Nil(t, err)
	assert.Equal(t, kohonen.MetricEuclidean, metrics[0])
	assert.Equal(t, kohonen.MetricTanimoto, metrics[1])
}

func TestExpandNorms_UnknownValueErrors(t *testing.T) {
	_, err := expandNorms([]string{"bogus"}, []bool{false})
	assert.NotNil(t, err)
}

func TestParseSchedule_Default(t *testing.T) {
	def := kohonen.NewLinearDecay(1, 0)
	sched, err := parseSchedule(nil, def)
	assert.Nil(t, err)
	assert.Equal(t, def, sched)
}

func TestParseSchedule_Linear(t *testing.T) {
	sched, err := parseSchedule([]string{"1 0 lin"}, kohonen.DecaySchedule{})
	assert.Nil(t, err)
	assert.Equal(t, kohonen.NewLinearDecay(1, 0), sched)
}

func TestParseSchedule_WrongTokenCount(t *testing.T) {
	_, err := parseSchedule([]string{"1 0"}, kohonen.DecaySchedule{})
	assert.NotNil(t, err)
}

func TestParseKernel_Known(t *testing.T) {
	k, err := parseKernel("triangular")
	assert.Nil(t, err)
	assert.Equal(t, kohonen.KernelTriangular, k)
}

func TestParseKernel_Unknown(t *testing.T) {
	_, err := parseKernel("bogus")
	assert.NotNil(t, err)
}
