package kohonen

import (
	"math/rand"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testSomParams(t *testing.T) SomParams {
	p, err := NewSomParams(5, KernelGaussian, NewLinearDecay(0.5, 0.01), NewLinearDecay(2, 0.5), NewLinearDecay(0, 0), nil)
	assert.Nil(t, err)
	return p
}

func TestNewSom_RejectsBadShape(t *testing.T) {
	_, err := NewSom(0, 2, 2, testSomParams(t))
	assert.NotNil(t, err)
}

func TestNewSom_RejectsLayerWidthMismatch(t *testing.T) {
	layers := []LayerSpec{{NCols: 2}}
	p, err := NewSomParams(5, KernelGaussian, NewLinearDecay(1, 0), NewLinearDecay(1, 0), NewLinearDecay(0, 0), layers)
	assert.Nil(t, err)
	_, err = NewSom(3, 2, 2, p)
	assert.NotNil(t, err)
}

func TestSom_ToRowColRoundtrip(t *testing.T) {
	s, err := NewSom(2, 3, 4, testSomParams(t), WithRNG(rand.New(rand.NewSource(1))))
	assert.Nil(t, err)
	for i := 0; i < s.NRows*s.NCols; i++ {
		r, c := s.ToRowCol(i)
		assert.Equal(t, i, s.ToIndex(r, c))
	}
}

func TestSom_GridDistanceSymmetric(t *testing.T) {
	s, err := NewSom(2, 3, 3, testSomParams(t), WithRNG(rand.New(rand.NewSource(1))))
	assert.Nil(t, err)
	n := s.NRows * s.NCols
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			assert.Equal(t, s.GridDistance.At(i, j), s.GridDistance.At(j, i))
		}
		assert.Equal(t, 0.0, s.GridDistance.At(i, i))
	}
}

func TestSom_TrainEpochStopsAtMax(t *testing.T) {
	params := testSomParams(t)
	s, err := NewSom(2, 2, 2, params, WithRNG(rand.New(rand.NewSource(1))))
	assert.Nil(t, err)

	samples := buildDF(t, []string{"w0", "w1"}, [][]float64{{0, 0}, {1, 1}})

	more := true
	for more {
		more, err = s.TrainEpoch(samples, nil)
		assert.Nil(t, err)
	}
	assert.Equal(t, params.Epochs, s.Epoch)

	more, err = s.TrainEpoch(samples, nil)
	assert.Nil(t, err)
	assert.False(t, more)
}

func TestSom_TrainMovesBMUToward(t *testing.T) {
	params := testSomParams(t)
	s, err := NewSom(2, 3, 3, params, WithRNG(rand.New(rand.NewSource(7))))
	assert.Nil(t, err)

	sample := []float64{0.9, 0.9}
	idx, distBefore, err := s.FindBMU(sample)
	assert.Nil(t, err)

	assert.Nil(t, s.train(sample))

	_, distAfter, err := s.FindBMU(sample)
	assert.Nil(t, err)
	assert.True(t, distAfter <= distBefore)
	_ = idx
}

func TestSom_FindBMU_RejectsWrongDims(t *testing.T) {
	s, err := NewSom(2, 2, 2, testSomParams(t), WithRNG(rand.New(rand.NewSource(1))))
	assert.Nil(t, err)
	_, _, err = s.FindBMU([]float64{1, 2, 3})
	assert.NotNil(t, err)
}

func TestSom_MarshalAndLoadSOM(t *testing.T) {
	s, err := NewSom(2, 2, 2, testSomParams(t), WithRNG(rand.New(rand.NewSource(1))))
	assert.Nil(t, err)

	f, err := os.CreateTemp(t.TempDir(), "som-*.json")
	assert.Nil(t, err)
	f.Close()

	assert.Nil(t, s.MarshalSOM(f.Name()))

	loaded, err := LoadSOM(f.Name())
	assert.Nil(t, err)
	assert.Equal(t, s.NRows, loaded.NRows)
	assert.Equal(t, s.NCols, loaded.NCols)
	assert.Equal(t, s.Dims, loaded.Dims)
	assert.Equal(t, s.Weights.Data(), loaded.Weights.Data())
}
