package kohonen

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDataFrame_PushRow(t *testing.T) {
	df := NewDataFrame([]string{"a", "b"})
	assert.Nil(t, df.PushRow([]float64{1, 2}))
	assert.Nil(t, df.PushRow([]float64{3, 4}))
	assert.Equal(t, 2, df.NRows())
	assert.Equal(t, 2.0, df.At(0, 1))
	assert.Equal(t, 3.0, df.At(1, 0))

	err := df.PushRow([]float64{1, 2, 3})
	assert.NotNil(t, err)
}

func TestDataFrame_RowIsMutable(t *testing.T) {
	df := NewDataFrame([]string{"a", "b"})
	assert.Nil(t, df.PushRow([]float64{1, 2}))
	row := df.Row(0)
	row[1] = 99
	assert.Equal(t, 99.0, df.At(0, 1))
}

func TestDataFrame_Column(t *testing.T) {
	df := NewDataFrame([]string{"a", "b"})
	assert.Nil(t, df.PushRow([]float64{1, 2}))
	assert.Nil(t, df.PushRow([]float64{3, 4}))
	assert.ElementsMatch(t, []float64{1, 3}, df.Column(0))
}

func TestDataFrame_Matrix(t *testing.T) {
	df := NewDataFrame([]string{"a", "b"})
	assert.Nil(t, df.PushRow([]float64{1, 2}))
	assert.Nil(t, df.PushRow([]float64{3, 4}))
	m := df.Matrix()
	r, c := m.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, 4.0, m.At(1, 1))
}

func TestDataFrame_RangesSkipsNaN(t *testing.T) {
	df := NewDataFrame([]string{"a"})
	assert.Nil(t, df.PushRow([]float64{1}))
	assert.Nil(t, df.PushRow([]float64{math.NaN()}))
	assert.Nil(t, df.PushRow([]float64{5}))
	ranges := df.Ranges()
	assert.Equal(t, 1.0, ranges[0][0])
	assert.Equal(t, 5.0, ranges[0][1])
}

func TestDataFrame_RangesAllNaN(t *testing.T) {
	df := NewDataFrame([]string{"a"})
	assert.Nil(t, df.PushRow([]float64{math.NaN()}))
	ranges := df.Ranges()
	assert.True(t, math.IsNaN(ranges[0][0]))
	assert.True(t, math.IsNaN(ranges[0][1]))
}

func TestDataFrame_MeansSkipsNaN(t *testing.T) {
	df := NewDataFrame([]string{"a"})
	assert.Nil(t, df.PushRow([]float64{1}))
	assert.Nil(t, df.PushRow([]float64{math.NaN()}))
	assert.Nil(t, df.PushRow([]float64{3}))
	means := df.Means()
	assert.Equal(t, 2.0, means[0])
}

func TestNewFilledDataFrame(t *testing.T) {
	df := NewFilledDataFrame([]string{"a", "b"}, 3, 7)
	assert.Equal(t, 3, df.NRows())
	for r := 0; r < 3; r++ {
		for c := 0; c < 2; c++ {
			assert.Equal(t, 7.0, df.At(r, c))
		}
	}
}
