package kohonen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecaySchedule_LinearValue(t *testing.T) {
	d := NewLinearDecay(1.0, 0.0)
	assert.Equal(t, 1.0, d.Value(0, 5))
	assert.Equal(t, 0.0, d.Value(4, 5))
	assert.InEpsilon(t, 0.5, d.Value(2, 5), 1e-9)
}

func TestDecaySchedule_ExponentialValue(t *testing.T) {
	d, err := NewExponentialDecay(1.0, 0.01)
	assert.Nil(t, err)
	assert.InEpsilon(t, 1.0, d.Value(0, 5), 1e-9)
	assert.InEpsilon(t, 0.01, d.Value(4, 5), 1e-6)
}

func TestNewExponentialDecay_RejectsNonPositive(t *testing.T) {
	_, err := NewExponentialDecay(0, 1)
	assert.NotNil(t, err)
	_, err = NewExponentialDecay(1, -1)
	assert.NotNil(t, err)
}

func TestNewSomParams_RejectsFewEpochs(t *testing.T) {
	_, err := NewSomParams(1, KernelGaussian, NewLinearDecay(1, 0), NewLinearDecay(1, 0), NewLinearDecay(0, 0), nil)
	assert.NotNil(t, err)
}

func TestNewSomParams_StartColumns(t *testing.T) {
	layers := []LayerSpec{{NCols: 2}, {NCols: 3}, {NCols: 1}}
	p, err := NewSomParams(10, KernelGaussian, NewLinearDecay(1, 0), NewLinearDecay(1, 0), NewLinearDecay(0, 0), layers)
	assert.Nil(t, err)
	assert.Equal(t, []int{0, 2, 5}, p.StartColumns)
	assert.Equal(t, 6, p.Dims())
}
