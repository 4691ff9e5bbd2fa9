package kohonen

// layer.go implements the SOM layer specification, the decay schedule
// used for the learning rate, the neighborhood radius, and the global
// weight decay, and the parameter bundle the Som trains against.

import (
	"fmt"
	"math"
)

// DecayShape selects how a DecaySchedule interpolates between its start
// and end values over the course of training.
type DecayShape int

const (
	// DecayLinear interpolates start to end linearly over epoch/(max-1).
	DecayLinear DecayShape = iota
	// DecayExponential interpolates start to end geometrically. Both
	// Start and End must be strictly positive.
	DecayExponential
)

// DecaySchedule describes how a training parameter (learning rate,
// neighborhood radius, or global weight decay) evolves over the course of
// training.
type DecaySchedule struct {
	Start float64
	End   float64
	Shape DecayShape
}

// NewLinearDecay builds a linear DecaySchedule.
func NewLinearDecay(start, end float64) DecaySchedule {
	return DecaySchedule{Start: start, End: end, Shape: DecayLinear}
}

// NewExponentialDecay builds an exponential DecaySchedule. Both start and
// end must be strictly positive.
func NewExponentialDecay(start, end float64) (DecaySchedule, error) {
	if start <= 0 || end <= 0 {
		return DecaySchedule{}, Wrapper(&ConfigError{Msg: "exponential decay requires start > 0 and end > 0"}, "NewExponentialDecay")
	}

	return DecaySchedule{Start: start, End: end, Shape: DecayExponential}, nil
}

// Value returns the schedule's value at epoch (0-based) out of maxEpochs
// total epochs. maxEpochs must be >= 2; callers validate this once at
// SomParams construction time rather than on every call.
func (d DecaySchedule) Value(epoch, maxEpochs int) float64 {
	frac := float64(epoch) / float64(maxEpochs-1)

	switch d.Shape {
	case DecayExponential:
		rate := math.Log(d.Start/d.End) / float64(maxEpochs-1)
		return d.Start * math.Exp(-rate*float64(epoch))
	default:
		return d.Start + frac*(d.End-d.Start)
	}
}

// LayerSpec describes one block of columns within a Som's flattened
// weight vector: its width, its relative weight in the XYF distance sum,
// whether it holds one-hot categorical columns, and the metric used to
// compare it.
type LayerSpec struct {
	NCols       int
	Weight      float64
	Categorical bool
	Metric      Metric
}

// SomParams bundles everything that controls how a Som trains: the
// number of epochs, the neighborhood kernel, the three decay schedules,
// and the layer layout of the flattened weight vector. StartColumns is
// the prefix-sum offset of each layer within that vector, derived from
// Layers.
type SomParams struct {
	Epochs       int
	KernelFn     Kernel
	Alpha        DecaySchedule
	Radius       DecaySchedule
	Decay        DecaySchedule
	Layers       []LayerSpec
	StartColumns []int
}

// NewSomParams validates and assembles a SomParams, computing
// StartColumns from Layers.
func NewSomParams(epochs int, kernel Kernel, alpha, radius, decay DecaySchedule, layers []LayerSpec) (SomParams, error) {
	if epochs < 2 {
		return SomParams{}, Wrapper(&ConfigError{Msg: fmt.Sprintf("epochs must be >= 2, got %d", epochs)}, "NewSomParams")
	}

	start := make([]int, len(layers))
	acc := 0
	for i, l := range layers {
		start[i] = acc
		acc += l.NCols
	}

	return SomParams{
		Epochs:       epochs,
		KernelFn:     kernel,
		Alpha:        alpha,
		Radius:       radius,
		Decay:        decay,
		Layers:       layers,
		StartColumns: start,
	}, nil
}

// Dims returns the total width of the flattened weight vector implied by
// Layers.
func (p SomParams) Dims() int {
	dims := 0
	for _, l := range p.Layers {
		dims += l.NCols
	}

	return dims
}
