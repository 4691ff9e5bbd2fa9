package kohonen

// processor.go implements the two-pass build that turns a RowSource into
// a normalized, one-hot encoded DataFrame plus the LayerSpecs a Som
// trains against. Pass one resolves column indices and, for categorical
// layers, collects the sorted set of distinct levels observed; pass two
// fills the numeric matrix, applying the no-data token as a missing
// value (NaN) marker.

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// InputLayer describes one user-declared group of input columns: either
// a block of continuous columns sharing a metric and normalization, or a
// single categorical column expanded to one-hot.
type InputLayer struct {
	Names       []string
	Weight      float64
	Categorical bool
	Metric      Metric
	Norm        NormKind
	Scale       float64

	indices []int
}

// NewContinuousLayer builds a continuous InputLayer with an explicit
// normalizer and scale.
func NewContinuousLayer(names []string, weight float64, metric Metric, norm NormKind, scale float64) InputLayer {
	return InputLayer{
		Names:       append([]string{}, names...),
		Weight:      weight,
		Categorical: false,
		Metric:      metric,
		Norm:        norm,
		Scale:       scale,
	}
}

// NewContinuousLayerSimple builds a continuous InputLayer normalized with
// Gauss/1.0, the common case.
func NewContinuousLayerSimple(names []string, weight float64) InputLayer {
	return NewContinuousLayer(names, weight, MetricSquaredEuclidean, NormGauss, 1.0)
}

// NewCategoricalLayer builds a one-hot categorical InputLayer. Its
// normalizer is always None/1.0, since one-hot indicator columns are not
// rescaled.
func NewCategoricalLayer(name string, weight float64, metric Metric) InputLayer {
	return InputLayer{
		Names:       []string{name},
		Weight:      weight,
		Categorical: true,
		Metric:      metric,
		Norm:        NormNone,
		Scale:       1.0,
	}
}

// ProcessorOption configures BuildProcessor.
type ProcessorOption func(*processorConfig)

type processorConfig struct {
	preserve    []string
	labelCol    string
	labelLength int
	noData      string
}

// WithPreserve carries the named columns through, verbatim, into
// DataToUnitTable without participating in training.
func WithPreserve(cols ...string) ProcessorOption {
	return func(c *processorConfig) { c.preserve = cols }
}

// WithLabels designates a column whose values label samples in
// visualizations and in DataToUnitTable's "label" column, truncated to
// WithLabelLength characters. It does not participate in training.
func WithLabels(col string) ProcessorOption {
	return func(c *processorConfig) { c.labelCol = col }
}

// WithLabelLength sets the maximum label length; labels longer than this
// are truncated. The default is 32.
func WithLabelLength(n int) ProcessorOption {
	return func(c *processorConfig) { c.labelLength = n }
}

// WithNoData sets the token that denotes a missing value in the source
// data. The default is "NA".
func WithNoData(token string) ProcessorOption {
	return func(c *processorConfig) { c.noData = token }
}

// Processor holds the normalized DataFrame built from a RowSource, the
// LayerSpecs describing its column layout, and enough bookkeeping to
// decode trained prototypes and input rows back to their original
// representation.
type Processor struct {
	InputLayers   []InputLayer
	Data          *DataFrame
	Layers        []LayerSpec
	Norms         []NormColumn
	Preserved     [][]string
	PreserveNames []string
	Labels        []string

	layerStarts []int
	catLevels   [][]string
	noData      string
}

// BuildProcessor runs the two-pass build over src using layers to select
// and interpret columns.
func BuildProcessor(src RowSource, layers []InputLayer, opts ...ProcessorOption) (*Processor, error) {
	cfg := &processorConfig{noData: "NA", labelLength: 32}
	for _, o := range opts {
		o(cfg)
	}

	header, err := src.Header()
	if err != nil {
		return nil, Wrapper(err, "BuildProcessor: header")
	}
	colIndex := make(map[string]int, len(header))
	for i, h := range header {
		colIndex[h] = i
	}

	layers = append([]InputLayer{}, layers...)
	for i := range layers {
		idxs := make([]int, len(layers[i].Names))
		for j, name := range layers[i].Names {
			idx, ok := colIndex[name]
			if !ok {
				return nil, Wrapper(&SchemaError{Column: name, Context: "not found in row source header"}, "BuildProcessor")
			}
			idxs[j] = idx
		}
		layers[i].indices = idxs
	}

	preserveIdx := make([]int, len(cfg.preserve))
	for i, name := range cfg.preserve {
		idx, ok := colIndex[name]
		if !ok {
			return nil, Wrapper(&SchemaError{Column: name, Context: "preserve column not found"}, "BuildProcessor")
		}
		preserveIdx[i] = idx
	}

	labelIdx := -1
	if cfg.labelCol != "" {
		idx, ok := colIndex[cfg.labelCol]
		if !ok {
			return nil, Wrapper(&SchemaError{Column: cfg.labelCol, Context: "label column not found"}, "BuildProcessor")
		}
		labelIdx = idx
	}

	levelSets := make([]map[string]struct{}, len(layers))
	for i, l := range layers {
		if l.Categorical {
			levelSets[i] = make(map[string]struct{})
		}
	}

	for {
		rec, ok, err := src.Next()
		if err != nil {
			return nil, Wrapper(err, "BuildProcessor: pass 1")
		}
		if !ok {
			break
		}
		for i, l := range layers {
			if !l.Categorical {
				continue
			}
			v := rec[l.indices[0]]
			if v == cfg.noData {
				continue
			}
			levelSets[i][v] = struct{}{}
		}
	}

	catLevels := make([][]string, len(layers))
	for i, set := range levelSets {
		if set == nil {
			continue
		}
		lvls := make([]string, 0, len(set))
		for v := range set {
			lvls = append(lvls, v)
		}
		sort.Strings(lvls)
		catLevels[i] = lvls
	}

	names, layerSpecs, layerStarts := buildLayout(layers, catLevels)

	if err := src.Rewind(); err != nil {
		return nil, Wrapper(err, "BuildProcessor: rewind")
	}

	df := NewDataFrame(names)
	var preserved [][]string
	var labels []string
	row := make([]float64, len(names))

	record := 0
	for {
		rec, ok, err := src.Next()
		if err != nil {
			return nil, Wrapper(err, "BuildProcessor: pass 2")
		}
		if !ok {
			break
		}

		for i, l := range layers {
			start := layerStarts[i]
			if l.Categorical {
				v := rec[l.indices[0]]
				width := len(catLevels[i])
				for k := 0; k < width; k++ {
					row[start+k] = 0
				}
				if v == cfg.noData {
					for k := 0; k < width; k++ {
						row[start+k] = math.NaN()
					}
					continue
				}
				pos := sort.SearchStrings(catLevels[i], v)
				if pos >= width || catLevels[i][pos] != v {
					return nil, Wrapper(&ParseError{Column: l.Names[0], Value: v, Record: record}, "BuildProcessor: pass 2")
				}
				row[start+pos] = 1
				continue
			}

			for j, colIdx := range l.indices {
				v := rec[colIdx]
				if v == cfg.noData {
					row[start+j] = math.NaN()
					continue
				}
				f, err := strconv.ParseFloat(v, 64)
				if err != nil {
					return nil, Wrapper(&ParseError{Column: l.Names[j], Value: v, Record: record}, "BuildProcessor: pass 2")
				}
				row[start+j] = f
			}
		}

		if err := df.PushRow(row); err != nil {
			return nil, Wrapper(err, "BuildProcessor: pass 2")
		}

		if len(preserveIdx) > 0 {
			p := make([]string, len(preserveIdx))
			for i, idx := range preserveIdx {
				p[i] = rec[idx]
			}
			preserved = append(preserved, p)
		}

		if labelIdx >= 0 {
			lbl := rec[labelIdx]
			if runes := []rune(lbl); len(runes) > cfg.labelLength {
				lbl = string(runes[:cfg.labelLength])
			}
			labels = append(labels, lbl)
		}

		record++
	}

	normKinds := make([]NormKind, len(names))
	scales := make([]float64, len(names))
	for i, l := range layers {
		start := layerStarts[i]
		width := layerSpecs[i].NCols
		for k := 0; k < width; k++ {
			normKinds[start+k] = l.Norm
			scales[start+k] = l.Scale
		}
	}

	normalized, norms, err := Normalize(df, normKinds, scales)
	if err != nil {
		return nil, Wrapper(err, "BuildProcessor: normalize")
	}

	if Verbose {
		fmt.Printf("kohonen: processor built %d rows, %d columns, %d layers\n", normalized.NRows(), normalized.NCols(), len(layerSpecs))
	}

	return &Processor{
		InputLayers:   layers,
		Data:          normalized,
		Layers:        layerSpecs,
		Norms:         norms,
		Preserved:     preserved,
		PreserveNames: cfg.preserve,
		Labels:        labels,
		layerStarts:   layerStarts,
		catLevels:     catLevels,
		noData:        cfg.noData,
	}, nil
}

// buildLayout computes the flattened column names, LayerSpecs (with
// weights renormalized to sum to 1), and start-column offsets implied by
// layers and their resolved categorical levels.
func buildLayout(layers []InputLayer, catLevels [][]string) ([]string, []LayerSpec, []int) {
	var names []string
	specs := make([]LayerSpec, len(layers))
	starts := make([]int, len(layers))

	totalWeight := 0.0
	for _, l := range layers {
		totalWeight += l.Weight
	}
	if totalWeight == 0 {
		totalWeight = 1
	}

	acc := 0
	for i, l := range layers {
		var width int
		if l.Categorical {
			width = len(catLevels[i])
			for _, lvl := range catLevels[i] {
				names = append(names, fmt.Sprintf("%s=%s", l.Names[0], lvl))
			}
		} else {
			width = len(l.Names)
			names = append(names, l.Names...)
		}

		specs[i] = LayerSpec{NCols: width, Weight: l.Weight / totalWeight, Categorical: l.Categorical, Metric: l.Metric}
		starts[i] = acc
		acc += width
	}

	return names, specs, starts
}

// CreateSom assembles SomParams from the processor's derived layer
// layout and constructs a Som sized nrows x ncols.
func (p *Processor) CreateSom(nrows, ncols, epochs int, kernel Kernel, alpha, radius, decay DecaySchedule, opts ...SomOption) (*Som, error) {
	params, err := NewSomParams(epochs, kernel, alpha, radius, decay, p.Layers)
	if err != nil {
		return nil, err
	}

	return NewSom(p.Data.NCols(), nrows, ncols, params, opts...)
}
