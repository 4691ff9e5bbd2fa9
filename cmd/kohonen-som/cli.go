package main

// cli.go defines the flag surface and turns parsed flags into the
// InputLayer/SomParams values processor.go and som.go expect, validating
// option counts and schedule shapes the way the original CLI's
// CliParsed::from_cli does.

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/mlange-42/kohonen-go"
)

// stringListFlag accumulates one value per flag occurrence, e.g.
// repeated `--layers "a b" --layers "c"`.
type stringListFlag struct {
	values []string
}

func (f *stringListFlag) String() string {
	return strings.Join(f.values, ",")
}

func (f *stringListFlag) Set(v string) error {
	f.values = append(f.values, v)
	return nil
}

// floatListFlag accumulates every occurrence's value, split on whitespace,
// e.g. a single `--weights "1 2 3"` call populates three entries.
type floatListFlag struct {
	values []float64
}

func (f *floatListFlag) String() string {
	out := make([]string, len(f.values))
	for i, v := range f.values {
		out[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(out, ",")
}

func (f *floatListFlag) Set(v string) error {
	for _, tok := range strings.Fields(v) {
		x, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return fmt.Errorf("bad float %q: %w", tok, err)
		}
		f.values = append(f.values, x)
	}
	return nil
}

// cliArgs holds the raw, unresolved flag values.
type cliArgs struct {
	file         string
	size         string
	epochs       int
	layers       stringListFlag
	weights      floatListFlag
	categ        stringListFlag
	metric       stringListFlag
	norm         stringListFlag
	alpha        stringListFlag
	radius       stringListFlag
	decay        stringListFlag
	neigh        string
	preserve     stringListFlag
	labels       string
	labelLength  int
	labelSamples int
	noData       string
	output       string
	wait         bool
	delimiter    string
}

func newFlagSet() (*flag.FlagSet, *cliArgs) {
	fs := flag.NewFlagSet("kohonen-som", flag.ContinueOnError)
	a := &cliArgs{}

	fs.StringVar(&a.file, "file", "", "path to the input table (required)")
	fs.StringVar(&a.size, "size", "", "SOM grid shape: width height (required)")
	fs.IntVar(&a.epochs, "epochs", 0, "training length (required)")
	fs.Var(&a.layers, "layers", `space-separated column names for one layer, repeatable`)
	fs.Var(&a.weights, "weights", "per-layer influence weight (default 1 each)")
	fs.Var(&a.categ, "categ", "per-layer categorical flag: true/false (default false)")
	fs.Var(&a.metric, "metric", "per-layer metric: euclidean|tanimoto")
	fs.Var(&a.norm, "norm", "per-layer normalizer: unit|gauss|none")
	fs.Var(&a.alpha, "alpha", "learning-rate schedule: start end shape(lin|exp)")
	fs.Var(&a.radius, "radius", "neighborhood-radius schedule: start end shape(lin|exp)")
	fs.Var(&a.decay, "decay", "global weight decay schedule: start end shape(lin|exp)")
	fs.StringVar(&a.neigh, "neigh", "gauss", "neighborhood kernel: gauss|triangular|epanechnikov|quartic|triweight")
	fs.Var(&a.preserve, "preserve", "pass-through column, repeatable")
	fs.StringVar(&a.labels, "labels", "", "optional label column for visualization")
	fs.IntVar(&a.labelLength, "label-length", 32, "label truncation length")
	fs.IntVar(&a.labelSamples, "label-samples", 0, "random sample size for labeled points in the viewer")
	fs.StringVar(&a.noData, "no-data", "NA", "token denoting a missing value")
	fs.StringVar(&a.output, "output", "", "base path for written tables and SOM JSON")
	fs.BoolVar(&a.wait, "wait", false, "open the component-map viewer in a browser after writing outputs")
	fs.StringVar(&a.delimiter, "delimiter", ",", "field delimiter for input and output tables")

	return fs, a
}

// resolved is the fully validated, typed configuration derived from cliArgs.
type resolved struct {
	file         string
	sizeW, sizeH int
	epochs       int
	delimiter    rune
	layers       []kohonen.InputLayer
	alpha        kohonen.DecaySchedule
	radius       kohonen.DecaySchedule
	decay        kohonen.DecaySchedule
	kernel       kohonen.Kernel
	preserve     []string
	labels       string
	labelLength  int
	labelSamples int
	noData       string
	output       string
	wait         bool
}

func resolveArgs(a *cliArgs) (*resolved, error) {
	if a.file == "" {
		return nil, kohonen.Wrapper(&kohonen.ConfigError{Msg: "--file is required"}, "resolveArgs")
	}
	sizeW, sizeH, err := parseSize(a.size)
	if err != nil {
		return nil, err
	}
	if a.epochs < 2 {
		return nil, kohonen.Wrapper(&kohonen.ConfigError{Msg: "--epochs must be >= 2"}, "resolveArgs")
	}
	if len(a.layers.values) == 0 {
		return nil, kohonen.Wrapper(&kohonen.ConfigError{Msg: "at least one --layers is required"}, "resolveArgs")
	}
	if len(a.delimiter) != 1 {
		return nil, kohonen.Wrapper(&kohonen.ConfigError{Msg: "--delimiter must be a single character"}, "resolveArgs")
	}

	n := len(a.layers.values)

	categ := expandBools(a.categ.values, n, false)
	if len(categ) != n {
		return nil, kohonen.Wrapper(&kohonen.ConfigError{Msg: "--categ count must match --layers count"}, "resolveArgs")
	}

	weights := a.weights.values
	if len(weights) == 0 {
		weights = make([]float64, n)
		for i := range weights {
			weights[i] = 1
		}
	}
	if len(weights) != n {
		return nil, kohonen.Wrapper(&kohonen.ConfigError{Msg: "--weights count must match --layers count"}, "resolveArgs")
	}

	metrics, err := expandMetrics(a.metric.values, categ)
	if err != nil {
		return nil, err
	}
	norms, err := expandNorms(a.norm.values, categ)
	if err != nil {
		return nil, err
	}

	layers := make([]kohonen.InputLayer, n)
	for i := range layers {
		names := strings.Fields(a.layers.values[i])
		if categ[i] {
			if len(names) != 1 {
				return nil, kohonen.Wrapper(&kohonen.ConfigError{Msg: fmt.Sprintf("categorical layer %d must name exactly one column", i)}, "resolveArgs")
			}
			layers[i] = kohonen.NewCategoricalLayer(names[0], weights[i], metrics[i])
		} else {
			layers[i] = kohonen.NewContinuousLayer(names, weights[i], metrics[i], norms[i], 1.0)
		}
	}

	alpha, err := parseSchedule(a.alpha.values, kohonen.NewLinearDecay(0.5, 0.01))
	if err != nil {
		return nil, err
	}
	radius, err := parseSchedule(a.radius.values, kohonen.NewLinearDecay(float64(max(sizeW, sizeH))/2, 1))
	if err != nil {
		return nil, err
	}
	decay, err := parseSchedule(a.decay.values, kohonen.NewLinearDecay(0, 0))
	if err != nil {
		return nil, err
	}

	kernel, err := parseKernel(a.neigh)
	if err != nil {
		return nil, err
	}

	return &resolved{
		file:         a.file,
		sizeW:        sizeW,
		sizeH:        sizeH,
		epochs:       a.epochs,
		delimiter:    rune(a.delimiter[0]),
		layers:       layers,
		alpha:        alpha,
		radius:       radius,
		decay:        decay,
		kernel:       kernel,
		preserve:     a.preserve.values,
		labels:       a.labels,
		labelLength:  a.labelLength,
		labelSamples: a.labelSamples,
		noData:       a.noData,
		output:       a.output,
		wait:         a.wait,
	}, nil
}

func expandBools(values []string, n int, def bool) []bool {
	if len(values) == 0 {
		out := make([]bool, n)
		for i := range out {
			out[i] = def
		}
		return out
	}
	out := make([]bool, len(values))
	for i, v := range values {
		out[i] = v == "true" || v == "1" || v == "t"
	}
	return out
}

func expandMetrics(values []string, categ []bool) ([]kohonen.Metric, error) {
	n := len(categ)
	out := make([]kohonen.Metric, n)
	for i := range out {
		if categ[i] {
			out[i] = kohonen.MetricTanimoto
		} else {
			out[i] = kohonen.MetricEuclidean
		}
	}
	if len(values) == 0 {
		return out, nil
	}
	if len(values) != n {
		return nil, kohonen.Wrapper(&kohonen.ConfigError{Msg: "--metric count must match --layers count"}, "expandMetrics")
	}
	for i, v := range values {
		switch v {
		case "euclidean":
			out[i] = kohonen.MetricEuclidean
		case "tanimoto":
			out[i] = kohonen.MetricTanimoto
		default:
			return nil, kohonen.Wrapper(&kohonen.ConfigError{Msg: fmt.Sprintf("unknown metric %q", v)}, "expandMetrics")
		}
	}
	return out, nil
}

func expandNorms(values []string, categ []bool) ([]kohonen.NormKind, error) {
	n := len(categ)
	out := make([]kohonen.NormKind, n)
	for i := range out {
		if categ[i] {
			out[i] = kohonen.NormNone
		} else {
			out[i] = kohonen.NormGauss
		}
	}
	if len(values) == 0 {
		return out, nil
	}
	if len(values) != n {
		return nil, kohonen.Wrapper(&kohonen.ConfigError{Msg: "--norm count must match --layers count"}, "expandNorms")
	}
	for i, v := range values {
		switch v {
		case "unit":
			out[i] = kohonen.NormUnit
		case "gauss":
			out[i] = kohonen.NormGauss
		case "none":
			out[i] = kohonen.NormNone
		default:
			return nil, kohonen.Wrapper(&kohonen.ConfigError{Msg: fmt.Sprintf("unknown norm %q", v)}, "expandNorms")
		}
	}
	return out, nil
}

// parseSize parses a "--size" value of the form "width height" into its
// two positive integer dimensions.
func parseSize(s string) (int, int, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return 0, 0, kohonen.Wrapper(&kohonen.ConfigError{Msg: "--size must be two space-separated integers: width height"}, "parseSize")
	}
	w, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, kohonen.Wrapper(&kohonen.ConfigError{Msg: "--size width must be an integer"}, "parseSize")
	}
	h, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, kohonen.Wrapper(&kohonen.ConfigError{Msg: "--size height must be an integer"}, "parseSize")
	}
	if w <= 0 || h <= 0 {
		return 0, 0, kohonen.Wrapper(&kohonen.ConfigError{Msg: "--size width and height must be positive"}, "parseSize")
	}

	return w, h, nil
}

func parseSchedule(tokens []string, def kohonen.DecaySchedule) (kohonen.DecaySchedule, error) {
	if len(tokens) == 0 {
		return def, nil
	}
	fields := strings.Fields(strings.Join(tokens, " "))
	if len(fields) != 3 {
		return kohonen.DecaySchedule{}, kohonen.Wrapper(&kohonen.ConfigError{Msg: "schedule needs exactly 3 tokens: start end shape"}, "parseSchedule")
	}
	start, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return kohonen.DecaySchedule{}, kohonen.Wrapper(&kohonen.ConfigError{Msg: "schedule start must be a number"}, "parseSchedule")
	}
	end, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return kohonen.DecaySchedule{}, kohonen.Wrapper(&kohonen.ConfigError{Msg: "schedule end must be a number"}, "parseSchedule")
	}
	switch fields[2] {
	case "lin":
		return kohonen.NewLinearDecay(start, end), nil
	case "exp":
		return kohonen.NewExponentialDecay(start, end)
	default:
		return kohonen.DecaySchedule{}, kohonen.Wrapper(&kohonen.ConfigError{Msg: fmt.Sprintf("unknown schedule shape %q", fields[2])}, "parseSchedule")
	}
}

func parseKernel(name string) (kohonen.Kernel, error) {
	switch name {
	case "gauss":
		return kohonen.KernelGaussian, nil
	case "triangular":
		return kohonen.KernelTriangular, nil
	case "epanechnikov":
		return kohonen.KernelEpanechnikov, nil
	case "quartic":
		return kohonen.KernelQuartic, nil
	case "triweight":
		return kohonen.KernelTriweight, nil
	default:
		return 0, kohonen.Wrapper(&kohonen.ConfigError{Msg: fmt.Sprintf("unknown neighborhood kernel %q", name)}, "parseKernel")
	}
}
