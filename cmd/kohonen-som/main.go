// Command kohonen-som trains a Self-Organizing Map (including the
// multi-layer Super-SOM / XYF variant) on a delimited input table and
// writes the trained grid plus diagnostic tables to disk.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mlange-42/kohonen-go"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		report(err)
		os.Exit(1)
	}
}

func run(argv []string) error {
	args, err := parseArgv(argv)
	if err != nil {
		return err
	}

	cfg, err := resolveArgs(args)
	if err != nil {
		return err
	}

	src, err := kohonen.NewCSVRowSource(cfg.file, cfg.delimiter)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	opts := []kohonen.ProcessorOption{kohonen.WithNoData(cfg.noData)}
	if len(cfg.preserve) > 0 {
		opts = append(opts, kohonen.WithPreserve(cfg.preserve...))
	}
	if cfg.labels != "" {
		opts = append(opts, kohonen.WithLabels(cfg.labels), kohonen.WithLabelLength(cfg.labelLength))
	}

	proc, err := kohonen.BuildProcessor(src, cfg.layers, opts...)
	if err != nil {
		return err
	}

	som, err := proc.CreateSom(cfg.sizeH, cfg.sizeW, cfg.epochs, cfg.kernel, cfg.alpha, cfg.radius, cfg.decay)
	if err != nil {
		return err
	}

	for {
		more, err := som.TrainEpoch(proc.Data, nil)
		if err != nil {
			return err
		}
		if !more {
			break
		}
		if kohonen.Verbose {
			fmt.Printf("kohonen-som: epoch %d/%d\n", som.Epoch, cfg.epochs)
		}
	}

	if cfg.output != "" {
		if err := writeOutputs(proc, som, cfg); err != nil {
			return err
		}
	}

	if cfg.labelSamples > 0 || cfg.wait {
		pd := &kohonen.PlotDef{Show: cfg.wait, Title: "Component map"}
		if cfg.output != "" {
			pd.FileName = cfg.output + "-viewer.html"
		}
		if _, err := proc.ComponentMap(som, cfg.labelSamples, pd); err != nil {
			return err
		}
	}

	return nil
}

func writeOutputs(proc *kohonen.Processor, som *kohonen.Som, cfg *resolved) error {
	units := proc.UnitsTable(som)
	if err := units.WriteCSV(cfg.output+"-units.csv", cfg.delimiter); err != nil {
		return err
	}

	out, err := proc.DataToUnitTable(som)
	if err != nil {
		return err
	}
	if err := out.WriteCSV(cfg.output+"-out.csv", cfg.delimiter); err != nil {
		return err
	}

	norm := proc.NormalizationTable()
	if err := norm.WriteCSV(cfg.output+"-norm.csv", cfg.delimiter); err != nil {
		return err
	}

	return som.MarshalSOM(cfg.output + "-som.json")
}

func parseArgv(argv []string) (*cliArgs, error) {
	if len(argv) == 1 {
		if _, err := os.Stat(argv[0]); err == nil {
			tokens, err := tokenizeOptionsFile(argv[0])
			if err != nil {
				return nil, err
			}
			argv = tokens
		}
	}

	fs, args := newFlagSet()
	if err := fs.Parse(argv); err != nil {
		return nil, kohonen.Wrapper(err, "parseArgv")
	}

	return args, nil
}

// report prints a diagnostic tailored to the five core error kinds,
// falling back to a generic message for anything else.
func report(err error) {
	var schema *kohonen.SchemaError
	var parse *kohonen.ParseError
	var cfgErr *kohonen.ConfigError
	var dtype *kohonen.DataTypeError
	var ioErr *kohonen.IoError

	switch {
	case errors.As(err, &schema):
		fmt.Fprintf(os.Stderr, "kohonen-som: schema error: %v\n", err)
	case errors.As(err, &parse):
		fmt.Fprintf(os.Stderr, "kohonen-som: parse error: %v\n", err)
	case errors.As(err, &cfgErr):
		fmt.Fprintf(os.Stderr, "kohonen-som: config error: %v\n", err)
	case errors.As(err, &dtype):
		fmt.Fprintf(os.Stderr, "kohonen-som: data type error: %v\n", err)
	case errors.As(err, &ioErr):
		fmt.Fprintf(os.Stderr, "kohonen-som: io error: %v\n", err)
	default:
		fmt.Fprintf(os.Stderr, "kohonen-som: %v\n", err)
	}
}
