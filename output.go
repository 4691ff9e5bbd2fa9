package kohonen

// output.go implements the CSV-shaped result tables a trained run
// produces: the unit prototypes table (decoded back to original units),
// the per-row data-to-unit assignment table, and the normalization
// parameter table, plus a small CSV writer shared by all three.

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
)

// Table is a generic header+rows result, ready to write out as CSV.
type Table struct {
	Header []string
	Rows   [][]string
}

// WriteCSV writes t to path using delimiter as the field separator.
func (t *Table) WriteCSV(path string, delimiter rune) error {
	f, err := os.Create(path)
	if err != nil {
		return Wrapper(&IoError{Err: err}, "(*Table).WriteCSV")
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	w.Comma = delimiter

	if err := w.Write(t.Header); err != nil {
		return Wrapper(&IoError{Err: err}, "(*Table).WriteCSV")
	}
	for _, r := range t.Rows {
		if err := w.Write(r); err != nil {
			return Wrapper(&IoError{Err: err}, "(*Table).WriteCSV")
		}
	}
	w.Flush()

	if err := w.Error(); err != nil {
		return Wrapper(&IoError{Err: err}, "(*Table).WriteCSV")
	}

	return nil
}

// UnitsTable decodes every unit of som back to original units: continuous
// layers are denormalized, categorical layers are decoded to the level
// with the largest one-hot weight.
func (p *Processor) UnitsTable(som *Som) *Table {
	header := []string{"index", "row", "col"}
	for _, inp := range p.InputLayers {
		if inp.Categorical {
			header = append(header, inp.Names[0])
		} else {
			header = append(header, inp.Names...)
		}
	}

	rows := make([][]string, 0, som.NRows*som.NCols)
	for idx := 0; idx < som.NRows*som.NCols; idx++ {
		r, c := som.ToRowCol(idx)
		row := []string{fmt.Sprint(idx), fmt.Sprint(r), fmt.Sprint(c)}
		row = append(row, p.decodeBlock(som.Weights.Row(idx))...)
		rows = append(rows, row)
	}

	return &Table{Header: header, Rows: rows}
}

// DataToUnitTable assigns every training row to its best matching unit
// and reports the row's preserved columns, label, decoded layer values,
// and the winning unit's index/row/col.
func (p *Processor) DataToUnitTable(som *Som) (*Table, error) {
	header := append([]string{}, p.PreserveNames...)
	if p.Labels != nil {
		header = append(header, "label")
	}
	for _, inp := range p.InputLayers {
		if inp.Categorical {
			header = append(header, inp.Names[0])
		} else {
			header = append(header, inp.Names...)
		}
	}
	header = append(header, "som_index", "som_row", "som_col")

	rows := make([][]string, 0, p.Data.NRows())
	for r := 0; r < p.Data.NRows(); r++ {
		sample := p.Data.Row(r)
		idx, _, err := som.FindBMU(sample)
		if err != nil {
			return nil, Wrapper(err, "(*Processor).DataToUnitTable")
		}
		sr, sc := som.ToRowCol(idx)

		row := make([]string, 0, len(header))
		if p.Preserved != nil {
			row = append(row, p.Preserved[r]...)
		}
		if p.Labels != nil {
			row = append(row, p.Labels[r])
		}
		row = append(row, p.decodeBlock(sample)...)
		row = append(row, fmt.Sprint(idx), fmt.Sprint(sr), fmt.Sprint(sc))

		rows = append(rows, row)
	}

	return &Table{Header: header, Rows: rows}, nil
}

// decodeBlock decodes a full Dims-length weight/sample vector, one field
// per layer, using p.Layers/p.layerStarts/p.catLevels/p.noData.
func (p *Processor) decodeBlock(values []float64) []string {
	out := make([]string, 0, len(p.Layers))
	for li, layer := range p.Layers {
		start := p.layerStarts[li]
		slice := values[start : start+layer.NCols]
		if layer.Categorical {
			out = append(out, argmaxDecode(slice, p.catLevels[li], p.noData))
			continue
		}
		for k, v := range slice {
			dn := p.Norms[start+k].Inverse.Apply(v)
			out = append(out, fmt.Sprintf("%g", dn))
		}
	}

	return out
}

func argmaxDecode(slice []float64, levels []string, noData string) string {
	best := -1
	bestVal := math.Inf(-1)
	for i, v := range slice {
		if math.IsNaN(v) {
			continue
		}
		if v > bestVal {
			bestVal = v
			best = i
		}
	}
	if best < 0 {
		return noData
	}

	return levels[best]
}

// NormalizationTable reports, per output column, its normalizer kind and
// the forward and inverse LinearTransform parameters.
func (p *Processor) NormalizationTable() *Table {
	header := []string{"column", "norm", "fwd_scale", "fwd_offset", "inv_scale", "inv_offset"}
	names := p.Data.Names()
	rows := make([][]string, 0, len(p.Norms))
	for i, n := range p.Norms {
		rows = append(rows, []string{
			names[i],
			normKindString(n.Kind),
			fmt.Sprintf("%g", n.Forward.Scale),
			fmt.Sprintf("%g", n.Forward.Offset),
			fmt.Sprintf("%g", n.Inverse.Scale),
			fmt.Sprintf("%g", n.Inverse.Offset),
		})
	}

	return &Table{Header: header, Rows: rows}
}

func normKindString(k NormKind) string {
	switch k {
	case NormUnit:
		return "unit"
	case NormGauss:
		return "gauss"
	default:
		return "none"
	}
}
