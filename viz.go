package kohonen

// viz.go implements a thin, read-only viewer on top of a trained Som: it
// never mutates the Som or Processor, only renders their current state.
// PlotDef/Plotter are a direct adaptation of the teacher's generic
// plotly-figure helper; ComponentMap builds the SOM-specific traces.

import (
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"strings"
	"time"

	grob "github.com/MetalBlueberry/go-plotly/graph_objects"
	"github.com/MetalBlueberry/go-plotly/offline"
)

// Browser is the browser used to display a plot when PlotDef.Show is set.
var Browser = "firefox"

// PlotDef specifies the common plotly layout options used by ComponentMap.
type PlotDef struct {
	Show     bool    // Show - true = show graph in browser
	Title    string  // Title - plot title
	XTitle   string  // XTitle - x-axis title
	YTitle   string  // YTitle - y-axis title
	STitle   string  // STitle - sub-title (under the x-axis)
	Legend   bool    // Legend - true = show legend
	Height   float64 // Height - height of graph, in pixels
	Width    float64 // Width - width of graph, in pixels
	FileName string  // FileName - output file for graph (in html)
}

// Plotter renders fig with layout lay, augmented by the common options in
// pd: title, axis titles, legend, size, and either writing to FileName or
// opening a temporary file in Browser.
func Plotter(fig *grob.Fig, lay *grob.Layout, pd *PlotDef) error {
	pd.Title = strings.ReplaceAll(pd.Title, "\n", "<br>")
	pd.STitle = strings.ReplaceAll(pd.STitle, "\n", "<br>")
	pd.XTitle = strings.ReplaceAll(pd.XTitle, "\n", "<br>")
	pd.YTitle = strings.ReplaceAll(pd.YTitle, "\n", "<br>")

	if lay == nil {
		lay = &grob.Layout{}
	}

	if pd.Title != "" {
		lay.Title = &grob.LayoutTitle{Text: pd.Title}
	}

	if pd.YTitle != "" {
		if lay.Yaxis == nil {
			lay.Yaxis = &grob.LayoutYaxis{Title: &grob.LayoutYaxisTitle{Text: pd.YTitle}}
		} else {
			lay.Yaxis.Title = &grob.LayoutYaxisTitle{Text: pd.YTitle}
		}
		lay.Yaxis.Showline = grob.True
	}

	if pd.XTitle != "" {
		xTitle := pd.XTitle
		if pd.STitle != "" {
			xTitle += fmt.Sprintf("<br>%s", pd.STitle)
		}

		if lay.Xaxis == nil {
			lay.Xaxis = &grob.LayoutXaxis{Title: &grob.LayoutXaxisTitle{Text: xTitle}}
		} else {
			lay.Xaxis.Title = &grob.LayoutXaxisTitle{Text: xTitle}
		}
	}

	if !pd.Legend {
		lay.Showlegend = grob.False
	}

	if pd.Width > 0.0 {
		lay.Width = pd.Width
	}
	if pd.Height > 0.0 {
		lay.Height = pd.Height
	}

	fig.Layout = lay

	if pd.FileName != "" {
		offline.ToHtml(fig, pd.FileName)
	}
	if pd.Show {
		tmp := false
		if pd.FileName == "" {
			tmp = true
			pd.FileName = fmt.Sprintf("%s/kohonen-som%d.html", os.TempDir(), rand.New(rand.NewSource(time.Now().UnixNano())).Uint32())
		}

		offline.ToHtml(fig, pd.FileName)
		cmd := exec.Command(Browser, "-url", pd.FileName)
		if e := cmd.Start(); e != nil {
			return Wrapper(e, "Plotter")
		}
		time.Sleep(time.Second)

		if tmp {
			if e := os.Remove(pd.FileName); e != nil {
				return Wrapper(e, "Plotter")
			}
		}
	}

	return nil
}

// ComponentMap renders one heatmap-style scatter trace per continuous
// layer column (marker color encodes the denormalized prototype value)
// and, for categorical layers, a text trace with the decoded level at
// each unit. If the Processor has labels and sampleSize is positive, up
// to sampleSize randomly chosen labeled data points are overlaid at the
// grid position of their best matching unit; points sharing a unit are
// drawn on top of each other.
func (p *Processor) ComponentMap(som *Som, sampleSize int, pd *PlotDef) (*grob.Fig, error) {
	n := som.NRows * som.NCols
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := 0; i < n; i++ {
		r, c := som.ToRowCol(i)
		xs[i] = float64(c)
		ys[i] = float64(r)
	}

	traces := grob.Traces{}

	for li, layer := range p.Layers {
		start := p.layerStarts[li]
		inp := p.InputLayers[li]

		if inp.Categorical {
			text := make([]string, n)
			for i := 0; i < n; i++ {
				row := som.Weights.Row(i)
				text[i] = argmaxDecode(row[start:start+layer.NCols], p.catLevels[li], p.noData)
			}
			traces = append(traces, &grob.Scatter{
				Type: grob.TraceTypeScatter,
				Name: inp.Names[0],
				X:    xs,
				Y:    ys,
				Mode: grob.ScatterModeMarkers,
				Text: text,
			})
			continue
		}

		for k, colName := range inp.Names {
			vals := make([]float64, n)
			for i := 0; i < n; i++ {
				vals[i] = p.Norms[start+k].Inverse.Apply(som.Weights.At(i, start+k))
			}
			traces = append(traces, &grob.Scatter{
				Type: grob.TraceTypeScatter,
				Name: colName,
				X:    xs,
				Y:    ys,
				Mode: grob.ScatterModeMarkers,
				Marker: &grob.ScatterMarker{
					Color: vals,
				},
			})
		}
	}

	if p.Labels != nil && sampleSize > 0 {
		order := rand.New(rand.NewSource(time.Now().UnixNano())).Perm(p.Data.NRows())
		if len(order) > sampleSize {
			order = order[:sampleSize]
		}
		var lx, ly []float64
		var lt []string
		for _, r := range order {
			idx, _, err := som.FindBMU(p.Data.Row(r))
			if err != nil {
				return nil, Wrapper(err, "(*Processor).ComponentMap")
			}
			row, col := som.ToRowCol(idx)
			lx = append(lx, float64(col))
			ly = append(ly, float64(row))
			lt = append(lt, p.Labels[r])
		}
		traces = append(traces, &grob.Scatter{
			Type: grob.TraceTypeScatter,
			Name: "samples",
			X:    lx,
			Y:    ly,
			Mode: grob.ScatterModeMarkers,
			Text: lt,
		})
	}

	fig := &grob.Fig{Data: traces}
	if pd == nil {
		pd = &PlotDef{}
	}
	if err := Plotter(fig, &grob.Layout{}, pd); err != nil {
		return nil, err
	}

	return fig, nil
}
