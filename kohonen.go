// Package kohonen trains Self-Organizing Maps, including the multi-layer
// Super-SOM (XYF) variant, on tabular data mixing continuous and
// categorical columns.
//
// A Processor turns a RowSource into a normalized, one-hot encoded
// DataFrame plus a set of LayerSpecs describing how the columns are
// grouped for distance computation. A Som is trained against that
// DataFrame and can be queried for best matching units, saved to disk,
// or rendered with the component-map helpers in viz.go.
package kohonen

// Verbose controls progress printing during processor builds and training.
var Verbose = true
