package explorer

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/batchatco/go-netcdf-explorer/explorer/axis"
	"github.com/batchatco/go-netcdf-explorer/explorer/slicer"
)

// View is one display session of a variable: a 2D grid plus its own layer selection.
// Views of the same variable share its data and navigate independently.
type View struct {
	v      *Variable
	s      *slicer.Slicer
	layers *slicer.Layers
}

func newView(v *Variable) (*View, error) {
	s, err := slicer.New(v.Schema.Dimensions, v.assign)
	if err != nil {
		return nil, err
	}
	return &View{v: v, s: s, layers: s.NewLayers()}, nil
}

func (w *View) Variable() *Variable { return w.v }

func (w *View) Rows() int { return int(w.s.Rows()) }

func (w *View) Cols() int { return int(w.s.Cols()) }

// NumLayers is the number of layer axes.
func (w *View) NumLayers() int { return w.s.NumLayers() }

// Layers returns the selected index of every layer axis.
func (w *View) Layers() []int { return w.layers.Values() }

func (w *View) Advance(i int) error { return w.layers.Advance(i) }

func (w *View) Retreat(i int) error { return w.layers.Retreat(i) }

// SetLayer selects index v on layer axis i.
func (w *View) SetLayer(i, v int) error { return w.layers.Set(i, v) }

// SetLayers selects the leading layer indices in order.
func (w *View) SetLayers(values []int) error { return w.layers.SetAll(values) }

func (w *View) index(row, col int) (int, error) {
	buf, err := w.v.Buffer()
	if err != nil {
		return 0, err
	}
	idx, err := w.s.Index(w.layers, row, col)
	if err != nil {
		return 0, err
	}
	if idx >= uint64(buf.Len()) {
		return 0, fmt.Errorf("%w: element %d of %d", slicer.ErrInvalidIndex, idx, buf.Len())
	}
	return int(idx), nil
}

// Cell is the formatted element at (row, col) of the selected layer.
func (w *View) Cell(row, col int) (string, error) {
	idx, err := w.index(row, col)
	if err != nil {
		return "", err
	}
	return w.v.buf.Text(idx), nil
}

// Float is the element at (row, col) as a float64. ok is false for char and string
// variables.
func (w *View) Float(row, col int) (f float64, ok bool, err error) {
	idx, err := w.index(row, col)
	if err != nil {
		return 0, false, err
	}
	f, ok = w.v.buf.Float(idx)
	return f, ok, nil
}

func (w *View) label(dim, pos int, size uint64) (string, error) {
	if pos < 0 || uint64(pos) >= size {
		return "", fmt.Errorf("%w: %d of %d", slicer.ErrInvalidIndex, pos, size)
	}
	if dim == axis.None {
		return "1", nil
	}
	return w.v.Label(dim, pos), nil
}

// RowLabel is the header text of a row.
func (w *View) RowLabel(row int) (string, error) {
	return w.label(w.v.assign.Row, row, w.s.Rows())
}

// ColLabel is the header text of a column.
func (w *View) ColLabel(col int) (string, error) {
	return w.label(w.v.assign.Col, col, w.s.Cols())
}

// LayerName is the dimension name of layer axis i.
func (w *View) LayerName(i int) (string, error) {
	_, dim, err := w.s.LayerDim(i)
	if err != nil {
		return "", err
	}
	return dim.Name, nil
}

// LayerLabels lists the choices of layer axis i, one per index.
func (w *View) LayerLabels(i int) ([]string, error) {
	d, dim, err := w.s.LayerDim(i)
	if err != nil {
		return nil, err
	}
	labels := make([]string, dim.Size)
	for pos := range labels {
		labels[pos] = w.v.Label(d, pos)
	}
	return labels, nil
}

// LayerLabel is the label of the selected index of layer axis i.
func (w *View) LayerLabel(i int) (string, error) {
	d, _, err := w.s.LayerDim(i)
	if err != nil {
		return "", err
	}
	pos, err := w.layers.Get(i)
	if err != nil {
		return "", err
	}
	return w.v.Label(d, pos), nil
}

// Grid formats the selected layer, one string slice per row.
func (w *View) Grid() ([][]string, error) {
	if _, err := w.v.Buffer(); err != nil {
		return nil, err
	}
	grid := make([][]string, w.Rows())
	for r := range grid {
		grid[r] = make([]string, w.Cols())
		for c := range grid[r] {
			cell, err := w.Cell(r, c)
			if err != nil {
				return nil, err
			}
			grid[r][c] = cell
		}
	}
	return grid, nil
}

// Summary describes the numeric values of the selected layer. NaNs are left out.
type Summary struct {
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
}

// Summary computes statistics over the selected layer. It returns ErrNotNumeric for
// char and string variables.
func (w *View) Summary() (Summary, error) {
	buf, err := w.v.Buffer()
	if err != nil {
		return Summary{}, err
	}
	if !buf.Type().Numeric() {
		return Summary{}, fmt.Errorf("%w: %s is %s", ErrNotNumeric, w.v.Path(), buf.Type())
	}
	values := make([]float64, 0, w.s.LayerSize())
	for r := 0; r < w.Rows(); r++ {
		for c := 0; c < w.Cols(); c++ {
			f, _, err := w.Float(r, c)
			if err != nil {
				return Summary{}, err
			}
			if !math.IsNaN(f) {
				values = append(values, f)
			}
		}
	}
	if len(values) == 0 {
		return Summary{}, nil
	}
	mean, std := stat.MeanStdDev(values, nil)
	if len(values) == 1 {
		std = 0
	}
	return Summary{
		Count:  len(values),
		Min:    floats.Min(values),
		Max:    floats.Max(values),
		Mean:   mean,
		StdDev: std,
	}, nil
}
