// Package slicer maps a 2D grid position and a layer selection to an element index in
// the flat, row-major buffer of an N-dimensional variable.
package slicer

import (
	"errors"
	"fmt"

	"github.com/batchatco/go-netcdf-explorer/explorer/api"
	"github.com/batchatco/go-netcdf-explorer/explorer/axis"
)

var (
	ErrAtBoundary   = errors.New("layer index at boundary")
	ErrInvalidIndex = errors.New("index out of range")
	ErrInvalidAxis  = errors.New("no such layer axis")
)

// Slicer addresses one variable. It is immutable and may be shared by any number of
// Layers selections.
type Slicer struct {
	dims       []api.Dimension
	assign     axis.Assignment
	rows       uint64
	cols       uint64
	layerSizes []uint64
	place      []uint64 // place value of each layer axis, in layer elements
}

// New returns a Slicer for dims laid out according to a.
func New(dims []api.Dimension, a axis.Assignment) (*Slicer, error) {
	if err := a.Validate(len(dims)); err != nil {
		return nil, err
	}
	s := &Slicer{
		dims:   dims,
		assign: a,
		rows:   1,
		cols:   1,
	}
	if a.HasRow() {
		s.rows = dims[a.Row].Size
	}
	if a.HasCol() {
		s.cols = dims[a.Col].Size
	}
	k := len(a.Layers)
	s.layerSizes = make([]uint64, k)
	s.place = make([]uint64, k)
	p := uint64(1)
	for i := k - 1; i >= 0; i-- {
		s.layerSizes[i] = dims[a.Layers[i]].Size
		s.place[i] = p
		p *= s.layerSizes[i]
	}
	return s, nil
}

// Rows is the size of the row axis, or 1 when there is none.
func (s *Slicer) Rows() uint64 { return s.rows }

// Cols is the size of the column axis, or 1 when there is none.
func (s *Slicer) Cols() uint64 { return s.cols }

// LayerSize is the number of elements in one layer.
func (s *Slicer) LayerSize() uint64 { return s.rows * s.cols }

func (s *Slicer) NumLayers() int { return len(s.layerSizes) }

func (s *Slicer) Assignment() axis.Assignment { return s.assign }

// LayerDim returns the dimension shown by layer axis i.
func (s *Slicer) LayerDim(i int) (int, api.Dimension, error) {
	if i < 0 || i >= len(s.layerSizes) {
		return 0, api.Dimension{}, fmt.Errorf("%w: %d", ErrInvalidAxis, i)
	}
	d := s.assign.Layers[i]
	return d, s.dims[d], nil
}

// NewLayers returns a selection with every layer index at zero.
func (s *Slicer) NewLayers() *Layers {
	return &Layers{
		sizes:  s.layerSizes,
		values: make([]int, len(s.layerSizes)),
	}
}

// Offset is the index of the first element of the selected layer.
func (s *Slicer) Offset(l *Layers) uint64 {
	var off uint64
	for i, v := range l.values {
		off += uint64(v) * s.place[i]
	}
	return off * s.LayerSize()
}

// Index is the buffer index of (row, col) in the selected layer.
func (s *Slicer) Index(l *Layers, row, col int) (uint64, error) {
	if row < 0 || uint64(row) >= s.rows {
		return 0, fmt.Errorf("%w: row %d of %d", ErrInvalidIndex, row, s.rows)
	}
	if col < 0 || uint64(col) >= s.cols {
		return 0, fmt.Errorf("%w: column %d of %d", ErrInvalidIndex, col, s.cols)
	}
	return s.Offset(l) + uint64(row)*s.cols + uint64(col), nil
}

// Layers is one selection of layer indices. Each display session owns its own.
type Layers struct {
	sizes  []uint64
	values []int
}

func (l *Layers) check(i int) error {
	if i < 0 || i >= len(l.values) {
		return fmt.Errorf("%w: %d", ErrInvalidAxis, i)
	}
	return nil
}

func (l *Layers) Len() int { return len(l.values) }

func (l *Layers) Get(i int) (int, error) {
	if err := l.check(i); err != nil {
		return 0, err
	}
	return l.values[i], nil
}

// Values returns a copy of the selected indices.
func (l *Layers) Values() []int {
	return append([]int(nil), l.values...)
}

// Advance moves layer axis i forward by one. At the last index it stays put and returns
// ErrAtBoundary.
func (l *Layers) Advance(i int) error {
	if err := l.check(i); err != nil {
		return err
	}
	if uint64(l.values[i])+1 >= l.sizes[i] {
		return ErrAtBoundary
	}
	l.values[i]++
	return nil
}

// Retreat moves layer axis i back by one. At zero it stays put and returns ErrAtBoundary.
func (l *Layers) Retreat(i int) error {
	if err := l.check(i); err != nil {
		return err
	}
	if l.values[i] == 0 {
		return ErrAtBoundary
	}
	l.values[i]--
	return nil
}

// Set selects index v on layer axis i. Out of range values are rejected and leave the
// selection unchanged.
func (l *Layers) Set(i, v int) error {
	if err := l.check(i); err != nil {
		return err
	}
	if v < 0 || uint64(v) >= l.sizes[i] {
		return fmt.Errorf("%w: layer %d value %d of %d", ErrInvalidIndex, i, v, l.sizes[i])
	}
	l.values[i] = v
	return nil
}

// SetAll applies Set to each value in order and stops at the first error.
func (l *Layers) SetAll(values []int) error {
	if len(values) > len(l.values) {
		return fmt.Errorf("%w: %d values for %d layers", ErrInvalidAxis, len(values), len(l.values))
	}
	for i, v := range values {
		if err := l.Set(i, v); err != nil {
			return err
		}
	}
	return nil
}

func (l *Layers) Reset() {
	for i := range l.values {
		l.values[i] = 0
	}
}
