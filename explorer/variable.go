package explorer

import (
	"fmt"
	"strconv"

	"github.com/batchatco/go-netcdf-explorer/explorer/api"
	"github.com/batchatco/go-netcdf-explorer/explorer/axis"
	"github.com/batchatco/go-netcdf-explorer/explorer/buffer"
	"github.com/batchatco/go-netcdf-explorer/internal"
)

// Variable is one variable of a group. Its data is loaded on demand and owned by the
// Variable until Release.
type Variable struct {
	Name       string
	Schema     api.Schema
	Attributes api.AttributeMap

	group    *Group
	assign   axis.Assignment
	buf      buffer.Buffer
	coords   []buffer.Buffer // one slot per dimension, nil when there is no coordinate
	resolved bool
}

func newVariable(g *Group, name string, schema api.Schema, attrs api.AttributeMap) *Variable {
	return &Variable{
		Name:       name,
		Schema:     schema,
		Attributes: attrs,
		group:      g,
		assign:     axis.Assign(schema.Dimensions),
		coords:     make([]buffer.Buffer, schema.Rank()),
	}
}

// Path is the absolute path of the variable, e.g. "/forecast/temp".
func (v *Variable) Path() string { return internal.JoinGroupPath(v.group.Path, v.Name) }

func (v *Variable) Group() *Group { return v.group }

func (v *Variable) Type() api.ElementType { return v.Schema.Type }

func (v *Variable) Dimensions() []api.Dimension { return v.Schema.Dimensions }

func (v *Variable) Rank() int { return v.Schema.Rank() }

// Len is the number of elements.
func (v *Variable) Len() uint64 { return v.Schema.Len() }

// Assignment tells which dimensions are rows, columns and layers.
func (v *Variable) Assignment() axis.Assignment { return v.assign }

// Loaded reports whether the data is in memory.
func (v *Variable) Loaded() bool { return v.buf != nil && !v.buf.Released() }

// Buffer returns the loaded data, or ErrUnavailable.
func (v *Variable) Buffer() (buffer.Buffer, error) {
	if !v.Loaded() {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, v.Path())
	}
	return v.buf, nil
}

func (v *Variable) load(name string, typ api.ElementType, count uint64) (buffer.Buffer, error) {
	t := v.group.tree
	if t.closed {
		return nil, ErrClosed
	}
	if v.group.src == nil {
		return nil, fmt.Errorf("%w: group %s", ErrUnavailable, v.group.Path)
	}
	read := func() (any, error) { return v.group.src.Read(name) }
	return buffer.Load(read, typ, count, buffer.WithArena(t.cfg.arena))
}

// EnsureLoaded reads the data if it is not already loaded. Once loaded, later calls do
// nothing. A failed read leaves the variable unloaded and returns a *ReadError; the
// next call tries again.
func (v *Variable) EnsureLoaded() error {
	if v.Loaded() {
		return nil
	}
	b, err := v.load(v.Name, v.Schema.Type, v.Schema.Len())
	if err != nil {
		return &ReadError{Group: v.group.Path, Variable: v.Name, Err: err}
	}
	v.buf = b
	logger.Infof("loaded %s: %d elements of %s", v.Path(), b.Len(), b.Type())
	return nil
}

// ResolveCoordinates loads the coordinate variable of each dimension: a rank-1
// variable in the same group, named after the dimension and of the same size.
// Dimensions without one keep positional labels. It runs once; Release resets it.
func (v *Variable) ResolveCoordinates() {
	if v.resolved {
		return
	}
	v.resolved = true
	names := v.group.Names()
	for i, dim := range v.Schema.Dimensions {
		if !names.Has(dim.Name) {
			continue
		}
		coord, err := v.group.Variable(dim.Name)
		if err != nil {
			continue
		}
		s := coord.Schema
		if s.Rank() != 1 || s.Dimensions[0].Size != dim.Size || !s.Type.Valid() {
			continue
		}
		b, err := v.load(coord.Name, s.Type, dim.Size)
		if err != nil {
			logger.WithFields(map[string]any{"variable": v.Path(), "coordinate": dim.Name}).
				Info("coordinate not loaded:", err)
			continue
		}
		v.coords[i] = b
	}
}

// Coordinate returns the coordinate buffer of dimension i, or nil.
func (v *Variable) Coordinate(i int) buffer.Buffer {
	if i < 0 || i >= len(v.coords) {
		return nil
	}
	return v.coords[i]
}

// Label is the text for position pos along dimension dim: the coordinate value when
// there is one, else the 1-based position.
func (v *Variable) Label(dim, pos int) string {
	if c := v.Coordinate(dim); c != nil && !c.Released() && pos >= 0 && pos < c.Len() {
		return c.Text(pos)
	}
	return strconv.Itoa(pos + 1)
}

// Release disposes of the data and coordinate buffers. Views of the variable return
// ErrUnavailable until it is loaded again.
func (v *Variable) Release() {
	if v.buf != nil {
		v.buf.Release()
		v.buf = nil
	}
	for i, c := range v.coords {
		if c != nil {
			c.Release()
			v.coords[i] = nil
		}
	}
	v.resolved = false
}

// Reload releases the variable and reads it again, coordinates included, so open
// views keep their labels.
func (v *Variable) Reload() error {
	v.Release()
	if err := v.EnsureLoaded(); err != nil {
		return err
	}
	v.ResolveCoordinates()
	return nil
}

// Open loads the variable if needed, resolves its coordinates and starts a display
// session at the first layer.
func (v *Variable) Open() (*View, error) {
	if err := v.EnsureLoaded(); err != nil {
		return nil, err
	}
	v.ResolveCoordinates()
	return newView(v)
}
