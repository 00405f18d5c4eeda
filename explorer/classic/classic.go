// Package classic reads netCDF-3 classic files with github.com/ctessum/cdf.
//
// Classic files have a single, root group.
package classic

import (
	"errors"
	"fmt"
	"os"

	"github.com/batchatco/go-thrower"
	"github.com/ctessum/cdf"

	"github.com/batchatco/go-netcdf-explorer/explorer/api"
	"github.com/batchatco/go-netcdf-explorer/explorer/util"
)

var (
	ErrNoGroups    = errors.New("classic files have no subgroups")
	ErrNotFound    = errors.New("variable not found")
	ErrUnsupported = errors.New("unsupported variable type")
	ErrClosed      = errors.New("file is closed")
)

type source struct {
	file   *os.File
	cdf    *cdf.File
	root   *group
	closed bool
}

// Open opens a netCDF-3 classic file by name.
func Open(path string) (s api.Source, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			f.Close()
		}
	}()
	cf, err := cdf.Open(f)
	if err != nil {
		return nil, err
	}
	src := &source{file: f, cdf: cf}
	src.root = &group{src: src}
	return src, nil
}

func (s *source) Root() api.Group { return s.root }

func (s *source) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.file.Close()
}

type group struct {
	src *source
}

func (g *group) Name() string { return "/" }

func (g *group) Path() string { return "/" }

func (g *group) header() *cdf.Header {
	if g.src.closed {
		thrower.Throw(ErrClosed)
	}
	return g.src.cdf.Header
}

func (g *group) attributes(h *cdf.Header, v string) api.AttributeMap {
	om, _ := util.NewOrderedMap(nil, nil)
	for _, a := range h.Attributes(v) {
		om.Add(a, h.GetAttribute(v, a))
	}
	return om
}

// Attributes returns the global attributes. A closed file has none.
func (g *group) Attributes() api.AttributeMap {
	if g.src.closed {
		om, _ := util.NewOrderedMap(nil, nil)
		return om
	}
	return g.attributes(g.src.cdf.Header, "")
}

func (g *group) ListSubgroups() ([]string, error) { return nil, nil }

func (g *group) GetGroup(name string) (api.Group, error) {
	return nil, fmt.Errorf("%w: %s", ErrNoGroups, name)
}

func (g *group) ListVariables() (names []string, err error) {
	defer thrower.RecoverError(&err)
	return g.header().Variables(), nil
}

// lookup returns the header and the dimension sizes of v.
func (g *group) lookup(v string) (*cdf.Header, []int) {
	h := g.header()
	lengths := h.Lengths(v)
	if lengths == nil {
		for _, name := range h.Variables() {
			if name == v {
				// a scalar
				return h, lengths
			}
		}
		thrower.Throw(fmt.Errorf("%w: %s", ErrNotFound, v))
	}
	return h, lengths
}

// elementType maps the Go type the library reads a variable into.
func elementType(zero any) api.ElementType {
	switch zero.(type) {
	case []int8:
		return api.Int8
	case []byte:
		return api.Char
	case []int16:
		return api.Int16
	case []int32:
		return api.Int32
	case []float32:
		return api.Float32
	case []float64:
		return api.Float64
	}
	return api.Invalid
}

func (g *group) Schema(name string) (s api.Schema, err error) {
	defer thrower.RecoverError(&err)
	h, lengths := g.lookup(name)
	names := h.Dimensions(name)
	dims := make([]api.Dimension, len(lengths))
	for i, n := range lengths {
		dims[i] = api.Dimension{Name: names[i], Size: uint64(n)}
	}
	return api.Schema{Type: elementType(h.ZeroValue(name, 0)), Dimensions: dims}, nil
}

func (g *group) VarAttributes(name string) (attrs api.AttributeMap, err error) {
	defer thrower.RecoverError(&err)
	h, _ := g.lookup(name)
	return g.attributes(h, name), nil
}

func (g *group) Read(name string) (data any, err error) {
	defer thrower.RecoverError(&err)
	h, lengths := g.lookup(name)
	n := 1
	for _, l := range lengths {
		n *= l
	}
	buf := h.ZeroValue(name, n)
	if elementType(buf) == api.Invalid {
		thrower.Throw(fmt.Errorf("%w: %T", ErrUnsupported, buf))
	}
	if n == 0 {
		return buf, nil
	}
	r := g.src.cdf.Reader(name, nil, nil)
	// The reader may report io.EOF along with the last element.
	if got, err := r.Read(buf); got != n {
		thrower.Throw(fmt.Errorf("%s: read %d of %d elements: %v", name, got, n, err))
	}
	return buf, nil
}
