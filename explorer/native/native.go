// Package native reads netCDF-3 (classic, 64-bit offset, CDF5) and netCDF-4 files with
// the pure Go reader github.com/batchatco/go-native-netcdf.
package native

import (
	"errors"
	"fmt"

	"github.com/batchatco/go-native-netcdf/netcdf"
	ncapi "github.com/batchatco/go-native-netcdf/netcdf/api"
	"github.com/batchatco/go-thrower"

	"github.com/batchatco/go-netcdf-explorer/explorer/api"
	"github.com/batchatco/go-netcdf-explorer/internal"
)

var (
	ErrNoDimensions = errors.New("variable shape and dimension names differ")
	ErrClosed       = errors.New("file is closed")
)

var logger = internal.NewLogger()

// SetLogLevel sets the package log level and returns the old one.
func SetLogLevel(level int) int {
	return int(logger.SetLogLevel(internal.LogLevel(level)))
}

type source struct {
	root   *group
	opened []ncapi.Group // every group handed out, root first
	closed bool
}

// Open opens a netCDF file by name.
func Open(path string) (api.Source, error) {
	g, err := netcdf.Open(path)
	if err != nil {
		return nil, err
	}
	return newSource(g), nil
}

func newSource(g ncapi.Group) *source {
	s := &source{}
	s.root = s.wrap(g, "/")
	return s
}

func (s *source) wrap(g ncapi.Group, path string) *group {
	s.opened = append(s.opened, g)
	return &group{g: g, path: path, src: s}
}

func (s *source) Root() api.Group { return s.root }

// Close closes subgroups before the root group.
func (s *source) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	for i := len(s.opened) - 1; i >= 0; i-- {
		s.opened[i].Close()
	}
	s.opened = nil
	return nil
}

type group struct {
	g    ncapi.Group
	path string
	src  *source
}

func (g *group) Name() string {
	if g.path == "/" {
		return "/"
	}
	for i := len(g.path) - 1; i >= 0; i-- {
		if g.path[i] == '/' {
			return g.path[i+1:]
		}
	}
	return g.path
}

func (g *group) Path() string { return g.path }

func (g *group) check() {
	if g.src.closed {
		thrower.Throw(ErrClosed)
	}
}

func (g *group) Attributes() api.AttributeMap {
	return g.g.Attributes()
}

func (g *group) ListSubgroups() (names []string, err error) {
	defer thrower.RecoverError(&err)
	g.check()
	return g.g.ListSubgroups(), nil
}

func (g *group) GetGroup(name string) (sub api.Group, err error) {
	defer thrower.RecoverError(&err)
	g.check()
	ng, err := g.g.GetGroup(name)
	thrower.ThrowIfError(err)
	return g.src.wrap(ng, internal.JoinGroupPath(g.path, name)), nil
}

func (g *group) ListVariables() (names []string, err error) {
	defer thrower.RecoverError(&err)
	g.check()
	return g.g.ListVariables(), nil
}

func (g *group) getter(name string) ncapi.VarGetter {
	g.check()
	vg, err := g.g.GetVarGetter(name)
	thrower.ThrowIfError(err)
	return vg
}

// schema converts the reader's description. Types outside the supported set, such as
// compound, enum, opaque and vlen of numbers, come back as api.Invalid.
func schema(vg ncapi.VarGetter) api.Schema {
	typ, err := api.ParseType(vg.Type())
	if err != nil {
		logger.Infof("unsupported type %q", vg.Type())
		typ = api.Invalid
	}
	shape := vg.Shape()
	names := vg.Dimensions()
	if len(names) != len(shape) {
		thrower.Throw(fmt.Errorf("%w: %d names, %d sizes", ErrNoDimensions, len(names), len(shape)))
	}
	dims := make([]api.Dimension, len(shape))
	for i, n := range shape {
		dims[i] = api.Dimension{Name: names[i], Size: uint64(n)}
	}
	return api.Schema{Type: typ, Dimensions: dims}
}

func (g *group) Schema(name string) (s api.Schema, err error) {
	defer thrower.RecoverError(&err)
	return schema(g.getter(name)), nil
}

func (g *group) VarAttributes(name string) (attrs api.AttributeMap, err error) {
	defer thrower.RecoverError(&err)
	return g.getter(name).Attributes(), nil
}

func (g *group) Read(name string) (data any, err error) {
	defer thrower.RecoverError(&err)
	vg := g.getter(name)
	s := schema(vg)
	if !s.Type.Valid() {
		thrower.Throw(fmt.Errorf("%w: %s", ErrUnsupported, vg.Type()))
	}
	values, err := vg.Values()
	thrower.ThrowIfError(err)
	return flatten(values, s)
}
