package explorer

import (
	"errors"
	"fmt"

	"github.com/batchatco/go-netcdf-explorer/explorer/api"
	"github.com/batchatco/go-netcdf-explorer/explorer/buffer"
	"github.com/batchatco/go-netcdf-explorer/explorer/util"
	"github.com/batchatco/go-netcdf-explorer/internal"
)

var errFake = errors.New("fake failure")

type fakeVar struct {
	name    string
	schema  api.Schema
	data    any
	attrs   api.AttributeMap
	readErr error
}

type fakeGroup struct {
	name      string
	path      string
	attrs     api.AttributeMap
	vars      []*fakeVar
	subs      []*fakeGroup
	listErr   error
	subErr    error
	schemaErr map[string]error
	getErr    map[string]error
	reads     map[string]int
}

func newFakeGroup(path string) *fakeGroup {
	name := "/"
	if parts, _ := internal.SplitGroupPath(path); len(parts) > 0 {
		name = parts[len(parts)-1]
	}
	return &fakeGroup{
		name:      name,
		path:      path,
		schemaErr: map[string]error{},
		getErr:    map[string]error{},
		reads:     map[string]int{},
	}
}

func dim(name string, size uint64) api.Dimension {
	return api.Dimension{Name: name, Size: size}
}

// add appends a variable; its type comes from the Go type of data.
func (g *fakeGroup) add(name string, data any, dims ...api.Dimension) *fakeVar {
	typ, err := api.ParseType(fmt.Sprintf("%T", data)[2:])
	if err != nil {
		typ = api.Invalid
	}
	v := &fakeVar{name: name, schema: api.Schema{Type: typ, Dimensions: dims}, data: data}
	g.vars = append(g.vars, v)
	return v
}

func (g *fakeGroup) sub(name string) *fakeGroup {
	s := newFakeGroup(internal.JoinGroupPath(g.path, name))
	g.subs = append(g.subs, s)
	return s
}

func (g *fakeGroup) find(name string) (*fakeVar, error) {
	for _, v := range g.vars {
		if v.name == name {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

func (g *fakeGroup) Name() string { return g.name }
func (g *fakeGroup) Path() string { return g.path }

func (g *fakeGroup) Attributes() api.AttributeMap { return g.attrs }

func (g *fakeGroup) ListSubgroups() ([]string, error) {
	if g.subErr != nil {
		return nil, g.subErr
	}
	names := make([]string, len(g.subs))
	for i, s := range g.subs {
		names[i] = s.name
	}
	return names, nil
}

func (g *fakeGroup) GetGroup(name string) (api.Group, error) {
	if err := g.getErr[name]; err != nil {
		return nil, err
	}
	for _, s := range g.subs {
		if s.name == name {
			return s, nil
		}
	}
	return nil, ErrNotFound
}

func (g *fakeGroup) ListVariables() ([]string, error) {
	if g.listErr != nil {
		return nil, g.listErr
	}
	names := make([]string, len(g.vars))
	for i, v := range g.vars {
		names[i] = v.name
	}
	return names, nil
}

func (g *fakeGroup) Schema(name string) (api.Schema, error) {
	if err := g.schemaErr[name]; err != nil {
		return api.Schema{}, err
	}
	v, err := g.find(name)
	if err != nil {
		return api.Schema{}, err
	}
	return v.schema, nil
}

func (g *fakeGroup) VarAttributes(name string) (api.AttributeMap, error) {
	v, err := g.find(name)
	if err != nil {
		return nil, err
	}
	return v.attrs, nil
}

func (g *fakeGroup) Read(name string) (any, error) {
	g.reads[name]++
	v, err := g.find(name)
	if err != nil {
		return nil, err
	}
	if v.readErr != nil {
		return nil, v.readErr
	}
	return v.data, nil
}

type fakeSource struct {
	root   *fakeGroup
	closes int
}

func (s *fakeSource) Root() api.Group { return s.root }

func (s *fakeSource) Close() error {
	s.closes++
	return nil
}

func (s *fakeSource) opener() Option {
	return WithOpener(func(string) (api.Source, error) { return s, nil })
}

func newFakeSource() *fakeSource {
	return &fakeSource{root: newFakeGroup("/")}
}

func attrs(kv ...any) api.AttributeMap {
	om, _ := util.NewOrderedMap(nil, nil)
	for i := 0; i+1 < len(kv); i += 2 {
		om.Add(kv[i].(string), kv[i+1])
	}
	return om
}

// countingArena counts string handles in and out.
type countingArena struct {
	allocs     int
	frees      int
	arrayFrees int
}

func (a *countingArena) Alloc(s string) *buffer.Text {
	a.allocs++
	return buffer.NewText(s)
}

func (a *countingArena) Free(t *buffer.Text) {
	a.frees++
	t.Kill()
}

func (a *countingArena) FreeArray([]*buffer.Text) { a.arrayFrees++ }
