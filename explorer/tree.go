package explorer

import (
	"errors"
	"fmt"
	"slices"

	"github.com/batchatco/go-thrower"

	"github.com/batchatco/go-netcdf-explorer/explorer/api"
	"github.com/batchatco/go-netcdf-explorer/explorer/util"
	"github.com/batchatco/go-netcdf-explorer/internal"
)

// Tree is one opened file.
type Tree struct {
	Path string
	Root *Group

	src    api.Source
	cfg    config
	closed bool
}

// Group is one enumerated group.
type Group struct {
	Name       string
	Path       string
	Parent     *Group
	Groups     []*Group
	Variables  []*Variable
	Attributes api.AttributeMap

	// Err is a *SchemaError when enumeration of this group stopped early. Whatever
	// was enumerated before the failure is still present.
	Err error

	names NameSet
	src   api.Group
	tree  *Tree
}

// NameSet is a read-only view of the variable names in one group, in file order.
type NameSet struct {
	names []string
	index map[string]int
}

func newNameSet(names []string) NameSet {
	index := make(map[string]int, len(names))
	for i, n := range names {
		index[n] = i
	}
	return NameSet{names: names, index: index}
}

func (s NameSet) Has(name string) bool {
	_, has := s.index[name]
	return has
}

func (s NameSet) Len() int { return len(s.names) }

// Names returns a copy of the names.
func (s NameSet) Names() []string { return slices.Clone(s.names) }

func (t *Tree) enumerate(src api.Group, parent *Group) *Group {
	g := &Group{
		Name:   src.Name(),
		Path:   src.Path(),
		Parent: parent,
		src:    src,
		tree:   t,
	}
	if err := g.enumerate(); err != nil {
		g.Err = &SchemaError{Group: g.Path, Err: err}
		logger.WithFields(map[string]any{"group": g.Path}).Info("enumeration stopped:", err)
	}
	return g
}

// enumerate fills in the attributes, variables and subgroups. A failure stops this
// group only; subgroups recover their own failures.
func (g *Group) enumerate() (err error) {
	defer thrower.RecoverError(&err)
	g.Attributes = g.src.Attributes()
	if g.Attributes == nil {
		g.Attributes = emptyAttributes()
	}

	names, err := g.src.ListVariables()
	thrower.ThrowIfError(err)
	g.names = newNameSet(names)
	for _, name := range names {
		schema, err := g.src.Schema(name)
		if err != nil {
			thrower.Throw(fmt.Errorf("variable %s: %w", name, err))
		}
		attrs, err := g.src.VarAttributes(name)
		if err != nil {
			thrower.Throw(fmt.Errorf("variable %s attributes: %w", name, err))
		}
		if attrs == nil {
			attrs = emptyAttributes()
		}
		if !schema.Type.Valid() {
			logger.Infof("%s: variable %s has an unsupported type", g.Path, name)
		}
		g.Variables = append(g.Variables, newVariable(g, name, schema, attrs))
	}

	subgroups, err := g.src.ListSubgroups()
	thrower.ThrowIfError(err)
	for _, name := range subgroups {
		sub, err := g.src.GetGroup(name)
		if err != nil {
			// Keep a placeholder so the failure shows up where the group would be.
			path := internal.JoinGroupPath(g.Path, name)
			g.Groups = append(g.Groups, &Group{
				Name:       name,
				Path:       path,
				Parent:     g,
				Attributes: emptyAttributes(),
				Err:        &SchemaError{Group: path, Err: err},
				tree:       g.tree,
			})
			logger.WithFields(map[string]any{"group": path}).Info("cannot open group:", err)
			continue
		}
		g.Groups = append(g.Groups, g.tree.enumerate(sub, g))
	}
	return nil
}

func emptyAttributes() api.AttributeMap {
	om, _ := util.NewOrderedMap(nil, nil)
	return om
}

// Names returns the variable names of the group as listed by the file, including any
// whose schema could not be read.
func (g *Group) Names() NameSet { return g.names }

// Variable returns the named variable of this group.
func (g *Group) Variable(name string) (*Variable, error) {
	for _, v := range g.Variables {
		if v.Name == name {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: variable %s in %s", ErrNotFound, name, g.Path)
}

// Group returns the named direct subgroup.
func (g *Group) Group(name string) (*Group, error) {
	for _, sub := range g.Groups {
		if sub.Name == name {
			return sub, nil
		}
	}
	return nil, fmt.Errorf("%w: group %s in %s", ErrNotFound, name, g.Path)
}

// FindGroup looks up a group by path. "", "/" and "." are the root group.
func (t *Tree) FindGroup(path string) (*Group, error) {
	parts, err := internal.SplitGroupPath(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, path)
	}
	g := t.Root
	for _, p := range parts {
		g, err = g.Group(p)
		if err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Find returns the variable name in the group at groupPath.
func (t *Tree) Find(groupPath, name string) (*Variable, error) {
	if !internal.IsValidNetCDFName(name) {
		return nil, fmt.Errorf("%w: %q", internal.ErrBadName, name)
	}
	g, err := t.FindGroup(groupPath)
	if err != nil {
		return nil, err
	}
	return g.Variable(name)
}

// SkipGroup is returned by a Walk callback to skip the subgroups of a group.
var SkipGroup = errors.New("skip this group")

// Walk calls fn for every group, parents before children, in file order. Walk stops at
// the first error fn returns, other than SkipGroup.
func (t *Tree) Walk(fn func(g *Group) error) error {
	var walk func(g *Group) error
	walk = func(g *Group) error {
		if err := fn(g); err != nil {
			if err == SkipGroup {
				return nil
			}
			return err
		}
		for _, sub := range g.Groups {
			if err := walk(sub); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(t.Root)
}

// Err returns the enumeration errors of every group in the tree, joined.
func (t *Tree) Err() error {
	var errs []error
	_ = t.Walk(func(g *Group) error {
		if g.Err != nil {
			errs = append(errs, g.Err)
		}
		return nil
	})
	return errors.Join(errs...)
}

func (t *Tree) countGroups() int {
	n := 0
	_ = t.Walk(func(*Group) error {
		n++
		return nil
	})
	return n
}

// Close releases every loaded variable and closes the file. It is safe to call more
// than once.
func (t *Tree) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	_ = t.Walk(func(g *Group) error {
		for _, v := range g.Variables {
			v.Release()
		}
		return nil
	})
	return t.src.Close()
}
