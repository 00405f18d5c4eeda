// Package explorer opens a netCDF file as a tree of groups and variables and shows any
// variable as a 2D grid, paging through its outer dimensions as layers.
//
// Variable data is loaded on first display and kept until the variable is released or
// the tree is closed. Coordinate variables (a rank-1 variable named after a dimension
// in the same group) supply the row, column and layer labels.
//
// The package is not safe for concurrent use.
package explorer

import (
	"fmt"
	"sort"

	"github.com/batchatco/go-netcdf-explorer/explorer/api"
	"github.com/batchatco/go-netcdf-explorer/explorer/buffer"
	"github.com/batchatco/go-netcdf-explorer/explorer/classic"
	"github.com/batchatco/go-netcdf-explorer/explorer/native"
	"github.com/batchatco/go-netcdf-explorer/internal"
)

// DefaultBackend reads netCDF-3 and netCDF-4 files.
const DefaultBackend = "native"

var logger = internal.NewLogger()

var backends = map[string]api.Opener{
	"native":  native.Open,
	"classic": classic.Open,
}

// SetLogLevel sets the package log level and returns the old one.
func SetLogLevel(level int) int {
	return int(logger.SetLogLevel(internal.LogLevel(level)))
}

// Backends lists the backend names accepted by WithBackend.
func Backends() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type config struct {
	backend string
	opener  api.Opener
	arena   buffer.Arena
}

type Option func(*config)

// WithBackend selects a backend by name.
func WithBackend(name string) Option {
	return func(c *config) { c.backend = name }
}

// WithOpener reads through o instead of a named backend.
func WithOpener(o api.Opener) Option {
	return func(c *config) { c.opener = o }
}

// WithArena sets the arena that owns the elements of string variables.
func WithArena(a buffer.Arena) Option {
	return func(c *config) { c.arena = a }
}

// Open opens path and enumerates its groups and variables. Enumeration problems in a
// group are recorded on that group (see Group.Err) and do not fail the open.
func Open(path string, opts ...Option) (*Tree, error) {
	cfg := config{backend: DefaultBackend, arena: buffer.Heap}
	for _, opt := range opts {
		opt(&cfg)
	}
	opener := cfg.opener
	if opener == nil {
		var has bool
		opener, has = backends[cfg.backend]
		if !has {
			return nil, &OpenError{Path: path, Err: fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.backend)}
		}
	}
	src, err := opener(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	t := &Tree{Path: path, src: src, cfg: cfg}
	t.Root = t.enumerate(src.Root(), nil)
	logger.Infof("opened %s with %d groups", path, t.countGroups())
	return t, nil
}
