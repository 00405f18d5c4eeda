// Package axis decides which dimensions of a variable are shown as grid rows and
// columns and which are paged through as layers.
//
// The two innermost dimensions form the displayed matrix; every outer dimension is a
// layer, outermost first.
package axis

import (
	"errors"
	"fmt"

	"github.com/batchatco/go-netcdf-explorer/explorer/api"
)

// None marks an unassigned row or column axis.
const None = -1

var ErrBadAssignment = errors.New("axis assignment does not cover the dimensions")

// Assignment maps dimension indices to grid roles.
type Assignment struct {
	Row    int
	Col    int
	Layers []int
}

// Assign returns the assignment for a variable with the given dimensions.
func Assign(dims []api.Dimension) Assignment {
	return ForRank(len(dims))
}

// ForRank returns the assignment for a variable of rank r.
func ForRank(r int) Assignment {
	switch {
	case r <= 0:
		return Assignment{Row: None, Col: None}
	case r == 1:
		return Assignment{Row: 0, Col: None}
	case r == 2:
		return Assignment{Row: 0, Col: 1}
	}
	layers := make([]int, r-2)
	for i := range layers {
		layers[i] = i
	}
	return Assignment{Row: r - 2, Col: r - 1, Layers: layers}
}

// HasRow reports whether a dimension is shown as rows.
func (a Assignment) HasRow() bool { return a.Row != None }

// HasCol reports whether a dimension is shown as columns.
func (a Assignment) HasCol() bool { return a.Col != None }

// Rank is the number of dimensions the assignment covers.
func (a Assignment) Rank() int {
	n := len(a.Layers)
	if a.HasRow() {
		n++
	}
	if a.HasCol() {
		n++
	}
	return n
}

// Validate checks that every dimension index in [0, rank) is used exactly once.
func (a Assignment) Validate(rank int) error {
	if a.Rank() != rank {
		return fmt.Errorf("%w: covers %d of %d", ErrBadAssignment, a.Rank(), rank)
	}
	if !a.HasRow() && a.HasCol() {
		return fmt.Errorf("%w: column without row", ErrBadAssignment)
	}
	seen := make([]bool, rank)
	use := func(i int) error {
		if i < 0 || i >= rank {
			return fmt.Errorf("%w: index %d out of range", ErrBadAssignment, i)
		}
		if seen[i] {
			return fmt.Errorf("%w: index %d used twice", ErrBadAssignment, i)
		}
		seen[i] = true
		return nil
	}
	if a.HasRow() {
		if err := use(a.Row); err != nil {
			return err
		}
	}
	if a.HasCol() {
		if err := use(a.Col); err != nil {
			return err
		}
	}
	for _, l := range a.Layers {
		if err := use(l); err != nil {
			return err
		}
	}
	return nil
}

func (a Assignment) String() string {
	return fmt.Sprintf("rows=%d cols=%d layers=%v", a.Row, a.Col, a.Layers)
}
