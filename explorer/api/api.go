// Package api is the data-access contract the explorer reads through.
// Backends (native, classic) implement it; the explorer core only sees these types.
package api

import (
	"errors"
	"strings"
)

var ErrUnknownType = errors.New("unknown element type")

// ElementType is the closed set of element kinds a variable can hold.
type ElementType int

const (
	Invalid ElementType = iota // not one of the supported kinds
	Float32
	Float64
	Int32
	Int16
	Int8
	Uint8
	Uint16
	Uint32
	Int64
	Uint64
	Char
	String
)

var typeNames = []struct {
	cdl  string
	goT  string
	size int
}{
	Invalid: {"invalid", "invalid", 0},
	Float32: {"float", "float32", 4},
	Float64: {"double", "float64", 8},
	Int32:   {"int", "int32", 4},
	Int16:   {"short", "int16", 2},
	Int8:    {"byte", "int8", 1},
	Uint8:   {"ubyte", "uint8", 1},
	Uint16:  {"ushort", "uint16", 2},
	Uint32:  {"uint", "uint32", 4},
	Int64:   {"int64", "int64", 8},
	Uint64:  {"uint64", "uint64", 8},
	Char:    {"char", "byte", 1},
	String:  {"string", "string", 0},
}

// String returns the type in CDL format.
func (t ElementType) String() string {
	if !t.Valid() {
		return typeNames[Invalid].cdl
	}
	return typeNames[t].cdl
}

// GoType returns the Go element type of a buffer of this kind.
func (t ElementType) GoType() string {
	if !t.Valid() {
		return typeNames[Invalid].goT
	}
	return typeNames[t].goT
}

// Size is the stored size of one element in bytes. It is 0 for strings, whose
// elements vary in length, and for Invalid.
func (t ElementType) Size() int {
	if !t.Valid() {
		return 0
	}
	return typeNames[t].size
}

func (t ElementType) Valid() bool {
	return t > Invalid && t <= String
}

// Numeric reports whether elements of t convert to float64.
func (t ElementType) Numeric() bool {
	return t >= Float32 && t <= Uint64
}

// ParseType accepts either a CDL name ("double") or a Go name ("float64").
// The CDL aliases "real" and "long" are accepted too.
func ParseType(name string) (ElementType, error) {
	name = strings.TrimSpace(name)
	for t := Float32; t <= String; t++ {
		if name == typeNames[t].cdl || name == typeNames[t].goT {
			return t, nil
		}
	}
	switch name {
	case "real":
		return Float32, nil
	case "long":
		return Int32, nil
	}
	return Invalid, ErrUnknownType
}

// Dimension is one named, sized axis of a variable.
type Dimension struct {
	Name string
	Size uint64
}

// Schema describes a variable without its data.
type Schema struct {
	Type       ElementType
	Dimensions []Dimension
}

// Rank is the number of dimensions; 0 for a scalar.
func (s Schema) Rank() int {
	return len(s.Dimensions)
}

// Len is the number of elements, which is 1 for a scalar.
func (s Schema) Len() uint64 {
	n := uint64(1)
	for _, d := range s.Dimensions {
		n *= d.Size
	}
	return n
}

// Shape returns the dimension sizes.
func (s Schema) Shape() []uint64 {
	shape := make([]uint64, len(s.Dimensions))
	for i, d := range s.Dimensions {
		shape[i] = d.Size
	}
	return shape
}

type AttributeMap interface {
	// Ordered list of keys
	Keys() []string
	// Indexed lookup
	Get(key string) (val any, has bool)
}

type Group interface {
	// Name is the last path component, "/" for the root group.
	Name() string

	// Path is the absolute group path, starting with "/".
	Path() string

	// Attributes returns the attributes of this group.
	Attributes() AttributeMap

	// ListSubgroups returns the names of the subgroups of this group.
	ListSubgroups() ([]string, error)

	// GetGroup returns the named subgroup.
	GetGroup(name string) (Group, error)

	// ListVariables lists the variables in this group, in file order.
	ListVariables() ([]string, error)

	// Schema returns the element type and dimensions of the named variable.
	Schema(name string) (Schema, error)

	// VarAttributes returns the attributes of the named variable.
	VarAttributes(name string) (AttributeMap, error)

	// Read returns all elements of the named variable as a flat, row-major Go slice:
	// []float32, []float64, []int32, []int16, []int8, []uint8, []uint16, []uint32,
	// []int64, []uint64, []byte (char) or []string (string).
	Read(name string) (any, error)
}

// Source is one opened file.
type Source interface {
	Root() Group
	Close() error
}

// Opener opens a Source by path.
type Opener func(path string) (Source, error)
