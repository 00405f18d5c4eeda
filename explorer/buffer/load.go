package buffer

import (
	"fmt"
	"math"

	"github.com/batchatco/go-netcdf-explorer/explorer/api"
)

// ReadFunc fetches every element of a variable as a flat Go slice.
type ReadFunc func() (any, error)

// Option configures Load.
type Option func(*options)

type options struct {
	arena Arena
}

// WithArena sets the arena that owns string elements. The default is Heap.
func WithArena(a Arena) Option {
	return func(o *options) {
		if a != nil {
			o.arena = a
		}
	}
}

// Load calls read once and wraps its result in a Buffer of count elements of typ.
// A failed read, a result of the wrong Go type, or a result of the wrong length
// returns an error and no Buffer.
func Load(read ReadFunc, typ api.ElementType, count uint64, opts ...Option) (Buffer, error) {
	o := options{arena: Heap}
	for _, opt := range opts {
		opt(&o)
	}
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedType, typ)
	}
	if count > math.MaxInt {
		return nil, fmt.Errorf("%w: %d elements", ErrTooLarge, count)
	}
	data, err := read()
	if err != nil {
		return nil, err
	}
	n := int(count)

	switch typ {
	case api.Float32:
		return scalars[float32](typ, data, n)
	case api.Float64:
		return scalars[float64](typ, data, n)
	case api.Int32:
		return scalars[int32](typ, data, n)
	case api.Int16:
		return scalars[int16](typ, data, n)
	case api.Int8:
		return scalars[int8](typ, data, n)
	case api.Uint8:
		return scalars[uint8](typ, data, n)
	case api.Uint16:
		return scalars[uint16](typ, data, n)
	case api.Uint32:
		return scalars[uint32](typ, data, n)
	case api.Int64:
		return scalars[int64](typ, data, n)
	case api.Uint64:
		return scalars[uint64](typ, data, n)
	case api.Char:
		values, ok := data.([]byte)
		if !ok {
			return nil, mismatch(typ, data)
		}
		if len(values) != n {
			return nil, short(len(values), n)
		}
		return &Chars{values: values}, nil
	case api.String:
		values, ok := data.([]string)
		if !ok {
			return nil, mismatch(typ, data)
		}
		if len(values) != n {
			return nil, short(len(values), n)
		}
		texts := make([]*Text, n)
		for i, s := range values {
			texts[i] = o.arena.Alloc(s)
		}
		return &Strings{texts: texts, arena: o.arena}, nil
	}
	panic("never gets here")
}

func scalars[T scalar](typ api.ElementType, data any, n int) (Buffer, error) {
	values, ok := data.([]T)
	if !ok {
		return nil, mismatch(typ, data)
	}
	if len(values) != n {
		return nil, short(len(values), n)
	}
	return &Scalars[T]{typ: typ, values: values}, nil
}

func mismatch(typ api.ElementType, data any) error {
	return fmt.Errorf("%w: got %T, want []%s", ErrTypeMismatch, data, typ.GoType())
}

func short(got, want int) error {
	return fmt.Errorf("%w: got %d, want %d", ErrShortRead, got, want)
}
