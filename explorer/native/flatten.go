package native

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/batchatco/go-thrower"

	"github.com/batchatco/go-netcdf-explorer/explorer/api"
)

var (
	ErrUnsupported     = errors.New("unsupported variable type")
	ErrUnexpectedValue = errors.New("unexpected value from reader")
)

var elemTypes = map[api.ElementType]reflect.Type{
	api.Float32: reflect.TypeOf(float32(0)),
	api.Float64: reflect.TypeOf(float64(0)),
	api.Int32:   reflect.TypeOf(int32(0)),
	api.Int16:   reflect.TypeOf(int16(0)),
	api.Int8:    reflect.TypeOf(int8(0)),
	api.Uint8:   reflect.TypeOf(uint8(0)),
	api.Uint16:  reflect.TypeOf(uint16(0)),
	api.Uint32:  reflect.TypeOf(uint32(0)),
	api.Int64:   reflect.TypeOf(int64(0)),
	api.Uint64:  reflect.TypeOf(uint64(0)),
	api.Char:    reflect.TypeOf(byte(0)),
	api.String:  reflect.TypeOf(""),
}

// flatten turns the reader's value for a variable into one row-major slice.
//
// The reader returns a scalar for rank 0 and nested slices otherwise. Char variables
// come back as strings that span the innermost dimension; those are padded with NUL
// (or cut) to the dimension size so every element keeps its place.
func flatten(values any, s api.Schema) (data any, err error) {
	defer thrower.RecoverError(&err)
	elem, has := elemTypes[s.Type]
	if !has {
		thrower.Throw(fmt.Errorf("%w: %v", ErrUnsupported, s.Type))
	}
	v := reflect.ValueOf(values)
	if v.IsValid() && v.Type() == reflect.SliceOf(elem) && s.Type != api.Char {
		return values, nil
	}
	f := flattener{
		typ:  s.Type,
		elem: elem,
		out:  reflect.MakeSlice(reflect.SliceOf(elem), 0, int(s.Len())),
	}
	if s.Type == api.Char {
		f.width = 1
		if r := s.Rank(); r > 0 {
			f.width = int(s.Dimensions[r-1].Size)
		}
	}
	f.walk(v)
	return f.out.Interface(), nil
}

type flattener struct {
	typ   api.ElementType
	elem  reflect.Type
	width int // chars per string, for char variables
	out   reflect.Value
}

func (f *flattener) walk(v reflect.Value) {
	if !v.IsValid() {
		thrower.Throw(fmt.Errorf("%w: nil", ErrUnexpectedValue))
	}
	if v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	switch {
	case f.typ == api.Char && v.Kind() == reflect.String:
		f.chars([]byte(v.String()))
	case f.typ == api.Char && v.Type() == reflect.TypeOf([]byte(nil)):
		f.chars(v.Bytes())
	case v.Type() == f.elem:
		f.out = reflect.Append(f.out, v)
	case (v.Kind() == reflect.Slice || v.Kind() == reflect.Array) && v.Type().Elem() == f.elem:
		for i := 0; i < v.Len(); i++ {
			f.out = reflect.Append(f.out, v.Index(i))
		}
	case v.Kind() == reflect.Slice || v.Kind() == reflect.Array:
		for i := 0; i < v.Len(); i++ {
			f.walk(v.Index(i))
		}
	default:
		thrower.Throw(fmt.Errorf("%w: %s in a %v variable", ErrUnexpectedValue, v.Type(), f.typ))
	}
}

func (f *flattener) chars(b []byte) {
	padded := make([]byte, f.width)
	copy(padded, b)
	f.out = reflect.AppendSlice(f.out, reflect.ValueOf(padded))
}
