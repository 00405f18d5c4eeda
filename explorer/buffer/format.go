package buffer

import (
	"fmt"
	"math"
	"strconv"

	"github.com/batchatco/go-netcdf-explorer/explorer/api"
)

// Significant digits for the floating point kinds, as C's "%g" and "%.12g".
const (
	float32Digits = 6
	float64Digits = 12
)

// formatFloat writes non-finite values the way C's printf does.
func formatFloat(f float64, digits, bits int) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'g', digits, bits)
}

// Format renders one element of type typ. The element must have the Go type of typ:
// float32 for Float32, byte for Char, string or *Text for String, and so on.
func Format(typ api.ElementType, v any) (string, error) {
	switch typ {
	case api.Float32:
		if f, ok := v.(float32); ok {
			return formatFloat(float64(f), float32Digits, 32), nil
		}
	case api.Float64:
		if f, ok := v.(float64); ok {
			return formatFloat(f, float64Digits, 64), nil
		}
	case api.Int32:
		if i, ok := v.(int32); ok {
			return strconv.FormatInt(int64(i), 10), nil
		}
	case api.Int16:
		if i, ok := v.(int16); ok {
			return strconv.FormatInt(int64(i), 10), nil
		}
	case api.Int8:
		if i, ok := v.(int8); ok {
			return strconv.FormatInt(int64(i), 10), nil
		}
	case api.Int64:
		if i, ok := v.(int64); ok {
			return strconv.FormatInt(i, 10), nil
		}
	case api.Uint8:
		if u, ok := v.(uint8); ok {
			return strconv.FormatUint(uint64(u), 10), nil
		}
	case api.Uint16:
		if u, ok := v.(uint16); ok {
			return strconv.FormatUint(uint64(u), 10), nil
		}
	case api.Uint32:
		if u, ok := v.(uint32); ok {
			return strconv.FormatUint(uint64(u), 10), nil
		}
	case api.Uint64:
		if u, ok := v.(uint64); ok {
			return strconv.FormatUint(u, 10), nil
		}
	case api.Char:
		if c, ok := v.(byte); ok {
			if c == 0 {
				return "", nil
			}
			return string([]byte{c}), nil
		}
	case api.String:
		switch s := v.(type) {
		case string:
			return s, nil
		case *Text:
			return s.String(), nil
		}
	default:
		return "", fmt.Errorf("%w: %v", ErrUnsupportedType, typ)
	}
	return "", fmt.Errorf("%w: %T is not %s", ErrTypeMismatch, v, typ)
}

// FormatValue renders a Go value of any supported kind, choosing the type from the value.
// Slices are rendered element by element, separated by ", ". It is used for attributes,
// whose type is only known from the value.
func FormatValue(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case []string:
		return join(len(x), func(i int) (string, error) { return x[i], nil })
	case []byte:
		return join(len(x), func(i int) (string, error) { return Format(api.Uint8, x[i]) })
	case []int8:
		return join(len(x), func(i int) (string, error) { return Format(api.Int8, x[i]) })
	case []int16:
		return join(len(x), func(i int) (string, error) { return Format(api.Int16, x[i]) })
	case []int32:
		return join(len(x), func(i int) (string, error) { return Format(api.Int32, x[i]) })
	case []int64:
		return join(len(x), func(i int) (string, error) { return Format(api.Int64, x[i]) })
	case []uint16:
		return join(len(x), func(i int) (string, error) { return Format(api.Uint16, x[i]) })
	case []uint32:
		return join(len(x), func(i int) (string, error) { return Format(api.Uint32, x[i]) })
	case []uint64:
		return join(len(x), func(i int) (string, error) { return Format(api.Uint64, x[i]) })
	case []float32:
		return join(len(x), func(i int) (string, error) { return Format(api.Float32, x[i]) })
	case []float64:
		return join(len(x), func(i int) (string, error) { return Format(api.Float64, x[i]) })
	}
	typ, err := api.ParseType(fmt.Sprintf("%T", v))
	if err != nil {
		return "", fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
	return Format(typ, v)
}

func join(n int, f func(int) (string, error)) (string, error) {
	out := make([]byte, 0, n*4)
	for i := 0; i < n; i++ {
		s, err := f(i)
		if err != nil {
			return "", err
		}
		if i > 0 {
			out = append(out, ", "...)
		}
		out = append(out, s...)
	}
	return string(out), nil
}
