package buffer

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batchatco/go-netcdf-explorer/explorer/api"
)

func constant(v any) ReadFunc {
	return func() (any, error) { return v, nil }
}

func TestFormat(t *testing.T) {
	cases := []struct {
		typ  api.ElementType
		val  any
		want string
	}{
		{api.Float32, float32(1.5), "1.5"},
		{api.Float32, float32(3.14159265), "3.14159"},
		{api.Float32, float32(1e6), "1e+06"},
		{api.Float32, float32(100000), "100000"},
		{api.Float32, float32(0.0001), "0.0001"},
		{api.Float32, float32(0.00001), "1e-05"},
		{api.Float64, 3.14159265358979, "3.14159265359"},
		{api.Float64, 0.1, "0.1"},
		{api.Float64, 1e12, "1e+12"},
		{api.Float64, -2.0, "-2"},
		{api.Float64, math.NaN(), "nan"},
		{api.Float64, math.Inf(1), "inf"},
		{api.Float64, math.Inf(-1), "-inf"},
		{api.Float32, float32(math.NaN()), "nan"},
		{api.Float32, float32(math.Inf(-1)), "-inf"},
		{api.Int32, int32(-42), "-42"},
		{api.Int16, int16(-32768), "-32768"},
		{api.Int8, int8(-128), "-128"},
		{api.Uint8, uint8(255), "255"},
		{api.Uint16, uint16(65535), "65535"},
		{api.Uint32, uint32(4294967295), "4294967295"},
		{api.Int64, int64(math.MinInt64), "-9223372036854775808"},
		{api.Uint64, uint64(math.MaxUint64), "18446744073709551615"},
		{api.Char, byte('x'), "x"},
		{api.Char, byte(0), ""},
		{api.String, "hello world", "hello world"},
		{api.String, NewText("owned"), "owned"},
	}
	for _, c := range cases {
		got, err := Format(c.typ, c.val)
		require.NoError(t, err, "%v %v", c.typ, c.val)
		assert.Equal(t, c.want, got, "%v %v", c.typ, c.val)
	}
}

func TestFormatErrors(t *testing.T) {
	_, err := Format(api.Invalid, 1)
	assert.ErrorIs(t, err, ErrUnsupportedType)
	_, err = Format(api.ElementType(42), 1)
	assert.ErrorIs(t, err, ErrUnsupportedType)
	_, err = Format(api.Float64, float32(1))
	assert.ErrorIs(t, err, ErrTypeMismatch)
	_, err = Format(api.String, 1)
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestFormatRoundTrip(t *testing.T) {
	const pi = 3.14159265358979
	s, err := Format(api.Float64, pi)
	require.NoError(t, err)
	assert.Equal(t, "3.14159265359", s)
	back, err := strconv.ParseFloat(s, 64)
	require.NoError(t, err)
	assert.InDelta(t, pi, back, 5e-12)

	for _, v := range []float64{1.0 / 3, 2.718281828459045, 6.02214076e23, -1.602176634e-19} {
		s, err := Format(api.Float64, v)
		require.NoError(t, err)
		back, err := strconv.ParseFloat(s, 64)
		require.NoError(t, err)
		assert.InEpsilon(t, v, back, 1e-11, s)
	}
}

func TestFormatValue(t *testing.T) {
	cases := []struct {
		val  any
		want string
	}{
		{"units", "units"},
		{[]string{"a", "b"}, "a, b"},
		{[]float64{1.5, 2}, "1.5, 2"},
		{[]int16{-1, 0, 1}, "-1, 0, 1"},
		{[]uint8{7}, "7"},
		{float32(2.5), "2.5"},
		{int64(9), "9"},
		{[]int32{}, ""},
	}
	for _, c := range cases {
		got, err := FormatValue(c.val)
		require.NoError(t, err)
		assert.Equal(t, c.want, got)
	}
	_, err := FormatValue(struct{}{})
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestLoadScalars(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6}
	b, err := Load(constant(values), api.Float64, 6)
	require.NoError(t, err)
	assert.Equal(t, api.Float64, b.Type())
	assert.Equal(t, 6, b.Len())
	assert.Equal(t, "4", b.Text(3))
	f, ok := b.Float(5)
	assert.True(t, ok)
	assert.Equal(t, 6.0, f)

	s, ok := b.(*Scalars[float64])
	require.True(t, ok)
	assert.Equal(t, 2.0, s.At(1))

	b.Release()
	assert.True(t, b.Released())
	assert.Equal(t, 0, b.Len())
	b.Release()
	assert.True(t, b.Released())
}

func TestLoadEveryType(t *testing.T) {
	cases := []struct {
		typ  api.ElementType
		data any
		want string
	}{
		{api.Float32, []float32{0.5}, "0.5"},
		{api.Float64, []float64{0.25}, "0.25"},
		{api.Int32, []int32{-3}, "-3"},
		{api.Int16, []int16{-4}, "-4"},
		{api.Int8, []int8{-5}, "-5"},
		{api.Uint8, []uint8{6}, "6"},
		{api.Uint16, []uint16{7}, "7"},
		{api.Uint32, []uint32{8}, "8"},
		{api.Int64, []int64{-9}, "-9"},
		{api.Uint64, []uint64{10}, "10"},
		{api.Char, []byte("z"), "z"},
		{api.String, []string{"eleven"}, "eleven"},
	}
	for _, c := range cases {
		b, err := Load(constant(c.data), c.typ, 1)
		require.NoError(t, err, c.typ)
		assert.Equal(t, c.typ, b.Type())
		assert.Equal(t, c.want, b.Text(0), c.typ)
		_, numeric := b.Float(0)
		assert.Equal(t, c.typ.Numeric(), numeric, c.typ)
		b.Release()
	}
}

func TestLoadFailures(t *testing.T) {
	boom := errors.New("boom")
	_, err := Load(func() (any, error) { return nil, boom }, api.Int32, 3)
	assert.ErrorIs(t, err, boom)

	_, err = Load(constant([]int32{1, 2}), api.Int32, 3)
	assert.ErrorIs(t, err, ErrShortRead)

	_, err = Load(constant([]int32{1, 2, 3, 4}), api.Int32, 3)
	assert.ErrorIs(t, err, ErrShortRead)

	_, err = Load(constant([]float32{1, 2, 3}), api.Int32, 3)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = Load(constant([]string{"a"}), api.Char, 1)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = Load(constant([]string{"a"}), api.String, 2)
	assert.ErrorIs(t, err, ErrShortRead)

	called := false
	_, err = Load(func() (any, error) { called = true; return nil, nil }, api.Invalid, 1)
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.False(t, called, "read must not run for an unsupported type")
}

// trackingArena counts every allocation and release and flags double frees.
type trackingArena struct {
	allocs      int
	frees       int
	arrayFrees  int
	arrayLen    int
	doubleFrees int
	freed       map[*Text]bool
}

func newTrackingArena() *trackingArena {
	return &trackingArena{freed: map[*Text]bool{}}
}

func (a *trackingArena) Alloc(s string) *Text {
	a.allocs++
	return NewText(s)
}

func (a *trackingArena) Free(t *Text) {
	if a.freed[t] {
		a.doubleFrees++
		return
	}
	a.freed[t] = true
	a.frees++
	t.Kill()
}

func (a *trackingArena) FreeArray(texts []*Text) {
	for _, t := range texts {
		if !a.freed[t] {
			panic("array freed before its elements")
		}
	}
	a.arrayFrees++
	a.arrayLen = len(texts)
}

func TestStringRelease(t *testing.T) {
	const n = 17
	values := make([]string, n)
	for i := range values {
		values[i] = "s" + strconv.Itoa(i)
	}
	arena := newTrackingArena()
	b, err := Load(constant(values), api.String, n, WithArena(arena))
	require.NoError(t, err)
	assert.Equal(t, n, arena.allocs)
	assert.Equal(t, "s16", b.Text(16))

	strs := b.(*Strings)
	first := strs.At(0)
	assert.True(t, first.Live())

	b.Release()
	assert.Equal(t, n, arena.frees)
	assert.Equal(t, 1, arena.arrayFrees)
	assert.Equal(t, n, arena.arrayLen)
	assert.False(t, first.Live())
	assert.Equal(t, "", first.String())

	b.Release()
	assert.Equal(t, n, arena.frees)
	assert.Equal(t, 1, arena.arrayFrees)
	assert.Equal(t, 0, arena.doubleFrees)
}

func TestStringLoadFailureAllocatesNothing(t *testing.T) {
	arena := newTrackingArena()
	_, err := Load(constant([]string{"a", "b"}), api.String, 3, WithArena(arena))
	assert.ErrorIs(t, err, ErrShortRead)
	assert.Equal(t, 0, arena.allocs)
}

func TestCharRelease(t *testing.T) {
	b, err := Load(constant([]byte{'a', 0, 'c'}), api.Char, 3)
	require.NoError(t, err)
	assert.Equal(t, "a", b.Text(0))
	assert.Equal(t, "", b.Text(1))
	assert.Equal(t, byte('c'), b.(*Chars).At(2))
	b.Release()
	assert.True(t, b.Released())
	assert.Equal(t, 0, b.Len())
}
