package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	cases := map[string]ElementType{
		"float":   Float32,
		"float32": Float32,
		"real":    Float32,
		"double":  Float64,
		"int":     Int32,
		"long":    Int32,
		"short":   Int16,
		"byte":    Int8,
		"int8":    Int8,
		"ubyte":   Uint8,
		"uint8":   Uint8,
		"ushort":  Uint16,
		"uint":    Uint32,
		"int64":   Int64,
		"uint64":  Uint64,
		"char":    Char,
		"string":  String,
		" int ":   Int32,
	}
	for name, want := range cases {
		got, err := ParseType(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseType("compound")
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestTypeNames(t *testing.T) {
	for typ := Float32; typ <= String; typ++ {
		assert.True(t, typ.Valid())
		back, err := ParseType(typ.String())
		require.NoError(t, err)
		assert.Equal(t, typ, back)
	}
	assert.False(t, Invalid.Valid())
	assert.Equal(t, "invalid", ElementType(99).String())
	assert.True(t, Uint64.Numeric())
	assert.False(t, Char.Numeric())
	assert.False(t, String.Numeric())
	assert.Equal(t, 8, Float64.Size())
	assert.Equal(t, 1, Char.Size())
	assert.Equal(t, 0, String.Size())
	assert.Equal(t, 0, ElementType(99).Size())
}

func TestSchema(t *testing.T) {
	s := Schema{Type: Float64}
	assert.Equal(t, 0, s.Rank())
	assert.Equal(t, uint64(1), s.Len())

	s.Dimensions = []Dimension{{"time", 4}, {"lat", 2}, {"lon", 3}}
	assert.Equal(t, 3, s.Rank())
	assert.Equal(t, uint64(24), s.Len())
	assert.Equal(t, []uint64{4, 2, 3}, s.Shape())

	s.Dimensions = append(s.Dimensions, Dimension{"empty", 0})
	assert.Equal(t, uint64(0), s.Len())
}
