// Package buffer holds the loaded elements of one variable.
//
// A Buffer is one of three variants: Scalars for the ten fixed-width numeric kinds,
// Chars for char, and Strings for variable-length strings. Strings is an owned array of
// owned Text handles and is the only variant whose release frees more than the array.
package buffer

import (
	"errors"

	"github.com/batchatco/go-netcdf-explorer/explorer/api"
)

var (
	ErrUnsupportedType = errors.New("unsupported element type")
	ErrTypeMismatch    = errors.New("element type mismatch")
	ErrShortRead       = errors.New("element count mismatch")
	ErrTooLarge        = errors.New("buffer too large")
)

// Buffer is a read-only, homogeneous element array.
type Buffer interface {
	// Type is the element kind.
	Type() api.ElementType
	// Len is the element count; 0 once released.
	Len() int
	// Text formats element i for display.
	Text(i int) string
	// Float returns element i as a float64 for numeric kinds.
	Float(i int) (float64, bool)
	// Release disposes of the elements. It is safe to call more than once.
	Release()
	Released() bool

	sealed()
}

type scalar interface {
	float32 | float64 | int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64
}

// Scalars holds one of the fixed-width numeric kinds.
type Scalars[T scalar] struct {
	typ      api.ElementType
	values   []T
	released bool
}

func (b *Scalars[T]) sealed() {}

func (b *Scalars[T]) Type() api.ElementType { return b.typ }

func (b *Scalars[T]) Len() int { return len(b.values) }

// At returns element i.
func (b *Scalars[T]) At(i int) T { return b.values[i] }

func (b *Scalars[T]) Text(i int) string {
	s, _ := Format(b.typ, b.values[i])
	return s
}

func (b *Scalars[T]) Float(i int) (float64, bool) {
	return float64(b.values[i]), true
}

func (b *Scalars[T]) Release() {
	b.values = nil
	b.released = true
}

func (b *Scalars[T]) Released() bool { return b.released }

// Chars holds char elements, one byte each.
type Chars struct {
	values   []byte
	released bool
}

func (b *Chars) sealed() {}

func (b *Chars) Type() api.ElementType { return api.Char }

func (b *Chars) Len() int { return len(b.values) }

func (b *Chars) At(i int) byte { return b.values[i] }

func (b *Chars) Text(i int) string {
	s, _ := Format(api.Char, b.values[i])
	return s
}

func (b *Chars) Float(int) (float64, bool) { return 0, false }

func (b *Chars) Release() {
	b.values = nil
	b.released = true
}

func (b *Chars) Released() bool { return b.released }

// Strings holds variable-length strings. Every element is a Text handle obtained from
// the buffer's Arena; Release hands each one back before the array itself.
type Strings struct {
	texts    []*Text
	arena    Arena
	released bool
}

func (b *Strings) sealed() {}

func (b *Strings) Type() api.ElementType { return api.String }

func (b *Strings) Len() int { return len(b.texts) }

func (b *Strings) At(i int) *Text { return b.texts[i] }

func (b *Strings) Text(i int) string { return b.texts[i].String() }

func (b *Strings) Float(int) (float64, bool) { return 0, false }

func (b *Strings) Release() {
	if b.released {
		return
	}
	for _, t := range b.texts {
		if t != nil && t.Live() {
			b.arena.Free(t)
		}
	}
	b.arena.FreeArray(b.texts)
	b.texts = nil
	b.released = true
}

func (b *Strings) Released() bool { return b.released }
