package buffer

// Text is one owned string element.
type Text struct {
	s    string
	live bool
}

// NewText returns a live handle; arenas use it to build their elements.
func NewText(s string) *Text {
	return &Text{s: s, live: true}
}

func (t *Text) String() string { return t.s }

// Live is false once the handle has been freed.
func (t *Text) Live() bool { return t.live }

// Kill drops the string and marks the handle freed.
func (t *Text) Kill() {
	t.s = ""
	t.live = false
}

// Arena allocates and frees the Text handles of a Strings buffer.
type Arena interface {
	Alloc(s string) *Text
	Free(t *Text)
	// FreeArray is called once per buffer, after every element was freed.
	FreeArray(texts []*Text)
}

// Heap is the default arena; the garbage collector reclaims what it frees.
var Heap Arena = heapArena{}

type heapArena struct{}

func (heapArena) Alloc(s string) *Text { return NewText(s) }

func (heapArena) Free(t *Text) { t.Kill() }

func (heapArena) FreeArray([]*Text) {}
