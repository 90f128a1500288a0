// Package arena implements the compiler's scoped bump allocator.
//
// A real Fern implementation bump-allocates raw bytes and hands back
// pointers into them; idiomatic Go has no safe equivalent of "cast this
// byte range to a struct", so this package keeps the *contract* of the
// reference arena (block-based byte storage for String/Vec payloads, a
// reset that invalidates everything handed out before it, bulk
// destruction) while letting typed compiler values live on the normal Go
// heap. Generation counters stand in for the raw-pointer aliasing the
// reference implementation relies on: a Handle captured before a Reset
// is provably stale afterward, which is the property the rest of the
// pipeline actually depends on.
package arena

import (
	"fmt"
	"unsafe"
)

// Arena is a sequence of fixed-size blocks plus an overflow list for
// oversized requests. Not safe for concurrent use — one arena belongs to
// one compilation unit processed by one goroutine.
type Arena struct {
	blockBytes     int
	blocks         [][]byte
	used           []int // bytes consumed in blocks[i]
	overflow       [][]byte
	totalAllocated uint64
	generation     uint64
	destroyed      bool
}

// New creates an arena with a first block of blockBytes bytes.
func New(blockBytes int) *Arena {
	if blockBytes <= 0 {
		blockBytes = 64 * 1024
	}
	a := &Arena{blockBytes: blockBytes}
	a.blocks = append(a.blocks, make([]byte, blockBytes))
	a.used = append(a.used, 0)
	return a
}

// Alloc bump-allocates size bytes aligned to align (must be a power of two
// no larger than the block size) and returns a zeroed slice into the
// arena's storage. Requests larger than a block are served from the
// overflow list. Returns nil if the arena has been destroyed or align is
// invalid.
func (a *Arena) Alloc(size, align int) []byte {
	if a.destroyed || size < 0 {
		return nil
	}
	if align <= 0 {
		align = 1
	}
	if align&(align-1) != 0 || align > a.blockBytes {
		return nil
	}
	if size > a.blockBytes {
		buf := make([]byte, size)
		a.overflow = append(a.overflow, buf)
		a.totalAllocated += uint64(size)
		return buf
	}

	last := len(a.blocks) - 1
	start := alignUp(a.used[last], align)
	if start+size > a.blockBytes {
		a.blocks = append(a.blocks, make([]byte, a.blockBytes))
		a.used = append(a.used, 0)
		last++
		start = 0
	}
	buf := a.blocks[last][start : start+size : start+size]
	clear(buf) // blocks are reused after Reset
	a.used[last] = start + size
	a.totalAllocated += uint64(size)
	return buf
}

func alignUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}

// Reset rewinds the logical high-water mark of every block, retaining the
// underlying storage for reuse, drops the overflow list, and bumps the
// generation counter so outstanding Handles become stale.
func (a *Arena) Reset() {
	for i := range a.used {
		a.used[i] = 0
	}
	a.overflow = a.overflow[:0]
	a.generation++
}

// Destroy releases all blocks. The arena must not be used afterward.
func (a *Arena) Destroy() {
	a.blocks = nil
	a.used = nil
	a.overflow = nil
	a.destroyed = true
}

// TotalAllocated returns the sum of successful allocation sizes since
// creation (not reduced by Reset, matching the reference semantics: it is
// a lifetime counter, not a live-bytes gauge).
func (a *Arena) TotalAllocated() uint64 { return a.totalAllocated }

// Generation returns the arena's current generation, bumped by every Reset.
func (a *Arena) Generation() uint64 { return a.generation }

// Handle is a generation-stamped reference to a value conceptually owned by
// an arena. Get fails once the owning arena has moved past the generation
// the Handle was allocated in.
type Handle[T any] struct {
	gen uint64
	val *T
}

// Alloc stores v on the Go heap and stamps the current arena generation on
// the returned Handle. This is the typed-value counterpart to Arena.Alloc:
// the byte-block allocator backs String/Vec storage; Handle backs every
// AST/Type node so arena lifetime discipline is still checkable.
func Alloc[T any](a *Arena, v T) Handle[T] {
	a.totalAllocated += uint64(unsafe.Sizeof(v))
	p := new(T)
	*p = v
	return Handle[T]{gen: a.generation, val: p}
}

// Get returns the pointed-to value and whether it is still valid under the
// given arena (i.e. no Reset has happened since allocation).
func (h Handle[T]) Get(a *Arena) (*T, bool) {
	if h.val == nil {
		return nil, false
	}
	return h.val, h.gen == a.generation
}

// MustGet panics if the handle is stale; used where the caller has already
// established liveness (e.g. within a single pipeline run with no Reset).
func (h Handle[T]) MustGet(a *Arena) *T {
	v, ok := h.Get(a)
	if !ok {
		panic(fmt.Sprintf("arena: stale handle (generation %d, arena at %d)", h.gen, a.generation))
	}
	return v
}

// Valid reports whether the handle was ever populated.
func (h Handle[T]) Valid() bool { return h.val != nil }
