package spritepack

import "fmt"

// Allocator grants the single buffer a packed sprite lives in. The
// encoder writes every byte of the buffer it receives, so
// implementations may hand out dirty memory.
type Allocator interface {
	// Alloc returns a buffer of exactly size bytes.
	Alloc(size int) ([]byte, error)
}

// HeapAllocator allocates each sprite buffer fresh from the Go heap.
type HeapAllocator struct{}

// Alloc returns a zeroed buffer of exactly size bytes.
func (HeapAllocator) Alloc(size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrAllocate, size)
	}

	return make([]byte, size), nil
}

// Arena hands out slices of one pre-allocated block, front to back.
// Memory is reclaimed only by Reset, which recycles the block without
// zeroing it.
type Arena struct {
	block []byte
	off   int
}

// NewArena creates an arena backed by one block of capacity bytes.
func NewArena(capacity int) *Arena {
	return &Arena{block: make([]byte, capacity)}
}

// Alloc carves the next size bytes off the block. The returned slice
// may hold stale bytes from before the last Reset.
func (a *Arena) Alloc(size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrAllocate, size)
	}
	if size > a.Remaining() {
		return nil, fmt.Errorf("%w: %d bytes requested, %d left",
			ErrArenaExhausted, size, a.Remaining())
	}

	buf := a.block[a.off : a.off+size : a.off+size]
	a.off += size

	return buf, nil
}

// Reset reclaims the whole block. Buffers handed out before the reset
// must no longer be used.
func (a *Arena) Reset() { a.off = 0 }

// Remaining returns the bytes still unallocated.
func (a *Arena) Remaining() int { return len(a.block) - a.off }
