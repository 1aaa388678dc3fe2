package data

import "sync/atomic"

// bufferCore is the reference-counted storage shared by a Buffer and any
// of its clones. Only Buffer methods touch it directly.
type bufferCore[T any] struct {
	data     []T
	refCount atomic.Int32
}

// Buffer is a heap slice of T under a shared-ownership, reference-counted
// handle. Cloning a Buffer is O(1) (it just bumps the refcount); mutating
// through write() clones the backing slice first if more than one Buffer
// handle currently shares it. This is the sole mechanism that preserves
// "copying a Variable is O(1); mutating it does not affect the copy".
type Buffer[T any] struct {
	core *bufferCore[T]
}

// NewBuffer allocates an owned Buffer of n zero-valued elements.
func NewBuffer[T any](n int) *Buffer[T] {
	core := &bufferCore[T]{data: make([]T, n)}
	core.refCount.Store(1)
	return &Buffer[T]{core: core}
}

// NewBufferFrom allocates an owned Buffer by copying data (data is not
// retained).
func NewBufferFrom[T any](data []T) *Buffer[T] {
	buf := NewBuffer[T](len(data))
	copy(buf.core.data, data)
	return buf
}

// Len returns the number of elements.
func (b *Buffer[T]) Len() int {
	return len(b.core.data)
}

// Read returns an immutable view of the buffer's contents. Callers must
// not mutate the returned slice.
func (b *Buffer[T]) Read() []T {
	return b.core.data
}

// Write returns a mutable slice over the buffer's contents, cloning the
// backing array first if this handle is not the sole owner (refCount >
// 1). This is the sole mutation entry point; all mutating operations in
// this package must route through it.
func (b *Buffer[T]) Write() []T {
	if b.core.refCount.Load() > 1 {
		b.core.refCount.Add(-1)
		cloned := make([]T, len(b.core.data))
		copy(cloned, b.core.data)
		b.core = &bufferCore[T]{data: cloned}
		b.core.refCount.Store(1)
	}
	return b.core.data
}

// Clone returns a new Buffer handle sharing the same backing storage
// (O(1): just increments the reference count). The clone observes
// mutations made through either handle's Write() only up until one of
// them actually writes, at which point Write's COW clone breaks the
// sharing.
func (b *Buffer[T]) Clone() *Buffer[T] {
	b.core.refCount.Add(1)
	return &Buffer[T]{core: b.core}
}

// IsUnique reports whether this handle is the sole owner of its backing
// storage.
func (b *Buffer[T]) IsUnique() bool {
	return b.core.refCount.Load() == 1
}

// SameStorage reports whether a and b currently share the same backing
// array. Used to detect the self-overlap aliasing hazard before an
// in-place binary op.
func SameStorage[T any](a, b *Buffer[T]) bool {
	return a.core == b.core
}

// Resize grows or shrinks the buffer in place to n elements, preserving
// existing contents up to min(old, n) and zero-filling any growth. This
// always clones first via Write() if the buffer is shared, so other
// handles are unaffected.
func (b *Buffer[T]) Resize(n int) {
	cur := b.Write()
	if n == len(cur) {
		return
	}
	next := make([]T, n)
	copy(next, cur)
	b.core.data = next
}

// Equal does an elementwise comparison against other. T must be
// comparable; callers pass a cmp func for types that aren't (e.g. when T
// is *Dataset, compared by deep Dataset equality instead of pointer
// identity).
func (b *Buffer[T]) Equal(other *Buffer[T], cmp func(a, b T) bool) bool {
	if b.core == other.core {
		return true
	}
	if len(b.core.data) != len(other.core.data) {
		return false
	}
	for i := range b.core.data {
		if !cmp(b.core.data[i], other.core.data[i]) {
			return false
		}
	}
	return true
}
