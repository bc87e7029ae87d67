// Package buffer implements the engine's generic growable memory region:
// push/pop/peek/get/set/pick/roll/allocate/remove/rollback/here over a
// slice of T, with the page-at-a-time growth strategy grounded on the
// teacher's internal/mem.Ints/PagedCore (there specialized to int; here
// generalized to any element type so CodeBuffer, DataBuffer and every stack
// in the engine share one growth strategy).
package buffer

import "github.com/jcorbin/exst/internal/vmerr"

// DefaultPageSize is used when a Buffer's PageSize is left zero.
const DefaultPageSize = 256

// Buffer is a generic growable region of T, addressed by a plain uint index.
// The zero value is an empty, ungrown buffer ready to use.
type Buffer[T any] struct {
	// PageSize controls the granularity of internal growth; irrelevant to
	// callers beyond performance.
	PageSize uint
	items    []T
}

// Here returns the current size of the buffer (one past the highest valid
// index).
func (b *Buffer[T]) Here() uint { return uint(len(b.items)) }

// Push appends v and returns the new size.
func (b *Buffer[T]) Push(v T) uint {
	b.ensureCap(1)
	b.items = append(b.items, v)
	return b.Here()
}

// ensureCap grows the backing slice's capacity a page at a time, so repeated
// single-element pushes don't reallocate on every call.
func (b *Buffer[T]) ensureCap(extra uint) {
	need := uint(len(b.items)) + extra
	if uint(cap(b.items)) >= need {
		return
	}
	page := b.PageSize
	if page == 0 {
		page = DefaultPageSize
	}
	newCap := uint(cap(b.items)) + page
	for newCap < need {
		newCap += page
	}
	grown := make([]T, len(b.items), newCap)
	copy(grown, b.items)
	b.items = grown
}

// Pop removes and returns the top element.
func (b *Buffer[T]) Pop() (T, error) {
	var zero T
	n := len(b.items)
	if n == 0 {
		return zero, vmerr.Underflow{Op: "pop", Want: 1, Have: 0}
	}
	v := b.items[n-1]
	b.items = b.items[:n-1]
	return v, nil
}

// Peek returns the top element without removing it.
func (b *Buffer[T]) Peek() (T, error) {
	var zero T
	n := len(b.items)
	if n == 0 {
		return zero, vmerr.Underflow{Op: "peek", Want: 1, Have: 0}
	}
	return b.items[n-1], nil
}

// Get returns the element at index i.
func (b *Buffer[T]) Get(i uint) (T, error) {
	var zero T
	if i >= b.Here() {
		return zero, vmerr.OutOfRange{Op: "get", Index: i, Size: b.Here()}
	}
	return b.items[i], nil
}

// Set replaces the element at index i, returning its prior value.
func (b *Buffer[T]) Set(i uint, v T) (T, error) {
	var zero T
	if i >= b.Here() {
		return zero, vmerr.OutOfRange{Op: "set", Index: i, Size: b.Here()}
	}
	old := b.items[i]
	b.items[i] = v
	return old, nil
}

// Pick duplicates the value pos below the top onto the top; pos=0
// duplicates the top itself.
func (b *Buffer[T]) Pick(pos uint) error {
	n := uint(len(b.items))
	if pos >= n {
		return vmerr.OutOfRange{Op: "pick", Index: pos, Size: n}
	}
	b.items = append(b.items, b.items[n-1-pos])
	return nil
}

// Roll moves the value pos below the top to the top, preserving the
// relative order of the others. Roll(0) is a no-op; Roll(1) swaps the top
// two.
func (b *Buffer[T]) Roll(pos uint) error {
	n := uint(len(b.items))
	if pos >= n {
		return vmerr.OutOfRange{Op: "roll", Index: pos, Size: n}
	}
	if pos == 0 {
		return nil
	}
	i := n - 1 - pos
	v := b.items[i]
	copy(b.items[i:n-1], b.items[i+1:n])
	b.items[n-1] = v
	return nil
}

// Allocate appends n default-initialized cells and returns the address of
// the first one.
func (b *Buffer[T]) Allocate(n uint) uint {
	at := b.Here()
	b.ensureCap(n)
	var zero T
	for i := uint(0); i < n; i++ {
		b.items = append(b.items, zero)
	}
	return at
}

// Remove drops n elements from the top.
func (b *Buffer[T]) Remove(n uint) error {
	have := uint(len(b.items))
	if n > have {
		return vmerr.Underflow{Op: "remove", Want: int(n), Have: int(have)}
	}
	b.items = b.items[:have-n]
	return nil
}

// Rollback truncates the buffer to exactly newSize.
func (b *Buffer[T]) Rollback(newSize uint) error {
	if newSize > b.Here() {
		return vmerr.InvalidRollbackPosition{NewSize: newSize, Size: b.Here()}
	}
	b.items = b.items[:newSize]
	return nil
}
