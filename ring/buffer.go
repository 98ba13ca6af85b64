// Package ring provides a small fixed-capacity ring buffer.
package ring

// Buffer holds up to Capacity values. One extra slot is allocated so that
// read == write means empty and write+1 == read means full.
type Buffer[T any] struct {
	data        []T
	read, write int
}

func New[T any](capacity int) *Buffer[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer[T]{data: make([]T, capacity+1)}
}

func (b *Buffer[T]) next(i int) int {
	if i++; i == len(b.data) {
		return 0
	}
	return i
}

func (b *Buffer[T]) prev(i int) int {
	if i == 0 {
		return len(b.data) - 1
	}
	return i - 1
}

func (b *Buffer[T]) Capacity() int { return len(b.data) - 1 }

func (b *Buffer[T]) Size() int {
	if b.write >= b.read {
		return b.write - b.read
	}
	return b.write - b.read + len(b.data)
}

func (b *Buffer[T]) Empty() bool { return b.read == b.write }
func (b *Buffer[T]) Full() bool  { return b.next(b.write) == b.read }

// Push appends v, failing when the buffer is full.
func (b *Buffer[T]) Push(v T) bool {
	if b.Full() {
		return false
	}
	b.data[b.write] = v
	b.write = b.next(b.write)
	return true
}

// Pop removes the oldest value.
func (b *Buffer[T]) Pop() (T, bool) {
	var zero T
	if b.Empty() {
		return zero, false
	}
	v := b.data[b.read]
	b.data[b.read] = zero
	b.read = b.next(b.read)
	return v, true
}

// Front is the newest value.
func (b *Buffer[T]) Front() (T, bool) {
	if b.Empty() {
		var zero T
		return zero, false
	}
	return b.data[b.prev(b.write)], true
}

func (b *Buffer[T]) Clear() {
	clear(b.data)
	b.read, b.write = 0, 0
}
