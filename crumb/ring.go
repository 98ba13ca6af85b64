// Package crumb implements a ring buffer of 2-bit direction codes ("crumbs"),
// packed four to a byte.
//
// A crumb is half a nibble. Storing a snake as the tail coordinate plus one
// crumb per segment takes an eighth of the memory a list of byte-sized
// (row, column) pairs would.
package crumb

import (
	"errors"
	"fmt"

	"crumbsnake/geom"
)

const crumbsPerByte = 4

var (
	ErrEmpty      = errors.New("crumb: ring is empty")
	ErrOutOfRange = errors.New("crumb: index out of range")
)

// Ring is a fixed-capacity FIFO of directions. Push appends at the write
// cursor, Pop removes at the read cursor.
type Ring struct {
	data  []byte
	read  Cursor
	write Cursor
}

// NewRing allocates a ring of byteCapacity bytes holding 4*byteCapacity
// directions. It panics if byteCapacity is not positive.
func NewRing(byteCapacity int) *Ring {
	if byteCapacity <= 0 {
		panic(fmt.Sprintf("crumb: invalid ring size %d", byteCapacity))
	}
	start := Cursor{bytes: byteCapacity}
	return &Ring{
		data:  make([]byte, byteCapacity),
		read:  start,
		write: start,
	}
}

// Capacity is the number of 2-bit slots.
func (r *Ring) Capacity() int { return len(r.data) * crumbsPerByte }

// Bytes is the memory used for direction storage.
func (r *Ring) Bytes() int { return len(r.data) }

func (r *Ring) Size() int   { return r.write.Diff(r.read) }
func (r *Ring) Empty() bool { return r.read == r.write }
func (r *Ring) Full() bool  { return r.Size() == r.Capacity() }

func (r *Ring) Read() Cursor  { return r.read }
func (r *Ring) Write() Cursor { return r.write }

func shift(c Cursor) uint {
	return uint(crumbsPerByte-1-c.Crumb) << 1
}

// Get decodes the slot under c. Any cursor obtained from this ring is valid,
// live or not.
func (r *Ring) Get(c Cursor) geom.Direction {
	return geom.Direction((r.data[c.Byte] >> shift(c)) & 0x03)
}

// Set overwrites the slot under c with the low two bits of d.
func (r *Ring) Set(c Cursor, d geom.Direction) {
	s := shift(c)
	r.data[c.Byte] &^= 0x03 << s
	r.data[c.Byte] |= (byte(d) & 0x03) << s
}

// Push appends d. It returns false, leaving the ring untouched, when the
// ring is full or d is not a cardinal direction.
func (r *Ring) Push(d geom.Direction) bool {
	if r.Full() || !d.Valid() {
		return false
	}
	r.Set(r.write, d)
	r.write = r.write.Next()
	return true
}

// Pop removes and returns the oldest direction.
func (r *Ring) Pop() (geom.Direction, error) {
	if r.Empty() {
		return geom.None, ErrEmpty
	}
	d := r.Get(r.read)
	r.read = r.read.Next()
	return d, nil
}

// Peek returns the i-th oldest direction without removing it.
func (r *Ring) Peek(i int) (geom.Direction, error) {
	if i < 0 || i >= r.Size() {
		return geom.None, fmt.Errorf("%w: %d of %d", ErrOutOfRange, i, r.Size())
	}
	return r.Get(r.read.Add(i)), nil
}

// Back returns the i-th newest direction; Back(0) is the last one pushed.
func (r *Ring) Back(i int) (geom.Direction, error) {
	if i < 0 || i >= r.Size() {
		return geom.None, fmt.Errorf("%w: %d of %d", ErrOutOfRange, i, r.Size())
	}
	return r.Get(r.write.Sub(i + 1)), nil
}

// Clear empties the ring. Stale slots are overwritten by later pushes.
func (r *Ring) Clear() {
	start := Cursor{bytes: len(r.data)}
	r.read = start
	r.write = start
}

func (r *Ring) String() string {
	return fmt.Sprintf("ring{read: %s, write: %s, size: %d/%d}", r.read, r.write, r.Size(), r.Capacity())
}
