// Package body stores a snake as its head and tail coordinates plus one
// 2-bit direction per segment in between.
//
// Each stored code points from a segment toward the one behind it, so the
// ring reads tail to head from its read cursor and a walk that starts at the
// head follows the codes newest first, unmodified. Walks that start at the
// tail apply the complement of each code instead.
package body

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"crumbsnake/crumb"
	"crumbsnake/geom"
)

var (
	ErrFull          = errors.New("body: full")
	ErrEmpty         = errors.New("body: empty")
	ErrOutOfRange    = errors.New("body: index out of range")
	ErrMalformedPush = errors.New("body: new head is not adjacent to the current head")
	ErrCorrupt       = errors.New("body: direction storage is inconsistent")
)

type Body[T geom.Integer] struct {
	ring    *crumb.Ring
	head    geom.Point[T]
	tail    geom.Point[T]
	length  int
	heading geom.Direction
}

// New returns an empty body whose direction storage is byteCapacity bytes,
// enough for 4*byteCapacity+1 segments.
func New[T geom.Integer](byteCapacity int) *Body[T] {
	return &Body[T]{
		ring:    crumb.NewRing(byteCapacity),
		heading: geom.None,
	}
}

// Capacity is the longest the body can grow. The head needs no stored
// direction, hence the +1.
func (b *Body[T]) Capacity() int { return 1 + b.ring.Capacity() }

func (b *Body[T]) Len() int    { return b.length }
func (b *Body[T]) Empty() bool { return b.length == 0 }
func (b *Body[T]) Full() bool  { return b.length == b.Capacity() }

func (b *Body[T]) Head() geom.Point[T] { return b.head }
func (b *Body[T]) Tail() geom.Point[T] { return b.tail }

func (b *Body[T]) Heading() geom.Direction     { return b.heading }
func (b *Body[T]) SetHeading(d geom.Direction) { b.heading = d }

// StorageBytes is the memory spent on segment directions.
func (b *Body[T]) StorageBytes() int { return b.ring.Bytes() }

// Reset empties the body for a new game.
func (b *Body[T]) Reset() {
	b.ring.Clear()
	b.head, b.tail = geom.Point[T]{}, geom.Point[T]{}
	b.length = 0
	b.heading = geom.None
}

// Push grows the body at the head. The first push places a one-segment body
// at p; later pushes must be exactly one cell away from the current head.
// A failed push leaves the body unchanged.
func (b *Body[T]) Push(p geom.Point[T]) error {
	if b.Full() {
		return ErrFull
	}
	if b.length == 0 {
		b.head, b.tail = p, p
		b.length = 1
		return nil
	}

	d, ok := geom.Between(b.head, p)
	if !ok {
		return fmt.Errorf("%w: head %s, got %s", ErrMalformedPush, b.head, p)
	}
	if !b.ring.Push(d.Complement()) {
		return fmt.Errorf("%w: push failed at length %d (%s)", ErrCorrupt, b.length, b.ring)
	}
	b.head = p
	b.length++
	return nil
}

// Pop shrinks the body at the tail and returns the vacated coordinate.
func (b *Body[T]) Pop() (geom.Point[T], error) {
	if b.length == 0 {
		return geom.Point[T]{}, ErrEmpty
	}

	removed := b.tail
	switch b.length {
	case 1:
		b.head, b.tail = geom.Point[T]{}, geom.Point[T]{}
		b.ring.Clear()
	case 2:
		b.tail = b.head
		b.ring.Clear()
	default:
		d, err := b.ring.Pop()
		if err != nil {
			return geom.Point[T]{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		b.tail = geom.Step(b.tail, d.Complement())
	}
	b.length--
	return removed, nil
}

// At returns the index-th segment counting from the head (index 0).
//
// The walk always starts at the tail, so the cost grows with the distance
// from the tail rather than from the nearer end.
func (b *Body[T]) At(index int) (geom.Point[T], error) {
	if index < 0 || index+1 > b.length {
		return geom.Point[T]{}, fmt.Errorf("%w: %d of %d", ErrOutOfRange, index, b.length)
	}
	if index == 0 {
		return b.head, nil
	}

	p := b.tail
	c := b.ring.Read()
	for steps := b.length - index - 1; steps > 0; steps-- {
		p = geom.Step(p, b.ring.Get(c).Complement())
		c = c.Next()
	}
	return p, nil
}

// Contains reports whether p is one of the segments, walking from the head
// toward the tail. The matching segment is returned so that callers can tell
// a hit on the tail, which is about to move, from a real collision.
func (b *Body[T]) Contains(p geom.Point[T]) (geom.Point[T], bool) {
	if b.length == 0 {
		return geom.Point[T]{}, false
	}
	if p == b.head {
		return b.head, true
	}

	seg := b.head
	c := b.ring.Write()
	for n := b.length - 1; n > 0; n-- {
		c = c.Prev()
		seg = geom.Step(seg, b.ring.Get(c))
		if seg == p {
			return seg, true
		}
	}
	return geom.Point[T]{}, false
}

// Segments yields every segment from the tail to the head.
func (b *Body[T]) Segments() iter.Seq[geom.Point[T]] {
	return func(yield func(geom.Point[T]) bool) {
		if b.length == 0 {
			return
		}
		p := b.tail
		if !yield(p) {
			return
		}
		c := b.ring.Read()
		for n := b.length - 1; n > 0; n-- {
			p = geom.Step(p, b.ring.Get(c).Complement())
			c = c.Next()
			if !yield(p) {
				return
			}
		}
	}
}

// String lists the segments tail first, for debug logs.
func (b *Body[T]) String() string {
	var sb strings.Builder
	sb.WriteString("<<<")
	for p := range b.Segments() {
		sb.WriteString(p.String())
	}
	sb.WriteString(":=<")
	return sb.String()
}
