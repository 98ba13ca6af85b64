package geom

import "fmt"

// Integer is the set of component types a Point can be built on.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Point is a grid position as (row, column).
type Point[T Integer] struct {
	Y, X T
}

// Size reuses Point for heights and widths.
type Size[T Integer] = Point[T]

// Pt is a shorthand constructor.
func Pt[T Integer](y, x T) Point[T] {
	return Point[T]{Y: y, X: x}
}

// Add returns p + o
func (p Point[T]) Add(o Point[T]) Point[T] {
	return Point[T]{Y: p.Y + o.Y, X: p.X + o.X}
}

// Sub returns p - o
func (p Point[T]) Sub(o Point[T]) Point[T] {
	return Point[T]{Y: p.Y - o.Y, X: p.X - o.X}
}

func (p Point[T]) String() string {
	return fmt.Sprintf("(%d, %d)", p.Y, p.X)
}
