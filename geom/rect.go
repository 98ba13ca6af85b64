package geom

import "fmt"

// Rect is an axis aligned rectangle anchored at its top-left corner.
// The far edges are exclusive, so a Rect of size (h, w) covers h*w cells.
type Rect[T Integer] struct {
	origin Point[T]
	size   Size[T]
}

func NewRect[T Integer](origin Point[T], size Size[T]) Rect[T] {
	return Rect[T]{origin: origin, size: size}
}

// RectOfSize anchors a rectangle at (0, 0).
func RectOfSize[T Integer](size Size[T]) Rect[T] {
	return Rect[T]{size: size}
}

func (r Rect[T]) Height() T { return r.size.Y }
func (r Rect[T]) Width() T  { return r.size.X }
func (r Rect[T]) MinY() T   { return r.origin.Y }
func (r Rect[T]) MinX() T   { return r.origin.X }
func (r Rect[T]) MaxY() T   { return r.origin.Y + r.size.Y }
func (r Rect[T]) MaxX() T   { return r.origin.X + r.size.X }

// Area is computed in int so that small component types don't overflow.
func (r Rect[T]) Area() int {
	return int(r.size.Y) * int(r.size.X)
}

// Contains reports whether p lies inside the half-open rectangle.
func (r Rect[T]) Contains(p Point[T]) bool {
	return p.Y >= r.MinY() && p.Y < r.MaxY() &&
		p.X >= r.MinX() && p.X < r.MaxX()
}

func (r Rect[T]) String() string {
	return fmt.Sprintf("origin: %s, size: %s", r.origin, r.size)
}
