package geom

// Direction is a cardinal heading. The four cardinal values fit in two bits
// and are laid out so that flipping both bits gives the opposite direction:
// Up (00) <-> Down (11), Left (01) <-> Right (10).
type Direction uint8

const (
	Up Direction = iota
	Left
	Right
	Down
	None
)

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	return d <= Down
}

// Complement returns the opposite direction, or None for anything that is
// not cardinal.
func (d Direction) Complement() Direction {
	if !d.Valid() {
		return None
	}
	return ^d & 0x03
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Left:
		return "left"
	case Right:
		return "right"
	case Down:
		return "down"
	case None:
		return "none"
	}
	return "invalid"
}

// Step moves p one cell in direction d. Up decreases the row.
func Step[T Integer](p Point[T], d Direction) Point[T] {
	switch d {
	case Up:
		p.Y--
	case Down:
		p.Y++
	case Left:
		p.X--
	case Right:
		p.X++
	}
	return p
}

// Between returns the direction that takes from to to. It fails unless the
// two points are exactly one cell apart along a single axis.
func Between[T Integer](from, to Point[T]) (Direction, bool) {
	switch {
	case from.X == to.X && to.Y == from.Y+1:
		return Down, true
	case from.X == to.X && to.Y+1 == from.Y:
		return Up, true
	case from.Y == to.Y && to.X == from.X+1:
		return Right, true
	case from.Y == to.Y && to.X+1 == from.X:
		return Left, true
	}
	return None, false
}
