package crumb

import "fmt"

// Cursor addresses one 2-bit slot of a Ring: a byte index and the crumb
// (0-3) within that byte. Cursors also carry a lap bit, flipped every time
// they wrap past the end of the buffer, so that a ring's read and write
// cursors only compare equal when the ring is empty.
type Cursor struct {
	Byte  int
	Crumb uint8

	lap   uint8
	bytes int
}

func (c Cursor) slots() int {
	return c.bytes * crumbsPerByte
}

// Index is the slot number in [0, 4*bytes).
func (c Cursor) Index() int {
	return c.Byte*crumbsPerByte + int(c.Crumb)
}

// abs folds the lap bit into the index: [0, 8*bytes).
func (c Cursor) abs() int {
	return int(c.lap)*c.slots() + c.Index()
}

func (c Cursor) at(abs int) Cursor {
	period := 2 * c.slots()
	abs %= period
	if abs < 0 {
		abs += period
	}
	slots := c.slots()
	lap := uint8(0)
	if abs >= slots {
		lap = 1
		abs -= slots
	}
	return Cursor{
		Byte:  abs / crumbsPerByte,
		Crumb: uint8(abs % crumbsPerByte),
		lap:   lap,
		bytes: c.bytes,
	}
}

// Next is the slot after c, wrapping at the end of the buffer.
func (c Cursor) Next() Cursor {
	if c.Crumb < crumbsPerByte-1 {
		c.Crumb++
		return c
	}
	c.Crumb = 0
	c.Byte++
	if c.Byte == c.bytes {
		c.Byte = 0
		c.lap ^= 1
	}
	return c
}

// Prev is the slot before c, wrapping at the start of the buffer.
func (c Cursor) Prev() Cursor {
	if c.Crumb > 0 {
		c.Crumb--
		return c
	}
	c.Crumb = crumbsPerByte - 1
	c.Byte--
	if c.Byte < 0 {
		c.Byte = c.bytes - 1
		c.lap ^= 1
	}
	return c
}

func (c Cursor) Add(n int) Cursor { return c.at(c.abs() + n) }
func (c Cursor) Sub(n int) Cursor { return c.at(c.abs() - n) }

// Diff is the number of Next steps that take o to c.
func (c Cursor) Diff(o Cursor) int {
	period := 2 * c.slots()
	if period == 0 {
		return 0
	}
	d := (c.abs() - o.abs()) % period
	if d < 0 {
		d += period
	}
	return d
}

func (c Cursor) String() string {
	return fmt.Sprintf("[%d:%d]", c.Byte, c.Crumb)
}
