package game

import (
	"sync"

	"crumbsnake/geom"
	"crumbsnake/ring"
)

// Input collects key presses from a front end's event loop. Presses are
// queued so that two quick turns between ticks are both honoured, one per
// tick. It is safe to call Press and TogglePause from any goroutine.
type Input struct {
	mu    sync.Mutex
	queue *ring.Buffer[geom.Direction]
	pause bool
}

func NewInput(size int) *Input {
	return &Input{queue: ring.New[geom.Direction](size)}
}

// Press queues a direction. Repeats of the newest queued direction and
// presses beyond the queue size are dropped.
func (in *Input) Press(d geom.Direction) {
	if !d.Valid() {
		return
	}
	in.mu.Lock()
	defer in.mu.Unlock()

	if last, ok := in.queue.Front(); ok && last == d {
		return
	}
	in.queue.Push(d)
}

// TogglePause requests a pause or resume on the next tick.
func (in *Input) TogglePause() {
	in.mu.Lock()
	in.pause = !in.pause
	in.mu.Unlock()
}

func (in *Input) next() (geom.Direction, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.queue.Pop()
}

func (in *Input) takePause() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	p := in.pause
	in.pause = false
	return p
}

func (in *Input) Clear() {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.queue.Clear()
	in.pause = false
}
