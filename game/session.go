// Package game runs one player's snake: it turns key presses into headings,
// moves the body once per tick, and decides when the game is over.
package game

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"time"

	"crumbsnake/body"
	"crumbsnake/config"
	"crumbsnake/geom"
)

// Cell is a playfield coordinate.
type Cell = geom.Point[int8]

// Scores persists the high score.
type Scores interface {
	Load() (int, error)
	Save(high int) error
}

// foodAttempts bounds random food placement before falling back to a scan.
const foodAttempts = 64

type Session struct {
	cfg    config.Config
	world  geom.Rect[int8]
	snake  *body.Body[int8]
	input  *Input
	scores Scores
	rng    *rand.Rand
	log    *log.Logger

	state State
	food  Cell
	score int
	high  int
	tick  time.Duration
	turns int
	err   error
}

// NewSession validates cfg and loads the stored high score. scores and
// logger may be nil.
func NewSession(cfg config.Config, scores Scores, logger *log.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Session{
		cfg:    cfg,
		world:  geom.RectOfSize(geom.Size[int8]{Y: int8(cfg.Grid.Height), X: int8(cfg.Grid.Width)}),
		snake:  body.New[int8](cfg.RingBytes),
		input:  NewInput(cfg.InputQueue),
		scores: scores,
		rng:    rand.New(rand.NewSource(seed)),
		log:    logger,
		state:  Splash,
		tick:   cfg.Tick,
	}

	if scores != nil {
		high, err := scores.Load()
		if err != nil {
			s.log.Printf("could not load high score: %v", err)
		}
		s.high = high
	}

	s.log.Printf("world %s, max length %d in %d bytes", s.world, s.snake.Capacity(), s.snake.StorageBytes())
	if cells := s.world.Area(); cells > cfg.MaxLength() {
		s.log.Printf("snake can cover at most %d of %d cells", cfg.MaxLength(), cells)
	}
	return s, nil
}

func (s *Session) State() State                { return s.state }
func (s *Session) World() geom.Rect[int8]      { return s.world }
func (s *Session) Input() *Input               { return s.input }
func (s *Session) Food() Cell                  { return s.food }
func (s *Session) Score() int                  { return s.score }
func (s *Session) HighScore() int              { return s.high }
func (s *Session) TickInterval() time.Duration { return s.tick }
func (s *Session) Err() error                  { return s.err }

// Snake exposes the body for rendering. Callers must not mutate it.
func (s *Session) Snake() *body.Body[int8] { return s.snake }

// Start begins a new game: a one-segment snake at a random cell, standing
// still until the first direction is pressed.
func (s *Session) Start() {
	s.snake.Reset()
	s.input.Clear()
	s.score = 0
	s.tick = s.cfg.Tick
	s.turns = 0
	s.err = nil

	start := s.randomCell()
	if err := s.snake.Push(start); err != nil {
		s.fail(err)
		return
	}
	if !s.placeFood() {
		s.fail(errors.New("no free cell for food"))
		return
	}
	s.state = Running
	s.log.Printf("new game at %s, food at %s", start, s.food)
}

// Tick advances the game by one step. A tick that pauses or resumes the
// game does not move the snake.
func (s *Session) Tick() Event {
	if s.input.takePause() {
		switch s.state {
		case Running:
			s.state = Paused
			s.log.Print("paused")
		case Paused:
			s.state = Running
			s.input.Clear()
			s.log.Print("resumed")
			return Event{}
		}
	}
	if s.state != Running {
		return Event{}
	}

	s.turns++
	heading := s.snake.Heading()
	if d, ok := s.input.next(); ok && d != heading && d != heading.Complement() {
		heading = d
		s.snake.SetHeading(d)
	}
	if heading == geom.None {
		return Event{}
	}

	head := s.snake.Head()
	next := geom.Step(head, heading)
	if s.cfg.Debug {
		s.log.Printf("turn %d: heading %s, %s -> %s, length %d", s.turns, heading, head, next, s.snake.Len())
	}

	if !s.world.Contains(next) {
		s.log.Printf("out of area at %s", next)
		return s.over(Event{Head: head, PrevHead: head}, false)
	}
	// The tail moves out of the way this tick, so running into it is fine.
	// Food is never placed on the body, so the tail always moves here.
	if seg, hit := s.snake.Contains(next); hit && seg != s.snake.Tail() {
		s.log.Printf("self collision at %s", seg)
		if s.cfg.Debug {
			s.log.Printf("body: %s", s.snake)
		}
		return s.over(Event{Head: head, PrevHead: head}, false)
	}

	if err := s.snake.Push(next); err != nil {
		if errors.Is(err, body.ErrFull) {
			return s.over(Event{Head: head, PrevHead: head}, true)
		}
		return s.fail(err)
	}
	ev := Event{Moved: true, Head: next, PrevHead: head}

	if next == s.food {
		ev.Ate = true
		s.eat()
		if s.snake.Full() || !s.placeFood() {
			return s.over(ev, true)
		}
		return ev
	}

	removed, err := s.snake.Pop()
	if err != nil {
		return s.fail(err)
	}
	ev.Vacated, ev.HasVacated = removed, true
	return ev
}

func (s *Session) eat() {
	s.score += s.cfg.FoodScore
	if s.cfg.SpeedUpEvery > 0 && s.score%s.cfg.SpeedUpEvery == 0 {
		s.tick -= s.tick * time.Duration(s.cfg.SpeedUpPercent) / 100
		if s.tick < s.cfg.MinTick {
			s.tick = s.cfg.MinTick
		}
		s.log.Printf("score %d, tick now %s", s.score, s.tick)
	}
}

func (s *Session) over(ev Event, won bool) Event {
	s.state = GameOver
	ev.Over, ev.Won = true, won
	if won {
		s.log.Printf("won with length %d, score %d", s.snake.Len(), s.score)
	} else {
		s.log.Printf("game over, length %d, score %d", s.snake.Len(), s.score)
	}

	if s.score > s.high {
		s.high = s.score
		ev.NewHigh = true
		if s.scores != nil {
			if err := s.scores.Save(s.high); err != nil {
				s.log.Printf("could not save high score: %v", err)
			}
		}
	}
	return ev
}

func (s *Session) fail(err error) Event {
	s.state = Error
	s.err = err
	s.log.Printf("internal error: %v; body %s", err, s.snake)
	return Event{Err: err}
}

func (s *Session) randomCell() Cell {
	return Cell{
		Y: int8(s.rng.Intn(s.cfg.Grid.Height)),
		X: int8(s.rng.Intn(s.cfg.Grid.Width)),
	}
}

// placeFood picks a cell off the body. It reports false when the body
// covers the whole world.
func (s *Session) placeFood() bool {
	if s.snake.Len() >= s.world.Area() {
		return false
	}
	for i := 0; i < foodAttempts; i++ {
		c := s.randomCell()
		if _, hit := s.snake.Contains(c); !hit {
			s.food = c
			return true
		}
	}
	for y := s.world.MinY(); y < s.world.MaxY(); y++ {
		for x := s.world.MinX(); x < s.world.MaxX(); x++ {
			c := Cell{Y: y, X: x}
			if _, hit := s.snake.Contains(c); !hit {
				s.food = c
				return true
			}
		}
	}
	return false
}

// PlaceFood moves the food to c, for scripted games and tests.
func (s *Session) PlaceFood(c Cell) error {
	if !s.world.Contains(c) {
		return fmt.Errorf("food %s outside %s", c, s.world)
	}
	if _, hit := s.snake.Contains(c); hit {
		return fmt.Errorf("food %s on the body", c)
	}
	s.food = c
	return nil
}
