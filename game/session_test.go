package game

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"crumbsnake/config"
	"crumbsnake/geom"
)

type memScores struct {
	high  int
	saves int
	err   error
}

func (m *memScores) Load() (int, error) { return m.high, m.err }
func (m *memScores) Save(high int) error {
	m.high = high
	m.saves++
	return nil
}

func c(y, x int8) Cell { return Cell{Y: y, X: x} }

func newTestSession(t *testing.T, mutate func(*config.Config)) (*Session, *memScores) {
	t.Helper()
	cfg := config.Default()
	cfg.Grid = config.Grid{Width: 10, Height: 10}
	cfg.Seed = 7
	if mutate != nil {
		mutate(&cfg)
	}
	scores := &memScores{}
	s, err := NewSession(cfg, scores, nil)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s, scores
}

// arrange starts a game with the body laid out tail first and food at food.
func arrange(t *testing.T, s *Session, food Cell, heading geom.Direction, pts ...Cell) {
	t.Helper()
	s.Start()
	s.snake.Reset()
	for _, p := range pts {
		if err := s.snake.Push(p); err != nil {
			t.Fatalf("Push(%s): %v", p, err)
		}
	}
	s.snake.SetHeading(heading)
	if err := s.PlaceFood(food); err != nil {
		t.Fatalf("PlaceFood: %v", err)
	}
}

func TestStart(t *testing.T) {
	s, _ := newTestSession(t, nil)
	if s.State() != Splash {
		t.Fatalf("Expected splash state, got %s", s.State())
	}

	s.Start()
	if s.State() != Running {
		t.Fatalf("Expected running, got %s", s.State())
	}
	if s.Snake().Len() != 1 {
		t.Errorf("Expected a one-segment snake, got %d", s.Snake().Len())
	}
	if !s.World().Contains(s.Snake().Head()) || !s.World().Contains(s.Food()) {
		t.Errorf("Expected head and food inside the world")
	}
	if s.Food() == s.Snake().Head() {
		t.Error("Expected food off the snake")
	}
	if s.Snake().Heading() != geom.None {
		t.Errorf("Expected no heading, got %s", s.Snake().Heading())
	}
}

func TestNewSessionLoadsHighScore(t *testing.T) {
	cfg := config.Default()
	s, err := NewSession(cfg, &memScores{high: 120}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.HighScore() != 120 {
		t.Errorf("Expected high score 120, got %d", s.HighScore())
	}

	s, err = NewSession(cfg, &memScores{err: errors.New("disk on fire")}, nil)
	if err != nil {
		t.Fatalf("Expected load failure to be tolerated: %v", err)
	}
	if s.HighScore() != 0 {
		t.Errorf("Expected high score 0, got %d", s.HighScore())
	}

	cfg.RingBytes = 0
	if _, err := NewSession(cfg, nil, nil); err == nil {
		t.Error("Expected invalid config to be rejected")
	}
}

func TestStandsStillUntilPressed(t *testing.T) {
	s, _ := newTestSession(t, nil)
	arrange(t, s, c(9, 9), geom.None, c(5, 5))

	if ev := s.Tick(); ev.Moved {
		t.Errorf("Expected no movement without input, got %+v", ev)
	}
	if s.Snake().Head() != c(5, 5) {
		t.Errorf("Expected head to stay at (5, 5), got %s", s.Snake().Head())
	}
}

func TestHeadingGate(t *testing.T) {
	s, _ := newTestSession(t, nil)
	arrange(t, s, c(9, 9), geom.None, c(5, 5))

	s.Input().Press(geom.Right)
	ev := s.Tick()
	if !ev.Moved || ev.Head != c(5, 6) || ev.PrevHead != c(5, 5) {
		t.Fatalf("Expected move to (5, 6), got %+v", ev)
	}
	if !ev.HasVacated || ev.Vacated != c(5, 5) {
		t.Errorf("Expected (5, 5) vacated, got %+v", ev)
	}

	// Reversing is ignored and the snake keeps going.
	s.Input().Press(geom.Left)
	s.Tick()
	if s.Snake().Head() != c(5, 7) || s.Snake().Heading() != geom.Right {
		t.Errorf("Expected reverse to be ignored, head %s heading %s", s.Snake().Head(), s.Snake().Heading())
	}

	// Two quick turns are applied on consecutive ticks.
	s.Input().Press(geom.Up)
	s.Input().Press(geom.Left)
	s.Tick()
	s.Tick()
	if s.Snake().Head() != c(4, 6) {
		t.Errorf("Expected head (4, 6), got %s", s.Snake().Head())
	}
	if s.Snake().Len() != 1 {
		t.Errorf("Expected length 1, got %d", s.Snake().Len())
	}
}

func TestOutOfArea(t *testing.T) {
	s, scores := newTestSession(t, nil)
	arrange(t, s, c(9, 9), geom.None, c(0, 0))

	s.Input().Press(geom.Up)
	ev := s.Tick()
	if !ev.Over || ev.Won || ev.Moved {
		t.Fatalf("Expected game over, got %+v", ev)
	}
	if s.State() != GameOver {
		t.Errorf("Expected game over state, got %s", s.State())
	}
	if scores.saves != 0 {
		t.Errorf("Expected no high score save for a zero score")
	}
	if ev := s.Tick(); ev.Moved {
		t.Error("Expected no movement after game over")
	}
}

func TestEatGrowsAndScores(t *testing.T) {
	s, scores := newTestSession(t, nil)
	arrange(t, s, c(5, 6), geom.Right, c(5, 5))

	ev := s.Tick()
	if !ev.Ate || ev.HasVacated {
		t.Fatalf("Expected to eat without vacating, got %+v", ev)
	}
	if s.Snake().Len() != 2 || s.Score() != 10 {
		t.Errorf("Expected length 2 and score 10, got %d and %d", s.Snake().Len(), s.Score())
	}
	if _, hit := s.Snake().Contains(s.Food()); hit {
		t.Errorf("Expected new food off the body, got %s", s.Food())
	}

	// Die and check the high score is kept.
	s.snake.SetHeading(geom.Right)
	for s.State() == Running {
		if err := s.PlaceFood(c(9, 0)); err != nil {
			t.Fatal(err)
		}
		s.Tick()
	}
	if s.HighScore() != 10 || scores.high != 10 || scores.saves != 1 {
		t.Errorf("Expected saved high score 10, got %d/%d (%d saves)", s.HighScore(), scores.high, scores.saves)
	}
}

func TestSpeedUp(t *testing.T) {
	s, _ := newTestSession(t, func(cfg *config.Config) {
		cfg.FoodScore = 50
		cfg.Tick = 300 * time.Millisecond
	})
	arrange(t, s, c(5, 6), geom.Right, c(5, 5))

	s.Tick()
	if s.TickInterval() != 300*time.Millisecond {
		t.Errorf("Expected no speed-up at 50 points, got %s", s.TickInterval())
	}
	if err := s.PlaceFood(c(5, 7)); err != nil {
		t.Fatal(err)
	}
	s.Tick()
	if s.Score() != 100 || s.TickInterval() != 270*time.Millisecond {
		t.Errorf("Expected 270ms at 100 points, got %s at %d", s.TickInterval(), s.Score())
	}

	s.Start()
	if s.TickInterval() != 300*time.Millisecond || s.Score() != 0 {
		t.Errorf("Expected pace and score reset on start")
	}
}

func TestSelfCollision(t *testing.T) {
	s, _ := newTestSession(t, nil)
	arrange(t, s, c(9, 9), geom.Left, c(1, 0), c(1, 1), c(1, 2), c(2, 2), c(2, 1))

	s.Input().Press(geom.Up)
	ev := s.Tick()
	if !ev.Over || ev.Won {
		t.Fatalf("Expected collision to end the game, got %+v", ev)
	}
	if s.Snake().Len() != 5 {
		t.Errorf("Expected body untouched, length %d", s.Snake().Len())
	}
}

func TestChasingTailIsAllowed(t *testing.T) {
	s, _ := newTestSession(t, nil)
	arrange(t, s, c(9, 9), geom.Left, c(1, 1), c(1, 2), c(2, 2), c(2, 1))

	s.Input().Press(geom.Up)
	ev := s.Tick()
	if ev.Over || !ev.Moved {
		t.Fatalf("Expected to move into the vacating tail, got %+v", ev)
	}
	if ev.Vacated != c(1, 1) || s.Snake().Head() != c(1, 1) {
		t.Errorf("Expected head on the old tail, got %+v", ev)
	}
	if s.Snake().Tail() != c(1, 2) {
		t.Errorf("Expected tail (1, 2), got %s", s.Snake().Tail())
	}
}

func TestWinWhenFull(t *testing.T) {
	s, scores := newTestSession(t, func(cfg *config.Config) { cfg.RingBytes = 1 })
	arrange(t, s, c(0, 4), geom.Right, c(0, 0), c(0, 1), c(0, 2), c(0, 3))

	ev := s.Tick()
	if !ev.Over || !ev.Won || !ev.Ate {
		t.Fatalf("Expected a win on reaching full length, got %+v", ev)
	}
	if !s.Snake().Full() || s.Snake().Len() != 5 {
		t.Errorf("Expected full snake, length %d", s.Snake().Len())
	}
	if !ev.NewHigh || scores.high != 10 {
		t.Errorf("Expected new high score, got %+v", ev)
	}
}

func TestPause(t *testing.T) {
	s, _ := newTestSession(t, nil)
	arrange(t, s, c(9, 9), geom.Right, c(5, 5))

	s.Input().TogglePause()
	if ev := s.Tick(); ev.Moved || s.State() != Paused {
		t.Fatalf("Expected pause, got %s %+v", s.State(), ev)
	}
	s.Input().Press(geom.Down)
	s.Tick()
	if s.Snake().Head() != c(5, 5) {
		t.Errorf("Expected no movement while paused")
	}

	s.Input().TogglePause()
	ev := s.Tick()
	if s.State() != Running || ev.Moved || s.Snake().Head() != c(5, 5) {
		t.Fatalf("Expected resume without moving, got %s %+v", s.State(), ev)
	}

	// Presses made while paused are dropped on resume.
	if ev := s.Tick(); !ev.Moved || s.Snake().Head() != c(5, 6) {
		t.Errorf("Expected head (5, 6), got %s", s.Snake().Head())
	}
}

func TestErrorStateStopsUntilStart(t *testing.T) {
	s, _ := newTestSession(t, nil)
	arrange(t, s, c(9, 9), geom.Right, c(5, 5))

	boom := errors.New("ring out of step")
	ev := s.fail(boom)
	if !errors.Is(ev.Err, boom) || !errors.Is(s.Err(), boom) || s.State() != Error {
		t.Fatalf("Expected error state, got %s %+v", s.State(), ev)
	}

	s.Input().Press(geom.Down)
	if ev := s.Tick(); ev.Moved || s.Snake().Head() != c(5, 5) {
		t.Errorf("Expected no movement in error state, got %+v", ev)
	}

	s.Start()
	if s.State() != Running || s.Err() != nil {
		t.Errorf("Expected Start to recover, got %s (%v)", s.State(), s.Err())
	}
}

func TestWarnsWhenWorldOutgrowsSnake(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	cfg.Grid = config.Grid{Width: 10, Height: 10}
	cfg.RingBytes = 2

	if _, err := NewSession(cfg, nil, log.New(&buf, "", 0)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "at most 9 of 100 cells") {
		t.Errorf("Expected a coverage warning, got %q", buf.String())
	}

	buf.Reset()
	cfg.RingBytes = 40
	if _, err := NewSession(cfg, nil, log.New(&buf, "", 0)); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "at most") {
		t.Errorf("Expected no warning when the snake can fill the world, got %q", buf.String())
	}
}

func TestPlaceFoodRejects(t *testing.T) {
	s, _ := newTestSession(t, nil)
	arrange(t, s, c(9, 9), geom.None, c(5, 5))
	if err := s.PlaceFood(c(5, 5)); err == nil {
		t.Error("Expected food on the body to be rejected")
	}
	if err := s.PlaceFood(c(10, 0)); err == nil {
		t.Error("Expected food outside the world to be rejected")
	}
}

func TestFoodFillsLastCell(t *testing.T) {
	s, _ := newTestSession(t, func(cfg *config.Config) {
		cfg.Grid = config.Grid{Width: 3, Height: 1}
	})
	arrange(t, s, c(0, 2), geom.Right, c(0, 0), c(0, 1))

	ev := s.Tick()
	if !ev.Won {
		t.Errorf("Expected a win once the world is covered, got %+v", ev)
	}
}
