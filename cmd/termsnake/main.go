// Command termsnake plays the snake game in a terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"crumbsnake/config"
	"crumbsnake/game"
	"crumbsnake/geom"
	"crumbsnake/hiscore"
)

const (
	headRune = 'Ö'
	bodyRune = 'O'
	foodRune = '+'
)

var (
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	snakeStyle  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	foodStyle   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	textStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

var runeDirections = map[rune]geom.Direction{
	'w': geom.Up, 'a': geom.Left, 's': geom.Down, 'd': geom.Right,
	'k': geom.Up, 'h': geom.Left, 'j': geom.Down, 'l': geom.Right,
}

var keyDirections = map[tcell.Key]geom.Direction{
	tcell.KeyUp:    geom.Up,
	tcell.KeyLeft:  geom.Left,
	tcell.KeyDown:  geom.Down,
	tcell.KeyRight: geom.Right,
}

type Game struct {
	screen  tcell.Screen
	session *game.Session
	buzzer  *buzzer
	log     *log.Logger
	last    game.Event
}

func NewGame(cfg config.Config, logger *log.Logger) (*Game, error) {
	store := hiscore.NewStore(cfg.HighScoreFile)
	session, err := game.NewSession(cfg, store, logger)
	if err != nil {
		return nil, err
	}
	logger.Printf("high scores in %s", store.Path())

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()

	g := newGame(screen, session, logger)
	if cfg.Sound {
		b, err := newBuzzer()
		if err != nil {
			// Non-fatal, the game runs silently
			logger.Printf("audio initialization failed: %v", err)
		}
		g.buzzer = b
	}
	return g, nil
}

// newGame wires a game to an initialised screen. The buzzer starts silent.
func newGame(screen tcell.Screen, session *game.Session, logger *log.Logger) *Game {
	return &Game{
		screen:  screen,
		session: session,
		buzzer:  &buzzer{},
		log:     logger,
	}
}

// transform maps a playfield cell to screen coordinates inside the border,
// below the status line.
func transform(c game.Cell) (x, y int) {
	return int(c.X) + 1, int(c.Y) + 2
}

func (g *Game) put(c game.Cell, r rune, style tcell.Style) {
	x, y := transform(c)
	g.screen.SetContent(x, y, r, nil, style)
}

func (g *Game) text(x, y int, s string) {
	for _, r := range s {
		g.screen.SetContent(x, y, r, nil, textStyle)
		x++
	}
}

func (g *Game) drawBorder() {
	world := g.session.World()
	w, h := world.Width(), world.Height()
	for x := 0; x <= int(w)+1; x++ {
		r := '-'
		if x == 0 || x == int(w)+1 {
			r = '+'
		}
		g.screen.SetContent(x, 1, r, nil, borderStyle)
		g.screen.SetContent(x, int(h)+2, r, nil, borderStyle)
	}
	for y := 2; y < int(h)+2; y++ {
		g.screen.SetContent(0, y, '|', nil, borderStyle)
		g.screen.SetContent(int(w)+1, y, '|', nil, borderStyle)
	}
}

func (g *Game) status() string {
	s := g.session
	snake := s.Snake()
	switch s.State() {
	case game.Splash:
		return fmt.Sprintf("SNAKE  up to %d segments in %d bytes  press any key", snake.Capacity(), snake.StorageBytes())
	case game.Paused:
		return fmt.Sprintf("score %d  paused, p to resume", s.Score())
	case game.GameOver:
		msg := "game over"
		if g.last.Won {
			msg = "you win"
		}
		if g.last.NewHigh {
			msg += ", new high score"
		}
		return fmt.Sprintf("score %d  %s  enter or r to retry, esc to quit", s.Score(), msg)
	case game.Error:
		return fmt.Sprintf("error: %v  enter or r to retry", s.Err())
	}
	return fmt.Sprintf("score %d  high %d  length %d/%d", s.Score(), s.HighScore(), snake.Len(), snake.Capacity())
}

func (g *Game) draw() {
	g.screen.Clear()
	g.text(0, 0, g.status())
	g.drawBorder()

	if g.session.State() != game.Splash {
		g.put(g.session.Food(), foodRune, foodStyle)
		snake := g.session.Snake()
		for seg := range snake.Segments() {
			g.put(seg, bodyRune, snakeStyle)
		}
		if !snake.Empty() {
			g.put(snake.Head(), headRune, snakeStyle)
		}
	}
	g.screen.Show()
}

func direction(ev *tcell.EventKey) geom.Direction {
	if d, ok := keyDirections[ev.Key()]; ok {
		return d
	}
	if ev.Key() == tcell.KeyRune {
		if d, ok := runeDirections[ev.Rune()]; ok {
			return d
		}
	}
	return geom.None
}

func isRune(ev *tcell.EventKey, runes ...rune) bool {
	if ev.Key() != tcell.KeyRune {
		return false
	}
	for _, r := range runes {
		if ev.Rune() == r {
			return true
		}
	}
	return false
}

// handleInput reports false when the player quits.
func (g *Game) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || isRune(ev, 'q') {
			return false
		}

		d := direction(ev)
		switch g.session.State() {
		case game.Splash:
			g.start(d)
		case game.GameOver, game.Error:
			// Held direction keys keep repeating after a crash, so only
			// an explicit retry leaves the game over screen.
			if ev.Key() == tcell.KeyEnter || isRune(ev, 'r', 'R', ' ') {
				g.start(d)
			}
		default:
			if isRune(ev, 'p', 'P', ' ') {
				g.session.Input().TogglePause()
				g.step()
				return true
			}
			g.session.Input().Press(d)
		}
		g.draw()

	case *tcell.EventResize:
		g.screen.Sync()
		g.draw()
	}
	return true
}

func (g *Game) start(d geom.Direction) {
	g.session.Start()
	g.session.Input().Press(d)
	g.last = game.Event{}
}

func (g *Game) step() {
	ev := g.session.Tick()
	switch {
	case ev.Err != nil:
		g.log.Printf("game stopped: %v", ev.Err)
		g.buzzer.play(overTune)
	case ev.Won:
		g.buzzer.play(winTune)
	case ev.Over:
		g.buzzer.play(overTune)
	case ev.Ate:
		g.buzzer.play(eatTune)
	}
	if ev.Moved || ev.Over || ev.Err != nil {
		g.last = ev
	}
	g.draw()
}

func (g *Game) run() {
	interval := g.session.TickInterval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	g.draw()
	for {
		select {
		case ev := <-eventChan:
			if !g.handleInput(ev) {
				return
			}

		case <-ticker.C:
			g.step()
			// Eating speeds the game up.
			if next := g.session.TickInterval(); next != interval {
				interval = next
				ticker.Reset(interval)
			}
		}
	}
}

func (g *Game) cleanup() {
	g.buzzer.close()
	g.screen.Fini()
}

func main() {
	configFile := flag.String("config", "snake.yaml", "YAML config file path")
	logFile := flag.String("log", "", "write the game log to this file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to tcell, so logs go to a file or nowhere.
	var out io.Writer = io.Discard
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	logger := log.New(out, "[termsnake] ", log.Ldate|log.Ltime|log.Lmsgprefix)

	g, err := NewGame(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer g.cleanup()

	g.run()
}
