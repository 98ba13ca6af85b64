package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"crumbsnake/config"
	"crumbsnake/game"
	"crumbsnake/geom"
	"crumbsnake/hiscore"
)

const sampleRate = 44100

var (
	bgColor   = color.RGBA{24, 24, 28, 255}
	gridColor = color.RGBA{40, 40, 48, 255}
	headColor = color.RGBA{80, 220, 120, 255}
	bodyColor = color.RGBA{60, 180, 100, 255}
	foodColor = color.RGBA{230, 70, 70, 255}
)

var directionKeys = []struct {
	keys []ebiten.Key
	dir  geom.Direction
}{
	{[]ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}, geom.Up},
	{[]ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}, geom.Down},
	{[]ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}, geom.Left},
	{[]ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}, geom.Right},
}

type Game struct {
	cfg     config.Config
	session *game.Session
	log     *log.Logger

	frame        int
	lastMove     int
	foodPulse    float64
	scaleFactor  float64 // For dynamic scaling
	isFullscreen bool    // Track maximized/full-screen state
	lastEvent    game.Event

	audioCtx       *audio.Context
	eatPlayer      *audio.Player
	gameOverPlayer *audio.Player
	winPlayer      *audio.Player
}

func NewGame(cfg config.Config, logger *log.Logger) (*Game, error) {
	store := hiscore.NewStore(cfg.HighScoreFile)
	session, err := game.NewSession(cfg, store, logger)
	if err != nil {
		return nil, err
	}
	logger.Printf("high scores in %s", store.Path())

	g := &Game{
		cfg:         cfg,
		session:     session,
		log:         logger,
		scaleFactor: 1.0,
	}

	if cfg.Sound {
		g.audioCtx = audio.NewContext(sampleRate)
		g.eatPlayer = newBeepPlayer(g.audioCtx, 2000, 0.05)
		g.gameOverPlayer = newBeepPlayer(g.audioCtx, 1000, 0.2)
		g.winPlayer = newBeepPlayer(g.audioCtx, 1600, 0.4)
	}
	return g, nil
}

func newBeepPlayer(ctx *audio.Context, freq float64, durSec float64) *audio.Player {
	n := int(float64(sampleRate) * durSec)
	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		t := float64(i) / sampleRate
		v := int16(math.Sin(2*math.Pi*freq*t) * 4000 * math.Pow(math.E, -3*t))
		for ch := 0; ch < 2; ch++ {
			idx := i*4 + ch*2
			buf[idx] = byte(v)
			buf[idx+1] = byte(v >> 8)
		}
	}
	return ctx.NewPlayerFromBytes(buf)
}

func play(p *audio.Player) {
	if p == nil {
		return
	}
	if err := p.Rewind(); err != nil {
		return
	}
	p.Play()
}

// framesPerMove converts the session's tick interval to update frames.
func (g *Game) framesPerMove() int {
	frames := int(g.session.TickInterval() * time.Duration(ebiten.TPS()) / time.Second)
	return max(frames, 1)
}

// justPressedDirection returns the first direction key pressed this frame.
func justPressedDirection() geom.Direction {
	for _, dk := range directionKeys {
		for _, k := range dk.keys {
			if inpututil.IsKeyJustPressed(k) {
				return dk.dir
			}
		}
	}
	return geom.None
}

func (g *Game) Update() error {
	// Toggle full-screen/maximized with F key
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.isFullscreen = !g.isFullscreen
		if g.isFullscreen {
			ebiten.MaximizeWindow()
		} else {
			ebiten.RestoreWindow()
			ebiten.SetWindowSize(1280, 720)
		}
	}

	// Exit full-screen/maximized with Esc key
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if g.isFullscreen {
			g.isFullscreen = false
			ebiten.RestoreWindow()
			ebiten.SetWindowSize(1280, 720)
		}
	}

	pressed := justPressedDirection()
	retry := inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsKeyJustPressed(ebiten.KeyR)

	switch g.session.State() {
	case game.Splash:
		if retry || pressed != geom.None {
			g.start(pressed)
		}
		return nil
	case game.GameOver, game.Error:
		// Direction keys still held from the last game don't skip this screen.
		if retry {
			g.start(geom.None)
		}
		return nil
	}

	g.frame++
	g.foodPulse += 0.05

	input := g.session.Input()
	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		input.TogglePause()
		g.session.Tick()
		g.lastMove = g.frame
		return nil
	}
	input.Press(pressed)

	if g.session.State() != game.Running || g.frame-g.lastMove < g.framesPerMove() {
		return nil
	}
	g.lastMove = g.frame

	ev := g.session.Tick()
	switch {
	case ev.Err != nil:
		g.log.Printf("game stopped: %v", ev.Err)
		play(g.gameOverPlayer)
	case ev.Won:
		play(g.winPlayer)
	case ev.Over:
		play(g.gameOverPlayer)
	case ev.Ate:
		play(g.eatPlayer)
	}
	if ev.Moved || ev.Over {
		g.lastEvent = ev
	}
	return nil
}

func (g *Game) start(d geom.Direction) {
	g.session.Start()
	g.session.Input().Press(d)
	g.lastMove = g.frame
	g.lastEvent = game.Event{}
}

func (g *Game) cellSize() float64 {
	return float64(g.cfg.CellSize) * g.scaleFactor
}

func drawCell(c game.Cell, col color.Color, screen *ebiten.Image, scale float64, g *Game) {
	size := g.cellSize() * scale
	offset := g.cellSize() * (1 - scale) / 2
	ebitenutil.DrawRect(screen, float64(c.X)*g.cellSize()+offset, float64(c.Y)*g.cellSize()+offset, size, size, col)
}

func (g *Game) Draw(screen *ebiten.Image) {
	// Solid background
	screen.Fill(bgColor)

	cols, rows := g.cfg.Grid.Width, g.cfg.Grid.Height
	cell := g.cellSize()

	// Grid lines
	for x := 0; x < cols; x++ {
		ebitenutil.DrawRect(screen, float64(x)*cell, 0, g.scaleFactor, float64(rows)*cell, gridColor)
	}
	for y := 0; y < rows; y++ {
		ebitenutil.DrawRect(screen, 0, float64(y)*cell, float64(cols)*cell, g.scaleFactor, gridColor)
	}

	screenWidth := float64(cols) * cell
	screenHeight := float64(rows) * cell

	if g.session.State() == game.Splash {
		// Center title screen text both horizontally and vertically
		lines := []string{
			"SNAKE",
			fmt.Sprintf("Grow to %d segments in %d bytes", g.session.Snake().Capacity(), g.session.Snake().StorageBytes()),
			"Arrow Keys/WASD: Move, P/Space: Pause, F: Maximize, Esc: Restore",
			"press any key",
		}
		lineHeight := 20.0 * g.scaleFactor
		totalHeight := float64(len(lines)) * lineHeight
		startY := (screenHeight - totalHeight) / 2
		for i, line := range lines {
			approxWidth := float64(len(line)) * 6 * g.scaleFactor
			x := (screenWidth - approxWidth) / 2
			y := startY + float64(i)*lineHeight
			ebitenutil.DebugPrintAt(screen, line, int(x), int(y))
		}
		return
	}

	// Subtle pulsing food effect
	pulse := 0.9 + 0.1*math.Sin(g.foodPulse)
	drawCell(g.session.Food(), foodColor, screen, pulse, g)

	snake := g.session.Snake()
	for seg := range snake.Segments() {
		drawCell(seg, bodyColor, screen, 0.9, g)
	}
	if !snake.Empty() {
		drawCell(snake.Head(), headColor, screen, 1.0, g)
	}

	// HUD in top-left with padding
	lines := []string{
		fmt.Sprintf("Score: %d | High: %d | Length: %d/%d", g.session.Score(), g.session.HighScore(), snake.Len(), snake.Capacity()),
	}
	switch g.session.State() {
	case game.Paused:
		lines = append(lines, "Paused - Press P to Resume")
	case game.GameOver:
		if g.lastEvent.Won {
			lines = append(lines, fmt.Sprintf("You filled the snake! Score: %d - Press Enter/R to Retry", g.session.Score()))
		} else {
			lines = append(lines, fmt.Sprintf("Game Over! Score: %d - Press Enter/R to Retry", g.session.Score()))
		}
		if g.lastEvent.NewHigh {
			lines = append(lines, "New High Score!")
		}
	case game.Error:
		lines = append(lines, fmt.Sprintf("ERROR: %v - Press Enter/R to Retry", g.session.Err()))
	}

	padding := 10.0 * g.scaleFactor
	lineHeight := 20.0 * g.scaleFactor
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, int(padding), int(padding+float64(i)*lineHeight))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	// Update isFullscreen based on window state
	g.isFullscreen = ebiten.IsWindowMaximized()
	// Calculate scale factor
	w := float64(g.cfg.Grid.Width * g.cfg.CellSize)
	h := float64(g.cfg.Grid.Height * g.cfg.CellSize)
	g.scaleFactor = math.Min(float64(outsideWidth)/w, float64(outsideHeight)/h)
	return int(w * g.scaleFactor), int(h * g.scaleFactor)
}

func main() {
	configFile := flag.String("config", "snake.yaml", "YAML config file path")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal(err)
	}

	logger := log.New(os.Stderr, "[snake] ", log.Ldate|log.Ltime|log.Lmsgprefix)

	g, err := NewGame(cfg, logger)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle("Snake — Go + Ebiten")
	ebiten.SetWindowResizable(true)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
