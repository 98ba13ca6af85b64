// Package config loads game settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Grid struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type Config struct {
	// Playfield size in cells. Cells are addressed with int8 components.
	Grid     Grid `yaml:"grid"`
	CellSize int  `yaml:"cell-size"`

	// Bytes of direction storage; the body can reach 4*RingBytes+1 segments.
	RingBytes int `yaml:"ring-bytes"`

	Tick           time.Duration `yaml:"tick"`
	MinTick        time.Duration `yaml:"min-tick"`
	SpeedUpEvery   int           `yaml:"speed-up-every"`
	SpeedUpPercent int           `yaml:"speed-up-percent"`
	FoodScore      int           `yaml:"food-score"`
	InputQueue     int           `yaml:"input-queue"`

	HighScoreFile string `yaml:"high-score-file"`
	Sound         bool   `yaml:"sound"`
	Debug         bool   `yaml:"debug"`
	Seed          int64  `yaml:"seed"`
}

func Default() Config {
	return Config{
		Grid:           Grid{Width: 32, Height: 16},
		CellSize:       20,
		RingBytes:      40,
		Tick:           300 * time.Millisecond,
		MinTick:        60 * time.Millisecond,
		SpeedUpEvery:   100,
		SpeedUpPercent: 10,
		FoodScore:      10,
		InputQueue:     3,
		HighScoreFile:  "snake_highscore.json",
		Sound:          true,
	}
}

// Load reads path on top of the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Grid.Width < 1 || c.Grid.Width > math.MaxInt8,
		c.Grid.Height < 1 || c.Grid.Height > math.MaxInt8:
		return fmt.Errorf("grid %dx%d outside 1..%d", c.Grid.Width, c.Grid.Height, math.MaxInt8)
	case c.Grid.Width*c.Grid.Height < 2:
		return errors.New("grid needs at least two cells")
	case c.CellSize < 1:
		return fmt.Errorf("invalid cell-size %d", c.CellSize)
	case c.RingBytes < 1:
		return fmt.Errorf("invalid ring-bytes %d", c.RingBytes)
	case c.Tick <= 0 || c.MinTick <= 0 || c.MinTick > c.Tick:
		return fmt.Errorf("invalid tick %s / min-tick %s", c.Tick, c.MinTick)
	case c.SpeedUpEvery < 0 || c.SpeedUpPercent < 0 || c.SpeedUpPercent >= 100:
		return fmt.Errorf("invalid speed-up %d%% every %d", c.SpeedUpPercent, c.SpeedUpEvery)
	case c.FoodScore < 1:
		return fmt.Errorf("invalid food-score %d", c.FoodScore)
	case c.InputQueue < 1:
		return fmt.Errorf("invalid input-queue %d", c.InputQueue)
	}
	return nil
}

// MaxLength is the longest body the configured storage can hold.
func (c Config) MaxLength() int {
	return 4*c.RingBytes + 1
}
