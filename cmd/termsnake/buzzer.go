package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

type note struct {
	freq float64
	dur  time.Duration
}

var (
	eatTune  = []note{{2000, 20 * time.Millisecond}}
	overTune = []note{{2000, 20 * time.Millisecond}, {1000, 20 * time.Millisecond}}
	winTune  = []note{{1000, 40 * time.Millisecond}, {1600, 40 * time.Millisecond}, {2000, 80 * time.Millisecond}}
)

// buzzer plays short sine beeps. One that failed to initialise stays silent.
type buzzer struct {
	sampleRate beep.SampleRate
	ready      bool
}

func newBuzzer() (*buzzer, error) {
	sampleRate := beep.SampleRate(44100)
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return &buzzer{}, err
	}
	return &buzzer{sampleRate: sampleRate, ready: true}, nil
}

func (b *buzzer) play(tune []note) {
	if !b.ready {
		return
	}
	seq := make([]beep.Streamer, 0, len(tune))
	for _, n := range tune {
		sine, err := generators.SineTone(b.sampleRate, n.freq)
		if err != nil {
			continue
		}
		seq = append(seq, beep.Take(b.sampleRate.N(n.dur), sine))
	}
	if len(seq) > 0 {
		speaker.Play(beep.Seq(seq...))
	}
}

func (b *buzzer) close() {
	if b.ready {
		speaker.Close()
		b.ready = false
	}
}
