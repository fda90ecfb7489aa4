package sound

import (
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	SampleRate = beep.SampleRate(44100)

	ChimeLength = 250 * time.Millisecond
	ChimePitch  = 880.0
)

// Player plays short cues through the default audio device. A nil *Player
// is valid and silent.
type Player struct {
	mu    sync.Mutex
	mixer *beep.Mixer
	pitch float64
}

func Open() (*Player, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(50*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("can't open audio device: %w", err)
	}

	p := &Player{mixer: &beep.Mixer{}, pitch: ChimePitch}
	speaker.Play(p.mixer)
	return p, nil
}

func (p *Player) Close() {
	if p == nil {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}

// Chime plays the pick confirmation tone.
func (p *Player) Chime() error {
	if p == nil {
		return nil
	}

	s, err := NewChime(SampleRate, p.pitch, ChimeLength)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
	return nil
}

// OnPick chimes when a click hit a body.
func (p *Player) OnPick(_ int, hit bool) {
	if !hit {
		return
	}
	if err := p.Chime(); err != nil {
		log.Printf(`can't play pick chime: %s`, err)
	}
}

// Envelope fades a tone out exponentially over its length.
type Envelope struct {
	Streamer beep.Streamer

	pos, n int
}

func (e *Envelope) Stream(samples [][2]float64) (int, bool) {
	if e.pos >= e.n {
		return 0, false
	}
	if len(samples) > e.n-e.pos {
		samples = samples[:e.n-e.pos]
	}

	n, ok := e.Streamer.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 0.3 * math.Exp(-5*float64(e.pos)/float64(e.n))
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.pos++
	}
	return n, ok
}

func (e *Envelope) Err() error {
	return e.Streamer.Err()
}

func NewChime(sr beep.SampleRate, freq float64, d time.Duration) (*Envelope, error) {
	tone, err := generators.SineTone(sr, freq)
	if err != nil {
		return nil, fmt.Errorf("can't generate chime: %w", err)
	}
	return &Envelope{Streamer: tone, n: sr.N(d)}, nil
}
