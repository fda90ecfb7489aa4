package orrery

import (
	"math/rand"
	"time"

	"git.c3pb.de/farhaven/solar/vector"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	DefaultStars  = 10000
	StarfieldSize = 4000 // edge length of the cube the stars are scattered in
	BackdropStars = 100
)

type Sun struct {
	Radius            float64
	Color             colorful.Color
	Emissive          colorful.Color
	EmissiveIntensity float64
	Rotation          float64
}

func defaultSun() Sun {
	return Sun{
		Radius:            8,
		Color:             MustHex(`#ffd700`),
		Emissive:          MustHex(`#ffa500`),
		EmissiveIntensity: 0.3,
	}
}

// Light is a point light. Intensity falls off to zero at Range.
type Light struct {
	Pos       vector.V3
	Color     colorful.Color
	Intensity float64
	Range     float64
}

func defaultLight() Light {
	return Light{Color: colorful.Color{R: 1, G: 1, B: 1}, Intensity: 2, Range: 1000}
}

// Guide is the thin ring marking a body's orbit.
type Guide struct {
	Body int
	Ring
}

func orbitGuide(id int, distance float64) Guide {
	return Guide{
		Body: id,
		Ring: Ring{
			Inner:    distance - 0.1,
			Outer:    distance + 0.1,
			Segments: 64,
			Color:    guideColor,
			Opacity:  0.3,
		},
	}
}

func starfield(rng *rand.Rand, n int, size float64) []vector.V3 {
	if n <= 0 {
		return nil
	}

	rn := func() float64 {
		return (rng.Float64() - 0.5) * size
	}

	stars := make([]vector.V3, n)
	for i := range stars {
		stars[i] = vector.V3{X: rn(), Y: rn(), Z: rn()}
	}
	return stars
}

// Twinkle is a backdrop star in screen space. X and Y are fractions of the
// viewport.
type Twinkle struct {
	X, Y  float64
	Size  float64 // pixels
	Delay time.Duration
}

const TwinklePeriod = 2 * time.Second

// Alpha pulses between 0.3 and 1 over TwinklePeriod, shifted by Delay.
func (t Twinkle) Alpha(since time.Duration) float64 {
	p := (since + TwinklePeriod - t.Delay%TwinklePeriod) % TwinklePeriod
	f := float64(p) / float64(TwinklePeriod)
	if f > 0.5 {
		f = 1 - f
	}
	return 0.3 + 0.7*2*f
}

func twinkles(rng *rand.Rand, n int) []Twinkle {
	r := make([]Twinkle, n)
	for i := range r {
		r[i] = Twinkle{
			X:     rng.Float64(),
			Y:     rng.Float64(),
			Size:  rng.Float64()*3 + 1,
			Delay: time.Duration(rng.Float64() * float64(TwinklePeriod)),
		}
	}
	return r
}
