package orrery

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Ring is a flat annulus in the XZ plane.
type Ring struct {
	Inner, Outer float64
	Segments     int
	Color        colorful.Color
	Opacity      float64
}

// Descriptor is the static part of a body. It doesn't change during a
// session.
type Descriptor struct {
	Name     string
	Radius   float64
	Distance float64
	Speed    float64 // radians per frame at speed multiplier 1
	Color    colorful.Color
	Info     string

	// Ring is attached to the body and follows its position and rotation.
	Ring *Ring
}

var (
	ringColor  = MustHex(`#aaaaaa`)
	guideColor = MustHex(`#333333`)
)

func saturnRing(radius float64) *Ring {
	return &Ring{
		Inner:    radius + 1,
		Outer:    radius + 3,
		Segments: 32,
		Color:    ringColor,
		Opacity:  0.6,
	}
}

// Presets returns the eight planets in order of distance from the sun.
func Presets() []Descriptor {
	return []Descriptor{
		{Name: `Mercury`, Radius: 1.2, Distance: 20, Speed: 0.048, Color: MustHex(`#8c7853`), Info: `Closest planet to the Sun`},
		{Name: `Venus`, Radius: 1.8, Distance: 28, Speed: 0.035, Color: MustHex(`#ffc649`), Info: `Hottest planet in our solar system`},
		{Name: `Earth`, Radius: 2, Distance: 36, Speed: 0.03, Color: MustHex(`#6b93d6`), Info: `Our home planet`},
		{Name: `Mars`, Radius: 1.6, Distance: 46, Speed: 0.024, Color: MustHex(`#c1440e`), Info: `The Red Planet`},
		{Name: `Jupiter`, Radius: 6, Distance: 70, Speed: 0.013, Color: MustHex(`#d8ca9d`), Info: `Largest planet in our solar system`},
		{Name: `Saturn`, Radius: 5, Distance: 95, Speed: 0.009, Color: MustHex(`#fad5a5`), Info: `Famous for its rings`, Ring: saturnRing(5)},
		{Name: `Uranus`, Radius: 3.5, Distance: 120, Speed: 0.006, Color: MustHex(`#4fd0e7`), Info: `Tilted on its side`},
		{Name: `Neptune`, Radius: 3.3, Distance: 145, Speed: 0.005, Color: MustHex(`#4b70dd`), Info: `Windiest planet`},
	}
}
