package orrery

import (
	"fmt"
	"math"
	"math/rand"

	"git.c3pb.de/farhaven/solar/vector"
)

const (
	SunSpin    = 0.01 // radians per frame at speed multiplier 1
	PlanetSpin = 0.02
)

// BodyState is the mutable part of a body, kept in a slice parallel to the
// descriptors and indexed by body ID.
type BodyState struct {
	Angle    float64
	Rotation float64
	Pos      vector.V3
}

func (s BodyState) String() string {
	return fmt.Sprintf(`angle:%.2f, rot:%.2f, pos:%s`, s.Angle, s.Rotation, s.Pos)
}

type Options struct {
	Seed  int64
	Stars int // 0 means DefaultStars, negative means none

	// Presets defaults to Presets().
	Presets []Descriptor
}

type Orrery struct {
	bodies []Descriptor
	state  []BodyState

	sun      Sun
	light    Light
	stars    []vector.V3
	guides   []Guide
	twinkles []Twinkle
}

// New composes the scene. It is the only place bodies are created.
func New(opts Options) *Orrery {
	rng := rand.New(rand.NewSource(opts.Seed))

	presets := opts.Presets
	if presets == nil {
		presets = Presets()
	}

	nstars := opts.Stars
	if nstars == 0 {
		nstars = DefaultStars
	}

	o := &Orrery{
		bodies:   make([]Descriptor, len(presets)),
		state:    make([]BodyState, len(presets)),
		sun:      defaultSun(),
		light:    defaultLight(),
		stars:    starfield(rng, nstars, StarfieldSize),
		twinkles: twinkles(rng, BackdropStars),
	}

	copy(o.bodies, presets)
	for id, d := range o.bodies {
		a := rng.Float64() * 2 * math.Pi
		o.state[id] = BodyState{Angle: a, Pos: OrbitPosition(a, d.Distance)}
		o.guides = append(o.guides, orbitGuide(id, d.Distance))
	}

	return o
}

// Step advances the sun and every body by one frame.
func (o *Orrery) Step(multiplier float64) {
	o.sun.Rotation += SunSpin * multiplier

	for id, d := range o.bodies {
		s := &o.state[id]
		s.Angle, s.Pos = Advance(s.Angle, d.Speed, multiplier, d.Distance)
		s.Rotation += PlanetSpin * multiplier
	}
}

func (o *Orrery) Len() int {
	return len(o.bodies)
}

func (o *Orrery) valid(id int) bool {
	return id >= 0 && id < len(o.bodies)
}

func (o *Orrery) Descriptor(id int) (Descriptor, bool) {
	if !o.valid(id) {
		return Descriptor{}, false
	}
	return o.bodies[id], true
}

func (o *Orrery) State(id int) (BodyState, bool) {
	if !o.valid(id) {
		return BodyState{}, false
	}
	return o.state[id], true
}

func (o *Orrery) Position(id int) vector.V3 {
	if !o.valid(id) {
		return vector.V3{}
	}
	return o.state[id].Pos
}

// States returns a copy of every body's state in body order.
func (o *Orrery) States() []BodyState {
	r := make([]BodyState, len(o.state))
	copy(r, o.state)
	return r
}

// Names lists the bodies in creation order.
func (o *Orrery) Names() []string {
	r := make([]string, len(o.bodies))
	for i, d := range o.bodies {
		r[i] = d.Name
	}
	return r
}

func (o *Orrery) Sun() Sun {
	return o.sun
}

func (o *Orrery) Light() Light {
	return o.light
}

func (o *Orrery) Stars() []vector.V3 {
	return o.stars
}

func (o *Orrery) Guides() []Guide {
	return o.guides
}

func (o *Orrery) Twinkles() []Twinkle {
	return o.twinkles
}

// Pick returns the body whose sphere is hit first by r. The sun and attached
// rings are not pickable.
func (o *Orrery) Pick(r vector.Ray) (int, bool) {
	best, bestT := -1, math.Inf(1)

	for id, d := range o.bodies {
		t, ok := r.IntersectSphere(o.state[id].Pos, d.Radius)
		if ok && t < bestT {
			best, bestT = id, t
		}
	}

	return best, best >= 0
}
