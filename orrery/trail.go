package orrery

import (
	"sort"

	"git.c3pb.de/farhaven/solar/vector"
)

const TrailCapacity = 100

// Trail is the recent path of one body, oldest point first.
type Trail struct {
	Owner int

	points []vector.V3
	verts  []float32
}

func (t *Trail) Len() int {
	return len(t.points)
}

func (t *Trail) Points() []vector.V3 {
	r := make([]vector.V3, len(t.points))
	copy(r, t.points)
	return r
}

// Vertices returns the points as a flat x, y, z buffer. The slice is owned by
// the trail and is replaced on the next Record.
func (t *Trail) Vertices() []float32 {
	return t.verts
}

func (t *Trail) push(p vector.V3, capacity int) {
	t.points = append(t.points, p)
	if len(t.points) > capacity {
		t.points = t.points[len(t.points)-capacity:]
	}

	t.verts = make([]float32, 0, 3*len(t.points))
	for _, p := range t.points {
		t.verts = append(t.verts, float32(p.X), float32(p.Y), float32(p.Z))
	}
}

// Trails holds the trail of every body that has one. Trails are created on
// the first Record for a body and all dropped by Clear.
type Trails struct {
	capacity int
	byBody   map[int]*Trail
}

func NewTrails(capacity int) *Trails {
	if capacity <= 0 {
		capacity = TrailCapacity
	}
	return &Trails{capacity: capacity, byBody: map[int]*Trail{}}
}

func (ts *Trails) Record(id int, p vector.V3) *Trail {
	t, ok := ts.byBody[id]
	if !ok {
		t = &Trail{Owner: id}
		ts.byBody[id] = t
	}
	t.push(p, ts.capacity)
	return t
}

func (ts *Trails) Get(id int) (*Trail, bool) {
	t, ok := ts.byBody[id]
	return t, ok
}

func (ts *Trails) Len() int {
	return len(ts.byBody)
}

// Points is the total number of recorded positions over all trails.
func (ts *Trails) Points() int {
	n := 0
	for _, t := range ts.byBody {
		n += t.Len()
	}
	return n
}

// Each calls f for every trail in body order.
func (ts *Trails) Each(f func(*Trail)) {
	ids := make([]int, 0, len(ts.byBody))
	for id := range ts.byBody {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		f(ts.byBody[id])
	}
}

func (ts *Trails) Clear() {
	ts.byBody = map[int]*Trail{}
}
