// Package physics is a small arcade-style body world: axis-aligned boxes that
// integrate velocity, stay inside world bounds, stop at blocked tiles and push
// apart from the bodies they are told to collide with.
package physics

import (
	"chosenoffset.com/dutyfree/internal/geom"
)

// Body is a dynamic axis-aligned box. Position is the box center.
type Body struct {
	ID     int
	pos    geom.Point
	vel    geom.Point
	W, H   float64
	Bounce float64 // Velocity restitution on contact (0 = stop, 1 = perfect bounce)

	// CollideWorldBounds keeps the body inside World.Bounds
	CollideWorldBounds bool
	// Immovable bodies are never pushed by collisions
	Immovable bool

	removed bool
}

// Position returns the body center
func (b *Body) Position() geom.Point { return b.pos }

// Velocity returns the current velocity in world units per second
func (b *Body) Velocity() geom.Point { return b.vel }

// SetVelocity sets both velocity components
func (b *Body) SetVelocity(vx, vy float64) { b.vel = geom.Point{X: vx, Y: vy} }

// SetPosition teleports the body
func (b *Body) SetPosition(x, y float64) { b.pos = geom.Point{X: x, Y: y} }

// Box returns the body's bounding rectangle
func (b *Body) Box() geom.Rect {
	return boxAt(b.pos, b.W, b.H)
}

// Removed reports whether the body has been taken out of its world
func (b *Body) Removed() bool { return b.removed }

func boxAt(p geom.Point, w, h float64) geom.Rect {
	return geom.Rect{X: p.X - w/2, Y: p.Y - h/2, W: w, H: h}
}

// Collider is anything that can take part in a collision pair
type Collider interface {
	Bodies() []*Body
}

// Bodies lets a single body act as a Collider
func (b *Body) Bodies() []*Body { return []*Body{b} }

// Group is a mutable set of bodies used as one side of a collision pair
type Group struct {
	members []*Body
}

// Add appends a body to the group
func (g *Group) Add(b *Body) { g.members = append(g.members, b) }

// Bodies returns the live members of the group
func (g *Group) Bodies() []*Body {
	live := g.members[:0]
	for _, b := range g.members {
		if !b.removed {
			live = append(live, b)
		}
	}
	g.members = live
	return live
}

// Len returns the number of live members
func (g *Group) Len() int { return len(g.Bodies()) }

type pair struct {
	a, b Collider
}

// World owns bodies and steps them
type World struct {
	Bounds geom.Rect

	// Blocked reports whether a box overlaps solid map geometry. Optional.
	Blocked func(box geom.Rect) bool

	bodies []*Body
	pairs  []pair
	nextID int
}

// NewWorld creates a world with the given bounds
func NewWorld(bounds geom.Rect) *World {
	return &World{Bounds: bounds}
}

// SpawnBody creates a dynamic body centered at (x, y)
func (w *World) SpawnBody(x, y, width, height float64) *Body {
	w.nextID++
	b := &Body{
		ID:                 w.nextID,
		pos:                geom.Point{X: x, Y: y},
		W:                  width,
		H:                  height,
		CollideWorldBounds: true,
	}
	w.bodies = append(w.bodies, b)
	return b
}

// SetVelocity sets the velocity of a body
func (w *World) SetVelocity(b *Body, vx, vy float64) {
	b.SetVelocity(vx, vy)
}

// SetBounds makes a body respect the world bounds
func (w *World) SetBounds(b *Body) {
	b.CollideWorldBounds = true
}

// Collide registers a collision pair. Passing the same collider twice makes
// its members collide with each other.
func (w *World) Collide(a, b Collider) {
	w.pairs = append(w.pairs, pair{a: a, b: b})
}

// Remove takes a body out of the world
func (w *World) Remove(b *Body) {
	if b == nil || b.removed {
		return
	}
	b.removed = true
	for i, other := range w.bodies {
		if other == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
}

// Len returns the number of live bodies
func (w *World) Len() int { return len(w.bodies) }

// Step advances every body by dt seconds
func (w *World) Step(dt float64) {
	for _, b := range w.bodies {
		w.moveAxis(b, b.vel.X*dt, 0)
		w.moveAxis(b, 0, b.vel.Y*dt)
	}
	for _, p := range w.pairs {
		w.resolvePair(p)
	}
}

func (w *World) moveAxis(b *Body, dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	next := geom.Point{X: b.pos.X + dx, Y: b.pos.Y + dy}
	box := boxAt(next, b.W, b.H)

	if w.Blocked != nil && w.Blocked(box) {
		if dx != 0 {
			b.vel.X = -b.vel.X * b.Bounce
		} else {
			b.vel.Y = -b.vel.Y * b.Bounce
		}
		return
	}

	if b.CollideWorldBounds && w.Bounds.W > 0 && w.Bounds.H > 0 {
		switch {
		case box.X < w.Bounds.X:
			next.X = w.Bounds.X + b.W/2
			b.vel.X = -b.vel.X * b.Bounce
		case box.Right() > w.Bounds.Right():
			next.X = w.Bounds.Right() - b.W/2
			b.vel.X = -b.vel.X * b.Bounce
		}
		switch {
		case box.Y < w.Bounds.Y:
			next.Y = w.Bounds.Y + b.H/2
			b.vel.Y = -b.vel.Y * b.Bounce
		case box.Bottom() > w.Bounds.Bottom():
			next.Y = w.Bounds.Bottom() - b.H/2
			b.vel.Y = -b.vel.Y * b.Bounce
		}
	}
	b.pos = next
}

func (w *World) resolvePair(p pair) {
	as := p.a.Bodies()
	bs := p.b.Bodies()
	same := p.a == p.b
	for i, a := range as {
		start := 0
		if same {
			start = i + 1
		}
		for _, b := range bs[start:] {
			if a == b {
				continue
			}
			separate(a, b)
		}
	}
}

// separate pushes two overlapping bodies apart along the axis of least
// penetration and reflects the approaching velocity components.
func separate(a, b *Body) {
	ra, rb := a.Box(), b.Box()
	if !ra.Overlaps(rb) {
		return
	}
	if a.Immovable && b.Immovable {
		return
	}

	overlapX := minf(ra.Right(), rb.Right()) - maxf(ra.X, rb.X)
	overlapY := minf(ra.Bottom(), rb.Bottom()) - maxf(ra.Y, rb.Y)

	shareA, shareB := 0.5, 0.5
	switch {
	case a.Immovable:
		shareA, shareB = 0, 1
	case b.Immovable:
		shareA, shareB = 1, 0
	}

	if overlapX < overlapY {
		dir := 1.0
		if a.pos.X < b.pos.X {
			dir = -1
		}
		a.pos.X += dir * overlapX * shareA
		b.pos.X -= dir * overlapX * shareB
		if !a.Immovable && a.vel.X*dir < 0 {
			a.vel.X = -a.vel.X * a.Bounce
		}
		if !b.Immovable && b.vel.X*dir > 0 {
			b.vel.X = -b.vel.X * b.Bounce
		}
		return
	}

	dir := 1.0
	if a.pos.Y < b.pos.Y {
		dir = -1
	}
	a.pos.Y += dir * overlapY * shareA
	b.pos.Y -= dir * overlapY * shareB
	if !a.Immovable && a.vel.Y*dir < 0 {
		a.vel.Y = -a.vel.Y * a.Bounce
	}
	if !b.Immovable && b.vel.Y*dir > 0 {
		b.vel.Y = -b.vel.Y * b.Bounce
	}
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
