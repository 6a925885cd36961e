// Package nameplate keeps floating name labels attached to nearby actors.
package nameplate

import (
	"math"

	"chosenoffset.com/dutyfree/internal/actor"
	"chosenoffset.com/dutyfree/internal/geom"
)

// headFraction of the actor's visual height sits above its position
const headFraction = 0.5

// Plate is the label bound to one actor
type Plate struct {
	Actor    *actor.Actor // Not owned
	Text     string
	Pos      geom.Point // World position of the label's bottom center
	Visible  bool
	FontSize float64 // World units
}

// Projector creates, positions and hides nameplates
type Projector struct {
	// Size is the configured on-screen font size; MinSize floors the
	// zoom-compensated world size.
	Size, MinSize float64

	// AnchorOffset shifts the point distances are measured from
	AnchorOffset geom.Point

	plates map[*actor.Actor]*Plate
	order  []*actor.Actor
}

// NewProjector creates an empty projector
func NewProjector(size, minSize float64) *Projector {
	return &Projector{
		Size:    size,
		MinSize: minSize,
		plates:  make(map[*actor.Actor]*Plate),
	}
}

// FontSize returns the world font size that renders at roughly Size pixels at
// the given zoom.
func FontSize(size, minSize, zoom float64) float64 {
	if zoom <= 0 {
		zoom = 1
	}
	return math.Max(minSize, math.Round(size/zoom))
}

// Update refreshes every plate for the current frame. Actors with an
// identity within maxDistance of viewer get a visible plate, created on first
// approach; those out of range keep a hidden one. Plates of actors that lost
// their identity, or are no longer listed, are destroyed.
func (p *Projector) Update(actors []*actor.Actor, viewer geom.Point, maxDistance, verticalOffset, zoom float64) {
	fs := FontSize(p.Size, p.MinSize, zoom)
	listed := make(map[*actor.Actor]bool, len(actors))

	for _, a := range actors {
		listed[a] = true
		if !a.HasIdentity() {
			p.destroy(a)
			continue
		}

		anchor := a.Pos.Add(p.AnchorOffset)
		plate, exists := p.plates[a]
		if anchor.Dist(viewer) > maxDistance {
			if exists {
				plate.Visible = false
			}
			continue
		}

		if !exists {
			plate = &Plate{Actor: a}
			p.plates[a] = plate
			p.order = append(p.order, a)
		}
		plate.Text = a.Identity.Name
		plate.FontSize = fs
		plate.Pos = geom.Point{
			X: a.Pos.X,
			Y: a.Pos.Y - a.Height*headFraction - verticalOffset,
		}
		plate.Visible = true
	}

	for _, a := range append([]*actor.Actor(nil), p.order...) {
		if !listed[a] {
			p.destroy(a)
		}
	}
}

func (p *Projector) destroy(a *actor.Actor) {
	if _, ok := p.plates[a]; !ok {
		return
	}
	delete(p.plates, a)
	for i, o := range p.order {
		if o == a {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

// Plate returns the plate bound to a, if any
func (p *Projector) Plate(a *actor.Actor) (*Plate, bool) {
	pl, ok := p.plates[a]
	return pl, ok
}

// Visible returns the visible plates in creation order
func (p *Projector) Visible() []*Plate {
	var out []*Plate
	for _, a := range p.order {
		if pl := p.plates[a]; pl.Visible {
			out = append(out, pl)
		}
	}
	return out
}

// Len returns the number of live plates, visible or hidden
func (p *Projector) Len() int {
	return len(p.plates)
}

// Clear destroys every plate
func (p *Projector) Clear() {
	p.plates = make(map[*actor.Actor]*Plate)
	p.order = nil
}
