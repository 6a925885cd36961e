package game

import (
	"math"

	"chosenoffset.com/dutyfree/internal/actor"
	"chosenoffset.com/dutyfree/internal/geom"
	"chosenoffset.com/dutyfree/internal/overlay"
	"chosenoffset.com/dutyfree/internal/physics"
)

// Player is the user-controlled actor and its physics body
type Player struct {
	Actor *actor.Actor
	Body  *physics.Body
}

// Pos returns the player's world position
func (p *Player) Pos() geom.Point {
	return p.Actor.Pos
}

// Camera tracks the viewport position for scrolling large levels.
type Camera struct {
	X, Y float64 // Camera position (top-left corner of viewport in world coords)
	Zoom float64 // Screen pixels per world unit

	MinZoom, MaxZoom float64
}

// SetZoom changes zoom, clamped to [MinZoom, MaxZoom]
func (c *Camera) SetZoom(z float64) {
	c.Zoom = math.Max(c.MinZoom, math.Min(c.MaxZoom, z))
}

// Follow centers the camera on target and clamps it to the world. A world
// narrower than the viewport is centered instead.
func (c *Camera) Follow(target geom.Point, screenW, screenH int, world geom.Rect) {
	zoom := c.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	viewW := float64(screenW) / zoom
	viewH := float64(screenH) / zoom

	c.X = clampAxis(target.X-viewW/2, world.X, world.W, viewW)
	c.Y = clampAxis(target.Y-viewH/2, world.Y, world.H, viewH)
}

func clampAxis(v, origin, size, view float64) float64 {
	if size <= view {
		return origin + (size-view)/2
	}
	if v < origin {
		return origin
	}
	if v > origin+size-view {
		return origin + size - view
	}
	return v
}

// View exposes the camera to the overlay
func (c *Camera) View(screenW, screenH int) overlay.View {
	return overlay.View{
		ScrollX: c.X,
		ScrollY: c.Y,
		Zoom:    c.Zoom,
		Width:   float64(screenW),
		Height:  float64(screenH),
	}
}
