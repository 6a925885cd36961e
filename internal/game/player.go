package game

import (
	"math"

	"chosenoffset.com/dutyfree/internal/actor"
	"chosenoffset.com/dutyfree/internal/config"
	"chosenoffset.com/dutyfree/internal/geom"
	"chosenoffset.com/dutyfree/internal/physics"
	"chosenoffset.com/dutyfree/internal/render"
)

const (
	playerW      = 10
	playerH      = 12
	playerHeight = 16
)

func newPlayer(world *physics.World, at geom.Point) *Player {
	body := world.SpawnBody(at.X, at.Y, playerW, playerH)
	return &Player{
		Body: body,
		Actor: &actor.Actor{
			ID:     "player",
			Kind:   actor.KindPlayer,
			Pos:    at,
			Height: playerHeight,
			Body:   body,
		},
	}
}

// Drive sets the player's velocity from input. A locked player stands still.
func (p *Player) Drive(in render.InputManager, controls config.ControlsConfig, locked bool) {
	if locked {
		p.Body.SetVelocity(0, 0)
		return
	}
	dx, dy := moveInput(in)
	if dx == 0 && dy == 0 {
		p.Body.SetVelocity(0, 0)
		return
	}
	speed := controls.BaseSpeed
	if in.IsKeyPressed(render.KeyShift) {
		speed *= controls.RunMultiplier
	}
	n := math.Hypot(dx, dy)
	p.Body.SetVelocity(dx/n*speed, dy/n*speed)
}

// Sync copies position and facing from the body
func (p *Player) Sync() {
	p.Actor.SyncFromBody()
}
