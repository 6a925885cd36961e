package game

import (
	"math/rand"

	"chosenoffset.com/dutyfree/internal/basket"
	"chosenoffset.com/dutyfree/internal/bus"
	"chosenoffset.com/dutyfree/internal/catalog"
	"chosenoffset.com/dutyfree/internal/config"
	"chosenoffset.com/dutyfree/internal/i18n"
	"chosenoffset.com/dutyfree/internal/identity"
	"chosenoffset.com/dutyfree/internal/metrics"
	"chosenoffset.com/dutyfree/internal/render"
)

// Deps are the shared services every scene is built from
type Deps struct {
	Config     *config.Config
	Bus        *bus.Bus
	Loc        *i18n.Localizer
	Catalog    *catalog.Catalog
	Identities identity.Provider
	Metrics    *metrics.Metrics
	Renderer   render.Renderer
	Input      render.InputManager
	Rand       *rand.Rand

	Wallet *basket.Wallet
}

// interactPressed reports the interact key (E, Space or Enter)
func interactPressed(in render.InputManager) bool {
	return in.IsKeyJustPressed(render.KeyE) ||
		in.IsKeyJustPressed(render.KeySpace) ||
		in.IsKeyJustPressed(render.KeyEnter)
}

// moveInput returns the unnormalized movement direction from WASD/arrows
func moveInput(in render.InputManager) (dx, dy float64) {
	if in.IsKeyPressed(render.KeyA) || in.IsKeyPressed(render.KeyLeft) {
		dx--
	}
	if in.IsKeyPressed(render.KeyD) || in.IsKeyPressed(render.KeyRight) {
		dx++
	}
	if in.IsKeyPressed(render.KeyW) || in.IsKeyPressed(render.KeyUp) {
		dy--
	}
	if in.IsKeyPressed(render.KeyS) || in.IsKeyPressed(render.KeyDown) {
		dy++
	}
	return dx, dy
}
