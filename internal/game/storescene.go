package game

import (
	"context"
	"log"
	"time"

	"chosenoffset.com/dutyfree/internal/actor"
	"chosenoffset.com/dutyfree/internal/bus"
	"chosenoffset.com/dutyfree/internal/geom"
	"chosenoffset.com/dutyfree/internal/identity"
	"chosenoffset.com/dutyfree/internal/physics"
	"chosenoffset.com/dutyfree/internal/render"
	"chosenoffset.com/dutyfree/internal/store"
)

// Store room layout in tiles
const (
	storeW, storeH = 20, 12
	exitCol        = storeW / 2
	exitRow        = storeH - 1
)

var (
	clerkSpot   = geom.Point{X: float64(storeW*TileSize) / 2, Y: 58}
	counterRect = geom.Rect{X: 96, Y: 66, W: 128, H: 8}
)

// StoreScene is the interior of one store
type StoreScene struct {
	deps *Deps
	ctrl *store.Controller

	StoreID string
	Map     *TileMap
	World   *physics.World
	Player  *Player
	Clerk   *actor.Actor // nil until the clerk identity resolves
	Counter *physics.Body
	Exit    geom.Point

	clerk         *identity.Pending[actor.Identity]
	clerkResolved bool
}

// NewStoreScene builds the room for storeID and starts a fresh visit on ctrl.
// The clerk spawns once its identity lookup completes.
func NewStoreScene(ctx context.Context, deps *Deps, ctrl *store.Controller, storeID string) *StoreScene {
	s := &StoreScene{
		deps:    deps,
		ctrl:    ctrl,
		StoreID: storeID,
		Map:     NewTileMap(storeW, storeH),
		Exit:    TileCenter(exitCol, exitRow),
	}
	s.Map.Fill(1, 1, storeW-2, storeH-2, TileFloor)
	s.Map.Set(exitCol, exitRow, TileDoor)

	s.World = physics.NewWorld(s.Map.Bounds())
	s.World.Blocked = s.Map.Blocked

	s.Counter = s.World.SpawnBody(counterRect.X+counterRect.W/2, counterRect.Y+counterRect.H/2, counterRect.W, counterRect.H)
	s.Counter.Immovable = true

	// Just inside the door, outside the exit radius
	s.Player = newPlayer(s.World, geom.Point{X: s.Exit.X, Y: s.Exit.Y - 34})
	s.World.Collide(s.Player.Body, s.Counter)

	ctrl.Begin(storeID, store.DefaultScript(deps.Loc))
	deps.Bus.Set(bus.KeyPlayerPos, s.Player.Pos())
	deps.Bus.Set(bus.KeyHint, deps.Loc.T("store.hintApproach", nil))

	s.clerk = identity.Start(ctx, func(ctx context.Context) (actor.Identity, error) {
		return deps.Identities.Clerk(ctx, storeID)
	})
	return s
}

// Bounds returns the world extent
func (s *StoreScene) Bounds() geom.Rect {
	return s.Map.Bounds()
}

// Focus returns the camera target
func (s *StoreScene) Focus() geom.Point {
	return s.Player.Pos()
}

func (s *StoreScene) spawnClerk() {
	id, done, err := s.clerk.Poll()
	if !done {
		return
	}
	s.clerkResolved = true
	if err != nil {
		log.Printf("Warning: clerk lookup for %s failed: %v", s.StoreID, err)
		return
	}
	body := s.World.SpawnBody(clerkSpot.X, clerkSpot.Y, playerW, playerH)
	body.Immovable = true
	s.World.Collide(s.Player.Body, body)
	s.Clerk = &actor.Actor{
		ID:       id.ID,
		Kind:     actor.KindClerk,
		Pos:      clerkSpot,
		Height:   playerHeight,
		Identity: &id,
		Body:     body,
	}
	s.ctrl.SetSpeaker(id.Name)
}

// Proximity reports which interactive spots the player is standing at
func (s *StoreScene) Proximity() store.Proximity {
	cfg := s.deps.Config.Store
	pos := s.Player.Pos()
	p := store.Proximity{Exit: pos.Dist(s.Exit) <= cfg.ExitRadius}
	if s.Clerk != nil {
		p.Clerk = pos.Dist(s.Clerk.Pos) <= cfg.TalkRadius
	}
	return p
}

// Update advances the store by one tick
func (s *StoreScene) Update(now time.Duration, dt, zoom float64) {
	if !s.clerkResolved {
		s.spawnClerk()
	}

	in := s.deps.Input
	near := s.Proximity()
	switch {
	case in.IsKeyJustPressed(render.KeyEscape):
		s.ctrl.Handle(store.EventLeave, near)
		return
	case interactPressed(in):
		if s.ctrl.Handle(store.EventInteract, near) == store.EffectLeave {
			return
		}
	case in.IsKeyJustPressed(render.KeyUp) || in.IsKeyJustPressed(render.KeyW):
		s.ctrl.Handle(store.EventUp, near)
	case in.IsKeyJustPressed(render.KeyDown) || in.IsKeyJustPressed(render.KeyS):
		s.ctrl.Handle(store.EventDown, near)
	}

	s.Player.Drive(in, s.deps.Config.Controls, !s.ctrl.MovementAllowed())
	s.World.Step(dt)
	s.Player.Sync()
	s.deps.Bus.Set(bus.KeyPlayerPos, s.Player.Pos())

	if s.ctrl.Phase() == store.Browse {
		s.updateHint()
	}
}

func (s *StoreScene) updateHint() {
	near := s.Proximity()
	key := "store.hintApproach"
	switch {
	case near.Exit:
		key = "store.hintExitDoor"
	case near.Clerk:
		key = "store.hintTalk"
	}
	if h := s.deps.Loc.T(key, nil); s.deps.Bus.GetString(bus.KeyHint) != h {
		s.deps.Bus.Set(bus.KeyHint, h)
	}
}

// Actors returns the clerk when present
func (s *StoreScene) Actors() []*actor.Actor {
	if s.Clerk == nil {
		return nil
	}
	return []*actor.Actor{s.Clerk}
}

// Teardown cancels the clerk lookup and drops every body
func (s *StoreScene) Teardown() {
	s.clerk.Cancel()
	if s.Clerk != nil {
		if b, ok := s.Clerk.Body.(*physics.Body); ok {
			s.World.Remove(b)
		}
		s.Clerk.Identity = nil
		s.Clerk = nil
	}
	s.World.Remove(s.Counter)
	s.World.Remove(s.Player.Body)
}
