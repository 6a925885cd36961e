package game

import (
	"time"

	"chosenoffset.com/dutyfree/internal/actor"
	"chosenoffset.com/dutyfree/internal/geom"
)

// TickRate is the fixed number of updates per second
const TickRate = 60

// State identifies the active scene
type State int

const (
	StateConcourse State = iota
	StateStore
)

func (s State) String() string {
	if s == StateStore {
		return "store"
	}
	return "concourse"
}

// Scene is one walkable area. Only the active scene is updated.
type Scene interface {
	Update(now time.Duration, dt, zoom float64)
	Bounds() geom.Rect
	Focus() geom.Point
	Actors() []*actor.Actor
	Teardown()
}

var (
	_ Scene = (*Concourse)(nil)
	_ Scene = (*StoreScene)(nil)
)
