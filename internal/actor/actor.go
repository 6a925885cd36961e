// Package actor defines the simulated people of the concourse: NPC travelers,
// store clerks and the player.
package actor

import (
	"fmt"

	"chosenoffset.com/dutyfree/internal/geom"
)

// Kind tags which variant of actor this is
type Kind int

const (
	KindTraveler Kind = iota
	KindClerk
	KindPlayer
)

func (k Kind) String() string {
	switch k {
	case KindTraveler:
		return "traveler"
	case KindClerk:
		return "clerk"
	case KindPlayer:
		return "player"
	default:
		return "unknown"
	}
}

// Gender category used to pick a visual
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderOther  Gender = "O"
)

// Role of an identity
type Role string

const (
	RoleTraveler Role = "traveler"
	RoleClerk    Role = "clerk"
)

// Identity is the name/role data bound to an actor
type Identity struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Gender  Gender `yaml:"gender"`
	Role    Role   `yaml:"role"`
	StoreID string `yaml:"store_id,omitempty"` // Set for clerks
}

// Body is the physics handle an actor is driven through
type Body interface {
	Position() geom.Point
	Velocity() geom.Point
	SetVelocity(vx, vy float64)
}

// Actor is one simulated mobile entity
type Actor struct {
	ID     string
	Kind   Kind
	Pos    geom.Point
	Height float64 // Visual height in world units, used to place nameplates

	Motion   Motion
	Identity *Identity // nil until resolved, or after identity loss

	Facing Facing
	FlipX  bool

	Body Body // nil when the actor has no physics body
}

// HasIdentity reports whether a nameplate may be shown for this actor
func (a *Actor) HasIdentity() bool {
	return a.Identity != nil
}

// SyncFromBody copies the body's position into the actor and refreshes facing
// from the body's actual velocity.
func (a *Actor) SyncFromBody() {
	if a.Body == nil {
		return
	}
	a.Pos = a.Body.Position()
	v := a.Body.Velocity()
	a.Facing, a.FlipX = DeriveFacing(v.X, v.Y, a.Facing, a.FlipX)
}

// Moving reports whether the actor's body currently has any velocity
func (a *Actor) Moving() bool {
	if a.Body == nil {
		return false
	}
	v := a.Body.Velocity()
	return v.X != 0 || v.Y != 0
}

// AnimationKey names the visual state requested from the renderer,
// e.g. "npc-walk-side".
func (a *Actor) AnimationKey(prefix string) string {
	mode := "idle"
	if a.Moving() {
		mode = "walk"
	}
	return fmt.Sprintf("%s-%s-%s", prefix, mode, a.Facing)
}
