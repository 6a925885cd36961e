// Package crowd spawns wandering NPC travelers into an area and drives their
// walk/pause cycle each tick.
package crowd

import (
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"chosenoffset.com/dutyfree/internal/actor"
	"chosenoffset.com/dutyfree/internal/geom"
	"chosenoffset.com/dutyfree/internal/physics"
)

// Options controls how a crowd is materialized in the physics world
type Options struct {
	Name         string
	BodyW, BodyH float64
	Height       float64 // Visual height, used for nameplate placement
	Bounce       float64

	// CollideWith lists extra colliders (the player, furniture) the crowd
	// bounces off. Members of the crowd always collide with each other.
	CollideWith []physics.Collider
}

// DefaultOptions sizes bodies for 16px sprites
func DefaultOptions(name string) Options {
	return Options{
		Name:   name,
		BodyW:  10,
		BodyH:  12,
		Height: 16,
		Bounce: 1,
	}
}

// Crowd is one spawned group of travelers
type Crowd struct {
	ID   uuid.UUID
	Name string

	actors []*actor.Actor
	group  *physics.Group
	world  *physics.World
	policy actor.Policy
	rng    *rand.Rand
}

// Spawn creates up to count travelers at uniform random positions inside area.
// Each takes an identity from pool; spawning stops early when the pool runs
// dry, so an empty pool yields an empty crowd.
func Spawn(world *physics.World, count int, area geom.Area, pool *Pool, now time.Duration,
	policy actor.Policy, rng *rand.Rand, opts Options) *Crowd {

	c := &Crowd{
		ID:     uuid.New(),
		Name:   opts.Name,
		group:  &physics.Group{},
		world:  world,
		policy: policy,
		rng:    rng,
	}

	for i := 0; i < count && pool.Len() > 0; i++ {
		ident, _ := pool.Draw()

		x := uniform(rng, area.XMin, area.XMax)
		y := uniform(rng, area.YMin, area.YMax)
		body := world.SpawnBody(x, y, opts.BodyW, opts.BodyH)
		body.Bounce = opts.Bounce

		a := &actor.Actor{
			ID:       ident.ID,
			Kind:     actor.KindTraveler,
			Pos:      geom.Point{X: x, Y: y},
			Height:   opts.Height,
			Identity: &ident,
			Body:     body,
		}
		a.Motion.Start(now, rng, policy)
		world.SetVelocity(body, a.Motion.VX, a.Motion.VY)
		a.Facing, a.FlipX = actor.DeriveFacing(a.Motion.VX, a.Motion.VY, actor.FacingDown, false)

		c.actors = append(c.actors, a)
		c.group.Add(body)
	}

	if len(c.actors) > 0 {
		world.Collide(c.group, c.group)
		for _, other := range opts.CollideWith {
			world.Collide(c.group, other)
		}
	}

	log.Printf("Spawned crowd %s (%s) with %d travelers", c.Name, c.ID, len(c.actors))
	return c
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}

// Actors returns the crowd members
func (c *Crowd) Actors() []*actor.Actor {
	if c == nil {
		return nil
	}
	return c.actors
}

// Len returns the number of members
func (c *Crowd) Len() int {
	if c == nil {
		return 0
	}
	return len(c.actors)
}

// Group returns the physics group of the crowd's bodies
func (c *Crowd) Group() *physics.Group {
	return c.group
}

// Tick advances each actor's wander cycle and syncs position and facing from
// its body. Actors without a body are skipped.
func (c *Crowd) Tick(now time.Duration) {
	if c == nil {
		return
	}
	for _, a := range c.actors {
		if a.Body == nil {
			continue
		}
		if a.Motion.Advance(now, c.rng, c.policy) {
			a.Body.SetVelocity(a.Motion.VX, a.Motion.VY)
		}
		a.SyncFromBody()
	}
}

// Teardown removes every body from the world and empties the crowd. It
// returns how many actors were removed.
func (c *Crowd) Teardown() int {
	if c == nil {
		return 0
	}
	n := len(c.actors)
	for _, a := range c.actors {
		if b, ok := a.Body.(*physics.Body); ok {
			c.world.Remove(b)
		}
		a.Body = nil
		a.Identity = nil
	}
	c.actors = nil
	return n
}
