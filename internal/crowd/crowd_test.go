package crowd

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/dutyfree/internal/actor"
	"chosenoffset.com/dutyfree/internal/config"
	"chosenoffset.com/dutyfree/internal/geom"
	"chosenoffset.com/dutyfree/internal/physics"
)

func identities(n int) []actor.Identity {
	out := make([]actor.Identity, n)
	for i := range out {
		out[i] = actor.Identity{ID: fmt.Sprintf("t%03d", i), Name: fmt.Sprintf("Traveler %d", i), Role: actor.RoleTraveler}
	}
	return out
}

func newWorld() *physics.World {
	return physics.NewWorld(geom.Rect{W: 400, H: 300})
}

func TestEmptyCrowdTicks(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	w := newWorld()

	c := Spawn(w, 0, geom.Area{XMax: 100, YMax: 100}, NewPool(identities(5), rng), 0, actor.DefaultPolicy(), rng, DefaultOptions("hall"))
	assert.Equal(t, 0, c.Len())
	assert.NotPanics(t, func() { c.Tick(time.Second) })

	empty := Spawn(w, 5, geom.Area{XMax: 100, YMax: 100}, NewPool(nil, rng), 0, actor.DefaultPolicy(), rng, DefaultOptions("a"))
	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, 0, w.Len())
}

func TestSpawnInsideAreaWithUniqueIdentities(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	w := newWorld()
	pool := NewPool(identities(10), rng)
	area := geom.Area{XMin: 50, XMax: 150, YMin: 20, YMax: 60}

	hall := Spawn(w, 6, area, pool, 0, actor.DefaultPolicy(), rng, DefaultOptions("hall"))
	corridor := Spawn(w, 6, area, pool, 0, actor.DefaultPolicy(), rng, DefaultOptions("a"))

	assert.Equal(t, 6, hall.Len())
	assert.Equal(t, 4, corridor.Len(), "pool runs dry")
	assert.Equal(t, 0, pool.Len())

	seen := map[string]bool{}
	for _, c := range []*Crowd{hall, corridor} {
		for _, a := range c.Actors() {
			require.True(t, a.HasIdentity())
			assert.False(t, seen[a.Identity.ID], "identity %s drawn twice", a.Identity.ID)
			seen[a.Identity.ID] = true

			assert.GreaterOrEqual(t, a.Pos.X, area.XMin)
			assert.LessOrEqual(t, a.Pos.X, area.XMax)
			assert.GreaterOrEqual(t, a.Pos.Y, area.YMin)
			assert.LessOrEqual(t, a.Pos.Y, area.YMax)

			assert.Equal(t, actor.Walking, a.Motion.State)
			assert.True(t, a.Motion.Valid())
			assert.GreaterOrEqual(t, a.Motion.NextAt, 900*time.Millisecond)
			assert.LessOrEqual(t, a.Motion.NextAt, 1600*time.Millisecond)
		}
	}
}

func TestTickKeepsMotionInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	w := newWorld()
	c := Spawn(w, 8, geom.Area{XMin: 20, XMax: 380, YMin: 20, YMax: 280}, NewPool(identities(8), rng), 0, actor.DefaultPolicy(), rng, DefaultOptions("hall"))
	require.Equal(t, 8, c.Len())

	last := map[*actor.Actor]time.Duration{}
	for _, a := range c.Actors() {
		last[a] = a.Motion.NextAt
	}

	step := 16 * time.Millisecond
	for now := time.Duration(0); now < 10*time.Second; now += step {
		w.Step(step.Seconds())
		c.Tick(now)
		for _, a := range c.Actors() {
			require.True(t, a.Motion.Valid())
			require.GreaterOrEqual(t, a.Motion.NextAt, last[a])
			last[a] = a.Motion.NextAt
			if a.Motion.State == actor.Paused {
				assert.Zero(t, a.Body.Velocity().X)
				assert.Zero(t, a.Body.Velocity().Y)
			}
		}
	}
}

func TestTickPausesAndResumes(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	w := newWorld()
	c := Spawn(w, 1, geom.Area{XMin: 100, XMax: 100, YMin: 100, YMax: 100}, NewPool(identities(1), rng), 0, actor.DefaultPolicy(), rng, DefaultOptions("hall"))
	a := c.Actors()[0]

	first := a.Motion.NextAt
	c.Tick(first)
	assert.Equal(t, actor.Paused, a.Motion.State)
	assert.Equal(t, geom.Point{}, a.Body.Velocity())

	second := a.Motion.NextAt
	assert.GreaterOrEqual(t, second-first, 500*time.Millisecond)
	assert.LessOrEqual(t, second-first, 900*time.Millisecond)

	c.Tick(second)
	assert.Equal(t, actor.Walking, a.Motion.State)
	v := a.Body.Velocity()
	assert.True(t, v.X != 0 && v.Y != 0)
}

func TestTickSkipsActorsWithoutBody(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	c := Spawn(newWorld(), 2, geom.Area{XMax: 50, YMax: 50}, NewPool(identities(2), rng), 0, actor.DefaultPolicy(), rng, DefaultOptions("hall"))
	detached := c.Actors()[0]
	detached.Body = nil
	state := detached.Motion

	assert.NotPanics(t, func() { c.Tick(time.Hour) })
	assert.Equal(t, state, detached.Motion)
}

func TestTeardownRemovesBodies(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	w := newWorld()
	c := Spawn(w, 4, geom.Area{XMax: 200, YMax: 200}, NewPool(identities(4), rng), 0, actor.DefaultPolicy(), rng, DefaultOptions("b"))
	require.Equal(t, 4, w.Len())

	assert.Equal(t, 4, c.Teardown())
	assert.Equal(t, 0, w.Len())
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, c.Group().Len())
}

func TestPolicyFromConfig(t *testing.T) {
	p := PolicyFromConfig(config.DefaultConfig().Crowd)
	assert.Equal(t, actor.DefaultPolicy(), p)
}
