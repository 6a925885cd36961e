package actor

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/dutyfree/internal/geom"
)

func TestStartIsWalkingWithinDwellWindow(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := DefaultPolicy()
	now := 5 * time.Second

	for i := 0; i < 200; i++ {
		var m Motion
		m.Start(now, rng, p)
		require.Equal(t, Walking, m.State)
		require.True(t, m.Valid(), "walking actor must have nonzero velocity")
		require.GreaterOrEqual(t, m.NextAt, now+900*time.Millisecond)
		require.LessOrEqual(t, m.NextAt, now+1600*time.Millisecond)
		require.GreaterOrEqual(t, m.VX, -35.0)
		require.LessOrEqual(t, m.VX, 35.0)
	}
}

func TestRollVelocityFallsBackOnZero(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	p := DefaultPolicy()
	p.VX = IntRange{Min: 0, Max: 0}
	p.VY = IntRange{Min: 0, Max: 0}

	vx, vy := p.RollVelocity(rng)
	assert.Equal(t, 20.0, vx)
	assert.Equal(t, 15.0, vy)
}

func TestAdvanceBeforeDeadlineIsNoop(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	p := DefaultPolicy()
	var m Motion
	m.Start(0, rng, p)
	before := m

	assert.False(t, m.Advance(m.NextAt-time.Millisecond, rng, p))
	assert.Equal(t, before, m)
}

func TestAdvanceCyclesWalkPause(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	p := DefaultPolicy()
	var m Motion
	m.Start(0, rng, p)

	now := m.NextAt
	require.True(t, m.Advance(now, rng, p))
	assert.Equal(t, Paused, m.State)
	assert.Zero(t, m.VX)
	assert.Zero(t, m.VY)
	assert.GreaterOrEqual(t, m.NextAt, now+500*time.Millisecond)
	assert.LessOrEqual(t, m.NextAt, now+900*time.Millisecond)

	now = m.NextAt
	require.True(t, m.Advance(now, rng, p))
	assert.Equal(t, Walking, m.State)
	assert.True(t, m.Valid())
	assert.GreaterOrEqual(t, m.NextAt, now+900*time.Millisecond)
}

func TestNextAtIsMonotonicAndInvariantHolds(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	p := DefaultPolicy()
	var m Motion
	m.Start(0, rng, p)

	prev := m.NextAt
	// 16ms frames for a simulated minute
	for now := time.Duration(0); now < time.Minute; now += 16 * time.Millisecond {
		if m.Advance(now, rng, p) {
			require.GreaterOrEqual(t, m.NextAt, prev)
			require.GreaterOrEqual(t, m.NextAt, now)
			prev = m.NextAt
		}
		require.True(t, m.Valid(), "state %v vel (%v,%v)", m.State, m.VX, m.VY)
	}
}

func TestDeriveFacing(t *testing.T) {
	tests := []struct {
		name     string
		vx, vy   float64
		prev     Facing
		prevFlip bool
		want     Facing
		wantFlip bool
	}{
		{"right", 10, 2, FacingDown, false, FacingSide, false},
		{"left", -10, 2, FacingDown, false, FacingSide, true},
		{"tie goes horizontal", -5, 5, FacingUp, false, FacingSide, true},
		{"up", 1, -10, FacingSide, true, FacingUp, false},
		{"down", 1, 10, FacingSide, true, FacingDown, false},
		{"stopped keeps side flip", 0, 0, FacingSide, true, FacingSide, true},
		{"stopped keeps up", 0, 0, FacingUp, false, FacingUp, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, flip := DeriveFacing(tt.vx, tt.vy, tt.prev, tt.prevFlip)
			assert.Equal(t, tt.want, f)
			assert.Equal(t, tt.wantFlip, flip)
		})
	}
}

type stubBody struct {
	pos, vel geom.Point
}

func (b *stubBody) Position() geom.Point       { return b.pos }
func (b *stubBody) Velocity() geom.Point       { return b.vel }
func (b *stubBody) SetVelocity(vx, vy float64) { b.vel = geom.Point{X: vx, Y: vy} }

func TestAnimationKey(t *testing.T) {
	body := &stubBody{pos: geom.Point{X: 3, Y: 4}, vel: geom.Point{X: -12}}
	a := &Actor{Kind: KindTraveler, Body: body}
	a.SyncFromBody()

	assert.Equal(t, geom.Point{X: 3, Y: 4}, a.Pos)
	assert.Equal(t, "npc-walk-side", a.AnimationKey("npc"))
	assert.True(t, a.FlipX)

	body.SetVelocity(0, 0)
	a.SyncFromBody()
	assert.Equal(t, "npc-idle-side", a.AnimationKey("npc"))

	noBody := &Actor{}
	assert.Equal(t, "player-idle-down", noBody.AnimationKey("player"))
}
