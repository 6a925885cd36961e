package actor

import (
	"math"
	"math/rand"
	"time"
)

// MotionState is the wander cycle phase of an actor
type MotionState int

const (
	Walking MotionState = iota
	Paused
)

func (s MotionState) String() string {
	if s == Paused {
		return "paused"
	}
	return "walking"
}

// IntRange is an inclusive [Min, Max] range
type IntRange struct {
	Min, Max int
}

// Policy holds the velocity ranges and dwell times of the wander cycle
type Policy struct {
	VX, VY               IntRange
	FallbackX, FallbackY int
	Walk, Pause          IntRange // milliseconds
}

// DefaultPolicy matches the stock concourse crowd
func DefaultPolicy() Policy {
	return Policy{
		VX:        IntRange{Min: -35, Max: 35},
		VY:        IntRange{Min: -25, Max: 25},
		FallbackX: 20,
		FallbackY: 15,
		Walk:      IntRange{Min: 900, Max: 1600},
		Pause:     IntRange{Min: 500, Max: 900},
	}
}

// Between returns a uniform integer in [r.Min, r.Max]
func Between(rng *rand.Rand, r IntRange) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Intn(r.Max-r.Min+1)
}

// RollVelocity draws a walking velocity. An axis that lands on zero takes the
// fallback so a walking actor never looks stalled.
func (p Policy) RollVelocity(rng *rand.Rand) (vx, vy float64) {
	x := Between(rng, p.VX)
	if x == 0 {
		x = p.FallbackX
	}
	y := Between(rng, p.VY)
	if y == 0 {
		y = p.FallbackY
	}
	return float64(x), float64(y)
}

func (p Policy) dwell(rng *rand.Rand, r IntRange) time.Duration {
	return time.Duration(Between(rng, r)) * time.Millisecond
}

// Motion is the per-actor wander/pause timer and commanded velocity
type Motion struct {
	State  MotionState
	VX, VY float64
	NextAt time.Duration // Absolute clock value of the next transition
}

// Start puts the motion into Walking with a fresh velocity
func (m *Motion) Start(now time.Duration, rng *rand.Rand, p Policy) {
	m.State = Walking
	m.VX, m.VY = p.RollVelocity(rng)
	m.NextAt = now + p.dwell(rng, p.Walk)
}

// Advance performs at most one transition when the deadline has passed.
// It reports whether a transition happened.
func (m *Motion) Advance(now time.Duration, rng *rand.Rand, p Policy) bool {
	if now < m.NextAt {
		return false
	}
	switch m.State {
	case Walking:
		m.State = Paused
		m.VX, m.VY = 0, 0
		m.NextAt = now + p.dwell(rng, p.Pause)
	default:
		m.State = Walking
		m.VX, m.VY = p.RollVelocity(rng)
		m.NextAt = now + p.dwell(rng, p.Walk)
	}
	return true
}

// Valid reports whether the walking/paused velocity invariant holds
func (m Motion) Valid() bool {
	moving := m.VX != 0 || m.VY != 0
	if m.State == Paused {
		return !moving
	}
	return moving
}

// Facing is the direction an actor's sprite faces
type Facing int

const (
	FacingDown Facing = iota
	FacingUp
	FacingSide
)

func (f Facing) String() string {
	switch f {
	case FacingUp:
		return "up"
	case FacingSide:
		return "side"
	default:
		return "down"
	}
}

// DeriveFacing picks a facing from velocity. Horizontal wins ties; side facing
// flips when moving left. A stationary actor keeps its previous facing.
func DeriveFacing(vx, vy float64, prev Facing, prevFlip bool) (Facing, bool) {
	if vx == 0 && vy == 0 {
		if prev != FacingSide {
			return prev, false
		}
		return prev, prevFlip
	}
	if math.Abs(vx) >= math.Abs(vy) {
		return FacingSide, vx < 0
	}
	if vy < 0 {
		return FacingUp, false
	}
	return FacingDown, false
}
