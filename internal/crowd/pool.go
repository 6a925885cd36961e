package crowd

import (
	"math/rand"

	"chosenoffset.com/dutyfree/internal/actor"
)

// Pool is a shared identity draw pool. Identities are removed as they are
// drawn, so crowds sharing a pool never reuse a traveler.
type Pool struct {
	ids []actor.Identity
	rng *rand.Rand
}

// NewPool copies ids into a new pool
func NewPool(ids []actor.Identity, rng *rand.Rand) *Pool {
	p := &Pool{ids: make([]actor.Identity, len(ids)), rng: rng}
	copy(p.ids, ids)
	return p
}

// Len returns how many identities remain
func (p *Pool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.ids)
}

// Draw removes and returns a random identity
func (p *Pool) Draw() (actor.Identity, bool) {
	if p.Len() == 0 {
		return actor.Identity{}, false
	}
	i := p.rng.Intn(len(p.ids))
	id := p.ids[i]
	p.ids = append(p.ids[:i], p.ids[i+1:]...)
	return id, true
}
