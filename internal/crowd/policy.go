package crowd

import (
	"chosenoffset.com/dutyfree/internal/actor"
	"chosenoffset.com/dutyfree/internal/config"
)

// PolicyFromConfig converts crowd settings into a wander policy
func PolicyFromConfig(c config.CrowdConfig) actor.Policy {
	r := func(v config.Range) actor.IntRange {
		return actor.IntRange{Min: v.Min, Max: v.Max}
	}
	return actor.Policy{
		VX:        r(c.VX),
		VY:        r(c.VY),
		FallbackX: c.FallbackX,
		FallbackY: c.FallbackY,
		Walk:      r(c.WalkMS),
		Pause:     r(c.PauseMS),
	}
}
