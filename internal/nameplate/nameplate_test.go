package nameplate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/dutyfree/internal/actor"
	"chosenoffset.com/dutyfree/internal/geom"
)

func traveler(name string, x, y float64) *actor.Actor {
	return &actor.Actor{
		ID:       name,
		Kind:     actor.KindTraveler,
		Pos:      geom.Point{X: x, Y: y},
		Height:   16,
		Identity: &actor.Identity{ID: name, Name: name},
	}
}

func TestFontSizeCompensatesZoom(t *testing.T) {
	assert.Equal(t, 8.0, FontSize(24, 8, 3))
	assert.Equal(t, 24.0, FontSize(24, 8, 1))
	assert.Equal(t, 8.0, FontSize(24, 8, 8), "floored at min size")
	assert.Equal(t, 48.0, FontSize(24, 8, 0.5))
	assert.Equal(t, 24.0, FontSize(24, 8, 0), "zero zoom treated as 1")
}

func TestEmptyActorListIsNoop(t *testing.T) {
	p := NewProjector(24, 8)
	p.Update(nil, geom.Point{}, 40, 0, 3)
	assert.Equal(t, 0, p.Len())
	assert.Empty(t, p.Visible())
}

func TestVisibilityFollowsDistance(t *testing.T) {
	p := NewProjector(24, 8)
	near := traveler("Ana", 10, 0)
	far := traveler("Bo", 100, 0)

	p.Update([]*actor.Actor{near, far}, geom.Point{}, 40, 2, 3)

	plate, ok := p.Plate(near)
	require.True(t, ok)
	assert.True(t, plate.Visible)
	assert.Equal(t, "Ana", plate.Text)
	assert.Equal(t, geom.Point{X: 10, Y: -10}, plate.Pos)
	assert.Equal(t, 8.0, plate.FontSize)

	_, ok = p.Plate(far)
	assert.False(t, ok, "plates are created lazily")

	// walk away: hidden, not destroyed
	near.Pos.X = 60
	p.Update([]*actor.Actor{near, far}, geom.Point{}, 40, 2, 3)
	plate, ok = p.Plate(near)
	require.True(t, ok)
	assert.False(t, plate.Visible)
	assert.Empty(t, p.Visible())
}

func TestThresholdIsInclusive(t *testing.T) {
	p := NewProjector(24, 8)
	a := traveler("Cy", 40, 0)
	p.Update([]*actor.Actor{a}, geom.Point{}, 40, 0, 1)
	assert.Len(t, p.Visible(), 1)
}

func TestAnchorOffsetShiftsDistance(t *testing.T) {
	p := NewProjector(24, 8)
	p.AnchorOffset = geom.Point{X: 20}
	a := traveler("Di", 30, 0)
	p.Update([]*actor.Actor{a}, geom.Point{}, 40, 0, 1)
	assert.Empty(t, p.Visible())
}

func TestIdentityLossDestroysPlate(t *testing.T) {
	p := NewProjector(24, 8)
	a := traveler("Ed", 5, 5)
	p.Update([]*actor.Actor{a}, geom.Point{}, 40, 0, 2)
	require.Equal(t, 1, p.Len())

	a.Identity = nil
	p.Update([]*actor.Actor{a}, geom.Point{}, 40, 0, 2)
	assert.Equal(t, 0, p.Len())
	assert.Empty(t, p.Visible())
}

func TestRemovedActorDestroysPlate(t *testing.T) {
	p := NewProjector(24, 8)
	a := traveler("Fa", 0, 0)
	b := traveler("Gu", 1, 1)
	p.Update([]*actor.Actor{a, b}, geom.Point{}, 40, 0, 2)
	require.Equal(t, 2, p.Len())

	p.Update([]*actor.Actor{b}, geom.Point{}, 40, 0, 2)
	assert.Equal(t, 1, p.Len())
	_, ok := p.Plate(a)
	assert.False(t, ok)

	p.Clear()
	assert.Equal(t, 0, p.Len())
}
