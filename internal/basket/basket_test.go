package basket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/dutyfree/internal/bus"
	"chosenoffset.com/dutyfree/internal/i18n"
)

func localizer(t *testing.T) *i18n.Localizer {
	t.Helper()
	b, err := i18n.LoadEmbedded()
	require.NoError(t, err)
	return b.NewLocalizer("en")
}

func TestInsufficientFundsLeavesStateUnchanged(t *testing.T) {
	b := bus.New()
	w := New(b, 100)

	before := w.Items()
	assert.False(t, w.Purchase(Item{ID: "x", Name: "X", Price: 150}))
	assert.Equal(t, 100, w.Balance())
	assert.Equal(t, before, w.Items())

	assert.True(t, w.Purchase(Item{ID: "y", Name: "Y", Price: 80}))
	assert.Equal(t, 20, w.Balance())
	assert.Len(t, w.Items(), 1)
}

func TestPurchaseExactBalance(t *testing.T) {
	w := New(bus.New(), 50)
	assert.True(t, w.Purchase(Item{ID: "a", Price: 50}))
	assert.Equal(t, 0, w.Balance())
	assert.False(t, w.Purchase(Item{ID: "b", Price: 1}))
}

func TestNewKeepsExistingBalance(t *testing.T) {
	b := bus.New()
	b.Set(bus.KeyMoney, 42)
	w := New(b, 3000)
	assert.Equal(t, 42, w.Balance())
}

func TestBasketSliceIsNeverMutatedInPlace(t *testing.T) {
	b := bus.New()
	w := New(b, 1000)
	require.True(t, w.Purchase(Item{ID: "a", Price: 10}))
	snapshot, _ := bus.Value[[]Item](b, bus.KeyBasket)

	require.True(t, w.Purchase(Item{ID: "b", Price: 20}))
	_, err := w.Remove(0)
	require.NoError(t, err)

	assert.Equal(t, []Item{{ID: "a", Price: 10}}, snapshot)
	assert.Equal(t, []Item{{ID: "b", Price: 20}}, w.Items())
}

func TestRemoveRefunds(t *testing.T) {
	w := New(bus.New(), 100)
	require.True(t, w.Purchase(Item{ID: "a", Price: 30}))
	require.True(t, w.Purchase(Item{ID: "b", Price: 20}))
	assert.Equal(t, 50, w.Total())

	removed, err := w.Remove(0)
	require.NoError(t, err)
	assert.Equal(t, "a", removed.ID)
	assert.Equal(t, 80, w.Balance())
	assert.Equal(t, 20, w.Total())

	_, err = w.Remove(5)
	assert.Error(t, err)
}

func TestOnChangeFiresOnMutation(t *testing.T) {
	w := New(bus.New(), 100)
	calls := 0
	w.OnChange = func() { calls++ }

	w.Purchase(Item{ID: "a", Price: 500})
	assert.Equal(t, 0, calls)
	w.Purchase(Item{ID: "a", Price: 5})
	assert.Equal(t, 1, calls)
}

func TestPanelWrapAndClamp(t *testing.T) {
	b := bus.New()
	w := New(b, 1000)
	for _, id := range []string{"a", "b", "c"} {
		require.True(t, w.Purchase(Item{ID: id, Name: id, Price: 10}))
	}
	p := NewPanel(w, localizer(t))
	p.Open()
	assert.True(t, b.GetBool(bus.KeyMovementLocked))

	p.Move(-1)
	assert.Equal(t, 2, p.Selected())
	p.Move(1)
	assert.Equal(t, 0, p.Selected())

	p.Move(-1)
	_, ok := p.RemoveSelected()
	require.True(t, ok)
	assert.Equal(t, 1, p.Selected(), "selection clamps to the new last index")

	p.RemoveSelected()
	p.RemoveSelected()
	assert.Equal(t, -1, p.Selected())

	view, ok := bus.Value[*PanelView](b, bus.KeyBasketPanel)
	require.True(t, ok)
	assert.Equal(t, []string{"(empty)"}, view.Lines)
	assert.Equal(t, 1000, w.Balance())

	_, ok = p.RemoveSelected()
	assert.False(t, ok)
}

func TestPanelToggle(t *testing.T) {
	b := bus.New()
	w := New(b, 100)
	require.True(t, w.Purchase(Item{ID: "a", Name: "Tea", Price: 12}))
	p := NewPanel(w, localizer(t))

	p.Toggle()
	view, _ := bus.Value[*PanelView](b, bus.KeyBasketPanel)
	require.NotNil(t, view)
	assert.Equal(t, []string{"Tea - $12"}, view.Lines)
	assert.Equal(t, 0, view.Selected)

	p.Toggle()
	assert.False(t, p.IsOpen())
	assert.False(t, b.GetBool(bus.KeyMovementLocked))
	view, _ = bus.Value[*PanelView](b, bus.KeyBasketPanel)
	assert.Nil(t, view)
}
