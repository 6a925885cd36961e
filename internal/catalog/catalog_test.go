package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedCatalog(t *testing.T) {
	c, err := LoadEmbedded()
	require.NoError(t, err)

	items := c.ItemsForStore("cosmetics")
	require.Len(t, items, 3)
	assert.Equal(t, "cos-01", items[0].ID)
	assert.Equal(t, 120, items[0].Price)

	assert.Len(t, c.Stores(), 10)
	assert.Equal(t, "cosmetics", c.Stores()[0])
}

func TestItemsForUnknownStoreIsEmpty(t *testing.T) {
	c, err := LoadEmbedded()
	require.NoError(t, err)

	assert.Empty(t, c.ItemsForStore("lounge"))

	_, err = c.Lookup("lounge")
	assert.ErrorIs(t, err, ErrUnknownStore)
}

func TestItemsForStoreReturnsCopy(t *testing.T) {
	c, err := LoadEmbedded()
	require.NoError(t, err)

	items := c.ItemsForStore("liquor")
	items[0].Price = 1

	again := c.ItemsForStore("liquor")
	assert.Equal(t, 300, again[0].Price)
}

func TestParseValidation(t *testing.T) {
	_, err := Parse([]byte("items:\n  - {id: a, price: 1}\n"))
	assert.Error(t, err, "store is required")

	_, err = Parse([]byte("items:\n  - {id: a, store: s, price: -1}\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("items:\n  - {id: a, store: s, price: 1}\n  - {id: a, store: t, price: 2}\n"))
	assert.Error(t, err)
}

func TestSortedStores(t *testing.T) {
	c, err := Parse([]byte("items:\n  - {id: a, store: zeta, price: 1}\n  - {id: b, store: alpha, price: 2}\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha"}, c.Stores())
	assert.Equal(t, []string{"alpha", "zeta"}, c.SortedStores())
}
