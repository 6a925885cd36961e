// Package catalog provides the static, read-only item tables of the duty-free
// stores.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// ErrUnknownStore is returned by Lookup for store ids with no catalog entry
var ErrUnknownStore = errors.New("unknown store")

// Item is one purchasable product
type Item struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Price int    `yaml:"price"`
	Store string `yaml:"store"`
}

//go:embed data/items.yaml
var embeddedItems []byte

// Catalog indexes items by store
type Catalog struct {
	byStore map[string][]Item
	order   []string
}

// LoadEmbedded loads the catalog shipped with the binary
func LoadEmbedded() (*Catalog, error) {
	return Parse(embeddedItems)
}

// Parse builds a Catalog from YAML data
func Parse(data []byte) (*Catalog, error) {
	var file struct {
		Items []Item `yaml:"items"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	c := &Catalog{byStore: make(map[string][]Item)}
	seen := make(map[string]bool, len(file.Items))
	for i, it := range file.Items {
		if it.ID == "" || it.Store == "" {
			return nil, fmt.Errorf("item %d: id and store are required", i)
		}
		if it.Price < 0 {
			return nil, fmt.Errorf("item %s: negative price %d", it.ID, it.Price)
		}
		if seen[it.ID] {
			return nil, fmt.Errorf("item %s: duplicate id", it.ID)
		}
		seen[it.ID] = true
		if _, ok := c.byStore[it.Store]; !ok {
			c.order = append(c.order, it.Store)
		}
		c.byStore[it.Store] = append(c.byStore[it.Store], it)
	}
	return c, nil
}

// ItemsForStore returns a copy of a store's items in table order. Unknown
// stores have no items.
func (c *Catalog) ItemsForStore(storeID string) []Item {
	items := c.byStore[storeID]
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// Lookup is ItemsForStore that reports unknown stores
func (c *Catalog) Lookup(storeID string) ([]Item, error) {
	if _, ok := c.byStore[storeID]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStore, storeID)
	}
	return c.ItemsForStore(storeID), nil
}

// Stores lists store ids in first-seen order
func (c *Catalog) Stores() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// SortedStores lists store ids alphabetically
func (c *Catalog) SortedStores() []string {
	out := c.Stores()
	sort.Strings(out)
	return out
}
