// Package basket provides the shared wallet and shopping basket.
// Both live on the bus so every scene and the overlay see the same values.
package basket

import (
	"fmt"
	"log"

	"chosenoffset.com/dutyfree/internal/bus"
)

// Item is one purchased product
type Item struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// Wallet reads and writes the money balance and basket on the bus
type Wallet struct {
	bus *bus.Bus

	// OnChange is called after a successful purchase or removal
	OnChange func()
}

// New binds a wallet to b. The balance is seeded with startingMoney unless the
// bus already carries one.
func New(b *bus.Bus, startingMoney int) *Wallet {
	if !b.Has(bus.KeyMoney) {
		b.Set(bus.KeyMoney, startingMoney)
	}
	if !b.Has(bus.KeyBasket) {
		b.Set(bus.KeyBasket, []Item{})
	}
	return &Wallet{bus: b}
}

// Balance returns the current money
func (w *Wallet) Balance() int {
	return w.bus.GetInt(bus.KeyMoney)
}

// Items returns a copy of the basket contents in purchase order
func (w *Wallet) Items() []Item {
	items, _ := bus.Value[[]Item](w.bus, bus.KeyBasket)
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// Count returns the number of items in the basket
func (w *Wallet) Count() int {
	items, _ := bus.Value[[]Item](w.bus, bus.KeyBasket)
	return len(items)
}

// Total returns the sum of basket prices
func (w *Wallet) Total() int {
	items, _ := bus.Value[[]Item](w.bus, bus.KeyBasket)
	total := 0
	for _, it := range items {
		total += it.Price
	}
	return total
}

// Purchase appends item and debits its price. It returns false, leaving both
// balance and basket untouched, when the price exceeds the balance.
func (w *Wallet) Purchase(item Item) bool {
	balance := w.Balance()
	if item.Price < 0 || item.Price > balance {
		return false
	}

	next := append(w.Items(), item)
	w.bus.Set(bus.KeyMoney, balance-item.Price)
	w.bus.Set(bus.KeyBasket, next)
	log.Printf("Purchased %s for %d (balance %d)", item.ID, item.Price, balance-item.Price)
	w.notifyChange()
	return true
}

// Remove drops the item at index and refunds its price
func (w *Wallet) Remove(index int) (Item, error) {
	items := w.Items()
	if index < 0 || index >= len(items) {
		return Item{}, fmt.Errorf("basket index %d out of range [0,%d)", index, len(items))
	}
	removed := items[index]
	next := append(items[:index:index], items[index+1:]...)

	w.bus.Set(bus.KeyMoney, w.Balance()+removed.Price)
	w.bus.Set(bus.KeyBasket, next)
	log.Printf("Removed %s from basket, refunded %d", removed.ID, removed.Price)
	w.notifyChange()
	return removed, nil
}

func (w *Wallet) notifyChange() {
	if w.OnChange != nil {
		w.OnChange()
	}
}
