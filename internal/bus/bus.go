// Package bus provides the process-wide key/value state shared by the
// simulation, the store controller and the overlay.
//
// A Bus is created once at startup and handed to every component that needs
// it. Writes are last-write-wins and change notification is synchronous: by the
// time Set returns, every subscriber has seen the new value. The bus is only
// touched from the game loop, so it carries no locking.
package bus

// Key names a value on the bus
type Key string

// Well-known keys
const (
	KeyMoney          Key = "money"           // int wallet balance
	KeyBasket         Key = "basket"          // []basket.Item
	KeyHint           Key = "hint"            // string shown in the bottom HUD bar
	KeyLocation       Key = "location"        // string zone name
	KeyLocationType   Key = "location_type"   // string zone kind ("concourse", "concourse-A", "store", ...)
	KeyPhase          Key = "phase"           // store.Phase of the active visit
	KeyPlayerPos      Key = "player_pos"      // geom.Point world position of the player
	KeyDialogue       Key = "dialogue"        // *store.DialogueView, nil when closed
	KeyListing        Key = "listing"         // *store.ListingView, nil when closed
	KeyBasketPanel    Key = "basket_panel"    // *basket.PanelView, nil when closed
	KeyTimeRemaining  Key = "time_remaining"  // float64 seconds until boarding
	KeyMovementLocked Key = "movement_locked" // bool
	KeyOverlayHidden  Key = "overlay_hidden"  // bool, hides world-anchored panels
)

// ChangeFunc is called after a key changes
type ChangeFunc func(key Key, value any)

type subscriber struct {
	id  int
	key Key // empty means every key
	fn  ChangeFunc
}

// Bus is a publish/subscribe key-value store
type Bus struct {
	values map[Key]any
	subs   []subscriber
	nextID int
}

// New creates an empty bus
func New() *Bus {
	return &Bus{values: make(map[Key]any)}
}

// Set stores value under key and notifies subscribers
func (b *Bus) Set(key Key, value any) {
	b.values[key] = value

	// Snapshot so callbacks may subscribe/unsubscribe while we iterate
	subs := make([]subscriber, len(b.subs))
	copy(subs, b.subs)
	for _, s := range subs {
		if s.key == "" || s.key == key {
			s.fn(key, value)
		}
	}
}

// Get returns the value stored under key
func (b *Bus) Get(key Key) (any, bool) {
	v, ok := b.values[key]
	return v, ok
}

// Has reports whether key has ever been set
func (b *Bus) Has(key Key) bool {
	_, ok := b.values[key]
	return ok
}

// OnChange registers fn for every key. The returned func removes it.
func (b *Bus) OnChange(fn ChangeFunc) func() {
	return b.Subscribe("", fn)
}

// Subscribe registers fn for a single key. An empty key subscribes to all keys.
func (b *Bus) Subscribe(key Key, fn ChangeFunc) func() {
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscriber{id: id, key: key, fn: fn})
	return func() {
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Value returns the value under key asserted to T. The zero value and false
// are returned when the key is unset or holds a different type.
func Value[T any](b *Bus, key Key) (T, bool) {
	var zero T
	raw, ok := b.Get(key)
	if !ok {
		return zero, false
	}
	v, ok := raw.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// GetInt returns an int value (0 if not set)
func (b *Bus) GetInt(key Key) int {
	v, _ := Value[int](b, key)
	return v
}

// GetFloat returns a float64 value (0 if not set)
func (b *Bus) GetFloat(key Key) float64 {
	v, _ := Value[float64](b, key)
	return v
}

// GetString returns a string value (empty if not set)
func (b *Bus) GetString(key Key) string {
	v, _ := Value[string](b, key)
	return v
}

// GetBool returns a bool value (false if not set)
func (b *Bus) GetBool(key Key) bool {
	v, _ := Value[bool](b, key)
	return v
}
