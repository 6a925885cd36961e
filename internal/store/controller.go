// Package store implements the store visit: walking up to the clerk, reading
// the dialogue, then browsing and buying from the item listing.
package store

import (
	"log"

	"chosenoffset.com/dutyfree/internal/basket"
	"chosenoffset.com/dutyfree/internal/bus"
	"chosenoffset.com/dutyfree/internal/catalog"
	"chosenoffset.com/dutyfree/internal/i18n"
	"chosenoffset.com/dutyfree/internal/metrics"
)

// ItemSource supplies a store's items
type ItemSource interface {
	ItemsForStore(storeID string) []catalog.Item
}

// Proximity is where the player stands relative to the interactive spots
type Proximity struct {
	Clerk bool
	Exit  bool
}

// DialogueView is the dialogue payload published on the bus
type DialogueView struct {
	Speaker  string
	Text     string
	Continue string
	Line     int
	Lines    int
}

// ListingView is the item listing payload published on the bus
type ListingView struct {
	Title    string
	Rows     []string
	Selected int
	Hint     string
}

// Controller runs store visits against the shared bus
type Controller struct {
	bus     *bus.Bus
	wallet  *basket.Wallet
	items   ItemSource
	loc     *i18n.Localizer
	metrics *metrics.Metrics

	session *Session

	// OnLeave is called after the player walks out through the exit door
	OnLeave func(storeID string)
}

// NewController creates a controller with no active visit. m may be nil.
func NewController(b *bus.Bus, w *basket.Wallet, items ItemSource, loc *i18n.Localizer, m *metrics.Metrics) *Controller {
	return &Controller{bus: b, wallet: w, items: items, loc: loc, metrics: m}
}

// DefaultScript returns the clerk's localized greeting lines
func DefaultScript(loc *i18n.Localizer) []string {
	return []string{
		loc.T("store.dialog.l1", nil),
		loc.T("store.dialog.l2", nil),
		loc.T("store.dialog.l3", nil),
	}
}

// Begin starts a visit to storeID, discarding whatever a previous visit left
// behind. An empty script falls back to DefaultScript.
func (c *Controller) Begin(storeID string, script []string) *Session {
	if c.session != nil {
		log.Printf("Discarding store session %s (%s) in phase %s", c.session.ID, c.session.StoreID, c.session.phase)
	}
	if len(script) == 0 {
		script = DefaultScript(c.loc)
	}
	c.session = newSession(storeID, script)
	c.clearPanels()
	c.bus.Set(bus.KeyLocation, c.loc.T("store.title."+storeID, nil))
	c.bus.Set(bus.KeyLocationType, "store")
	c.bus.Set(bus.KeyOverlayHidden, false)
	c.metrics.VisitStarted(storeID)
	log.Printf("Store session %s started at %s", c.session.ID, storeID)
	return c.session
}

// Session returns the active visit, or nil
func (c *Controller) Session() *Session {
	return c.session
}

// Phase returns the active phase. Browse when no visit is active.
func (c *Controller) Phase() Phase {
	if c.session == nil {
		return Browse
	}
	return c.session.phase
}

// MovementAllowed reports whether the player may walk
func (c *Controller) MovementAllowed() bool {
	return c.Phase() == Browse
}

// SetSpeaker names the clerk shown in the dialogue box
func (c *Controller) SetSpeaker(name string) {
	if c.session == nil {
		return
	}
	c.session.Speaker = name
	if c.session.phase == Dialogue {
		c.publishDialogue()
	}
}

// Handle routes one player action through the state machine and applies its
// effect. It returns the effect for the caller's bookkeeping.
func (c *Controller) Handle(ev Event, near Proximity) Effect {
	s := c.session
	if s == nil {
		return EffectNone
	}
	next, effect := Transition(s.phase, ev, s.guards(near))

	switch effect {
	case EffectLeave:
		c.End()
		return effect

	case EffectStartDialogue:
		s.line = 0
		s.phase = next
		c.bus.Set(bus.KeyMovementLocked, true)
		c.publishDialogue()
		c.metrics.LineShown()

	case EffectNextLine:
		s.line++
		c.publishDialogue()
		c.metrics.LineShown()

	case EffectOpenListing:
		s.phase = next
		s.openListing(c.items.ItemsForStore(s.StoreID))
		c.bus.Set(bus.KeyDialogue, (*DialogueView)(nil))
		c.bus.Set(bus.KeyHint, c.loc.T("store.hint", nil))
		c.publishListing()

	case EffectSelectPrev:
		s.move(-1)
		c.publishListing()

	case EffectSelectNext:
		s.move(1)
		c.publishListing()

	case EffectPurchase:
		c.purchase(s.entries[s.selected].Item)
		c.publishListing()

	case EffectCloseListing:
		s.reset()
		c.clearPanels()
	}

	if effect != EffectNone {
		c.bus.Set(bus.KeyPhase, s.phase)
	}
	return effect
}

func (c *Controller) purchase(it catalog.Item) {
	ok := c.wallet.Purchase(basket.Item{ID: it.ID, Name: it.Name, Price: it.Price})
	if !ok {
		c.metrics.Rejected(it.Store)
		return
	}
	c.metrics.Purchased(it.Store, it.Price)
}

// End closes the active visit, clears its panels and calls OnLeave
func (c *Controller) End() {
	s := c.session
	if s == nil {
		return
	}
	c.session = nil
	c.clearPanels()
	c.bus.Set(bus.KeyOverlayHidden, false)
	log.Printf("Store session %s ended at %s", s.ID, s.StoreID)
	if c.OnLeave != nil {
		c.OnLeave(s.StoreID)
	}
}

func (c *Controller) clearPanels() {
	c.bus.Set(bus.KeyDialogue, (*DialogueView)(nil))
	c.bus.Set(bus.KeyListing, (*ListingView)(nil))
	c.bus.Set(bus.KeyPhase, Browse)
	c.bus.Set(bus.KeyMovementLocked, false)
}

func (c *Controller) publishDialogue() {
	s := c.session
	c.bus.Set(bus.KeyDialogue, &DialogueView{
		Speaker:  s.Speaker,
		Text:     s.script[s.line],
		Continue: c.loc.T("store.dialog.cont", nil),
		Line:     s.line,
		Lines:    len(s.script),
	})
}

func (c *Controller) publishListing() {
	s := c.session
	rows := make([]string, len(s.entries))
	for i, e := range s.entries {
		if e.Exit {
			rows[i] = c.loc.T("store.listExit", nil)
			continue
		}
		rows[i] = c.loc.T("store.price", i18n.Params{"name": e.Item.Name, "price": e.Item.Price})
	}
	c.bus.Set(bus.KeyListing, &ListingView{
		Title:    c.loc.T("store.title."+s.StoreID, nil) + " - " + c.loc.T("store.listTitle", nil),
		Rows:     rows,
		Selected: s.selected,
		Hint:     c.loc.T("store.hint", nil),
	})
}
