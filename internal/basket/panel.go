package basket

import (
	"chosenoffset.com/dutyfree/internal/bus"
	"chosenoffset.com/dutyfree/internal/i18n"
)

// PanelView is the basket panel payload published on the bus
type PanelView struct {
	Title    string
	Lines    []string
	Selected int // -1 when the basket is empty
	Hint     string
}

// Panel is the modal basket viewer of the concourse
type Panel struct {
	wallet   *Wallet
	bus      *bus.Bus
	loc      *i18n.Localizer
	open     bool
	selected int
}

// NewPanel creates a closed panel over wallet
func NewPanel(w *Wallet, loc *i18n.Localizer) *Panel {
	return &Panel{wallet: w, bus: w.bus, loc: loc}
}

// IsOpen reports whether the panel is showing
func (p *Panel) IsOpen() bool {
	return p.open
}

// Selected returns the highlighted basket index, or -1 when empty
func (p *Panel) Selected() int {
	if p.wallet.Count() == 0 {
		return -1
	}
	return p.selected
}

// Toggle opens a closed panel and closes an open one
func (p *Panel) Toggle() {
	if p.open {
		p.Close()
	} else {
		p.Open()
	}
}

// Open shows the panel and locks movement
func (p *Panel) Open() {
	p.open = true
	p.selected = 0
	p.bus.Set(bus.KeyMovementLocked, true)
	p.publish()
}

// Close hides the panel and unlocks movement
func (p *Panel) Close() {
	if !p.open {
		return
	}
	p.open = false
	p.bus.Set(bus.KeyBasketPanel, (*PanelView)(nil))
	p.bus.Set(bus.KeyMovementLocked, false)
}

// Move shifts the selection by delta, wrapping at both ends
func (p *Panel) Move(delta int) {
	if !p.open {
		return
	}
	n := p.wallet.Count()
	if n == 0 {
		return
	}
	p.selected = ((p.selected+delta)%n + n) % n
	p.publish()
}

// RemoveSelected removes the highlighted item and refunds it
func (p *Panel) RemoveSelected() (Item, bool) {
	if !p.open || p.wallet.Count() == 0 {
		return Item{}, false
	}
	item, err := p.wallet.Remove(p.selected)
	if err != nil {
		return Item{}, false
	}
	p.selected = clampSelection(p.selected, p.wallet.Count())
	p.publish()
	return item, true
}

func clampSelection(sel, n int) int {
	if n == 0 {
		return 0
	}
	if sel > n-1 {
		sel = n - 1
	}
	if sel < 0 {
		sel = 0
	}
	return sel
}

func (p *Panel) publish() {
	items := p.wallet.Items()
	view := &PanelView{
		Title:    p.loc.T("ui.basketTitle", nil),
		Hint:     p.loc.T("ui.basketHint", nil),
		Selected: -1,
	}
	if len(items) == 0 {
		view.Lines = []string{p.loc.T("ui.basketEmpty", nil)}
	} else {
		view.Selected = p.selected
		for _, it := range items {
			view.Lines = append(view.Lines, p.loc.T("store.price", i18n.Params{"name": it.Name, "price": it.Price}))
		}
	}
	p.bus.Set(bus.KeyBasketPanel, view)
}
