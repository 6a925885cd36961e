// Package overlay draws the screen-space UI: the HUD bars, the clerk dialogue
// box, the item listing and the basket panel. It reads everything it shows
// from the bus and never writes back.
package overlay

import (
	"fmt"
	"image/color"
	"math"

	"chosenoffset.com/dutyfree/internal/basket"
	"chosenoffset.com/dutyfree/internal/bus"
	"chosenoffset.com/dutyfree/internal/config"
	"chosenoffset.com/dutyfree/internal/geom"
	"chosenoffset.com/dutyfree/internal/i18n"
	"chosenoffset.com/dutyfree/internal/render"
	"chosenoffset.com/dutyfree/internal/store"
)

const (
	padding   = 6
	anchorGap = 14
)

var (
	barColor      = color.RGBA{12, 18, 32, 200}
	panelColor    = color.RGBA{20, 24, 38, 235}
	borderColor   = color.RGBA{120, 150, 190, 255}
	textColor     = color.RGBA{230, 240, 255, 255}
	dimColor      = color.RGBA{150, 165, 185, 255}
	selectedColor = color.RGBA{255, 230, 140, 255}
)

// Panel is one laid-out box of text
type Panel struct {
	Rect     geom.Rect
	Title    string
	Lines    []string
	Selected int // -1 for none
	Footer   string
}

// Layout is everything the overlay will draw this frame
type Layout struct {
	Width, Height float64
	Bars          Bars

	Status   string
	Location string
	Boarding string
	Hint     string

	Dialogue *Panel
	Listing  *Panel
	Basket   *Panel
}

// Presenter lays out and draws the overlay
type Presenter struct {
	bus    *bus.Bus
	r      render.Renderer
	loc    *i18n.Localizer
	ui     config.UIConfig
	window func() (int, int)
	view   func() View

	layout  Layout
	dirty   bool
	unsub   func()
	Relayed int // Layout passes since creation
}

// New creates a presenter subscribed to every bus change. window supplies the
// fallback size while the view reports zero; view supplies the camera.
func New(b *bus.Bus, r render.Renderer, loc *i18n.Localizer, ui config.UIConfig,
	window func() (int, int), view func() View) *Presenter {

	p := &Presenter{bus: b, r: r, loc: loc, ui: ui, window: window, view: view, dirty: true}
	p.unsub = b.OnChange(func(bus.Key, any) {
		p.Refresh()
	})
	return p
}

// Close stops listening to the bus
func (p *Presenter) Close() {
	if p.unsub != nil {
		p.unsub()
		p.unsub = nil
	}
}

// ModalOpen reports whether a dialogue, listing or basket panel is showing
func (p *Presenter) ModalOpen() bool {
	d, _ := bus.Value[*store.DialogueView](p.bus, bus.KeyDialogue)
	l, _ := bus.Value[*store.ListingView](p.bus, bus.KeyListing)
	k, _ := bus.Value[*basket.PanelView](p.bus, bus.KeyBasketPanel)
	return d != nil || l != nil || k != nil
}

// Update runs once per frame. While a modal is open the layout is redone every
// frame so panels follow camera moves that do not go through the bus.
func (p *Presenter) Update() {
	if p.dirty || p.ModalOpen() {
		p.Refresh()
	}
}

// Layout returns the most recent layout
func (p *Presenter) Layout() Layout {
	return p.layout
}

// Refresh recomputes the layout from the bus and the current view
func (p *Presenter) Refresh() {
	p.dirty = false
	p.Relayed++

	v := View{Zoom: 1}
	if p.view != nil {
		v = p.view()
	}
	ww, wh := 0, 0
	if p.window != nil {
		ww, wh = p.window()
	}
	vw, vh := Viewport(v, ww, wh)

	small := p.ui.SmallFont()
	l := Layout{
		Width:    vw,
		Height:   vh,
		Bars:     HUDBars(vw, vh, p.ui.HUDHeight()),
		Location: p.bus.GetString(bus.KeyLocation),
		Hint:     p.bus.GetString(bus.KeyHint),
	}

	items, _ := bus.Value[[]basket.Item](p.bus, bus.KeyBasket)
	total := 0
	for _, it := range items {
		total += it.Price
	}
	l.Status = p.loc.T("ui.status", i18n.Params{
		"money": p.bus.GetInt(bus.KeyMoney),
		"items": len(items),
		"total": total,
	})
	if p.bus.Has(bus.KeyTimeRemaining) {
		l.Boarding = p.loc.T("ui.boarding", i18n.Params{"time": Clock(p.bus.GetFloat(bus.KeyTimeRemaining))})
	}

	hidden := p.bus.GetBool(bus.KeyOverlayHidden)
	player, _ := bus.Value[geom.Point](p.bus, bus.KeyPlayerPos)
	anchor := Project(player, v)

	if d, _ := bus.Value[*store.DialogueView](p.bus, bus.KeyDialogue); d != nil && !hidden {
		lines := []string{d.Text}
		w := PanelWidth(p.r, append([]string{d.Speaker, d.Continue}, lines...), small, padding, p.ui.PanelMinW)
		h := math.Max(p.ui.DialogHeight(), float64(len(lines)+2)*p.ui.LineStep()+2*padding)
		l.Dialogue = &Panel{
			Rect:     AnchorAbove(anchor, w, h, anchorGap, vw, l.Bars),
			Title:    d.Speaker,
			Lines:    lines,
			Selected: -1,
			Footer:   d.Continue,
		}
	}

	if lv, _ := bus.Value[*store.ListingView](p.bus, bus.KeyListing); lv != nil && !hidden {
		w := PanelWidth(p.r, append([]string{lv.Title, lv.Hint}, prefixed(lv.Rows)...), small, padding, p.ui.PanelMinW)
		h := float64(len(lv.Rows)+2)*p.ui.LineStep() + 2*padding
		l.Listing = &Panel{
			Rect:     AnchorAbove(anchor, w, h, anchorGap, vw, l.Bars),
			Title:    lv.Title,
			Lines:    lv.Rows,
			Selected: lv.Selected,
			Footer:   lv.Hint,
		}
	}

	if bv, _ := bus.Value[*basket.PanelView](p.bus, bus.KeyBasketPanel); bv != nil {
		w := PanelWidth(p.r, append([]string{bv.Title, bv.Hint}, prefixed(bv.Lines)...), small, padding, p.ui.PanelMinW)
		h := float64(len(bv.Lines)+2)*p.ui.LineStep() + 2*padding
		l.Basket = &Panel{
			Rect:     Centered(w, h, vw, l.Bars),
			Title:    bv.Title,
			Lines:    bv.Lines,
			Selected: bv.Selected,
			Footer:   bv.Hint,
		}
	}

	p.layout = l
}

// prefixed adds the selection marker width to every row so the widest row
// still fits when highlighted
func prefixed(rows []string) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = "> " + r
	}
	return out
}

// Clock formats seconds as mm:ss, rounded down and clamped at zero
func Clock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	s := int(math.Floor(seconds))
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}

// Draw paints the current layout onto screen
func (p *Presenter) Draw(screen render.Image) {
	l := p.layout
	small := p.ui.SmallFont()
	textY := func(bar geom.Rect) float64 { return bar.Y + (bar.H-small)/2 }

	for _, bar := range []geom.Rect{l.Bars.Top, l.Bars.Bottom} {
		p.r.FillRect(screen, float32(bar.X), float32(bar.Y), float32(bar.W), float32(bar.H), barColor)
	}

	p.r.DrawText(screen, l.Status, padding, textY(l.Bars.Top), small, textColor)
	if l.Boarding != "" {
		w, _ := p.r.MeasureText(l.Boarding, small)
		p.r.DrawText(screen, l.Boarding, l.Width-w-padding, textY(l.Bars.Top), small, selectedColor)
	}
	if l.Location != "" {
		w, _ := p.r.MeasureText(l.Location, small)
		p.r.DrawText(screen, l.Location, (l.Width-w)/2, textY(l.Bars.Top), small, dimColor)
	}
	p.r.DrawText(screen, l.Hint, padding, textY(l.Bars.Bottom), small, textColor)

	for _, panel := range []*Panel{l.Dialogue, l.Listing, l.Basket} {
		if panel != nil {
			p.drawPanel(screen, panel)
		}
	}
}

func (p *Presenter) drawPanel(screen render.Image, panel *Panel) {
	r := panel.Rect
	small := p.ui.SmallFont()
	step := p.ui.LineStep()

	p.r.FillRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), panelColor)
	p.r.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 1, borderColor)

	x := r.X + padding
	y := r.Y + padding
	if panel.Title != "" {
		p.r.DrawText(screen, panel.Title, x, y, small, selectedColor)
		y += step
	}
	for i, line := range panel.Lines {
		clr := color.Color(textColor)
		if panel.Selected >= 0 {
			if i == panel.Selected {
				line = "> " + line
				clr = selectedColor
			} else {
				line = "  " + line
			}
		}
		p.r.DrawText(screen, line, x, y, small, clr)
		y += step
	}
	if panel.Footer != "" {
		p.r.DrawText(screen, panel.Footer, x, y, small, dimColor)
	}
}
