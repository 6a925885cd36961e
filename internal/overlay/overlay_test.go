package overlay

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/dutyfree/internal/basket"
	"chosenoffset.com/dutyfree/internal/bus"
	"chosenoffset.com/dutyfree/internal/config"
	"chosenoffset.com/dutyfree/internal/geom"
	"chosenoffset.com/dutyfree/internal/i18n"
	"chosenoffset.com/dutyfree/internal/render"
	"chosenoffset.com/dutyfree/internal/store"
)

// fakeRenderer measures every rune as 6px wide and records draws
type fakeRenderer struct {
	texts []string
	rects int
}

func (f *fakeRenderer) NewImage(int, int) render.Image { return nil }
func (f *fakeRenderer) FillRect(render.Image, float32, float32, float32, float32, color.Color) {
	f.rects++
}
func (f *fakeRenderer) StrokeRect(render.Image, float32, float32, float32, float32, float32, color.Color) {
}
func (f *fakeRenderer) FillCircle(render.Image, float32, float32, float32, color.Color) {}
func (f *fakeRenderer) StrokeCircle(render.Image, float32, float32, float32, float32, color.Color) {
}
func (f *fakeRenderer) DrawText(_ render.Image, s string, _, _, _ float64, _ color.Color) {
	f.texts = append(f.texts, s)
}
func (f *fakeRenderer) MeasureText(s string, size float64) (float64, float64) {
	return float64(len([]rune(s))) * 6, size
}

func TestViewportFallsBackToWindow(t *testing.T) {
	w, h := Viewport(View{}, 800, 600)
	assert.Equal(t, 800.0, w)
	assert.Equal(t, 600.0, h)

	w, h = Viewport(View{Width: 320, Height: 240}, 800, 600)
	assert.Equal(t, 320.0, w)
	assert.Equal(t, 240.0, h)
}

func TestProject(t *testing.T) {
	got := Project(geom.Point{X: 110, Y: 60}, View{ScrollX: 100, ScrollY: 50, Zoom: 3})
	assert.Equal(t, geom.Point{X: 30, Y: 30}, got)

	got = Project(geom.Point{X: 5, Y: 5}, View{})
	assert.Equal(t, geom.Point{X: 5, Y: 5}, got, "zero zoom treated as 1")
}

func TestPanelWidthUsesLongestLine(t *testing.T) {
	m := &fakeRenderer{}
	assert.Equal(t, 120.0, PanelWidth(m, []string{"short"}, 11, 6, 120))
	assert.Equal(t, 252.0, PanelWidth(m, []string{"a", "0123456789012345678901234567890123456789"}, 11, 6, 120))
	assert.Equal(t, 120.0, PanelWidth(m, nil, 11, 6, 120))
}

func TestClampStaysBetweenBars(t *testing.T) {
	bars := HUDBars(320, 240, 20)

	r := Clamp(geom.Rect{X: -30, Y: 0, W: 100, H: 50}, 320, bars)
	assert.Equal(t, geom.Rect{X: 0, Y: 20, W: 100, H: 50}, r)

	r = Clamp(geom.Rect{X: 300, Y: 230, W: 100, H: 50}, 320, bars)
	assert.Equal(t, geom.Rect{X: 220, Y: 170, W: 100, H: 50}, r)

	r = Clamp(geom.Rect{X: 10, Y: 10, W: 500, H: 400}, 320, bars)
	assert.Equal(t, 0.0, r.X)
	assert.Equal(t, 320.0, r.W)
	assert.Equal(t, 20.0, r.Y, "tall panels pin below the top bar")
}

func TestAnchorAboveFlipsBelowNearTop(t *testing.T) {
	bars := HUDBars(320, 240, 20)

	r := AnchorAbove(geom.Point{X: 160, Y: 150}, 100, 40, 10, 320, bars)
	assert.Equal(t, geom.Rect{X: 110, Y: 100, W: 100, H: 40}, r)

	r = AnchorAbove(geom.Point{X: 160, Y: 40}, 100, 40, 10, 320, bars)
	assert.Equal(t, 50.0, r.Y)

	r = AnchorAbove(geom.Point{X: 5, Y: 150}, 100, 40, 10, 320, bars)
	assert.Equal(t, 0.0, r.X)
}

func TestClock(t *testing.T) {
	assert.Equal(t, "05:00", Clock(300))
	assert.Equal(t, "04:59", Clock(300-1.0/60))
	assert.Equal(t, "01:00", Clock(60.9))
	assert.Equal(t, "00:00", Clock(-4))
}

type harness struct {
	bus  *bus.Bus
	r    *fakeRenderer
	p    *Presenter
	view View
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	bundle, err := i18n.LoadEmbedded()
	require.NoError(t, err)

	h := &harness{bus: bus.New(), r: &fakeRenderer{}}
	h.view = View{Zoom: 2}
	ui := config.DefaultConfig().UI
	h.p = New(h.bus, h.r, bundle.NewLocalizer("en"), ui,
		func() (int, int) { return 640, 360 },
		func() View { return h.view })
	return h
}

func TestHUDUsesWindowSizeWhileViewportIsZero(t *testing.T) {
	h := newHarness(t)
	h.bus.Set(bus.KeyMoney, 3000)

	l := h.p.Layout()
	assert.Equal(t, 640.0, l.Width)
	assert.Equal(t, 360.0, l.Bars.Bottom.Bottom())
	assert.Equal(t, "Money $3,000 | Basket 0 items $0", l.Status)

	h.view.Width, h.view.Height = 1280, 720
	h.bus.Set(bus.KeyHint, "hello")
	l = h.p.Layout()
	assert.Equal(t, 1280.0, l.Width)
	assert.Equal(t, 720.0, l.Bars.Bottom.Bottom())
	assert.Equal(t, "hello", l.Hint)
}

func TestRelayoutOnBusChangeAndWhileModal(t *testing.T) {
	h := newHarness(t)
	h.p.Update()
	base := h.p.Relayed

	h.p.Update()
	assert.Equal(t, base, h.p.Relayed, "idle frames do not relayout")

	h.bus.Set(bus.KeyHint, "x")
	assert.Equal(t, base+1, h.p.Relayed)

	h.bus.Set(bus.KeyDialogue, &store.DialogueView{Speaker: "Mei", Text: "Welcome!", Continue: "(Press E to continue)"})
	n := h.p.Relayed
	h.p.Update()
	h.p.Update()
	assert.Equal(t, n+2, h.p.Relayed)

	h.p.Close()
	h.bus.Set(bus.KeyHint, "y")
	assert.Equal(t, n+2, h.p.Relayed)
}

func TestDialogueFollowsPlayer(t *testing.T) {
	h := newHarness(t)
	h.view = View{Zoom: 2, Width: 640, Height: 360}
	h.bus.Set(bus.KeyPlayerPos, geom.Point{X: 160, Y: 120})
	h.bus.Set(bus.KeyDialogue, &store.DialogueView{Speaker: "Mei", Text: "Welcome!", Continue: "(Press E to continue)"})

	first := h.p.Layout().Dialogue
	require.NotNil(t, first)
	assert.Less(t, first.Rect.Bottom(), 240.0, "panel sits above the projected player")

	// camera scroll without any bus write
	h.view.ScrollX = 40
	h.p.Update()
	moved := h.p.Layout().Dialogue
	assert.InDelta(t, first.Rect.X-80, moved.Rect.X, 0.001)

	bars := h.p.Layout().Bars
	assert.GreaterOrEqual(t, moved.Rect.Y, bars.Top.Bottom())
	assert.LessOrEqual(t, moved.Rect.Bottom(), bars.Bottom.Y)
}

func TestListingWidthTracksLongestRow(t *testing.T) {
	h := newHarness(t)
	h.view = View{Zoom: 1, Width: 640, Height: 360}
	long := "A very long product name that will not fit - $999"
	h.bus.Set(bus.KeyListing, &store.ListingView{Title: "Liquor", Rows: []string{"Gin - $80", long}, Selected: 1, Hint: "h"})

	listing := h.p.Layout().Listing
	require.NotNil(t, listing)
	want, _ := h.r.MeasureText("> "+long, 0)
	assert.GreaterOrEqual(t, listing.Rect.W, want)
}

func TestOverlayHiddenSuppressesAnchoredPanels(t *testing.T) {
	h := newHarness(t)
	h.bus.Set(bus.KeyListing, &store.ListingView{Rows: []string{"x"}})
	h.bus.Set(bus.KeyOverlayHidden, true)
	assert.Nil(t, h.p.Layout().Listing)
}

func TestBasketPanelCenteredAndDrawn(t *testing.T) {
	h := newHarness(t)
	h.view = View{Zoom: 1, Width: 640, Height: 360}
	h.bus.Set(bus.KeyBasketPanel, &basket.PanelView{Title: "Basket", Lines: []string{"Tea - $12", "Gin - $80"}, Selected: 1, Hint: "Esc"})

	panel := h.p.Layout().Basket
	require.NotNil(t, panel)
	assert.InDelta(t, 320.0, panel.Rect.X+panel.Rect.W/2, 0.001)

	h.r.texts = nil
	h.p.Draw(nil)
	assert.Contains(t, h.r.texts, "> Gin - $80")
	assert.Contains(t, h.r.texts, "  Tea - $12")
	assert.GreaterOrEqual(t, h.r.rects, 3)
}
