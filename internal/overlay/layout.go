package overlay

import (
	"math"

	"chosenoffset.com/dutyfree/internal/geom"
)

// Measurer reports the rendered size of a string
type Measurer interface {
	MeasureText(text string, size float64) (width, height float64)
}

// View is the camera state the overlay projects world anchors through
type View struct {
	ScrollX, ScrollY float64 // World coordinate at the viewport's top-left
	Zoom             float64
	Width, Height    float64 // Viewport size in screen pixels; zero while starting up
}

// Viewport returns the usable screen size: the view's own size, or the
// window size when the view still reports zero.
func Viewport(v View, windowW, windowH int) (w, h float64) {
	w, h = v.Width, v.Height
	if w <= 0 || h <= 0 {
		w, h = float64(windowW), float64(windowH)
	}
	return w, h
}

// Project maps a world position to screen space
func Project(world geom.Point, v View) geom.Point {
	zoom := v.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return geom.Point{
		X: (world.X - v.ScrollX) * zoom,
		Y: (world.Y - v.ScrollY) * zoom,
	}
}

// PanelWidth sizes a panel to its longest line plus padding, never below minW
func PanelWidth(m Measurer, lines []string, size, padding, minW float64) float64 {
	widest := 0.0
	for _, l := range lines {
		w, _ := m.MeasureText(l, size)
		widest = math.Max(widest, w)
	}
	return math.Max(minW, math.Ceil(widest+2*padding))
}

// Bars are the fixed HUD strips at the top and bottom of the viewport
type Bars struct {
	Top, Bottom geom.Rect
}

// HUDBars lays out the top and bottom strips for the viewport size
func HUDBars(vw, vh, height float64) Bars {
	return Bars{
		Top:    geom.Rect{X: 0, Y: 0, W: vw, H: height},
		Bottom: geom.Rect{X: 0, Y: vh - height, W: vw, H: height},
	}
}

// Clamp keeps r inside the viewport horizontally and between the HUD bars
// vertically. A panel taller than the free band is pinned below the top bar.
func Clamp(r geom.Rect, vw float64, bars Bars) geom.Rect {
	minY := bars.Top.Bottom()
	maxY := bars.Bottom.Y - r.H

	if r.W > vw {
		r.W = vw
	}
	if r.X+r.W > vw {
		r.X = vw - r.W
	}
	if r.X < 0 {
		r.X = 0
	}

	if r.Y > maxY {
		r.Y = maxY
	}
	if r.Y < minY {
		r.Y = minY
	}
	return r
}

// AnchorAbove places a w×h panel centered over anchor with gap pixels between
// them, flipping below the anchor when there is no room above, then clamps.
func AnchorAbove(anchor geom.Point, w, h, gap, vw float64, bars Bars) geom.Rect {
	r := geom.Rect{X: anchor.X - w/2, Y: anchor.Y - gap - h, W: w, H: h}
	if r.Y < bars.Top.Bottom() {
		r.Y = anchor.Y + gap
	}
	return Clamp(r, vw, bars)
}

// Centered places a w×h panel in the middle of the free band
func Centered(w, h, vw float64, bars Bars) geom.Rect {
	top := bars.Top.Bottom()
	band := bars.Bottom.Y - top
	r := geom.Rect{X: (vw - w) / 2, Y: top + (band-h)/2, W: w, H: h}
	return Clamp(r, vw, bars)
}
