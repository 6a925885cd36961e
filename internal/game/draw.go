package game

import (
	"image/color"
	"strings"

	"chosenoffset.com/dutyfree/internal/actor"
	"chosenoffset.com/dutyfree/internal/geom"
	"chosenoffset.com/dutyfree/internal/render"
)

var (
	backgroundColor = color.RGBA{12, 14, 20, 255}
	floorColor      = color.RGBA{58, 62, 74, 255}
	wallColor       = color.RGBA{28, 30, 38, 255}
	doorColor       = color.RGBA{190, 150, 70, 255}
	counterColor    = color.RGBA{120, 84, 52, 255}
	labelColor      = color.RGBA{240, 240, 240, 255}
	signColor       = color.RGBA{255, 220, 120, 255}
	facingColor     = color.RGBA{20, 20, 20, 255}
)

// visual is the placeholder look of one animation family
type visual struct {
	body   color.RGBA
	radius float32
}

// visuals is keyed by animation key prefix. Lookups drop trailing key
// segments until a match, ending at the generic traveler.
var visuals = map[string]visual{
	"npc-m":  {body: color.RGBA{90, 140, 220, 255}, radius: 5},
	"npc-f":  {body: color.RGBA{220, 110, 150, 255}, radius: 5},
	"npc-o":  {body: color.RGBA{150, 150, 150, 255}, radius: 5},
	"clerk":  {body: color.RGBA{110, 200, 120, 255}, radius: 5},
	"player": {body: color.RGBA{250, 210, 80, 255}, radius: 6},
}

const fallbackVisual = "npc-o"

func lookupVisual(key string) visual {
	for k := key; k != ""; {
		if v, ok := visuals[k]; ok {
			return v
		}
		i := strings.LastIndex(k, "-")
		if i < 0 {
			break
		}
		k = k[:i]
	}
	return visuals[fallbackVisual]
}

// visualPrefix names the animation family of an actor
func visualPrefix(a *actor.Actor) string {
	switch a.Kind {
	case actor.KindPlayer:
		return "player"
	case actor.KindClerk:
		return "clerk"
	}
	if a.Identity == nil {
		return fallbackVisual
	}
	return "npc-" + strings.ToLower(string(a.Identity.Gender))
}

// Draw renders the active scene into a world-sized image, then scales it onto
// the screen through the camera and draws the overlay on top.
func (m *Manager) Draw(screen render.Image) {
	scene := m.Scene()
	b := scene.Bounds()
	w, h := int(b.W), int(b.H)
	if m.worldImg == nil || needsResize(m.worldImg, w, h) {
		if m.worldImg != nil {
			m.worldImg.Dispose()
		}
		m.worldImg = m.Deps.Renderer.NewImage(w, h)
	}

	m.worldImg.Fill(backgroundColor)
	if m.State == StateStore && m.Room != nil {
		m.drawStore(m.worldImg, m.Room)
	} else {
		m.drawConcourse(m.worldImg, m.Concourse)
	}

	screen.Fill(backgroundColor)
	opts := &render.DrawImageOptions{GeoM: render.NewGeoM()}
	opts.GeoM.Translate(-m.Camera.X, -m.Camera.Y)
	opts.GeoM.Scale(m.Camera.Zoom, m.Camera.Zoom)
	screen.DrawImage(m.worldImg, opts)

	m.Overlay.Draw(screen)
}

func needsResize(img render.Image, w, h int) bool {
	bounds := img.Bounds()
	return bounds.Dx() != w || bounds.Dy() != h
}

func (m *Manager) drawConcourse(dst render.Image, c *Concourse) {
	m.drawTiles(dst, c.Map)
	for _, a := range c.Actors() {
		m.drawActor(dst, a)
	}
	m.drawActor(dst, c.Player.Actor)

	for _, p := range c.Plates.Visible() {
		m.drawLabel(dst, WorldLabel{Text: p.Text, Pos: p.Pos, FontSize: p.FontSize}, labelColor)
	}
	for _, l := range c.DoorLabels {
		m.drawLabel(dst, l, labelColor)
	}
	for _, l := range c.Signs(m.Deps.Loc) {
		m.drawLabel(dst, l, signColor)
	}
}

func (m *Manager) drawStore(dst render.Image, s *StoreScene) {
	m.drawTiles(dst, s.Map)
	box := s.Counter.Box()
	m.Deps.Renderer.FillRect(dst, float32(box.X), float32(box.Y), float32(box.W), float32(box.H), counterColor)
	for _, a := range s.Actors() {
		m.drawActor(dst, a)
	}
	m.drawActor(dst, s.Player.Actor)
}

func (m *Manager) drawTiles(dst render.Image, tm *TileMap) {
	r := m.Deps.Renderer
	for y := 0; y < tm.Height; y++ {
		for x := 0; x < tm.Width; x++ {
			clr := wallColor
			switch tm.At(x, y) {
			case TileFloor:
				clr = floorColor
			case TileDoor:
				clr = doorColor
			}
			r.FillRect(dst, float32(x*TileSize), float32(y*TileSize), TileSize, TileSize, clr)
		}
	}
}

func (m *Manager) drawActor(dst render.Image, a *actor.Actor) {
	r := m.Deps.Renderer
	v := lookupVisual(a.AnimationKey(visualPrefix(a)))
	x, y := float32(a.Pos.X), float32(a.Pos.Y)
	r.FillCircle(dst, x, y, v.radius, v.body)

	// Facing tick
	dx, dy := float32(0), v.radius-1
	switch a.Facing {
	case actor.FacingUp:
		dy = -dy
	case actor.FacingSide:
		dx, dy = v.radius-1, 0
		if a.FlipX {
			dx = -dx
		}
	}
	r.FillCircle(dst, x+dx, y+dy, 1.5, facingColor)
}

// drawLabel draws text with its bottom center at the label position
func (m *Manager) drawLabel(dst render.Image, l WorldLabel, clr color.Color) {
	w, h := m.Deps.Renderer.MeasureText(l.Text, l.FontSize)
	pos := geom.Point{X: l.Pos.X - w/2, Y: l.Pos.Y - h}
	m.Deps.Renderer.DrawText(dst, l.Text, pos.X, pos.Y, l.FontSize, clr)
}
