package game

import (
	"math"

	"chosenoffset.com/dutyfree/internal/geom"
)

// TileSize is the edge length of one map tile in world units
const TileSize = 16

// Tile kinds
const (
	TileWall = iota
	TileFloor
	TileDoor
)

// TileMap is a solid/walkable grid
type TileMap struct {
	Width, Height int
	tiles         []int
}

// NewTileMap creates a map filled with walls
func NewTileMap(w, h int) *TileMap {
	return &TileMap{Width: w, Height: h, tiles: make([]int, w*h)}
}

// Fill sets every tile in the inclusive tile rectangle to kind
func (m *TileMap) Fill(x0, y0, x1, y1, kind int) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			m.Set(x, y, kind)
		}
	}
}

// Set changes one tile; out-of-range writes are ignored
func (m *TileMap) Set(x, y, kind int) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return
	}
	m.tiles[y*m.Width+x] = kind
}

// At returns the tile kind; outside the map is wall
func (m *TileMap) At(x, y int) int {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return TileWall
	}
	return m.tiles[y*m.Width+x]
}

// Solid reports whether a tile blocks movement. Doors are drawn into walls and
// block like them.
func (m *TileMap) Solid(x, y int) bool {
	return m.At(x, y) != TileFloor
}

// Bounds returns the map extent in world units
func (m *TileMap) Bounds() geom.Rect {
	return geom.Rect{W: float64(m.Width * TileSize), H: float64(m.Height * TileSize)}
}

// Blocked reports whether a world-space box overlaps any solid tile
func (m *TileMap) Blocked(box geom.Rect) bool {
	x0 := int(math.Floor(box.X / TileSize))
	y0 := int(math.Floor(box.Y / TileSize))
	x1 := int(math.Ceil(box.Right()/TileSize)) - 1
	y1 := int(math.Ceil(box.Bottom()/TileSize)) - 1
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if m.Solid(x, y) {
				return true
			}
		}
	}
	return false
}

// TileCenter returns the world position of a tile's center
func TileCenter(x, y int) geom.Point {
	return geom.Point{X: float64(x*TileSize) + TileSize/2, Y: float64(y*TileSize) + TileSize/2}
}

// TileArea returns the world-space spawn area covering the inclusive tile
// rectangle, inset by margin on every side
func TileArea(x0, y0, x1, y1 int, margin float64) geom.Area {
	return geom.Area{
		XMin: float64(x0*TileSize) + margin,
		XMax: float64((x1+1)*TileSize) - margin,
		YMin: float64(y0*TileSize) + margin,
		YMax: float64((y1+1)*TileSize) - margin,
	}
}
