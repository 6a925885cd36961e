package game

import (
	"context"
	"log"
	"math"
	"time"

	"chosenoffset.com/dutyfree/internal/actor"
	"chosenoffset.com/dutyfree/internal/basket"
	"chosenoffset.com/dutyfree/internal/bus"
	"chosenoffset.com/dutyfree/internal/crowd"
	"chosenoffset.com/dutyfree/internal/geom"
	"chosenoffset.com/dutyfree/internal/i18n"
	"chosenoffset.com/dutyfree/internal/identity"
	"chosenoffset.com/dutyfree/internal/nameplate"
	"chosenoffset.com/dutyfree/internal/physics"
	"chosenoffset.com/dutyfree/internal/render"
)

// Concourse layout in tiles. Corridor A runs along the top, corridor B along
// the bottom, and the main hall sits between them joined by two stems.
const (
	concourseW = 60
	concourseH = 40

	corridorAY0, corridorAY1 = 2, 7
	corridorBY0, corridorBY1 = 32, 37
	corridorX0, corridorX1   = 2, 57
	hallX0, hallX1           = 18, 41
	hallY0, hallY1           = 14, 25
	stemX0, stemX1           = 28, 31

	doorRowA = corridorAY0 - 1
	doorRowB = corridorBY1 + 1
)

var (
	doorColumns  = []int{8, 18, 28, 38, 48}
	corridorAIDs = []string{"cosmetics", "liquor", "snacks", "electronics", "fashion"}
	corridorBIDs = []string{"books", "tobacco", "perfume", "souvenirs", "food"}
)

// Zone kinds written to bus.KeyLocationType
const (
	ZoneA    = "concourse-A"
	ZoneHall = "concourse"
	ZoneB    = "concourse-B"
)

// Door is a store entrance in a corridor wall
type Door struct {
	StoreID string
	Pos     geom.Point
	Label   string
}

// WorldLabel is text drawn in world space with its bottom center at Pos
type WorldLabel struct {
	Text     string
	Pos      geom.Point
	FontSize float64
}

// Concourse is the walkable airport scene
type Concourse struct {
	deps *Deps

	Map    *TileMap
	World  *physics.World
	Player *Player
	Doors  []Door
	Crowds []*crowd.Crowd
	Plates *nameplate.Projector
	Basket *basket.Panel

	// DoorLabels are the labels of doors near the player this frame
	DoorLabels []WorldLabel

	travelers *identity.Pending[[]actor.Identity]
	spawned   bool

	// OnEnter is called when the player walks into a store
	OnEnter func(storeID string)
}

// NewConcourse builds the concourse and starts the traveler lookup. Crowds
// spawn on the first tick after the lookup completes.
func NewConcourse(ctx context.Context, deps *Deps) *Concourse {
	c := &Concourse{
		deps:   deps,
		Map:    buildConcourseMap(),
		Plates: nameplate.NewProjector(deps.Config.UI.FontSize, deps.Config.UI.MinFontSize),
		Basket: basket.NewPanel(deps.Wallet, deps.Loc),
	}
	c.World = physics.NewWorld(c.Map.Bounds())
	c.World.Blocked = c.Map.Blocked

	c.Player = newPlayer(c.World, TileCenter((hallX0+hallX1)/2, (hallY0+hallY1)/2))

	for i, col := range doorColumns {
		c.Doors = append(c.Doors,
			c.newDoor(corridorAIDs[i], col, doorRowA),
			c.newDoor(corridorBIDs[i], col, doorRowB),
		)
	}

	c.travelers = identity.Start(ctx, deps.Identities.Travelers)
	c.Resume()
	return c
}

func (c *Concourse) newDoor(storeID string, col, row int) Door {
	c.Map.Set(col, row, TileDoor)
	if _, err := c.deps.Catalog.Lookup(storeID); err != nil {
		log.Printf("Warning: door %s has no stock: %v", storeID, err)
	}
	return Door{
		StoreID: storeID,
		Pos:     TileCenter(col, row),
		Label:   c.deps.Loc.T("store.title."+storeID, nil),
	}
}

func buildConcourseMap() *TileMap {
	m := NewTileMap(concourseW, concourseH)
	m.Fill(corridorX0, corridorAY0, corridorX1, corridorAY1, TileFloor)
	m.Fill(corridorX0, corridorBY0, corridorX1, corridorBY1, TileFloor)
	m.Fill(hallX0, hallY0, hallX1, hallY1, TileFloor)
	m.Fill(stemX0, corridorAY1+1, stemX1, hallY0-1, TileFloor)
	m.Fill(stemX0, hallY1+1, stemX1, corridorBY0-1, TileFloor)
	return m
}

// Bounds returns the world extent
func (c *Concourse) Bounds() geom.Rect {
	return c.Map.Bounds()
}

// Focus returns the camera target
func (c *Concourse) Focus() geom.Point {
	return c.Player.Pos()
}

// Resume republishes the concourse location after returning from a store
func (c *Concourse) Resume() {
	c.Player.Body.SetVelocity(0, 0)
	c.publishLocation()
	c.deps.Bus.Set(bus.KeyMovementLocked, c.Basket.IsOpen())
	c.deps.Bus.Set(bus.KeyOverlayHidden, false)
}

// ZoneAt classifies a world position into a concourse zone
func ZoneAt(p geom.Point) string {
	switch {
	case p.Y < float64((corridorAY1+1)*TileSize):
		return ZoneA
	case p.Y >= float64(corridorBY0*TileSize):
		return ZoneB
	default:
		return ZoneHall
	}
}

func (c *Concourse) publishLocation() {
	zone := ZoneAt(c.Player.Pos())
	if c.deps.Bus.GetString(bus.KeyLocationType) == zone {
		return
	}
	key := map[string]string{
		ZoneA:    "concourse.zoneA",
		ZoneB:    "concourse.zoneB",
		ZoneHall: "concourse.hall",
	}[zone]
	c.deps.Bus.Set(bus.KeyLocationType, zone)
	c.deps.Bus.Set(bus.KeyLocation, c.deps.Loc.T(key, nil))
}

// Actors returns every crowd member
func (c *Concourse) Actors() []*actor.Actor {
	var out []*actor.Actor
	for _, cr := range c.Crowds {
		out = append(out, cr.Actors()...)
	}
	return out
}

func (c *Concourse) spawnCrowds(now time.Duration) {
	list, done, err := c.travelers.Poll()
	if !done {
		return
	}
	c.spawned = true
	if err != nil {
		log.Printf("Warning: traveler lookup failed, concourse stays empty: %v", err)
		return
	}

	cfg := c.deps.Config.Crowd
	policy := crowd.PolicyFromConfig(cfg)
	pool := crowd.NewPool(list, c.deps.Rand)
	areas := []struct {
		name  string
		count int
		area  geom.Area
	}{
		{"hall", cfg.HallCount, TileArea(hallX0, hallY0, hallX1, hallY1, 8)},
		{"A", cfg.ACount, TileArea(corridorX0, corridorAY0, corridorX1, corridorAY1, 8)},
		{"B", cfg.BCount, TileArea(corridorX0, corridorBY0, corridorX1, corridorBY1, 8)},
	}
	for _, a := range areas {
		opts := crowd.DefaultOptions(a.name)
		opts.Bounce = cfg.Bounce
		opts.CollideWith = []physics.Collider{c.Player.Body}
		cr := crowd.Spawn(c.World, a.count, a.area, pool, now, policy, c.deps.Rand, opts)
		c.Crowds = append(c.Crowds, cr)
		c.deps.Metrics.CrowdChanged(cr.Len())
	}
}

// Update advances the concourse by one tick
func (c *Concourse) Update(now time.Duration, dt, zoom float64) {
	if !c.spawned {
		c.spawnCrowds(now)
	}

	in := c.deps.Input
	if c.Basket.IsOpen() {
		c.updateBasket(in)
	} else if in.IsKeyJustPressed(render.KeyEscape) {
		c.Basket.Open()
	}

	c.Player.Drive(in, c.deps.Config.Controls, c.deps.Bus.GetBool(bus.KeyMovementLocked))
	c.World.Step(dt)
	for _, cr := range c.Crowds {
		cr.Tick(now)
	}
	c.Player.Sync()

	c.deps.Bus.Set(bus.KeyPlayerPos, c.Player.Pos())
	c.publishLocation()

	cfg := c.deps.Config.Crowd
	c.Plates.Update(c.Actors(), c.Player.Pos(), cfg.NameplateDistance, cfg.NameplateOffset, zoom)
	c.updateDoors(in, zoom)
}

func (c *Concourse) updateBasket(in render.InputManager) {
	switch {
	case in.IsKeyJustPressed(render.KeyEscape):
		c.Basket.Close()
	case in.IsKeyJustPressed(render.KeyUp) || in.IsKeyJustPressed(render.KeyW):
		c.Basket.Move(-1)
	case in.IsKeyJustPressed(render.KeyDown) || in.IsKeyJustPressed(render.KeyS):
		c.Basket.Move(1)
	case interactPressed(in):
		c.Basket.RemoveSelected()
	}
}

// NearestDoor returns the closest door within radius of p
func (c *Concourse) NearestDoor(p geom.Point, radius float64) (Door, bool) {
	best, bestDist := Door{}, math.Inf(1)
	for _, d := range c.Doors {
		if dist := d.Pos.Dist(p); dist <= radius && dist < bestDist {
			best, bestDist = d, dist
		}
	}
	return best, !math.IsInf(bestDist, 1)
}

func (c *Concourse) updateDoors(in render.InputManager, zoom float64) {
	ui := c.deps.Config.UI
	store := c.deps.Config.Store
	pos := c.Player.Pos()
	fs := nameplate.FontSize(ui.FontSize, ui.MinFontSize, zoom)

	c.DoorLabels = c.DoorLabels[:0]
	for _, d := range c.Doors {
		if d.Pos.Dist(pos) <= store.DoorLabelRange {
			c.DoorLabels = append(c.DoorLabels, WorldLabel{
				Text:     d.Label,
				Pos:      geom.Point{X: d.Pos.X, Y: d.Pos.Y - 6},
				FontSize: fs,
			})
		}
	}

	if c.Basket.IsOpen() {
		c.deps.Bus.Set(bus.KeyHint, c.deps.Loc.T("ui.basketHint", nil))
		return
	}

	door, ok := c.NearestDoor(pos, store.DoorRadius)
	if !ok {
		c.setHint(c.deps.Loc.T("concourse.hintMoveEnter", nil) + " | " + c.deps.Loc.T("concourse.hintBasket", nil))
		return
	}
	c.setHint(door.Label + " | " + c.deps.Loc.T("concourse.hintEnter", nil) + " | " + c.deps.Loc.T("concourse.hintBasket", nil))
	if interactPressed(in) && c.OnEnter != nil {
		c.Player.Body.SetVelocity(0, 0)
		c.OnEnter(door.StoreID)
	}
}

func (c *Concourse) setHint(h string) {
	if c.deps.Bus.GetString(bus.KeyHint) != h {
		c.deps.Bus.Set(bus.KeyHint, h)
	}
}

// Signs returns the fixed zone signs
func (c *Concourse) Signs(loc *i18n.Localizer) []WorldLabel {
	mid := float64(concourseW*TileSize) / 2
	return []WorldLabel{
		{Text: loc.T("concourse.zoneA", nil), Pos: geom.Point{X: mid, Y: float64(corridorAY1*TileSize) + 12}, FontSize: 10},
		{Text: loc.T("concourse.sign", nil), Pos: geom.Point{X: mid, Y: float64(hallY0*TileSize) + 14}, FontSize: 12},
		{Text: loc.T("concourse.zoneB", nil), Pos: geom.Point{X: mid, Y: float64(corridorBY0*TileSize) + 14}, FontSize: 10},
	}
}

// Teardown removes every crowd and cancels a pending lookup
func (c *Concourse) Teardown() {
	c.travelers.Cancel()
	for _, cr := range c.Crowds {
		c.deps.Metrics.CrowdChanged(-cr.Teardown())
	}
	c.Crowds = nil
	c.Plates.Clear()
}
