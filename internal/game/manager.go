package game

import (
	"context"
	"log"
	"math"
	"time"

	"chosenoffset.com/dutyfree/internal/bus"
	"chosenoffset.com/dutyfree/internal/overlay"
	"chosenoffset.com/dutyfree/internal/render"
	"chosenoffset.com/dutyfree/internal/store"
)

// Manager owns the scenes, the camera and the overlay, and switches between
// the concourse and store interiors.
type Manager struct {
	ScreenWidth  int
	ScreenHeight int
	State        State

	Deps      *Deps
	Engine    render.Engine // optional, supplies the window size before Layout
	Camera    Camera
	Overlay   *overlay.Presenter
	Store     *store.Controller
	Concourse *Concourse
	Room      *StoreScene // nil outside a store

	ctx       context.Context
	now       time.Duration
	remaining float64

	worldImg render.Image
}

// NewManager builds the concourse and wires store entry and exit
func NewManager(ctx context.Context, deps *Deps, engine render.Engine) *Manager {
	cfg := deps.Config
	m := &Manager{
		State:     StateConcourse,
		Deps:      deps,
		Engine:    engine,
		ctx:       ctx,
		remaining: cfg.BoardingSeconds,
		Camera: Camera{
			Zoom:    cfg.Scale.PreferredZoom,
			MinZoom: cfg.Scale.MinZoom,
			MaxZoom: cfg.Scale.MaxZoom,
		},
	}
	deps.Bus.Set(bus.KeyTimeRemaining, m.remaining)

	m.Overlay = overlay.New(deps.Bus, deps.Renderer, deps.Loc, cfg.UI, m.windowSize, func() overlay.View {
		return m.Camera.View(m.ScreenWidth, m.ScreenHeight)
	})

	m.Store = store.NewController(deps.Bus, deps.Wallet, deps.Catalog, deps.Loc, deps.Metrics)
	m.Store.OnLeave = m.leaveStore

	m.Concourse = NewConcourse(ctx, deps)
	m.Concourse.OnEnter = m.enterStore
	return m
}

func (m *Manager) windowSize() (int, int) {
	if m.Engine != nil {
		return m.Engine.WindowSize()
	}
	return m.Deps.Config.Window.Width, m.Deps.Config.Window.Height
}

// screenSize is the logical screen, or the window until Layout has run
func (m *Manager) screenSize() (int, int) {
	if m.ScreenWidth > 0 && m.ScreenHeight > 0 {
		return m.ScreenWidth, m.ScreenHeight
	}
	return m.windowSize()
}

// Scene returns the active scene
func (m *Manager) Scene() Scene {
	if m.State == StateStore && m.Room != nil {
		return m.Room
	}
	return m.Concourse
}

func (m *Manager) enterStore(storeID string) {
	log.Printf("Entering store %s", storeID)
	m.Deps.Bus.Set(bus.KeyOverlayHidden, true)
	m.Room = NewStoreScene(m.ctx, m.Deps, m.Store, storeID)
	m.State = StateStore
}

func (m *Manager) leaveStore(storeID string) {
	log.Printf("Leaving store %s", storeID)
	m.Deps.Bus.Set(bus.KeyOverlayHidden, true)
	if m.Room != nil {
		m.Room.Teardown()
		m.Room = nil
	}
	m.State = StateConcourse
	m.Concourse.Resume()
}

// Update advances one tick. It returns render.ErrTerminate once ctx is done.
func (m *Manager) Update() error {
	if err := m.ctx.Err(); err != nil {
		log.Printf("Stopping: %v", err)
		return render.ErrTerminate
	}
	dt := 1.0 / TickRate
	m.now += time.Second / TickRate

	in := m.Deps.Input
	switch {
	case in.IsKeyJustPressed(render.KeyMinus):
		m.Camera.SetZoom(m.Camera.Zoom - 1)
	case in.IsKeyJustPressed(render.KeyEqual):
		m.Camera.SetZoom(m.Camera.Zoom + 1)
	}

	m.tickCountdown(dt)

	m.Scene().Update(m.now, dt, m.Camera.Zoom)

	w, h := m.screenSize()
	scene := m.Scene()
	m.Camera.Follow(scene.Focus(), w, h, scene.Bounds())
	m.Overlay.Update()
	return nil
}

// tickCountdown publishes the boarding clock when its displayed second changes
func (m *Manager) tickCountdown(dt float64) {
	if m.remaining <= 0 {
		return
	}
	prev := m.remaining
	m.remaining = math.Max(0, m.remaining-dt)
	if math.Floor(prev) != math.Floor(m.remaining) || m.remaining == 0 {
		m.Deps.Bus.Set(bus.KeyTimeRemaining, m.remaining)
	}
}

// Remaining returns the seconds left before boarding
func (m *Manager) Remaining() float64 {
	return m.remaining
}

// Layout handles window resize.
func (m *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != m.ScreenWidth || outsideHeight != m.ScreenHeight {
		m.ScreenWidth = outsideWidth
		m.ScreenHeight = outsideHeight
		m.Overlay.Refresh()
	}
	return outsideWidth, outsideHeight
}

// Close tears down both scenes and detaches the overlay
func (m *Manager) Close() {
	if m.Room != nil {
		m.Room.Teardown()
		m.Room = nil
	}
	m.Concourse.Teardown()
	m.Overlay.Close()
	if m.worldImg != nil {
		m.worldImg.Dispose()
		m.worldImg = nil
	}
}
