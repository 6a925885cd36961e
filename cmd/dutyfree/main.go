package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"chosenoffset.com/dutyfree/internal/basket"
	"chosenoffset.com/dutyfree/internal/bus"
	"chosenoffset.com/dutyfree/internal/catalog"
	"chosenoffset.com/dutyfree/internal/config"
	"chosenoffset.com/dutyfree/internal/game"
	"chosenoffset.com/dutyfree/internal/i18n"
	"chosenoffset.com/dutyfree/internal/identity"
	"chosenoffset.com/dutyfree/internal/metrics"
	ebitenrender "chosenoffset.com/dutyfree/internal/render/ebiten"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

// run owns every deferred cleanup so main can exit with a status afterwards
func run(args []string) error {
	fs := flag.NewFlagSet("dutyfree", flag.ContinueOnError)
	configPath := fs.String("config", "dutyfree.yaml", "path to the simulation config")
	locale := fs.String("locale", "", "override the configured locale (e.g. en, zh-Hant)")
	seed := fs.Int64("seed", 0, "crowd RNG seed; 0 uses the clock")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *locale != "" {
		cfg.Locale = *locale
	}

	bundle, err := i18n.LoadEmbedded()
	if err != nil {
		return fmt.Errorf("load translations: %w", err)
	}
	loc := bundle.NewLocalizer(bundle.Match(cfg.Locale))
	log.Printf("Using locale %s", loc.Locale())

	cat, err := catalog.LoadEmbedded()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	ids, err := identity.LoadEmbedded()
	if err != nil {
		return fmt.Errorf("load identities: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := metrics.New()
	if cfg.MetricsAddr != "" {
		go func() {
			if err := m.Serve(ctx, cfg.MetricsAddr); err != nil {
				log.Printf("Warning: metrics listener stopped: %v", err)
			}
		}()
	}

	// Initialize the renderer backend (ebiten)
	renderer, err := ebitenrender.NewRenderer(cfg.UI.FontPath)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	engine := ebitenrender.NewEngine()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	b := bus.New()
	deps := &game.Deps{
		Config:     cfg,
		Bus:        b,
		Loc:        loc,
		Catalog:    cat,
		Identities: ids,
		Metrics:    m,
		Renderer:   renderer,
		Input:      ebitenrender.NewInputManager(),
		Rand:       rand.New(rand.NewSource(*seed)),
		Wallet:     basket.New(b, cfg.StartingMoney),
	}

	manager := game.NewManager(ctx, deps, engine)
	defer manager.Close()

	// Set up the window
	engine.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	engine.SetWindowTitle(cfg.Window.Title)
	engine.SetWindowResizable(true)

	log.Println("Starting simulation...")
	if err := engine.RunGame(manager); err != nil {
		return fmt.Errorf("run simulation: %w", err)
	}
	log.Println("Simulation stopped")
	return nil
}
