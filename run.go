package scene2d

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	ShowFPS   bool

	// Reload, when set, delivers replacement configurations. Each one is
	// turned into a new render, populated by Populate and started. The old
	// render is stopped only once the new one started successfully.
	Reload <-chan *Config
	// Populate builds the composite for a reloaded render. Required with
	// Reload.
	Populate func(r *Render) (*Composite, error)
}

// game adapts a Render to ebiten.Game.
type game struct {
	r   *Render
	cfg RunConfig
}

func (g *game) Update() error {
	if g.cfg.Reload != nil {
		select {
		case cfg, ok := <-g.cfg.Reload:
			if !ok {
				g.cfg.Reload = nil
				break
			}
			if err := g.reload(cfg); err != nil {
				Logger().Warn("reload rejected", "err", err)
			}
		default:
		}
	}
	g.r.Update()
	return nil
}

// reload swaps in a render built from cfg.
func (g *game) reload(cfg *Config) error {
	if g.cfg.Populate == nil {
		return fmt.Errorf("reload: no Populate function")
	}
	next, err := NewRender(cfg)
	if err != nil {
		return err
	}
	c, err := g.cfg.Populate(next)
	if err != nil {
		return err
	}
	w, h := g.r.View().DeviceSize()
	next.Resize(w, h)
	if err := next.Start(c); err != nil {
		return err
	}
	g.r.Stop()
	g.r.hostInput = false
	next.hostInput = true
	g.r = next
	Logger().Info("render reloaded", "adaptors", len(next.AdaptorIDs()))
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.r.Draw(screen)
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

// Layout reports size changes to the render as resize events.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.r.Resize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

// Run opens a window and drives r with ebiten's game loop until the window
// is closed. The render must already be started.
func Run(r *Render, cfg RunConfig) error {
	if !r.Started() {
		return ErrNotStarted
	}
	if cfg.Width <= 0 {
		cfg.Width = 800
	}
	if cfg.Height <= 0 {
		cfg.Height = 600
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	r.hostInput = true
	r.Resize(float64(cfg.Width), float64(cfg.Height))
	g := &game{r: r, cfg: cfg}
	defer func() { g.r.hostInput = false }()
	return ebiten.RunGame(g)
}
