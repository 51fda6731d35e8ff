package scene2d

import (
	"errors"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

func init() {
	RegisterAdaptorType("Grid", func() Adaptor { return &Grid{} })
}

var errGridSpacing = errors.New("grid spacing must be positive")

// maxGridLines bounds the lines drawn per axis when zoomed far out.
const maxGridLines = 512

// gridConfig is the type-specific configuration of a Grid.
type gridConfig struct {
	XSpacing  float64 `yaml:"xSpacing"`
	YSpacing  float64 `yaml:"ySpacing"`
	Color     string  `yaml:"color"`
	LineWidth float64 `yaml:"lineWidth"`
}

// Grid draws evenly spaced scene-space lines over the visible area. It is
// usually bound to a viewport object.
type Grid struct {
	AdaptorBase
	cfg   gridConfig
	color Color

	xs, ys []float64 // cached line positions in scene space
	dirty  bool
}

func (g *Grid) Configure(cfg AdaptorConfig) error {
	if err := g.AdaptorBase.Configure(cfg); err != nil {
		return err
	}
	g.cfg = gridConfig{XSpacing: 10, YSpacing: 10, Color: "#808080", LineWidth: 1}
	if err := cfg.Decode(&g.cfg); err != nil {
		return err
	}
	if g.cfg.XSpacing <= 0 || g.cfg.YSpacing <= 0 {
		return configErr("adaptor", cfg.ID, errGridSpacing)
	}
	c, err := ParseColor(g.cfg.Color)
	if err != nil {
		return configErr("adaptor", cfg.ID, err)
	}
	g.color = c
	return nil
}

func (g *Grid) Start() error {
	g.dirty = true
	return nil
}

func (g *Grid) Update() { g.dirty = true }

func (g *Grid) Swap() { g.dirty = true }

func (g *Grid) Stop() {
	g.xs, g.ys = nil, nil
}

func (g *Grid) Slots() map[string]Slot {
	return map[string]Slot{SlotUpdate: func(...any) { g.Update() }}
}

// ProcessResize marks the line cache stale.
func (g *Grid) ProcessResize(*Event) { g.dirty = true }

// Lines returns the scene-space positions of the vertical and horizontal
// lines for the current visible area.
func (g *Grid) Lines() (xs, ys []float64) {
	g.recompute()
	return g.xs, g.ys
}

func (g *Grid) recompute() {
	r := g.Render()
	if r == nil {
		return
	}
	vis := r.View().VisibleBounds()
	g.xs = gridPositions(g.xs[:0], vis.X, vis.X+vis.Width, g.cfg.XSpacing)
	g.ys = gridPositions(g.ys[:0], vis.Y, vis.Y+vis.Height, g.cfg.YSpacing)
	g.dirty = false
}

// gridPositions appends the multiples of step within [lo, hi].
func gridPositions(buf []float64, lo, hi, step float64) []float64 {
	start := math.Ceil(lo/step) * step
	for v := start; v <= hi && len(buf) < maxGridLines; v += step {
		buf = append(buf, v)
	}
	return buf
}

func (g *Grid) Draw(dst *ebiten.Image, v *View) {
	if g.dirty {
		g.recompute()
	}
	vis := v.VisibleBounds()
	clr := g.color.WithAlpha(g.Opacity).toRGBA()
	aa := g.Render().Antialiasing()
	w := float32(g.cfg.LineWidth)
	for _, x := range g.xs {
		p0 := v.SceneToDevice(Vec2{X: x, Y: vis.Y})
		p1 := v.SceneToDevice(Vec2{X: x, Y: vis.Y + vis.Height})
		vector.StrokeLine(dst, float32(p0.X), float32(p0.Y), float32(p1.X), float32(p1.Y), w, clr, aa)
	}
	for _, y := range g.ys {
		p0 := v.SceneToDevice(Vec2{X: vis.X, Y: y})
		p1 := v.SceneToDevice(Vec2{X: vis.X + vis.Width, Y: y})
		vector.StrokeLine(dst, float32(p0.X), float32(p0.Y), float32(p1.X), float32(p1.Y), w, clr, aa)
	}
}
