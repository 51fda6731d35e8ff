package scene2d

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

func init() {
	RegisterAdaptorType("Curve", func() Adaptor { return &Curve{} })
}

type curveConfig struct {
	Radius    float64 `yaml:"radius"`
	LineWidth float64 `yaml:"lineWidth"`
	Color     string  `yaml:"color"`
	// Removable disables point removal with the right button when false.
	Removable *bool `yaml:"removable"`
	MinPoints int   `yaml:"minPoints"`
	// Translatable disables the middle-button drag of the whole curve when false.
	Translatable *bool   `yaml:"translatable"`
	WheelStep    float64 `yaml:"wheelStep"`
	LinearKey    string  `yaml:"linearKey"`
	ClampKey     string  `yaml:"clampKey"`
}

// Curve draws a PointList as a polyline through its axes and lets the user
// edit it: left press picks a point, dragging moves it, a double click adds
// one, and a right press removes one. A middle drag on the curve shifts every
// point along X and the wheel over it scales every Y value by WheelStep,
// keeping the applied values in [0, 1]. The linear and clamp keys toggle the
// list's interpolation and clamping. The list's modified signal is emitted
// after every edit.
type Curve struct {
	AdaptorBase
	cfg     curveConfig
	color   Color
	list    *PointList
	linearK ebiten.Key
	clampK  ebiten.Key

	captured    int // index of the point being dragged, -1 when idle
	translating bool
	last        Vec2 // data position of the previous translate event

	// unclamped Y values accumulated by wheel scaling
	raw []float64
}

func (c *Curve) Configure(cfg AdaptorConfig) error {
	if err := c.AdaptorBase.Configure(cfg); err != nil {
		return err
	}
	c.cfg = curveConfig{Radius: 6, LineWidth: 2, Color: "#ffffff", MinPoints: 2, WheelStep: 0.05}
	if err := cfg.Decode(&c.cfg); err != nil {
		return err
	}
	clr, err := ParseColor(c.cfg.Color)
	if err != nil {
		return configErr("adaptor", cfg.ID, err)
	}
	c.color = clr
	c.linearK, c.clampK = ebiten.KeyL, ebiten.KeyC
	if c.cfg.LinearKey != "" {
		if err := c.linearK.UnmarshalText([]byte(c.cfg.LinearKey)); err != nil {
			return configErr("adaptor", cfg.ID, fmt.Errorf("linearKey: %w", err))
		}
	}
	if c.cfg.ClampKey != "" {
		if err := c.clampK.UnmarshalText([]byte(c.cfg.ClampKey)); err != nil {
			return configErr("adaptor", cfg.ID, fmt.Errorf("clampKey: %w", err))
		}
	}
	c.captured = -1
	return nil
}

func (c *Curve) Start() error {
	l, ok := c.Object().(*PointList)
	if !ok {
		return fmt.Errorf("curve %q: object is %T, want *PointList", c.ID, c.Object())
	}
	c.list = l
	return nil
}

func (c *Curve) Update() {}

// Swap rebinds to the new list. Any other object leaves the curve inert
// until it is swapped back to a *PointList.
func (c *Curve) Swap() {
	c.reset()
	l, ok := c.Object().(*PointList)
	if !ok {
		Logger().Warn("curve swapped to a non point list object",
			"adaptor", c.ID, "object", fmt.Sprintf("%T", c.Object()))
		c.list = nil
		return
	}
	c.list = l
}

func (c *Curve) Stop() {
	c.reset()
	c.list = nil
}

func (c *Curve) reset() {
	c.captured = -1
	c.translating = false
	c.raw = nil
}

func (c *Curve) Slots() map[string]Slot {
	return map[string]Slot{SlotUpdate: func(...any) { c.Update() }}
}

// pick returns the index of the point within Radius device pixels of p, or
// -1. The last point wins when points overlap.
func (c *Curve) pick(p Vec2) int {
	r := c.Render()
	best, bestD := -1, math.Inf(1)
	for i := 0; i < c.list.Len(); i++ {
		d := r.SceneToDevice(c.MapAdaptorToScene(c.list.At(i)))
		dist := math.Hypot(d.X-p.X, d.Y-p.Y)
		if dist <= c.cfg.Radius && dist <= bestD {
			best, bestD = i, dist
		}
	}
	return best
}

// onCurve reports whether p is within Radius device pixels of a point or of
// a segment between two points.
func (c *Curve) onCurve(p Vec2) bool {
	if c.pick(p) >= 0 {
		return true
	}
	r := c.Render()
	for i := 1; i < c.list.Len(); i++ {
		a := r.SceneToDevice(c.MapAdaptorToScene(c.list.At(i - 1)))
		b := r.SceneToDevice(c.MapAdaptorToScene(c.list.At(i)))
		if segmentDist(p, a, b) <= c.cfg.Radius {
			return true
		}
	}
	return false
}

func segmentDist(p, a, b Vec2) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	t := 0.0
	if l2 > 0 {
		t = math.Max(0, math.Min(1, ((p.X-a.X)*dx+(p.Y-a.Y)*dy)/l2))
	}
	return math.Hypot(p.X-(a.X+t*dx), p.Y-(a.Y+t*dy))
}

// scale multiplies every Y value by 1+step. The unclamped values are kept
// between calls so scaling back restores values that were clamped to 1.
// Returns false when no value can change.
func (c *Curve) scale(step float64) bool {
	n := c.list.Len()
	if len(c.raw) != n {
		c.raw = nil
	}
	for i := 0; c.raw != nil && i < n; i++ {
		if clamp01(c.raw[i]) != c.list.At(i).Y {
			c.raw = nil // edited since the last scaling
		}
	}
	if c.raw == nil {
		c.raw = make([]float64, n)
		for i := range c.raw {
			c.raw[i] = c.list.At(i).Y
		}
	}

	useful := false
	for i := 0; i < n; i++ {
		y := c.list.At(i).Y
		if (step > 0 && y > 0 && y < 1) || (step < 0 && y > 0) {
			useful = true
			break
		}
	}
	if !useful {
		return false
	}
	for i := range c.raw {
		c.raw[i] += c.raw[i] * step
		c.list.SetY(i, clamp01(c.raw[i]))
	}
	return true
}

func clamp01(v float64) float64 { return math.Max(0, math.Min(1, v)) }

// dataPoint maps a device coordinate to the list's data space.
func (c *Curve) dataPoint(p Vec2) Vec2 {
	return c.MapSceneToAdaptor(c.Render().MapToScene(p))
}

func (c *Curve) ProcessInteraction(e *Event) {
	if c.list == nil {
		return
	}
	switch e.Type {
	case EventPress:
		i := c.pick(e.Coord)
		if i < 0 {
			if e.Button == MouseButtonMiddle {
				c.startTranslate(e)
			}
			return
		}
		switch e.Button {
		case MouseButtonLeft:
			c.captured = i
			e.Accepted = true
		case MouseButtonMiddle:
			c.startTranslate(e)
		case MouseButtonRight:
			if c.cfg.Removable != nil && !*c.cfg.Removable {
				return
			}
			if c.list.Len() <= c.cfg.MinPoints {
				return
			}
			c.list.Remove(i)
			e.Accepted = true
			c.list.Modified()
		}
	case EventMove:
		if c.translating {
			c.translate(e.Coord)
			e.Accepted = true
			return
		}
		if c.captured < 0 {
			return
		}
		c.list.Move(c.captured, c.dataPoint(e.Coord))
		e.Accepted = true
	case EventRelease:
		if c.translating && e.Button == MouseButtonMiddle {
			c.translate(e.Coord)
			c.translating = false
			e.Accepted = true
			c.list.Modified()
			return
		}
		if c.captured < 0 || e.Button != MouseButtonLeft {
			return
		}
		c.list.Move(c.captured, c.dataPoint(e.Coord))
		c.captured = -1
		e.Accepted = true
		c.list.Modified()
	case EventDoubleClick:
		if e.Button != MouseButtonLeft || c.pick(e.Coord) >= 0 {
			return
		}
		c.captured = -1
		c.list.Insert(c.dataPoint(e.Coord))
		e.Accepted = true
		c.list.Modified()
	case EventWheelUp, EventWheelDown:
		if !c.onCurve(e.Coord) {
			return
		}
		step := c.cfg.WheelStep
		if e.Type == EventWheelDown {
			step = -step
		}
		if c.scale(step) {
			e.Accepted = true
			c.list.Modified()
		}
	case EventKeyRelease:
		switch e.Key {
		case c.linearK:
			if c.list.Interpolation() == InterpolationLinear {
				c.list.SetInterpolation(InterpolationNearest)
			} else {
				c.list.SetInterpolation(InterpolationLinear)
			}
		case c.clampK:
			c.list.SetClamped(!c.list.Clamped())
		default:
			return
		}
		e.Accepted = true
		c.list.Modified()
	}
}

func (c *Curve) startTranslate(e *Event) {
	if c.cfg.Translatable != nil && !*c.cfg.Translatable {
		return
	}
	if !c.onCurve(e.Coord) {
		return
	}
	c.captured = -1
	c.translating = true
	c.last = c.dataPoint(e.Coord)
	e.Accepted = true
}

func (c *Curve) translate(to Vec2) {
	d := c.dataPoint(to)
	c.list.Translate(d.X - c.last.X)
	c.last = d
}

// BoundingRect returns the scene rectangle enclosing every point.
func (c *Curve) BoundingRect() Rect {
	if c.list == nil || c.list.Len() == 0 {
		return Rect{}
	}
	p := c.MapAdaptorToScene(c.list.At(0))
	minX, minY, maxX, maxY := p.X, p.Y, p.X, p.Y
	for i := 1; i < c.list.Len(); i++ {
		p = c.MapAdaptorToScene(c.list.At(i))
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

func (c *Curve) Draw(dst *ebiten.Image, v *View) {
	if c.list == nil || c.list.Len() == 0 {
		return
	}
	clr := c.color.WithAlpha(c.Opacity).toRGBA()
	aa := c.Render().Antialiasing()
	w := float32(c.cfg.LineWidth)
	line := func(a, b Vec2) {
		pa := v.SceneToDevice(c.MapAdaptorToScene(a))
		pb := v.SceneToDevice(c.MapAdaptorToScene(b))
		vector.StrokeLine(dst, float32(pa.X), float32(pa.Y), float32(pb.X), float32(pb.Y), w, clr, aa)
	}
	n := c.list.Len()
	for i := 1; i < n; i++ {
		a, b := c.list.At(i-1), c.list.At(i)
		if c.list.Interpolation() == InterpolationNearest {
			m := (a.X + b.X) / 2
			line(a, Vec2{X: m, Y: a.Y})
			line(Vec2{X: m, Y: a.Y}, Vec2{X: m, Y: b.Y})
			line(Vec2{X: m, Y: b.Y}, b)
			continue
		}
		line(a, b)
	}
	if c.list.Clamped() {
		first, last := c.list.At(0), c.list.At(n-1)
		line(first, Vec2{X: first.X})
		line(last, Vec2{X: last.X})
	}
	for i := 0; i < n; i++ {
		d := v.SceneToDevice(c.MapAdaptorToScene(c.list.At(i)))
		vector.DrawFilledCircle(dst, float32(d.X), float32(d.Y), float32(c.cfg.Radius), clr, aa)
	}
}
