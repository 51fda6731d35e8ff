package scene2d

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

func init() {
	RegisterAdaptorType("Square", func() Adaptor { return &Square{} })
}

// SignalMoved is emitted by a Square after a drag, with its new position.
const SignalMoved = "moved"

type squareConfig struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Size  float64 `yaml:"size"`
	Color string  `yaml:"color"`
}

// Square is a draggable square in scene coordinates. A left press inside it
// captures the pointer until the matching release.
type Square struct {
	AdaptorBase
	pos   Vec2
	size  float64
	color Color

	dragging bool
	grab     Vec2 // pointer offset from pos at press time, scene units
	signals  SignalSet
}

func (s *Square) Configure(cfg AdaptorConfig) error {
	if err := s.AdaptorBase.Configure(cfg); err != nil {
		return err
	}
	sc := squareConfig{Size: 10, Color: "#ff0000"}
	if err := cfg.Decode(&sc); err != nil {
		return err
	}
	c, err := ParseColor(sc.Color)
	if err != nil {
		return configErr("adaptor", cfg.ID, err)
	}
	s.pos = Vec2{X: sc.X, Y: sc.Y}
	s.size = sc.Size
	s.color = c
	return nil
}

func (s *Square) Start() error { return nil }
func (s *Square) Update()      {}
func (s *Square) Swap()        { s.dragging = false }
func (s *Square) Stop()        { s.dragging = false }

// Position returns the top-left corner in scene coordinates.
func (s *Square) Position() Vec2 { return s.pos }

// Dragging reports whether a drag is in progress.
func (s *Square) Dragging() bool { return s.dragging }

func (s *Square) Signals() *SignalSet { return &s.signals }

func (s *Square) Slots() map[string]Slot {
	return map[string]Slot{SlotUpdate: func(...any) { s.Update() }}
}

// BoundingRect returns the square in scene coordinates.
func (s *Square) BoundingRect() Rect {
	return Rect{X: s.pos.X, Y: s.pos.Y, Width: s.size, Height: s.size}
}

func (s *Square) ProcessInteraction(e *Event) {
	p := s.Render().MapToScene(e.Coord)
	switch e.Type {
	case EventPress:
		if e.Button != MouseButtonLeft || !s.BoundingRect().Contains(p.X, p.Y) {
			return
		}
		s.dragging = true
		s.grab = Vec2{X: p.X - s.pos.X, Y: p.Y - s.pos.Y}
		e.Accepted = true
	case EventMove:
		if !s.dragging {
			return
		}
		s.pos = Vec2{X: p.X - s.grab.X, Y: p.Y - s.grab.Y}
		e.Accepted = true
	case EventRelease:
		if !s.dragging || e.Button != MouseButtonLeft {
			return
		}
		s.dragging = false
		s.pos = Vec2{X: p.X - s.grab.X, Y: p.Y - s.grab.Y}
		e.Accepted = true
		s.signals.Emit(SignalMoved, s.pos)
	}
}

func (s *Square) Draw(dst *ebiten.Image, v *View) {
	r := v.SceneRectToDevice(s.BoundingRect())
	clr := s.color.WithAlpha(s.Opacity)
	if s.dragging {
		clr = clr.WithAlpha(0.6)
	}
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height),
		clr.toRGBA(), s.Render().Antialiasing())
}
