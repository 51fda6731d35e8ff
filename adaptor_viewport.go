package scene2d

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

func init() {
	RegisterAdaptorType("ViewportUpdater", func() Adaptor { return &ViewportUpdater{} })
}

const (
	zoomInFactor  = 0.9
	zoomOutFactor = 1.1
)

type viewportUpdaterConfig struct {
	ResetKey      string  `yaml:"resetKey"`
	ResetDuration float32 `yaml:"resetDuration"`
}

// ViewportUpdater edits the viewport object it is bound to: the wheel zooms
// around the pointer, a middle-button drag pans, and the reset key animates
// back to the rectangle the viewport had when the adaptor started.
type ViewportUpdater struct {
	AdaptorBase
	vp      *Viewport
	home    Rect
	resetK  ebiten.Key
	resetDu float32

	panning bool
	last    Vec2 // device position of the previous pan event
}

func (u *ViewportUpdater) Configure(cfg AdaptorConfig) error {
	if err := u.AdaptorBase.Configure(cfg); err != nil {
		return err
	}
	vc := viewportUpdaterConfig{ResetDuration: 0.3}
	if err := cfg.Decode(&vc); err != nil {
		return err
	}
	u.resetK = ebiten.KeyR
	if vc.ResetKey != "" {
		if err := u.resetK.UnmarshalText([]byte(vc.ResetKey)); err != nil {
			return configErr("adaptor", cfg.ID, fmt.Errorf("resetKey: %w", err))
		}
	}
	u.resetDu = vc.ResetDuration
	return nil
}

func (u *ViewportUpdater) Start() error {
	vp, ok := u.Object().(*Viewport)
	if !ok {
		return fmt.Errorf("viewport updater %q: object is %T, want *Viewport", u.ID, u.Object())
	}
	u.vp = vp
	u.home = vp.Rect()
	return nil
}

func (u *ViewportUpdater) Update() {}

// Swap rebinds to the new viewport. Any other object leaves the adaptor
// inert until it is swapped back to a viewport.
func (u *ViewportUpdater) Swap() {
	u.panning = false
	vp, ok := u.Object().(*Viewport)
	if !ok {
		Logger().Warn("viewport updater swapped to a non-viewport object",
			"adaptor", u.ID, "object", fmt.Sprintf("%T", u.Object()))
		u.vp = nil
		return
	}
	u.vp = vp
	u.home = vp.Rect()
}

func (u *ViewportUpdater) Stop() {
	u.panning = false
	u.vp = nil
}

func (u *ViewportUpdater) Slots() map[string]Slot {
	return map[string]Slot{SlotUpdate: func(...any) { u.Update() }}
}

// Zoom scales the viewport by factor around the scene point c.
func (u *ViewportUpdater) Zoom(c Vec2, factor float64) {
	if u.vp == nil {
		return
	}
	r := u.vp.Rect()
	u.vp.SetRect(Rect{
		X:      c.X - (c.X-r.X)*factor,
		Y:      c.Y - (c.Y-r.Y)*factor,
		Width:  r.Width * factor,
		Height: r.Height * factor,
	})
}

// Reset animates the viewport back to its starting rectangle.
func (u *ViewportUpdater) Reset() {
	if u.vp == nil {
		return
	}
	u.vp.AnimateTo(u.home, u.resetDu, ease.OutQuad)
}

func (u *ViewportUpdater) ProcessInteraction(e *Event) {
	if u.vp == nil {
		return
	}
	switch e.Type {
	case EventWheelUp, EventWheelDown:
		f := zoomOutFactor
		if e.Type == EventWheelUp {
			f = zoomInFactor
		}
		u.Zoom(u.Render().MapToScene(e.Coord), f)
		e.Accepted = true
	case EventPress:
		if e.Button != MouseButtonMiddle {
			return
		}
		u.panning = true
		u.last = e.Coord
		e.Accepted = true
	case EventMove:
		if !u.panning {
			return
		}
		u.pan(e.Coord)
		e.Accepted = true
	case EventRelease:
		if !u.panning || e.Button != MouseButtonMiddle {
			return
		}
		u.pan(e.Coord)
		u.panning = false
		e.Accepted = true
	case EventKeyRelease:
		if e.Key == u.resetK {
			u.Reset()
			e.Accepted = true
		}
	}
}

// pan shifts the viewport so the scene point under the previous pointer
// position follows the pointer.
func (u *ViewportUpdater) pan(to Vec2) {
	r := u.Render()
	a := r.MapToScene(u.last)
	b := r.MapToScene(to)
	u.last = to
	vr := u.vp.Rect()
	vr.X -= b.X - a.X
	vr.Y -= b.Y - a.Y
	u.vp.SetRect(vr)
}
