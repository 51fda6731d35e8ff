package scene2d

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// rectAnim holds the active tweens of a viewport transition.
type rectAnim struct {
	tweens [4]*gween.Tween
	done   [4]bool
	target Rect
}

// Viewport is a named visible sub-rectangle of the scene. It is also a
// composite object: adaptors bind to it and connect to its modified signal.
type Viewport struct {
	ID string

	rect    Rect
	signals SignalSet
	anim    *rectAnim
}

// NewViewport creates a viewport covering rect.
func NewViewport(id string, rect Rect) *Viewport {
	return &Viewport{ID: id, rect: rect}
}

func newViewportFromConfig(cfg ViewportConfig) *Viewport {
	return NewViewport(cfg.ID, Rect{X: cfg.X, Y: cfg.Y, Width: cfg.Width, Height: cfg.Height})
}

// Rect returns the viewport rectangle in scene coordinates.
func (v *Viewport) Rect() Rect { return v.rect }

// SetRect moves and resizes the viewport and emits the modified signal.
// Any running animation is cancelled.
func (v *Viewport) SetRect(r Rect) {
	v.anim = nil
	v.setRect(r)
}

func (v *Viewport) setRect(r Rect) {
	if r == v.rect {
		return
	}
	v.rect = r
	v.signals.Emit(SignalModified, v)
}

// Signals returns the viewport's signals.
func (v *Viewport) Signals() *SignalSet { return &v.signals }

// AnimateTo tweens the viewport toward target over duration seconds.
// A nil easeFn uses linear easing.
func (v *Viewport) AnimateTo(target Rect, duration float32, easeFn ease.TweenFunc) {
	if easeFn == nil {
		easeFn = ease.Linear
	}
	if duration <= 0 {
		v.SetRect(target)
		return
	}
	from := [4]float64{v.rect.X, v.rect.Y, v.rect.Width, v.rect.Height}
	to := [4]float64{target.X, target.Y, target.Width, target.Height}
	a := &rectAnim{target: target}
	for i := range a.tweens {
		a.tweens[i] = gween.New(float32(from[i]), float32(to[i]), duration, easeFn)
	}
	v.anim = a
}

// Animating reports whether a transition is in progress.
func (v *Viewport) Animating() bool { return v.anim != nil }

// Update advances a running transition by dt seconds.
func (v *Viewport) Update(dt float32) {
	a := v.anim
	if a == nil {
		return
	}
	var vals [4]float64
	cur := [4]float64{v.rect.X, v.rect.Y, v.rect.Width, v.rect.Height}
	allDone := true
	for i, tw := range a.tweens {
		if a.done[i] {
			vals[i] = cur[i]
			continue
		}
		val, done := tw.Update(dt)
		vals[i] = float64(val)
		a.done[i] = done
		allDone = allDone && done
	}
	if allDone {
		// Tweens run in float32; land exactly on the requested rect.
		v.anim = nil
		v.setRect(a.target)
		return
	}
	v.setRect(Rect{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]})
}
