package scene2d

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func startViewportUpdater(t *testing.T) (*Render, *Viewport) {
	t.Helper()
	r := newTestRender(t, &Config{
		Scene:     SceneConfig{Width: 100, Height: 100},
		Viewports: []ViewportConfig{{ID: "main", Width: 100, Height: 100}},
		Adaptors:  []AdaptorConfig{{ID: "nav", Type: "ViewportUpdater", Object: "main"}},
	})
	vp := r.Viewport("main")
	startRender(t, r, map[string]any{"main": vp})
	return r, vp
}

func rectNear(a, b Rect) bool {
	const eps = 1e-9
	return approxEqual(a.X, b.X, eps) && approxEqual(a.Y, b.Y, eps) &&
		approxEqual(a.Width, b.Width, eps) && approxEqual(a.Height, b.Height, eps)
}

func TestViewportUpdaterWheelZoom(t *testing.T) {
	r, vp := startViewportUpdater(t)

	if id := r.DispatchInteraction(&Event{Type: EventWheelUp, Coord: Vec2{X: 50, Y: 50}}); id != "nav" {
		t.Fatalf("wheel accepted by %q", id)
	}
	if want := (Rect{X: 5, Y: 5, Width: 90, Height: 90}); !rectNear(vp.Rect(), want) {
		t.Errorf("after zoom in: %v, want %v", vp.Rect(), want)
	}
	if !rectNear(r.View().Viewport(), vp.Rect()) {
		t.Error("view did not follow the viewport")
	}

	// The pointer still maps to scene (50, 50).
	r.DispatchInteraction(&Event{Type: EventWheelDown, Coord: Vec2{X: 50, Y: 50}})
	if want := (Rect{X: 0.5, Y: 0.5, Width: 99, Height: 99}); !rectNear(vp.Rect(), want) {
		t.Errorf("after zoom out: %v, want %v", vp.Rect(), want)
	}
}

func TestViewportUpdaterMiddlePan(t *testing.T) {
	r, vp := startViewportUpdater(t)

	events := []Event{
		{Type: EventPress, Button: MouseButtonMiddle, Coord: Vec2{X: 50, Y: 50}},
		{Type: EventMove, Button: MouseButtonMiddle, Coord: Vec2{X: 60, Y: 50}},
		{Type: EventRelease, Button: MouseButtonMiddle, Coord: Vec2{X: 70, Y: 45}},
	}
	for i := range events {
		if id := r.DispatchInteraction(&events[i]); id != "nav" {
			t.Fatalf("event %d accepted by %q", i, id)
		}
	}
	if want := (Rect{X: -20, Y: 5, Width: 100, Height: 100}); !rectNear(vp.Rect(), want) {
		t.Errorf("after pan: %v, want %v", vp.Rect(), want)
	}

	// Moves after the release are ignored.
	if id := r.DispatchInteraction(&Event{Type: EventMove, Coord: Vec2{X: 0, Y: 0}}); id != "" {
		t.Errorf("hover accepted by %q", id)
	}
	if id := r.DispatchInteraction(&Event{Type: EventPress, Button: MouseButtonLeft, Coord: Vec2{X: 1, Y: 1}}); id != "" {
		t.Errorf("left press accepted by %q", id)
	}
}

func TestViewportUpdaterResetKey(t *testing.T) {
	r, vp := startViewportUpdater(t)
	home := vp.Rect()
	nav := r.Adaptor("nav").(*ViewportUpdater)
	nav.Zoom(Vec2{X: 0, Y: 0}, 0.5)
	if vp.Rect() == home {
		t.Fatal("zoom had no effect")
	}

	r.InjectKey(ebiten.KeyR)
	stepFrames(r, 2)
	if !vp.Animating() {
		t.Fatal("reset key did not start an animation")
	}
	stepFrames(r, 30)
	if vp.Animating() || vp.Rect() != home {
		t.Errorf("after reset: %v (animating=%v), want %v", vp.Rect(), vp.Animating(), home)
	}
}

func TestViewportUpdaterRequiresViewport(t *testing.T) {
	r := newTestRender(t, &Config{Adaptors: []AdaptorConfig{
		{ID: "nav", Type: "ViewportUpdater", Object: "main"},
	}})
	c := NewComposite()
	if err := c.Set("main", newObject("main")); err != nil {
		t.Fatal(err)
	}
	if err := r.Start(c); err == nil {
		t.Fatal("expected start error for a non-viewport object")
	}
}

func TestViewportUpdaterSwapToWrongType(t *testing.T) {
	logs := captureLogs(t)
	r, vp := startViewportUpdater(t)
	before := vp.Rect()

	if err := r.composite.Set("main", newObject("main")); err != nil {
		t.Fatal(err)
	}
	if r.AdaptorState("nav") != StateStarted {
		t.Fatalf("state = %v, want started", r.AdaptorState("nav"))
	}
	if n := len(logs.withMessage("viewport updater swapped to a non-viewport object")); n != 1 {
		t.Errorf("warn records = %d, want 1", n)
	}

	if id := r.DispatchInteraction(&Event{Type: EventWheelUp, Coord: Vec2{X: 50, Y: 50}}); id != "" {
		t.Errorf("wheel accepted by %q after the swap", id)
	}
	nav := r.Adaptor("nav").(*ViewportUpdater)
	nav.Zoom(Vec2{X: 50, Y: 50}, 0.5)
	nav.Reset()
	if vp.Rect() != before || vp.Animating() {
		t.Errorf("old viewport edited after the swap: %v", vp.Rect())
	}
}
