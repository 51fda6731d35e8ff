package scene2d

import "testing"

func squareCfg(id string, x, y, z float64) AdaptorConfig {
	return AdaptorConfig{
		ID: id, Type: "Square", Object: id, ZValue: z,
		Config: map[string]any{"x": x, "y": y, "size": 10.0},
	}
}

func startSquares(t *testing.T, cfgs ...AdaptorConfig) *Render {
	t.Helper()
	r := newTestRender(t, &Config{
		Scene:    SceneConfig{Width: 100, Height: 100},
		Adaptors: cfgs,
	})
	objects := make(map[string]any)
	for _, c := range cfgs {
		objects[c.Object] = newObject(c.Object)
	}
	startRender(t, r, objects)
	return r
}

func TestSquareDrag(t *testing.T) {
	r := startSquares(t, squareCfg("sq", 10, 10, 0))
	sq := r.Adaptor("sq").(*Square)

	var moved []Vec2
	sq.Signals().Get(SignalMoved).Connect(func(args ...any) {
		moved = append(moved, args[0].(Vec2))
	})

	r.InjectDrag(15, 15, 55, 45, 4)
	stepFrames(r, 2)
	if !sq.Dragging() {
		t.Fatal("not dragging mid-drag")
	}
	stepFrames(r, 2)

	pos := sq.Position()
	if !approxEqual(pos.X, 50, 1e-9) || !approxEqual(pos.Y, 40, 1e-9) {
		t.Errorf("position = %v, want (50, 40)", pos)
	}
	if sq.Dragging() {
		t.Error("still dragging after release")
	}
	if len(moved) != 1 {
		t.Fatalf("moved emitted %d times, want 1", len(moved))
	}
	if !approxEqual(moved[0].X, 50, 1e-9) || !approxEqual(moved[0].Y, 40, 1e-9) {
		t.Errorf("moved arg = %v", moved[0])
	}
}

func TestSquarePressOutsideIgnored(t *testing.T) {
	r := startSquares(t, squareCfg("sq", 10, 10, 0))
	if got := r.DispatchInteraction(&Event{Type: EventPress, Button: MouseButtonLeft, Coord: Vec2{X: 50, Y: 50}}); got != "" {
		t.Errorf("press outside accepted by %q", got)
	}
	if got := r.DispatchInteraction(&Event{Type: EventPress, Button: MouseButtonRight, Coord: Vec2{X: 15, Y: 15}}); got != "" {
		t.Errorf("right press accepted by %q", got)
	}
}

func TestOverlappingSquaresTopmostWins(t *testing.T) {
	r := startSquares(t,
		squareCfg("low", 10, 10, 1),
		squareCfg("high", 15, 15, 5),
	)
	press := func(x, y float64) string {
		id := r.DispatchInteraction(&Event{Type: EventPress, Button: MouseButtonLeft, Coord: Vec2{X: x, Y: y}})
		r.DispatchInteraction(&Event{Type: EventRelease, Button: MouseButtonLeft, Coord: Vec2{X: x, Y: y}})
		return id
	}
	if got := press(18, 18); got != "high" {
		t.Errorf("overlap press went to %q, want high", got)
	}
	if got := press(12, 12); got != "low" {
		t.Errorf("press went to %q, want low", got)
	}
}

func TestSquareBoundsFeedSceneSize(t *testing.T) {
	r := startSquares(t, squareCfg("a", 0, 0, 0), squareCfg("b", 90, 40, 0))
	got := r.UpdateSceneSize(0)
	want := Rect{X: 0, Y: 0, Width: 100, Height: 50}
	if got != want {
		t.Errorf("scene = %v, want %v", got, want)
	}
}
