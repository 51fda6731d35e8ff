package scene2d

import (
	"errors"
	"reflect"
	"testing"
)

func TestGridPositions(t *testing.T) {
	tests := []struct {
		lo, hi, step float64
		want         []float64
	}{
		{0, 100, 25, []float64{0, 25, 50, 75, 100}},
		{-5, 5, 2.5, []float64{-5, -2.5, 0, 2.5, 5}},
		{1, 9, 10, nil},
		{11, 49, 10, []float64{20, 30, 40}},
	}
	for _, tt := range tests {
		got := gridPositions(nil, tt.lo, tt.hi, tt.step)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("gridPositions(%v, %v, %v) = %v, want %v", tt.lo, tt.hi, tt.step, got, tt.want)
		}
	}
	if got := gridPositions(nil, 0, 1e6, 1); len(got) != maxGridLines {
		t.Errorf("unbounded grid produced %d lines, want %d", len(got), maxGridLines)
	}
}

func TestGridFollowsViewport(t *testing.T) {
	r := newTestRender(t, &Config{
		Scene:     SceneConfig{Width: 100, Height: 100},
		Viewports: []ViewportConfig{{ID: "main", Width: 100, Height: 100}},
		Adaptors: []AdaptorConfig{{
			ID: "grid", Type: "Grid", Object: "main",
			Config: map[string]any{"xSpacing": 25.0, "ySpacing": 50.0},
		}},
	})
	vp := r.Viewport("main")
	startRender(t, r, map[string]any{"main": vp})
	g := r.Adaptor("grid").(*Grid)

	xs, ys := g.Lines()
	if !reflect.DeepEqual(xs, []float64{0, 25, 50, 75, 100}) || !reflect.DeepEqual(ys, []float64{0, 50, 100}) {
		t.Errorf("lines = %v / %v", xs, ys)
	}

	vp.SetRect(Rect{X: 10, Y: 0, Width: 100, Height: 100})
	xs, _ = g.Lines()
	if !reflect.DeepEqual(xs, []float64{25, 50, 75, 100}) {
		t.Errorf("lines after pan = %v", xs)
	}
}

func TestGridRejectsZeroSpacing(t *testing.T) {
	r := newTestRender(t, &Config{Adaptors: []AdaptorConfig{{
		ID: "grid", Type: "Grid", Object: "main",
		Config: map[string]any{"xSpacing": 0.0},
	}}})
	c := NewComposite()
	if err := c.Set("main", newObject("main")); err != nil {
		t.Fatal(err)
	}
	err := r.Start(c)
	var ce *ConfigError
	if !errors.As(err, &ce) || !errors.Is(err, errGridSpacing) {
		t.Fatalf("err = %v, want grid spacing ConfigError", err)
	}
	if ce.ID != "grid" {
		t.Errorf("ConfigError.ID = %q", ce.ID)
	}
}
