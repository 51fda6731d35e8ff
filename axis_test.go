package scene2d

import (
	"math"
	"testing"
)

func TestParseScaleType(t *testing.T) {
	tests := []struct {
		in      string
		want    ScaleType
		wantErr bool
	}{
		{"", ScaleLinear, false},
		{"LINEAR", ScaleLinear, false},
		{"linear", ScaleLinear, false},
		{" Log ", ScaleLog, false},
		{"CUBIC", ScaleLinear, true},
	}
	for _, tt := range tests {
		got, err := ParseScaleType(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseScaleType(%q) err = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseScaleType(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if ScaleLog.String() != "LOG" || ScaleLinear.String() != "LINEAR" {
		t.Error("ScaleType.String mismatch")
	}
}

func TestAxisLinear(t *testing.T) {
	scale := -2.0
	a := newAxis(AxisConfig{ID: "y", Origin: 10, Scale: &scale})
	if got := a.ToScene(3); got != 4 {
		t.Errorf("ToScene(3) = %v, want 4", got)
	}
	if got := a.FromScene(4); got != 3 {
		t.Errorf("FromScene(4) = %v, want 3", got)
	}
	if d := newAxis(AxisConfig{ID: "d"}); d.Scale != 1 || d.ScaleType != ScaleLinear {
		t.Errorf("defaults = %+v", d)
	}
}

func TestAxisLog(t *testing.T) {
	scale := 100.0
	a := newAxis(AxisConfig{ID: "f", Scale: &scale, ScaleType: "LOG"})
	tests := []struct{ v, s float64 }{
		{1, 0},
		{10, 100},
		{1000, 300},
	}
	for _, tt := range tests {
		if got := a.ToScene(tt.v); math.Abs(got-tt.s) > 1e-9 {
			t.Errorf("ToScene(%v) = %v, want %v", tt.v, got, tt.s)
		}
		if got := a.FromScene(tt.s); math.Abs(got-tt.v) > 1e-9*tt.v {
			t.Errorf("FromScene(%v) = %v, want %v", tt.s, got, tt.v)
		}
	}
	if got := a.ToScene(-5); got != a.Origin {
		t.Errorf("ToScene(-5) = %v, want origin", got)
	}
}

func TestAxisZeroScale(t *testing.T) {
	zero := 0.0
	a := newAxis(AxisConfig{ID: "z", Origin: 7, Scale: &zero})
	if got := a.ToScene(123); got != 7 {
		t.Errorf("ToScene = %v, want collapsed onto origin", got)
	}
	if got := a.FromScene(50); got != 0 {
		t.Errorf("FromScene = %v, want 0", got)
	}
}

func TestAdaptorBaseAxisMapping(t *testing.T) {
	xs, ys := 100.0, -100.0
	r := newTestRender(t, &Config{
		Axes: []AxisConfig{
			{ID: "x", Scale: &xs},
			{ID: "y", Origin: 100, Scale: &ys},
		},
	})
	b := &AdaptorBase{}
	b.SetRender(r)
	if err := b.Configure(AdaptorConfig{ID: "a", XAxis: "x", YAxis: "y"}); err != nil {
		t.Fatal(err)
	}
	s := b.MapAdaptorToScene(Vec2{X: 0.25, Y: 0.75})
	if s != (Vec2{X: 25, Y: 25}) {
		t.Errorf("MapAdaptorToScene = %v", s)
	}
	if d := b.MapSceneToAdaptor(s); d != (Vec2{X: 0.25, Y: 0.75}) {
		t.Errorf("MapSceneToAdaptor = %v", d)
	}

	// No axes: identity.
	plain := &AdaptorBase{}
	plain.SetRender(r)
	if p := plain.MapAdaptorToScene(Vec2{X: 3, Y: 4}); p != (Vec2{X: 3, Y: 4}) {
		t.Errorf("identity mapping = %v", p)
	}
	if plain.Viewport() != r.ActiveViewport() {
		t.Error("Viewport() should fall back to the active viewport")
	}
}
