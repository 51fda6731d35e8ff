package scene2d

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#fff", Color{1, 1, 1, 1}, false},
		{"#000000", Color{0, 0, 0, 1}, false},
		{"#ff000080", Color{1, 0, 0, 128.0 / 255}, false},
		{"fff", Color{}, true},
		{"#ff", Color{}, true},
		{"#gggggg", Color{}, true},
		{"", Color{}, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) err = %v", tt.in, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestColorToRGBAPremultiplies(t *testing.T) {
	got := Color{R: 1, G: 0.5, B: 0, A: 0.5}.toRGBA()
	want := color.RGBA{R: 128, G: 64, B: 0, A: 128}
	if got != want {
		t.Errorf("toRGBA = %v, want %v", got, want)
	}
	if c := ColorWhite.WithAlpha(0.25); c.A != 0.25 || c.R != 1 {
		t.Errorf("WithAlpha = %v", c)
	}
}

func TestRect(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	if !r.Contains(10, 10) || r.Contains(10.1, 5) {
		t.Error("Contains edge handling")
	}
	if !r.Intersects(Rect{X: 10, Y: 10, Width: 1, Height: 1}) {
		t.Error("adjacent rects should intersect")
	}
	if r.Intersects(Rect{X: 11, Y: 0, Width: 1, Height: 1}) {
		t.Error("disjoint rects intersect")
	}
	if !(Rect{Width: 0, Height: 5}).IsEmpty() {
		t.Error("zero width should be empty")
	}

	u := r.Union(Rect{X: -5, Y: 5, Width: 2, Height: 20})
	if u != (Rect{X: -5, Y: 0, Width: 15, Height: 25}) {
		t.Errorf("Union = %v", u)
	}
	if r.Union(Rect{}) != r || (Rect{}).Union(r) != r {
		t.Error("Union with empty rect")
	}
	if g := r.Grow(50); g != (Rect{X: -5, Y: -5, Width: 20, Height: 20}) {
		t.Errorf("Grow = %v", g)
	}
	if c := r.Center(); c != (Vec2{X: 5, Y: 5}) {
		t.Errorf("Center = %v", c)
	}
}
