package scene2d

import "sort"

// Interpolation selects how PointList.Value fills the gaps between points.
type Interpolation uint8

const (
	InterpolationLinear  Interpolation = iota // straight segments between points
	InterpolationNearest                      // the value of the closest point
)

func (m Interpolation) String() string {
	if m == InterpolationNearest {
		return "nearest"
	}
	return "linear"
}

// PointList is an editable list of points in data space, kept sorted by X.
// It is the object edited by the Curve adaptor.
//
// A clamped list is zero outside the X range of its points. An unclamped
// list extends its first and last values.
type PointList struct {
	points  []Vec2
	interp  Interpolation
	clamped bool
	signals SignalSet
}

// NewPointList creates a list holding pts, sorted by X.
func NewPointList(pts ...Vec2) *PointList {
	p := &PointList{points: append([]Vec2(nil), pts...)}
	sort.SliceStable(p.points, func(i, j int) bool { return p.points[i].X < p.points[j].X })
	return p
}

// Signals returns the list's signals.
func (p *PointList) Signals() *SignalSet { return &p.signals }

// Len returns the number of points.
func (p *PointList) Len() int { return len(p.points) }

// At returns the i-th point.
func (p *PointList) At(i int) Vec2 { return p.points[i] }

// Points returns a copy of the points.
func (p *PointList) Points() []Vec2 { return append([]Vec2(nil), p.points...) }

// Insert adds pt at its sorted position and returns its index.
func (p *PointList) Insert(pt Vec2) int {
	i := sort.Search(len(p.points), func(i int) bool { return p.points[i].X > pt.X })
	p.points = append(p.points, Vec2{})
	copy(p.points[i+1:], p.points[i:])
	p.points[i] = pt
	return i
}

// Move replaces the i-th point. X is clamped between the neighbours so the
// list stays sorted.
func (p *PointList) Move(i int, pt Vec2) {
	if i > 0 && pt.X < p.points[i-1].X {
		pt.X = p.points[i-1].X
	}
	if i < len(p.points)-1 && pt.X > p.points[i+1].X {
		pt.X = p.points[i+1].X
	}
	p.points[i] = pt
}

// SetY replaces the Y value of the i-th point.
func (p *PointList) SetY(i int, y float64) { p.points[i].Y = y }

// Translate shifts every point by dx along X.
func (p *PointList) Translate(dx float64) {
	for i := range p.points {
		p.points[i].X += dx
	}
}

func (p *PointList) Interpolation() Interpolation     { return p.interp }
func (p *PointList) SetInterpolation(m Interpolation) { p.interp = m }
func (p *PointList) Clamped() bool                    { return p.clamped }
func (p *PointList) SetClamped(on bool)               { p.clamped = on }

// Value returns the list's value at x. An empty list is zero everywhere.
func (p *PointList) Value(x float64) float64 {
	n := len(p.points)
	if n == 0 {
		return 0
	}
	first, last := p.points[0], p.points[n-1]
	if x < first.X || x > last.X {
		if p.clamped {
			return 0
		}
		if x < first.X {
			return first.Y
		}
		return last.Y
	}
	// first index whose X is beyond x; x lies in [points[i-1], points[i]].
	i := sort.Search(n, func(i int) bool { return p.points[i].X > x })
	if i == n {
		return last.Y
	}
	a, b := p.points[i-1], p.points[i]
	if p.interp == InterpolationNearest {
		if x-a.X <= b.X-x {
			return a.Y
		}
		return b.Y
	}
	return a.Y + (b.Y-a.Y)*(x-a.X)/(b.X-a.X)
}

// Remove deletes the i-th point.
func (p *PointList) Remove(i int) {
	p.points = append(p.points[:i], p.points[i+1:]...)
}

// Modified emits the modified signal.
func (p *PointList) Modified() {
	p.signals.Emit(SignalModified, p)
}
