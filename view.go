package scene2d

// View maps between device pixels and scene coordinates. The visible scene
// area is the active viewport rectangle, stretched over the device area
// (or fitted with a uniform scale when KeepAspect is set).
type View struct {
	// KeepAspect fits the viewport inside the device with a uniform scale,
	// centering it along the slack axis.
	KeepAspect bool

	deviceW, deviceH float64
	viewport         Rect

	matrix    [6]float64
	invMatrix [6]float64
	invOK     bool
	dirty     bool
}

// NewView creates a view of the given device size showing viewport.
func NewView(deviceW, deviceH float64, viewport Rect) *View {
	return &View{deviceW: deviceW, deviceH: deviceH, viewport: viewport, dirty: true}
}

// SetDeviceSize updates the drawable surface size in pixels.
func (v *View) SetDeviceSize(w, h float64) {
	if v.deviceW == w && v.deviceH == h {
		return
	}
	v.deviceW, v.deviceH = w, h
	v.dirty = true
}

// DeviceSize returns the drawable surface size in pixels.
func (v *View) DeviceSize() (w, h float64) { return v.deviceW, v.deviceH }

// SetViewport changes the scene rectangle shown by the view.
func (v *View) SetViewport(r Rect) {
	if v.viewport == r {
		return
	}
	v.viewport = r
	v.dirty = true
}

// Viewport returns the scene rectangle shown by the view.
func (v *View) Viewport() Rect { return v.viewport }

// MarkDirty forces a recomputation of the view matrix.
func (v *View) MarkDirty() { v.dirty = true }

// computeMatrix recomputes the cached scene-to-device matrix if dirty.
//
//	matrix = Translate(offX, offY) * Scale(sx, sy) * Translate(-vp.X, -vp.Y)
//
// where offX/offY are non-zero only when KeepAspect centers the viewport.
func (v *View) computeMatrix() [6]float64 {
	if !v.dirty {
		return v.matrix
	}
	v.dirty = false

	vp := v.viewport
	sx, sy := 1.0, 1.0
	if vp.Width != 0 {
		sx = v.deviceW / vp.Width
	}
	if vp.Height != 0 {
		sy = v.deviceH / vp.Height
	}

	var offX, offY float64
	if v.KeepAspect {
		s := sx
		if sy < s {
			s = sy
		}
		offX = (v.deviceW - vp.Width*s) / 2
		offY = (v.deviceH - vp.Height*s) / 2
		sx, sy = s, s
	}

	m := scaleTranslate(sx, sy, -vp.X, -vp.Y)
	m[4] += offX
	m[5] += offY
	v.matrix = m
	v.invMatrix, v.invOK = invertAffine(m)
	return m
}

// Matrix returns the scene-to-device affine matrix.
func (v *View) Matrix() [6]float64 {
	return v.computeMatrix()
}

// MapToScene converts a device point to scene coordinates. Points outside
// the device area map outside the viewport; the result is always finite.
func (v *View) MapToScene(p Vec2) Vec2 {
	v.computeMatrix()
	if !v.invOK {
		// Collapsed device: fall back to a pure origin offset.
		return Vec2{X: p.X + v.viewport.X, Y: p.Y + v.viewport.Y}
	}
	x, y := transformPoint(v.invMatrix, p.X, p.Y)
	return Vec2{X: x, Y: y}
}

// SceneToDevice converts a scene point to device pixels.
func (v *View) SceneToDevice(p Vec2) Vec2 {
	x, y := transformPoint(v.computeMatrix(), p.X, p.Y)
	return Vec2{X: x, Y: y}
}

// SceneRectToDevice converts a scene rectangle to device pixels.
func (v *View) SceneRectToDevice(r Rect) Rect {
	return transformRect(v.computeMatrix(), r)
}

// VisibleBounds returns the scene rectangle covered by the whole device
// area. It equals the viewport unless KeepAspect adds letterboxing.
func (v *View) VisibleBounds() Rect {
	v.computeMatrix()
	if !v.invOK {
		return v.viewport
	}
	return transformRect(v.invMatrix, Rect{Width: v.deviceW, Height: v.deviceH})
}
