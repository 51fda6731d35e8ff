package scene2d

import "github.com/hajimehoshi/ebiten/v2"

// InjectEvent queues a synthetic event. Coordinates are device pixels,
// exactly like host input. Queued events are dispatched one per Update, and
// host input is skipped on frames that consume one.
func (r *Render) InjectEvent(e Event) {
	r.injectQueue = append(r.injectQueue, e)
}

// InjectPress queues a button press at the given device coordinates.
func (r *Render) InjectPress(x, y float64, button MouseButton) {
	r.InjectEvent(Event{Type: EventPress, Button: button, Coord: Vec2{X: x, Y: y}})
}

// InjectRelease queues a button release at the given device coordinates.
func (r *Render) InjectRelease(x, y float64, button MouseButton) {
	r.InjectEvent(Event{Type: EventRelease, Button: button, Coord: Vec2{X: x, Y: y}})
}

// InjectMove queues a pointer move with button held (NoButton for hover).
func (r *Render) InjectMove(x, y float64, button MouseButton) {
	r.InjectEvent(Event{Type: EventMove, Button: button, Coord: Vec2{X: x, Y: y}})
}

// InjectClick queues a left press followed by a release at the same
// coordinates. Consumes two frames.
func (r *Render) InjectClick(x, y float64) {
	r.InjectPress(x, y, MouseButtonLeft)
	r.InjectRelease(x, y, MouseButtonLeft)
}

// InjectDoubleClick queues a full left double click. Consumes four frames.
func (r *Render) InjectDoubleClick(x, y float64) {
	r.InjectClick(x, y)
	r.InjectEvent(Event{Type: EventDoubleClick, Button: MouseButtonLeft, Coord: Vec2{X: x, Y: y}})
	r.InjectRelease(x, y, MouseButtonLeft)
}

// InjectDrag queues a full left-button drag: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). Minimum frames is 2 (press + release).
func (r *Render) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	r.InjectPress(fromX, fromY, MouseButtonLeft)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		r.InjectMove(x, y, MouseButtonLeft)
	}
	r.InjectRelease(toX, toY, MouseButtonLeft)
}

// InjectWheel queues one wheel step at the given coordinates.
func (r *Render) InjectWheel(x, y float64, up bool) {
	typ := EventWheelDown
	if up {
		typ = EventWheelUp
	}
	r.InjectEvent(Event{Type: typ, Coord: Vec2{X: x, Y: y}})
}

// InjectKey queues a key press followed by its release. Consumes two frames.
func (r *Render) InjectKey(key ebiten.Key) {
	r.InjectEvent(Event{Type: EventKeyPress, Key: key})
	r.InjectEvent(Event{Type: EventKeyRelease, Key: key})
}

// InjectResize queues a device resize.
func (r *Render) InjectResize(w, h float64) {
	r.InjectEvent(Event{Type: EventResize, Size: Vec2{X: w, Y: h}})
}

// processInjectedInput pops one queued event and dispatches it.
// Returns true if an event was consumed.
func (r *Render) processInjectedInput() bool {
	if len(r.injectQueue) == 0 {
		return false
	}
	e := r.injectQueue[0]
	copy(r.injectQueue, r.injectQueue[1:])
	r.injectQueue = r.injectQueue[:len(r.injectQueue)-1]

	if e.Type == EventResize {
		w, h := r.view.DeviceSize()
		e.OldSize = Vec2{X: w, Y: h}
	}
	r.DispatchInteraction(&e)
	return true
}
