package scene2d

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// --- Constants ---

const (
	doubleClickTicks    = 18  // ~300ms at 60 TPS
	doubleClickDistance = 4.0 // pixels
)

var polledButtons = [...]struct {
	eb  ebiten.MouseButton
	btn MouseButton
}{
	{ebiten.MouseButtonLeft, MouseButtonLeft},
	{ebiten.MouseButtonRight, MouseButtonRight},
	{ebiten.MouseButtonMiddle, MouseButtonMiddle},
}

// inputState tracks what the host reported on previous frames.
type inputState struct {
	tick       int
	lastX      float64
	lastY      float64
	havePos    bool
	inside     bool
	lastPress  int // tick of the last press, for double-click detection
	lastPressX float64
	lastPressY float64
	lastButton MouseButton
	keyBuf     []ebiten.Key
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// processInput polls the host for one frame of mouse, wheel and keyboard
// input and dispatches the resulting events.
func (r *Render) processInput() {
	in := &r.input
	in.tick++
	mods := readModifiers()

	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	pos := Vec2{X: x, Y: y}

	w, h := r.view.DeviceSize()
	inside := x >= 0 && y >= 0 && x < w && y < h
	if inside != in.inside {
		typ := EventLeave
		if inside {
			typ = EventEnter
		}
		r.DispatchInteraction(&Event{Type: typ, Coord: pos, Modifiers: mods})
		in.inside = inside
	}

	if in.havePos && (x != in.lastX || y != in.lastY) {
		r.DispatchInteraction(&Event{Type: EventMove, Coord: pos, Modifiers: mods, Button: heldButton()})
	}
	in.lastX, in.lastY, in.havePos = x, y, true

	for _, b := range polledButtons {
		if inpututil.IsMouseButtonJustPressed(b.eb) {
			r.DispatchInteraction(&Event{Type: in.pressType(b.btn, x, y), Button: b.btn, Coord: pos, Modifiers: mods})
		}
		if inpututil.IsMouseButtonJustReleased(b.eb) {
			r.DispatchInteraction(&Event{Type: EventRelease, Button: b.btn, Coord: pos, Modifiers: mods})
		}
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		typ := EventWheelUp
		if wy < 0 {
			typ = EventWheelDown
		}
		r.DispatchInteraction(&Event{Type: typ, Coord: pos, Modifiers: mods})
	}

	in.keyBuf = inpututil.AppendJustPressedKeys(in.keyBuf[:0])
	for _, k := range in.keyBuf {
		r.DispatchInteraction(&Event{Type: EventKeyPress, Key: k, Coord: pos, Modifiers: mods})
	}
	in.keyBuf = inpututil.AppendJustReleasedKeys(in.keyBuf[:0])
	for _, k := range in.keyBuf {
		r.DispatchInteraction(&Event{Type: EventKeyRelease, Key: k, Coord: pos, Modifiers: mods})
	}
}

// pressType classifies a press as a plain press or the second press of a
// double click, and records it.
func (in *inputState) pressType(btn MouseButton, x, y float64) EventType {
	typ := EventPress
	if btn == in.lastButton && in.lastPress > 0 &&
		in.tick-in.lastPress <= doubleClickTicks &&
		math.Hypot(x-in.lastPressX, y-in.lastPressY) <= doubleClickDistance {
		typ = EventDoubleClick
		in.lastPress = 0
	} else {
		in.lastPress = in.tick
	}
	in.lastPressX, in.lastPressY, in.lastButton = x, y, btn
	return typ
}

func heldButton() MouseButton {
	for _, b := range polledButtons {
		if ebiten.IsMouseButtonPressed(b.eb) {
			return b.btn
		}
	}
	return NoButton
}
