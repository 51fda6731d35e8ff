package scene2d

import "github.com/hajimehoshi/ebiten/v2"

// EventType identifies a kind of input event.
type EventType uint8

const (
	EventNone        EventType = iota
	EventPress                 // a mouse button was pressed
	EventRelease               // a mouse button was released
	EventDoubleClick           // second press of a double click
	EventMove                  // the pointer moved
	EventWheelUp               // wheel scrolled away from the user
	EventWheelDown             // wheel scrolled toward the user
	EventKeyPress              // a key was pressed
	EventKeyRelease            // a key was released
	EventResize                // the device surface changed size
	EventEnter                 // the pointer entered the device area
	EventLeave                 // the pointer left the device area
)

var eventTypeNames = [...]string{
	EventNone:        "none",
	EventPress:       "press",
	EventRelease:     "release",
	EventDoubleClick: "doubleclick",
	EventMove:        "move",
	EventWheelUp:     "wheelup",
	EventWheelDown:   "wheeldown",
	EventKeyPress:    "keypress",
	EventKeyRelease:  "keyrelease",
	EventResize:      "resize",
	EventEnter:       "enter",
	EventLeave:       "leave",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}

// Event is one input event. Coord is in device pixels; adaptors convert it
// with Render.MapToScene.
type Event struct {
	Type      EventType
	Button    MouseButton
	Modifiers KeyModifiers
	Key       ebiten.Key
	Coord     Vec2
	Size      Vec2 // new device size, resize events only
	OldSize   Vec2 // previous device size, resize events only
	Accepted  bool
}

// DispatchRecord is what an EventSink receives for each dispatched event.
// AdaptorID is empty when no adaptor accepted the event.
type DispatchRecord struct {
	Event     Event
	AdaptorID string
}

// EventSink receives the outcome of every dispatch.
type EventSink interface {
	EmitDispatch(rec DispatchRecord)
}

// DispatchInteraction routes e to the live adaptors from the highest
// z-value to the lowest and stops at the first one that accepts it. It
// returns the id of the accepting adaptor, or "" if the event was dropped.
//
// Resize events are not part of the accept chain: the view is resized and
// every ResizeListener is notified.
//
// Adaptor panics are not recovered.
func (r *Render) DispatchInteraction(e *Event) string {
	if e.Type == EventResize {
		r.dispatchResize(e)
		r.emit(e, "")
		return ""
	}

	accepted := ""
	for _, id := range r.reg.descending() {
		d := r.reg.get(id)
		if d == nil || d.instance == nil {
			// Stopped by an earlier handler in this pass.
			continue
		}
		h, ok := d.instance.(InteractionHandler)
		if !ok {
			continue
		}
		h.ProcessInteraction(e)
		if e.Accepted {
			accepted = id
			break
		}
	}
	r.emit(e, accepted)
	return accepted
}

func (r *Render) dispatchResize(e *Event) {
	r.view.SetDeviceSize(e.Size.X, e.Size.Y)
	for _, id := range r.reg.descending() {
		d := r.reg.get(id)
		if d == nil || d.instance == nil {
			continue
		}
		if l, ok := d.instance.(ResizeListener); ok {
			l.ProcessResize(e)
		}
	}
}

func (r *Render) emit(e *Event, id string) {
	if r.sink != nil {
		r.sink.EmitDispatch(DispatchRecord{Event: *e, AdaptorID: id})
	}
}
