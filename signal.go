package scene2d

import "sort"

// Standard signal and slot names.
const (
	SignalModified = "modified"
	SlotUpdate     = "update"
)

// Slot receives the arguments of an emitted signal.
type Slot func(args ...any)

type slotEntry struct {
	id uint32
	fn Slot
}

// Signal is an ordered list of connected slots. Slots run synchronously, in
// connection order, on the goroutine calling Emit.
type Signal struct {
	name   string
	slots  []slotEntry
	nextID uint32
}

// NewSignal creates an unconnected signal.
func NewSignal(name string) *Signal {
	return &Signal{name: name}
}

// Name returns the signal name.
func (s *Signal) Name() string { return s.name }

// Connect appends fn to the signal's slots.
func (s *Signal) Connect(fn Slot) Connection {
	s.nextID++
	id := s.nextID
	s.slots = append(s.slots, slotEntry{id: id, fn: fn})
	return Connection{id: id, sig: s}
}

// Emit calls every connected slot with args.
func (s *Signal) Emit(args ...any) {
	if len(s.slots) == 0 {
		return
	}
	// Slots may disconnect themselves while running.
	slots := append([]slotEntry(nil), s.slots...)
	for _, e := range slots {
		e.fn(args...)
	}
}

// NumSlots returns the number of connected slots.
func (s *Signal) NumSlots() int { return len(s.slots) }

// Connection allows removing a connected slot.
type Connection struct {
	id  uint32
	sig *Signal
}

// Disconnect removes the slot so it no longer fires. Disconnecting twice is
// a no-op.
func (c Connection) Disconnect() {
	if c.sig == nil {
		return
	}
	s := c.sig.slots
	for i := range s {
		if s[i].id == c.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = slotEntry{}
			c.sig.slots = s[:len(s)-1]
			return
		}
	}
}

// SignalSet holds named signals, created on first use.
type SignalSet struct {
	signals map[string]*Signal
}

// Get returns the named signal, creating it if needed.
func (ss *SignalSet) Get(name string) *Signal {
	if ss.signals == nil {
		ss.signals = make(map[string]*Signal)
	}
	sig, ok := ss.signals[name]
	if !ok {
		sig = NewSignal(name)
		ss.signals[name] = sig
	}
	return sig
}

// Emit emits the named signal if it has been created.
func (ss *SignalSet) Emit(name string, args ...any) {
	if sig, ok := ss.signals[name]; ok {
		sig.Emit(args...)
	}
}

// Names returns the created signal names, sorted.
func (ss *SignalSet) Names() []string {
	names := make([]string, 0, len(ss.signals))
	for n := range ss.signals {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Signaler is implemented by objects and adaptors that expose signals.
type Signaler interface {
	Signals() *SignalSet
}

// Slotter is implemented by adaptors that expose named slots.
type Slotter interface {
	Slots() map[string]Slot
}
