package scene2d

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
)

const (
	recorderType = "test.recorder"
	inertType    = "test.inert"
)

func init() {
	RegisterAdaptorType(recorderType, func() Adaptor { return &recorder{} })
	RegisterAdaptorType(inertType, func() Adaptor { return &inert{} })
}

// trace collects lifecycle and dispatch calls of every recorder, in order.
var trace []string

type recorderConfig struct {
	Accept    bool      `yaml:"accept"`
	FailStart bool      `yaml:"failStart"`
	Bounds    []float64 `yaml:"bounds"`
}

// recorder is a stub adaptor that logs every call to trace.
type recorder struct {
	AdaptorBase
	cfg     recorderConfig
	signals SignalSet

	events  []EventType
	resizes []Vec2
	updates int
	swaps   int
	onEvent func(e *Event)
}

func (a *recorder) Configure(cfg AdaptorConfig) error {
	if err := a.AdaptorBase.Configure(cfg); err != nil {
		return err
	}
	return cfg.Decode(&a.cfg)
}

func (a *recorder) Start() error {
	trace = append(trace, "start:"+a.ID)
	if a.cfg.FailStart {
		return errors.New("start refused")
	}
	return nil
}

func (a *recorder) Update() { a.updates++ }

func (a *recorder) Swap() {
	a.swaps++
	trace = append(trace, "swap:"+a.ID)
}

func (a *recorder) Stop() { trace = append(trace, "stop:"+a.ID) }

func (a *recorder) Signals() *SignalSet { return &a.signals }

func (a *recorder) Slots() map[string]Slot {
	return map[string]Slot{
		SlotUpdate: func(...any) {
			a.Update()
			trace = append(trace, "slot:"+a.ID)
		},
	}
}

func (a *recorder) ProcessInteraction(e *Event) {
	trace = append(trace, "visit:"+a.ID)
	a.events = append(a.events, e.Type)
	if a.onEvent != nil {
		a.onEvent(e)
	}
	if a.cfg.Accept {
		e.Accepted = true
	}
}

func (a *recorder) ProcessResize(e *Event) {
	a.resizes = append(a.resizes, e.Size)
}

func (a *recorder) BoundingRect() Rect {
	if len(a.cfg.Bounds) != 4 {
		return Rect{}
	}
	b := a.cfg.Bounds
	return Rect{X: b[0], Y: b[1], Width: b[2], Height: b[3]}
}

// inert has no optional capabilities.
type inert struct{ AdaptorBase }

func (*inert) Start() error { return nil }
func (*inert) Update()      {}
func (*inert) Swap()        {}
func (*inert) Stop()        {}

// testObject is a composite object with signals.
type testObject struct {
	name    string
	signals SignalSet
}

func (o *testObject) Signals() *SignalSet { return &o.signals }

func newObject(name string) *testObject { return &testObject{name: name} }

func recCfg(id, object string, z float64, settings map[string]any) AdaptorConfig {
	return AdaptorConfig{ID: id, Type: recorderType, Object: object, ZValue: z, Config: settings}
}

func newTestRender(t *testing.T, cfg *Config) *Render {
	t.Helper()
	trace = nil
	r, err := NewRender(cfg)
	if err != nil {
		t.Fatalf("NewRender: %v", err)
	}
	return r
}

// startRender starts r observing a new composite filled with objects.
func startRender(t *testing.T, r *Render, objects map[string]any) *Composite {
	t.Helper()
	c := NewComposite()
	if err := c.AddAll(objects); err != nil {
		t.Fatalf("AddAll: %v", err)
	}
	if err := r.Start(c); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return c
}

func rec(t *testing.T, r *Render, id string) *recorder {
	t.Helper()
	a, ok := r.Adaptor(id).(*recorder)
	if !ok {
		t.Fatalf("adaptor %q is not a live recorder", id)
	}
	return a
}

// stepFrames runs n frames of Render.update.
func stepFrames(r *Render, n int) {
	for i := 0; i < n; i++ {
		r.update(1.0 / 60)
	}
}

// --- log capture ---

type capturedRecord struct {
	level slog.Level
	msg   string
	attrs map[string]string
}

type captureHandler struct {
	mu      sync.Mutex
	records []capturedRecord
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	rec := capturedRecord{level: r.Level, msg: r.Message, attrs: make(map[string]string)}
	r.Attrs(func(a slog.Attr) bool {
		rec.attrs[a.Key] = a.Value.String()
		return true
	})
	h.mu.Lock()
	h.records = append(h.records, rec)
	h.mu.Unlock()
	return nil
}

func (h *captureHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *captureHandler) WithGroup(string) slog.Handler      { return h }

// withMessage returns the records logged with msg.
func (h *captureHandler) withMessage(msg string) []capturedRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []capturedRecord
	for _, r := range h.records {
		if r.msg == msg {
			out = append(out, r)
		}
	}
	return out
}

func captureLogs(t *testing.T) *captureHandler {
	t.Helper()
	h := &captureHandler{}
	SetLogger(slog.New(h))
	t.Cleanup(func() { SetLogger(nil) })
	return h
}
