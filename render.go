package scene2d

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// DefaultViewportID names the viewport created when the configuration
// declares none. It covers the scene rectangle.
const DefaultViewportID = "default"

// Render owns a 2D scene: its viewports and axes, the adaptor registry and
// z-ordered dispatch table, the deferred connections, and the view mapping
// device pixels to scene coordinates.
//
// A Render is driven from a single goroutine (the host UI loop). It is not
// safe for concurrent use.
type Render struct {
	// ClearColor fills the surface before adaptors draw. A zero alpha
	// leaves the surface untouched.
	ClearColor Color

	cfg          *Config
	scene        Rect
	antialiasing bool

	viewports     map[string]*Viewport
	viewportOrder []string
	active        *Viewport
	activeConn    Connection
	axes          map[string]*Axis
	view          *View

	reg   *registry
	conns *connections

	composite   *Composite
	unsubscribe func()
	objects     map[string]any
	started     bool

	debug           bool
	sink            EventSink
	injectQueue     []Event
	testRunner      *TestRunner
	input           inputState
	hostInput       bool
	screenshotQueue []string
	screenshotDir   string
}

// NewRender builds a render from a configuration tree. Every adaptor is
// registered in the configured state; nothing is instantiated until Start.
func NewRender(cfg *Config) (*Render, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &Render{
		cfg:          cfg,
		scene:        Rect{X: cfg.Scene.X, Y: cfg.Scene.Y, Width: cfg.Scene.Width, Height: cfg.Scene.Height},
		antialiasing: cfg.Scene.Antialiasing,
		viewports:    make(map[string]*Viewport),
		axes:         make(map[string]*Axis),
		reg:          newRegistry(),
		objects:      make(map[string]any),
	}
	if cfg.Scene.Background != "" {
		c, err := ParseColor(cfg.Scene.Background)
		if err != nil {
			return nil, configErr("scene", "", err)
		}
		r.ClearColor = c
	}

	for _, vc := range cfg.Viewports {
		r.viewports[vc.ID] = newViewportFromConfig(vc)
		r.viewportOrder = append(r.viewportOrder, vc.ID)
	}
	if len(r.viewportOrder) == 0 {
		r.viewports[DefaultViewportID] = NewViewport(DefaultViewportID, r.scene)
		r.viewportOrder = append(r.viewportOrder, DefaultViewportID)
	}
	for _, ac := range cfg.Axes {
		r.axes[ac.ID] = newAxis(ac)
	}

	for _, ac := range cfg.Adaptors {
		if err := r.reg.configure(ac); err != nil {
			return nil, err
		}
	}
	for _, cc := range cfg.Connections {
		for _, slot := range cc.Slots {
			src, _, _ := splitEndpoint(slot)
			if r.reg.get(src) == nil {
				return nil, configErr("connect", slot, fmt.Errorf("%w: unknown adaptor %q", ErrBadConnection, src))
			}
		}
	}

	r.view = NewView(r.scene.Width, r.scene.Height, Rect{})
	r.view.KeepAspect = cfg.Scene.AspectRatio
	r.SetActiveViewport(r.viewportOrder[0])
	return r, nil
}

// Config returns the configuration the render was built from. It must not
// be modified.
func (r *Render) Config() *Config { return r.cfg }

// Scene returns the scene rectangle.
func (r *Render) Scene() Rect { return r.scene }

// Antialiasing reports whether adaptors should draw antialiased.
func (r *Render) Antialiasing() bool { return r.antialiasing }

// View returns the device/scene mapping.
func (r *Render) View() *View { return r.view }

// Axis returns the named axis, or nil.
func (r *Render) Axis(id string) *Axis { return r.axes[id] }

// Viewport returns the named viewport, or nil.
func (r *Render) Viewport(id string) *Viewport { return r.viewports[id] }

// Viewports returns the viewports in declaration order.
func (r *Render) Viewports() []*Viewport {
	out := make([]*Viewport, 0, len(r.viewportOrder))
	for _, id := range r.viewportOrder {
		out = append(out, r.viewports[id])
	}
	return out
}

// ActiveViewport returns the viewport currently shown by the view.
func (r *Render) ActiveViewport() *Viewport { return r.active }

// SetActiveViewport makes the named viewport drive the view. Unknown ids
// are ignored and reported as false.
func (r *Render) SetActiveViewport(id string) bool {
	vp, ok := r.viewports[id]
	if !ok {
		return false
	}
	r.activeConn.Disconnect()
	r.active = vp
	r.view.SetViewport(vp.Rect())
	r.activeConn = vp.Signals().Get(SignalModified).Connect(func(...any) {
		r.view.SetViewport(vp.Rect())
	})
	return true
}

// MapToScene converts a device point to scene coordinates.
func (r *Render) MapToScene(p Vec2) Vec2 { return r.view.MapToScene(p) }

// SceneToDevice converts a scene point to device coordinates.
func (r *Render) SceneToDevice(p Vec2) Vec2 { return r.view.SceneToDevice(p) }

// UpdateSceneSize recomputes the scene rectangle as the union of the live
// adaptors' bounding rectangles, enlarged by ratioPercent percent on each
// side. With no bounded adaptor the scene is left unchanged.
func (r *Render) UpdateSceneSize(ratioPercent float64) Rect {
	var bounds Rect
	for _, id := range r.reg.ascending() {
		d := r.reg.get(id)
		if b, ok := d.instance.(Bounded); ok {
			bounds = bounds.Union(b.BoundingRect())
		}
	}
	if bounds.IsEmpty() {
		return r.scene
	}
	if ratioPercent > 0 {
		bounds = bounds.Grow(ratioPercent)
	}
	r.scene = bounds
	return r.scene
}

// SetDebugMode enables per-frame timing logs at debug level.
func (r *Render) SetDebugMode(enabled bool) { r.debug = enabled }

// SetEventSink forwards every dispatched event, accepted or not, to sink.
// Pass nil to stop forwarding.
func (r *Render) SetEventSink(sink EventSink) { r.sink = sink }

// Started reports whether the render is observing a composite.
func (r *Render) Started() bool { return r.started }

// RegisteredObject returns the object bound under key in the observed
// composite, or nil and false when the key is unknown.
func (r *Render) RegisteredObject(key string) (any, bool) {
	obj, ok := r.objects[key]
	return obj, ok
}

// Adaptor returns the live instance of an adaptor, or nil if it is not
// started.
func (r *Render) Adaptor(id string) Adaptor {
	if d := r.reg.get(id); d != nil {
		return d.instance
	}
	return nil
}

// AdaptorState returns the lifecycle state of an adaptor.
func (r *Render) AdaptorState(id string) AdaptorState {
	if d := r.reg.get(id); d != nil {
		return d.state
	}
	return StateUnbound
}

// AdaptorIDs returns the configured adaptor ids in declaration order.
func (r *Render) AdaptorIDs() []string {
	return append([]string(nil), r.reg.order...)
}

// AdaptorsOf returns the adaptor ids bound to an object key, in
// declaration order.
func (r *Render) AdaptorsOf(key string) []string {
	return append([]string(nil), r.reg.adaptorsOf(key)...)
}

// DispatchOrder returns the live adaptor ids from topmost to bottommost.
func (r *Render) DispatchOrder() []string { return r.reg.descending() }

// EffectiveZ returns the z-value a live adaptor is drawn at. Values are
// unique and increase with dispatch order; an adaptor whose declared value
// is taken sits ZEpsilon above the adaptor below it.
func (r *Render) EffectiveZ(id string) (float64, bool) { return r.reg.effectiveZ(id) }

// Update advances viewport transitions, runs the test runner and processes
// one frame of input. Call once per tick.
func (r *Render) Update() {
	dt := float32(1.0 / float64(ebiten.TPS()))
	r.update(dt)
}

func (r *Render) update(dt float32) {
	if r.testRunner != nil {
		r.testRunner.step(r)
	}
	for _, id := range r.viewportOrder {
		r.viewports[id].Update(dt)
	}
	if r.processInjectedInput() {
		return
	}
	if r.hostInput {
		r.processInput()
	}
}

// Draw fills the surface with ClearColor and draws every live Drawer
// adaptor in ascending z order.
func (r *Render) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if r.debug {
		t0 = time.Now()
	}

	if r.ClearColor.A > 0 {
		screen.Fill(r.ClearColor.toRGBA())
	}
	drawn := 0
	for _, id := range r.reg.ascending() {
		d := r.reg.get(id)
		if dr, ok := d.instance.(Drawer); ok {
			dr.Draw(screen, r.view)
			drawn++
		}
	}

	if r.debug {
		r.debugLog(debugStats{drawTime: time.Since(t0), adaptorCount: len(r.reg.table), drawnCount: drawn})
	}
	r.flushScreenshots(screen)
}

// Resize reports a new device size. The view is updated and a resize event
// is broadcast to every ResizeListener.
func (r *Render) Resize(w, h float64) {
	oldW, oldH := r.view.DeviceSize()
	if oldW == w && oldH == h {
		return
	}
	r.DispatchInteraction(&Event{
		Type:    EventResize,
		Size:    Vec2{X: w, Y: h},
		OldSize: Vec2{X: oldW, Y: oldH},
	})
}
