package scene2d

import (
	"fmt"
	"sort"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// Adaptor binds one composite object to a visual representation in the
// scene. The Render calls these methods, always from the UI goroutine:
//
//	SetRender, SetObject, Configure, SetZValue, Start   (start)
//	SetObject, Swap                                    (object replaced)
//	Update                                             (slot "update" by convention)
//	Stop                                               (object removed / render stopped)
type Adaptor interface {
	SetRender(r *Render)
	SetObject(obj any)
	Configure(cfg AdaptorConfig) error
	Start() error
	Update()
	Swap()
	Stop()
	ZValue() float64
	SetZValue(z float64)
}

// InteractionHandler is implemented by adaptors that take part in event
// dispatch. Setting e.Accepted stops the dispatch pass.
type InteractionHandler interface {
	ProcessInteraction(e *Event)
}

// ResizeListener is implemented by adaptors that recompute geometry when the
// device is resized. Resize events bypass the accept chain.
type ResizeListener interface {
	ProcessResize(e *Event)
}

// Drawer is implemented by adaptors with a visual representation.
type Drawer interface {
	Draw(dst *ebiten.Image, v *View)
}

// Bounded is implemented by adaptors whose visual extent contributes to
// Render.UpdateSceneSize. The rectangle is in scene coordinates.
type Bounded interface {
	BoundingRect() Rect
}

// Factory creates an unconfigured adaptor instance.
type Factory func() Adaptor

var (
	factoriesMu sync.RWMutex
	factories   = make(map[string]Factory)
)

// RegisterAdaptorType makes an adaptor type available by name. It is meant
// to be called from init functions and panics if name is empty, factory is
// nil or name is already registered.
func RegisterAdaptorType(name string, factory Factory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	if name == "" || factory == nil {
		panic("scene2d: RegisterAdaptorType with empty name or nil factory")
	}
	if _, dup := factories[name]; dup {
		panic("scene2d: RegisterAdaptorType called twice for " + name)
	}
	factories[name] = factory
}

// NewAdaptor instantiates a registered adaptor type.
func NewAdaptor(typeName string) (Adaptor, error) {
	factoriesMu.RLock()
	f, ok := factories[typeName]
	factoriesMu.RUnlock()
	if !ok {
		return nil, configErr("adaptor", typeName, ErrUnknownAdaptorType)
	}
	a := f()
	if a == nil {
		return nil, configErr("adaptor", typeName, fmt.Errorf("factory returned nil"))
	}
	return a, nil
}

// AdaptorTypes returns the registered type names, sorted.
func AdaptorTypes() []string {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	names := make([]string, 0, len(factories))
	for n := range factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// AdaptorBase implements the bookkeeping part of Adaptor. Embed it and
// call its Configure from the embedding type's Configure.
type AdaptorBase struct {
	ID      string
	Opacity float64

	render     *Render
	object     any
	zValue     float64
	xAxisID    string
	yAxisID    string
	viewportID string
}

// SetRender stores the owning render.
func (b *AdaptorBase) SetRender(r *Render) { b.render = r }

// Render returns the owning render.
func (b *AdaptorBase) Render() *Render { return b.render }

// SetObject stores the bound object.
func (b *AdaptorBase) SetObject(obj any) { b.object = obj }

// Object returns the bound object.
func (b *AdaptorBase) Object() any { return b.object }

// ZValue returns the declared layering key.
func (b *AdaptorBase) ZValue() float64 { return b.zValue }

// SetZValue sets the declared layering key.
func (b *AdaptorBase) SetZValue(z float64) { b.zValue = z }

// Configure reads the attributes shared by all adaptors.
func (b *AdaptorBase) Configure(cfg AdaptorConfig) error {
	b.ID = cfg.ID
	b.zValue = cfg.ZValue
	b.Opacity = 1
	if cfg.Opacity != nil {
		b.Opacity = *cfg.Opacity
	}
	b.xAxisID = cfg.XAxis
	b.yAxisID = cfg.YAxis
	b.viewportID = cfg.Viewport
	return nil
}

// XAxis returns the adaptor's x axis, or nil for an identity mapping.
func (b *AdaptorBase) XAxis() *Axis { return b.axis(b.xAxisID) }

// YAxis returns the adaptor's y axis, or nil for an identity mapping.
func (b *AdaptorBase) YAxis() *Axis { return b.axis(b.yAxisID) }

func (b *AdaptorBase) axis(id string) *Axis {
	if id == "" || b.render == nil {
		return nil
	}
	return b.render.Axis(id)
}

// Viewport returns the adaptor's configured viewport, falling back to the
// render's active viewport.
func (b *AdaptorBase) Viewport() *Viewport {
	if b.render == nil {
		return nil
	}
	if b.viewportID != "" {
		if vp := b.render.Viewport(b.viewportID); vp != nil {
			return vp
		}
	}
	return b.render.ActiveViewport()
}

// MapAdaptorToScene converts a point from adaptor data space to the scene
// through the adaptor's axes.
func (b *AdaptorBase) MapAdaptorToScene(p Vec2) Vec2 {
	if ax := b.XAxis(); ax != nil {
		p.X = ax.ToScene(p.X)
	}
	if ay := b.YAxis(); ay != nil {
		p.Y = ay.ToScene(p.Y)
	}
	return p
}

// MapSceneToAdaptor is the inverse of MapAdaptorToScene.
func (b *AdaptorBase) MapSceneToAdaptor(p Vec2) Vec2 {
	if ax := b.XAxis(); ax != nil {
		p.X = ax.FromScene(p.X)
	}
	if ay := b.YAxis(); ay != nil {
		p.Y = ay.FromScene(p.Y)
	}
	return p
}
