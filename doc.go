// Package scene2d is a configuration-driven 2D scene engine for [Ebitengine].
//
// A [Render] owns a logical scene rectangle, named viewports and axes, and a
// set of adaptors. Each adaptor binds one object of an observed [Composite]
// to a visual representation and, optionally, to interaction. Adaptors are
// declared in a YAML or TOML configuration and instantiated by type name
// from a registry filled with [RegisterAdaptorType].
//
// # Quick start
//
//	cfg, err := scene2d.LoadConfig("scene.yaml")
//	if err != nil { ... }
//	r, err := scene2d.NewRender(cfg)
//	if err != nil { ... }
//
//	c := scene2d.NewComposite()
//	c.Set("viewport", r.Viewport("viewport"))
//	c.Set("tf", scene2d.NewPointList(scene2d.Vec2{X: 0, Y: 0}, scene2d.Vec2{X: 1, Y: 1}))
//
//	if err := r.Start(c); err != nil { ... }
//	scene2d.Run(r, scene2d.RunConfig{Title: "scene", Width: 800, Height: 600})
//
// # Lifecycle
//
// Adaptors start when their object enters the composite, swap when it is
// replaced, and stop when it leaves. Signal/slot connections declared in
// the configuration are held until every endpoint exists and are wired all
// at once for a given object key.
//
// # Layering and dispatch
//
// Adaptors are ordered by z-value. Input events are offered to them from
// the topmost down until one sets [Event.Accepted]. Adaptors that share a
// z-value keep their insertion order and are reported by [Render.EffectiveZ]
// with a [ZEpsilon] spacing.
//
// Built-in adaptor types are "Grid", "Square", "ViewportUpdater" and
// "Curve". The ecs subpackage forwards dispatch results into a [Donburi]
// world.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package scene2d
