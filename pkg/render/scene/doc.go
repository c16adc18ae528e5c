// Package scene assembles a resolved view, its layout and its port
// allocation into a fully measured, positioned [Scene] ready for a sink.
//
// Building a scene is where text is wrapped, edges are routed, labels are
// placed and bounds are registered. Sinks (SVG, PNG, JSON) only draw what
// the scene already decided, so every output format agrees on geometry.
//
//	v, _ := visibility.Resolve(ctx, g, scope, visibility.Options{})
//	ports := handles.Allocate(v, handles.Options{})
//	opts := scene.Options{}
//	l := layout.Compute(v, layout.Options{Size: scene.Sizer(opts)})
//	sc := scene.Build(v, l, ports, opts)
package scene
