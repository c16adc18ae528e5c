// Package graph defines the node/edge wire format of a resolved view.
//
// This is what live rendering surfaces consume: every visible node with its
// type, top-left position and display data, and every edge with its optional
// label payload and group port handles.
//
// # Architecture
//
// The package sits at the serialization boundary between internal
// representations and external consumers:
//
//   - [Graph], [Node], [Edge]: serialization types (this package)
//   - pkg/visibility.View: what is visible at a scope
//   - pkg/layout.Layout: where it is
//   - pkg/handles: port positions on groups
//
// Use [FromView] to combine them.
//
// # Wire Format
//
//	{
//	  "nodes": [
//	    {"id": "A", "type": "group", "position": {"x": 0, "y": 0},
//	     "data": {"label": "Sales", "role": "group", "ports": [...]}}
//	  ],
//	  "edges": [
//	    {"id": "A->B#C->D", "source": "A", "target": "B",
//	     "sourceHandle": "A:out:C", "targetHandle": "B:in:D",
//	     "data": {"originSource": "C", "originTarget": "D"}}
//	  ]
//	}
//
// # Recorded Layouts
//
// A saved Graph doubles as a recorded layout: [Graph.Positions] returns the
// positions in the form layout.Options.Keep accepts.
//
//	g, _ := graph.ReadFile("positions.json")
//	l := layout.Compute(view, layout.Options{Keep: g.Positions()})
//
// # Concurrency
//
// All functions are safe for concurrent use; none retain their arguments.
package graph
