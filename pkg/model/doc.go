// Package model normalizes flat container and relationship records into the
// annotated node set the rest of nestview works on.
//
// # Overview
//
// A hosting application supplies three flat inputs: the container list, the
// parent→children table, and a relationship map keyed "source--target". [Build]
// merges them into a [Graph] whose [Node] values carry resolved children and
// parents plus a [Role] derived from tags.
//
//	g := model.Build(containers, table, rels)
//	n, _ := g.Node("billing")
//	if n.Role.IsGroup() {
//	    // composite node
//	}
//
// # Roles
//
// Tags are a comma-separated label set. The tag "group" marks a composite
// node; "input" and "output" mark an interface leaf whose relationships may be
// rerouted through an enclosing group when the leaf itself is hidden. The tag
// set is parsed once, at build time, into a [Role] so no later stage inspects
// tag strings.
//
// # Purity
//
// Build never mutates its inputs. Each call produces a fresh Graph; parents are
// recomputed on every build and are never stored on the input containers.
package model
