// Package route computes the geometry of exported diagrams: orthogonal edge
// paths between boxes, perpendicular lane offsets that fan out parallel
// edges, label anchors at the arc-length midpoint, and the bounds registry
// that drives the document viewBox.
//
// All functions are pure. Coordinates use the SVG convention: x grows to the
// right, y grows downward.
package route
