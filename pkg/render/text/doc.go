// Package text lays out the multi-segment text drawn inside node boxes and
// edge label chips.
//
// A node's display text is a list of [Segment] values (title, score, budget
// and so on), each with its own font size, weight and color. [Layout] wraps
// every segment against a maximum content width using a [Measurer] and
// returns a [Block] whose size is clamped to the configured box bounds.
//
// Two measurers are provided. [FaceMeasurer] measures with the embedded Go
// fonts and matches what the PNG sink draws. [EstimateMeasurer] uses a fixed
// average character width scaled by terminal cell width, and is the fallback
// whenever fonts cannot be loaded. Passing a nil Measurer anywhere selects
// the estimate.
package text
