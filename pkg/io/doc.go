// Package io reads and writes the data a diagram is drawn from.
//
// # Overview
//
// A [Dataset] bundles the three inputs of the graph model: the container
// list, the parent→children table, and the relationship map. It may also
// carry an optional row/column grid overlay and recorded node positions for
// keep-layout mode. Datasets are plain JSON or YAML documents:
//
//	{
//	  "containers": [
//	    {"id": "A", "name": "Intake", "tags": "group"},
//	    {"id": "C", "name": "Form", "tags": "output"}
//	  ],
//	  "children": [
//	    {"containerId": "A", "children": [{"id": "C"}]}
//	  ],
//	  "relationships": {
//	    "C--D": "submits",
//	    "A--B": {"label": "hands off", "description": "weekly batch"}
//	  }
//	}
//
// Relationship values follow [model.ParseRelationships]: true, a label
// string, or an object with label and description. Falsy values mean no
// relationship.
//
// # Formats
//
// [ReadFile] picks the decoder from the file extension (.json, .yaml,
// .yml). [Read] takes the format explicitly; [FormatAuto] sniffs the first
// non-space byte and treats "{" or "[" as JSON and anything else as YAML.
//
// # Positions
//
// [ReadPositions] accepts either a plain {"id": {"x": 0, "y": 0}} map or a
// graph export written by [graph.Write], so the node array a previous run
// produced can be fed back to keep its layout.
//
// [graph.Write]: github.com/matzehuels/nestview/pkg/graph.Write
package io
