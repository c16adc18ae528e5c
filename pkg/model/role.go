package model

import (
	"slices"
	"strings"
)

// Tag names with structural meaning.
const (
	TagGroup  = "group"
	TagInput  = "input"
	TagOutput = "output"
)

// Direction is the side of an interface leaf or handle.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionIn
	DirectionOut
	DirectionBoth
)

// String returns "in", "out", "both" or "" for DirectionNone.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "in"
	case DirectionOut:
		return "out"
	case DirectionBoth:
		return "both"
	}
	return ""
}

// RoleKind enumerates the structural roles a container can play.
type RoleKind int

const (
	RoleLeaf RoleKind = iota
	RoleGroup
	RoleInterface
)

// Role is the structural role of a container, resolved from its tags.
// Direction is only meaningful for RoleInterface.
type Role struct {
	Kind      RoleKind
	Direction Direction
}

// IsGroup reports whether the container is a composite node.
func (r Role) IsGroup() bool { return r.Kind == RoleGroup }

// IsInterface reports whether the container is an input/output leaf that
// may be rerouted through an ancestor when hidden.
func (r Role) IsInterface() bool { return r.Kind == RoleInterface }

// String returns "group", "leaf", or "interface:<direction>".
func (r Role) String() string {
	switch r.Kind {
	case RoleGroup:
		return "group"
	case RoleInterface:
		return "interface:" + r.Direction.String()
	}
	return "leaf"
}

// Tags is a normalized tag set: lower-cased, trimmed, deduplicated and sorted.
type Tags []string

// ParseTags splits a comma-separated tag string. Empty and whitespace-only
// entries are discarded, so "", "," and " , " all yield an empty set.
func ParseTags(s string) Tags {
	var out Tags
	for _, part := range strings.Split(s, ",") {
		t := strings.ToLower(strings.TrimSpace(part))
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Has reports whether tag is in the set.
func (t Tags) Has(tag string) bool {
	_, ok := slices.BinarySearch(t, tag)
	return ok
}

// String joins the tags back into canonical comma-separated form.
func (t Tags) String() string { return strings.Join(t, ",") }

// RoleOf derives a Role from a tag set. "group" wins over interface tags.
func RoleOf(t Tags) Role {
	if t.Has(TagGroup) {
		return Role{Kind: RoleGroup}
	}
	in, out := t.Has(TagInput), t.Has(TagOutput)
	switch {
	case in && out:
		return Role{Kind: RoleInterface, Direction: DirectionBoth}
	case in:
		return Role{Kind: RoleInterface, Direction: DirectionIn}
	case out:
		return Role{Kind: RoleInterface, Direction: DirectionOut}
	}
	return Role{Kind: RoleLeaf}
}
