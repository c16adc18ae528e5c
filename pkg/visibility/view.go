package visibility

import (
	"fmt"
	"strings"

	"github.com/matzehuels/nestview/pkg/model"
)

// Node type names as exposed to rendering surfaces.
const (
	TypeGroup = "group"
	TypeLeaf  = "leaf"
)

// View is the visible slice of a graph at one scope.
type View struct {
	Scope   string
	Nodes   []Node
	Edges   []Edge
	Handles []Handle

	// Dropped lists relationships discarded because an endpoint is unknown.
	Dropped []Dropped
}

// Node is a visible container. It is an independent copy of the model node.
type Node struct {
	ID          string
	Name        string
	Description string
	Horizon     string
	Tags        model.Tags
	Role        model.Role
	Position    *model.Point
	Meta        model.Metadata

	// Members is the group's own direct children, used only to size and
	// place its ports. Empty for leaves.
	Members []model.ChildRef
}

// Type returns TypeGroup or TypeLeaf.
func (n Node) Type() string {
	if n.Role.IsGroup() {
		return TypeGroup
	}
	return TypeLeaf
}

// Title returns the display name, falling back to the ID.
func (n Node) Title() string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID
}

// Edge connects two visible nodes. SourceHandle and TargetHandle name the
// group ports used when an endpoint was rerouted.
type Edge struct {
	ID           string
	Source       string
	Target       string
	Label        string
	Description  string
	SourceHandle string
	TargetHandle string

	// OriginSource and OriginTarget are the pair the edge was derived from.
	// They equal Source and Target for direct edges.
	OriginSource string
	OriginTarget string
}

// Rerouted reports whether either endpoint was replaced by an ancestor.
func (e Edge) Rerouted() bool {
	return e.OriginSource != e.Source || e.OriginTarget != e.Target
}

// Handle is a port on a visible group standing in for a buried descendant.
type Handle struct {
	ID         string
	Owner      string
	Direction  model.Direction
	Buried     string
	BuriedName string
}

var idEscaper = strings.NewReplacer("%", "%25", ">", "%3E", "#", "%23", ":", "%3A")

// EscapeID percent-encodes the characters derived IDs use as separators, so
// that distinct container IDs always yield distinct edge and handle IDs.
// IDs without "%", ">", "#" or ":" are returned unchanged.
func EscapeID(id string) string { return idEscaper.Replace(id) }

// HandleID derives the stable identity of a handle.
func HandleID(owner string, dir model.Direction, buried string) string {
	return fmt.Sprintf("%s:%s:%s", EscapeID(owner), dir, EscapeID(buried))
}

// EdgeID derives the stable identity of an edge. Rerouted edges carry the
// originating pair so parallel reroutes between the same groups stay distinct.
func EdgeID(source, target, originSource, originTarget string) string {
	source, target = EscapeID(source), EscapeID(target)
	if source == EscapeID(originSource) && target == EscapeID(originTarget) {
		return source + "->" + target
	}
	return fmt.Sprintf("%s->%s#%s->%s", source, target, EscapeID(originSource), EscapeID(originTarget))
}

// Dropped records a relationship that could not be placed in the view.
type Dropped struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Reason string `json:"reason"`
}

// Node returns the visible node with the given ID.
func (v *View) Node(id string) (Node, bool) {
	for _, n := range v.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// HandlesFor returns the handles owned by group in registration order.
func (v *View) HandlesFor(group string) []Handle {
	var out []Handle
	for _, h := range v.Handles {
		if h.Owner == group {
			out = append(out, h)
		}
	}
	return out
}

// NodeIDs returns the visible node IDs in order.
func (v *View) NodeIDs() []string {
	ids := make([]string, len(v.Nodes))
	for i, n := range v.Nodes {
		ids[i] = n.ID
	}
	return ids
}

// EdgeIDs returns the edge IDs in order.
func (v *View) EdgeIDs() []string {
	ids := make([]string, len(v.Edges))
	for i, e := range v.Edges {
		ids[i] = e.ID
	}
	return ids
}
