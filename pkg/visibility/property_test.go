package visibility

import (
	"context"
	"fmt"
	"slices"
	"testing"

	"pgregory.net/rapid"

	"github.com/matzehuels/nestview/pkg/model"
)

var tagChoices = []string{"", "group", "input", "output", "input,output", "team", " , "}

// genGraph draws a random container graph. Parent pointers, table entries and
// relationships may form cycles and may reference unknown IDs.
func genGraph(t *rapid.T) *model.Graph {
	n := rapid.IntRange(1, 12).Draw(t, "n")
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("c%d", i)
	}
	refs := append(slices.Clone(ids), "ghost")

	containers := make([]model.Container, n)
	for i, id := range ids {
		containers[i] = model.Container{
			ID:   id,
			Tags: rapid.SampledFrom(tagChoices).Draw(t, "tags"),
		}
		if rapid.Bool().Draw(t, "hasParent") {
			containers[i].ParentID = rapid.SampledFrom(ids).Draw(t, "parent")
		}
	}

	var table []model.ChildEntry
	for range rapid.IntRange(0, n).Draw(t, "tableRows") {
		row := model.ChildEntry{ContainerID: rapid.SampledFrom(ids).Draw(t, "row")}
		for range rapid.IntRange(0, 3).Draw(t, "kids") {
			row.Children = append(row.Children, model.ChildRef{ID: rapid.SampledFrom(refs).Draw(t, "kid")})
		}
		table = append(table, row)
	}

	var rels []model.Relationship
	for range rapid.IntRange(0, 2*n).Draw(t, "rels") {
		rels = append(rels, model.Relationship{
			Source: rapid.SampledFrom(refs).Draw(t, "src"),
			Target: rapid.SampledFrom(refs).Draw(t, "dst"),
		})
	}
	return model.Build(containers, table, rels)
}

func drawScope(t *rapid.T, g *model.Graph) string {
	choices := append([]string{""}, g.Groups()...)
	return rapid.SampledFrom(choices).Draw(t, "scope")
}

func TestPropertyDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g := genGraph(t)
		scope := drawScope(t, g)
		hops := rapid.IntRange(0, 5).Draw(t, "hops")

		first, err := Resolve(context.Background(), g, scope, Options{MaxHops: hops})
		if err != nil {
			t.Fatal(err)
		}
		second, _ := Resolve(context.Background(), g, scope, Options{MaxHops: hops})

		if !slices.Equal(first.NodeIDs(), second.NodeIDs()) {
			t.Fatalf("node order differs: %v vs %v", first.NodeIDs(), second.NodeIDs())
		}
		if !slices.Equal(first.EdgeIDs(), second.EdgeIDs()) {
			t.Fatalf("edge order differs: %v vs %v", first.EdgeIDs(), second.EdgeIDs())
		}
		if !slices.Equal(first.Handles, second.Handles) {
			t.Fatalf("handles differ")
		}
	})
}

func TestPropertyEdgesConnectVisibleNodes(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g := genGraph(t)
		v, err := Resolve(context.Background(), g, drawScope(t, g), Options{})
		if err != nil {
			t.Fatal(err)
		}
		visible := make(map[string]bool)
		for _, id := range v.NodeIDs() {
			visible[id] = true
		}
		seen := make(map[string]bool)
		for _, e := range v.Edges {
			if !visible[e.Source] || !visible[e.Target] {
				t.Fatalf("edge %s has an invisible endpoint", e.ID)
			}
			if seen[e.ID] {
				t.Fatalf("duplicate edge %s", e.ID)
			}
			seen[e.ID] = true
		}
		for _, h := range v.Handles {
			if !visible[h.Owner] || !g.IsGroup(h.Owner) {
				t.Fatalf("handle %s owned by invisible or non-group %s", h.ID, h.Owner)
			}
		}
	})
}

func TestPropertyAncestorSearchTerminates(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g := genGraph(t)
		hops := rapid.IntRange(1, 50).Draw(t, "hops")
		for _, n := range g.Nodes() {
			NearestVisibleGroup(g, n.ID, hops, func(string) bool { return rapid.Bool().Draw(t, "visible") })
		}
	})
}
