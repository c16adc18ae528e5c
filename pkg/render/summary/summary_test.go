package summary

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/matzehuels/nestview/pkg/model"
	"github.com/matzehuels/nestview/pkg/render/route"
	"github.com/matzehuels/nestview/pkg/render/scene"
)

func testScene() *scene.Scene {
	return &scene.Scene{
		Scope:   "ops",
		ViewBox: route.Rect{X: -24, Y: -24, W: 500, H: 200},
		Columns: []scene.Band{
			{ID: "rank-0", Label: "Rank 1", Start: 0, Size: 100, Box: route.Rect{X: 0, Y: -20, W: 100, H: 120}},
			{ID: "rank-1", Label: "Rank 2", Start: 300, Size: 100, Box: route.Rect{X: 300, Y: -20, W: 100, H: 120}},
		},
		Nodes: []scene.Node{
			{ID: "a", Title: "Intake", Type: "leaf", Box: route.Rect{X: 0, Y: 0, W: 100, H: 50}, Column: "rank-0",
				Meta: model.Metadata{"score": 2, "budget": "10k"}},
			{ID: "b", Title: "Billing", Type: "group", Box: route.Rect{X: 300, Y: 0, W: 100, H: 50}, Column: "rank-1",
				Description: "collects\n  payments"},
		},
		Edges: []scene.Edge{
			{ID: "a->b", Source: "a", Target: "b", Label: "orders"},
			{ID: "b->a", Source: "b", Target: "a", Description: "refunds\nweekly"},
		},
	}
}

func TestBuild(t *testing.T) {
	s := Build(testScene(), Options{})

	if len(s.Nodes) != 2 || len(s.Edges) != 2 {
		t.Fatalf("nodes=%d edges=%d", len(s.Nodes), len(s.Edges))
	}
	if s.Grid == nil || s.Grid.X != 0 || s.Grid.Width != 400 {
		t.Errorf("grid = %+v, want x=0 width=400", s.Grid)
	}
	e := s.Edges[1]
	if e.SourceTitle != "Billing" || e.TargetTitle != "Intake" {
		t.Errorf("titles = %q -> %q", e.SourceTitle, e.TargetTitle)
	}
	if e.Label != "refunds" {
		t.Errorf("label = %q, want description fallback %q", e.Label, "refunds")
	}
}

func TestRightwardOnly(t *testing.T) {
	s := Build(testScene(), Options{RightwardOnly: true})
	if len(s.Edges) != 1 || s.Edges[0].ID != "a->b" {
		t.Errorf("edges = %+v, want only a->b", s.Edges)
	}
}

func TestText(t *testing.T) {
	text := Build(testScene(), Options{}).Text()

	order := []string{"scope: ops", "viewport:", "grid:", "## Rows (0)", "## Columns (2)", "## Nodes (2)", "## Edges (2)"}
	last := -1
	for _, s := range order {
		i := strings.Index(text, s)
		if i < 0 {
			t.Fatalf("missing %q in:\n%s", s, text)
		}
		if i < last {
			t.Errorf("%q out of order", s)
		}
		last = i
	}

	for _, want := range []string{
		`- a "Intake" [leaf] at (0.0, 0.0) size 100.0x50.0 cell=-/rank-0`,
		"    budget: 10k\n    score: 2\n",
		"    description: collects payments",
		`- a->b: "Intake" -> "Billing" label="orders"`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("text missing %q:\n%s", want, text)
		}
	}

	if again := Build(testScene(), Options{}).Text(); again != text {
		t.Error("text summary is not deterministic")
	}
}

func TestTopLevelScope(t *testing.T) {
	sc := testScene()
	sc.Scope = ""
	if text := Build(sc, Options{}).Text(); !strings.Contains(text, "scope: (top level)") {
		t.Errorf("top-level scope not named:\n%s", text)
	}
}

func TestJSON(t *testing.T) {
	data, err := Build(testScene(), Options{}).JSON()
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	if !strings.Contains(string(data), `"id": "a->b"`) {
		t.Errorf("edge ID escaped:\n%s", data)
	}
	var got Summary
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Scope != "ops" || len(got.Columns) != 2 || got.Nodes[1].Type != "group" {
		t.Errorf("decoded summary = %+v", got)
	}
}
