package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/nestview/pkg/model"
	"github.com/matzehuels/nestview/pkg/visibility"
)

func testView(t *testing.T) *visibility.View {
	t.Helper()
	g := model.Build(
		[]model.Container{
			{ID: "A", Name: "Sales", Tags: "group", Description: "front office"},
			{ID: "B", Name: "Billing", Tags: "group"},
			{ID: "C", Tags: "output"},
			{ID: "D", Tags: "input"},
			{ID: "E", Name: "Ledger", Meta: model.Metadata{"cost": "low"}},
		},
		[]model.ChildEntry{
			{ContainerID: "A", Children: []model.ChildRef{{ID: "C"}}},
			{ContainerID: "B", Children: []model.ChildRef{{ID: "D"}}},
		},
		[]model.Relationship{{Source: "C", Target: "D"}, {Source: "B", Target: "E", Label: "posts"}},
	)
	v, err := visibility.Resolve(context.Background(), g, "", visibility.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(testView(t), Options{})

	for _, want := range []string{
		"digraph G",
		"rankdir=LR",
		`"A" [label="Sales", shape=folder`,
		`tooltip="front office"`,
		`"E" [label="Ledger"]`,
		`"B" -> "E" [label="posts"]`,
		`"A" -> "B" [style=dashed, color="#3e6bbf", tailport=e, headport=w]`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q in:\n%s", want, dot)
		}
	}
}

func TestToDOT_Ranks(t *testing.T) {
	dot := ToDOT(testView(t), Options{Ranks: map[string]int{"A": 0, "B": 1, "E": 2}})
	if !strings.Contains(dot, `{ rank=same; "B"; }`) {
		t.Errorf("ToDOT() missing rank constraint:\n%s", dot)
	}
}

func TestFmtLabel(t *testing.T) {
	n := visibility.Node{
		ID:   "x",
		Name: "Ledger",
		Tags: model.ParseTags("input"),
		Role: model.RoleOf(model.ParseTags("input")),
		Meta: model.Metadata{"cost": "low", "budget": 5},
	}

	if got := fmtLabel(n, false); got != "Ledger" {
		t.Errorf("fmtLabel() simple = %q, want %q", got, "Ledger")
	}
	got := fmtLabel(n, true)
	for _, want := range []string{"tags: input", "budget: 5\ncost: low"} {
		if !strings.Contains(got, want) {
			t.Errorf("fmtLabel() detailed missing %q in %q", want, got)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="44pt" viewBox="0.00 0.00 62.00 44.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 62.00 44.00" width="62" height="44"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg/>")); string(got) != "<svg/>" {
		t.Error("normalizeViewBox() should leave svg without viewBox untouched")
	}
}
