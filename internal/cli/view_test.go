package cli

import (
	"context"
	"strings"
	"testing"

	nvio "github.com/matzehuels/nestview/pkg/io"
	"github.com/matzehuels/nestview/pkg/visibility"
)

func resolveTestDataset(t *testing.T, scope string) *visibility.View {
	t.Helper()
	ds, err := nvio.Decode([]byte(testDataset), nvio.FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	g, _ := ds.Graph()
	v, err := visibility.Resolve(context.Background(), g, scope, visibility.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestViewTables(t *testing.T) {
	out := viewTables(resolveTestDataset(t, ""))

	for _, want := range []string{"top level", "Intake", "Review", "submits", "C → D"} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Dropped") {
		t.Errorf("unexpected dropped section:\n%s", out)
	}
}

func TestViewTablesDropped(t *testing.T) {
	v := &visibility.View{
		Scope:   "A",
		Dropped: []visibility.Dropped{{Source: "C", Target: "Z", Reason: visibility.ReasonUnknownTarget}},
	}
	out := viewTables(v)
	for _, want := range []string{"scope A", "Dropped relationships", "unknown target"} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
}
