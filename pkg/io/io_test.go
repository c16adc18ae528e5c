package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/nestview/pkg/errors"
	"github.com/matzehuels/nestview/pkg/model"
)

const jsonDataset = `{
  "containers": [
    {"id": "A", "name": "Intake", "tags": "group"},
    {"id": "B", "name": "Review", "tags": "group"},
    {"id": "C", "name": "Form", "tags": "output"},
    {"id": "D", "name": "Checklist", "tags": "input"}
  ],
  "children": [
    {"containerId": "A", "children": [{"id": "C"}]},
    {"containerId": "B", "children": [{"id": "D"}]}
  ],
  "relationships": {"C--D": "submits", "A--Z": false}
}`

const yamlDataset = `
containers:
  - id: A
    name: Intake
    tags: group
  - id: C
    name: Form
    tags: output
    meta:
      score: 4
children:
  - containerId: A
    children:
      - id: C
relationships:
  C--A:
    label: loops back
    description: rework
  bad-key: true
grid:
  rows:
    - id: r1
      label: Now
      start: 0
      size: 100
`

func TestDecodeJSON(t *testing.T) {
	d, err := Decode([]byte(jsonDataset), FormatAuto)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(d.Containers) != 4 || len(d.Children) != 2 {
		t.Fatalf("got %d containers, %d children", len(d.Containers), len(d.Children))
	}

	g, errs := d.Graph()
	if len(errs) != 0 {
		t.Errorf("unexpected relationship errors: %v", errs)
	}
	if g.Len() != 4 {
		t.Errorf("graph nodes = %d, want 4", g.Len())
	}
	if !g.IsGroup("A") || g.IsGroup("C") {
		t.Error("roles not derived from tags")
	}
}

func TestDecodeYAML(t *testing.T) {
	d, err := Decode([]byte(yamlDataset), FormatAuto)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if d.Grid == nil || len(d.Grid.Rows) != 1 || d.Grid.Rows[0].Size != 100 {
		t.Errorf("grid = %+v", d.Grid)
	}
	if d.Containers[1].Meta["score"] != 4 {
		t.Errorf("meta score = %#v", d.Containers[1].Meta["score"])
	}

	g, errs := d.Graph()
	if len(errs) != 1 {
		t.Errorf("want one malformed key error, got %v", errs)
	}
	found := false
	for _, p := range g.Pairs() {
		if p.Source == "C" && p.Target == "A" {
			found = true
			if p.Label != "loops back" || p.Description != "rework" {
				t.Errorf("pair payload = %+v", p)
			}
		}
	}
	if !found {
		t.Error("relationship C--A missing")
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
		code   errors.Code
	}{
		{"empty", "  \n", FormatAuto, errors.ErrCodeInvalidInput},
		{"bad json", "{", FormatJSON, errors.ErrCodeInvalidInput},
		{"bad yaml", "containers: [", FormatYAML, errors.ErrCodeInvalidInput},
		{"unknown format", "{}", Format("toml"), errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data), tt.format)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"a.json":     FormatJSON,
		"a.YAML":     FormatYAML,
		"dir/b.yml":  FormatYAML,
		"noext":      FormatAuto,
		"data.jsonl": FormatAuto,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestWriteFileReadFile(t *testing.T) {
	d, err := Decode([]byte(jsonDataset), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"out.json", "out.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := WriteFile(d, path); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			back, err := ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			if len(back.Containers) != len(d.Containers) || back.Containers[2].Tags != "output" {
				t.Errorf("containers differ after round trip: %+v", back.Containers)
			}
		})
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}

func TestReadPositions(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
		want   map[string]model.Point
	}{
		{
			name: "plain map",
			data: `{"A": {"x": 10, "y": 20}}`,
			want: map[string]model.Point{"A": {X: 10, Y: 20}},
		},
		{
			name: "graph export",
			data: `{"nodes": [{"id": "A", "type": "leaf", "position": {"x": 1, "y": 2}, "data": {"label": "A", "role": "leaf"}}], "edges": []}`,
			want: map[string]model.Point{"A": {X: 1, Y: 2}},
		},
		{
			name:   "yaml map",
			data:   "B:\n  x: 3\n  y: 4\n",
			format: FormatYAML,
			want:   map[string]model.Point{"B": {X: 3, Y: 4}},
		},
		{
			name: "empty",
			data: "",
			want: map[string]model.Point{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadPositions(strings.NewReader(tt.data), tt.format)
			if err != nil {
				t.Fatalf("ReadPositions: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for id, p := range tt.want {
				if got[id] != p {
					t.Errorf("%s = %v, want %v", id, got[id], p)
				}
			}
		})
	}
}

func TestWritePositionsRoundTrip(t *testing.T) {
	pos := map[string]model.Point{"b": {X: 1.5, Y: -2}, "a": {X: 0, Y: 7}}
	var buf bytes.Buffer
	if err := WritePositions(pos, &buf); err != nil {
		t.Fatal(err)
	}
	if strings.Index(buf.String(), `"a"`) > strings.Index(buf.String(), `"b"`) {
		t.Errorf("keys not sorted:\n%s", buf.String())
	}

	path := filepath.Join(t.TempDir(), "pos.json")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	back, err := ReadPositionsFile(path)
	if err != nil {
		t.Fatalf("ReadPositionsFile: %v\n%s", err, buf.String())
	}
	for id, p := range pos {
		if back[id] != p {
			t.Errorf("%s = %v, want %v", id, back[id], p)
		}
	}
}
