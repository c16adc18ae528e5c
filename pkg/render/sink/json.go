package sink

import (
	"bytes"

	"github.com/goccy/go-json"

	"github.com/matzehuels/nestview/pkg/model"
	"github.com/matzehuels/nestview/pkg/render/scene"
)

type jsonOutput struct {
	Scope   string     `json:"scope,omitempty"`
	ViewBox jsonRect   `json:"viewBox"`
	Rows    []jsonBand `json:"rows,omitempty"`
	Columns []jsonBand `json:"columns,omitempty"`
	Nodes   []jsonNode `json:"nodes"`
	Edges   []jsonEdge `json:"edges"`
}

type jsonRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type jsonBand struct {
	ID    string   `json:"id"`
	Label string   `json:"label,omitempty"`
	Box   jsonRect `json:"box"`
}

type jsonNode struct {
	ID     string         `json:"id"`
	Type   string         `json:"type"`
	Title  string         `json:"title"`
	Box    jsonRect       `json:"box"`
	Lines  []string       `json:"lines"`
	Rank   int            `json:"rank"`
	Kept   bool           `json:"kept,omitempty"`
	Row    string         `json:"row,omitempty"`
	Column string         `json:"column,omitempty"`
	Ports  []jsonPort     `json:"ports,omitempty"`
	Meta   model.Metadata `json:"meta,omitempty"`
}

type jsonPort struct {
	ID        string      `json:"id"`
	Direction string      `json:"direction"`
	Label     string      `json:"label,omitempty"`
	Center    model.Point `json:"center"`
}

type jsonEdge struct {
	ID           string        `json:"id"`
	Source       string        `json:"source"`
	Target       string        `json:"target"`
	SourceHandle string        `json:"sourceHandle,omitempty"`
	TargetHandle string        `json:"targetHandle,omitempty"`
	Label        string        `json:"label,omitempty"`
	Lane         int           `json:"lane"`
	Lanes        int           `json:"lanes"`
	Points       []model.Point `json:"points"`
	LabelBox     *jsonRect     `json:"labelBox,omitempty"`
}

// RenderJSON exports the scene geometry as pretty-printed JSON: every box,
// port, path point and label chip in diagram units.
func RenderJSON(s *scene.Scene) ([]byte, error) {
	out := jsonOutput{
		Scope:   s.Scope,
		ViewBox: toJSONRect(s.ViewBox.X, s.ViewBox.Y, s.ViewBox.W, s.ViewBox.H),
		Nodes:   make([]jsonNode, 0, len(s.Nodes)),
		Edges:   make([]jsonEdge, 0, len(s.Edges)),
	}
	for _, b := range s.Rows {
		out.Rows = append(out.Rows, jsonBand{ID: b.ID, Label: b.Label, Box: toJSONRect(b.Box.X, b.Box.Y, b.Box.W, b.Box.H)})
	}
	for _, b := range s.Columns {
		out.Columns = append(out.Columns, jsonBand{ID: b.ID, Label: b.Label, Box: toJSONRect(b.Box.X, b.Box.Y, b.Box.W, b.Box.H)})
	}

	for _, n := range s.Nodes {
		jn := jsonNode{
			ID:     n.ID,
			Type:   n.Type,
			Title:  n.Title,
			Box:    toJSONRect(n.Box.X, n.Box.Y, n.Box.W, n.Box.H),
			Rank:   n.Rank,
			Kept:   n.Kept,
			Row:    n.Row,
			Column: n.Column,
			Meta:   n.Meta,
		}
		for _, l := range n.Text.Lines {
			jn.Lines = append(jn.Lines, l.Text)
		}
		for _, p := range n.Ports {
			jn.Ports = append(jn.Ports, jsonPort{ID: p.ID, Direction: p.Direction.String(), Label: p.Label, Center: p.Center})
		}
		out.Nodes = append(out.Nodes, jn)
	}

	for _, e := range s.Edges {
		je := jsonEdge{
			ID:           e.ID,
			Source:       e.Source,
			Target:       e.Target,
			SourceHandle: e.SourceHandle,
			TargetHandle: e.TargetHandle,
			Label:        e.Label,
			Lane:         e.Lane.Index,
			Lanes:        e.Lane.Count,
			Points:       e.Points,
		}
		if e.Chip != nil {
			r := toJSONRect(e.Chip.Box.X, e.Chip.Box.Y, e.Chip.Box.W, e.Chip.Box.H)
			je.LabelBox = &r
		}
		out.Edges = append(out.Edges, je)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func toJSONRect(x, y, w, h float64) jsonRect {
	return jsonRect{X: x, Y: y, Width: w, Height: h}
}
