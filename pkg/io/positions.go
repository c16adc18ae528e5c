package io

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/nestview/pkg/errors"
	"github.com/matzehuels/nestview/pkg/graph"
	"github.com/matzehuels/nestview/pkg/model"
)

// ReadPositions decodes recorded top-left positions keyed by node ID.
//
// The document is either a plain position map or a graph export with a
// "nodes" array; the latter contributes each node's position.
func ReadPositions(r io.Reader, format Format) (map[string]model.Point, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read positions")
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return map[string]model.Point{}, nil
	}
	if format == FormatAuto {
		format = sniff(data)
	}

	var top map[string]any
	if err := unmarshal(data, format, &top); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode positions")
	}
	if _, ok := top["nodes"]; ok {
		var g graph.Graph
		if err := unmarshal(data, format, &g); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode graph positions")
		}
		return g.Positions(), nil
	}

	out := make(map[string]model.Point)
	if err := unmarshal(data, format, &out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode positions")
	}
	return out, nil
}

// ReadPositionsFile reads a positions file, choosing the decoder from its
// extension.
func ReadPositionsFile(path string) (map[string]model.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "open %s", path)
	}
	defer f.Close()
	return ReadPositions(f, FormatFromPath(path))
}

// WritePositions encodes positions as a JSON map with sorted keys.
func WritePositions(pos map[string]model.Point, w io.Writer) error {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, id := range slices.Sorted(maps.Keys(pos)) {
		if i > 0 {
			buf.WriteString(",")
		}
		key, err := json.Marshal(id)
		if err != nil {
			return fmt.Errorf("encode %q: %w", id, err)
		}
		fmt.Fprintf(&buf, "\n  %s: {\"x\": %g, \"y\": %g}", key, pos[id].X, pos[id].Y)
	}
	if len(pos) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
	_, err := w.Write(buf.Bytes())
	return err
}

func unmarshal(data []byte, format Format, v any) error {
	if format == FormatYAML {
		return yaml.Unmarshal(data, v)
	}
	return json.Unmarshal(data, v)
}
