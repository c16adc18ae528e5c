package io

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/nestview/pkg/errors"
	"github.com/matzehuels/nestview/pkg/model"
	"github.com/matzehuels/nestview/pkg/render/scene"
)

// Format names a dataset encoding.
type Format string

// Supported dataset encodings.
const (
	FormatAuto Format = ""
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Dataset is the raw input of one diagram.
type Dataset struct {
	Containers    []model.Container      `json:"containers" yaml:"containers"`
	Children      []model.ChildEntry     `json:"children,omitempty" yaml:"children,omitempty"`
	Relationships map[string]any         `json:"relationships,omitempty" yaml:"relationships,omitempty"`
	Grid          *scene.Grid            `json:"grid,omitempty" yaml:"grid,omitempty"`
	Positions     map[string]model.Point `json:"positions,omitempty" yaml:"positions,omitempty"`
}

// Graph builds the annotated graph model. Malformed relationship keys are
// returned alongside the graph; they never prevent a build.
func (d *Dataset) Graph() (*model.Graph, []error) {
	rels, errs := model.ParseRelationships(d.Relationships)
	return model.Build(d.Containers, d.Children, rels), errs
}

// FormatFromPath maps a file extension to a Format.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatAuto
}

// Read decodes a dataset from r.
//
// An empty document is rejected; a document with no containers is valid
// and renders as an empty diagram.
func Read(r io.Reader, format Format) (*Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read dataset")
	}
	return Decode(data, format)
}

// Decode decodes a dataset held in memory.
func Decode(data []byte, format Format) (*Dataset, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "dataset is empty")
	}
	if format == FormatAuto {
		format = sniff(trimmed)
	}

	var d Dataset
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(trimmed, &d); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode JSON dataset")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(trimmed, &d); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode YAML dataset")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown dataset format %q", format)
	}
	return &d, nil
}

// ReadFile reads a dataset file, choosing the decoder from its extension.
func ReadFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "open %s", path)
	}
	d, err := Decode(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Write encodes d to w in the given format. FormatAuto writes JSON.
func Write(d *Dataset, w io.Writer, format Format) error {
	switch format {
	case FormatAuto, FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return enc.Close()
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown dataset format %q", format)
	}
	return nil
}

// WriteFile writes d to path, choosing the encoder from its extension.
func WriteFile(d *Dataset, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(d, f, FormatFromPath(path)); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func sniff(data []byte) Format {
	if data[0] == '{' || data[0] == '[' {
		return FormatJSON
	}
	return FormatYAML
}
