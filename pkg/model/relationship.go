package model

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// KeySeparator joins source and target IDs in a relationship map key.
const KeySeparator = "--"

// Relationship is a directed flow between two containers.
type Relationship struct {
	Source      string `json:"source" yaml:"source"`
	Target      string `json:"target" yaml:"target"`
	Label       string `json:"label,omitempty" yaml:"label,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Key returns the "source--target" map key of r.
func (r Relationship) Key() string { return r.Source + KeySeparator + r.Target }

// ParseRelationships decodes a relationship map.
//
// Values may be true, a label string, or an object with "label" and
// "description" fields. Falsy values (false, nil, "", 0) mean no
// relationship. Keys are processed in sorted order so the result does not
// depend on map iteration. Malformed keys are returned as errors alongside
// the relationships that did parse; they are never fatal.
func ParseRelationships(m map[string]any) ([]Relationship, []error) {
	var (
		rels []Relationship
		errs []error
	)
	for _, key := range slices.Sorted(maps.Keys(m)) {
		src, tgt, ok := strings.Cut(key, KeySeparator)
		src, tgt = strings.TrimSpace(src), strings.TrimSpace(tgt)
		if !ok || src == "" || tgt == "" {
			errs = append(errs, fmt.Errorf("relationship key %q: want <source>--<target>", key))
			continue
		}
		r := Relationship{Source: src, Target: tgt}
		switch v := m[key].(type) {
		case nil:
			continue
		case bool:
			if !v {
				continue
			}
		case string:
			if v == "" {
				continue
			}
			r.Label = v
		case float64:
			if v == 0 {
				continue
			}
		case int:
			if v == 0 {
				continue
			}
		case map[string]any:
			r.Label, _ = v["label"].(string)
			r.Description, _ = v["description"].(string)
		default:
			errs = append(errs, fmt.Errorf("relationship %q: unsupported value type %T", key, v))
			continue
		}
		rels = append(rels, r)
	}
	return rels, errs
}
