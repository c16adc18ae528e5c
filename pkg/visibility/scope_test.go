package visibility

import (
	"slices"
	"testing"

	"github.com/matzehuels/nestview/pkg/errors"
	"github.com/matzehuels/nestview/pkg/model"
)

func scopeGraph() *model.Graph {
	return model.Build([]model.Container{
		{ID: "g1", Tags: "group"},
		{ID: "g2", Tags: "group", ParentID: "g1"},
		{ID: "g3", Tags: "group", ParentID: "g2"},
		{ID: "leaf"},
	}, nil, nil)
}

func TestScopeNavigation(t *testing.T) {
	g := scopeGraph()
	var s Scope

	if !s.IsTop() {
		t.Fatal("zero Scope should be top level")
	}
	for _, id := range []string{"g1", "g2", "g3"} {
		if err := s.Enter(g, id); err != nil {
			t.Fatalf("Enter(%s) error = %v", id, err)
		}
	}
	if got := s.Path(); !slices.Equal(got, []string{"g1", "g2", "g3"}) {
		t.Errorf("Path() = %v", got)
	}
	if got := s.History(); !slices.Equal(got, []string{"", "g1", "g2"}) {
		t.Errorf("History() = %v", got)
	}

	if !s.Back() || s.Active() != "g2" {
		t.Errorf("Back() -> %q, want g2", s.Active())
	}
	s.Back()
	s.Back()
	if !s.IsTop() {
		t.Errorf("Active() = %q, want top", s.Active())
	}
	if s.Back() {
		t.Error("Back() on empty history should report false")
	}
}

func TestScopeEnterRejectsNonGroups(t *testing.T) {
	g := scopeGraph()
	s := NewScope("g1")

	tests := []struct {
		id   string
		code errors.Code
	}{
		{"", errors.ErrCodeInvalidScope},
		{"leaf", errors.ErrCodeInvalidScope},
		{"nope", errors.ErrCodeUnknownGroup},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if err := s.Enter(g, tt.id); !errors.Is(err, tt.code) {
				t.Errorf("Enter(%q) = %v, want %s", tt.id, err, tt.code)
			}
			if s.Active() != "g1" {
				t.Errorf("scope moved to %q on error", s.Active())
			}
		})
	}
}

func TestScopeEnterSameGroupIsNoop(t *testing.T) {
	g := scopeGraph()
	s := NewScope("")
	_ = s.Enter(g, "g1")
	_ = s.Enter(g, "g1")
	if got := s.History(); len(got) != 1 {
		t.Errorf("History() = %v, want a single entry", got)
	}
}

func TestScopeHistoryLimit(t *testing.T) {
	g := scopeGraph()
	s := NewScope("")
	s.SetHistoryLimit(2)
	for _, id := range []string{"g1", "g2", "g3", "g1"} {
		if err := s.Enter(g, id); err != nil {
			t.Fatal(err)
		}
	}
	if got := s.History(); !slices.Equal(got, []string{"g2", "g3"}) {
		t.Errorf("History() = %v, want [g2 g3]", got)
	}
}

func TestScopeResetAndValidate(t *testing.T) {
	g := scopeGraph()
	s := NewScope("leaf")
	if err := s.Validate(g); !errors.Is(err, errors.ErrCodeInvalidScope) {
		t.Errorf("Validate() = %v, want INVALID_SCOPE", err)
	}
	s.Reset()
	if !s.IsTop() || len(s.History()) != 0 {
		t.Error("Reset() should clear scope and history")
	}
	if err := s.Validate(g); err != nil {
		t.Errorf("Validate() at top = %v", err)
	}
}
