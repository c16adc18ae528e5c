package cli

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	nvio "github.com/matzehuels/nestview/pkg/io"
	"github.com/matzehuels/nestview/pkg/visibility"
)

func newTestExplore(t *testing.T) exploreModel {
	t.Helper()
	ds, err := nvio.Decode([]byte(testDataset), nvio.FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	g, _ := ds.Graph()
	m, err := newExploreModel(g, "", 0, func(scope string) (*visibility.View, error) {
		return visibility.Resolve(context.Background(), g, scope, visibility.Options{})
	})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func press(m exploreModel, keys ...string) exploreModel {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "backspace":
			msg = tea.KeyMsg{Type: tea.KeyBackspace}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(exploreModel)
	}
	return m
}

func TestExploreEnterAndBack(t *testing.T) {
	m := newTestExplore(t)
	if len(m.view.Nodes) != 2 {
		t.Fatalf("top level nodes = %d, want 2", len(m.view.Nodes))
	}

	m = press(m, "enter")
	if m.scope.Active() != "A" {
		t.Fatalf("active = %q, want A", m.scope.Active())
	}
	if !strings.Contains(m.View(), "Top › Intake") {
		t.Errorf("breadcrumb missing:\n%s", m.View())
	}

	m = press(m, "backspace")
	if !m.scope.IsTop() {
		t.Errorf("active = %q after back, want top", m.scope.Active())
	}

	m = press(m, "backspace")
	if m.status == "" {
		t.Error("back at the first scope should set a status")
	}
}

func TestExploreLeafIsNotEnterable(t *testing.T) {
	m := newTestExplore(t)
	m = press(m, "enter") // into A, whose only node is leaf C
	m = press(m, "enter")
	if m.scope.Active() != "A" {
		t.Errorf("active = %q, want A", m.scope.Active())
	}
	if !strings.Contains(m.status, "not a group") {
		t.Errorf("status = %q", m.status)
	}
}

func TestExploreResetToTop(t *testing.T) {
	m := newTestExplore(t)
	m = press(m, "down", "enter")
	if m.scope.Active() != "B" {
		t.Fatalf("active = %q, want B", m.scope.Active())
	}
	m = press(m, "t")
	if !m.scope.IsTop() || len(m.scope.History()) != 0 {
		t.Errorf("reset left scope %q history %v", m.scope.Active(), m.scope.History())
	}
}

func TestExploreQuit(t *testing.T) {
	m := newTestExplore(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestExploreInvalidStart(t *testing.T) {
	ds, _ := nvio.Decode([]byte(testDataset), nvio.FormatJSON)
	g, _ := ds.Graph()
	_, err := newExploreModel(g, "C", 0, nil)
	if err == nil {
		t.Error("starting inside a leaf should fail")
	}
}
