package visibility

import (
	"slices"

	"github.com/matzehuels/nestview/pkg/errors"
	"github.com/matzehuels/nestview/pkg/model"
)

// DefaultHistoryLimit bounds the back-navigation stack.
const DefaultHistoryLimit = 32

// Scope is the active group plus back-navigation history.
// The zero value is the top-level scope with the default history limit.
type Scope struct {
	active  string
	history []string
	limit   int
}

// NewScope returns a scope positioned at active. It does not validate active;
// call [Scope.Validate] against a graph before resolving.
func NewScope(active string) *Scope {
	return &Scope{active: active}
}

// SetHistoryLimit changes the history bound. Values below 1 restore the default.
func (s *Scope) SetHistoryLimit(n int) {
	s.limit = n
	s.trim()
}

// Active returns the active group ID, or "" at the top level.
func (s *Scope) Active() string { return s.active }

// IsTop reports whether no group is active.
func (s *Scope) IsTop() bool { return s.active == "" }

// Validate checks that the active group, if any, names an existing group.
func (s *Scope) Validate(g *model.Graph) error {
	return validateActive(g, s.active)
}

// Enter drills into group id, pushing the current scope onto the history.
// The scope is unchanged when id is not a group in g.
func (s *Scope) Enter(g *model.Graph, id string) error {
	if id == "" {
		return errors.New(errors.ErrCodeInvalidScope, "group id must not be empty")
	}
	if err := validateActive(g, id); err != nil {
		return err
	}
	if id == s.active {
		return nil
	}
	s.history = append(s.history, s.active)
	s.active = id
	s.trim()
	return nil
}

// Back returns to the previous scope. It reports false when there is no
// history to return to.
func (s *Scope) Back() bool {
	if len(s.history) == 0 {
		return false
	}
	last := len(s.history) - 1
	s.active = s.history[last]
	s.history = s.history[:last]
	return true
}

// Reset returns to the top level and clears the history.
func (s *Scope) Reset() {
	s.active = ""
	s.history = nil
}

// History returns a copy of the back-navigation stack, oldest first.
func (s *Scope) History() []string { return slices.Clone(s.history) }

// Path returns the history followed by the active scope, skipping top-level
// entries. It is meant for breadcrumbs.
func (s *Scope) Path() []string {
	var out []string
	for _, id := range append(s.History(), s.active) {
		if id != "" {
			out = append(out, id)
		}
	}
	return out
}

func (s *Scope) trim() {
	limit := s.limit
	if limit < 1 {
		limit = DefaultHistoryLimit
	}
	if over := len(s.history) - limit; over > 0 {
		s.history = slices.Delete(s.history, 0, over)
	}
}

func validateActive(g *model.Graph, id string) error {
	if id == "" {
		return nil
	}
	n, ok := g.Node(id)
	if !ok {
		return errors.New(errors.ErrCodeUnknownGroup, "group %q does not exist", id)
	}
	if !n.Role.IsGroup() {
		return errors.New(errors.ErrCodeInvalidScope, "container %q is not a group", id)
	}
	return nil
}
