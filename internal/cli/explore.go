package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/nestview/pkg/model"
	"github.com/matzehuels/nestview/pkg/source"
	"github.com/matzehuels/nestview/pkg/visibility"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// exploreCommand creates the explore command: an interactive scope
// navigator that drills into groups and back out again.
func (c *CLI) exploreCommand() *cobra.Command {
	var scope string

	cmd := &cobra.Command{
		Use:   "explore [file|url|-]",
		Short: "Navigate group scopes interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExplore(cmd.Context(), args[0], scope)
		},
	}
	cmd.Flags().StringVarP(&scope, "scope", "s", "", "group to start in (default: top level)")
	return cmd
}

func (c *CLI) runExplore(ctx context.Context, input, start string) error {
	if input == source.Stdin {
		return fmt.Errorf("explore reads keys from the terminal and cannot take the dataset on stdin")
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	ds, err := c.openDataset(ctx, cfg, input)
	if err != nil {
		return err
	}
	g, errs := ds.Graph()
	for _, e := range errs {
		c.Logger.Warn("skipped relationship", "err", e)
	}

	opts := cfg.ResolveOptions()
	opts.Hooks = c.hooks().Resolve
	m, err := newExploreModel(g, start, cfg.Visibility.HistoryLimit, func(scope string) (*visibility.View, error) {
		return visibility.Resolve(ctx, g, scope, opts)
	})
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(exploreModel); ok {
		printInfo("Last scope: %s", scopeLabel(fm.scope.Active()))
	}
	return nil
}

// =============================================================================
// exploreModel - Scope navigation
// =============================================================================

// resolveFunc computes the view at a scope.
type resolveFunc func(scope string) (*visibility.View, error)

// exploreModel is the bubbletea model behind nestview explore.
type exploreModel struct {
	graph   *model.Graph
	scope   *visibility.Scope
	resolve resolveFunc
	view    *visibility.View
	cursor  int
	offset  int
	height  int
	status  string
}

func newExploreModel(g *model.Graph, start string, historyLimit int, resolve resolveFunc) (exploreModel, error) {
	s := visibility.NewScope(start)
	s.SetHistoryLimit(historyLimit)
	if err := s.Validate(g); err != nil {
		return exploreModel{}, err
	}
	m := exploreModel{graph: g, scope: s, resolve: resolve, height: 15}
	if err := m.refresh(); err != nil {
		return exploreModel{}, err
	}
	return m, nil
}

// refresh re-resolves the active scope and moves the cursor to the top.
func (m *exploreModel) refresh() error {
	v, err := m.resolve(m.scope.Active())
	if err != nil {
		return err
	}
	m.view = v
	m.cursor, m.offset = 0, 0
	return nil
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.status = ""
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.view.Nodes)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter", "right", "l":
			m.enter()
		case "backspace", "left", "h":
			if !m.scope.Back() {
				m.status = "already at the first scope"
				break
			}
			m.setErr(m.refresh())
		case "t":
			m.scope.Reset()
			m.setErr(m.refresh())
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-8, 5)
	}
	return m, nil
}

// enter drills into the node under the cursor when it is a group.
func (m *exploreModel) enter() {
	if len(m.view.Nodes) == 0 {
		return
	}
	n := m.view.Nodes[m.cursor]
	if n.Type() != visibility.TypeGroup {
		m.status = fmt.Sprintf("%s is not a group", n.Title())
		return
	}
	if err := m.scope.Enter(m.graph, n.ID); err != nil {
		m.setErr(err)
		return
	}
	m.setErr(m.refresh())
}

func (m *exploreModel) setErr(err error) {
	if err != nil {
		m.status = err.Error()
	}
}

func (m exploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.breadcrumb()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ enter group  ⌫ back  t top  q quit"))
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.view.Nodes))
	for i := m.offset; i < end; i++ {
		n := m.view.Nodes[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		marker := " "
		if n.Type() == visibility.TypeGroup {
			marker = "+"
		}
		line := fmt.Sprintf("%s%s %-24s %s", cursor, marker, n.Title(), roleBadge(n.Role))
		switch {
		case i == m.cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case n.Type() == visibility.TypeGroup:
			b.WriteString(listNormalStyle.Render(line))
		default:
			b.WriteString(listDimStyle.Render(line))
		}
		b.WriteString("\n")
	}
	if len(m.view.Nodes) == 0 {
		b.WriteString(listDimStyle.Render("  (empty)"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d edges · %d ports · %d dropped",
		len(m.view.Edges), len(m.view.Handles), len(m.view.Dropped))))
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(StyleWarning.Render("  " + m.status))
	}
	return b.String()
}

// breadcrumb renders the scope path, e.g. "Top › Intake › Forms".
func (m exploreModel) breadcrumb() string {
	parts := []string{"Top"}
	for _, id := range m.scope.Path() {
		name := id
		if n, ok := m.graph.Node(id); ok {
			name = n.Title()
		}
		parts = append(parts, name)
	}
	return strings.Join(parts, " › ")
}
