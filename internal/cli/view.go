package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/nestview/pkg/graph"
	"github.com/matzehuels/nestview/pkg/pipeline"
	"github.com/matzehuels/nestview/pkg/visibility"
)

// viewCommand creates the view command, which prints the resolved view of a
// scope without rendering it.
func (c *CLI) viewCommand() *cobra.Command {
	var scope string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "view [file|url|-]",
		Short: "Print the visible nodes and edges at a scope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runView(cmd.Context(), args[0], scope, asJSON)
		},
	}

	cmd.Flags().StringVarP(&scope, "scope", "s", "", "group to look inside (default: top level)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the node/edge JSON instead of tables")

	return cmd
}

func (c *CLI) runView(ctx context.Context, input, scope string, asJSON bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	ds, err := c.openDataset(ctx, cfg, input)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(nil, c.hooks(), c.Logger)
	res, err := runner.View(ctx, ds, pipeline.Options{
		Scope:  scope,
		Config: cfg,
		Logger: loggerFromContext(ctx),
	})
	if err != nil {
		return err
	}

	if asJSON {
		return graph.Write(res.Nodelink, os.Stdout)
	}
	fmt.Println(viewTables(res.View))
	for _, w := range res.Warnings {
		printWarning("%s", w)
	}
	return nil
}

// viewTables formats v as a title line followed by node, edge and dropped
// relationship tables. Empty sections are omitted.
func viewTables(v *visibility.View) string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render(scopeLabel(v.Scope)))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d nodes · %d edges · %d ports", len(v.Nodes), len(v.Edges), len(v.Handles))))
	b.WriteString("\n")

	if len(v.Nodes) > 0 {
		rows := make([][]string, len(v.Nodes))
		for i, n := range v.Nodes {
			rows[i] = []string{n.ID, n.Title(), roleBadge(n.Role), n.Tags.String()}
		}
		b.WriteString(newTable([]string{"ID", "Name", "Role", "Tags"}, rows))
		b.WriteString("\n")
	}

	if len(v.Edges) > 0 {
		rows := make([][]string, len(v.Edges))
		for i, e := range v.Edges {
			via := ""
			if e.Rerouted() {
				via = e.OriginSource + " → " + e.OriginTarget
			}
			rows[i] = []string{e.Source, e.Target, e.Label, via}
		}
		b.WriteString(newTable([]string{"Source", "Target", "Label", "Rerouted from"}, rows))
		b.WriteString("\n")
	}

	if len(v.Dropped) > 0 {
		rows := make([][]string, len(v.Dropped))
		for i, d := range v.Dropped {
			rows[i] = []string{d.Source, d.Target, d.Reason}
		}
		b.WriteString(StyleWarning.Render("Dropped relationships"))
		b.WriteString("\n")
		b.WriteString(newTable([]string{"Source", "Target", "Reason"}, rows))
		b.WriteString("\n")
	}
	return b.String()
}

func newTable(headers []string, rows [][]string) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cellStyle := lipgloss.NewStyle().Foreground(colorWhite).Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return cellStyle
		}).
		Render()
}
