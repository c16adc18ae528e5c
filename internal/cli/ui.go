package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/nestview/pkg/model"
	"github.com/matzehuels/nestview/pkg/pipeline"
)

// =============================================================================
// Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // groups, headings
	colorGreen  = lipgloss.Color("35")  // success, cache hits
	colorYellow = lipgloss.Color("220") // warnings, ports
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// Shared styles.
var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
)

// =============================================================================
// Roles
// =============================================================================

var (
	styleGroup     = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	styleInterface = lipgloss.NewStyle().Foreground(colorYellow)
	styleLeaf      = lipgloss.NewStyle().Foreground(colorGray)
)

// roleBadge renders a node role in the color the explorer and tables share.
func roleBadge(r model.Role) string {
	switch {
	case r.IsGroup():
		return styleGroup.Render(r.String())
	case r.IsInterface():
		return styleInterface.Render(r.String())
	}
	return styleLeaf.Render(r.String())
}

// =============================================================================
// Status lines
// =============================================================================

type statusKind int

const (
	statusSuccess statusKind = iota
	statusWarning
	statusInfo
	statusDetail
)

var statusIcons = map[statusKind]string{
	statusSuccess: lipgloss.NewStyle().Foreground(colorGreen).Render("✓"),
	statusWarning: StyleWarning.Render("!"),
	statusInfo:    lipgloss.NewStyle().Foreground(colorGray).Render("›"),
	statusDetail:  " ",
}

func status(kind statusKind, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	switch kind {
	case statusWarning:
		msg = StyleWarning.Render(msg)
	case statusDetail:
		msg = StyleDim.Render(msg)
	}
	fmt.Println(statusIcons[kind] + " " + msg)
}

func printSuccess(format string, args ...any) { status(statusSuccess, format, args...) }
func printWarning(format string, args ...any) { status(statusWarning, format, args...) }
func printInfo(format string, args ...any)    { status(statusInfo, format, args...) }
func printDetail(format string, args ...any)  { status(statusDetail, format, args...) }

// printFile prints one written artifact.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render("→") + " " + StyleValue.Render(path))
}

// statsLine summarizes a run, e.g. "4 nodes · 3 edges · 2 ports · 1 dropped · fresh".
func statsLine(stats pipeline.Stats, cached bool) string {
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d nodes", stats.NodeCount)),
		StyleDim.Render(fmt.Sprintf("%d edges", stats.EdgeCount)),
	}
	if stats.HandleCount > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d ports", stats.HandleCount)))
	}
	if stats.DroppedCount > 0 {
		parts = append(parts, StyleWarning.Render(fmt.Sprintf("%d dropped", stats.DroppedCount)))
	}
	if cached {
		parts = append(parts, lipgloss.NewStyle().Foreground(colorGreen).Render("cached"))
	} else {
		parts = append(parts, lipgloss.NewStyle().Foreground(colorGray).Render("fresh"))
	}
	return strings.Join(parts, StyleDim.Render(" · "))
}

func printStats(stats pipeline.Stats, cached bool) {
	fmt.Println("  " + statsLine(stats, cached))
}
