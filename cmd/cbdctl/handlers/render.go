package handlers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/cbdctl/internal/platform/cbd"
)

// Colors matching internal/ui/tui/styles.go palette.
var (
	catalogColorBlue  = lipgloss.Color("#3b82f6")
	catalogColorDim   = lipgloss.Color("#6b7280")
	catalogColorWhite = lipgloss.Color("#f9fafb")
)

var (
	catalogTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(catalogColorWhite)

	catalogSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(catalogColorBlue)

	catalogDimStyle = lipgloss.NewStyle().
			Foreground(catalogColorDim)
)

// renderFlavors produces a lipgloss-styled flavor listing.
func renderFlavors(region string, flavors []cbd.Flavor) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(catalogTitleStyle.Render(fmt.Sprintf("  cbdctl flavors: %s", region)))
	b.WriteString("\n")
	b.WriteString(catalogDimStyle.Render("  " + strings.Repeat("─", 44)))
	b.WriteString("\n")

	if len(flavors) == 0 {
		b.WriteString(catalogDimStyle.Render("  no flavors available"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(catalogDimStyle.Render(fmt.Sprintf("  %-16s %s", "ID", "Name")))
	b.WriteString("\n")
	for _, f := range flavors {
		fmt.Fprintf(&b, "  %-16s %s\n", f.ID, f.Name)
	}

	return b.String()
}

// renderStacks produces a lipgloss-styled stack listing.
func renderStacks(region string, stacks []cbd.Stack) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(catalogTitleStyle.Render(fmt.Sprintf("  cbdctl stacks: %s", region)))
	b.WriteString("\n")
	b.WriteString(catalogDimStyle.Render("  " + strings.Repeat("─", 44)))
	b.WriteString("\n")

	if len(stacks) == 0 {
		b.WriteString(catalogDimStyle.Render("  no stacks available"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(catalogDimStyle.Render(fmt.Sprintf("  %-18s %-28s %s", "ID", "Name", "Distro")))
	b.WriteString("\n")
	for _, s := range stacks {
		name := s.Name
		if name == "" {
			name = catalogSectionStyle.Render("(unnamed)")
		}
		fmt.Fprintf(&b, "  %-18s %-28s %s\n", s.ID, name, s.Distro)
	}

	return b.String()
}
