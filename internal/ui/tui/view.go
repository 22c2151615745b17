package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/cbdctl/internal/lifecycle"
	"github.com/imamik/cbdctl/internal/platform/cbd"
	"github.com/imamik/cbdctl/internal/ui/benchmarks"
)

// styleFunc is a single-string styling function.
type styleFunc func(string) string

// sf wraps a lipgloss.Style into a styleFunc.
func sf(s lipgloss.Style) styleFunc {
	return func(str string) string { return s.Render(str) }
}

func renderView(m Model) string {
	var b strings.Builder

	// Header
	renderHeader(&b, m)

	// Progress bar and step list (apply and destroy modes)
	if m.Mode == "apply" || m.Mode == "destroy" {
		renderProgressBar(&b, m)
		renderSteps(&b, m)
	}

	// Cluster details
	renderCluster(&b, m)

	// Node groups
	renderNodes(&b, m)

	// Footer
	renderFooter(&b, m)

	return b.String()
}

func renderHeader(b *strings.Builder, m Model) {
	title := fmt.Sprintf("cbdctl: %s", m.ClusterName)
	if m.Region != "" {
		title += fmt.Sprintf(" (%s)", m.Region)
	}
	b.WriteString(titleStyle.Render(title))

	status := " "
	switch {
	case m.Done && m.Mode == "destroy":
		status += readyStyle.Render("Deleted")
	case m.Done:
		status += readyStyle.Render("Active")
	case m.Err != nil:
		status += failedStyle.Render(fmt.Sprintf("Error: %v", m.Err))
	case m.Phase == lifecycle.PhaseActive:
		status += readyStyle.Render("Active")
	case m.Phase == lifecycle.PhaseFailed:
		status += failedStyle.Render("Failed")
	case m.Cluster.Status != "":
		status += activeStyle.Render(currentSpinner(m.SpinnerFrame)+" ") + warningStyle.Render(m.Cluster.Status)
	default:
		status += dimStyle.Render("Starting...")
	}
	b.WriteString(status)
	b.WriteString("\n")
}

func renderProgressBar(b *strings.Builder, m Model) {
	progress := calculateProgress(m)
	barWidth := 40
	if m.Width > 0 && m.Width < 80 {
		barWidth = m.Width - 30
		if barWidth < 10 {
			barWidth = 10
		}
	}
	filled := int(float64(barWidth) * progress)
	if filled > barWidth {
		filled = barWidth
	}

	bar := progressBarFull.Render(strings.Repeat("█", filled)) +
		progressBarEmpty.Render(strings.Repeat("░", barWidth-filled))

	pct := int(progress * 100)
	eta := ""
	if m.EstimatedRemaining > 0 {
		eta = fmt.Sprintf(" ETA %s", formatDuration(m.EstimatedRemaining))
	}
	if m.PerformanceScale != 0 && m.PerformanceScale != 1.0 {
		eta += fmt.Sprintf("  speed x%.2f", m.PerformanceScale)
	}

	fmt.Fprintf(b, "  %s %d%%%s\n", bar, pct, eta)
}

func renderSteps(b *strings.Builder, m Model) {
	label := "  Build"
	if m.Mode == "destroy" {
		label = "  Teardown"
	}
	b.WriteString(sectionStyle.Render(label))
	b.WriteString("\n")

	for _, step := range m.Steps {
		var icon string
		var style styleFunc
		switch {
		case step.Err != nil:
			icon = crossMark
			style = sf(failedStyle)
		case step.Done:
			icon = checkMark
			style = sf(readyStyle)
		case step.Active:
			icon = currentSpinner(m.SpinnerFrame)
			style = sf(activeStyle)
		default:
			icon = pending
			style = sf(dimStyle)
		}

		dur := ""
		switch {
		case step.Done && !step.StartedAt.IsZero():
			dur = formatDuration(step.EndedAt.Sub(step.StartedAt))
		case step.Active && !step.StartedAt.IsZero():
			dur = formatDuration(time.Since(step.StartedAt))
		}

		fmt.Fprintf(b, "    %s %-24s %s\n", style(icon), style(step.Name), dimStyle.Render(dur))
	}
}

func renderCluster(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Cluster"))
	b.WriteString("\n")

	stackID := m.Cluster.StackID
	if stackID == "" {
		stackID = m.StackID
	}

	rows := []struct {
		name  string
		value string
	}{
		{"Stack", stackID},
		{"Flavor", m.Flavor},
		{"ID", m.Cluster.ID},
		{"CBD Version", m.Cluster.CBDVersion},
	}
	for _, row := range rows {
		if row.value == "" {
			continue
		}
		fmt.Fprintf(b, "    %-14s %s\n", dimStyle.Render(row.name), row.value)
	}

	if m.Cluster.Status != "" {
		icon, style := clusterStatusIcon(m.Cluster.Status, m.SpinnerFrame)
		fmt.Fprintf(b, "    %-14s %s %s\n", dimStyle.Render("Status"), style(icon), style(m.Cluster.Status))
	}
}

func renderNodes(b *strings.Builder, m Model) {
	if len(m.Cluster.NodeGroups) == 0 && m.NodeCount == 0 {
		return
	}

	b.WriteString(sectionStyle.Render("  Nodes"))
	b.WriteString("\n")

	if len(m.Cluster.NodeGroups) == 0 {
		fmt.Fprintf(b, "    %s %-10s %d planned\n",
			dimStyle.Render(pending), dimStyle.Render(cbd.WorkerNodeGroupID), m.NodeCount)
		return
	}

	for _, ng := range m.Cluster.NodeGroups {
		icon, style := clusterStatusIcon(m.Cluster.Status, m.SpinnerFrame)

		bar := ""
		if m.Cluster.Status == cbd.StatusBuilding && !m.Cluster.Created.IsZero() {
			expected, ok := benchmarks.StepExpected("build", ng.FlavorID)
			if !ok {
				expected = 8 * time.Minute
			}
			if m.PerformanceScale > 0 {
				expected = time.Duration(float64(expected) * m.PerformanceScale)
			}
			progress := float64(time.Since(m.Cluster.Created)) / float64(expected)
			bar = " " + buildMiniBar(progress)
		}

		fmt.Fprintf(b, "    %s %-10s %d x %s%s\n", style(icon), style(ng.ID), ng.Count, ng.FlavorID, bar)
	}
}

func renderFooter(b *strings.Builder, m Model) {
	elapsed := formatDuration(time.Since(m.StartTime))
	parts := []string{fmt.Sprintf("elapsed: %s", elapsed)}
	if m.LastPoll != "" {
		parts = append(parts, fmt.Sprintf("last poll: %s", m.LastPoll))
	}
	pulse := ""
	if !m.Done && m.Phase != lifecycle.PhaseActive {
		pulse = "  |  " + currentSpinner(m.SpinnerFrame) + " polling"
	}
	b.WriteString(footerStyle.Render(fmt.Sprintf("  %s%s  |  q: quit", strings.Join(parts, "  |  "), pulse)))
	b.WriteString("\n")
}

// Helper functions

func statusIcon(ready bool) (string, styleFunc) {
	if ready {
		return checkMark, sf(readyStyle)
	}
	return crossMark, sf(failedStyle)
}

func clusterStatusIcon(status string, frame int) (string, styleFunc) {
	switch status {
	case cbd.StatusActive:
		return checkMark, sf(readyStyle)
	case cbd.StatusError:
		return crossMark, sf(failedStyle)
	case cbd.StatusDeleting:
		return currentSpinner(frame), sf(warningStyle)
	default:
		return currentSpinner(frame), sf(activeStyle)
	}
}

func currentSpinner(frame int) string {
	if len(spinnerFrames) == 0 {
		return spinner
	}
	if frame < 0 {
		frame = -frame
	}
	return spinnerFrames[frame%len(spinnerFrames)]
}

func buildMiniBar(progress float64) string {
	const width = 10
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	filled := int(progress * width)
	if filled > width {
		filled = width
	}
	return progressBarFull.Render(strings.Repeat("█", filled)) + progressBarEmpty.Render(strings.Repeat("░", width-filled))
}

var applyStepWeights = map[string]float64{
	"stack":  0.05,
	"flavor": 0.05,
	"create": 0.10,
	"build":  0.80,
}

var destroyStepWeights = map[string]float64{
	"delete":   0.20,
	"teardown": 0.80,
}

func calculateProgress(m Model) float64 {
	if m.Done {
		return 1.0
	}

	weights := applyStepWeights
	if m.Mode == "destroy" {
		weights = destroyStepWeights
	}

	var progress float64
	for _, step := range m.Steps {
		w, ok := weights[step.Key]
		if !ok {
			continue
		}
		switch {
		case step.Done:
			progress += w
		case step.Active && !step.StartedAt.IsZero():
			// Partial credit for the running step, never quite full
			if expected, ok := benchmarks.StepExpected(step.Key, m.Flavor); ok && expected > 0 {
				frac := float64(time.Since(step.StartedAt)) / float64(expected)
				if frac > 0.95 {
					frac = 0.95
				}
				progress += w * frac
			}
		}
	}

	if progress > 1.0 {
		progress = 1.0
	}
	return progress
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
