package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// RunStatusTUI runs the status watch with a Bubble Tea TUI. fetch returns
// the latest cluster snapshot; transient failures should be absorbed by the
// caller and reported through LastPoll rather than FetchErr.
func RunStatusTUI(ctx context.Context, clusterName, region string, fetch func(context.Context) ClusterStatusMsg) error {
	m := NewStatusModel(clusterName)
	m.Region = region

	p := tea.NewProgram(m, tea.WithAltScreen())

	// Poll cluster status in background
	go func() {
		ticker := time.NewTicker(3 * time.Second)
		defer ticker.Stop()

		// Fetch immediately with a short timeout to avoid hanging
		fetchCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		p.Send(fetch(fetchCtx))
		cancel()

		for {
			select {
			case <-ctx.Done():
				p.Send(ErrMsg{Err: ctx.Err()})
				return
			case <-ticker.C:
				p.Send(fetch(ctx))
			}
		}
	}()

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	fm := finalModel.(Model)
	if fm.Err != nil {
		return fm.Err
	}
	return nil
}

// RenderStatusOnce renders status output once using lipgloss (non-watch mode).
func RenderStatusOnce(msg ClusterStatusMsg, clusterName, region string) string {
	m := NewStatusModel(clusterName)
	m.Region = region
	m.updateClusterStatus(msg)
	return renderView(m)
}
