package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run wraps a build or teardown flow with a Bubble Tea TUI. workFn runs the
// CLI flow in the background, sending StepMsg and ClusterStatusMsg updates
// on the channel as it goes.
func Run(m Model, workFn func(ch chan<- tea.Msg) error) error {
	p := tea.NewProgram(m, tea.WithAltScreen())

	go func() {
		ch := make(chan tea.Msg, 10)
		go func() {
			defer close(ch)
			if err := workFn(ch); err != nil {
				p.Send(ErrMsg{Err: err})
			}
		}()

		for msg := range ch {
			p.Send(msg)
		}

		p.Send(DoneMsg{})
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
