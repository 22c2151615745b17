// Package tui provides a Bubble Tea-based terminal UI for cluster builds,
// teardowns, and status watches.
package tui

import (
	"github.com/imamik/cbdctl/internal/lifecycle"
	"github.com/imamik/cbdctl/internal/platform/cbd"
)

// StepMsg reports progress of CLI lifecycle steps.
type StepMsg struct {
	Step string
	Done bool
	Err  error
}

// ClusterStatusMsg carries the latest cluster snapshot from the control plane.
type ClusterStatusMsg struct {
	Cluster  cbd.Cluster
	Phase    lifecycle.Phase
	LastPoll string
	NotFound bool
	FetchErr string
}

// TickMsg is sent periodically to refresh the display.
type TickMsg struct{}

// ErrMsg carries an error.
type ErrMsg struct{ Err error }

// DoneMsg signals that the operation is complete.
type DoneMsg struct{}
