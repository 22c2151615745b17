package handlers

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/imamik/cbdctl/internal/lifecycle"
	"github.com/imamik/cbdctl/internal/platform/cbd"
	"github.com/imamik/cbdctl/internal/provisioning"
	"github.com/imamik/cbdctl/internal/ui/tui"
)

// tuiObserver adapts provisioning events into Bubble Tea messages so
// the apply and destroy TUIs can render live progress. Phase names
// double as TUI step keys.
type tuiObserver struct {
	ch   chan<- tea.Msg
	ctrl *lifecycle.Controller
}

var _ provisioning.Observer = (*tuiObserver)(nil)

func newTUIObserver(ch chan<- tea.Msg, ctrl *lifecycle.Controller) *tuiObserver {
	return &tuiObserver{ch: ch, ctrl: ctrl}
}

// Printf drops plain log lines; the TUI renders structured state instead.
func (o *tuiObserver) Printf(string, ...interface{}) {}

func (o *tuiObserver) Event(e provisioning.Event) {
	switch e.Type {
	case provisioning.EventPhaseStarted:
		o.ch <- tui.StepMsg{Step: e.Phase}
	case provisioning.EventPhaseCompleted:
		o.ch <- tui.StepMsg{Step: e.Phase, Done: true}
	case provisioning.EventPhaseFailed:
		o.ch <- tui.StepMsg{Step: e.Phase, Err: errors.New(e.Message)}
	}
}

func (o *tuiObserver) Progress(string, int, int) {}

func (o *tuiObserver) Snapshot(cluster *cbd.Cluster) {
	if cluster == nil {
		return
	}

	msg := tui.ClusterStatusMsg{
		Cluster:  *cluster,
		LastPoll: time.Now().Format("15:04:05"),
	}
	if o.ctrl != nil {
		msg.Phase = o.ctrl.Phase()
	}
	o.ch <- msg
}

func (o *tuiObserver) WithFields(map[string]string) provisioning.Observer {
	return o
}
