package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/imamik/cbdctl/internal/lifecycle"
	"github.com/imamik/cbdctl/internal/platform/cbd"
	"github.com/imamik/cbdctl/internal/ui/benchmarks"
)

// Step represents a CLI lifecycle step for display.
type Step struct {
	Name      string
	Key       string
	Done      bool
	Active    bool
	Err       error
	StartedAt time.Time
	EndedAt   time.Time
}

// Model is the Bubble Tea model for the TUI dashboard.
type Model struct {
	// Cluster info
	ClusterName string
	Region      string
	StackID     string
	Flavor      string
	NodeCount   int

	// CLI steps (apply and destroy commands)
	Steps     []Step
	StepsDone bool

	// Control-plane snapshot
	Cluster  cbd.Cluster
	Phase    lifecycle.Phase
	LastPoll string

	// ETA
	EstimatedRemaining time.Duration
	PerformanceScale   float64
	StartTime          time.Time

	// Animation
	SpinnerFrame int

	// UI state
	Width  int
	Height int
	Err    error
	Done   bool

	// Mode
	Mode string // "apply", "destroy", "status"
}

// NewApplyModel creates a model for the apply command TUI.
func NewApplyModel(clusterName, region, stackID, flavor string, nodeCount int) Model {
	return Model{
		ClusterName:      clusterName,
		Region:           region,
		StackID:          stackID,
		Flavor:           flavor,
		NodeCount:        nodeCount,
		StartTime:        time.Now(),
		Mode:             "apply",
		PerformanceScale: 1.0,
		Steps: []Step{
			{Name: "Validate stack", Key: "stack"},
			{Name: "Resolve flavor", Key: "flavor"},
			{Name: "Submit create request", Key: "create"},
			{Name: "Cluster build", Key: "build"},
		},
	}
}

// NewDestroyModel creates a model for the destroy command TUI.
func NewDestroyModel(clusterName, region string) Model {
	return Model{
		ClusterName:      clusterName,
		Region:           region,
		StartTime:        time.Now(),
		Mode:             "destroy",
		PerformanceScale: 1.0,
		Steps: []Step{
			{Name: "Submit delete request", Key: "delete"},
			{Name: "Cluster teardown", Key: "teardown"},
		},
	}
}

// NewStatusModel creates a model for the status watch TUI.
func NewStatusModel(clusterName string) Model {
	return Model{
		ClusterName:      clusterName,
		StartTime:        time.Now(),
		Mode:             "status",
		PerformanceScale: 1.0,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case StepMsg:
		m.updateStep(msg)
		if msg.Err != nil {
			m.Err = msg.Err
			return m, tea.Quit
		}

	case ClusterStatusMsg:
		if msg.NotFound {
			m.Err = fmt.Errorf("cluster %s not found. Run 'cbdctl apply' to create it", m.ClusterName)
			return m, tea.Quit
		}
		if msg.FetchErr != "" {
			m.Err = fmt.Errorf("failed to fetch cluster status: %s", msg.FetchErr)
			return m, tea.Quit
		}
		m.updateClusterStatus(msg)
		if m.Mode == "apply" && m.Phase == lifecycle.PhaseActive {
			m.Done = true
			return m, tea.Quit
		}
		if m.Mode == "destroy" && m.Phase == lifecycle.PhaseDeleted {
			m.Done = true
			return m, tea.Quit
		}

	case TickMsg:
		m.SpinnerFrame++
		m.updateETA()
		return m, tickCmd()

	case ErrMsg:
		m.Err = msg.Err
		return m, tea.Quit

	case DoneMsg:
		m.Done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) updateStep(msg StepMsg) {
	idx := -1
	for i, step := range m.Steps {
		if step.Key == msg.Step {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	now := time.Now()

	// Mark previous steps as done
	for i := 0; i < idx; i++ {
		m.Steps[i].Done = true
		m.Steps[i].Active = false
		if m.Steps[i].EndedAt.IsZero() {
			m.Steps[i].EndedAt = now
		}
	}

	if m.Steps[idx].StartedAt.IsZero() {
		m.Steps[idx].StartedAt = now
	}

	if msg.Done {
		m.Steps[idx].Done = true
		m.Steps[idx].Active = false
		m.Steps[idx].EndedAt = now
		if idx == len(m.Steps)-1 {
			m.StepsDone = true
		}
	} else {
		m.Steps[idx].Active = true
	}

	if msg.Err != nil {
		m.Steps[idx].Err = msg.Err
	}
}

func (m *Model) updateClusterStatus(msg ClusterStatusMsg) {
	m.Cluster = msg.Cluster
	if msg.Phase != "" {
		m.Phase = msg.Phase
	}
	if msg.LastPoll != "" {
		m.LastPoll = msg.LastPoll
	}
}

func (m *Model) updateETA() {
	current := ""
	var stepElapsed time.Duration
	completed := make(map[string]time.Duration, len(m.Steps))
	for _, step := range m.Steps {
		switch {
		case step.Done && !step.StartedAt.IsZero():
			completed[step.Key] = step.EndedAt.Sub(step.StartedAt)
		case step.Active:
			current = step.Key
			stepElapsed = time.Since(step.StartedAt)
		}
	}
	if current == "" {
		m.EstimatedRemaining = 0
		return
	}

	order := benchmarks.ApplyStepOrder
	if m.Mode == "destroy" {
		order = benchmarks.DestroyStepOrder
	}

	m.PerformanceScale = benchmarks.PerformanceScale(m.Flavor, current, stepElapsed, completed)
	m.EstimatedRemaining = benchmarks.EstimateRemainingWithScale(order, m.Flavor, current, stepElapsed, completed, m.PerformanceScale)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	return renderView(m)
}
