package provisioning

import (
	"context"

	"github.com/imamik/cbdctl/internal/config"
	"github.com/imamik/cbdctl/internal/lifecycle"
	"github.com/imamik/cbdctl/internal/platform/cbd"
	"github.com/imamik/cbdctl/internal/state"
)

// State holds the shared results of lifecycle phases.
// It is progressively populated as each phase completes and is passed
// to subsequent phases that need earlier results.
type State struct {
	// Preflight results (populated by stack and flavor phases)
	Stack    *cbd.Stack
	FlavorID string

	// Persistence (populated by the create phase, or preloaded for destroy)
	Record *state.Record

	// Latest control-plane snapshot (refreshed by the wait phases)
	Cluster *cbd.Cluster
}

// NewState creates an empty phase state.
func NewState() *State {
	return &State{}
}

// Context wraps all dependencies and state needed for a lifecycle phase.
type Context struct {
	context.Context
	Config     *config.Config
	State      *State
	Client     cbd.PlatformManager
	Controller *lifecycle.Controller
	Store      state.Store
	Observer   Observer
	Timeouts   *config.Timeouts
}

// NewContext creates a new phase context.
func NewContext(
	ctx context.Context,
	cfg *config.Config,
	client cbd.PlatformManager,
	ctrl *lifecycle.Controller,
	store state.Store,
) *Context {
	return &Context{
		Context:    ctx,
		Config:     cfg,
		State:      NewState(),
		Client:     client,
		Controller: ctrl,
		Store:      store,
		Observer:   NewConsoleObserver(),
		Timeouts:   config.LoadTimeouts(),
	}
}
