package provisioning

import (
	"fmt"
	"time"
)

// Phase defines the interface for a lifecycle phase. Name returns the short
// step key ("stack", "flavor", "create", "build", "delete", "teardown")
// that observers use to address the step.
type Phase interface {
	// Name returns the step key of this phase.
	Name() string

	// Provision executes the phase.
	Provision(ctx *Context) error
}

// RunPhases executes all lifecycle phases sequentially.
func RunPhases(ctx *Context, phases []Phase) error {
	start := time.Now()
	ctx.Observer.Printf("Running %d phases...", len(phases))

	for i, phase := range phases {
		phaseStart := time.Now()
		name := fmt.Sprintf("%s (%d/%d)", phase.Name(), i+1, len(phases))

		ctx.Observer.Printf("[%s] starting", name)
		LogPhaseStart(ctx.Observer, phase.Name())

		if err := phase.Provision(ctx); err != nil {
			LogPhaseFailed(ctx.Observer, phase.Name(), err)
			return fmt.Errorf("%s phase failed: %w", phase.Name(), err)
		}

		LogPhaseComplete(ctx.Observer, phase.Name(), time.Since(phaseStart))
		ctx.Observer.Printf("[%s] completed in %v", name, time.Since(phaseStart).Round(time.Millisecond))
	}

	ctx.Observer.Printf("All phases completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}
