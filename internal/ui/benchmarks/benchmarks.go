// Package benchmarks provides timing estimates for cluster build and teardown steps.
package benchmarks

import "time"

// DefaultTimings are median durations from simulator and live runs (seconds).
var DefaultTimings = map[string]int{
	"stack":    2,
	"flavor":   2,
	"create":   5,
	"build":    480,
	"delete":   3,
	"teardown": 120,
	// Per-flavor build medians
	"build:hadoop1-7":  420,
	"build:hadoop1-15": 540,
	"build:hadoop1-30": 690,
	"build:hadoop1-60": 900,
}

// ApplyStepOrder defines the sequence of build steps for ETA calculation.
var ApplyStepOrder = []string{
	"stack",
	"flavor",
	"create",
	"build",
}

// DestroyStepOrder defines the sequence of teardown steps for ETA calculation.
var DestroyStepOrder = []string{
	"delete",
	"teardown",
}

// StepExpected returns the benchmark duration for a step, preferring the
// flavor-specific build median when one exists.
func StepExpected(step, flavorID string) (time.Duration, bool) {
	if step == "build" && flavorID != "" {
		if secs, ok := DefaultTimings["build:"+flavorID]; ok {
			return time.Duration(secs) * time.Second, true
		}
	}
	secs, ok := DefaultTimings[step]
	if !ok {
		return 0, false
	}
	return time.Duration(secs) * time.Second, true
}

// EstimateRemaining calculates the estimated time remaining based on the
// current step, its elapsed time, and the durations of completed steps.
func EstimateRemaining(order []string, flavorID, currentStep string, stepElapsed time.Duration, completed map[string]time.Duration) time.Duration {
	return EstimateRemainingWithScale(order, flavorID, currentStep, stepElapsed, completed,
		PerformanceScale(flavorID, currentStep, stepElapsed, completed))
}

// EstimateRemainingWithScale calculates ETA while applying a performance scale factor.
func EstimateRemainingWithScale(
	order []string,
	flavorID, currentStep string,
	stepElapsed time.Duration,
	completed map[string]time.Duration,
	scale float64,
) time.Duration {
	var remaining time.Duration

	// Find the index of the current step
	currentIdx := -1
	for i, s := range order {
		if s == currentStep {
			currentIdx = i
			break
		}
	}
	if currentIdx < 0 {
		return 0
	}

	// For the current step: max(0, expected - elapsed)
	if expected, ok := StepExpected(currentStep, flavorID); ok {
		expected = time.Duration(float64(expected) * scale)
		if expected > stepElapsed {
			remaining += expected - stepElapsed
		}
	}

	// For future steps: use benchmark medians unless already completed
	for i := currentIdx + 1; i < len(order); i++ {
		step := order[i]
		if _, done := completed[step]; done {
			continue
		}
		if expected, ok := StepExpected(step, flavorID); ok {
			remaining += time.Duration(float64(expected) * scale)
		}
	}

	return remaining
}

// PerformanceScale derives a speed multiplier from observed-vs-expected durations.
// Example: expected 8m, observed 12m => scale=1.5 (future ETAs are stretched by 50%).
func PerformanceScale(flavorID, currentStep string, stepElapsed time.Duration, completed map[string]time.Duration) float64 {
	var expectedTotal time.Duration
	var actualTotal time.Duration

	for step, actual := range completed {
		expected, ok := StepExpected(step, flavorID)
		if !ok {
			continue
		}
		expectedTotal += expected
		actualTotal += actual
	}

	// If the current step is overrunning, fold it in immediately so ETA adapts quickly.
	if expected, ok := StepExpected(currentStep, flavorID); ok && stepElapsed > expected {
		expectedTotal += expected
		actualTotal += stepElapsed
	}

	if expectedTotal == 0 || actualTotal == 0 {
		return 1.0
	}

	scale := float64(actualTotal) / float64(expectedTotal)
	if scale < 0.6 {
		return 0.6
	}
	if scale > 3.0 {
		return 3.0
	}
	return scale
}

// TotalEstimate returns the total estimated duration for a step sequence.
func TotalEstimate(order []string, flavorID string) time.Duration {
	var total time.Duration
	for _, step := range order {
		if expected, ok := StepExpected(step, flavorID); ok {
			total += expected
		}
	}
	return total
}
