package benchmarks

import (
	"testing"
	"time"
)

func TestEstimateRemaining_NoHistory(t *testing.T) {
	// At stack step, 1s elapsed, nothing completed yet
	remaining := EstimateRemaining(ApplyStepOrder, "", "stack", time.Second, nil)

	// Should be: (2-1) + 2 + 5 + 480 = 488s
	expected := 488 * time.Second
	if remaining != expected {
		t.Errorf("expected %v, got %v", expected, remaining)
	}
}

func TestEstimateRemaining_FlavorBuild(t *testing.T) {
	// At build step on the largest flavor, 60s elapsed, earlier steps
	// completed exactly on their medians so the scale stays 1.0
	completed := map[string]time.Duration{
		"stack":  2 * time.Second,
		"flavor": 2 * time.Second,
		"create": 5 * time.Second,
	}

	remaining := EstimateRemaining(ApplyStepOrder, "hadoop1-60", "build", 60*time.Second, completed)

	// Should be: max(0, 900-60) = 840s
	expected := 840 * time.Second
	if remaining != expected {
		t.Errorf("expected %v, got %v", expected, remaining)
	}
}

func TestEstimateRemaining_ElapsedExceedsExpected(t *testing.T) {
	// At create step, but already spent 10s (over the 5s estimate)
	remaining := EstimateRemaining(ApplyStepOrder, "", "create", 10*time.Second, nil)

	// Overrun scales future predictions: 10s/5s = 2x
	// Should be: max(0, 5*2-10)=0 + 480*2 = 960s
	expected := 960 * time.Second
	if remaining != expected {
		t.Errorf("expected %v, got %v", expected, remaining)
	}
}

func TestEstimateRemaining_SkipsCompleted(t *testing.T) {
	// Create already finished out of order; it must not be counted again
	completed := map[string]time.Duration{
		"create": 5 * time.Second,
	}

	remaining := EstimateRemaining(ApplyStepOrder, "", "stack", 0, completed)

	// Should be: 2 + 2 + 480 = 484s
	expected := 484 * time.Second
	if remaining != expected {
		t.Errorf("expected %v, got %v", expected, remaining)
	}
}

func TestEstimateRemaining_LastStep(t *testing.T) {
	// At teardown step, 100s elapsed
	remaining := EstimateRemaining(DestroyStepOrder, "", "teardown", 100*time.Second, nil)

	// Should be: max(0, 120-100) = 20s (no future steps)
	expected := 20 * time.Second
	if remaining != expected {
		t.Errorf("expected %v, got %v", expected, remaining)
	}
}

func TestEstimateRemaining_UnknownStep(t *testing.T) {
	remaining := EstimateRemaining(ApplyStepOrder, "", "unknown", 0, nil)
	if remaining != 0 {
		t.Errorf("expected 0 for unknown step, got %v", remaining)
	}
}

func TestPerformanceScale(t *testing.T) {
	completed := map[string]time.Duration{
		"create": 10 * time.Second,
	}

	scale := PerformanceScale("", "build", 0, completed)
	if scale < 1.99 || scale > 2.01 {
		t.Fatalf("expected ~2.0 scale, got %f", scale)
	}
}

func TestPerformanceScale_Clamped(t *testing.T) {
	slow := map[string]time.Duration{
		"create": 50 * time.Second,
	}
	if scale := PerformanceScale("", "build", 0, slow); scale != 3.0 {
		t.Errorf("expected slow scale capped at 3.0, got %f", scale)
	}

	fast := map[string]time.Duration{
		"build": 60 * time.Second,
	}
	if scale := PerformanceScale("", "teardown", 0, fast); scale != 0.6 {
		t.Errorf("expected fast scale floored at 0.6, got %f", scale)
	}
}

func TestPerformanceScale_NoData(t *testing.T) {
	if scale := PerformanceScale("", "stack", time.Second, nil); scale != 1.0 {
		t.Errorf("expected 1.0 with no completed steps, got %f", scale)
	}
}

func TestStepExpected(t *testing.T) {
	d, ok := StepExpected("build", "hadoop1-7")
	if !ok || d != 420*time.Second {
		t.Fatalf("expected hadoop1-7 build median 420s, got %v (ok=%v)", d, ok)
	}

	d, ok = StepExpected("build", "hadoop9-99")
	if !ok || d != 480*time.Second {
		t.Fatalf("expected fallback build median 480s, got %v (ok=%v)", d, ok)
	}

	d, ok = StepExpected("stack", "hadoop1-7")
	if !ok || d != 2*time.Second {
		t.Fatalf("expected stack median 2s, got %v (ok=%v)", d, ok)
	}

	_, ok = StepExpected("unknown", "")
	if ok {
		t.Fatal("expected unknown step duration to be absent")
	}
}

func TestTotalEstimate(t *testing.T) {
	total := TotalEstimate(ApplyStepOrder, "hadoop1-7")

	// Sum of all step timings: 2 + 2 + 5 + 420 = 429s
	expected := 429 * time.Second
	if total != expected {
		t.Errorf("expected %v, got %v", expected, total)
	}

	total = TotalEstimate(DestroyStepOrder, "")

	// 3 + 120 = 123s
	expected = 123 * time.Second
	if total != expected {
		t.Errorf("expected %v, got %v", expected, total)
	}
}
