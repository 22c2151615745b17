package lifecycle

// Phase is the controller-owned lifecycle state of a managed cluster.
// Phases only move forward; Deleted and Failed are terminal for a
// controller instance.
type Phase string

const (
	PhaseUnstarted Phase = "Unstarted"
	PhaseCreating  Phase = "Creating"
	PhaseActive    Phase = "Active"
	PhaseDeleting  Phase = "Deleting"
	PhaseDeleted   Phase = "Deleted"
	PhaseFailed    Phase = "Failed"
)

// Terminal reports whether the phase is final for this controller instance.
func (p Phase) Terminal() bool {
	return p == PhaseDeleted || p == PhaseFailed
}
