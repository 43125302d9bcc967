package internal

// ProgressState is a snapshot of the live progress indicator for the
// stream currently being consumed.
type ProgressState struct {
	Percent    float64
	StatusText string
}

// initialStatus is the status shown at the start of every streaming call.
const initialStatus = "initializing"

// ProgressTracker owns the single (percent, status) pair scoped to
// whatever session is currently streaming. Updates arrive from one
// sequential consumption loop, so no locking is needed; each dimension is
// last-write-wins and can be updated independently.
type ProgressTracker struct {
	state ProgressState
}

// NewProgressTracker creates a tracker in its reset state.
func NewProgressTracker() *ProgressTracker {
	return &ProgressTracker{state: ProgressState{StatusText: initialStatus}}
}

// Update applies a partial update. A nil percent leaves the stored percent
// unchanged; an empty statusText leaves the stored text unchanged.
func (p *ProgressTracker) Update(percent *float64, statusText string) {
	if percent != nil {
		p.state.Percent = *percent
	}
	if statusText != "" {
		p.state.StatusText = statusText
	}
}

// Reset returns the tracker to (0, "initializing"). Called at the start of
// each streaming call.
func (p *ProgressTracker) Reset() {
	p.state = ProgressState{StatusText: initialStatus}
}

// Snapshot returns the current state.
func (p *ProgressTracker) Snapshot() ProgressState {
	return p.state
}
