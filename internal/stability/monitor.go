// Package stability detects layout convergence from the per-step total
// movement reported by the integrator.
package stability

const (
	// DefaultThreshold is the total movement below which a step counts
	// as quiet.
	DefaultThreshold = 0.01
	// DefaultRun is how many consecutive quiet steps it takes to call
	// the layout converged.
	DefaultRun = 60
)

// Monitor accumulates consecutive quiet steps and latches a converged
// flag once the run is long enough. The flag stays set until Reset,
// which must be called whenever topology or configuration changes:
// a changed configuration invalidates any prior convergence claim.
type Monitor struct {
	threshold    float64
	run          int
	stableFrames int
	converged    bool
}

func NewMonitor(threshold float64, run int) *Monitor {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if run <= 0 {
		run = DefaultRun
	}
	return &Monitor{threshold: threshold, run: run}
}

// Observe records one step's total movement. It returns the current
// quiet-step count and whether this observation crossed the
// convergence threshold (true exactly once per Reset).
func (m *Monitor) Observe(totalMovement float64) (stableFrames int, becameStable bool) {
	if m.converged {
		return m.stableFrames, false
	}
	if totalMovement < m.threshold {
		m.stableFrames++
		if m.stableFrames >= m.run {
			m.converged = true
			return m.stableFrames, true
		}
	} else {
		m.stableFrames = 0
	}
	return m.stableFrames, false
}

// Stable reports whether the layout has converged since the last
// Reset.
func (m *Monitor) Stable() bool {
	return m.converged
}

// StableFrames returns the current consecutive quiet-step count.
func (m *Monitor) StableFrames() int {
	return m.stableFrames
}

// Reset clears the counter and the converged latch.
func (m *Monitor) Reset() {
	m.stableFrames = 0
	m.converged = false
}
