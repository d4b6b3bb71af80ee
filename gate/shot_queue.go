package gate

import "github.com/lixenwraith/pulse-arena/engine"

// ShotResult is the outcome of a player fire request
type ShotResult uint8

const (
	ShotIgnored ShotResult = iota // A shot is already queued
	ShotFired                     // On subdivision, fire now
	ShotQueued                    // Fires at the next subdivision crossing
)

func (r ShotResult) String() string {
	switch r {
	case ShotFired:
		return "fired"
	case ShotQueued:
		return "queued"
	}
	return "ignored"
}

// ShotQueue snaps free-actor shots to a beat subdivision
// At most one shot is ever queued
type ShotQueue struct {
	subdivision int
	queued      bool
	queuedAt    int64
}

// NewShotQueue returns an empty queue snapping to 1/subdivision of a beat
func NewShotQueue(subdivision int) *ShotQueue {
	return &ShotQueue{subdivision: subdivision}
}

// Request handles a fire request at state s
func (q *ShotQueue) Request(s engine.ClockState) ShotResult {
	if q.queued {
		return ShotIgnored
	}
	if s.IsOnSubdivision(q.subdivision) {
		return ShotFired
	}
	q.queued = true
	q.queuedAt = s.SubdivisionIndex(q.subdivision)
	return ShotQueued
}

// Update returns true exactly once when a queued shot reaches its subdivision
func (q *ShotQueue) Update(s engine.ClockState) bool {
	if !q.queued || s.SubdivisionIndex(q.subdivision) <= q.queuedAt {
		return false
	}
	q.queued = false
	return true
}

// Pending reports whether a shot is waiting
func (q *ShotQueue) Pending() bool {
	return q.queued
}

// Reset drops any queued shot
func (q *ShotQueue) Reset() {
	q.queued = false
	q.queuedAt = 0
}
