package engine

import (
	"time"

	"github.com/lixenwraith/pulse-arena/config"
)

// BeatClock is the authoritative musical time source
// Readings are a pure function of provider time since the epoch
// Single-threaded: owned by the simulation loop
type BeatClock struct {
	provider TimeProvider

	epoch         time.Time
	bpm           float64
	beatDuration  time.Duration
	measureLength int
	coarse        time.Duration
	fine          time.Duration
}

// NewBeatClock creates a clock whose epoch is the provider's current time
func NewBeatClock(provider TimeProvider, cfg config.ClockConfig) *BeatClock {
	c := &BeatClock{
		provider:      provider,
		measureLength: cfg.MeasureLength,
		coarse:        cfg.CoarseTolerance,
		fine:          cfg.FineTolerance,
	}
	c.SetTempo(cfg.BPM)
	c.Reset()
	return c
}

// BeatDurationFor converts a tempo to the length of one beat
func BeatDurationFor(bpm float64) time.Duration {
	return time.Duration(float64(time.Minute) / bpm)
}

// Reset reassigns the epoch to now; used on restart only
func (c *BeatClock) Reset() {
	c.epoch = c.provider.Now()
}

// SetTempo changes beat duration going forward without moving the epoch
// Measure phase is not realigned: beat position is recomputed from total elapsed
// time at the new tempo. Non-positive tempos are ignored
func (c *BeatClock) SetTempo(bpm float64) bool {
	if bpm <= 0 {
		return false
	}
	c.bpm = bpm
	c.beatDuration = BeatDurationFor(bpm)
	return true
}

// BPM returns the current tempo
func (c *BeatClock) BPM() float64 {
	return c.bpm
}

// Epoch returns the session start in provider time
func (c *BeatClock) Epoch() time.Time {
	return c.epoch
}

// Elapsed returns non-negative time since the epoch
func (c *BeatClock) Elapsed() time.Duration {
	d := c.provider.Now().Sub(c.epoch)
	if d < 0 {
		return 0
	}
	return d
}

// Snapshot freezes the current reading
func (c *BeatClock) Snapshot() ClockState {
	return ClockState{
		Elapsed:         c.Elapsed(),
		BeatDuration:    c.beatDuration,
		MeasureLength:   c.measureLength,
		CoarseTolerance: c.coarse,
		FineTolerance:   c.fine,
	}
}

func (c *BeatClock) BeatIndex() int64 { return c.Snapshot().BeatIndex() }
func (c *BeatClock) BeatInMeasure() int { return c.Snapshot().BeatInMeasure() }
func (c *BeatClock) TimeToNextBeat() time.Duration { return c.Snapshot().TimeToNextBeat() }
func (c *BeatClock) TimeToNextSubdivision(n int) time.Duration { return c.Snapshot().TimeToNextSubdivision(n) }
func (c *BeatClock) IsOnBeat(beats ...int) bool { return c.Snapshot().IsOnBeat(beats...) }
func (c *BeatClock) IsOnSubdivision(n int) bool { return c.Snapshot().IsOnSubdivision(n) }
