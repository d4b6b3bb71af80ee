// Package gate decides when actors may act relative to the beat clock
package gate

import (
	"time"

	"github.com/lixenwraith/pulse-arena/config"
	"github.com/lixenwraith/pulse-arena/core"
	"github.com/lixenwraith/pulse-arena/engine"
)

// Table is the archetype-keyed eligibility table built from config
// All queries are pure functions of the given clock state
type Table struct {
	rows [core.ArchetypeCount]config.Gate
	set  [core.ArchetypeCount]bool
}

// NewTable builds the table from validated config
func NewTable(cfg *config.Config) *Table {
	t := &Table{}
	for a := core.ArchetypeNone + 1; a < core.ArchetypeCount; a++ {
		if g, ok := cfg.GateFor(a); ok {
			t.rows[a] = g
			t.set[a] = true
		}
	}
	return t
}

// Row returns the gate row for an archetype
func (t *Table) Row(a core.Archetype) (config.Gate, bool) {
	if a >= core.ArchetypeCount {
		return config.Gate{}, false
	}
	return t.rows[a], t.set[a]
}

// Subdivision returns the free-mode snap grid as 1/n beat, 1 when unset
func (t *Table) Subdivision(a core.Archetype) int {
	g, _ := t.Row(a)
	return max(g.Subdivision, 1)
}

// ChargeDuration returns how long a charge runs before firing
func (t *Table) ChargeDuration(a core.Archetype) time.Duration {
	g, _ := t.Row(a)
	return g.ChargeDuration
}

// Eligible reports whether the archetype may attack at state s
// For charge-mode archetypes this is the charge-start window
func (t *Table) Eligible(a core.Archetype, s engine.ClockState) bool {
	g, ok := t.Row(a)
	if !ok {
		return false
	}

	switch g.Mode {
	case config.GateModeFree:
		return true
	case config.GateModeBeats, config.GateModeCharge:
		return onBeat(g, s)
	case config.GateModeSpan:
		return inSpan(g, s)
	}
	return false
}

// CanStartCharge reports whether a charge-mode archetype may begin charging
// Returns false for every other mode
func (t *Table) CanStartCharge(a core.Archetype, s engine.ClockState) bool {
	g, ok := t.Row(a)
	if !ok || g.Mode != config.GateModeCharge {
		return false
	}
	return onBeat(g, s)
}

func onBeat(g config.Gate, s engine.ClockState) bool {
	if g.Precision == config.PrecisionFine {
		s.CoarseTolerance = s.FineTolerance
	}
	return s.IsOnBeat(g.Beats...)
}

// inSpan accepts from lead fraction of a beat before the span beat's start
// through trail fraction after it
func inSpan(g config.Gate, s engine.ClockState) bool {
	if s.BeatDuration <= 0 {
		return false
	}
	off := s.OffsetFromBeat(g.SpanBeat)
	lead := time.Duration(g.LeadFraction * float64(s.BeatDuration))
	trail := time.Duration(g.TrailFraction * float64(s.BeatDuration))
	return off >= -lead && off <= trail
}
