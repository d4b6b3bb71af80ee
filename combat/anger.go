package combat

import (
	"github.com/lixenwraith/pulse-arena/config"
	"github.com/lixenwraith/pulse-arena/core"
)

// Anger is the retargeting sub-machine: Calm or Angry with a focus archetype
// Counters track main-health hits per source archetype and clear on every transition
type Anger struct {
	Active   bool
	Focus    core.Archetype // ArchetypeNone while Calm
	Cooldown float64        // Remaining nominal ticks while Angry
	Hits     [core.ArchetypeCount]int

	threshold     int
	cooldownTicks float64
}

// NewAnger returns a Calm machine
func NewAnger(cfg config.AngerConfig) Anger {
	return Anger{
		threshold:     cfg.Threshold,
		cooldownTicks: cfg.CooldownTicks,
	}
}

// RecordHit counts a hit that reached main health
// Player and unattributed sources are not counted
// Returns true when this hit moved the machine from Calm to Angry
func (a *Anger) RecordHit(source core.Archetype) bool {
	if source == core.ArchetypePlayer || source == core.ArchetypeNone || source >= core.ArchetypeCount {
		return false
	}
	a.Hits[source]++
	if a.Active || a.Hits[source] < a.threshold {
		return false
	}

	a.Active = true
	a.Focus = source
	a.Cooldown = a.cooldownTicks
	a.clearHits()
	return true
}

// Tick decrements the cooldown by normalized tick delta
// Returns true exactly once per Angry episode, on the tick it returns to Calm
func (a *Anger) Tick(dtTicks float64) bool {
	if !a.Active {
		return false
	}
	a.Cooldown -= dtTicks
	if a.Cooldown > 0 {
		return false
	}
	a.Active = false
	a.Focus = core.ArchetypeNone
	a.Cooldown = 0
	a.clearHits()
	return true
}

func (a *Anger) clearHits() {
	a.Hits = [core.ArchetypeCount]int{}
}
