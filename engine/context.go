package engine

import (
	"log"
	"time"

	"github.com/lixenwraith/pulse-arena/combat"
	"github.com/lixenwraith/pulse-arena/config"
	"github.com/lixenwraith/pulse-arena/core"
	"github.com/lixenwraith/pulse-arena/event"
	"github.com/lixenwraith/pulse-arena/vmath"
)

// SimulationContext carries the per-session collaborators and the per-tick
// readings shared by every system
// Owned by the tick loop; not safe for concurrent use except Telemetry
type SimulationContext struct {
	// ===== Session =====

	Config    *config.Config
	Clock     *BeatClock
	Time      *PausableClock
	Index     SpatialIndex // May be nil; consumers fail open
	Grid      *SpatialGrid // Concrete index rebuilt each tick, nil when Index is external
	Actors    *combat.Roster
	Factory   *combat.Factory
	Events    *event.EventQueue
	Cues      CueSink
	Rand      vmath.Rand
	Log       *log.Logger
	Telemetry *Telemetry

	// ===== Per Tick =====

	State   ClockState    // Clock snapshot taken once at tick start
	Tick    uint64        // Monotonic tick counter
	Dt      time.Duration // Wall delta since previous tick
	DtTicks float64       // Dt normalized by the nominal tick duration
}

// Emit queues an event stamped with the current tick
func (c *SimulationContext) Emit(t event.EventType, payload any) {
	c.Events.Emit(t, payload, c.Tick)
}

// Cue forwards a presentation cue; a nil sink drops it
func (c *SimulationContext) Cue(archetype core.Archetype, kind core.CueKind) {
	if c.Cues == nil {
		return
	}
	c.Cues.Cue(archetype, kind)
}

// Advance records a new tick with wall delta dt and snapshots the clock
func (c *SimulationContext) Advance(dt time.Duration) {
	c.Tick++
	c.Dt = dt
	c.DtTicks = float64(dt) / float64(c.Config.NominalTick())
	c.State = c.Clock.Snapshot()
}

// RebuildIndex refreshes the owned spatial grid from the roster
func (c *SimulationContext) RebuildIndex() {
	if c.Grid == nil {
		return
	}
	c.Grid.Rebuild(c.Actors.Occupants())
}

var _ combat.Notifier = (*SimulationContext)(nil)
