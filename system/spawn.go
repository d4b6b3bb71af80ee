package system

import (
	"sort"

	"github.com/lixenwraith/pulse-arena/combat"
	"github.com/lixenwraith/pulse-arena/core"
	"github.com/lixenwraith/pulse-arena/engine"
	"github.com/lixenwraith/pulse-arena/event"
	"github.com/lixenwraith/pulse-arena/parameter"
	"github.com/lixenwraith/pulse-arena/spawn"
)

type weightedName struct {
	name   string
	weight float64
}

// SpawnSystem removes dead actors and keeps the hostile population topped up
// Runs after dispatch so that removal happens once all updates for the tick are done
type SpawnSystem struct {
	positioner *spawn.Positioner
	table      []weightedName
	total      float64
}

// NewSpawnSystem creates the spawn system from the configured weights
// Names are resolved through the factory at spawn time
func NewSpawnSystem(positioner *spawn.Positioner, weights map[string]float64) *SpawnSystem {
	s := &SpawnSystem{positioner: positioner}
	for name, w := range weights {
		if w > 0 {
			s.table = append(s.table, weightedName{name: name, weight: w})
			s.total += w
		}
	}
	sort.Slice(s.table, func(i, j int) bool { return s.table[i].name < s.table[j].name })
	s.Init()
	return s
}

// Init resets session state for new game
func (s *SpawnSystem) Init() {}

// Name returns system's name
func (s *SpawnSystem) Name() string {
	return "spawn"
}

// Priority returns the system's priority
func (s *SpawnSystem) Priority() int {
	return parameter.PrioritySpawn
}

// Update sweeps dead actors and spawns replacements
func (s *SpawnSystem) Update(ctx *engine.SimulationContext) {
	ctx.Actors.Sweep()

	player := ctx.Actors.Player()
	if player == nil || !player.Alive() {
		return
	}

	need := ctx.Config.Spawn.Population - ctx.Actors.Hostiles()
	var placed []core.Vec2
	for i := 0; i < need; i++ {
		a := s.spawnOne(ctx, player, placed)
		if a == nil {
			return
		}
		placed = append(placed, a.Pos)
	}
}

// spawnOne places and registers a single actor; nil when the factory cannot build one
func (s *SpawnSystem) spawnOne(ctx *engine.SimulationContext, player *combat.Actor, placed []core.Vec2) *combat.Actor {
	pl := s.positioner.Place(player.Pos, placed, ctx.Index)

	// Unknown names come back as the fallback archetype alongside the error, already logged
	a, err := ctx.Factory.NewNamed(s.pick(ctx), pl.Pos)
	if a == nil {
		ctx.Log.Printf("spawn: %v", err)
		return nil
	}

	if d := player.Pos.Sub(a.Pos); !d.IsZero() {
		a.Facing = d.Angle()
	}
	ctx.Actors.Add(a)
	ctx.Telemetry.Spawned.Add(1)
	ctx.Emit(event.EventActorSpawned, &event.ActorSpawnedPayload{
		ActorID:   a.ID,
		Archetype: a.Archetype,
		Position:  a.Pos,
		Strategy:  pl.Strategy.String(),
	})

	if pl.Strategy == spawn.StrategyFallback {
		ctx.Telemetry.SpawnFallbacks.Add(1)
		ctx.Emit(event.EventSpawnFallback, &event.ActorSpawnedPayload{
			ActorID:   a.ID,
			Archetype: a.Archetype,
			Position:  a.Pos,
			Strategy:  pl.Strategy.String(),
		})
	}
	return a
}

// pick draws an archetype name from the weight table
func (s *SpawnSystem) pick(ctx *engine.SimulationContext) string {
	if s.total <= 0 {
		return ctx.Factory.Fallback().String()
	}
	r := ctx.Rand.Float64() * s.total
	for _, w := range s.table {
		if r < w.weight {
			return w.name
		}
		r -= w.weight
	}
	return s.table[len(s.table)-1].name
}
