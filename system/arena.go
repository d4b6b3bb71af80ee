package system

import (
	"log"
	"sort"
	"time"

	"github.com/lixenwraith/pulse-arena/combat"
	"github.com/lixenwraith/pulse-arena/config"
	"github.com/lixenwraith/pulse-arena/core"
	"github.com/lixenwraith/pulse-arena/engine"
	"github.com/lixenwraith/pulse-arena/event"
	"github.com/lixenwraith/pulse-arena/gate"
	"github.com/lixenwraith/pulse-arena/parameter"
	"github.com/lixenwraith/pulse-arena/spawn"
	"github.com/lixenwraith/pulse-arena/vmath"
)

// Arena owns one session: context, systems and the tick pipeline
//
// Tick order:
//   - snapshot the clock once
//   - rebuild the spatial index
//   - systems below PriorityDispatch (beat, actors, player, projectiles, area damage)
//   - dispatch queued events
//   - remaining systems (score, sweep and spawn)
//
// Not safe for concurrent use; input and ticks run on the same goroutine
type Arena struct {
	ctx    *engine.SimulationContext
	router *engine.EventRouter
	rng    *vmath.FastRand

	systems []engine.System
	split   int // first index at or after PriorityDispatch

	player      *PlayerSystem
	projectiles *ProjectileSystem
	score       *ScoreSystem

	last time.Time
}

// NewArena builds a session over provider; a nil provider uses real time
// cues may be nil
func NewArena(cfg *config.Config, provider engine.TimeProvider, cues engine.CueSink, logger *log.Logger) *Arena {
	if cues == nil {
		cues = engine.NopCues{}
	}

	pc := engine.NewPausableClock(provider)
	rng := vmath.NewFastRand(cfg.Seed)
	grid := engine.NewSpatialGrid(cfg.Bounds(), cfg.Grid.CellSize, cfg.Grid.NeighborRadius)
	queue := event.NewEventQueue()

	ctx := &engine.SimulationContext{
		Config:    cfg,
		Clock:     engine.NewBeatClock(pc, cfg.Clock),
		Time:      pc,
		Index:     grid,
		Grid:      grid,
		Actors:    combat.NewRoster(),
		Factory:   combat.NewFactory(cfg, logger),
		Events:    queue,
		Cues:      cues,
		Rand:      rng,
		Log:       logger,
		Telemetry: &engine.Telemetry{},
	}

	gates := gate.NewTable(cfg)
	a := &Arena{
		ctx:         ctx,
		router:      engine.NewEventRouter(queue),
		rng:         rng,
		player:      NewPlayerSystem(gates.Subdivision(core.ArchetypePlayer)),
		projectiles: NewProjectileSystem(),
		score:       NewScoreSystem(),
	}

	a.systems = []engine.System{
		NewBeatSystem(),
		NewActorSystem(gates, gate.NewFriendlyFireGuard(cfg.FriendlyFire, rng)),
		a.player,
		a.projectiles,
		NewDamageRouter(),
		a.score,
		NewSpawnSystem(spawn.NewPositioner(cfg, rng, logger), cfg.Spawn.Weights),
	}
	sort.SliceStable(a.systems, func(i, j int) bool {
		return a.systems[i].Priority() < a.systems[j].Priority()
	})
	a.split = len(a.systems)
	for i, s := range a.systems {
		if h, ok := s.(engine.EventHandler); ok {
			a.router.Register(h)
		}
		if a.split == len(a.systems) && s.Priority() >= parameter.PriorityDispatch {
			a.split = i
		}
	}

	a.Restart()
	return a
}

// Context exposes the simulation context for presentation and tests
func (a *Arena) Context() *engine.SimulationContext {
	return a.ctx
}

// Projectiles returns the shots in flight
func (a *Arena) Projectiles() []*Projectile {
	return a.projectiles.Live()
}

// PlayerDown reports whether the player has fallen
func (a *Arena) PlayerDown() bool {
	return a.score.PlayerDown()
}

// Register adds an external event handler, such as presentation
func (a *Arena) Register(h engine.EventHandler) {
	a.router.Register(h)
}

// Restart resets the clock epoch and rebuilds all session state
func (a *Arena) Restart() {
	ctx := a.ctx
	ctx.Time.Resume()
	ctx.Clock.Reset()
	a.rng.Seed(ctx.Config.Seed)

	ctx.Actors.Clear()
	ctx.Factory.Reset()
	ctx.Events.Clear()
	ctx.Telemetry.Reset()
	ctx.Tick = 0
	ctx.Dt = 0
	ctx.DtTicks = 0
	ctx.State = ctx.Clock.Snapshot()

	for _, s := range a.systems {
		s.Init()
	}

	center := ctx.Config.Bounds().Clamp(core.Vec2{X: ctx.Config.World.Width / 2, Y: ctx.Config.World.Height / 2})
	player, err := ctx.Factory.New(core.ArchetypePlayer, center)
	if err != nil {
		ctx.Log.Printf("arena: %v", err)
	} else {
		ctx.Actors.Add(player)
	}
	ctx.RebuildIndex()

	ctx.Emit(event.EventGameReset, nil)
	a.last = ctx.Time.Now()
}

// Tick advances the simulation by the time elapsed since the previous tick
// A paused arena does not advance
func (a *Arena) Tick() {
	ctx := a.ctx
	if ctx.Time.IsPaused() {
		return
	}

	now := ctx.Time.Now()
	dt := now.Sub(a.last)
	if dt < 0 {
		dt = 0
	}
	a.last = now

	ctx.Advance(dt)
	ctx.RebuildIndex()

	for _, s := range a.systems[:a.split] {
		s.Update(ctx)
	}
	a.router.DispatchAll(ctx)
	for _, s := range a.systems[a.split:] {
		s.Update(ctx)
	}
}

// Fire requests a player shot along aim
func (a *Arena) Fire(aim core.Vec2) gate.ShotResult {
	if a.ctx.Time.IsPaused() {
		return gate.ShotIgnored
	}
	return a.player.Fire(a.ctx, aim)
}

// Slash swings the player's melee arc toward dir
func (a *Arena) Slash(dir core.Vec2) int {
	if a.ctx.Time.IsPaused() {
		return 0
	}
	return a.player.Slash(a.ctx, dir)
}

// Move sets the player's movement direction
func (a *Arena) Move(dir core.Vec2) {
	a.player.SetMove(dir)
}

// Pause freezes musical time and tick advancement
func (a *Arena) Pause() {
	a.ctx.Time.Pause()
}

// Resume continues from the paused position
func (a *Arena) Resume() {
	a.ctx.Time.Resume()
	a.last = a.ctx.Time.Now()
}

// Paused reports the pause state
func (a *Arena) Paused() bool {
	return a.ctx.Time.IsPaused()
}

// SetTempo changes BPM without moving the epoch
func (a *Arena) SetTempo(bpm float64) bool {
	if !a.ctx.Clock.SetTempo(bpm) {
		return false
	}
	a.ctx.Log.Printf("arena: tempo %.1f bpm", bpm)
	return true
}
