package system

import (
	"sort"

	"github.com/lixenwraith/pulse-arena/combat"
	"github.com/lixenwraith/pulse-arena/core"
	"github.com/lixenwraith/pulse-arena/engine"
	"github.com/lixenwraith/pulse-arena/gate"
	"github.com/lixenwraith/pulse-arena/parameter"
	"github.com/lixenwraith/pulse-arena/vmath"
)

// PlayerSystem applies player intents: movement, subdivision-snapped shots and slash
// Intents arrive between ticks from input; shots resolve against the latest snapshot
type PlayerSystem struct {
	shots *gate.ShotQueue
	move  core.Vec2 // unit direction, zero when idle
	aim   core.Vec2
}

// NewPlayerSystem creates the player system snapping to 1/subdivision beats
func NewPlayerSystem(subdivision int) *PlayerSystem {
	s := &PlayerSystem{shots: gate.NewShotQueue(subdivision)}
	s.Init()
	return s
}

// Init resets session state for new game
func (s *PlayerSystem) Init() {
	s.shots.Reset()
	s.move = core.Vec2{}
	s.aim = core.Vec2{X: 1}
}

// Name returns system's name
func (s *PlayerSystem) Name() string {
	return "player"
}

// Priority returns the system's priority
func (s *PlayerSystem) Priority() int {
	return parameter.PriorityActor + 1
}

// SetMove sets the movement direction; zero stops
func (s *PlayerSystem) SetMove(dir core.Vec2) {
	s.move = dir.Normalized()
}

// Fire requests a shot along aim
func (s *PlayerSystem) Fire(ctx *engine.SimulationContext, aim core.Vec2) gate.ShotResult {
	p := ctx.Actors.Player()
	if p == nil || !p.Alive() {
		return gate.ShotIgnored
	}
	if !aim.IsZero() {
		s.aim = aim
		p.Facing = aim.Angle()
	}

	res := s.shots.Request(ctx.State)
	if res == gate.ShotFired {
		emitProjectile(ctx, p, s.aim.Angle())
	}
	return res
}

// ShotPending reports a queued shot
func (s *PlayerSystem) ShotPending() bool {
	return s.shots.Pending()
}

// Slash hits every living hostile in the configured arc with delayed-melee damage
// Returns the number of actors struck, 0 while on cooldown
func (s *PlayerSystem) Slash(ctx *engine.SimulationContext, dir core.Vec2) int {
	p := ctx.Actors.Player()
	if p == nil || !p.Alive() {
		return 0
	}
	payload, ok := p.Payload.(*combat.PlayerPayload)
	if !ok || payload.SlashCooldown > 0 {
		return 0
	}
	if dir.IsZero() {
		dir = s.aim
	}

	cfg := ctx.Config.Player
	cause, _ := core.ParseCause(cfg.SlashCause)
	src := core.SourceTag{ID: p.ID, Archetype: p.Archetype, Cause: cause}
	half := cfg.SlashArcDeg / 2 * vmath.DegToRad

	payload.SlashCooldown = cfg.SlashCooldown
	ctx.Cue(p.Archetype, core.CueFire)

	struck := 0
	for _, t := range s.slashTargets(ctx, p, dir, half) {
		ResolveHit(ctx, t, hitFrom(t, p.Pos, cfg.SlashDamage, src))
		struck++
	}
	return struck
}

// slashTargets returns living hostiles in the arc, in ID order
func (s *PlayerSystem) slashTargets(ctx *engine.SimulationContext, p *combat.Actor, dir core.Vec2, half float64) []*combat.Actor {
	rng := ctx.Config.Player.SlashRange
	var out []*combat.Actor

	if ctx.Index != nil {
		for _, o := range ctx.Index.ConeQuery(p.Pos, dir, rng, half) {
			if a, ok := ctx.Actors.Get(o.ID); ok && a.Alive() && a.Archetype != core.ArchetypePlayer {
				out = append(out, a)
			}
		}
		sortByID(out)
		return out
	}

	heading := dir.Angle()
	for _, a := range ctx.Actors.All() {
		if a.ID == p.ID || !a.Alive() {
			continue
		}
		d := a.Pos.Sub(p.Pos)
		if d.IsZero() || d.LenSq() > rng*rng || vmath.AngleDiff(d.Angle(), heading) > half {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Update moves the player and releases a queued shot at its subdivision
func (s *PlayerSystem) Update(ctx *engine.SimulationContext) {
	p := ctx.Actors.Player()
	if p == nil || !p.Alive() {
		s.shots.Reset()
		return
	}

	if !s.move.IsZero() {
		step := s.move.Scale(p.Stats.Speed * ctx.Dt.Seconds())
		p.Pos = ctx.Config.Bounds().Clamp(p.Pos.Add(step))
	}

	if s.shots.Update(ctx.State) {
		emitProjectile(ctx, p, s.aim.Angle())
	}
}

func sortByID(actors []*combat.Actor) {
	sort.Slice(actors, func(i, j int) bool { return actors[i].ID < actors[j].ID })
}
