package system

import (
	"github.com/lixenwraith/pulse-arena/combat"
	"github.com/lixenwraith/pulse-arena/core"
	"github.com/lixenwraith/pulse-arena/engine"
	"github.com/lixenwraith/pulse-arena/event"
	"github.com/lixenwraith/pulse-arena/parameter"
)

// Projectile is one live shot
type Projectile struct {
	Pos      core.Vec2
	Vel      core.Vec2 // units per second
	Owner    core.SourceTag
	Damage   float64
	Piercing bool
	Age      float64 // nominal ticks

	hit map[core.ActorID]struct{} // piercing shots hit each actor once
}

// ProjectileSystem moves projectiles in straight lines and resolves direct hits
// Spawned via EventProjectileSpawn from any system
type ProjectileSystem struct {
	live []*Projectile
}

func NewProjectileSystem() *ProjectileSystem {
	s := &ProjectileSystem{}
	s.Init()
	return s
}

func (s *ProjectileSystem) Init() {
	s.live = s.live[:0]
}

func (s *ProjectileSystem) Name() string { return "projectile" }

func (s *ProjectileSystem) Priority() int { return parameter.PriorityProjectile }

func (s *ProjectileSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventProjectileSpawn,
		event.EventGameReset,
	}
}

func (s *ProjectileSystem) HandleEvent(ctx *engine.SimulationContext, ev event.GameEvent) {
	if ev.Type == event.EventGameReset {
		s.Init()
		return
	}
	if p, ok := ev.Payload.(*event.ProjectilePayload); ok && p.Speed > 0 {
		s.live = append(s.live, &Projectile{
			Pos:      p.Origin,
			Vel:      core.FromAngle(p.Angle).Scale(p.Speed),
			Owner:    p.Owner,
			Damage:   p.Damage,
			Piercing: p.Piercing,
		})
	}
}

// Live returns the projectiles in flight
func (s *ProjectileSystem) Live() []*Projectile {
	return s.live
}

func (s *ProjectileSystem) Update(ctx *engine.SimulationContext) {
	if len(s.live) == 0 {
		return
	}

	bounds := ctx.Config.Bounds()
	maxAge := ctx.Config.Projectile.MaxLifetimeTicks
	actors := ctx.Actors.All()

	kept := s.live[:0]
	for _, p := range s.live {
		p.Age += ctx.DtTicks
		if p.Age > maxAge {
			continue
		}

		prev := p.Pos
		p.Pos = p.Pos.Add(p.Vel.Scale(ctx.Dt.Seconds()))

		if s.traverse(ctx, p, prev, actors) {
			continue
		}
		if !bounds.Contains(p.Pos) {
			continue
		}
		kept = append(kept, p)
	}
	clear(s.live[len(kept):])
	s.live = kept
}

// traverse hit-tests the swept segment prev->p.Pos; returns true when the projectile is spent
func (s *ProjectileSystem) traverse(ctx *engine.SimulationContext, p *Projectile, prev core.Vec2, actors []*combat.Actor) bool {
	hitRadius := ctx.Config.Projectile.HitRadius
	for _, a := range actors {
		if a.ID == p.Owner.ID || !a.Alive() {
			continue
		}
		// Player shots only hit hostiles
		if p.Owner.Archetype == core.ArchetypePlayer && a.Archetype == core.ArchetypePlayer {
			continue
		}
		if _, done := p.hit[a.ID]; done {
			continue
		}

		reach := hitRadius + a.Stats.CollisionRadius
		if segmentDistSq(prev, p.Pos, a.Pos) > reach*reach {
			continue
		}

		// Impact bearing is where the shot came from
		origin := a.Pos.Sub(p.Vel.Normalized())
		ResolveHit(ctx, a, hitFrom(a, origin, p.Damage, p.Owner))

		if !p.Piercing {
			return true
		}
		if p.hit == nil {
			p.hit = make(map[core.ActorID]struct{})
		}
		p.hit[a.ID] = struct{}{}
	}
	return false
}

// segmentDistSq returns the squared distance from c to segment ab
func segmentDistSq(a, b, c core.Vec2) float64 {
	ab := b.Sub(a)
	l2 := ab.LenSq()
	if l2 == 0 {
		return c.DistSq(a)
	}
	t := c.Sub(a).Dot(ab) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return c.DistSq(a.Add(ab.Scale(t)))
}
