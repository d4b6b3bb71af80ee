// Package spawn places new actors around the player
package spawn

import (
	"log"
	"math"

	"github.com/lixenwraith/pulse-arena/config"
	"github.com/lixenwraith/pulse-arena/core"
	"github.com/lixenwraith/pulse-arena/engine"
	"github.com/lixenwraith/pulse-arena/vmath"
)

// Strategy names the placement pass that produced a position
type Strategy uint8

const (
	StrategyAnnulus Strategy = iota
	StrategySpiral
	StrategyFallback // Player position; separation not guaranteed
)

func (s Strategy) String() string {
	switch s {
	case StrategyAnnulus:
		return "annulus"
	case StrategySpiral:
		return "spiral"
	}
	return "fallback"
}

// Reason is why a candidate was rejected
type Reason uint8

const (
	ReasonCrowded Reason = iota + 1
	ReasonOutOfBounds
)

func (r Reason) String() string {
	switch r {
	case ReasonCrowded:
		return "crowded"
	case ReasonOutOfBounds:
		return "out-of-bounds"
	}
	return "none"
}

// Candidate is a rejected position, kept for diagnostics
type Candidate struct {
	Pos    core.Vec2
	Reason Reason
}

// Placement is the result of one Place call
type Placement struct {
	Pos      core.Vec2
	Strategy Strategy
	Attempts int
	Rejected []Candidate // Most recent rejections, bounded by spawn.max_rejections
}

// Positioner finds spawn positions that keep a minimum separation
type Positioner struct {
	cfg    config.SpawnConfig
	bounds core.Bounds
	rand   vmath.Rand
	log    *log.Logger
}

// NewPositioner creates a positioner over the configured world
func NewPositioner(cfg *config.Config, r vmath.Rand, logger *log.Logger) *Positioner {
	return &Positioner{
		cfg:    cfg.Spawn,
		bounds: cfg.Bounds(),
		rand:   r,
		log:    logger,
	}
}

// Place returns a position for a new actor near player
// existing holds positions not yet in index (spawned earlier this tick); index may be nil
// Never fails: after annulus and spiral are exhausted the clamped player position is returned
func (p *Positioner) Place(player core.Vec2, existing []core.Vec2, index engine.SpatialIndex) Placement {
	var pl Placement

	// Annulus sampling
	for i := 0; i < p.cfg.Attempts; i++ {
		pl.Attempts++
		angle := p.rand.Float64() * 2 * math.Pi
		// Area-uniform radius between inner and outer
		r2 := vmath.Range(p.rand, p.cfg.InnerRadius*p.cfg.InnerRadius, p.cfg.OuterRadius*p.cfg.OuterRadius)
		c := player.Add(core.FromAngle(angle).Scale(math.Sqrt(r2)))
		if !p.bounds.Contains(c) {
			p.reject(&pl, c, ReasonOutOfBounds)
			continue
		}
		if !p.clear(c, existing, index) {
			p.reject(&pl, c, ReasonCrowded)
			continue
		}
		pl.Pos = c
		pl.Strategy = StrategyAnnulus
		return pl
	}

	// Outward spiral from a random start
	angle := p.rand.Float64() * 2 * math.Pi
	radius := vmath.Range(p.rand, p.cfg.SpiralStartRadius, max(p.cfg.SpiralStartRadius, p.cfg.InnerRadius))
	stepAngle := p.cfg.SpiralStepAngleDeg * vmath.DegToRad
	for i := 0; i < p.cfg.SpiralSteps; i++ {
		pl.Attempts++
		c := p.bounds.Clamp(player.Add(core.FromAngle(angle).Scale(radius)))
		if p.clear(c, existing, index) {
			pl.Pos = c
			pl.Strategy = StrategySpiral
			return pl
		}
		p.reject(&pl, c, ReasonCrowded)
		angle += stepAngle
		radius += p.cfg.SpiralStepRadius
	}

	pl.Pos = p.bounds.Clamp(player)
	pl.Strategy = StrategyFallback
	if p.log != nil {
		p.log.Printf("spawn: placement exhausted after %d attempts, using player position %.1f,%.1f",
			pl.Attempts, pl.Pos.X, pl.Pos.Y)
	}
	return pl
}

// clear reports whether c keeps min separation from every indexed and pending occupant
func (p *Positioner) clear(c core.Vec2, existing []core.Vec2, index engine.SpatialIndex) bool {
	minSq := p.cfg.MinSeparation * p.cfg.MinSeparation
	for _, e := range existing {
		if c.DistSq(e) < minSq {
			return false
		}
	}
	if index == nil {
		return true
	}
	for _, o := range nearby(index, c, p.cfg.MinSeparation) {
		if c.DistSq(o.Pos) < minSq {
			return false
		}
	}
	return true
}

// radiusIndex is implemented by indexes that answer arbitrary radius queries
type radiusIndex interface {
	Within(point core.Vec2, radius float64) []core.Occupant
}

// nearby returns occupants that may lie within radius of c
// Indexes without radius queries fall back to their fixed neighbor radius
func nearby(index engine.SpatialIndex, c core.Vec2, radius float64) []core.Occupant {
	if ri, ok := index.(radiusIndex); ok {
		return ri.Within(c, radius)
	}
	return index.NeighborQuery(c)
}

func (p *Positioner) reject(pl *Placement, c core.Vec2, reason Reason) {
	if p.cfg.MaxRejections <= 0 {
		return
	}
	if len(pl.Rejected) == p.cfg.MaxRejections {
		copy(pl.Rejected, pl.Rejected[1:])
		pl.Rejected = pl.Rejected[:len(pl.Rejected)-1]
	}
	pl.Rejected = append(pl.Rejected, Candidate{Pos: c, Reason: reason})
}
