package config

import (
	"errors"

	"github.com/lixenwraith/pulse-arena/core"
)

// Validate checks ranges and cross references; all violations are joined
func (c *Config) Validate() error {
	var errs []error
	add := func(err *ConfigurationError) { errs = append(errs, err) }

	if c.Tick.NominalRate <= 0 {
		add(newErr("tick.nominal_rate", "must be positive, got %d", c.Tick.NominalRate))
	}

	if c.Clock.BPM <= 0 {
		add(newErr("clock.bpm", "must be positive, got %v", c.Clock.BPM))
	}
	if c.Clock.MeasureLength <= 0 {
		add(newErr("clock.measure_length", "must be positive, got %d", c.Clock.MeasureLength))
	}
	if c.Clock.CoarseTolerance <= 0 {
		add(newErr("clock.coarse_tolerance", "must be positive"))
	}
	if c.Clock.FineTolerance <= 0 {
		add(newErr("clock.fine_tolerance", "must be positive"))
	}

	if c.World.Width <= 0 || c.World.Height <= 0 {
		add(newErr("world", "width and height must be positive"))
	}
	if c.Grid.CellSize <= 0 {
		add(newErr("grid.cell_size", "must be positive"))
	}
	if c.Grid.NeighborRadius <= 0 {
		add(newErr("grid.neighbor_radius", "must be positive"))
	}

	c.validateGates(add)

	if c.FriendlyFire.WithholdProbability < 0 || c.FriendlyFire.WithholdProbability > 1 {
		add(newErr("friendly_fire.withhold_probability", "must be in [0,1], got %v", c.FriendlyFire.WithholdProbability))
	}
	if c.FriendlyFire.AngleToleranceDeg <= 0 || c.FriendlyFire.AngleToleranceDeg > 180 {
		add(newErr("friendly_fire.angle_tolerance_deg", "must be in (0,180]"))
	}

	c.validateArchetypes(add)

	if _, ok := core.ParseCause(c.Player.SlashCause); !ok {
		add(newErr("player.slash_cause", "unknown cause %q", c.Player.SlashCause))
	}
	if c.Player.SlashRange <= 0 || c.Player.SlashArcDeg <= 0 {
		add(newErr("player", "slash_range and slash_arc_deg must be positive"))
	}
	if c.Player.SlashCooldown < 0 {
		add(newErr("player.slash_cooldown", "must not be negative"))
	}

	if c.Armor.Front <= 0 || c.Armor.Left <= 0 || c.Armor.Right <= 0 {
		add(newErr("armor", "segment capacities must be positive"))
	}
	if c.Anger.Threshold <= 0 {
		add(newErr("anger.threshold", "must be positive"))
	}
	if c.Anger.CooldownTicks < 0 {
		add(newErr("anger.cooldown_ticks", "must not be negative"))
	}
	if c.Death.GraceTicks < 0 {
		add(newErr("death.grace_ticks", "must not be negative"))
	}
	if c.Projectile.HitRadius <= 0 || c.Projectile.MaxLifetimeTicks <= 0 {
		add(newErr("projectile", "hit_radius and max_lifetime_ticks must be positive"))
	}

	c.validateSpawn(add)

	for name := range c.Score.Points {
		if _, ok := core.ParseArchetype(name); !ok {
			add(newErr("score.points", "unknown archetype %q", name))
		}
	}
	for name := range c.Score.Bonus {
		if _, ok := core.ParseCause(name); !ok {
			add(newErr("score.bonus", "unknown cause %q", name))
		}
	}

	if c.Ambient.CueChance < 0 || c.Ambient.CueChance > 1 {
		add(newErr("ambient.cue_chance", "must be in [0,1]"))
	}

	return errors.Join(errs...)
}

func (c *Config) validateGates(add func(*ConfigurationError)) {
	for name, g := range c.Gates {
		field := "gates." + name
		_, ok := core.ParseArchetype(name)
		if !ok {
			add(newErr(field, "unknown archetype"))
			continue
		}
		for _, b := range g.Beats {
			if b < 1 || b > c.Clock.MeasureLength {
				add(newErr(field+".beats", "beat %d outside measure of %d", b, c.Clock.MeasureLength))
			}
		}
		switch g.Precision {
		case "", PrecisionCoarse, PrecisionFine:
		default:
			add(newErr(field+".precision", "unknown precision %q", g.Precision))
		}
		switch g.Mode {
		case GateModeBeats:
			if len(g.Beats) == 0 {
				add(newErr(field+".beats", "beats mode needs at least one beat"))
			}
		case GateModeCharge:
			if len(g.Beats) == 0 {
				add(newErr(field+".beats", "charge mode needs a start beat"))
			}
			if g.ChargeDuration <= 0 {
				add(newErr(field+".charge_duration", "must be positive"))
			}
		case GateModeSpan:
			if g.SpanBeat < 1 || g.SpanBeat > c.Clock.MeasureLength {
				add(newErr(field+".span_beat", "beat %d outside measure", g.SpanBeat))
			}
			if g.LeadFraction < 0 || g.LeadFraction > 1 || g.TrailFraction < 0 || g.TrailFraction > 1 {
				add(newErr(field, "lead/trail fractions must be in [0,1]"))
			}
		case GateModeFree:
			if g.Subdivision <= 0 {
				add(newErr(field+".subdivision", "must be positive"))
			}
		default:
			add(newErr(field+".mode", "unknown mode %q", g.Mode))
		}
	}

	required := append([]core.Archetype{core.ArchetypePlayer}, core.Hostiles()...)
	for _, a := range required {
		if _, ok := c.Gates[a.String()]; !ok {
			add(newErr("gates", "missing row for %s", a))
		}
	}
	if g, ok := c.Gates[core.ArchetypePlayer.String()]; ok && g.Mode != GateModeFree {
		add(newErr("gates.player.mode", "player shots snap to subdivisions, mode must be %q", GateModeFree))
	}
}

func (c *Config) validateArchetypes(add func(*ConfigurationError)) {
	def, ok := core.ParseArchetype(c.Archetypes.Default)
	if !ok || def == core.ArchetypePlayer {
		add(newErr("archetypes.default", "must name a hostile archetype, got %q", c.Archetypes.Default))
	}

	for name, st := range c.Archetypes.Stats {
		field := "archetypes.stats." + name
		arch, ok := core.ParseArchetype(name)
		if !ok {
			add(newErr(field, "unknown archetype"))
			continue
		}
		if st.MaxHealth <= 0 {
			add(newErr(field+".max_health", "must be positive"))
		}
		if st.Speed < 0 || st.CollisionRadius < 0 || st.AttackRange < 0 || st.PreferredRange < 0 {
			add(newErr(field, "speed, ranges and radii must not be negative"))
		}
		if st.Armored != (arch == core.ArchetypeHeavyArmor) {
			add(newErr(field+".armored", "only heavy-armor carries armor plates"))
		}
		if st.ExplosionFloor < 0 || st.ExplosionFloor > st.ExplosionDamage {
			add(newErr(field+".explosion_floor", "need 0 <= explosion_floor <= explosion_damage"))
		}
		if st.Cause != "" {
			if _, ok := core.ParseCause(st.Cause); !ok {
				add(newErr(field+".cause", "unknown cause %q", st.Cause))
			}
		}
		if st.ExplosionRadius > 0 {
			if _, ok := core.ParseCause(st.ExplosionCause); !ok {
				add(newErr(field+".explosion_cause", "unknown cause %q", st.ExplosionCause))
			}
		}
	}

	required := append([]core.Archetype{core.ArchetypePlayer}, core.Hostiles()...)
	for _, a := range required {
		if _, ok := c.Archetypes.Stats[a.String()]; !ok {
			add(newErr("archetypes.stats", "missing stats for %s", a))
		}
	}
}

func (c *Config) validateSpawn(add func(*ConfigurationError)) {
	s := c.Spawn
	if s.InnerRadius < 0 || s.OuterRadius <= s.InnerRadius {
		add(newErr("spawn", "need 0 <= inner_radius < outer_radius"))
	}
	if s.MinSeparation < 0 {
		add(newErr("spawn.min_separation", "must not be negative"))
	}
	if s.Attempts < 0 || s.SpiralSteps < 0 || s.MaxRejections < 0 || s.Population < 0 {
		add(newErr("spawn", "attempts, spiral_steps, max_rejections and population must not be negative"))
	}
	if s.SpiralStepRadius < 0 {
		add(newErr("spawn.spiral_step_radius", "must not be negative"))
	}

	total := 0.0
	for name, w := range s.Weights {
		// Unknown names are resolved by the actor factory, which falls back to archetypes.default
		if name == core.ArchetypePlayer.String() {
			add(newErr("spawn.weights", "player cannot be spawned"))
			continue
		}
		if w < 0 {
			add(newErr("spawn.weights."+name, "must not be negative"))
		}
		total += w
	}
	if s.Population > 0 && total <= 0 {
		add(newErr("spawn.weights", "population needs at least one positive weight"))
	}
}
