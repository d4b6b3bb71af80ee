// Package config loads and validates simulation tunables
// Defaults ship as an embedded YAML document; user files override keys
package config

import (
	"time"

	"github.com/lixenwraith/pulse-arena/core"
)

// Gate modes
const (
	GateModeBeats  = "beats"
	GateModeCharge = "charge"
	GateModeSpan   = "span"
	GateModeFree   = "free"
)

// Gate precisions
const (
	PrecisionCoarse = "coarse"
	PrecisionFine   = "fine"
)

// Config is the full tunable set for one session
type Config struct {
	Seed         uint64             `yaml:"seed"`
	Tick         TickConfig         `yaml:"tick"`
	Clock        ClockConfig        `yaml:"clock"`
	World        WorldConfig        `yaml:"world"`
	Grid         GridConfig         `yaml:"grid"`
	Gates        map[string]Gate    `yaml:"gates"`
	FriendlyFire FriendlyFireConfig `yaml:"friendly_fire"`
	Archetypes   ArchetypesConfig   `yaml:"archetypes"`
	Player       PlayerConfig       `yaml:"player"`
	Armor        ArmorConfig        `yaml:"armor"`
	Anger        AngerConfig        `yaml:"anger"`
	Death        DeathConfig        `yaml:"death"`
	Projectile   ProjectileConfig   `yaml:"projectile"`
	Spawn        SpawnConfig        `yaml:"spawn"`
	Score        ScoreConfig        `yaml:"score"`
	Ambient      AmbientConfig      `yaml:"ambient"`
}

type TickConfig struct {
	NominalRate int `yaml:"nominal_rate"`
}

type ClockConfig struct {
	BPM             float64       `yaml:"bpm"`
	MeasureLength   int           `yaml:"measure_length"`
	CoarseTolerance time.Duration `yaml:"coarse_tolerance"`
	FineTolerance   time.Duration `yaml:"fine_tolerance"`
}

type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type GridConfig struct {
	CellSize       float64 `yaml:"cell_size"`
	NeighborRadius float64 `yaml:"neighbor_radius"`
}

// Gate is one row of the action eligibility table
// Beats are 1-indexed within the measure
type Gate struct {
	Mode           string        `yaml:"mode"`
	Beats          []int         `yaml:"beats"`
	Precision      string        `yaml:"precision"`
	ChargeDuration time.Duration `yaml:"charge_duration"`
	SpanBeat       int           `yaml:"span_beat"`
	LeadFraction   float64       `yaml:"lead_fraction"`
	TrailFraction  float64       `yaml:"trail_fraction"`
	Subdivision    int           `yaml:"subdivision"`
}

type FriendlyFireConfig struct {
	WithholdProbability float64 `yaml:"withhold_probability"`
	AngleToleranceDeg   float64 `yaml:"angle_tolerance_deg"`
}

type ArchetypesConfig struct {
	// Default is the fallback when an unknown archetype name is requested
	Default string                     `yaml:"default"`
	Stats   map[string]ArchetypeConfig `yaml:"stats"`
}

// ArchetypeConfig holds per-archetype combat stats
type ArchetypeConfig struct {
	MaxHealth       float64       `yaml:"max_health"`
	Speed           float64       `yaml:"speed"`
	CollisionRadius float64       `yaml:"collision_radius"`
	PreferredRange  float64       `yaml:"preferred_range"`
	AttackRange     float64       `yaml:"attack_range"`
	Cooldown        time.Duration `yaml:"cooldown"`
	Damage          float64       `yaml:"damage"`
	ProjectileSpeed float64       `yaml:"projectile_speed"`
	Piercing        bool          `yaml:"piercing"`
	Cause           string        `yaml:"cause"`
	Armored         bool          `yaml:"armored"`
	Angers          bool          `yaml:"angers"`
	ExplosionRadius float64       `yaml:"explosion_radius"`
	ExplosionDamage float64       `yaml:"explosion_damage"`
	ExplosionFloor  float64       `yaml:"explosion_floor"`
	ExplosionCause  string        `yaml:"explosion_cause"`
}

type PlayerConfig struct {
	SlashDamage   float64       `yaml:"slash_damage"`
	SlashRange    float64       `yaml:"slash_range"`
	SlashArcDeg   float64       `yaml:"slash_arc_deg"`
	SlashCause    string        `yaml:"slash_cause"`
	SlashCooldown time.Duration `yaml:"slash_cooldown"`
}

type ArmorConfig struct {
	Front float64 `yaml:"front"`
	Left  float64 `yaml:"left"`
	Right float64 `yaml:"right"`
}

type AngerConfig struct {
	Threshold     int     `yaml:"threshold"`
	CooldownTicks float64 `yaml:"cooldown_ticks"`
}

type DeathConfig struct {
	GraceTicks float64 `yaml:"grace_ticks"`
	// PendingHitCues emits cosmetic hit cues for damage taken while a death is pending
	PendingHitCues bool `yaml:"pending_hit_cues"`
}

type ProjectileConfig struct {
	HitRadius        float64 `yaml:"hit_radius"`
	MaxLifetimeTicks float64 `yaml:"max_lifetime_ticks"`
}

type SpawnConfig struct {
	InnerRadius        float64            `yaml:"inner_radius"`
	OuterRadius        float64            `yaml:"outer_radius"`
	MinSeparation      float64            `yaml:"min_separation"`
	Attempts           int                `yaml:"attempts"`
	SpiralSteps        int                `yaml:"spiral_steps"`
	SpiralStartRadius  float64            `yaml:"spiral_start_radius"`
	SpiralStepRadius   float64            `yaml:"spiral_step_radius"`
	SpiralStepAngleDeg float64            `yaml:"spiral_step_angle_deg"`
	MaxRejections      int                `yaml:"max_rejections"`
	Population         int                `yaml:"population"`
	Weights            map[string]float64 `yaml:"weights"`
}

type ScoreConfig struct {
	Points map[string]int     `yaml:"points"`
	Bonus  map[string]float64 `yaml:"bonus"`
}

type AmbientConfig struct {
	CueChance float64 `yaml:"cue_chance"`
}

// NominalTick returns the duration of one nominal simulation tick
func (c *Config) NominalTick() time.Duration {
	return time.Second / time.Duration(c.Tick.NominalRate)
}

// Bounds returns the world rectangle anchored at the origin
func (c *Config) Bounds() core.Bounds {
	return core.Bounds{Max: core.Vec2{X: c.World.Width, Y: c.World.Height}}
}

// Stats returns the stat block for an archetype
func (c *Config) Stats(a core.Archetype) (ArchetypeConfig, bool) {
	st, ok := c.Archetypes.Stats[a.String()]
	return st, ok
}

// GateFor returns the gate row for an archetype
func (c *Config) GateFor(a core.Archetype) (Gate, bool) {
	g, ok := c.Gates[a.String()]
	return g, ok
}

// BonusFor returns the score multiplier for a cause, 1 when unlisted
func (c *Config) BonusFor(cause core.Cause) float64 {
	if m, ok := c.Score.Bonus[cause.String()]; ok {
		return m
	}
	return 1
}
