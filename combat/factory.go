package combat

import (
	"log"

	"github.com/lixenwraith/pulse-arena/config"
	"github.com/lixenwraith/pulse-arena/core"
)

// Factory builds actors with every sub-state at its default:
// full armor, Calm, no pending death
type Factory struct {
	cfg      *config.Config
	log      *log.Logger
	fallback core.Archetype
	nextID   core.ActorID
}

// NewFactory creates a factory; archetypes.default must already be validated
func NewFactory(cfg *config.Config, logger *log.Logger) *Factory {
	fallback, _ := core.ParseArchetype(cfg.Archetypes.Default)
	return &Factory{
		cfg:      cfg,
		log:      logger,
		fallback: fallback,
	}
}

// Reset restarts ID assignment for a new session
func (f *Factory) Reset() {
	f.nextID = 0
}

// Fallback returns the archetype substituted for unknown names
func (f *Factory) Fallback() core.Archetype {
	return f.fallback
}

// NewNamed builds an actor from a config archetype name
// An unknown name returns a ConfigurationError together with an actor of the
// fallback archetype, so callers may log and continue
func (f *Factory) NewNamed(name string, pos core.Vec2) (*Actor, error) {
	a, ok := core.ParseArchetype(name)
	if ok {
		return f.New(a, pos)
	}

	err := &config.ConfigurationError{Field: "archetype", Reason: "unknown archetype " + name + ", using " + f.fallback.String()}
	f.log.Printf("factory: %v", err)
	actor, ferr := f.New(f.fallback, pos)
	if ferr != nil {
		return nil, ferr
	}
	return actor, err
}

// New builds an actor of a known archetype
func (f *Factory) New(a core.Archetype, pos core.Vec2) (*Actor, error) {
	stats, ok := f.cfg.Stats(a)
	if !ok {
		err := &config.ConfigurationError{Field: "archetypes.stats", Reason: "no stats for " + a.String()}
		f.log.Printf("factory: %v", err)
		return nil, err
	}

	f.nextID++
	actor := &Actor{
		ActorCore: ActorCore{
			ID:        f.nextID,
			Archetype: a,
			Pos:       pos,
			Health:    stats.MaxHealth,
			MaxHealth: stats.MaxHealth,
			Death:     NewDeathMachine(f.cfg.Death.GraceTicks),
		},
		Stats: stats,
	}

	switch a {
	case core.ArchetypePlayer:
		actor.Payload = &PlayerPayload{}
	case core.ArchetypeLightRanged:
		actor.Payload = &RangedPayload{}
	case core.ArchetypeHeavyRanged:
		actor.Payload = &ChargePayload{}
	case core.ArchetypeFastMelee:
		actor.Payload = &MeleePayload{}
	case core.ArchetypeHeavyArmor:
		if !stats.Armored {
			err := &config.ConfigurationError{Field: "archetypes.stats." + a.String() + ".armored", Reason: "heavy-armor needs armor plates"}
			f.log.Printf("factory: %v", err)
			return nil, err
		}
		actor.Payload = &ArmorPayload{
			Armor: NewArmor(f.cfg.Armor),
			Anger: NewAnger(f.cfg.Anger),
		}
	default:
		err := &config.ConfigurationError{Field: "archetype", Reason: "no payload for " + a.String()}
		f.log.Printf("factory: %v", err)
		return nil, err
	}
	return actor, nil
}
