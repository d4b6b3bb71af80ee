package core

// ActorID identifies a combat actor for the lifetime of a session
// Zero is never assigned
type ActorID uint64

// Archetype identifies a combat actor class governing stats and gating
type Archetype uint8

const (
	ArchetypeNone Archetype = iota
	ArchetypePlayer
	ArchetypeLightRanged
	ArchetypeHeavyRanged
	ArchetypeFastMelee
	ArchetypeHeavyArmor
	ArchetypeCount
)

var archetypeNames = [...]string{"none", "player", "light-ranged", "heavy-ranged", "fast-melee", "heavy-armor"}

func (a Archetype) String() string {
	if int(a) < len(archetypeNames) {
		return archetypeNames[a]
	}
	return "unknown"
}

// ParseArchetype resolves a config name to an archetype
func ParseArchetype(name string) (Archetype, bool) {
	for i, n := range archetypeNames {
		if i == int(ArchetypeNone) {
			continue
		}
		if n == name {
			return Archetype(i), true
		}
	}
	return ArchetypeNone, false
}

// Hostiles lists the non-player archetypes in iteration order
func Hostiles() []Archetype {
	return []Archetype{ArchetypeLightRanged, ArchetypeHeavyRanged, ArchetypeFastMelee, ArchetypeHeavyArmor}
}

// Cause categorizes the source of damage
type Cause uint8

const (
	CauseNone Cause = iota
	CauseProjectile
	CauseMelee
	CauseDelayedMelee
	CauseExplosion
	CauseDelayedExplosion
	CauseCount
)

var causeNames = [...]string{"none", "projectile", "melee", "delayed-melee", "explosion", "delayed-explosion"}

func (c Cause) String() string {
	if int(c) < len(causeNames) {
		return causeNames[c]
	}
	return "unknown"
}

// ParseCause resolves a config name to a cause
func ParseCause(name string) (Cause, bool) {
	for i, n := range causeNames {
		if n == name {
			return Cause(i), true
		}
	}
	return CauseNone, false
}

// Delayed returns true for causes whose lethal hits enter the grace window
func (c Cause) Delayed() bool {
	return c == CauseDelayedMelee || c == CauseDelayedExplosion
}

// SourceTag identifies who dealt damage and how
type SourceTag struct {
	ID        ActorID
	Archetype Archetype
	Cause     Cause
}

// Occupant is a spatial index entry
type Occupant struct {
	ID        ActorID
	Archetype Archetype
	Pos       Vec2
}

// Segment identifies a directional armor plate
type Segment uint8

const (
	SegmentNone Segment = iota
	SegmentFront
	SegmentLeft
	SegmentRight
	SegmentCount
)

func (s Segment) String() string {
	names := [...]string{"none", "front", "left", "right"}
	if int(s) < len(names) {
		return names[s]
	}
	return "unknown"
}
