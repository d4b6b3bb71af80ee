package parameter

// System execution priorities (lower runs first)
// Systems below PriorityDispatch run before the event dispatch phase of a tick,
// the rest run after it
const (
	PriorityBeat       = 5
	PriorityActor      = 10
	PriorityProjectile = 20 // After actors fire, before area damage
	PriorityDamage     = 30
	PriorityDispatch   = 50
	PriorityScore      = 60
	PrioritySpawn      = 70 // After sweep of dead actors
)
