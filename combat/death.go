package combat

// DeathPhase is the generic death machine state
type DeathPhase uint8

const (
	PhaseAlive DeathPhase = iota
	PhasePendingDeath
	PhaseDead
)

func (p DeathPhase) String() string {
	names := [...]string{"alive", "pending-death", "dead"}
	if int(p) < len(names) {
		return names[p]
	}
	return "unknown"
}

// DeathMachine sequences Alive -> [PendingDeath ->] Dead
// Only the first captured lethal hit is ever replayed
type DeathMachine struct {
	Phase          DeathPhase
	RemainingTicks float64
	Captured       DamageEvent

	graceTicks float64
}

// NewDeathMachine returns an Alive machine with the given grace window
func NewDeathMachine(graceTicks float64) DeathMachine {
	return DeathMachine{graceTicks: graceTicks}
}

// Pending reports whether a grace window is running
func (d *DeathMachine) Pending() bool {
	return d.Phase == PhasePendingDeath
}

// apply routes main-health damage; health is mutated in place
// Only Alive actors transition; Pending and Dead callers get ResultAlive
func (d *DeathMachine) apply(health *float64, ev DamageEvent, amount float64) DamageResult {
	if d.Phase != PhaseAlive || amount <= 0 {
		return ResultAlive
	}

	if amount < *health {
		*health -= amount
		return ResultAlive
	}

	if ev.Source.Cause.Delayed() && d.graceTicks > 0 {
		d.Phase = PhasePendingDeath
		d.RemainingTicks = d.graceTicks
		d.Captured = ev
		d.Captured.Amount = amount
		return ResultDeferred
	}

	*health = 0
	d.Phase = PhaseDead
	return ResultKilled
}

// tick advances the grace window; returns true on the tick the captured hit is replayed
func (d *DeathMachine) tick(health *float64, dtTicks float64) bool {
	if d.Phase != PhasePendingDeath {
		return false
	}
	d.RemainingTicks -= dtTicks
	if d.RemainingTicks > 0 {
		return false
	}

	d.RemainingTicks = 0
	*health -= d.Captured.Amount
	if *health < 0 {
		*health = 0
	}
	d.Phase = PhaseDead
	return true
}
