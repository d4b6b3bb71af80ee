package engine

// System is one stage of the tick pipeline
type System interface {
	// Name identifies the system in logs
	Name() string

	// Priority orders execution, lower values run first
	Priority() int

	// Init resets session state; called on construction and restart
	Init()

	// Update advances the system by one tick
	Update(ctx *SimulationContext)
}
