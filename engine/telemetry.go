package engine

import "sync/atomic"

// Telemetry holds session counters
// Written by the tick loop, read lock-free by presentation goroutines
type Telemetry struct {
	Kills          atomic.Int64
	DeferredDeaths atomic.Int64
	ShotsFired     atomic.Int64
	ShotsWithheld  atomic.Int64
	ArmorBroken    atomic.Int64
	AngerTriggers  atomic.Int64
	Spawned        atomic.Int64
	SpawnFallbacks atomic.Int64
	UnknownAngles  atomic.Int64
	Score          atomic.Int64
}

// Reset zeroes every counter
func (t *Telemetry) Reset() {
	t.Range(func(_ string, c *atomic.Int64) { c.Store(0) })
}

// Range visits counters in a fixed order
func (t *Telemetry) Range(fn func(name string, c *atomic.Int64)) {
	fn("kills", &t.Kills)
	fn("deferred", &t.DeferredDeaths)
	fn("fired", &t.ShotsFired)
	fn("withheld", &t.ShotsWithheld)
	fn("armor.broken", &t.ArmorBroken)
	fn("anger", &t.AngerTriggers)
	fn("spawned", &t.Spawned)
	fn("spawn.fallback", &t.SpawnFallbacks)
	fn("angle.unknown", &t.UnknownAngles)
	fn("score", &t.Score)
}
