package event

// EventType represents the type of game event
type EventType int

const (
	EventNone EventType = iota

	// === Scoring / GameState ===

	// EventActorKilled reports a committed death, exactly once per actor
	// Trigger: ResolveHit, ActorSystem (deferred expiry)
	// Consumer: ScoreSystem, HUD | Payload: *ActorKilledPayload
	EventActorKilled

	// EventArmorSegmentDamaged reports a hit fully absorbed by a plate
	// Trigger: combat.Armor | Consumer: HUD | Payload: *ArmorSegmentPayload
	EventArmorSegmentDamaged

	// EventArmorSegmentDestroyed reports a plate breaking
	// Trigger: combat.Armor | Consumer: ScoreSystem, HUD | Payload: *ArmorSegmentPayload
	EventArmorSegmentDestroyed

	// EventDeathDeferred reports a lethal delayed hit entering the grace window
	// Trigger: ResolveHit | Consumer: HUD | Payload: *DeathDeferredPayload
	EventDeathDeferred

	// EventAngerTriggered reports Calm -> Angry
	// Trigger: combat.Anger | Consumer: HUD | Payload: *AngerPayload
	EventAngerTriggered

	// EventAngerCalmed reports Angry -> Calm after cooldown
	// Trigger: combat.Anger | Consumer: HUD | Payload: *AngerPayload
	EventAngerCalmed

	// EventPlayerDamaged reports damage applied to the player
	// Trigger: ResolveHit | Consumer: HUD | Payload: *PlayerDamagedPayload
	EventPlayerDamaged

	// EventPlayerDown reports player health reaching zero
	// Trigger: ResolveHit | Consumer: ScoreSystem, HUD | Payload: *PlayerDamagedPayload
	EventPlayerDown

	// === Projectile ===

	// EventProjectileSpawn carries a projectile descriptor
	// Trigger: ActorSystem, PlayerSystem | Consumer: ProjectileSystem | Payload: *ProjectilePayload
	EventProjectileSpawn

	// === Area damage ===

	// EventAreaDamage queues a radial damage event for the next router pass
	// Trigger: CommitKill (death explosions) | Consumer: DamageRouter | Payload: *AreaDamagePayload
	EventAreaDamage

	// === Spawn ===

	// EventActorSpawned reports a placed replacement
	// Trigger: SpawnSystem | Consumer: HUD | Payload: *ActorSpawnedPayload
	EventActorSpawned

	// EventSpawnFallback reports the degenerate spawn-at-player placement
	// Trigger: SpawnSystem | Consumer: HUD | Payload: *ActorSpawnedPayload
	EventSpawnFallback

	// === Gating ===

	// EventShotWithheld reports the friendly-fire guard holding a shot
	// Trigger: ActorSystem | Consumer: HUD | Payload: *ShotWithheldPayload
	EventShotWithheld

	// EventChargeStarted reports a heavy-ranged charge beginning on its beat
	// Trigger: ActorSystem | Consumer: HUD | Payload: *ChargeStartedPayload
	EventChargeStarted

	// EventBeat reports a beat boundary crossing, once per beat
	// Trigger: BeatSystem | Consumer: HUD | Payload: *BeatPayload
	EventBeat

	// EventGameReset reinitializes session state
	// Trigger: Arena.Restart | Consumer: DamageRouter, ProjectileSystem, ScoreSystem | Payload: nil
	EventGameReset

	EventTypeCount
)

var typeNames = map[EventType]string{
	EventNone:                  "none",
	EventActorKilled:           "actor-killed",
	EventArmorSegmentDamaged:   "armor-segment-damaged",
	EventArmorSegmentDestroyed: "armor-segment-destroyed",
	EventDeathDeferred:         "death-deferred",
	EventAngerTriggered:        "anger-triggered",
	EventAngerCalmed:           "anger-calmed",
	EventPlayerDamaged:         "player-damaged",
	EventPlayerDown:            "player-down",
	EventProjectileSpawn:       "projectile-spawn",
	EventAreaDamage:            "area-damage",
	EventActorSpawned:          "actor-spawned",
	EventSpawnFallback:         "spawn-fallback",
	EventShotWithheld:          "shot-withheld",
	EventChargeStarted:         "charge-started",
	EventBeat:                  "beat",
	EventGameReset:             "game-reset",
}

func (t EventType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// GameEvent is one queued event stamped with the tick that produced it
type GameEvent struct {
	Type    EventType
	Payload any
	Tick    uint64
}
