package core

// CueKind identifies a fire-and-forget presentation/audio notification
type CueKind uint8

const (
	CueNone CueKind = iota
	CueArmorDamaged
	CueArmorDestroyed
	CueKilled
	CueDeathPending
	CueAngerTriggered
	CueAngerCalmed
	CueFire
	CueChargeStart
	CueWithheld
	CueHit
	CueAmbient
	CueBeat
	CueKindCount
)

func (k CueKind) String() string {
	names := [...]string{
		"none", "armor-damaged", "armor-destroyed", "killed", "death-pending",
		"anger-triggered", "anger-calmed", "fire", "charge-start", "withheld",
		"hit", "ambient", "beat",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}
