package gate

import (
	"testing"
	"time"

	"github.com/lixenwraith/pulse-arena/config"
	"github.com/lixenwraith/pulse-arena/core"
	"github.com/lixenwraith/pulse-arena/engine"
	"github.com/lixenwraith/pulse-arena/vmath"
)

// stateAt returns a 120 BPM, 4/4 reading at elapsed ms
func stateAt(ms int) engine.ClockState {
	return engine.ClockState{
		Elapsed:         time.Duration(ms) * time.Millisecond,
		BeatDuration:    500 * time.Millisecond,
		MeasureLength:   4,
		CoarseTolerance: 100 * time.Millisecond,
		FineTolerance:   16 * time.Millisecond,
	}
}

func TestEligibleTable(t *testing.T) {
	table := NewTable(config.Default())

	tests := []struct {
		name string
		a    core.Archetype
		ms   int
		want bool
	}{
		{"light on beat 2", core.ArchetypeLightRanged, 500, true},
		{"light on beat 3", core.ArchetypeLightRanged, 1000, false},
		{"light early beat 4", core.ArchetypeLightRanged, 1480, true},
		{"light between beats", core.ArchetypeLightRanged, 250, false},
		{"light late beat 2 next measure", core.ArchetypeLightRanged, 2590, true},
		{"heavy on beat 1", core.ArchetypeHeavyRanged, 0, true},
		{"heavy on beat 1 next measure", core.ArchetypeHeavyRanged, 2050, true},
		{"heavy on beat 2", core.ArchetypeHeavyRanged, 500, false},
		{"melee span start", core.ArchetypeFastMelee, 1376, true},
		{"melee before span", core.ArchetypeFastMelee, 1370, false},
		{"melee on beat 4", core.ArchetypeFastMelee, 1500, true},
		{"melee span end", core.ArchetypeFastMelee, 1625, true},
		{"melee after span", core.ArchetypeFastMelee, 1650, false},
		{"melee span next measure", core.ArchetypeFastMelee, 3400, true},
		{"armor on beat 3", core.ArchetypeHeavyArmor, 1050, true},
		{"armor on beat 2", core.ArchetypeHeavyArmor, 500, false},
		{"player any time", core.ArchetypePlayer, 321, true},
		{"unknown archetype", core.ArchetypeNone, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.Eligible(tt.a, stateAt(tt.ms)); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestEligiblePure(t *testing.T) {
	table := NewTable(config.Default())
	s := stateAt(500)
	first := table.Eligible(core.ArchetypeLightRanged, s)
	for i := 0; i < 10; i++ {
		if table.Eligible(core.ArchetypeLightRanged, s) != first {
			t.Fatal("Expected identical answers for the same state")
		}
	}
}

func TestCanStartCharge(t *testing.T) {
	table := NewTable(config.Default())
	if !table.CanStartCharge(core.ArchetypeHeavyRanged, stateAt(2000)) {
		t.Error("Expected charge start on beat 1")
	}
	if table.CanStartCharge(core.ArchetypeLightRanged, stateAt(500)) {
		t.Error("Expected no charge for beat-mode archetype")
	}
	if d := table.ChargeDuration(core.ArchetypeHeavyRanged); d != 800*time.Millisecond {
		t.Errorf("Expected 800ms charge, got %v", d)
	}
}

func TestSubdivision(t *testing.T) {
	cfg := config.Default()
	if got := NewTable(cfg).Subdivision(core.ArchetypePlayer); got != 4 {
		t.Errorf("Expected default subdivision 4, got %d", got)
	}

	g := cfg.Gates[core.ArchetypePlayer.String()]
	g.Subdivision = 8
	cfg.Gates[core.ArchetypePlayer.String()] = g
	table := NewTable(cfg)
	if got := table.Subdivision(core.ArchetypePlayer); got != 8 {
		t.Errorf("Expected subdivision 8 from the gate row, got %d", got)
	}
	if got := table.Subdivision(core.ArchetypeLightRanged); got != 1 {
		t.Errorf("Expected 1 for a row without subdivision, got %d", got)
	}
}

func TestFinePrecision(t *testing.T) {
	cfg := config.Default()
	cfg.Gates[core.ArchetypeLightRanged.String()] = config.Gate{
		Mode:      config.GateModeBeats,
		Beats:     []int{1},
		Precision: config.PrecisionFine,
	}
	table := NewTable(cfg)
	if !table.Eligible(core.ArchetypeLightRanged, stateAt(2010)) {
		t.Error("Expected eligible within fine tolerance")
	}
	if table.Eligible(core.ArchetypeLightRanged, stateAt(2050)) {
		t.Error("Expected ineligible outside fine tolerance")
	}
}

func TestShotQueue(t *testing.T) {
	q := NewShotQueue(4)

	if r := q.Request(stateAt(1010)); r != ShotFired {
		t.Errorf("Expected fired on subdivision, got %s", r)
	}
	if r := q.Request(stateAt(1060)); r != ShotQueued {
		t.Errorf("Expected queued off subdivision, got %s", r)
	}
	if r := q.Request(stateAt(1070)); r != ShotIgnored {
		t.Errorf("Expected second request ignored, got %s", r)
	}
	if q.Update(stateAt(1100)) {
		t.Error("Expected no fire before crossing")
	}
	if !q.Update(stateAt(1125)) {
		t.Error("Expected fire at crossing")
	}
	if q.Update(stateAt(1130)) || q.Pending() {
		t.Error("Expected queue drained after firing once")
	}

	q.Request(stateAt(1060))
	q.Reset()
	if q.Pending() {
		t.Error("Expected reset to drop queued shot")
	}
}

func TestFriendlyFireGuard(t *testing.T) {
	grid := engine.NewSpatialGrid(core.Bounds{Max: core.Vec2{X: 100, Y: 100}}, 8, 6)
	shooter := core.Occupant{ID: 1, Archetype: core.ArchetypeLightRanged, Pos: core.Vec2{X: 10, Y: 10}}
	ally := core.Occupant{ID: 2, Archetype: core.ArchetypeFastMelee, Pos: core.Vec2{X: 20, Y: 10}}
	player := core.Occupant{ID: 3, Archetype: core.ArchetypePlayer, Pos: core.Vec2{X: 30, Y: 10}}
	grid.Rebuild([]core.Occupant{shooter, ally, player})
	aim := core.Vec2{X: 1}

	always := NewFriendlyFireGuard(config.FriendlyFireConfig{WithholdProbability: 1, AngleToleranceDeg: 12}, vmath.NewFastRand(1))
	if withhold, blocker := always.Check(grid, shooter, aim, 25); !withhold || blocker != 2 {
		t.Errorf("Expected withheld by 2, got %v %d", withhold, blocker)
	}

	never := NewFriendlyFireGuard(config.FriendlyFireConfig{WithholdProbability: 0, AngleToleranceDeg: 12}, vmath.NewFastRand(1))
	if withhold, blocker := never.Check(grid, shooter, aim, 25); withhold || blocker != 2 {
		t.Errorf("Expected allowed with blocker 2, got %v %d", withhold, blocker)
	}

	if withhold, _ := always.Check(nil, shooter, aim, 25); withhold {
		t.Error("Expected nil index to fail open")
	}

	// Aiming away from the ally only finds empty space
	if withhold, _ := always.Check(grid, shooter, core.Vec2{Y: 1}, 25); withhold {
		t.Error("Expected clear shot off-axis")
	}

	grid.Rebuild([]core.Occupant{shooter, player})
	if withhold, _ := always.Check(grid, shooter, aim, 25); withhold {
		t.Error("Expected player in cone to be ignored")
	}
}

func TestFriendlyFireProbability(t *testing.T) {
	grid := engine.NewSpatialGrid(core.Bounds{Max: core.Vec2{X: 100, Y: 100}}, 8, 6)
	shooter := core.Occupant{ID: 1, Archetype: core.ArchetypeLightRanged, Pos: core.Vec2{X: 10, Y: 10}}
	grid.Rebuild([]core.Occupant{shooter, {ID: 2, Archetype: core.ArchetypeLightRanged, Pos: core.Vec2{X: 15, Y: 10}}})
	g := NewFriendlyFireGuard(config.Default().FriendlyFire, vmath.NewFastRand(42))

	withheld := 0
	const trials = 10000
	for i := 0; i < trials; i++ {
		if ok, _ := g.Check(grid, shooter, core.Vec2{X: 1}, 20); ok {
			withheld++
		}
	}
	ratio := float64(withheld) / trials
	if ratio < 0.65 || ratio > 0.75 {
		t.Errorf("Expected withhold ratio near 0.7, got %v", ratio)
	}
}
