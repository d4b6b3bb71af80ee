package combat

import (
	"errors"
	"io"
	"log"
	"math"
	"testing"

	"github.com/lixenwraith/pulse-arena/config"
	"github.com/lixenwraith/pulse-arena/core"
	"github.com/lixenwraith/pulse-arena/event"
)

type recorder struct {
	events []event.EventType
	cues   []core.CueKind
}

func (r *recorder) Emit(t event.EventType, payload any) {
	r.events = append(r.events, t)
}

func (r *recorder) Cue(archetype core.Archetype, kind core.CueKind) {
	r.cues = append(r.cues, kind)
}

func (r *recorder) count(t event.EventType) int {
	n := 0
	for _, e := range r.events {
		if e == t {
			n++
		}
	}
	return n
}

func newTestFactory(t *testing.T) (*Factory, *config.Config) {
	t.Helper()
	cfg := config.Default()
	return NewFactory(cfg, log.New(io.Discard, "", 0)), cfg
}

func mustNew(t *testing.T, f *Factory, a core.Archetype) *Actor {
	t.Helper()
	actor, err := f.New(a, core.Vec2{X: 50, Y: 50})
	if err != nil {
		t.Fatalf("New(%s): %v", a, err)
	}
	return actor
}

func hit(amount float64, src core.Archetype, cause core.Cause) DamageEvent {
	return DamageEvent{Amount: amount, Source: core.SourceTag{Archetype: src, Cause: cause}}
}

func TestSectorFor(t *testing.T) {
	tests := []struct {
		deg  float64
		want core.Segment
	}{
		{0, core.SegmentFront},
		{45, core.SegmentFront},
		{-45, core.SegmentFront},
		{45.5, core.SegmentLeft},
		{134, core.SegmentLeft},
		{135, core.SegmentNone},
		{-90, core.SegmentRight},
		{-135, core.SegmentNone},
		{180, core.SegmentNone},
		{360, core.SegmentFront},
		{-270, core.SegmentLeft},
	}
	for _, tt := range tests {
		if got := SectorFor(tt.deg); got != tt.want {
			t.Errorf("SectorFor(%v): expected %s, got %s", tt.deg, tt.want, got)
		}
	}
}

func TestArmorFrontOverflow(t *testing.T) {
	f, _ := newTestFactory(t)
	a := mustNew(t, f, core.ArchetypeHeavyArmor)
	a.Health = 80
	rec := &recorder{}

	out := a.TakeDamage(hit(150, core.ArchetypePlayer, core.CauseProjectile).WithAngle(0), rec)

	p := a.Payload.(*ArmorPayload)
	front := p.Armor.Segments[core.SegmentFront]
	if !front.Destroyed || front.HP != 0 {
		t.Errorf("Expected front destroyed at 0 hp, got %+v", front)
	}
	if out.Forwarded != 30 {
		t.Errorf("Expected 30 forwarded, got %v", out.Forwarded)
	}
	if a.Health != 50 {
		t.Errorf("Expected health 50, got %v", a.Health)
	}
	if out.Result != ResultAlive {
		t.Errorf("Expected alive, got %s", out.Result)
	}
	if rec.count(event.EventArmorSegmentDestroyed) != 1 {
		t.Errorf("Expected one segment destroyed event, got %v", rec.events)
	}
}

func TestArmorConservation(t *testing.T) {
	f, _ := newTestFactory(t)
	rec := &recorder{}
	angles := []float64{0, 30, -30, 90, -90, 170, 0, 90}
	amounts := []float64{40, 70, 25, 90, 10, 15, 100, 5}

	a := mustNew(t, f, core.ArchetypeHeavyArmor)
	a.Health = 1e6
	a.MaxHealth = 1e6
	for i, deg := range angles {
		before := a.Health
		out := a.TakeDamage(hit(amounts[i], core.ArchetypePlayer, core.CauseProjectile).WithAngle(deg), rec)
		if math.Abs(out.Absorbed+out.Forwarded-amounts[i]) > 1e-9 {
			t.Errorf("hit %d: absorbed %v + forwarded %v != %v", i, out.Absorbed, out.Forwarded, amounts[i])
		}
		if math.Abs(before-a.Health-out.Forwarded) > 1e-9 {
			t.Errorf("hit %d: health dropped %v, forwarded %v", i, before-a.Health, out.Forwarded)
		}
		for s, seg := range a.Payload.(*ArmorPayload).Armor.Segments {
			if seg.HP < 0 {
				t.Errorf("hit %d: segment %d negative hp %v", i, s, seg.HP)
			}
		}
	}
}

func TestArmorBypass(t *testing.T) {
	f, _ := newTestFactory(t)
	rec := &recorder{}

	tests := []struct {
		name    string
		ev      DamageEvent
		unknown bool
	}{
		{"rear", hit(10, core.ArchetypePlayer, core.CauseProjectile).WithAngle(180), false},
		{"no angle", hit(10, core.ArchetypePlayer, core.CauseExplosion), false},
		{"nan angle", hit(10, core.ArchetypePlayer, core.CauseProjectile).WithAngle(math.NaN()), true},
		{"inf angle", hit(10, core.ArchetypePlayer, core.CauseProjectile).WithAngle(math.Inf(1)), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustNew(t, f, core.ArchetypeHeavyArmor)
			out := a.TakeDamage(tt.ev, rec)
			if out.Forwarded != 10 || out.Absorbed != 0 {
				t.Errorf("Expected full bypass, got %+v", out)
			}
			if out.AngleUnknown != tt.unknown {
				t.Errorf("Expected AngleUnknown %v, got %v", tt.unknown, out.AngleUnknown)
			}
			if a.Health != a.MaxHealth-10 {
				t.Errorf("Expected health %v, got %v", a.MaxHealth-10, a.Health)
			}
		})
	}
}

func TestAngerTriggerAndCalm(t *testing.T) {
	f, cfg := newTestFactory(t)
	a := mustNew(t, f, core.ArchetypeHeavyArmor)
	a.Health = 1e6
	rec := &recorder{}

	for i := 0; i < cfg.Anger.Threshold-1; i++ {
		a.TakeDamage(hit(1, core.ArchetypeLightRanged, core.CauseProjectile).WithAngle(180), rec)
	}
	anger, _ := a.Anger()
	if anger.Active {
		t.Fatal("Expected calm below threshold")
	}

	// Player hits never count
	a.TakeDamage(hit(1, core.ArchetypePlayer, core.CauseProjectile).WithAngle(180), rec)
	if anger.Active {
		t.Fatal("Expected player hits ignored")
	}

	a.TakeDamage(hit(1, core.ArchetypeLightRanged, core.CauseProjectile).WithAngle(180), rec)
	if !anger.Active || anger.Focus != core.ArchetypeLightRanged {
		t.Fatalf("Expected angry at light-ranged, got active=%v focus=%s", anger.Active, anger.Focus)
	}
	if anger.Hits != [core.ArchetypeCount]int{} {
		t.Errorf("Expected counters cleared on trigger, got %v", anger.Hits)
	}
	if rec.count(event.EventAngerTriggered) != 1 {
		t.Errorf("Expected one trigger event, got %d", rec.count(event.EventAngerTriggered))
	}

	ticks := int(cfg.Anger.CooldownTicks) + 10
	for i := 0; i < ticks; i++ {
		a.TickTimers(0, 1, rec)
	}
	if anger.Active || anger.Focus != core.ArchetypeNone {
		t.Errorf("Expected calm with no focus, got active=%v focus=%s", anger.Active, anger.Focus)
	}
	if rec.count(event.EventAngerCalmed) != 1 {
		t.Errorf("Expected exactly one calm event, got %d", rec.count(event.EventAngerCalmed))
	}
}

func TestArmorAbsorbedHitsDoNotAnger(t *testing.T) {
	f, cfg := newTestFactory(t)
	a := mustNew(t, f, core.ArchetypeHeavyArmor)
	rec := &recorder{}
	for i := 0; i < cfg.Anger.Threshold*2; i++ {
		a.TakeDamage(hit(1, core.ArchetypeFastMelee, core.CauseMelee).WithAngle(0), rec)
	}
	anger, _ := a.Anger()
	if anger.Active {
		t.Error("Expected fully absorbed hits to leave anger calm")
	}
}

func TestDeferredDeath(t *testing.T) {
	f, cfg := newTestFactory(t)
	a := mustNew(t, f, core.ArchetypeLightRanged)
	a.Health = 5
	rec := &recorder{}

	out := a.TakeDamage(hit(10, core.ArchetypePlayer, core.CauseDelayedMelee), rec)
	if out.Result != ResultDeferred {
		t.Fatalf("Expected deferred, got %s", out.Result)
	}
	if a.Death.Phase != PhasePendingDeath || a.Health != 5 {
		t.Fatalf("Expected pending with health 5, got %s health %v", a.Death.Phase, a.Health)
	}

	// Further damage is ignored while pending
	again := a.TakeDamage(hit(50, core.ArchetypePlayer, core.CauseProjectile), rec)
	if !again.Ignored || again.Result != ResultAlive {
		t.Errorf("Expected ignored hit during pending death, got %+v", again)
	}

	grace := int(cfg.Death.GraceTicks)
	kills := 0
	killedAt := -1
	for i := 1; i <= grace+5; i++ {
		if a.TickTimers(0, 1, rec) {
			kills++
			killedAt = i
		}
	}
	if kills != 1 {
		t.Errorf("Expected exactly one kill, got %d", kills)
	}
	if killedAt != grace {
		t.Errorf("Expected kill on tick %d, got %d", grace, killedAt)
	}
	if !a.Dead() || a.Health != 0 {
		t.Errorf("Expected dead at 0 health, got %s %v", a.Death.Phase, a.Health)
	}
}

func TestImmediateKill(t *testing.T) {
	f, _ := newTestFactory(t)
	a := mustNew(t, f, core.ArchetypeFastMelee)
	rec := &recorder{}

	first := a.TakeDamage(hit(a.Health+5, core.ArchetypePlayer, core.CauseProjectile), rec)
	second := a.TakeDamage(hit(10, core.ArchetypePlayer, core.CauseProjectile), rec)
	if first.Result != ResultKilled {
		t.Errorf("Expected killed, got %s", first.Result)
	}
	if second.Result != ResultAlive || !second.Ignored {
		t.Errorf("Expected second hit ignored, got %+v", second)
	}
	if a.Health != 0 {
		t.Errorf("Expected health clamped at 0, got %v", a.Health)
	}
}

func TestRelativeImpactAngle(t *testing.T) {
	pos := core.Vec2{X: 10, Y: 10}
	deg, ok := RelativeImpactAngle(core.Vec2{X: 20, Y: 10}, pos, 0)
	if !ok || math.Abs(deg) > 1e-9 {
		t.Errorf("Expected 0 deg, got %v %v", deg, ok)
	}
	deg, ok = RelativeImpactAngle(core.Vec2{X: 0, Y: 10}, pos, 0)
	if !ok || math.Abs(deg-180) > 1e-9 {
		t.Errorf("Expected 180 deg, got %v", deg)
	}
	deg, _ = RelativeImpactAngle(core.Vec2{X: 10, Y: 20}, pos, math.Pi/2)
	if math.Abs(deg) > 1e-9 {
		t.Errorf("Expected 0 deg when facing the origin, got %v", deg)
	}
	if _, ok := RelativeImpactAngle(pos, pos, 0); ok {
		t.Error("Expected coincident origin to report no angle")
	}
}

func TestFactoryDefaults(t *testing.T) {
	f, cfg := newTestFactory(t)
	for _, arch := range append(core.Hostiles(), core.ArchetypePlayer) {
		a := mustNew(t, f, arch)
		stats, _ := cfg.Stats(arch)
		if a.Health != stats.MaxHealth || !a.Alive() {
			t.Errorf("%s: expected full health alive, got %v %s", arch, a.Health, a.Death.Phase)
		}
		if p, ok := a.Payload.(*ArmorPayload); ok {
			if p.Armor.Intact() != 3 || p.Anger.Active {
				t.Errorf("%s: expected intact armor and calm", arch)
			}
		}
	}
}

func TestFactoryUnknownArchetype(t *testing.T) {
	f, cfg := newTestFactory(t)
	a, err := f.NewNamed("dragon", core.Vec2{})
	if err == nil {
		t.Fatal("Expected configuration error")
	}
	var ce *config.ConfigurationError
	if !errors.As(err, &ce) {
		t.Fatalf("Expected ConfigurationError, got %T", err)
	}
	if a == nil || a.Archetype.String() != cfg.Archetypes.Default {
		t.Fatalf("Expected fallback %s actor, got %v", cfg.Archetypes.Default, a)
	}

	b, err := f.NewNamed("fast-melee", core.Vec2{})
	if err != nil || b.Archetype != core.ArchetypeFastMelee {
		t.Errorf("Expected fast-melee, got %v %v", b, err)
	}
	if b.ID <= a.ID {
		t.Errorf("Expected increasing ids, got %d then %d", a.ID, b.ID)
	}
}

func TestFactoryHeavyArmorNeedsPlates(t *testing.T) {
	f, cfg := newTestFactory(t)
	st := cfg.Archetypes.Stats["heavy-armor"]
	st.Armored = false
	cfg.Archetypes.Stats["heavy-armor"] = st

	a, err := f.New(core.ArchetypeHeavyArmor, core.Vec2{})
	var ce *config.ConfigurationError
	if !errors.As(err, &ce) {
		t.Fatalf("Expected ConfigurationError, got %v", err)
	}
	if ce.Field != "archetypes.stats.heavy-armor.armored" {
		t.Errorf("Expected armored field, got %q", ce.Field)
	}
	if a != nil {
		t.Errorf("Expected no actor, got %v", a)
	}
}

func TestRosterTargeting(t *testing.T) {
	f, _ := newTestFactory(t)
	r := NewRoster()
	player, _ := f.New(core.ArchetypePlayer, core.Vec2{X: 0, Y: 0})
	tank, _ := f.New(core.ArchetypeHeavyArmor, core.Vec2{X: 50, Y: 50})
	near, _ := f.New(core.ArchetypeLightRanged, core.Vec2{X: 55, Y: 50})
	far, _ := f.New(core.ArchetypeLightRanged, core.Vec2{X: 90, Y: 50})
	r.Add(far)
	r.Add(near)
	r.Add(tank)
	r.Add(player)

	if got := r.SelectTarget(tank); got != player {
		t.Errorf("Expected calm actor to target player, got %v", got)
	}

	anger, _ := tank.Anger()
	anger.Active = true
	anger.Focus = core.ArchetypeLightRanged
	if got := r.SelectTarget(tank); got != near {
		t.Errorf("Expected nearest focus actor, got %v", got)
	}

	near.Death.Phase = PhaseDead
	far.Death.Phase = PhasePendingDeath
	if got := r.SelectTarget(tank); got != player {
		t.Errorf("Expected fallback to player, got %v", got)
	}

	removed := r.Sweep()
	if len(removed) != 1 || removed[0] != near {
		t.Errorf("Expected sweep to remove the dead actor, got %v", removed)
	}
	ids := r.All()
	for i := 1; i < len(ids); i++ {
		if ids[i-1].ID >= ids[i].ID {
			t.Fatalf("Expected ascending id order, got %d before %d", ids[i-1].ID, ids[i].ID)
		}
	}
	if r.Player() != player {
		t.Error("Expected player retained")
	}
}
