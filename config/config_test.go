package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/pulse-arena/core"
)

func TestDefaultValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Expected embedded defaults to validate, got %v", err)
	}
	if cfg.Clock.BPM != 120 {
		t.Errorf("Expected default BPM 120, got %v", cfg.Clock.BPM)
	}
	if cfg.Clock.CoarseTolerance != 100*time.Millisecond {
		t.Errorf("Expected coarse tolerance 100ms, got %v", cfg.Clock.CoarseTolerance)
	}
	if cfg.Clock.FineTolerance != 16*time.Millisecond {
		t.Errorf("Expected fine tolerance 16ms, got %v", cfg.Clock.FineTolerance)
	}
	if cfg.Death.GraceTicks != 12 {
		t.Errorf("Expected grace 12 ticks, got %v", cfg.Death.GraceTicks)
	}
	if cfg.Anger.Threshold != 3 || cfg.Anger.CooldownTicks != 600 {
		t.Errorf("Expected anger 3/600, got %d/%v", cfg.Anger.Threshold, cfg.Anger.CooldownTicks)
	}
	if cfg.FriendlyFire.WithholdProbability != 0.7 {
		t.Errorf("Expected withhold probability 0.7, got %v", cfg.FriendlyFire.WithholdProbability)
	}
	if cfg.NominalTick() != time.Second/60 {
		t.Errorf("Expected nominal tick 1/60s, got %v", cfg.NominalTick())
	}
}

func TestDefaultGateTable(t *testing.T) {
	cfg := Default()
	g, ok := cfg.GateFor(core.ArchetypeLightRanged)
	if !ok {
		t.Fatal("Expected light-ranged gate row")
	}
	if g.Mode != GateModeBeats || len(g.Beats) != 2 || g.Beats[0] != 2 || g.Beats[1] != 4 {
		t.Errorf("Expected beats {2,4}, got %s %v", g.Mode, g.Beats)
	}
	h, _ := cfg.GateFor(core.ArchetypeHeavyRanged)
	if h.Mode != GateModeCharge || h.ChargeDuration != 800*time.Millisecond {
		t.Errorf("Expected charge gate with 800ms, got %s %v", h.Mode, h.ChargeDuration)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "arena.yaml")
	doc := "clock:\n  bpm: 140\n  measure_length: 4\n  coarse_tolerance: 80ms\n  fine_tolerance: 10ms\nanger:\n  threshold: 5\n  cooldown_ticks: 300\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Clock.BPM != 140 {
		t.Errorf("Expected BPM override 140, got %v", cfg.Clock.BPM)
	}
	if cfg.Clock.CoarseTolerance != 80*time.Millisecond {
		t.Errorf("Expected coarse override 80ms, got %v", cfg.Clock.CoarseTolerance)
	}
	if cfg.Anger.Threshold != 5 {
		t.Errorf("Expected threshold override 5, got %d", cfg.Anger.Threshold)
	}
	// Untouched sections keep defaults
	if cfg.Armor.Front != 120 {
		t.Errorf("Expected default front armor 120, got %v", cfg.Armor.Front)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Expected defaults for empty path, got %v", err)
	}
	if cfg.Spawn.Attempts != 100 || cfg.Spawn.SpiralSteps != 200 {
		t.Errorf("Expected spawn bounds 100/200, got %d/%d", cfg.Spawn.Attempts, cfg.Spawn.SpiralSteps)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero bpm", func(c *Config) { c.Clock.BPM = 0 }, "clock.bpm"},
		{"zero measure", func(c *Config) { c.Clock.MeasureLength = 0 }, "clock.measure_length"},
		{"probability above one", func(c *Config) { c.FriendlyFire.WithholdProbability = 1.5 }, "friendly_fire.withhold_probability"},
		{"beat outside measure", func(c *Config) {
			g := c.Gates["light-ranged"]
			g.Beats = []int{5}
			c.Gates["light-ranged"] = g
		}, "gates.light-ranged.beats"},
		{"unknown gate mode", func(c *Config) {
			g := c.Gates["fast-melee"]
			g.Mode = "sometimes"
			c.Gates["fast-melee"] = g
		}, "gates.fast-melee.mode"},
		{"player default", func(c *Config) { c.Archetypes.Default = "player" }, "archetypes.default"},
		{"inverted annulus", func(c *Config) { c.Spawn.OuterRadius = c.Spawn.InnerRadius }, "spawn"},
		{"missing gate row", func(c *Config) { delete(c.Gates, "heavy-armor") }, "gates"},
		{"unknown bonus cause", func(c *Config) { c.Score.Bonus["sneeze"] = 2 }, "score.bonus"},
		{"armor on light-ranged", func(c *Config) {
			st := c.Archetypes.Stats["light-ranged"]
			st.Armored = true
			c.Archetypes.Stats["light-ranged"] = st
		}, "archetypes.stats.light-ranged.armored"},
		{"heavy-armor without plates", func(c *Config) {
			st := c.Archetypes.Stats["heavy-armor"]
			st.Armored = false
			c.Archetypes.Stats["heavy-armor"] = st
		}, "archetypes.stats.heavy-armor.armored"},
		{"explosion floor above damage", func(c *Config) {
			st := c.Archetypes.Stats["light-ranged"]
			st.ExplosionFloor = st.ExplosionDamage + 1
			c.Archetypes.Stats["light-ranged"] = st
		}, "archetypes.stats.light-ranged.explosion_floor"},
		{"player gate not free", func(c *Config) {
			g := c.Gates["player"]
			g.Mode = GateModeBeats
			g.Beats = []int{1}
			c.Gates["player"] = g
		}, "gates.player.mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !IsConfigurationError(err) {
				t.Errorf("Expected ConfigurationError, got %T", err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("Expected error to mention %q, got %v", tt.field, err)
			}
		})
	}
}

func TestBonusFor(t *testing.T) {
	cfg := Default()
	if got := cfg.BonusFor(core.CauseDelayedMelee); got != 2 {
		t.Errorf("Expected delayed-melee bonus 2, got %v", got)
	}
	if got := cfg.BonusFor(core.CauseProjectile); got != 1 {
		t.Errorf("Expected unlisted cause bonus 1, got %v", got)
	}
}

func TestParseInvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("clock: [unterminated"), Default()); err == nil {
		t.Error("Expected decode error")
	}
}
