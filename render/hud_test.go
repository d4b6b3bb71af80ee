package render

import (
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pulse-arena/config"
	"github.com/lixenwraith/pulse-arena/core"
	"github.com/lixenwraith/pulse-arena/engine"
	"github.com/lixenwraith/pulse-arena/event"
	"github.com/lixenwraith/pulse-arena/system"
)

func newTestScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	if err := s.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func newTestArena(hud *HUD) *system.Arena {
	mock := engine.NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	logger := log.New(io.Discard, "", 0)
	a := system.NewArena(config.Default(), mock, hud, logger)
	a.Register(hud)
	return a
}

func rowText(s tcell.Screen, y, w int) string {
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestDrawPlayerAtCenter(t *testing.T) {
	const w, h = 80, 24
	screen := newTestScreen(t, w, h)
	hud := NewHUD(screen)
	a := newTestArena(hud)

	hud.Draw(a)

	fieldRows := h - statusRows - messageRows
	r, _, _, _ := screen.GetContent(w/2, fieldRows/2)
	if r != '@' {
		t.Errorf("Expected player glyph at center, got %q", r)
	}

	status := rowText(screen, fieldRows, w)
	if !strings.Contains(status, "bpm") || !strings.Contains(status, "hp") {
		t.Errorf("Expected status line with tempo and health, got %q", status)
	}
	if !strings.Contains(rowText(screen, fieldRows+1, w), "kills=0") {
		t.Error("Expected telemetry line")
	}
}

func TestDrawPausedMarker(t *testing.T) {
	const w, h = 100, 20
	screen := newTestScreen(t, w, h)
	hud := NewHUD(screen)
	a := newTestArena(hud)
	a.Pause()

	hud.Draw(a)

	if !strings.Contains(rowText(screen, h-statusRows-messageRows, w), "PAUSED") {
		t.Error("Expected PAUSED in status line")
	}
}

func TestDrawTinyScreen(t *testing.T) {
	screen := newTestScreen(t, 10, 3)
	hud := NewHUD(screen)
	hud.Draw(newTestArena(hud))
}

func TestHandleEventMessages(t *testing.T) {
	hud := NewHUD(nil)

	hud.HandleEvent(nil, event.GameEvent{
		Type: event.EventActorKilled,
		Tick: 7,
		Payload: &event.ActorKilledPayload{
			ActorID:         3,
			Archetype:       core.ArchetypeFastMelee,
			Cause:           core.CauseDelayedMelee,
			BonusMultiplier: 2,
		},
	})
	hud.HandleEvent(nil, event.GameEvent{
		Type:    event.EventAngerTriggered,
		Payload: &event.AngerPayload{ActorID: 4, Archetype: core.ArchetypeHeavyArmor, Focus: core.ArchetypeLightRanged},
	})

	msgs := hud.Messages(10)
	if len(msgs) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(msgs))
	}
	if !strings.Contains(msgs[0], "killed") || !strings.HasPrefix(strings.TrimSpace(msgs[0]), "7") {
		t.Errorf("Expected kill message at tick 7, got %q", msgs[0])
	}
	if !strings.Contains(msgs[1], "enraged") {
		t.Errorf("Expected anger message, got %q", msgs[1])
	}

	hud.HandleEvent(nil, event.GameEvent{Type: event.EventGameReset})
	msgs = hud.Messages(10)
	if len(msgs) != 1 || !strings.Contains(msgs[0], "new session") {
		t.Errorf("Expected reset to clear log, got %v", msgs)
	}
}

func TestMessageLogBounded(t *testing.T) {
	hud := NewHUD(nil)
	for i := 0; i < maxMessages+10; i++ {
		hud.HandleEvent(nil, event.GameEvent{
			Type:    event.EventPlayerDamaged,
			Tick:    uint64(i),
			Payload: &event.PlayerDamagedPayload{Amount: 1},
		})
	}
	if got := len(hud.Messages(maxMessages * 2)); got != maxMessages {
		t.Errorf("Expected %d messages, got %d", maxMessages, got)
	}
}

func TestCueFilter(t *testing.T) {
	hud := NewHUD(nil)
	hud.Cue(core.ArchetypeNone, core.CueBeat)
	hud.Cue(core.ArchetypeHeavyArmor, core.CueAmbient)
	if hud.cueCount != 0 {
		t.Errorf("Expected rhythmic cues ignored, got %d", hud.cueCount)
	}
	hud.Cue(core.ArchetypeHeavyArmor, core.CueArmorDestroyed)
	if hud.cueCount != 1 || hud.lastCue != core.CueArmorDestroyed {
		t.Errorf("Expected armor cue recorded, got %d %s", hud.cueCount, hud.lastCue)
	}
}
