// Package render draws the arena, status line and message log to a terminal
package render

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pulse-arena/combat"
	"github.com/lixenwraith/pulse-arena/core"
	"github.com/lixenwraith/pulse-arena/engine"
	"github.com/lixenwraith/pulse-arena/event"
	"github.com/lixenwraith/pulse-arena/system"
)

const (
	statusRows  = 2
	messageRows = 4
	maxMessages = 64
)

var glyphs = [core.ArchetypeCount]rune{
	core.ArchetypeNone:        '?',
	core.ArchetypePlayer:      '@',
	core.ArchetypeLightRanged: 'r',
	core.ArchetypeHeavyRanged: 'R',
	core.ArchetypeFastMelee:   'm',
	core.ArchetypeHeavyArmor:  'A',
}

var (
	stylePlayer   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleHostile  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleAngry    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	stylePending  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Blink(true)
	styleShot     = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleBeatOn   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
	styleBeatOff  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleMessages = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// HUD renders one arena to a tcell screen and keeps a scrolling message log
// It is both a cue sink and an event handler; all calls come from the tick goroutine
type HUD struct {
	screen   tcell.Screen
	messages []string
	lastCue  core.CueKind
	cueFrom  core.Archetype
	cueCount int
}

// NewHUD creates a HUD over an initialized screen
func NewHUD(screen tcell.Screen) *HUD {
	return &HUD{screen: screen}
}

// Cue implements engine.CueSink
func (h *HUD) Cue(archetype core.Archetype, kind core.CueKind) {
	if kind == core.CueBeat || kind == core.CueAmbient {
		return
	}
	h.lastCue = kind
	h.cueFrom = archetype
	h.cueCount++
}

// EventTypes implements engine.EventHandler
func (h *HUD) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventActorKilled,
		event.EventArmorSegmentDestroyed,
		event.EventDeathDeferred,
		event.EventAngerTriggered,
		event.EventAngerCalmed,
		event.EventPlayerDamaged,
		event.EventPlayerDown,
		event.EventSpawnFallback,
		event.EventShotWithheld,
		event.EventGameReset,
	}
}

// HandleEvent implements engine.EventHandler
func (h *HUD) HandleEvent(ctx *engine.SimulationContext, ev event.GameEvent) {
	var msg string
	switch p := ev.Payload.(type) {
	case *event.ActorKilledPayload:
		msg = fmt.Sprintf("%s #%d killed by %s x%.1f", p.Archetype, p.ActorID, p.Cause, p.BonusMultiplier)
	case *event.ArmorSegmentPayload:
		msg = fmt.Sprintf("%s #%d lost %s plate", p.Archetype, p.ActorID, p.Segment)
	case *event.DeathDeferredPayload:
		msg = fmt.Sprintf("%s #%d doomed by %s", p.Archetype, p.ActorID, p.Cause)
	case *event.AngerPayload:
		if ev.Type == event.EventAngerTriggered {
			msg = fmt.Sprintf("%s #%d enraged at %s", p.Archetype, p.ActorID, p.Focus)
		} else {
			msg = fmt.Sprintf("%s #%d calmed", p.Archetype, p.ActorID)
		}
	case *event.PlayerDamagedPayload:
		if ev.Type == event.EventPlayerDown {
			msg = fmt.Sprintf("player down (%s)", p.Source.Archetype)
		} else {
			msg = fmt.Sprintf("player hit %.0f by %s", p.Amount, p.Source.Archetype)
		}
	case *event.ActorSpawnedPayload:
		msg = fmt.Sprintf("%s #%d spawned on player", p.Archetype, p.ActorID)
	case *event.ShotWithheldPayload:
		msg = fmt.Sprintf("%s #%d held fire (#%d in line)", p.Archetype, p.ActorID, p.Blocker)
	default:
		if ev.Type == event.EventGameReset {
			h.messages = h.messages[:0]
			msg = "new session"
		}
	}
	if msg == "" {
		return
	}
	h.push(fmt.Sprintf("%5d %s", ev.Tick, msg))
}

func (h *HUD) push(msg string) {
	if len(h.messages) == maxMessages {
		copy(h.messages, h.messages[1:])
		h.messages = h.messages[:maxMessages-1]
	}
	h.messages = append(h.messages, msg)
}

// Messages returns the most recent n log lines, oldest first
func (h *HUD) Messages(n int) []string {
	if n > len(h.messages) {
		n = len(h.messages)
	}
	return h.messages[len(h.messages)-n:]
}

// Draw renders a full frame
func (h *HUD) Draw(a *system.Arena) {
	s := h.screen
	s.Clear()
	w, ht := s.Size()
	fieldRows := ht - statusRows - messageRows
	if w <= 0 || fieldRows <= 0 {
		s.Show()
		return
	}

	ctx := a.Context()
	world := ctx.Config.World
	toCell := func(p core.Vec2) (int, int, bool) {
		x := int(p.X / world.Width * float64(w))
		y := int(p.Y / world.Height * float64(fieldRows))
		return x, y, x >= 0 && x < w && y >= 0 && y < fieldRows
	}

	for _, p := range a.Projectiles() {
		if x, y, ok := toCell(p.Pos); ok {
			s.SetContent(x, y, '·', nil, styleShot)
		}
	}
	for _, actor := range ctx.Actors.All() {
		if actor.Dead() {
			continue
		}
		if x, y, ok := toCell(actor.Pos); ok {
			s.SetContent(x, y, glyphs[actor.Archetype], nil, actorStyle(actor))
		}
	}

	h.drawStatus(a, fieldRows, w)
	for i, msg := range h.Messages(messageRows) {
		drawText(s, 0, fieldRows+statusRows+i, w, msg, styleMessages)
	}
	s.Show()
}

func actorStyle(a *combat.Actor) tcell.Style {
	switch {
	case a.Archetype == core.ArchetypePlayer:
		return stylePlayer
	case a.Death.Pending():
		return stylePending
	}
	if anger, ok := a.Anger(); ok && anger.Active {
		return styleAngry
	}
	return styleHostile
}

func (h *HUD) drawStatus(a *system.Arena, row, w int) {
	ctx := a.Context()
	st := ctx.State

	x := 0
	for i := 0; i < st.MeasureLength; i++ {
		style := styleBeatOff
		if i == st.BeatInMeasure() {
			style = styleBeatOn
		}
		h.screen.SetContent(x, row, '■', nil, style)
		x += 2
	}

	hp := 0.0
	if p := ctx.Actors.Player(); p != nil {
		hp = p.Health
	}
	status := fmt.Sprintf("%.0f bpm  hp %.0f  score %d  hostiles %d",
		ctx.Clock.BPM(), hp, ctx.Telemetry.Score.Load(), ctx.Actors.Hostiles())
	switch {
	case a.PlayerDown():
		status += "  DOWN (r to restart)"
	case a.Paused():
		status += "  PAUSED"
	}
	if h.cueCount > 0 {
		status += fmt.Sprintf("  [%s %s]", h.cueFrom, h.lastCue)
	}
	drawText(h.screen, x+1, row, w, status, styleStatus)

	var b strings.Builder
	ctx.Telemetry.Range(func(name string, c *atomic.Int64) {
		fmt.Fprintf(&b, "%s=%d ", name, c.Load())
	})
	drawText(h.screen, 0, row+1, w, strings.TrimSpace(b.String()), styleStatus)
}

func drawText(s tcell.Screen, x, y, w int, text string, style tcell.Style) {
	for _, r := range text {
		if x >= w {
			return
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

var (
	_ engine.CueSink      = (*HUD)(nil)
	_ engine.EventHandler = (*HUD)(nil)
)
