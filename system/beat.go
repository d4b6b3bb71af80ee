package system

import (
	"github.com/lixenwraith/pulse-arena/core"
	"github.com/lixenwraith/pulse-arena/engine"
	"github.com/lixenwraith/pulse-arena/event"
	"github.com/lixenwraith/pulse-arena/parameter"
	"github.com/lixenwraith/pulse-arena/vmath"
)

// BeatSystem announces beat crossings and rolls ambient vocalizations on each one
type BeatSystem struct {
	last    int64
	started bool
}

func NewBeatSystem() *BeatSystem {
	s := &BeatSystem{}
	s.Init()
	return s
}

func (s *BeatSystem) Init() {
	s.last = 0
	s.started = false
}

func (s *BeatSystem) Name() string { return "beat" }

func (s *BeatSystem) Priority() int { return parameter.PriorityBeat }

func (s *BeatSystem) Update(ctx *engine.SimulationContext) {
	idx := ctx.State.BeatIndex()
	if s.started && idx == s.last {
		return
	}
	s.started = true
	s.last = idx

	ctx.Emit(event.EventBeat, &event.BeatPayload{
		BeatIndex:     idx,
		BeatInMeasure: ctx.State.BeatInMeasure(),
	})
	ctx.Cue(core.ArchetypeNone, core.CueBeat)

	chance := ctx.Config.Ambient.CueChance
	for _, a := range ctx.Actors.All() {
		if a.Archetype == core.ArchetypePlayer || !a.Alive() {
			continue
		}
		if vmath.Chance(ctx.Rand, chance) {
			ctx.Cue(a.Archetype, core.CueAmbient)
		}
	}
}
