package engine

import "github.com/lixenwraith/pulse-arena/core"

// CueSink receives fire-and-forget presentation/audio notifications
// Nothing returned by a sink may affect simulation state
type CueSink interface {
	Cue(archetype core.Archetype, kind core.CueKind)
}

// NopCues discards all cues
type NopCues struct{}

func (NopCues) Cue(core.Archetype, core.CueKind) {}

// CueFanout forwards each cue to every sink in order
type CueFanout []CueSink

func (f CueFanout) Cue(archetype core.Archetype, kind core.CueKind) {
	for _, s := range f {
		s.Cue(archetype, kind)
	}
}
