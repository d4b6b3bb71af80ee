// Package audio renders presentation cues as short synthesized tones
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/pulse-arena/core"
)

// SampleRate is the output rate for the speaker and offline rendering
const SampleRate = beep.SampleRate(48000)

// voice shapes one cue kind relative to the archetype's base pitch
type voice struct {
	mult     float64
	wave     WaveType
	duration time.Duration
	volume   float64
}

var voices = [core.CueKindCount]voice{
	core.CueArmorDamaged:   {mult: 2.0, wave: WaveSquare, duration: 60 * time.Millisecond, volume: 0.25},
	core.CueArmorDestroyed: {mult: 0.5, wave: WaveSaw, duration: 220 * time.Millisecond, volume: 0.4},
	core.CueKilled:         {mult: 0.75, wave: WaveNoise, duration: 180 * time.Millisecond, volume: 0.35},
	core.CueDeathPending:   {mult: 1.5, wave: WaveSine, duration: 200 * time.Millisecond, volume: 0.3},
	core.CueAngerTriggered: {mult: 0.5, wave: WaveSquare, duration: 300 * time.Millisecond, volume: 0.4},
	core.CueAngerCalmed:    {mult: 1.0, wave: WaveSine, duration: 150 * time.Millisecond, volume: 0.2},
	core.CueFire:           {mult: 1.0, wave: WaveSquare, duration: 40 * time.Millisecond, volume: 0.15},
	core.CueChargeStart:    {mult: 0.25, wave: WaveSaw, duration: 400 * time.Millisecond, volume: 0.2},
	core.CueWithheld:       {mult: 3.0, wave: WaveSine, duration: 30 * time.Millisecond, volume: 0.1},
	core.CueHit:            {mult: 1.25, wave: WaveNoise, duration: 30 * time.Millisecond, volume: 0.2},
	core.CueAmbient:        {mult: 0.5, wave: WaveSine, duration: 250 * time.Millisecond, volume: 0.08},
	core.CueBeat:           {mult: 1.0, wave: WaveNoise, duration: 20 * time.Millisecond, volume: 0.15},
}

var basePitch = [core.ArchetypeCount]float64{
	core.ArchetypeNone:        880,
	core.ArchetypePlayer:      660,
	core.ArchetypeLightRanged: 520,
	core.ArchetypeHeavyRanged: 220,
	core.ArchetypeFastMelee:   440,
	core.ArchetypeHeavyArmor:  110,
}

// CueSynth is a CueSink that mixes one short tone per cue
// The mixer is shared with the speaker goroutine and guarded by mu
type CueSynth struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	rate        beep.SampleRate
	master      float64
	muted       bool
	initialized bool
	played      int
}

// NewCueSynth creates a synth at master volume in [0,1]
func NewCueSynth(master float64) *CueSynth {
	return &CueSynth{
		mixer:  &beep.Mixer{},
		rate:   SampleRate,
		master: master,
	}
}

// Initialize opens the speaker; without it cues are still mixed and can be drained with Stream
func (s *CueSynth) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(s.rate, s.rate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(s)
	s.initialized = true
	return nil
}

// Cleanup silences pending cues and closes the speaker
func (s *CueSynth) Cleanup() {
	s.mu.Lock()
	s.mixer.Clear()
	wasInit := s.initialized
	s.initialized = false
	s.mu.Unlock()

	if wasInit {
		speaker.Close()
	}
}

// Cue implements engine.CueSink
func (s *CueSynth) Cue(archetype core.Archetype, kind core.CueKind) {
	if kind == core.CueNone || kind >= core.CueKindCount || archetype >= core.ArchetypeCount {
		return
	}
	v := voices[kind]

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.muted {
		return
	}

	osc := NewOscillator(basePitch[archetype]*v.mult, v.duration, v.wave, s.rate)
	shaped := NewEnvelope(osc, v.duration, v.duration/10, v.duration/3, s.rate)
	s.mixer.Add(newVolume(shaped, v.volume*s.master))
	s.played++
}

// Stream implements beep.Streamer over the guarded mixer
// Silence fills the buffer when nothing is sounding so the speaker keeps the synth attached
func (s *CueSynth) Stream(samples [][2]float64) (n int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, _ = s.mixer.Stream(samples)
	for i := n; i < len(samples); i++ {
		samples[i] = [2]float64{}
	}
	return len(samples), true
}

func (s *CueSynth) Err() error { return nil }

// Active returns the number of cues still sounding
func (s *CueSynth) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mixer.Len()
}

// Played returns the number of cues mixed since creation
func (s *CueSynth) Played() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.played
}

// ToggleMute toggles mute state, returns true if now audible
func (s *CueSynth) ToggleMute() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.muted = !s.muted
	if s.muted {
		s.mixer.Clear()
	}
	return !s.muted
}
