package combat

import (
	"github.com/lixenwraith/pulse-arena/config"
	"github.com/lixenwraith/pulse-arena/core"
	"github.com/lixenwraith/pulse-arena/vmath"
)

// ArmorSegment is one directional plate
type ArmorSegment struct {
	HP        float64
	MaxHP     float64
	Destroyed bool
}

// Fraction returns remaining hp over capacity
func (s ArmorSegment) Fraction() float64 {
	if s.MaxHP <= 0 {
		return 0
	}
	return s.HP / s.MaxHP
}

// Armor holds front, left and right plates indexed by core.Segment
// The rear sector has no plate
type Armor struct {
	Segments [core.SegmentCount]ArmorSegment
}

// NewArmor returns full plates
func NewArmor(cfg config.ArmorConfig) Armor {
	var a Armor
	a.Segments[core.SegmentFront] = ArmorSegment{HP: cfg.Front, MaxHP: cfg.Front}
	a.Segments[core.SegmentLeft] = ArmorSegment{HP: cfg.Left, MaxHP: cfg.Left}
	a.Segments[core.SegmentRight] = ArmorSegment{HP: cfg.Right, MaxHP: cfg.Right}
	return a
}

// SectorFor maps a facing-relative angle in degrees to its plate
// Front [-45,45], left (45,135), right (-135,-45); everything else is rear (SegmentNone)
func SectorFor(deg float64) core.Segment {
	deg = vmath.NormalizeDegrees(deg)
	switch {
	case deg >= -45 && deg <= 45:
		return core.SegmentFront
	case deg > 45 && deg < 135:
		return core.SegmentLeft
	case deg > -135 && deg < -45:
		return core.SegmentRight
	}
	return core.SegmentNone
}

// ArmorResult describes one hit against the plates
type ArmorResult struct {
	Segment   core.Segment
	Bypassed  bool
	Absorbed  float64
	Overflow  float64
	Destroyed bool // plate broke on this hit
}

// Absorb applies amount to the plate covering angle
// With no usable angle, a rear angle, or a destroyed plate, the full amount bypasses
// A plate going negative is destroyed and the excess becomes overflow in the same call
func (a *Armor) Absorb(amount, deg float64, angleKnown bool) ArmorResult {
	if !angleKnown {
		return ArmorResult{Bypassed: true, Overflow: amount}
	}
	seg := SectorFor(deg)
	if seg == core.SegmentNone || a.Segments[seg].Destroyed {
		return ArmorResult{Segment: seg, Bypassed: true, Overflow: amount}
	}

	plate := &a.Segments[seg]
	remaining := plate.HP - amount
	if remaining < 0 {
		absorbed := plate.HP
		plate.HP = 0
		plate.Destroyed = true
		return ArmorResult{
			Segment:   seg,
			Absorbed:  absorbed,
			Overflow:  -remaining,
			Destroyed: true,
		}
	}

	plate.HP = remaining
	return ArmorResult{Segment: seg, Absorbed: amount}
}

// Intact reports how many plates remain
func (a *Armor) Intact() int {
	n := 0
	for s := core.SegmentFront; s < core.SegmentCount; s++ {
		if !a.Segments[s].Destroyed {
			n++
		}
	}
	return n
}
