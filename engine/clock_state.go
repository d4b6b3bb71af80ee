package engine

import "time"

// ClockState is one frozen reading of the beat clock
// All methods are pure; a tick captures one state and gates every actor against it
type ClockState struct {
	Elapsed         time.Duration
	BeatDuration    time.Duration
	MeasureLength   int
	CoarseTolerance time.Duration
	FineTolerance   time.Duration
}

// BeatIndex returns floor(elapsed / beatDuration)
func (s ClockState) BeatIndex() int64 {
	if s.BeatDuration <= 0 {
		return 0
	}
	return int64(s.Elapsed / s.BeatDuration)
}

// BeatInMeasure returns the 0-indexed beat within the current measure
func (s ClockState) BeatInMeasure() int {
	if s.MeasureLength <= 0 {
		return 0
	}
	return int(s.BeatIndex() % int64(s.MeasureLength))
}

// Phase returns time elapsed since the last beat boundary
func (s ClockState) Phase() time.Duration {
	if s.BeatDuration <= 0 {
		return 0
	}
	return s.Elapsed % s.BeatDuration
}

// TimeToNextBeat returns time until the next beat boundary, in (0, beatDuration]
func (s ClockState) TimeToNextBeat() time.Duration {
	return s.BeatDuration - s.Phase()
}

// SubdivisionDuration returns the length of one of n equal parts of a beat
func (s ClockState) SubdivisionDuration(n int) time.Duration {
	if n <= 1 {
		return s.BeatDuration
	}
	return s.BeatDuration / time.Duration(n)
}

// SubdivisionIndex returns floor(elapsed / subdivisionDuration)
func (s ClockState) SubdivisionIndex(n int) int64 {
	sub := s.SubdivisionDuration(n)
	if sub <= 0 {
		return 0
	}
	return int64(s.Elapsed / sub)
}

// TimeToNextSubdivision returns time until the next 1/n beat boundary
func (s ClockState) TimeToNextSubdivision(n int) time.Duration {
	sub := s.SubdivisionDuration(n)
	if sub <= 0 {
		return 0
	}
	return sub - s.Elapsed%sub
}

// NearestBeat returns the index of the closest beat boundary and the distance to it
// Ties at half a beat resolve to the upcoming boundary
func (s ClockState) NearestBeat() (int64, time.Duration) {
	phase := s.Phase()
	idx := s.BeatIndex()
	if phase*2 < s.BeatDuration {
		return idx, phase
	}
	return idx + 1, s.BeatDuration - phase
}

// IsOnBeat reports whether the nearest beat boundary is within the coarse tolerance
// With beats given, that boundary's 1-indexed position in the measure must be listed
func (s ClockState) IsOnBeat(beats ...int) bool {
	if s.BeatDuration <= 0 {
		return false
	}
	idx, dist := s.NearestBeat()
	if dist > s.CoarseTolerance {
		return false
	}
	if len(beats) == 0 {
		return true
	}
	pos := s.measurePosition(idx)
	for _, b := range beats {
		if b == pos {
			return true
		}
	}
	return false
}

// IsOnSubdivision reports whether the nearest 1/n beat boundary is within the fine tolerance
func (s ClockState) IsOnSubdivision(n int) bool {
	sub := s.SubdivisionDuration(n)
	if sub <= 0 {
		return false
	}
	phase := s.Elapsed % sub
	dist := min(phase, sub-phase)
	return dist <= s.FineTolerance
}

// OffsetFromBeat returns the signed distance from the nearest start of the 1-indexed
// measure beat, normalized into [-measure/2, measure/2)
// Negative values mean the boundary is still ahead
func (s ClockState) OffsetFromBeat(beat int) time.Duration {
	if s.BeatDuration <= 0 || s.MeasureLength <= 0 {
		return 0
	}
	measure := s.BeatDuration * time.Duration(s.MeasureLength)
	boundary := s.BeatDuration * time.Duration(beat-1)
	off := (s.Elapsed%measure - boundary) % measure
	if off < -measure/2 {
		off += measure
	} else if off >= measure/2 {
		off -= measure
	}
	return off
}

// measurePosition converts an absolute beat index to a 1-indexed measure position
func (s ClockState) measurePosition(idx int64) int {
	if s.MeasureLength <= 0 {
		return 1
	}
	return int(idx%int64(s.MeasureLength)) + 1
}
