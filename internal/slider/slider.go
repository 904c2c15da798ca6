// Package slider maps a 0-100 control position onto email volume with finer
// resolution at low volumes.
package slider

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrEmptyMapping is returned when a mapping has no segments
	ErrEmptyMapping = errors.New("mapping has no segments")
	// ErrSegmentOrder is returned when a segment does not increase in position and volume
	ErrSegmentOrder = errors.New("segment bounds must increase")
	// ErrSegmentGap is returned when a segment does not start where the previous one ended
	ErrSegmentGap = errors.New("segments must be contiguous")
)

// Segment linearly maps positions [PosLo, PosHi] onto volumes [VolLo, VolHi]
type Segment struct {
	PosLo, PosHi float64
	VolLo, VolHi float64
}

func (s Segment) toVolume(p float64) float64 {
	return s.VolLo + (p-s.PosLo)/(s.PosHi-s.PosLo)*(s.VolHi-s.VolLo)
}

func (s Segment) toPosition(v float64) float64 {
	return s.PosLo + (v-s.VolLo)/(s.VolHi-s.VolLo)*(s.PosHi-s.PosLo)
}

// Mapping is an ordered, contiguous list of segments
type Mapping struct {
	segments []Segment
}

// DefaultSegments: half the control covers the first 10k emails, the next 30
// points reach 100k and the last 20 reach 500k.
var DefaultSegments = []Segment{
	{PosLo: 0, PosHi: 50, VolLo: 0, VolHi: 10_000},
	{PosLo: 50, PosHi: 80, VolLo: 10_000, VolHi: 100_000},
	{PosLo: 80, PosHi: 100, VolLo: 100_000, VolHi: 500_000},
}

// NewMapping validates segments and returns a mapping holding a copy of them.
// Segments must be contiguous in both position and volume, and increasing.
func NewMapping(segments []Segment) (*Mapping, error) {
	if len(segments) == 0 {
		return nil, ErrEmptyMapping
	}

	for i, s := range segments {
		if !(s.PosHi > s.PosLo) || !(s.VolHi > s.VolLo) {
			return nil, fmt.Errorf("segment %d (%v-%v -> %v-%v): %w", i, s.PosLo, s.PosHi, s.VolLo, s.VolHi, ErrSegmentOrder)
		}
		if i > 0 {
			prev := segments[i-1]
			if s.PosLo != prev.PosHi || s.VolLo != prev.VolHi {
				return nil, fmt.Errorf("segment %d starts at %v/%v, previous ends at %v/%v: %w",
					i, s.PosLo, s.VolLo, prev.PosHi, prev.VolHi, ErrSegmentGap)
			}
		}
	}

	copied := make([]Segment, len(segments))
	copy(copied, segments)
	return &Mapping{segments: copied}, nil
}

// MustNewMapping is like NewMapping but panics on invalid input
func MustNewMapping(segments []Segment) *Mapping {
	m, err := NewMapping(segments)
	if err != nil {
		panic(err)
	}
	return m
}

// Default is the mapping over DefaultSegments
var Default = MustNewMapping(DefaultSegments)

// MinPosition returns the lowest control position
func (m *Mapping) MinPosition() float64 { return m.segments[0].PosLo }

// MaxPosition returns the highest control position
func (m *Mapping) MaxPosition() float64 { return m.segments[len(m.segments)-1].PosHi }

// MaxVolume returns the volume at the highest control position
func (m *Mapping) MaxVolume() float64 { return m.segments[len(m.segments)-1].VolHi }

// ToVolume converts a control position to a volume. Positions outside the
// control range are clamped.
func (m *Mapping) ToVolume(p float64) float64 {
	p = clamp(p, m.MinPosition(), m.MaxPosition())
	for _, s := range m.segments {
		if p <= s.PosHi {
			return s.toVolume(p)
		}
	}
	return m.MaxVolume()
}

// ToVolumeRounded is ToVolume rounded to a whole number of emails
func (m *Mapping) ToVolumeRounded(p float64) float64 {
	return math.Round(m.ToVolume(p))
}

// ToPosition converts a volume back to a control position. Volumes outside
// the mapped range are clamped.
func (m *Mapping) ToPosition(v float64) float64 {
	v = clamp(v, m.segments[0].VolLo, m.MaxVolume())
	for _, s := range m.segments {
		if v <= s.VolHi {
			return s.toPosition(v)
		}
	}
	return m.MaxPosition()
}

// SliderPositionToVolume converts with the default mapping
func SliderPositionToVolume(p float64) float64 {
	return Default.ToVolume(p)
}

// VolumeToSliderPosition converts with the default mapping
func VolumeToSliderPosition(v float64) float64 {
	return Default.ToPosition(v)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
