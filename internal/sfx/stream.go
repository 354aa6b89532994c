package sfx

import (
	"math"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Volume holds the mix levels, each in [0, 1].
type Volume struct {
	Master float64
	Glyphs float64
	Cues   float64
	Mute   bool
}

// DefaultVolume returns the stock mix.
func DefaultVolume() Volume {
	return Volume{Master: 0.8, Glyphs: 1.0, Cues: 0.7}
}

func (v Volume) glyphGain() float64 {
	if v.Mute {
		return 0
	}
	return clamp01(v.Master) * clamp01(v.Glyphs)
}

func (v Volume) cueGain() float64 {
	if v.Mute {
		return 0
	}
	return clamp01(v.Master) * clamp01(v.Cues)
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

// framesStreamer plays a rendered sound once. The frames are shared and
// never written to, so one cached sound can back many streamers.
type framesStreamer struct {
	data frames
	pos  int
}

func newStreamer(f frames) *framesStreamer {
	return &framesStreamer{data: f}
}

func (s *framesStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= len(s.data) {
		return 0, false
	}
	n = copy(samples, s.data[s.pos:])
	s.pos += n
	return n, true
}

func (s *framesStreamer) Err() error { return nil }

func (s *framesStreamer) Len() int { return len(s.data) }

func (s *framesStreamer) Position() int { return s.pos }

func (s *framesStreamer) Seek(p int) error {
	s.pos = max(0, min(p, len(s.data)))
	return nil
}

var _ beep.StreamSeeker = (*framesStreamer)(nil)

// newVolume wraps s with a linear gain mapped onto the logarithmic
// effects.Volume scale.
func newVolume(s beep.Streamer, gain float64) *effects.Volume {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   math.Log2(gain),
	}
}
