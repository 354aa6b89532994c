package sfx

import (
	"math"
	"math/rand"
	"time"
)

// Cue is a feedback sound that is not tied to a glyph.
type Cue int

const (
	CueHit Cue = iota
	CueMiss
	CueRound
	CuePerfect
	CueLevelUp
	CueFail
	cueCount
)

func (c Cue) String() string {
	switch c {
	case CueHit:
		return "hit"
	case CueMiss:
		return "miss"
	case CueRound:
		return "round"
	case CuePerfect:
		return "perfect"
	case CueLevelUp:
		return "levelup"
	case CueFail:
		return "fail"
	default:
		return "unknown"
	}
}

// synthesizeCue renders c. Unknown cues render as silence.
func synthesizeCue(c Cue, rng *rand.Rand) frames {
	switch c {
	case CueHit:
		n := samples(120 * time.Millisecond)
		return mono(bell(n, 1320).normalize(0.6)).
			fade(2*time.Millisecond, 60*time.Millisecond)
	case CueMiss:
		n := samples(180 * time.Millisecond)
		buzz := lowpass(saw(100, n), 900).mul(ramp(1, 0, n))
		return mono(buzz.normalize(0.6)).
			fade(2*time.Millisecond, 40*time.Millisecond)
	case CueRound:
		return notes([]float64{660, 990}, 90*time.Millisecond, 0.5)
	case CuePerfect:
		return notes([]float64{660, 880, 1320}, 90*time.Millisecond, 0.6).
			reverb(rng, 0.35, 3, 40)
	case CueLevelUp:
		n := samples(600 * time.Millisecond)
		riser := make(signal, n)
		phase := 0.0
		for i := range riser {
			// Sweep 320 Hz up an octave.
			freq := 320 * (1 + float64(i)/float64(n))
			phase += 2 * math.Pi * freq / float64(SampleRate)
			riser[i] = math.Sin(phase)
		}
		riser.mul(ramp(0.2, 1, n)).scale(0.3)
		body := riser.add(bell(n, 880), 0.7).normalize(0.7)
		return mono(body).
			reverb(rng, 0.4, 4, 50).
			fade(5*time.Millisecond, 200*time.Millisecond)
	case CueFail:
		n := samples(900 * time.Millisecond)
		fall := make(signal, n)
		phase := 0.0
		for i := range fall {
			// Fall from 220 Hz to 110 Hz.
			freq := 220 - 110*float64(i)/float64(n)
			phase += 2 * math.Pi * freq / float64(SampleRate)
			fall[i] = math.Sin(phase)
		}
		fall.add(lowpass(noise(rng, n), 600), 0.3)
		fall.mul(ramp(1, 0, n))
		return mono(fall.normalize(0.7)).
			reverb(rng, 0.5, 4, 80).
			fade(10*time.Millisecond, 300*time.Millisecond)
	default:
		return nil
	}
}

// notes plays short sine tones back to back.
func notes(freqs []float64, each time.Duration, gain float64) frames {
	n := samples(each)
	var out signal
	for _, f := range freqs {
		tone := sine(f, n).mul(hann(n))
		out = append(out, tone...)
	}
	return mono(out.normalize(gain))
}
