package runner

import "github.com/obonelli/the-witcher-trial/internal/core"

// Timing holds the durations and rates the runner applies around the core.
type Timing struct {
	DecayPerSec       float64 // Energy drained per second of play
	RevealDecayFactor float64 // Decay multiplier while the sequence is lit

	GraceMs        int // Late taps still count this long after a glyph goes dark
	GapMs          int // Dark time between two lit glyphs
	SuccessPauseMs int
	CountdownMs    int // Intro countdown before the first round
}

// DefaultTiming returns the reference shell timing.
func DefaultTiming() Timing {
	return Timing{
		DecayPerSec:       0.12,
		RevealDecayFactor: 0.5,
		GraceMs:           220,
		GapMs:             160,
		SuccessPauseMs:    900,
		CountdownMs:       3000,
	}
}

// schedule lays out the reveal of one round on the round clock.
// Position i is lit during [i*slot, i*slot+show); its tap window closes at
// i*slot+show+grace. The dark part of a slot is never shorter than the
// grace window, so tap windows of two positions never overlap.
type schedule struct {
	show  float64
	grace float64
	slot  float64
	n     int
}

func newSchedule(showMs int, t Timing, n int) schedule {
	show := float64(core.Max(showMs, 1))
	grace := float64(core.Max(t.GraceMs, 0))
	dark := float64(core.Max(core.Max(t.GapMs, t.GraceMs), 0))
	return schedule{
		show:  show,
		grace: grace,
		slot:  show + dark,
		n:     n,
	}
}

// litAt returns the position lit at ms, or -1.
func (sc schedule) litAt(ms float64) int {
	i, offset := sc.position(ms)
	if i < 0 || offset >= sc.show {
		return -1
	}
	return i
}

// tappableAt returns the position a tap at ms belongs to: the lit one, or
// the one whose grace window is still open. Returns -1 between windows.
func (sc schedule) tappableAt(ms float64) int {
	i, offset := sc.position(ms)
	if i < 0 || offset >= sc.show+sc.grace {
		return -1
	}
	return i
}

func (sc schedule) position(ms float64) (int, float64) {
	if ms < 0 || sc.slot <= 0 {
		return -1, 0
	}
	i := int(ms / sc.slot)
	if i >= sc.n {
		return -1, 0
	}
	return i, ms - float64(i)*sc.slot
}

// revealAt is the round time at which position i lights up.
func (sc schedule) revealAt(i int) float64 {
	return float64(i) * sc.slot
}

// closeAt is the round time at which an unhit position i becomes a miss.
func (sc schedule) closeAt(i int) float64 {
	return float64(i)*sc.slot + sc.show + sc.grace
}

// end is the round time at which the whole sequence has been shown.
func (sc schedule) end() float64 {
	return float64(sc.n) * sc.slot
}
