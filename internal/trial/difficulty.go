package trial

import "math"

// Curve maps a level to sequence length, reveal timing, input window and
// decoy count. All methods are pure and total over every int.
type Curve struct {
	// LengthTable holds explicit lengths for levels 1..len(LengthTable).
	LengthTable []int
	// Past the table the length starts at LengthBase and grows by one
	// every LengthEvery levels.
	LengthBase  int
	LengthEvery int

	// ShowBandsMs holds flat reveal durations, one per band of
	// ShowBandSize levels.
	ShowBandsMs  []int
	ShowBandSize int
	// Past the last band the reveal shrinks by ShowStepMs per level down
	// to ShowMinMs.
	ShowStepMs int
	ShowMinMs  int

	WindowFactor float64 // Input window per glyph, as a multiple of reveal time
	WindowMinMs  int
	WindowMaxMs  int

	FakeStartLevel int // Decoys appear from this level on
	FakeEvery      int
	FakeCap        int
}

// DefaultCurve returns the reference difficulty curve.
func DefaultCurve() Curve {
	return Curve{
		LengthTable:    []int{3, 4, 5, 5, 6, 7, 7, 8, 9},
		LengthBase:     10,
		LengthEvery:    2,
		ShowBandsMs:    []int{900, 750, 620},
		ShowBandSize:   3,
		ShowStepMs:     20,
		ShowMinMs:      380,
		WindowFactor:   1.6,
		WindowMinMs:    2500,
		WindowMaxMs:    12000,
		FakeStartLevel: 4,
		FakeEvery:      3,
		FakeCap:        4,
	}
}

// SequenceLength returns the number of glyphs revealed in a round.
func (c Curve) SequenceLength(level int) int {
	if len(c.LengthTable) == 0 {
		return 3
	}
	if level <= 0 {
		return c.LengthTable[0]
	}
	if level <= len(c.LengthTable) {
		return c.LengthTable[level-1]
	}

	every := c.LengthEvery
	if every <= 0 {
		every = 1
	}
	return c.LengthBase + (level-len(c.LengthTable)-1)/every
}

// ShowTimeMs returns how long each glyph stays lit, in milliseconds.
func (c Curve) ShowTimeMs(level int) int {
	if len(c.ShowBandsMs) == 0 {
		return c.ShowMinMs
	}

	size := c.ShowBandSize
	if size <= 0 {
		size = 1
	}
	if level <= 0 {
		level = 1
	}

	band := (level - 1) / size
	if band < len(c.ShowBandsMs) {
		return c.ShowBandsMs[band]
	}

	last := c.ShowBandsMs[len(c.ShowBandsMs)-1]
	past := level - len(c.ShowBandsMs)*size
	ms := last - past*c.ShowStepMs
	if ms < c.ShowMinMs {
		ms = c.ShowMinMs
	}
	return ms
}

// InputWindowMs returns the classic-mode time allowed to repeat a sequence.
func (c Curve) InputWindowMs(level, sequenceLength int) int {
	raw := float64(c.ShowTimeMs(level)) * c.WindowFactor * float64(sequenceLength)
	ms := int(math.Round(raw))
	if ms < c.WindowMinMs {
		return c.WindowMinMs
	}
	if ms > c.WindowMaxMs {
		return c.WindowMaxMs
	}
	return ms
}

// FakeCount returns how many decoy tiles the board shows at a level.
// Purely cosmetic.
func (c Curve) FakeCount(level int) int {
	if level < c.FakeStartLevel || c.FakeCap <= 0 {
		return 0
	}

	every := c.FakeEvery
	if every <= 0 {
		every = 1
	}
	n := 1 + (level-c.FakeStartLevel)/every
	if n > c.FakeCap {
		n = c.FakeCap
	}
	return n
}
