// Package trial implements the round, energy and difficulty engine of the
// Witcher trial: a seeded sequence generator, the difficulty curve, scoring
// and a pure transition function over the game state.
//
// Nothing in this package blocks, logs or keeps package-level mutable state.
// The runner package drives it in time.
package trial

// Glyph identifies one tappable sign on the board.
type Glyph string

// DefaultRoster returns the seven signs of the trial, in board order.
func DefaultRoster() []Glyph {
	return []Glyph{"gale", "ember", "ward", "snare", "soothe", "void", "aegis"}
}

// SequenceSeed returns the RNG seed used for a level's sequence.
// The per-level offset keeps levels of one run visibly different while
// each (seed, level) pair stays reproducible.
func SequenceSeed(seed int64, level int, stride int64) int64 {
	return seed + int64(level)*stride
}

// GenerateSequence builds the ordered glyph sequence for a level and seed.
// Repeats are allowed. An empty roster yields an empty sequence.
func GenerateSequence(level int, seed int64, roster []Glyph, tuning Tuning) []Glyph {
	if len(roster) == 0 {
		return nil
	}

	rng := NewRNG(SequenceSeed(seed, level, tuning.LevelSeedStride))
	n := tuning.Curve.SequenceLength(level)

	seq := make([]Glyph, n)
	for i := range seq {
		seq[i] = roster[rng.Intn(len(roster))]
	}
	return seq
}

// Decoys picks count roster glyphs for the cosmetic fake tiles of a round.
// They are drawn from the stream following the sequence so they never
// perturb it.
func Decoys(level int, seed int64, roster []Glyph, tuning Tuning, count int) []Glyph {
	if len(roster) == 0 || count <= 0 {
		return nil
	}

	rng := NewRNG(SequenceSeed(seed, level, tuning.LevelSeedStride))
	for i, n := 0, tuning.Curve.SequenceLength(level); i < n; i++ {
		rng.Uint32()
	}

	decoys := make([]Glyph, count)
	for i := range decoys {
		decoys[i] = roster[rng.Intn(len(roster))]
	}
	return decoys
}
