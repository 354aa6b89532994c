package trial

import (
	"math"

	"github.com/obonelli/the-witcher-trial/internal/core"
)

// StreakMultiplier returns the score multiplier for a streak value.
// It steps up by one every 5 streak points.
func StreakMultiplier(streak int) int {
	if streak < 0 {
		streak = 0
	}
	return 1 + streak/5
}

// SpeedBonus awards up to max points in proportion to the time left.
func SpeedBonus(timeRemainingMs, roundTotalMs, max int) int {
	total := core.Max(1, roundTotalMs)
	ratio := float64(timeRemainingMs) / float64(total) * float64(max)
	return int(math.Round(core.ClampF(ratio, 0, float64(max))))
}

// RoundScoreInput holds the raw figures of one scored round.
type RoundScoreInput struct {
	CorrectCount int
	PerGlyph     int
	StreakMult   int
	Speed        int
	PerfectBonus int // Zero unless every position was hit
}

// RoundScore computes the points earned by a round.
func RoundScore(in RoundScoreInput) int {
	return in.CorrectCount*in.PerGlyph*in.StreakMult + in.Speed + in.PerfectBonus
}
