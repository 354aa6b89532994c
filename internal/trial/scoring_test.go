package trial

import "testing"

func TestStreakMultiplier(t *testing.T) {
	tests := []struct {
		streak   int
		expected int
	}{
		{-3, 1},
		{0, 1},
		{3, 1},
		{4, 1},
		{5, 2},
		{9, 2},
		{10, 3},
		{27, 6},
	}

	for _, tc := range tests {
		if got := StreakMultiplier(tc.streak); got != tc.expected {
			t.Errorf("StreakMultiplier(%d) = %d, expected %d", tc.streak, got, tc.expected)
		}
	}
}

func TestSpeedBonus(t *testing.T) {
	tests := []struct {
		name      string
		remaining int
		total     int
		max       int
		expected  int
	}{
		{"all time left", 4000, 4000, 250, 250},
		{"half time left", 2000, 4000, 250, 125},
		{"rounding", 1000, 3000, 100, 33},
		{"time fully consumed", 0, 4000, 250, 0},
		{"overrun clamps to zero", -500, 4000, 250, 0},
		{"more than total clamps to max", 9000, 4000, 250, 250},
		{"zero total treated as one", 1, 0, 50, 50},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SpeedBonus(tc.remaining, tc.total, tc.max); got != tc.expected {
				t.Errorf("SpeedBonus(%d, %d, %d) = %d, expected %d",
					tc.remaining, tc.total, tc.max, got, tc.expected)
			}
		})
	}
}

func TestRoundScore(t *testing.T) {
	tests := []struct {
		name     string
		in       RoundScoreInput
		expected int
	}{
		{
			name:     "perfect level one round",
			in:       RoundScoreInput{CorrectCount: 3, PerGlyph: 10, StreakMult: 1, PerfectBonus: 100},
			expected: 130,
		},
		{
			name:     "partial round",
			in:       RoundScoreInput{CorrectCount: 2, PerGlyph: 10, StreakMult: 2},
			expected: 40,
		},
		{
			name:     "speed bonus added after multiplier",
			in:       RoundScoreInput{CorrectCount: 5, PerGlyph: 10, StreakMult: 3, Speed: 120, PerfectBonus: 100},
			expected: 370,
		},
		{
			name:     "nothing hit",
			in:       RoundScoreInput{PerGlyph: 10, StreakMult: 4},
			expected: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := RoundScore(tc.in); got != tc.expected {
				t.Errorf("RoundScore(%+v) = %d, expected %d", tc.in, got, tc.expected)
			}
		})
	}
}
