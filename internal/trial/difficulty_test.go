package trial

import "testing"

func TestSequenceLength(t *testing.T) {
	c := DefaultCurve()

	tests := []struct {
		level    int
		expected int
	}{
		{-5, 3},
		{0, 3},
		{1, 3},
		{2, 4},
		{3, 5},
		{4, 5},
		{5, 6},
		{6, 7},
		{7, 7},
		{8, 8},
		{9, 9},
		{10, 10},
		{11, 10},
		{12, 11},
		{13, 11},
		{20, 15},
	}

	for _, tc := range tests {
		if got := c.SequenceLength(tc.level); got != tc.expected {
			t.Errorf("SequenceLength(%d) = %d, expected %d", tc.level, got, tc.expected)
		}
	}
}

func TestShowTimeMs(t *testing.T) {
	c := DefaultCurve()

	tests := []struct {
		level    int
		expected int
	}{
		{0, 900},
		{1, 900},
		{3, 900},
		{4, 750},
		{6, 750},
		{7, 620},
		{9, 620},
		{10, 600},
		{11, 580},
		{20, 400},
		{21, 380},
		{50, 380},
	}

	for _, tc := range tests {
		if got := c.ShowTimeMs(tc.level); got != tc.expected {
			t.Errorf("ShowTimeMs(%d) = %d, expected %d", tc.level, got, tc.expected)
		}
	}
}

func TestShowTimeNeverIncreases(t *testing.T) {
	c := DefaultCurve()
	prev := c.ShowTimeMs(0)
	for level := 1; level <= 200; level++ {
		cur := c.ShowTimeMs(level)
		if cur > prev {
			t.Fatalf("ShowTimeMs(%d) = %d exceeds previous level's %d", level, cur, prev)
		}
		if cur < c.ShowMinMs {
			t.Fatalf("ShowTimeMs(%d) = %d is below the floor %d", level, cur, c.ShowMinMs)
		}
		prev = cur
	}
}

func TestInputWindowMs(t *testing.T) {
	c := DefaultCurve()

	tests := []struct {
		name     string
		level    int
		length   int
		expected int
	}{
		{"clamped to min", 1, 1, 2500},         // 900*1.6*1 = 1440
		{"level 1 length 3", 1, 3, 4320},       // 900*1.6*3
		{"level 5 length 6", 5, 6, 7200},       // 750*1.6*6
		{"clamped to max", 9, 20, 12000},       // 620*1.6*20 = 19840
		{"zero length", 1, 0, 2500},            // nothing to repeat
		{"rounded", 10, 7, 6720},               // 600*1.6*7
		{"late level floor", 100, 12, 7296},    // 380*1.6*12
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := c.InputWindowMs(tc.level, tc.length); got != tc.expected {
				t.Errorf("InputWindowMs(%d, %d) = %d, expected %d", tc.level, tc.length, got, tc.expected)
			}
		})
	}
}

func TestFakeCount(t *testing.T) {
	c := DefaultCurve()

	tests := []struct {
		level    int
		expected int
	}{
		{0, 0},
		{1, 0},
		{3, 0},
		{4, 1},
		{6, 1},
		{7, 2},
		{10, 3},
		{13, 4},
		{40, 4},
	}

	for _, tc := range tests {
		if got := c.FakeCount(tc.level); got != tc.expected {
			t.Errorf("FakeCount(%d) = %d, expected %d", tc.level, got, tc.expected)
		}
	}
}

func TestCurveDegenerateConfig(t *testing.T) {
	var c Curve

	// A zero curve must still be total.
	if got := c.SequenceLength(5); got != 3 {
		t.Errorf("zero curve SequenceLength = %d, expected 3", got)
	}
	if got := c.ShowTimeMs(5); got != 0 {
		t.Errorf("zero curve ShowTimeMs = %d, expected 0", got)
	}
	if got := c.FakeCount(5); got != 0 {
		t.Errorf("zero curve FakeCount = %d, expected 0", got)
	}
}
