package config

import (
	_ "embed"
)

//go:embed defaults/trial.yaml
var defaultTrialYAML []byte

// DefaultTrialConfig returns the reference trial configuration.
func DefaultTrialConfig() TrialConfig {
	return TrialConfig{
		Roster: []string{"gale", "ember", "ward", "snare", "soothe", "void", "aegis"},
		Energy: EnergyConfig{
			EndThreshold:      0.35,
			GainOnHit:         0.09,
			LossOnMiss:        0.12,
			DecayPerSec:       0.12,
			RevealDecayFactor: 0.5,
		},
		Scoring: ScoringConfig{
			PointsPerGlyph: 10,
			PerfectBonus:   100,
			SpeedBonusMax:  250,
		},
		Progression: ProgressionConfig{
			StartLevel:      1,
			RoundsPerLevel:  3,
			LevelSeedStride: 1337,
		},
		Curve: CurveConfig{
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
		},
		Shell: ShellConfig{
			GraceMs:        220,
			GapMs:          160,
			SuccessPauseMs: 900,
			CountdownMs:    3000,
			TickRate:       60,
		},
	}
}

// DefaultYAML returns the embedded default trial.yaml.
func DefaultYAML() []byte {
	return defaultTrialYAML
}
