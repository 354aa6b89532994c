// Package config provides YAML-based tuning for the trial: energy economy,
// scoring, level progression, the difficulty curve and shell timing.
package config

// TrialConfig contains every tunable value of the trial.
type TrialConfig struct {
	Roster      []string          `yaml:"roster"`
	Energy      EnergyConfig      `yaml:"energy"`
	Scoring     ScoringConfig     `yaml:"scoring"`
	Progression ProgressionConfig `yaml:"progression"`
	Curve       CurveConfig       `yaml:"curve"`
	Shell       ShellConfig       `yaml:"shell"`
}

// EnergyConfig defines the energy economy.
type EnergyConfig struct {
	EndThreshold      float64 `yaml:"end_threshold"`
	GainOnHit         float64 `yaml:"gain_on_hit"`
	LossOnMiss        float64 `yaml:"loss_on_miss"`
	DecayPerSec       float64 `yaml:"decay_per_sec"`
	RevealDecayFactor float64 `yaml:"reveal_decay_factor"` // Decay multiplier while the sequence is lit
}

// ScoringConfig defines round scoring.
type ScoringConfig struct {
	PointsPerGlyph int `yaml:"points_per_glyph"`
	PerfectBonus   int `yaml:"perfect_bonus"`
	SpeedBonusMax  int `yaml:"speed_bonus_max"`
}

// ProgressionConfig defines how levels advance.
type ProgressionConfig struct {
	StartLevel      int   `yaml:"start_level"`
	RoundsPerLevel  int   `yaml:"rounds_per_level"` // 0 = fixed level
	LevelSeedStride int64 `yaml:"level_seed_stride"`
}

// CurveConfig defines the per-level difficulty curve.
type CurveConfig struct {
	LengthTable    []int   `yaml:"length_table"`
	LengthBase     int     `yaml:"length_base"`
	LengthEvery    int     `yaml:"length_every"`
	ShowBandsMs    []int   `yaml:"show_bands_ms"`
	ShowBandSize   int     `yaml:"show_band_size"`
	ShowStepMs     int     `yaml:"show_step_ms"`
	ShowMinMs      int     `yaml:"show_min_ms"`
	WindowFactor   float64 `yaml:"window_factor"`
	WindowMinMs    int     `yaml:"window_min_ms"`
	WindowMaxMs    int     `yaml:"window_max_ms"`
	FakeStartLevel int     `yaml:"fake_start_level"`
	FakeEvery      int     `yaml:"fake_every"`
	FakeCap        int     `yaml:"fake_cap"`
}

// ShellConfig defines the timing the runner applies around the core.
type ShellConfig struct {
	GraceMs        int `yaml:"grace_ms"`         // Late taps accepted after a glyph goes dark
	GapMs          int `yaml:"gap_ms"`           // Dark time between two lit glyphs
	SuccessPauseMs int `yaml:"success_pause_ms"` // Pause before the next round
	CountdownMs    int `yaml:"countdown_ms"`
	TickRate       int `yaml:"tick_rate"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset returns the preset named s. Unknown names map to normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return DifficultyNormal, false
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
