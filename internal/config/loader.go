package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the name of the trial configuration file.
const ConfigFile = "trial.yaml"

// LoadTrial loads the trial configuration.
// Search order: customPath -> ~/.trial/configs/trial.yaml -> ./configs/trial.yaml -> embedded default
//
// Files may be partial: missing keys keep their default values.
// An explicit customPath that cannot be read, parsed or validated is an
// error; the other candidates are skipped silently.
func LoadTrial(customPath string) (TrialConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return TrialConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parseTrial(data)
		if err != nil {
			return TrialConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseTrial(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", ConfigFile)); err == nil {
		if cfg, err := parseTrial(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseTrial(defaultTrialYAML)
	if err != nil {
		return DefaultTrialConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseTrial decodes data over the defaults and validates the result.
func parseTrial(data []byte) (TrialConfig, error) {
	cfg := DefaultTrialConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return TrialConfig{}, fmt.Errorf("failed to parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return TrialConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".trial", "configs", filename)
}

// Validate reports the first value that would make the trial unplayable.
func (c TrialConfig) Validate() error {
	if len(c.Roster) == 0 {
		return errors.New("roster is empty")
	}
	seen := make(map[string]bool, len(c.Roster))
	for _, g := range c.Roster {
		if g == "" {
			return errors.New("roster contains an empty glyph")
		}
		if seen[g] {
			return fmt.Errorf("roster lists %q twice", g)
		}
		seen[g] = true
	}

	e := c.Energy
	if e.EndThreshold < 0 || e.EndThreshold > 1 {
		return fmt.Errorf("energy.end_threshold %v outside [0, 1]", e.EndThreshold)
	}
	if e.GainOnHit < 0 || e.LossOnMiss < 0 || e.DecayPerSec < 0 || e.RevealDecayFactor < 0 {
		return errors.New("energy rates must not be negative")
	}

	if c.Scoring.PointsPerGlyph < 0 || c.Scoring.PerfectBonus < 0 || c.Scoring.SpeedBonusMax < 0 {
		return errors.New("scoring values must not be negative")
	}
	if c.Progression.RoundsPerLevel < 0 {
		return errors.New("progression.rounds_per_level must not be negative")
	}

	cv := c.Curve
	if len(cv.LengthTable) == 0 {
		return errors.New("curve.length_table is empty")
	}
	for _, n := range cv.LengthTable {
		if n <= 0 {
			return fmt.Errorf("curve.length_table holds non-positive length %d", n)
		}
	}
	if cv.LengthBase <= 0 || cv.LengthEvery <= 0 {
		return errors.New("curve.length_base and curve.length_every must be positive")
	}
	if len(cv.ShowBandsMs) == 0 || cv.ShowBandSize <= 0 {
		return errors.New("curve.show_bands_ms and curve.show_band_size must be set")
	}
	for _, ms := range cv.ShowBandsMs {
		if ms <= 0 {
			return fmt.Errorf("curve.show_bands_ms holds non-positive duration %d", ms)
		}
	}
	if cv.ShowMinMs <= 0 {
		return errors.New("curve.show_min_ms must be positive")
	}
	if cv.WindowMinMs > cv.WindowMaxMs {
		return fmt.Errorf("curve.window_min_ms %d exceeds window_max_ms %d", cv.WindowMinMs, cv.WindowMaxMs)
	}

	s := c.Shell
	if s.GraceMs < 0 || s.GapMs < 0 || s.SuccessPauseMs < 0 || s.CountdownMs < 0 {
		return errors.New("shell durations must not be negative")
	}
	if s.TickRate <= 0 {
		return errors.New("shell.tick_rate must be positive")
	}
	return nil
}

// ApplyTrialPreset modifies the config based on a difficulty preset.
func ApplyTrialPreset(cfg *TrialConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Energy.LossOnMiss = 0.09
		cfg.Energy.DecayPerSec = 0.08
		cfg.Shell.GraceMs += 80
	case DifficultyHard:
		cfg.Progression.StartLevel = 4
		cfg.Energy.LossOnMiss = 0.15
	case DifficultyFixed:
		cfg.Progression.RoundsPerLevel = 0
	}
}
