package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/obonelli/the-witcher-trial/internal/runner"
	"github.com/obonelli/the-witcher-trial/internal/trial"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg TrialConfig
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded trial.yaml does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultTrialConfig()) {
		t.Errorf("embedded defaults drifted from DefaultTrialConfig:\nyaml: %+v\ncode: %+v", cfg, DefaultTrialConfig())
	}
}

func TestDefaultsMatchCore(t *testing.T) {
	cfg := DefaultTrialConfig()

	if got := cfg.Tuning(); !reflect.DeepEqual(got, trial.DefaultTuning()) {
		t.Errorf("Tuning() = %+v, expected trial.DefaultTuning()", got)
	}
	if got := cfg.Glyphs(); !reflect.DeepEqual(got, trial.DefaultRoster()) {
		t.Errorf("Glyphs() = %v, expected %v", got, trial.DefaultRoster())
	}
	if got := cfg.Timing(); got != runner.DefaultTiming() {
		t.Errorf("Timing() = %+v, expected runner.DefaultTiming()", got)
	}
}

func TestLoadTrialCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trial.yaml")
	partial := `
roster: [quen, igni, aard]
energy:
  loss_on_miss: 0.2
shell:
  tick_rate: 30
`
	if err := os.WriteFile(path, []byte(partial), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadTrial(path)
	if err != nil {
		t.Fatalf("LoadTrial: %v", err)
	}

	if !reflect.DeepEqual(cfg.Roster, []string{"quen", "igni", "aard"}) {
		t.Errorf("Roster = %v", cfg.Roster)
	}
	if cfg.Energy.LossOnMiss != 0.2 {
		t.Errorf("LossOnMiss = %v, expected 0.2", cfg.Energy.LossOnMiss)
	}
	if cfg.Shell.TickRate != 30 {
		t.Errorf("TickRate = %d, expected 30", cfg.Shell.TickRate)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Energy.EndThreshold != 0.35 || cfg.Scoring.PerfectBonus != 100 {
		t.Errorf("defaults lost: end_threshold=%v perfect_bonus=%d",
			cfg.Energy.EndThreshold, cfg.Scoring.PerfectBonus)
	}
}

func TestLoadTrialCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"malformed yaml", "energy: [", "failed to parse"},
		{"empty roster", "roster: []", "roster is empty"},
		{"bad threshold", "energy:\n  end_threshold: 1.5", "end_threshold"},
		{"zero tick rate", "shell:\n  tick_rate: 0", "tick_rate"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tc.name, " ", "_")+".yaml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := LoadTrial(path)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("LoadTrial error = %v, expected mention of %q", err, tc.wantErr)
			}
		})
	}

	if _, err := LoadTrial(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected an error for a missing custom path")
	}
}

func TestLoadTrialFallsBackToDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())

	cfg, err := LoadTrial("")
	if err != nil {
		t.Fatalf("LoadTrial: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultTrialConfig()) {
		t.Errorf("fallback config differs from defaults: %+v", cfg)
	}
}

func TestLoadTrialLocalConfigsDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	chdir(t, dir)

	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", ConfigFile), []byte("scoring:\n  perfect_bonus: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadTrial("")
	if err != nil {
		t.Fatalf("LoadTrial: %v", err)
	}
	if cfg.Scoring.PerfectBonus != 7 {
		t.Errorf("PerfectBonus = %d, expected 7 from ./configs", cfg.Scoring.PerfectBonus)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TrialConfig)
		ok     bool
	}{
		{"defaults", func(*TrialConfig) {}, true},
		{"duplicate glyph", func(c *TrialConfig) { c.Roster = []string{"gale", "gale"} }, false},
		{"blank glyph", func(c *TrialConfig) { c.Roster = []string{"gale", ""} }, false},
		{"negative threshold", func(c *TrialConfig) { c.Energy.EndThreshold = -0.1 }, false},
		{"negative decay", func(c *TrialConfig) { c.Energy.DecayPerSec = -1 }, false},
		{"empty length table", func(c *TrialConfig) { c.Curve.LengthTable = nil }, false},
		{"zero length", func(c *TrialConfig) { c.Curve.LengthTable = []int{3, 0} }, false},
		{"zero band size", func(c *TrialConfig) { c.Curve.ShowBandSize = 0 }, false},
		{"window inverted", func(c *TrialConfig) { c.Curve.WindowMinMs = 20000 }, false},
		{"negative rounds per level", func(c *TrialConfig) { c.Progression.RoundsPerLevel = -1 }, false},
		{"fixed level", func(c *TrialConfig) { c.Progression.RoundsPerLevel = 0 }, true},
		{"negative grace", func(c *TrialConfig) { c.Shell.GraceMs = -5 }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultTrialConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if (err == nil) != tc.ok {
				t.Errorf("Validate() = %v, expected ok=%v", err, tc.ok)
			}
		})
	}
}

func TestApplyTrialPreset(t *testing.T) {
	tests := []struct {
		preset DifficultyPreset
		check  func(t *testing.T, c TrialConfig)
	}{
		{DifficultyNormal, func(t *testing.T, c TrialConfig) {
			if !reflect.DeepEqual(c, DefaultTrialConfig()) {
				t.Error("normal preset changed the config")
			}
		}},
		{DifficultyEasy, func(t *testing.T, c TrialConfig) {
			if c.Energy.LossOnMiss >= 0.12 || c.Energy.DecayPerSec >= 0.12 {
				t.Errorf("easy did not soften energy: %+v", c.Energy)
			}
			if c.Shell.GraceMs != 300 {
				t.Errorf("GraceMs = %d, expected 300", c.Shell.GraceMs)
			}
		}},
		{DifficultyHard, func(t *testing.T, c TrialConfig) {
			if c.Progression.StartLevel != 4 || c.Energy.LossOnMiss <= 0.12 {
				t.Errorf("hard: start=%d loss=%v", c.Progression.StartLevel, c.Energy.LossOnMiss)
			}
		}},
		{DifficultyFixed, func(t *testing.T, c TrialConfig) {
			if c.Progression.RoundsPerLevel != 0 {
				t.Errorf("RoundsPerLevel = %d, expected 0", c.Progression.RoundsPerLevel)
			}
		}},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultTrialConfig()
			ApplyTrialPreset(&cfg, tc.preset)
			if err := cfg.Validate(); err != nil {
				t.Fatalf("preset produced an invalid config: %v", err)
			}
			tc.check(t, cfg)
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, ok := ParsePreset("hard"); !ok || p != DifficultyHard {
		t.Errorf("ParsePreset(hard) = %q, %v", p, ok)
	}
	if p, ok := ParsePreset("nightmare"); ok || p != DifficultyNormal {
		t.Errorf("ParsePreset(nightmare) = %q, %v", p, ok)
	}
	if !IsFixedPreset(DifficultyFixed) || IsFixedPreset(DifficultyEasy) {
		t.Error("IsFixedPreset mismatch")
	}
}

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
