package config

import (
	"slices"

	"github.com/obonelli/the-witcher-trial/internal/runner"
	"github.com/obonelli/the-witcher-trial/internal/trial"
)

// Tuning returns the core tuning described by the config.
func (c TrialConfig) Tuning() trial.Tuning {
	return trial.Tuning{
		EnergyEndThreshold: c.Energy.EndThreshold,
		EnergyGainOnHit:    c.Energy.GainOnHit,
		EnergyLossOnMiss:   c.Energy.LossOnMiss,
		PointsPerGlyph:     c.Scoring.PointsPerGlyph,
		PerfectBonus:       c.Scoring.PerfectBonus,
		SpeedBonusMax:      c.Scoring.SpeedBonusMax,
		StartLevel:         c.Progression.StartLevel,
		RoundsPerLevel:     c.Progression.RoundsPerLevel,
		LevelSeedStride:    c.Progression.LevelSeedStride,
		Curve: trial.Curve{
			LengthTable:    slices.Clone(c.Curve.LengthTable),
			LengthBase:     c.Curve.LengthBase,
			LengthEvery:    c.Curve.LengthEvery,
			ShowBandsMs:    slices.Clone(c.Curve.ShowBandsMs),
			ShowBandSize:   c.Curve.ShowBandSize,
			ShowStepMs:     c.Curve.ShowStepMs,
			ShowMinMs:      c.Curve.ShowMinMs,
			WindowFactor:   c.Curve.WindowFactor,
			WindowMinMs:    c.Curve.WindowMinMs,
			WindowMaxMs:    c.Curve.WindowMaxMs,
			FakeStartLevel: c.Curve.FakeStartLevel,
			FakeEvery:      c.Curve.FakeEvery,
			FakeCap:        c.Curve.FakeCap,
		},
	}
}

// Glyphs returns the roster as core glyphs.
func (c TrialConfig) Glyphs() []trial.Glyph {
	out := make([]trial.Glyph, len(c.Roster))
	for i, g := range c.Roster {
		out[i] = trial.Glyph(g)
	}
	return out
}

// Timing returns the shell timing described by the config.
func (c TrialConfig) Timing() runner.Timing {
	return runner.Timing{
		DecayPerSec:       c.Energy.DecayPerSec,
		RevealDecayFactor: c.Energy.RevealDecayFactor,
		GraceMs:           c.Shell.GraceMs,
		GapMs:             c.Shell.GapMs,
		SuccessPauseMs:    c.Shell.SuccessPauseMs,
		CountdownMs:       c.Shell.CountdownMs,
	}
}

// Machine builds the transition machine for this config.
func (c TrialConfig) Machine() *trial.Machine {
	return trial.NewMachine(c.Tuning(), c.Glyphs())
}
