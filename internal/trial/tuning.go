package trial

// Tuning holds every balance constant of the trial.
// Values are loaded from YAML by the config package; DefaultTuning is the
// reference tuning.
type Tuning struct {
	EnergyEndThreshold float64 // Energy below this ends the run
	EnergyGainOnHit    float64
	EnergyLossOnMiss   float64

	PointsPerGlyph int
	PerfectBonus   int // Flat bonus when every position of a round was hit
	SpeedBonusMax  int // Classic mode only

	StartLevel      int
	RoundsPerLevel  int   // 0 disables level progression
	LevelSeedStride int64 // Sequence seed offset per level

	Curve Curve
}

// DefaultTuning returns the reference tuning.
func DefaultTuning() Tuning {
	return Tuning{
		EnergyEndThreshold: 0.35,
		EnergyGainOnHit:    0.09,
		EnergyLossOnMiss:   0.12,
		PointsPerGlyph:     10,
		PerfectBonus:       100,
		SpeedBonusMax:      250,
		StartLevel:         1,
		RoundsPerLevel:     3,
		LevelSeedStride:    1337,
		Curve:              DefaultCurve(),
	}
}
