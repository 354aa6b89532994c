package trial

import (
	"math"
	"slices"

	"github.com/obonelli/the-witcher-trial/internal/core"
)

// Machine binds a tuning and a glyph roster to the transition function.
// It holds no game state and is safe for concurrent use.
type Machine struct {
	tuning Tuning
	roster []Glyph
}

// NewMachine creates a machine. An empty roster falls back to DefaultRoster.
func NewMachine(tuning Tuning, roster []Glyph) *Machine {
	if len(roster) == 0 {
		roster = DefaultRoster()
	}
	return &Machine{
		tuning: tuning,
		roster: slices.Clone(roster),
	}
}

// Tuning returns the machine's tuning.
func (m *Machine) Tuning() Tuning {
	return m.tuning
}

// Roster returns a copy of the playable glyphs.
func (m *Machine) Roster() []Glyph {
	return slices.Clone(m.roster)
}

// InitialState returns a fresh run in the intro phase with full energy.
func (m *Machine) InitialState(mode Mode, seed int64) State {
	return State{
		Phase:  PhaseIntro,
		Mode:   mode,
		Level:  core.Max(1, m.tuning.StartLevel),
		Seed:   seed,
		Energy: 1,
	}
}

// Transition returns the state that follows s after e.
//
// It is total: unknown events, out-of-phase events and out-of-range
// indices return s unchanged. The input state is never mutated.
func (m *Machine) Transition(s State, e Event) State {
	switch ev := e.(type) {
	case Start:
		return m.start(s)
	case LiveHit:
		return m.liveHit(s, ev)
	case LiveMiss:
		return m.liveMiss(s, ev)
	case SeqShown:
		return m.seqShown(s)
	case RoundSuccess:
		return m.roundSuccess(s)
	case EnergySet:
		return m.energySet(s, ev)
	case EnergyDelta:
		return m.energyDelta(s, ev)
	case SetPaused:
		s.Paused = ev.Value
		return s
	case TogglePaused:
		s.Paused = !s.Paused
		return s
	case Retry:
		return m.InitialState(s.Mode, s.Seed+1)
	case GameOver:
		return m.gameOver(s)
	case Input:
		return m.input(s, ev)
	case Timeout:
		return m.timeout(s)
	default:
		return s
	}
}

// Apply folds a list of events over s.
func (m *Machine) Apply(s State, events ...Event) State {
	for _, e := range events {
		s = m.Transition(s, e)
	}
	return s
}

func (m *Machine) start(s State) State {
	if s.Phase != PhaseIntro && s.Phase != PhaseSuccess {
		return s
	}
	s = m.newRound(s)
	s.EndReason = EndNone
	return s
}

// newRound generates the sequence for the current level and opens the reveal.
func (m *Machine) newRound(s State) State {
	s.Sequence = GenerateSequence(s.Level, s.Seed, m.roster, m.tuning)
	s.LiveHits = make([]bool, len(s.Sequence))
	s.InputIndex = 0
	s.RoundMisses = 0
	s.Phase = PhaseShowingSequence
	return s
}

func (m *Machine) liveHit(s State, ev LiveHit) State {
	if s.Phase != PhaseShowingSequence || s.Mode != ModeLive || s.Paused {
		return s
	}
	if ev.Index < 0 || ev.Index >= len(s.LiveHits) {
		return s
	}

	// Wrong taps are not deduplicated: each one is a distinct mistake.
	if !ev.OK {
		return m.penalize(s)
	}
	if s.LiveHits[ev.Index] {
		return s
	}
	return m.reward(s, ev.Index)
}

func (m *Machine) liveMiss(s State, ev LiveMiss) State {
	if s.Phase != PhaseShowingSequence || s.Mode != ModeLive {
		return s
	}
	if ev.Index < 0 || ev.Index >= len(s.LiveHits) {
		return s
	}
	// A hit on the same tick already resolved this position.
	if s.LiveHits[ev.Index] {
		return s
	}
	return m.penalize(s)
}

// reward applies the correct-answer path for position idx.
func (m *Machine) reward(s State, idx int) State {
	hits := slices.Clone(s.LiveHits)
	hits[idx] = true
	s.LiveHits = hits

	s.Streak++
	s.StreakMax = core.Max(s.StreakMax, s.Streak)
	s.Momentum = core.Max(s.Momentum, s.Streak)
	s.CorrectTotal++
	s.PlayedTotal++
	s.Energy = clampEnergy(s.Energy + m.tuning.EnergyGainOnHit)
	return m.checkEnergy(s)
}

// penalize applies the miss path. Momentum is left untouched.
func (m *Machine) penalize(s State) State {
	s.Energy = clampEnergy(s.Energy - m.tuning.EnergyLossOnMiss)
	s.Streak = 0
	s.PlayedTotal++
	s.RoundMisses++
	return m.checkEnergy(s)
}

// checkEnergy ends the run when energy fell below the threshold.
func (m *Machine) checkEnergy(s State) State {
	if s.Phase.Terminal() {
		return s
	}
	if s.Energy < m.tuning.EnergyEndThreshold {
		s.Phase = PhaseFail
		s.EndReason = EndEnergy
	}
	return s
}

func (m *Machine) seqShown(s State) State {
	if s.Phase != PhaseShowingSequence {
		return s
	}

	if s.Mode == ModeClassic {
		s.Phase = PhaseAwaitingInput
		s.InputIndex = 0
		s.LiveHits = make([]bool, len(s.Sequence))
		return s
	}

	hits := s.Hits()
	perfect := len(s.Sequence) > 0 && hits == len(s.Sequence)
	s.Score += m.roundScore(s, hits, 0, perfect)
	s.Phase = PhaseSuccess
	return s
}

// roundScore scores a round. The multiplier comes from Momentum rather
// than Streak so a single miss does not collapse score growth.
func (m *Machine) roundScore(s State, hits, speed int, perfect bool) int {
	bonus := 0
	if perfect {
		bonus = m.tuning.PerfectBonus
	}
	return RoundScore(RoundScoreInput{
		CorrectCount: hits,
		PerGlyph:     m.tuning.PointsPerGlyph,
		StreakMult:   StreakMultiplier(s.Momentum),
		Speed:        speed,
		PerfectBonus: bonus,
	})
}

func (m *Machine) roundSuccess(s State) State {
	if s.Phase != PhaseSuccess {
		return s
	}

	s.RoundsAtLevel++
	if m.tuning.RoundsPerLevel > 0 && s.RoundsAtLevel >= m.tuning.RoundsPerLevel {
		s.Level++
		s.RoundsAtLevel = 0
	}
	return m.newRound(s)
}

func (m *Machine) energySet(s State, ev EnergySet) State {
	if math.IsNaN(ev.Value) {
		return s
	}
	s.Energy = clampEnergy(ev.Value)
	return m.checkEnergy(s)
}

func (m *Machine) energyDelta(s State, ev EnergyDelta) State {
	if s.Paused || s.Phase.Terminal() || math.IsNaN(ev.Delta) {
		return s
	}
	// Background drain spares a player who is on a streak.
	if ev.Delta < 0 && s.Phase == PhaseShowingSequence && s.Streak > 0 {
		return s
	}
	s.Energy = clampEnergy(s.Energy + ev.Delta)
	return m.checkEnergy(s)
}

func (m *Machine) gameOver(s State) State {
	if s.Phase == PhaseGameOver {
		return s
	}
	s.Phase = PhaseGameOver
	if s.EndReason == EndNone {
		s.EndReason = EndSurrender
	}
	return s
}

func (m *Machine) input(s State, ev Input) State {
	if s.Phase != PhaseAwaitingInput || s.Paused {
		return s
	}
	if s.InputIndex >= len(s.Sequence) {
		return s
	}
	if ev.Glyph != s.Sequence[s.InputIndex] {
		return m.penalize(s)
	}

	s = m.reward(s, s.InputIndex)
	if s.Phase.Terminal() {
		return s
	}
	s.InputIndex++
	if s.InputIndex < len(s.Sequence) {
		return s
	}

	window := m.tuning.Curve.InputWindowMs(s.Level, len(s.Sequence))
	speed := SpeedBonus(window-ev.ElapsedMs, window, m.tuning.SpeedBonusMax)
	s.Score += m.roundScore(s, len(s.Sequence), speed, s.RoundMisses == 0)
	s.Phase = PhaseSuccess
	return s
}

func (m *Machine) timeout(s State) State {
	if s.Phase != PhaseAwaitingInput || s.Paused {
		return s
	}
	s.Phase = PhaseFail
	s.EndReason = EndTimeout
	return s
}

func clampEnergy(e float64) float64 {
	return core.ClampF(e, 0, 1)
}
