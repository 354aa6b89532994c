package trial

import "slices"

// Phase is the stage of a run that decides which events are accepted.
type Phase string

const (
	PhaseIntro           Phase = "intro"
	PhaseShowingSequence Phase = "showing_sequence"
	PhaseAwaitingInput   Phase = "awaiting_input" // Classic mode only
	PhaseSuccess         Phase = "success"
	PhaseFail            Phase = "fail"
	PhaseGameOver        Phase = "game_over"
)

// Terminal reports whether no gameplay event is accepted anymore.
func (p Phase) Terminal() bool {
	return p == PhaseFail || p == PhaseGameOver
}

// Mode selects how the player answers a sequence.
type Mode string

const (
	// ModeLive: tap each glyph while it is lit.
	ModeLive Mode = "live"
	// ModeClassic: watch the whole sequence, then repeat it.
	ModeClassic Mode = "classic"
)

// ParseMode converts a string to a Mode, defaulting to ModeLive.
func ParseMode(s string) Mode {
	if Mode(s) == ModeClassic {
		return ModeClassic
	}
	return ModeLive
}

// EndReason tags how a run ended, for the result narrative.
type EndReason string

const (
	EndNone      EndReason = ""
	EndEnergy    EndReason = "energy"
	EndSurrender EndReason = "surrender"
	EndTimeout   EndReason = "timeout"
)

// State is the authoritative game state. It is treated as a value:
// transitions return a new State and never mutate the slices of the input.
type State struct {
	Phase Phase
	Mode  Mode

	Level         int
	RoundsAtLevel int

	Sequence    []Glyph
	LiveHits    []bool // One entry per sequence position
	InputIndex  int    // Next position to repeat, classic mode
	RoundMisses int    // Misses in the current round

	Score        int
	Streak       int
	StreakMax    int
	Momentum     int // High-water mark of Streak, never reset by a miss
	CorrectTotal int
	PlayedTotal  int

	Seed      int64
	Energy    float64 // Always within [0, 1]
	EndReason EndReason
	Paused    bool
}

// Hits counts the positions of the current round hit so far.
func (s State) Hits() int {
	n := 0
	for _, hit := range s.LiveHits {
		if hit {
			n++
		}
	}
	return n
}

// Accuracy returns CorrectTotal/PlayedTotal, or 0 before anything was played.
func (s State) Accuracy() float64 {
	if s.PlayedTotal == 0 {
		return 0
	}
	return float64(s.CorrectTotal) / float64(s.PlayedTotal)
}

// Clone returns a copy that shares no slices with s.
func (s State) Clone() State {
	s.Sequence = slices.Clone(s.Sequence)
	s.LiveHits = slices.Clone(s.LiveHits)
	return s
}
