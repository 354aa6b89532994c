package trial

// EventKind names an event in logs and replay records.
type EventKind string

const (
	KindStart        EventKind = "start"
	KindLiveHit      EventKind = "live_hit"
	KindLiveMiss     EventKind = "live_miss"
	KindSeqShown     EventKind = "seq_shown"
	KindRoundSuccess EventKind = "round_success"
	KindEnergySet    EventKind = "energy_set"
	KindEnergyDelta  EventKind = "energy_delta"
	KindSetPaused    EventKind = "set_paused"
	KindTogglePaused EventKind = "toggle_paused"
	KindRetry        EventKind = "retry"
	KindGameOver     EventKind = "game_over"
	KindInput        EventKind = "input"
	KindTimeout      EventKind = "timeout"
)

// Event is the closed set of inputs accepted by Machine.Transition.
type Event interface {
	Kind() EventKind
}

// Start begins a round at the current level and seed.
type Start struct{}

// LiveHit reports a tap on position Index while it was lit.
// OK is false when the tapped glyph did not match.
type LiveHit struct {
	OK    bool
	Index int
}

// LiveMiss reports that position Index went dark without being tapped.
type LiveMiss struct {
	Index int
}

// SeqShown reports that the whole sequence finished revealing.
type SeqShown struct{}

// RoundSuccess advances to the next round after a scored one.
type RoundSuccess struct{}

// EnergySet primes energy to an absolute value.
type EnergySet struct {
	Value float64
}

// EnergyDelta applies background decay (negative) or a refill (positive).
type EnergyDelta struct {
	Delta float64
}

// SetPaused sets the pause flag.
type SetPaused struct {
	Value bool
}

// TogglePaused flips the pause flag.
type TogglePaused struct{}

// Retry restarts the run with the next seed.
type Retry struct{}

// GameOver ends the run for good.
type GameOver struct{}

// Input is a classic-mode answer for the next sequence position.
// ElapsedMs is the time spent since the input window opened.
type Input struct {
	Glyph     Glyph
	ElapsedMs int
}

// Timeout reports that the classic-mode input window ran out.
type Timeout struct{}

func (Start) Kind() EventKind        { return KindStart }
func (LiveHit) Kind() EventKind      { return KindLiveHit }
func (LiveMiss) Kind() EventKind     { return KindLiveMiss }
func (SeqShown) Kind() EventKind     { return KindSeqShown }
func (RoundSuccess) Kind() EventKind { return KindRoundSuccess }
func (EnergySet) Kind() EventKind    { return KindEnergySet }
func (EnergyDelta) Kind() EventKind  { return KindEnergyDelta }
func (SetPaused) Kind() EventKind    { return KindSetPaused }
func (TogglePaused) Kind() EventKind { return KindTogglePaused }
func (Retry) Kind() EventKind        { return KindRetry }
func (GameOver) Kind() EventKind     { return KindGameOver }
func (Input) Kind() EventKind        { return KindInput }
func (Timeout) Kind() EventKind      { return KindTimeout }
