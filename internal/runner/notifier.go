package runner

import "github.com/obonelli/the-witcher-trial/internal/trial"

// Notifier receives cues for sound and haptics. Calls are made from the
// goroutine driving the runner and must not block.
type Notifier interface {
	Reveal(g trial.Glyph)
	Hit(g trial.Glyph)
	Miss()
	RoundScored(points int, perfect bool)
	LevelUp(level int)
	RunEnded(reason trial.EndReason)
}

// NopNotifier ignores every cue.
type NopNotifier struct{}

func (NopNotifier) Reveal(trial.Glyph) {}
func (NopNotifier) Hit(trial.Glyph) {}
func (NopNotifier) Miss() {}
func (NopNotifier) RoundScored(int, bool) {}
func (NopNotifier) LevelUp(int) {}
func (NopNotifier) RunEnded(trial.EndReason) {}

// Outcome is everything persisted about a finished run.
type Outcome struct {
	Player string
	Result trial.Result
	Replay trial.Replay
}

// ResultSink persists finished runs. SaveResult returns the stored run ID.
type ResultSink interface {
	SaveResult(out Outcome) (string, error)
}
