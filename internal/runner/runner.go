// Package runner is the scheduling shell of the trial. It owns one run,
// drives it with a virtual clock and turns taps into trial events.
//
// Every state change goes through trial.Machine.Transition and is recorded,
// so a finished run can be reproduced from its replay.
package runner

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/obonelli/the-witcher-trial/internal/trial"
)

// maxStep bounds a single clock step so long frames still emit reveals,
// misses and decay in order.
const maxStep = 50 * time.Millisecond

// Options configures a Runner.
type Options struct {
	Mode     trial.Mode
	Seed     int64
	Player   string // Stored with results
	Timing   Timing
	Notifier Notifier    // Defaults to NopNotifier
	Sink     ResultSink  // Optional
	Logger   *log.Logger // Defaults to a discarding logger
	Now      func() time.Time
}

// Runner drives one run of the trial. It is not safe for concurrent use:
// the presentation layer calls it from its update loop.
type Runner struct {
	machine *trial.Machine
	opts    Options
	log     *log.Logger
	notify  Notifier

	state trial.State
	rec   *trial.Recorder

	countdown float64 // ms left in the intro countdown, <0 when idle
	roundMs   float64 // reveal clock, or time spent awaiting input
	successMs float64
	sched     schedule

	nextReveal int
	nextClose  int
	decoys     []trial.Glyph

	finished bool
	runID    string
}

// New creates a runner for a fresh run in the intro phase.
func New(m *trial.Machine, opts Options) *Runner {
	if opts.Mode == "" {
		opts.Mode = trial.ModeLive
	}
	if opts.Notifier == nil {
		opts.Notifier = NopNotifier{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Runner{
		machine:   m,
		opts:      opts,
		log:       opts.Logger,
		notify:    opts.Notifier,
		state:     m.InitialState(opts.Mode, opts.Seed),
		rec:       trial.NewRecorder(opts.Mode, opts.Seed),
		countdown: -1,
	}
}

// Start arms the intro countdown, or begins the first round right away
// when no countdown is configured. It does nothing outside the intro.
func (r *Runner) Start() {
	if r.state.Phase != trial.PhaseIntro || r.countdown >= 0 {
		return
	}
	if r.opts.Timing.CountdownMs > 0 {
		r.countdown = float64(r.opts.Timing.CountdownMs)
		return
	}
	r.begin()
}

func (r *Runner) begin() {
	r.countdown = -1
	r.dispatch(trial.EnergySet{Value: 1})
	r.dispatch(trial.Start{})
	r.log.Info("run started", "mode", r.state.Mode, "seed", r.state.Seed, "player", r.opts.Player)
	r.openRound()
}

// openRound resets the round clocks for the sequence in the current state.
func (r *Runner) openRound() {
	if r.state.Phase != trial.PhaseShowingSequence {
		return
	}

	tuning := r.machine.Tuning()
	show := tuning.Curve.ShowTimeMs(r.state.Level)
	r.sched = newSchedule(show, r.opts.Timing, len(r.state.Sequence))
	r.roundMs = 0
	r.successMs = 0
	r.nextReveal = 0
	r.nextClose = 0
	r.decoys = trial.Decoys(r.state.Level, r.state.Seed, r.machine.Roster(), tuning,
		tuning.Curve.FakeCount(r.state.Level))

	r.log.Debug("round started",
		"level", r.state.Level,
		"length", len(r.state.Sequence),
		"show_ms", show,
		"decoys", len(r.decoys),
	)
	r.emitReveals()
}

// Advance moves the virtual clock forward by dt.
func (r *Runner) Advance(dt time.Duration) {
	for dt > 0 {
		step := min(dt, maxStep)
		r.step(float64(step) / float64(time.Millisecond))
		dt -= step
	}
}

func (r *Runner) step(ms float64) {
	if r.state.Paused {
		return
	}

	if r.countdown >= 0 {
		r.countdown -= ms
		if r.countdown <= 0 {
			r.begin()
		}
		return
	}

	switch r.state.Phase {
	case trial.PhaseShowingSequence:
		r.decay(ms, r.opts.Timing.RevealDecayFactor)
		if r.state.Phase != trial.PhaseShowingSequence {
			return
		}
		r.roundMs += ms
		r.emitReveals()
		if r.state.Mode == trial.ModeLive {
			r.closeWindows()
		}
		if r.state.Phase == trial.PhaseShowingSequence && r.roundMs >= r.sched.end() {
			r.dispatch(trial.SeqShown{})
			r.roundMs -= r.sched.end()
		}

	case trial.PhaseAwaitingInput:
		r.decay(ms, 1)
		if r.state.Phase != trial.PhaseAwaitingInput {
			return
		}
		r.roundMs += ms
		if r.roundMs >= float64(r.inputWindowMs()) {
			r.dispatch(trial.Timeout{})
		}

	case trial.PhaseSuccess:
		r.successMs += ms
		if r.successMs >= float64(r.opts.Timing.SuccessPauseMs) {
			r.dispatch(trial.RoundSuccess{})
			r.openRound()
		}
	}
}

func (r *Runner) decay(ms, factor float64) {
	delta := r.opts.Timing.DecayPerSec * factor * ms / 1000
	if delta <= 0 {
		return
	}
	r.dispatch(trial.EnergyDelta{Delta: -delta})
}

func (r *Runner) emitReveals() {
	for r.nextReveal < r.sched.n && r.sched.revealAt(r.nextReveal) <= r.roundMs {
		r.notify.Reveal(r.state.Sequence[r.nextReveal])
		r.nextReveal++
	}
}

// closeWindows turns positions whose tap window has closed unhit into misses.
func (r *Runner) closeWindows() {
	for r.nextClose < r.sched.n && r.sched.closeAt(r.nextClose) <= r.roundMs {
		i := r.nextClose
		r.nextClose++
		if r.state.LiveHits[i] {
			continue
		}
		r.dispatch(trial.LiveMiss{Index: i})
		if r.state.Phase.Terminal() {
			return
		}
	}
}

// Tap answers with glyph g. In live mode it targets the lit position, or
// the one still inside its grace window; taps between windows are ignored.
// In classic mode it answers the next position of the sequence.
func (r *Runner) Tap(g trial.Glyph) {
	if r.state.Paused || r.countdown >= 0 {
		return
	}

	switch r.state.Phase {
	case trial.PhaseShowingSequence:
		if r.state.Mode != trial.ModeLive {
			return
		}
		i := r.sched.tappableAt(r.roundMs)
		if i < 0 || i >= len(r.state.Sequence) {
			return
		}
		r.dispatch(trial.LiveHit{OK: r.state.Sequence[i] == g, Index: i})

	case trial.PhaseAwaitingInput:
		r.dispatch(trial.Input{Glyph: g, ElapsedMs: int(r.roundMs)})
	}
}

// TapSlot taps the roster glyph at a zero-based board slot.
func (r *Runner) TapSlot(slot int) {
	roster := r.machine.Roster()
	if slot < 0 || slot >= len(roster) {
		return
	}
	r.Tap(roster[slot])
}

// TogglePause pauses or resumes a run that has not ended.
func (r *Runner) TogglePause() {
	if r.state.Phase.Terminal() {
		return
	}
	r.dispatch(trial.TogglePaused{})
	r.log.Debug("pause toggled", "paused", r.state.Paused)
}

// Retry abandons the current run and starts the next one with seed+1.
func (r *Runner) Retry() {
	r.dispatch(trial.Retry{})
	r.rec.Reset(r.state.Mode, r.state.Seed)
	r.finished = false
	r.runID = ""
	r.countdown = -1
	r.sched = schedule{}
	r.decoys = nil
	r.Start()
}

// Surrender ends the run.
func (r *Runner) Surrender() {
	r.countdown = -1
	r.dispatch(trial.GameOver{})
}

// dispatch applies e, records it and reports what changed.
func (r *Runner) dispatch(e trial.Event) {
	before := r.state
	r.rec.Record(e)
	r.state = r.machine.Transition(before, e)
	r.observe(before)
}

func (r *Runner) observe(before trial.State) {
	after := r.state

	switch {
	case after.CorrectTotal > before.CorrectTotal:
		if g, ok := newlyHit(before, after); ok {
			r.notify.Hit(g)
		}
	case after.PlayedTotal > before.PlayedTotal:
		r.notify.Miss()
		r.log.Debug("miss", "level", after.Level, "energy", fmt.Sprintf("%.2f", after.Energy))
	}

	if after.Phase == trial.PhaseSuccess && before.Phase != trial.PhaseSuccess {
		points := after.Score - before.Score
		perfect := after.RoundMisses == 0 && after.Hits() == len(after.Sequence)
		r.notify.RoundScored(points, perfect)
		r.log.Info("round scored", "level", after.Level, "points", points, "perfect", perfect, "score", after.Score)
	}

	if before.Phase == trial.PhaseSuccess && after.Level > before.Level {
		r.notify.LevelUp(after.Level)
		r.log.Info("level up", "level", after.Level)
	}

	if after.Phase.Terminal() && !before.Phase.Terminal() {
		r.notify.RunEnded(after.EndReason)
		r.finish()
	}
}

// newlyHit returns the glyph of the position hit by the last transition.
func newlyHit(before, after trial.State) (trial.Glyph, bool) {
	for i, hit := range after.LiveHits {
		if hit && (i >= len(before.LiveHits) || !before.LiveHits[i]) {
			return after.Sequence[i], true
		}
	}
	return "", false
}

// finish hands the result to the sink once per run.
func (r *Runner) finish() {
	if r.finished {
		return
	}
	r.finished = true

	res := trial.Summarize(r.state, r.opts.Now())
	r.log.Info("run ended",
		"mode", res.Mode,
		"score", res.Score,
		"level", res.Level,
		"reason", res.EndReason,
		"accuracy", fmt.Sprintf("%.2f", res.Accuracy),
	)

	if r.opts.Sink == nil {
		return
	}
	if res.PlayedTotal == 0 && res.Score == 0 {
		r.log.Debug("nothing played, result not saved")
		return
	}

	id, err := r.opts.Sink.SaveResult(Outcome{
		Player: r.opts.Player,
		Result: res,
		Replay: r.rec.Replay(),
	})
	if err != nil {
		r.log.Warn("cannot save result", "err", err)
		return
	}
	r.runID = id
}

// State returns a copy of the current state.
func (r *Runner) State() trial.State {
	return r.state.Clone()
}

// Roster returns the playable glyphs in board order.
func (r *Runner) Roster() []trial.Glyph {
	return r.machine.Roster()
}

// Lit returns the sequence position currently lit, or -1.
func (r *Runner) Lit() int {
	if r.state.Phase != trial.PhaseShowingSequence || r.countdown >= 0 {
		return -1
	}
	return r.sched.litAt(r.roundMs)
}

// Closed returns how many positions of the round are past their tap window.
func (r *Runner) Closed() int {
	return r.nextClose
}

// Countdown returns the time left in the intro countdown, 0 when idle.
func (r *Runner) Countdown() time.Duration {
	if r.countdown < 0 {
		return 0
	}
	return time.Duration(r.countdown * float64(time.Millisecond))
}

// InputRemaining returns the time left to repeat the sequence in classic mode.
func (r *Runner) InputRemaining() time.Duration {
	if r.state.Phase != trial.PhaseAwaitingInput {
		return 0
	}
	left := float64(r.inputWindowMs()) - r.roundMs
	if left < 0 {
		left = 0
	}
	return time.Duration(left * float64(time.Millisecond))
}

func (r *Runner) inputWindowMs() int {
	return r.machine.Tuning().Curve.InputWindowMs(r.state.Level, len(r.state.Sequence))
}

// Decoys returns the fake tiles the board shows this round.
func (r *Runner) Decoys() []trial.Glyph {
	return append([]trial.Glyph(nil), r.decoys...)
}

// Replay returns the recording of the current run.
func (r *Runner) Replay() trial.Replay {
	return r.rec.Replay()
}

// RunID returns the ID the sink assigned to the finished run, if any.
func (r *Runner) RunID() string {
	return r.runID
}
