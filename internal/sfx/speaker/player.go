// Package speaker plays trial cues on the local sound card.
package speaker

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/obonelli/the-witcher-trial/internal/runner"
	"github.com/obonelli/the-witcher-trial/internal/sfx"
	"github.com/obonelli/the-witcher-trial/internal/trial"
)

// backend is the audio device the mixer is played on.
type backend interface {
	Start(s beep.Streamer) error
	Lock()
	Unlock()
	Close()
}

type device struct{}

func (device) Start(s beep.Streamer) error {
	if err := speaker.Init(sfx.SampleRate, sfx.SampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(s)
	return nil
}

func (device) Lock()   { speaker.Lock() }
func (device) Unlock() { speaker.Unlock() }
func (device) Close()  { speaker.Close() }

// Options configures a Player.
type Options struct {
	Volume sfx.Volume
	Seed   int64       // Fixes the noise in every sound
	Logger *log.Logger // Defaults to a discarding logger
}

// Player turns runner cues into sound. The device is opened on the first
// audible cue; if that fails the player stays silent for good.
type Player struct {
	mu      sync.Mutex
	bank    *sfx.Bank
	volume  sfx.Volume
	mixer   *beep.Mixer
	out     backend
	log     *log.Logger
	started bool
	broken  bool
}

var _ runner.Notifier = (*Player)(nil)

// New creates a player on the default sound card.
func New(opts Options) *Player {
	return newPlayer(opts, device{})
}

func newPlayer(opts Options, out backend) *Player {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Player{
		bank:   sfx.NewBank(opts.Seed),
		volume: opts.Volume,
		mixer:  &beep.Mixer{},
		out:    out,
		log:    opts.Logger,
	}
}

// Warm renders the voices of roster and every cue ahead of play.
func (p *Player) Warm(roster []trial.Glyph) {
	p.bank.Preload(roster)
}

// SetMuted silences or restores output. Muting drops sounds in flight.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume.Mute = muted
	if muted && p.started {
		p.out.Lock()
		p.mixer.Clear()
		p.out.Unlock()
	}
}

// Muted reports whether output is muted.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume.Mute
}

// SetVolume replaces the mix levels for sounds started afterwards.
func (p *Player) SetVolume(v sfx.Volume) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = v
}

// Playing reports how many sounds are still in the mixer.
func (p *Player) Playing() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started {
		return 0
	}
	p.out.Lock()
	defer p.out.Unlock()
	return p.mixer.Len()
}

// Close stops all sound and releases the device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started {
		return
	}
	p.out.Lock()
	p.mixer.Clear()
	p.out.Unlock()
	p.out.Close()
	p.started = false
}

func (p *Player) Reveal(g trial.Glyph) {
	p.play(func(v sfx.Volume) beep.Streamer { return p.bank.Glyph(g, v) })
}

func (p *Player) Hit(trial.Glyph) { p.cue(sfx.CueHit) }

func (p *Player) Miss() { p.cue(sfx.CueMiss) }

func (p *Player) RoundScored(_ int, perfect bool) {
	if perfect {
		p.cue(sfx.CuePerfect)
		return
	}
	p.cue(sfx.CueRound)
}

func (p *Player) LevelUp(int) { p.cue(sfx.CueLevelUp) }

// RunEnded sounds the fail cue unless the player walked away.
func (p *Player) RunEnded(reason trial.EndReason) {
	if reason == trial.EndSurrender {
		return
	}
	p.cue(sfx.CueFail)
}

func (p *Player) cue(c sfx.Cue) {
	p.play(func(v sfx.Volume) beep.Streamer { return p.bank.Cue(c, v) })
}

func (p *Player) play(build func(sfx.Volume) beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.volume.Mute || p.broken {
		return
	}
	if !p.started {
		if err := p.out.Start(p.mixer); err != nil {
			p.log.Warn("audio unavailable, continuing silently", "err", err)
			p.broken = true
			return
		}
		p.started = true
	}

	s := build(p.volume)
	p.out.Lock()
	p.mixer.Add(s)
	p.out.Unlock()
}
