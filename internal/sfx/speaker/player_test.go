package speaker

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"

	"github.com/obonelli/the-witcher-trial/internal/sfx"
	"github.com/obonelli/the-witcher-trial/internal/trial"
)

// fakeDevice stands in for the sound card. pull drains the mixer the way
// the speaker goroutine would.
type fakeDevice struct {
	mu      sync.Mutex
	err     error
	starts  int
	closed  bool
	playing beep.Streamer
}

func (d *fakeDevice) Start(s beep.Streamer) error {
	d.starts++
	if d.err != nil {
		return d.err
	}
	d.playing = s
	return nil
}

func (d *fakeDevice) Lock()   { d.mu.Lock() }
func (d *fakeDevice) Unlock() { d.mu.Unlock() }
func (d *fakeDevice) Close()  { d.closed = true }

func (d *fakeDevice) pull(n int) [][2]float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	buf := make([][2]float64, n)
	d.playing.Stream(buf)
	return buf
}

func newTestPlayer(dev *fakeDevice) *Player {
	return newPlayer(Options{Volume: sfx.DefaultVolume(), Seed: 1}, dev)
}

func TestDeviceOpensLazily(t *testing.T) {
	dev := &fakeDevice{}
	p := newTestPlayer(dev)

	if dev.starts != 0 {
		t.Fatal("device opened before any cue")
	}

	p.Reveal("gale")
	p.Hit("gale")
	if dev.starts != 1 {
		t.Errorf("device opened %d times, expected once", dev.starts)
	}
	if p.Playing() != 2 {
		t.Errorf("Playing() = %d, expected 2", p.Playing())
	}
}

func TestCuesReachTheMixer(t *testing.T) {
	dev := &fakeDevice{}
	p := newTestPlayer(dev)

	p.Miss()
	p.RoundScored(130, true)
	p.RoundScored(40, false)
	p.LevelUp(2)
	p.RunEnded(trial.EndEnergy)
	if p.Playing() != 5 {
		t.Errorf("Playing() = %d, expected 5", p.Playing())
	}

	out := dev.pull(2048)
	silent := true
	for _, fr := range out {
		if fr[0] != 0 {
			silent = false
			break
		}
	}
	if silent {
		t.Error("mixer produced silence with five cues queued")
	}
}

func TestSurrenderIsQuiet(t *testing.T) {
	dev := &fakeDevice{}
	p := newTestPlayer(dev)

	p.RunEnded(trial.EndSurrender)
	if dev.starts != 0 || p.Playing() != 0 {
		t.Error("surrender should not make a sound")
	}
}

func TestFinishedSoundsLeaveTheMixer(t *testing.T) {
	dev := &fakeDevice{}
	p := newTestPlayer(dev)

	p.Hit("ward")
	dev.pull(int(sfx.SampleRate)) // a second is longer than the hit cue
	if p.Playing() != 0 {
		t.Errorf("Playing() = %d after the cue ended", p.Playing())
	}
}

func TestMute(t *testing.T) {
	dev := &fakeDevice{}
	p := newTestPlayer(dev)

	p.Reveal("void")
	p.SetMuted(true)
	if !p.Muted() {
		t.Fatal("Muted() = false after SetMuted(true)")
	}
	if p.Playing() != 0 {
		t.Error("muting kept sounds in flight")
	}

	p.Reveal("void")
	if p.Playing() != 0 {
		t.Error("muted player queued a sound")
	}

	p.SetMuted(false)
	p.Reveal("void")
	if p.Playing() != 1 {
		t.Errorf("Playing() = %d after unmute, expected 1", p.Playing())
	}
}

func TestMutedFromStartNeverOpensDevice(t *testing.T) {
	dev := &fakeDevice{}
	p := newPlayer(Options{Volume: sfx.Volume{Master: 1, Mute: true}}, dev)

	p.Reveal("aegis")
	p.Hit("aegis")
	if dev.starts != 0 {
		t.Error("muted player opened the device")
	}
}

func TestBrokenDeviceStaysSilent(t *testing.T) {
	var buf bytes.Buffer
	dev := &fakeDevice{err: errors.New("no sound card")}
	p := newPlayer(Options{Volume: sfx.DefaultVolume(), Logger: log.New(&buf)}, dev)

	p.Reveal("gale")
	p.Miss()
	p.LevelUp(3)

	if dev.starts != 1 {
		t.Errorf("device start attempted %d times, expected 1", dev.starts)
	}
	if p.Playing() != 0 {
		t.Error("broken player reports sounds in flight")
	}
	if got := strings.Count(buf.String(), "audio unavailable"); got != 1 {
		t.Errorf("warning logged %d times, expected once:\n%s", got, buf.String())
	}
}

func TestClose(t *testing.T) {
	dev := &fakeDevice{}
	p := newTestPlayer(dev)

	p.Close()
	if dev.closed {
		t.Error("Close() released a device that was never opened")
	}

	p.Hit("snare")
	p.Close()
	if !dev.closed {
		t.Error("Close() did not release the device")
	}
	if p.Playing() != 0 {
		t.Error("sounds survived Close()")
	}
}
