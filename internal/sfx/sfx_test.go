package sfx

import (
	"math"
	"math/rand"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/obonelli/the-witcher-trial/internal/trial"
)

// consume streams s to the end in small chunks, giving up after limit
// samples.
func consume(s beep.Streamer, limit int) ([][2]float64, bool) {
	var out [][2]float64
	buf := make([][2]float64, 512)
	for len(out) <= limit {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out, true
		}
	}
	return out, false
}

func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	out, ended := consume(s, int(SampleRate)*10)
	if !ended {
		t.Fatal("streamer did not end within 10s of audio")
	}
	if err := s.Err(); err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	return out
}

// TestSynthesizeRoster verifies every designed voice renders audible,
// in-range stereo of the declared length.
func TestSynthesizeRoster(t *testing.T) {
	for _, g := range trial.DefaultRoster() {
		t.Run(string(g), func(t *testing.T) {
			f := frames(Synthesize(g, 1))

			if want := samples(Length(g)); len(f) != want {
				t.Errorf("Expected %d samples, got %d", want, len(f))
			}
			if f.duration() != Length(g) {
				t.Errorf("duration = %v, expected %v", f.duration(), Length(g))
			}
			peak := f.peak()
			if peak > 1.0 {
				t.Errorf("peak %f exceeds 1.0", peak)
			}
			if peak < 0.1 {
				t.Errorf("voice is nearly silent (peak %f)", peak)
			}
			for i, fr := range f {
				if math.IsNaN(fr[0]) || math.IsNaN(fr[1]) {
					t.Fatalf("NaN at sample %d", i)
				}
			}
		})
	}
}

func TestSynthesizeDeterministic(t *testing.T) {
	a := Synthesize("ember", 42)
	b := Synthesize("ember", 42)
	if !reflect.DeepEqual(a, b) {
		t.Error("same glyph and seed rendered different samples")
	}

	c := Synthesize("ember", 43)
	if reflect.DeepEqual(a, c) {
		t.Error("different seeds rendered identical noise")
	}
}

func TestSynthesizeFallback(t *testing.T) {
	f := frames(Synthesize("quen", 1))
	if len(f) != samples(fallbackLength) {
		t.Errorf("fallback length = %d, expected %d", len(f), samples(fallbackLength))
	}
	if p := f.peak(); p < 0.1 || p > 1.0 {
		t.Errorf("fallback peak = %f", p)
	}
	if Length("quen") != fallbackLength {
		t.Errorf("Length(quen) = %v", Length("quen"))
	}
}

func TestCues(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for c := Cue(0); c < cueCount; c++ {
		t.Run(c.String(), func(t *testing.T) {
			f := synthesizeCue(c, rng)
			if len(f) == 0 {
				t.Fatal("cue rendered no samples")
			}
			if p := f.peak(); p > 1.0 || p < 0.1 {
				t.Errorf("peak = %f", p)
			}
			if f.duration() > time.Second {
				t.Errorf("cue lasts %v, expected under a second", f.duration())
			}
		})
	}

	if f := synthesizeCue(cueCount, rng); f != nil {
		t.Error("unknown cue should render nothing")
	}
}

func TestLowpassAttenuatesHighs(t *testing.T) {
	n := samples(100 * time.Millisecond)
	out := lowpass(sine(8000, n), 500)
	if p := out[n/2:].peak(); p > 0.2 {
		t.Errorf("8 kHz through a 500 Hz lowpass peaks at %f", p)
	}
	low := lowpass(sine(50, n), 5000)
	if p := low[n/2:].peak(); p < 0.9 {
		t.Errorf("50 Hz through a 5 kHz lowpass peaks at %f", p)
	}
}

func TestHighpassAttenuatesLows(t *testing.T) {
	n := samples(100 * time.Millisecond)
	out := highpass(sine(50, n), 3000)
	if p := out[n/2:].peak(); p > 0.1 {
		t.Errorf("50 Hz through a 3 kHz highpass peaks at %f", p)
	}
}

func TestCombNormalizes(t *testing.T) {
	in := make(signal, 1000)
	in[0] = 1
	out := comb(in, 1, 0.5)
	if p := out.peak(); math.Abs(p-0.9) > 1e-9 {
		t.Errorf("comb peak = %f, expected 0.9", p)
	}
	// 1ms at 44.1kHz is 44 samples; the first echo lands there at half level.
	if math.Abs(out[44]-0.45) > 1e-9 {
		t.Errorf("echo = %f, expected 0.45", out[44])
	}
}

func TestFade(t *testing.T) {
	f := mono(signal(ramp(1, 1, samples(100*time.Millisecond))))
	f.fade(10*time.Millisecond, 10*time.Millisecond)

	if f[0][0] != 0 {
		t.Errorf("first sample = %f, expected 0", f[0][0])
	}
	if f[len(f)-1][1] != 0 {
		t.Errorf("last sample = %f, expected 0", f[len(f)-1][1])
	}
	if mid := f[len(f)/2][0]; mid != 1 {
		t.Errorf("middle sample = %f, expected untouched 1", mid)
	}
}

func TestFramesStreamer(t *testing.T) {
	src := mono(ramp(0, 1, 1000))
	s := newStreamer(src)

	got := drain(t, s)
	if !reflect.DeepEqual(frames(got), src) {
		t.Error("streamer did not reproduce its frames")
	}
	if s.Position() != s.Len() {
		t.Errorf("Position = %d, Len = %d", s.Position(), s.Len())
	}

	n, ok := s.Stream(make([][2]float64, 10))
	if ok || n != 0 {
		t.Errorf("exhausted stream returned (%d, %v)", n, ok)
	}

	if err := s.Seek(990); err != nil {
		t.Fatal(err)
	}
	if rest := drain(t, s); len(rest) != 10 {
		t.Errorf("after Seek(990) streamed %d samples, expected 10", len(rest))
	}
}

func TestVolumeGain(t *testing.T) {
	bank := NewBank(7)
	raw := Synthesize("ward", 7)

	half := drain(t, bank.Glyph("ward", Volume{Master: 1, Glyphs: 0.5}))
	if len(half) != len(raw) {
		t.Fatalf("streamed %d samples, expected %d", len(half), len(raw))
	}
	for i := range raw {
		if math.Abs(half[i][0]-raw[i][0]*0.5) > 1e-9 {
			t.Fatalf("sample %d = %f, expected %f", i, half[i][0], raw[i][0]*0.5)
		}
	}
}

func TestVolumeMute(t *testing.T) {
	bank := NewBank(7)

	for _, s := range []beep.Streamer{
		bank.Glyph("gale", Volume{Master: 1, Glyphs: 1, Mute: true}),
		bank.Cue(CueHit, Volume{Master: 0, Cues: 1}),
	} {
		for i, fr := range drain(t, s) {
			if fr[0] != 0 || fr[1] != 0 {
				t.Fatalf("muted sample %d = %v", i, fr)
			}
		}
	}
}

func TestBankCaches(t *testing.T) {
	bank := NewBank(3)
	if bank.Cached() != 0 {
		t.Fatalf("new bank has %d sounds", bank.Cached())
	}

	first := bank.glyph("soothe")
	second := bank.glyph("soothe")
	if &first[0] != &second[0] {
		t.Error("second lookup re-rendered the voice")
	}

	bank.Preload(trial.DefaultRoster())
	if want := len(trial.DefaultRoster()) + int(cueCount); bank.Cached() != want {
		t.Errorf("Cached() = %d, expected %d", bank.Cached(), want)
	}
}

func TestBankConcurrentAccess(t *testing.T) {
	bank := NewBank(5)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			g := trial.DefaultRoster()[i%3]
			consume(bank.Glyph(g, DefaultVolume()), int(SampleRate)*2)
			consume(bank.Cue(Cue(i)%cueCount, DefaultVolume()), int(SampleRate)*2)
		}(i)
	}
	wg.Wait()

	if bank.Cached() != 3+6 {
		t.Errorf("Cached() = %d, expected 9", bank.Cached())
	}
}
