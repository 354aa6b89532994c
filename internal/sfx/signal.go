// Package sfx synthesizes the glyph voices and feedback cues as beep
// streamers. Everything is rendered in memory; playback lives in
// sfx/speaker.
package sfx

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
)

// SampleRate is the rate every sound is synthesized at.
const SampleRate = beep.SampleRate(44100)

// signal is mono float64 samples.
type signal []float64

func samples(d time.Duration) int {
	return SampleRate.N(d)
}

// timeAt returns the time of sample i in seconds.
func timeAt(i int) float64 {
	return float64(i) / float64(SampleRate)
}

func sine(freq float64, n int) signal {
	out := make(signal, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * timeAt(i))
	}
	return out
}

func saw(freq float64, n int) signal {
	out := make(signal, n)
	phase := 0.0
	inc := freq / float64(SampleRate)
	for i := range out {
		out[i] = 2.0 * (phase - 0.5)
		phase += inc
		phase -= math.Floor(phase)
	}
	return out
}

func noise(rng *rand.Rand, n int) signal {
	out := make(signal, n)
	for i := range out {
		out[i] = rng.Float64()*2 - 1
	}
	return out
}

// ramp returns n values spaced evenly from `from` to `to`, both included.
func ramp(from, to float64, n int) signal {
	out := make(signal, n)
	if n == 1 {
		out[0] = from
		return out
	}
	for i := range out {
		out[i] = from + (to-from)*float64(i)/float64(n-1)
	}
	return out
}

// hann returns a Hann window of n samples.
func hann(n int) signal {
	out := make(signal, n)
	if n == 1 {
		out[0] = 1
		return out
	}
	for i := range out {
		out[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}
	return out
}

// scale multiplies s by k in place.
func (s signal) scale(k float64) signal {
	for i := range s {
		s[i] *= k
	}
	return s
}

// mul multiplies s by env sample by sample, in place.
func (s signal) mul(env signal) signal {
	for i := range s {
		if i < len(env) {
			s[i] *= env[i]
		}
	}
	return s
}

// add mixes o scaled by k into s, extending s if needed.
func (s signal) add(o signal, k float64) signal {
	if len(o) > len(s) {
		extended := make(signal, len(o))
		copy(extended, s)
		s = extended
	}
	for i := range o {
		s[i] += o[i] * k
	}
	return s
}

func (s signal) peak() float64 {
	m := 0.0
	for _, v := range s {
		m = math.Max(m, math.Abs(v))
	}
	return m
}

// normalize rescales s in place so its peak equals p.
func (s signal) normalize(p float64) signal {
	m := s.peak()
	if m == 0 {
		return s
	}
	return s.scale(p / m)
}

// lowpass is a one-pole RC low-pass filter.
func lowpass(s signal, cutoff float64) signal {
	out := make(signal, len(s))
	if len(s) == 0 {
		return out
	}
	rc := 1.0 / (2 * math.Pi * cutoff)
	dt := 1.0 / float64(SampleRate)
	alpha := dt / (rc + dt)

	out[0] = s[0]
	for i := 1; i < len(s); i++ {
		out[i] = out[i-1] + alpha*(s[i]-out[i-1])
	}
	return out
}

// highpass is a one-pole RC high-pass filter.
func highpass(s signal, cutoff float64) signal {
	out := make(signal, len(s))
	if len(s) == 0 {
		return out
	}
	rc := 1.0 / (2 * math.Pi * cutoff)
	dt := 1.0 / float64(SampleRate)
	alpha := rc / (rc + dt)

	out[0] = s[0]
	for i := 1; i < len(s); i++ {
		out[i] = alpha * (out[i-1] + s[i] - s[i-1])
	}
	return out
}

// comb adds a feedback echo every delayMs, giving metallic resonance.
func comb(s signal, delayMs, feedback float64) signal {
	out := append(signal(nil), s...)
	d := int(float64(SampleRate) * delayMs / 1000)
	if d <= 0 {
		return out.normalize(0.9)
	}
	for i := d; i < len(out); i++ {
		out[i] += feedback * out[i-d]
	}
	return out.normalize(0.9)
}

// bell stacks inharmonic partials over base with a short attack and a
// long decay to a quarter of full level.
func bell(n int, base float64) signal {
	partials := []float64{1.0, 2.01, 2.74, 3.76}
	amps := []float64{1.0, 0.5, 0.3, 0.2}

	out := make(signal, n)
	for k, p := range partials {
		out.add(sine(base*p, n), amps[k])
	}

	attack := samples(5 * time.Millisecond)
	decay := int(float64(n) * 0.9)
	env := make(signal, n)
	for i := range env {
		switch {
		case i < attack:
			env[i] = float64(i) / float64(attack)
		case i < attack+decay:
			env[i] = 1 - 0.75*float64(i-attack)/float64(decay)
		default:
			env[i] = 0.25
		}
	}
	return out.mul(env)
}

// frames is a stereo sound ready to stream.
type frames [][2]float64

func stereo(l, r signal) frames {
	n := max(len(l), len(r))
	out := make(frames, n)
	for i := range out {
		if i < len(l) {
			out[i][0] = l[i]
		}
		if i < len(r) {
			out[i][1] = r[i]
		}
	}
	return out
}

func mono(s signal) frames {
	return stereo(s, s)
}

func (f frames) peak() float64 {
	m := 0.0
	for _, fr := range f {
		m = math.Max(m, math.Max(math.Abs(fr[0]), math.Abs(fr[1])))
	}
	return m
}

func (f frames) normalize(p float64) frames {
	m := f.peak()
	if m == 0 {
		return f
	}
	k := p / m
	for i := range f {
		f[i][0] *= k
		f[i][1] *= k
	}
	return f
}

// reverb adds taps decaying echoes spaced baseMs apart. The right channel
// gets a slightly randomized gain per tap for width.
func (f frames) reverb(rng *rand.Rand, decay float64, taps int, baseMs float64) frames {
	out := append(frames(nil), f...)
	for t := 1; t <= taps; t++ {
		delay := int(float64(SampleRate) * baseMs * float64(t) / 1000)
		gain := math.Pow(decay, float64(t))
		width := 0.9 + 0.2*rng.Float64()
		for i := delay; i < len(out); i++ {
			out[i][0] += gain * f[i-delay][0]
			out[i][1] += gain * f[i-delay][1] * width
		}
	}
	return out.normalize(0.95)
}

// fade applies linear fade-in and fade-out in place.
func (f frames) fade(in, out time.Duration) frames {
	n := len(f)
	fi := min(samples(in), n)
	fo := min(samples(out), n)
	for i := 0; i < fi; i++ {
		k := float64(i) / float64(fi)
		f[i][0] *= k
		f[i][1] *= k
	}
	for i := 0; i < fo; i++ {
		k := float64(fo-1-i) / float64(fo)
		f[n-fo+i][0] *= k
		f[n-fo+i][1] *= k
	}
	return f
}

func (f frames) duration() time.Duration {
	return SampleRate.D(len(f))
}
