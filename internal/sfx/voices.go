package sfx

import (
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"github.com/obonelli/the-witcher-trial/internal/trial"
)

// voice renders one glyph. rng drives noise and reverb spread.
type voice struct {
	length time.Duration
	render func(rng *rand.Rand, n int) frames
}

var voices = map[trial.Glyph]voice{
	"gale":   {900 * time.Millisecond, renderGale},
	"ember":  {900 * time.Millisecond, renderEmber},
	"ward":   {900 * time.Millisecond, renderWard},
	"snare":  {600 * time.Millisecond, renderSnare},
	"soothe": {1100 * time.Millisecond, renderSoothe},
	"void":   {1000 * time.Millisecond, renderVoid},
	"aegis":  {1100 * time.Millisecond, renderAegis},
}

// fallbackLength is the bell length for glyphs without a designed voice.
const fallbackLength = 800 * time.Millisecond

// Synthesize renders the voice of g. The same glyph and seed always give
// the same samples. Glyphs without a designed voice get a bell pitched
// from their name.
func Synthesize(g trial.Glyph, seed int64) [][2]float64 {
	rng := rand.New(rand.NewSource(seed ^ int64(glyphHash(g))))
	v, ok := voices[g]
	if !ok {
		return renderFallback(g, rng, samples(fallbackLength))
	}
	return v.render(rng, samples(v.length))
}

// Length reports how long the voice of g plays.
func Length(g trial.Glyph) time.Duration {
	if v, ok := voices[g]; ok {
		return v.length
	}
	return fallbackLength
}

func glyphHash(g trial.Glyph) uint32 {
	h := fnv.New32a()
	h.Write([]byte(g))
	return h.Sum32()
}

// Wind: filtered noise breathing with two slow LFOs.
func renderGale(rng *rand.Rand, n int) frames {
	body := lowpass(noise(rng, n), 1200)
	for i := range body {
		t := timeAt(i)
		mod := 0.6*math.Sin(2*math.Pi*0.7*t) + 0.4*math.Sin(2*math.Pi*1.3*t)
		body[i] *= 0.4 + 0.6*mod
	}
	body = highpass(body, 80).normalize(0.9)
	return mono(body).
		reverb(rng, 0.4, 4, 45).
		fade(30*time.Millisecond, 120*time.Millisecond)
}

// Fire: low rumble, scattered crackles and a thin fizz on top.
func renderEmber(rng *rand.Rand, n int) frames {
	rumble := sine(65, n).scale(0.3).add(sine(130, n), 0.2)

	crackleLen := samples(15 * time.Millisecond)
	window := hann(crackleLen)
	for k := 0; k < 18; k++ {
		at := rng.Intn(max(n-crackleLen, 1))
		burst := noise(rng, crackleLen).mul(window)
		gain := 0.3 + 0.5*rng.Float64()
		for i, v := range burst {
			if at+i < n {
				rumble[at+i] += v * gain
			}
		}
	}

	fizz := highpass(noise(rng, n), 3000).scale(0.05)
	body := rumble.add(fizz, 1).normalize(0.9)
	return mono(body).
		reverb(rng, 0.35, 3, 30).
		fade(10*time.Millisecond, 150*time.Millisecond)
}

// Shield: a bell ringing through a short comb.
func renderWard(rng *rand.Rand, n int) frames {
	body := comb(bell(n, 520), 14.5, 0.4)
	return mono(body).
		reverb(rng, 0.45, 4, 55).
		fade(5*time.Millisecond, 200*time.Millisecond)
}

// Trap: a metallic clank.
func renderSnare(rng *rand.Rand, n int) frames {
	clankLen := min(samples(40*time.Millisecond), n)
	clank := noise(rng, clankLen).mul(hann(clankLen))
	body := make(signal, n)
	body.add(clank, 1)
	body = comb(highpass(body, 1200), 11, 0.5)
	return mono(body).
		reverb(rng, 0.3, 3, 25).
		fade(2*time.Millisecond, 180*time.Millisecond)
}

// Calm: a high bell with a faint shimmer.
func renderSoothe(rng *rand.Rand, n int) frames {
	shimmer := highpass(noise(rng, n), 6000).scale(0.04)
	body := bell(n, 740).add(shimmer, 1).normalize(0.85)
	return mono(body).
		reverb(rng, 0.5, 5, 60).
		fade(5*time.Millisecond, 250*time.Millisecond)
}

// Abyss: sub drone swelling in under dark texture.
func renderVoid(rng *rand.Rand, n int) frames {
	drone := sine(40, n).scale(0.7).add(sine(80, n), 0.4)
	swell := ramp(0, 1, n)
	for i := range swell {
		swell[i] = math.Pow(swell[i], 2.2)
	}
	drone.mul(swell)
	texture := lowpass(noise(rng, n), 1200).scale(0.08)
	body := drone.add(texture, 1).normalize(0.9)
	return mono(body).
		reverb(rng, 0.4, 4, 70).
		fade(20*time.Millisecond, 200*time.Millisecond)
}

// Light: a rising tone into a bright bell with sparkle.
func renderAegis(rng *rand.Rand, n int) frames {
	riser := sine(320, n).mul(ramp(0.2, 1, n)).scale(0.3)
	body := bell(n, 880).add(riser, 1)
	sparkle := highpass(noise(rng, n), 7000).scale(0.03)
	body = body.add(sparkle, 1).normalize(0.9)
	return mono(body).
		reverb(rng, 0.45, 5, 50).
		fade(5*time.Millisecond, 220*time.Millisecond)
}

func renderFallback(g trial.Glyph, rng *rand.Rand, n int) frames {
	// Two octaves above 220 Hz, spread by name.
	freq := 220 * math.Pow(2, float64(glyphHash(g)%24)/12)
	body := bell(n, freq).normalize(0.85)
	return mono(body).
		reverb(rng, 0.4, 3, 40).
		fade(5*time.Millisecond, 150*time.Millisecond)
}
