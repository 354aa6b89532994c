package sfx

import (
	"math/rand"
	"sync"

	"github.com/gopxl/beep"

	"github.com/obonelli/the-witcher-trial/internal/trial"
)

// Bank renders sounds on first use and keeps them. It is safe for
// concurrent use.
type Bank struct {
	seed int64

	mu     sync.RWMutex
	glyphs map[trial.Glyph]frames
	cues   map[Cue]frames
}

// NewBank creates an empty bank. seed fixes the noise in every sound.
func NewBank(seed int64) *Bank {
	return &Bank{
		seed:   seed,
		glyphs: make(map[trial.Glyph]frames),
		cues:   make(map[Cue]frames),
	}
}

// Preload renders the voices of roster and every cue up front.
func (b *Bank) Preload(roster []trial.Glyph) {
	for _, g := range roster {
		b.glyph(g)
	}
	for c := Cue(0); c < cueCount; c++ {
		b.cue(c)
	}
}

// Glyph returns a fresh streamer for g at volume v.
func (b *Bank) Glyph(g trial.Glyph, v Volume) beep.Streamer {
	return newVolume(newStreamer(b.glyph(g)), v.glyphGain())
}

// Cue returns a fresh streamer for c at volume v.
func (b *Bank) Cue(c Cue, v Volume) beep.Streamer {
	return newVolume(newStreamer(b.cue(c)), v.cueGain())
}

// Cached reports how many sounds have been rendered.
func (b *Bank) Cached() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.glyphs) + len(b.cues)
}

func (b *Bank) glyph(g trial.Glyph) frames {
	b.mu.RLock()
	f, ok := b.glyphs[g]
	b.mu.RUnlock()
	if ok {
		return f
	}

	f = Synthesize(g, b.seed)

	b.mu.Lock()
	defer b.mu.Unlock()
	if cached, ok := b.glyphs[g]; ok {
		return cached
	}
	b.glyphs[g] = f
	return f
}

func (b *Bank) cue(c Cue) frames {
	b.mu.RLock()
	f, ok := b.cues[c]
	b.mu.RUnlock()
	if ok {
		return f
	}

	f = synthesizeCue(c, rand.New(rand.NewSource(b.seed+int64(c))))

	b.mu.Lock()
	defer b.mu.Unlock()
	if cached, ok := b.cues[c]; ok {
		return cached
	}
	b.cues[c] = f
	return f
}
