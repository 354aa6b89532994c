package trial

// RNG is a seeded Mulberry32 generator.
//
// The algorithm is fixed: generated sequences are persisted in replays and
// compared across runs, so changing it would silently break reproducibility.
// It is not suitable for anything security sensitive.
type RNG struct {
	state uint32
}

// NewRNG creates a generator from the low 32 bits of seed.
func NewRNG(seed int64) *RNG {
	return &RNG{state: uint32(seed)}
}

// Uint32 returns the next 32-bit value of the stream.
func (r *RNG) Uint32() uint32 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return t ^ (t >> 14)
}

// Float64 returns the next value in [0, 1).
func (r *RNG) Float64() float64 {
	return float64(r.Uint32()) / 4294967296.0
}

// Intn returns a value in [0, n). Returns 0 when n <= 0.
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Float64() * float64(n))
}
