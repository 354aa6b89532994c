package trial

import "testing"

func TestRNGKnownValues(t *testing.T) {
	// Reference Mulberry32 output for seed 0.
	expected := []uint32{1144304738, 1416247, 958946056}

	rng := NewRNG(0)
	for i, want := range expected {
		if got := rng.Uint32(); got != want {
			t.Errorf("Uint32() #%d = %d, expected %d", i, got, want)
		}
	}
}

func TestRNGDeterminism(t *testing.T) {
	a := NewRNG(987654)
	b := NewRNG(987654)

	for i := 0; i < 1000; i++ {
		va, vb := a.Float64(), b.Float64()
		if va != vb {
			t.Fatalf("value %d differs: %v vs %v", i, va, vb)
		}
	}
}

func TestRNGRange(t *testing.T) {
	rng := NewRNG(42)
	for i := 0; i < 10000; i++ {
		v := rng.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("Float64() = %v, expected within [0, 1)", v)
		}
	}
}

func TestRNGDifferentSeeds(t *testing.T) {
	a := NewRNG(1)
	b := NewRNG(2)

	same := 0
	for i := 0; i < 100; i++ {
		if a.Uint32() == b.Uint32() {
			same++
		}
	}
	if same > 1 {
		t.Errorf("seeds 1 and 2 produced %d identical values out of 100", same)
	}
}

func TestRNGIntn(t *testing.T) {
	rng := NewRNG(7)
	counts := make([]int, 7)
	for i := 0; i < 7000; i++ {
		v := rng.Intn(7)
		if v < 0 || v >= 7 {
			t.Fatalf("Intn(7) = %d, out of range", v)
		}
		counts[v]++
	}

	// Loose uniformity check: every bucket within 30% of the mean.
	for i, c := range counts {
		if c < 700 || c > 1300 {
			t.Errorf("bucket %d got %d draws, expected roughly 1000", i, c)
		}
	}

	if got := rng.Intn(0); got != 0 {
		t.Errorf("Intn(0) = %d, expected 0", got)
	}
}
