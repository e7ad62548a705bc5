// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package bitops

import (
	"math/bits"
	"math/rand/v2"
	"testing"
)

func TestSelectInWordAgainstNaive(t *testing.T) {
	naive := func(w uint64, k uint64) uint64 {
		for p := uint64(0); p < 64; p++ {
			if w&(1<<p) != 0 {
				if k == 0 {
					return p
				}
				k--
			}
		}
		panic("naive: k out of range")
	}

	rng := rand.New(rand.NewPCG(100, 200))
	for trial := 0; trial < 2000; trial++ {
		w := rng.Uint64()
		n := bits.OnesCount64(w)
		if n == 0 {
			continue
		}
		k := uint64(rng.IntN(n))
		if got, want := SelectInWord(w, k), naive(w, k); got != want {
			t.Fatalf("SelectInWord(%#x,%d) = %d, want %d", w, k, got, want)
		}
	}
}

func TestSelectInWordEdgeCases(t *testing.T) {
	cases := []struct {
		w    uint64
		k    uint64
		want uint64
	}{
		{1, 0, 0},
		{1 << 63, 0, 63},
		{^uint64(0), 0, 0},
		{^uint64(0), 63, 63},
		{0xFF00, 0, 8},
		{0xFF00, 7, 15},
	}
	for _, c := range cases {
		if got := SelectInWord(c.w, c.k); got != c.want {
			t.Errorf("SelectInWord(%#x,%d) = %d, want %d", c.w, c.k, got, c.want)
		}
	}
}

func TestSelectInWordPanicsOnOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic when k >= popcount(w)")
		}
	}()
	SelectInWord(0b101, 2)
}
