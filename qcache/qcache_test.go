// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package qcache

import (
	"math/rand/v2"
	"testing"

	"github.com/elliotnunn/rsidx4/qrs"
	"github.com/elliotnunn/rsidx4/qvector"
)

func TestRankMatchesUncached(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	n := 3000
	syms := make([]byte, n)
	for i := range syms {
		syms[i] = byte(rng.IntN(4))
	}
	qv := qvector.New(n, func(i int) byte { return syms[i] })
	rs := qrs.New(qv, 256)
	c := New(rs, qv, 64)

	for trial := 0; trial < 500; trial++ {
		s := byte(rng.IntN(4))
		i := rng.IntN(n + 1)
		want := rs.Rank(qv, s, i)
		if got := c.Rank(s, i); got != want {
			t.Fatalf("Rank(%d,%d) = %d, want %d", s, i, got, want)
		}
		// repeat to exercise the cache-hit path
		if got := c.Rank(s, i); got != want {
			t.Fatalf("cached Rank(%d,%d) = %d, want %d", s, i, got, want)
		}
	}
}

func TestSelectAndAccessorsDelegate(t *testing.T) {
	syms := []byte{0, 1, 2, 3, 0, 1, 2, 3}
	qv := qvector.New(len(syms), func(i int) byte { return syms[i] })
	rs := qrs.New(qv, 256)
	c := New(rs, qv, 8)

	if c.Len() != rs.Len() {
		t.Fatalf("Len() = %d, want %d", c.Len(), rs.Len())
	}
	for s := byte(0); s < 4; s++ {
		if c.NOccs(s) != rs.NOccs(s) {
			t.Fatalf("NOccs(%d) mismatch", s)
		}
		got, ok := c.Select(s, 1)
		want, wantOK := rs.Select(qv, s, 1)
		if ok != wantOK || got != want {
			t.Fatalf("Select(%d,1) = (%d,%v), want (%d,%v)", s, got, ok, want, wantOK)
		}
	}
}

func TestNewPanicsOnBadCapacity(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for non-positive capacity")
		}
	}()
	qv := qvector.New(1, func(i int) byte { return 0 })
	rs := qrs.New(qv, 256)
	New(rs, qv, 0)
}
