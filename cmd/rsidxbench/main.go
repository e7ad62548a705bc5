// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package main

import (
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/elliotnunn/rsidx4/bitvector"
	"github.com/elliotnunn/rsidx4/darray"
	"github.com/elliotnunn/rsidx4/fingerprint"
	"github.com/elliotnunn/rsidx4/qrs"
	"github.com/elliotnunn/rsidx4/qvector"
)

func main() {
	n := 1_000_000
	if len(os.Args) > 1 {
		fmt.Sscanf(os.Args[1], "%d", &n)
	}

	rng := rand.New(rand.NewPCG(1, 2))

	bits := make([]bool, n)
	for i := range bits {
		bits[i] = rng.IntN(4) == 0
	}
	bv := bitvector.New(n, func(i int) bool { return bits[i] })
	da := darray.New(bv, true)
	ones := 0
	for _, b := range bits {
		if b {
			ones++
		}
	}
	fmt.Printf("darray: n=%d ones=%d fingerprint=%#016x\n", n, ones, fingerprint.OfDArray(da))

	syms := make([]byte, n)
	for i := range syms {
		syms[i] = byte(rng.IntN(4))
	}
	qv := qvector.New(n, func(i int) byte { return syms[i] })
	rs := qrs.New(qv, 256)
	fmt.Printf("qrs: n=%d occs=%v fingerprint=%#016x\n", n, [4]int{
		rs.NOccs(0), rs.NOccs(1), rs.NOccs(2), rs.NOccs(3),
	}, fingerprint.OfQRS(rs))

	var checks, mismatches int
	for trial := 0; trial < 1000; trial++ {
		symbol := byte(rng.IntN(4))
		i := rng.IntN(n) + 1
		if i > rs.NOccs(symbol) {
			continue
		}
		pos, ok := rs.Select(qv, symbol, i)
		checks++
		if !ok || qv.GetUnchecked(pos) != symbol || rs.Rank(qv, symbol, pos+1) != i {
			mismatches++
		}
	}
	fmt.Printf("qrs: %d self-checks, %d mismatches\n", checks, mismatches)

	if mismatches > 0 {
		os.Exit(1)
	}
}
