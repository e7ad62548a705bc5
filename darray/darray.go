// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Package darray implements DArray, the data structure that answers
// Select1 and Select0 queries on a binary vector. Rank queries are not
// supported — see package qrs for rank/select over a quaternary alphabet.
//
// DArray was introduced in D. Okanohara and K. Sadakane, "Practical
// entropy-compressed Rank/Select dictionary" (ALENEX 2007). The layout
// here follows that paper via Giuseppe Ottaviano's darray.hpp: positions
// are grouped into blocks of 1024 occurrences, each block classified
// dense or sparse by how far its first and last occurrence are apart.
package darray

import (
	"github.com/elliotnunn/rsidx4/bitops"
	"github.com/elliotnunn/rsidx4/bitvector"
	"github.com/elliotnunn/rsidx4/internal/rslog"
)

// DArray answers Select1 always, and Select0 only when built with
// withZeroSelect set. It is immutable after New returns and safe for
// concurrent readers.
type DArray struct {
	bv    bitvector.Reader
	ones  *inventories
	zeros *inventories // nil unless built with zero-select support
}

// New builds a DArray over bv. Pass withZeroSelect to additionally build
// the inventory Select0 needs; omitting it saves roughly the same space
// again, but Select0 then panics (spec.md §4.3's "fails precondition
// violation" contract — it is a programming error to call it, not a
// query that can legitimately miss).
func New(bv bitvector.Reader, withZeroSelect bool) *DArray {
	d := &DArray{bv: bv}
	d.ones = buildInventories(bv.Len(), bv.Ones(), true)
	if withZeroSelect {
		d.zeros = buildInventories(bv.Len(), bv.Zeros(), false)
	}
	rslog.Logger.Debug("darray.New", "len", bv.Len(), "ones", d.ones.nSet, "zeroSelect", withZeroSelect)
	return d
}

// Len returns the length of the indexed bit sequence.
func (d *DArray) Len() int { return d.bv.Len() }

// HasZeroSelect reports whether New was called with withZeroSelect, i.e.
// whether Select0 can be called without panicking.
func (d *DArray) HasZeroSelect() bool { return d.zeros != nil }

// Access returns the bit at pos, for diagnostics; it is not on the hot
// query path.
func (d *DArray) Access(pos int) (int, bool) { return d.bv.Get(pos) }

// Select1 returns the position of the (i+1)-th 1-bit, or false if there
// are fewer than i+1 of them.
func (d *DArray) Select1(i int) (int, bool) { return d.selectPolarity(i, d.ones, true) }

// Select1Unchecked is Select1 for callers that guarantee i is valid: it
// returns the position alone and panics, instead of returning false, when
// i is out of range.
func (d *DArray) Select1Unchecked(i int) int {
	pos, ok := d.Select1(i)
	if !ok {
		panic("darray: select1 index out of range")
	}
	return pos
}

// Select0 returns the position of the (i+1)-th 0-bit, or false if there
// are fewer than i+1 of them. It panics if New was not called with
// withZeroSelect: that is a precondition violation, not a query failure.
func (d *DArray) Select0(i int) (int, bool) {
	if d.zeros == nil {
		panic("darray: select0 called without zero-select support")
	}
	return d.selectPolarity(i, d.zeros, false)
}

// Select0Unchecked is Select0 for callers that guarantee i is valid: it
// returns the position alone and panics, instead of returning false, when
// i is out of range.
func (d *DArray) Select0Unchecked(i int) int {
	pos, ok := d.Select0(i)
	if !ok {
		panic("darray: select0 index out of range")
	}
	return pos
}

// selectPolarity implements spec.md §4.3 for either polarity: ones is
// true when resolving a 1-bit query, false for a 0-bit query, and only
// controls whether fetched words are inverted before popcount/select.
func (d *DArray) selectPolarity(i int, inv *inventories, ones bool) (int, bool) {
	if i < 0 || i >= inv.nSet {
		return 0, false
	}

	block := i / blockSize
	blockPos := inv.block[block]

	if blockPos < 0 {
		overflowBase := int(-blockPos - 1)
		return inv.overflow[overflowBase+(i%blockSize)], true
	}

	subblock := i / subblockSize
	start := int(blockPos) + int(inv.subblock[subblock])
	r := i % subblockSize
	if r == 0 {
		return start, true
	}

	wordIdx := start / 64
	wordShift := uint(start % 64)
	word := d.bv.GetWord(wordIdx)
	if !ones {
		word = ^word
	}
	word &= ^uint64(0) << wordShift

	for {
		c := bitvector.PopCount(word)
		if r < c {
			break
		}
		r -= c
		wordIdx++
		word = d.bv.GetWord(wordIdx)
		if !ones {
			word = ^word
		}
	}

	return wordIdx*64 + int(bitops.SelectInWord(word, uint64(r))), true
}
