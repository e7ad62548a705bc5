// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Package qrs implements RSSupportPlain, a rank/select index over a
// sequence drawn from a 4-symbol alphabet {0,1,2,3}. It is the quaternary
// counterpart to package darray's binary select-only index, built as a
// hierarchy of superblocks (each 8 blocks, each BlockSize symbols) holding
// packed 12-bit/44-bit counters, plus a sampled select-acceleration table
// per symbol.
package qrs

import (
	"math"
	"unsafe"

	"github.com/elliotnunn/rsidx4/internal/rslog"
	"github.com/elliotnunn/rsidx4/qvector"
)

const selectNumSamples = 1 << 13

// RSSupportPlain is immutable after New returns and safe for concurrent
// readers. The zero value is not usable; construct with New.
type RSSupportPlain struct {
	blockSize     int
	superblocks   []superblock
	occs          [4]int
	selectSamples [4][]uint32
	n             int
}

// New builds an RSSupportPlain over qv. blockSize must be 256 or 512:
// 256 costs 12.5% space overhead, 512 halves that to 6.25% at the cost of
// slightly slower queries (spec.md §3.2). qv.Len() must be below 2^43.
func New(qv qvector.Reader, blockSize int) *RSSupportPlain {
	if blockSize != 256 && blockSize != 512 {
		panic("qrs: block size must be 256 or 512")
	}
	n := qv.Len()
	if n >= 1<<43 {
		panic("qrs: sequence length must be below 2^43")
	}

	superblockSize := blockSize * blocksInSuperblock
	nSuperblocks := (n + superblockSize) / superblockSize

	rs := &RSSupportPlain{blockSize: blockSize, n: n}
	rs.superblocks = newAlignedSuperblocks(nSuperblocks)

	var superblockCounters, blockCounters [4]int
	sbCount := 0

	for i := 0; i <= n; i++ {
		if i%superblockSize == 0 {
			rs.superblocks[sbCount] = newSuperblockRecord(superblockCounters)
			sbCount++
			blockCounters = [4]int{}
		}
		if i%blockSize == 0 {
			blockID := (i / blockSize) % blocksInSuperblock
			rs.superblocks[sbCount-1].setBlockCounters(blockID, blockCounters)
		}
		if i < n {
			symbol := qv.GetUnchecked(i)
			if rs.occs[symbol]%selectNumSamples == 0 {
				rs.selectSamples[symbol] = append(rs.selectSamples[symbol], uint32(sbCount-1))
			}
			superblockCounters[symbol]++
			blockCounters[symbol]++
			rs.occs[symbol]++
		}
	}

	// Sentinel block write: guarantees blockPredecessor always terminates
	// without reading past the last real block.
	nextBlockID := (n/blockSize)%blocksInSuperblock + 1
	if nextBlockID < blocksInSuperblock {
		rs.superblocks[sbCount-1].setBlockCounters(nextBlockID, blockCounters)
	}

	for s := 0; s < 4; s++ {
		if len(rs.selectSamples[s]) == 0 {
			rs.selectSamples[s] = append(rs.selectSamples[s], 0)
		}
		rs.selectSamples[s] = append(rs.selectSamples[s], uint32(len(rs.superblocks)-1))
	}

	rslog.Logger.Debug("qrs.New", "len", n, "blockSize", blockSize, "superblocks", len(rs.superblocks), "occs", rs.occs)

	return rs
}

// Len returns the length of the indexed sequence.
func (rs *RSSupportPlain) Len() int { return rs.n }

// BlockSize returns the block size New was called with.
func (rs *RSSupportPlain) BlockSize() int { return rs.blockSize }

// NOccs returns the number of occurrences of symbol in the whole sequence.
func (rs *RSSupportPlain) NOccs(symbol byte) int {
	if symbol > 3 {
		panic("qrs: symbol out of range")
	}
	return rs.occs[symbol]
}

// RankBlock returns the number of occurrences of symbol up to the start
// of the block containing position i (spec.md §4.6's in-scope contract;
// the intra-block tail is delegated to qvector.CountRange, composed by
// Rank below).
func (rs *RSSupportPlain) RankBlock(symbol byte, i int) int {
	if symbol > 3 {
		panic("qrs: symbol out of range")
	}
	superblockIdx := i / (rs.blockSize * blocksInSuperblock)
	blockIdx := (i / rs.blockSize) % blocksInSuperblock
	sb := &rs.superblocks[superblockIdx]
	return sb.getSuperblockCounter(symbol) + sb.getBlockCounter(symbol, blockIdx)
}

// Rank returns the number of occurrences of symbol in [0, i). It is the
// full rank query spec.md §6.3 describes composing RankBlock with a
// container-side tail scan.
func (rs *RSSupportPlain) Rank(qv qvector.Reader, symbol byte, i int) int {
	if symbol > 3 {
		panic("qrs: symbol out of range")
	}
	if i < 0 || i > rs.n {
		panic("qrs: position out of range")
	}
	blockStart := (i / rs.blockSize) * rs.blockSize
	return rs.RankBlock(symbol, i) + qvector.CountRange(qv, symbol, blockStart, i)
}

// SelectBlock returns (blockStart, rank): the (i)-th (1-indexed)
// occurrence of symbol lies in the block starting at blockStart, and
// rank counts occurrences of symbol strictly before blockStart.
// Precondition: 1 <= i <= NOccs(symbol).
//
// Implements spec.md §4.7's two-phase bounded search: gallop across
// superblocks by sqrt(range)+1, then back up and scan linearly, then
// resolve the block within the target superblock via blockPredecessor.
func (rs *RSSupportPlain) SelectBlock(symbol byte, i int) (int, int) {
	if symbol > 3 {
		panic("qrs: symbol out of range")
	}
	if i < 1 || i > rs.occs[symbol] {
		panic("qrs: select index out of range")
	}

	samples := rs.selectSamples[symbol]
	sampledI := (i - 1) / selectNumSamples
	lo := int(samples[sampledI])
	hi := int(samples[sampledI+1]) + 1
	step := int(math.Sqrt(float64(hi-lo))) + 1

	for lo < hi && rs.superblocks[lo].getSuperblockCounter(symbol) < i {
		lo += step
	}
	lo -= step

	for lo < hi && rs.superblocks[lo].getSuperblockCounter(symbol) < i {
		lo++
	}
	lo--

	r := rs.superblocks[lo].getSuperblockCounter(symbol)
	blockID, blockRank := rs.superblocks[lo].blockPredecessor(symbol, i-r)

	position := lo*rs.blockSize*blocksInSuperblock + blockID*rs.blockSize
	return position, r + blockRank
}

// Select returns the position of the i-th (1-indexed) occurrence of
// symbol, or false if there are fewer than i. It composes SelectBlock
// with qvector.SelectInRange to resolve the exact position inside the
// target block (spec.md §4.7's "full select, out of scope" tail).
func (rs *RSSupportPlain) Select(qv qvector.Reader, symbol byte, i int) (int, bool) {
	if symbol > 3 {
		panic("qrs: symbol out of range")
	}
	if i < 1 || i > rs.occs[symbol] {
		return 0, false
	}
	blockStart, rank := rs.SelectBlock(symbol, i)
	blockEnd := blockStart + rs.blockSize
	if blockEnd > rs.n {
		blockEnd = rs.n
	}
	return qvector.SelectInRange(qv, symbol, blockStart, blockEnd, i-rank-1)
}

// Prefetch issues a hint that the superblock holding position i will
// soon be read. Correctness never depends on it; a no-op implementation
// is conforming (spec.md §4.8). Go has no portable prefetch intrinsic, so
// this just touches the cache line via an ordinary load.
func (rs *RSSupportPlain) Prefetch(i int) {
	sbi := i / (rs.blockSize * blocksInSuperblock)
	if sbi < 0 || sbi >= len(rs.superblocks) {
		return
	}
	touchCacheLine(&rs.superblocks[sbi])
}

//go:noinline
func touchCacheLine(sb *superblock) {
	_ = *(*byte)(unsafe.Pointer(sb))
}
