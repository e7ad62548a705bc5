// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package darray

import "github.com/elliotnunn/rsidx4/internal/rslog"

const (
	blockSize              = 1024
	subblockSize           = 32
	maxInBlockDistance     = 1 << 16
	sparseSentinel16 uint16 = 0xFFFF
)

// inventories is the per-polarity block/subblock/overflow directory
// described by spec.md §3.1. The ones-inventory and the zeros-inventory
// differ only in which position stream built them; the layout and query
// logic are identical either way.
type inventories struct {
	nSet     int
	block    []int64
	subblock []uint16
	overflow []int
}

// buildInventories scans bv's P-positions (P = ones if onesPolarity, else
// zeros) and flushes a block every blockSize occurrences, classifying each
// as dense or sparse per spec.md §4.2.
func buildInventories(n int, positions func(yield func(int) bool), onesPolarity bool) *inventories {
	inv := &inventories{}
	buf := make([]int, 0, blockSize)

	flush := func() {
		if len(buf) == 0 {
			return
		}
		first, last := buf[0], buf[len(buf)-1]
		span := last - first
		if span < maxInBlockDistance {
			inv.block = append(inv.block, int64(first))
			for i := 0; i < len(buf); i += subblockSize {
				inv.subblock = append(inv.subblock, uint16(buf[i]-first))
			}
			rslog.Logger.Debug("darray: dense block", "ones", onesPolarity, "first", first, "span", span, "count", len(buf))
		} else {
			inv.block = append(inv.block, -(int64(len(inv.overflow)) + 1))
			inv.overflow = append(inv.overflow, buf...)
			for i := 0; i < len(buf); i += subblockSize {
				inv.subblock = append(inv.subblock, sparseSentinel16)
			}
			rslog.Logger.Debug("darray: sparse block", "ones", onesPolarity, "first", first, "span", span, "count", len(buf))
		}
	}

	positions(func(pos int) bool {
		buf = append(buf, pos)
		inv.nSet++
		if len(buf) == blockSize {
			flush()
			buf = buf[:0]
		}
		return true
	})
	flush()

	return inv
}
