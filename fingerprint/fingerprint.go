// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Package fingerprint computes deterministic digests of the packed index
// structures in this module, for self-check and cache-key purposes: two
// indexes built from the same input should fingerprint identically, and
// callers that persist an index to disk can use the digest to detect
// accidental reuse against the wrong container.
package fingerprint

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/elliotnunn/rsidx4/bitvector"
	"github.com/elliotnunn/rsidx4/darray"
	"github.com/elliotnunn/rsidx4/qrs"
)

// OfBits hashes a bit vector's packed word stream and length.
func OfBits(bv bitvector.Reader) uint64 {
	var h xxhash.Digest
	binary.Write(&h, binary.BigEndian, uint64(bv.Len()))
	nWords := (bv.Len() + 63) / 64
	for w := 0; w < nWords; w++ {
		binary.Write(&h, binary.BigEndian, bv.GetWord(w))
	}
	return h.Sum64()
}

// OfDArray hashes a DArray's selectable positions, both polarities when
// present. Two DArrays fingerprint identically iff they answer every
// Select1/Select0 query identically.
func OfDArray(d *darray.DArray) uint64 {
	var h xxhash.Digest
	binary.Write(&h, binary.BigEndian, uint64(d.Len()))
	for i := 0; ; i++ {
		pos, ok := d.Select1(i)
		if !ok {
			break
		}
		binary.Write(&h, binary.BigEndian, uint64(pos))
	}
	h.WriteString("|")
	if d.HasZeroSelect() {
		for i := 0; ; i++ {
			pos, ok := d.Select0(i)
			if !ok {
				break
			}
			binary.Write(&h, binary.BigEndian, uint64(pos))
		}
	}
	return h.Sum64()
}

// OfQRS hashes an RSSupportPlain's rank-block counters at every block
// boundary, for every symbol. Two indexes fingerprint identically iff
// they answer every RankBlock query identically.
func OfQRS(rs *qrs.RSSupportPlain) uint64 {
	var h xxhash.Digest
	binary.Write(&h, binary.BigEndian, uint64(rs.Len()))
	blockSize := rs.BlockSize()
	for s := byte(0); s < 4; s++ {
		binary.Write(&h, binary.BigEndian, uint64(rs.NOccs(s)))
		for pos := 0; pos <= rs.Len(); pos += blockSize {
			binary.Write(&h, binary.BigEndian, uint64(rs.RankBlock(s, pos)))
		}
	}
	return h.Sum64()
}
