// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Package qcache decorates a qrs.RSSupportPlain with a small TinyLFU cache
// over its rank queries. Wavelet-tree-style callers that repeatedly probe
// the same handful of (symbol, position) pairs while descending a tree
// pay for the intra-block tail scan once per pair instead of once per call.
package qcache

import (
	"hash/maphash"
	"sync"

	"github.com/dgryski/go-tinylfu"

	"github.com/elliotnunn/rsidx4/qrs"
	"github.com/elliotnunn/rsidx4/qvector"
)

// Cached wraps an *qrs.RSSupportPlain, memoizing Rank results. It is safe
// for concurrent use by multiple goroutines.
type Cached struct {
	rs  *qrs.RSSupportPlain
	qv  qvector.Reader
	mu  sync.Mutex
	hit *tinylfu.T[rankKey, int]
}

type rankKey struct {
	symbol byte
	pos    int
}

var seed = maphash.MakeSeed()

func hasher(k rankKey) uint64 {
	return maphash.Comparable(seed, k)
}

// New wraps rs, caching up to capacity distinct (symbol, position) rank
// results. qv must be the same container rs was built over.
func New(rs *qrs.RSSupportPlain, qv qvector.Reader, capacity int) *Cached {
	if capacity <= 0 {
		panic("qcache: capacity must be positive")
	}
	return &Cached{
		rs:  rs,
		qv:  qv,
		hit: tinylfu.New[rankKey, int](capacity, capacity*10, hasher),
	}
}

// Rank returns rs.Rank(qv, symbol, i), serving from cache when possible.
func (c *Cached) Rank(symbol byte, i int) int {
	key := rankKey{symbol, i}

	c.mu.Lock()
	if v, ok := c.hit.Get(key); ok {
		c.mu.Unlock()
		return v
	}
	c.mu.Unlock()

	v := c.rs.Rank(c.qv, symbol, i)

	c.mu.Lock()
	c.hit.Add(key, v)
	c.mu.Unlock()

	return v
}

// Select delegates straight to the wrapped index: select queries drive a
// single pass per wavelet-tree level rather than the repeated backtracking
// that makes rank worth memoizing, so there is nothing to cache here.
func (c *Cached) Select(symbol byte, i int) (int, bool) {
	return c.rs.Select(c.qv, symbol, i)
}

// NOccs returns the number of occurrences of symbol in the whole sequence.
func (c *Cached) NOccs(symbol byte) int { return c.rs.NOccs(symbol) }

// Len returns the length of the indexed sequence.
func (c *Cached) Len() int { return c.rs.Len() }
