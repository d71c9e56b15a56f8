// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache memoizes aggregation results per topic for the process
// lifetime. Keys are the exact topic text; there is no TTL.
package cache

import (
	"maps"
	"slices"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/pdiddy/paper-radar/pkg/types"
)

// Entry is one cached aggregation. Corpus is the enriched, unranked list in
// adapter-priority order. Ranked is the trending-ordered response.
type Entry struct {
	Corpus       []types.Paper
	Ranked       []types.Paper
	SourceCounts map[string]int
	SourceErrors map[string]string
}

// clone deep-copies e so the stored entry never shares memory with callers.
func (e Entry) clone() Entry {
	return Entry{
		Corpus:       clonePapers(e.Corpus),
		Ranked:       clonePapers(e.Ranked),
		SourceCounts: maps.Clone(e.SourceCounts),
		SourceErrors: maps.Clone(e.SourceErrors),
	}
}

func clonePapers(papers []types.Paper) []types.Paper {
	out := slices.Clone(papers)
	for i := range out {
		out[i].Authors = slices.Clone(out[i].Authors)
		out[i].Tags = slices.Clone(out[i].Tags)
	}
	return out
}

// TopicCache is safe for concurrent use.
//
// A positive capacity evicts the least recently used topic once full.
// Capacity <= 0 keeps every topic until the process exits, so memory grows
// with the number of distinct topics searched.
type TopicCache struct {
	bounded *lru.Cache[string, Entry]

	mu        sync.RWMutex
	unbounded map[string]Entry
}

// New returns a TopicCache holding at most capacity topics.
func New(capacity int) *TopicCache {
	if capacity <= 0 {
		return &TopicCache{unbounded: make(map[string]Entry)}
	}
	c, err := lru.New[string, Entry](capacity)
	if err != nil {
		// Only reachable with a non-positive size, handled above.
		panic(err)
	}
	return &TopicCache{bounded: c}
}

// Get returns a copy of the entry stored for topic. Mutating it leaves the
// cache unchanged.
func (c *TopicCache) Get(topic string) (Entry, bool) {
	var (
		e  Entry
		ok bool
	)
	if c.bounded != nil {
		e, ok = c.bounded.Get(topic)
	} else {
		c.mu.RLock()
		e, ok = c.unbounded[topic]
		c.mu.RUnlock()
	}
	if !ok {
		return Entry{}, false
	}
	return e.clone(), true
}

// Put stores a copy of e under topic, replacing any previous entry.
func (c *TopicCache) Put(topic string, e Entry) {
	e = e.clone()
	if c.bounded != nil {
		c.bounded.Add(topic, e)
		return
	}
	c.mu.Lock()
	c.unbounded[topic] = e
	c.mu.Unlock()
}

// Len reports the number of cached topics.
func (c *TopicCache) Len() int {
	if c.bounded != nil {
		return c.bounded.Len()
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.unbounded)
}
