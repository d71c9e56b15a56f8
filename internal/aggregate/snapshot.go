// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"sync/atomic"

	"github.com/pdiddy/paper-radar/internal/similarity"
	"github.com/pdiddy/paper-radar/pkg/types"
)

// snapshot is one immutable corpus. gen identifies the aggregation it came
// from and survives copy-on-write replacements made by Summarize.
type snapshot struct {
	gen    uint64
	topic  string
	papers []types.Paper

	sim atomic.Pointer[similarity.Model]
}

func newSnapshot(gen uint64, topic string, papers []types.Paper) *snapshot {
	if papers == nil {
		papers = []types.Paper{}
	}
	return &snapshot{gen: gen, topic: topic, papers: papers}
}

// model returns the TF-IDF model over the snapshot, building it on first use.
// Concurrent first calls may each build one; the first stored wins.
func (s *snapshot) model() *similarity.Model {
	if m := s.sim.Load(); m != nil {
		return m
	}
	s.sim.CompareAndSwap(nil, similarity.NewModel(similarity.Documents(s.papers)))
	return s.sim.Load()
}

// withPaper returns a copy of s with papers[i] replaced. ComputedSummary is
// not indexed, so an already built model carries over.
func (s *snapshot) withPaper(i int, p types.Paper) *snapshot {
	papers := append([]types.Paper(nil), s.papers...)
	papers[i] = p
	next := &snapshot{gen: s.gen, topic: s.topic, papers: papers}
	if m := s.sim.Load(); m != nil {
		next.sim.Store(m)
	}
	return next
}
