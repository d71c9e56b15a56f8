// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// RankedResult is the topic response: the aggregated, enriched papers in
// trending order.
type RankedResult struct {
	// Topic is the query text exactly as received.
	Topic string `json:"topic" yaml:"topic"`

	// Papers is the ranked result set, ordered by descending trending score.
	Papers []Paper `json:"papers" yaml:"papers"`

	// Cached reports whether the result was served from the topic cache.
	Cached bool `json:"cached" yaml:"cached"`

	// SourceCounts maps adapter name to the number of papers it contributed.
	SourceCounts map[string]int `json:"source_counts,omitempty" yaml:"source_counts,omitempty"`

	// SourceErrors maps adapter name to the absorbed failure message.
	SourceErrors map[string]string `json:"source_errors,omitempty" yaml:"source_errors,omitempty"`

	// Duration is the wall time of the aggregation (zero on a cache hit).
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// RelatedPaper pairs a corpus paper with its similarity score against the
// clicked paper.
type RelatedPaper struct {
	Paper Paper `json:"paper" yaml:"paper"`

	// Index is the paper's position in the corpus.
	Index int `json:"index" yaml:"index"`

	// Score sums the peer's term frequency times idf over the clicked
	// paper's terms. It depends on corpus size and is not bounded by 1.
	Score float64 `json:"score" yaml:"score"`
}

// RelatedResult is the response to a related-papers lookup.
type RelatedResult struct {
	Clicked Paper          `json:"clicked" yaml:"clicked"`
	Related []RelatedPaper `json:"related" yaml:"related"`
}

// Papers returns the related papers without scores, in rank order.
func (r RelatedResult) Papers() []Paper {
	out := make([]Paper, len(r.Related))
	for i, rp := range r.Related {
		out[i] = rp.Paper
	}
	return out
}
