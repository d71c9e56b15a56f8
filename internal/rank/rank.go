// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank orders papers by a recency-weighted citation score.
package rank

import (
	"math"
	"sort"

	"github.com/pdiddy/paper-radar/pkg/types"
)

// AgePenalty is the score lost per year of age.
const AgePenalty = 0.5

// Score returns ln(citations+1) minus AgePenalty per year of age. An unknown
// year (0) adds no recency term.
func Score(p types.Paper, currentYear int) float64 {
	score := math.Log(float64(p.Citations) + 1)
	if p.Year > 0 {
		score += float64(currentYear-p.Year) * -AgePenalty
	}
	return score
}

// Rank returns a new slice ordered by descending Score. Ties keep their
// input order.
func Rank(papers []types.Paper, currentYear int) []types.Paper {
	scores := make([]float64, len(papers))
	idx := make([]int, len(papers))
	for i, p := range papers {
		scores[i] = Score(p, currentYear)
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] > scores[idx[b]]
	})

	out := make([]types.Paper, len(papers))
	for i, j := range idx {
		out[i] = papers[j]
	}
	return out
}
