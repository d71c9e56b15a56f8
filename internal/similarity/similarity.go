// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package similarity finds textually related papers within one corpus using a
// TF-IDF model built over that corpus alone. Scores are corpus-relative: the
// same pair of papers scores differently against a different collection.
package similarity

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/pdiddy/paper-radar/pkg/types"
)

// DefaultLimit is the maximum number of related papers returned.
const DefaultLimit = 5

// SelfScore is assigned to the queried document so it never ranks as its
// own neighbour.
const SelfScore = -1.0

// ErrNotFound reports an index outside the corpus.
var ErrNotFound = errors.New("paper not found")

// Model is a TF-IDF model over a fixed document collection. The score of
// document j against document i sums tf(t, j) * idf(t) over the distinct
// terms t of document i. Scores are raw weighted counts: they grow with
// document length and corpus size and are not bounded by 1.
type Model struct {
	idf    map[string]float64
	counts []map[string]int
}

// NewModel builds the model. A term's idf is 1 + ln(N/(1+df)), which stays
// positive even for terms present in every document.
func NewModel(docs []string) *Model {
	counts := make([]map[string]int, len(docs))
	df := make(map[string]int)
	for i, d := range docs {
		counts[i] = termCounts(d)
		for term := range counts[i] {
			df[term]++
		}
	}

	n := float64(len(docs))
	idf := make(map[string]float64, len(df))
	for term, f := range df {
		idf[term] = 1 + math.Log(n/float64(1+f))
	}
	return &Model{idf: idf, counts: counts}
}

// Len returns the number of documents in the model.
func (m *Model) Len() int { return len(m.counts) }

// IDF returns the inverse document frequency of term, or 0 when the term
// does not occur in the collection.
func (m *Model) IDF(term string) float64 { return m.idf[term] }

// Scores returns the score of every document against document i, with
// SelfScore at position i. Scores are not symmetric.
func (m *Model) Scores(i int) ([]float64, error) {
	if i < 0 || i >= len(m.counts) {
		return nil, fmt.Errorf("%w: index %d, corpus size %d", ErrNotFound, i, len(m.counts))
	}
	query := m.counts[i]
	scores := make([]float64, len(m.counts))
	for j, doc := range m.counts {
		if j == i {
			scores[j] = SelfScore
			continue
		}
		var sum float64
		for term := range query {
			sum += float64(doc[term]) * m.idf[term]
		}
		scores[j] = sum
	}
	return scores, nil
}

// Match is one related document.
type Match struct {
	Index int
	Score float64
}

// Nearest returns up to k documents scoring strictly above zero against
// document i, best first. Equal scores keep collection order. k <= 0 uses
// DefaultLimit.
func (m *Model) Nearest(i, k int) ([]Match, error) {
	scores, err := m.Scores(i)
	if err != nil {
		return nil, err
	}
	if k <= 0 {
		k = DefaultLimit
	}

	matches := make([]Match, 0, len(scores))
	for j, s := range scores {
		if s > 0 {
			matches = append(matches, Match{Index: j, Score: s})
		}
	}
	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Score > matches[b].Score
	})
	if len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

// Documents returns the indexed text of each paper.
func Documents(corpus []types.Paper) []string {
	docs := make([]string, len(corpus))
	for i, p := range corpus {
		docs[i] = p.Document()
	}
	return docs
}

// Related builds a model over corpus and returns the paper at index with its
// k nearest neighbours.
func Related(corpus []types.Paper, index, k int) (types.RelatedResult, error) {
	if index < 0 || index >= len(corpus) {
		return types.RelatedResult{}, fmt.Errorf("%w: index %d, corpus size %d", ErrNotFound, index, len(corpus))
	}
	return RelatedWith(NewModel(Documents(corpus)), corpus, index, k)
}

// RelatedWith is Related against a model already built over corpus.
func RelatedWith(m *Model, corpus []types.Paper, index, k int) (types.RelatedResult, error) {
	matches, err := m.Nearest(index, k)
	if err != nil {
		return types.RelatedResult{}, err
	}
	related := make([]types.RelatedPaper, len(matches))
	for i, match := range matches {
		related[i] = types.RelatedPaper{
			Paper: corpus[match.Index],
			Index: match.Index,
			Score: match.Score,
		}
	}
	return types.RelatedResult{Clicked: corpus[index], Related: related}, nil
}
