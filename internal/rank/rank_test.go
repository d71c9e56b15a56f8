// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-radar/pkg/types"
)

const testYear = 2026

func paper(title string, year, citations int) types.Paper {
	return types.NewPaper(title, "", "", nil, "arXiv", year, citations)
}

func TestScore(t *testing.T) {
	tests := []struct {
		name      string
		year      int
		citations int
		want      float64
	}{
		{"unknown everything", 0, 0, 0},
		{"current year no citations", testYear, 0, 0},
		{"one year old", testYear - 1, 0, -0.5},
		{"citations only", 0, 99, math.Log(100)},
		{"both", testYear - 4, 9, math.Log(10) - 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Score(paper("p", tt.year, tt.citations), testYear), 1e-9)
		})
	}
}

func TestScoreMonotonicInAge(t *testing.T) {
	prev := math.Inf(1)
	for year := testYear; year >= testYear-30; year-- {
		s := Score(paper("p", year, 120), testYear)
		assert.Less(t, s, prev, "year %d", year)
		prev = s
	}
}

func TestScoreMonotonicInCitations(t *testing.T) {
	prev := math.Inf(-1)
	for _, c := range []int{0, 1, 5, 49, 50, 1000, 100000} {
		s := Score(paper("p", 2020, c), testYear)
		assert.Greater(t, s, prev, "citations %d", c)
		prev = s
	}
}

func TestRankOrdersDescending(t *testing.T) {
	in := []types.Paper{
		paper("old-popular", 2000, 10000), // ln(10001) - 13 ≈ -3.79
		paper("fresh", testYear, 3),       // ln(4) ≈ 1.39
		paper("mid", 2020, 100),           // ln(101) - 3 ≈ 1.62
		paper("unknown-year", 0, 0),       // 0
	}
	out := Rank(in, testYear)
	require.Len(t, out, 4)

	titles := make([]string, len(out))
	for i, p := range out {
		titles[i] = p.Title
	}
	assert.Equal(t, []string{"mid", "fresh", "unknown-year", "old-popular"}, titles)

	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, Score(out[i-1], testYear), Score(out[i], testYear))
	}

	// Input order untouched.
	assert.Equal(t, "old-popular", in[0].Title)
}

func TestRankStableOnTies(t *testing.T) {
	in := []types.Paper{paper("a", 0, 0), paper("b", testYear, 0), paper("c", 0, 0)}
	out := Rank(in, testYear)
	assert.Equal(t, "a", out[0].Title)
	assert.Equal(t, "b", out[1].Title)
	assert.Equal(t, "c", out[2].Title)
}

func TestRankEmpty(t *testing.T) {
	out := Rank(nil, testYear)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}
