// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enrich canonicalizes provider source labels and derives badges
// from paper attributes. Everything here is a pure function of its inputs.
package enrich

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/paper-radar/pkg/types"
)

// Canonical source labels.
const (
	LabelArxiv    = "arXiv"
	LabelOpenAlex = "OpenAlex"
	LabelIEEE     = "IEEE"
	LabelSpringer = "Springer"
	LabelElsevier = "Elsevier"
	LabelACM      = "ACM"
	LabelUnknown  = "Unknown"
)

// Badge values.
const (
	BadgeHighlyCited = "Highly Cited"
	BadgeOpenAccess  = "Open Access"
	BadgeNew         = "New"
)

// HighlyCitedThreshold is the citation count at which a paper earns the
// Highly Cited badge.
const HighlyCitedThreshold = 50

// sourceTable is matched in order; the first needle found wins.
var sourceTable = []struct {
	needle string
	label  string
}{
	{"arxiv", LabelArxiv},
	{"openalex", LabelOpenAlex},
	{"ieee", LabelIEEE},
	{"springer", LabelSpringer},
	{"elsevier", LabelElsevier},
	{"acm", LabelACM},
}

// NormalizeSource maps a provider's self-reported source text onto the
// canonical label set. Unmatched text keeps its spelling with the first
// character upper-cased; empty or blank text is Unknown.
func NormalizeSource(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return LabelUnknown
	}
	lower := strings.ToLower(raw)
	for _, e := range sourceTable {
		if strings.Contains(lower, e.needle) {
			return e.label
		}
	}
	r, size := utf8.DecodeRuneInString(raw)
	return string(unicode.ToUpper(r)) + raw[size:]
}

// AssignBadges computes the badges for p. Open Access is judged on the raw,
// pre-normalization source text. An unknown year is never New.
func AssignBadges(p types.Paper, currentYear int) []string {
	badges := []string{}
	if p.Citations >= HighlyCitedThreshold {
		badges = append(badges, BadgeHighlyCited)
	}
	if strings.Contains(strings.ToLower(rawSource(p)), "arxiv") {
		badges = append(badges, BadgeOpenAccess)
	}
	if p.Year > 0 && p.Year >= currentYear-1 {
		badges = append(badges, BadgeNew)
	}
	return badges
}

// Enrich returns a new slice in which each paper's Tags are replaced by its
// badges and Source holds the canonical label. The input is not modified.
func Enrich(papers []types.Paper, currentYear int) []types.Paper {
	out := make([]types.Paper, len(papers))
	for i, p := range papers {
		p.RawSource = rawSource(p)
		p.Tags = AssignBadges(p, currentYear)
		p.Source = NormalizeSource(p.RawSource)
		out[i] = p
	}
	return out
}

// rawSource returns the pre-normalization source text. Papers built outside
// an adapter may only carry Source.
func rawSource(p types.Paper) string {
	if p.RawSource != "" {
		return p.RawSource
	}
	return p.Source
}
