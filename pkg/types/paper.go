// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paper-radar pipeline:
// the canonical Paper record, aggregation and related-paper results, and the
// per-component configuration structs.
package types

import "strings"

// Fallback literals applied by source adapters when a provider omits a field.
const (
	NoTitle    = "No title"
	NoAbstract = "No abstract"
	NoLink     = "#"
)

// Paper is the canonical record every source adapter produces. Papers are
// values: once an adapter builds one, later stages work on copies.
// Unknown Year and Citations use the 0 sentinel.
type Paper struct {
	// Title falls back to NoTitle.
	Title string `json:"title" yaml:"title"`

	// Summary is the abstract; falls back to NoAbstract.
	Summary string `json:"summary" yaml:"summary"`

	// Link is the landing page URL; falls back to NoLink.
	Link string `json:"link" yaml:"link"`

	// Authors lists author names in provider order. Never nil once built
	// by NewPaper.
	Authors []string `json:"authors" yaml:"authors"`

	// Source is the canonical provider label after enrichment (e.g. "arXiv").
	Source string `json:"source" yaml:"source"`

	// Year is the publication year, 0 when unknown.
	Year int `json:"year" yaml:"year"`

	// Citations is the citation count, 0 when unknown.
	Citations int `json:"citations" yaml:"citations"`

	// Tags holds computed badges. Provider-supplied tags are overwritten.
	Tags []string `json:"tags" yaml:"tags"`

	// ComputedSummary is the text-generation output attached on request.
	ComputedSummary string `json:"computed_summary,omitempty" yaml:"computed_summary,omitempty"`

	// RawSource is the provider's self-reported source or venue text before
	// normalization. It drives the Open Access badge.
	RawSource string `json:"-" yaml:"-"`
}

// NewPaper builds a Paper from provider fields, applying the fallback
// literals and clamping negative counts to the unknown sentinel.
func NewPaper(title, summary, link string, authors []string, rawSource string, year, citations int) Paper {
	if title == "" {
		title = NoTitle
	}
	if summary == "" {
		summary = NoAbstract
	}
	if link == "" {
		link = NoLink
	}
	if authors == nil {
		authors = []string{}
	}
	if year < 0 {
		year = 0
	}
	if citations < 0 {
		citations = 0
	}
	return Paper{
		Title:     title,
		Summary:   summary,
		Link:      link,
		Authors:   authors,
		Source:    rawSource,
		RawSource: rawSource,
		Year:      year,
		Citations: citations,
		Tags:      []string{},
	}
}

// Document returns the lower-cased text the similarity engine indexes.
func (p Paper) Document() string {
	return strings.ToLower(p.Title + " " + p.Summary)
}
