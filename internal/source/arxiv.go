// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/paper-radar/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// ArxivAdapter queries the arXiv Atom API. It needs no credential.
type ArxivAdapter struct {
	Options
}

// Name returns the adapter identifier.
func (a *ArxivAdapter) Name() string { return "arxiv" }

// Fetch queries arXiv for topic and maps each Atom entry to a Paper.
func (a *ArxivAdapter) Fetch(ctx context.Context, topic string) ([]types.Paper, error) {
	params := url.Values{
		"search_query": {"all:" + topic},
		"start":        {"0"},
		"max_results":  {strconv.Itoa(a.limit())},
		"sortBy":       {"relevance"},
		"sortOrder":    {"descending"},
	}

	body, err := a.get(ctx, "arXiv", arxivAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	entries, err := parseArxivFeed(body, a.Log)
	if err != nil {
		return nil, err
	}

	papers := make([]types.Paper, 0, len(entries))
	for _, e := range entries {
		papers = append(papers, e.toPaper())
		if len(papers) == a.limit() {
			break
		}
	}
	return papers, nil
}

// parseArxivFeed extracts the repeated <entry> blocks from an Atom feed one at
// a time. Feed-level elements are ignored. When the stream breaks partway, the
// entries decoded so far are kept; only a feed with no recoverable entry is
// reported as malformed.
func parseArxivFeed(r io.Reader, log zerolog.Logger) ([]arxivEntry, error) {
	dec := xml.NewDecoder(r)
	var entries []arxivEntry
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return entries, nil
		}
		if err != nil {
			return truncatedFeed(entries, err, log)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "entry" {
			continue
		}

		var e arxivEntry
		if err := dec.DecodeElement(&e, &start); err != nil {
			return truncatedFeed(entries, err, log)
		}
		entries = append(entries, e)
	}
}

func truncatedFeed(entries []arxivEntry, err error, log zerolog.Logger) ([]arxivEntry, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: parsing arXiv response: %v", ErrMalformedPayload, err)
	}
	log.Warn().Int("kept", len(entries)).Err(err).Msg("arXiv feed truncated")
	return entries, nil
}

// arXiv Atom feed XML structures.
type arxivEntry struct {
	ID        string        `xml:"id"`
	Title     string        `xml:"title"`
	Summary   string        `xml:"summary"`
	Published string        `xml:"published"`
	Authors   []arxivAuthor `xml:"author"`
	Links     []arxivLink   `xml:"link"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

type arxivLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

// toPaper maps an Atom entry to a Paper. arXiv reports no citation counts.
func (e arxivEntry) toPaper() types.Paper {
	var authors []string
	for _, au := range e.Authors {
		if name := collapse(au.Name); name != "" {
			authors = append(authors, name)
		}
	}
	return types.NewPaper(
		collapse(e.Title),
		collapse(e.Summary),
		e.landingPage(),
		authors,
		"arXiv",
		yearFrom(e.Published),
		0,
	)
}

// landingPage prefers the rel="alternate" abstract page, then the entry id,
// which arXiv also sets to the abstract URL.
func (e arxivEntry) landingPage() string {
	for _, l := range e.Links {
		if l.Rel == "alternate" && l.Href != "" {
			return strings.TrimSpace(l.Href)
		}
	}
	return strings.TrimSpace(e.ID)
}
