// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pdiddy/paper-radar/pkg/types"
)

// semanticAPIBase is the Semantic Scholar paper search endpoint. Declared
// as a var so tests can substitute an httptest server.
var semanticAPIBase = "https://api.semanticscholar.org/graph/v1/paper/search"

const semanticFields = "title,abstract,authors,year,venue,citationCount,url"

// SemanticScholarAdapter queries the Semantic Scholar Graph API. The API key
// is optional and only raises the rate limit.
type SemanticScholarAdapter struct {
	Options
	APIKey string
}

// Name returns the adapter identifier.
func (a *SemanticScholarAdapter) Name() string { return "semantic_scholar" }

// Fetch queries Semantic Scholar for topic and maps each paper to a Paper.
func (a *SemanticScholarAdapter) Fetch(ctx context.Context, topic string) ([]types.Paper, error) {
	params := url.Values{
		"query":  {topic},
		"limit":  {strconv.Itoa(a.limit())},
		"fields": {semanticFields},
	}

	header := http.Header{}
	if a.APIKey != "" {
		header.Set("x-api-key", a.APIKey)
	}

	body, err := a.get(ctx, "Semantic Scholar", semanticAPIBase+"?"+params.Encode(), header)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var sr semanticResponse
	if err := json.NewDecoder(body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("%w: parsing Semantic Scholar response: %v", ErrMalformedPayload, err)
	}

	records := decodeRecords[semanticPaper](sr.Data, a.Log)
	papers := make([]types.Paper, 0, len(records))
	for _, r := range records {
		papers = append(papers, r.toPaper())
		if len(papers) == a.limit() {
			break
		}
	}
	return papers, nil
}

// Semantic Scholar API JSON structures.
type semanticResponse struct {
	Total int               `json:"total"`
	Data  []json.RawMessage `json:"data"`
}

type semanticPaper struct {
	PaperID       string           `json:"paperId"`
	URL           string           `json:"url"`
	Title         string           `json:"title"`
	Abstract      string           `json:"abstract"`
	Year          flexInt          `json:"year"`
	Venue         string           `json:"venue"`
	CitationCount flexInt          `json:"citationCount"`
	Authors       []semanticAuthor `json:"authors"`
}

type semanticAuthor struct {
	Name string `json:"name"`
}

// toPaper maps a record to a Paper. The self-reported venue is the raw
// source, falling back to the provider name.
func (p semanticPaper) toPaper() types.Paper {
	var authors []string
	for _, a := range p.Authors {
		if a.Name != "" {
			authors = append(authors, a.Name)
		}
	}

	rawSource := p.Venue
	if rawSource == "" {
		rawSource = "Semantic Scholar"
	}

	link := p.URL
	if link == "" && p.PaperID != "" {
		link = "https://www.semanticscholar.org/paper/" + p.PaperID
	}

	return types.NewPaper(
		collapse(p.Title),
		collapse(p.Abstract),
		link,
		authors,
		rawSource,
		int(p.Year),
		int(p.CitationCount),
	)
}
