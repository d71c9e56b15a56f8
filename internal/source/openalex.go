// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/paper-radar/pkg/types"
)

// openAlexSearchBase is the OpenAlex Works search endpoint. Declared as a
// var so tests can substitute an httptest server.
var openAlexSearchBase = "https://api.openalex.org/works"

// OpenAlexAdapter queries the OpenAlex API. Email is optional and only
// selects the polite pool.
type OpenAlexAdapter struct {
	Options
	Email string
}

// Name returns the adapter identifier.
func (a *OpenAlexAdapter) Name() string { return "openalex" }

// Fetch queries OpenAlex for topic and maps each work to a Paper.
func (a *OpenAlexAdapter) Fetch(ctx context.Context, topic string) ([]types.Paper, error) {
	params := url.Values{
		"search":   {topic},
		"per_page": {strconv.Itoa(a.limit())},
		"page":     {"1"},
	}
	if a.Email != "" {
		params.Set("mailto", a.Email)
	}

	body, err := a.get(ctx, "OpenAlex", openAlexSearchBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var oar openAlexResponse
	if err := json.NewDecoder(body).Decode(&oar); err != nil {
		return nil, fmt.Errorf("%w: parsing OpenAlex response: %v", ErrMalformedPayload, err)
	}

	works := decodeRecords[openAlexWork](oar.Results, a.Log)
	papers := make([]types.Paper, 0, len(works))
	for _, w := range works {
		papers = append(papers, w.toPaper())
		if len(papers) == a.limit() {
			break
		}
	}
	return papers, nil
}

// reconstructAbstract converts OpenAlex's abstract_inverted_index back to
// plain text. The inverted index maps each word to a list of positions
// where that word appears.
func reconstructAbstract(invertedIndex map[string][]int) string {
	if len(invertedIndex) == 0 {
		return ""
	}

	type posWord struct {
		pos  int
		word string
	}
	var pairs []posWord
	for word, positions := range invertedIndex {
		for _, pos := range positions {
			pairs = append(pairs, posWord{pos: pos, word: word})
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].pos < pairs[j].pos
	})

	words := make([]string, len(pairs))
	for i, p := range pairs {
		words[i] = p.word
	}
	return strings.Join(words, " ")
}

// OpenAlex API JSON structures. Results stay raw so each work decodes on
// its own.
type openAlexResponse struct {
	Results []json.RawMessage `json:"results"`
}

type openAlexWork struct {
	ID                    string               `json:"id"`
	Title                 string               `json:"title"`
	DisplayName           string               `json:"display_name"`
	DOI                   string               `json:"doi"`
	PublicationYear       flexInt              `json:"publication_year"`
	CitedByCount          flexInt              `json:"cited_by_count"`
	Authorships           []openAlexAuthorship `json:"authorships"`
	AbstractInvertedIndex map[string][]int     `json:"abstract_inverted_index"`
	PrimaryLocation       *openAlexLocation    `json:"primary_location"`
}

type openAlexAuthorship struct {
	Author struct {
		DisplayName string `json:"display_name"`
	} `json:"author"`
}

type openAlexLocation struct {
	LandingPageURL string `json:"landing_page_url"`
	Source         *struct {
		DisplayName string `json:"display_name"`
	} `json:"source"`
}

// toPaper maps a work to a Paper. The venue named by the primary location is
// the raw source; works without one are attributed to OpenAlex itself.
func (w openAlexWork) toPaper() types.Paper {
	title := w.Title
	if title == "" {
		title = w.DisplayName
	}

	var authors []string
	for _, as := range w.Authorships {
		if as.Author.DisplayName != "" {
			authors = append(authors, as.Author.DisplayName)
		}
	}

	rawSource := "OpenAlex"
	link := w.DOI
	if loc := w.PrimaryLocation; loc != nil {
		if loc.Source != nil && loc.Source.DisplayName != "" {
			rawSource = loc.Source.DisplayName
		}
		if link == "" {
			link = loc.LandingPageURL
		}
	}
	if link == "" {
		link = w.ID
	}

	return types.NewPaper(
		collapse(title),
		reconstructAbstract(w.AbstractInvertedIndex),
		link,
		authors,
		rawSource,
		int(w.PublicationYear),
		int(w.CitedByCount),
	)
}
