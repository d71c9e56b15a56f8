// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/pdiddy/paper-radar/pkg/types"
)

// springerAPIBase is the Springer Nature Meta API endpoint. Declared as a
// var so tests can substitute an httptest server.
var springerAPIBase = "https://api.springernature.com/meta/v2/json"

// SpringerAdapter queries the Springer Nature Meta API. An API key is
// required. Springer reports no citation counts.
type SpringerAdapter struct {
	Options
	APIKey string
}

// Name returns the adapter identifier.
func (a *SpringerAdapter) Name() string { return "springer" }

// Fetch queries Springer Nature for topic and maps each record to a Paper.
func (a *SpringerAdapter) Fetch(ctx context.Context, topic string) ([]types.Paper, error) {
	if a.APIKey == "" {
		return nil, fmt.Errorf("%w: Springer Nature API key not configured", ErrProviderUnavailable)
	}

	params := url.Values{
		"q":       {topic},
		"p":       {strconv.Itoa(a.limit())},
		"s":       {"1"},
		"api_key": {a.APIKey},
	}

	body, err := a.get(ctx, "Springer Nature", springerAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var sr springerResponse
	if err := json.NewDecoder(body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("%w: parsing Springer Nature response: %v", ErrMalformedPayload, err)
	}

	records := decodeRecords[springerRecord](sr.Records, a.Log)
	papers := make([]types.Paper, 0, len(records))
	for _, r := range records {
		papers = append(papers, r.toPaper())
		if len(papers) == a.limit() {
			break
		}
	}
	return papers, nil
}

// Springer Nature Meta API JSON structures.
type springerResponse struct {
	Records []json.RawMessage `json:"records"`
}

type springerRecord struct {
	Title           flexText `json:"title"`
	Abstract        flexText `json:"abstract"`
	DOI             string   `json:"doi"`
	Publisher       string   `json:"publisher"`
	PublicationName string   `json:"publicationName"`
	PublicationDate string   `json:"publicationDate"`
	Creators        []struct {
		Creator string `json:"creator"`
	} `json:"creators"`
	URL []struct {
		Format string `json:"format"`
		Value  string `json:"value"`
	} `json:"url"`
}

// toPaper maps a record to a Paper. Abstracts arrive as HTML fragments or
// section objects and are flattened to plain text.
func (r springerRecord) toPaper() types.Paper {
	var authors []string
	for _, c := range r.Creators {
		if c.Creator != "" {
			authors = append(authors, c.Creator)
		}
	}

	rawSource := r.Publisher
	if rawSource == "" {
		rawSource = "Springer"
	}

	return types.NewPaper(
		cleanText(string(r.Title)),
		cleanText(string(r.Abstract)),
		r.landingPage(),
		authors,
		rawSource,
		yearFrom(r.PublicationDate),
		0,
	)
}

// landingPage prefers the HTML url entry, then any url, then the DOI resolver.
func (r springerRecord) landingPage() string {
	for _, u := range r.URL {
		if u.Format == "html" && u.Value != "" {
			return u.Value
		}
	}
	for _, u := range r.URL {
		if u.Value != "" {
			return u.Value
		}
	}
	if r.DOI != "" {
		return "https://doi.org/" + r.DOI
	}
	return ""
}
