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

// ieeeAPIBase is the IEEE Xplore metadata search endpoint. Declared as a var
// so tests can substitute an httptest server.
var ieeeAPIBase = "https://ieeexploreapi.ieee.org/api/v1/search/articles"

// IEEEAdapter queries the IEEE Xplore API. An API key is required; without
// one Fetch fails with ErrProviderUnavailable before any network I/O.
type IEEEAdapter struct {
	Options
	APIKey string
}

// Name returns the adapter identifier.
func (a *IEEEAdapter) Name() string { return "ieee" }

// Fetch queries IEEE Xplore for topic and maps each article to a Paper.
func (a *IEEEAdapter) Fetch(ctx context.Context, topic string) ([]types.Paper, error) {
	if a.APIKey == "" {
		return nil, fmt.Errorf("%w: IEEE Xplore API key not configured", ErrProviderUnavailable)
	}

	params := url.Values{
		"querytext":    {topic},
		"max_records":  {strconv.Itoa(a.limit())},
		"start_record": {"1"},
		"apikey":       {a.APIKey},
	}

	body, err := a.get(ctx, "IEEE Xplore", ieeeAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var ir ieeeResponse
	if err := json.NewDecoder(body).Decode(&ir); err != nil {
		return nil, fmt.Errorf("%w: parsing IEEE Xplore response: %v", ErrMalformedPayload, err)
	}

	articles := decodeRecords[ieeeArticle](ir.Articles, a.Log)
	papers := make([]types.Paper, 0, len(articles))
	for _, art := range articles {
		papers = append(papers, art.toPaper())
		if len(papers) == a.limit() {
			break
		}
	}
	return papers, nil
}

// IEEE Xplore API JSON structures.
type ieeeResponse struct {
	TotalRecords flexInt           `json:"total_records"`
	Articles     []json.RawMessage `json:"articles"`
}

type ieeeArticle struct {
	Title            string  `json:"title"`
	Abstract         string  `json:"abstract"`
	HTMLURL          string  `json:"html_url"`
	PDFURL           string  `json:"pdf_url"`
	DOI              string  `json:"doi"`
	Publisher        string  `json:"publisher"`
	PublicationTitle string  `json:"publication_title"`
	PublicationYear  flexInt `json:"publication_year"`
	CitingPaperCount flexInt `json:"citing_paper_count"`
	Authors          struct {
		Authors []struct {
			FullName string `json:"full_name"`
		} `json:"authors"`
	} `json:"authors"`
}

// toPaper maps an article to a Paper. The publisher field is the raw source;
// IEEE hosts some co-published venues, so the label still goes through
// normalization downstream.
func (a ieeeArticle) toPaper() types.Paper {
	var authors []string
	for _, au := range a.Authors.Authors {
		if au.FullName != "" {
			authors = append(authors, au.FullName)
		}
	}

	rawSource := a.Publisher
	if rawSource == "" {
		rawSource = a.PublicationTitle
	}
	if rawSource == "" {
		rawSource = "IEEE"
	}

	link := a.HTMLURL
	if link == "" && a.DOI != "" {
		link = "https://doi.org/" + a.DOI
	}
	if link == "" {
		link = a.PDFURL
	}

	return types.NewPaper(
		cleanText(a.Title),
		cleanText(a.Abstract),
		link,
		authors,
		rawSource,
		int(a.PublicationYear),
		int(a.CitingPaperCount),
	)
}
