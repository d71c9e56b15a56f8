// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

const sampleIEEEJSON = `{
  "total_records": 2,
  "articles": [
    {
      "title": "Deep Residual Learning for <i>Image</i> Recognition",
      "abstract": "<p>Deeper neural networks are more difficult to train.</p>",
      "html_url": "https://ieeexplore.ieee.org/document/7780459/",
      "doi": "10.1109/CVPR.2016.90",
      "publisher": "IEEE",
      "publication_title": "2016 IEEE Conference on Computer Vision and Pattern Recognition (CVPR)",
      "publication_year": "2016",
      "citing_paper_count": 150000,
      "authors": {"authors": [{"full_name": "Kaiming He"}, {"full_name": "Xiangyu Zhang"}]}
    },
    {
      "title": "Untitled Proceedings Entry",
      "doi": "10.1109/EXAMPLE.2020.1",
      "publication_title": "Proc. Example Workshop",
      "publication_year": 2020
    }
  ]
}`

func TestIEEEAdapterFetch(t *testing.T) {
	var captured *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, sampleIEEEJSON)
	}))
	defer ts.Close()
	swapBase(t, &ieeeAPIBase, ts.URL)

	a := &IEEEAdapter{Options: testOptions(ts.Client()), APIKey: "ieee-key"}
	papers, err := a.Fetch(context.Background(), "residual learning")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	q := captured.URL.Query()
	if q.Get("querytext") != "residual learning" || q.Get("max_records") != "5" || q.Get("apikey") != "ieee-key" {
		t.Errorf("unexpected query params: %v", q)
	}

	if len(papers) != 2 {
		t.Fatalf("len(papers) = %d, want 2", len(papers))
	}

	p0 := papers[0]
	if p0.Title != "Deep Residual Learning for Image Recognition" {
		t.Errorf("Title = %q, want markup stripped", p0.Title)
	}
	if p0.Summary != "Deeper neural networks are more difficult to train." {
		t.Errorf("Summary = %q", p0.Summary)
	}
	if p0.Year != 2016 || p0.Citations != 150000 {
		t.Errorf("Year = %d Citations = %d", p0.Year, p0.Citations)
	}
	if p0.RawSource != "IEEE" || p0.Link != "https://ieeexplore.ieee.org/document/7780459/" {
		t.Errorf("RawSource = %q Link = %q", p0.RawSource, p0.Link)
	}

	p1 := papers[1]
	if p1.RawSource != "Proc. Example Workshop" {
		t.Errorf("RawSource = %q, want publication title fallback", p1.RawSource)
	}
	if p1.Link != "https://doi.org/10.1109/EXAMPLE.2020.1" {
		t.Errorf("Link = %q, want DOI resolver", p1.Link)
	}
}

func TestIEEEAdapterMissingKey(t *testing.T) {
	called := false
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer ts.Close()
	swapBase(t, &ieeeAPIBase, ts.URL)

	_, err := (&IEEEAdapter{Options: testOptions(ts.Client())}).Fetch(context.Background(), "x")
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("err = %v, want ErrProviderUnavailable", err)
	}
	if called {
		t.Error("no request should be made without an API key")
	}
}

func TestIEEEAdapterForbidden(t *testing.T) {
	ts := testServer(http.StatusForbidden, "application/json", `{"error":"Developer Inactive"}`)
	defer ts.Close()
	swapBase(t, &ieeeAPIBase, ts.URL)

	_, err := (&IEEEAdapter{Options: testOptions(ts.Client()), APIKey: "k"}).Fetch(context.Background(), "x")
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("err = %v, want ErrProviderUnavailable", err)
	}
}
