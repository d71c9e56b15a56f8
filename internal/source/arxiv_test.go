// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/paper-radar/internal/httputil"
	"github.com/pdiddy/paper-radar/pkg/types"
)

func init() {
	httputil.RetryBaseDelay = time.Millisecond
}

const sampleArxivFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>ArXiv Query: search_query=all:attention</title>
  <entry>
    <id>http://arxiv.org/abs/1706.03762v7</id>
    <published>2017-06-12T17:57:34Z</published>
    <title>Attention Is All
      You Need</title>
    <summary>  The dominant sequence transduction models
      are based on complex recurrent networks. </summary>
    <author><name>Ashish Vaswani</name></author>
    <author><name>Noam Shazeer</name></author>
    <link href="http://arxiv.org/abs/1706.03762v7" rel="alternate" type="text/html"/>
    <link title="pdf" href="http://arxiv.org/pdf/1706.03762v7" rel="related" type="application/pdf"/>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2401.00001v1</id>
  </entry>
</feed>`

// swapBase points an endpoint var at a test server and returns the restore func.
func swapBase(t *testing.T, base *string, url string) {
	t.Helper()
	old := *base
	*base = url
	t.Cleanup(func() { *base = old })
}

func testServer(statusCode int, contentType, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(statusCode)
		fmt.Fprint(w, body)
	}))
}

func testOptions(client *http.Client) Options {
	return Options{Client: client, Limit: 5, UserAgent: "test/0.1", Log: zerolog.Nop()}
}

func TestArxivAdapterFetch(t *testing.T) {
	var captured *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		fmt.Fprint(w, sampleArxivFeed)
	}))
	defer ts.Close()
	swapBase(t, &arxivAPIBase, ts.URL)

	a := &ArxivAdapter{Options: testOptions(ts.Client())}
	papers, err := a.Fetch(context.Background(), "attention models")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	q := captured.URL.Query()
	if got := q.Get("search_query"); got != "all:attention models" {
		t.Errorf("search_query = %q", got)
	}
	if got := q.Get("max_results"); got != "5" {
		t.Errorf("max_results = %q, want 5", got)
	}
	if got := captured.Header.Get("User-Agent"); got != "test/0.1" {
		t.Errorf("User-Agent = %q", got)
	}

	if len(papers) != 2 {
		t.Fatalf("len(papers) = %d, want 2", len(papers))
	}

	p0 := papers[0]
	if p0.Title != "Attention Is All You Need" {
		t.Errorf("Title = %q, want whitespace collapsed", p0.Title)
	}
	if !strings.HasPrefix(p0.Summary, "The dominant sequence") || strings.Contains(p0.Summary, "\n") {
		t.Errorf("Summary = %q", p0.Summary)
	}
	if p0.Link != "http://arxiv.org/abs/1706.03762v7" {
		t.Errorf("Link = %q", p0.Link)
	}
	if p0.Year != 2017 {
		t.Errorf("Year = %d, want 2017", p0.Year)
	}
	if p0.RawSource != "arXiv" || p0.Citations != 0 {
		t.Errorf("RawSource = %q Citations = %d", p0.RawSource, p0.Citations)
	}
	if len(p0.Authors) != 2 || p0.Authors[1] != "Noam Shazeer" {
		t.Errorf("Authors = %v", p0.Authors)
	}

	// Second entry has only an id: every other field falls back independently.
	p1 := papers[1]
	if p1.Title != types.NoTitle || p1.Summary != types.NoAbstract {
		t.Errorf("fallbacks not applied: %+v", p1)
	}
	if p1.Link != "http://arxiv.org/abs/2401.00001v1" {
		t.Errorf("Link = %q, want entry id", p1.Link)
	}
	if p1.Year != 0 || p1.Authors == nil || len(p1.Authors) != 0 {
		t.Errorf("Year = %d Authors = %#v", p1.Year, p1.Authors)
	}
}

func TestArxivAdapterRespectsLimit(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<feed xmlns="http://www.w3.org/2005/Atom">`)
	for i := 0; i < 8; i++ {
		fmt.Fprintf(&b, `<entry><id>http://arxiv.org/abs/%d</id><title>T%d</title></entry>`, i, i)
	}
	b.WriteString(`</feed>`)

	ts := testServer(http.StatusOK, "application/atom+xml", b.String())
	defer ts.Close()
	swapBase(t, &arxivAPIBase, ts.URL)

	opts := testOptions(ts.Client())
	opts.Limit = 3
	papers, err := (&ArxivAdapter{Options: opts}).Fetch(context.Background(), "x")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(papers) != 3 {
		t.Errorf("len(papers) = %d, want 3", len(papers))
	}
}

func TestArxivAdapterHTTPError(t *testing.T) {
	ts := testServer(http.StatusServiceUnavailable, "text/plain", "down")
	defer ts.Close()
	swapBase(t, &arxivAPIBase, ts.URL)

	_, err := (&ArxivAdapter{Options: testOptions(ts.Client())}).Fetch(context.Background(), "x")
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("err = %v, want ErrProviderUnavailable", err)
	}
	if !strings.Contains(err.Error(), "503") {
		t.Errorf("error should mention status code: %v", err)
	}
}

func TestParseArxivFeed(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantLen   int
		wantError bool
	}{
		{"empty feed", `<feed xmlns="http://www.w3.org/2005/Atom"></feed>`, 0, false},
		{"not xml", `this is not xml <<<`, 0, true},
		{
			name:    "truncated after first entry keeps it",
			body:    `<feed><entry><id>a</id><title>One</title></entry><entry><id>b</id><title>Tw`,
			wantLen: 1,
		},
		{"truncated before any entry", `<feed><entry><id>a</id><title>On`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := parseArxivFeed(strings.NewReader(tt.body), zerolog.Nop())
			if tt.wantError {
				if !errors.Is(err, ErrMalformedPayload) {
					t.Fatalf("err = %v, want ErrMalformedPayload", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(entries) != tt.wantLen {
				t.Errorf("len(entries) = %d, want %d", len(entries), tt.wantLen)
			}
		})
	}
}
