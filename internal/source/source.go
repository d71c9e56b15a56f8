// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source translates each academic provider's raw response shape into
// canonical types.Paper records. Every provider payload is decoded into its own
// raw type with a single mapping function to types.Paper; missing fields get
// the fallback literals, and one bad record never drops the rest of a batch.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/paper-radar/internal/httputil"
	"github.com/pdiddy/paper-radar/pkg/types"
)

// DefaultLimit is the per-source result count.
const DefaultLimit = 5

var (
	// ErrProviderUnavailable covers missing credentials, transport failures
	// and non-200 responses.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrMalformedPayload reports a response body that could not be decoded
	// at all. Single bad records are skipped instead.
	ErrMalformedPayload = errors.New("malformed provider payload")
)

// Adapter fetches papers for a topic from one provider. Each provider
// implements this interface per the Strategy pattern. Implementations return
// errors; the aggregator absorbs them so a failing provider only ever
// contributes an empty sequence.
type Adapter interface {
	Name() string
	Fetch(ctx context.Context, topic string) ([]types.Paper, error)
}

// Options holds the settings every adapter shares.
type Options struct {
	Client    *http.Client
	Limit     int
	UserAgent string

	// Limiter paces requests to the provider. Nil disables pacing.
	Limiter *httputil.Limiter

	Log zerolog.Logger
}

func (o Options) limit() int {
	if o.Limit <= 0 {
		return DefaultLimit
	}
	return o.Limit
}

func (o Options) client() *http.Client {
	if o.Client == nil {
		return &http.Client{Timeout: 20 * time.Second}
	}
	return o.Client
}

// get issues a GET against reqURL and returns the body of a 200 response.
// The caller closes the body.
func (o Options) get(ctx context.Context, provider, reqURL string, header http.Header) (io.ReadCloser, error) {
	if err := o.Limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %s rate limiter: %v", ErrProviderUnavailable, provider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating %s request: %w", provider, err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if o.UserAgent != "" {
		req.Header.Set("User-Agent", o.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, o.client(), req, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %s API request: %v", ErrProviderUnavailable, provider, err)
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s API returned HTTP %d", ErrProviderUnavailable, provider, resp.StatusCode)
	}
	return resp.Body, nil
}
