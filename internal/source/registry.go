// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/pdiddy/paper-radar/internal/httputil"
	"github.com/pdiddy/paper-radar/pkg/types"
)

// FromConfig builds the enabled adapters in priority order: arXiv, OpenAlex,
// Semantic Scholar, IEEE Xplore, Springer Nature. The aggregator concatenates
// results in this order. Adapters with a required but missing credential are
// still built; they report ErrProviderUnavailable on each call.
func FromConfig(cfg types.AggregateConfig, client *http.Client, log zerolog.Logger) []Adapter {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	opts := func(name string, sc types.SourceConfig) Options {
		return Options{
			Client:    client,
			Limit:     cfg.Limit,
			UserAgent: cfg.UserAgent,
			Limiter:   httputil.NewLimiter(sc.RatePerSecond),
			Log:       log.With().Str("source", name).Logger(),
		}
	}

	s := cfg.Sources
	var adapters []Adapter
	if s.Arxiv.Enabled {
		adapters = append(adapters, &ArxivAdapter{Options: opts("arxiv", s.Arxiv)})
	}
	if s.OpenAlex.Enabled {
		adapters = append(adapters, &OpenAlexAdapter{Options: opts("openalex", s.OpenAlex), Email: s.OpenAlex.Email})
	}
	if s.SemanticScholar.Enabled {
		adapters = append(adapters, &SemanticScholarAdapter{Options: opts("semantic_scholar", s.SemanticScholar), APIKey: s.SemanticScholar.APIKey})
	}
	if s.IEEE.Enabled {
		adapters = append(adapters, &IEEEAdapter{Options: opts("ieee", s.IEEE), APIKey: s.IEEE.APIKey})
	}
	if s.Springer.Enabled {
		adapters = append(adapters, &SpringerAdapter{Options: opts("springer", s.Springer), APIKey: s.Springer.APIKey})
	}
	return adapters
}
