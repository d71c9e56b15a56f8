// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-radar/internal/aggregate"
	"github.com/pdiddy/paper-radar/internal/cache"
	"github.com/pdiddy/paper-radar/internal/observability"
	"github.com/pdiddy/paper-radar/internal/source"
	"github.com/pdiddy/paper-radar/internal/summarize"
	"github.com/pdiddy/paper-radar/pkg/types"
)

// loadConfig merges defaults, the config file and PAPER_RADAR_* environment
// variables into a Config.
func loadConfig() (types.Config, error) {
	return decodeConfig(viper.GetViper())
}

func decodeConfig(v *viper.Viper) (types.Config, error) {
	d := types.DefaultConfig()
	registerDefaults(v, d)

	cfg := d
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding configuration: %w", err)
	}
	return cfg, nil
}

// registerDefaults makes every key known to viper so environment variables
// can override keys absent from the config file.
func registerDefaults(v *viper.Viper, d types.Config) {
	a := d.Aggregate
	v.SetDefault("aggregate.timeout", a.Timeout)
	v.SetDefault("aggregate.user_agent", a.UserAgent)
	v.SetDefault("aggregate.limit", a.Limit)
	v.SetDefault("aggregate.adapter_timeout", a.AdapterTimeout)
	v.SetDefault("aggregate.cache_capacity", a.CacheCapacity)
	v.SetDefault("aggregate.related_limit", a.RelatedLimit)

	sources := map[string]types.SourceConfig{
		"arxiv":            a.Sources.Arxiv,
		"openalex":         a.Sources.OpenAlex,
		"semantic_scholar": a.Sources.SemanticScholar,
		"ieee":             a.Sources.IEEE,
		"springer":         a.Sources.Springer,
	}
	for name, sc := range sources {
		prefix := "aggregate.sources." + name + "."
		v.SetDefault(prefix+"enabled", sc.Enabled)
		v.SetDefault(prefix+"api_key", sc.APIKey)
		v.SetDefault(prefix+"email", sc.Email)
		v.SetDefault(prefix+"rate_per_second", sc.RatePerSecond)
	}

	s := d.Summarize
	v.SetDefault("summarize.timeout", s.Timeout)
	v.SetDefault("summarize.user_agent", s.UserAgent)
	v.SetDefault("summarize.base_url", s.BaseURL)
	v.SetDefault("summarize.model", s.Model)
	v.SetDefault("summarize.api_key", s.APIKey)
	v.SetDefault("summarize.max_retries", s.MaxRetries)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output", d.Logging.Output)
}

// newService wires the adapters, topic cache and summarizer described by cfg.
func newService(cfg types.Config, log zerolog.Logger, metrics *observability.Metrics) *aggregate.Service {
	adapters := source.FromConfig(cfg.Aggregate, nil, log)
	log.Debug().Int("adapters", len(adapters)).Msg("source adapters configured")

	return aggregate.New(adapters,
		aggregate.WithCache(cache.New(cfg.Aggregate.CacheCapacity)),
		aggregate.WithSummarizer(summarize.NewChatClient(cfg.Summarize)),
		aggregate.WithMetrics(metrics),
		aggregate.WithLogger(log),
		aggregate.WithAdapterTimeout(cfg.Aggregate.AdapterTimeout),
		aggregate.WithRelatedLimit(cfg.Aggregate.RelatedLimit),
	)
}
