package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paper-radar/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// SourceConfig holds settings for one source adapter.
type SourceConfig struct {
	// Enabled controls whether the adapter takes part in aggregation.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// APIKey is the provider credential. Required by IEEE and Springer,
	// optional for Semantic Scholar.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// Email is sent as OpenAlex mailto parameter for polite pool access.
	Email string `json:"email,omitempty" yaml:"email,omitempty" mapstructure:"email"`

	// RatePerSecond is the sustained request rate against the provider.
	RatePerSecond float64 `json:"rate_per_second" yaml:"rate_per_second" mapstructure:"rate_per_second"`
}

// SourcesConfig groups the per-provider adapter settings.
type SourcesConfig struct {
	Arxiv           SourceConfig `json:"arxiv" yaml:"arxiv" mapstructure:"arxiv"`
	OpenAlex        SourceConfig `json:"openalex" yaml:"openalex" mapstructure:"openalex"`
	SemanticScholar SourceConfig `json:"semantic_scholar" yaml:"semantic_scholar" mapstructure:"semantic_scholar"`
	IEEE            SourceConfig `json:"ieee" yaml:"ieee" mapstructure:"ieee"`
	Springer        SourceConfig `json:"springer" yaml:"springer" mapstructure:"springer"`
}

// AggregateConfig holds settings for the aggregation stage.
type AggregateConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Limit is the per-source result count (default 5).
	Limit int `json:"limit" yaml:"limit" mapstructure:"limit"`

	// AdapterTimeout bounds each adapter call independently (default 10s).
	AdapterTimeout time.Duration `json:"adapter_timeout" yaml:"adapter_timeout" mapstructure:"adapter_timeout"`

	// CacheCapacity bounds the topic cache. Zero or negative keeps every
	// topic for the process lifetime.
	CacheCapacity int `json:"cache_capacity" yaml:"cache_capacity" mapstructure:"cache_capacity"`

	// RelatedLimit is the maximum number of related papers (default 5).
	RelatedLimit int `json:"related_limit" yaml:"related_limit" mapstructure:"related_limit"`

	Sources SourcesConfig `json:"sources" yaml:"sources" mapstructure:"sources"`
}

// SummarizeConfig holds settings for the text-generation collaborator.
type SummarizeConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the OpenAI-compatible chat completions endpoint.
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// Model is the model identifier sent with each request.
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// APIKey authenticates against the endpoint.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// MaxRetries is the number of retry attempts on HTTP 429 (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum level (trace, debug, info, warn, error).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is json or console.
	Format string `json:"format" yaml:"format" mapstructure:"format"`

	// Output is stdout or stderr.
	Output string `json:"output" yaml:"output" mapstructure:"output"`
}

// Config groups all component configurations.
type Config struct {
	Aggregate AggregateConfig `json:"aggregate" yaml:"aggregate" mapstructure:"aggregate"`
	Summarize SummarizeConfig `json:"summarize" yaml:"summarize" mapstructure:"summarize"`
	Logging   LoggingConfig   `json:"logging" yaml:"logging" mapstructure:"logging"`
}

// DefaultConfig returns the configuration used when no file or environment
// override is present.
func DefaultConfig() Config {
	http := HTTPConfig{Timeout: 20 * time.Second, UserAgent: "paper-radar/0.1"}
	return Config{
		Aggregate: AggregateConfig{
			HTTPConfig:     http,
			Limit:          5,
			AdapterTimeout: 10 * time.Second,
			CacheCapacity:  128,
			RelatedLimit:   5,
			Sources: SourcesConfig{
				Arxiv:           SourceConfig{Enabled: true, RatePerSecond: 0.34},
				OpenAlex:        SourceConfig{Enabled: true, RatePerSecond: 10},
				SemanticScholar: SourceConfig{Enabled: true, RatePerSecond: 1},
				IEEE:            SourceConfig{Enabled: true, RatePerSecond: 2},
				Springer:        SourceConfig{Enabled: true, RatePerSecond: 2},
			},
		},
		Summarize: SummarizeConfig{
			HTTPConfig: HTTPConfig{Timeout: 60 * time.Second, UserAgent: http.UserAgent},
			BaseURL:    "https://api.groq.com/openai/v1/chat/completions",
			Model:      "llama-3.1-8b-instant",
			MaxRetries: 3,
		},
		Logging: LoggingConfig{Level: "info", Format: "console", Output: "stderr"},
	}
}
