// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate runs the topic pipeline: fan out to every source adapter,
// merge in priority order, enrich, rank and cache. It also owns the current
// corpus that related-paper and summary lookups address by index.
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/paper-radar/internal/cache"
	"github.com/pdiddy/paper-radar/internal/enrich"
	"github.com/pdiddy/paper-radar/internal/observability"
	"github.com/pdiddy/paper-radar/internal/rank"
	"github.com/pdiddy/paper-radar/internal/similarity"
	"github.com/pdiddy/paper-radar/internal/source"
	"github.com/pdiddy/paper-radar/internal/summarize"
	"github.com/pdiddy/paper-radar/pkg/types"
)

// DefaultAdapterTimeout bounds each adapter call.
const DefaultAdapterTimeout = 10 * time.Second

var (
	// ErrNotFound reports an index outside the current corpus. It is the
	// same sentinel as similarity.ErrNotFound.
	ErrNotFound = similarity.ErrNotFound

	// ErrNoSummarizer is returned by Summarize when no summarizer is wired.
	ErrNoSummarizer = errors.New("no summarizer configured")
)

// Service is safe for concurrent use. The corpus is an immutable snapshot
// swapped atomically, so a lookup always sees one complete aggregation.
type Service struct {
	adapters       []source.Adapter
	cache          *cache.TopicCache
	summarizer     summarize.Summarizer
	metrics        *observability.Metrics
	log            zerolog.Logger
	now            func() time.Time
	adapterTimeout time.Duration
	relatedLimit   int

	current    atomic.Pointer[snapshot]
	generation atomic.Uint64
}

// Option configures a Service.
type Option func(*Service)

// WithCache replaces the default unbounded topic cache.
func WithCache(c *cache.TopicCache) Option { return func(s *Service) { s.cache = c } }

// WithSummarizer wires the text-generation collaborator.
func WithSummarizer(sum summarize.Summarizer) Option {
	return func(s *Service) { s.summarizer = sum }
}

// WithMetrics records pipeline metrics on m.
func WithMetrics(m *observability.Metrics) Option { return func(s *Service) { s.metrics = m } }

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option { return func(s *Service) { s.log = l } }

// WithClock sets the time source used for the current year and durations.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// WithAdapterTimeout bounds each adapter call. Non-positive values keep the
// default.
func WithAdapterTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.adapterTimeout = d
		}
	}
}

// WithRelatedLimit caps related-paper results. Non-positive values keep the
// default of 5.
func WithRelatedLimit(k int) Option {
	return func(s *Service) {
		if k > 0 {
			s.relatedLimit = k
		}
	}
}

// New builds a Service over adapters, which must be in priority order.
func New(adapters []source.Adapter, opts ...Option) *Service {
	s := &Service{
		adapters:       adapters,
		log:            zerolog.Nop(),
		now:            time.Now,
		adapterTimeout: DefaultAdapterTimeout,
		relatedLimit:   similarity.DefaultLimit,
	}
	for _, o := range opts {
		o(s)
	}
	if s.cache == nil {
		s.cache = cache.New(0)
	}
	if s.metrics == nil {
		s.metrics = observability.NewMetrics()
	}
	s.current.Store(newSnapshot(0, "", nil))
	return s
}

// Aggregate returns the ranked papers for topic. Provider failures and a
// cancelled ctx never fail the call: the result holds whatever completed.
// Topics are cache keys verbatim, including case and whitespace. The cache
// copies entries in and out, so callers may modify the result freely.
func (s *Service) Aggregate(ctx context.Context, topic string) (types.RankedResult, error) {
	if e, ok := s.cache.Get(topic); ok {
		s.metrics.CacheLookups.WithLabelValues("hit").Inc()
		s.log.Debug().Str("topic", topic).Int("papers", len(e.Ranked)).Msg("topic cache hit")
		s.install(topic, e.Corpus)
		return types.RankedResult{
			Topic:        topic,
			Papers:       e.Ranked,
			Cached:       true,
			SourceCounts: e.SourceCounts,
			SourceErrors: e.SourceErrors,
		}, nil
	}
	s.metrics.CacheLookups.WithLabelValues("miss").Inc()

	start := s.now()
	merged, counts, failures := s.fetchAll(ctx, topic)

	year := s.now().Year()
	corpus := enrich.Enrich(merged, year)
	ranked := rank.Rank(corpus, year)

	// A cancelled caller leaves a partial result; serve it but do not cache it.
	if ctx.Err() == nil {
		s.cache.Put(topic, cache.Entry{
			Corpus:       corpus,
			Ranked:       ranked,
			SourceCounts: counts,
			SourceErrors: failures,
		})
	}
	s.install(topic, corpus)

	elapsed := s.now().Sub(start)
	s.log.Info().
		Str("topic", topic).
		Int("papers", len(ranked)).
		Int("failed_sources", len(failures)).
		Dur("duration", elapsed).
		Msg("aggregation complete")

	return types.RankedResult{
		Topic:        topic,
		Papers:       ranked,
		SourceCounts: counts,
		SourceErrors: failures,
		Duration:     elapsed,
	}, nil
}

// fetchAll runs every adapter concurrently and concatenates their papers in
// adapter order. Each adapter writes only its own slot.
func (s *Service) fetchAll(ctx context.Context, topic string) ([]types.Paper, map[string]int, map[string]string) {
	slots := make([][]types.Paper, len(s.adapters))
	errs := make([]error, len(s.adapters))

	var g errgroup.Group
	for i, a := range s.adapters {
		g.Go(func() error {
			slots[i], errs[i] = s.guardedFetch(ctx, a, topic)
			return nil
		})
	}
	_ = g.Wait()

	counts := make(map[string]int, len(s.adapters))
	failures := make(map[string]string)
	var merged []types.Paper
	for i, a := range s.adapters {
		if errs[i] != nil {
			failures[a.Name()] = errs[i].Error()
		}
		counts[a.Name()] = len(slots[i])
		merged = append(merged, slots[i]...)
	}
	if merged == nil {
		merged = []types.Paper{}
	}
	return merged, counts, failures
}

// guardedFetch calls one adapter under its own timeout. It returns once the
// deadline passes even if the adapter ignores its context, and converts a
// panic into an error. Any error comes back with a nil slice.
func (s *Service) guardedFetch(ctx context.Context, a source.Adapter, topic string) ([]types.Paper, error) {
	name := a.Name()
	ctx, cancel := context.WithTimeout(ctx, s.adapterTimeout)
	defer cancel()

	type result struct {
		papers []types.Paper
		err    error
	}
	done := make(chan result, 1)
	start := time.Now()
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("adapter panic: %v", r)}
			}
		}()
		papers, err := a.Fetch(ctx, topic)
		done <- result{papers: papers, err: err}
	}()

	var res result
	select {
	case res = <-done:
	case <-ctx.Done():
		res = result{err: ctx.Err()}
	}
	s.metrics.SourceFetchDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

	outcome := observability.OutcomeOK
	switch {
	case res.err != nil && (errors.Is(res.err, context.DeadlineExceeded) || errors.Is(res.err, context.Canceled)):
		outcome = observability.OutcomeTimeout
	case res.err != nil:
		outcome = observability.OutcomeFailed
	case len(res.papers) == 0:
		outcome = observability.OutcomeEmpty
	}
	s.metrics.SourceFetches.WithLabelValues(name, outcome).Inc()

	if res.err != nil {
		s.log.Warn().Str("source", name).Str("topic", topic).Err(res.err).Msg("source failed; contributing no papers")
		return nil, res.err
	}
	s.metrics.SourcePapers.WithLabelValues(name).Add(float64(len(res.papers)))
	return res.papers, nil
}

// Corpus returns the current corpus in aggregation order.
func (s *Service) Corpus() []types.Paper {
	return append([]types.Paper(nil), s.current.Load().papers...)
}

// Topic returns the topic the current corpus was aggregated for.
func (s *Service) Topic() string {
	return s.current.Load().topic
}

// Related returns the paper at index in the current corpus and its most
// similar peers.
func (s *Service) Related(index int) (types.RelatedResult, error) {
	snap := s.current.Load()
	res, err := similarity.RelatedWith(snap.model(), snap.papers, index, s.relatedLimit)
	if err != nil {
		s.metrics.RelatedLookups.WithLabelValues("not_found").Inc()
		return types.RelatedResult{}, err
	}
	s.metrics.RelatedLookups.WithLabelValues("ok").Inc()
	return res, nil
}

// Summarize asks the summarizer about the paper at index and returns the
// paper with ComputedSummary set. The summary is attached to the corpus only
// if that aggregation is still current when the summarizer returns.
func (s *Service) Summarize(ctx context.Context, index int) (types.Paper, error) {
	snap := s.current.Load()
	if index < 0 || index >= len(snap.papers) {
		return types.Paper{}, fmt.Errorf("%w: index %d, corpus size %d", ErrNotFound, index, len(snap.papers))
	}
	if s.summarizer == nil {
		return types.Paper{}, ErrNoSummarizer
	}

	p := snap.papers[index]
	text, err := s.summarizer.Summarize(ctx, summarize.RequestFor(p))
	if err != nil {
		return types.Paper{}, fmt.Errorf("summarizing %q: %w", p.Title, err)
	}
	p.ComputedSummary = text

	for {
		cur := s.current.Load()
		if cur.gen != snap.gen {
			s.log.Debug().Int("index", index).Msg("corpus replaced during summary; not attaching")
			break
		}
		if s.current.CompareAndSwap(cur, cur.withPaper(index, p)) {
			break
		}
	}
	return p, nil
}

func (s *Service) install(topic string, papers []types.Paper) {
	s.current.Store(newSnapshot(s.generation.Add(1), topic, papers))
}
