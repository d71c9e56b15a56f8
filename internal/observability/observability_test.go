package observability

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-radar/pkg/types"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"nonsense", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewLoggerJSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(types.LoggingConfig{Level: "warn", Format: "json"}, &buf)

	log.Info().Msg("dropped")
	log.Warn().Str("source", "arxiv").Msg("kept")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, `"source":"arxiv"`)
	assert.Contains(t, out, `"level":"warn"`)
}

func TestNewLoggerConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(types.LoggingConfig{Level: "info", Format: "console"}, &buf)
	log.Info().Msg("hello")

	assert.Contains(t, buf.String(), "hello")
	assert.False(t, strings.HasPrefix(buf.String(), "{"), "console output should not be JSON")
}

func TestMetricsCountersAndHandler(t *testing.T) {
	m := NewMetrics()
	m.SourceFetches.WithLabelValues("arxiv", OutcomeOK).Inc()
	m.SourceFetches.WithLabelValues("arxiv", OutcomeOK).Inc()
	m.CacheLookups.WithLabelValues("hit").Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SourceFetches.WithLabelValues("arxiv", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("hit")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "paper_radar_source_fetches_total")
}

func TestNewMetricsIndependentRegistries(t *testing.T) {
	a, b := NewMetrics(), NewMetrics()
	a.RelatedLookups.WithLabelValues("ok").Inc()
	assert.Equal(t, 0.0, testutil.ToFloat64(b.RelatedLookups.WithLabelValues("ok")))
}
