// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"math"

	"golang.org/x/time/rate"
)

// Limiter paces requests to one provider with a token bucket. It is safe for
// concurrent use. A nil *Limiter never blocks.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter returns a limiter allowing ratePerSecond sustained requests with
// a burst of one. A non-positive rate disables pacing.
func NewLimiter(ratePerSecond float64) *Limiter {
	if ratePerSecond <= 0 {
		return &Limiter{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	burst := int(math.Max(1, math.Floor(ratePerSecond)))
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst)}
}

// Wait blocks until a request is allowed or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return nil
	}
	return l.limiter.Wait(ctx)
}
