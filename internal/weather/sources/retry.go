package sources

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// Backoff controls how failed fetches are retried.
type Backoff struct {
	MaxRetries int
	Initial    time.Duration
	Max        time.Duration
}

// delay returns the wait before retry n, doubling from Initial up to Max.
func (b Backoff) delay(n int) time.Duration {
	d := b.Initial * time.Duration(math.Pow(2, float64(n)))
	if b.Max > 0 && d > b.Max {
		d = b.Max
	}
	return d
}

var errCircuitOpen = errors.New("circuit breaker open")

// retry runs fetch through the circuit breaker until it succeeds, fails with
// a permanent status, or the retries are used up.
func retry(ctx context.Context, b Backoff, cb *gobreaker.CircuitBreaker, fetch func() (*http.Response, error)) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := cb.Execute(func() (interface{}, error) {
			return fetch()
		})
		if err == nil {
			return result.(*http.Response), nil
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}

		var serr *StatusError
		if (errors.As(err, &serr) && !serr.Temporary()) || attempt >= b.MaxRetries {
			return nil, err
		}

		timer := time.NewTimer(b.delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}
