// Package retry provides one bounded-retry combinator shared by the
// pieces of the orchestrator that tolerate transient failures, instead of
// fixed sleeps scattered through call sites.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy bounds a retried operation: how many attempts in total, how long
// to wait between them, and whether the delay grows exponentially.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	// Values below 1 are treated as 1.
	MaxAttempts uint64

	// Delay is the wait between attempts (the initial wait when
	// Exponential is set).
	Delay time.Duration

	// Exponential selects exponential backoff instead of a constant delay.
	Exponential bool
}

// Do runs op until it succeeds, the policy's attempts are exhausted, or
// ctx is cancelled. Wrap an error with Permanent to stop retrying early.
func Do(ctx context.Context, p Policy, op func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var b backoff.BackOff
	if p.Exponential {
		eb := backoff.NewExponentialBackOff()
		eb.InitialInterval = p.Delay
		b = eb
	} else {
		b = backoff.NewConstantBackOff(p.Delay)
	}
	b = backoff.WithMaxRetries(b, attempts-1)
	b = backoff.WithContext(b, ctx)

	return backoff.Retry(op, b)
}

// Permanent marks err as non-retryable: Do returns it immediately.
func Permanent(err error) error {
	return backoff.Permanent(err)
}
