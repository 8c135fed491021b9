package browser

import (
	"context"
	"errors"
	"time"
)

// Default timing for polling resolution.
const (
	DefaultFindTimeout  = 10 * time.Second
	DefaultPollInterval = 500 * time.Millisecond
)

// Resolver turns a (locator, condition, timeout, optional root) request
// into zero-or-one or zero-or-many live element references, polling until
// the condition holds or the deadline passes.
//
// A timeout is not an error: Resolve reports it through the ok result so
// callers decide whether absence is expected. Stale references encountered
// mid-poll are transient and retried within the same deadline; any other
// driver failure aborts the resolution.
type Resolver struct {
	port     Port
	interval time.Duration
}

// NewResolver creates a resolver polling at DefaultPollInterval.
func NewResolver(port Port) *Resolver {
	return &Resolver{port: port, interval: DefaultPollInterval}
}

// SetPollInterval overrides the polling interval. Values <= 0 are ignored.
func (r *Resolver) SetPollInterval(d time.Duration) {
	if d > 0 {
		r.interval = d
	}
}

// Resolve resolves a single element. If root is non-nil the search is one
// immediate query scoped to root's descendants, with no polling and no
// condition evaluation: the caller has already established the surrounding
// context exists, and a wait here would only mask a true "not present
// under this root" result.
//
// Without a root, Resolve polls the document until cond holds, the timeout
// elapses, or ctx is cancelled. The returned element may be nil even when
// ok is true for page-level conditions (title, URL, staleness,
// invisibility-by-absence).
func (r *Resolver) Resolve(ctx context.Context, loc Locator, cond Condition, timeout time.Duration, root Element) (Element, bool, error) {
	if root != nil {
		el, err := root.FindElement(loc)
		if err != nil {
			if errors.Is(err, ErrElementNotFound) {
				return nil, false, nil
			}
			return nil, false, err
		}
		return el, true, nil
	}

	deadline := time.Now().Add(timeout)
	for {
		el, ok, err := evaluate(r.port, loc, cond)
		switch {
		case err == nil && ok:
			return el, true, nil
		case err != nil && !errors.Is(err, ErrStaleElement):
			return nil, false, err
		}

		if !r.sleep(ctx, deadline) {
			return nil, false, nil
		}
	}
}

// ResolveAll resolves every element matching the locator. Scoped searches
// are immediate; unscoped searches poll until at least one element is
// present or the deadline passes, returning an empty slice on expiry.
// When scrollIntoView is set, each found element is brought into view on a
// best-effort basis; scroll failures never fail the call.
func (r *Resolver) ResolveAll(ctx context.Context, loc Locator, timeout time.Duration, scrollIntoView bool, root Element) ([]Element, error) {
	if root != nil {
		els, err := root.FindElements(loc)
		if err != nil {
			return nil, err
		}
		return r.maybeScroll(els, scrollIntoView), nil
	}

	deadline := time.Now().Add(timeout)
	for {
		els, err := r.port.FindElements(loc)
		switch {
		case err == nil && len(els) > 0:
			return r.maybeScroll(els, scrollIntoView), nil
		case err != nil && !errors.Is(err, ErrStaleElement):
			return nil, err
		}

		if !r.sleep(ctx, deadline) {
			return nil, nil
		}
	}
}

func (r *Resolver) maybeScroll(els []Element, scroll bool) []Element {
	if scroll {
		for _, el := range els {
			// Element may have gone stale between find and scroll.
			_ = el.ScrollIntoView()
		}
	}
	return els
}

// sleep blocks for one poll interval, clamped to the deadline. It reports
// false when the deadline has passed or ctx was cancelled.
func (r *Resolver) sleep(ctx context.Context, deadline time.Time) bool {
	remaining := time.Until(deadline)
	if remaining <= 0 {
		return false
	}
	wait := r.interval
	if wait > remaining {
		wait = remaining
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
