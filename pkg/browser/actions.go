package browser

import (
	"context"
	"fmt"
	"time"
)

// Element-level and page-level operations on a session. Each call holds the
// session mutex for its full duration, including the resolver's poll loop,
// so that the driver's "current focused window" cannot change under an
// in-flight query.

// SetPollInterval overrides the resolver's polling interval for this session.
func (s *Session) SetPollInterval(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolver.SetPollInterval(d)
}

// Find resolves a single element under the given wait condition. A nil
// element with ok=false means the condition did not hold before the
// timeout; that is not an error. Pass a non-nil root for an immediate
// scoped query.
func (s *Session) Find(ctx context.Context, loc Locator, cond Condition, timeout time.Duration, root Element) (Element, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateOpen {
		return nil, false, s.stateErr()
	}
	return s.resolver.Resolve(ctx, loc, cond, timeout, root)
}

// FindAll resolves every element matching the locator, scrolling each into
// view on a best-effort basis. The result is empty, not an error, when
// nothing matched before the timeout.
func (s *Session) FindAll(ctx context.Context, loc Locator, timeout time.Duration, root Element) ([]Element, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateOpen {
		return nil, s.stateErr()
	}
	return s.resolver.ResolveAll(ctx, loc, timeout, true, root)
}

// Click resolves the locator under the clickability condition and clicks
// the element. Absence within the default timeout is silently a no-op;
// callers that need strictness use Find directly.
func (s *Session) Click(ctx context.Context, loc Locator, root Element) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateOpen {
		return s.stateErr()
	}
	el, ok, err := s.resolver.Resolve(ctx, loc, Clickable(), DefaultFindTimeout, root)
	if err != nil || !ok {
		return err
	}
	if err := el.Click(); err != nil {
		return fmt.Errorf("click %s: %w", loc, err)
	}
	return nil
}

// TypeText resolves the locator under the presence condition and sends the
// text to the element. Absence is silently a no-op.
func (s *Session) TypeText(ctx context.Context, loc Locator, text string, root Element) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateOpen {
		return s.stateErr()
	}
	el, ok, err := s.resolver.Resolve(ctx, loc, Presence(), DefaultFindTimeout, root)
	if err != nil || !ok {
		return err
	}
	if err := el.SendKeys(text); err != nil {
		return fmt.Errorf("type into %s: %w", loc, err)
	}
	return nil
}

// ClearField resolves the locator under the presence condition and clears
// the element. Absence is silently a no-op.
func (s *Session) ClearField(ctx context.Context, loc Locator, root Element) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateOpen {
		return s.stateErr()
	}
	el, ok, err := s.resolver.Resolve(ctx, loc, Presence(), DefaultFindTimeout, root)
	if err != nil || !ok {
		return err
	}
	if err := el.Clear(); err != nil {
		return fmt.Errorf("clear %s: %w", loc, err)
	}
	return nil
}

// Navigate loads the URL in the active tab.
func (s *Session) Navigate(url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateOpen {
		return s.stateErr()
	}
	return s.port.Navigate(url)
}

// Refresh reloads the active tab.
func (s *Session) Refresh() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateOpen {
		return s.stateErr()
	}
	return s.port.Refresh()
}

// Title returns the active tab's title.
func (s *Session) Title() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateOpen {
		return "", s.stateErr()
	}
	return s.port.Title()
}

// CurrentURL returns the active tab's URL.
func (s *Session) CurrentURL() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateOpen {
		return "", s.stateErr()
	}
	return s.port.CurrentURL()
}

// ExecuteScript runs a script in the active tab.
func (s *Session) ExecuteScript(script string, args []interface{}) (interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateOpen {
		return nil, s.stateErr()
	}
	return s.port.ExecuteScript(script, args)
}

// DeleteCookies clears cookies and storage for the given origin through
// the DevTools protocol, on drivers that support it.
func (s *Session) DeleteCookies(origin string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateOpen {
		return s.stateErr()
	}
	_, err := s.port.ExecuteCDP("Storage.clearDataForOrigin", map[string]interface{}{
		"origin":       origin,
		"storageTypes": "all",
	})
	return err
}

// stateErr maps a non-open state to its sentinel. Callers hold s.mu.
func (s *Session) stateErr() error {
	if s.state == StateClosed {
		return ErrSessionClosed
	}
	return ErrSessionNotStarted
}
