package browser

import (
	"errors"
	"fmt"
)

// Sentinel errors used across the session port boundary. Driver adapters
// wrap their technology-specific failures into these so that callers can
// test with errors.Is without importing the driver package.
var (
	// ErrElementNotFound reports that a scoped or immediate query matched
	// no element.
	ErrElementNotFound = errors.New("element not found")

	// ErrStaleElement reports that an element reference is no longer
	// attached to the document. Treated as transient inside the resolver.
	ErrStaleElement = errors.New("stale element reference")

	// ErrSessionClosed reports an element or navigation operation against
	// a session whose connection has been torn down.
	ErrSessionClosed = errors.New("session closed")

	// ErrSessionNotStarted reports an operation against a session whose
	// first tab has not been registered yet.
	ErrSessionNotStarted = errors.New("session not started")
)

// InvalidStrategyError is returned when a Locator is constructed with a
// strategy outside the allow-list.
type InvalidStrategyError struct {
	Strategy string
}

func (e *InvalidStrategyError) Error() string {
	return fmt.Sprintf("invalid locator strategy: %q", e.Strategy)
}

// InvalidConditionError is returned when a wait condition name cannot be
// mapped to a known predicate. There is deliberately no fallback predicate:
// an unknown name is a construction-time failure.
type InvalidConditionError struct {
	Name string
}

func (e *InvalidConditionError) Error() string {
	return fmt.Sprintf("invalid wait condition: %q", e.Name)
}

// InvalidTabOperationError reports a tab operation whose precondition does
// not hold, such as starting a session twice.
type InvalidTabOperationError struct {
	Op     string
	Reason string
}

func (e *InvalidTabOperationError) Error() string {
	return fmt.Sprintf("invalid tab operation %s: %s", e.Op, e.Reason)
}
