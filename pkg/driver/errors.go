package driver

import "fmt"

// UnsupportedKindError is returned when a connection names a browser kind
// outside the dispatch table.
type UnsupportedKindError struct {
	Kind string
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("unsupported browser kind: %q", e.Kind)
}

// NotFoundError is returned when the driver binary named by a connection
// descriptor does not exist on disk.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("driver binary not found: %s", e.Path)
}

// ConfigError reports an invalid connection descriptor or capability set,
// detected before any launch is attempted.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "browser configuration error: " + e.Reason
}

// InitError wraps an underlying launch or session-negotiation failure.
// Raw driver-library errors reach callers only through this type.
type InitError struct {
	Kind string
	Err  error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("failed to initialize %s browser: %v", e.Kind, e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }
