package navigation

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is the sentinel wrapped by every ConfigError
	ErrConfiguration = errors.New("navigation: configuration error")

	// ErrNoPathFound reports an exhausted open set or an exceeded iteration cap
	ErrNoPathFound = errors.New("navigation: no path found")

	// ErrSearchCancelled reports a search abandoned by Cancel, a newer search or a world rebuild
	ErrSearchCancelled = errors.New("navigation: search cancelled")
)

// ConfigError describes an invalid grid, source list or search request
// Nothing is produced by the failing operation; the caller must reconfigure
type ConfigError struct {
	Op     string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("navigation: %s: %s", e.Op, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfiguration
}

func configErrorf(op, format string, args ...any) error {
	return &ConfigError{Op: op, Reason: fmt.Sprintf(format, args...)}
}
