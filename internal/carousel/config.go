package carousel

import (
	"errors"
	"fmt"
	"time"

	"ouroboros/internal/indexmap"
	"ouroboros/internal/paging"
)

// ConfigurationError reports a carousel setup that cannot work. It is returned from
// New and Reconfigure and is not recoverable at runtime.
type ConfigurationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("carousel configuration: %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("carousel configuration: %s %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// IsConfigurationError reports whether err is a carousel or geometry configuration error
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	var geoErr *paging.ConfigurationError
	return errors.As(err, &cfgErr) || errors.As(err, &geoErr)
}

// Config is the integrator-facing configuration surface
type Config struct {
	ItemsPerPage     int
	BufferOverride   int // negative means derive from ItemsPerPage
	AutoPlay         bool
	AutoPlayInterval time.Duration
	Alignment        paging.Alignment
	StrictWrap       bool // require 2*buffer items before wrapping
	TrailingPage     bool // pad one extra page after the trailing buffer
	ExemptKeyboard   bool // keyboard moves ignore the per-gesture bound
	Trigger          Trigger
}

// DefaultConfig returns a single-item-per-page carousel without auto-play
func DefaultConfig() Config {
	return Config{
		ItemsPerPage:     1,
		BufferOverride:   -1,
		AutoPlay:         false,
		AutoPlayInterval: 9 * time.Second,
		Alignment:        paging.AlignCentered,
		ExemptKeyboard:   true,
		Trigger:          TriggerFocus,
	}
}

// Validate checks the configuration
func (c Config) Validate() error {
	if c.ItemsPerPage <= 0 {
		return &ConfigurationError{Field: "items per page", Reason: fmt.Sprintf("must be positive, got %d", c.ItemsPerPage)}
	}
	if c.AutoPlayInterval <= 0 {
		return &ConfigurationError{Field: "auto-play interval", Reason: fmt.Sprintf("must be positive, got %s", c.AutoPlayInterval)}
	}
	if c.Trigger != TriggerFocus && c.Trigger != TriggerScroll {
		return &ConfigurationError{Field: "trigger", Reason: fmt.Sprintf("unknown value %d", c.Trigger)}
	}
	return nil
}

// Buffer returns the number of duplicate slots on each side
func (c Config) Buffer() int {
	if c.BufferOverride >= 0 {
		return c.BufferOverride
	}
	return indexmap.DefaultBuffer(c.ItemsPerPage)
}

// trailing returns the trailing pad used when building a layout
func (c Config) trailing() int {
	if c.TrailingPage {
		return c.ItemsPerPage
	}
	return 0
}

// ParseTrigger parses "focus" or "scroll"
func ParseTrigger(s string) (Trigger, error) {
	switch s {
	case "", "focus":
		return TriggerFocus, nil
	case "scroll":
		return TriggerScroll, nil
	default:
		return TriggerFocus, fmt.Errorf("unknown jump trigger %q", s)
	}
}
