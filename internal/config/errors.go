package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingConfigKey is returned when a required option is absent from
	// every section searched.
	ErrMissingConfigKey = errors.New("missing configuration key")
	// ErrInvalidConfiguration is returned when options are present but their
	// values are malformed or contradict each other.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// MissingKeyError lists every [section] option pair that was searched.
type MissingKeyError struct {
	Option string
	Tried  []string
	Hint   string
}

func (e *MissingKeyError) Error() string {
	msg := fmt.Sprintf("%s: option %q not found; looked in %s", ErrMissingConfigKey, e.Option, strings.Join(e.Tried, ", "))
	if e.Hint != "" {
		msg += ". " + e.Hint
	}
	return msg
}

func (e *MissingKeyError) Unwrap() error { return ErrMissingConfigKey }

// InvalidValueError reports an option that is present but cannot be used.
type InvalidValueError struct {
	Section string
	Option  string
	Value   string
	Reason  string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("%s: [%s] %s = %q: %s", ErrInvalidConfiguration, e.Section, e.Option, e.Value, e.Reason)
}

func (e *InvalidValueError) Unwrap() error { return ErrInvalidConfiguration }

// Invalidf builds an ErrInvalidConfiguration error with a formatted message.
func Invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}
