package framework

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks a malformed keyword framework.
	ErrConfiguration = errors.New("invalid keyword framework")
	// ErrUnknownCategory is returned when a lookup names a category the framework does not define.
	ErrUnknownCategory = errors.New("unknown category")
)

// ConfigurationError describes why a framework document was rejected.
type ConfigurationError struct {
	Category string
	Keyword  string
	Reason   string
}

func (e *ConfigurationError) Error() string {
	switch {
	case e.Category != "" && e.Keyword != "":
		return fmt.Sprintf("%s: category %q keyword %q: %s", ErrConfiguration, e.Category, e.Keyword, e.Reason)
	case e.Category != "":
		return fmt.Sprintf("%s: category %q: %s", ErrConfiguration, e.Category, e.Reason)
	default:
		return fmt.Sprintf("%s: %s", ErrConfiguration, e.Reason)
	}
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}
