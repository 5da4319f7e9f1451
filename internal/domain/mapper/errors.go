package mapper

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is matched by every ConfigError.
var ErrInvalidConfig = errors.New("invalid generation config")

// ConfigError reports malformed bounds for one metric kind.
type ConfigError struct {
	Metric string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Metric == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidConfig, e.Reason)
	}
	return fmt.Sprintf("%s %q: %s", ErrInvalidConfig, e.Metric, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidConfig.
func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }
