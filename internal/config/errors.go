package config

import "errors"

// Config failures. Load and Validate wrap one of these; a bad reputation
// bound wraps both ErrReputationRange and ErrInvalidConfig.
var (
	ErrInvalidConfig   = errors.New("invalid config")
	ErrLoadConfig      = errors.New("load config failed")
	ErrReputationRange = errors.New("reputation range invalid")
)
