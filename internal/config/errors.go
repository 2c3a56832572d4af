package config

import "errors"

var (
	ErrFailedToLoadConfig     = errors.New("failed to load config")
	ErrFailedToValidateConfig = errors.New("failed to validate config")
	ErrMissingAPIBaseURL      = errors.New("missing API base URL")
	ErrInvalidPollInterval    = errors.New("invalid poll interval")
	ErrInvalidPollBudget      = errors.New("invalid poll budget")
)
