package service

import "errors"

var (
	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	ErrValidationNoSource       = errors.New("no bundle source was given")
	ErrValidationNoBundle       = errors.New("no bundle provided")
	ErrValidationBatchSize      = errors.New("batch size must not be negative")
	ErrValidationInvalidBundle  = errors.New("invalid bundle")
	ErrDependencyIsNotAvailable = errors.New("dependency is not available")
)
