package domain

import "errors"

// Filter errors
var (
	ErrUnknownFilter = errors.New("unknown filter kind")
)

// Comparison errors
var (
	ErrNoLibraries   = errors.New("no libraries to intersect")
	ErrNoAccounts    = errors.New("no accounts given")
	ErrAccountLookup = errors.New("account could not be resolved")
)

// Job errors
var (
	ErrJobNotFound = errors.New("comparison job not found")
)
