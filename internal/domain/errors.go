package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrUnsupportedSite  = errors.New("no site configuration matches URL")
	ErrFetch            = errors.New("page fetch failed")
	ErrEmptyExtraction  = errors.New("no recipe content extracted")
	ErrInvalidStepIndex = errors.New("step number out of range")
	ErrSessionNotFound  = errors.New("no recipe session found")
	ErrNoCurrentStep    = errors.New("no step selected yet")
	ErrNotFound         = errors.New("not found")
)
