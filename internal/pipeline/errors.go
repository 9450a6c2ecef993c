package pipeline

import "errors"

// Sentinel errors for pipeline operations.
var (
	ErrInvalidRequest = errors.New("invalid brand request")
	ErrJobNotFound    = errors.New("not found")
	ErrLogoGeneration = errors.New("logo generation failed")
)
