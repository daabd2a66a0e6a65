package domain

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnknownContext    = errors.New("unknown negotiation context")
	ErrInvalidStrategy   = errors.New("invalid strategy")
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrGenerationUnavailable never leaves the profile extractor or the composer;
	// both turn it into their deterministic fallback.
	ErrGenerationUnavailable = errors.New("generation unavailable")

	ErrNoApplicableTemplate = errors.New("no applicable template")
	ErrStoreClosed          = errors.New("store closed")
)
