package rhythm

import "errors"

var (
	// ErrInvalidParameter reports a parameter with no physical meaning
	// (non-positive tempo or sample rate, negative duration or offset).
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrUpstreamUnavailable reports a failing or malformed onset-strength
	// or tempo provider. The core cannot substitute a valid signal.
	ErrUpstreamUnavailable = errors.New("upstream provider unavailable")
)
