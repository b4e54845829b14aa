package model

import "errors"

// Sentinel errors for the failure taxonomy. Callers discriminate with
// errors.Is; each failure is surfaced once, no automatic retries.
var (
	// ErrNotConfigured means no API credential could be resolved.
	ErrNotConfigured = errors.New("api key not configured")

	// ErrNoClaims means claim extraction produced zero candidates.
	// Distinct from network failures: the page simply has nothing to check.
	ErrNoClaims = errors.New("no verifiable claims found")

	// ErrTransport wraps a non-2xx response or network failure from the
	// chat-completion endpoint.
	ErrTransport = errors.New("api request failed")

	// ErrMalformedResponse means the reply had no content, no locatable
	// JSON object, or JSON that fails the target schema.
	ErrMalformedResponse = errors.New("invalid response format")
)
