package domain

import "errors"

// Fault taxonomy for the pipeline. None of these abort a run on their own: the
// orchestrator matches on them to pick a fallback path. Only ErrNoData and
// ErrNoSources surface to the caller.
var (
	// ErrAdapterUnavailable marks missing or invalid credentials.
	ErrAdapterUnavailable = errors.New("adapter unavailable")

	// ErrAdapterTransient marks network, rate-limit, or timeout faults.
	ErrAdapterTransient = errors.New("adapter transient failure")

	// ErrScoringParse marks a malformed structured scoring response.
	ErrScoringParse = errors.New("scoring parse failure")

	// ErrPersistence marks a rejected write by the storage collaborator.
	ErrPersistence = errors.New("persistence failure")

	// ErrNoSources means no adapters are registered and demo content is off.
	ErrNoSources = errors.New("no sources configured and fallback content disabled")

	// ErrNoData means no usable text was extracted across all sources.
	ErrNoData = errors.New("no text extracted from any source")
)
