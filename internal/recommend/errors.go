package recommend

import "errors"

var (
	// ErrFetchFailed is the single failure kind of a recommendation call.
	// Every error returned by Recommend wraps it.
	ErrFetchFailed = errors.New("recommendation fetch failed")

	// ErrUnavailable indicates the service could not be reached.
	ErrUnavailable = errors.New("recommendation service unavailable")

	// ErrBadStatus indicates a non-2xx HTTP status.
	ErrBadStatus = errors.New("recommendation service returned non-success status")

	// ErrInvalidResponse indicates a body that is not an accepted shape.
	ErrInvalidResponse = errors.New("invalid recommendation response")

	// ErrTimeout indicates the configured request timeout elapsed.
	ErrTimeout = errors.New("recommendation request timed out")
)
