package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoReport indicates an audit was requested without report text or a file.
	ErrNoReport = errors.New("no report text or file provided")

	// ErrUnsupportedType indicates a file extension no extractor handles.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrLLMUnavailable indicates the LLM service is not configured or unreachable.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrSearchUnavailable indicates the retrieval backend is not configured.
	ErrSearchUnavailable = errors.New("search backend unavailable")

	// ErrInvalidResponse indicates the generative backend returned output
	// that does not follow the requested format.
	ErrInvalidResponse = errors.New("invalid model response")

	// ErrRenderFailed indicates the report document could not be produced.
	ErrRenderFailed = errors.New("render failed")

	// Retrieval backend errors.

	// ErrUnauthorized indicates invalid or expired backend credentials.
	ErrUnauthorized = errors.New("unauthorised")

	// ErrForbidden indicates the credentials lack permission on the engine.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound indicates the configured engine or serving config does not exist.
	ErrNotFound = errors.New("not found")

	// ErrRateLimited indicates the backend quota or rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
