package discoveryengine

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/disclosure-auditor/internal/core/domain"
)

// wrapError maps Google API status codes onto domain errors.
// The original error text is kept so it reaches the audit logs.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return fmt.Errorf("%w: %w", domain.ErrSearchUnavailable, err)
	}

	switch gerr.Code {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", domain.ErrUnauthorized, gerr.Message)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", domain.ErrForbidden, gerr.Message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, gerr.Message)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", domain.ErrRateLimited, gerr.Message)
	default:
		return fmt.Errorf("%w: %w", domain.ErrSearchUnavailable, err)
	}
}

// retryAfter returns the Retry-After header of a 429 response in seconds.
func retryAfter(err error) int {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) || gerr.Code != http.StatusTooManyRequests || gerr.Header == nil {
		return 0
	}
	var secs int
	if _, scanErr := fmt.Sscanf(gerr.Header.Get("Retry-After"), "%d", &secs); scanErr != nil {
		return 0
	}
	return secs
}
