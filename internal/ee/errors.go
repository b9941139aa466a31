package ee

import (
	"errors"
	"net/http"

	"google.golang.org/api/googleapi"
)

// Common Earth Engine API errors.
var (
	// ErrUnauthorized indicates invalid or expired credentials.
	ErrUnauthorized = errors.New("earthengine: unauthorised (invalid credentials)")

	// ErrForbidden indicates insufficient permissions, typically a project
	// that is not registered for Earth Engine access.
	ErrForbidden = errors.New("earthengine: forbidden (insufficient permissions)")

	// ErrNotFound indicates the requested asset or operation was not found.
	ErrNotFound = errors.New("earthengine: resource not found")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("earthengine: rate limit exceeded")

	// ErrQuotaExceeded indicates the export or compute quota was exhausted.
	ErrQuotaExceeded = errors.New("earthengine: quota exceeded")
)

// IsUnauthorized returns true if the error indicates invalid credentials.
func IsUnauthorized(err error) bool {
	if errors.Is(err, ErrUnauthorized) {
		return true
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusUnauthorized
	}
	return false
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusNotFound
	}
	return false
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusTooManyRequests
	}
	return false
}

// WrapError converts a Google API error to a more specific error type.
// The original error stays in the chain for logging.
func WrapError(err error) error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}

	switch gerr.Code {
	case http.StatusUnauthorized:
		return errors.Join(ErrUnauthorized, err)
	case http.StatusForbidden:
		if quotaError(gerr) {
			return errors.Join(ErrQuotaExceeded, err)
		}
		return errors.Join(ErrForbidden, err)
	case http.StatusNotFound:
		return errors.Join(ErrNotFound, err)
	case http.StatusTooManyRequests:
		return errors.Join(ErrRateLimited, err)
	default:
		return err
	}
}

// quotaError checks the error detail reasons for a quota marker. Earth
// Engine reports exhausted export quota as 403 with reason
// "quotaExceeded" rather than 429.
func quotaError(gerr *googleapi.Error) bool {
	for _, item := range gerr.Errors {
		if item.Reason == "quotaExceeded" || item.Reason == "rateLimitExceeded" {
			return true
		}
	}
	return false
}
