package google

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/wsbridge/internal/core/domain"
)

// Error reasons that make a 403 a quota problem rather than an access problem.
var rateLimitReasons = map[string]bool{
	"rateLimitExceeded":     true,
	"userRateLimitExceeded": true,
	"quotaExceeded":         true,
	"dailyLimitExceeded":    true,
}

// IsUnauthorized returns true if the error indicates a rejected credential:
// a 401, or a 403 that is not about quota.
func IsUnauthorized(err error) bool {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return false
	}
	switch gerr.Code {
	case http.StatusUnauthorized:
		return true
	case http.StatusForbidden:
		return !hasRateLimitReason(gerr)
	default:
		return false
	}
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusNotFound
	}
	var perr *domain.ProviderError
	if errors.As(err, &perr) {
		return perr.StatusCode == http.StatusNotFound
	}
	return false
}

// IsRateLimited returns true if the error indicates rate limiting:
// a 429, or a 403 carrying a quota reason.
func IsRateLimited(err error) bool {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return false
	}
	if gerr.Code == http.StatusTooManyRequests {
		return true
	}
	return gerr.Code == http.StatusForbidden && hasRateLimitReason(gerr)
}

// RetryAfter extracts the Retry-After delay (in seconds) from a provider
// error, or 0 if none was sent.
func RetryAfter(err error) time.Duration {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) || gerr.Header == nil {
		return 0
	}
	secs, convErr := strconv.Atoi(strings.TrimSpace(gerr.Header.Get("Retry-After")))
	if convErr != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// NormalizeError maps any failure of operation op to one of the domain
// error kinds. Errors that are already normalised pass through unchanged.
func NormalizeError(op string, err error) error {
	if err == nil {
		return nil
	}

	var (
		authErr   *domain.AuthenticationError
		provErr   *domain.ProviderError
		dataErr   *domain.DataIntegrityError
		configErr *domain.ConfigurationError
	)
	if errors.As(err, &authErr) || errors.As(err, &provErr) || errors.As(err, &dataErr) || errors.As(err, &configErr) {
		return err
	}

	if errors.Is(err, domain.ErrNotSignedIn) {
		return &domain.AuthenticationError{Op: op, Message: "no active credential", Err: err}
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		msg := gerr.Message
		if msg == "" {
			msg = http.StatusText(gerr.Code)
		}
		if IsUnauthorized(err) {
			return &domain.AuthenticationError{Op: op, StatusCode: gerr.Code, Message: msg, Err: err}
		}
		return &domain.ProviderError{Op: op, StatusCode: gerr.Code, Message: msg, Err: err}
	}

	switch {
	case errors.Is(err, context.Canceled):
		return &domain.ProviderError{Op: op, Message: "request canceled", Err: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &domain.ProviderError{Op: op, Message: "request timed out", Err: err}
	default:
		return &domain.ProviderError{Op: op, Message: err.Error(), Err: err}
	}
}

// MalformedResponse reports a payload missing a required field.
func MalformedResponse(op, what string) error {
	return &domain.ProviderError{Op: op, Message: "malformed response: " + what}
}

func hasRateLimitReason(gerr *googleapi.Error) bool {
	for _, item := range gerr.Errors {
		if rateLimitReasons[item.Reason] {
			return true
		}
	}
	return false
}
