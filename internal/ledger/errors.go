package ledger

import "fmt"

// APIError is the base error for ledger API failures.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ledger API error (%d): %s", e.StatusCode, e.Detail)
}

// AuthError reports failed authentication (401/403).
type AuthError struct{ APIError }

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed (%d): %s", e.StatusCode, e.Detail)
}

// NotFoundError reports a missing resource (404).
type NotFoundError struct{ APIError }

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource not found (%d): %s", e.StatusCode, e.Detail)
}

// RateLimitError reports request throttling (429).
type RateLimitError struct{ APIError }

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded (%d): %s", e.StatusCode, e.Detail)
}

// ValidationError reports a rejected request payload (400).
type ValidationError struct{ APIError }

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%d): %s", e.StatusCode, e.Detail)
}

// statusError maps an HTTP status to a typed error, or nil for statuses
// below 400.
func statusError(status int, detail string) error {
	if status < 400 {
		return nil
	}
	base := APIError{StatusCode: status, Detail: detail}
	switch status {
	case 400:
		return &ValidationError{base}
	case 401, 403:
		return &AuthError{base}
	case 404:
		return &NotFoundError{base}
	case 429:
		return &RateLimitError{base}
	}
	return &base
}
