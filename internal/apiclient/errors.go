package apiclient

import (
	"errors"
	"strconv"
)

const (
	msgSessionExpired = "Session expired. Please login again."
	msgForbidden      = "You do not have permission to perform this action."
	msgGeneric        = "An error occurred"
	msgNetworkFailure = "Network error. Please check your connection."
)

var (
	// ErrUnauthorized means the token was rejected. Callers must drop the session.
	ErrUnauthorized = errors.New(msgSessionExpired)
	ErrForbidden    = errors.New(msgForbidden)
)

// APIError is any non-2xx answer other than 401 and 403.
type APIError struct {
	Status           int
	Message          string
	ValidationErrors map[string]string
}

func (e *APIError) Error() string {
	return e.Message
}

// StatusText is used in logs only.
func (e *APIError) StatusText() string {
	return strconv.Itoa(e.Status) + " " + e.Message
}

// NetworkError wraps transport failures and unreadable response bodies.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return msgNetworkFailure
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// MessageOf returns the text a user should see for err.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	var netErr *NetworkError
	switch {
	case errors.Is(err, ErrUnauthorized):
		return msgSessionExpired
	case errors.Is(err, ErrForbidden):
		return msgForbidden
	case errors.As(err, &apiErr):
		if apiErr.Message == "" {
			return msgGeneric
		}
		return apiErr.Message
	case errors.As(err, &netErr):
		return msgNetworkFailure
	default:
		return msgGeneric
	}
}

// IsUnauthorized reports whether the session must be discarded.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
