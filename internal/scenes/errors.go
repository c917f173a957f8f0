package scenes

import (
	"errors"
	"fmt"
)

// ErrNetworkError indicates a transport-level failure before any
// service response was received.
var ErrNetworkError = errors.New("network error communicating with TerraLens")

// BadQuery indicates the service rejected the search query (HTTP 400).
// The message is the response body.
type BadQuery struct {
	Message string
}

func (e *BadQuery) Error() string { return e.Message }

// InvalidAPIKey indicates a missing or rejected API key.
type InvalidAPIKey struct {
	Message string
}

func (e *InvalidAPIKey) Error() string { return e.Message }

// MissingResource indicates the requested scene or workspace does not
// exist (HTTP 404). The message is the response body.
type MissingResource struct {
	Message string
}

func (e *MissingResource) Error() string { return e.Message }

// APIError is any other non-success response from the service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// checkResponse maps a service status code and body to a domain error.
// Success statuses map to nil.
func checkResponse(status int, body []byte) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == 400:
		return &BadQuery{Message: string(body)}
	case status == 401 || status == 403:
		return &InvalidAPIKey{Message: string(body)}
	case status == 404:
		return &MissingResource{Message: string(body)}
	default:
		return &APIError{StatusCode: status, Message: string(body)}
	}
}
