package backend

import (
	"errors"
	"fmt"
)

// ErrUnreachable marks a request that got no response at all, either
// because the server is down or the network dropped it.
var ErrUnreachable = errors.New("no response received from server")

// APIError is a non-2xx response reported by the server, with the
// optional detail message the backend attaches to failures.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("server returned %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("server returned %d", e.Status)
}

// IsStatus reports whether err is a server-reported failure with the
// given HTTP status code.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// IsUnreachable reports whether err means the server never answered.
func IsUnreachable(err error) bool {
	return errors.Is(err, ErrUnreachable)
}
