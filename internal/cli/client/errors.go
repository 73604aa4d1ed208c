package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnavailable wraps any failure that happened before a response was
// obtained: connection refused, DNS failure, request timeout. Callers must
// not treat it as a credential problem.
var ErrUnavailable = errors.New("portal unreachable")

// ErrUnauthorized matches a 401 from a protected endpoint, meaning a
// previously accepted token was rejected. Use errors.Is to detect it.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is a non-2xx response from the portal, carrying the
// server-supplied detail message when one was present.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("portal returned status %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("portal returned status %d", e.Status)
}

func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}
