// Package server provides the HTTP API for the candidate intake form.
package server

import (
	"fmt"
	"net/http"
)

// ErrMissingParameter indicates a required query parameter was absent.
type ErrMissingParameter struct {
	Name string
}

func (e *ErrMissingParameter) Error() string {
	return fmt.Sprintf("%s parameter is required", e.Name)
}

// ErrBadRequest indicates an unreadable or incomplete request body.
type ErrBadRequest struct {
	Message string
}

func (e *ErrBadRequest) Error() string {
	return e.Message
}

// ErrUnverifiedEmail indicates a submission without a valid
// verification token for its email address.
type ErrUnverifiedEmail struct{}

func (e *ErrUnverifiedEmail) Error() string {
	return "Email not verified"
}

// ErrUpstream indicates a failed fetch from the location source.
type ErrUpstream struct {
	Resource string
}

func (e *ErrUpstream) Error() string {
	return fmt.Sprintf("Unable to fetch %s", e.Resource)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrMissingParameter, *ErrBadRequest:
		return http.StatusBadRequest
	case *ErrUnverifiedEmail:
		return http.StatusForbidden
	case *ErrUpstream:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
