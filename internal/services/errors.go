package services

import (
	"fmt"
	"net/http"
)

type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindNotFound
	KindUpstreamAuth
	KindUpstreamUnavailable
)

const (
	MsgCityRequired        = "City parameter is required"
	MsgCityNotFound        = "City not found. Please check the spelling and try again."
	MsgInvalidAPIKey       = "Invalid API key. Please check your configuration."
	MsgServiceUnavailable  = "Weather service temporarily unavailable. Please try again later."
	MsgUpstreamUnreachable = "Unable to fetch weather data. Please try again later."
	MsgInternal            = "Internal server error"
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindUpstreamAuth:
		return "upstream_auth"
	case KindUpstreamUnavailable:
		return "upstream_unavailable"
	default:
		return "internal"
	}
}

// HTTPStatus is the status code the gateway answers with for this kind.
func (k ErrorKind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is a lookup failure already mapped to a client-safe message.
// Err keeps the underlying cause for logs only.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}
