package model

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorKind string

const (
	ErrorKindInvalidInput    ErrorKind = "INVALID_INPUT"
	ErrorKindNotFound        ErrorKind = "NOT_FOUND"
	ErrorKindRateLimited     ErrorKind = "RATE_LIMIT_REACHED"
	ErrorKindUnauthenticated ErrorKind = "UNAUTHENTICATED"
	ErrorKindUpstreamFailure ErrorKind = "FETCH_ERROR"
)

// StatsError is the classified failure returned by the stats service and the controllers
type StatsError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *StatsError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *StatsError) Unwrap() error {
	return e.Err
}

func NewStatsError(kind ErrorKind, message string, err error) *StatsError {
	return &StatsError{Kind: kind, Message: message, Err: err}
}

// KindToHTTPStatus give the status code exposed to clients for each kind of error
func KindToHTTPStatus(kind ErrorKind) int {
	switch kind {
	case ErrorKindInvalidInput:
		return http.StatusBadRequest
	case ErrorKindNotFound:
		return http.StatusNotFound
	case ErrorKindRateLimited:
		return http.StatusTooManyRequests
	case ErrorKindUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

type APIError struct {
	Error string    `json:"error"`
	Code  ErrorKind `json:"code"`
}

// NewAPIError build the response body for an error
// errors that were not classified are reported as a generic fetch error without leaking details
func NewAPIError(errReason error) (int, APIError) {
	var statsErr *StatsError
	if !errors.As(errReason, &statsErr) {
		return http.StatusInternalServerError, APIError{
			Error: "internal server error. contact our support with the reason code for assistance",
			Code:  ErrorKindUpstreamFailure,
		}
	}

	return KindToHTTPStatus(statsErr.Kind), APIError{
		Error: statsErr.Message,
		Code:  statsErr.Kind,
	}
}
