package service

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Scalingo/sclng-yearly-stats/model"
	"github.com/google/go-github/v66/github"
)

// GraphQLErrors wraps the errors array of a graphql answer
type GraphQLErrors []model.GraphQLError

func (e GraphQLErrors) Error() string {
	messages := make([]string, 0, len(e))
	for _, gqlErr := range e {
		messages = append(messages, gqlErr.Message)
	}
	return strings.Join(messages, "; ")
}

// ClassifyUpstreamError is the only place deciding which kind of failure an upstream error is.
// Typed go-github errors and graphql error types are trusted first, then the error text is matched.
func ClassifyUpstreamError(err error) model.ErrorKind {
	if err == nil {
		return ""
	}

	var rateLimitErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateLimitErr) || errors.As(err, &abuseErr) {
		return model.ErrorKindRateLimited
	}

	var responseErr *github.ErrorResponse
	if errors.As(err, &responseErr) && responseErr.Response != nil {
		switch responseErr.Response.StatusCode {
		case http.StatusUnauthorized:
			return model.ErrorKindUnauthenticated
		case http.StatusNotFound:
			return model.ErrorKindNotFound
		case http.StatusTooManyRequests:
			return model.ErrorKindRateLimited
		}
	}

	var gqlErrs GraphQLErrors
	if errors.As(err, &gqlErrs) {
		for _, gqlErr := range gqlErrs {
			switch gqlErr.Type {
			case "NOT_FOUND":
				return model.ErrorKindNotFound
			case "RATE_LIMITED":
				return model.ErrorKindRateLimited
			}
		}
	}

	return ClassifyErrorMessage(err.Error())
}

// ClassifyErrorMessage match the upstream error text.
// This is a heuristic on github wording, which is not a stable contract: update the rules here only.
func ClassifyErrorMessage(message string) model.ErrorKind {
	lower := strings.ToLower(message)

	switch {
	case strings.Contains(lower, "not found"):
		return model.ErrorKindNotFound
	case strings.Contains(lower, "rate limit"):
		return model.ErrorKindRateLimited
	case strings.Contains(lower, "auth"):
		return model.ErrorKindUnauthenticated
	default:
		return model.ErrorKindUpstreamFailure
	}
}

// upstreamMessage extract the human readable part of an upstream error
func upstreamMessage(err error) string {
	var rateLimitErr *github.RateLimitError
	if errors.As(err, &rateLimitErr) && rateLimitErr.Message != "" {
		return rateLimitErr.Message
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) && abuseErr.Message != "" {
		return abuseErr.Message
	}

	var responseErr *github.ErrorResponse
	if errors.As(err, &responseErr) && responseErr.Message != "" {
		return responseErr.Message
	}

	return err.Error()
}
