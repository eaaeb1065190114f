package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrUnauthorized indicates the bearer token was rejected (HTTP 401).
// Whoever receives it must clear the session and return to sign-in.
var ErrUnauthorized = errors.New("unauthorized: session expired")

// RejectedError is a non-2xx response other than 401 on an authenticated
// request.
type RejectedError struct {
	Status int
	Detail string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("request rejected (HTTP %d): %s", e.Status, e.Detail)
}

// UnreachableError indicates a transport failure: DNS, refused connection,
// timeout, or a body that could not be read.
type UnreachableError struct {
	Err error
}

func (e *UnreachableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("server unreachable: %v", e.Err)
	}
	return "server unreachable"
}

func (e *UnreachableError) Unwrap() error { return e.Err }

// InvalidResponseError indicates a 2xx body that does not match the
// expected shape.
type InvalidResponseError struct {
	Content json.RawMessage
	Err     error
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("invalid API response: %v", e.Err)
}

func (e *InvalidResponseError) Unwrap() error { return e.Err }

// IsUnauthorized reports whether err is (or wraps) ErrUnauthorized.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsNotFound reports whether err is a 404 rejection.
func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var rej *RejectedError
	if errors.As(err, &rej) {
		return rej.Status
	}
	if IsUnauthorized(err) {
		return http.StatusUnauthorized
	}
	return 0
}

// Describe turns err into a message suitable for showing next to the
// control that triggered it.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var (
		rej   *RejectedError
		unr   *UnreachableError
		inval *InvalidResponseError
	)
	switch {
	case IsUnauthorized(err):
		return "Session expired. Please login again."
	case errors.As(err, &rej):
		return rej.Detail
	case errors.As(err, &unr):
		return "Could not reach the server. Please try again."
	case errors.As(err, &inval):
		return "The server sent an unexpected response."
	default:
		return err.Error()
	}
}

// errorBody is the FastAPI error envelope. detail is either a string or a
// list of validation issues.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type validationIssue struct {
	Msg string `json:"msg"`
}

// extractDetail pulls a readable message out of an error body, falling back
// to a generic message when there is none.
func extractDetail(raw []byte, status int) string {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil && len(body.Detail) > 0 {
		var s string
		if err := json.Unmarshal(body.Detail, &s); err == nil && s != "" {
			return s
		}
		var issues []validationIssue
		if err := json.Unmarshal(body.Detail, &issues); err == nil && len(issues) > 0 {
			msgs := make([]string, 0, len(issues))
			for _, is := range issues {
				if is.Msg != "" {
					msgs = append(msgs, is.Msg)
				}
			}
			if len(msgs) > 0 {
				return strings.Join(msgs, "; ")
			}
		}
	}
	if text := http.StatusText(status); text != "" {
		return fmt.Sprintf("Request failed: %s", strings.ToLower(text))
	}
	return "Request failed"
}
