package github

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v57/github"
)

// Kind classifies a failed API call
type Kind string

const (
	// KindNotFound indicates the addressed issue or comment does not exist
	KindNotFound Kind = "not_found"
	// KindAuthenticationFailed indicates the credentials were rejected (401/403)
	KindAuthenticationFailed Kind = "authentication_failed"
	// KindRequestFailed indicates any other non-2xx response
	KindRequestFailed Kind = "request_failed"
	// KindDeserialization indicates the response body did not have the expected shape
	KindDeserialization Kind = "deserialization"
	// KindTransport indicates a connection-level failure
	KindTransport Kind = "transport"
)

// Sentinel errors matched by errors.Is against an *Error of the same kind.
var (
	ErrNotFound             = errors.New("resource not found")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrRequestFailed        = errors.New("request failed")
	ErrDeserialization      = errors.New("malformed response")
	ErrTransport            = errors.New("transport failure")

	// ErrInvalidArgument is returned before any request is sent
	ErrInvalidArgument = errors.New("invalid argument")
)

var kindSentinels = map[Kind]error{
	KindNotFound:             ErrNotFound,
	KindAuthenticationFailed: ErrAuthenticationFailed,
	KindRequestFailed:        ErrRequestFailed,
	KindDeserialization:      ErrDeserialization,
	KindTransport:            ErrTransport,
}

// Error describes a failed API call
type Error struct {
	Kind       Kind
	Method     string
	URL        string
	StatusCode int    // Zero for transport failures
	Body       []byte // Raw response body, kept for diagnostics
	Message    string // "message" field of the service's error document, if any
	Err        error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s %s", e.Method, e.URL)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}

	switch {
	case e.Message != "":
		msg += ": " + e.Message
	case e.Err == nil:
		msg += ": " + kindSentinels[e.Kind].Error()
	}

	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind
func (e *Error) Is(target error) bool {
	sentinel, ok := kindSentinels[e.Kind]
	return ok && target == sentinel
}

// IsNotFound reports whether err is a NotFound API error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// kindForStatus maps a non-2xx status code to an error kind
func kindForStatus(status int) Kind {
	switch status {
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindAuthenticationFailed
	default:
		return KindRequestFailed
	}
}

// checkResponse returns nil for 2xx responses and a classified *Error otherwise
func checkResponse(req *http.Request, status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}

	apiErr := &Error{
		Kind:       kindForStatus(status),
		Method:     req.Method,
		URL:        req.URL.String(),
		StatusCode: status,
		Body:       body,
	}

	var doc github.ErrorResponse
	if len(body) > 0 && json.Unmarshal(body, &doc) == nil {
		apiErr.Message = doc.Message
	}

	return apiErr
}

func transportError(req *http.Request, err error) *Error {
	return &Error{
		Kind:   KindTransport,
		Method: req.Method,
		URL:    req.URL.String(),
		Err:    err,
	}
}

func deserializationError(req *http.Request, status int, body []byte, err error) *Error {
	return &Error{
		Kind:       KindDeserialization,
		Method:     req.Method,
		URL:        req.URL.String(),
		StatusCode: status,
		Body:       body,
		Err:        err,
	}
}
