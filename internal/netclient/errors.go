package netclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/sergeii/toolbelt/internal/core/entities/probe"
)

// StatusError means a response was received with a status that is not tolerated.
type StatusError struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed with status %s", e.Status)
}

func (e *StatusError) StatusText() string {
	return statusText(e.StatusCode, e.Status)
}

// NoResponseError means the request was sent but nothing usable came back.
type NoResponseError struct {
	Method string
	URL    string
	Err    error
}

func (e *NoResponseError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Err)
}

func (e *NoResponseError) Unwrap() error {
	return e.Err
}

// SetupError means the request could not be built or sent at all.
type SetupError struct {
	Err error
}

func (e *SetupError) Error() string {
	return e.Err.Error()
}

func (e *SetupError) Unwrap() error {
	return e.Err
}

// KindOf tells which stage of a fetch an error comes from.
func KindOf(err error) probe.ErrorKind {
	var statusErr *StatusError
	var noRespErr *NoResponseError
	switch {
	case errors.As(err, &statusErr):
		return probe.ResponseError
	case errors.As(err, &noRespErr):
		return probe.TransportError
	default:
		return probe.RequestError
	}
}

// Describe turns a fetch error into a classified probe error.
// The message starts with prefix and then names exactly one of:
// the received status and body, the request that got no response,
// or the raw error that kept the request from being sent.
func Describe(prefix string, err error) *probe.Error {
	var statusErr *StatusError
	var noRespErr *NoResponseError
	switch {
	case errors.As(err, &statusErr):
		msg := fmt.Sprintf(
			"%s Response Status: %d. Data: %s.",
			prefix, statusErr.StatusCode, FormatData(statusErr.Body),
		)
		return probe.NewError(probe.ResponseError, msg, err)
	case errors.As(err, &noRespErr):
		msg := fmt.Sprintf(
			"%s No response received. Request Method: %s. URL: %s.",
			prefix, noRespErr.Method, noRespErr.URL,
		)
		return probe.NewError(probe.TransportError, msg, err).WithReason(noRespErr.Err.Error())
	default:
		msg := fmt.Sprintf("%s Message: %s.", prefix, err)
		return probe.NewError(probe.RequestError, msg, err)
	}
}

// IsStructured reports whether the body is a JSON object or array.
func IsStructured(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return false
	}
	if trimmed[0] != '{' && trimmed[0] != '[' {
		return false
	}
	return sonic.Valid(trimmed)
}

// FormatData renders a response body for an error message.
// Structured bodies are indented with two spaces, anything else is quoted as a JSON string.
func FormatData(body []byte) string {
	if IsStructured(body) {
		var buf bytes.Buffer
		if err := json.Indent(&buf, bytes.TrimSpace(body), "", "  "); err == nil {
			return buf.String()
		}
	}
	quoted, err := sonic.MarshalString(string(body))
	if err != nil {
		return string(body)
	}
	return quoted
}

// Reason returns the lower level cause of a fetch error as text.
func Reason(err error) string {
	var noRespErr *NoResponseError
	var setupErr *SetupError
	switch {
	case errors.As(err, &noRespErr):
		return noRespErr.Err.Error()
	case errors.As(err, &setupErr):
		return setupErr.Err.Error()
	default:
		return err.Error()
	}
}
