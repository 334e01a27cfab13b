package probe

import (
	"errors"
)

type Kind int

const (
	Connectivity Kind = iota
	Headers
	Latency
	RateLimit
	Certificate
	DNS
	ReverseDNS
)

func (k Kind) String() string {
	switch k {
	case Connectivity:
		return "connectivity"
	case Headers:
		return "headers"
	case Latency:
		return "latency"
	case RateLimit:
		return "ratelimit"
	case Certificate:
		return "certificate"
	case DNS:
		return "dns"
	case ReverseDNS:
		return "reversedns"
	}
	return "unknown"
}

type ErrorKind int

const (
	// RequestError means the probe input was malformed or the request could not be built
	RequestError ErrorKind = iota + 1
	// TransportError means the request was sent but no response came back
	TransportError
	// ResponseError means the remote end answered with a failure status
	ResponseError
	// VerificationError means the certificate chain did not pass verification
	VerificationError
	// ResolverError means the name resolution failed
	ResolverError
)

func (k ErrorKind) String() string {
	switch k {
	case RequestError:
		return "request"
	case TransportError:
		return "transport"
	case ResponseError:
		return "response"
	case VerificationError:
		return "verification"
	case ResolverError:
		return "resolver"
	}
	return "unknown"
}

// Error is the classified failure of a single probe invocation.
// Message is shown to the caller as is, Reason carries the lower level
// detail when there is one.
type Error struct {
	Kind    ErrorKind
	Message string
	Reason  string
	cause   error
}

func NewError(kind ErrorKind, message string, cause error) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
		cause:   cause,
	}
}

func (e *Error) WithReason(reason string) *Error {
	e.Reason = reason
	return e
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func AsError(err error) (*Error, bool) {
	var probeErr *Error
	if errors.As(err, &probeErr) {
		return probeErr, true
	}
	return nil, false
}

// KindOf returns the kind of a classified error, or zero for any other error.
func KindOf(err error) ErrorKind {
	if probeErr, ok := AsError(err); ok {
		return probeErr.Kind
	}
	return 0
}
