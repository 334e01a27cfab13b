package resolver

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"
)

const (
	ClassNotFound  = "NXDOMAIN"
	ClassTimeout   = "TIMEOUT"
	ClassTemporary = "SERVFAIL"
	ClassOther     = "ERROR"
)

// Classify names the failure class of a resolver error.
func Classify(err error) string {
	var dnsErr *net.DNSError
	switch {
	case errors.As(err, &dnsErr) && dnsErr.IsNotFound:
		return ClassNotFound
	case errors.As(err, &dnsErr) && dnsErr.Timeout(), errors.Is(err, context.DeadlineExceeded):
		return ClassTimeout
	case errors.As(err, &dnsErr) && dnsErr.IsTemporary:
		return ClassTemporary
	default:
		return ClassOther
	}
}

// TrimDot strips the trailing dot of a fully qualified name.
func TrimDot(name string) string {
	return strings.TrimSuffix(name, ".")
}

// WithTimeout bounds a lookup when timeout is positive.
func WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
