package settings

import (
	"time"
)

type Settings struct {
	// HTTPTimeout bounds every probe request, zero means no limit
	HTTPTimeout time.Duration
	// HeadersTimeout bounds the header probe request
	HeadersTimeout time.Duration
	MaxBodySize    int64

	RateLimitDefaultCount int

	CertificatePort    int
	CertificateTimeout time.Duration

	// DNSTimeout bounds forward and reverse lookups, zero means no limit
	DNSTimeout time.Duration
}
