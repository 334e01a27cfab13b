package report

import (
	"time"

	"github.com/sergeii/toolbelt/internal/core/entities/dname"
	"github.com/sergeii/toolbelt/internal/core/entities/header"
)

type ContentType int

const (
	Text ContentType = iota
	Structured
)

func (ct ContentType) String() string {
	if ct == Structured {
		return "structured"
	}
	return "text"
}

type Connectivity struct {
	Endpoint    string
	StatusCode  int
	ContentType ContentType
	Body        []byte
}

type Headers struct {
	URL             string
	StatusCode      int
	RequestHeaders  header.List
	ResponseHeaders header.List
}

type Latency struct {
	Endpoint         string
	TimesRequested   int
	TotalLatencyMs   float64
	AverageLatencyMs float64
}

type RateLimit struct {
	TargetURL           string
	TotalRequests       int
	SuccessfulRequests  int
	RateLimitedRequests int
	FailedRequests      int
}

type Certificate struct {
	Host      string
	Port      int
	ValidFrom time.Time
	ValidTo   time.Time
	Issuer    dname.Name
	Subject   dname.Name
	Expired   bool
}

type DNS struct {
	Domain  string
	Address string
	Family  string
}

type ReverseDNS struct {
	IP        string
	Hostnames []string
}
