package model

import (
	"strconv"
	"time"

	"github.com/sergeii/toolbelt/internal/core/entities/dname"
	"github.com/sergeii/toolbelt/internal/core/entities/header"
	"github.com/sergeii/toolbelt/internal/core/entities/report"
)

type Error struct {
	Error  string `json:"error"`
	Kind   string `json:"kind,omitempty"`
	Reason string `json:"reason,omitempty"`
}

type Status struct {
	BuildTime    string `json:"BuildTime"`
	BuildCommit  string `json:"BuildCommit"`
	BuildVersion string `json:"BuildVersion"`
}

type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func NewHeaders(list header.List) []Header {
	headers := make([]Header, 0, len(list))
	for _, f := range list {
		headers = append(headers, Header{Name: f.Name, Value: f.Value})
	}
	return headers
}

type Headers struct {
	URL             string   `json:"url"`
	StatusCode      int      `json:"statusCode"`
	RequestHeaders  []Header `json:"requestHeaders"`
	ResponseHeaders []Header `json:"responseHeaders"`
}

func NewHeadersFromReport(r report.Headers) Headers {
	return Headers{
		URL:             r.URL,
		StatusCode:      r.StatusCode,
		RequestHeaders:  NewHeaders(r.RequestHeaders),
		ResponseHeaders: NewHeaders(r.ResponseHeaders),
	}
}

type Latency struct {
	Status           string  `json:"status"`
	EndpointTested   string  `json:"endpointTested"`
	TimesRequested   int     `json:"timesRequested"`
	TotalLatency     string  `json:"totalLatency"`   // 42.5 ms
	AverageLatency   string  `json:"averageLatency"` // 8.5 ms
	TotalLatencyMs   float64 `json:"totalLatencyMs"`
	AverageLatencyMs float64 `json:"averageLatencyMs"`
}

func NewLatencyFromReport(r report.Latency) Latency {
	return Latency{
		Status:           "success",
		EndpointTested:   r.Endpoint,
		TimesRequested:   r.TimesRequested,
		TotalLatency:     FormatMs(r.TotalLatencyMs),
		AverageLatency:   FormatMs(r.AverageLatencyMs),
		TotalLatencyMs:   r.TotalLatencyMs,
		AverageLatencyMs: r.AverageLatencyMs,
	}
}

func FormatMs(ms float64) string {
	return strconv.FormatFloat(ms, 'f', -1, 64) + " ms"
}

type RateLimit struct {
	TargetURL           string `json:"targetUrl"`
	TotalRequests       int    `json:"totalRequests"`
	SuccessfulRequests  int    `json:"successfulRequests"`
	RateLimitedRequests int    `json:"rateLimitedRequests"`
	FailedRequests      int    `json:"failedRequests"`
}

func NewRateLimitFromReport(r report.RateLimit) RateLimit {
	return RateLimit{
		TargetURL:           r.TargetURL,
		TotalRequests:       r.TotalRequests,
		SuccessfulRequests:  r.SuccessfulRequests,
		RateLimitedRequests: r.RateLimitedRequests,
		FailedRequests:      r.FailedRequests,
	}
}

type DistinguishedName struct {
	C  string `json:"C,omitempty"`
	ST string `json:"ST,omitempty"`
	L  string `json:"L,omitempty"`
	O  string `json:"O,omitempty"`
	OU string `json:"OU,omitempty"`
	CN string `json:"CN,omitempty"`
}

func NewDistinguishedName(n dname.Name) DistinguishedName {
	return DistinguishedName{
		C:  n.Country,
		ST: n.State,
		L:  n.Locality,
		O:  n.Organization,
		OU: n.OrganizationalUnit,
		CN: n.CommonName,
	}
}

type Certificate struct {
	ValidFrom string            `json:"valid_from"` // Jan  1 00:00:00 2020 GMT
	ValidTo   string            `json:"valid_to"`
	Issuer    DistinguishedName `json:"issuer"`
	Subject   DistinguishedName `json:"subject"`
	Expired   bool              `json:"expired"`
}

// CertificateTimeLayout is the openssl style used for certificate validity dates.
const CertificateTimeLayout = "Jan _2 15:04:05 2006 GMT"

func NewCertificateFromReport(r report.Certificate) Certificate {
	return Certificate{
		ValidFrom: formatCertTime(r.ValidFrom),
		ValidTo:   formatCertTime(r.ValidTo),
		Issuer:    NewDistinguishedName(r.Issuer),
		Subject:   NewDistinguishedName(r.Subject),
		Expired:   r.Expired,
	}
}

func formatCertTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(CertificateTimeLayout)
}

type DNS struct {
	Domain  string `json:"domain"`
	Address string `json:"address"`
	Family  string `json:"family"`
}

func NewDNSFromReport(r report.DNS) DNS {
	return DNS(r)
}

type ReverseDNS struct {
	IP        string   `json:"ip"`
	Hostnames []string `json:"hostnames"`
}

func NewReverseDNSFromReport(r report.ReverseDNS) ReverseDNS {
	hostnames := r.Hostnames
	if hostnames == nil {
		hostnames = []string{}
	}
	return ReverseDNS{
		IP:        r.IP,
		Hostnames: hostnames,
	}
}
