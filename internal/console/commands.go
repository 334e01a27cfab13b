package console

import (
	"context"

	"github.com/sergeii/toolbelt/internal/core/usecases/fetchheaders"
	"github.com/sergeii/toolbelt/internal/core/usecases/inspectcertificate"
	"github.com/sergeii/toolbelt/internal/core/usecases/lookupdns"
	"github.com/sergeii/toolbelt/internal/core/usecases/measurelatency"
	"github.com/sergeii/toolbelt/internal/core/usecases/reversedns"
	"github.com/sergeii/toolbelt/internal/core/usecases/testconnectivity"
	"github.com/sergeii/toolbelt/internal/core/usecases/testratelimit"
)

type session struct {
	ctx     context.Context
	console *Console
}

type commands struct {
	TestConnectivity testConnectivityCmd `cmd:"" name:"testconnectivity" help:"Fetch an endpoint once and print its payload"`                                       // nolint:lll
	LatencyRun       latencyRunCmd       `cmd:"" name:"latencyrun"       help:"Request an endpoint a number of times and print the total and average latency"`    // nolint:lll
	FetchHeaders     fetchHeadersCmd     `cmd:"" name:"fetchheaders"     help:"Print the request and response headers of a url"`                                  // nolint:lll
	FetchSSLCert     fetchSSLCertCmd     `cmd:"" name:"fetchsslcert"     help:"Print the validity period, issuer and subject of a host certificate"`              // nolint:lll
	DNSLookup        dnsLookupCmd        `cmd:"" name:"dnslookup"        help:"Resolve a domain name to an address"`                                              // nolint:lll
	ReverseDNS       reverseDNSCmd       `cmd:"" name:"reverse-dns"      help:"Resolve an ip address to host names"`                                              // nolint:lll
	RateLimitTest    rateLimitTestCmd    `cmd:"" name:"rate-limit-test"  help:"Send a number of requests to a url and count how many were rate limited"`          // nolint:lll
	Help             helpCmd             `cmd:"" name:"help"             help:"List the available commands"`                                                      // nolint:lll
	Exit             exitCmd             `cmd:"" name:"exit"             help:"Leave the console"                                                aliases:"quit"` // nolint:lll
}

type testConnectivityCmd struct {
	Endpoint string `arg:"" help:"Absolute URL to fetch"`
}

func (cmd *testConnectivityCmd) Run(s *session) error {
	result, err := s.console.container.TestConnectivity.Execute(
		s.ctx,
		testconnectivity.Request{Endpoint: cmd.Endpoint},
	)
	if err != nil {
		return err
	}
	s.console.renderConnectivity(result)
	return nil
}

type latencyRunCmd struct {
	Endpoint string `arg:"" help:"Absolute URL to fetch"`
	Times    string `arg:"" help:"Number of sequential requests"`
}

func (cmd *latencyRunCmd) Run(s *session) error {
	times, err := measurelatency.ParseTimes(cmd.Times)
	if err != nil {
		return err
	}
	result, err := s.console.container.MeasureLatency.Execute(
		s.ctx,
		measurelatency.Request{Endpoint: cmd.Endpoint, Times: times},
	)
	if err != nil {
		return err
	}
	s.console.renderLatency(result)
	return nil
}

type fetchHeadersCmd struct {
	URL string `arg:"" help:"Absolute URL to fetch"`
}

func (cmd *fetchHeadersCmd) Run(s *session) error {
	result, err := s.console.container.FetchHeaders.Execute(
		s.ctx,
		fetchheaders.Request{URL: cmd.URL},
	)
	if err != nil {
		return err
	}
	s.console.renderHeaders(result)
	return nil
}

type fetchSSLCertCmd struct {
	URL string `arg:"" help:"URL of the host, the port defaults to 443"`
}

func (cmd *fetchSSLCertCmd) Run(s *session) error {
	result, err := s.console.container.InspectCertificate.Execute(
		s.ctx,
		inspectcertificate.Request{URL: cmd.URL},
	)
	if err != nil {
		return err
	}
	s.console.renderCertificate(result)
	return nil
}

type dnsLookupCmd struct {
	Domain string `arg:"" help:"Domain name to resolve"`
}

func (cmd *dnsLookupCmd) Run(s *session) error {
	result, err := s.console.container.LookupDNS.Execute(
		s.ctx,
		lookupdns.Request{Domain: cmd.Domain},
	)
	if err != nil {
		return err
	}
	s.console.renderDNS(result)
	return nil
}

type reverseDNSCmd struct {
	IP string `arg:"" help:"IPv4 or IPv6 address"`
}

func (cmd *reverseDNSCmd) Run(s *session) error {
	result, err := s.console.container.ReverseDNS.Execute(
		s.ctx,
		reversedns.Request{IP: cmd.IP},
	)
	if err != nil {
		return err
	}
	s.console.renderReverseDNS(result)
	return nil
}

type rateLimitTestCmd struct {
	URL   string `arg:"" help:"Absolute URL to fetch"`
	Count string `arg:"" help:"Number of requests, the configured default applies when omitted" optional:""`
}

func (cmd *rateLimitTestCmd) Run(s *session) error {
	result, err := s.console.container.TestRateLimit.Execute(
		s.ctx,
		testratelimit.Request{URL: cmd.URL, Count: testratelimit.ParseCount(cmd.Count)},
	)
	if err != nil {
		return err
	}
	s.console.renderRateLimit(result)
	return nil
}

type helpCmd struct{}

func (cmd *helpCmd) Run(s *session) error {
	s.console.renderHelp()
	return nil
}

type exitCmd struct{}

func (cmd *exitCmd) Run(*session) error {
	return errExit
}
