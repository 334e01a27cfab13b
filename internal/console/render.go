package console

import (
	"net"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/sergeii/toolbelt/internal/core/entities/dname"
	"github.com/sergeii/toolbelt/internal/core/entities/header"
	"github.com/sergeii/toolbelt/internal/core/entities/report"
	"github.com/sergeii/toolbelt/internal/netclient"
)

const certTimeLayout = "Jan _2 15:04:05 2006 GMT"

func (c *Console) renderConnectivity(r report.Connectivity) {
	c.printer.Fprintf(c.out, "Connected to %s (status %d)\n", r.Endpoint, r.StatusCode)
	if r.ContentType == report.Structured {
		c.printer.Fprintln(c.out, netclient.FormatData(r.Body))
		return
	}
	c.printer.Fprintln(c.out, strings.TrimRight(string(r.Body), "\n"))
}

func (c *Console) renderLatency(r report.Latency) {
	c.printer.Fprintf(c.out, "Endpoint tested: %s\n", r.Endpoint)
	c.printer.Fprintf(c.out, "Times requested: %d\n", r.TimesRequested)
	c.printer.Fprintf(c.out, "Total latency: %.2f ms\n", r.TotalLatencyMs)
	c.printer.Fprintf(c.out, "Average latency: %.2f ms\n", r.AverageLatencyMs)
}

func (c *Console) renderHeaderList(title string, list header.List) {
	c.printer.Fprintf(c.out, "%s (%d):\n", title, list.Len())
	for _, field := range list {
		c.printer.Fprintf(c.out, "  %s: %s\n", field.Name, field.Value)
	}
}

func (c *Console) renderHeaders(r report.Headers) {
	c.printer.Fprintf(c.out, "Headers for %s (status %d)\n", r.URL, r.StatusCode)
	c.renderHeaderList("Request headers", r.RequestHeaders)
	c.renderHeaderList("Response headers", r.ResponseHeaders)
}

func (c *Console) renderRateLimit(r report.RateLimit) {
	c.printer.Fprintf(c.out, "Target URL: %s\n", r.TargetURL)
	c.printer.Fprintf(c.out, "Total requests: %d\n", r.TotalRequests)
	c.printer.Fprintf(c.out, "Successful requests: %d\n", r.SuccessfulRequests)
	c.printer.Fprintf(c.out, "Rate limited requests: %d\n", r.RateLimitedRequests)
	c.printer.Fprintf(c.out, "Failed requests: %d\n", r.FailedRequests)
}

func formatName(n dname.Name) string {
	if n.IsZero() {
		return "-"
	}
	return n.String()
}

func (c *Console) renderCertificate(r report.Certificate) {
	expired := "no"
	if r.Expired {
		expired = "yes"
	}
	c.printer.Fprintf(c.out, "Certificate of %s\n", net.JoinHostPort(r.Host, strconv.Itoa(r.Port)))
	c.printer.Fprintf(c.out, "Valid from: %s\n", r.ValidFrom.UTC().Format(certTimeLayout))
	c.printer.Fprintf(c.out, "Valid to: %s\n", r.ValidTo.UTC().Format(certTimeLayout))
	c.printer.Fprintf(c.out, "Issuer: %s\n", formatName(r.Issuer))
	c.printer.Fprintf(c.out, "Subject: %s\n", formatName(r.Subject))
	c.printer.Fprintf(c.out, "Expired: %s\n", expired)
}

func (c *Console) renderDNS(r report.DNS) {
	c.printer.Fprintf(c.out, "%s resolves to %s (%s)\n", r.Domain, r.Address, r.Family)
}

func (c *Console) renderReverseDNS(r report.ReverseDNS) {
	if len(r.Hostnames) == 0 {
		c.printer.Fprintf(c.out, "No host names found for %s\n", r.IP)
		return
	}
	c.printer.Fprintf(c.out, "Host names for %s:\n", r.IP)
	for _, name := range r.Hostnames {
		c.printer.Fprintf(c.out, "  %s\n", name)
	}
}

func (c *Console) renderHelp() {
	parser := kong.Must(&commands{}, kong.Name("toolbelt"), kong.NoDefaultHelp())
	c.printer.Fprintln(c.out, "Available commands:")
	for _, node := range parser.Model.Children {
		c.printer.Fprintf(c.out, "  %-40s %s\n", node.Summary(), node.Help)
	}
}
