package lookupdns

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/sergeii/toolbelt/internal/core/entities/probe"
	"github.com/sergeii/toolbelt/internal/core/entities/report"
	"github.com/sergeii/toolbelt/internal/metrics"
	"github.com/sergeii/toolbelt/internal/resolver"
	"github.com/sergeii/toolbelt/internal/settings"
	"github.com/sergeii/toolbelt/internal/validation"
)

const (
	FamilyIPv4 = "IPv4"
	FamilyIPv6 = "IPv6"
)

var ErrNoAddresses = errors.New("no addresses found")

type Resolver interface {
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

type Request struct {
	Domain string `name:"domain" validate:"required"`
}

type UseCase struct {
	resolver Resolver
	validate *validator.Validate
	metrics  *metrics.Collector
	clock    clockwork.Clock
	settings settings.Settings
	logger   *zerolog.Logger
}

func New(
	resolver Resolver,
	validate *validator.Validate,
	metrics *metrics.Collector,
	clock clockwork.Clock,
	settings settings.Settings,
	logger *zerolog.Logger,
) UseCase {
	return UseCase{
		resolver: resolver,
		validate: validate,
		metrics:  metrics,
		clock:    clock,
		settings: settings,
		logger:   logger,
	}
}

// Family names the address family of ip.
func Family(ip net.IP) string {
	if ip.To4() != nil {
		return FamilyIPv4
	}
	return FamilyIPv6
}

// Execute resolves the domain and reports the first address the resolver returned.
func (uc UseCase) Execute(ctx context.Context, req Request) (_ report.DNS, err error) {
	defer func(started time.Time) {
		uc.metrics.ObserveProbe(probe.DNS, uc.clock.Since(started), err)
	}(uc.clock.Now())

	if validateErr := uc.validate.Struct(req); validateErr != nil {
		return report.DNS{}, validation.RequestError(validateErr)
	}

	lookupCtx, cancel := resolver.WithTimeout(ctx, uc.settings.DNSTimeout)
	defer cancel()

	uc.metrics.ProbeRequests.WithLabelValues(probe.DNS.String()).Inc()
	addrs, lookupErr := uc.resolver.LookupIPAddr(lookupCtx, req.Domain)
	if lookupErr == nil && len(addrs) == 0 {
		lookupErr = fmt.Errorf("%w for %s", ErrNoAddresses, req.Domain)
	}
	if lookupErr != nil {
		class := resolver.Classify(lookupErr)
		uc.logger.Info().
			Err(lookupErr).Str("domain", req.Domain).Str("class", class).
			Msg("DNS lookup failed")
		return report.DNS{}, probe.NewError(
			probe.ResolverError,
			fmt.Sprintf("DNS lookup failed. Reason: %s", lookupErr),
			lookupErr,
		).WithReason(class)
	}

	first := addrs[0].IP
	result := report.DNS{
		Domain:  req.Domain,
		Address: first.String(),
		Family:  Family(first),
	}

	uc.logger.Debug().
		Str("domain", req.Domain).Str("address", result.Address).Int("total", len(addrs)).
		Msg("DNS lookup succeeded")

	return result, nil
}
