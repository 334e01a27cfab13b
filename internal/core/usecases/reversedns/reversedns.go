package reversedns

import (
	"context"
	"fmt"
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

type Resolver interface {
	LookupAddr(ctx context.Context, addr string) ([]string, error)
}

type Request struct {
	IP string `name:"ip" validate:"required,ip"`
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

// Execute resolves the ip to host names, in the order the resolver returned them.
// No names is a valid outcome.
func (uc UseCase) Execute(ctx context.Context, req Request) (_ report.ReverseDNS, err error) {
	defer func(started time.Time) {
		uc.metrics.ObserveProbe(probe.ReverseDNS, uc.clock.Since(started), err)
	}(uc.clock.Now())

	if validateErr := uc.validate.Struct(req); validateErr != nil {
		return report.ReverseDNS{}, validation.RequestError(validateErr)
	}

	lookupCtx, cancel := resolver.WithTimeout(ctx, uc.settings.DNSTimeout)
	defer cancel()

	uc.metrics.ProbeRequests.WithLabelValues(probe.ReverseDNS.String()).Inc()
	names, lookupErr := uc.resolver.LookupAddr(lookupCtx, req.IP)
	if lookupErr != nil {
		class := resolver.Classify(lookupErr)
		uc.logger.Info().
			Err(lookupErr).Str("ip", req.IP).Str("class", class).
			Msg("Reverse DNS lookup failed")
		return report.ReverseDNS{}, probe.NewError(
			probe.ResolverError,
			fmt.Sprintf("Error performing reverse DNS lookup for IP %s. Reason: %s", req.IP, lookupErr),
			lookupErr,
		).WithReason(class)
	}

	hostnames := make([]string, 0, len(names))
	for _, name := range names {
		hostnames = append(hostnames, resolver.TrimDot(name))
	}

	uc.logger.Debug().
		Str("ip", req.IP).Strs("hostnames", hostnames).
		Msg("Reverse DNS lookup succeeded")

	return report.ReverseDNS{
		IP:        req.IP,
		Hostnames: hostnames,
	}, nil
}
