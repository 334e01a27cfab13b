package fetchheaders

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
	"github.com/sergeii/toolbelt/internal/netclient"
	"github.com/sergeii/toolbelt/internal/settings"
	"github.com/sergeii/toolbelt/internal/validation"
)

type Request struct {
	URL string `name:"url" validate:"required,absurl"`
}

type UseCase struct {
	client   netclient.Fetcher
	validate *validator.Validate
	metrics  *metrics.Collector
	clock    clockwork.Clock
	settings settings.Settings
	logger   *zerolog.Logger
}

func New(
	client netclient.Fetcher,
	validate *validator.Validate,
	metrics *metrics.Collector,
	clock clockwork.Clock,
	settings settings.Settings,
	logger *zerolog.Logger,
) UseCase {
	return UseCase{
		client:   client,
		validate: validate,
		metrics:  metrics,
		clock:    clock,
		settings: settings,
		logger:   logger,
	}
}

// Execute fetches the url and returns both header sets,
// whatever status the response comes back with.
func (uc UseCase) Execute(ctx context.Context, req Request) (_ report.Headers, err error) {
	defer func(started time.Time) {
		uc.metrics.ObserveProbe(probe.Headers, uc.clock.Since(started), err)
	}(uc.clock.Now())

	if validateErr := uc.validate.Struct(req); validateErr != nil {
		return report.Headers{}, validation.RequestError(validateErr)
	}

	uc.metrics.ProbeRequests.WithLabelValues(probe.Headers.String()).Inc()
	resp, fetchErr := uc.client.Fetch(
		ctx,
		req.URL,
		netclient.WithTimeout(uc.settings.HeadersTimeout),
		netclient.WithAnyStatus(),
		netclient.WithDiscardBody(),
	)
	if fetchErr != nil {
		reason := netclient.Reason(fetchErr)
		msg := fmt.Sprintf("Failed to fetch headers for %s. Error: %s", req.URL, reason)
		probeErr := probe.NewError(netclient.KindOf(fetchErr), msg, fetchErr).WithReason(reason)
		uc.logger.Info().
			Err(fetchErr).Str("target", req.URL).Stringer("kind", probeErr.Kind).
			Msg("Header probe failed")
		return report.Headers{}, probeErr
	}

	uc.logger.Debug().
		Str("target", req.URL).Int("status", resp.StatusCode).
		Int("sent", resp.RequestHeaders.Len()).Int("received", resp.Headers.Len()).
		Msg("Header probe succeeded")

	return report.Headers{
		URL:             req.URL,
		StatusCode:      resp.StatusCode,
		RequestHeaders:  resp.RequestHeaders,
		ResponseHeaders: resp.Headers,
	}, nil
}
