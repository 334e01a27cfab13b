package testconnectivity

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
	"github.com/sergeii/toolbelt/internal/validation"
)

type Request struct {
	Endpoint string `name:"endpoint" validate:"required"`
}

type UseCase struct {
	client   netclient.Fetcher
	validate *validator.Validate
	metrics  *metrics.Collector
	clock    clockwork.Clock
	logger   *zerolog.Logger
}

func New(
	client netclient.Fetcher,
	validate *validator.Validate,
	metrics *metrics.Collector,
	clock clockwork.Clock,
	logger *zerolog.Logger,
) UseCase {
	return UseCase{
		client:   client,
		validate: validate,
		metrics:  metrics,
		clock:    clock,
		logger:   logger,
	}
}

func (uc UseCase) Execute(ctx context.Context, req Request) (_ report.Connectivity, err error) {
	defer func(started time.Time) {
		uc.metrics.ObserveProbe(probe.Connectivity, uc.clock.Since(started), err)
	}(uc.clock.Now())

	if validateErr := uc.validate.Struct(req); validateErr != nil {
		return report.Connectivity{}, validation.RequestError(validateErr)
	}

	uc.metrics.ProbeRequests.WithLabelValues(probe.Connectivity.String()).Inc()
	resp, fetchErr := uc.client.Fetch(ctx, req.Endpoint)
	if fetchErr != nil {
		probeErr := netclient.Describe(fmt.Sprintf("Failed to connect to %s.", req.Endpoint), fetchErr)
		uc.logger.Info().
			Err(fetchErr).Str("target", req.Endpoint).Stringer("kind", probeErr.Kind).
			Msg("Connectivity probe failed")
		return report.Connectivity{}, probeErr
	}

	contentType := report.Text
	if netclient.IsStructured(resp.Body) {
		contentType = report.Structured
	}

	uc.logger.Debug().
		Str("target", req.Endpoint).Int("status", resp.StatusCode).
		Stringer("content", contentType).Int("size", len(resp.Body)).
		Msg("Connectivity probe succeeded")

	return report.Connectivity{
		Endpoint:    req.Endpoint,
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Body:        resp.Body,
	}, nil
}
