package measurelatency

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
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

var ErrInvalidTimes = errors.New("times must be a positive integer")

type Request struct {
	Endpoint string `name:"endpoint" validate:"required"`
	Times    int    `name:"times"    validate:"gt=0"`
}

// ParseTimes turns raw user input into a repeat count.
// Anything but a positive integer is rejected.
func ParseTimes(raw string) (int, error) {
	times, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || times <= 0 {
		cause := fmt.Errorf("%w: %q", ErrInvalidTimes, raw)
		return 0, probe.NewError(probe.RequestError, "Please provide a valid times parameter.", cause)
	}
	return times, nil
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

// Execute requests the endpoint Times times in a row and reports the total
// and average round trip. The first failed attempt aborts the whole run.
func (uc UseCase) Execute(ctx context.Context, req Request) (_ report.Latency, err error) {
	defer func(started time.Time) {
		uc.metrics.ObserveProbe(probe.Latency, uc.clock.Since(started), err)
	}(uc.clock.Now())

	if validateErr := uc.validate.Struct(req); validateErr != nil {
		return report.Latency{}, validation.RequestError(validateErr)
	}

	var total time.Duration
	for attempt := 1; attempt <= req.Times; attempt++ {
		started := uc.clock.Now()
		uc.metrics.ProbeRequests.WithLabelValues(probe.Latency.String()).Inc()
		if _, fetchErr := uc.client.Fetch(ctx, req.Endpoint); fetchErr != nil {
			prefix := fmt.Sprintf("Failed to connect to %s on attempt %d.", req.Endpoint, attempt)
			probeErr := netclient.Describe(prefix, fetchErr)
			uc.logger.Info().
				Err(fetchErr).Str("target", req.Endpoint).Int("attempt", attempt).
				Stringer("kind", probeErr.Kind).
				Msg("Latency probe aborted")
			return report.Latency{}, probeErr
		}
		elapsed := uc.clock.Since(started)
		uc.metrics.LatencySamples.Observe(elapsed.Seconds())
		total += elapsed
	}

	totalMs := float64(total) / float64(time.Millisecond)
	averageMs := totalMs / float64(req.Times)

	uc.logger.Debug().
		Str("target", req.Endpoint).Int("times", req.Times).
		Float64("total", totalMs).Float64("average", averageMs).
		Msg("Latency probe finished")

	return report.Latency{
		Endpoint:         req.Endpoint,
		TimesRequested:   req.Times,
		TotalLatencyMs:   totalMs,
		AverageLatencyMs: averageMs,
	}, nil
}
