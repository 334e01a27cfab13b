package testratelimit

import (
	"context"
	"errors"
	"net/http"
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
	"github.com/sergeii/toolbelt/internal/settings"
	"github.com/sergeii/toolbelt/internal/validation"
)

const rateLimitedText = "Too Many Requests"

type Outcome int

const (
	Success Outcome = iota
	RateLimited
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case RateLimited:
		return "ratelimited"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Classify sorts the result of a single request.
// A failure response counts as rate limited when either its status code is 429
// or its status text mentions "Too Many Requests".
func Classify(err error) Outcome {
	if err == nil {
		return Success
	}
	var statusErr *netclient.StatusError
	if !errors.As(err, &statusErr) {
		return Failed
	}
	if statusErr.StatusCode == http.StatusTooManyRequests {
		return RateLimited
	}
	if strings.Contains(statusErr.StatusText(), rateLimitedText) {
		return RateLimited
	}
	return Failed
}

// ParseCount reads a request count from raw user input.
// Zero is returned for anything but a positive integer, so that the default applies.
func ParseCount(raw string) int {
	count, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || count <= 0 {
		return 0
	}
	return count
}

type Request struct {
	URL string `name:"url" validate:"required,absurl"`
	// Count of zero falls back to the configured default
	Count int `name:"count" validate:"gte=0"`
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

// Execute sends Count requests one after another and counts how each of them ended.
// Failures never stop the run.
func (uc UseCase) Execute(ctx context.Context, req Request) (_ report.RateLimit, err error) {
	defer func(started time.Time) {
		uc.metrics.ObserveProbe(probe.RateLimit, uc.clock.Since(started), err)
	}(uc.clock.Now())

	if validateErr := uc.validate.Struct(req); validateErr != nil {
		return report.RateLimit{}, validation.RequestError(validateErr)
	}

	count := req.Count
	if count == 0 {
		count = uc.settings.RateLimitDefaultCount
	}

	result := report.RateLimit{
		TargetURL:     req.URL,
		TotalRequests: count,
	}

	for attempt := 1; attempt <= count; attempt++ {
		uc.metrics.ProbeRequests.WithLabelValues(probe.RateLimit.String()).Inc()
		_, fetchErr := uc.client.Fetch(ctx, req.URL, netclient.WithDiscardBody())
		outcome := Classify(fetchErr)
		switch outcome {
		case Success:
			result.SuccessfulRequests++
		case RateLimited:
			result.RateLimitedRequests++
		case Failed:
			result.FailedRequests++
			uc.logger.Debug().
				Err(fetchErr).Str("target", req.URL).Int("attempt", attempt).
				Msg("Rate limit probe request failed")
		}
		uc.metrics.RateLimitOutcomes.WithLabelValues(outcome.String()).Inc()
	}

	uc.logger.Debug().
		Str("target", req.URL).Int("total", result.TotalRequests).
		Int("successful", result.SuccessfulRequests).
		Int("limited", result.RateLimitedRequests).
		Int("failed", result.FailedRequests).
		Msg("Rate limit probe finished")

	return result, nil
}
